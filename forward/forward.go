// Package forward implements the EX-stage forwarding unit: it decides,
// for each of rs1/rs2 of the instruction currently in EX, whether the
// EX-stage operand multiplexer should take its value from the register
// file, from the EX/MEM separator's result, or from the MEM/WB
// separator's result.
//
// Grounded on original_source/src/simulator/rv32i/ex_stage.rs's forward
// submodule and spec.md §4.9.
package forward

import "rv32isim/port"

// Source is the forwarding multiplexer selector value.
type Source uint32

// Forwarding sources, per spec.md §4.9.
const (
	SourceRegFile Source = 0
	SourceExMem   Source = 1
	SourceMemWb   Source = 2
)

// Forward is the combinational forwarding-decision unit. It has two
// outputs (Forward1 for rs1, Forward2 for rs2); Forward itself has no
// Read - callers use the wires returned by the builder's AllocForward1
// and AllocForward2.
type Forward struct {
	rs1, rs2          port.Wire
	rdMem, rdMemWrite port.Wire
	rdWb, rdWbWrite   port.Wire
}

type forward1 struct{ f *Forward }
type forward2 struct{ f *Forward }

// Read implements port.Port for the Forward1 output.
func (f forward1) Read() uint32 { return uint32(f.f.decide(f.f.rs1)) }

// Read implements port.Port for the Forward2 output.
func (f forward2) Read() uint32 { return uint32(f.f.decide(f.f.rs2)) }

// decide applies spec.md §4.9's priority: EX/MEM forward beats MEM/WB
// forward for the same register; register 0 never forwards.
func (f *Forward) decide(rs port.Wire) Source {
	rsv := rs.Read()
	if rsv == 0 {
		return SourceRegFile
	}
	if f.rdMemWrite.Read() == 1 && f.rdMem.Read() == rsv {
		return SourceExMem
	}
	if f.rdWbWrite.Read() == 1 && f.rdWb.Read() == rsv {
		return SourceMemWb
	}
	return SourceRegFile
}

// Builder assembles a Forward unit.
type Builder struct {
	fwd *Forward
}

// NewBuilder returns a builder with all pins unconnected.
func NewBuilder() *Builder {
	return &Builder{fwd: &Forward{
		rs1:        port.Hole("forward.Rs1"),
		rs2:        port.Hole("forward.Rs2"),
		rdMem:      port.Hole("forward.RdMem"),
		rdMemWrite: port.Hole("forward.RdMemWrite"),
		rdWb:       port.Hole("forward.RdWb"),
		rdWbWrite:  port.Hole("forward.RdWbWrite"),
	}}
}

// ConnectRs1 binds the EX-stage instruction's rs1 field.
func (b *Builder) ConnectRs1(w port.Wire) { b.fwd.rs1 = w }

// ConnectRs2 binds the EX-stage instruction's rs2 field.
func (b *Builder) ConnectRs2(w port.Wire) { b.fwd.rs2 = w }

// ConnectRdMem binds the EX/MEM separator's destination register.
func (b *Builder) ConnectRdMem(w port.Wire) { b.fwd.rdMem = w }

// ConnectRdMemWrite binds the EX/MEM separator's RegWrite signal.
func (b *Builder) ConnectRdMemWrite(w port.Wire) { b.fwd.rdMemWrite = w }

// ConnectRdWb binds the MEM/WB separator's destination register.
func (b *Builder) ConnectRdWb(w port.Wire) { b.fwd.rdWb = w }

// ConnectRdWbWrite binds the MEM/WB separator's RegWrite signal.
func (b *Builder) ConnectRdWbWrite(w port.Wire) { b.fwd.rdWbWrite = w }

// AllocForward1 returns the wire selecting rs1's operand source.
func (b *Builder) AllocForward1() port.Wire { return port.Of(forward1{b.fwd}) }

// AllocForward2 returns the wire selecting rs2's operand source.
func (b *Builder) AllocForward2() port.Wire { return port.Of(forward2{b.fwd}) }
