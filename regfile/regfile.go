// Package regfile implements the 32x32 RV32I integer register file,
// spec.md §4.11.
package regfile

import (
	"fmt"

	"rv32isim/control"
	"rv32isim/port"
)

// RegisterFile is a 32x32-bit register file. x0 is hard-wired to zero.
// It is both a port.Port provider (Rs1Data/Rs2Data read the current
// rs1/rs2) and a control.Control (Rd/RdData/RegWrite latch on rising
// edge, commit on falling edge).
//
// Read-after-write in the same cycle returns the old value: Rs1Data and
// Rs2Data read regs directly, which only changes on FallingEdge, so a
// register written this cycle is not visible to a combinational read
// issued before that FallingEdge runs - classic register-file timing,
// per spec.md §4.11.
type RegisterFile struct {
	control.Base

	rs1, rs2   port.Wire
	rd, rdData port.Wire
	regWrite   port.Wire

	regs [32]uint32

	rdCache       uint32
	rdDataCache   uint32
	regWriteCache bool
}

// Rs1Data reads x[rs1].
func (r *RegisterFile) Rs1Data() uint32 { return r.read(r.rs1.Read()) }

// Rs2Data reads x[rs2].
func (r *RegisterFile) Rs2Data() uint32 { return r.read(r.rs2.Read()) }

func (r *RegisterFile) read(idx uint32) uint32 {
	if idx == 0 {
		return 0
	}
	return r.regs[idx&0x1F]
}

// RisingEdge implements control.Control.
func (r *RegisterFile) RisingEdge() {
	r.rdCache = r.rd.Read()
	r.rdDataCache = r.rdData.Read()
	r.regWriteCache = r.regWrite.Read() == 1
}

// FallingEdge implements control.Control.
func (r *RegisterFile) FallingEdge() {
	if r.regWriteCache && r.rdCache != 0 {
		r.regs[r.rdCache&0x1F] = r.rdDataCache
	}
}

// Debug implements control.Control.
func (r *RegisterFile) Debug() string {
	s := "regfile:"
	for i := 0; i < 32; i++ {
		s += fmt.Sprintf(" x%d=0x%08X", i, r.regs[i])
	}
	return s
}

type rs1Port struct{ r *RegisterFile }
type rs2Port struct{ r *RegisterFile }

func (p rs1Port) Read() uint32 { return p.r.Rs1Data() }
func (p rs2Port) Read() uint32 { return p.r.Rs2Data() }

// Builder assembles a RegisterFile.
type Builder struct {
	rf *RegisterFile
}

// NewBuilder returns a builder with all pins unconnected.
func NewBuilder() *Builder {
	return &Builder{rf: &RegisterFile{
		rs1:      port.Hole("regfile.Rs1"),
		rs2:      port.Hole("regfile.Rs2"),
		rd:       port.Hole("regfile.Rd"),
		rdData:   port.Hole("regfile.RdData"),
		regWrite: port.Hole("regfile.RegWrite"),
	}}
}

// ConnectRs1 binds the rs1 index input.
func (b *Builder) ConnectRs1(w port.Wire) { b.rf.rs1 = w }

// ConnectRs2 binds the rs2 index input.
func (b *Builder) ConnectRs2(w port.Wire) { b.rf.rs2 = w }

// ConnectRd binds the destination register index input.
func (b *Builder) ConnectRd(w port.Wire) { b.rf.rd = w }

// ConnectRdData binds the write-back data input.
func (b *Builder) ConnectRdData(w port.Wire) { b.rf.rdData = w }

// ConnectRegWrite binds the write-enable input.
func (b *Builder) ConnectRegWrite(w port.Wire) { b.rf.regWrite = w }

// AllocRs1Data returns the wire for the current rs1 read.
func (b *Builder) AllocRs1Data() port.Wire { return port.Of(rs1Port{b.rf}) }

// AllocRs2Data returns the wire for the current rs2 read.
func (b *Builder) AllocRs2Data() port.Wire { return port.Of(rs2Port{b.rf}) }

// Build freezes the register file.
func (b *Builder) Build() *RegisterFile { return b.rf }

// Peek returns x[idx], mainly for tests and debug dumps that need a
// register's value without wiring a read port.
func (r *RegisterFile) Peek(idx uint32) uint32 { return r.read(idx) }

// Poke sets x[idx] outside the normal write path, for a driver seeding
// initial architectural state (e.g. the stack pointer) before the first
// cycle - the role a real C runtime's startup stub plays, which this
// simulator does not itself execute. A no-op for x0.
func (r *RegisterFile) Poke(idx, v uint32) {
	if idx == 0 {
		return
	}
	r.regs[idx&0x1F] = v
}
