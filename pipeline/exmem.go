package pipeline

import (
	"fmt"

	"rv32isim/component"
	"rv32isim/control"
	"rv32isim/port"
)

// ExMem is the EX/MEM separator: it latches the EX stage's result and
// the controls MEM and the forwarding unit need, per spec.md §4.13.
type ExMem struct {
	control.Group
	control.Base

	regWrite, memRead, memWrite *component.Register
	wbSel, npc, aluRes          *component.Register
	rs2Data, rd                 *component.Register
	asm                         *component.AsmRegister
}

// Debug implements control.Control.
func (s *ExMem) Debug() string {
	return fmt.Sprintf(
		"EX/MEM : %s\nREG_WRITE\t: 0x%08X MEM_READ\t: 0x%08X MEM_WRITE\t: 0x%08X\n"+
			"WB_SEL\t\t: 0x%08X NPC\t\t: 0x%08X ALU_RES\t: 0x%08X\nRS2_DATA\t: 0x%08X RD\t\t: 0x%08X",
		s.asm.Read(), s.regWrite.Read(), s.memRead.Read(), s.memWrite.Read(),
		s.wbSel.Read(), s.npc.Read(), s.aluRes.Read(), s.rs2Data.Read(), s.rd.Read())
}

// ExMemBuilder assembles an ExMem separator.
type ExMemBuilder struct {
	regWrite, memRead, memWrite *component.RegisterBuilder
	wbSel, npc, aluRes          *component.RegisterBuilder
	rs2Data, rd                 *component.RegisterBuilder
	asm                         *component.AsmRegisterBuilder
}

// NewExMemBuilder returns a builder with every pin unconnected.
func NewExMemBuilder() *ExMemBuilder {
	return &ExMemBuilder{
		regWrite: component.NewRegisterBuilder("EX/MEM.RegWrite", 0),
		memRead:  component.NewRegisterBuilder("EX/MEM.MemRead", 0),
		memWrite: component.NewRegisterBuilder("EX/MEM.MemWrite", 0),
		wbSel:    component.NewRegisterBuilder("EX/MEM.WbSel", 0),
		npc:      component.NewRegisterBuilder("EX/MEM.Npc", 0),
		aluRes:   component.NewRegisterBuilder("EX/MEM.AluRes", 0),
		rs2Data:  component.NewRegisterBuilder("EX/MEM.Rs2Data", 0),
		rd:       component.NewRegisterBuilder("EX/MEM.Rd", 0),
		asm:      component.NewAsmRegisterBuilder(),
	}
}

// ConnectRegWrite binds the incoming RegWrite control bit.
func (b *ExMemBuilder) ConnectRegWrite(w port.Wire) { b.regWrite.ConnectIn(w) }

// ConnectMemRead binds the incoming MemRead control bit.
func (b *ExMemBuilder) ConnectMemRead(w port.Wire) { b.memRead.ConnectIn(w) }

// ConnectMemWrite binds the incoming MemWrite control bit.
func (b *ExMemBuilder) ConnectMemWrite(w port.Wire) { b.memWrite.ConnectIn(w) }

// ConnectWbSel binds the incoming write-back selector.
func (b *ExMemBuilder) ConnectWbSel(w port.Wire) { b.wbSel.ConnectIn(w) }

// ConnectNpc binds the incoming PC+4 value.
func (b *ExMemBuilder) ConnectNpc(w port.Wire) { b.npc.ConnectIn(w) }

// ConnectAluRes binds the incoming ALU result.
func (b *ExMemBuilder) ConnectAluRes(w port.Wire) { b.aluRes.ConnectIn(w) }

// ConnectRs2Data binds the incoming post-forward rs2 value, used as
// store data.
func (b *ExMemBuilder) ConnectRs2Data(w port.Wire) { b.rs2Data.ConnectIn(w) }

// ConnectRd binds the incoming destination register index.
func (b *ExMemBuilder) ConnectRd(w port.Wire) { b.rd.ConnectIn(w) }

// ConnectAsm binds the incoming disassembly string.
func (b *ExMemBuilder) ConnectAsm(w component.AsmWire) { b.asm.ConnectIn(w) }

// ConnectEnable binds the shared Enable line for every register in the
// bundle.
func (b *ExMemBuilder) ConnectEnable(w port.Wire) {
	b.regWrite.ConnectEnable(w)
	b.memRead.ConnectEnable(w)
	b.memWrite.ConnectEnable(w)
	b.wbSel.ConnectEnable(w)
	b.npc.ConnectEnable(w)
	b.aluRes.ConnectEnable(w)
	b.rs2Data.ConnectEnable(w)
	b.rd.ConnectEnable(w)
	b.asm.ConnectEnable(w)
}

// ConnectClear binds the shared Clear line for every register in the
// bundle.
func (b *ExMemBuilder) ConnectClear(w port.Wire) {
	b.regWrite.ConnectClear(w)
	b.memRead.ConnectClear(w)
	b.memWrite.ConnectClear(w)
	b.wbSel.ConnectClear(w)
	b.npc.ConnectClear(w)
	b.aluRes.ConnectClear(w)
	b.rs2Data.ConnectClear(w)
	b.rd.ConnectClear(w)
	b.asm.ConnectClear(w)
}

// AllocRegWrite returns the latched RegWrite output.
func (b *ExMemBuilder) AllocRegWrite() port.Wire { return b.regWrite.Alloc() }

// AllocMemRead returns the latched MemRead output.
func (b *ExMemBuilder) AllocMemRead() port.Wire { return b.memRead.Alloc() }

// AllocMemWrite returns the latched MemWrite output.
func (b *ExMemBuilder) AllocMemWrite() port.Wire { return b.memWrite.Alloc() }

// AllocWbSel returns the latched write-back selector.
func (b *ExMemBuilder) AllocWbSel() port.Wire { return b.wbSel.Alloc() }

// AllocNpc returns the latched PC+4 output.
func (b *ExMemBuilder) AllocNpc() port.Wire { return b.npc.Alloc() }

// AllocAluRes returns the latched ALU result.
func (b *ExMemBuilder) AllocAluRes() port.Wire { return b.aluRes.Alloc() }

// AllocRs2Data returns the latched store-data value.
func (b *ExMemBuilder) AllocRs2Data() port.Wire { return b.rs2Data.Alloc() }

// AllocRd returns the latched destination register index.
func (b *ExMemBuilder) AllocRd() port.Wire { return b.rd.Alloc() }

// AllocAsm returns the latched disassembly-text output.
func (b *ExMemBuilder) AllocAsm() component.AsmWire { return b.asm.Alloc() }

// Build freezes the bundle.
func (b *ExMemBuilder) Build() *ExMem {
	s := &ExMem{
		regWrite: b.regWrite.Build(), memRead: b.memRead.Build(), memWrite: b.memWrite.Build(),
		wbSel: b.wbSel.Build(), npc: b.npc.Build(), aluRes: b.aluRes.Build(),
		rs2Data: b.rs2Data.Build(), rd: b.rd.Build(), asm: b.asm.Build(),
	}
	s.Add(s.regWrite)
	s.Add(s.memRead)
	s.Add(s.memWrite)
	s.Add(s.wbSel)
	s.Add(s.npc)
	s.Add(s.aluRes)
	s.Add(s.rs2Data)
	s.Add(s.rd)
	s.Add(s.asm)
	return s
}
