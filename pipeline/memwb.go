package pipeline

import (
	"fmt"

	"rv32isim/component"
	"rv32isim/control"
	"rv32isim/port"
)

// MemWb is the MEM/WB separator: it latches every signal the
// write-back stage needs once per cycle, sharing one Enable/Clear pair
// across all six data registers and the parallel disassembly register.
//
// Grounded on original_source/src/simulator/rv32i/sep_reg/mem_wb.rs.
type MemWb struct {
	control.Group
	control.Base

	regWrite *component.Register
	wbSel    *component.Register
	npc      *component.Register
	aluRes   *component.Register
	memData  *component.Register
	rd       *component.Register
	asm      *component.AsmRegister
}

// Debug renders a multi-line report in the style of
// original_source/src/simulator/rv32i/sep_reg/mem_wb.rs's debug format.
func (m *MemWb) Debug() string {
	return fmt.Sprintf(
		"MEM/WB : %s\nREG_WRITE\t: 0x%08X WB_SEL\t: 0x%08X NPC\t\t: 0x%08X ALU_RES\t: 0x%08X MEM_DATA\t: 0x%08X\nRD\t\t: 0x%08X",
		m.asm.Read(), m.regWrite.Read(), m.wbSel.Read(), m.npc.Read(), m.aluRes.Read(), m.memData.Read(), m.rd.Read())
}

// MemWbBuilder assembles a MemWb.
type MemWbBuilder struct {
	regWrite *component.RegisterBuilder
	wbSel    *component.RegisterBuilder
	npc      *component.RegisterBuilder
	aluRes   *component.RegisterBuilder
	memData  *component.RegisterBuilder
	rd       *component.RegisterBuilder
	asm      *component.AsmRegisterBuilder
}

// NewMemWbBuilder returns a builder with every pin unconnected.
func NewMemWbBuilder() *MemWbBuilder {
	return &MemWbBuilder{
		regWrite: component.NewRegisterBuilder("MEM/WB.RegWrite", 0),
		wbSel:    component.NewRegisterBuilder("MEM/WB.WbSel", 0),
		npc:      component.NewRegisterBuilder("MEM/WB.Npc", 0),
		aluRes:   component.NewRegisterBuilder("MEM/WB.AluRes", 0),
		memData:  component.NewRegisterBuilder("MEM/WB.MemData", 0),
		rd:       component.NewRegisterBuilder("MEM/WB.Rd", 0),
		asm:      component.NewAsmRegisterBuilder(),
	}
}

// ConnectRegWrite binds the incoming RegWrite control bit.
func (b *MemWbBuilder) ConnectRegWrite(w port.Wire) { b.regWrite.ConnectIn(w) }

// ConnectWbSel binds the incoming write-back selector.
func (b *MemWbBuilder) ConnectWbSel(w port.Wire) { b.wbSel.ConnectIn(w) }

// ConnectNpc binds the incoming PC+4 value.
func (b *MemWbBuilder) ConnectNpc(w port.Wire) { b.npc.ConnectIn(w) }

// ConnectAluRes binds the incoming ALU result.
func (b *MemWbBuilder) ConnectAluRes(w port.Wire) { b.aluRes.ConnectIn(w) }

// ConnectMemData binds the incoming loaded-memory word.
func (b *MemWbBuilder) ConnectMemData(w port.Wire) { b.memData.ConnectIn(w) }

// ConnectRd binds the incoming destination register index.
func (b *MemWbBuilder) ConnectRd(w port.Wire) { b.rd.ConnectIn(w) }

// ConnectAsm binds the incoming disassembly string.
func (b *MemWbBuilder) ConnectAsm(w component.AsmWire) { b.asm.ConnectIn(w) }

// ConnectEnable binds the shared Enable line for every register in the
// bundle.
func (b *MemWbBuilder) ConnectEnable(w port.Wire) {
	b.regWrite.ConnectEnable(w)
	b.wbSel.ConnectEnable(w)
	b.npc.ConnectEnable(w)
	b.aluRes.ConnectEnable(w)
	b.memData.ConnectEnable(w)
	b.rd.ConnectEnable(w)
	b.asm.ConnectEnable(w)
}

// ConnectClear binds the shared Clear line for every register in the
// bundle.
func (b *MemWbBuilder) ConnectClear(w port.Wire) {
	b.regWrite.ConnectClear(w)
	b.wbSel.ConnectClear(w)
	b.npc.ConnectClear(w)
	b.aluRes.ConnectClear(w)
	b.memData.ConnectClear(w)
	b.rd.ConnectClear(w)
	b.asm.ConnectClear(w)
}

// AllocRegWrite returns the latched RegWrite output.
func (b *MemWbBuilder) AllocRegWrite() port.Wire { return b.regWrite.Alloc() }

// AllocWbSel returns the latched WbSel output.
func (b *MemWbBuilder) AllocWbSel() port.Wire { return b.wbSel.Alloc() }

// AllocNpc returns the latched Npc output.
func (b *MemWbBuilder) AllocNpc() port.Wire { return b.npc.Alloc() }

// AllocAluRes returns the latched AluRes output.
func (b *MemWbBuilder) AllocAluRes() port.Wire { return b.aluRes.Alloc() }

// AllocMemData returns the latched MemData output.
func (b *MemWbBuilder) AllocMemData() port.Wire { return b.memData.Alloc() }

// AllocRd returns the latched Rd output.
func (b *MemWbBuilder) AllocRd() port.Wire { return b.rd.Alloc() }

// AllocAsm returns the latched disassembly-text output.
func (b *MemWbBuilder) AllocAsm() component.AsmWire { return b.asm.Alloc() }

// Build freezes the bundle.
func (b *MemWbBuilder) Build() *MemWb {
	m := &MemWb{
		regWrite: b.regWrite.Build(),
		wbSel:    b.wbSel.Build(),
		npc:      b.npc.Build(),
		aluRes:   b.aluRes.Build(),
		memData:  b.memData.Build(),
		rd:       b.rd.Build(),
		asm:      b.asm.Build(),
	}
	m.Add(m.regWrite)
	m.Add(m.wbSel)
	m.Add(m.npc)
	m.Add(m.aluRes)
	m.Add(m.memData)
	m.Add(m.rd)
	m.Add(m.asm)
	return m
}
