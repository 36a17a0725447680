package pipeline

import (
	"rv32isim/component"
	"rv32isim/control"
	"rv32isim/port"
)

// MemStage is the memory-access stage: the data memory, addressed by
// the EX-stage ALU result, plus pass-through of the signals WB and the
// MEM/WB separator need unchanged (AluRes, Rd, and the write-back
// controls), per spec.md §4.12.
//
// Grounded on original_source/src/common/component/mem.rs's Mem, as a
// second, independent instance from the one IfStage uses - see
// IfStage's doc comment for why IF and MEM cannot share one Memory.
type MemStage struct {
	control.Group
	control.Base

	dmem *component.Memory
}

// Debug implements control.Control.
func (s *MemStage) Debug() string { return "MEM :\n" + s.dmem.Debug() }

// MemStageBuilder assembles a MemStage.
type MemStageBuilder struct {
	dmem *component.MemoryBuilder

	aluRes, rd, regWrite, wbSel, npc port.Wire
}

// NewMemStageBuilder returns a builder for a data memory seeded with
// image, with all pins unconnected.
func NewMemStageBuilder(image []byte) *MemStageBuilder {
	return &MemStageBuilder{
		dmem:     component.NewMemoryBuilder(image),
		aluRes:   port.Hole("memstage.AluRes"),
		rd:       port.Hole("memstage.Rd"),
		regWrite: port.Hole("memstage.RegWrite"),
		wbSel:    port.Hole("memstage.WbSel"),
		npc:      port.Hole("memstage.Npc"),
	}
}

// ConnectAddress binds the load/store address (the EX-stage ALU
// result).
func (b *MemStageBuilder) ConnectAddress(w port.Wire) { b.dmem.ConnectAddress(w) }

// ConnectInput binds the store data (post-forward rs2 from EX).
func (b *MemStageBuilder) ConnectInput(w port.Wire) { b.dmem.ConnectInput(w) }

// ConnectWrite binds the latched MemWrite control.
func (b *MemStageBuilder) ConnectWrite(w port.Wire) { b.dmem.ConnectWrite(w) }

// ConnectRead binds the latched MemRead control.
func (b *MemStageBuilder) ConnectRead(w port.Wire) { b.dmem.ConnectRead(w) }

// ConnectAluRes binds the pass-through ALU result.
func (b *MemStageBuilder) ConnectAluRes(w port.Wire) { b.aluRes = w }

// ConnectRd binds the pass-through destination register index.
func (b *MemStageBuilder) ConnectRd(w port.Wire) { b.rd = w }

// ConnectRegWrite binds the pass-through RegWrite control.
func (b *MemStageBuilder) ConnectRegWrite(w port.Wire) { b.regWrite = w }

// ConnectWbSel binds the pass-through write-back selector.
func (b *MemStageBuilder) ConnectWbSel(w port.Wire) { b.wbSel = w }

// ConnectNpc binds the pass-through PC+4 value.
func (b *MemStageBuilder) ConnectNpc(w port.Wire) { b.npc = w }

// AllocMemData returns the wire for the loaded memory word.
func (b *MemStageBuilder) AllocMemData() port.Wire { return b.dmem.Alloc() }

// AllocAluRes returns the pass-through ALU result.
func (b *MemStageBuilder) AllocAluRes() port.Wire { return b.aluRes }

// AllocRd returns the pass-through destination register index.
func (b *MemStageBuilder) AllocRd() port.Wire { return b.rd }

// AllocRegWrite returns the pass-through RegWrite control.
func (b *MemStageBuilder) AllocRegWrite() port.Wire { return b.regWrite }

// AllocWbSel returns the pass-through write-back selector.
func (b *MemStageBuilder) AllocWbSel() port.Wire { return b.wbSel }

// AllocNpc returns the pass-through PC+4 value.
func (b *MemStageBuilder) AllocNpc() port.Wire { return b.npc }

// Build freezes the stage's sequential component, the data memory.
func (b *MemStageBuilder) Build() *MemStage {
	s := &MemStage{dmem: b.dmem.Build()}
	s.Add(s.dmem)
	return s
}
