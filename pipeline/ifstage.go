package pipeline

import (
	"fmt"

	"rv32isim/component"
	"rv32isim/control"
	"rv32isim/port"
)

// IfStage is the instruction-fetch stage: the PC register, the
// instruction-memory port, the PC+4 adder, and the next-PC
// multiplexer chosen by a taken branch/jump fed back from EX.
//
// Instruction memory is a dedicated component.Memory instance, kept
// separate from the MEM stage's data memory: a single Memory has one
// address/read/write pin set and cannot serve IF's fetch and MEM's
// load/store at two different addresses in the same cycle. Both
// instances are seeded from the same program image, Harvard-style,
// mirroring how textbook RV32I pipeline simulators split instruction
// and data memory even when a single underlying memory model backs
// both (original_source/src/common/component/mem.rs's Mem is generic
// over either use).
type IfStage struct {
	control.Group
	control.Base

	pc   *component.Register
	imem *component.Memory
}

// Debug implements control.Control.
func (s *IfStage) Debug() string {
	return fmt.Sprintf("IF : pc=0x%08X\n%s", s.pc.Read(), s.imem.Debug())
}

// IfStageBuilder assembles an IfStage.
type IfStageBuilder struct {
	pc      *component.RegisterBuilder
	pcAdder *component.AdderBuilder
	nextMux *component.MuxBuilder
	imem    *component.MemoryBuilder

	asm   []string
	start uint32

	consts component.Consts
}

// NewIfStageBuilder wires the IF stage's internal combinational graph
// around a fresh instruction memory seeded with image, with the PC
// register initialized to start. asmTable holds one disassembly string
// per instruction word, indexed by (pc-start)/4, for AllocAsm; it may
// be nil.
func NewIfStageBuilder(image []byte, asmTable []string, start uint32) *IfStageBuilder {
	b := &IfStageBuilder{
		pc:      component.NewRegisterBuilder("IF.Pc", start),
		pcAdder: component.NewAdderBuilder(),
		nextMux: component.NewMuxBuilder(),
		imem:    component.NewMemoryBuilder(image),
		asm:     asmTable,
		start:   start,
	}
	b.pcAdder.ConnectIn(b.pc.Alloc())
	b.pcAdder.ConnectIn(b.consts.Alloc(4))
	b.nextMux.ConnectIn(0, b.pcAdder.Alloc())
	b.pc.ConnectIn(b.nextMux.Alloc())
	b.imem.ConnectAddress(b.pc.Alloc())
	b.imem.ConnectWrite(b.consts.Alloc(0))
	b.imem.ConnectInput(b.consts.Alloc(0))
	b.imem.ConnectRead(b.consts.Alloc(1))
	return b
}

// ConnectBranchTarget binds the taken branch/jump target address (the
// next-PC mux's In(1)).
func (b *IfStageBuilder) ConnectBranchTarget(w port.Wire) { b.nextMux.ConnectIn(1, w) }

// ConnectBranchSel binds the taken-branch/jump selector driving the
// next-PC mux.
func (b *IfStageBuilder) ConnectBranchSel(w port.Wire) { b.nextMux.ConnectSelect(w) }

// ConnectEnable binds the PC register's Enable line, held low by the
// driver during a load-use stall so the stalled instruction is
// refetched rather than skipped.
func (b *IfStageBuilder) ConnectEnable(w port.Wire) { b.pc.ConnectEnable(w) }

// AllocNpc returns the wire for PC+4.
func (b *IfStageBuilder) AllocNpc() port.Wire { return b.pcAdder.Alloc() }

// AllocPc returns the wire for the current PC.
func (b *IfStageBuilder) AllocPc() port.Wire { return b.pc.Alloc() }

// AllocInstruction returns the wire for the fetched instruction word.
func (b *IfStageBuilder) AllocInstruction() port.Wire { return b.imem.Alloc() }

// AllocAsm returns the disassembly text for the instruction currently
// at Pc, looked up in the asm table passed to NewIfStageBuilder.
func (b *IfStageBuilder) AllocAsm() component.AsmWire {
	return component.AsmOf(asmLookup{pc: b.pc.Alloc(), start: b.start, table: b.asm})
}

// asmLookup is a combinational component.AsmPort indexing a parallel
// disassembly-string table by instruction offset from a base PC,
// mirroring original_source/src/main.rs's asm_mem passed alongside
// instruction_memory.
type asmLookup struct {
	pc    port.Wire
	start uint32
	table []string
}

func (a asmLookup) Read() string {
	off := int64(a.pc.Read()) - int64(a.start)
	if off < 0 || off%4 != 0 {
		return ""
	}
	idx := off / 4
	if idx >= int64(len(a.table)) {
		return ""
	}
	return a.table[idx]
}

// Build freezes the stage.
func (b *IfStageBuilder) Build() *IfStage {
	s := &IfStage{pc: b.pc.Build(), imem: b.imem.Build()}
	s.Add(s.pc)
	s.Add(s.imem)
	return s
}
