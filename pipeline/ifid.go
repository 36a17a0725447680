package pipeline

import (
	"fmt"

	"rv32isim/component"
	"rv32isim/control"
	"rv32isim/port"
)

// IfId is the IF/ID separator, latching the fetched instruction and
// its PC/PC+4 once per cycle, per spec.md §4.13.
type IfId struct {
	control.Group
	control.Base

	pc          *component.Register
	npc         *component.Register
	instruction *component.Register
	asm         *component.AsmRegister
}

// Debug implements control.Control.
func (s *IfId) Debug() string {
	return fmt.Sprintf("IF/ID : %s\nPC\t\t: 0x%08X NPC\t\t: 0x%08X INSTRUCTION\t: 0x%08X",
		s.asm.Read(), s.pc.Read(), s.npc.Read(), s.instruction.Read())
}

// IfIdBuilder assembles an IfId separator.
type IfIdBuilder struct {
	pc          *component.RegisterBuilder
	npc         *component.RegisterBuilder
	instruction *component.RegisterBuilder
	asm         *component.AsmRegisterBuilder
}

// NewIfIdBuilder returns a builder with every pin unconnected.
func NewIfIdBuilder() *IfIdBuilder {
	return &IfIdBuilder{
		pc:          component.NewRegisterBuilder("IF/ID.Pc", 0),
		npc:         component.NewRegisterBuilder("IF/ID.Npc", 0),
		instruction: component.NewRegisterBuilder("IF/ID.Instruction", 0),
		asm:         component.NewAsmRegisterBuilder(),
	}
}

// ConnectPc binds the incoming PC.
func (b *IfIdBuilder) ConnectPc(w port.Wire) { b.pc.ConnectIn(w) }

// ConnectNpc binds the incoming PC+4.
func (b *IfIdBuilder) ConnectNpc(w port.Wire) { b.npc.ConnectIn(w) }

// ConnectInstruction binds the incoming fetched instruction word.
func (b *IfIdBuilder) ConnectInstruction(w port.Wire) { b.instruction.ConnectIn(w) }

// ConnectAsm binds the incoming disassembly string.
func (b *IfIdBuilder) ConnectAsm(w component.AsmWire) { b.asm.ConnectIn(w) }

// ConnectEnable binds the shared Enable line for every register in the
// bundle.
func (b *IfIdBuilder) ConnectEnable(w port.Wire) {
	b.pc.ConnectEnable(w)
	b.npc.ConnectEnable(w)
	b.instruction.ConnectEnable(w)
	b.asm.ConnectEnable(w)
}

// ConnectClear binds the shared Clear line for every register in the
// bundle.
func (b *IfIdBuilder) ConnectClear(w port.Wire) {
	b.pc.ConnectClear(w)
	b.npc.ConnectClear(w)
	b.instruction.ConnectClear(w)
	b.asm.ConnectClear(w)
}

// AllocPc returns the latched PC output.
func (b *IfIdBuilder) AllocPc() port.Wire { return b.pc.Alloc() }

// AllocNpc returns the latched PC+4 output.
func (b *IfIdBuilder) AllocNpc() port.Wire { return b.npc.Alloc() }

// AllocInstruction returns the latched instruction output.
func (b *IfIdBuilder) AllocInstruction() port.Wire { return b.instruction.Alloc() }

// AllocAsm returns the latched disassembly-text output.
func (b *IfIdBuilder) AllocAsm() component.AsmWire { return b.asm.Alloc() }

// Build freezes the bundle.
func (b *IfIdBuilder) Build() *IfId {
	s := &IfId{
		pc:          b.pc.Build(),
		npc:         b.npc.Build(),
		instruction: b.instruction.Build(),
		asm:         b.asm.Build(),
	}
	s.Add(s.pc)
	s.Add(s.npc)
	s.Add(s.instruction)
	s.Add(s.asm)
	return s
}
