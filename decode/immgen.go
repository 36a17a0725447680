package decode

import "rv32isim/port"

// ImmGen produces the sign-extended 32-bit immediate for whichever of
// the I/S/B/U/J encodings the instruction's opcode selects, per
// spec.md §4.10.
type ImmGen struct {
	inst   port.Wire
	opcode port.Wire
}

// Read implements port.Port.
func (g *ImmGen) Read() uint32 {
	inst := g.inst.Read()
	switch g.opcode.Read() {
	case OpcodeLui, OpcodeAuipc:
		return inst & 0xFFFFF000
	case OpcodeJal:
		imm20 := (inst >> 31) & 0x1
		imm19_12 := (inst >> 12) & 0xFF
		imm11 := (inst >> 20) & 0x1
		imm10_1 := (inst >> 21) & 0x3FF
		v := (imm20 << 20) | (imm19_12 << 12) | (imm11 << 11) | (imm10_1 << 1)
		return signExtend(v, 21)
	case OpcodeBranch:
		imm12 := (inst >> 31) & 0x1
		imm11 := (inst >> 7) & 0x1
		imm10_5 := (inst >> 25) & 0x3F
		imm4_1 := (inst >> 8) & 0xF
		v := (imm12 << 12) | (imm11 << 11) | (imm10_5 << 5) | (imm4_1 << 1)
		return signExtend(v, 13)
	case OpcodeStore:
		imm11_5 := (inst >> 25) & 0x7F
		imm4_0 := (inst >> 7) & 0x1F
		v := (imm11_5 << 5) | imm4_0
		return signExtend(v, 12)
	default: // OpcodeLoad, OpcodeOpImm, OpcodeJalr, and any unknown opcode.
		return signExtend(inst>>20, 12)
	}
}

// signExtend sign-extends the low bits-width bits of v to 32 bits.
func signExtend(v uint32, bits uint) uint32 {
	shift := 32 - bits
	return uint32(int32(v<<shift) >> shift)
}

// ImmGenBuilder assembles an ImmGen.
type ImmGenBuilder struct {
	gen *ImmGen
}

// NewImmGenBuilder returns a builder with its pins unconnected.
func NewImmGenBuilder() *ImmGenBuilder {
	return &ImmGenBuilder{gen: &ImmGen{
		inst:   port.Hole("immgen.Instruction"),
		opcode: port.Hole("immgen.Opcode"),
	}}
}

// ConnectInstruction binds the full instruction word.
func (b *ImmGenBuilder) ConnectInstruction(w port.Wire) { b.gen.inst = w }

// ConnectOpcode binds the opcode field used to select the encoding.
func (b *ImmGenBuilder) ConnectOpcode(w port.Wire) { b.gen.opcode = w }

// Alloc returns the wire for the generated immediate.
func (b *ImmGenBuilder) Alloc() port.Wire { return port.Of(b.gen) }
