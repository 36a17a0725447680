// Package decode implements the three purely combinational ID-stage
// functional units named in spec.md §4.10: the instruction decoder, the
// immediate generator, and the control-signal unit.
package decode

import "rv32isim/port"

// RV32I base opcodes (instruction bits [6:0]).
const (
	OpcodeLoad   = 0x03
	OpcodeOpImm  = 0x13
	OpcodeAuipc  = 0x17
	OpcodeStore  = 0x23
	OpcodeOp     = 0x33
	OpcodeLui    = 0x37
	OpcodeBranch = 0x63
	OpcodeJalr   = 0x67
	OpcodeJal    = 0x6F
)

// field is a combinational port that extracts one bitfield from the
// decoder's instruction wire, read at Read time so a field allocated
// before ConnectInstruction still sees the connected instruction.
type field struct {
	dec   *Decoder
	shift uint
	mask  uint32
}

// Read implements port.Port.
func (f field) Read() uint32 { return (f.dec.inst.Read() >> f.shift) & f.mask }

// Decoder splits a 32-bit RV32I instruction into opcode, rd, rs1, rs2,
// funct3 and funct7, each exposed as its own port.
type Decoder struct {
	inst port.Wire
}

// DecoderBuilder assembles a Decoder.
type DecoderBuilder struct {
	dec *Decoder
}

// NewDecoderBuilder returns a builder with the instruction pin
// unconnected.
func NewDecoderBuilder() *DecoderBuilder {
	return &DecoderBuilder{dec: &Decoder{inst: port.Hole("decoder.Instruction")}}
}

// ConnectInstruction binds the 32-bit instruction word.
func (b *DecoderBuilder) ConnectInstruction(w port.Wire) { b.dec.inst = w }

// AllocOpcode returns the wire for bits [6:0].
func (b *DecoderBuilder) AllocOpcode() port.Wire {
	return port.Of(field{b.dec, 0, 0x7F})
}

// AllocRd returns the wire for bits [11:7].
func (b *DecoderBuilder) AllocRd() port.Wire {
	return port.Of(field{b.dec, 7, 0x1F})
}

// AllocFunct3 returns the wire for bits [14:12].
func (b *DecoderBuilder) AllocFunct3() port.Wire {
	return port.Of(field{b.dec, 12, 0x7})
}

// AllocRs1 returns the wire for bits [19:15].
func (b *DecoderBuilder) AllocRs1() port.Wire {
	return port.Of(field{b.dec, 15, 0x1F})
}

// AllocRs2 returns the wire for bits [24:20].
func (b *DecoderBuilder) AllocRs2() port.Wire {
	return port.Of(field{b.dec, 20, 0x1F})
}

// AllocFunct7 returns the wire for bits [31:25].
func (b *DecoderBuilder) AllocFunct7() port.Wire {
	return port.Of(field{b.dec, 25, 0x7F})
}
