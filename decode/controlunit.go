package decode

import "rv32isim/port"

// WbSel selects the write-back source, per spec.md §4.10.
type WbSel uint32

// Write-back sources.
const (
	WbSelNpc WbSel = iota
	WbSelAlu
	WbSelMem
)

// signals is the decoded control word for one opcode/funct3/funct7
// combination - the canonical textbook RV32I control table named in
// spec.md §4.10. An opcode this table does not recognize decodes to the
// all-zero no-op vector, per spec.md §7 ("decoder emits a no-op control
// vector for unknown opcodes").
type signals struct {
	regWrite, memRead, memWrite uint32
	branch, jal, jalr           uint32
	aluSrcPc, aluSrcImm         uint32
	aluSrcZero                  uint32
	aluCtrl                     uint32
	wbSel                       WbSel
	branchType                  uint32
}

func decodeControl(opcode, funct3, funct7 uint32) signals {
	switch opcode {
	case OpcodeLoad:
		return signals{regWrite: 1, memRead: 1, aluSrcImm: 1, wbSel: WbSelMem, aluCtrl: uint32(aluADD)}
	case OpcodeStore:
		return signals{memWrite: 1, aluSrcImm: 1, aluCtrl: uint32(aluADD)}
	case OpcodeBranch:
		return signals{branch: 1, branchType: funct3, aluSrcPc: 1, aluSrcImm: 1, aluCtrl: uint32(aluADD)}
	case OpcodeJal:
		return signals{regWrite: 1, jal: 1, aluSrcPc: 1, aluSrcImm: 1, wbSel: WbSelNpc, aluCtrl: uint32(aluADD)}
	case OpcodeJalr:
		return signals{regWrite: 1, jal: 1, jalr: 1, aluSrcImm: 1, wbSel: WbSelNpc, aluCtrl: uint32(aluADD)}
	case OpcodeAuipc:
		return signals{regWrite: 1, aluSrcPc: 1, aluSrcImm: 1, wbSel: WbSelAlu, aluCtrl: uint32(aluADD)}
	case OpcodeLui:
		// rd := imm: ALU Op2 is the immediate, Op1 is forced to a real
		// zero constant via aluSrcZero rather than the rs1 read, since a
		// U-type encoding's bits[19:15] are immediate bits, not rs1.
		return signals{regWrite: 1, aluSrcImm: 1, aluSrcZero: 1, wbSel: WbSelAlu, aluCtrl: uint32(aluADD)}
	case OpcodeOpImm:
		return signals{regWrite: 1, aluSrcImm: 1, wbSel: WbSelAlu, aluCtrl: uint32(opImmAluCtrl(funct3, funct7))}
	case OpcodeOp:
		return signals{regWrite: 1, wbSel: WbSelAlu, aluCtrl: uint32(opAluCtrl(funct3, funct7))}
	default:
		return signals{}
	}
}

// aluCtrlCode mirrors alu.Ctrl without importing package alu, so decode has
// no dependency on the functional-unit packages it feeds - only
// pipeline wires decode's AluCtrl output into alu.Builder.ConnectCtrl.
type aluCtrlCode uint32

const (
	aluAND aluCtrlCode = iota
	aluADD
	aluOR
	aluXOR
	aluSLL
	aluSRL
	aluSRA
	aluSUB
	aluSLT
	aluSLTU
)

func opAluCtrl(funct3, funct7 uint32) aluCtrlCode {
	switch funct3 {
	case 0x0:
		if funct7 == 0x20 {
			return aluSUB
		}
		return aluADD
	case 0x1:
		return aluSLL
	case 0x2:
		return aluSLT
	case 0x3:
		return aluSLTU
	case 0x4:
		return aluXOR
	case 0x5:
		if funct7 == 0x20 {
			return aluSRA
		}
		return aluSRL
	case 0x6:
		return aluOR
	case 0x7:
		return aluAND
	default:
		return aluADD
	}
}

func opImmAluCtrl(funct3, funct7 uint32) aluCtrlCode {
	if funct3 == 0x0 {
		return aluADD // ADDI never subtracts.
	}
	return opAluCtrl(funct3, funct7)
}

// ControlUnit is the combinational opcode/funct3/funct7 decoder
// producing every EX/MEM/WB control signal named in spec.md §4.10.
type ControlUnit struct {
	opcode, funct3, funct7 port.Wire
}

func (c *ControlUnit) decode() signals {
	return decodeControl(c.opcode.Read(), c.funct3.Read(), c.funct7.Read())
}

type cuField struct {
	cu  *ControlUnit
	get func(signals) uint32
}

// Read implements port.Port.
func (f cuField) Read() uint32 { return f.get(f.cu.decode()) }

// ControlUnitBuilder assembles a ControlUnit.
type ControlUnitBuilder struct {
	cu *ControlUnit
}

// NewControlUnitBuilder returns a builder with its pins unconnected.
func NewControlUnitBuilder() *ControlUnitBuilder {
	return &ControlUnitBuilder{cu: &ControlUnit{
		opcode: port.Hole("controlunit.Opcode"),
		funct3: port.Hole("controlunit.Funct3"),
		funct7: port.Hole("controlunit.Funct7"),
	}}
}

// ConnectOpcode binds the opcode field.
func (b *ControlUnitBuilder) ConnectOpcode(w port.Wire) { b.cu.opcode = w }

// ConnectFunct3 binds the funct3 field.
func (b *ControlUnitBuilder) ConnectFunct3(w port.Wire) { b.cu.funct3 = w }

// ConnectFunct7 binds the funct7 field.
func (b *ControlUnitBuilder) ConnectFunct7(w port.Wire) { b.cu.funct7 = w }

func (b *ControlUnitBuilder) field(get func(signals) uint32) port.Wire {
	return port.Of(cuField{b.cu, get})
}

// AllocRegWrite returns the RegWrite output.
func (b *ControlUnitBuilder) AllocRegWrite() port.Wire {
	return b.field(func(s signals) uint32 { return s.regWrite })
}

// AllocMemRead returns the MemRead output.
func (b *ControlUnitBuilder) AllocMemRead() port.Wire {
	return b.field(func(s signals) uint32 { return s.memRead })
}

// AllocMemWrite returns the MemWrite output.
func (b *ControlUnitBuilder) AllocMemWrite() port.Wire {
	return b.field(func(s signals) uint32 { return s.memWrite })
}

// AllocBranch returns the Branch output.
func (b *ControlUnitBuilder) AllocBranch() port.Wire {
	return b.field(func(s signals) uint32 { return s.branch })
}

// AllocJal returns the Jal output.
func (b *ControlUnitBuilder) AllocJal() port.Wire {
	return b.field(func(s signals) uint32 { return s.jal })
}

// AllocJalr returns the Jalr output.
func (b *ControlUnitBuilder) AllocJalr() port.Wire {
	return b.field(func(s signals) uint32 { return s.jalr })
}

// AllocAluSrcPc returns the AluSrcPc output.
func (b *ControlUnitBuilder) AllocAluSrcPc() port.Wire {
	return b.field(func(s signals) uint32 { return s.aluSrcPc })
}

// AllocAluSrcImm returns the AluSrcImm output.
func (b *ControlUnitBuilder) AllocAluSrcImm() port.Wire {
	return b.field(func(s signals) uint32 { return s.aluSrcImm })
}

// AllocAluSrcZero returns the AluSrcZero output: forces ALU Op1 to a
// real zero constant, overriding AluSrcPc, for opcodes (LUI) whose
// decoded "rs1" index is actually part of the immediate.
func (b *ControlUnitBuilder) AllocAluSrcZero() port.Wire {
	return b.field(func(s signals) uint32 { return s.aluSrcZero })
}

// AllocAluCtrl returns the 4-bit AluCtrl output.
func (b *ControlUnitBuilder) AllocAluCtrl() port.Wire {
	return b.field(func(s signals) uint32 { return s.aluCtrl })
}

// AllocWbSel returns the WbSel output.
func (b *ControlUnitBuilder) AllocWbSel() port.Wire {
	return b.field(func(s signals) uint32 { return uint32(s.wbSel) })
}

// AllocBranchType returns the BranchType output.
func (b *ControlUnitBuilder) AllocBranchType() port.Wire {
	return b.field(func(s signals) uint32 { return s.branchType })
}
