package decode

import (
	"testing"

	"rv32isim/component"
)

// 0xe5010113 = addi x2, x2, -432
func TestDecoderAddi(t *testing.T) {
	db := NewDecoderBuilder()
	var c component.Consts
	db.ConnectInstruction(c.Alloc(0xe5010113))
	if got, want := db.AllocOpcode().Read(), uint32(OpcodeOpImm); got != want {
		t.Errorf("opcode = 0x%X, want 0x%X", got, want)
	}
	if got, want := db.AllocRd().Read(), uint32(2); got != want {
		t.Errorf("rd = %d, want %d", got, want)
	}
	if got, want := db.AllocRs1().Read(), uint32(2); got != want {
		t.Errorf("rs1 = %d, want %d", got, want)
	}
	if got, want := db.AllocFunct3().Read(), uint32(0); got != want {
		t.Errorf("funct3 = %d, want %d", got, want)
	}
}

// 0x1a812623 = sw x8, 428(x2)
func TestDecoderSw(t *testing.T) {
	db := NewDecoderBuilder()
	var c component.Consts
	db.ConnectInstruction(c.Alloc(0x1a812623))
	if got, want := db.AllocOpcode().Read(), uint32(OpcodeStore); got != want {
		t.Errorf("opcode = 0x%X, want 0x%X", got, want)
	}
	if got, want := db.AllocRs1().Read(), uint32(2); got != want {
		t.Errorf("rs1 = %d, want %d", got, want)
	}
	if got, want := db.AllocRs2().Read(), uint32(8); got != want {
		t.Errorf("rs2 = %d, want %d", got, want)
	}
}

func TestImmGenIType(t *testing.T) {
	gb := NewImmGenBuilder()
	var c component.Consts
	gb.ConnectInstruction(c.Alloc(0xe5010113)) // addi x2,x2,-432
	gb.ConnectOpcode(c.Alloc(OpcodeOpImm))
	if got, want := gb.Alloc().Read(), uint32(0xFFFFFE50); got != want {
		t.Errorf("imm = 0x%X, want 0x%X", got, want)
	}
}

func TestImmGenSType(t *testing.T) {
	gb := NewImmGenBuilder()
	var c component.Consts
	gb.ConnectInstruction(c.Alloc(0x1a812623)) // sw x8, 428(x2)
	gb.ConnectOpcode(c.Alloc(OpcodeStore))
	if got, want := gb.Alloc().Read(), uint32(428); got != want {
		t.Errorf("imm = %d, want %d", got, want)
	}
}

// 0x0280006f = jal x0, 40
func TestImmGenJType(t *testing.T) {
	gb := NewImmGenBuilder()
	var c component.Consts
	gb.ConnectInstruction(c.Alloc(0x0280006f))
	gb.ConnectOpcode(c.Alloc(OpcodeJal))
	if got, want := gb.Alloc().Read(), uint32(40); got != want {
		t.Errorf("imm = %d, want %d", got, want)
	}
}

func TestImmGenBTypeNegative(t *testing.T) {
	gb := NewImmGenBuilder()
	var c component.Consts
	// beq x1,x2,-16 : imm=-16, funct3=0, rs1=1, rs2=2, opcode=0x63
	// imm[12|10:5]=1111111, imm[4:1|11]=10001
	inst := uint32(OpcodeBranch) | (0b10001 << 7) | (0 << 12) | (1 << 15) | (2 << 20) | (0b1111111 << 25)
	gb.ConnectInstruction(c.Alloc(inst))
	gb.ConnectOpcode(c.Alloc(OpcodeBranch))
	if got, want := int32(gb.Alloc().Read()), int32(-16); got != want {
		t.Errorf("imm = %d, want %d", got, want)
	}
}

func TestControlUnitLoad(t *testing.T) {
	cb := NewControlUnitBuilder()
	var c component.Consts
	cb.ConnectOpcode(c.Alloc(OpcodeLoad))
	cb.ConnectFunct3(c.Alloc(0x2))
	cb.ConnectFunct7(c.Alloc(0))
	if got := cb.AllocRegWrite().Read(); got != 1 {
		t.Errorf("RegWrite = %d, want 1", got)
	}
	if got := cb.AllocMemRead().Read(); got != 1 {
		t.Errorf("MemRead = %d, want 1", got)
	}
	if got := cb.AllocWbSel().Read(); got != uint32(WbSelMem) {
		t.Errorf("WbSel = %d, want %d", got, WbSelMem)
	}
}

func TestControlUnitRTypeSub(t *testing.T) {
	cb := NewControlUnitBuilder()
	var c component.Consts
	cb.ConnectOpcode(c.Alloc(OpcodeOp))
	cb.ConnectFunct3(c.Alloc(0x0))
	cb.ConnectFunct7(c.Alloc(0x20))
	if got, want := cb.AllocAluCtrl().Read(), uint32(aluSUB); got != want {
		t.Errorf("AluCtrl = %d, want %d", got, want)
	}
}

// TestControlUnitLui checks that LUI forces ALU op1 to the dedicated
// zero source rather than leaving it on the rs1-forward path: bits
// [19:15] of a U-type encoding are immediate bits, not a real rs1
// index, so AluSrcPc must stay 0 and AluSrcZero must be the signal that
// routes op1 to a real zero constant.
func TestControlUnitLui(t *testing.T) {
	cb := NewControlUnitBuilder()
	var c component.Consts
	cb.ConnectOpcode(c.Alloc(OpcodeLui))
	cb.ConnectFunct3(c.Alloc(0))
	cb.ConnectFunct7(c.Alloc(0))
	if got := cb.AllocRegWrite().Read(); got != 1 {
		t.Errorf("RegWrite = %d, want 1", got)
	}
	if got := cb.AllocAluSrcImm().Read(); got != 1 {
		t.Errorf("AluSrcImm = %d, want 1", got)
	}
	if got := cb.AllocAluSrcZero().Read(); got != 1 {
		t.Errorf("AluSrcZero = %d, want 1", got)
	}
	if got := cb.AllocAluSrcPc().Read(); got != 0 {
		t.Errorf("AluSrcPc = %d, want 0", got)
	}
	if got, want := cb.AllocAluCtrl().Read(), uint32(aluADD); got != want {
		t.Errorf("AluCtrl = %d, want %d", got, want)
	}
	if got := cb.AllocWbSel().Read(); got != uint32(WbSelAlu) {
		t.Errorf("WbSel = %d, want %d", got, WbSelAlu)
	}
}

func TestControlUnitUnknownOpcodeIsNoOp(t *testing.T) {
	cb := NewControlUnitBuilder()
	var c component.Consts
	cb.ConnectOpcode(c.Alloc(0x7F)) // not a recognized RV32I opcode
	cb.ConnectFunct3(c.Alloc(0))
	cb.ConnectFunct7(c.Alloc(0))
	if got := cb.AllocRegWrite().Read(); got != 0 {
		t.Errorf("unknown opcode RegWrite = %d, want 0", got)
	}
	if got := cb.AllocMemWrite().Read(); got != 0 {
		t.Errorf("unknown opcode MemWrite = %d, want 0", got)
	}
}
