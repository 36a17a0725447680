package pipeline

import (
	"fmt"

	"rv32isim/component"
	"rv32isim/control"
	"rv32isim/port"
)

// IdEx is the ID/EX separator: it latches every control signal and
// operand the EX stage needs, plus Pc/Npc pass-through for the
// PC-relative and link-register computations, per spec.md §4.13.
type IdEx struct {
	control.Group
	control.Base

	pc, npc                     *component.Register
	regWrite, memRead, memWrite *component.Register
	branch, jal, jalr           *component.Register
	aluSrcPc, aluSrcImm         *component.Register
	aluSrcZero                  *component.Register
	aluCtrl, branchType, wbSel  *component.Register
	rs1Data, rs2Data, imm       *component.Register
	rs1, rs2, rd                *component.Register
	asm                         *component.AsmRegister
}

// Debug implements control.Control.
func (s *IdEx) Debug() string {
	return fmt.Sprintf(
		"ID/EX : %s\nPC\t\t: 0x%08X NPC\t\t: 0x%08X REG_WRITE\t: 0x%08X\n"+
			"MEM_READ\t: 0x%08X MEM_WRITE\t: 0x%08X BRANCH\t\t: 0x%08X\n"+
			"JAL\t\t: 0x%08X JALR\t\t: 0x%08X ALU_SRC_PC\t: 0x%08X\n"+
			"ALU_SRC_IMM\t: 0x%08X ALU_SRC_ZERO\t: 0x%08X ALU_CTRL\t: 0x%08X\n"+
			"BRANCH_TYPE\t: 0x%08X WB_SEL\t\t: 0x%08X RS1_DATA\t: 0x%08X\n"+
			"RS2_DATA\t: 0x%08X IMM\t\t: 0x%08X RS1\t\t: 0x%08X\n"+
			"RS2\t\t: 0x%08X RD\t\t: 0x%08X",
		s.asm.Read(), s.pc.Read(), s.npc.Read(), s.regWrite.Read(),
		s.memRead.Read(), s.memWrite.Read(), s.branch.Read(),
		s.jal.Read(), s.jalr.Read(), s.aluSrcPc.Read(),
		s.aluSrcImm.Read(), s.aluSrcZero.Read(), s.aluCtrl.Read(),
		s.branchType.Read(), s.wbSel.Read(), s.rs1Data.Read(),
		s.rs2Data.Read(), s.imm.Read(), s.rs1.Read(),
		s.rs2.Read(), s.rd.Read())
}

// IdExBuilder assembles an IdEx separator.
type IdExBuilder struct {
	pc, npc                     *component.RegisterBuilder
	regWrite, memRead, memWrite *component.RegisterBuilder
	branch, jal, jalr           *component.RegisterBuilder
	aluSrcPc, aluSrcImm         *component.RegisterBuilder
	aluSrcZero                  *component.RegisterBuilder
	aluCtrl, branchType, wbSel  *component.RegisterBuilder
	rs1Data, rs2Data, imm       *component.RegisterBuilder
	rs1, rs2, rd                *component.RegisterBuilder
	asm                         *component.AsmRegisterBuilder
}

// NewIdExBuilder returns a builder with every pin unconnected.
func NewIdExBuilder() *IdExBuilder {
	return &IdExBuilder{
		pc:          component.NewRegisterBuilder("ID/EX.Pc", 0),
		npc:         component.NewRegisterBuilder("ID/EX.Npc", 0),
		regWrite:    component.NewRegisterBuilder("ID/EX.RegWrite", 0),
		memRead:     component.NewRegisterBuilder("ID/EX.MemRead", 0),
		memWrite:    component.NewRegisterBuilder("ID/EX.MemWrite", 0),
		branch:      component.NewRegisterBuilder("ID/EX.Branch", 0),
		jal:         component.NewRegisterBuilder("ID/EX.Jal", 0),
		jalr:        component.NewRegisterBuilder("ID/EX.Jalr", 0),
		aluSrcPc:    component.NewRegisterBuilder("ID/EX.AluSrcPc", 0),
		aluSrcImm:   component.NewRegisterBuilder("ID/EX.AluSrcImm", 0),
		aluSrcZero:  component.NewRegisterBuilder("ID/EX.AluSrcZero", 0),
		aluCtrl:     component.NewRegisterBuilder("ID/EX.AluCtrl", 0),
		branchType:  component.NewRegisterBuilder("ID/EX.BranchType", 0),
		wbSel:       component.NewRegisterBuilder("ID/EX.WbSel", 0),
		rs1Data:     component.NewRegisterBuilder("ID/EX.Rs1Data", 0),
		rs2Data:     component.NewRegisterBuilder("ID/EX.Rs2Data", 0),
		imm:         component.NewRegisterBuilder("ID/EX.Imm", 0),
		rs1:         component.NewRegisterBuilder("ID/EX.Rs1", 0),
		rs2:         component.NewRegisterBuilder("ID/EX.Rs2", 0),
		rd:          component.NewRegisterBuilder("ID/EX.Rd", 0),
		asm:         component.NewAsmRegisterBuilder(),
	}
}

// ConnectPc binds the incoming PC.
func (b *IdExBuilder) ConnectPc(w port.Wire) { b.pc.ConnectIn(w) }

// ConnectNpc binds the incoming PC+4.
func (b *IdExBuilder) ConnectNpc(w port.Wire) { b.npc.ConnectIn(w) }

// ConnectRegWrite binds the incoming RegWrite control bit.
func (b *IdExBuilder) ConnectRegWrite(w port.Wire) { b.regWrite.ConnectIn(w) }

// ConnectMemRead binds the incoming MemRead control bit.
func (b *IdExBuilder) ConnectMemRead(w port.Wire) { b.memRead.ConnectIn(w) }

// ConnectMemWrite binds the incoming MemWrite control bit.
func (b *IdExBuilder) ConnectMemWrite(w port.Wire) { b.memWrite.ConnectIn(w) }

// ConnectBranch binds the incoming Branch control bit.
func (b *IdExBuilder) ConnectBranch(w port.Wire) { b.branch.ConnectIn(w) }

// ConnectJal binds the incoming Jal control bit.
func (b *IdExBuilder) ConnectJal(w port.Wire) { b.jal.ConnectIn(w) }

// ConnectJalr binds the incoming Jalr control bit.
func (b *IdExBuilder) ConnectJalr(w port.Wire) { b.jalr.ConnectIn(w) }

// ConnectAluSrcPc binds the incoming AluSrcPc control bit.
func (b *IdExBuilder) ConnectAluSrcPc(w port.Wire) { b.aluSrcPc.ConnectIn(w) }

// ConnectAluSrcImm binds the incoming AluSrcImm control bit.
func (b *IdExBuilder) ConnectAluSrcImm(w port.Wire) { b.aluSrcImm.ConnectIn(w) }

// ConnectAluSrcZero binds the incoming AluSrcZero control bit.
func (b *IdExBuilder) ConnectAluSrcZero(w port.Wire) { b.aluSrcZero.ConnectIn(w) }

// ConnectAluCtrl binds the incoming ALU opcode.
func (b *IdExBuilder) ConnectAluCtrl(w port.Wire) { b.aluCtrl.ConnectIn(w) }

// ConnectBranchType binds the incoming branch condition selector.
func (b *IdExBuilder) ConnectBranchType(w port.Wire) { b.branchType.ConnectIn(w) }

// ConnectWbSel binds the incoming write-back selector.
func (b *IdExBuilder) ConnectWbSel(w port.Wire) { b.wbSel.ConnectIn(w) }

// ConnectRs1Data binds the incoming rs1 value from the register file.
func (b *IdExBuilder) ConnectRs1Data(w port.Wire) { b.rs1Data.ConnectIn(w) }

// ConnectRs2Data binds the incoming rs2 value from the register file.
func (b *IdExBuilder) ConnectRs2Data(w port.Wire) { b.rs2Data.ConnectIn(w) }

// ConnectImm binds the incoming decoded immediate.
func (b *IdExBuilder) ConnectImm(w port.Wire) { b.imm.ConnectIn(w) }

// ConnectRs1 binds the incoming rs1 register index.
func (b *IdExBuilder) ConnectRs1(w port.Wire) { b.rs1.ConnectIn(w) }

// ConnectRs2 binds the incoming rs2 register index.
func (b *IdExBuilder) ConnectRs2(w port.Wire) { b.rs2.ConnectIn(w) }

// ConnectRd binds the incoming destination register index.
func (b *IdExBuilder) ConnectRd(w port.Wire) { b.rd.ConnectIn(w) }

// ConnectAsm binds the incoming disassembly string.
func (b *IdExBuilder) ConnectAsm(w component.AsmWire) { b.asm.ConnectIn(w) }

// ConnectEnable binds the shared Enable line for every register in the
// bundle.
func (b *IdExBuilder) ConnectEnable(w port.Wire) {
	for _, r := range b.registers() {
		r.ConnectEnable(w)
	}
	b.asm.ConnectEnable(w)
}

// ConnectClear binds the shared Clear line for every register in the
// bundle.
func (b *IdExBuilder) ConnectClear(w port.Wire) {
	for _, r := range b.registers() {
		r.ConnectClear(w)
	}
	b.asm.ConnectClear(w)
}

func (b *IdExBuilder) registers() []*component.RegisterBuilder {
	return []*component.RegisterBuilder{
		b.pc, b.npc, b.regWrite, b.memRead, b.memWrite, b.branch, b.jal, b.jalr,
		b.aluSrcPc, b.aluSrcImm, b.aluSrcZero, b.aluCtrl, b.branchType, b.wbSel,
		b.rs1Data, b.rs2Data, b.imm, b.rs1, b.rs2, b.rd,
	}
}

// AllocPc returns the latched PC output.
func (b *IdExBuilder) AllocPc() port.Wire { return b.pc.Alloc() }

// AllocNpc returns the latched PC+4 output.
func (b *IdExBuilder) AllocNpc() port.Wire { return b.npc.Alloc() }

// AllocRegWrite returns the latched RegWrite output.
func (b *IdExBuilder) AllocRegWrite() port.Wire { return b.regWrite.Alloc() }

// AllocMemRead returns the latched MemRead output.
func (b *IdExBuilder) AllocMemRead() port.Wire { return b.memRead.Alloc() }

// AllocMemWrite returns the latched MemWrite output.
func (b *IdExBuilder) AllocMemWrite() port.Wire { return b.memWrite.Alloc() }

// AllocBranch returns the latched Branch output.
func (b *IdExBuilder) AllocBranch() port.Wire { return b.branch.Alloc() }

// AllocJal returns the latched Jal output.
func (b *IdExBuilder) AllocJal() port.Wire { return b.jal.Alloc() }

// AllocJalr returns the latched Jalr output.
func (b *IdExBuilder) AllocJalr() port.Wire { return b.jalr.Alloc() }

// AllocAluSrcPc returns the latched AluSrcPc output.
func (b *IdExBuilder) AllocAluSrcPc() port.Wire { return b.aluSrcPc.Alloc() }

// AllocAluSrcImm returns the latched AluSrcImm output.
func (b *IdExBuilder) AllocAluSrcImm() port.Wire { return b.aluSrcImm.Alloc() }

// AllocAluSrcZero returns the latched AluSrcZero output.
func (b *IdExBuilder) AllocAluSrcZero() port.Wire { return b.aluSrcZero.Alloc() }

// AllocAluCtrl returns the latched ALU opcode.
func (b *IdExBuilder) AllocAluCtrl() port.Wire { return b.aluCtrl.Alloc() }

// AllocBranchType returns the latched branch condition selector.
func (b *IdExBuilder) AllocBranchType() port.Wire { return b.branchType.Alloc() }

// AllocWbSel returns the latched write-back selector.
func (b *IdExBuilder) AllocWbSel() port.Wire { return b.wbSel.Alloc() }

// AllocRs1Data returns the latched rs1 value.
func (b *IdExBuilder) AllocRs1Data() port.Wire { return b.rs1Data.Alloc() }

// AllocRs2Data returns the latched rs2 value.
func (b *IdExBuilder) AllocRs2Data() port.Wire { return b.rs2Data.Alloc() }

// AllocImm returns the latched immediate.
func (b *IdExBuilder) AllocImm() port.Wire { return b.imm.Alloc() }

// AllocRs1 returns the latched rs1 register index.
func (b *IdExBuilder) AllocRs1() port.Wire { return b.rs1.Alloc() }

// AllocRs2 returns the latched rs2 register index.
func (b *IdExBuilder) AllocRs2() port.Wire { return b.rs2.Alloc() }

// AllocRd returns the latched destination register index.
func (b *IdExBuilder) AllocRd() port.Wire { return b.rd.Alloc() }

// AllocAsm returns the latched disassembly-text output.
func (b *IdExBuilder) AllocAsm() component.AsmWire { return b.asm.Alloc() }

// Build freezes the bundle.
func (b *IdExBuilder) Build() *IdEx {
	s := &IdEx{
		pc: b.pc.Build(), npc: b.npc.Build(),
		regWrite: b.regWrite.Build(), memRead: b.memRead.Build(), memWrite: b.memWrite.Build(),
		branch: b.branch.Build(), jal: b.jal.Build(), jalr: b.jalr.Build(),
		aluSrcPc: b.aluSrcPc.Build(), aluSrcImm: b.aluSrcImm.Build(), aluSrcZero: b.aluSrcZero.Build(),
		aluCtrl: b.aluCtrl.Build(), branchType: b.branchType.Build(), wbSel: b.wbSel.Build(),
		rs1Data: b.rs1Data.Build(), rs2Data: b.rs2Data.Build(), imm: b.imm.Build(),
		rs1: b.rs1.Build(), rs2: b.rs2.Build(), rd: b.rd.Build(),
		asm: b.asm.Build(),
	}
	s.Add(s.pc)
	s.Add(s.npc)
	s.Add(s.regWrite)
	s.Add(s.memRead)
	s.Add(s.memWrite)
	s.Add(s.branch)
	s.Add(s.jal)
	s.Add(s.jalr)
	s.Add(s.aluSrcPc)
	s.Add(s.aluSrcImm)
	s.Add(s.aluSrcZero)
	s.Add(s.aluCtrl)
	s.Add(s.branchType)
	s.Add(s.wbSel)
	s.Add(s.rs1Data)
	s.Add(s.rs2Data)
	s.Add(s.imm)
	s.Add(s.rs1)
	s.Add(s.rs2)
	s.Add(s.rd)
	s.Add(s.asm)
	return s
}
