// Package pipeline assembles the five RV32I pipeline stages and the
// four separator register bundles between them into the complete
// datapath, per spec.md §4.12-4.15.
package pipeline

import (
	"rv32isim/alu"
	"rv32isim/component"
	"rv32isim/forward"
	"rv32isim/port"
)

// ExStage is the execute stage: the ALU, the branch/jump resolver, the
// EX-internal forwarding unit, and the two operand multiplexers that
// pick each operand's value - register file, EX/MEM result, or MEM/WB
// result - before it reaches the ALU or the branch unit.
//
// Grounded closely on
// original_source/src/simulator/rv32i/ex_stage.rs's ExStageBuilder
// wiring: fwd_mux_1/fwd_mux_2 select on the forwarding unit's two
// outputs, pc_sel/imm_sel pick the ALU's two operands, and the branch
// unit compares the same forwarded values the fwd muxes produce.
type ExStageBuilder struct {
	fwdMux1, fwdMux2 *component.MuxBuilder
	pcSel, immSel    *component.MuxBuilder
	branch           *alu.BranchBuilder
	forward          *forward.Builder
	alu              *alu.Builder

	aluSrcPc, aluSrcZero port.Wire
}

// aluOp1Sel picks pcSel's select code from the two upstream control
// bits: AluSrcZero takes priority over AluSrcPc, since LUI (the one
// opcode that sets it) always leaves AluSrcPc at its zero default.
type aluOp1Sel struct {
	aluSrcPc, aluSrcZero *port.Wire
}

// Read implements port.Port.
func (s aluOp1Sel) Read() uint32 {
	if s.aluSrcZero.Read() == 1 {
		return 2
	}
	if s.aluSrcPc.Read() == 1 {
		return 1
	}
	return 0
}

// NewExStageBuilder wires the EX stage's internal combinational graph
// and returns a builder ready for its external Connect calls.
func NewExStageBuilder() *ExStageBuilder {
	b := &ExStageBuilder{
		fwdMux1:    component.NewMuxBuilder(),
		fwdMux2:    component.NewMuxBuilder(),
		pcSel:      component.NewMuxBuilder(),
		immSel:     component.NewMuxBuilder(),
		branch:     alu.NewBranchBuilder(),
		forward:    forward.NewBuilder(),
		alu:        alu.NewBuilder(),
		aluSrcPc:   port.Hole("exstage.AluSrcPc"),
		aluSrcZero: port.Hole("exstage.AluSrcZero"),
	}
	b.fwdMux1.ConnectSelect(b.forward.AllocForward1())
	b.fwdMux2.ConnectSelect(b.forward.AllocForward2())
	b.branch.ConnectOp1(b.fwdMux1.Alloc())
	b.branch.ConnectOp2(b.fwdMux2.Alloc())
	b.pcSel.ConnectIn(0, b.fwdMux1.Alloc())
	b.pcSel.ConnectIn(2, component.NewConst(0))
	b.pcSel.ConnectSelect(port.Of(aluOp1Sel{aluSrcPc: &b.aluSrcPc, aluSrcZero: &b.aluSrcZero}))
	b.alu.ConnectOp1(b.pcSel.Alloc())
	b.alu.ConnectOp2(b.immSel.Alloc())
	b.immSel.ConnectIn(0, b.fwdMux2.Alloc())
	return b
}

// ConnectJal binds the unconditional-jump control bit.
func (b *ExStageBuilder) ConnectJal(w port.Wire) { b.branch.ConnectJal(w) }

// ConnectBranchEn binds the conditional-branch-family control bit.
func (b *ExStageBuilder) ConnectBranchEn(w port.Wire) { b.branch.ConnectBranchSel(w) }

// ConnectPcSel binds the AluSrcPc control bit feeding the ALU op1
// selector (0 = forwarded rs1, 1 = PC, 2 = zero - see ConnectAluSrcZero).
func (b *ExStageBuilder) ConnectPcSel(w port.Wire) { b.aluSrcPc = w }

// ConnectAluSrcZero binds the AluSrcZero control bit, which overrides
// AluSrcPc and forces the ALU op1 selector to the zero-constant input.
func (b *ExStageBuilder) ConnectAluSrcZero(w port.Wire) { b.aluSrcZero = w }

// ConnectImmSel binds the ALU op2 selector (0 = forwarded rs2, 1 = imm).
func (b *ExStageBuilder) ConnectImmSel(w port.Wire) { b.immSel.ConnectSelect(w) }

// ConnectAluCtrl binds the ALU opcode.
func (b *ExStageBuilder) ConnectAluCtrl(w port.Wire) { b.alu.ConnectCtrl(w) }

// ConnectBranchType binds the branch condition selector.
func (b *ExStageBuilder) ConnectBranchType(w port.Wire) { b.branch.ConnectBranchType(w) }

// ConnectPc binds the stage's PC input (pc_sel's In(1)).
func (b *ExStageBuilder) ConnectPc(w port.Wire) { b.pcSel.ConnectIn(1, w) }

// ConnectRs1Data binds the register file's rs1 value (pre-forward).
func (b *ExStageBuilder) ConnectRs1Data(w port.Wire) { b.fwdMux1.ConnectIn(0, w) }

// ConnectRs2Data binds the register file's rs2 value (pre-forward).
func (b *ExStageBuilder) ConnectRs2Data(w port.Wire) { b.fwdMux2.ConnectIn(0, w) }

// ConnectImm binds the decoded immediate (imm_sel's In(1)).
func (b *ExStageBuilder) ConnectImm(w port.Wire) { b.immSel.ConnectIn(1, w) }

// ConnectRs1 binds the rs1 register index, for the forwarding unit.
func (b *ExStageBuilder) ConnectRs1(w port.Wire) { b.forward.ConnectRs1(w) }

// ConnectRs2 binds the rs2 register index, for the forwarding unit.
func (b *ExStageBuilder) ConnectRs2(w port.Wire) { b.forward.ConnectRs2(w) }

// ConnectRdMem binds the EX/MEM separator's destination register.
func (b *ExStageBuilder) ConnectRdMem(w port.Wire) { b.forward.ConnectRdMem(w) }

// ConnectRdMemWrite binds the EX/MEM separator's RegWrite signal.
func (b *ExStageBuilder) ConnectRdMemWrite(w port.Wire) { b.forward.ConnectRdMemWrite(w) }

// ConnectRdMemData binds the EX/MEM separator's ALU result, feeding
// both forwarding muxes' second input.
func (b *ExStageBuilder) ConnectRdMemData(w port.Wire) {
	b.fwdMux1.ConnectIn(1, w)
	b.fwdMux2.ConnectIn(1, w)
}

// ConnectRdWb binds the MEM/WB separator's destination register.
func (b *ExStageBuilder) ConnectRdWb(w port.Wire) { b.forward.ConnectRdWb(w) }

// ConnectRdWbWrite binds the MEM/WB separator's RegWrite signal.
func (b *ExStageBuilder) ConnectRdWbWrite(w port.Wire) { b.forward.ConnectRdWbWrite(w) }

// ConnectRdWbData binds the MEM/WB separator's write-back data,
// feeding both forwarding muxes' third input.
func (b *ExStageBuilder) ConnectRdWbData(w port.Wire) {
	b.fwdMux1.ConnectIn(2, w)
	b.fwdMux2.ConnectIn(2, w)
}

// AllocBranchSel returns the wire for whether the branch/jump is
// taken.
func (b *ExStageBuilder) AllocBranchSel() port.Wire { return b.branch.Alloc() }

// AllocAluRes returns the wire for the ALU's result.
func (b *ExStageBuilder) AllocAluRes() port.Wire { return b.alu.Alloc() }

// AllocRs2Data returns the wire for rs2's post-forward value, used as
// the store data routed into the MEM stage.
func (b *ExStageBuilder) AllocRs2Data() port.Wire { return b.fwdMux2.Alloc() }

// AllocForward1 exposes the forwarding decision for rs1, for debug
// dumps.
func (b *ExStageBuilder) AllocForward1() port.Wire { return b.forward.AllocForward1() }

// AllocForward2 exposes the forwarding decision for rs2, for debug
// dumps.
func (b *ExStageBuilder) AllocForward2() port.Wire { return b.forward.AllocForward2() }
