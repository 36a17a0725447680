package pipeline

import (
	"rv32isim/control"
	"rv32isim/decode"
	"rv32isim/port"
	"rv32isim/regfile"
)

// IdStage is the instruction-decode stage: the decoder, immediate
// generator, control unit, and register file, per spec.md §4.12.
type IdStage struct {
	control.Group
	control.Base

	regfile *regfile.RegisterFile
}

// Debug implements control.Control.
func (s *IdStage) Debug() string { return "ID :\n" + s.regfile.Debug() }

// IdStageBuilder assembles an IdStage.
type IdStageBuilder struct {
	decoder *decode.DecoderBuilder
	immGen  *decode.ImmGenBuilder
	ctrl    *decode.ControlUnitBuilder
	regfile *regfile.Builder
}

// NewIdStageBuilder wires the ID stage's internal combinational graph.
func NewIdStageBuilder() *IdStageBuilder {
	b := &IdStageBuilder{
		decoder: decode.NewDecoderBuilder(),
		immGen:  decode.NewImmGenBuilder(),
		ctrl:    decode.NewControlUnitBuilder(),
		regfile: regfile.NewBuilder(),
	}
	opcode := b.decoder.AllocOpcode()
	b.immGen.ConnectOpcode(opcode)
	b.ctrl.ConnectOpcode(opcode)
	b.ctrl.ConnectFunct3(b.decoder.AllocFunct3())
	b.ctrl.ConnectFunct7(b.decoder.AllocFunct7())
	b.regfile.ConnectRs1(b.decoder.AllocRs1())
	b.regfile.ConnectRs2(b.decoder.AllocRs2())
	return b
}

// ConnectInstruction binds the fetched instruction word.
func (b *IdStageBuilder) ConnectInstruction(w port.Wire) {
	b.decoder.ConnectInstruction(w)
	b.immGen.ConnectInstruction(w)
}

// ConnectWbRd binds the write-back destination register index, latched
// in the MEM/WB separator.
func (b *IdStageBuilder) ConnectWbRd(w port.Wire) { b.regfile.ConnectRd(w) }

// ConnectWbData binds the write-back datum produced by the WB stage.
func (b *IdStageBuilder) ConnectWbData(w port.Wire) { b.regfile.ConnectRdData(w) }

// ConnectWbRegWrite binds the write-back RegWrite control, latched in
// the MEM/WB separator.
func (b *IdStageBuilder) ConnectWbRegWrite(w port.Wire) { b.regfile.ConnectRegWrite(w) }

// AllocRegWrite returns the RegWrite control output.
func (b *IdStageBuilder) AllocRegWrite() port.Wire { return b.ctrl.AllocRegWrite() }

// AllocMemRead returns the MemRead control output.
func (b *IdStageBuilder) AllocMemRead() port.Wire { return b.ctrl.AllocMemRead() }

// AllocMemWrite returns the MemWrite control output.
func (b *IdStageBuilder) AllocMemWrite() port.Wire { return b.ctrl.AllocMemWrite() }

// AllocBranch returns the Branch control output.
func (b *IdStageBuilder) AllocBranch() port.Wire { return b.ctrl.AllocBranch() }

// AllocJal returns the Jal control output.
func (b *IdStageBuilder) AllocJal() port.Wire { return b.ctrl.AllocJal() }

// AllocJalr returns the Jalr control output.
func (b *IdStageBuilder) AllocJalr() port.Wire { return b.ctrl.AllocJalr() }

// AllocAluSrcPc returns the AluSrcPc control output.
func (b *IdStageBuilder) AllocAluSrcPc() port.Wire { return b.ctrl.AllocAluSrcPc() }

// AllocAluSrcImm returns the AluSrcImm control output.
func (b *IdStageBuilder) AllocAluSrcImm() port.Wire { return b.ctrl.AllocAluSrcImm() }

// AllocAluSrcZero returns the AluSrcZero control output.
func (b *IdStageBuilder) AllocAluSrcZero() port.Wire { return b.ctrl.AllocAluSrcZero() }

// AllocAluCtrl returns the 4-bit ALU opcode output. Its encoding
// matches alu.Ctrl exactly; pipeline wiring connects this directly to
// an alu.Builder's Ctrl input without translation.
func (b *IdStageBuilder) AllocAluCtrl() port.Wire { return b.ctrl.AllocAluCtrl() }

// AllocWbSel returns the write-back source selector output.
func (b *IdStageBuilder) AllocWbSel() port.Wire { return b.ctrl.AllocWbSel() }

// AllocBranchType returns the branch condition selector output.
func (b *IdStageBuilder) AllocBranchType() port.Wire { return b.ctrl.AllocBranchType() }

// AllocRs1Data returns the register file's rs1 read.
func (b *IdStageBuilder) AllocRs1Data() port.Wire { return b.regfile.AllocRs1Data() }

// AllocRs2Data returns the register file's rs2 read.
func (b *IdStageBuilder) AllocRs2Data() port.Wire { return b.regfile.AllocRs2Data() }

// AllocImm returns the decoded immediate.
func (b *IdStageBuilder) AllocImm() port.Wire { return b.immGen.Alloc() }

// AllocRs1 returns the rs1 register index.
func (b *IdStageBuilder) AllocRs1() port.Wire { return b.decoder.AllocRs1() }

// AllocRs2 returns the rs2 register index.
func (b *IdStageBuilder) AllocRs2() port.Wire { return b.decoder.AllocRs2() }

// AllocRd returns the rd register index.
func (b *IdStageBuilder) AllocRd() port.Wire { return b.decoder.AllocRd() }

// Build freezes the stage's sequential component, the register file.
func (b *IdStageBuilder) Build() *IdStage {
	s := &IdStage{regfile: b.regfile.Build()}
	s.Add(s.regfile)
	return s
}

// PokeRegister seeds x[idx] outside the normal write path; see
// regfile.RegisterFile.Poke.
func (s *IdStage) PokeRegister(idx, v uint32) { s.regfile.Poke(idx, v) }
