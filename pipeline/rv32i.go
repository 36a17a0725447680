package pipeline

import (
	"fmt"

	"rv32isim/component"
	"rv32isim/control"
	"rv32isim/port"
)

// Rv32i is the complete five-stage RV32I datapath: the five stages, the
// four separator bundles between them, and the hazard-resolution glue
// (EX-stage forwarding is internal to ExStageBuilder; branch/jump flush
// and load-use stall are wired here, the only logic that reaches across
// more than one separator), per spec.md §4.12-4.14.
type Rv32i struct {
	control.Group
	control.Base

	ifStage  *IfStage
	ifId     *IfId
	idStage  *IdStage
	idEx     *IdEx
	exMem    *ExMem
	memStage *MemStage
	memWb    *MemWb

	branchSel port.Wire
	stall     port.Wire
	aluRes    port.Wire
}

// Debug implements control.Control, concatenating every stage's and
// separator's own report.
func (r *Rv32i) Debug() string {
	return fmt.Sprintf("%s\n%s\n%s\n%s\n%s\n%s\n%s",
		r.ifStage.Debug(), r.ifId.Debug(), r.idStage.Debug(), r.idEx.Debug(),
		r.exMem.Debug(), r.memStage.Debug(), r.memWb.Debug())
}

// BranchTaken reports whether the instruction now in EX resolves as a
// taken branch or jump, i.e. whether the next rising edge redirects
// fetch and flushes IF/ID and ID/EX.
func (r *Rv32i) BranchTaken() bool { return r.branchSel.Read() == 1 }

// Stalled reports whether a load-use hazard is currently detected
// between EX and ID, i.e. whether the next rising edge holds the front
// of the pipeline.
func (r *Rv32i) Stalled() bool { return r.stall.Read() == 1 }

// PC returns the IF stage's current program counter, for a driver's
// halt/progress detection (e.g. a self-loop at the end of a program).
func (r *Rv32i) PC() uint32 { return r.ifStage.pc.Read() }

// PokeRegister seeds x[idx] before the first cycle, the role a C
// runtime's startup stub plays (e.g. initializing the stack pointer)
// which this simulator does not itself execute.
func (r *Rv32i) PokeRegister(idx, v uint32) { r.idStage.PokeRegister(idx, v) }

// PeekRegister returns x[idx]'s current committed value, for tests and
// debug tooling.
func (r *Rv32i) PeekRegister(idx uint32) uint32 { return r.idStage.regfile.Peek(idx) }

// loadUseHazard is the combinational predicate that detects a load in
// EX whose destination is needed, unforwarded, by the instruction now
// in ID: forwarding only reaches as far back as EX/MEM and MEM/WB, so a
// load's result isn't available until the cycle after it leaves EX.
type loadUseHazard struct {
	exMemRead, exRd, idRs1, idRs2 port.Wire
}

// Read implements port.Port.
func (h loadUseHazard) Read() uint32 {
	if h.exMemRead.Read() != 1 {
		return 0
	}
	rd := h.exRd.Read()
	if rd == 0 {
		return 0
	}
	if rd == h.idRs1.Read() || rd == h.idRs2.Read() {
		return 1
	}
	return 0
}

// notGate inverts a single-bit control line.
type notGate struct{ in port.Wire }

// Read implements port.Port.
func (n notGate) Read() uint32 {
	if n.in.Read() == 1 {
		return 0
	}
	return 1
}

// orGate ORs two single-bit control lines.
type orGate struct{ a, b port.Wire }

// Read implements port.Port.
func (g orGate) Read() uint32 {
	if g.a.Read() == 1 || g.b.Read() == 1 {
		return 1
	}
	return 0
}

// NewRv32i builds the complete datapath around a memory image seeded
// into both the instruction and data memories, with the PC initialized
// to start. asmTable, if non-nil, supplies one disassembly string per
// instruction word for the Debug trail; it may be nil.
func NewRv32i(image []byte, asmTable []string, start uint32) *Rv32i {
	ifStage := NewIfStageBuilder(image, asmTable, start)
	ifId := NewIfIdBuilder()
	idStage := NewIdStageBuilder()
	idEx := NewIdExBuilder()
	exStage := NewExStageBuilder()
	exMem := NewExMemBuilder()
	memStage := NewMemStageBuilder(image)
	memWb := NewMemWbBuilder()
	wbStage := NewWbStageBuilder()

	var consts component.Consts

	// IF/ID
	ifId.ConnectPc(ifStage.AllocPc())
	ifId.ConnectNpc(ifStage.AllocNpc())
	ifId.ConnectInstruction(ifStage.AllocInstruction())
	ifId.ConnectAsm(ifStage.AllocAsm())

	// ID
	idStage.ConnectInstruction(ifId.AllocInstruction())

	// ID/EX
	idEx.ConnectPc(ifId.AllocPc())
	idEx.ConnectNpc(ifId.AllocNpc())
	idEx.ConnectRegWrite(idStage.AllocRegWrite())
	idEx.ConnectMemRead(idStage.AllocMemRead())
	idEx.ConnectMemWrite(idStage.AllocMemWrite())
	idEx.ConnectBranch(idStage.AllocBranch())
	idEx.ConnectJal(idStage.AllocJal())
	idEx.ConnectJalr(idStage.AllocJalr())
	idEx.ConnectAluSrcPc(idStage.AllocAluSrcPc())
	idEx.ConnectAluSrcImm(idStage.AllocAluSrcImm())
	idEx.ConnectAluSrcZero(idStage.AllocAluSrcZero())
	idEx.ConnectAluCtrl(idStage.AllocAluCtrl())
	idEx.ConnectBranchType(idStage.AllocBranchType())
	idEx.ConnectWbSel(idStage.AllocWbSel())
	idEx.ConnectRs1Data(idStage.AllocRs1Data())
	idEx.ConnectRs2Data(idStage.AllocRs2Data())
	idEx.ConnectImm(idStage.AllocImm())
	idEx.ConnectRs1(idStage.AllocRs1())
	idEx.ConnectRs2(idStage.AllocRs2())
	idEx.ConnectRd(idStage.AllocRd())
	idEx.ConnectAsm(ifId.AllocAsm())
	idEx.ConnectEnable(consts.Alloc(1))

	// EX
	exStage.ConnectJal(idEx.AllocJal())
	exStage.ConnectBranchEn(idEx.AllocBranch())
	exStage.ConnectPcSel(idEx.AllocAluSrcPc())
	exStage.ConnectAluSrcZero(idEx.AllocAluSrcZero())
	exStage.ConnectImmSel(idEx.AllocAluSrcImm())
	exStage.ConnectAluCtrl(idEx.AllocAluCtrl())
	exStage.ConnectBranchType(idEx.AllocBranchType())
	exStage.ConnectPc(idEx.AllocPc())
	exStage.ConnectRs1Data(idEx.AllocRs1Data())
	exStage.ConnectRs2Data(idEx.AllocRs2Data())
	exStage.ConnectImm(idEx.AllocImm())
	exStage.ConnectRs1(idEx.AllocRs1())
	exStage.ConnectRs2(idEx.AllocRs2())
	exStage.ConnectRdMem(exMem.AllocRd())
	exStage.ConnectRdMemWrite(exMem.AllocRegWrite())
	exStage.ConnectRdMemData(exMem.AllocAluRes())
	exStage.ConnectRdWb(memWb.AllocRd())
	exStage.ConnectRdWbWrite(memWb.AllocRegWrite())
	exStage.ConnectRdWbData(wbStage.Alloc())

	// EX/MEM. Never cleared: the only bubble this bundle ever carries is
	// one already zeroed by an ID/EX clear, so re-clearing here would be
	// redundant.
	exMem.ConnectRegWrite(idEx.AllocRegWrite())
	exMem.ConnectMemRead(idEx.AllocMemRead())
	exMem.ConnectMemWrite(idEx.AllocMemWrite())
	exMem.ConnectWbSel(idEx.AllocWbSel())
	exMem.ConnectNpc(idEx.AllocNpc())
	exMem.ConnectAluRes(exStage.AllocAluRes())
	exMem.ConnectRs2Data(exStage.AllocRs2Data())
	exMem.ConnectRd(idEx.AllocRd())
	exMem.ConnectAsm(idEx.AllocAsm())
	exMem.ConnectEnable(consts.Alloc(1))
	exMem.ConnectClear(consts.Alloc(0))

	// MEM
	memStage.ConnectAddress(exMem.AllocAluRes())
	memStage.ConnectInput(exMem.AllocRs2Data())
	memStage.ConnectWrite(exMem.AllocMemWrite())
	memStage.ConnectRead(exMem.AllocMemRead())
	memStage.ConnectAluRes(exMem.AllocAluRes())
	memStage.ConnectRd(exMem.AllocRd())
	memStage.ConnectRegWrite(exMem.AllocRegWrite())
	memStage.ConnectWbSel(exMem.AllocWbSel())
	memStage.ConnectNpc(exMem.AllocNpc())

	// MEM/WB. Never cleared or stalled: once an instruction reaches MEM
	// it always completes.
	memWb.ConnectRegWrite(memStage.AllocRegWrite())
	memWb.ConnectWbSel(memStage.AllocWbSel())
	memWb.ConnectNpc(memStage.AllocNpc())
	memWb.ConnectAluRes(memStage.AllocAluRes())
	memWb.ConnectMemData(memStage.AllocMemData())
	memWb.ConnectRd(memStage.AllocRd())
	memWb.ConnectAsm(exMem.AllocAsm())
	memWb.ConnectEnable(consts.Alloc(1))
	memWb.ConnectClear(consts.Alloc(0))

	// WB
	wbStage.ConnectWbSel(memWb.AllocWbSel())
	wbStage.ConnectNpc(memWb.AllocNpc())
	wbStage.ConnectAluRes(memWb.AllocAluRes())
	wbStage.ConnectMemData(memWb.AllocMemData())

	// Register-file write-back, closing the loop back into ID.
	idStage.ConnectWbRd(memWb.AllocRd())
	idStage.ConnectWbData(wbStage.Alloc())
	idStage.ConnectWbRegWrite(memWb.AllocRegWrite())

	// Hazard resolution. A taken branch/jump, known once EX resolves it,
	// flushes the instructions already fetched behind it (IF/ID and
	// ID/EX); a load-use hazard, known once ID decodes the dependent
	// instruction, holds fetch in place for one cycle and bubbles ID/EX.
	stall := port.Of(loadUseHazard{
		exMemRead: idEx.AllocMemRead(),
		exRd:      idEx.AllocRd(),
		idRs1:     idStage.AllocRs1(),
		idRs2:     idStage.AllocRs2(),
	})
	branchTaken := exStage.AllocBranchSel()

	ifStage.ConnectBranchTarget(exStage.AllocAluRes())
	ifStage.ConnectBranchSel(branchTaken)
	// The PC register shares IF/ID's Enable: leaving it free-running
	// during a stall would fetch past the stalled instruction and lose
	// it once the stall clears.
	ifStage.ConnectEnable(port.Of(notGate{stall}))

	ifId.ConnectEnable(port.Of(notGate{stall}))
	ifId.ConnectClear(branchTaken)

	idEx.ConnectClear(port.Of(orGate{branchTaken, stall}))

	r := &Rv32i{
		ifStage:   ifStage.Build(),
		ifId:      ifId.Build(),
		idStage:   idStage.Build(),
		idEx:      idEx.Build(),
		exMem:     exMem.Build(),
		memStage:  memStage.Build(),
		memWb:     memWb.Build(),
		branchSel: branchTaken,
		stall:     stall,
		aluRes:    exStage.AllocAluRes(),
	}
	r.Add(r.ifStage)
	r.Add(r.ifId)
	r.Add(r.idStage)
	r.Add(r.idEx)
	r.Add(r.exMem)
	r.Add(r.memStage)
	r.Add(r.memWb)
	return r
}
