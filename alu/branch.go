package alu

import "rv32isim/port"

// BranchType selects the comparison predicate for a conditional branch,
// per spec.md §4.8's condition table (aliased to RV32I funct3 values
// for BEQ/BNE/BLT/BGE/BLTU/BGEU).
type BranchType uint32

// Branch condition codes, per spec.md §4.8.
const (
	CondEQ  BranchType = 0
	CondNE  BranchType = 1
	CondLT  BranchType = 4
	CondGE  BranchType = 5
	CondLTU BranchType = 6
	CondGEU BranchType = 7
)

// Branch computes whether the next PC should be taken, per spec.md
// §4.8: BK = Jal_ OR (BranchSel AND condition(BranchType, Op1, Op2)).
type Branch struct {
	op1, op2   port.Wire
	branchSel  port.Wire
	branchType port.Wire
	jal        port.Wire
}

// Read implements port.Port, returning 1 if the branch/jump is taken.
func (b *Branch) Read() uint32 {
	if b.jal.Read() == 1 {
		return 1
	}
	if b.branchSel.Read() != 1 {
		return 0
	}
	op1, op2 := b.op1.Read(), b.op2.Read()
	if condition(BranchType(b.branchType.Read()), op1, op2) {
		return 1
	}
	return 0
}

func condition(t BranchType, op1, op2 uint32) bool {
	switch t {
	case CondEQ:
		return op1 == op2
	case CondNE:
		return op1 != op2
	case CondLT:
		return int32(op1) < int32(op2)
	case CondGE:
		return int32(op1) >= int32(op2)
	case CondLTU:
		return op1 < op2
	case CondGEU:
		return op1 >= op2
	default:
		panic("alu: unknown branch type")
	}
}

// BranchBuilder assembles a Branch unit.
type BranchBuilder struct {
	branch *Branch
}

// NewBranchBuilder returns a builder with all pins unconnected.
func NewBranchBuilder() *BranchBuilder {
	return &BranchBuilder{branch: &Branch{
		op1:        port.Hole("branch.Op1"),
		op2:        port.Hole("branch.Op2"),
		branchSel:  port.Hole("branch.BranchSel"),
		branchType: port.Hole("branch.BranchType"),
		jal:        port.Hole("branch.Jal_"),
	}}
}

// ConnectOp1 binds the first comparand.
func (b *BranchBuilder) ConnectOp1(w port.Wire) { b.branch.op1 = w }

// ConnectOp2 binds the second comparand.
func (b *BranchBuilder) ConnectOp2(w port.Wire) { b.branch.op2 = w }

// ConnectBranchSel binds the taken-branch-family enable.
func (b *BranchBuilder) ConnectBranchSel(w port.Wire) { b.branch.branchSel = w }

// ConnectBranchType binds the condition selector.
func (b *BranchBuilder) ConnectBranchType(w port.Wire) { b.branch.branchType = w }

// ConnectJal binds the unconditional-jump input.
func (b *BranchBuilder) ConnectJal(w port.Wire) { b.branch.jal = w }

// Alloc returns the wire for the BK output.
func (b *BranchBuilder) Alloc() port.Wire { return port.Of(b.branch) }
