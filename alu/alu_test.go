package alu

import (
	"testing"

	"rv32isim/component"
)

func TestALUOps(t *testing.T) {
	tests := []struct {
		name     string
		op1, op2 uint32
		ctrl     Ctrl
		want     uint32
	}{
		{"and", 0xFF, 0x0F, CtrlAND, 0x0F},
		{"add", 0x7FFFFFF0, 0xFFFFFE50, CtrlADD, 0x7FFFFE40}, // addi x2,x2,-432 seed scenario
		{"or", 0xF0, 0x0F, CtrlOR, 0xFF},
		{"xor", 0xFF, 0x0F, CtrlXOR, 0xF0},
		{"sll", 1, 4, CtrlSLL, 16},
		{"srl", 0x80000000, 4, CtrlSRL, 0x08000000},
		{"sra", 0x80000000, 4, CtrlSRA, 0xF8000000},
		{"sub", 10, 3, CtrlSUB, 7},
		{"slt_true", 0xFFFFFFFF, 1, CtrlSLT, 1},  // -1 < 1
		{"slt_false", 1, 0xFFFFFFFF, CtrlSLT, 0}, // 1 < -1
		{"sltu_true", 1, 2, CtrlSLTU, 1},
		{"sltu_false", 2, 1, CtrlSLTU, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			var c component.Consts
			b.ConnectOp1(c.Alloc(tt.op1))
			b.ConnectOp2(c.Alloc(tt.op2))
			b.ConnectCtrl(c.Alloc(uint32(tt.ctrl)))
			out := b.Alloc()
			if got := out.Read(); got != tt.want {
				t.Errorf("%s: got 0x%X want 0x%X", tt.name, got, tt.want)
			}
		})
	}
}

func TestBranch(t *testing.T) {
	tests := []struct {
		name             string
		jal, branchSel   uint32
		branchType       BranchType
		op1, op2         uint32
		want             uint32
	}{
		{"jal always taken", 1, 0, CondEQ, 0, 0, 1},
		{"beq taken", 0, 1, CondEQ, 5, 5, 1},
		{"beq not taken", 0, 1, CondEQ, 5, 6, 0},
		{"bne taken", 0, 1, CondNE, 5, 6, 1},
		{"blt taken (signed)", 0, 1, CondLT, 0xFFFFFFFF, 1, 1}, // -1 < 1
		{"bge taken (signed)", 0, 1, CondGE, 1, 0xFFFFFFFF, 1}, // 1 >= -1
		{"bltu taken", 0, 1, CondLTU, 1, 2, 1},
		{"bgeu taken", 0, 1, CondGEU, 2, 1, 1},
		{"branch sel off", 0, 0, CondEQ, 5, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBranchBuilder()
			var c component.Consts
			b.ConnectJal(c.Alloc(tt.jal))
			b.ConnectBranchSel(c.Alloc(tt.branchSel))
			b.ConnectBranchType(c.Alloc(uint32(tt.branchType)))
			b.ConnectOp1(c.Alloc(tt.op1))
			b.ConnectOp2(c.Alloc(tt.op2))
			out := b.Alloc()
			if got := out.Read(); got != tt.want {
				t.Errorf("%s: got %d want %d", tt.name, got, tt.want)
			}
		})
	}
}
