// Package alu implements the RV32I arithmetic/logic unit and the
// branch-condition / next-PC-taken unit, the two purely combinational
// functional units EX stitches around the forwarding multiplexers.
//
// Grounded on original_source/src/simulator/rv32i/ex_stage.rs's alu and
// branch submodules.
package alu

import "rv32isim/port"

// Ctrl selects the ALU operation, matching spec.md §4.7's control
// encoding exactly.
type Ctrl uint32

// ALU control codes, per spec.md §4.7.
const (
	CtrlAND Ctrl = iota
	CtrlADD
	CtrlOR
	CtrlXOR
	CtrlSLL
	CtrlSRL
	CtrlSRA
	CtrlSUB
	CtrlSLT
	CtrlSLTU
)

// ALU is the combinational arithmetic/logic unit: inputs Op1, Op2,
// Ctrl, output Res.
type ALU struct {
	op1, op2, ctrl port.Wire
}

// Read implements port.Port.
func (a *ALU) Read() uint32 {
	op1, op2 := a.op1.Read(), a.op2.Read()
	switch Ctrl(a.ctrl.Read()) {
	case CtrlAND:
		return op1 & op2
	case CtrlADD:
		return op1 + op2
	case CtrlOR:
		return op1 | op2
	case CtrlXOR:
		return op1 ^ op2
	case CtrlSLL:
		return op1 << (op2 & 0x1F)
	case CtrlSRL:
		return op1 >> (op2 & 0x1F)
	case CtrlSRA:
		return uint32(int32(op1) >> (op2 & 0x1F))
	case CtrlSUB:
		return op1 - op2
	case CtrlSLT:
		if int32(op1) < int32(op2) {
			return 1
		}
		return 0
	case CtrlSLTU:
		if op1 < op2 {
			return 1
		}
		return 0
	default:
		panic("alu: unknown ctrl opcode")
	}
}

// Builder assembles an ALU.
type Builder struct {
	alu *ALU
}

// NewBuilder returns a builder for an ALU with all pins unconnected.
func NewBuilder() *Builder {
	return &Builder{alu: &ALU{
		op1:  port.Hole("alu.Op1"),
		op2:  port.Hole("alu.Op2"),
		ctrl: port.Hole("alu.Ctrl"),
	}}
}

// ConnectOp1 binds the first operand.
func (b *Builder) ConnectOp1(w port.Wire) { b.alu.op1 = w }

// ConnectOp2 binds the second operand.
func (b *Builder) ConnectOp2(w port.Wire) { b.alu.op2 = w }

// ConnectCtrl binds the opcode selector.
func (b *Builder) ConnectCtrl(w port.Wire) { b.alu.ctrl = w }

// Alloc returns the wire for the ALU's Res output.
func (b *Builder) Alloc() port.Wire { return port.Of(b.alu) }
