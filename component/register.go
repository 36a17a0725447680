package component

import (
	"fmt"

	"rv32isim/control"
	"rv32isim/port"
)

// Register is a single 32-bit latching element: inputs In, Enable,
// Clear, output Out. It is both a port.Port (reads its committed
// visible value) and a control.Control (latches on RisingEdge, commits
// on FallingEdge).
//
// Clear takes priority over Enable. A register built with no
// Enable/Clear ever connected defaults those to constant 1 and 0
// respectively (see RegisterBuilder.Build), per spec.md §4.4.
//
// Register.Read never recurses into In: it always returns the
// committed visible value. This is the one property that lets the
// graph contain combinational feedback loops (forwarding, PC
// next-state) without Read overflowing the host stack - a cycle is
// only legal if it crosses at least one register.
type Register struct {
	control.Base

	label string

	in     port.Wire
	enable port.Wire
	clear  port.Wire

	visible uint32
	shadow  uint32
}

// Read implements port.Port. Always returns the committed value.
func (r *Register) Read() uint32 { return r.visible }

// RisingEdge implements control.Control.
func (r *Register) RisingEdge() {
	switch {
	case r.clear.Read() == 1:
		r.shadow = 0
	case r.enable.Read() == 1:
		r.shadow = r.in.Read()
	default:
		r.shadow = r.visible
	}
}

// FallingEdge implements control.Control.
func (r *Register) FallingEdge() {
	r.visible = r.shadow
}

// Debug implements control.Control.
func (r *Register) Debug() string {
	return fmt.Sprintf("%s: 0x%08X", r.label, r.visible)
}

// Output implements control.Control.
func (r *Register) Output() []control.Signal {
	return []control.Signal{{Label: r.label, Value: r.visible}}
}

// RegisterBuilder assembles a Register.
type RegisterBuilder struct {
	reg *Register
}

// NewRegisterBuilder returns a builder for a register with the given
// initial visible value and debug label.
func NewRegisterBuilder(label string, initial uint32) *RegisterBuilder {
	return &RegisterBuilder{reg: &Register{
		label:   label,
		in:      port.Hole(label + ".In"),
		visible: initial,
		shadow:  initial,
	}}
}

// ConnectIn binds the In pin.
func (b *RegisterBuilder) ConnectIn(w port.Wire) { b.reg.in = w }

// ConnectEnable binds the Enable pin.
func (b *RegisterBuilder) ConnectEnable(w port.Wire) { b.reg.enable = w }

// ConnectClear binds the Clear pin.
func (b *RegisterBuilder) ConnectClear(w port.Wire) { b.reg.clear = w }

// Alloc returns the wire for this register's Out pin.
func (b *RegisterBuilder) Alloc() port.Wire {
	return port.Of(b.reg)
}

// Build freezes the register, applying the documented Enable=1/Clear=0
// defaults to any pin that was never connected.
func (b *RegisterBuilder) Build() *Register {
	if !b.reg.enable.Connected() {
		b.reg.enable = NewConst(1)
	}
	if !b.reg.clear.Connected() {
		b.reg.clear = NewConst(0)
	}
	return b.reg
}
