package component

import (
	"fmt"

	"rv32isim/control"
	"rv32isim/port"
)

// AsmPort is the string-valued analogue of port.Port, threaded in
// parallel with the 32-bit datapath purely to carry disassembly text
// for debug output (spec.md §4.13's "optional disassembly-string
// register"). It never participates in architectural state.
type AsmPort interface {
	Read() string
}

// AsmWire is the string-valued analogue of port.Wire.
type AsmWire struct {
	label string
	inner AsmPort
}

// AsmHole returns an unconnected asm wire. Reading it panics, same
// contract as port.Hole.
func AsmHole(label string) AsmWire { return AsmWire{label: label} }

// AsmOf wraps an already-resolved AsmPort as an AsmWire.
func AsmOf(p AsmPort) AsmWire { return AsmWire{inner: p} }

// Read implements AsmPort.
func (w AsmWire) Read() string {
	if w.inner == nil {
		label := w.label
		if label == "" {
			label = "<asm pin>"
		}
		panic(fmt.Sprintf("%s not connected", label))
	}
	return w.inner.Read()
}

// Connected reports whether the asm wire has a backing AsmPort.
func (w AsmWire) Connected() bool { return w.inner != nil }

// AsmConst is a fixed string output, the asm-string analogue of Const.
type AsmConst struct{ value string }

// Read implements AsmPort.
func (c *AsmConst) Read() string { return c.value }

// NewAsmConst returns an asm wire that always reads s.
func NewAsmConst(s string) AsmWire { return AsmOf(&AsmConst{value: s}) }

// AsmRegister latches a disassembly string alongside a data separator
// register, sharing the same Enable/Clear lines so a stall or flush of
// the data registers also holds/clears the asm text.
//
// Grounded on original_source/src/simulator/rv32i/sep_reg/mem_wb.rs's
// AsmRegBuilder/AsmPortRef, threaded through every separator in
// parallel with the data registers.
type AsmRegister struct {
	control.Base

	in     AsmWire
	enable port.Wire
	clear  port.Wire

	visible string
	shadow  string
}

// Read implements AsmPort.
func (r *AsmRegister) Read() string { return r.visible }

// RisingEdge implements control.Control.
func (r *AsmRegister) RisingEdge() {
	switch {
	case r.clear.Read() == 1:
		r.shadow = ""
	case r.enable.Read() == 1:
		r.shadow = r.in.Read()
	default:
		r.shadow = r.visible
	}
}

// FallingEdge implements control.Control.
func (r *AsmRegister) FallingEdge() {
	r.visible = r.shadow
}

// AsmRegisterBuilder assembles an AsmRegister. Enable and Clear are
// shared uint32 wires from the bundle's data registers - they are
// required (no default), since an AsmRegister is never built standalone
// outside a separator bundle that already has those lines.
type AsmRegisterBuilder struct {
	reg *AsmRegister
}

// NewAsmRegisterBuilder returns a builder for an asm register.
func NewAsmRegisterBuilder() *AsmRegisterBuilder {
	return &AsmRegisterBuilder{reg: &AsmRegister{in: AsmHole("asm.In")}}
}

// ConnectIn binds the In pin.
func (b *AsmRegisterBuilder) ConnectIn(w AsmWire) { b.reg.in = w }

// ConnectEnable binds the Enable pin (a regular uint32 control wire,
// shared with the data registers in the same bundle).
func (b *AsmRegisterBuilder) ConnectEnable(w port.Wire) {
	b.reg.enable = w
}

// ConnectClear binds the Clear pin.
func (b *AsmRegisterBuilder) ConnectClear(w port.Wire) {
	b.reg.clear = w
}

// Alloc returns the wire for this register's Out pin.
func (b *AsmRegisterBuilder) Alloc() AsmWire { return AsmOf(b.reg) }

// Build freezes the register.
func (b *AsmRegisterBuilder) Build() *AsmRegister { return b.reg }
