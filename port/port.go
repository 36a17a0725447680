// Package port defines the combinational read contract shared by every
// component in the simulation kernel, plus the shared-ownership handle
// type ("wire") used to connect an output of one component to the input
// of another.
//
// A Port is purely combinational: Read is referentially transparent
// within one clock half-phase (see package control for the half-phase
// discipline). Ports may read other ports recursively; the only thing
// that stops recursion from overflowing the host stack on a feedback
// path is that registers and memories (package component) never read
// their own In pin from Read - see Register.Read.
package port

import "fmt"

// Port is the pure read contract every combinational and sequential
// component exposes for its outputs.
type Port interface {
	// Read returns the instantaneous 32-bit value implied by the current
	// (post last falling-edge) state of every upstream control. It must
	// be idempotent for a given state.
	Read() uint32
}

// Wire is a shared Port handle. The zero Wire is a hole: reading it
// panics with a "not connected" message rather than silently returning
// zero, so that a forgotten Connect call is caught at read time instead
// of producing a quietly wrong simulation.
//
// Wire is the type returned by every component's Alloc and accepted by
// every component's Connect; builders hold Wires as fields, the wired
// graph holds Wires as well, and Wire itself forwards Read to whatever
// underlying Port it was built from.
type Wire struct {
	label string
	inner Port
}

// Hole returns an unconnected wire for the named pin. Reading it panics.
// Components use this as the zero value for a pin that has not yet been
// the target of Connect.
func Hole(label string) Wire {
	return Wire{label: label}
}

// Of wraps an already-resolved Port as a Wire. Used by Alloc
// implementations to hand out a live handle onto a component's output.
func Of(p Port) Wire {
	if p == nil {
		panic("port: Of called with nil Port")
	}
	return Wire{inner: p}
}

// Read implements Port. It panics if the wire was never connected.
func (w Wire) Read() uint32 {
	if w.inner == nil {
		label := w.label
		if label == "" {
			label = "<pin>"
		}
		panic(fmt.Sprintf("%s not connected", label))
	}
	return w.inner.Read()
}

// Connected reports whether the wire has a backing Port. Components use
// this to apply the documented defaults for optional pins (e.g.
// Register.Enable/Clear default to constant 1/0 when never connected).
func (w Wire) Connected() bool {
	return w.inner != nil
}

// Func adapts a plain function to Port, useful for constant folding and
// tests that need an inline Port without a full component.
type Func func() uint32

// Read implements Port.
func (f Func) Read() uint32 { return f() }
