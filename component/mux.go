package component

import (
	"fmt"

	"rv32isim/port"
)

// Mux is an N-input, 1-output combinational multiplexer. Out.Read()
// returns In(Select.Read()).Read(). Selecting an input that was never
// connected is a fatal wiring error, per spec.
type Mux struct {
	ins    map[uint32]port.Wire
	sel    port.Wire
	nInput int
}

// Read implements port.Port.
func (m *Mux) Read() uint32 {
	sel := m.sel.Read()
	w, ok := m.ins[sel]
	if !ok {
		panic(fmt.Sprintf("mux: select %d has no connected input", sel))
	}
	return w.Read()
}

// MuxBuilder assembles a Mux. ConnectIn(n, w) binds the given input
// index to w; ConnectSelect binds the selector. Alloc may be called
// before any Connect - the returned wire observes live values once the
// graph is fully wired.
type MuxBuilder struct {
	mux *Mux
}

// NewMuxBuilder returns a builder for a mux with no inputs yet
// connected.
func NewMuxBuilder() *MuxBuilder {
	return &MuxBuilder{mux: &Mux{
		ins: make(map[uint32]port.Wire),
		sel: port.Hole("mux select"),
	}}
}

// ConnectIn binds input index n to w.
func (b *MuxBuilder) ConnectIn(n uint32, w port.Wire) {
	b.mux.ins[n] = w
}

// ConnectSelect binds the selector input to w.
func (b *MuxBuilder) ConnectSelect(w port.Wire) {
	b.mux.sel = w
}

// Alloc returns the wire for this mux's single output.
func (b *MuxBuilder) Alloc() port.Wire {
	return port.Of(b.mux)
}
