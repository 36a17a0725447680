package component

import "rv32isim/port"

// Adder is a variadic-input combinational adder. Out.Read() is the
// wrapping sum of every connected input.
//
// Grounded on original_source/src/common/component/add.rs: Add::read
// folds input.iter().map(Read).sum(), which wraps on overflow the same
// way Go's untyped uint32 addition does.
type Adder struct {
	inputs []port.Wire
}

// Read implements port.Port.
func (a *Adder) Read() uint32 {
	var sum uint32
	for _, in := range a.inputs {
		sum += in.Read()
	}
	return sum
}

// AdderBuilder assembles an Adder.
type AdderBuilder struct {
	adder *Adder
}

// NewAdderBuilder returns a builder for an adder with no inputs yet.
func NewAdderBuilder() *AdderBuilder {
	return &AdderBuilder{adder: &Adder{}}
}

// ConnectIn appends a new summand.
func (b *AdderBuilder) ConnectIn(w port.Wire) {
	b.adder.inputs = append(b.adder.inputs, w)
}

// Alloc returns the wire for this adder's single output.
func (b *AdderBuilder) Alloc() port.Wire {
	return port.Of(b.adder)
}
