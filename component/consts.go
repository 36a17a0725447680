package component

import "rv32isim/port"

// Const is a fixed-output combinational port. It has no inputs and
// never changes value once constructed.
//
// Grounded on original_source/src/common/component/add.rs's test use of
// ConstsBuilder/ConstsAlloc(value): a constant is identified directly by
// its literal value rather than by an allocated slot index.
type Const struct {
	value uint32
}

// Read implements port.Port.
func (c *Const) Read() uint32 { return c.value }

// NewConst returns a wire that always reads v.
func NewConst(v uint32) port.Wire {
	return port.Of(&Const{value: v})
}

// Consts is a small cache of constant wires keyed by value, so a builder
// that needs the same literal (0 and 1 are the common case: defaults
// for Register.Enable/Clear) wires up exactly one Const node for it.
type Consts struct {
	cache map[uint32]port.Wire
}

// Alloc returns the wire for v, allocating and caching a new Const node
// the first time v is requested.
func (c *Consts) Alloc(v uint32) port.Wire {
	if c.cache == nil {
		c.cache = make(map[uint32]port.Wire)
	}
	if w, ok := c.cache[v]; ok {
		return w
	}
	w := NewConst(v)
	c.cache[v] = w
	return w
}
