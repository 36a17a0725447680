package component

import (
	"encoding/binary"
	"fmt"

	"rv32isim/control"
	"rv32isim/port"
)

// StackAddr is the first address of the high stack arena, per spec.md
// §3: "the stack window begins at address STACK_ADDR = 0x7FFF_FFF0".
const StackAddr = 0x7FFF_FFF0

// Memory is a byte-addressable, word-granular data memory with inputs
// Address, Input, Write, Read and a single 32-bit output. It is both a
// port.Port and a control.Control.
//
// Two backing arenas, per spec.md §4.6: a low arena initialized from
// the program image, and a high stack arena addressed by addr -
// StackAddr. Reads and writes below StackAddr go to the low arena,
// at-or-above go to the stack arena.
//
// Endianness: the source this spec was distilled from
// (original_source/src/common/component/mem.rs) packs/unpacks words
// with u32::from_ne_bytes, i.e. host byte order - spec.md §9 flags this
// as a bug to fix for a little-endian ISA running on a potentially
// big-endian host. This implementation always uses explicit
// little-endian (encoding/binary.LittleEndian) regardless of host.
//
// Leniency: an out-of-range read (address+4 beyond the low arena and
// below StackAddr, or beyond the current stack arena) returns 0 rather
// than faulting. spec.md §9 raises this as an open question; it is kept
// here as documented leniency rather than a simulated fault, consistent
// with spec.md §7's rule that an architectural fault never aborts the
// host. Out-of-range writes, by contrast, auto-grow the arena they land
// in: the stack arena at or above StackAddr, the low arena below it.
type Memory struct {
	control.Base

	address port.Wire
	input   port.Wire
	write   port.Wire
	read    port.Wire

	data  []byte
	stack []byte

	writeCache   bool
	addressCache uint32
	inputCache   uint32
}

// Read implements port.Port.
func (m *Memory) Read() uint32 {
	if m.read.Read() != 1 {
		return 0
	}
	addr := m.address.Read()
	arr, off := m.arena(addr)
	if off+4 > uint32(len(arr)) {
		return 0
	}
	return binary.LittleEndian.Uint32(arr[off : off+4])
}

// arena returns the backing slice and in-arena offset for addr.
func (m *Memory) arena(addr uint32) ([]byte, uint32) {
	if addr >= StackAddr {
		return m.stack, addr - StackAddr
	}
	return m.data, addr
}

// RisingEdge implements control.Control: latches address and input if
// Write is asserted this cycle.
func (m *Memory) RisingEdge() {
	if m.write.Read() != 1 {
		m.writeCache = false
		return
	}
	m.addressCache = m.address.Read()
	m.inputCache = m.input.Read()
	m.writeCache = true
}

// FallingEdge implements control.Control: commits the latched store,
// growing the addressed arena (stack or low) if necessary.
func (m *Memory) FallingEdge() {
	if !m.writeCache {
		return
	}
	arr, off := m.arenaFor(m.addressCache)
	need := off + 4
	if need > uint32(len(*arr)) {
		grown := make([]byte, need)
		copy(grown, *arr)
		*arr = grown
	}
	binary.LittleEndian.PutUint32((*arr)[off:off+4], m.inputCache)
}

// arenaFor is like arena but returns a pointer to the backing slice so
// FallingEdge can grow it in place.
func (m *Memory) arenaFor(addr uint32) (*[]byte, uint32) {
	if addr >= StackAddr {
		return &m.stack, addr - StackAddr
	}
	return &m.data, addr
}

// Debug implements control.Control.
func (m *Memory) Debug() string {
	return fmt.Sprintf("mem: 0x%08X", m.Read())
}

// MemoryBuilder assembles a Memory component.
type MemoryBuilder struct {
	mem *Memory
}

// NewMemoryBuilder returns a builder for a memory preloaded with image
// (the program's .text/.data bytes, stored starting at address 0).
func NewMemoryBuilder(image []byte) *MemoryBuilder {
	data := make([]byte, len(image))
	copy(data, image)
	return &MemoryBuilder{mem: &Memory{
		address: port.Hole("mem.Address"),
		input:   port.Hole("mem.Input"),
		write:   port.Hole("mem.Write"),
		read:    port.Hole("mem.Read"),
		data:    data,
	}}
}

// ConnectAddress binds the Address pin.
func (b *MemoryBuilder) ConnectAddress(w port.Wire) { b.mem.address = w }

// ConnectInput binds the Input (store data) pin.
func (b *MemoryBuilder) ConnectInput(w port.Wire) { b.mem.input = w }

// ConnectWrite binds the Write enable pin.
func (b *MemoryBuilder) ConnectWrite(w port.Wire) { b.mem.write = w }

// ConnectRead binds the Read enable pin.
func (b *MemoryBuilder) ConnectRead(w port.Wire) { b.mem.read = w }

// Alloc returns the wire for this memory's single output.
func (b *MemoryBuilder) Alloc() port.Wire { return port.Of(b.mem) }

// Build freezes the memory.
func (b *MemoryBuilder) Build() *Memory { return b.mem }
