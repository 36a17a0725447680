package regfile

import (
	"testing"

	"rv32isim/component"
	"rv32isim/port"
)

type var32 struct{ v uint32 }

func (v *var32) Read() uint32 { return v.v }

func TestX0AlwaysZero(t *testing.T) {
	b := NewBuilder()
	rs1 := &var32{v: 0}
	b.ConnectRs1(port.Of(rs1))
	rs2 := &var32{}
	b.ConnectRs2(port.Of(rs2))
	rd := &var32{v: 0}
	b.ConnectRd(port.Of(rd))
	rdData := &var32{v: 0xDEADBEEF}
	b.ConnectRdData(port.Of(rdData))
	write := &var32{v: 1}
	b.ConnectRegWrite(port.Of(write))
	rs1Data := b.AllocRs1Data()
	rf := b.Build()

	rf.RisingEdge()
	rf.FallingEdge()
	if got := rs1Data.Read(); got != 0 {
		t.Fatalf("x0 read after write-to-x0 attempt = %d, want 0", got)
	}
}

func TestReadAfterWriteSeesOldValue(t *testing.T) {
	b := NewBuilder()
	var c component.Consts
	b.ConnectRs1(c.Alloc(5))
	rd := &var32{v: 5}
	b.ConnectRd(port.Of(rd))
	rdData := &var32{v: 42}
	b.ConnectRdData(port.Of(rdData))
	write := &var32{v: 1}
	b.ConnectRegWrite(port.Of(write))
	rs1Data := b.AllocRs1Data()
	rf := b.Build()

	if got := rs1Data.Read(); got != 0 {
		t.Fatalf("x5 before any write = %d, want 0", got)
	}
	rf.RisingEdge()
	if got := rs1Data.Read(); got != 0 {
		t.Fatalf("x5 during rising phase = %d, want 0 (old value)", got)
	}
	rf.FallingEdge()
	if got := rs1Data.Read(); got != 42 {
		t.Fatalf("x5 after falling edge = %d, want 42", got)
	}
}

func TestWriteDisabledIsNoOp(t *testing.T) {
	b := NewBuilder()
	var c component.Consts
	b.ConnectRs1(c.Alloc(5))
	rd := &var32{v: 5}
	b.ConnectRd(port.Of(rd))
	rdData := &var32{v: 42}
	b.ConnectRdData(port.Of(rdData))
	write := &var32{v: 0}
	b.ConnectRegWrite(port.Of(write))
	rs1Data := b.AllocRs1Data()
	rf := b.Build()

	rf.RisingEdge()
	rf.FallingEdge()
	if got := rs1Data.Read(); got != 0 {
		t.Fatalf("x5 after disabled write = %d, want 0", got)
	}
}
