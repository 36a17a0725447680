package forward

import (
	"testing"

	"rv32isim/component"
)

// Scenario 4 from spec.md §8: addi x5,x0,7; add x6,x5,x5 - when add
// reaches EX, Forward1 = Forward2 = 1 (EX/MEM forward) because the
// EX/MEM-stage destination is x5 and both of add's sources are x5.
func TestForwardExMemPriority(t *testing.T) {
	b := NewBuilder()
	var c component.Consts
	b.ConnectRs1(c.Alloc(5))
	b.ConnectRs2(c.Alloc(5))
	b.ConnectRdMem(c.Alloc(5))
	b.ConnectRdMemWrite(c.Alloc(1))
	b.ConnectRdWb(c.Alloc(5))
	b.ConnectRdWbWrite(c.Alloc(1))

	if got := b.AllocForward1().Read(); got != uint32(SourceExMem) {
		t.Errorf("Forward1 = %d, want EX/MEM (%d)", got, SourceExMem)
	}
	if got := b.AllocForward2().Read(); got != uint32(SourceExMem) {
		t.Errorf("Forward2 = %d, want EX/MEM (%d)", got, SourceExMem)
	}
}

func TestForwardMemWbWhenNoExMemMatch(t *testing.T) {
	b := NewBuilder()
	var c component.Consts
	b.ConnectRs1(c.Alloc(5))
	b.ConnectRs2(c.Alloc(6))
	b.ConnectRdMem(c.Alloc(9))
	b.ConnectRdMemWrite(c.Alloc(1))
	b.ConnectRdWb(c.Alloc(5))
	b.ConnectRdWbWrite(c.Alloc(1))

	if got := b.AllocForward1().Read(); got != uint32(SourceMemWb) {
		t.Errorf("Forward1 = %d, want MEM/WB (%d)", got, SourceMemWb)
	}
	if got := b.AllocForward2().Read(); got != uint32(SourceRegFile) {
		t.Errorf("Forward2 = %d, want register file (%d)", got, SourceRegFile)
	}
}

func TestForwardX0NeverForwards(t *testing.T) {
	b := NewBuilder()
	var c component.Consts
	b.ConnectRs1(c.Alloc(0))
	b.ConnectRs2(c.Alloc(0))
	b.ConnectRdMem(c.Alloc(0))
	b.ConnectRdMemWrite(c.Alloc(1))
	b.ConnectRdWb(c.Alloc(0))
	b.ConnectRdWbWrite(c.Alloc(1))

	if got := b.AllocForward1().Read(); got != uint32(SourceRegFile) {
		t.Errorf("Forward1 for x0 = %d, want register file (%d)", got, SourceRegFile)
	}
}

func TestForwardRegWriteGatesMatch(t *testing.T) {
	b := NewBuilder()
	var c component.Consts
	b.ConnectRs1(c.Alloc(5))
	b.ConnectRs2(c.Alloc(5))
	b.ConnectRdMem(c.Alloc(5))
	b.ConnectRdMemWrite(c.Alloc(0)) // not actually writing
	b.ConnectRdWb(c.Alloc(5))
	b.ConnectRdWbWrite(c.Alloc(0))

	if got := b.AllocForward1().Read(); got != uint32(SourceRegFile) {
		t.Errorf("Forward1 = %d, want register file (%d) when RegWrite is deasserted", got, SourceRegFile)
	}
}
