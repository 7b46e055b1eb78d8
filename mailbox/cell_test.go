package mailbox

import (
	"testing"
	"unsafe"
)

func ptrOf(i int) unsafe.Pointer {
	v := i
	return unsafe.Pointer(&v)
}

func TestCellFillAndDrain(t *testing.T) {
	c := NewCell(4) // rounds up to 4
	for i := 0; i < c.Cap(); i++ {
		if !c.TryEmplace(ptrOf(i)) {
			t.Fatalf("unexpected full at %d", i)
		}
	}
	if c.TryEmplace(ptrOf(99)) {
		t.Fatal("expected cell full")
	}

	for i := 0; i < c.Cap(); i++ {
		v, ok := c.Peek()
		if !ok {
			t.Fatalf("expected element at pop %d", i)
		}
		if got := *(*int)(v); got != i {
			t.Fatalf("order violated: want %d got %d", i, got)
		}
		c.Pop()
	}
	if _, ok := c.Peek(); ok {
		t.Fatal("expected empty cell")
	}
}

func TestCellPeekIsNonDestructive(t *testing.T) {
	c := NewCell(8)
	c.TryEmplace(ptrOf(1))
	for i := 0; i < 5; i++ {
		v, ok := c.Peek()
		if !ok || *(*int)(v) != 1 {
			t.Fatalf("peek #%d altered state", i)
		}
	}
	if c.Len() != 1 {
		t.Fatalf("peek consumed an element, len=%d", c.Len())
	}
}

func TestFabricRejectsSelfImplicitly(t *testing.T) {
	f := NewFabric(3, 8)
	if f.Cell(0, 1) == nil || f.Cell(1, 0) == nil {
		t.Fatal("expected off-diagonal cells to be allocated")
	}
	if f.Cell(0, 0) != nil {
		t.Fatal("diagonal cell must stay nil; send_msg(self,_) never reaches the fabric")
	}
}

func TestRetryBufferPreservesOrder(t *testing.T) {
	cell := NewCell(2)
	rb := NewRetryBuffer()
	rb.Hold(ptrOf(1))
	rb.Hold(ptrOf(2))
	rb.Hold(ptrOf(3))

	moved := rb.Drain(cell)
	if moved != 2 {
		t.Fatalf("expected 2 moved into a 2-capacity cell, got %d", moved)
	}
	if rb.Pending() != 1 {
		t.Fatalf("expected 1 still pending, got %d", rb.Pending())
	}
	v, _ := cell.Peek()
	if *(*int)(v) != 1 {
		t.Fatal("order violated on drain")
	}
}
