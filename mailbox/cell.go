// File: mailbox/cell.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Cell is a fixed-capacity SPSC ring of opaque pointers. It supports a
// non-destructive Peek in addition to Pop so callers can implement
// has-messages-without-draining semantics (§4.1/§4.6 of the reactor core
// specification) on top of the same storage Pop consumes from.

package mailbox

import (
	"sync/atomic"
	"unsafe"
)

// Cell is a single-producer/single-consumer bounded ring of unsafe.Pointer.
// Exactly one goroutine may call TryEmplace; exactly one goroutine may call
// Peek/Pop. Capacity is rounded up to the next power of two.
type Cell struct {
	head atomic.Uint64 // consumer-owned index
	_    [56]byte       // separate head/tail cache lines
	tail atomic.Uint64 // producer-owned index
	_    [56]byte
	mask uint64
	buf  []unsafe.Pointer
}

// NewCell allocates a cell with the given minimum capacity, rounded up to a
// power of two.
func NewCell(capacity int) *Cell {
	if capacity < 2 {
		capacity = 2
	}
	size := 1
	for size < capacity {
		size <<= 1
	}
	return &Cell{
		mask: uint64(size - 1),
		buf:  make([]unsafe.Pointer, size),
	}
}

// TryEmplace enqueues msg. Returns false without blocking if the cell is full.
// Only the cell's single producer may call this.
func (c *Cell) TryEmplace(msg unsafe.Pointer) bool {
	tail := c.tail.Load()
	head := c.head.Load()
	if tail-head == uint64(len(c.buf)) {
		return false
	}
	c.buf[tail&c.mask] = msg
	c.tail.Store(tail + 1)
	return true
}

// Peek returns the front element without consuming it. Safe to call any
// number of times without affecting Pop order or count (invariant #4 of the
// reactor core specification).
func (c *Cell) Peek() (unsafe.Pointer, bool) {
	head := c.head.Load()
	tail := c.tail.Load()
	if head == tail {
		return nil, false
	}
	return c.buf[head&c.mask], true
}

// Pop discards the front element. The caller must have observed it via Peek
// first; Pop does not itself return the value to keep the Peek/Pop split
// explicit at call sites (mirrors front()/pop() in the original C++ queue).
func (c *Cell) Pop() {
	head := c.head.Load()
	c.head.Store(head + 1)
}

// Len returns the approximate number of queued entries.
func (c *Cell) Len() int {
	return int(c.tail.Load() - c.head.Load())
}

// Cap returns the cell's fixed capacity.
func (c *Cell) Cap() int {
	return len(c.buf)
}
