// File: mailbox/retry.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// RetryBuffer is an optional, non-hot-path helper for callers that want to
// hold messages SendMsg reported as not-enqueued (a full fabric cell)
// instead of dropping them. It never touches the fabric itself beyond the
// non-blocking TryEmplace calls Drain makes, so it cannot turn SendMsg into
// a blocking operation.

package mailbox

import (
	"unsafe"

	"github.com/eapache/queue"
)

// RetryBuffer holds pending opaque pointers for a single sender in enqueue
// order, backed by eapache/queue's auto-growing ring buffer.
type RetryBuffer struct {
	q *queue.Queue
}

// NewRetryBuffer creates an empty retry buffer.
func NewRetryBuffer() *RetryBuffer {
	return &RetryBuffer{q: queue.New()}
}

// Hold appends msg to the back of the buffer.
func (r *RetryBuffer) Hold(msg unsafe.Pointer) {
	r.q.Add(msg)
}

// Pending returns the number of messages currently held.
func (r *RetryBuffer) Pending() int {
	return r.q.Length()
}

// Drain attempts to push every held message into cell, in hold order,
// stopping at the first message the cell still rejects (preserving
// per-sender enqueue order, §5). It returns the number of messages
// successfully handed off.
func (r *RetryBuffer) Drain(cell *Cell) int {
	moved := 0
	for r.q.Length() > 0 {
		msg := r.q.Peek().(unsafe.Pointer)
		if !cell.TryEmplace(msg) {
			break
		}
		r.q.Remove()
		moved++
	}
	return moved
}
