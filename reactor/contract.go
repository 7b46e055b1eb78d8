// File: reactor/contract.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The Reactor contract (§4.1): register/deregister sockets, run the event
// loop, exchange cross-worker messages, and wake a sleeping peer. Concrete
// backends (epoll on Linux) implement the readiness half; reactorCore
// (reactor.go) implements the rest once, on top of any backend.

package reactor

import "unsafe"

// MaxThreads upper-bounds the worker count; the thread table and the
// mailbox fabric are sized to it at process start (§3, §5).
const MaxThreads = 64

// Handle is anything that can be registered with a Reactor for
// edge-triggered read readiness: TCPListener, TCPSocket, UDPSocket.
type Handle interface {
	// Fd returns the OS descriptor to watch.
	Fd() uintptr
	// OnReadEvent is invoked by the owning reactor when the descriptor is
	// readable. Implementations must drain until the underlying syscall
	// would block, per the edge-triggered contract.
	OnReadEvent()
}

// OnMessageFunc is invoked on the recipient thread for each delivered
// mailbox entry (§6).
type OnMessageFunc func(msg unsafe.Pointer)

// Reactor is the per-worker event-loop contract (§4.1).
type Reactor interface {
	// Register enrolls handle for edge-triggered read readiness.
	// Idempotent per descriptor.
	Register(handle Handle) error

	// Deregister removes handle from the readiness set; any events for its
	// descriptor already returned by the backend but not yet dispatched are
	// discarded.
	Deregister(handle Handle) error

	// SendMsg enqueues msg into cell [remoteID][self]. Returns
	// (false, nil) when the target cell is full — the caller retains
	// ownership of msg. Returns a KindInvalidArgument error when
	// remoteID == self; no mailbox state changes in that case.
	SendMsg(remoteID int, msg unsafe.Pointer) (bool, error)

	// HasMessages performs a non-destructive scan across every peer cell
	// of the recipient column; it never consumes or reorders messages.
	HasMessages() bool

	// PollMessages drains every peer cell of the recipient column,
	// invoking the on-message callback for each entry in the producer's
	// enqueue order (no ordering guarantee across producers). Returns true
	// iff at least one message was delivered.
	PollMessages() bool

	// Run executes the event loop (§4.2) until stop is closed.
	Run(stop <-chan struct{}) error

	// WakeUp sends the wake signal to remoteID's registered backend.
	WakeUp(remoteID int) error

	// ThreadID returns this reactor's own worker index.
	ThreadID() int

	// Close releases the backend's resources (e.g. the epoll fd and the
	// wake eventfd). Registered handles are not closed; their owners are.
	Close() error
}
