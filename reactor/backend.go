// File: reactor/backend.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// backend is the narrow readiness-polling contract concrete platform
// implementations (epoll_linux.go, reactor_stub.go) satisfy. reactorCore
// builds the full Reactor contract on top of any backend, so the
// sleep-flag/wake/dispatch logic in reactor.go is written exactly once.

package reactor

// backend abstracts the OS readiness-notification facility (§4.7).
type backend interface {
	// add registers fd for edge-triggered read readiness.
	add(fd int) error
	// remove unregisters fd; pending events for it are discarded.
	remove(fd int) error
	// wait blocks until at least one descriptor is ready or the backend's
	// own wake-fd fires. Returns the ready application descriptors (the
	// wake-fd itself is filtered out and reported via woken) and whether
	// this call was (also) triggered by a wake.
	wait() (ready []int, woken bool, err error)
	// wakeFD returns the descriptor other workers write to in order to
	// interrupt this backend's wait.
	wakeFD() int
	// close releases backend resources.
	close() error
}
