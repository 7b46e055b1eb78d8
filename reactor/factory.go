// File: reactor/factory.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Backend and Reactor construction, keyed by name so callers (and tests)
// can ask for "epoll" explicitly rather than relying on build tags alone.

package reactor

// newBackend resolves backendName to a concrete readiness backend. "auto"
// and "epoll" both resolve to the platform's native backend; unrecognized
// names fail with KindBackendUnknown (§7).
func newBackend(backendName string) (backend, error) {
	switch backendName {
	case "", "auto", "epoll":
		return newNativeBackend()
	default:
		return nil, NewBackendUnknown(backendName)
	}
}

// MakeReactor constructs a Reactor bound to threadID out of nrThreads total
// workers, using the named readiness backend ("auto" selects the native
// one for the current platform). onMessage is invoked on this reactor's own
// goroutine for every mailbox entry PollMessages drains.
func MakeReactor(backendName string, threadID, nrThreads int, onMessage OnMessageFunc) (Reactor, error) {
	return construct(backendName, threadID, nrThreads, onMessage)
}
