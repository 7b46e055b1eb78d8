// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package reactor implements the shared-nothing, per-worker event reactor:
// edge-triggered readiness polling over registered sockets, a sleep-flag
// gated blocking wait, and a lock-free cross-worker mailbox fabric used to
// pass messages between reactors without any shared mutable state besides
// the fabric itself and the published wake-fds (see threadtable.go).
//
// Concrete platforms only ever implement the narrow backend interface
// (epoll+eventfd on Linux, via epoll_linux.go; a degraded stub elsewhere,
// via reactor_stub.go). Everything else — registration bookkeeping,
// SendMsg/HasMessages/PollMessages, and the Run loop itself — lives once in
// reactor.go and is shared by every backend.
package reactor
