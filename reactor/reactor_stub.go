//go:build !linux
// +build !linux

// File: reactor/reactor_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Degraded backend for non-Linux platforms: the shared-nothing contract
// (fabric, sleep-flags, Run loop) is platform-neutral, but edge-triggered
// readiness and the eventfd wake channel are Linux-specific (§4.7, §9).
// This backend keeps the package buildable elsewhere — as the teacher's
// own reactor_windows.go/iocp_reactor.go did for the WS reactor — by
// polling registered descriptors cooperatively. Other workers cannot
// interrupt its wait: its wake fd is -1 and nothing sends on its internal
// wake channel, so a new mailbox entry is noticed at the next poll interval.

package reactor

import "time"

const stubPollInterval = 10 * time.Millisecond

type stubBackend struct {
	fds     map[int]struct{}
	wake    chan struct{}
	closeCh chan struct{}
}

func newNativeBackend() (backend, error) {
	return &stubBackend{
		fds:     make(map[int]struct{}),
		wake:    make(chan struct{}, 1),
		closeCh: make(chan struct{}),
	}, nil
}

func (b *stubBackend) add(fd int) error {
	b.fds[fd] = struct{}{}
	return nil
}

func (b *stubBackend) remove(fd int) error {
	delete(b.fds, fd)
	return nil
}

// wait has no OS-level readiness notification to block on outside Linux, so
// it degrades to a short cooperative sleep, reporting every registered
// descriptor as a wait() caller must still ask each handle whether it is
// actually readable before acting.
func (b *stubBackend) wait() (ready []int, woken bool, err error) {
	select {
	case <-b.wake:
		return nil, true, nil
	case <-time.After(stubPollInterval):
	}
	ready = make([]int, 0, len(b.fds))
	for fd := range b.fds {
		ready = append(ready, fd)
	}
	return ready, false, nil
}

func (b *stubBackend) wakeFD() int { return -1 }

func (b *stubBackend) close() error {
	close(b.closeCh)
	return nil
}

// writeWake has no real fd to write to on this backend. Since wakeFD reports
// -1, wakeUp returns before reaching it and wakesSent is not incremented;
// the stub relies on its poll interval to notice new mailbox entries rather
// than a true interrupt.
func writeWake(fd int) error { return nil }

func currentOSThreadID() int32 { return 0 }
