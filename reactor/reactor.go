// File: reactor/reactor.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// reactorCore implements the full Reactor contract (§4.1, §4.2) on top of
// any backend. Construction, registration bookkeeping, mailbox access, and
// the event loop itself live here exactly once; epoll_linux.go and
// reactor_stub.go only ever implement the narrow backend interface.

package reactor

import (
	"runtime"
	"sync"
	"unsafe"
)

type reactorCore struct {
	threadID  int
	nrThreads int
	onMessage OnMessageFunc
	backend   backend

	mu       sync.RWMutex
	registry map[int]Handle

	metrics Metrics
}

// construct builds a reactor bound to threadID out of nrThreads total
// workers, publishes its wake-fd, clears its sleep-flag, and brings up the
// requested readiness backend (§3 "Reactor (per worker)", §4.1 construct).
// The OS thread the worker actually blocks in epoll_wait on is not known
// until Run is called — it locks that goroutine down and publishes the id
// there, since construct's caller and Run's caller are not required to be
// the same goroutine.
func construct(backendName string, threadID, nrThreads int, onMessage OnMessageFunc) (*reactorCore, error) {
	if threadID < 0 || threadID >= MaxThreads || threadID >= nrThreads {
		return nil, NewInvalidArgument("threadID out of range")
	}
	be, err := newBackend(backendName)
	if err != nil {
		return nil, err
	}

	publishWakeFD(threadID, int32(be.wakeFD()))
	sleepFlags[threadID].Store(false)

	return &reactorCore{
		threadID:  threadID,
		nrThreads: nrThreads,
		onMessage: onMessage,
		backend:   be,
		registry:  make(map[int]Handle),
	}, nil
}

func (r *reactorCore) ThreadID() int { return r.threadID }

func (r *reactorCore) Register(h Handle) error {
	fd := int(h.Fd())
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, already := r.registry[fd]; already {
		r.registry[fd] = h
		return nil
	}
	if err := r.backend.add(fd); err != nil {
		return err
	}
	r.registry[fd] = h
	return nil
}

func (r *reactorCore) Deregister(h Handle) error {
	fd := int(h.Fd())
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.registry[fd]; !ok {
		return nil
	}
	delete(r.registry, fd)
	return r.backend.remove(fd)
}

// SendMsg implements §6: self-send is a programming error, a full cell is
// reported as (false, nil) so the caller can retry or spill to a
// RetryBuffer, and the target is only woken when it was actually asleep.
func (r *reactorCore) SendMsg(remoteID int, msg unsafe.Pointer) (bool, error) {
	if remoteID == r.threadID {
		return false, NewInvalidArgument("send_msg to self")
	}
	cell := fabric.Cell(remoteID, r.threadID)
	if !cell.TryEmplace(msg) {
		r.metrics.fabricFull.Add(1)
		return false, nil
	}
	if sleepFlags[remoteID].CompareAndSwap(true, false) {
		r.wakeUp(remoteID)
	}
	r.metrics.messagesSent.Add(1)
	return true, nil
}

// HasMessages is a pure, non-destructive observer (§8 invariant 4): it must
// never consume or reorder a message, only report whether one is present.
func (r *reactorCore) HasMessages() bool {
	for other := 0; other < r.nrThreads; other++ {
		if other == r.threadID {
			continue
		}
		if _, ok := fabric.Cell(r.threadID, other).Peek(); ok {
			return true
		}
	}
	return false
}

// PollMessages drains every peer column in round-robin order. Order is
// preserved within a single producer but not across producers (§6).
func (r *reactorCore) PollMessages() bool {
	delivered := false
	for other := 0; other < r.nrThreads; other++ {
		if other == r.threadID {
			continue
		}
		cell := fabric.Cell(r.threadID, other)
		for {
			msg, ok := cell.Peek()
			if !ok {
				break
			}
			r.onMessage(msg)
			cell.Pop()
			delivered = true
			r.metrics.messagesRecv.Add(1)
		}
	}
	return delivered
}

func (r *reactorCore) WakeUp(remoteID int) error {
	return r.wakeUp(remoteID)
}

func (r *reactorCore) wakeUp(remoteID int) error {
	fd := wakeFDs[remoteID].Load()
	if fd < 0 {
		// Peer hasn't published its backend yet; nothing to interrupt.
		return nil
	}
	r.metrics.wakesSent.Add(1)
	return writeWake(int(fd))
}

func (r *reactorCore) Close() error {
	return r.backend.close()
}

// Run executes the event loop of §4.2:
//  1. drain pending messages,
//  2. re-check before committing to sleep,
//  3. announce sleep intent and double-check (closes the lost-wakeup race
//     of §5 — a sender observing sleepFlag==false just before step 3 would
//     otherwise skip WakeUp while we park),
//  4. block in the backend until readiness or a wake,
//  5. dispatch.
func (r *reactorCore) Run(stop <-chan struct{}) error {
	runtime.LockOSThread()
	publishOSThreadID(r.threadID, currentOSThreadID())

	// Closing stop interrupts a parked wait through this worker's wake fd.
	exited := make(chan struct{})
	watcherDone := make(chan struct{})
	go func() {
		defer close(watcherDone)
		select {
		case <-stop:
			writeWake(r.backend.wakeFD())
		case <-exited:
		}
	}()
	defer func() {
		close(exited)
		<-watcherDone
	}()

	for {
		select {
		case <-stop:
			return nil
		default:
		}

		if r.PollMessages() {
			continue
		}
		if r.HasMessages() {
			continue
		}

		sleepFlags[r.threadID].Store(true)
		if r.HasMessages() {
			sleepFlags[r.threadID].Store(false)
			continue
		}

		ready, _, err := r.backend.wait()
		sleepFlags[r.threadID].Store(false)
		if err != nil {
			return err
		}
		r.dispatch(ready)
	}
}

func (r *reactorCore) dispatch(readyFDs []int) {
	for _, fd := range readyFDs {
		// Looked up per descriptor, so a handle deregistered by an earlier
		// callback in this batch is not invoked.
		r.mu.RLock()
		h, ok := r.registry[fd]
		r.mu.RUnlock()
		if ok {
			h.OnReadEvent()
		}
	}
}
