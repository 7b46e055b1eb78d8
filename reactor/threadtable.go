// File: reactor/threadtable.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Process-wide static state shared by every worker's Reactor: the
// sleep-flag array, the published wake-fd per worker, and the shared
// mailbox fabric. Each slot has exactly one writer thread (its owning
// worker) after construction; every other thread only ever reads it, so no
// locks are required (§5, §9 "Process-wide static tables").

package reactor

import (
	"sync/atomic"

	"github.com/momentics/sphinx-reactor/mailbox"
)

// sleepFlags[i] is true iff worker i is parked (or about to park) in its
// backend's blocking wait.
var sleepFlags [MaxThreads]atomic.Bool

// wakeFDs[i] holds the eventfd a producer writes to in order to interrupt
// worker i's blocking wait — the Go-idiomatic substitute for the original
// per-thread SIGUSR1 signal (see SPEC_FULL.md §4, "Signal-based wake").
// -1 means the slot has not been published yet.
var wakeFDs [MaxThreads]atomic.Int32

// osThreadIDs[i] records the OS thread id the worker locked itself to, for
// diagnostics/probes only; nothing in the contract depends on its value.
var osThreadIDs [MaxThreads]atomic.Int32

// fabric is the single process-wide N×N mailbox table every reactor shares.
var fabric = mailbox.NewFabric(MaxThreads, mailbox.DefaultCellCapacity)

func init() {
	for i := range wakeFDs {
		wakeFDs[i].Store(-1)
	}
}

// publishWakeFD records worker id's wake-fd so other workers' SendMsg can
// reach it.
func publishWakeFD(id int, fd int32) {
	wakeFDs[id].Store(fd)
}

// publishOSThreadID records the OS thread id the worker locked itself to.
func publishOSThreadID(id int, tid int32) {
	osThreadIDs[id].Store(tid)
}
