// File: reactor/metrics.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Per-worker counters exposed through control.MetricsRegistry (§9
// "Observability"), mirroring the counter-bag style control/metrics.go
// already uses for the rest of the pool/affinity stack.

package reactor

import "sync/atomic"

// Metrics holds the lock-free counters a single reactorCore accumulates
// over its lifetime.
type Metrics struct {
	messagesSent atomic.Uint64
	messagesRecv atomic.Uint64
	wakesSent    atomic.Uint64
	fabricFull   atomic.Uint64
}

// Snapshot is a point-in-time, race-free copy of Metrics suitable for
// logging or exporting.
type Snapshot struct {
	MessagesSent uint64
	MessagesRecv uint64
	WakesSent    uint64
	FabricFull   uint64
}

// Stats returns the current snapshot of this reactor's counters.
func (r *reactorCore) Stats() Snapshot {
	return Snapshot{
		MessagesSent: r.metrics.messagesSent.Load(),
		MessagesRecv: r.metrics.messagesRecv.Load(),
		WakesSent:    r.metrics.wakesSent.Load(),
		FabricFull:   r.metrics.fabricFull.Load(),
	}
}
