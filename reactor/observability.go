// File: reactor/observability.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Optional bridge from a reactorCore's counters to control's generic
// registries. Reactor itself never depends on control — a caller that wants
// process-wide diagnostics type-asserts the Reactor it got back from
// MakeReactor against Observable, the same optional-interface pattern as
// http.Flusher.

package reactor

import (
	"fmt"

	"github.com/momentics/sphinx-reactor/control"
)

// Observable is implemented by every reactorCore. Callers that don't need
// diagnostics can ignore it entirely; MakeReactor still returns a plain
// Reactor.
type Observable interface {
	PublishMetrics(registry *control.MetricsRegistry)
	RegisterDebugProbe(probes *control.DebugProbes)
}

var _ Observable = (*reactorCore)(nil)

// PublishMetrics writes r's current counters into registry under keys
// scoped by r's thread id, so one MetricsRegistry can aggregate every
// worker in the fabric.
func (r *reactorCore) PublishMetrics(registry *control.MetricsRegistry) {
	snap := r.Stats()
	prefix := fmt.Sprintf("reactor.%d.", r.threadID)
	registry.Set(prefix+"messages_sent", snap.MessagesSent)
	registry.Set(prefix+"messages_recv", snap.MessagesRecv)
	registry.Set(prefix+"wakes_sent", snap.WakesSent)
	registry.Set(prefix+"fabric_full", snap.FabricFull)
}

// RegisterDebugProbe exposes r's live stats under a probe named by its
// thread id, for ad-hoc introspection via control.DebugProbes.DumpState.
func (r *reactorCore) RegisterDebugProbe(probes *control.DebugProbes) {
	probes.RegisterProbe(fmt.Sprintf("reactor.%d", r.threadID), func() any {
		return r.Stats()
	})
}
