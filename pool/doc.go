// Package pool
// Author: momentics <momentics@gmail.com>
//
// NUMA-aware, lock-free, zero-copy buffer pooling for the reactor's receive
// path. Cross-platform (Linux/Windows), built for ultra-low-latency,
// high-throughput workloads.
// See bufferpool.go, buffer_ring.go for implementation details.
package pool
