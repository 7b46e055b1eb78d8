// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package api

// Ring is a lock-free ring buffer contract implemented by
// core/concurrency.RingBuffer and used for the buffer pool's free-lists.
type Ring[T any] interface {
	// Enqueue adds an item, returns false if full.
	Enqueue(item T) bool
	// Dequeue removes oldest item, returns false if empty.
	Dequeue() (T, bool)
	// Len returns current number of items.
	Len() int
	// Cap returns buffer capacity.
	Cap() int
}

// ObjectPool defines a generic object pool.
type ObjectPool[T any] interface {
	Get() T
	Put(T)
}

// NumaPoolManager manages pools per NUMA node/CPU.
type NumaPoolManager[T any] interface {
	PoolForNode(nodeID int) ObjectPool[T]
	PoolForCPU(cpuID int) ObjectPool[T]
}
