// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package phtree

import (
	"sync"
	"sync/atomic"

	"github.com/bits-and-blooms/bitset"
)

// nodePool is a type-safe wrapper around sync.Pool, specialized for
// recycling *node[K,V] instances across insertions, splits and removals so
// that structural churn doesn't hand every freed node straight to the GC.
//
// It tracks allocation statistics for diagnosing pool effectiveness.
type nodePool[K Uint, V any] struct {
	sync.Pool

	totalAllocated atomic.Int64
	currentLive    atomic.Int64
}

func newNodePool[K Uint, V any]() *nodePool[K, V] {
	p := &nodePool[K, V]{}
	p.New = func() any {
		p.totalAllocated.Add(1)
		return new(node[K, V])
	}
	return p
}

// get retrieves a *node[K,V] from the pool, or allocates a new one. The
// returned node always has an initialized, empty bitset.
func (p *nodePool[K, V]) get() *node[K, V] {
	var n *node[K, V]
	if p == nil {
		n = new(node[K, V])
	} else {
		p.currentLive.Add(1)
		n = p.Pool.Get().(*node[K, V])
	}
	if n.addrs == nil {
		n.addrs = bitset.New(0)
	}
	return n
}

// put returns n to the pool after resetting it.
func (p *nodePool[K, V]) put(n *node[K, V]) {
	if p == nil {
		return
	}
	p.currentLive.Add(-1)
	n.reset()
	p.Pool.Put(n)
}

// stats returns the number of currently live (checked-out) nodes and the
// total ever allocated by this pool.
func (p *nodePool[K, V]) stats() (live, total int64) {
	if p == nil {
		return 0, 0
	}
	return p.currentLive.Load(), p.totalAllocated.Load()
}
