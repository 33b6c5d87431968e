// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package phtree

import set3 "github.com/TomTonic/Set3"

// PayloadCollector is a ready-made visitor for ForEach and Query: it appends
// every payload it is handed, in visit order, the "caller owned collector
// that appends each payload" pattern windowed queries are commonly driven
// with. Payloads are kept one entry per visited point, so two points with
// equal-valued payloads both appear.
type PayloadCollector[K Uint, V any] struct {
	values []V
}

// NewPayloadCollector returns an empty PayloadCollector.
func NewPayloadCollector[K Uint, V any]() *PayloadCollector[K, V] {
	return &PayloadCollector[K, V]{}
}

// Visit satisfies the ForEach/Query visitor signature: append v and keep
// going.
func (c *PayloadCollector[K, V]) Visit(_ Point[K], v V) bool {
	c.values = append(c.values, v)
	return true
}

// Len reports how many payloads have been collected, including duplicates.
func (c *PayloadCollector[K, V]) Len() int {
	return len(c.values)
}

// Values returns the collected payloads, in visit order.
func (c *PayloadCollector[K, V]) Values() []V {
	return c.values
}

// Reset empties the collector for reuse.
func (c *PayloadCollector[K, V]) Reset() {
	c.values = c.values[:0]
}

// PayloadSet is a deduplicating variant of PayloadCollector, for callers
// that want the set of distinct payloads seen rather than one entry per
// visited point. V must be comparable, since deduplication is set
// membership, not slice append.
type PayloadSet[K Uint, V comparable] struct {
	values *set3.Set3[V]
}

// NewPayloadSet returns an empty PayloadSet.
func NewPayloadSet[K Uint, V comparable]() *PayloadSet[K, V] {
	return &PayloadSet[K, V]{values: set3.Empty[V]()}
}

// Visit satisfies the ForEach/Query visitor signature: add v to the
// collected set and keep going.
func (c *PayloadSet[K, V]) Visit(_ Point[K], v V) bool {
	c.values.Add(v)
	return true
}

// Len reports how many distinct payloads have been collected.
func (c *PayloadSet[K, V]) Len() int {
	return c.values.Len()
}

// Contains reports whether v was collected.
func (c *PayloadSet[K, V]) Contains(v V) bool {
	return c.values.Contains(v)
}

// Values returns the collected distinct payloads as a plain slice.
func (c *PayloadSet[K, V]) Values() []V {
	return c.values.ToSlice()
}

// Reset empties the set for reuse.
func (c *PayloadSet[K, V]) Reset() {
	c.values = set3.Empty[V]()
}
