// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package phtree

import "iter"

// ForEach performs a depth-first traversal of every stored point, calling
// visit for each one. Within each node, children and entries are visited in
// ascending hypercube-address order, so an unmodified tree is always
// traversed in the same order. If visit returns false, the traversal stops
// early.
func (t *Tree[K, V, I]) ForEach(visit func(Point[K], V) bool) {
	t.root.walkRec(visit)
}

// All returns a range-over-func iterator over every (point, payload) pair
// in the tree, for use with Go's "for point, value := range tree.All()".
func (t *Tree[K, V, I]) All() iter.Seq2[Point[K], V] {
	return func(yield func(Point[K], V) bool) {
		t.root.walkRec(yield)
	}
}
