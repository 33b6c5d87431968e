// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package phtree

// Find looks up idx's point and reports its payload and whether it was
// present.
func (t *Tree[K, V, I]) Find(idx I) (V, bool) {
	point := t.hooks.PointOf(idx)
	t.validatePoint(point)

	e, ok := t.findEntry(point)
	if !ok {
		var zero V
		return zero, false
	}
	return e.value, true
}

// findEntry descends the trie following the same address/prefix rules as
// insertPoint, but never mutates: any prefix mismatch or missing child means
// the point is absent.
func (t *Tree[K, V, I]) findEntry(point Point[K]) (*entry[K, V], bool) {
	current := t.root

	for {
		addr := hypercubeAddress(point, current.postfixLen)
		child := current.getChild(addr)
		if child == nil {
			return nil, false
		}

		if !prefixEqual(point, child.point, child.postfixLen) {
			return nil, false
		}

		if child.isLeaf() {
			e := child.getEntry(hypercubeAddress(point, 0))
			if e == nil {
				return nil, false
			}
			return e, true
		}

		current = child
	}
}
