// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package phtree

// Insert adds idx's point to the tree if absent, and returns the stored
// payload: the newly-created one if this is the point's first insertion, or
// the existing one unchanged if the point was already present. Insert never
// overwrites a payload that already exists at a point.
func (t *Tree[K, V, I]) Insert(idx I) V {
	point := t.hooks.PointOf(idx)
	t.validatePoint(point)

	e, created := t.insertPoint(point, func() V { return t.hooks.PayloadFactory(idx) })
	if created {
		t.size++
	}
	return e.value
}

// InsertBox adds idx's box to a tree of even dimensionality under the
// box-as-point encoding: the box's low and high corners, extracted with
// hooks.BoxPointOf, are concatenated into one full-dimension point before
// insertion. InsertBox panics if hooks.BoxPointOf is nil.
func (t *Tree[K, V, I]) InsertBox(idx I) V {
	if t.hooks.BoxPointOf == nil {
		panic("phtree: BoxPointOf hook is required for InsertBox")
	}
	lo, hi := t.hooks.BoxPointOf(idx)
	point := append(append(make(Point[K], 0, len(lo)+len(hi)), lo...), hi...)
	t.validatePoint(point)

	e, created := t.insertPoint(point, func() V { return t.hooks.PayloadFactory(idx) })
	if created {
		t.size++
	}
	return e.value
}

// insertPoint is the core descent-and-split engine (C5). It walks inner
// nodes from the root, using each node's postfix length to address the next
// child, and splits a path-compressed edge whenever the inserted point
// diverges from the edge's stored prefix above the child's own postfix
// length.
func (t *Tree[K, V, I]) insertPoint(point Point[K], makeValue func() V) (*entry[K, V], bool) {
	current := t.root

	for {
		addr := hypercubeAddress(point, current.postfixLen)
		child := current.getChild(addr)

		if child == nil {
			leaf := t.pool.get()
			leaf.initLeaf(point, current.postfixLen-1)
			e := &entry[K, V]{point: point.clone(), value: makeValue()}
			leaf.insertEntry(hypercubeAddress(point, 0), e)
			current.insertChild(addr, leaf)
			return e, true
		}

		if !prefixEqual(point, child.point, child.postfixLen) {
			e := t.splitAndInsert(current, addr, child, point, makeValue)
			return e, true
		}

		if child.isLeaf() {
			addr2 := hypercubeAddress(point, 0)
			if existing := child.getEntry(addr2); existing != nil {
				// prefixEqual already matched every bit above this leaf's
				// postfix length (0), and addr2 is exactly that last bit
				// per dimension, so an address match here is a full point
				// match.
				return existing, false
			}
			e := &entry[K, V]{point: point.clone(), value: makeValue()}
			child.insertEntry(addr2, e)
			return e, true
		}

		current = child
	}
}

// splitAndInsert inserts a new inner node between current and child at the
// highest bit position where point diverges from child's stored point,
// moving child below it and adding a fresh leaf for point as its sibling.
// This is the patricia split that keeps the trie path-compressed instead of
// growing one level per bit.
func (t *Tree[K, V, I]) splitAndInsert(
	current *node[K, V], addr uint, child *node[K, V],
	point Point[K], makeValue func() V,
) *entry[K, V] {
	splitBit := divergingBit(point, child.point)

	split := t.pool.get()
	split.init(point, splitBit, current.postfixLen-splitBit-1)

	child.infixLen = splitBit - child.postfixLen - 1
	childAddr := hypercubeAddress(child.point, splitBit)
	split.insertChild(childAddr, child)

	leaf := t.pool.get()
	leaf.initLeaf(point, splitBit-1)
	e := &entry[K, V]{point: point.clone(), value: makeValue()}
	leaf.insertEntry(hypercubeAddress(point, 0), e)
	pointAddr := hypercubeAddress(point, splitBit)
	split.insertChild(pointAddr, leaf)

	idx := current.rank(addr)
	current.children[idx] = split

	return e
}
