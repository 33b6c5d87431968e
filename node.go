// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package phtree

import (
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// entry is a leaf occupant: the point it was inserted at, together with its
// payload.
type entry[K Uint, V any] struct {
	point Point[K]
	value V
}

// node is a level in the trie. Its point is the center of the subspace it
// covers: every bit at position < postfixLen is 0, and bit postfixLen is 1,
// in every dimension. infixLen counts the bits skipped on the edge from the
// parent due to path compression.
//
// A node is a leaf when postfixLen == 0; its populated slots then hold
// *entry[K,V]. Otherwise its slots hold *node[K,V] children. Which slice is
// live is decided once at construction and never changes for a given node,
// so the two slices are mutually exclusive rather than a tagged union.
type node[K Uint, V any] struct {
	point      Point[K]
	postfixLen uint8
	infixLen   uint8

	addrs    *bitset.BitSet
	children []*node[K, V]
	entries  []*entry[K, V]
}

// newNode allocates an empty inner node centered at the hypercube cell that
// contains point at the given postfix length.
func newNode[K Uint, V any](point Point[K], postfixLen, infixLen uint8) *node[K, V] {
	n := &node[K, V]{
		point:      centerOf(point, postfixLen),
		postfixLen: postfixLen,
		infixLen:   infixLen,
		addrs:      bitset.New(0),
	}
	return n
}

// newLeaf allocates an empty leaf node (postfixLen == 0).
func newLeaf[K Uint, V any](point Point[K], infixLen uint8) *node[K, V] {
	return &node[K, V]{
		point:      centerOf(point, 0),
		postfixLen: 0,
		infixLen:   infixLen,
		addrs:      bitset.New(0),
	}
}

// centerOf masks point down to the center point of the hypercube cell
// addressed by postfixLen: all bits below postfixLen cleared, bit
// postfixLen set.
func centerOf[K Uint](point Point[K], postfixLen uint8) Point[K] {
	center := make(Point[K], len(point))
	bitsW := keyBits[K]()

	var mask K
	if postfixLen+1 < bitsW {
		mask = keyMax[K]() << (postfixLen + 1)
	}
	bit := K(1) << postfixLen

	for i, k := range point {
		center[i] = (k & mask) | bit
	}
	return center
}

// init (re)initializes a node obtained from the pool as an inner node
// centered on point at postfixLen, skipping infixLen bits from its parent.
func (n *node[K, V]) init(point Point[K], postfixLen, infixLen uint8) {
	n.point = centerOf(point, postfixLen)
	n.postfixLen = postfixLen
	n.infixLen = infixLen
}

// initLeaf is like init but for a leaf node (postfixLen == 0).
func (n *node[K, V]) initLeaf(point Point[K], infixLen uint8) {
	n.init(point, 0, infixLen)
}

func (n *node[K, V]) isLeaf() bool {
	return n.postfixLen == 0
}

func (n *node[K, V]) isEmpty() bool {
	return len(n.children) == 0 && len(n.entries) == 0
}

func (n *node[K, V]) childCount() int {
	if n.isLeaf() {
		return len(n.entries)
	}
	return len(n.children)
}

// rank maps a hypercube address to its slice index via popcount, the key of
// the sparse-array compression: a set bit's slice position is the number of
// set bits at or before it, minus one.
func (n *node[K, V]) rank(addr uint) int {
	return int(n.addrs.Rank(addr)) - 1
}

// ---- child (inner-node) table ----

func (n *node[K, V]) getChild(addr uint) *node[K, V] {
	if !n.addrs.Test(addr) {
		return nil
	}
	return n.children[n.rank(addr)]
}

func (n *node[K, V]) insertChild(addr uint, child *node[K, V]) {
	n.addrs.Set(addr)
	n.children = slices.Insert(n.children, n.rank(addr), child)
}

func (n *node[K, V]) deleteChild(addr uint) {
	if !n.addrs.Test(addr) {
		return
	}
	rnk := n.rank(addr)
	n.children = slices.Delete(n.children, rnk, rnk+1)
	n.addrs.Clear(addr)
	n.addrs.Compact()
}

// ---- entry (leaf) table ----

func (n *node[K, V]) getEntry(addr uint) *entry[K, V] {
	if !n.addrs.Test(addr) {
		return nil
	}
	return n.entries[n.rank(addr)]
}

func (n *node[K, V]) insertEntry(addr uint, e *entry[K, V]) {
	n.addrs.Set(addr)
	n.entries = slices.Insert(n.entries, n.rank(addr), e)
}

func (n *node[K, V]) deleteEntry(addr uint) {
	if !n.addrs.Test(addr) {
		return
	}
	rnk := n.rank(addr)
	n.entries = slices.Delete(n.entries, rnk, rnk+1)
	n.addrs.Clear(addr)
	n.addrs.Compact()
}

// allAddrs returns every populated hypercube address in ascending order.
func (n *node[K, V]) allAddrs() []uint {
	maxAddr := 1 << len(n.point)
	all := make([]uint, 0, maxAddr)
	_, all = n.addrs.NextSetMany(0, all)
	return all
}

// reset clears a node for reuse via the node pool. Capacity of the
// underlying slices is retained.
func (n *node[K, V]) reset() {
	n.point = nil
	n.postfixLen = 0
	n.infixLen = 0
	n.addrs = bitset.New(0)
	n.children = n.children[:0]
	n.entries = n.entries[:0]
}

// cloneRec deep-copies the subtree rooted at n.
func (n *node[K, V]) cloneRec() *node[K, V] {
	c := &node[K, V]{
		point:      n.point.clone(),
		postfixLen: n.postfixLen,
		infixLen:   n.infixLen,
		addrs:      n.addrs.Clone(),
	}
	if n.isLeaf() {
		c.entries = make([]*entry[K, V], len(n.entries))
		for i, e := range n.entries {
			ec := &entry[K, V]{point: e.point.clone(), value: e.value}
			c.entries[i] = ec
		}
		return c
	}
	c.children = make([]*node[K, V], len(n.children))
	for i, child := range n.children {
		c.children[i] = child.cloneRec()
	}
	return c
}

// walkRec performs a depth-first traversal of the subtree rooted at n,
// calling visit for every stored point/value pair. Traversal stops early if
// visit returns false, and walkRec propagates that to its own caller.
func (n *node[K, V]) walkRec(visit func(Point[K], V) bool) bool {
	if n.isLeaf() {
		for _, e := range n.entries {
			if !visit(e.point, e.value) {
				return false
			}
		}
		return true
	}
	for _, addr := range n.allAddrs() {
		if !n.getChild(addr).walkRec(visit) {
			return false
		}
	}
	return true
}
