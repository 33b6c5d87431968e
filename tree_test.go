package phtree

import (
	"math/rand/v2"
	"testing"
)

// idx2D is a minimal index type: just the point itself. hooks2D gives every
// point the same constant payload, "payload".
type idx2D struct {
	p Point[uint32]
}

func hooks2D() Hooks[uint32, string, idx2D] {
	return Hooks[uint32, string, idx2D]{
		PointOf: func(i idx2D) Point[uint32] { return i.p },
		PayloadFactory: func(i idx2D) string {
			return "payload"
		},
	}
}

func newTestTree() *Tree[uint32, string, idx2D] {
	return New[uint32, string, idx2D](2, hooks2D())
}

func TestTreeInsertFindRemove(t *testing.T) {
	tr := newTestTree()

	if !tr.Empty() {
		t.Fatal("new tree should be empty")
	}

	p := Point[uint32]{10, 20}
	tr.Insert(idx2D{p})

	if tr.Empty() {
		t.Fatal("tree should not be empty after insert")
	}
	if tr.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tr.Len())
	}

	val, ok := tr.Find(idx2D{p})
	if !ok || val != "payload" {
		t.Fatalf("Find = %q, %v; want payload, true", val, ok)
	}

	_, ok = tr.Find(idx2D{Point[uint32]{10, 21}})
	if ok {
		t.Fatal("Find should miss a point that was never inserted")
	}

	removed, ok := tr.Remove(idx2D{p})
	if !ok || removed != "payload" {
		t.Fatalf("Remove = %q, %v; want payload, true", removed, ok)
	}
	if !tr.Empty() {
		t.Fatal("tree should be empty after removing its only point")
	}

	_, ok = tr.Remove(idx2D{p})
	if ok {
		t.Fatal("Remove of an already-removed point should report false")
	}
}

func TestTreeInsertDoesNotOverwrite(t *testing.T) {
	calls := 0
	tr := New[uint32, int, idx2D](2, Hooks[uint32, int, idx2D]{
		PointOf: func(i idx2D) Point[uint32] { return i.p },
		PayloadFactory: func(i idx2D) int {
			calls++
			return calls
		},
	})

	p := Point[uint32]{5, 5}
	first := tr.Insert(idx2D{p})
	second := tr.Insert(idx2D{p})

	if first != second {
		t.Errorf("second Insert of the same point returned %d, want %d (no overwrite)", second, first)
	}
	if calls != 1 {
		t.Errorf("PayloadFactory called %d times, want 1", calls)
	}
}

func TestTreeSplitOnDivergingPoints(t *testing.T) {
	tr := newTestTree()

	points := []Point[uint32]{
		{0, 0},
		{1, 0},
		{0, 1},
		{1 << 31, 1 << 31},
		{1<<31 + 1, 1 << 31},
	}

	for _, p := range points {
		tr.Insert(idx2D{p})
	}

	if tr.Len() != len(points) {
		t.Fatalf("Len() = %d, want %d", tr.Len(), len(points))
	}

	for _, p := range points {
		if _, ok := tr.Find(idx2D{p}); !ok {
			t.Errorf("Find(%v) missed after split-heavy insertion", p)
		}
	}
}

func TestTreeRemoveCollapsesSingleChildNodes(t *testing.T) {
	tr := newTestTree()

	// a and b share the top bit (so both route to the same root child) but
	// diverge at bit 30, forcing a split node between the root and their
	// two leaves; removing a should collapse that split node away.
	a := Point[uint32]{0, 0}
	b := Point[uint32]{0, 1 << 30}

	tr.Insert(idx2D{a})
	tr.Insert(idx2D{b})

	if _, ok := tr.Remove(idx2D{a}); !ok {
		t.Fatal("Remove(a) should succeed")
	}

	if _, ok := tr.Find(idx2D{b}); !ok {
		t.Fatal("b should still be found after removing a and collapsing the split node")
	}
	if tr.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tr.Len())
	}

	if _, ok := tr.Remove(idx2D{b}); !ok {
		t.Fatal("Remove(b) should succeed")
	}
	if !tr.Empty() {
		t.Fatal("tree should be empty after removing both points")
	}
}

func TestTreeRandomizedInsertFindRemove(t *testing.T) {
	tr := newTestTree()
	rng := rand.New(rand.NewPCG(1, 2))

	seen := map[[2]uint32]bool{}
	var points []Point[uint32]

	const n = 500
	for len(points) < n {
		p := Point[uint32]{rng.Uint32() % 1000, rng.Uint32() % 1000}
		key := [2]uint32{p[0], p[1]}
		if seen[key] {
			continue
		}
		seen[key] = true
		points = append(points, p)
		tr.Insert(idx2D{p})
	}

	if tr.Len() != n {
		t.Fatalf("Len() = %d, want %d", tr.Len(), n)
	}

	for _, p := range points {
		if _, ok := tr.Find(idx2D{p}); !ok {
			t.Fatalf("Find(%v) missed", p)
		}
	}

	// remove half, in a different order than insertion
	rng.Shuffle(len(points), func(i, j int) { points[i], points[j] = points[j], points[i] })
	removed := points[:n/2]
	remaining := points[n/2:]

	for _, p := range removed {
		if _, ok := tr.Remove(idx2D{p}); !ok {
			t.Fatalf("Remove(%v) should succeed", p)
		}
	}

	if tr.Len() != n-n/2 {
		t.Fatalf("Len() = %d, want %d", tr.Len(), n-n/2)
	}

	for _, p := range removed {
		if _, ok := tr.Find(idx2D{p}); ok {
			t.Fatalf("Find(%v) should miss after removal", p)
		}
	}
	for _, p := range remaining {
		if _, ok := tr.Find(idx2D{p}); !ok {
			t.Fatalf("Find(%v) should still hit", p)
		}
	}
}

func TestTreeClear(t *testing.T) {
	tr := newTestTree()
	for i := uint32(0); i < 10; i++ {
		tr.Insert(idx2D{Point[uint32]{i, i * 2}})
	}
	tr.Clear()
	if !tr.Empty() || tr.Len() != 0 {
		t.Fatal("Clear should empty the tree")
	}
	tr.Insert(idx2D{Point[uint32]{1, 2}})
	if tr.Len() != 1 {
		t.Fatal("tree should be usable again after Clear")
	}
}

func TestTreeClone(t *testing.T) {
	tr := newTestTree()
	tr.Insert(idx2D{Point[uint32]{1, 1}})
	tr.Insert(idx2D{Point[uint32]{2, 2}})

	clone := tr.Clone()
	clone.Insert(idx2D{Point[uint32]{3, 3}})

	if tr.Len() != 2 {
		t.Errorf("original Len() = %d, want 2 (unaffected by clone mutation)", tr.Len())
	}
	if clone.Len() != 3 {
		t.Errorf("clone Len() = %d, want 3", clone.Len())
	}
	if _, ok := tr.Find(idx2D{Point[uint32]{3, 3}}); ok {
		t.Error("original should not see points inserted into the clone")
	}
}

func TestTreeDimsMismatchPanics(t *testing.T) {
	tr := newTestTree()
	defer func() {
		if recover() == nil {
			t.Fatal("Insert with wrong dimensionality should panic")
		}
	}()
	tr.Insert(idx2D{Point[uint32]{1, 2, 3}})
}
