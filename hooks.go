package phtree

// Hooks binds a Tree to the caller's index type I: the type the caller
// actually works with (an entity ID, a struct embedding a point, etc.),
// keeping the trie itself ignorant of anything beyond points and opaque
// payloads.
//
// PointOf extracts the indexed point from idx; it is called on every
// Insert/Find/Remove. PayloadFactory builds the payload stored for a
// newly-inserted point; it is only called the first time a point is
// inserted, mirroring the allocator hook of the reference implementation.
// PayloadDestroy, if set, is called when a payload is evicted by Remove or
// Clear, the Go analogue of the reference implementation's free hook — it
// may be left nil when V needs no explicit teardown.
//
// BoxPointOf, if set, extracts a (min, max) box from idx for insertion into
// a tree of even dimensionality using the box-as-point encoding (see
// Tree.InsertBox).
type Hooks[K Uint, V any, I any] struct {
	PointOf        func(I) Point[K]
	PayloadFactory func(I) V
	PayloadDestroy func(V)
	BoxPointOf     func(I) (min, max Point[K])
}
