package mtobjects

import "sync/atomic"

// testObject is the minimal Object implementation used across this
// package's tests. mutable edges are followed by BuildClusters; const
// edges are resolved to a DepSet bit at analysis time by asking the
// dependency for its current cluster handle, mirroring how a real
// caller's EnumerateConstDependencies would look up a peer's cluster.
type testObject struct {
	name      string
	handle    TIndex
	mutable   []*testObject
	constDeps []*testObject
	ran       int32
}

func newTestObject(name string) *testObject {
	return &testObject{name: name, handle: NullIndex}
}

func (o *testObject) EnumerateMutableDependencies(out *ChunkedStack[Object]) {
	for _, d := range o.mutable {
		out.PushBack(Object(d))
	}
}

func (o *testObject) EnumerateConstDependencies(out *DepSet) {
	for _, d := range o.constDeps {
		out.Set(*d.ClusterHandle())
	}
}

func (o *testObject) Task() { atomic.AddInt32(&o.ran, 1) }

func (o *testObject) ClusterHandle() *TIndex { return &o.handle }

// linkMutable records a symmetric mutable-dependency edge between a and
// b, as BuildClusters expects every edge that must stay within one
// cluster to be reachable from either endpoint.
func linkMutable(a, b *testObject) {
	a.mutable = append(a.mutable, b)
	b.mutable = append(b.mutable, a)
}

// linkMutableOneWay records an edge only on from's side. BuildClusters
// still unions the two objects correctly once from is reached, since
// every object is considered as a possible traversal root or successor
// regardless of which side recorded the edge; this helper exists purely
// to force a specific discovery order in tests.
func linkMutableOneWay(from, to *testObject) {
	from.mutable = append(from.mutable, to)
}

// linkConst records a one-directional read-only dependency: from
// const-depends-on to.
func linkConst(from, to *testObject) {
	from.constDeps = append(from.constDeps, to)
}

func toObjects(ts []*testObject) []Object {
	out := make([]Object, len(ts))
	for i, t := range ts {
		out[i] = t
	}
	return out
}

func newTestPool() *ChunkPool[Object] {
	return NewChunkPool[Object](maxPoolChunks, 64)
}
