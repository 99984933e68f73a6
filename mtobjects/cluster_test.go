package mtobjects

import (
	"testing"

	"github.com/k4210/mtobjects/build"
)

func TestBuildClustersDisjointObjectsStaySeparate(t *testing.T) {
	a, b, c := newTestObject("a"), newTestObject("b"), newTestObject("c")
	pool := newTestPool()

	clusters, err := BuildClusters(pool, toObjects([]*testObject{a, b, c}))
	if err != nil {
		t.Fatalf("BuildClusters: %v", err)
	}

	live := liveClusters(clusters)
	if len(live) != 3 {
		t.Fatalf("got %d live clusters, want 3", len(live))
	}
	if a.handle == b.handle || a.handle == c.handle || b.handle == c.handle {
		t.Fatal("unrelated objects should land in distinct clusters")
	}
}

func TestBuildClustersMergesConnectedComponent(t *testing.T) {
	a, b, c, d := newTestObject("a"), newTestObject("b"), newTestObject("c"), newTestObject("d")
	linkMutable(a, b)
	linkMutable(b, c)
	// d is unrelated.
	pool := newTestPool()

	clusters, err := BuildClusters(pool, toObjects([]*testObject{a, b, c, d}))
	if err != nil {
		t.Fatalf("BuildClusters: %v", err)
	}

	if a.handle != b.handle || b.handle != c.handle {
		t.Fatalf("a, b, c should share one cluster; got handles %d %d %d", a.handle, b.handle, c.handle)
	}
	if d.handle == a.handle {
		t.Fatal("d has no edge to a/b/c and should not share their cluster")
	}

	if err := checkClustersCoherent(clusters); err != nil {
		t.Fatalf("checkClustersCoherent: %v", err)
	}
}

func TestBuildClustersFullyConnectedGraphIsOneCluster(t *testing.T) {
	objs := make([]*testObject, 10)
	for i := range objs {
		objs[i] = newTestObject("o")
	}
	for i := 1; i < len(objs); i++ {
		linkMutable(objs[0], objs[i])
	}
	pool := newTestPool()

	clusters, err := BuildClusters(pool, toObjects(objs))
	if err != nil {
		t.Fatalf("BuildClusters: %v", err)
	}
	if len(liveClusters(clusters)) != 1 {
		t.Fatalf("expected exactly one live cluster, got %d", len(liveClusters(clusters)))
	}
	for _, o := range objs {
		if o.handle != objs[0].handle {
			t.Errorf("object %p not in the single cluster", o)
		}
	}
}

func TestBuildClustersEmptyInput(t *testing.T) {
	pool := newTestPool()
	clusters, err := BuildClusters(pool, nil)
	if err != nil {
		t.Fatalf("BuildClusters(nil): %v", err)
	}
	if len(clusters) != 0 {
		t.Fatalf("expected no clusters for empty input, got %d", len(clusters))
	}
}

func TestBuildClustersTailPopShrinksArray(t *testing.T) {
	// a-b-c form one cluster (processed first, ending up the larger
	// side). x is a fresh root processed next, so its cluster is the
	// array's last slot; when x's own edge to a forces a merge, x's
	// just-created cluster is the small side and still the tail, so
	// BuildClusters should pop it instead of leaving a hole.
	a, b, c, x := newTestObject("a"), newTestObject("b"), newTestObject("c"), newTestObject("x")
	linkMutable(a, b)
	linkMutable(b, c)
	// Recorded only on x's side, so a's own traversal (root-processed
	// first) never discovers x; x is only linked in once it becomes a
	// root of its own and the merge path runs.
	linkMutableOneWay(x, a)
	pool := newTestPool()

	clusters, err := BuildClusters(pool, toObjects([]*testObject{a, b, c, x}))
	if err != nil {
		t.Fatalf("BuildClusters: %v", err)
	}
	if len(clusters) != 1 {
		t.Fatalf("expected the tail-pop to leave exactly one array slot, got %d", len(clusters))
	}
	for _, o := range []*testObject{a, b, c, x} {
		if o.handle != a.handle {
			t.Errorf("object %s not merged into the surviving cluster", o.name)
		}
	}
}

func TestBuildClustersLeavesHoleWhenMergedClusterIsNotTail(t *testing.T) {
	// a and b are each processed as their own root/cluster first, with
	// no edge recorded on their side. x is processed third and is the
	// one that discovers both, forcing two merges where the
	// already-existing cluster (not x's own, freshly-created one) is
	// always the smaller side — so both merges leave holes instead of
	// shrinking the array.
	a, b, x := newTestObject("a"), newTestObject("b"), newTestObject("x")
	linkMutableOneWay(x, a)
	linkMutableOneWay(x, b)
	pool := newTestPool()

	clusters, err := BuildClusters(pool, toObjects([]*testObject{a, b, x}))
	if err != nil {
		t.Fatalf("BuildClusters: %v", err)
	}

	var holes, live int
	for _, c := range clusters {
		if c.Size() == 0 {
			holes++
		} else {
			live++
		}
	}
	if holes != 2 || live != 1 {
		t.Fatalf("got %d holes and %d live clusters, want 2 and 1", holes, live)
	}
	if err := checkClustersCoherent(clusters); err != nil {
		t.Fatalf("checkClustersCoherent: %v", err)
	}
}

func TestBuildClustersCapacityExceeded(t *testing.T) {
	oldRelease := build.Release
	build.Release = "testing"
	defer func() { build.Release = oldRelease }()

	// effectiveMaxClusters() caps at 8 under "testing"; create more
	// disjoint roots than that so BuildClusters must fail.
	objs := make([]*testObject, effectiveMaxClusters()+1)
	for i := range objs {
		objs[i] = newTestObject("o")
	}
	pool := newTestPool()

	if _, err := BuildClusters(pool, toObjects(objs)); err != ErrCapacityExceeded {
		t.Fatalf("BuildClusters error = %v, want ErrCapacityExceeded", err)
	}
}

func liveClusters(clusters []*Cluster) []*Cluster {
	var out []*Cluster
	for _, c := range clusters {
		if c.Size() > 0 {
			out = append(out, c)
		}
	}
	return out
}
