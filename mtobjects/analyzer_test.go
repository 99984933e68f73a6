package mtobjects

import "testing"

func TestAnalyzeDependenciesSequential(t *testing.T) {
	testAnalyzeDependencies(t, 1)
}

func TestAnalyzeDependenciesParallel(t *testing.T) {
	testAnalyzeDependencies(t, 4)
}

func testAnalyzeDependencies(t *testing.T, workers int) {
	t.Helper()
	// Two independent clusters: {a} const-depends on {b}.
	a, b := newTestObject("a"), newTestObject("b")
	linkConst(a, b)
	pool := newTestPool()

	clusters, err := BuildClusters(pool, toObjects([]*testObject{a, b}))
	if err != nil {
		t.Fatalf("BuildClusters: %v", err)
	}
	if len(liveClusters(clusters)) != 2 {
		t.Fatalf("expected a and b in separate clusters, got %d live", len(liveClusters(clusters)))
	}

	depSets := AnalyzeDependencies(clusters, workers)
	aIdx, bIdx := a.handle, b.handle

	if !depSets[aIdx].Test(bIdx) {
		t.Errorf("cluster %d should depend on cluster %d", aIdx, bIdx)
	}
	if depSets[bIdx].Test(aIdx) {
		t.Errorf("cluster %d should not depend on cluster %d", bIdx, aIdx)
	}
	if err := checkDepSetIrreflexive(clusters, depSets); err != nil {
		t.Fatalf("checkDepSetIrreflexive: %v", err)
	}
}

func TestAnalyzeDependenciesSkipsHoles(t *testing.T) {
	a, b, x := newTestObject("a"), newTestObject("b"), newTestObject("x")
	linkMutableOneWay(x, a)
	linkMutableOneWay(x, b)
	pool := newTestPool()

	clusters, err := BuildClusters(pool, toObjects([]*testObject{a, b, x}))
	if err != nil {
		t.Fatalf("BuildClusters: %v", err)
	}

	// AnalyzeDependencies must not panic or misbehave when some slots
	// are holes (Size() == 0).
	depSets := AnalyzeDependencies(clusters, 4)
	if len(depSets) != len(clusters) {
		t.Fatalf("len(depSets) = %d, want %d", len(depSets), len(clusters))
	}
}

func TestAnalyzeDependenciesSelfDependencyCleared(t *testing.T) {
	a, b := newTestObject("a"), newTestObject("b")
	linkMutable(a, b) // a and b share one cluster
	linkConst(a, b)   // a const-depends on its own cluster-mate
	pool := newTestPool()

	clusters, err := BuildClusters(pool, toObjects([]*testObject{a, b}))
	if err != nil {
		t.Fatalf("BuildClusters: %v", err)
	}
	depSets := AnalyzeDependencies(clusters, 1)
	if depSets[a.handle].Test(a.handle) {
		t.Fatal("a cluster's own bit must be cleared, even though a const-depends on its own cluster-mate")
	}
}
