package mtobjects

import "sync"

// AnalyzeDependencies computes, for every cluster, the set of other
// clusters it const-depends on (SPEC_FULL.md §4.C). It assumes every
// object already has a valid cluster handle (i.e. it runs strictly after
// BuildClusters). The work is embarrassingly parallel because each
// cluster writes only to its own DepSet slot — that disjointness is the
// only reason no synchronization is needed inside the per-cluster
// accumulation; EnumerateConstDependencies must never write a cluster
// handle.
//
// workerCount bounds how many clusters are analyzed concurrently; a value
// <= 1 runs the analysis on the calling goroutine.
func AnalyzeDependencies(clusters []*Cluster, workerCount int) []DepSet {
	depSets := make([]DepSet, len(clusters))

	analyzeOne := func(i int) {
		c := clusters[i]
		if c.Size() == 0 {
			return // hole left behind by a merge; nothing const-depends through it
		}
		c.Each(func(o Object) { o.EnumerateConstDependencies(&depSets[i]) })
		depSets[i].Clear(c.index)
	}

	if workerCount <= 1 || len(clusters) <= 1 {
		for i := range clusters {
			analyzeOne(i)
		}
		return depSets
	}

	indices := make(chan int, len(clusters))
	for i := range clusters {
		indices <- i
	}
	close(indices)

	var wg sync.WaitGroup
	workers := workerCount
	if workers > len(clusters) {
		workers = len(clusters)
	}
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range indices {
				analyzeOne(i)
			}
		}()
	}
	wg.Wait()

	return depSets
}
