package mtobjects

import (
	"sync"
	"sync/atomic"
)

// claimNull mirrors NullIndex in the 32-bit space atomic.CompareAndSwap
// needs; TIndex itself is 16-bit and has no atomic CAS in the standard
// library.
const claimNull = uint32(NullIndex)

type crossEdge struct {
	a, b TIndex
}

// BuildClustersConcurrent is an experimental, opt-in alternative to
// BuildClusters that spreads the traversal over workerCount goroutines.
// It produces the same partition (up to which holes are left behind and
// at which indices), but does not guarantee the same cluster indices or
// insertion order as the sequential Builder for a given input, because
// which worker wins the race to claim a given object is timing-
// dependent. Callers that need index-stability across runs should use
// BuildClusters instead.
//
// See SPEC_FULL.md §4.F for why this is a two-phase claim-then-
// reconcile design rather than a transcription of the source's live
// concurrent merge.
func BuildClustersConcurrent(pool *ChunkPool[Object], objects []Object, workerCount int) ([]*Cluster, error) {
	if workerCount < 1 {
		workerCount = 1
	}
	if len(objects) == 0 {
		return nil, nil
	}

	idxOf := make(map[Object]int, len(objects))
	for i, o := range objects {
		idxOf[o] = i
	}
	claims := make([]uint32, len(objects))
	for i := range claims {
		claims[i] = claimNull
	}

	var clusterCounter int32
	var capacityExceeded atomic.Bool

	var mu sync.Mutex
	var allClusters []*Cluster
	var allEdges []crossEdge

	shardSize := (len(objects) + workerCount - 1) / workerCount
	var wg sync.WaitGroup
	for w := 0; w < workerCount; w++ {
		start := w * shardSize
		if start >= len(objects) {
			break
		}
		end := start + shardSize
		if end > len(objects) {
			end = len(objects)
		}

		wg.Add(1)
		go func(shard []Object) {
			defer wg.Done()
			clusters, edges, err := claimShard(pool, idxOf, claims, shard, &clusterCounter)
			if err != nil {
				capacityExceeded.Store(true)
				return
			}
			mu.Lock()
			allClusters = append(allClusters, clusters...)
			allEdges = append(allEdges, edges...)
			mu.Unlock()
		}(objects[start:end])
	}
	wg.Wait()

	if capacityExceeded.Load() {
		return nil, ErrCapacityExceeded
	}

	return reconcile(allClusters, allEdges), nil
}

// claimShard is the concurrent-claim phase: it behaves like
// BuildClusters over shard, except that any object another worker has
// already claimed stops the traversal on this side of the edge instead
// of merging immediately; the edge is reported to the caller for
// sequential reconciliation once every worker has joined.
func claimShard(pool *ChunkPool[Object], idxOf map[Object]int, claims []uint32, shard []Object, clusterCounter *int32) ([]*Cluster, []crossEdge, error) {
	var clusters []*Cluster
	var edges []crossEdge
	worklist := NewChunkedStack[Object](pool, true)

	for _, root := range shard {
		ri := idxOf[root]
		if atomic.LoadUint32(&claims[ri]) != claimNull {
			continue // another worker already owns this object
		}

		id := atomic.AddInt32(clusterCounter, 1) - 1
		if int(id) >= effectiveMaxClusters() {
			return nil, nil, ErrCapacityExceeded
		}
		clusterIdx := TIndex(id)
		cluster := &Cluster{index: clusterIdx, objects: NewChunkedStack[Object](pool, true), redirect: NullIndex}
		clusters = append(clusters, cluster)

		// root is pushed unclaimed, exactly like every other object: the
		// drain loop below claims it on the first pop. If some other
		// worker wins that race first, this cluster is left with zero
		// objects — a hole, the same outcome BuildClusters tolerates for
		// every non-tail-pop merge.
		if !worklist.PushBack(root) {
			return nil, nil, ErrCapacityExceeded
		}
		for !worklist.Empty() {
			obj := worklist.PopBack()
			oi := idxOf[obj]
			cur := atomic.LoadUint32(&claims[oi])

			if cur == uint32(clusterIdx) {
				continue // already drained through this cluster
			}
			if cur == claimNull {
				if atomic.CompareAndSwapUint32(&claims[oi], claimNull, uint32(clusterIdx)) {
					if !cluster.objects.PushBack(obj) {
						return nil, nil, ErrCapacityExceeded
					}
					*obj.ClusterHandle() = clusterIdx
					obj.EnumerateMutableDependencies(worklist)
					continue
				}
				cur = atomic.LoadUint32(&claims[oi]) // lost the race; pick up the real owner
				if cur == uint32(clusterIdx) {
					continue
				}
			}
			edges = append(edges, crossEdge{a: clusterIdx, b: TIndex(cur)})
		}
	}
	return clusters, edges, nil
}

// reconcile runs single-threaded, after every claim-phase worker has
// joined, so it needs no locking: it replays every recorded cross-worker
// edge through the same weighted-union-by-size merge BuildClusters uses,
// leaving the smaller side of each merge behind as a hole exactly as the
// sequential Builder does for every merge that isn't the tail-pop
// special case (concurrent claiming means a freshly-claimed cluster is
// essentially never still the slice's last element by the time
// reconciliation runs, so BuildClustersConcurrent does not bother with
// that optimization at all).
func reconcile(clusters []*Cluster, edges []crossEdge) []*Cluster {
	byIndex := make(map[TIndex]*Cluster, len(clusters))
	for _, c := range clusters {
		byIndex[c.index] = c
	}

	find := func(idx TIndex) *Cluster {
		c := byIndex[idx]
		for c.Size() == 0 && c.redirect != NullIndex {
			c = byIndex[c.redirect]
		}
		return c
	}

	for _, e := range edges {
		ca, cb := find(e.a), find(e.b)
		if ca == cb {
			continue
		}
		big, small := ca, cb
		if cb.Size() > ca.Size() {
			big, small = cb, ca
		}
		small.objects.Each(func(o Object) { *o.ClusterHandle() = big.index })
		big.objects.Merge(small.objects)
		small.redirect = big.index
	}
	return clusters
}
