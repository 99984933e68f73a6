package mtobjects

// Cluster is a non-empty connected component of the mutable-dependency
// graph: every mutable-dependency edge between two objects is internal to
// exactly one cluster. A cluster that has been merged away by
// BuildClusters (see the "hole" case below) reports Size() == 0 and is
// skipped by every later phase.
type Cluster struct {
	index   TIndex
	objects *ChunkedStack[Object]

	// redirect is only ever set by BuildClustersConcurrent's
	// reconciliation pass: when a cluster is merged away it records
	// where its objects actually went, so a later edge that still names
	// this cluster's index can be forwarded to the survivor instead of
	// looking like a no-op merge against an emptied-out hole.
	redirect TIndex
}

// Index returns the cluster's position in the array BuildClusters
// produced.
func (c *Cluster) Index() TIndex { return c.index }

// Size returns the number of objects currently in the cluster. Zero means
// the cluster was merged into another one and left behind as a hole.
func (c *Cluster) Size() int { return c.objects.Size() }

// Each calls fn once per object, in the cluster's internal insertion
// order. That order is not contractually meaningful to callers of Task.
func (c *Cluster) Each(fn func(Object)) { c.objects.Each(fn) }

// BuildClusters partitions objects into clusters such that every
// mutable-dependency edge is internal to some cluster, following
// SPEC_FULL.md §4.B. Every object's ClusterHandle must be NullIndex on
// entry. Clusters are single-threaded and deterministic given a fixed
// input order.
//
// The returned slice may contain clusters with Size() == 0: a merge only
// tail-pops its slot out of the slice when the cluster being merged away
// is the traversal's current cluster (usually the one just created for
// this root) and is still the slice's last element; any other
// merged-away cluster is left behind as a hole rather than paying for a
// re-index. See DESIGN.md for why this, rather than always
// compacting, is the resolution picked for spec.md §9's open question.
func BuildClusters(pool *ChunkPool[Object], objects []Object) ([]*Cluster, error) {
	clusters := make([]*Cluster, 0, len(objects))
	worklist := NewChunkedStack[Object](pool, false)

	for _, root := range objects {
		if *root.ClusterHandle() != NullIndex {
			continue
		}
		if len(clusters) >= effectiveMaxClusters() {
			return nil, ErrCapacityExceeded
		}

		current := &Cluster{
			// A cluster's object sequence is built single-threaded here,
			// but is released concurrently by many workers during the
			// Group Executor's reset step (SPEC_FULL.md §4.A), so it must
			// use the pool's locked release path from the start.
			index:    TIndex(len(clusters)),
			objects:  NewChunkedStack[Object](pool, true),
			redirect: NullIndex,
		}
		clusters = append(clusters, current)

		if !worklist.PushBack(root) {
			return nil, ErrCapacityExceeded
		}

		for !worklist.Empty() {
			obj := worklist.PopBack()
			handle := obj.ClusterHandle()

			switch {
			case *handle == NullIndex:
				if !current.objects.PushBack(obj) {
					return nil, ErrCapacityExceeded
				}
				*handle = current.index
				obj.EnumerateMutableDependencies(worklist)

			case *handle == current.index:
				// Already in this component; duplicate edge, drop.

			default:
				other := clusters[*handle]
				big, small := current, other
				if other.Size() > current.Size() {
					big, small = other, current
				}
				// Equal sizes: keep current as big (deterministic tie-break).

				small.objects.Each(func(o Object) { *o.ClusterHandle() = big.index })
				big.objects.Merge(small.objects)

				if small == current && int(small.index) == len(clusters)-1 {
					clusters = clusters[:len(clusters)-1]
				}
				current = big
			}
		}
	}
	return clusters, nil
}
