package mtobjects

// checkClustersCoherent verifies invariants 1, 2 and 5 of SPEC_FULL.md
// §3: every object's handle points at the cluster holding it, no cluster
// contains an object twice, and every mutable-dependency edge stays
// internal to its cluster. RunPass calls it only when build.DEBUG is
// set; tests call it directly.
func checkClustersCoherent(clusters []*Cluster) error {
	scratchPool := NewChunkPool[Object](8, 256)
	seen := make(map[Object]bool)

	for _, c := range clusters {
		var bad error
		c.Each(func(o Object) {
			if *o.ClusterHandle() != c.index {
				bad = ErrInvariantViolated
				return
			}
			if seen[o] {
				bad = ErrInvariantViolated
				return
			}
			seen[o] = true

			scratch := NewChunkedStack[Object](scratchPool, false)
			o.EnumerateMutableDependencies(scratch)
			scratch.Each(func(peer Object) {
				if *peer.ClusterHandle() != c.index {
					bad = ErrInvariantViolated
				}
			})
			scratch.Clear()
		})
		if bad != nil {
			return bad
		}
	}
	return nil
}

// checkDepSetIrreflexive verifies invariant 3: no cluster's DepSet has
// its own bit set.
func checkDepSetIrreflexive(clusters []*Cluster, depSets []DepSet) error {
	for _, c := range clusters {
		if c.Size() == 0 {
			continue
		}
		if depSets[c.index].Test(c.index) {
			return ErrInvariantViolated
		}
	}
	return nil
}

// checkGroupsAdmissible verifies invariant 4: within a group, no member
// const-depends on another member.
func checkGroupsAdmissible(groups []*Group, depSets []DepSet) error {
	for _, g := range groups {
		for _, ci := range g.Clusters {
			for _, cj := range g.Clusters {
				if ci == cj {
					continue
				}
				if depSets[ci.index].Test(cj.index) {
					return ErrInvariantViolated
				}
			}
		}
	}
	return nil
}
