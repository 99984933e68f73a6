package mtobjects

// Group is a set of clusters considered safe to execute concurrently:
// no member const-depends on another member. Groups run one after
// another; clusters within a group fan out to the worker pool.
type Group struct {
	Clusters []*Cluster

	members DepSet // which cluster indices belong to this group
	covered DepSet // union of DepSet of every member (what the group depends on)
}

func newGroup() *Group {
	return &Group{}
}

func (g *Group) admits(c *Cluster, depSet *DepSet) bool {
	if depSet.Intersects(&g.members) {
		return false // c depends on a member of g
	}
	if g.covered.Test(c.index) {
		return false // a member of g depends on c
	}
	return true
}

func (g *Group) add(c *Cluster, depSet *DepSet) {
	g.Clusters = append(g.Clusters, c)
	g.members.Set(c.index)
	g.covered.Union(depSet)
}

// PlanGroups packs clusters into execution groups using the greedy,
// rotating-start heuristic of SPEC_FULL.md §4.D. Clusters with Size() ==
// 0 (holes left by BuildClusters) are skipped; they hold no objects and
// had no DepSet entry worth considering. The result is deterministic for
// a fixed cluster array and depSets, but is a fast heuristic, not a
// globally optimal packing.
func PlanGroups(clusters []*Cluster, depSets []DepSet) []*Group {
	groups := []*Group{newGroup()}

	k := 0
	for _, c := range clusters {
		if c.Size() == 0 {
			continue
		}
		depSet := &depSets[c.index]

		n := len(groups)
		start := k % n
		placed := false
		for probe := 0; probe < n; probe++ {
			g := groups[(start+probe)%n]
			if g.admits(c, depSet) {
				g.add(c, depSet)
				placed = true
				break
			}
		}
		if !placed {
			g := newGroup()
			g.add(c, depSet)
			groups = append(groups, g)
		}
		k++
	}

	// An all-empty-input pass leaves behind the one empty seed group;
	// report zero groups rather than one with no clusters.
	if len(groups) == 1 && len(groups[0].Clusters) == 0 {
		return nil
	}
	return groups
}
