// Package mtobjects partitions a population of dependency-linked objects
// into clusters that can run in parallel, and drives a pass of cluster
// execution across a worker pool. See SPEC_FULL.md and DESIGN.md for the
// full design; this file holds the package's fixed-width types and
// sentinels.
package mtobjects

import "github.com/k4210/mtobjects/build"

// TIndex is the 16-bit handle an Object carries to identify which cluster
// it currently belongs to.
type TIndex = uint16

// NullIndex marks an object that has not yet been assigned to a cluster,
// or a cluster slot that has not yet been created.
const NullIndex TIndex = 0xFFFF

// maxClusterCount is the hard ceiling implied by TIndex's width: one value
// is reserved for NullIndex, so at most 0xFFFF clusters can exist in a
// single pass regardless of the configured dependency-bitset width.
const maxClusterCount = int(NullIndex)

// depSetWords is the number of 64-bit words backing DepSet. 128 bits (two
// words) is the width chosen for this implementation; see DESIGN.md for
// the tradeoff against the narrower 64/80-bit variants spec.md §9
// mentions.
const depSetWords = 2

// MaxClusters is the number of clusters a single DepSet can address. A
// pass that would produce more clusters than this fails with
// ErrCapacityExceeded before the Analyzer ever runs, because DepSet has
// nowhere to record a dependency on cluster indices beyond this width.
const MaxClusters = depSetWords * 64

// effectiveMaxClusters returns the cluster-count ceiling in effect for the
// current build, which is never more than MaxClusters (the DepSet width)
// and never more than maxClusterCount (the TIndex width). It is
// recomputed on every call (rather than cached at package-init time) so
// that tests can flip build.Release to "testing" and immediately see the
// tighter limit, mirroring contractmanager's maximumStorageFolders
// three-way split.
func effectiveMaxClusters() int {
	limit := build.Select(build.Var{
		Standard: MaxClusters,
		Dev:      MaxClusters,
		Testing:  8,
	}).(int)
	if limit > MaxClusters {
		limit = MaxClusters
	}
	if limit > maxClusterCount {
		limit = maxClusterCount
	}
	return limit
}
