package mtobjects

import "github.com/NebulousLabs/errors"

// Error taxonomy for a pass, per SPEC_FULL.md §7.
var (
	// ErrCapacityExceeded is returned when a pass would create more
	// clusters than the configured DepSet width can address, or when the
	// chunk pool is exhausted. Fatal to the pass; the caller may retry
	// with a larger configuration.
	ErrCapacityExceeded = errors.New("mtobjects: capacity exceeded (too many clusters, or chunk pool exhausted)")

	// ErrInvariantViolated is returned by a debug-build post-condition
	// check that found the partition inconsistent with a mutable or
	// const dependency edge. Indicates a bug in the implementation, not
	// bad input; only reachable when build.DEBUG is set.
	ErrInvariantViolated = errors.New("mtobjects: invariant violated")
)

// TaskPanic is not a sentinel error: a panicking Task propagates through
// ExecuteGroups as an actual Go panic, not as a returned error. See
// ExecuteGroups's doc comment.
