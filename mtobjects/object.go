package mtobjects

// Object is the capability every participant in a pass must implement.
// These are the only three entry points the scheduler ever calls; there is
// no other polymorphism in the core.
type Object interface {
	// EnumerateMutableDependencies appends every peer this object must
	// co-execute with (read/write peers) to out. Duplicates and
	// self-references are tolerated by the caller.
	EnumerateMutableDependencies(out *ChunkedStack[Object])

	// EnumerateConstDependencies sets the bit of every cluster this object
	// read-only-depends on in out. Called only after every object in the
	// pass already has a valid cluster handle; must not write any handle.
	EnumerateConstDependencies(out *DepSet)

	// Task performs the object's unit of work. Preconditions: every peer
	// in this object's mutable dependencies is resident in the same
	// cluster and will not be touched concurrently by another worker;
	// every peer in its const dependencies belongs to a cluster in a
	// different group, so it never runs concurrently with this Task.
	// PlanGroups does not order groups by const dependency: a const
	// peer's group may run before or after this object's group.
	Task()

	// ClusterHandle returns a pointer to the object's single storage slot
	// for its cluster index. Only the Builder (assignment) and the
	// Executor's reset step (clearing, after Task returns) ever write
	// through this pointer.
	ClusterHandle() *TIndex
}
