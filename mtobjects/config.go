package mtobjects

import (
	"runtime"

	"github.com/k4210/mtobjects/build"
)

// Config holds the tunable knobs of SPEC_FULL.md §6. MaxClusters is not
// a Config field: the dependency-bitset width it controls is fixed at
// compile time (see MaxClusters, the package constant) because Go has no
// cheap way to parameterize a bitset's word count at runtime.
type Config struct {
	// ChunkPayloadBytes bounds how many Object references fit in a
	// single chunk; it affects locality, not correctness.
	ChunkPayloadBytes int

	// ChunkPoolSize is the total number of chunks in the Scheduler's
	// pool, shared by the Builder's worklist and every cluster's object
	// sequence across a pass. It upper-bounds peak worklist + cluster
	// storage depth; see maxPoolChunks for the hierarchical-bitset
	// allocator's own ceiling.
	ChunkPoolSize int

	// WorkerCount is the parallel-for degree used by both the
	// Dependency Analyzer and the Group Executor.
	WorkerCount int
}

// DefaultConfig returns the tunables appropriate for the current
// build.Release, following the same three-way standard/dev/testing split
// contractmanager's consts.go uses for maximumStorageFolders: testing
// builds use small chunks and a small pool so multi-chunk and
// pool-exhaustion code paths are exercised by ordinary unit tests without
// allocating millions of objects.
func DefaultConfig() Config {
	return Config{
		ChunkPayloadBytes: build.Select(build.Var{
			Standard: 240,
			Dev:      240,
			Testing:  32,
		}).(int),
		ChunkPoolSize: build.Select(build.Var{
			Standard: maxPoolChunks,
			Dev:      1024,
			Testing:  16,
		}).(int),
		WorkerCount: build.Select(build.Var{
			Standard: runtime.NumCPU(),
			Dev:      runtime.NumCPU(),
			Testing:  4,
		}).(int),
	}
}
