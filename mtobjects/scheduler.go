package mtobjects

import (
	"time"

	"github.com/NebulousLabs/threadgroup"
	"github.com/k4210/mtobjects/build"
	"github.com/k4210/mtobjects/persist"
)

// Statistics reports the shape and timing of one RunPass, per
// SPEC_FULL.md §6.
type Statistics struct {
	Clusters int
	Groups   int

	BuildElapsed   time.Duration
	AnalyzeElapsed time.Duration
	PlanElapsed    time.Duration
	ExecElapsed    time.Duration
}

// Scheduler drives one Build → Analyze → Plan → Execute pass at a time
// over its own chunk pool. A Scheduler is safe to reuse across
// many passes; it is not safe to call RunPass concurrently with itself.
type Scheduler struct {
	cfg  Config
	pool *ChunkPool[Object]
	tg   threadgroup.ThreadGroup
	log  *persist.Logger
}

// New builds a Scheduler from cfg. Any zero-valued field of cfg is
// replaced with DefaultConfig's corresponding value, so callers may pass
// a partially-filled Config to override just what they care about. log
// may be nil; a nil logger disables per-pass log lines but every
// invariant check still runs under build.DEBUG.
func New(cfg Config, log *persist.Logger) *Scheduler {
	def := DefaultConfig()
	if cfg.ChunkPayloadBytes <= 0 {
		cfg.ChunkPayloadBytes = def.ChunkPayloadBytes
	}
	if cfg.ChunkPoolSize <= 0 {
		cfg.ChunkPoolSize = def.ChunkPoolSize
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = def.WorkerCount
	}

	return &Scheduler{
		cfg:  cfg,
		pool: NewChunkPool[Object](cfg.ChunkPoolSize, cfg.ChunkPayloadBytes),
		log:  log,
	}
}

// RunPass runs one full Build/Analyze/Plan/Execute cycle over objects.
// Every object's ClusterHandle must be NullIndex on entry; RunPass
// restores that state for every object it successfully dispatches
// through ExecuteGroups before returning.
//
// The core makes no provision for cancelling a pass already in flight
// (SPEC_FULL.md §5); a caller that wants that can run RunPass on its own
// goroutine and race it against its own context, or stop the Scheduler's
// ThreadGroup via Close, which blocks new cluster dispatch but still lets
// in-flight clusters finish.
func (s *Scheduler) RunPass(objects []Object) (Statistics, error) {
	var stats Statistics

	buildStart := time.Now()
	clusters, err := BuildClusters(s.pool, objects)
	stats.BuildElapsed = time.Since(buildStart)
	if err != nil {
		return stats, build.ExtendErr("error building clusters", err)
	}
	if build.DEBUG {
		if err := checkClustersCoherent(clusters); err != nil {
			if s.log != nil {
				s.log.Critical("post-build invariant check failed:", err)
			}
			return stats, build.ExtendErr("post-build invariant check failed", err)
		}
	}

	analyzeStart := time.Now()
	depSets := AnalyzeDependencies(clusters, s.cfg.WorkerCount)
	stats.AnalyzeElapsed = time.Since(analyzeStart)
	if build.DEBUG {
		if err := checkDepSetIrreflexive(clusters, depSets); err != nil {
			if s.log != nil {
				s.log.Critical("post-analyze invariant check failed:", err)
			}
			return stats, build.ExtendErr("post-analyze invariant check failed", err)
		}
	}

	planStart := time.Now()
	groups := PlanGroups(clusters, depSets)
	stats.PlanElapsed = time.Since(planStart)
	if build.DEBUG {
		if err := checkGroupsAdmissible(groups, depSets); err != nil {
			if s.log != nil {
				s.log.Critical("post-plan invariant check failed:", err)
			}
			return stats, build.ExtendErr("post-plan invariant check failed", err)
		}
	}

	for _, c := range clusters {
		if c.Size() > 0 {
			stats.Clusters++
		}
	}
	stats.Groups = len(groups)

	execStart := time.Now()
	err = ExecuteGroups(&s.tg, groups, s.cfg.WorkerCount)
	stats.ExecElapsed = time.Since(execStart)
	if err != nil {
		return stats, build.ExtendErr("error executing groups", err)
	}

	if s.log != nil {
		s.log.Printf("pass complete: %d clusters, %d groups, build=%s analyze=%s plan=%s exec=%s",
			stats.Clusters, stats.Groups,
			stats.BuildElapsed, stats.AnalyzeElapsed, stats.PlanElapsed, stats.ExecElapsed)
	}
	return stats, nil
}

// Close stops accepting new work, waits for any in-flight ExecuteGroups
// dispatch to drain, and closes the Scheduler's logger if it has one.
func (s *Scheduler) Close() error {
	err := build.ExtendErr("error while stopping scheduler's thread group", s.tg.Stop())
	if s.log != nil {
		err = build.ComposeErrors(err, s.log.Close())
	}
	return err
}
