package mtobjects

import (
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/NebulousLabs/threadgroup"
)

// ExecuteGroups runs every cluster of every group on a worker pool,
// invoking each object's Task exactly once (SPEC_FULL.md §4.E). Groups
// run one after another — every cluster of group g finishes before any
// cluster of group g+1 starts — but clusters within a group run
// concurrently, bounded by workerCount. Objects within a single cluster
// run sequentially on whichever worker claimed that cluster.
//
// After Task returns for an object, the object's cluster handle is reset
// to NullIndex and, once every object in a cluster has run, that
// cluster's object sequence is cleared, returning the system to a
// re-usable resting state.
//
// tg registers every worker goroutine so a caller can block in
// tg.Flush()/tg.Stop() until a pass's in-flight work has drained.
//
// The core does not define recovery for a panicking Task: ExecuteGroups
// recovers it on the worker goroutine just long enough to stop leaking
// that goroutine silently, then re-panics on the calling goroutine once
// the group's other workers have finished, so the failure still surfaces
// as a panic at the worker-pool boundary rather than crashing mid-group.
func ExecuteGroups(tg *threadgroup.ThreadGroup, groups []*Group, workerCount int) error {
	if workerCount < 1 {
		workerCount = 1
	}

	for _, group := range groups {
		if err := executeGroup(tg, group, workerCount); err != nil {
			return err
		}
	}
	return nil
}

func executeGroup(tg *threadgroup.ThreadGroup, group *Group, workerCount int) error {
	sem := make(chan struct{}, workerCount)
	var wg sync.WaitGroup

	var panicOnce sync.Once
	var panicVal interface{}
	var panicStack []byte

	for _, cluster := range group.Clusters {
		if err := tg.Add(); err != nil {
			// ThreadGroup has been stopped; wait for already-dispatched
			// clusters to finish before reporting the shutdown.
			wg.Wait()
			return err
		}
		sem <- struct{}{}
		wg.Add(1)

		go func(c *Cluster) {
			defer func() { <-sem }()
			defer tg.Done()
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					panicOnce.Do(func() {
						panicVal = r
						panicStack = debug.Stack()
					})
				}
			}()

			executeCluster(c)
		}(cluster)
	}
	wg.Wait()

	if panicVal != nil {
		panic(fmt.Sprintf("%s: %v\n%s", "mtobjects: task panicked", panicVal, panicStack))
	}
	return nil
}

func executeCluster(c *Cluster) {
	c.Each(func(o Object) {
		o.Task()
		*o.ClusterHandle() = NullIndex
	})
	c.objects.Clear()
}
