// Command mtobjdemo builds a random population of dependency-linked
// objects and runs them through one or more Scheduler passes, printing
// per-phase statistics. It is a direct descendant of original_source's
// interactive TestObject/main demo: object count, mutable-dependency
// fan-out and const-dependency fan-out are all still operator-supplied,
// but as flags instead of a stdin prompt, and Task still does the same
// counter_ += / counter_ -= bookkeeping the original used to make a
// pass's side effects observable.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/NebulousLabs/fastrand"
	"github.com/julienschmidt/httprouter"
	"github.com/k4210/mtobjects/mtobjects"
	"github.com/k4210/mtobjects/persist"
)

// demoObject is the stand-in for original_source's TestObject: its Task
// accumulates const-dependency counters into its own, then propagates
// its own counter as a debit onto every mutable-dependency peer, giving
// every pass an observable, order-sensitive side effect to print.
type demoObject struct {
	id          int
	handle      mtobjects.TIndex
	mutableDeps []*demoObject
	constDeps   []*demoObject
	counter     int64
}

func (o *demoObject) EnumerateMutableDependencies(out *mtobjects.ChunkedStack[mtobjects.Object]) {
	for _, d := range o.mutableDeps {
		out.PushBack(mtobjects.Object(d))
	}
}

func (o *demoObject) EnumerateConstDependencies(out *mtobjects.DepSet) {
	for _, d := range o.constDeps {
		out.Set(*d.ClusterHandle())
	}
}

func (o *demoObject) Task() {
	for _, d := range o.constDeps {
		atomic.AddInt64(&o.counter, atomic.LoadInt64(&d.counter))
	}
	for _, d := range o.mutableDeps {
		atomic.AddInt64(&d.counter, -o.counter)
	}
}

func (o *demoObject) ClusterHandle() *mtobjects.TIndex { return &o.handle }

func buildPopulation(numObjects, mutableDepsNum, constDepsNum int) []*demoObject {
	objs := make([]*demoObject, numObjects)
	for i := range objs {
		objs[i] = &demoObject{id: i, handle: mtobjects.NullIndex}
	}
	for i, o := range objs {
		for j := 0; j < mutableDepsNum; j++ {
			peer := objs[fastrand.Intn(numObjects)]
			if peer != o {
				o.mutableDeps = append(o.mutableDeps, peer)
			}
		}
		for j := 0; j < constDepsNum; j++ {
			peer := objs[fastrand.Intn(numObjects)]
			if peer != objs[i] {
				o.constDeps = append(o.constDeps, peer)
			}
		}
	}
	return objs
}

func toObjects(objs []*demoObject) []mtobjects.Object {
	out := make([]mtobjects.Object, len(objs))
	for i, o := range objs {
		out[i] = o
	}
	return out
}

// statsServer serves the most recent pass's Statistics as JSON through
// the writeJSON helper below.
type statsServer struct {
	mu     sync.Mutex
	latest mtobjects.Statistics
	passes int
}

func (s *statsServer) record(stats mtobjects.Statistics) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = stats
	s.passes++
}

func (s *statsServer) handleStats(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	s.mu.Lock()
	resp := struct {
		Passes int                  `json:"passes"`
		Latest mtobjects.Statistics `json:"latest"`
	}{s.passes, s.latest}
	s.mu.Unlock()

	writeJSON(w, resp)
}

func writeJSON(w http.ResponseWriter, obj interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if json.NewEncoder(w).Encode(obj) != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func main() {
	numObjects := flag.Int("objects", 2048, "number of objects in the population")
	mutableDepsNum := flag.Int("mutable-deps", 3, "mutable dependencies per object")
	constDepsNum := flag.Int("const-deps", 3, "const dependencies per object")
	workers := flag.Int("workers", 0, "worker count (0 selects the build-default)")
	passes := flag.Int("passes", 1, "number of passes to run over the same population")
	addr := flag.String("http", "", "if set, serve /stats on this address after the passes complete")
	flag.Parse()

	cfg := mtobjects.DefaultConfig()
	if *workers > 0 {
		cfg.WorkerCount = *workers
	}

	logger, err := persist.NewLogger("mtobjdemo.log")
	if err != nil {
		log.Fatalf("mtobjdemo: could not open log file: %v", err)
	}
	sched := mtobjects.New(cfg, logger)
	defer func() {
		if err := sched.Close(); err != nil {
			log.Printf("mtobjdemo: error closing scheduler: %v", err)
		}
	}()

	objs := buildPopulation(*numObjects, *mutableDepsNum, *constDepsNum)
	objects := toObjects(objs)

	srv := &statsServer{}
	for p := 0; p < *passes; p++ {
		for _, o := range objs {
			o.handle = mtobjects.NullIndex
		}
		stats, err := sched.RunPass(objects)
		if err != nil {
			log.Fatalf("mtobjdemo: pass %d failed: %v", p, err)
		}
		srv.record(stats)
		fmt.Printf("pass %d: objects=%d clusters=%d groups=%d build=%s analyze=%s plan=%s exec=%s\n",
			p, *numObjects, stats.Clusters, stats.Groups,
			stats.BuildElapsed, stats.AnalyzeElapsed, stats.PlanElapsed, stats.ExecElapsed)
	}

	if *addr == "" {
		return
	}
	router := httprouter.New()
	router.GET("/stats", srv.handleStats)
	fmt.Printf("serving /stats on %s\n", *addr)
	if err := http.ListenAndServe(*addr, router); err != nil {
		log.Fatalf("mtobjdemo: http server: %v", err)
	}
}
