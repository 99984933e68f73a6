// Package build holds release-mode gating and other ambient knobs shared
// across the scheduler, its logger, and its demo binary.
package build

import "os"

// Release identifies which build of the scheduler is running. It selects
// default tunables (see mtobjects.DefaultConfig) and other
// release-dependent limits; whether invariant checks run is controlled
// separately by DEBUG.
var Release = "standard"

// DEBUG turns on invariant checks that are too expensive to carry in a
// standard build. It is set at startup when the MTOBJECTS_DEBUG
// environment variable is non-empty; Release does not affect it.
// InvariantViolated errors are only reachable when DEBUG is true.
var DEBUG = false

func init() {
	if Release == "" {
		Release = "standard"
	}
	if os.Getenv("MTOBJECTS_DEBUG") != "" {
		DEBUG = true
	}
}

// Var represents a tunable whose value depends on which Release is active.
// None of the fields may be nil.
type Var struct {
	Standard interface{}
	Dev      interface{}
	Testing  interface{}
}

// Select returns the field of v that matches the current Release.
func Select(v Var) interface{} {
	if v.Standard == nil || v.Dev == nil || v.Testing == nil {
		panic("nil value in build variable")
	}
	switch Release {
	case "dev":
		return v.Dev
	case "testing":
		return v.Testing
	default:
		return v.Standard
	}
}
