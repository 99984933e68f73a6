package build

import (
	"fmt"
	"os"
	"runtime/debug"
)

// Critical should be called when an invariant that must always hold has
// been observed to be false. Outside the testing release it prints the
// stack and the offending values to stderr; in a DEBUG build it then
// panics, otherwise the process keeps running.
func Critical(v ...interface{}) {
	s := "Critical error: " + fmt.Sprintln(v...)
	if Release != "testing" {
		debug.PrintStack()
		os.Stderr.WriteString(s)
	}
	if DEBUG {
		panic(s)
	}
}
