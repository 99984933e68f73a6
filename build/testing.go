package build

import (
	"os"
	"path/filepath"
)

// TestingDir is the directory that holds files created by this module's
// own tests (currently just persist.Logger's on-disk log file tests).
var TestingDir = filepath.Join(os.TempDir(), "MTObjectsTesting")

// TempDir joins the provided path elements and prefixes them with
// TestingDir, removing any stale directory left behind by a previous run.
func TempDir(dirs ...string) string {
	path := filepath.Join(TestingDir, filepath.Join(dirs...))
	os.RemoveAll(path)
	return path
}
