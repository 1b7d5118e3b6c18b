package installer

import (
	"fmt"
	"os"
	"path/filepath"
)

// Env is the explicit search-path state threaded through every installer call.
// The process PATH is captured once at startup; when the run creates the
// user-local bin directory, an extended copy is swapped in so every later
// presence check sees it. Modeling this as a value (rather than mutating the
// ambient os environment) keeps installer decisions a pure function of
// (package, manager, env).
type Env struct {
	dirs []string // Ordered search-path directories, highest priority first
}

// NewEnv captures the current process PATH into an Env value.
func NewEnv() Env {
	return EnvFromDirs(filepath.SplitList(os.Getenv("PATH"))...)
}

// EnvFromDirs builds an Env from an explicit directory list. Used by tests and
// by WithDir; empty entries are dropped.
func EnvFromDirs(dirs ...string) Env {
	kept := make([]string, 0, len(dirs))
	for _, d := range dirs {
		if d != "" {
			kept = append(kept, d)
		}
	}
	return Env{dirs: kept}
}

// WithDir returns a copy of the Env with dir prepended at highest priority.
// The receiver is never modified; callers that want the extension to stick
// must keep the returned value.
func (e Env) WithDir(dir string) Env {
	dirs := make([]string, 0, len(e.dirs)+1)
	dirs = append(dirs, dir)
	dirs = append(dirs, e.dirs...)
	return Env{dirs: dirs}
}

// Dirs returns the ordered search-path directories.
func (e Env) Dirs() []string {
	return e.dirs
}

// LookPath resolves a binary name against the Env's own directory list,
// returning the full path of the first regular executable file found.
// It deliberately does not consult the ambient PATH.
func (e Env) LookPath(name string) (string, error) {
	for _, dir := range e.dirs {
		candidate := filepath.Join(dir, name)
		info, err := os.Stat(candidate)
		if err != nil {
			continue
		}
		if info.Mode().IsRegular() && info.Mode().Perm()&0111 != 0 {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%s not found on search path", name)
}
