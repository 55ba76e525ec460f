package platform

import (
	"os"
	"path/filepath"
)

// vcsDir marks a repository root.
const vcsDir = ".git"

// FindRepoRoot walks up from start looking for a directory that contains
// .git. It returns start (made absolute) when no ancestor qualifies.
func FindRepoRoot(start string) string {
	abs, err := filepath.Abs(start)
	if err != nil {
		return start
	}

	dir := abs
	for {
		if _, err := os.Stat(filepath.Join(dir, vcsDir)); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return abs
		}
		dir = parent
	}
}

// RepoRootFromCwd is FindRepoRoot for the current working directory.
func RepoRootFromCwd() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return FindRepoRoot(cwd)
}
