//go:build integration

package integration_test

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir   string // SKILLKIT_HOME, holds config.yaml
	SkillsDir string // where skills are scaffolded
	DistDir   string // where archives are written
}

// setupTestEnv creates isolated temp directories and points SKILLKIT_HOME at
// one of them so no user config leaks into the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:   t.TempDir(),
		SkillsDir: t.TempDir(),
	}
	env.DistDir = filepath.Join(t.TempDir(), "dist")

	t.Setenv("SKILLKIT_HOME", env.HomeDir)
	return env
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s", path)
	}
}

func assertNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); err == nil {
		t.Errorf("expected %s not to exist", path)
	}
}

// zipEntries returns the entry names of a zip archive.
func zipEntries(t *testing.T, path string) map[string]bool {
	t.Helper()
	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("opening %s: %v", path, err)
	}
	defer r.Close()

	names := make(map[string]bool, len(r.File))
	for _, f := range r.File {
		names[f.Name] = true
	}
	return names
}
