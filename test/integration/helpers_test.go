//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nvmd-labs/nvmd/internal/dirs"
	"github.com/nvmd-labs/nvmd/internal/platform"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir      string // NVMD_HOME: schema marker, settings, projects, bin/
	ResourcesDir string // NVMD_RESOURCES: dispatcher templates
	ProjectDir   string // A mock project directory
}

// setupTestEnv creates isolated temp directories and sets environment variables
// so all nvmd operations are sandboxed. The env vars are restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:      t.TempDir(),
		ResourcesDir: t.TempDir(),
		ProjectDir:   t.TempDir(),
	}

	t.Setenv("NVMD_HOME", env.HomeDir)
	t.Setenv("NVMD_RESOURCES", env.ResourcesDir)

	setupResources(t, env.ResourcesDir, "v1")
	return env
}

// setupResources writes dispatcher templates for both shim layouts. content
// stands in for the dispatcher build so refreshes can be observed.
func setupResources(t *testing.T, dir, content string) {
	t.Helper()
	writeFile(t, filepath.Join(dir, platform.DispatcherName), "#!/bin/sh\n# "+content+"\n")
	writeFile(t, filepath.Join(dir, platform.DispatcherName+".exe"), "MZ "+content)
	writeFile(t, filepath.Join(dir, "temp.cmd"), "@echo off\r\n")
}

// paths resolves the sandboxed home exactly as the CLI does.
func (env *testEnv) paths(t *testing.T) *dirs.Paths {
	t.Helper()
	p, err := dirs.Resolve()
	if err != nil {
		t.Fatalf("dirs.Resolve: %v", err)
	}
	if p.Home() != env.HomeDir {
		t.Fatalf("resolved home %s, want %s", p.Home(), env.HomeDir)
	}
	return p
}

// writeFile creates parent directories and writes content to path.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertDirExists fails the test if the directory does not exist.
func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected directory to exist: %s (error: %v)", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected %s to be a directory, but it is a file", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
