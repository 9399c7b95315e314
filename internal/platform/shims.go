package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// DispatcherName is the base name of the binary every shim resolves to.
const DispatcherName = "nvmd"

// cmdTemplate is the wrapper copied next to each non-node .exe on CopyShims hosts.
const cmdTemplate = "temp.cmd"

// Executables are the command names intercepted by the dispatcher.
var Executables = []string{"node", "npm", "npx", "corepack"}

// Shims materializes the dispatcher shims in a bin directory.
type Shims interface {
	// Materialize performs a fresh install of the dispatcher and all shims.
	Materialize(binDir string) error
	// Refresh re-copies the dispatcher over every shim already installed.
	Refresh(binDir string) error
}

// NewShims returns the shim layout for the current host.
func NewShims(resourcesDir string) Shims {
	if runtime.GOOS == "windows" {
		return &CopyShims{ResourcesDir: resourcesDir}
	}
	return &LinkShims{ResourcesDir: resourcesDir}
}

// LinkShims installs one dispatcher and symlinks each executable name to it.
type LinkShims struct {
	ResourcesDir string
}

func (s *LinkShims) Materialize(binDir string) error {
	if err := ensureBinDir(binDir); err != nil {
		return err
	}

	dispatcher := filepath.Join(binDir, DispatcherName)
	if err := CopyFile(filepath.Join(s.ResourcesDir, DispatcherName), dispatcher, ExecPerm); err != nil {
		return err
	}
	for _, name := range Executables {
		if err := ReplaceSymlink(dispatcher, filepath.Join(binDir, name)); err != nil {
			return fmt.Errorf("linking %s: %w", name, err)
		}
	}
	return nil
}

func (s *LinkShims) Refresh(binDir string) error {
	if err := ensureBinDir(binDir); err != nil {
		return err
	}
	return CopyFile(filepath.Join(s.ResourcesDir, DispatcherName), filepath.Join(binDir, DispatcherName), ExecPerm)
}

// CopyShims copies the dispatcher once per executable name, for hosts where
// symlinks are unavailable.
type CopyShims struct {
	ResourcesDir string
}

func (s *CopyShims) Materialize(binDir string) error {
	if err := ensureBinDir(binDir); err != nil {
		return err
	}

	src := filepath.Join(s.ResourcesDir, DispatcherName+".exe")
	cmdSrc := filepath.Join(s.ResourcesDir, cmdTemplate)

	if err := CopyFile(src, filepath.Join(binDir, DispatcherName+".exe"), ExecPerm); err != nil {
		return err
	}
	for _, name := range Executables {
		if err := CopyFile(src, filepath.Join(binDir, name+".exe"), ExecPerm); err != nil {
			return err
		}
		if name == "node" {
			continue
		}
		if err := CopyFile(cmdSrc, filepath.Join(binDir, name+".cmd"), ExecPerm); err != nil {
			return err
		}
	}
	return nil
}

// Refresh also updates executables the user added through the dispatcher, so
// it scans binDir instead of trusting Executables.
func (s *CopyShims) Refresh(binDir string) error {
	if err := ensureBinDir(binDir); err != nil {
		return err
	}

	src := filepath.Join(s.ResourcesDir, DispatcherName+".exe")
	if err := CopyFile(src, filepath.Join(binDir, DispatcherName+".exe"), ExecPerm); err != nil {
		return err
	}

	entries, err := os.ReadDir(binDir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", binDir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".exe") {
			continue
		}
		if err := CopyFile(src, filepath.Join(binDir, entry.Name()), ExecPerm); err != nil {
			return err
		}
	}
	return nil
}

func ensureBinDir(binDir string) error {
	if err := os.MkdirAll(binDir, 0755); err != nil {
		return fmt.Errorf("creating bin directory %s: %w", binDir, err)
	}
	return nil
}
