package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// CreateSymlink creates a symbolic link from link pointing to target.
// On Unix systems, this uses os.Symlink directly.
// On Windows, it attempts os.Symlink first (requires developer mode),
// then falls back to copying the file and writing a .target sidecar.
func CreateSymlink(target, link string) error {
	if runtime.GOOS != "windows" {
		return os.Symlink(target, link)
	}

	if err := os.Symlink(target, link); err == nil {
		return nil
	}

	resolved := target
	if !filepath.IsAbs(target) {
		resolved = filepath.Join(filepath.Dir(link), target)
	}
	if err := CopyFile(resolved, link, ExecPerm); err != nil {
		return fmt.Errorf("symlink fallback (copy) failed: %w", err)
	}

	// The copy succeeded; a missing sidecar only degrades ReadSymlinkTarget.
	_ = os.WriteFile(link+".target", []byte(target), 0644)
	return nil
}

// ReplaceSymlink removes whatever exists at link and links it to target.
func ReplaceSymlink(target, link string) error {
	if _, err := os.Lstat(link); err == nil {
		if err := RemoveSymlink(link); err != nil {
			return fmt.Errorf("removing existing %s: %w", link, err)
		}
	}
	return CreateSymlink(target, link)
}

// RemoveSymlink removes a symlink (or its fallback copy and sidecar).
func RemoveSymlink(path string) error {
	err := os.Remove(path)
	os.Remove(path + ".target") // best-effort
	return err
}

// ReadSymlinkTarget returns the target of a symlink.
// On Windows, if os.Readlink fails (because a copy fallback was used),
// it reads from the .target sidecar file.
func ReadSymlinkTarget(path string) (string, error) {
	target, err := os.Readlink(path)
	if err == nil {
		return target, nil
	}

	if runtime.GOOS != "windows" {
		return "", err
	}

	data, readErr := os.ReadFile(path + ".target")
	if readErr != nil {
		return "", fmt.Errorf("readlink failed and no .target sidecar found: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
