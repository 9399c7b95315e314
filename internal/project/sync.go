package project

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"

	nerrors "github.com/nvmd-labs/nvmd/internal/errors"
)

// VersionFile is the per-project file the dispatcher reads to pick a node version.
const VersionFile = ".nvmdrc"

// ValidateVersion checks that version is a node release version. A leading
// "v" is accepted. SyncVersion does not require this; callers that only
// accept release versions check it themselves.
func ValidateVersion(version string) error {
	v := strings.TrimSpace(version)
	if v == "" {
		return fmt.Errorf("empty version: %w", nerrors.ErrInvalidVersion)
	}
	if _, err := semver.StrictNewVersion(strings.TrimPrefix(v, "v")); err != nil {
		return fmt.Errorf("%q: %w", version, nerrors.ErrInvalidVersion)
	}
	return nil
}

// SyncVersion writes version into the project's .nvmdrc as given, so a
// group name that matched no group is pinned literally. The project
// directory must already exist.
func SyncVersion(ctx context.Context, projectPath, version string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	version = strings.TrimSpace(version)
	if version == "" {
		return fmt.Errorf("empty version: %w", nerrors.ErrInvalidVersion)
	}

	info, err := os.Stat(projectPath)
	if err != nil {
		return fmt.Errorf("project %s: %w", projectPath, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("project %s is not a directory", projectPath)
	}

	path := filepath.Join(projectPath, VersionFile)
	if err := os.WriteFile(path, []byte(version), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ReadVersion returns the version pinned in the project's .nvmdrc, or ""
// when the file does not exist.
func ReadVersion(projectPath string) (string, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, VersionFile))
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
