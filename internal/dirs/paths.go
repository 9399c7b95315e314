package dirs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nvmd-labs/nvmd/internal/branding"
	nerrors "github.com/nvmd-labs/nvmd/internal/errors"
	"github.com/nvmd-labs/nvmd/internal/logging"
)

// File and directory names under the home root.
const (
	SettingsFile       = "setting.json"
	ProjectsFile       = "projects.json"
	GroupsFile         = "groups.json"
	MigrationFile      = "migration"
	BinDir             = "bin"
	DefaultVersionFile = "default"
	VersionListFile    = "versions.json"
	InstallDir         = "versions"
	ResourcesDir       = "resources"
)

// Permission constants.
const (
	DirPerm  os.FileMode = 0755
	FilePerm os.FileMode = 0644
)

// userHomeDir is swapped in tests to simulate a host without a home directory.
var userHomeDir = os.UserHomeDir

// Paths computes file-system locations relative to one home root.
type Paths struct {
	home string
}

// New returns Paths rooted at home.
func New(home string) *Paths {
	return &Paths{home: home}
}

// Resolve derives the home root once at process start.
// It checks the NVMD_HOME environment variable first,
// then falls back to ~/.nvmd.
func Resolve() (*Paths, error) {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return New(v), nil
	}
	home, err := userHomeDir()
	if err != nil || home == "" {
		return nil, fmt.Errorf("resolving home directory: %w", nerrors.ErrEnvironmentUnavailable)
	}
	return New(filepath.Join(home, branding.HomeDir())), nil
}

// Home returns the application home root.
func (p *Paths) Home() string { return p.home }

// Settings returns the path to setting.json.
func (p *Paths) Settings() string { return filepath.Join(p.home, SettingsFile) }

// Projects returns the path to projects.json.
func (p *Paths) Projects() string { return filepath.Join(p.home, ProjectsFile) }

// Groups returns the path to groups.json.
func (p *Paths) Groups() string { return filepath.Join(p.home, GroupsFile) }

// Migration returns the path to the schema version marker.
func (p *Paths) Migration() string { return filepath.Join(p.home, MigrationFile) }

// Bin returns the directory holding the dispatcher and its shims.
func (p *Paths) Bin() string { return filepath.Join(p.home, BinDir) }

// DefaultVersion returns the path to the file recording the default node version.
func (p *Paths) DefaultVersion() string { return filepath.Join(p.home, DefaultVersionFile) }

// VersionList returns the path to the cached version list.
func (p *Paths) VersionList() string { return filepath.Join(p.home, VersionListFile) }

// DefaultInstallDir returns the default node install directory, creating it
// if it does not exist. Creation failures are logged, not returned.
func (p *Paths) DefaultInstallDir() string {
	dir := filepath.Join(p.home, InstallDir)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, DirPerm); err != nil {
			logging.Logger{}.Warnf("creating install directory %s: %v", dir, err)
		}
	}
	return dir
}

// Resources returns the directory holding the dispatcher templates that the
// migration copies into Bin. NVMD_RESOURCES overrides the default of
// <executable dir>/resources.
func Resources() (string, error) {
	if v := os.Getenv(branding.EnvVar("RESOURCES")); v != "" {
		return v, nil
	}
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}
	return filepath.Join(filepath.Dir(exe), ResourcesDir), nil
}
