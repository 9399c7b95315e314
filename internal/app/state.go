package app

import (
	"fmt"

	"github.com/nvmd-labs/nvmd/internal/config"
	"github.com/nvmd-labs/nvmd/internal/dirs"
	"github.com/nvmd-labs/nvmd/internal/logging"
	"github.com/nvmd-labs/nvmd/internal/project"
	"github.com/nvmd-labs/nvmd/internal/store"
)

// State is the live configuration: settings, projects and groups.
type State struct {
	Paths    *dirs.Paths
	Settings *store.Value[config.Settings]
	Projects *store.List[project.Project]
	Groups   *store.List[project.Group]
}

// Open loads the live state from paths. Unreadable settings fall back to the
// template; unreadable project or group lists are errors, since committing
// over them would lose data.
func Open(paths *dirs.Paths, log logging.Logger) (*State, error) {
	settings := config.Load(paths.Settings(), config.Template(paths), log)

	projects, err := store.OpenList[project.Project](paths.Projects())
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}
	groups, err := store.OpenList[project.Group](paths.Groups())
	if err != nil {
		return nil, fmt.Errorf("loading groups: %w", err)
	}

	return &State{
		Paths:    paths,
		Settings: store.NewValue(paths.Settings(), settings),
		Projects: projects,
		Groups:   groups,
	}, nil
}
