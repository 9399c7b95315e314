package exchange

import (
	"github.com/nvmd-labs/nvmd/internal/config"
	"github.com/nvmd-labs/nvmd/internal/project"
)

// ExportRequest selects what goes into a snapshot.
type ExportRequest struct {
	// Color is the theme color, copied verbatim.
	Color *string `json:"color,omitempty"`
	// Setting includes the settings and Mirrors.
	Setting *bool   `json:"setting,omitempty"`
	Mirrors *string `json:"mirrors,omitempty"`
	// Projects includes projects and groups.
	Projects *bool `json:"projects,omitempty"`
}

// Snapshot is the exchanged JSON document. Parts not exported are written as null.
type Snapshot struct {
	Color    *string           `json:"color"`
	Setting  *config.Settings  `json:"setting"`
	Mirrors  *string           `json:"mirrors"`
	Projects []project.Project `json:"projects"`
	Groups   []project.Group   `json:"groups"`
}

// ImportResult carries the parts of a snapshot the caller applies itself.
type ImportResult struct {
	Color   *string          `json:"color,omitempty"`
	Setting *config.Settings `json:"setting,omitempty"`
	Mirrors *string          `json:"mirrors,omitempty"`
}
