package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/nvmd-labs/nvmd/internal/app"
	nerrors "github.com/nvmd-labs/nvmd/internal/errors"
	"github.com/nvmd-labs/nvmd/internal/logging"
	"github.com/nvmd-labs/nvmd/internal/project"
	"github.com/nvmd-labs/nvmd/internal/store"
)

// ImportFilter is what the import picker offers.
var ImportFilter = FileFilter{Name: "Select Json", Extensions: []string{"json"}}

// Syncer pins a node version inside a project.
type Syncer interface {
	SyncVersion(ctx context.Context, projectPath, version string) error
}

// SyncerFunc adapts a function to Syncer.
type SyncerFunc func(ctx context.Context, projectPath, version string) error

func (f SyncerFunc) SyncVersion(ctx context.Context, projectPath, version string) error {
	return f(ctx, projectPath, version)
}

// Exchange exports and imports configuration snapshots for one live State.
type Exchange struct {
	state  *app.State
	handle *app.Handle
	picker Picker
	syncer Syncer
	log    logging.Logger
}

// Option configures an Exchange.
type Option func(*Exchange)

func WithPicker(p Picker) Option { return func(e *Exchange) { e.picker = p } }

func WithSyncer(s Syncer) Option { return func(e *Exchange) { e.syncer = s } }

func WithLogger(log logging.Logger) Option {
	return func(e *Exchange) { e.log = log.WithTarget("app") }
}

// New returns an Exchange. Without WithPicker, Import cancels immediately;
// without WithSyncer, project.SyncVersion is used.
func New(state *app.State, handle *app.Handle, opts ...Option) *Exchange {
	e := &Exchange{
		state:  state,
		handle: handle,
		picker: StaticPicker{},
		syncer: SyncerFunc(project.SyncVersion),
		log:    logging.Logger{Target: "app"},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export writes the parts of the live configuration selected by req to
// outputPath.
func (e *Exchange) Export(ctx context.Context, outputPath string, req ExportRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var snap Snapshot
	snap.Color = req.Color
	if req.Setting != nil && *req.Setting {
		settings := e.state.Settings.Latest().Clone()
		snap.Setting = &settings
		snap.Mirrors = req.Mirrors
	}
	if req.Projects != nil && *req.Projects {
		snap.Projects = nonNil(e.state.Projects.Latest())
		snap.Groups = nonNil(e.state.Groups.Latest())
	}

	if err := store.WriteJSON(outputPath, snap); err != nil {
		return fmt.Errorf("exporting configuration: %w", err)
	}
	e.log.Infof("exported configuration to %s", outputPath)
	return nil
}

// Import asks the picker for a snapshot file and imports it. A cancelled
// pick returns (nil, nil) and changes nothing.
func (e *Exchange) Import(ctx context.Context, sync bool) (*ImportResult, error) {
	ref, ok, err := e.picker.PickFile(ctx, ImportFilter)
	if err != nil {
		return nil, err
	}
	if !ok {
		e.log.Debugf("import cancelled")
		return nil, nil
	}
	if ref.URL != nil {
		return nil, fmt.Errorf("%s: unsupported URL scheme: %w", ref.URL.Redacted(), nerrors.ErrImportSourceInvalid)
	}
	return e.ImportFile(ctx, ref.Path, sync)
}

// ImportFile imports the snapshot at path. With sync set, every project's
// resolved version is written into the project first; any sync failure
// aborts before the store is touched.
func (e *Exchange) ImportFile(ctx context.Context, path string, sync bool) (*ImportResult, error) {
	snap, err := ReadSnapshot(path)
	if err != nil {
		return nil, err
	}

	projects := snap.Projects
	groups := snap.Groups

	if sync {
		if err := e.syncAll(ctx, projects, groups); err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(projects) > 0 {
		d := e.state.Projects.Draft()
		d.Replace(projects)
		if err := e.state.Projects.Commit(d); err != nil {
			return nil, fmt.Errorf("saving projects: %w", err)
		}
	}
	if len(groups) > 0 {
		d := e.state.Groups.Draft()
		d.Replace(groups)
		if err := e.state.Groups.Commit(d); err != nil {
			// Projects may already be on disk; the window still has to reload them.
			if len(projects) > 0 {
				e.notify()
			}
			return nil, fmt.Errorf("saving groups: %w", err)
		}
	}

	if len(projects) > 0 || len(groups) > 0 {
		e.log.Infof("imported %d projects and %d groups from %s", len(projects), len(groups), path)
		e.notify()
	}

	return &ImportResult{
		Color:   snap.Color,
		Setting: snap.Setting,
		Mirrors: snap.Mirrors,
	}, nil
}

// notify refreshes the tray and tells the window to reload projects and
// groups. Failures are logged only.
func (e *Exchange) notify() {
	if err := e.handle.RefreshTray(); err != nil {
		e.log.Errorf("refreshing tray: %v", err)
	}
	if _, err := e.handle.EmitToWindow(app.EventProjectsUpdate); err != nil {
		e.log.Warnf("emitting %s: %v", app.EventProjectsUpdate, err)
	}
}

func (e *Exchange) syncAll(ctx context.Context, projects []project.Project, groups []project.Group) error {
	for _, p := range projects {
		if err := ctx.Err(); err != nil {
			return err
		}

		version := project.Resolve(p.Version, groups)
		if version == "" {
			continue
		}
		if err := project.ValidateVersion(version); err != nil {
			e.log.Warnf("%s: %q is not a release version, writing it unchanged", p.Path, version)
		}
		if err := e.syncer.SyncVersion(ctx, p.Path, version); err != nil {
			return fmt.Errorf("%w: %s (%s): %w", nerrors.ErrSyncFailed, p.Path, version, err)
		}
		e.log.Debugf("synced %s to %s", p.Path, version)
	}
	return nil
}

// ReadSnapshot reads and validates the snapshot at path.
func ReadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	if err := Validate(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, nerrors.ErrInvalidSnapshot, err)
	}
	return &snap, nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
