package migrate

import (
	"context"
	"fmt"
	"time"

	"github.com/nvmd-labs/nvmd/internal/app"
	"github.com/nvmd-labs/nvmd/internal/dirs"
	nerrors "github.com/nvmd-labs/nvmd/internal/errors"
	"github.com/nvmd-labs/nvmd/internal/logging"
	"github.com/nvmd-labs/nvmd/internal/platform"
)

// DefaultErrorDelay is how long Start waits before reporting a failure to the window.
const DefaultErrorDelay = time.Second

// Step is one upgrade action.
type Step struct {
	Name string
	// Applies reports whether the step must run when upgrading from version from.
	Applies func(from, target int16) bool
	Run     func(ctx context.Context) error
}

// Result describes a completed Run.
type Result struct {
	From  int16
	To    int16
	Steps []string
}

// Notifier delivers events to the main window, if one is attached.
type Notifier interface {
	EmitToWindow(event string) (bool, error)
}

// Migrator owns the schema version marker.
type Migrator struct {
	paths      *dirs.Paths
	shims      platform.Shims
	log        logging.Logger
	target     int16
	errorDelay time.Duration
	steps      []Step
}

// Option configures a Migrator.
type Option func(*Migrator)

func WithLogger(log logging.Logger) Option {
	return func(m *Migrator) { m.log = log.WithTarget("migrate") }
}

// WithTarget overrides CurrentVersion.
func WithTarget(v int16) Option {
	return func(m *Migrator) { m.target = v }
}

func WithErrorDelay(d time.Duration) Option {
	return func(m *Migrator) { m.errorDelay = d }
}

// New returns a Migrator for the layout under paths.
func New(paths *dirs.Paths, shims platform.Shims, opts ...Option) *Migrator {
	m := &Migrator{
		paths:      paths,
		shims:      shims,
		log:        logging.Logger{Target: "migrate"},
		target:     CurrentVersion,
		errorDelay: DefaultErrorDelay,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.steps = []Step{
		{
			Name:    "bootstrap",
			Applies: func(from, _ int16) bool { return from == 0 },
			Run: func(context.Context) error {
				return m.shims.Materialize(m.paths.Bin())
			},
		},
		{
			Name:    "normalize",
			Applies: func(from, target int16) bool { return from < target },
			Run: func(context.Context) error {
				return m.shims.Refresh(m.paths.Bin())
			},
		},
	}
	return m
}

// Target returns the version Run migrates to.
func (m *Migrator) Target() int16 { return m.target }

// Steps returns the names of all steps in execution order.
func (m *Migrator) Steps() []string {
	names := make([]string, len(m.steps))
	for i, s := range m.steps {
		names[i] = s.Name
	}
	return names
}

// Run applies every step required by the persisted version, then records the
// target version. A persisted version at or above the target is left alone.
// On failure the marker keeps its previous value.
func (m *Migrator) Run(ctx context.Context) (Result, error) {
	from := ReadVersion(m.paths.Migration(), m.log)
	res := Result{From: from, To: from}

	if from >= m.target {
		m.log.Debugf("schema version %d is current", from)
		return res, nil
	}

	for _, step := range m.steps {
		if !step.Applies(from, m.target) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}

		m.log.Infof("running %s (schema %d -> %d)", step.Name, from, m.target)
		if err := step.Run(ctx); err != nil {
			return res, fmt.Errorf("step %s: %w: %w", step.Name, nerrors.ErrMigrationStepFailed, err)
		}
		res.Steps = append(res.Steps, step.Name)
	}

	if err := WriteVersion(m.paths.Migration(), m.target); err != nil {
		return res, err
	}
	res.To = m.target
	m.log.Infof("schema version is now %d", m.target)
	return res, nil
}

// Start runs the migration in a background goroutine and returns at once.
// The returned channel yields the run's error (nil on success) and is then
// closed; callers that do not care may ignore it. When the run fails, Start
// waits for the error delay and emits the migration error event through n.
// Cancelling ctx skips the event.
func (m *Migrator) Start(ctx context.Context, n Notifier) <-chan error {
	done := make(chan error, 1)

	go func() {
		defer close(done)

		_, err := m.Run(ctx)
		if err != nil {
			m.log.Errorf("%v", err)
			m.report(ctx, n)
		}
		done <- err
	}()

	return done
}

func (m *Migrator) report(ctx context.Context, n Notifier) {
	if n == nil {
		return
	}

	timer := time.NewTimer(m.errorDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return
	case <-timer.C:
	}

	if _, err := n.EmitToWindow(app.EventMigrationError); err != nil {
		m.log.Warnf("emitting %s: %v", app.EventMigrationError, err)
	}
}
