package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nvmd-labs/nvmd/internal/app"
	"github.com/nvmd-labs/nvmd/internal/branding"
	"github.com/nvmd-labs/nvmd/internal/dirs"
	"github.com/nvmd-labs/nvmd/internal/logging"
	"github.com/nvmd-labs/nvmd/internal/migrate"
	"github.com/nvmd-labs/nvmd/internal/platform"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	verbose  bool
	debug    bool
	homeFlag string
)

// session is the per-invocation context shared by all commands.
type session struct {
	paths     *dirs.Paths
	log       logging.Logger
	handle    *app.Handle
	state     *app.State
	migration <-chan error
}

var sess *session

// Command paths, below the root, that manage the schema themselves or need
// no home directory.
var skipBackgroundMigration = map[string]bool{
	"migrate":                       true,
	"migrate status":                true,
	"version":                       true,
	"help":                          true,
	cobra.ShellCompRequestCmd:       true,
	cobra.ShellCompNoDescRequestCmd: true,
}

func skipsBackgroundMigration(cmd *cobra.Command) bool {
	path := strings.TrimPrefix(cmd.CommandPath(), cmd.Root().Name()+" ")
	if path == "completion" || strings.HasPrefix(path, "completion ") {
		return true
	}
	return skipBackgroundMigration[path]
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` keeps the node dispatcher under ~/.nvmd up to date and
exchanges project, group and settings configuration between machines.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		sess = s

		if skipsBackgroundMigration(cmd) {
			return nil
		}
		m, err := newMigrator(s)
		if err != nil {
			s.log.WithTarget("migrate").Warnf("skipping schema migration: %v", err)
			return nil
		}
		s.migration = m.Start(cmd.Context(), s.handle)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show informational log output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Show debug log output")
	rootCmd.PersistentFlags().StringVar(&homeFlag, "home", "", "Home directory (default $"+branding.EnvVar("HOME")+" or ~/"+branding.HomeDir()+")")
}

func newSession(cmd *cobra.Command) (*session, error) {
	log := logging.Logger{
		Verbose: verbose,
		Debug:   debug,
		Out:     cmd.ErrOrStderr(),
		Err:     cmd.ErrOrStderr(),
	}

	var paths *dirs.Paths
	if homeFlag != "" {
		paths = dirs.New(homeFlag)
	} else {
		p, err := dirs.Resolve()
		if err != nil {
			return nil, err
		}
		paths = p
	}
	log.Debugf("home directory: %s", paths.Home())

	handle := app.NewHandle(log)
	handle.AttachWindow(&app.ConsoleWindow{Out: cmd.ErrOrStderr()})

	return &session{paths: paths, log: log, handle: handle}, nil
}

func newMigrator(s *session) (*migrate.Migrator, error) {
	resources, err := dirs.Resources()
	if err != nil {
		return nil, err
	}
	return migrate.New(s.paths, platform.NewShims(resources), migrate.WithLogger(s.log)), nil
}

// State opens the live state on first use.
func (s *session) State() (*app.State, error) {
	if s.state != nil {
		return s.state, nil
	}
	state, err := app.Open(s.paths, s.log)
	if err != nil {
		return nil, err
	}
	s.state = state
	return state, nil
}

// wait blocks until the background migration, if any, has finished.
func (s *session) wait() {
	if s == nil || s.migration == nil {
		return
	}
	<-s.migration
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error:"), err)
	}

	// A short command must not exit under a half-done migration.
	sess.wait()
	return err
}
