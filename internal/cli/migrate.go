package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var migrateStatusJSON bool

func init() {
	migrateStatusCmd.Flags().BoolVar(&migrateStatusJSON, "json", false, "Output in JSON format")
	migrateCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Upgrade the on-disk layout to this version",
	Long: `Run the schema migration in the foreground. Every other command runs it in
the background automatically; use this to see the result or retry after a failure.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newMigrator(sess)
		if err != nil {
			return err
		}

		s, done := startSpinner(cmd.ErrOrStderr(), "Migrating "+sess.paths.Home())
		res, err := m.Run(cmd.Context())
		if err != nil {
			s.FinalMSG = color.RedString("✗") + " Migration failed\n"
			done()
			return err
		}
		s.FinalMSG = color.GreenString("✓") + " Migration finished\n"
		done()

		out := cmd.OutOrStdout()
		if len(res.Steps) == 0 {
			fmt.Fprintf(out, "Schema version %d is up to date.\n", res.From)
			return nil
		}
		fmt.Fprintf(out, "Schema version %d -> %d (%s)\n", res.From, res.To, strings.Join(res.Steps, ", "))
		return nil
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the persisted schema version and pending steps",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newMigrator(sess)
		if err != nil {
			return err
		}
		st := m.Status()

		out := cmd.OutOrStdout()
		if migrateStatusJSON {
			data, err := json.MarshalIndent(st, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		fmt.Fprintf(out, "Persisted schema: %d\n", st.Persisted)
		fmt.Fprintf(out, "Target schema:    %d\n", st.Target)
		if st.UpToDate() {
			fmt.Fprintln(out, color.GreenString("Up to date."))
			return nil
		}
		fmt.Fprintf(out, "Pending steps:    %s\n", strings.Join(st.Pending, ", "))
		return nil
	},
}
