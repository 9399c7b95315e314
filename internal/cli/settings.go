package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nvmd-labs/nvmd/internal/config"
)

var settingsJSON bool

func init() {
	settingsShowCmd.Flags().BoolVar(&settingsJSON, "json", false, "Output in JSON format")
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change settings",
	Long:  `Read and write the settings stored at ~/.nvmd/setting.json.`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective settings, including NVMD_* overrides",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := sess.State()
		if err != nil {
			return err
		}
		// NVMD_* overrides are shown but never saved.
		s := config.ApplyEnv(state.Settings.Latest(), sess.log)

		if settingsJSON {
			data, err := json.MarshalIndent(s, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "KEY\tVALUE")
		for _, key := range config.Keys() {
			value, ok, err := s.Get(key)
			if err != nil {
				return err
			}
			if !ok {
				value = "-"
			}
			fmt.Fprintf(w, "%s\t%s\n", key, value)
		}
		return w.Flush()
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a settings value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := sess.State()
		if err != nil {
			return err
		}

		key, value := args[0], args[1]
		d := state.Settings.Draft()
		d.Value = d.Value.Clone()
		if err := d.Value.Set(key, value); err != nil {
			return err
		}
		if err := state.Settings.Commit(d); err != nil {
			return fmt.Errorf("saving settings: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}
