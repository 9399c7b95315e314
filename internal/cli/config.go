package cli

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nvmd-labs/nvmd/internal/exchange"
)

var (
	exportOutput   string
	exportColor    string
	exportSetting  bool
	exportMirrors  string
	exportProjects bool

	importFile  string
	importSync  bool
	importApply bool
)

func init() {
	configExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "File to write the snapshot to")
	configExportCmd.Flags().StringVar(&exportColor, "color", "", "Theme color to include")
	configExportCmd.Flags().BoolVar(&exportSetting, "setting", false, "Include settings and mirrors")
	configExportCmd.Flags().StringVar(&exportMirrors, "mirrors", "", "Mirror list to include with --setting")
	configExportCmd.Flags().BoolVar(&exportProjects, "projects", false, "Include projects and groups")
	_ = configExportCmd.MarkFlagRequired("output")

	configImportCmd.Flags().StringVarP(&importFile, "file", "f", "", "Snapshot to import (prompts when omitted)")
	configImportCmd.Flags().BoolVar(&importSync, "sync", false, "Write each project's node version into the project")
	configImportCmd.Flags().BoolVar(&importApply, "apply-settings", false, "Also apply the imported settings")

	configCmd.AddCommand(configExportCmd)
	configCmd.AddCommand(configImportCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Export or import configuration snapshots",
	Long:  `Move settings, projects and groups between machines as a single JSON snapshot.`,
}

var configExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the current configuration to a snapshot file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := sess.State()
		if err != nil {
			return err
		}

		var req exchange.ExportRequest
		if cmd.Flags().Changed("color") {
			req.Color = &exportColor
		}
		if cmd.Flags().Changed("mirrors") {
			req.Mirrors = &exportMirrors
		}
		req.Setting = &exportSetting
		req.Projects = &exportProjects

		ex := exchange.New(state, sess.handle, exchange.WithLogger(sess.log))
		if err := ex.Export(cmd.Context(), exportOutput, req); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Exported configuration to %s\n", color.GreenString("✓"), exportOutput)
		return nil
	},
}

var configImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import projects and groups from a snapshot file",
	Long: `Import a configuration snapshot. Projects and groups replace the current ones
when the snapshot has any. With --sync every project's node version, resolved
through its group, is written into the project first; if any project fails,
nothing is imported.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := sess.State()
		if err != nil {
			return err
		}

		picker := &exchange.PromptPicker{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
		ex := exchange.New(state, sess.handle,
			exchange.WithLogger(sess.log),
			exchange.WithPicker(picker),
		)

		var res *exchange.ImportResult
		if importFile != "" {
			s, done := startSpinner(cmd.ErrOrStderr(), "Importing "+importFile)
			res, err = ex.ImportFile(cmd.Context(), importFile, importSync)
			if err == nil {
				s.FinalMSG = color.GreenString("✓") + " Imported " + importFile + "\n"
			}
			done()
		} else {
			res, err = ex.Import(cmd.Context(), importSync)
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if res == nil {
			fmt.Fprintln(out, "Import cancelled.")
			return nil
		}

		if importApply && res.Setting != nil {
			d := state.Settings.Draft()
			d.Value.Patch(*res.Setting)
			if err := state.Settings.Commit(d); err != nil {
				return fmt.Errorf("applying settings: %w", err)
			}
			fmt.Fprintf(out, "%s Applied imported settings\n", color.GreenString("✓"))
		}

		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	},
}
