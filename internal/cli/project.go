package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"

	"github.com/nvmd-labs/nvmd/internal/project"
)

var (
	projectJSON bool
	projectSort string
)

func init() {
	projectListCmd.Flags().BoolVar(&projectJSON, "json", false, "Output in JSON format")
	projectListCmd.Flags().StringVar(&projectSort, "sort", "", "Sort by name or version (default: stored order)")
	projectCmd.AddCommand(projectListCmd)
	rootCmd.AddCommand(projectCmd)
}

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Inspect projects with pinned node versions",
}

// projectEntry is a project with its group indirection resolved.
type projectEntry struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Version  string `json:"version"`
	Resolved string `json:"resolved"`
	Active   bool   `json:"active"`
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects and the node version each resolves to",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := sess.State()
		if err != nil {
			return err
		}

		projects := state.Projects.Latest()
		groups := state.Groups.Latest()
		if len(projects) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No projects yet.")
			return nil
		}

		entries := make([]projectEntry, len(projects))
		for i, p := range projects {
			entries[i] = projectEntry{
				Name:     p.Name,
				Path:     p.Path,
				Version:  p.Version,
				Resolved: project.Resolve(p.Version, groups),
				Active:   p.Active,
			}
		}

		switch projectSort {
		case "":
		case "name":
			sort.SliceStable(entries, func(i, j int) bool {
				return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
			})
		case "version":
			sortByVersion(entries)
		default:
			return fmt.Errorf("invalid --sort %q (want name or version)", projectSort)
		}

		if projectJSON {
			data, err := json.MarshalIndent(entries, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "NAME\tPATH\tVERSION\tRESOLVED")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", dash(e.Name), e.Path, dash(e.Version), dash(e.Resolved))
		}
		return w.Flush()
	},
}

// sortByVersion orders entries newest resolved version first. Entries whose
// version does not parse keep their relative order at the end.
func sortByVersion(entries []projectEntry) {
	parsed := make(map[string]*semver.Version, len(entries))
	for _, e := range entries {
		if v, err := semver.NewVersion(e.Resolved); err == nil {
			parsed[e.Resolved] = v
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := parsed[entries[i].Resolved], parsed[entries[j].Resolved]
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.GreaterThan(b)
		}
	})
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
