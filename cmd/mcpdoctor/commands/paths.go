package commands

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/mcpdoctor/internal/edgecase"
	"github.com/thoreinstein/mcpdoctor/internal/errors"
	"github.com/thoreinstein/mcpdoctor/internal/paths"
)

var pathsJSON bool

func init() {
	pathsCmd.Flags().BoolVar(&pathsJSON, "json", false,
		"output paths as JSON")
	rootCmd.AddCommand(pathsCmd)
}

// pathEntry is one row in the paths listing.
type pathEntry struct {
	Path     string `json:"path"`
	Standard bool   `json:"standard"`
	Exists   bool   `json:"exists"`
}

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Show candidate configuration file locations",
	Long: `List where Claude Desktop configuration files are expected on this
platform, and whether each one currently exists.`,
	RunE: runPaths,
}

func runPaths(cmd *cobra.Command, _ []string) error {
	candidates := cfg.CandidatePaths
	if len(candidates) == 0 {
		candidates = paths.CandidateConfigPaths()
	}
	if len(candidates) == 0 {
		return errors.NewSystemError(paths.ErrHomeDirNotFound, "Could not determine the home directory")
	}

	entries := make([]pathEntry, 0, len(candidates))
	for _, p := range candidates {
		entries = append(entries, pathEntry{
			Path:     p,
			Standard: paths.IsStandardLocation(p),
			Exists:   edgecase.FileExists(p),
		})
	}
	report := edgecase.Detect(candidates, nil)

	out := cmd.OutOrStdout()

	if pathsJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		payload := struct {
			Paths    []pathEntry      `json:"paths"`
			EdgeCase *edgecase.Report `json:"edgeCases"`
		}{entries, report}
		return errors.Wrap(enc.Encode(payload), "encoding JSON")
	}

	for _, e := range entries {
		marker := color.RedString("✗")
		if e.Exists {
			marker = color.GreenString("✓")
		}
		kind := "custom"
		if e.Standard {
			kind = "standard"
		}
		fmt.Fprintf(out, "%s %s (%s)\n", marker, e.Path, kind)
	}

	if report.Status != edgecase.StatusNormal {
		fmt.Fprintf(out, "\n%s %s\n", color.YellowString("!"), report.Recommendation)
	}

	if ws := paths.DefaultWorkspaceDir(); ws != "" {
		fmt.Fprintf(out, "\nDefault workspace directory: %s\n", ws)
	}

	return nil
}
