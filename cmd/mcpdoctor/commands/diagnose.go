package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/mcpdoctor/internal/cli/prompt"
	"github.com/thoreinstein/mcpdoctor/internal/diagnose"
	"github.com/thoreinstein/mcpdoctor/internal/edgecase"
	"github.com/thoreinstein/mcpdoctor/internal/errors"
	"github.com/thoreinstein/mcpdoctor/internal/logging"
	"github.com/thoreinstein/mcpdoctor/internal/paths"
)

var (
	diagnoseConfig      string
	diagnoseProject     string
	diagnoseJSON        bool
	diagnoseYAML        bool
	diagnoseMarkdown    bool
	diagnoseInteractive bool
)

func init() {
	diagnoseCmd.Flags().StringVarP(&diagnoseConfig, "config", "c", "",
		"path to claude_desktop_config.json (default: platform location)")
	diagnoseCmd.Flags().StringVarP(&diagnoseProject, "project", "p", "",
		"project directory to check workspace coverage for")
	diagnoseCmd.Flags().BoolVar(&diagnoseJSON, "json", false,
		"output the diagnosis as JSON")
	diagnoseCmd.Flags().BoolVar(&diagnoseYAML, "yaml", false,
		"output the diagnosis as YAML")
	diagnoseCmd.Flags().BoolVar(&diagnoseMarkdown, "markdown", false,
		"output the diagnosis as a markdown report")
	diagnoseCmd.Flags().BoolVarP(&diagnoseInteractive, "interactive", "i", false,
		"pick the configuration file interactively when several exist")
	rootCmd.AddCommand(diagnoseCmd)
}

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose",
	Short: "Diagnose the Claude Desktop MCP configuration",
	Long: `Run a full diagnostic pass over the Claude Desktop MCP configuration.

Loads the configuration file, classifies servers as built-in or custom,
derives granted capabilities (filesystem, context7, GitHub), detects
misconfigurations, and prints an ordered troubleshooting report.

Output modes (mutually exclusive):
  (default)   Human-readable report
  --json      Machine-readable JSON
  --yaml      Machine-readable YAML
  --markdown  Shareable markdown report
  --quiet     No output, exit code only

Exit codes:
  0 - Configuration is healthy
  1 - Issues detected, none blocking
  2 - Critical or high severity issues, or the diagnosis itself failed`,
	PreRunE: validateDiagnoseFlags,
	RunE:    runDiagnose,
}

// validateDiagnoseFlags ensures output flags are mutually exclusive.
func validateDiagnoseFlags(_ *cobra.Command, _ []string) error {
	count := 0
	if diagnoseJSON {
		count++
	}
	if diagnoseYAML {
		count++
	}
	if diagnoseMarkdown {
		count++
	}
	if quiet {
		count++
	}

	if count > 1 {
		return errors.New("flags --json, --yaml, --markdown, and --quiet are mutually exclusive")
	}

	return nil
}

func runDiagnose(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	candidates := cfg.CandidatePaths
	if len(candidates) == 0 {
		candidates = paths.CandidateConfigPaths()
	}
	if len(candidates) == 0 {
		return errors.NewSystemError(paths.ErrHomeDirNotFound, "Could not determine the home directory")
	}

	configPath := diagnoseConfig
	if configPath == "" {
		configPath = cfg.ConfigPath
	}
	if configPath == "" && diagnoseInteractive {
		selected, err := selectConfigPath(candidates)
		if err != nil {
			if errors.Is(err, errors.ErrSelectionCancelled) {
				return errors.NewExitError(nil, errors.ExitHealthy)
			}
			return err
		}
		configPath = selected
	}

	project := diagnoseProject
	if project == "" {
		project = cfg.ProjectPath
	}

	diag := diagnose.Run(ctx, diagnose.Options{
		ConfigPath:     configPath,
		ProjectPath:    project,
		CandidatePaths: candidates,
		CheckTimeout:   cfg.CheckTimeout,
		SkipLiveChecks: cfg.SkipLiveChecks,
		Logger:         logger,
	})

	if err := outputDiagnosis(cmd, diag); err != nil {
		return err
	}

	switch {
	case diag.Blocking():
		return errors.NewExitError(nil, errors.ExitBlocking)
	case !diag.Healthy():
		return errors.NewExitError(nil, errors.ExitIssues)
	default:
		return nil
	}
}

// selectConfigPath prompts for a candidate path. On a TTY it uses the
// fuzzy finder; otherwise a plain numbered prompt.
func selectConfigPath(candidatePaths []string) (string, error) {
	candidates := make([]prompt.Candidate, 0, len(candidatePaths))
	for _, p := range candidatePaths {
		candidates = append(candidates, prompt.Candidate{
			Path:     p,
			Standard: paths.IsStandardLocation(p),
			Exists:   edgecase.FileExists(p),
		})
	}

	var (
		selected *prompt.Candidate
		err      error
	)
	if logging.IsTTY(os.Stdout) {
		selected, err = prompt.SelectCandidateFuzzy(candidates)
	} else {
		selected, err = prompt.SelectCandidateDefault(candidates)
	}
	if err != nil {
		return "", err
	}
	return selected.Path, nil
}

func outputDiagnosis(cmd *cobra.Command, diag *diagnose.Diagnosis) error {
	if quiet {
		return nil
	}

	format := diagnose.FormatText
	switch {
	case diagnoseJSON:
		format = diagnose.FormatJSON
	case diagnoseYAML:
		format = diagnose.FormatYAML
	case diagnoseMarkdown:
		format = diagnose.FormatMarkdown
	}

	return diagnose.NewReporter(cmd.OutOrStdout(), format, verbosity > 0).Report(diag)
}
