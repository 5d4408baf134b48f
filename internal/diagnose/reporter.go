package diagnose

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/mcpdoctor/internal/errors"
	"github.com/thoreinstein/mcpdoctor/internal/severity"
)

// Format specifies the output format for diagnosis reports.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
	// FormatYAML produces machine-readable YAML output.
	FormatYAML Format = "yaml"
	// FormatMarkdown produces a shareable markdown report.
	FormatMarkdown Format = "markdown"
)

// Reporter formats and writes a Diagnosis.
type Reporter struct {
	out     io.Writer
	format  Format
	verbose bool
}

// NewReporter creates a new Reporter.
func NewReporter(out io.Writer, format Format, verbose bool) *Reporter {
	return &Reporter{
		out:     out,
		format:  format,
		verbose: verbose,
	}
}

// Report writes the diagnosis to the output.
func (r *Reporter) Report(diag *Diagnosis) error {
	if diag == nil {
		return nil
	}

	switch r.format {
	case FormatJSON:
		return r.reportJSON(diag)
	case FormatYAML:
		return r.reportYAML(diag)
	case FormatMarkdown:
		return r.reportMarkdown(diag)
	default:
		return r.reportText(diag)
	}
}

func (r *Reporter) reportJSON(diag *Diagnosis) error {
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(diag), "encoding JSON report")
}

func (r *Reporter) reportYAML(diag *Diagnosis) error {
	encoder := yaml.NewEncoder(r.out)
	encoder.SetIndent(2)
	if err := encoder.Encode(diag); err != nil {
		encoder.Close()
		return errors.Wrap(err, "encoding YAML report")
	}
	return errors.Wrap(encoder.Close(), "encoding YAML report")
}

func (r *Reporter) reportText(diag *Diagnosis) error {
	if !diag.Success {
		fmt.Fprintln(r.out, color.RedString("✗ Diagnosis could not complete: %s", diag.Error))
		r.printSteps(diag)
		return nil
	}

	r.printOverview(diag)

	if diag.Healthy() {
		fmt.Fprintln(r.out, color.GreenString("✓ MCP configuration looks healthy"))
		return nil
	}

	if issues := diag.ValidationIssues(); len(issues) > 0 {
		fmt.Fprintln(r.out, "Server issues:")
		for _, issue := range issues {
			printer := severityPrinter(issue.Severity)
			fmt.Fprintf(r.out, "  • %s %s: %s\n", printer("["+string(issue.Severity)+"]"), issue.Server, issue.Message)
		}
		fmt.Fprintln(r.out)
	}

	r.printSteps(diag)
	return nil
}

func (r *Reporter) printOverview(diag *Diagnosis) {
	fmt.Fprintf(r.out, "Config:  %s\n", diag.ConfigPath)
	if diag.ProjectPath != "" {
		fmt.Fprintf(r.out, "Project: %s\n", diag.ProjectPath)
	}
	fmt.Fprintf(r.out, "Servers: %d (%d built-in, %d custom)\n",
		diag.Summary.TotalServers, diag.Summary.BuiltInServers, diag.Summary.CustomServers)
	fmt.Fprintf(r.out, "Capabilities: filesystem=%s context7=%s github=%s\n",
		boolIcon(diag.Summary.HasFilesystem), boolIcon(diag.Summary.HasContext7), boolIcon(diag.Summary.HasGitHub))

	if r.verbose {
		for _, server := range diag.Servers {
			kind := "custom"
			if server.IsBuiltIn {
				kind = string(server.Category)
			}
			fmt.Fprintf(r.out, "  %s (%s): %s %s\n",
				server.Name, kind, server.Command, strings.Join(server.Args, " "))
		}
		if len(diag.Analysis.WorkspacePaths) > 0 {
			fmt.Fprintf(r.out, "Workspace paths: %s\n", strings.Join(diag.Analysis.WorkspacePaths, ", "))
		}
	}

	if diag.EdgeCases != nil && diag.EdgeCases.Recommendation != "" {
		fmt.Fprintf(r.out, "%s %s\n", color.YellowString("⚠"), diag.EdgeCases.Recommendation)
	}
	fmt.Fprintln(r.out)
}

func (r *Reporter) printSteps(diag *Diagnosis) {
	report := diag.Troubleshooting
	if report == nil {
		return
	}

	fmt.Fprintln(r.out, report.Message)
	for _, step := range report.Steps {
		printer := severityPrinter(step.Severity)
		fmt.Fprintf(r.out, "\n%d. %s %s\n", step.Step, printer("["+string(step.Severity)+"]"), step.Title)
		if step.Description != "" {
			fmt.Fprintf(r.out, "   %s\n", step.Description)
		}
		for _, action := range step.Actions {
			fmt.Fprintf(r.out, "   → %s\n", action)
		}
		if r.verbose {
			for _, check := range step.Verification {
				fmt.Fprintf(r.out, "   verify: %s\n", check)
			}
		}
	}
	fmt.Fprintf(r.out, "\nScope: %s (out of scope: %s)\n",
		report.Scope, strings.Join(report.OutOfScope, "; "))
}

func severityPrinter(s severity.Severity) func(...interface{}) string {
	switch s {
	case severity.Critical, severity.High:
		return color.New(color.FgRed).SprintFunc()
	case severity.Medium:
		return color.New(color.FgYellow).SprintFunc()
	case severity.Low:
		return color.New(color.FgBlue).SprintFunc()
	default:
		return color.New(color.FgHiBlack).SprintFunc()
	}
}

func boolIcon(b bool) string {
	if b {
		return color.GreenString("✓")
	}
	return color.RedString("✗")
}
