// Package troubleshoot turns detected failures into an ordered, numbered
// remediation report.
package troubleshoot

import (
	"fmt"
	"sort"

	"github.com/thoreinstein/mcpdoctor/internal/failure"
	"github.com/thoreinstein/mcpdoctor/internal/severity"
)

// Report status values.
const (
	StatusHealthy        = "healthy"
	StatusIssuesDetected = "issues_detected"
	StatusError          = "error"
)

// Scope is stamped on every report: this diagnostic covers MCP
// configuration only.
const Scope = "mcp_configuration_only"

// OutOfScope names what the diagnostic explicitly does not cover. Fixed
// regardless of input so downstream renderers can rely on it.
func OutOfScope() []string {
	return []string{
		"Claude Desktop application issues",
		"system-level networking",
		"operating system problems",
	}
}

// Step is one numbered remediation step.
type Step struct {
	Step         int               `json:"step"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Severity     severity.Severity `json:"severity"`
	Actions      []string          `json:"actions"`
	Verification []string          `json:"verification"`
}

// Report is the sorted, numbered rendering of all failures in one run.
type Report struct {
	Status         string   `json:"status"`
	Message        string   `json:"message"`
	CriticalIssues int      `json:"criticalIssues"`
	Steps          []Step   `json:"steps"`
	Scope          string   `json:"scope"`
	OutOfScope     []string `json:"outOfScope"`
}

// verifications maps failure types to a verification checklist. Unmapped
// types fall back to genericVerification.
var verifications = map[string][]string{
	failure.TypeConfigCorrupted: {
		"Run the diagnosis again and confirm the configuration loads",
		"Open Claude Desktop and check that your MCP servers appear",
	},
	failure.TypeFilesystemNotEnabled: {
		"Run the diagnosis again and confirm hasFilesystem is reported",
		"Ask Claude Desktop to list files in your workspace",
	},
	failure.TypeWorkspaceNotConfigured: {
		"Run the diagnosis again and confirm workspace paths are listed",
		"Ask Claude Desktop to read a file under the workspace",
	},
	failure.TypeProjectPathMissing: {
		"Run the diagnosis again with the same --project flag",
		"Ask Claude Desktop to open a file inside the project",
	},
	failure.TypeFilesystemConfigInvalid: {
		"Run the diagnosis again and confirm the filesystem entry validates",
		"Ask Claude Desktop to list files in your workspace",
	},
	failure.TypeInvalidGitHubToken: {
		"Ask Claude Desktop to list your GitHub repositories",
		"Check the Claude Desktop logs for authentication errors",
	},
	failure.TypeWorkspacePermissionDenied: {
		"Confirm your user can list the workspace directory in a terminal",
		"Run the diagnosis again and confirm the check passes",
	},
	failure.TypeMultipleConfigFiles: {
		"Run the diagnosis again and confirm only one configuration file is found",
	},
}

// genericVerification is the fallback restart-and-retest checklist.
func genericVerification() []string {
	return []string{
		"Restart Claude Desktop",
		"Run the diagnosis again",
		"Confirm the issue no longer appears in the report",
	}
}

// Generate builds the report for a set of failures. Steps are sorted by
// severity rank (stable on ties, so detection order breaks ties) and
// numbered contiguously from 1.
func Generate(failures []failure.Record, projectPath string) *Report {
	report := &Report{
		Status:     StatusHealthy,
		Scope:      Scope,
		OutOfScope: OutOfScope(),
	}

	if len(failures) == 0 {
		report.Message = "No MCP configuration issues detected."
		if projectPath != "" {
			report.Message = fmt.Sprintf("No MCP configuration issues detected for %s.", projectPath)
		}
		return report
	}

	sorted := append([]failure.Record(nil), failures...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return severity.Compare(sorted[i].Severity, sorted[j].Severity) < 0
	})

	for i, rec := range sorted {
		verification, ok := verifications[rec.Type]
		if !ok {
			verification = genericVerification()
		}
		if rec.Severity == severity.Critical {
			report.CriticalIssues++
		}
		report.Steps = append(report.Steps, Step{
			Step:         i + 1,
			Title:        rec.Title,
			Description:  rec.Description,
			Severity:     rec.Severity,
			Actions:      append([]string(nil), rec.Resolution...),
			Verification: verification,
		})
	}

	report.Status = StatusIssuesDetected
	report.Message = message(len(sorted), report.CriticalIssues)
	return report
}

// Degraded builds the report used when the diagnostic itself failed: one
// synthetic critical step with generic guidance.
func Degraded(err error) *Report {
	report := Generate([]failure.Record{failure.SystemFailure(err)}, "")
	report.Status = StatusError
	report.Message = "Could not verify your MCP setup; follow the recovery steps below."
	return report
}

func message(total, critical int) string {
	noun := "issues"
	if total == 1 {
		noun = "issue"
	}
	if critical > 0 {
		return fmt.Sprintf("Detected %d MCP configuration %s, %d critical; Claude Desktop integration is likely broken until they are fixed.", total, noun, critical)
	}
	return fmt.Sprintf("Detected %d MCP configuration %s.", total, noun)
}
