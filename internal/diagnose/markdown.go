package diagnose

import (
	"fmt"
	"io"
	"strings"

	"github.com/thoreinstein/mcpdoctor/internal/errors"
)

// reportMarkdown renders the diagnosis as a shareable markdown document.
// It renders only what the Diagnosis already contains; nothing is
// re-derived here.
func (r *Reporter) reportMarkdown(diag *Diagnosis) error {
	var b strings.Builder

	b.WriteString("# MCP Configuration Diagnosis\n\n")

	if !diag.Success {
		fmt.Fprintf(&b, "**Status:** diagnosis failed (`%s`)\n\n", diag.Error)
	} else if diag.Healthy() {
		b.WriteString("**Status:** healthy\n\n")
	} else {
		fmt.Fprintf(&b, "**Status:** %d issue(s) detected, %d critical\n\n",
			diag.Summary.TotalIssues, diag.Summary.CriticalIssues)
	}

	fmt.Fprintf(&b, "- Config: `%s`\n", diag.ConfigPath)
	if diag.ProjectPath != "" {
		fmt.Fprintf(&b, "- Project: `%s`\n", diag.ProjectPath)
	}
	fmt.Fprintf(&b, "- Servers: %d (%d built-in, %d custom)\n",
		diag.Summary.TotalServers, diag.Summary.BuiltInServers, diag.Summary.CustomServers)
	fmt.Fprintf(&b, "- Capabilities: filesystem %s, context7 %s, github %s\n\n",
		mdCheck(diag.Summary.HasFilesystem), mdCheck(diag.Summary.HasContext7), mdCheck(diag.Summary.HasGitHub))

	if len(diag.Servers) > 0 {
		b.WriteString("## Servers\n\n")
		b.WriteString("| Name | Kind | Command |\n|---|---|---|\n")
		for _, server := range diag.Servers {
			kind := "custom"
			if server.IsBuiltIn {
				kind = string(server.Category)
			}
			invocation := strings.TrimSpace(server.Command + " " + strings.Join(server.Args, " "))
			fmt.Fprintf(&b, "| %s | %s | `%s` |\n", server.Name, kind, invocation)
		}
		b.WriteString("\n")
	}

	if report := diag.Troubleshooting; report != nil && len(report.Steps) > 0 {
		b.WriteString("## Troubleshooting\n\n")
		fmt.Fprintf(&b, "%s\n\n", report.Message)
		for _, step := range report.Steps {
			fmt.Fprintf(&b, "### %d. %s (%s)\n\n", step.Step, step.Title, step.Severity)
			if step.Description != "" {
				fmt.Fprintf(&b, "%s\n\n", step.Description)
			}
			for _, action := range step.Actions {
				fmt.Fprintf(&b, "- [ ] %s\n", action)
			}
			if len(step.Verification) > 0 {
				b.WriteString("\nVerify:\n")
				for _, check := range step.Verification {
					fmt.Fprintf(&b, "- %s\n", check)
				}
			}
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "_Scope: %s. Out of scope: %s._\n",
			report.Scope, strings.Join(report.OutOfScope, "; "))
	}

	_, err := io.WriteString(r.out, b.String())
	return errors.Wrap(err, "writing markdown report")
}

func mdCheck(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
