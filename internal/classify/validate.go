package classify

import (
	"strings"

	"github.com/thoreinstein/mcpdoctor/internal/mcpconfig"
	"github.com/thoreinstein/mcpdoctor/internal/severity"
)

// Issue tags for structural validation of custom server entries.
const (
	IssueMissingCommand = "missing_command"
	IssueInvalidCommand = "invalid_command"
)

// Issue is one structural problem found in a custom server entry.
type Issue struct {
	// Type is the issue tag (missing_command, invalid_command).
	Type string `json:"type"`

	// Server is the owning server name.
	Server string `json:"server"`

	// Message describes the problem.
	Message string `json:"message"`

	// Severity ranks the issue on the shared scale.
	Severity severity.Severity `json:"severity"`
}

// ValidationResult buckets a document's servers by classification. Built-in
// entries are never structurally validated; they only ever appear in
// SkippedServers.
type ValidationResult struct {
	// ValidatedServers lists custom server names, sorted.
	ValidatedServers []string `json:"validatedServers"`

	// SkippedServers lists built-in server names, sorted.
	SkippedServers []string `json:"skippedServers"`

	// Issues holds structural problems found on custom entries, in
	// sorted server order.
	Issues []Issue `json:"issues"`
}

// ValidateOnlyCustom buckets every entry by Classify and structurally
// validates only the custom ones. Iteration is in sorted name order so two
// runs over the same document produce identical results.
func ValidateOnlyCustom(doc *mcpconfig.Document) *ValidationResult {
	result := &ValidationResult{}
	if doc == nil {
		return result
	}

	for _, name := range doc.ServerNames() {
		if Classify(name).IsBuiltIn {
			result.SkippedServers = append(result.SkippedServers, name)
			continue
		}

		result.ValidatedServers = append(result.ValidatedServers, name)
		result.Issues = append(result.Issues, validateEntry(name, doc.MCPServers[name])...)
	}

	return result
}

// validateEntry checks one custom entry's structure.
func validateEntry(name string, entry *mcpconfig.ServerEntry) []Issue {
	if entry == nil || entry.Command == "" {
		return []Issue{{
			Type:     IssueMissingCommand,
			Server:   name,
			Message:  "server entry has no command",
			Severity: severity.High,
		}}
	}

	// "invalid" is the placeholder the setup wizard writes when it cannot
	// resolve a launcher; a command with embedded whitespace was almost
	// certainly meant to be command plus args.
	if entry.Command == "invalid" || strings.ContainsAny(entry.Command, " \t\n") {
		return []Issue{{
			Type:     IssueInvalidCommand,
			Server:   name,
			Message:  "command is malformed: " + entry.Command,
			Severity: severity.Medium,
		}}
	}

	return nil
}
