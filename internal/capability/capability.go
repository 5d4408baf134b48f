// Package capability derives which MCP capabilities a configuration grants:
// filesystem access (with workspace paths), context7 documentation lookup,
// and GitHub operations.
package capability

import (
	"regexp"
	"sort"
	"strings"

	"github.com/thoreinstein/mcpdoctor/internal/classify"
	"github.com/thoreinstein/mcpdoctor/internal/mcpconfig"
)

// Issue tags recorded during analysis.
const (
	// IssueFilesystemNoArgs marks a filesystem entry with no args at all,
	// which cannot name a package or grant any workspace.
	IssueFilesystemNoArgs = "filesystem_no_args"
)

// pathShaped matches tokens that look like filesystem paths: absolute Unix
// paths or Windows drive-letter paths.
var pathShaped = regexp.MustCompile(`^(/|[A-Za-z]:\\)`)

// Summary is the derived capability state for one configuration document.
type Summary struct {
	// HasFilesystem is true when any server name classifies as the
	// filesystem built-in.
	HasFilesystem bool `json:"hasFilesystem"`

	// WorkspacePaths lists path-shaped args of filesystem entries, in
	// source argument order.
	WorkspacePaths []string `json:"workspacePaths"`

	// HasContext7 is true when any server name classifies as context7.
	HasContext7 bool `json:"hasContext7"`

	// HasGitHub is true when any server name classifies as GitHub.
	HasGitHub bool `json:"hasGitHub"`

	// ProjectCovered is true when the project path and some workspace
	// path share a prefix relationship (see Covered).
	ProjectCovered bool `json:"projectCovered"`

	// Issues is the set of analysis issue tags, sorted.
	Issues []string `json:"issues,omitempty"`
}

// Analyze derives the capability summary for a document against a project
// path. It is a pure function of its inputs; server iteration is in sorted
// name order so workspace paths come out deterministically.
func Analyze(doc *mcpconfig.Document, projectPath string) *Summary {
	summary := &Summary{}
	if doc == nil {
		return summary
	}

	issues := make(map[string]struct{})

	for _, name := range doc.ServerNames() {
		entry := doc.MCPServers[name]

		switch {
		case classify.MatchesCategory(name, classify.CategoryFilesystem):
			summary.HasFilesystem = true
			if entry == nil || len(entry.Args) == 0 {
				issues[IssueFilesystemNoArgs] = struct{}{}
				continue
			}
			summary.WorkspacePaths = append(summary.WorkspacePaths, extractPaths(entry.Args)...)
		case classify.MatchesCategory(name, classify.CategoryContext7):
			summary.HasContext7 = true
		case classify.MatchesCategory(name, classify.CategoryGitHub):
			summary.HasGitHub = true
		}
	}

	summary.ProjectCovered = Covered(projectPath, summary.WorkspacePaths)

	for tag := range issues {
		summary.Issues = append(summary.Issues, tag)
	}
	sort.Strings(summary.Issues)

	return summary
}

// IsPathShaped reports whether a single argument token looks like a
// filesystem path (absolute Unix path or Windows drive-letter path).
func IsPathShaped(arg string) bool {
	return pathShaped.MatchString(arg)
}

// extractPaths keeps only path-shaped tokens, preserving argument order.
func extractPaths(args []string) []string {
	var paths []string
	for _, arg := range args {
		if IsPathShaped(arg) {
			paths = append(paths, arg)
		}
	}
	return paths
}

// Covered reports whether the project path is covered by some workspace
// path. The test is a bidirectional raw string-prefix match: an ancestor
// workspace root covers the project, and a project used as the workspace
// root covers itself. It is not path-segment aware, so siblings sharing a
// prefix (/home/u/foo vs /home/u/foobar) can false-positive; that behavior
// is preserved deliberately.
func Covered(projectPath string, workspacePaths []string) bool {
	if projectPath == "" {
		return false
	}
	for _, ws := range workspacePaths {
		if ws == "" {
			continue
		}
		if strings.HasPrefix(projectPath, ws) || strings.HasPrefix(ws, projectPath) {
			return true
		}
	}
	return false
}
