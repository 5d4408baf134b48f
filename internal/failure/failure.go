// Package failure applies an independent rule set over a loaded
// configuration, its capability summary, and optional live filesystem
// checks, producing typed severity-tagged failure records. All applicable
// rules fire; rules are never mutually exclusive.
package failure

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/thoreinstein/mcpdoctor/internal/capability"
	"github.com/thoreinstein/mcpdoctor/internal/classify"
	"github.com/thoreinstein/mcpdoctor/internal/mcpconfig"
	"github.com/thoreinstein/mcpdoctor/internal/severity"
)

// Failure type tags. The mixed casing is load-bearing: downstream
// consumers match on these exact strings.
const (
	TypeConfigCorrupted           = "CONFIG_FILE_CORRUPTED"
	TypeFilesystemNotEnabled      = "FILESYSTEM_NOT_ENABLED"
	TypeWorkspaceNotConfigured    = "WORKSPACE_NOT_CONFIGURED"
	TypeProjectPathMissing        = "PROJECT_PATH_MISSING"
	TypeFilesystemConfigInvalid   = "FILESYSTEM_CONFIG_INVALID"
	TypeInvalidGitHubToken        = "invalid_github_token"
	TypeWorkspacePermissionDenied = "workspace_permission_denied"
	TypeIncorrectCommandFormat    = "incorrect_command_format"
	TypeMissingNpxFlag            = "missing_npx_flag"
	TypeUnnecessaryArguments      = "unnecessary_arguments"
	TypeMultipleConfigFiles       = "MULTIPLE_CONFIG_FILES"
	TypeWorkspaceCheckUnverified  = "workspace_check_unverified"
	TypeDiagnosticSystemError     = "DIAGNOSTIC_SYSTEM_ERROR"
)

// githubTokenEnv is the environment variable the GitHub MCP server reads.
const githubTokenEnv = "GITHUB_PERSONAL_ACCESS_TOKEN"

// Record is one detected failure with everything a downstream renderer
// needs to produce specific guidance without re-deriving it.
type Record struct {
	Type          string            `json:"type"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Severity      severity.Severity `json:"severity"`
	AutoDetected  bool              `json:"autoDetected"`
	CommonMistake bool              `json:"commonMistake,omitempty"`
	Context       map[string]string `json:"context,omitempty"`
	Resolution    []string          `json:"resolution"`
	AutoFixable   bool              `json:"autoFixable"`
}

// Params carries all inputs to a detection pass.
type Params struct {
	// Load is the loader outcome, including any load error and the
	// fallback document.
	Load *mcpconfig.LoadResult

	// Summary is the capability analysis of Load's document.
	Summary *capability.Summary

	// ProjectPath is the directory the user wants covered. Empty
	// disables project-coverage rules.
	ProjectPath string

	// ConfigPaths lists configuration files that actually exist on
	// disk. Two or more triggers the multiple-config rule.
	ConfigPaths []string
}

// Detect runs every rule and returns all records that fired. Detection is
// total: live checks that misbehave contribute at most a "could not
// verify" record, and the returned list (possibly empty) is deterministic
// for unchanged inputs.
func Detect(ctx context.Context, p Params, checker Checker) []Record {
	var records []Record

	doc := mcpconfig.NewDocument()
	if p.Load != nil && p.Load.Document != nil {
		doc = p.Load.Document
	}
	summary := p.Summary
	if summary == nil {
		summary = capability.Analyze(doc, p.ProjectPath)
	}

	if rec := checkConfigCorrupted(p.Load); rec != nil {
		records = append(records, *rec)
	}
	records = append(records, checkFilesystemRules(summary, p.ProjectPath)...)
	records = append(records, checkGitHubTokens(doc)...)
	records = append(records, checkWorkspaceAccess(ctx, summary.WorkspacePaths, checker)...)
	records = append(records, checkCommandFormats(doc)...)
	if rec := checkMultipleConfigs(p.ConfigPaths); rec != nil {
		records = append(records, *rec)
	}

	return records
}

// checkConfigCorrupted covers the unreadable/corrupted document rule. The
// subtype distinguishes not-found from malformed JSON and friends.
func checkConfigCorrupted(load *mcpconfig.LoadResult) *Record {
	if load == nil || load.Error == nil {
		return nil
	}

	subtype := "unreadable"
	switch load.Error.Kind {
	case mcpconfig.KindNotFound:
		subtype = "not_found"
	case mcpconfig.KindSyntax:
		subtype = "malformed_json"
	case mcpconfig.KindEmpty:
		subtype = "empty"
	}

	ctx := map[string]string{
		"subtype": subtype,
		"error":   load.Error.Message,
	}
	if load.Path != "" {
		ctx["path"] = load.Path
	}

	return &Record{
		Type:         TypeConfigCorrupted,
		Title:        "Configuration file is unreadable or corrupted",
		Description:  fmt.Sprintf("The Claude Desktop configuration could not be loaded: %s. Diagnosis continues against an empty configuration.", load.Error.Message),
		Severity:     severity.Critical,
		AutoDetected: true,
		Context:      ctx,
		Resolution: []string{
			"Locate the claude_desktop_config.json file for your platform",
			"Validate it with a JSON linter, or restore it from a backup",
			"If the file is missing, create it with an empty mcpServers object",
		},
		AutoFixable: true,
	}
}

// checkFilesystemRules covers the capability-driven rules: filesystem
// missing, workspace unconfigured, project uncovered, and the invalid
// filesystem entry shape.
func checkFilesystemRules(summary *capability.Summary, projectPath string) []Record {
	var records []Record

	if !summary.HasFilesystem {
		records = append(records, Record{
			Type:         TypeFilesystemNotEnabled,
			Title:        "Filesystem MCP server is not enabled",
			Description:  "No configured server grants filesystem access, so Claude Desktop cannot read or write project files.",
			Severity:     severity.Critical,
			AutoDetected: true,
			Resolution: []string{
				"Add a filesystem server entry to mcpServers",
				"Use: npx -y @modelcontextprotocol/server-filesystem <workspace-path>",
				"Restart Claude Desktop so the new server is picked up",
			},
			AutoFixable: true,
		})
	}

	if summary.HasFilesystem && len(summary.WorkspacePaths) == 0 {
		records = append(records, Record{
			Type:         TypeWorkspaceNotConfigured,
			Title:        "Filesystem server has no workspace paths",
			Description:  "A filesystem server is configured but its args contain no directory paths, so it can access nothing.",
			Severity:     severity.Critical,
			AutoDetected: true,
			Resolution: []string{
				"Append one or more absolute directory paths to the filesystem server's args",
				"Restart Claude Desktop",
			},
			AutoFixable: true,
		})
	}

	if summary.HasFilesystem && len(summary.WorkspacePaths) > 0 &&
		projectPath != "" && !summary.ProjectCovered {
		records = append(records, Record{
			Type:         TypeProjectPathMissing,
			Title:        "Project directory is not covered by any workspace path",
			Description:  fmt.Sprintf("The project %s is outside every configured workspace path, so the filesystem server cannot reach it.", projectPath),
			Severity:     severity.High,
			AutoDetected: true,
			Context: map[string]string{
				"projectPath":    projectPath,
				"workspacePaths": strings.Join(summary.WorkspacePaths, ", "),
			},
			Resolution: []string{
				fmt.Sprintf("Add %s (or an ancestor directory) to the filesystem server's args", projectPath),
				"Restart Claude Desktop",
			},
			AutoFixable: true,
		})
	}

	for _, tag := range summary.Issues {
		if tag != capability.IssueFilesystemNoArgs {
			continue
		}
		records = append(records, Record{
			Type:         TypeFilesystemConfigInvalid,
			Title:        "Filesystem server entry is invalid",
			Description:  "A filesystem server entry has no args; without the package name and at least one path the server cannot start.",
			Severity:     severity.High,
			AutoDetected: true,
			Resolution: []string{
				"Set args to [\"-y\", \"@modelcontextprotocol/server-filesystem\", \"<workspace-path>\"]",
				"Restart Claude Desktop",
			},
			AutoFixable: true,
		})
	}

	return records
}

// checkGitHubTokens flags GitHub servers whose token env value is
// placeholder-looking or implausibly short.
func checkGitHubTokens(doc *mcpconfig.Document) []Record {
	var records []Record

	for _, name := range doc.ServerNames() {
		if !classify.MatchesCategory(name, classify.CategoryGitHub) {
			continue
		}
		entry := doc.MCPServers[name]
		if entry == nil {
			continue
		}
		token, ok := entry.Env[githubTokenEnv]
		if !ok {
			continue
		}
		reason := tokenProblem(token)
		if reason == "" {
			continue
		}
		records = append(records, Record{
			Type:         TypeInvalidGitHubToken,
			Title:        "GitHub token looks invalid",
			Description:  fmt.Sprintf("Server %q sets %s to a value that %s.", name, githubTokenEnv, reason),
			Severity:     severity.Warning,
			AutoDetected: true,
			Context: map[string]string{
				"server": name,
				"reason": reason,
			},
			Resolution: []string{
				"Generate a personal access token in GitHub settings",
				fmt.Sprintf("Replace the %s value in the server's env block", githubTokenEnv),
				"Restart Claude Desktop",
			},
			AutoFixable: false,
		})
	}

	return records
}

// githubTokenPrefixes is the GitHub subset of the redaction prefix table in
// internal/diagnose, kept local because the detector sits below diagnose in
// the import graph.
var githubTokenPrefixes = []string{
	"ghp_",
	"gho_",
	"ghu_",
	"ghs_",
	"ghr_",
	"github_pat_",
}

// tokenProblem returns a human-readable reason the token is implausible,
// or "" when it passes. Placeholders win over length so the guidance names
// the real problem. A value carrying a well-formed GitHub prefix with a
// plausible payload passes outright; a prefixed value with a short payload
// is reported as truncated rather than merely short.
func tokenProblem(token string) string {
	upper := strings.ToUpper(token)
	if token == "" {
		return "is empty"
	}
	if strings.Contains(upper, "REPLACE_WITH") || strings.Contains(upper, "PLACEHOLDER") ||
		strings.Contains(upper, "YOUR_TOKEN") || strings.Contains(upper, "XXX") {
		return "looks like an unreplaced placeholder"
	}
	for _, prefix := range githubTokenPrefixes {
		if strings.HasPrefix(token, prefix) {
			if len(token) < len(prefix)+20 {
				return "has a GitHub token prefix but is truncated"
			}
			return ""
		}
	}
	if len(token) < 20 {
		return "is too short to be a real token"
	}
	return ""
}

// knownPackages maps MCP package names to whether they take trailing
// path arguments. All of them launch via npx -y.
var knownPackages = map[string]bool{
	"@modelcontextprotocol/server-filesystem":   true,
	"@modelcontextprotocol/server-github":       false,
	"@modelcontextprotocol/server-brave-search": false,
	"@modelcontextprotocol/server-memory":       false,
}

// checkCommandFormats covers the common-mistake rules for entries naming
// a known package: wrong launcher, missing -y flag, extraneous arguments.
func checkCommandFormats(doc *mcpconfig.Document) []Record {
	var records []Record

	for _, name := range doc.ServerNames() {
		entry := doc.MCPServers[name]
		if entry == nil {
			continue
		}
		pkgIdx := -1
		takesPaths := false
		for i, arg := range entry.Args {
			if paths, ok := knownPackages[arg]; ok {
				pkgIdx = i
				takesPaths = paths
				break
			}
		}
		if pkgIdx < 0 {
			continue
		}
		pkg := entry.Args[pkgIdx]

		if entry.Command != "npx" {
			records = append(records, Record{
				Type:          TypeIncorrectCommandFormat,
				Title:         "Known MCP package launched with the wrong command",
				Description:   fmt.Sprintf("Server %q runs %s with command %q; published MCP packages are launched with npx.", name, pkg, entry.Command),
				Severity:      severity.Medium,
				AutoDetected:  true,
				CommonMistake: true,
				Context: map[string]string{
					"server":  name,
					"command": entry.Command,
					"package": pkg,
				},
				Resolution: []string{
					fmt.Sprintf("Change the command for %q to \"npx\"", name),
					"Restart Claude Desktop",
				},
				AutoFixable: true,
			})
		} else if !contains(entry.Args[:pkgIdx], "-y") {
			records = append(records, Record{
				Type:          TypeMissingNpxFlag,
				Title:         "npx invocation is missing the -y flag",
				Description:   fmt.Sprintf("Server %q runs %s via npx without -y, so the launch can stall on an install prompt.", name, pkg),
				Severity:      severity.Low,
				AutoDetected:  true,
				CommonMistake: true,
				Context: map[string]string{
					"server":  name,
					"package": pkg,
				},
				Resolution: []string{
					fmt.Sprintf("Insert \"-y\" before %q in the args list", pkg),
					"Restart Claude Desktop",
				},
				AutoFixable: true,
			})
		}

		if extras := extraneousArgs(entry.Args[pkgIdx+1:], takesPaths); len(extras) > 0 {
			records = append(records, Record{
				Type:          TypeUnnecessaryArguments,
				Title:         "Server entry carries unnecessary arguments",
				Description:   fmt.Sprintf("Server %q passes arguments %s that %s does not use.", name, strings.Join(extras, ", "), pkg),
				Severity:      severity.Low,
				AutoDetected:  true,
				CommonMistake: true,
				Context: map[string]string{
					"server":    name,
					"package":   pkg,
					"arguments": strings.Join(extras, ", "),
				},
				Resolution: []string{
					"Remove the extra arguments from the server's args list",
					"Restart Claude Desktop",
				},
				AutoFixable: true,
			})
		}
	}

	return records
}

// extraneousArgs returns the trailing args a known package does not
// consume. Path-taking packages keep path-shaped tokens; everything else
// consumes nothing after the package name.
func extraneousArgs(trailing []string, takesPaths bool) []string {
	var extras []string
	for _, arg := range trailing {
		if takesPaths && capability.IsPathShaped(arg) {
			continue
		}
		extras = append(extras, arg)
	}
	return extras
}

// checkMultipleConfigs fires when two or more configuration files exist
// at once; which one Claude Desktop honors is then ambiguous.
func checkMultipleConfigs(configPaths []string) *Record {
	if len(configPaths) < 2 {
		return nil
	}
	sorted := append([]string(nil), configPaths...)
	sort.Strings(sorted)

	return &Record{
		Type:         TypeMultipleConfigFiles,
		Title:        "Multiple configuration files found",
		Description:  fmt.Sprintf("%d configuration files exist simultaneously; Claude Desktop reads only one of them, so edits to the others are silently ignored.", len(sorted)),
		Severity:     severity.Medium,
		AutoDetected: true,
		Context: map[string]string{
			"paths": strings.Join(sorted, ", "),
		},
		Resolution: []string{
			"Decide which configuration file is authoritative for your platform",
			"Consolidate all mcpServers entries into that file",
			"Delete or rename the remaining configuration files",
		},
		AutoFixable: false,
	}
}

// SystemFailure converts an unexpected internal error into the synthetic
// critical record used by degraded-mode reports.
func SystemFailure(err error) Record {
	detail := "unknown internal error"
	if err != nil {
		detail = err.Error()
	}
	return Record{
		Type:         TypeDiagnosticSystemError,
		Title:        "Diagnostics could not verify your setup",
		Description:  fmt.Sprintf("An internal error interrupted the diagnostic pass: %s.", detail),
		Severity:     severity.Critical,
		AutoDetected: true,
		Context: map[string]string{
			"error": detail,
		},
		Resolution: []string{
			"Restart Claude Desktop and run the diagnosis again",
			"Check that the configuration file and workspace paths are readable",
			"If the error persists, report it with the message above",
		},
		AutoFixable: false,
	}
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
