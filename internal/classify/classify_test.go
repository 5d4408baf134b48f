package classify

import (
	"testing"

	"github.com/thoreinstein/mcpdoctor/internal/mcpconfig"
	"github.com/thoreinstein/mcpdoctor/internal/severity"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name         string
		serverName   string
		wantBuiltIn  bool
		wantCategory Category
	}{
		{"exact filesystem", "filesystem", true, CategoryFilesystem},
		{"exact github", "github", true, CategoryGitHub},
		{"exact context7", "context7", true, CategoryContext7},
		{"uppercase", "Context7", true, CategoryContext7},
		{"mixed case", "GitHub", true, CategoryGitHub},
		{"substring", "my-context7-server", true, CategoryContext7},
		{"fs token", "fs-local", true, CategoryFilesystem},
		{"file token", "file-server", true, CategoryFilesystem},
		{"git token", "git-helper", true, CategoryGitHub},
		// The substring match is deliberately broad; these document the
		// known misclassifications rather than desired behavior.
		{"github-custom matches", "github-custom", true, CategoryGitHub},
		{"gitlab matches git", "gitlab", true, CategoryGitHub},
		{"custom server", "memory", false, ""},
		{"brave search", "brave-search", false, ""},
		{"empty name", "", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.serverName)
			if got.IsBuiltIn != tt.wantBuiltIn {
				t.Errorf("Classify(%q).IsBuiltIn = %v, want %v", tt.serverName, got.IsBuiltIn, tt.wantBuiltIn)
			}
			if got.Category != tt.wantCategory {
				t.Errorf("Classify(%q).Category = %q, want %q", tt.serverName, got.Category, tt.wantCategory)
			}
		})
	}
}

func TestClassify_Idempotent(t *testing.T) {
	for _, name := range []string{"Filesystem", "my-GitHub-proxy", "memory"} {
		first := Classify(name)
		second := Classify(name)
		if first != second {
			t.Errorf("Classify(%q) not idempotent: %+v vs %+v", name, first, second)
		}
	}
}

func TestMatchesCategory(t *testing.T) {
	if !MatchesCategory("Filesystem", CategoryFilesystem) {
		t.Error("Filesystem should match the filesystem category")
	}
	if MatchesCategory("filesystem", CategoryGitHub) {
		t.Error("filesystem should not match the github category")
	}
	if MatchesCategory("memory", CategoryFilesystem) {
		t.Error("memory should not match any category")
	}
}

func TestValidateOnlyCustom(t *testing.T) {
	doc := mcpconfig.NewDocument()
	doc.MCPServers["filesystem"] = &mcpconfig.ServerEntry{Command: "npx"}
	doc.MCPServers["GitHub"] = &mcpconfig.ServerEntry{} // built-in, structure never checked
	doc.MCPServers["memory"] = &mcpconfig.ServerEntry{Command: "npx"}
	doc.MCPServers["broken"] = &mcpconfig.ServerEntry{}

	result := ValidateOnlyCustom(doc)

	wantSkipped := []string{"GitHub", "filesystem"}
	if len(result.SkippedServers) != len(wantSkipped) {
		t.Fatalf("SkippedServers = %v, want %v", result.SkippedServers, wantSkipped)
	}
	for i := range wantSkipped {
		if result.SkippedServers[i] != wantSkipped[i] {
			t.Errorf("SkippedServers = %v, want %v", result.SkippedServers, wantSkipped)
		}
	}

	wantValidated := []string{"broken", "memory"}
	for i := range wantValidated {
		if result.ValidatedServers[i] != wantValidated[i] {
			t.Errorf("ValidatedServers = %v, want %v", result.ValidatedServers, wantValidated)
		}
	}

	// Built-in entries never produce issues, even with missing commands.
	if len(result.Issues) != 1 {
		t.Fatalf("Issues = %v, want exactly one", result.Issues)
	}
	issue := result.Issues[0]
	if issue.Type != IssueMissingCommand {
		t.Errorf("Type = %q, want %q", issue.Type, IssueMissingCommand)
	}
	if issue.Server != "broken" {
		t.Errorf("Server = %q, want broken", issue.Server)
	}
	if issue.Severity != severity.High {
		t.Errorf("Severity = %q, want high", issue.Severity)
	}
}

func TestValidateOnlyCustom_InvalidCommand(t *testing.T) {
	tests := []struct {
		name    string
		command string
	}{
		{"placeholder", "invalid"},
		{"embedded space", "npx -y something"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mcpconfig.NewDocument()
			doc.MCPServers["memory"] = &mcpconfig.ServerEntry{Command: tt.command}

			result := ValidateOnlyCustom(doc)
			if len(result.Issues) != 1 {
				t.Fatalf("Issues = %v, want exactly one", result.Issues)
			}
			if result.Issues[0].Type != IssueInvalidCommand {
				t.Errorf("Type = %q, want %q", result.Issues[0].Type, IssueInvalidCommand)
			}
			if result.Issues[0].Severity != severity.Medium {
				t.Errorf("Severity = %q, want medium", result.Issues[0].Severity)
			}
		})
	}
}

func TestValidateOnlyCustom_NilDocument(t *testing.T) {
	result := ValidateOnlyCustom(nil)
	if result == nil {
		t.Fatal("nil document should still produce a result")
	}
	if len(result.ValidatedServers) != 0 || len(result.SkippedServers) != 0 || len(result.Issues) != 0 {
		t.Error("nil document should produce empty buckets")
	}
}
