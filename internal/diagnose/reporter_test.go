package diagnose

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

func init() {
	color.NoColor = true
}

func diagnoseRaw(t *testing.T, raw string) *Diagnosis {
	t.Helper()
	path := filepath.Join(t.TempDir(), "claude_desktop_config.json")
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}
	return Run(context.Background(), Options{
		ConfigPath:     path,
		ProjectPath:    "/home/u/app",
		CandidatePaths: []string{path},
		SkipLiveChecks: true,
	})
}

func TestReportJSONRoundTrip(t *testing.T) {
	diag := diagnoseRaw(t, `{"mcpServers":{"memory":{"command":"npx","args":["-y","@modelcontextprotocol/server-memory"]}}}`)

	var buf bytes.Buffer
	if err := NewReporter(&buf, FormatJSON, false).Report(diag); err != nil {
		t.Fatal(err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("JSON output does not parse: %v", err)
	}
	if decoded["success"] != true {
		t.Fatalf("success = %v", decoded["success"])
	}
	if _, ok := decoded["troubleshooting"]; !ok {
		t.Fatal("troubleshooting missing from JSON output")
	}
}

func TestReportYAML(t *testing.T) {
	diag := diagnoseRaw(t, `{"mcpServers":{}}`)

	var buf bytes.Buffer
	if err := NewReporter(&buf, FormatYAML, false).Report(diag); err != nil {
		t.Fatal(err)
	}

	var decoded map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("YAML output does not parse: %v", err)
	}
	if _, ok := decoded["troubleshooting"]; !ok {
		t.Fatal("troubleshooting missing from YAML output")
	}
}

func TestReportTextHealthy(t *testing.T) {
	ws := t.TempDir()
	diag := Run(context.Background(), Options{
		ConfigPath: writeConfig(t,
			`{"mcpServers":{"filesystem":{"command":"npx","args":["-y","@modelcontextprotocol/server-filesystem","`+ws+`"]}}}`),
		ProjectPath:    ws,
		CandidatePaths: nil,
		SkipLiveChecks: true,
	})
	// CandidatePaths nil falls back to platform defaults; none of them
	// exist in a test environment, so no edge cases fire.

	var buf bytes.Buffer
	if err := NewReporter(&buf, FormatText, false).Report(diag); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "healthy") {
		t.Fatalf("healthy text missing: %q", out)
	}
	if !strings.Contains(out, "Servers: 1") {
		t.Fatalf("overview missing: %q", out)
	}
}

func TestReportTextWithIssues(t *testing.T) {
	diag := diagnoseRaw(t, `{"mcpServers":{"memory":{"command":"npx","args":["-y","@modelcontextprotocol/server-memory"]}}}`)

	var buf bytes.Buffer
	if err := NewReporter(&buf, FormatText, false).Report(diag); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "1. [critical]") {
		t.Fatalf("numbered critical step missing: %q", out)
	}
	if !strings.Contains(out, "mcp_configuration_only") {
		t.Fatalf("scope footer missing: %q", out)
	}
}

func TestReportTextVerboseShowsVerification(t *testing.T) {
	diag := diagnoseRaw(t, `{"mcpServers":{}}`)

	var terse, verbose bytes.Buffer
	if err := NewReporter(&terse, FormatText, false).Report(diag); err != nil {
		t.Fatal(err)
	}
	if err := NewReporter(&verbose, FormatText, true).Report(diag); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(terse.String(), "verify:") {
		t.Fatal("terse output contains verification checklist")
	}
	if !strings.Contains(verbose.String(), "verify:") {
		t.Fatal("verbose output missing verification checklist")
	}
}

func TestReportTextDegraded(t *testing.T) {
	diag := degraded(Options{}, errTest("boom"))

	var buf bytes.Buffer
	if err := NewReporter(&buf, FormatText, false).Report(diag); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "could not complete") {
		t.Fatalf("degraded banner missing: %q", out)
	}
	if !strings.Contains(out, "1. [critical]") {
		t.Fatalf("recovery step missing: %q", out)
	}
}

func TestReportNilDiagnosis(t *testing.T) {
	var buf bytes.Buffer
	if err := NewReporter(&buf, FormatText, false).Report(nil); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Fatalf("nil diagnosis produced output: %q", buf.String())
	}
}

// errTest is a trivial error for exercising degraded output.
type errTest string

func (e errTest) Error() string { return string(e) }
