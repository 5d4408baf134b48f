package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/mcpdoctor/internal/config"
	"github.com/thoreinstein/mcpdoctor/internal/diagnose"
	"github.com/thoreinstein/mcpdoctor/internal/errors"
)

func init() {
	color.NoColor = true
}

func resetFlags(t *testing.T) {
	t.Helper()
	prevJSON, prevYAML, prevQuiet, prevVerbosity := diagnoseJSON, diagnoseYAML, quiet, verbosity
	prevConfig, prevProject, prevInteractive := diagnoseConfig, diagnoseProject, diagnoseInteractive
	prevCfg := cfg
	t.Cleanup(func() {
		diagnoseJSON, diagnoseYAML, quiet, verbosity = prevJSON, prevYAML, prevQuiet, prevVerbosity
		diagnoseConfig, diagnoseProject, diagnoseInteractive = prevConfig, prevProject, prevInteractive
		cfg = prevCfg
	})
	diagnoseJSON, diagnoseYAML, quiet = false, false, false
	verbosity = 0
	diagnoseConfig, diagnoseProject = "", ""
	diagnoseInteractive = false
	cfg = config.Default()
}

func writeTestConfig(t *testing.T, raw string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "claude_desktop_config.json")
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestCommand(out *bytes.Buffer) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetContext(context.Background())
	return cmd
}

func TestDiagnoseCommandMetadata(t *testing.T) {
	if diagnoseCmd.Use != "diagnose" {
		t.Errorf("Use = %q, want %q", diagnoseCmd.Use, "diagnose")
	}
	if diagnoseCmd.Short == "" {
		t.Error("Short description should not be empty")
	}
	for _, flag := range []string{"config", "project", "json", "yaml", "markdown", "interactive"} {
		if diagnoseCmd.Flags().Lookup(flag) == nil {
			t.Errorf("--%s flag should be defined", flag)
		}
	}
}

func TestValidateDiagnoseFlags(t *testing.T) {
	tests := []struct {
		name    string
		json    bool
		yaml    bool
		quiet   bool
		wantErr bool
	}{
		{"none", false, false, false, false},
		{"json only", true, false, false, false},
		{"yaml only", false, true, false, false},
		{"quiet only", false, false, true, false},
		{"json and yaml", true, true, false, true},
		{"json and quiet", true, false, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t)
			diagnoseJSON, diagnoseYAML, quiet = tt.json, tt.yaml, tt.quiet
			err := validateDiagnoseFlags(nil, nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRunDiagnoseHealthyExitsClean(t *testing.T) {
	resetFlags(t)
	ws := t.TempDir()
	diagnoseConfig = writeTestConfig(t,
		`{"mcpServers":{"filesystem":{"command":"npx","args":["-y","@modelcontextprotocol/server-filesystem","`+ws+`"]}}}`)
	diagnoseProject = ws
	cfg.CandidatePaths = []string{diagnoseConfig}
	cfg.SkipLiveChecks = true

	var out bytes.Buffer
	if err := runDiagnose(newTestCommand(&out), nil); err != nil {
		t.Fatalf("healthy config returned %v", err)
	}
	if !strings.Contains(out.String(), "healthy") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestRunDiagnoseBlockingExitCode(t *testing.T) {
	resetFlags(t)
	diagnoseConfig = writeTestConfig(t, `{"mcpServers":{}}`)
	cfg.CandidatePaths = []string{diagnoseConfig}
	cfg.SkipLiveChecks = true

	var out bytes.Buffer
	err := runDiagnose(newTestCommand(&out), nil)

	var exitErr *errors.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("err = %v, want ExitError", err)
	}
	if exitErr.Code != errors.ExitBlocking {
		t.Fatalf("code = %d, want %d", exitErr.Code, errors.ExitBlocking)
	}
	if exitErr.Err != nil {
		t.Fatalf("exit sentinel should carry no message, got %v", exitErr.Err)
	}
}

func TestRunDiagnoseQuietSuppressesOutput(t *testing.T) {
	resetFlags(t)
	quiet = true
	diagnoseConfig = writeTestConfig(t, `{"mcpServers":{}}`)
	cfg.CandidatePaths = []string{diagnoseConfig}
	cfg.SkipLiveChecks = true

	var out bytes.Buffer
	_ = runDiagnose(newTestCommand(&out), nil)
	if out.Len() != 0 {
		t.Fatalf("quiet mode wrote output: %q", out.String())
	}
}

func TestRunDiagnoseJSONOutput(t *testing.T) {
	resetFlags(t)
	diagnoseJSON = true
	diagnoseConfig = writeTestConfig(t, `{"mcpServers":{}}`)
	cfg.CandidatePaths = []string{diagnoseConfig}
	cfg.SkipLiveChecks = true

	var out bytes.Buffer
	_ = runDiagnose(newTestCommand(&out), nil)

	var decoded map[string]any
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("JSON output does not parse: %v\n%s", err, out.String())
	}
	if decoded["success"] != true {
		t.Fatalf("success = %v", decoded["success"])
	}
}

func TestOutputDiagnosisFormats(t *testing.T) {
	diag := diagnose.Run(context.Background(), diagnose.Options{
		ConfigPath:     writeTestConfig(t, `{"mcpServers":{}}`),
		CandidatePaths: []string{},
		SkipLiveChecks: true,
	})

	tests := []struct {
		name string
		json bool
		yaml bool
		want string
	}{
		{"text", false, false, "Servers:"},
		{"json", true, false, `"success"`},
		{"yaml", false, true, "success:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t)
			diagnoseJSON, diagnoseYAML = tt.json, tt.yaml

			var out bytes.Buffer
			if err := outputDiagnosis(newTestCommand(&out), diag); err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Fatalf("%s output missing %q: %q", tt.name, tt.want, out.String())
			}
		})
	}
}
