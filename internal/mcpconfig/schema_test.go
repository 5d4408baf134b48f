package mcpconfig

import (
	"strings"
	"testing"
)

func TestParse_SchemaIssues(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantTag    SchemaTag
		wantServer string
		wantField  string
		wantGot    string
	}{
		{
			name:      "mcpServers is an array",
			raw:       `{"mcpServers": []}`,
			wantTag:   SchemaWrongType,
			wantField: "mcpServers",
			wantGot:   "array",
		},
		{
			name:       "entry is a string",
			raw:        `{"mcpServers": {"fs": "npx"}}`,
			wantTag:    SchemaWrongType,
			wantServer: "fs",
			wantGot:    "string",
		},
		{
			name:       "command is a number",
			raw:        `{"mcpServers": {"custom": {"command": 42}}}`,
			wantTag:    SchemaWrongType,
			wantServer: "custom",
			wantField:  "command",
			wantGot:    "number",
		},
		{
			name:       "args is a string",
			raw:        `{"mcpServers": {"custom": {"command": "npx", "args": "-y"}}}`,
			wantTag:    SchemaWrongType,
			wantServer: "custom",
			wantField:  "args",
			wantGot:    "string",
		},
		{
			name:       "env is an array",
			raw:        `{"mcpServers": {"custom": {"command": "npx", "env": ["A=1"]}}}`,
			wantTag:    SchemaWrongType,
			wantServer: "custom",
			wantField:  "env",
			wantGot:    "array",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Parse([]byte(tt.raw))

			if !result.OK() {
				t.Fatalf("schema issues must not fail the parse: %v", result.Error)
			}
			if len(result.SchemaIssues) != 1 {
				t.Fatalf("SchemaIssues = %v, want exactly one", result.SchemaIssues)
			}

			issue := result.SchemaIssues[0]
			if issue.Tag != tt.wantTag {
				t.Errorf("Tag = %q, want %q", issue.Tag, tt.wantTag)
			}
			if issue.Server != tt.wantServer {
				t.Errorf("Server = %q, want %q", issue.Server, tt.wantServer)
			}
			if tt.wantField != "" && issue.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", issue.Field, tt.wantField)
			}
			if issue.Got != tt.wantGot {
				t.Errorf("Got = %q, want %q", issue.Got, tt.wantGot)
			}
		})
	}
}

func TestParse_MalformedFieldKeepsSiblings(t *testing.T) {
	raw := `{"mcpServers": {"custom": {"command": "npx", "args": 7}}}`
	result := Parse([]byte(raw))

	entry := result.Document.MCPServers["custom"]
	if entry == nil {
		t.Fatal("entry should survive a malformed field")
	}
	if entry.Command != "npx" {
		t.Errorf("Command = %q, want npx", entry.Command)
	}
	if entry.Args != nil {
		t.Errorf("malformed args should be dropped, got %v", entry.Args)
	}
}

func TestParse_SchemaIssuesDeterministicOrder(t *testing.T) {
	raw := `{"mcpServers": {"zzz": {"command": 1}, "aaa": {"command": 2}}}`

	first := Parse([]byte(raw))
	second := Parse([]byte(raw))

	if len(first.SchemaIssues) != 2 || len(second.SchemaIssues) != 2 {
		t.Fatalf("want two issues, got %d and %d", len(first.SchemaIssues), len(second.SchemaIssues))
	}
	if first.SchemaIssues[0].Server != "aaa" {
		t.Errorf("issues should come in sorted server order, got %q first", first.SchemaIssues[0].Server)
	}
	for i := range first.SchemaIssues {
		if first.SchemaIssues[i] != second.SchemaIssues[i] {
			t.Error("two parses of the same input should produce identical issues")
		}
	}
}

func TestSchemaIssue_String(t *testing.T) {
	issue := SchemaIssue{Tag: SchemaWrongType, Server: "fs", Field: "args", Want: "array of strings", Got: "string"}
	s := issue.String()
	for _, want := range []string{"fs", "args", "array of strings", "string"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}
