package mcpconfig

import (
	"encoding/json"
	"fmt"
	"sort"
)

// SchemaTag classifies a schema validation outcome.
type SchemaTag string

const (
	// SchemaMissingField indicates a required field is absent.
	SchemaMissingField SchemaTag = "missing_field"

	// SchemaWrongType indicates a field holds a value of the wrong type.
	SchemaWrongType SchemaTag = "wrong_type"
)

// SchemaIssue is one structural problem in a parseable document. The
// malformed-structure taxonomy lives here so downstream rules consume tagged
// outcomes instead of re-probing field types.
type SchemaIssue struct {
	// Tag classifies the issue.
	Tag SchemaTag `json:"tag"`

	// Server is the owning server entry, empty for document-level issues.
	Server string `json:"server,omitempty"`

	// Field is the offending field name.
	Field string `json:"field"`

	// Want is the expected JSON type.
	Want string `json:"want,omitempty"`

	// Got is the JSON type actually found.
	Got string `json:"got,omitempty"`
}

// String renders the issue for log output.
func (i SchemaIssue) String() string {
	switch i.Tag {
	case SchemaWrongType:
		if i.Server != "" {
			return fmt.Sprintf("server %q field %q: expected %s, got %s", i.Server, i.Field, i.Want, i.Got)
		}
		return fmt.Sprintf("field %q: expected %s, got %s", i.Field, i.Want, i.Got)
	default:
		if i.Server != "" {
			return fmt.Sprintf("server %q: missing field %q", i.Server, i.Field)
		}
		return fmt.Sprintf("missing field %q", i.Field)
	}
}

// decodeServers decodes the mcpServers section, collecting schema issues
// instead of failing. Well-typed fields are kept even when sibling fields
// are malformed, so diagnosis sees as much of the document as possible.
func decodeServers(raw json.RawMessage) (*Document, []SchemaIssue) {
	doc := NewDocument()
	var issues []SchemaIssue

	var servers map[string]json.RawMessage
	if err := json.Unmarshal(raw, &servers); err != nil {
		issues = append(issues, SchemaIssue{
			Tag:   SchemaWrongType,
			Field: "mcpServers",
			Want:  "object",
			Got:   jsonTypeName(raw),
		})
		return doc, issues
	}

	// Sorted iteration keeps issue order deterministic.
	names := make([]string, 0, len(servers))
	for name := range servers {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		entry, entryIssues := decodeEntry(name, servers[name])
		doc.MCPServers[name] = entry
		issues = append(issues, entryIssues...)
	}

	return doc, issues
}

// decodeEntry decodes a single server entry field by field. A field of the
// wrong type is dropped and recorded; the rest of the entry survives.
func decodeEntry(name string, raw json.RawMessage) (*ServerEntry, []SchemaIssue) {
	entry := &ServerEntry{}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return entry, []SchemaIssue{{
			Tag:    SchemaWrongType,
			Server: name,
			Field:  name,
			Want:   "object",
			Got:    jsonTypeName(raw),
		}}
	}

	var issues []SchemaIssue

	if v, ok := fields["command"]; ok && !isJSONNull(v) {
		if err := json.Unmarshal(v, &entry.Command); err != nil {
			issues = append(issues, SchemaIssue{
				Tag:    SchemaWrongType,
				Server: name,
				Field:  "command",
				Want:   "string",
				Got:    jsonTypeName(v),
			})
		}
	}

	if v, ok := fields["args"]; ok && !isJSONNull(v) {
		if err := json.Unmarshal(v, &entry.Args); err != nil {
			issues = append(issues, SchemaIssue{
				Tag:    SchemaWrongType,
				Server: name,
				Field:  "args",
				Want:   "array of strings",
				Got:    jsonTypeName(v),
			})
			entry.Args = nil
		}
	}

	if v, ok := fields["env"]; ok && !isJSONNull(v) {
		if err := json.Unmarshal(v, &entry.Env); err != nil {
			issues = append(issues, SchemaIssue{
				Tag:    SchemaWrongType,
				Server: name,
				Field:  "env",
				Want:   "object of strings",
				Got:    jsonTypeName(v),
			})
			entry.Env = nil
		}
	}

	return entry, issues
}

// jsonTypeName reports the JSON type of a raw value for error messages.
func jsonTypeName(raw json.RawMessage) string {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "invalid"
	}
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "unknown"
	}
}
