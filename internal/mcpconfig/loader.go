package mcpconfig

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/thoreinstein/mcpdoctor/internal/errors"
	"github.com/thoreinstein/mcpdoctor/pkg/fileutil"
)

// ErrorKind tags the failure mode of a load attempt.
type ErrorKind string

const (
	// KindEmpty indicates the configuration file had no content.
	KindEmpty ErrorKind = "empty"

	// KindSyntax indicates the content is not valid JSON.
	KindSyntax ErrorKind = "syntax"

	// KindNotFound indicates the configuration file does not exist.
	KindNotFound ErrorKind = "not_found"

	// KindRead indicates the file exists but could not be read.
	KindRead ErrorKind = "read"
)

// LoadError describes a non-fatal load failure. It is data, not a thrown
// error: callers always receive a usable fallback document alongside it.
type LoadError struct {
	// Kind tags the failure mode.
	Kind ErrorKind `json:"kind"`

	// Message is the human-readable description, including the underlying
	// parser message for syntax failures.
	Message string `json:"message"`

	// Err is the underlying error, if any.
	Err error `json:"-"`
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return e.Message
}

// Unwrap returns the underlying error.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// LoadResult is the outcome of loading a configuration document. Document is
// never nil: on any failure it holds the {mcpServers:{}} fallback.
type LoadResult struct {
	// Document is the parsed configuration, or the fallback on failure.
	Document *Document

	// Path is the file the document was loaded from, empty for raw parses.
	Path string

	// Error is set when the document could not be read or parsed.
	Error *LoadError

	// Warning is set for degraded-but-usable outcomes, such as a valid
	// JSON document with no mcpServers section.
	Warning string

	// SchemaIssues lists structural problems found in an otherwise
	// parseable document (wrong field types, malformed entries).
	SchemaIssues []SchemaIssue
}

// OK reports whether the document loaded without error. A result with only
// a Warning is still OK.
func (r *LoadResult) OK() bool {
	return r.Error == nil
}

// Parse reads a configuration document from raw bytes. It never fails hard:
// every outcome carries a usable Document.
func Parse(raw []byte) *LoadResult {
	result := &LoadResult{Document: NewDocument()}

	if len(strings.TrimSpace(string(raw))) == 0 {
		result.Error = &LoadError{
			Kind:    KindEmpty,
			Message: "configuration file is empty",
		}
		return result
	}

	var root map[string]json.RawMessage
	if err := json.Unmarshal(raw, &root); err != nil {
		result.Error = syntaxError(raw, err)
		return result
	}

	serversRaw, ok := root["mcpServers"]
	if !ok || isJSONNull(serversRaw) {
		result.Warning = "configuration incomplete: no mcpServers section; treating as empty"
		return result
	}

	doc, issues := decodeServers(serversRaw)
	result.Document = doc
	result.SchemaIssues = issues
	return result
}

// LoadFile reads and parses the configuration file at path. A missing or
// unreadable file yields a typed error plus the fallback document, mirroring
// Parse's no-exception guarantee.
func LoadFile(path string) *LoadResult {
	raw, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		result := &LoadResult{Document: NewDocument(), Path: path}
		if errors.Is(err, fs.ErrNotExist) {
			result.Error = &LoadError{
				Kind:    KindNotFound,
				Message: fmt.Sprintf("configuration file not found: %s", path),
				Err:     err,
			}
			return result
		}
		result.Error = &LoadError{
			Kind:    KindRead,
			Message: fmt.Sprintf("reading configuration file %s: %v", path, err),
			Err:     err,
		}
		return result
	}

	result := Parse(raw)
	result.Path = path
	return result
}

// syntaxError builds a LoadError for malformed JSON, including line/column
// position and a hint when the content looks like a TOML document instead.
func syntaxError(raw []byte, err error) *LoadError {
	msg := fmt.Sprintf("JSON syntax error: %v", err)

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		line, col := offsetToLineCol(raw, int(syntaxErr.Offset))
		msg = fmt.Sprintf("JSON syntax error at line %d, column %d: %v", line, col, err)
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		line, col := offsetToLineCol(raw, int(typeErr.Offset))
		msg = fmt.Sprintf("JSON syntax error at line %d, column %d: expected an object at the top level", line, col)
	}

	// A settings.toml pasted in place of the JSON config is a recurring
	// support case; name it when we can.
	var probe any
	if toml.Unmarshal(raw, &probe) == nil {
		msg += " (content parses as TOML; Claude Desktop requires JSON)"
	}

	return &LoadError{
		Kind:    KindSyntax,
		Message: msg,
		Err:     err,
	}
}

// offsetToLineCol converts a byte offset to 1-indexed line and column numbers.
func offsetToLineCol(data []byte, offset int) (line, col int) {
	if offset > len(data) {
		offset = len(data)
	}
	if offset < 0 {
		offset = 0
	}

	line = 1
	lineStart := 0

	for i := range offset {
		if data[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}

	col = offset - lineStart + 1
	return line, col
}

func isJSONNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}
