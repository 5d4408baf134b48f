// Package prompt provides interactive CLI prompts for user input.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/thoreinstein/mcpdoctor/internal/errors"
)

// Sentinel errors for candidate selection.
var (
	ErrNoCandidates     = errors.New("no configuration files to select from")
	ErrInvalidSelection = errors.New("invalid selection")
)

// Candidate is one selectable configuration file location.
type Candidate struct {
	// Path is the configuration file path.
	Path string

	// Standard marks paths in the per-OS install convention.
	Standard bool

	// Exists marks paths present on disk.
	Exists bool
}

// Label renders the candidate for display.
func (c Candidate) Label() string {
	var notes []string
	if c.Standard {
		notes = append(notes, "standard")
	} else {
		notes = append(notes, "custom")
	}
	if !c.Exists {
		notes = append(notes, "missing")
	}
	return fmt.Sprintf("%s (%s)", c.Path, strings.Join(notes, ", "))
}

// Selector handles interactive candidate selection prompts.
type Selector struct {
	reader io.Reader
	writer io.Writer
}

// NewSelector creates a new Selector using stdin and stdout.
func NewSelector() *Selector {
	return &Selector{
		reader: os.Stdin,
		writer: os.Stdout,
	}
}

// NewSelectorWithIO creates a Selector with custom reader and writer for testing.
func NewSelectorWithIO(r io.Reader, w io.Writer) *Selector {
	return &Selector{
		reader: r,
		writer: w,
	}
}

// SelectCandidate prompts the user to choose which configuration file to
// diagnose.
//
// Returns:
//   - ErrNoCandidates if the list is empty
//   - The candidate if only one exists (auto-selects without prompting)
//   - The selected candidate based on user input
//   - ErrInvalidSelection if the selection is out of range
//   - errors.ErrSelectionCancelled if input is EOF (e.g., Ctrl+D)
func (s *Selector) SelectCandidate(candidates []Candidate) (*Candidate, error) {
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	// Auto-select if only one candidate
	if len(candidates) == 1 {
		return &candidates[0], nil
	}

	fmt.Fprintln(s.writer, "Multiple configuration files found:")
	for i, c := range candidates {
		fmt.Fprintf(s.writer, "  [%d] %s\n", i+1, c.Label())
	}
	fmt.Fprintf(s.writer, "Select [1]: ")

	reader := bufio.NewReader(s.reader)
	input, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.ErrSelectionCancelled
		}
		return nil, errors.Wrap(err, "reading selection")
	}

	input = strings.TrimSpace(input)

	// Default to first option if empty
	if input == "" {
		return &candidates[0], nil
	}

	selection, err := strconv.Atoi(input)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidSelection, "%q is not a number", input)
	}

	// Validate range (1-indexed)
	if selection < 1 || selection > len(candidates) {
		return nil, errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", selection, len(candidates))
	}

	return &candidates[selection-1], nil
}

// SelectCandidateDefault is a convenience function that uses stdin/stdout.
func SelectCandidateDefault(candidates []Candidate) (*Candidate, error) {
	return NewSelector().SelectCandidate(candidates)
}
