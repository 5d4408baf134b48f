package prompt

import (
	"fmt"
	"os"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/thoreinstein/mcpdoctor/internal/errors"
)

// previewLimit caps how much of a candidate file the preview shows.
const previewLimit = 2048

// SelectCandidateFuzzy presents candidates in a fuzzy-finder with a
// preview of each file's content. Only usable on a TTY; callers should
// fall back to SelectCandidate otherwise.
func SelectCandidateFuzzy(candidates []Candidate) (*Candidate, error) {
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}
	if len(candidates) == 1 {
		return &candidates[0], nil
	}

	idx, err := fuzzyfinder.Find(
		candidates,
		func(i int) string {
			return candidates[i].Label()
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			return preview(candidates[i])
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, errors.ErrSelectionCancelled
		}
		return nil, errors.Wrap(err, "selecting configuration file")
	}

	return &candidates[idx], nil
}

func preview(c Candidate) string {
	header := fmt.Sprintf("Path: %s\nStandard location: %v\n", c.Path, c.Standard)
	if !c.Exists {
		return header + "\n(file does not exist)"
	}

	data, err := os.ReadFile(c.Path)
	if err != nil {
		return header + fmt.Sprintf("\n(unreadable: %v)", err)
	}
	if len(data) > previewLimit {
		data = append(data[:previewLimit], []byte("\n…")...)
	}
	return header + "\n" + string(data)
}
