package bandit

import (
	"fmt"
	"strings"
)

// Interaction is the feedback generated from playing one slate in an
// environment. It is created once per round and never mutated.
//
// ClickPositions are positions within the displayed slate, not within Seen.
// Under the position-based model a clicked position may have no Seen
// counterpart at the same index; the clicked-document accessors bounds-check
// against Seen and drop such positions.
type Interaction struct {
	Slate          []string // ordered ids shown this round
	Seen           []string // ordered ids actually examined
	ClickIndex     *int     // first click position, nil when no click
	ClickPositions []int    // all clicked positions, first-to-last
	Reward         float64
}

// ClickedDocID resolves ClickIndex through Seen. The second return value is
// false when there was no click or the index falls outside Seen.
func (in Interaction) ClickedDocID() (string, bool) {
	if in.ClickIndex == nil {
		return "", false
	}
	idx := *in.ClickIndex
	if idx < 0 || idx >= len(in.Seen) {
		return "", false
	}
	return in.Seen[idx], true
}

// ClickedDocIDs resolves every click position through Seen, preserving click
// order and skipping positions outside Seen.
func (in Interaction) ClickedDocIDs() []string {
	ids := make([]string, 0, len(in.ClickPositions))
	for _, pos := range in.ClickPositions {
		if pos < 0 || pos >= len(in.Seen) {
			continue
		}
		ids = append(ids, in.Seen[pos])
	}
	return ids
}

// NormalizeSlate reduces docIDs to exactly slateSize unique ids, preserving
// order and truncating extras. A repeated id inside the examined prefix fails
// with ErrInvalidSlate; fewer than slateSize unique ids fails with
// ErrInsufficientSlate.
func NormalizeSlate(docIDs []string, slateSize int) ([]string, error) {
	if slateSize < 1 {
		return nil, fmt.Errorf("%w: slate size must be >= 1, got %d", ErrInvalidConfiguration, slateSize)
	}
	unique := make([]string, 0, slateSize)
	seen := make(map[string]struct{}, slateSize)
	for _, docID := range docIDs {
		if _, dup := seen[docID]; dup {
			return nil, fmt.Errorf("%w: duplicate document id %q inside slate", ErrInvalidSlate, docID)
		}
		seen[docID] = struct{}{}
		unique = append(unique, docID)
		if len(unique) == slateSize {
			break
		}
	}
	if len(unique) < slateSize {
		return nil, fmt.Errorf("%w: slate has %d documents but requires %d", ErrInsufficientSlate, len(unique), slateSize)
	}
	return unique, nil
}

func unknownDocumentsError(missing []string) error {
	return fmt.Errorf("%w: unknown document ids requested: %s", ErrUnknownDocument, strings.Join(missing, ", "))
}
