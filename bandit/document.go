package bandit

import "fmt"

// Document describes a single item that can appear in a ranking slate.
// Attraction is the probability of a click given that the document is
// examined. Documents are immutable value types.
type Document struct {
	ID         string
	Attraction float64
}

// NewDocument validates the attraction probability and returns a Document.
// Attraction must be in [0, 1]; both endpoints are valid.
func NewDocument(id string, attraction float64) (Document, error) {
	if err := validateProbability(attraction); err != nil {
		return Document{}, fmt.Errorf("document %q: %w", id, err)
	}
	return Document{ID: id, Attraction: attraction}, nil
}

func validateProbability(value float64) error {
	if value < 0.0 || value > 1.0 {
		return fmt.Errorf("%w: must be in [0, 1], got %v", ErrInvalidProbability, value)
	}
	return nil
}
