package bandit

import (
	"fmt"
	"math/rand"
	"sort"
	"time"
)

// Environment is implemented by click-model simulators. Evaluate consumes
// randomness from the environment's owned stream, so successive calls model a
// single evolving sequence of user sessions.
type Environment interface {
	// DocIDs returns the fixed document universe in construction order.
	DocIDs() []string

	// Evaluate validates and normalizes the slate, then runs the model's
	// stochastic click process. The returned Interaction is immutable.
	Evaluate(slate []string) (Interaction, error)
}

// RewardOracle is an optional Environment capability exposing closed-form
// reward baselines. The simulator probes for it with a type assertion;
// environments without it simply leave the log's optimal reward unset.
type RewardOracle interface {
	// OptimalSlate returns the highest-expected-value fixed slate.
	// Deterministic; consumes no randomness.
	OptimalSlate() []string

	// ExpectedReward returns the closed-form expected reward of an
	// arbitrary slate, respecting presented order where the model is
	// order-sensitive.
	ExpectedReward(slate []string) (float64, error)
}

// docSet holds the validated document universe shared by all environments.
type docSet struct {
	docs      []Document
	byID      map[string]Document
	slateSize int
}

func newDocSet(documents []Document, slateSize int) (docSet, error) {
	if len(documents) == 0 {
		return docSet{}, fmt.Errorf("%w: environment requires at least one document", ErrInvalidConfiguration)
	}
	byID := make(map[string]Document, len(documents))
	for _, doc := range documents {
		if _, dup := byID[doc.ID]; dup {
			return docSet{}, fmt.Errorf("%w: duplicate document id detected: %s", ErrInvalidConfiguration, doc.ID)
		}
		if err := validateProbability(doc.Attraction); err != nil {
			return docSet{}, fmt.Errorf("document %q: %w", doc.ID, err)
		}
		byID[doc.ID] = doc
	}
	if slateSize < 1 {
		return docSet{}, fmt.Errorf("%w: slate size must be >= 1, got %d", ErrInvalidConfiguration, slateSize)
	}
	if slateSize > len(documents) {
		return docSet{}, fmt.Errorf("%w: slate size (%d) cannot exceed number of documents (%d)",
			ErrInvalidConfiguration, slateSize, len(documents))
	}
	docs := make([]Document, len(documents))
	copy(docs, documents)
	return docSet{docs: docs, byID: byID, slateSize: slateSize}, nil
}

func (d docSet) docIDs() []string {
	ids := make([]string, len(d.docs))
	for i, doc := range d.docs {
		ids[i] = doc.ID
	}
	return ids
}

func (d docSet) attraction(docID string) float64 {
	return d.byID[docID].Attraction
}

// ensureKnown fails with ErrUnknownDocument when the slate references ids
// outside the universe. The whole slate is checked before normalization so
// the error names every offending id.
func (d docSet) ensureKnown(slate []string) error {
	var missing []string
	for _, docID := range slate {
		if _, ok := d.byID[docID]; !ok {
			missing = append(missing, docID)
		}
	}
	if len(missing) > 0 {
		return unknownDocumentsError(missing)
	}
	return nil
}

// normalize validates ids against the universe and reduces the slate to
// exactly slateSize unique entries.
func (d docSet) normalize(slate []string) ([]string, error) {
	if err := d.ensureKnown(slate); err != nil {
		return nil, err
	}
	return NormalizeSlate(slate, d.slateSize)
}

// topByAttraction returns the top slateSize ids by attraction. The sort is
// stable, so ties keep construction order.
func (d docSet) topByAttraction() []string {
	ordered := d.docIDs()
	sort.SliceStable(ordered, func(i, j int) bool {
		return d.attraction(ordered[i]) > d.attraction(ordered[j])
	})
	return ordered[:d.slateSize]
}

// defaultRNG covers callers that pass a nil stream; seeded from the wall
// clock, so reproducible runs must supply their own source.
func defaultRNG(rng *rand.Rand) *rand.Rand {
	if rng != nil {
		return rng
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

func intPtr(v int) *int {
	return &v
}
