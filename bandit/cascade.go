package bandit

import "math/rand"

// CascadeEnvironment simulates the cascade click model: the user scans the
// slate left to right, clicks at most once, and stops at the first click.
type CascadeEnvironment struct {
	docs docSet
	rng  *rand.Rand
}

// NewCascadeEnvironment validates the document universe and slate size.
// A nil rng falls back to a wall-clock-seeded stream.
func NewCascadeEnvironment(documents []Document, slateSize int, rng *rand.Rand) (*CascadeEnvironment, error) {
	docs, err := newDocSet(documents, slateSize)
	if err != nil {
		return nil, err
	}
	return &CascadeEnvironment{docs: docs, rng: defaultRNG(rng)}, nil
}

// DocIDs implements Environment.
func (e *CascadeEnvironment) DocIDs() []string {
	return e.docs.docIDs()
}

// Evaluate implements Environment. Seen is the examined prefix up to and
// including the first click, or the whole slate when no click occurs.
// Reward is 1 for any click, 0 otherwise.
func (e *CascadeEnvironment) Evaluate(slate []string) (Interaction, error) {
	normalized, err := e.docs.normalize(slate)
	if err != nil {
		return Interaction{}, err
	}
	seen := make([]string, 0, len(normalized))
	clickPositions := make([]int, 0, 1)
	var clickIndex *int
	reward := 0.0
	for position, docID := range normalized {
		seen = append(seen, docID)
		if e.rng.Float64() < e.docs.attraction(docID) {
			clickIndex = intPtr(position)
			clickPositions = append(clickPositions, position)
			reward = 1.0
			break
		}
	}
	return Interaction{
		Slate:          normalized,
		Seen:           seen,
		ClickIndex:     clickIndex,
		ClickPositions: clickPositions,
		Reward:         reward,
	}, nil
}

// OptimalSlate implements RewardOracle. The optimum set is the top documents
// by attraction; cascade reward is order-insensitive at the optimum even
// though ExpectedReward respects presented order for arbitrary slates.
func (e *CascadeEnvironment) OptimalSlate() []string {
	return e.docs.topByAttraction()
}

// ExpectedReward implements RewardOracle: probability of at least one click,
// 1 - prod(1 - attraction_i) over the normalized slate.
func (e *CascadeEnvironment) ExpectedReward(slate []string) (float64, error) {
	normalized, err := e.docs.normalize(slate)
	if err != nil {
		return 0, err
	}
	probNoClick := 1.0
	for _, docID := range normalized {
		probNoClick *= 1.0 - e.docs.attraction(docID)
	}
	return 1.0 - probNoClick, nil
}
