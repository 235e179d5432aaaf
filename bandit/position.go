package bandit

import (
	"fmt"
	"math/rand"
)

// PositionBasedEnvironment simulates the position-based model (PBM): each
// rank has a fixed examination probability, and every examined document is
// clicked independently with its attraction. Multiple clicks per round.
type PositionBasedEnvironment struct {
	docs           docSet
	positionBiases []float64
	rng            *rand.Rand
}

// NewPositionBasedEnvironment validates the universe and the per-rank
// examination probabilities. positionBiases must cover at least slateSize
// ranks; extras are ignored.
func NewPositionBasedEnvironment(documents []Document, slateSize int, positionBiases []float64, rng *rand.Rand) (*PositionBasedEnvironment, error) {
	docs, err := newDocSet(documents, slateSize)
	if err != nil {
		return nil, err
	}
	if len(positionBiases) < slateSize {
		return nil, fmt.Errorf("%w: position biases length (%d) must match or exceed slate size (%d)",
			ErrInvalidConfiguration, len(positionBiases), slateSize)
	}
	validated := make([]float64, slateSize)
	for index, bias := range positionBiases[:slateSize] {
		if bias < 0.0 || bias > 1.0 {
			return nil, fmt.Errorf("%w: position bias at index %d must be in [0, 1], got %v",
				ErrInvalidConfiguration, index, bias)
		}
		validated[index] = bias
	}
	return &PositionBasedEnvironment{docs: docs, positionBiases: validated, rng: defaultRNG(rng)}, nil
}

// DocIDs implements Environment.
func (e *PositionBasedEnvironment) DocIDs() []string {
	return e.docs.docIDs()
}

// Evaluate implements Environment. Seen contains only examined documents, so
// it may skip slate positions; click positions stay indexed by slate rank.
// Reward is the click count.
func (e *PositionBasedEnvironment) Evaluate(slate []string) (Interaction, error) {
	normalized, err := e.docs.normalize(slate)
	if err != nil {
		return Interaction{}, err
	}
	seen := make([]string, 0, len(normalized))
	clickPositions := make([]int, 0, len(normalized))
	for position, docID := range normalized {
		if e.rng.Float64() >= e.positionBiases[position] {
			continue
		}
		seen = append(seen, docID)
		if e.rng.Float64() < e.docs.attraction(docID) {
			clickPositions = append(clickPositions, position)
		}
	}
	var clickIndex *int
	if len(clickPositions) > 0 {
		clickIndex = intPtr(clickPositions[0])
	}
	return Interaction{
		Slate:          normalized,
		Seen:           seen,
		ClickIndex:     clickIndex,
		ClickPositions: clickPositions,
		Reward:         float64(len(clickPositions)),
	}, nil
}

// OptimalSlate implements RewardOracle as the rank-invariant top-k by
// attraction. This is a known simplification: the true optimum pairs sorted
// attractions with sorted biases, which only differs when biases are not
// already descending.
func (e *PositionBasedEnvironment) OptimalSlate() []string {
	return e.docs.topByAttraction()
}

// ExpectedReward implements RewardOracle:
// sum over ranks of bias[rank] * attraction(doc at rank).
func (e *PositionBasedEnvironment) ExpectedReward(slate []string) (float64, error) {
	normalized, err := e.docs.normalize(slate)
	if err != nil {
		return 0, err
	}
	reward := 0.0
	for position, docID := range normalized {
		reward += e.positionBiases[position] * e.docs.attraction(docID)
	}
	return reward, nil
}
