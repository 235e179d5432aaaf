package bandit

import (
	"fmt"
	"math/rand"
)

// DependentClickEnvironment simulates the dependent click model (DCM):
// sequential examination like cascade, but after a click the user continues
// with probability 1 - satisfaction(doc). Multiple clicks per round.
type DependentClickEnvironment struct {
	docs         docSet
	satisfaction map[string]float64
	rng          *rand.Rand
}

// NewDependentClickEnvironment validates the universe plus the satisfaction
// probabilities. Documents absent from satisfaction fall back to
// defaultSatisfaction; satisfaction entries may reference only known ids
// implicitly (unknown ids are ignored, matching the resolved-per-universe
// semantics).
func NewDependentClickEnvironment(documents []Document, slateSize int, satisfaction map[string]float64, defaultSatisfaction float64, rng *rand.Rand) (*DependentClickEnvironment, error) {
	docs, err := newDocSet(documents, slateSize)
	if err != nil {
		return nil, err
	}
	if defaultSatisfaction < 0.0 || defaultSatisfaction > 1.0 {
		return nil, fmt.Errorf("%w: default satisfaction must be in [0, 1], got %v",
			ErrInvalidConfiguration, defaultSatisfaction)
	}
	for docID, value := range satisfaction {
		if value < 0.0 || value > 1.0 {
			return nil, fmt.Errorf("%w: satisfaction probability for %q must be in [0, 1], got %v",
				ErrInvalidConfiguration, docID, value)
		}
	}
	resolved := make(map[string]float64, len(docs.docs))
	for _, doc := range docs.docs {
		if value, ok := satisfaction[doc.ID]; ok {
			resolved[doc.ID] = value
		} else {
			resolved[doc.ID] = defaultSatisfaction
		}
	}
	return &DependentClickEnvironment{docs: docs, satisfaction: resolved, rng: defaultRNG(rng)}, nil
}

// DocIDs implements Environment.
func (e *DependentClickEnvironment) DocIDs() []string {
	return e.docs.docIDs()
}

// Evaluate implements Environment. Seen is the examined prefix; examination
// halts when a clicked document satisfies the user. Reward is the click count.
func (e *DependentClickEnvironment) Evaluate(slate []string) (Interaction, error) {
	normalized, err := e.docs.normalize(slate)
	if err != nil {
		return Interaction{}, err
	}
	seen := make([]string, 0, len(normalized))
	clickPositions := make([]int, 0, len(normalized))
	for position, docID := range normalized {
		seen = append(seen, docID)
		if e.rng.Float64() < e.docs.attraction(docID) {
			clickPositions = append(clickPositions, position)
			if e.rng.Float64() < e.satisfaction[docID] {
				break
			}
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

// OptimalSlate implements RewardOracle as the top documents by attraction.
func (e *DependentClickEnvironment) OptimalSlate() []string {
	return e.docs.topByAttraction()
}

// ExpectedReward implements RewardOracle. The running continue probability
// shrinks by (1 - attraction*satisfaction) after each rank while reward
// accumulates continueProb * attraction.
func (e *DependentClickEnvironment) ExpectedReward(slate []string) (float64, error) {
	normalized, err := e.docs.normalize(slate)
	if err != nil {
		return 0, err
	}
	reward := 0.0
	continueProb := 1.0
	for _, docID := range normalized {
		attraction := e.docs.attraction(docID)
		reward += continueProb * attraction
		continueProb *= 1.0 - attraction*e.satisfaction[docID]
	}
	return reward, nil
}
