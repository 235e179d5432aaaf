package bandit

import (
	"fmt"
	"math/rand"
	"sort"
)

// RankingPolicy selects ordered slates and learns from interaction feedback.
// Implementations own their per-document statistics; no state is shared
// across policy instances.
type RankingPolicy interface {
	// SelectSlate returns exactly slateSize distinct document ids. It may
	// consume randomness but must not mutate learned statistics.
	SelectSlate() []string

	// Update folds one Interaction into the per-document statistics.
	// Seen may be shorter than the chosen slate; documents that were not
	// examined receive no update.
	Update(interaction Interaction)
}

// ArmStats tracks impression/click counters for one document.
type ArmStats struct {
	Impressions int
	Clicks      int
}

// CTR returns the empirical click-through rate, 0 before any impression.
func (s ArmStats) CTR() float64 {
	if s.Impressions == 0 {
		return 0.0
	}
	return float64(s.Clicks) / float64(s.Impressions)
}

// policyCore carries the validated universe shared by every policy.
type policyCore struct {
	docIDs    []string
	slateSize int
	rng       *rand.Rand
}

func newPolicyCore(docIDs []string, slateSize int, rng *rand.Rand) (policyCore, error) {
	if len(docIDs) == 0 {
		return policyCore{}, fmt.Errorf("%w: policy requires at least one document id", ErrInvalidConfiguration)
	}
	unique := make(map[string]struct{}, len(docIDs))
	for _, docID := range docIDs {
		if _, dup := unique[docID]; dup {
			return policyCore{}, fmt.Errorf("%w: duplicate document id detected: %s", ErrInvalidConfiguration, docID)
		}
		unique[docID] = struct{}{}
	}
	if slateSize < 1 {
		return policyCore{}, fmt.Errorf("%w: slate size must be >= 1, got %d", ErrInvalidConfiguration, slateSize)
	}
	if slateSize > len(docIDs) {
		return policyCore{}, fmt.Errorf("%w: slate size (%d) cannot exceed the number of documents (%d)",
			ErrInvalidConfiguration, slateSize, len(docIDs))
	}
	ids := make([]string, len(docIDs))
	copy(ids, docIDs)
	return policyCore{docIDs: ids, slateSize: slateSize, rng: defaultRNG(rng)}, nil
}

// DocIDs returns a copy of the policy universe in construction order.
func (c policyCore) DocIDs() []string {
	ids := make([]string, len(c.docIDs))
	copy(ids, c.docIDs)
	return ids
}

// rankTop stably sorts the universe descending by score and returns the top
// slateSize ids. Stable sort keeps construction order on ties, so selection
// is deterministic given input order.
func (c policyCore) rankTop(score func(docID string) float64) []string {
	ranked := c.DocIDs()
	sort.SliceStable(ranked, func(i, j int) bool {
		return score(ranked[i]) > score(ranked[j])
	})
	return ranked[:c.slateSize]
}
