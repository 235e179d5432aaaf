package bandit

import (
	"fmt"
	"math"
	"math/rand"
)

// SoftmaxRanking (Boltzmann exploration) weights each document by
// exp(mean / temperature) and samples the slate without replacement
// proportionally to weight. Low temperatures sharpen exploitation.
type SoftmaxRanking struct {
	core        policyCore
	temperature float64
	stats       map[string]*ArmStats
}

// NewSoftmaxRanking validates a strictly positive temperature.
func NewSoftmaxRanking(docIDs []string, slateSize int, temperature float64, rng *rand.Rand) (*SoftmaxRanking, error) {
	core, err := newPolicyCore(docIDs, slateSize, rng)
	if err != nil {
		return nil, err
	}
	if temperature <= 0 {
		return nil, fmt.Errorf("%w: temperature must be > 0, got %v", ErrInvalidConfiguration, temperature)
	}
	stats := make(map[string]*ArmStats, len(docIDs))
	for _, docID := range core.docIDs {
		stats[docID] = &ArmStats{}
	}
	return &SoftmaxRanking{core: core, temperature: temperature, stats: stats}, nil
}

// SelectSlate implements RankingPolicy via iterative renormalization:
// each pick draws proportionally to weight among the remaining candidates,
// then removes the winner.
func (p *SoftmaxRanking) SelectSlate() []string {
	candidates := p.core.DocIDs()
	slate := make([]string, 0, p.core.slateSize)
	for len(slate) < p.core.slateSize {
		total := 0.0
		for _, docID := range candidates {
			total += p.weight(docID)
		}
		draw := p.core.rng.Float64() * total
		chosen := len(candidates) - 1
		cumulative := 0.0
		for index, docID := range candidates {
			cumulative += p.weight(docID)
			if draw < cumulative {
				chosen = index
				break
			}
		}
		slate = append(slate, candidates[chosen])
		candidates = append(candidates[:chosen], candidates[chosen+1:]...)
	}
	return slate
}

// Update implements RankingPolicy. The running mean per document derives
// from impression/click counters, credited like epsilon-greedy.
func (p *SoftmaxRanking) Update(interaction Interaction) {
	for _, docID := range interaction.Seen {
		if stats, ok := p.stats[docID]; ok {
			stats.Impressions++
		}
	}
	if clicked, ok := interaction.ClickedDocID(); ok {
		if stats, present := p.stats[clicked]; present {
			stats.Clicks++
		}
	}
}

// Stats returns the counters for one document; the bool is false for ids
// outside the policy universe.
func (p *SoftmaxRanking) Stats(docID string) (ArmStats, bool) {
	stats, ok := p.stats[docID]
	if !ok {
		return ArmStats{}, false
	}
	return *stats, true
}

// weight is the Boltzmann weight exp(mean / temperature).
func (p *SoftmaxRanking) weight(docID string) float64 {
	return math.Exp(p.stats[docID].CTR() / p.temperature)
}
