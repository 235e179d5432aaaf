package bandit

import (
	"fmt"
	"math/rand"
)

// EpsilonGreedyRanking explores with probability epsilon by showing a
// uniformly shuffled slate, and otherwise exploits by ranking documents on a
// smoothed empirical click-through estimate.
type EpsilonGreedyRanking struct {
	core         policyCore
	epsilon      float64
	priorSuccess float64
	priorFailure float64
	stats        map[string]*ArmStats
}

// NewEpsilonGreedyRanking validates epsilon in [0, 1] and strictly positive
// smoothing priors.
func NewEpsilonGreedyRanking(docIDs []string, slateSize int, epsilon, priorSuccess, priorFailure float64, rng *rand.Rand) (*EpsilonGreedyRanking, error) {
	core, err := newPolicyCore(docIDs, slateSize, rng)
	if err != nil {
		return nil, err
	}
	if epsilon < 0.0 || epsilon > 1.0 {
		return nil, fmt.Errorf("%w: epsilon must be in [0, 1], got %v", ErrInvalidConfiguration, epsilon)
	}
	if priorSuccess <= 0 || priorFailure <= 0 {
		return nil, fmt.Errorf("%w: prior success (%v) and prior failure (%v) must be > 0",
			ErrInvalidConfiguration, priorSuccess, priorFailure)
	}
	stats := make(map[string]*ArmStats, len(docIDs))
	for _, docID := range core.docIDs {
		stats[docID] = &ArmStats{}
	}
	return &EpsilonGreedyRanking{
		core:         core,
		epsilon:      epsilon,
		priorSuccess: priorSuccess,
		priorFailure: priorFailure,
		stats:        stats,
	}, nil
}

// SelectSlate implements RankingPolicy.
func (p *EpsilonGreedyRanking) SelectSlate() []string {
	if p.core.rng.Float64() < p.epsilon {
		sampled := p.core.DocIDs()
		p.core.rng.Shuffle(len(sampled), func(i, j int) {
			sampled[i], sampled[j] = sampled[j], sampled[i]
		})
		return sampled[:p.core.slateSize]
	}
	return p.core.rankTop(p.score)
}

// Update implements RankingPolicy. Every examined document gains an
// impression; only the document at the first click position gains a click,
// even when the interaction carries multiple click positions.
func (p *EpsilonGreedyRanking) Update(interaction Interaction) {
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
func (p *EpsilonGreedyRanking) Stats(docID string) (ArmStats, bool) {
	stats, ok := p.stats[docID]
	if !ok {
		return ArmStats{}, false
	}
	return *stats, true
}

// score is the Beta-mean style smoothed estimate
// (clicks + priorSuccess) / (impressions + priorSuccess + priorFailure).
func (p *EpsilonGreedyRanking) score(docID string) float64 {
	stats := p.stats[docID]
	numerator := float64(stats.Clicks) + p.priorSuccess
	denominator := float64(stats.Impressions) + p.priorSuccess + p.priorFailure
	return numerator / denominator
}
