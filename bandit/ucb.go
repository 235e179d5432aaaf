package bandit

import (
	"fmt"
	"math"
	"math/rand"
)

// UCB1Ranking ranks documents by empirical CTR plus an upper confidence
// bonus. Documents never shown score +Inf so every document is covered
// before the bound takes over.
type UCB1Ranking struct {
	core             policyCore
	confidence       float64
	stats            map[string]*ArmStats
	totalImpressions int
}

// NewUCB1Ranking validates a non-negative confidence multiplier.
func NewUCB1Ranking(docIDs []string, slateSize int, confidence float64, rng *rand.Rand) (*UCB1Ranking, error) {
	core, err := newPolicyCore(docIDs, slateSize, rng)
	if err != nil {
		return nil, err
	}
	if confidence < 0 {
		return nil, fmt.Errorf("%w: confidence must be >= 0, got %v", ErrInvalidConfiguration, confidence)
	}
	stats := make(map[string]*ArmStats, len(docIDs))
	for _, docID := range core.docIDs {
		stats[docID] = &ArmStats{}
	}
	return &UCB1Ranking{core: core, confidence: confidence, stats: stats}, nil
}

// SelectSlate implements RankingPolicy.
func (p *UCB1Ranking) SelectSlate() []string {
	return p.core.rankTop(p.score)
}

// Update implements RankingPolicy. Impressions and clicks accrue as in
// epsilon-greedy: every seen document is an impression, only the first
// clicked document is a click.
func (p *UCB1Ranking) Update(interaction Interaction) {
	for _, docID := range interaction.Seen {
		if stats, ok := p.stats[docID]; ok {
			stats.Impressions++
			p.totalImpressions++
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
func (p *UCB1Ranking) Stats(docID string) (ArmStats, bool) {
	stats, ok := p.stats[docID]
	if !ok {
		return ArmStats{}, false
	}
	return *stats, true
}

// score is the standard UCB1 form:
// CTR + confidence * sqrt(2 ln(totalImpressions) / impressions).
func (p *UCB1Ranking) score(docID string) float64 {
	stats := p.stats[docID]
	if stats.Impressions == 0 {
		return math.Inf(1)
	}
	bonus := p.confidence * math.Sqrt(2.0*math.Log(float64(p.totalImpressions))/float64(stats.Impressions))
	return stats.CTR() + bonus
}
