package bandit

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// ThompsonSamplingRanking maintains an independent Beta posterior per
// document and ranks by one posterior draw per document each round.
type ThompsonSamplingRanking struct {
	core       policyCore
	alphaPrior float64
	betaPrior  float64
	successes  map[string]int
	failures   map[string]int
	src        randSource
}

// randSource adapts the policy's math/rand stream to the source interface
// consumed by gonum's distributions.
type randSource struct {
	rng *rand.Rand
}

func (s randSource) Uint64() uint64 {
	return s.rng.Uint64()
}

// NewThompsonSamplingRanking validates strictly positive Beta priors.
func NewThompsonSamplingRanking(docIDs []string, slateSize int, alphaPrior, betaPrior float64, rng *rand.Rand) (*ThompsonSamplingRanking, error) {
	core, err := newPolicyCore(docIDs, slateSize, rng)
	if err != nil {
		return nil, err
	}
	if alphaPrior <= 0 || betaPrior <= 0 {
		return nil, fmt.Errorf("%w: alpha prior (%v) and beta prior (%v) must be > 0",
			ErrInvalidConfiguration, alphaPrior, betaPrior)
	}
	successes := make(map[string]int, len(docIDs))
	failures := make(map[string]int, len(docIDs))
	for _, docID := range core.docIDs {
		successes[docID] = 0
		failures[docID] = 0
	}
	return &ThompsonSamplingRanking{
		core:       core,
		alphaPrior: alphaPrior,
		betaPrior:  betaPrior,
		successes:  successes,
		failures:   failures,
		src:        randSource{rng: core.rng},
	}, nil
}

// SelectSlate implements RankingPolicy. One Beta draw per document; draws are
// taken in universe order so the consumed randomness is reproducible.
func (p *ThompsonSamplingRanking) SelectSlate() []string {
	samples := make(map[string]float64, len(p.core.docIDs))
	for _, docID := range p.core.docIDs {
		dist := distuv.Beta{
			Alpha: p.alphaPrior + float64(p.successes[docID]),
			Beta:  p.betaPrior + float64(p.failures[docID]),
			Src:   p.src,
		}
		samples[docID] = dist.Rand()
	}
	return p.core.rankTop(func(docID string) float64 {
		return samples[docID]
	})
}

// Update implements RankingPolicy. Seen is walked in order: the document at
// the first click position gains a success and the walk stops there;
// documents examined before the click gain a failure. Documents seen after
// the first click receive no update.
func (p *ThompsonSamplingRanking) Update(interaction Interaction) {
	if len(interaction.Seen) == 0 {
		return
	}
	for position, docID := range interaction.Seen {
		if interaction.ClickIndex != nil && position == *interaction.ClickIndex {
			p.successes[docID]++
			return
		}
		p.failures[docID]++
	}
}

// Posterior reports the effective Beta parameters for one document; the bool
// is false for ids outside the policy universe.
func (p *ThompsonSamplingRanking) Posterior(docID string) (alpha, beta float64, ok bool) {
	successes, present := p.successes[docID]
	if !present {
		return 0, 0, false
	}
	return p.alphaPrior + float64(successes), p.betaPrior + float64(p.failures[docID]), true
}
