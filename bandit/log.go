package bandit

// SimulationLog is the append-only interaction history of one run plus the
// optional optimal-reward baseline. It becomes effectively immutable once the
// run ends; every query below is a pure recomputation.
type SimulationLog struct {
	Interactions  []Interaction
	OptimalReward *float64 // expected reward of the best fixed slate, nil when unsupported
}

// NewSimulationLog wraps an interaction history. optimalReward may be nil.
func NewSimulationLog(interactions []Interaction, optimalReward *float64) *SimulationLog {
	return &SimulationLog{Interactions: interactions, OptimalReward: optimalReward}
}

// Rounds returns the number of recorded interactions.
func (l *SimulationLog) Rounds() int {
	return len(l.Interactions)
}

// TotalReward sums the reward over all rounds.
func (l *SimulationLog) TotalReward() float64 {
	total := 0.0
	for _, interaction := range l.Interactions {
		total += interaction.Reward
	}
	return total
}

// CTR is the mean reward per round, 0 for an empty log.
func (l *SimulationLog) CTR() float64 {
	if len(l.Interactions) == 0 {
		return 0.0
	}
	return l.TotalReward() / float64(l.Rounds())
}

// SeenCounts aggregates how often each document was examined.
func (l *SimulationLog) SeenCounts() map[string]int {
	counts := make(map[string]int)
	for _, interaction := range l.Interactions {
		for _, docID := range interaction.Seen {
			counts[docID]++
		}
	}
	return counts
}

// ClickCounts aggregates clicks per document. Unlike the single-click policy
// updates, this counts every clicked document in multi-click rounds.
func (l *SimulationLog) ClickCounts() map[string]int {
	counts := make(map[string]int)
	for _, interaction := range l.Interactions {
		for _, docID := range interaction.ClickedDocIDs() {
			counts[docID]++
		}
	}
	return counts
}

// CumulativeRegret returns rounds * optimalReward - totalReward, or nil when
// no baseline is available.
func (l *SimulationLog) CumulativeRegret() *float64 {
	if l.OptimalReward == nil {
		return nil
	}
	regret := float64(l.Rounds())*(*l.OptimalReward) - l.TotalReward()
	return &regret
}

// Summary bundles the derived aggregates for reporting.
type Summary struct {
	Rounds           int
	TotalReward      float64
	CTR              float64
	SeenCounts       map[string]int
	ClickCounts      map[string]int
	OptimalReward    *float64
	CumulativeRegret *float64
}

// Summarize computes all derived aggregates in one pass over the accessors.
func (l *SimulationLog) Summarize() Summary {
	return Summary{
		Rounds:           l.Rounds(),
		TotalReward:      l.TotalReward(),
		CTR:              l.CTR(),
		SeenCounts:       l.SeenCounts(),
		ClickCounts:      l.ClickCounts(),
		OptimalReward:    l.OptimalReward,
		CumulativeRegret: l.CumulativeRegret(),
	}
}

// RoundMetrics carries the per-round cumulative view used for learning and
// regret curves. Regret fields are nil when the log has no baseline.
type RoundMetrics struct {
	Round            int // 1-based
	Reward           float64
	CumulativeReward float64
	CTR              float64
	InstantRegret    *float64
	CumulativeRegret *float64
}

// RoundMetrics derives the per-round metric sequence.
func (l *SimulationLog) RoundMetrics() []RoundMetrics {
	metrics := make([]RoundMetrics, 0, len(l.Interactions))
	cumulative := 0.0
	for index, interaction := range l.Interactions {
		round := index + 1
		cumulative += interaction.Reward
		item := RoundMetrics{
			Round:            round,
			Reward:           interaction.Reward,
			CumulativeReward: cumulative,
			CTR:              cumulative / float64(round),
		}
		if l.OptimalReward != nil {
			instant := *l.OptimalReward - interaction.Reward
			running := float64(round)*(*l.OptimalReward) - cumulative
			item.InstantRegret = &instant
			item.CumulativeRegret = &running
		}
		metrics = append(metrics, item)
	}
	return metrics
}
