// Package viz derives plottable curve data from simulation logs and renders
// comparison charts to image files.
package viz

import (
	"errors"
	"fmt"

	"github.com/yasut0ra/rank-bandit-lab/bandit"
)

// ErrNoBaseline reports a regret query against a log without an optimal
// reward baseline.
var ErrNoBaseline = errors.New("regret data requires environments that expose optimal reward information")

// LearningCurve holds the per-round series behind a learning-curve chart.
type LearningCurve struct {
	Rounds           []float64
	Reward           []float64
	CumulativeReward []float64
	CTR              []float64
	OptimalReward    *float64
}

// LearningCurveData extracts per-round learning metrics from a log.
func LearningCurveData(log *bandit.SimulationLog) LearningCurve {
	metrics := log.RoundMetrics()
	curve := LearningCurve{
		Rounds:           make([]float64, 0, len(metrics)),
		Reward:           make([]float64, 0, len(metrics)),
		CumulativeReward: make([]float64, 0, len(metrics)),
		CTR:              make([]float64, 0, len(metrics)),
		OptimalReward:    log.OptimalReward,
	}
	for _, item := range metrics {
		curve.Rounds = append(curve.Rounds, float64(item.Round))
		curve.Reward = append(curve.Reward, item.Reward)
		curve.CumulativeReward = append(curve.CumulativeReward, item.CumulativeReward)
		curve.CTR = append(curve.CTR, item.CTR)
	}
	return curve
}

// RegretCurve holds the per-round regret series.
type RegretCurve struct {
	Rounds           []float64
	InstantRegret    []float64
	CumulativeRegret []float64
}

// RegretCurveData extracts per-round regret metrics; it fails with
// ErrNoBaseline when the log carries no optimal reward.
func RegretCurveData(log *bandit.SimulationLog) (RegretCurve, error) {
	if log.OptimalReward == nil {
		return RegretCurve{}, ErrNoBaseline
	}
	metrics := log.RoundMetrics()
	curve := RegretCurve{
		Rounds:           make([]float64, 0, len(metrics)),
		InstantRegret:    make([]float64, 0, len(metrics)),
		CumulativeRegret: make([]float64, 0, len(metrics)),
	}
	for _, item := range metrics {
		curve.Rounds = append(curve.Rounds, float64(item.Round))
		curve.InstantRegret = append(curve.InstantRegret, *item.InstantRegret)
		curve.CumulativeRegret = append(curve.CumulativeRegret, *item.CumulativeRegret)
	}
	return curve, nil
}

// DocDistribution aggregates per-document seen/click counts in a fixed order
// for bar charts.
type DocDistribution struct {
	DocIDs []string
	Seen   []float64
	Clicks []float64
}

// DocDistributionData aggregates counts for the given document order.
func DocDistributionData(log *bandit.SimulationLog, docIDs []string) DocDistribution {
	seenCounts := log.SeenCounts()
	clickCounts := log.ClickCounts()
	dist := DocDistribution{
		DocIDs: append([]string(nil), docIDs...),
		Seen:   make([]float64, len(docIDs)),
		Clicks: make([]float64, len(docIDs)),
	}
	for i, docID := range docIDs {
		dist.Seen[i] = float64(seenCounts[docID])
		dist.Clicks[i] = float64(clickCounts[docID])
	}
	return dist
}

func requireLogs(logs []*bandit.SimulationLog, labels []string) error {
	if len(logs) == 0 {
		return errors.New("no logs provided")
	}
	if len(logs) != len(labels) {
		return fmt.Errorf("got %d logs but %d labels", len(logs), len(labels))
	}
	for i, log := range logs {
		if log.Rounds() == 0 {
			return fmt.Errorf("log %q is empty; cannot plot", labels[i])
		}
	}
	return nil
}
