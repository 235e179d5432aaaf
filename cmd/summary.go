package cmd

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// LogSummary is one row of the sweep/compare summary table and the shape
// written by --summary-json / --out-json.
type LogSummary struct {
	Label            string   `json:"label"`
	Path             string   `json:"path"`
	Rounds           int      `json:"rounds"`
	CTR              float64  `json:"ctr"`
	TotalReward      float64  `json:"total_reward"`
	OptimalReward    *float64 `json:"optimal_reward"`
	CumulativeRegret *float64 `json:"cumulative_regret"`
	Algo             string   `json:"algo"`
	Model            string   `json:"model"`
}

// sortSummaries orders rows by the named metric. Runs without a regret
// baseline sort last under the "regret" key.
func sortSummaries(summaries []LogSummary, sortBy string, descending bool) error {
	var key func(LogSummary) float64
	switch sortBy {
	case "ctr":
		key = func(s LogSummary) float64 { return s.CTR }
	case "reward":
		key = func(s LogSummary) float64 { return s.TotalReward }
	case "regret":
		key = func(s LogSummary) float64 {
			if s.CumulativeRegret == nil {
				return math.Inf(1)
			}
			return *s.CumulativeRegret
		}
	default:
		return fmt.Errorf("unsupported sort key: %q", sortBy)
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		if descending {
			return key(summaries[i]) > key(summaries[j])
		}
		return key(summaries[i]) < key(summaries[j])
	})
	return nil
}

// summariesToTable formats rows as a fixed-width console table.
func summariesToTable(summaries []LogSummary) string {
	header := fmt.Sprintf("%-20s %-10s %-10s %8s %8s %10s", "Label", "Algo", "Model", "Rounds", "CTR", "Regret")
	lines := []string{header, strings.Repeat("-", len(header))}
	for _, item := range summaries {
		regret := "-"
		if item.CumulativeRegret != nil {
			regret = fmt.Sprintf("%.2f", *item.CumulativeRegret)
		}
		algo := item.Algo
		if algo == "" {
			algo = "-"
		}
		model := item.Model
		if model == "" {
			model = "-"
		}
		lines = append(lines, fmt.Sprintf("%-20s %-10s %-10s %8d %8.4f %10s",
			item.Label, algo, model, item.Rounds, item.CTR, regret))
	}
	return strings.Join(lines, "\n")
}
