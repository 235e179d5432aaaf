package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yasut0ra/rank-bandit-lab/bandit"
	"github.com/yasut0ra/rank-bandit-lab/bandit/banditlog"
	"github.com/yasut0ra/rank-bandit-lab/bandit/viz"
)

var (
	compareSortBy     string // Summary sort metric
	compareDescending bool   // Sort order
	compareOutJSON    string // Optional summary JSON path
	comparePlotLearn  string // Optional combined learning-curve image path
	comparePlotRegret string // Optional combined regret-curve image path
)

// summarizeLogFile loads one JSON log and derives its summary row. The label
// comes from metadata when present, else the file stem.
func summarizeLogFile(path string) (LogSummary, *bandit.SimulationLog, error) {
	log, metadata, err := banditlog.Load(path)
	if err != nil {
		return LogSummary{}, nil, err
	}
	summary := log.Summarize()
	row := LogSummary{
		Label:            strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Path:             path,
		Rounds:           summary.Rounds,
		CTR:              summary.CTR,
		TotalReward:      summary.TotalReward,
		OptimalReward:    summary.OptimalReward,
		CumulativeRegret: summary.CumulativeRegret,
	}
	if label, ok := metadata["label"].(string); ok && label != "" {
		row.Label = label
	}
	if algo, ok := metadata["algo"].(string); ok {
		row.Algo = algo
	}
	if model, ok := metadata["model"].(string); ok {
		row.Model = model
	}
	return row, log, nil
}

// compareCmd summarizes previously written logs side by side
var compareCmd = &cobra.Command{
	Use:   "compare LOG...",
	Short: "Compare multiple simulation logs generated via --log-json",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		summaries := make([]LogSummary, 0, len(args))
		logs := make([]*bandit.SimulationLog, 0, len(args))
		labels := make([]string, 0, len(args))
		for _, path := range args {
			row, log, err := summarizeLogFile(path)
			if err != nil {
				logrus.Fatalf("Failed to read %q: %v", path, err)
			}
			summaries = append(summaries, row)
			logs = append(logs, log)
			labels = append(labels, row.Label)
		}

		if err := sortSummaries(summaries, compareSortBy, compareDescending); err != nil {
			logrus.Fatalf("Sorting summaries failed: %v", err)
		}
		fmt.Println(summariesToTable(summaries))

		if compareOutJSON != "" {
			payload, err := json.MarshalIndent(summaries, "", "  ")
			if err != nil {
				logrus.Fatalf("Serializing summary failed: %v", err)
			}
			if err := os.WriteFile(compareOutJSON, payload, 0o644); err != nil {
				logrus.Fatalf("Writing summary failed: %v", err)
			}
		}

		if comparePlotLearn != "" {
			if err := viz.PlotLearningCurves(logs, labels, comparePlotLearn); err != nil {
				logrus.Fatalf("Plotting learning curves failed: %v", err)
			}
		}
		if comparePlotRegret != "" {
			if err := viz.PlotRegretCurves(logs, labels, comparePlotRegret); err != nil {
				logrus.Fatalf("Plotting regret curves failed: %v", err)
			}
		}
	},
}

func init() {
	compareCmd.Flags().StringVar(&compareSortBy, "sort-by", "ctr", "Metric to sort summaries by (ctr, regret, reward)")
	compareCmd.Flags().BoolVar(&compareDescending, "descending", false, "Sort in descending order (ascending by default)")
	compareCmd.Flags().StringVar(&compareOutJSON, "out-json", "", "Write the summary table as JSON to this path")
	compareCmd.Flags().StringVar(&comparePlotLearn, "plot-learning", "", "Save the combined learning curve image to this path")
	compareCmd.Flags().StringVar(&comparePlotRegret, "plot-regret", "", "Save the combined regret curve image to this path")

	rootCmd.AddCommand(compareCmd)
}
