package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yasut0ra/rank-bandit-lab/bandit"
	"github.com/yasut0ra/rank-bandit-lab/bandit/banditlog"
	"github.com/yasut0ra/rank-bandit-lab/bandit/viz"
)

var (
	// CLI flags for a single simulation run
	runAlgo                string    // Ranking algorithm name
	runModel               string    // Click model name
	runSteps               int       // Number of interaction rounds
	runSlateSize           int       // Documents shown per round
	runEpsilon             float64   // Exploration rate for epsilon-greedy
	runAlphaPrior          float64   // Alpha/success prior (thompson, epsilon smoothing)
	runBetaPrior           float64   // Beta/failure prior (thompson, epsilon smoothing)
	runUCBConfidence       float64   // Confidence multiplier for UCB1
	runTemperature         float64   // Softmax temperature
	runDocs                []string  // Document specs formatted as 'id=prob'
	runPositionBiases      []float64 // Per-rank examination probabilities (position model)
	runSatisfaction        []string  // Satisfaction specs formatted as 'id=prob' (dependent model)
	runDefaultSatisfaction float64   // Fallback satisfaction (dependent model)
	runScenario            string    // Named scenario from the embedded catalog
	runSeed                int64     // Master seed for environment and policy RNG streams
	runLogJSON             string    // Optional JSON log output path
	runPlotLearning        string    // Optional learning-curve PNG path
	runPlotRegret          string    // Optional regret-curve PNG path
	runPlotDocs            string    // Optional document-distribution PNG path
)

// runCmd executes one simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a single ranking bandit simulation",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := runConfig{
			Algo:                runAlgo,
			Model:               runModel,
			Steps:               runSteps,
			SlateSize:           runSlateSize,
			Epsilon:             runEpsilon,
			AlphaPrior:          runAlphaPrior,
			BetaPrior:           runBetaPrior,
			UCBConfidence:       runUCBConfidence,
			Temperature:         runTemperature,
			PositionBiases:      runPositionBiases,
			DefaultSatisfaction: runDefaultSatisfaction,
			Seed:                runSeed,
		}

		satisfaction, err := parseSatisfaction(runSatisfaction)
		if err != nil {
			logrus.Fatalf("Invalid satisfaction spec: %v", err)
		}
		cfg.Satisfaction = satisfaction

		var documents []bandit.Document
		if runScenario != "" {
			documents, err = loadScenarioInputs(runScenario, &cfg)
		} else {
			documents, err = parseDocuments(runDocs)
		}
		if err != nil {
			logrus.Fatalf("Invalid documents: %v", err)
		}

		logrus.Infof("Starting simulation: algo=%s model=%s steps=%d slate=%d seed=%d",
			cfg.Algo, cfg.Model, cfg.Steps, cfg.SlateSize, cfg.Seed)

		log, docIDs, err := executeRun(cfg, documents)
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}

		printSummary(log.Summarize(), docIDs)

		if runLogJSON != "" {
			metadata := map[string]any{
				"algo":    cfg.Algo,
				"model":   cfg.Model,
				"steps":   cfg.Steps,
				"seed":    cfg.Seed,
				"doc_ids": docIDs,
			}
			if err := banditlog.Write(runLogJSON, log, metadata); err != nil {
				logrus.Fatalf("Writing log failed: %v", err)
			}
			logrus.Infof("Wrote log to %s", runLogJSON)
		}

		labels := []string{cfg.Algo}
		logs := []*bandit.SimulationLog{log}
		if runPlotLearning != "" {
			if err := viz.PlotLearningCurves(logs, labels, runPlotLearning); err != nil {
				logrus.Fatalf("Plotting learning curve failed: %v", err)
			}
		}
		if runPlotRegret != "" {
			if err := viz.PlotRegretCurves(logs, labels, runPlotRegret); err != nil {
				logrus.Fatalf("Plotting regret curve failed: %v", err)
			}
		}
		if runPlotDocs != "" {
			if err := viz.PlotDocDistribution(log, docIDs, runPlotDocs); err != nil {
				logrus.Fatalf("Plotting document distribution failed: %v", err)
			}
		}

		logrus.Info("Simulation complete.")
	},
}

// printSummary mirrors the console report: aggregate metrics then per-doc
// counts in universe order.
func printSummary(summary bandit.Summary, docIDs []string) {
	fmt.Printf("Rounds       : %d\n", summary.Rounds)
	fmt.Printf("Total reward : %.0f\n", summary.TotalReward)
	fmt.Printf("CTR          : %.4f\n", summary.CTR)
	if summary.OptimalReward != nil {
		fmt.Printf("Optimal      : %.4f\n", *summary.OptimalReward)
	}
	if summary.CumulativeRegret != nil {
		fmt.Printf("Regret       : %.2f\n", *summary.CumulativeRegret)
	}
	fmt.Println("Seen counts  :")
	for _, docID := range docIDs {
		fmt.Printf("  %8s -> %d\n", docID, summary.SeenCounts[docID])
	}
	fmt.Println("Click counts :")
	for _, docID := range docIDs {
		fmt.Printf("  %8s -> %d\n", docID, summary.ClickCounts[docID])
	}
}

// addSimulationFlags registers the base simulation parameters shared by the
// run and sweep commands. The bound variables are package-level; cobra
// executes a single command per invocation, so sharing them is safe.
func addSimulationFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&runAlgo, "algo", "epsilon", "Ranking algorithm (epsilon, thompson, ucb, softmax)")
	cmd.Flags().StringVar(&runModel, "model", "cascade", "Click model (cascade, position, dependent)")
	cmd.Flags().IntVar(&runSteps, "steps", 2000, "Number of interaction rounds")
	cmd.Flags().IntVar(&runSlateSize, "slate-size", 3, "Number of documents shown per round")
	cmd.Flags().Float64Var(&runEpsilon, "epsilon", 0.1, "Exploration rate for epsilon-greedy")
	cmd.Flags().Float64Var(&runAlphaPrior, "alpha-prior", 1.0, "Alpha/success prior")
	cmd.Flags().Float64Var(&runBetaPrior, "beta-prior", 1.0, "Beta/failure prior")
	cmd.Flags().Float64Var(&runUCBConfidence, "ucb-confidence", 1.0, "Confidence multiplier for UCB1")
	cmd.Flags().Float64Var(&runTemperature, "temperature", 0.1, "Softmax temperature")
	cmd.Flags().StringArrayVar(&runDocs, "doc", nil, "Document specification formatted as 'id=prob' (repeatable)")
	cmd.Flags().Float64SliceVar(&runPositionBiases, "position-bias", nil, "Per-rank examination probabilities for the position model")
	cmd.Flags().StringArrayVar(&runSatisfaction, "doc-satisfaction", nil, "Satisfaction specification formatted as 'id=prob' (repeatable)")
	cmd.Flags().Float64Var(&runDefaultSatisfaction, "default-satisfaction", 0.5, "Fallback satisfaction for the dependent model")
	cmd.Flags().StringVar(&runScenario, "scenario", "", "Named scenario from the embedded catalog")
	cmd.Flags().Int64Var(&runSeed, "seed", 7, "Master random seed")
}

func init() {
	addSimulationFlags(runCmd)
	runCmd.Flags().StringVar(&runLogJSON, "log-json", "", "Write the interaction log as JSON to this path")
	runCmd.Flags().StringVar(&runPlotLearning, "plot-learning", "", "Save the learning curve image to this path")
	runCmd.Flags().StringVar(&runPlotRegret, "plot-regret", "", "Save the regret curve image to this path")
	runCmd.Flags().StringVar(&runPlotDocs, "plot-docs", "", "Save the document distribution image to this path")

	rootCmd.AddCommand(runCmd)
}
