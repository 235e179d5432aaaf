package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/yasut0ra/rank-bandit-lab/bandit"
	"github.com/yasut0ra/rank-bandit-lab/bandit/banditlog"
	"github.com/yasut0ra/rank-bandit-lab/bandit/viz"
)

var (
	// CLI flags for sweeps, layered on top of the run flags as base values
	sweepRuns        []string // Run specs formatted as label:key=value,...
	sweepConfigPath  string   // Optional YAML file declaring runs
	sweepOutputDir   string   // Directory for per-run JSON logs
	sweepSummaryJSON string   // Optional summary table JSON path
	sweepSortBy      string   // Summary sort metric
	sweepDescending  bool     // Sort order
	sweepPlotLearn   string   // Optional combined learning-curve image path
	sweepPlotRegret  string   // Optional combined regret-curve image path
)

// runSpec is one sweep entry: a label plus overrides applied to the base
// configuration from the shared flags.
type runSpec struct {
	Label     string            `yaml:"label"`
	Overrides map[string]string `yaml:"overrides"`
}

// sweepFileConfig is the YAML preset shape accepted by --config.
type sweepFileConfig struct {
	Runs []runSpec `yaml:"runs"`
}

// parseRunSpec parses "label:key=value,key=value" into a runSpec.
func parseRunSpec(spec string) (runSpec, error) {
	label, remainder, found := strings.Cut(spec, ":")
	if !found {
		return runSpec{}, fmt.Errorf("run spec %q is missing label prefix (label:key=value,...)", spec)
	}
	if label == "" {
		return runSpec{}, fmt.Errorf("run label cannot be empty in %q", spec)
	}
	overrides := make(map[string]string)
	for _, token := range strings.Split(remainder, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		key, value, ok := strings.Cut(token, "=")
		if !ok {
			return runSpec{}, fmt.Errorf("invalid token %q in run spec %q, expected key=value", token, spec)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return runSpec{}, fmt.Errorf("missing key in run token %q", token)
		}
		overrides[key] = strings.TrimSpace(value)
	}
	return runSpec{Label: label, Overrides: overrides}, nil
}

// applyOverrides produces a run configuration from the base plus typed
// override values. Unknown keys fail rather than being silently dropped.
func applyOverrides(base runConfig, overrides map[string]string) (runConfig, error) {
	cfg := base
	for key, raw := range overrides {
		var err error
		switch key {
		case "algo":
			cfg.Algo = raw
		case "model":
			cfg.Model = raw
		case "steps":
			cfg.Steps, err = strconv.Atoi(raw)
		case "slate_size":
			cfg.SlateSize, err = strconv.Atoi(raw)
		case "epsilon":
			cfg.Epsilon, err = strconv.ParseFloat(raw, 64)
		case "alpha_prior":
			cfg.AlphaPrior, err = strconv.ParseFloat(raw, 64)
		case "beta_prior":
			cfg.BetaPrior, err = strconv.ParseFloat(raw, 64)
		case "ucb_confidence":
			cfg.UCBConfidence, err = strconv.ParseFloat(raw, 64)
		case "temperature":
			cfg.Temperature, err = strconv.ParseFloat(raw, 64)
		case "seed":
			cfg.Seed, err = strconv.ParseInt(raw, 10, 64)
		default:
			return runConfig{}, fmt.Errorf("unsupported override %q", key)
		}
		if err != nil {
			return runConfig{}, fmt.Errorf("failed to parse override %s=%s: %w", key, raw, err)
		}
	}
	return cfg, nil
}

// loadSweepConfig reads YAML run presets.
func loadSweepConfig(path string) ([]runSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sweep config %s: %w", path, err)
	}
	var cfg sweepFileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse sweep config %s: %w", path, err)
	}
	for _, spec := range cfg.Runs {
		if spec.Label == "" {
			return nil, fmt.Errorf("sweep config %s: run label cannot be empty", path)
		}
	}
	return cfg.Runs, nil
}

// sweepCmd executes several configurations and reports a comparison table
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run multiple ranking bandit configurations and record logs",
	Run: func(cmd *cobra.Command, args []string) {
		specs := make([]runSpec, 0, len(sweepRuns))
		if sweepConfigPath != "" {
			fromFile, err := loadSweepConfig(sweepConfigPath)
			if err != nil {
				logrus.Fatalf("Invalid sweep config: %v", err)
			}
			specs = append(specs, fromFile...)
		}
		for _, raw := range sweepRuns {
			spec, err := parseRunSpec(raw)
			if err != nil {
				logrus.Fatalf("Invalid run spec: %v", err)
			}
			specs = append(specs, spec)
		}
		if len(specs) == 0 {
			logrus.Fatalf("At least one --run specification (or --config) is required.")
		}

		if err := os.MkdirAll(sweepOutputDir, 0o755); err != nil {
			logrus.Fatalf("Creating output dir failed: %v", err)
		}

		satisfaction, err := parseSatisfaction(runSatisfaction)
		if err != nil {
			logrus.Fatalf("Invalid satisfaction spec: %v", err)
		}
		base := runConfig{
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
			Satisfaction:        satisfaction,
			DefaultSatisfaction: runDefaultSatisfaction,
			Seed:                runSeed,
		}

		var documents []bandit.Document
		if runScenario != "" {
			documents, err = loadScenarioInputs(runScenario, &base)
		} else {
			documents, err = parseDocuments(runDocs)
		}
		if err != nil {
			logrus.Fatalf("Invalid documents: %v", err)
		}

		// Runs share no mutable state (each gets its own PartitionedRNG),
		// so they can execute concurrently.
		summaries := make([]LogSummary, len(specs))
		logs := make([]*bandit.SimulationLog, len(specs))
		labels := make([]string, len(specs))
		var mu sync.Mutex
		var group errgroup.Group
		for index, spec := range specs {
			group.Go(func() error {
				cfg, err := applyOverrides(base, spec.Overrides)
				if err != nil {
					return err
				}
				log, docIDs, err := executeRun(cfg, documents)
				if err != nil {
					return fmt.Errorf("run %q: %w", spec.Label, err)
				}
				logPath := filepath.Join(sweepOutputDir, spec.Label+".json")
				metadata := map[string]any{
					"label":     spec.Label,
					"algo":      cfg.Algo,
					"model":     cfg.Model,
					"steps":     cfg.Steps,
					"seed":      cfg.Seed,
					"doc_ids":   docIDs,
					"overrides": spec.Overrides,
				}
				if err := banditlog.Write(logPath, log, metadata); err != nil {
					return fmt.Errorf("run %q: %w", spec.Label, err)
				}
				summary := log.Summarize()
				mu.Lock()
				defer mu.Unlock()
				summaries[index] = LogSummary{
					Label:            spec.Label,
					Path:             logPath,
					Rounds:           summary.Rounds,
					CTR:              summary.CTR,
					TotalReward:      summary.TotalReward,
					OptimalReward:    summary.OptimalReward,
					CumulativeRegret: summary.CumulativeRegret,
					Algo:             cfg.Algo,
					Model:            cfg.Model,
				}
				logs[index] = log
				labels[index] = spec.Label
				return nil
			})
		}
		if err := group.Wait(); err != nil {
			logrus.Fatalf("Sweep failed: %v", err)
		}

		if err := sortSummaries(summaries, sweepSortBy, sweepDescending); err != nil {
			logrus.Fatalf("Sorting summaries failed: %v", err)
		}
		fmt.Println(summariesToTable(summaries))

		if sweepSummaryJSON != "" {
			payload, err := json.MarshalIndent(summaries, "", "  ")
			if err != nil {
				logrus.Fatalf("Serializing summary failed: %v", err)
			}
			if err := os.WriteFile(sweepSummaryJSON, payload, 0o644); err != nil {
				logrus.Fatalf("Writing summary failed: %v", err)
			}
		}

		if sweepPlotLearn != "" {
			if err := viz.PlotLearningCurves(logs, labels, sweepPlotLearn); err != nil {
				logrus.Fatalf("Plotting learning curves failed: %v", err)
			}
		}
		if sweepPlotRegret != "" {
			if err := viz.PlotRegretCurves(logs, labels, sweepPlotRegret); err != nil {
				logrus.Fatalf("Plotting regret curves failed: %v", err)
			}
		}

		logrus.Infof("Sweep complete: %d runs in %s", len(specs), sweepOutputDir)
	},
}

func init() {
	sweepCmd.Flags().StringArrayVar(&sweepRuns, "run", nil, "Run spec formatted as label:algo=ucb,ucb_confidence=0.7 (repeatable)")
	sweepCmd.Flags().StringVar(&sweepConfigPath, "config", "", "YAML file declaring sweep runs")
	sweepCmd.Flags().StringVar(&sweepOutputDir, "output-dir", "sweep_logs", "Directory for per-run JSON logs")
	sweepCmd.Flags().StringVar(&sweepSummaryJSON, "summary-json", "", "Write the summary table as JSON to this path")
	sweepCmd.Flags().StringVar(&sweepSortBy, "sort-by", "ctr", "Metric used to sort the summary table (ctr, regret, reward)")
	sweepCmd.Flags().BoolVar(&sweepDescending, "descending", false, "Sort in descending order")
	sweepCmd.Flags().StringVar(&sweepPlotLearn, "plot-learning", "", "Save the combined learning curve image to this path")
	sweepCmd.Flags().StringVar(&sweepPlotRegret, "plot-regret", "", "Save the combined regret curve image to this path")

	addSimulationFlags(sweepCmd)

	rootCmd.AddCommand(sweepCmd)
}
