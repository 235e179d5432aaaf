package cmd

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/yasut0ra/rank-bandit-lab/bandit"
	"github.com/yasut0ra/rank-bandit-lab/bandit/scenario"
)

// defaultDocuments backs runs that supply neither --doc flags nor a scenario.
var defaultDocuments = []bandit.Document{
	{ID: "doc-A", Attraction: 0.45},
	{ID: "doc-B", Attraction: 0.35},
	{ID: "doc-C", Attraction: 0.25},
	{ID: "doc-D", Attraction: 0.15},
	{ID: "doc-E", Attraction: 0.10},
}

// runConfig carries every knob a single simulation run needs. Sweep runs
// derive variants of it via overrides.
type runConfig struct {
	Algo                string
	Model               string
	Steps               int
	SlateSize           int
	Epsilon             float64
	AlphaPrior          float64
	BetaPrior           float64
	UCBConfidence       float64
	Temperature         float64
	PositionBiases      []float64
	Satisfaction        map[string]float64
	DefaultSatisfaction float64
	Seed                int64
}

// parseDocuments turns repeatable "id=prob" specs into validated Documents,
// falling back to the default catalog when none are given.
func parseDocuments(specs []string) ([]bandit.Document, error) {
	if len(specs) == 0 {
		return defaultDocuments, nil
	}
	documents := make([]bandit.Document, 0, len(specs))
	for _, spec := range specs {
		id, probability, err := splitProbSpec(spec)
		if err != nil {
			return nil, err
		}
		doc, err := bandit.NewDocument(id, probability)
		if err != nil {
			return nil, err
		}
		documents = append(documents, doc)
	}
	return documents, nil
}

// parseSatisfaction turns repeatable "id=prob" specs into a satisfaction map.
func parseSatisfaction(specs []string) (map[string]float64, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	satisfaction := make(map[string]float64, len(specs))
	for _, spec := range specs {
		id, probability, err := splitProbSpec(spec)
		if err != nil {
			return nil, err
		}
		satisfaction[id] = probability
	}
	return satisfaction, nil
}

func splitProbSpec(spec string) (string, float64, error) {
	id, raw, found := strings.Cut(spec, "=")
	if !found {
		return "", 0, fmt.Errorf("invalid spec %q, expected 'id=prob'", spec)
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return "", 0, fmt.Errorf("document id missing in specification %q", spec)
	}
	probability, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return "", 0, fmt.Errorf("invalid probability %q in %q", raw, spec)
	}
	return id, probability, nil
}

// loadScenarioInputs resolves a named scenario into documents plus any
// environment parameters the scenario carries. Explicit flags win over
// scenario-provided biases and satisfaction.
func loadScenarioInputs(name string, cfg *runConfig) ([]bandit.Document, error) {
	s, err := scenario.Load(name)
	if err != nil {
		return nil, err
	}
	documents, err := s.BanditDocuments()
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", name, err)
	}
	if len(cfg.PositionBiases) == 0 && len(s.PositionBiases) > 0 {
		cfg.PositionBiases = s.PositionBiases
	}
	if len(cfg.Satisfaction) == 0 && len(s.Satisfaction) > 0 {
		cfg.Satisfaction = s.Satisfaction
	}
	return documents, nil
}

// newEnvironment builds the click model named by cfg.Model.
// Valid names: "cascade", "position", "dependent".
func newEnvironment(cfg runConfig, documents []bandit.Document, rng *rand.Rand) (bandit.Environment, error) {
	switch cfg.Model {
	case "cascade":
		return bandit.NewCascadeEnvironment(documents, cfg.SlateSize, rng)
	case "position":
		biases := cfg.PositionBiases
		if len(biases) == 0 {
			// Flat examination when the user provides no biases.
			biases = make([]float64, cfg.SlateSize)
			for i := range biases {
				biases[i] = 1.0
			}
		}
		return bandit.NewPositionBasedEnvironment(documents, cfg.SlateSize, biases, rng)
	case "dependent":
		return bandit.NewDependentClickEnvironment(documents, cfg.SlateSize, cfg.Satisfaction, cfg.DefaultSatisfaction, rng)
	default:
		return nil, fmt.Errorf("unsupported click model: %q", cfg.Model)
	}
}

// newPolicy builds the algorithm named by cfg.Algo.
// Valid names: "epsilon", "thompson", "ucb", "softmax".
func newPolicy(cfg runConfig, docIDs []string, rng *rand.Rand) (bandit.RankingPolicy, error) {
	switch cfg.Algo {
	case "epsilon":
		return bandit.NewEpsilonGreedyRanking(docIDs, cfg.SlateSize, cfg.Epsilon, cfg.AlphaPrior, cfg.BetaPrior, rng)
	case "thompson":
		return bandit.NewThompsonSamplingRanking(docIDs, cfg.SlateSize, cfg.AlphaPrior, cfg.BetaPrior, rng)
	case "ucb":
		return bandit.NewUCB1Ranking(docIDs, cfg.SlateSize, cfg.UCBConfidence, rng)
	case "softmax":
		return bandit.NewSoftmaxRanking(docIDs, cfg.SlateSize, cfg.Temperature, rng)
	default:
		return nil, fmt.Errorf("unsupported algorithm: %q", cfg.Algo)
	}
}

// executeRun wires RNG partitions, environment, and policy, then runs the
// simulation and returns the log plus the environment's universe.
func executeRun(cfg runConfig, documents []bandit.Document) (*bandit.SimulationLog, []string, error) {
	prng := bandit.NewPartitionedRNG(bandit.NewSimulationKey(cfg.Seed))
	env, err := newEnvironment(cfg, documents, prng.ForSubsystem(bandit.SubsystemEnvironment))
	if err != nil {
		return nil, nil, err
	}
	policy, err := newPolicy(cfg, env.DocIDs(), prng.ForSubsystem(bandit.SubsystemPolicy))
	if err != nil {
		return nil, nil, err
	}
	log, err := bandit.NewSimulator(env, policy).Run(cfg.Steps)
	if err != nil {
		return nil, nil, err
	}
	return log, env.DocIDs(), nil
}
