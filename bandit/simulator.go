package bandit

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Simulator executes a ranking policy inside a click-model environment for a
// fixed number of rounds. Rounds are strictly sequential: policy state after
// round n must be visible to round n+1's selection, and the environment's
// randomness is a single evolving stream.
type Simulator struct {
	env    Environment
	policy RankingPolicy
}

// NewSimulator pairs an environment with a policy.
func NewSimulator(env Environment, policy RankingPolicy) *Simulator {
	return &Simulator{env: env, policy: policy}
}

// Run executes rounds iterations of select -> evaluate -> update -> record.
// A validation failure mid-run aborts immediately: the failed round is not
// appended and the error propagates with its round number.
//
// After the loop the environment is probed for the optional RewardOracle
// capability; when present, the log carries the expected reward of the
// optimal slate as the regret baseline. Oracle errors are treated as
// capability absence and never propagate.
func (s *Simulator) Run(rounds int) (*SimulationLog, error) {
	if rounds < 1 {
		return nil, fmt.Errorf("%w: rounds must be >= 1, got %d", ErrInvalidRoundCount, rounds)
	}
	logrus.Debugf("starting simulation: %d rounds", rounds)

	history := make([]Interaction, 0, rounds)
	for round := 1; round <= rounds; round++ {
		slate := s.policy.SelectSlate()
		interaction, err := s.env.Evaluate(slate)
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", round, err)
		}
		s.policy.Update(interaction)
		history = append(history, interaction)
	}

	log := NewSimulationLog(history, nil)
	if oracle, ok := s.env.(RewardOracle); ok {
		optimal := oracle.OptimalSlate()
		if reward, err := oracle.ExpectedReward(optimal); err == nil {
			log.OptimalReward = &reward
		} else {
			logrus.Debugf("reward oracle declined optimal slate %v: %v", optimal, err)
		}
	}
	logrus.Debugf("simulation complete: total reward %.3f over %d rounds", log.TotalReward(), log.Rounds())
	return log, nil
}
