// Package bandit provides the core simulation engine for ranking bandit
// experiments.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - interaction.go: the Interaction record produced each round and slate normalization
//   - environment.go: the Environment contract and the optional RewardOracle capability
//   - simulator.go: the round loop tying a RankingPolicy to an Environment
//
// # Architecture
//
// The bandit package defines the closed set of click-model environments
// (cascade.go, position.go, dependent.go) and ranking policies
// (epsilon_greedy.go, thompson.go, ucb.go, softmax.go). Pure I/O concerns
// live in sub-packages:
//   - bandit/banditlog: JSON log serialization with round-trip guarantees
//   - bandit/scenario: embedded scenario catalog
//   - bandit/viz: learning/regret curve data and PNG rendering
//
// # Key Interfaces
//
// The extension points are small interfaces selected by configuration:
//   - Environment: evaluate a slate into an Interaction
//   - RewardOracle: optional optimal-slate/expected-reward capability
//   - RankingPolicy: select slates and learn from interactions
package bandit
