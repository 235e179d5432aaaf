// Package banditlog serializes simulation logs to and from their JSON file
// form. Writing then loading a log reproduces an equivalent interaction
// sequence and the same optimal reward.
package banditlog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/yasut0ra/rank-bandit-lab/bandit"
)

// InteractionRecord is the wire form of one round.
type InteractionRecord struct {
	Round          int      `json:"round"` // 1-based
	Slate          []string `json:"slate"`
	Seen           []string `json:"seen"`
	ClickIndex     *int     `json:"click_index"`
	ClickPositions []int    `json:"click_positions"`
	Reward         float64  `json:"reward"`
}

// Record is the wire form of a full log file. Metadata is caller-defined.
type Record struct {
	Metadata      map[string]any      `json:"metadata"`
	OptimalReward *float64            `json:"optimal_reward"`
	Interactions  []InteractionRecord `json:"interactions"`
}

// Serialize converts a SimulationLog plus caller metadata into its wire form.
func Serialize(log *bandit.SimulationLog, metadata map[string]any) Record {
	if metadata == nil {
		metadata = map[string]any{}
	}
	interactions := make([]InteractionRecord, 0, log.Rounds())
	for index, interaction := range log.Interactions {
		interactions = append(interactions, InteractionRecord{
			Round:          index + 1,
			Slate:          emptyIfNil(interaction.Slate),
			Seen:           emptyIfNil(interaction.Seen),
			ClickIndex:     interaction.ClickIndex,
			ClickPositions: emptyIntsIfNil(interaction.ClickPositions),
			Reward:         interaction.Reward,
		})
	}
	return Record{
		Metadata:      metadata,
		OptimalReward: log.OptimalReward,
		Interactions:  interactions,
	}
}

// Deserialize rebuilds a SimulationLog and its metadata from the wire form.
func Deserialize(record Record) (*bandit.SimulationLog, map[string]any) {
	interactions := make([]bandit.Interaction, 0, len(record.Interactions))
	for _, item := range record.Interactions {
		interactions = append(interactions, bandit.Interaction{
			Slate:          emptyIfNil(item.Slate),
			Seen:           emptyIfNil(item.Seen),
			ClickIndex:     item.ClickIndex,
			ClickPositions: emptyIntsIfNil(item.ClickPositions),
			Reward:         item.Reward,
		})
	}
	metadata := record.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	return bandit.NewSimulationLog(interactions, record.OptimalReward), metadata
}

// Write serializes the log to path as indented JSON.
func Write(path string, log *bandit.SimulationLog, metadata map[string]any) error {
	payload, err := json.MarshalIndent(Serialize(log, metadata), "", "  ")
	if err != nil {
		return fmt.Errorf("serialize log: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write log %s: %w", path, err)
	}
	return nil
}

// Load reads a log file back into a SimulationLog plus its metadata.
// Malformed JSON surfaces as a wrapped format error, never masked.
func Load(path string) (*bandit.SimulationLog, map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read log %s: %w", path, err)
	}
	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, nil, fmt.Errorf("parse log %s: %w", path, err)
	}
	log, metadata := Deserialize(record)
	return log, metadata, nil
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func emptyIntsIfNil(values []int) []int {
	if values == nil {
		return []int{}
	}
	return values
}
