// Package scenario ships a small catalog of ready-made document universes
// for experiments, embedded into the binary.
package scenario

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/yasut0ra/rank-bandit-lab/bandit"
)

//go:embed scenarios/*.json
var files embed.FS

// DocumentSpec is the scenario-file form of one document.
type DocumentSpec struct {
	ID         string  `json:"id"`
	Attraction float64 `json:"attraction"`
}

// Scenario is one catalog entry: a document universe plus optional
// environment parameters for the position-based and dependent-click models.
type Scenario struct {
	Description    string             `json:"description"`
	Documents      []DocumentSpec     `json:"documents"`
	PositionBiases []float64          `json:"position_biases,omitempty"`
	Satisfaction   map[string]float64 `json:"satisfaction,omitempty"`
}

// List returns the embedded scenario names, sorted.
func List() []string {
	entries, err := files.ReadDir("scenarios")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".json") {
			names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
		}
	}
	sort.Strings(names)
	return names
}

// Load reads one scenario by name.
func Load(name string) (Scenario, error) {
	data, err := files.ReadFile("scenarios/" + name + ".json")
	if err != nil {
		return Scenario{}, fmt.Errorf("scenario %q not found", name)
	}
	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return Scenario{}, fmt.Errorf("scenario %q: %w", name, err)
	}
	return s, nil
}

// BanditDocuments converts the scenario's document specs into validated
// bandit Documents.
func (s Scenario) BanditDocuments() ([]bandit.Document, error) {
	documents := make([]bandit.Document, 0, len(s.Documents))
	for _, spec := range s.Documents {
		doc, err := bandit.NewDocument(spec.ID, spec.Attraction)
		if err != nil {
			return nil, err
		}
		documents = append(documents, doc)
	}
	return documents, nil
}
