package bandit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLog() *SimulationLog {
	interactions := []Interaction{
		{
			Slate:          []string{"a", "b"},
			Seen:           []string{"a"},
			ClickIndex:     intPtr(0),
			ClickPositions: []int{0},
			Reward:         1.0,
		},
		{
			Slate:          []string{"b", "a"},
			Seen:           []string{"b", "a"},
			ClickPositions: []int{},
			Reward:         0.0,
		},
		{
			Slate:          []string{"a", "b"},
			Seen:           []string{"a", "b"},
			ClickIndex:     intPtr(0),
			ClickPositions: []int{0, 1},
			Reward:         2.0,
		},
	}
	optimal := 0.9
	return NewSimulationLog(interactions, &optimal)
}

func TestSimulationLog_Aggregates(t *testing.T) {
	log := sampleLog()

	assert.Equal(t, 3, log.Rounds())
	assert.InDelta(t, 3.0, log.TotalReward(), 1e-12)
	assert.InDelta(t, 1.0, log.CTR(), 1e-12)

	assert.Equal(t, map[string]int{"a": 3, "b": 2}, log.SeenCounts())
	// Round 3 is a multi-click round: both documents are counted.
	assert.Equal(t, map[string]int{"a": 2, "b": 1}, log.ClickCounts())
}

func TestSimulationLog_EmptyLog(t *testing.T) {
	log := NewSimulationLog(nil, nil)
	assert.Equal(t, 0, log.Rounds())
	assert.Equal(t, 0.0, log.TotalReward())
	assert.Equal(t, 0.0, log.CTR())
	assert.Empty(t, log.SeenCounts())
	assert.Empty(t, log.ClickCounts())
	assert.Nil(t, log.CumulativeRegret())
	assert.Empty(t, log.RoundMetrics())
}

func TestSimulationLog_CumulativeRegret(t *testing.T) {
	log := sampleLog()
	regret := log.CumulativeRegret()
	require.NotNil(t, regret)
	assert.InDelta(t, 3*0.9-3.0, *regret, 1e-12)

	log.OptimalReward = nil
	assert.Nil(t, log.CumulativeRegret())
}

func TestSimulationLog_Summarize(t *testing.T) {
	summary := sampleLog().Summarize()

	assert.Equal(t, 3, summary.Rounds)
	assert.InDelta(t, 3.0, summary.TotalReward, 1e-12)
	assert.InDelta(t, 1.0, summary.CTR, 1e-12)
	require.NotNil(t, summary.OptimalReward)
	assert.InDelta(t, 0.9, *summary.OptimalReward, 1e-12)
	require.NotNil(t, summary.CumulativeRegret)
	assert.InDelta(t, -0.3, *summary.CumulativeRegret, 1e-12)
	assert.Equal(t, map[string]int{"a": 3, "b": 2}, summary.SeenCounts)
}

func TestSimulationLog_RoundMetrics(t *testing.T) {
	metrics := sampleLog().RoundMetrics()
	require.Len(t, metrics, 3)

	assert.Equal(t, 1, metrics[0].Round)
	assert.InDelta(t, 1.0, metrics[0].CumulativeReward, 1e-12)
	assert.InDelta(t, 1.0, metrics[0].CTR, 1e-12)
	require.NotNil(t, metrics[0].InstantRegret)
	assert.InDelta(t, -0.1, *metrics[0].InstantRegret, 1e-12)

	assert.Equal(t, 2, metrics[1].Round)
	assert.InDelta(t, 1.0, metrics[1].CumulativeReward, 1e-12)
	assert.InDelta(t, 0.5, metrics[1].CTR, 1e-12)
	require.NotNil(t, metrics[1].CumulativeRegret)
	assert.InDelta(t, 2*0.9-1.0, *metrics[1].CumulativeRegret, 1e-12)

	assert.Equal(t, 3, metrics[2].Round)
	assert.InDelta(t, 3.0, metrics[2].CumulativeReward, 1e-12)
	require.NotNil(t, metrics[2].CumulativeRegret)
	assert.InDelta(t, 3*0.9-3.0, *metrics[2].CumulativeRegret, 1e-12)
}

func TestSimulationLog_RoundMetricsWithoutBaseline(t *testing.T) {
	log := sampleLog()
	log.OptimalReward = nil
	for _, m := range log.RoundMetrics() {
		assert.Nil(t, m.InstantRegret)
		assert.Nil(t, m.CumulativeRegret)
	}
}
