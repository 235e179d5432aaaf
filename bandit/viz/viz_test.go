package viz

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasut0ra/rank-bandit-lab/bandit"
)

func intPtr(v int) *int { return &v }

func sampleLog(withBaseline bool) *bandit.SimulationLog {
	interactions := []bandit.Interaction{
		{
			Slate:          []string{"a", "b"},
			Seen:           []string{"a"},
			ClickIndex:     intPtr(0),
			ClickPositions: []int{0},
			Reward:         1.0,
		},
		{
			Slate:          []string{"a", "b"},
			Seen:           []string{"a", "b"},
			ClickPositions: []int{},
			Reward:         0.0,
		},
	}
	var optimal *float64
	if withBaseline {
		v := 0.8
		optimal = &v
	}
	return bandit.NewSimulationLog(interactions, optimal)
}

func TestLearningCurveData(t *testing.T) {
	curve := LearningCurveData(sampleLog(true))

	assert.Equal(t, []float64{1, 2}, curve.Rounds)
	assert.Equal(t, []float64{1.0, 0.0}, curve.Reward)
	assert.Equal(t, []float64{1.0, 1.0}, curve.CumulativeReward)
	assert.Equal(t, []float64{1.0, 0.5}, curve.CTR)
	require.NotNil(t, curve.OptimalReward)
	assert.Equal(t, 0.8, *curve.OptimalReward)
}

func TestRegretCurveData(t *testing.T) {
	curve, err := RegretCurveData(sampleLog(true))
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 2}, curve.Rounds)
	assert.InDelta(t, -0.2, curve.InstantRegret[0], 1e-12)
	assert.InDelta(t, 0.8, curve.InstantRegret[1], 1e-12)
	assert.InDelta(t, -0.2, curve.CumulativeRegret[0], 1e-12)
	assert.InDelta(t, 0.6, curve.CumulativeRegret[1], 1e-12)
}

func TestRegretCurveData_NoBaseline(t *testing.T) {
	_, err := RegretCurveData(sampleLog(false))
	assert.ErrorIs(t, err, ErrNoBaseline)
}

func TestDocDistributionData(t *testing.T) {
	dist := DocDistributionData(sampleLog(true), []string{"a", "b", "c"})

	assert.Equal(t, []string{"a", "b", "c"}, dist.DocIDs)
	assert.Equal(t, []float64{2, 1, 0}, dist.Seen)
	assert.Equal(t, []float64{1, 0, 0}, dist.Clicks)
}

func TestPlotLearningCurves_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "learning.png")
	err := PlotLearningCurves([]*bandit.SimulationLog{sampleLog(true)}, []string{"run"}, path)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestPlotRegretCurves_RequiresBaseline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regret.png")
	err := PlotRegretCurves([]*bandit.SimulationLog{sampleLog(false)}, []string{"run"}, path)
	assert.ErrorIs(t, err, ErrNoBaseline)
}

func TestPlotDocDistribution_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docs.png")
	err := PlotDocDistribution(sampleLog(true), []string{"a", "b"}, path)
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestPlots_RejectBadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")

	t.Run("no logs", func(t *testing.T) {
		assert.Error(t, PlotLearningCurves(nil, nil, path))
	})
	t.Run("label mismatch", func(t *testing.T) {
		err := PlotLearningCurves([]*bandit.SimulationLog{sampleLog(true)}, []string{"a", "b"}, path)
		assert.Error(t, err)
	})
	t.Run("empty log", func(t *testing.T) {
		empty := bandit.NewSimulationLog(nil, nil)
		assert.Error(t, PlotDocDistribution(empty, []string{"a"}, path))
	})
}
