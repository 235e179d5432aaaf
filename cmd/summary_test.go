package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func sampleSummaries() []LogSummary {
	return []LogSummary{
		{Label: "mid", CTR: 0.5, TotalReward: 50, CumulativeRegret: floatPtr(12.0)},
		{Label: "best", CTR: 0.8, TotalReward: 80, CumulativeRegret: floatPtr(3.0)},
		{Label: "nobaseline", CTR: 0.6, TotalReward: 60},
	}
}

func TestSortSummaries(t *testing.T) {
	t.Run("ctr ascending", func(t *testing.T) {
		summaries := sampleSummaries()
		require.NoError(t, sortSummaries(summaries, "ctr", false))
		assert.Equal(t, []string{"mid", "nobaseline", "best"}, labelsOf(summaries))
	})

	t.Run("reward descending", func(t *testing.T) {
		summaries := sampleSummaries()
		require.NoError(t, sortSummaries(summaries, "reward", true))
		assert.Equal(t, []string{"best", "nobaseline", "mid"}, labelsOf(summaries))
	})

	t.Run("regret puts missing baseline last", func(t *testing.T) {
		summaries := sampleSummaries()
		require.NoError(t, sortSummaries(summaries, "regret", false))
		assert.Equal(t, []string{"best", "mid", "nobaseline"}, labelsOf(summaries))
	})

	t.Run("unknown key", func(t *testing.T) {
		err := sortSummaries(sampleSummaries(), "charm", false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported sort key")
	})
}

func TestSummariesToTable(t *testing.T) {
	summaries := []LogSummary{
		{Label: "run-a", Algo: "ucb", Model: "cascade", Rounds: 100, CTR: 0.61, CumulativeRegret: floatPtr(4.2)},
		{Label: "run-b", Rounds: 100, CTR: 0.55},
	}
	table := summariesToTable(summaries)
	lines := strings.Split(table, "\n")
	require.Len(t, lines, 4) // header, separator, two rows

	assert.Contains(t, lines[0], "Label")
	assert.Contains(t, lines[2], "run-a")
	assert.Contains(t, lines[2], "4.20")
	// Missing algo/model/regret render as dashes.
	assert.Contains(t, lines[3], "run-b")
	assert.Contains(t, lines[3], "-")
}

func labelsOf(summaries []LogSummary) []string {
	labels := make([]string, len(summaries))
	for i, s := range summaries {
		labels[i] = s.Label
	}
	return labels
}
