package bandit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDependentClickEnvironment_Validation(t *testing.T) {
	docs := []Document{mustDoc(t, "a", 0.5), mustDoc(t, "b", 0.2)}

	t.Run("default satisfaction out of range", func(t *testing.T) {
		_, err := NewDependentClickEnvironment(docs, 2, nil, 1.5, testRNG(1))
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	})

	t.Run("satisfaction entry out of range", func(t *testing.T) {
		_, err := NewDependentClickEnvironment(docs, 2, map[string]float64{"a": -0.1}, 0.5, testRNG(1))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
		assert.Contains(t, err.Error(), `"a"`)
	})

	t.Run("nil satisfaction falls back to default", func(t *testing.T) {
		_, err := NewDependentClickEnvironment(docs, 2, nil, 0.5, testRNG(1))
		assert.NoError(t, err)
	})
}

func TestDependentClickEnvironment_SatisfiedClickStopsExamination(t *testing.T) {
	docs := []Document{mustDoc(t, "a", 1.0), mustDoc(t, "b", 1.0)}
	satisfaction := map[string]float64{"a": 1.0, "b": 0.0}

	for seed := int64(0); seed < 5; seed++ {
		env, err := NewDependentClickEnvironment(docs, 2, satisfaction, 0.5, testRNG(seed))
		require.NoError(t, err)
		interaction, err := env.Evaluate([]string{"a", "b"})
		require.NoError(t, err)

		assert.Equal(t, []string{"a"}, interaction.Seen)
		assert.Equal(t, []int{0}, interaction.ClickPositions)
		assert.Equal(t, 1.0, interaction.Reward)
	}
}

func TestDependentClickEnvironment_UnsatisfiedClicksContinue(t *testing.T) {
	docs := []Document{mustDoc(t, "a", 1.0), mustDoc(t, "b", 1.0)}
	satisfaction := map[string]float64{"a": 0.0, "b": 0.0}

	env, err := NewDependentClickEnvironment(docs, 2, satisfaction, 0.5, testRNG(9))
	require.NoError(t, err)
	interaction, err := env.Evaluate([]string{"a", "b"})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, interaction.Seen)
	assert.Equal(t, []int{0, 1}, interaction.ClickPositions)
	assert.Equal(t, 2.0, interaction.Reward)
}

func TestDependentClickEnvironment_ExpectedReward(t *testing.T) {
	docs := []Document{mustDoc(t, "a", 0.5), mustDoc(t, "b", 0.4)}
	satisfaction := map[string]float64{"a": 1.0, "b": 1.0}
	env, err := NewDependentClickEnvironment(docs, 2, satisfaction, 0.5, testRNG(1))
	require.NoError(t, err)

	reward, err := env.ExpectedReward([]string{"a", "b"})
	require.NoError(t, err)
	// 0.5 + (1 - 0.5*1.0) * 0.4
	assert.InDelta(t, 0.5+0.5*0.4, reward, 1e-12)
}

func TestDependentClickEnvironment_DefaultSatisfactionApplies(t *testing.T) {
	docs := []Document{mustDoc(t, "a", 0.5), mustDoc(t, "b", 0.4)}
	env, err := NewDependentClickEnvironment(docs, 2, map[string]float64{"a": 1.0}, 0.0, testRNG(1))
	require.NoError(t, err)

	// b falls back to satisfaction 0, so its continue probability stays 1.
	reward, err := env.ExpectedReward([]string{"b", "a"})
	require.NoError(t, err)
	assert.InDelta(t, 0.4+1.0*0.5, reward, 1e-12)
}
