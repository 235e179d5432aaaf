package bandit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPositionBasedEnvironment_Validation(t *testing.T) {
	docs := []Document{
		mustDoc(t, "a", 0.5),
		mustDoc(t, "b", 0.2),
		mustDoc(t, "c", 0.1),
	}

	t.Run("biases shorter than slate", func(t *testing.T) {
		_, err := NewPositionBasedEnvironment(docs, 3, []float64{1.0, 0.5}, testRNG(1))
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	})

	t.Run("bias out of range", func(t *testing.T) {
		_, err := NewPositionBasedEnvironment(docs, 2, []float64{1.0, 1.2}, testRNG(1))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
		assert.Contains(t, err.Error(), "index 1")
	})

	t.Run("extra biases beyond slate are ignored", func(t *testing.T) {
		_, err := NewPositionBasedEnvironment(docs, 2, []float64{1.0, 0.5, 7.0}, testRNG(1))
		assert.NoError(t, err)
	})
}

func TestPositionBasedEnvironment_SkipsUnexaminedRank(t *testing.T) {
	docs := []Document{
		mustDoc(t, "a", 1.0),
		mustDoc(t, "b", 1.0),
		mustDoc(t, "c", 1.0),
	}

	// Rank 1 has zero examination probability: regardless of seed, exactly
	// ranks 0 and 2 are examined and clicked.
	for seed := int64(0); seed < 5; seed++ {
		env, err := NewPositionBasedEnvironment(docs, 3, []float64{1.0, 0.0, 1.0}, testRNG(seed))
		require.NoError(t, err)
		interaction, err := env.Evaluate([]string{"a", "b", "c"})
		require.NoError(t, err)

		assert.Equal(t, 2.0, interaction.Reward)
		assert.Equal(t, []string{"a", "c"}, interaction.Seen)
		assert.Equal(t, []int{0, 2}, interaction.ClickPositions)
		require.NotNil(t, interaction.ClickIndex)
		assert.Equal(t, 0, *interaction.ClickIndex)
	}
}

func TestPositionBasedEnvironment_NoExamination(t *testing.T) {
	docs := []Document{mustDoc(t, "a", 1.0), mustDoc(t, "b", 1.0)}
	env, err := NewPositionBasedEnvironment(docs, 2, []float64{0.0, 0.0}, testRNG(4))
	require.NoError(t, err)

	interaction, err := env.Evaluate([]string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, interaction.Reward)
	assert.Empty(t, interaction.Seen)
	assert.Nil(t, interaction.ClickIndex)
}

func TestPositionBasedEnvironment_ExpectedReward(t *testing.T) {
	docs := []Document{mustDoc(t, "a", 0.4), mustDoc(t, "b", 0.2)}
	env, err := NewPositionBasedEnvironment(docs, 2, []float64{1.0, 0.5}, testRNG(1))
	require.NoError(t, err)

	reward, err := env.ExpectedReward([]string{"a", "b"})
	require.NoError(t, err)
	assert.InDelta(t, 0.4*1.0+0.2*0.5, reward, 1e-12)

	// Order matters through the bias weighting.
	swapped, err := env.ExpectedReward([]string{"b", "a"})
	require.NoError(t, err)
	assert.InDelta(t, 0.2*1.0+0.4*0.5, swapped, 1e-12)
}

func TestPositionBasedEnvironment_OptimalSlate_TopKByAttraction(t *testing.T) {
	docs := []Document{
		mustDoc(t, "low", 0.1),
		mustDoc(t, "high", 0.9),
		mustDoc(t, "mid", 0.5),
	}
	env, err := NewPositionBasedEnvironment(docs, 2, []float64{0.3, 0.9}, testRNG(1))
	require.NoError(t, err)
	// Rank-invariant top-k even though rank 1 has the higher bias here.
	assert.Equal(t, []string{"high", "mid"}, env.OptimalSlate())
}
