package diversity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePopulation() [][]float64 {
	return [][]float64{
		{0, 1, 3, 2, 0},
		{1, 0, 4, 1, 1},
		{0, 3, 1, 4, 0},
		{1, 2, 2, 0, 1},
		{0, 4, 0, 3, 0},
		{1, 1, 4, 1, 1},
	}
}

func TestNewModel_TooFewVectors(t *testing.T) {
	_, err := NewModel([][]float64{{1, 2, 3}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptySample)
}

func TestNewModel_DimensionMismatch(t *testing.T) {
	_, err := NewModel([][]float64{{1, 2, 3}, {1, 2}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestNewModel_ConstantColumn(t *testing.T) {
	// Every student shares the last attribute, the ridge keeps the matrix invertible
	population := [][]float64{
		{0, 1, 1},
		{1, 3, 1},
		{0, 2, 1},
	}

	model, err := NewModel(population)
	require.NoError(t, err)
	assert.Equal(t, 3, model.Dims())
}

func TestModel_DistanceIsSymmetricAndZeroOnSelf(t *testing.T) {
	model, err := NewModel(samplePopulation())
	require.NoError(t, err)

	a := []float64{0, 1, 3, 2, 0}
	b := []float64{1, 4, 0, 3, 1}

	self, err := model.Distance(a, a)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, self, 1e-12)

	ab, err := model.Distance(a, b)
	require.NoError(t, err)
	ba, err := model.Distance(b, a)
	require.NoError(t, err)
	assert.InDelta(t, ab, ba, 1e-9)
	assert.Greater(t, ab, 0.0)
}

func TestModel_Score(t *testing.T) {
	model, err := NewModel(samplePopulation())
	require.NoError(t, err)

	t.Run("empty sample", func(t *testing.T) {
		_, err := model.Score(nil)
		assert.ErrorIs(t, err, ErrEmptySample)
	})

	t.Run("single member scores zero", func(t *testing.T) {
		score, err := model.Score([][]float64{{0, 1, 3, 2, 0}})
		require.NoError(t, err)
		assert.Equal(t, 0.0, score)
	})

	t.Run("identical members score zero", func(t *testing.T) {
		score, err := model.Score([][]float64{{0, 1, 3, 2, 0}, {0, 1, 3, 2, 0}})
		require.NoError(t, err)
		assert.InDelta(t, 0.0, score, 1e-12)
	})

	t.Run("varied team beats uniform team", func(t *testing.T) {
		uniform, err := model.Score([][]float64{{0, 1, 3, 2, 0}, {0, 1, 3, 2, 0}, {0, 1, 2, 2, 0}})
		require.NoError(t, err)
		varied, err := model.Score([][]float64{{0, 1, 3, 2, 0}, {1, 4, 0, 3, 1}, {0, 0, 4, 0, 0}})
		require.NoError(t, err)
		assert.Greater(t, varied, uniform)
	})

	t.Run("mean of pairwise distances", func(t *testing.T) {
		vectors := [][]float64{{0, 1, 3, 2, 0}, {1, 0, 4, 1, 1}, {0, 3, 1, 4, 0}}
		d01, _ := model.Distance(vectors[0], vectors[1])
		d02, _ := model.Distance(vectors[0], vectors[2])
		d12, _ := model.Distance(vectors[1], vectors[2])

		score, err := model.Score(vectors)
		require.NoError(t, err)
		assert.InDelta(t, (d01+d02+d12)/3, score, 1e-9)
	})

	t.Run("wrong dimension", func(t *testing.T) {
		_, err := model.Score([][]float64{{0, 1}, {1, 0}})
		assert.ErrorIs(t, err, ErrDimensionMismatch)
	})
}
