package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPopStdDev(t *testing.T) {
	// Population convention: divide by N, not N-1.
	assert.InDelta(t, math.Sqrt(2.0/3.0), popStdDev([]float64{1, 2, 3}), 1e-12)
	assert.Zero(t, popStdDev([]float64{4, 4, 4}))
	assert.Zero(t, popStdDev(nil))
}

func TestStandardize(t *testing.T) {
	t.Run("zero mean unit variance", func(t *testing.T) {
		z := standardize([]float64{10, 20, 30})
		assert.InDelta(t, 0, mean(z), 1e-12)
		assert.InDelta(t, 1, popStdDev(z), 1e-12)
		assert.InDelta(t, -z[0], z[2], 1e-12)
	})

	t.Run("constant column standardizes to zeros", func(t *testing.T) {
		for _, v := range standardize([]float64{7, 7, 7}) {
			assert.Zero(t, v)
		}
	})
}

func TestPercentile(t *testing.T) {
	xs := []float64{1, 2, 3, 4}

	// Linear interpolation between closest ranks.
	assert.InDelta(t, 3.25, percentile(xs, 0.75), 1e-12)
	assert.InDelta(t, 2.5, percentile(xs, 0.5), 1e-12)
	assert.InDelta(t, 1, percentile(xs, 0), 1e-12)
	assert.InDelta(t, 4, percentile(xs, 1), 1e-12)
	assert.Zero(t, percentile(nil, 0.5))
}

func TestPearson(t *testing.T) {
	t.Run("perfect positive", func(t *testing.T) {
		x := []float64{1, 2, 3, 4}
		y := []float64{10, 20, 30, 40}
		assert.InDelta(t, 1, pearson(x, y), 1e-12)
	})

	t.Run("perfect negative", func(t *testing.T) {
		x := []float64{1, 2, 3}
		y := []float64{3, 2, 1}
		assert.InDelta(t, -1, pearson(x, y), 1e-12)
	})

	t.Run("degenerate series yields zero", func(t *testing.T) {
		assert.Zero(t, pearson([]float64{1, 1, 1}, []float64{1, 2, 3}))
		assert.Zero(t, pearson(nil, nil))
	})
}
