package quantile

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAt_Bounds(t *testing.T) {
	xs := []float64{7, 3, 9, 1, 4}

	assert.Equal(t, 1.0, At(xs, 0))
	assert.Equal(t, 9.0, At(xs, 1))
	assert.Equal(t, 4.0, At(xs, 0.5))
}

func TestAt_SingleValue(t *testing.T) {
	for _, tau := range []float64{0, 0.1, 0.5, 0.9, 1} {
		assert.Equal(t, 42.0, At([]float64{42}, tau))
	}
}

func TestAt_Interpolates(t *testing.T) {
	// (n-1)*0.5 = 0.5 between 25 and 40
	assert.InDelta(t, 32.5, At([]float64{40, 25}, 0.5), 1e-12)
	// (n-1)*0.375 = 0.75 between 10 and 20
	assert.InDelta(t, 17.5, At([]float64{30, 10, 20}, 0.375), 1e-12)
}

func TestAt_Degenerate(t *testing.T) {
	assert.Equal(t, 0.0, At(nil, 0.5))
	assert.Equal(t, 0.0, AtInts(nil, 0.5))
	assert.Equal(t, 1.0, At([]float64{1, 2}, math.NaN()))
	assert.Equal(t, 2.0, At([]float64{1, 2}, 3))
	assert.Equal(t, 1.0, At([]float64{1, 2}, -1))
}

func TestAt_DoesNotMutateInput(t *testing.T) {
	xs := []float64{3, 1, 2}
	At(xs, 0.5)
	assert.Equal(t, []float64{3, 1, 2}, xs)
}

func TestAtInts(t *testing.T) {
	assert.InDelta(t, 32.5, AtInts([]int{40, 25}, 0.5), 1e-12)
}
