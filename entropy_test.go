package dtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestBincount verifies that class occurrences are counted into slots
// indexed by class, up to the greatest class present.
func TestBincount(t *testing.T) {
	assert.Equal(t, []int{0, 1, 1, 2, 2, 1}, bincount([]float64{1, 2, 3, 3, 4, 5, 4}))
	assert.Equal(t, []int{3}, bincount([]float64{0, 0, 0}))
	assert.Equal(t, []int{0, 0, 0, 1}, bincount([]float64{3}))
}

// TestEntropy checks the entropy of pure, balanced and skewed label
// distributions.
func TestEntropy(t *testing.T) {
	assert.Equal(t, 0.0, entropy([]float64{1, 1, 1, 1}), "pure labels must have zero entropy")
	assert.Equal(t, 1.0, entropy([]float64{0, 1, 0, 1}), "an even two-class spread is one bit")
	assert.InDelta(t, 0.9182, entropy([]float64{0, 0, 1}), 1e-4)
	assert.InDelta(t, 2.0, entropy([]float64{0, 1, 2, 3}), 1e-12, "four even classes are two bits")
}

// TestGain checks the information gained by perfect and worthless
// partitions of a balanced parent.
func TestGain(t *testing.T) {
	parent := []float64{0, 0, 1, 1}
	assert.Equal(t, 1.0, gain(parent, []float64{0, 0}, []float64{1, 1}), "a perfect partition gains the full bit")
	assert.Equal(t, 0.0, gain(parent, []float64{0, 1}, []float64{0, 1}), "a partition mirroring the parent gains nothing")
	assert.InDelta(t, 0.3112, gain(parent, []float64{0}, []float64{0, 1, 1}), 1e-4)
}

// TestIsPure verifies purity detection over mixed, uniform and single
// label slices.
func TestIsPure(t *testing.T) {
	assert.False(t, isPure([]float64{1, 2, 3, 3, 4, 5, 4}))
	assert.True(t, isPure([]float64{1, 1, 1, 1, 1, 1, 1}))
	assert.True(t, isPure([]float64{8}))
}

// TestMajorityClass verifies the most frequent class wins and ties go
// to the smallest class.
func TestMajorityClass(t *testing.T) {
	assert.Equal(t, 2.0, majorityClass([]float64{1, 1, 2, 2, 2}))
	assert.Equal(t, 1.0, majorityClass([]float64{1, 1, 1, 1, 1}))
	assert.Equal(t, 8.0, majorityClass([]float64{8}))
	assert.Equal(t, 0.0, majorityClass([]float64{1, 0, 1, 0}), "ties must resolve to the smallest class")
	assert.Equal(t, 1.0, majorityClass([]float64{2, 1, 2, 1}))
}
