package rps

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeededRNGReplays(t *testing.T) {
	a, b := NewSeededRNG(7), NewSeededRNG(7)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Range(0, 30), b.Range(0, 30))
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestRangeBounds(t *testing.T) {
	for _, rng := range []RandomSource{DefaultRNG(), NewSeededRNG(3)} {
		for i := 0; i < 200; i++ {
			v := rng.Range(-2, 5)
			assert.True(t, v >= -2 && v < 5, "got %d", v)
			f := rng.Float64()
			assert.True(t, f >= 0 && f < 1, "got %v", f)
		}
		assert.Equal(t, 4, rng.Range(4, 4), "empty range")
		assert.Equal(t, 4, rng.Range(4, 1))
	}
}

func TestShuffleKeepsElements(t *testing.T) {
	xs := []int{1, 2, 3, 4, 5, 6}
	Shuffle(xs, NewSeededRNG(9))
	assert.ElementsMatch(t, []int{1, 2, 3, 4, 5, 6}, xs)
}
