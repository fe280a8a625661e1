package archetype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/rpsbuild/internal/rps"
)

func TestRollOnlyTwinTop(t *testing.T) {
	env := NewEnvironment(Weights{TwinTop: 1}, false, nil)
	for _, f := range []float64{0, 0.1, 0.5, 0.999999} {
		assert.Equal(t, TwinTop, env.Roll(&seqRNG{floats: []float64{f}}))
	}
	rng := rps.NewSeededRNG(11)
	for i := 0; i < 1000; i++ {
		require.Equal(t, TwinTop, env.Roll(rng))
	}
}

func TestRollBuckets(t *testing.T) {
	env := Environment{Weights: Weights{Heavy: 0.5, Balance: 0.25, TwinTop: 0.25}}
	cases := map[float64]Archetype{0: Heavy, 0.49: Heavy, 0.5: Balance, 0.74: Balance, 0.75: TwinTop, 0.99: TwinTop}
	for f, want := range cases {
		assert.Equal(t, want, env.Roll(&seqRNG{floats: []float64{f}}), "r=%v", f)
	}

	// unnormalised weights scale with the sum
	env = Environment{Weights: Weights{Heavy: 2, Balance: 2}}
	assert.Equal(t, Balance, env.Roll(&seqRNG{floats: []float64{0.75}}))
}

func TestRollZeroWeights(t *testing.T) {
	assert.Equal(t, Heavy, Environment{}.Roll(rps.NewSeededRNG(1)))
}

func TestRollFrequencies(t *testing.T) {
	env := Environment{Weights: Weights{Heavy: 0.6, Balance: 0.25, TwinTop: 0.15}}
	rng := rps.NewSeededRNG(42)
	const n = 60000
	var hits [Count]int
	for i := 0; i < n; i++ {
		hits[env.Roll(rng)]++
	}
	assert.InDelta(t, 0.60, float64(hits[Heavy])/n, 0.01)
	assert.InDelta(t, 0.25, float64(hits[Balance])/n, 0.01)
	assert.InDelta(t, 0.15, float64(hits[TwinTop])/n, 0.01)
}

func TestShuffleWeightsIsPermutation(t *testing.T) {
	w := Weights{Heavy: 0.6, Balance: 0.25, TwinTop: 0.15}
	rng := rps.NewSeededRNG(5)
	for i := 0; i < 50; i++ {
		got := ShuffleWeights(w, rng)
		assert.ElementsMatch(t, []float64{0.6, 0.25, 0.15}, []float64{got.Heavy, got.Balance, got.TwinTop})
	}
}
