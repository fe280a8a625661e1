package archetype

import "github.com/xtding233/rpsbuild/internal/rps"

// Weights are relative odds for each enemy archetype. They need not sum to 1.
type Weights struct {
	Heavy   float64
	Balance float64
	TwinTop float64
}

func (w Weights) Sum() float64 { return w.Heavy + w.Balance + w.TwinTop }

// Environment is the enemy mix of one run.
type Environment struct {
	Weights Weights
	SeedTag string // display only
}

// NewEnvironment fixes the weights for a run, optionally permuting them
// across the three archetypes first.
func NewEnvironment(w Weights, shuffle bool, rng rps.RandomSource) Environment {
	if shuffle {
		w = ShuffleWeights(w, rng)
	}
	return Environment{Weights: w}
}

// Roll picks the next enemy archetype. A non-positive total always yields Heavy.
func (e Environment) Roll(rng rps.RandomSource) Archetype {
	sum := e.Weights.Sum()
	if sum <= 0 {
		return Heavy
	}
	r := rng.Float64() * sum
	if r < e.Weights.Heavy {
		return Heavy
	}
	r -= e.Weights.Heavy
	if r < e.Weights.Balance {
		return Balance
	}
	return TwinTop
}

// ShuffleWeights hands the three weights to the archetypes in random order.
func ShuffleWeights(w Weights, rng rps.RandomSource) Weights {
	ws := []float64{w.Heavy, w.Balance, w.TwinTop}
	rps.Shuffle(ws, rng)
	return Weights{Heavy: ws[0], Balance: ws[1], TwinTop: ws[2]}
}
