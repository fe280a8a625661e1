package rps

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// RandomSource supplies every random choice the engine makes, so runs can be
// replayed from a seed.
type RandomSource interface {
	// Range returns a uniform integer in [minInclusive, maxExclusive).
	// An empty range returns minInclusive.
	Range(minInclusive, maxExclusive int) int
	Float64() float64 // [0, 1)
}

// cryptoRNG reads crypto/rand and is the default source.
type cryptoRNG struct{}

func (cryptoRNG) Float64() float64 {
	// 53 random bits scaled into [0, 1)
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		// fall back to the runtime-seeded math/rand/v2 source
		return rand.Float64()
	}

	u := binary.BigEndian.Uint64(buf[:]) >> 11 // 53 bits
	return float64(u) / (1 << 53)
}

func (cryptoRNG) Range(minInclusive, maxExclusive int) int {
	if maxExclusive <= minInclusive {
		return minInclusive
	}
	n := uint64(maxExclusive - minInclusive)
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		return minInclusive + int(rand.Uint64N(n))
	}
	// ranges here are tiny (<= 31), so modulo bias is negligible
	return minInclusive + int(binary.BigEndian.Uint64(buf[:])%n)
}

func DefaultRNG() RandomSource { return cryptoRNG{} }

// seededRNG is a PCG stream; the same seed replays the same run.
type seededRNG struct{ r *rand.Rand }

func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) Float64() float64 { return s.r.Float64() }

func (s *seededRNG) Range(minInclusive, maxExclusive int) int {
	if maxExclusive <= minInclusive {
		return minInclusive
	}
	return minInclusive + s.r.IntN(maxExclusive-minInclusive)
}

// Shuffle is an in-place Fisher-Yates shuffle driven by rng.Range.
func Shuffle[T any](xs []T, rng RandomSource) {
	for i := len(xs) - 1; i > 0; i-- {
		j := rng.Range(0, i+1)
		xs[i], xs[j] = xs[j], xs[i]
	}
}
