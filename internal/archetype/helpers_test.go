package archetype

// seqRNG replays fixed values. Range clamps each value into its range and
// falls back to the low end once the script runs out.
type seqRNG struct {
	ints   []int
	floats []float64
}

func (s *seqRNG) Range(minInclusive, maxExclusive int) int {
	if maxExclusive <= minInclusive {
		return minInclusive
	}
	if len(s.ints) == 0 {
		return minInclusive
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return max(minInclusive, min(v, maxExclusive-1))
}

func (s *seqRNG) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}
