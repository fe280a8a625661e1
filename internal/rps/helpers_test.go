package rps

// fixedRNG makes Shuffle the identity (Range always returns the top of the
// range) and hands out a constant Float64.
type fixedRNG struct{ f float64 }

func (fixedRNG) Range(minInclusive, maxExclusive int) int {
	if maxExclusive <= minInclusive {
		return minInclusive
	}
	return maxExclusive - 1
}

func (r fixedRNG) Float64() float64 { return r.f }

func colorsOf(s string) []Color {
	out := make([]Color, 0, len(s))
	for _, r := range s {
		switch r {
		case 'G':
			out = append(out, Gu)
		case 'C':
			out = append(out, Choki)
		case 'P':
			out = append(out, Pa)
		}
	}
	return out
}
