package rps

import "math"

// Every charge comparison goes through these helpers so that charge, consume
// and count agree on what "one full unit" means.
const (
	// chargeEpsilon absorbs accumulation error, so 0.1 added ten times is a full unit.
	chargeEpsilon = 1e-6
	// minGaugeMax keeps the unit size strictly positive.
	minGaugeMax = 0.0001
)

// reaches reports whether v has reached threshold, within chargeEpsilon.
func reaches(v, threshold float64) bool {
	return v >= threshold-chargeEpsilon
}

// wholeUnits is the number of complete units of size unit banked in v.
func wholeUnits(v, unit float64) int {
	if unit <= 1e-9 {
		return 0
	}
	n := math.Floor((v + chargeEpsilon) / unit)
	if n < 0 {
		return 0
	}
	return int(n)
}
