package rps

import "math"

// GaugeState is a per-color charge meter. Values stack past Max so several
// charges can be banked; they never go below zero.
type GaugeState struct {
	values [NumColors]float64
	max    float64
}

// NewGauge returns an empty gauge whose charge unit is max.
func NewGauge(max float64) *GaugeState {
	g := &GaugeState{}
	g.SetMax(max)
	return g
}

// SetMax sets the charge-unit size, floored at a tiny positive value.
func (g *GaugeState) SetMax(max float64) {
	g.max = math.Max(minGaugeMax, max)
}

func (g *GaugeState) Max() float64 { return g.max }

// Add raises c by amount; non-positive amounts are ignored. No upper clamp.
func (g *GaugeState) Add(c Color, amount float64) {
	if amount <= 0 || !c.Valid() {
		return
	}
	g.values[c] += amount
}

func (g *GaugeState) Get(c Color) float64 {
	if !c.Valid() {
		return 0
	}
	return g.values[c]
}

// Values returns a snapshot of all three meters.
func (g *GaugeState) Values() [NumColors]float64 { return g.values }

// IsCharged reports whether c holds at least one full unit.
func (g *GaugeState) IsCharged(c Color) bool {
	return c.Valid() && reaches(g.values[c], g.max)
}

// TryConsumeCharged removes one unit from c if it is charged.
func (g *GaugeState) TryConsumeCharged(c Color) bool {
	if !g.IsCharged(c) {
		return false
	}
	g.values[c] = math.Max(0, g.values[c]-g.max)
	return true
}

// ChargedCount is how many times TryConsumeCharged would succeed in a row.
func (g *GaugeState) ChargedCount(c Color) int {
	if !c.Valid() {
		return 0
	}
	return wholeUnits(g.values[c], g.max)
}

// Refund gives back units whole charges of c.
func (g *GaugeState) Refund(c Color, units int) {
	if units <= 0 {
		return
	}
	g.Add(c, float64(units)*g.max)
}

// GainFormula decides how much gauge a missing color earns on a cleared round.
type GainFormula interface {
	Gain(missing Color, profile DeckProfile) float64
}

// LinearGainFormula: gain = count / Denominator * Scale.
type LinearGainFormula struct {
	Scale       float64
	Denominator float64
}

// DefaultGainFormula is count/30.
func DefaultGainFormula() LinearGainFormula {
	return LinearGainFormula{Scale: 1, Denominator: DeckSize}
}

func (f LinearGainFormula) Gain(missing Color, profile DeckProfile) float64 {
	count := float64(profile.Get(missing))
	// colors not in the deck are never "missing"
	if count <= 0 || f.Denominator <= 0 {
		return 0
	}
	return count / f.Denominator * f.Scale
}
