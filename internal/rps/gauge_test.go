package rps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGaugeAccumulation(t *testing.T) {
	g := NewGauge(1)
	for i := 0; i < 10; i++ {
		g.Add(Gu, 0.1)
	}
	assert.True(t, g.IsCharged(Gu), "ten tenths must make one unit")
	assert.Equal(t, 1, g.ChargedCount(Gu))
	assert.False(t, g.IsCharged(Choki))

	g.Add(Choki, -5)
	g.Add(Choki, 0)
	assert.Zero(t, g.Get(Choki))
}

func TestGaugeChargedCountMatchesConsume(t *testing.T) {
	amounts := []float64{0.1, 0.2333, 0.4, 1.7, 0.05, 0.3333, 2.25}
	for _, max := range []float64{0.5, 1, 1.3} {
		g := NewGauge(max)
		for _, a := range amounts {
			g.Add(Pa, a)
			want := g.ChargedCount(Pa)

			clone := *g
			got := 0
			for clone.TryConsumeCharged(Pa) {
				got++
			}
			require.Equalf(t, want, got, "max=%v value=%v", max, g.Get(Pa))
		}
	}
}

func TestGaugeConsumeAndRefund(t *testing.T) {
	g := NewGauge(1)
	assert.False(t, g.TryConsumeCharged(Gu))

	g.Add(Gu, 2.5)
	require.True(t, g.TryConsumeCharged(Gu))
	require.True(t, g.TryConsumeCharged(Gu))
	assert.False(t, g.TryConsumeCharged(Gu))
	assert.InDelta(t, 0.5, g.Get(Gu), 1e-9)

	g.Refund(Gu, 2)
	assert.Equal(t, 2, g.ChargedCount(Gu))
	g.Refund(Gu, 0)
	assert.Equal(t, 2, g.ChargedCount(Gu))
}

func TestGaugeSetMaxFloor(t *testing.T) {
	g := NewGauge(0)
	assert.Equal(t, minGaugeMax, g.Max())
	g.SetMax(-3)
	assert.Equal(t, minGaugeMax, g.Max())
}

func TestLinearGainFormula(t *testing.T) {
	p := MustDeckProfile(20, 10, 0)
	f := DefaultGainFormula()
	assert.InDelta(t, 1.0/3.0, f.Gain(Choki, p), 1e-9)
	assert.Zero(t, f.Gain(Pa, p))

	scaled := LinearGainFormula{Scale: 2, Denominator: 10}
	assert.InDelta(t, 2.0, scaled.Gain(Choki, p), 1e-9)
	assert.Zero(t, LinearGainFormula{Scale: 1}.Gain(Gu, p))
}
