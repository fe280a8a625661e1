package run

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/rpsbuild/internal/rps"
)

func TestParsePolicy(t *testing.T) {
	for name, want := range map[string]string{"": "passive", "passive": "passive", "Reserve": "reserve", "reserve-only": "reserve-only"} {
		p, err := ParsePolicy(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, p.Name())
	}
	_, err := ParsePolicy("greedy")
	assert.Error(t, err)
}

func TestReservePolicyBuysAndReserves(t *testing.T) {
	s := newTestState(t, testTuning(), rps.MustDeckProfile(20, 5, 5), 1)
	Reserve{BuyGauge: true}.Between(s)

	// main Gu first (2 units), then Choki (2), then Pa (2): 6 of 10 points
	assert.Equal(t, 4, s.Points())
	assert.Equal(t, []rps.Color{rps.Gu, rps.Choki, rps.Pa}, s.Reserved())
}

func TestReserveOnlyPolicyKeepsPoints(t *testing.T) {
	s := newTestState(t, testTuning(), rps.MustDeckProfile(20, 5, 5), 1)
	Reserve{}.Between(s)
	assert.Equal(t, 10, s.Points())
	assert.Empty(t, s.Reserved())

	require.True(t, s.BuyGauge(rps.Pa, 4))
	Reserve{}.Between(s)
	assert.Equal(t, []rps.Color{rps.Pa, rps.Pa}, s.Reserved())
}

func TestPassivePolicy(t *testing.T) {
	s := newTestState(t, testTuning(), rps.MustDeckProfile(20, 5, 5), 1)
	Passive{}.Between(s)
	assert.Equal(t, 10, s.Points())
	assert.Empty(t, s.Reserved())
}
