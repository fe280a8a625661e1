package run

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/rpsbuild/internal/archetype"
	"github.com/xtding233/rpsbuild/internal/rps"
)

func TestIntroRoundHasNoSideEffects(t *testing.T) {
	for seed := uint64(1); seed <= 30; seed++ {
		s := newTestState(t, testTuning(), rps.MustDeckProfile(10, 10, 10), seed)
		require.True(t, s.BuyGauge(rps.Gu, 2))
		require.True(t, s.ReserveForced(rps.Gu))
		points, gauge := s.Points(), s.Gauge().Values()

		rep, err := s.PlayNextRound()
		require.NoError(t, err)
		assert.True(t, rep.Intro)
		assert.Equal(t, 0, rep.Index)
		assert.True(t, rep.IntroAttempts >= 1 && rep.IntroAttempts <= 30)
		if rep.Result.Clear {
			assert.Equal(t, rep.IntroAttempts > 1, rep.IntroForcedClear)
		} else {
			assert.Equal(t, 30, rep.IntroAttempts)
		}
		assert.Equal(t, rep.Raw, rep.Result)
		assert.Empty(t, rep.Forced)

		assert.Equal(t, points, s.Points())
		assert.Zero(t, s.Score())
		assert.Zero(t, s.MissCount())
		assert.Equal(t, gauge, s.Gauge().Values())
		assert.Equal(t, []rps.Color{rps.Gu}, s.Reserved(), "intro keeps reservations")
		assert.Equal(t, 1, s.Round())
	}
}

func TestIntroSingleTry(t *testing.T) {
	tune := testTuning()
	tune.IntroMaxTries = 1
	s := newTestState(t, tune, rps.MustDeckProfile(10, 10, 10), 4)
	rep, err := s.PlayNextRound()
	require.NoError(t, err)
	assert.Equal(t, 1, rep.IntroAttempts)
	assert.False(t, rep.IntroForcedClear)
}

func TestHeavyBonusInRun(t *testing.T) {
	s := newTestState(t, testTuning(), rps.MustDeckProfile(20, 5, 5), 12)
	require.Equal(t, archetype.Heavy, s.PlayerInfo().Archetype)
	require.Equal(t, rps.Gu, s.PlayerInfo().Main)

	_, err := s.PlayNextRound()
	require.NoError(t, err)

	applied := 0
	for i := 0; i < 200; i++ {
		rep, err := s.PlayNextRound()
		require.NoError(t, err)

		firstGuLoss := -1
		for k, o := range rep.Raw.Outcomes {
			if o == rps.Lose && rep.Raw.PlayerHands[k] == rps.Gu {
				firstGuLoss = k
				break
			}
		}
		if firstGuLoss < 0 {
			assert.False(t, rep.Heavy.Applied)
			assert.Equal(t, rep.Raw.LossCount, rep.Result.LossCount)
			continue
		}
		applied++
		assert.True(t, rep.Heavy.Applied)
		assert.Equal(t, firstGuLoss, rep.Heavy.Index)
		assert.Equal(t, rep.Raw.LossCount-1, rep.Result.LossCount)
		assert.Equal(t, rps.Win, rep.Result.Outcomes[firstGuLoss])
		assert.Equal(t, rep.Result.LossCount < 3, rep.Result.Clear)
		assert.Zero(t, rep.TwinTop.WinFlipCount())
		assert.False(t, rep.Balance.Applied)
	}
	assert.Positive(t, applied)
}

func TestTwinTopBonusInRun(t *testing.T) {
	s := newTestState(t, testTuning(), rps.MustDeckProfile(15, 14, 1), 21)
	require.Equal(t, archetype.Info{Archetype: archetype.TwinTop, Main: rps.Gu, Second: rps.Choki}, s.PlayerInfo())
	_, err := s.PlayNextRound()
	require.NoError(t, err)

	for i := 0; i < 200; i++ {
		rep, err := s.PlayNextRound()
		require.NoError(t, err)
		assert.Equal(t, rep.Raw.LossCount-rep.TwinTop.WinFlipCount(), rep.Result.LossCount)
		for _, idx := range rep.TwinTop.Indices {
			assert.GreaterOrEqual(t, idx, 2)
			assert.Equal(t, rps.Lose, rep.Raw.Outcomes[idx])
		}
		assert.False(t, rep.Heavy.Applied)
	}
}

func TestForcedDrawForHeavyPlayer(t *testing.T) {
	s := newTestState(t, testTuning(), rps.MustDeckProfile(20, 5, 5), 5)
	_, err := s.PlayNextRound()
	require.NoError(t, err)

	require.True(t, s.BuyGauge(rps.Choki, 2))
	require.True(t, s.ReserveForced(rps.Choki))

	rep, err := s.PlayNextRound()
	require.NoError(t, err)
	assert.Equal(t, []rps.Color{rps.Choki}, rep.Forced)
	assert.Equal(t, rps.Choki, rep.Raw.PlayerHands[0])
	assert.Equal(t, []ForcedPlacement{{Color: rps.Choki, Index: 0}}, rep.ForcedPlacements)
	assert.Empty(t, s.Reserved())
	assert.Zero(t, rep.GaugeGain[rps.Choki], "a drawn color is never missing")
	assert.InDelta(t, 0, s.Gauge().Get(rps.Choki), 1e-9)
}

func TestBalanceSpendsAndRefundsCharges(t *testing.T) {
	for seed := uint64(1); seed <= 40; seed++ {
		s := newTestState(t, testTuning(), rps.MustDeckProfile(10, 10, 10), seed)
		require.Equal(t, archetype.Balance, s.PlayerInfo().Archetype)
		_, err := s.PlayNextRound()
		require.NoError(t, err)

		require.True(t, s.BuyGauge(rps.Gu, 2))
		require.True(t, s.BuyGauge(rps.Pa, 2))
		require.True(t, s.SetReservedOrder([]rps.Color{rps.Gu, rps.Pa}))
		before := s.Gauge().Values()

		rep, err := s.PlayNextRound()
		require.NoError(t, err)
		require.Equal(t, []rps.Color{rps.Gu, rps.Pa}, rep.Forced)
		assert.Nil(t, rep.ForcedPlacements)

		after := s.Gauge().Values()
		for _, c := range []rps.Color{rps.Gu, rps.Pa} {
			assert.Equal(t, 1, rep.Balance.Used[c]+rep.Balance.Unused[c])
			assert.Equal(t, rep.Balance.Unused[c], rep.BalanceRefund[c])
			want := before[c] - 1 + float64(rep.BalanceRefund[c]) + rep.GaugeGain[c]
			assert.InDelta(t, want, after[c], 1e-9, "seed %d color %s", seed, c)
		}
		for _, m := range rep.Balance.Moves {
			assert.Equal(t, m.To, rep.Result.PlayerHands[m.Index])
			assert.Equal(t, rep.Result.Outcomes[m.Index], m.Outcome)
		}
		if !rep.Balance.Applied {
			assert.Equal(t, rep.Raw, rep.Result)
		}
	}
}

func TestBalanceFullHandWithEveryCharge(t *testing.T) {
	tune := testTuning()
	tune.HandCount = rps.DeckSize
	tune.InitialPoints = 100
	s := newTestState(t, tune, rps.MustDeckProfile(10, 10, 10), 5)
	_, err := s.PlayNextRound()
	require.NoError(t, err)

	var order []rps.Color
	for _, c := range rps.Colors {
		require.True(t, s.BuyGauge(c, 20))
	}
	for k := 0; k < rps.DeckSize; k++ {
		order = append(order, rps.Colors[k%rps.NumColors])
	}
	require.True(t, s.SetReservedOrder(order))

	start := time.Now()
	rep, err := s.PlayNextRound()
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Len(t, rep.Forced, rps.DeckSize)
	for _, c := range rps.Colors {
		assert.Equal(t, 10, rep.Balance.Used[c]+rep.Balance.Unused[c])
	}
}

func TestGameOver(t *testing.T) {
	tune := DefaultTuning()
	tune.MaxMiss = 2
	tune.LoseThresholdExclusive = 1
	s := newTestState(t, tune, rps.MustDeckProfile(30, 0, 0), 6)

	var rep RoundReport
	for i := 0; i < 1000 && !s.IsGameOver(); i++ {
		var err error
		rep, err = s.PlayNextRound()
		require.NoError(t, err)
	}
	require.True(t, s.IsGameOver())
	assert.True(t, rep.GameOver)
	assert.Equal(t, 2, rep.Miss)

	_, err := s.PlayNextRound()
	assert.ErrorIs(t, err, ErrGameOver)

	last, ok := s.LastRound()
	require.True(t, ok)
	assert.Equal(t, rep.Index, last.Index)
}

func TestClearRewards(t *testing.T) {
	tune := testTuning()
	tune.LoseThresholdExclusive = 8 // every round clears
	s := newTestState(t, tune, rps.MustDeckProfile(10, 10, 10), 14)
	_, err := s.PlayNextRound()
	require.NoError(t, err)

	for i := 1; i <= 20; i++ {
		before := s.Gauge().Values()
		rep, err := s.PlayNextRound()
		require.NoError(t, err)
		assert.Equal(t, 10+i, s.Points())
		assert.Equal(t, i, s.Score())

		for _, c := range rps.Colors {
			missing := false
			for _, m := range rep.Result.MissingColors {
				missing = missing || m == c
			}
			if missing {
				assert.InDelta(t, 10.0/30.0, rep.GaugeGain[c], 1e-9)
			} else {
				assert.Zero(t, rep.GaugeGain[c])
			}
			assert.InDelta(t, before[c]+rep.GaugeGain[c], s.Gauge().Get(c), 1e-9)
		}
	}
}
