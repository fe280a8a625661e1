package run

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/xtding233/rpsbuild/internal/archetype"
	"github.com/xtding233/rpsbuild/internal/rps"
)

// PlayNextRound plays the previewed enemy, applies the player's archetype
// bonus and commits misses, points, score and gauge gains. Round 0 is the
// intro: it rerolls until the round clears and has no side effects besides
// advancing the round. Calling it after game over returns ErrGameOver.
func (s *State) PlayNextRound() (RoundReport, error) {
	if s.IsGameOver() {
		return RoundReport{}, ErrGameOver
	}

	enemy := s.enemies[s.preview]
	s.refreshPlayerInfo()
	rep := RoundReport{
		Index:  s.round,
		Intro:  s.round == 0,
		Enemy:  enemy,
		Player: s.playerInfo,
		Heavy:  rps.HeavyBonus{Index: -1},
	}

	playerDeck, err := rps.NewDeck(s.player)
	if err != nil {
		return RoundReport{}, fmt.Errorf("player deck: %w", err)
	}
	enemyDeck, err := rps.NewDeck(enemy.Profile)
	if err != nil {
		return RoundReport{}, fmt.Errorf("enemy deck: %w", err)
	}

	if rep.Intro {
		err = s.playIntro(&rep, playerDeck, enemyDeck)
	} else {
		err = s.playRegular(&rep, playerDeck, enemyDeck)
	}
	if err != nil {
		return RoundReport{}, err
	}

	s.round++
	s.rollPreview()

	rep.Points, rep.Score, rep.Miss = s.points, s.score, s.miss
	rep.GameOver = s.IsGameOver()
	s.last = &rep

	s.log.Debug("round played",
		zap.Int("round", rep.Index),
		zap.Bool("intro", rep.Intro),
		zap.String("enemy", enemy.Label()),
		zap.String("player", rep.Player.Label()),
		zap.Int("losses", rep.Result.LossCount),
		zap.Bool("clear", rep.Result.Clear),
	)
	return rep, nil
}

// playIntro rerolls up to IntroMaxTries times until the round clears and
// keeps the last attempt otherwise. Reservations stay untouched.
func (s *State) playIntro(rep *RoundReport, playerDeck, enemyDeck *rps.Deck) error {
	tries := max(1, s.tuning.IntroMaxTries)
	var rr rps.RoundResult
	for t := 0; t < tries; t++ {
		var err error
		rr, err = rps.Simulate(playerDeck, enemyDeck, s.tuning.HandCount, s.tuning.LoseThresholdExclusive, s.rng, rps.Forced{})
		if err != nil {
			return fmt.Errorf("intro round: %w", err)
		}
		rep.IntroAttempts = t + 1
		if rr.Clear {
			rep.IntroForcedClear = t > 0
			break
		}
	}
	if rep.IntroAttempts > 1 {
		s.log.Debug("intro rerolled",
			zap.Int("attempts", rep.IntroAttempts),
			zap.Bool("clear", rr.Clear),
		)
	}
	rep.Raw, rep.Result = rr, rr
	return nil
}

func (s *State) playRegular(rep *RoundReport, playerDeck, enemyDeck *rps.Deck) error {
	thr := s.tuning.LoseThresholdExclusive
	info := rep.Player

	rep.Forced = s.consumeReservations()

	// Balance spends its charges on replacements instead of forced draws.
	forced := rps.Forced{Order: rep.Forced}
	if info.Archetype == archetype.Balance {
		forced = rps.Forced{}
	}

	raw, err := rps.Simulate(playerDeck, enemyDeck, s.tuning.HandCount, thr, s.rng, forced)
	if err != nil {
		return fmt.Errorf("round %d: %w", s.round, err)
	}
	rep.Raw = raw
	rr := raw

	if info.Archetype == archetype.Balance && len(rep.Forced) > 0 {
		rr, rep.Balance = rps.ApplyBalanceJoint(rr, thr, s.player, rep.Forced)
		for _, c := range rps.Colors {
			if n := rep.Balance.Unused[c]; n > 0 {
				s.gauge.Refund(c, n)
				rep.BalanceRefund[c] = n
			}
		}
		if rep.BalanceRefund != [rps.NumColors]int{} {
			s.log.Debug("balance charges refunded",
				zap.Ints("refund", rep.BalanceRefund[:]),
				zap.Int("moves", len(rep.Balance.Moves)),
			)
		}
	}
	if info.Archetype == archetype.Heavy {
		rr, rep.Heavy = rps.ApplyHeavyFirstLoseToWin(rr, thr, info.Main)
	}
	if info.Archetype == archetype.TwinTop {
		rr, rep.TwinTop = rps.ApplyTwinTopChainSecondLoseToWin(rr, thr, info.Main, info.Second)
	}
	for i, m := range rep.Balance.Moves {
		if m.Index >= 0 && m.Index < len(rr.Outcomes) {
			rep.Balance.Moves[i].Outcome = rr.Outcomes[m.Index]
		}
	}
	rep.Result = rr

	if info.Archetype != archetype.Balance && len(rep.Forced) > 0 {
		rep.ForcedPlacements = forcedPlacements(rep.Forced, rr.PlayerHands)
	}

	s.stats[rep.Enemy.Archetype].add(rr.EnemyHands)
	if !rr.Clear {
		s.miss++
		return nil
	}
	s.points += s.tuning.PointsPerClear
	s.score++
	for _, c := range rr.MissingColors {
		gain := s.gain.Gain(c, s.player)
		s.gauge.Add(c, gain)
		rep.GaugeGain[c] += gain
	}
	return nil
}

// consumeReservations empties the reservation queue and spends one charge
// per entry in order. Entries whose charge is gone are dropped.
func (s *State) consumeReservations() []rps.Color {
	if len(s.reserved) == 0 {
		return nil
	}
	reserved := s.reserved
	s.reserved = nil

	before := s.gauge.Values()
	forced := make([]rps.Color, 0, len(reserved))
	for _, c := range reserved {
		if s.gauge.TryConsumeCharged(c) {
			forced = append(forced, c)
		}
	}
	after := s.gauge.Values()
	s.log.Debug("forced draws consumed",
		zap.Int("reserved", len(reserved)),
		zap.Int("consumed", len(forced)),
		zap.Float64s("gauge_before", before[:]),
		zap.Float64s("gauge_after", after[:]),
	)
	return forced
}
