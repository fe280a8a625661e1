package run

import (
	"github.com/xtding233/rpsbuild/internal/archetype"
	"github.com/xtding233/rpsbuild/internal/rps"
)

// RoundReport is everything a presentation layer needs to replay one round.
type RoundReport struct {
	Index int

	Intro            bool
	IntroForcedClear bool // the intro needed at least one reroll to clear
	IntroAttempts    int

	Enemy  EnemySlot
	Player archetype.Info

	// Raw is the plain simulation; Result has every bonus applied.
	Raw    rps.RoundResult
	Result rps.RoundResult

	// Forced are the reserved colors whose charge was consumed this round.
	Forced []rps.Color
	// ForcedPlacements maps each forced color to the first unused hand holding
	// it, or -1. Not recorded for Balance players.
	ForcedPlacements []ForcedPlacement

	Heavy   rps.HeavyBonus
	TwinTop rps.TwinTopBonus
	Balance rps.BalanceResult
	// BalanceRefund is the charges per color given back to the gauge.
	BalanceRefund [rps.NumColors]int

	GaugeGain [rps.NumColors]float64

	Points   int
	Score    int
	Miss     int
	GameOver bool
}

type ForcedPlacement struct {
	Color rps.Color
	Index int
}

// forcedPlacements pairs each forced color with the first matching hand not
// already claimed by an earlier forced color.
func forcedPlacements(forced, hands []rps.Color) []ForcedPlacement {
	used := make([]bool, len(hands))
	out := make([]ForcedPlacement, 0, len(forced))
	for _, c := range forced {
		found := -1
		for h, hc := range hands {
			if used[h] || hc != c {
				continue
			}
			used[h] = true
			found = h
			break
		}
		out = append(out, ForcedPlacement{Color: c, Index: found})
	}
	return out
}
