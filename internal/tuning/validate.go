package tuning

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/xtding233/rpsbuild/internal/rps"
)

var ErrInvalidConfig = errors.New("invalid tuning config")

// ValidateRaw checks the semantic constraints of a merged RawConfig and
// reports every violation, each wrapping ErrInvalidConfig.
func ValidateRaw(cfg RawConfig) error {
	var v validator

	if r := cfg.Run; r != nil {
		v.intRange("run.hand_count", r.HandCount, 1, rps.DeckSize)
		v.atLeast("run.lose_threshold_exclusive", r.LoseThresholdExclusive, 1)
		v.atLeast("run.max_miss", r.MaxMiss, 1)
		v.atLeast("run.intro_max_tries", r.IntroMaxTries, 1)
	}
	if e := cfg.Economy; e != nil {
		v.atLeast("economy.initial_points", e.InitialPoints, 0)
		v.atLeast("economy.points_per_clear", e.PointsPerClear, 0)
		v.atLeast("economy.card_move_price", e.CardMovePrice, 0)
		v.atLeast("economy.gauge_buy_price", e.GaugeBuyPrice, 0)
		v.nonNegative("economy.gauge_buy_amount", e.GaugeBuyAmount)
	}
	if g := cfg.Gauge; g != nil {
		v.positive("gauge.max", g.Max)
		v.nonNegative("gauge.gain_scale", g.GainScale)
		v.positive("gauge.gain_denominator", g.GainDenominator)
	}
	if env := cfg.Environment; env != nil && env.Weights != nil {
		v.nonNegative("environment.weights.heavy", env.Weights.Heavy)
		v.nonNegative("environment.weights.balance", env.Weights.Balance)
		v.nonNegative("environment.weights.twin_top", env.Weights.TwinTop)
	}
	if c := cfg.Classifier; c != nil {
		v.intRange("classifier.heavy_min", c.HeavyMin, 0, rps.DeckSize)
		v.intRange("classifier.twin_top1_min", c.TwinTop1Min, 0, rps.DeckSize)
		v.intRange("classifier.twin_top2_min", c.TwinTop2Min, 0, rps.DeckSize)
		v.intRange("classifier.twin_delta_max", c.TwinDeltaMax, 0, rps.DeckSize)
	}
	if g := cfg.Generator; g != nil {
		validateGenerator(&v, g)
	}
	if d := cfg.InitialDeck; d != nil {
		v.atLeast("initial_deck.gu", d.Gu, 0)
		v.atLeast("initial_deck.choki", d.Choki, 0)
		v.atLeast("initial_deck.pa", d.Pa, 0)
	}
	return v.err
}

func validateGenerator(v *validator, g *GeneratorCfg) {
	if h := g.Heavy; h != nil {
		v.intRange("generator.heavy.main", h.Main, 0, rps.DeckSize)
		v.atLeast("generator.heavy.sub1", h.Sub1, 0)
		v.atLeast("generator.heavy.sub2", h.Sub2, 0)
		if h.DefaultMain != nil {
			if _, err := rps.ParseColor(*h.DefaultMain); err != nil {
				v.add("generator.heavy.default_main: %v", err)
			}
		}
		v.band("generator.heavy.main_", h.MainMin, h.MainMax)
		v.band("generator.heavy.sub_", h.SubMin, h.SubMax)
		v.atLeast("generator.heavy.attempts", h.Attempts, 0)
	}
	if b := g.Balance; b != nil {
		v.atLeast("generator.balance.each", b.Each, 0)
		v.band("generator.balance.", b.Min, b.Max)
		v.atLeast("generator.balance.attempts", b.Attempts, 0)
	}
	if t := g.TwinTop; t != nil {
		v.atLeast("generator.twin_top.a", t.A, 0)
		v.atLeast("generator.twin_top.b", t.B, 0)
		v.atLeast("generator.twin_top.c", t.C, 0)
		v.band("generator.twin_top.main_", t.MainMin, t.MainMax)
		v.band("generator.twin_top.delta_", t.DeltaMin, t.DeltaMax)
		v.band("generator.twin_top.c_", t.CMin, t.CMax)
		v.atLeast("generator.twin_top.attempts", t.Attempts, 0)
	}
}

type validator struct {
	err error
}

func (v *validator) add(format string, args ...any) {
	v.err = multierr.Append(v.err, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
}

func (v *validator) atLeast(field string, val *int, lo int) {
	if val != nil && *val < lo {
		v.add("%s must be >= %d, got %d", field, lo, *val)
	}
}

func (v *validator) intRange(field string, val *int, lo, hi int) {
	if val != nil && (*val < lo || *val > hi) {
		v.add("%s must be in [%d,%d], got %d", field, lo, hi, *val)
	}
}

func (v *validator) nonNegative(field string, val *float64) {
	if val != nil && *val < 0 {
		v.add("%s must be >= 0, got %g", field, *val)
	}
}

func (v *validator) positive(field string, val *float64) {
	if val != nil && *val <= 0 {
		v.add("%s must be > 0, got %g", field, *val)
	}
}

// band checks an inclusive prefix+"min" / prefix+"max" pair: both
// non-negative and min <= max.
func (v *validator) band(prefix string, lo, hi *int) {
	v.atLeast(prefix+"min", lo, 0)
	v.atLeast(prefix+"max", hi, 0)
	if lo != nil && hi != nil && *lo > *hi {
		v.add("%smin %d exceeds %smax %d", prefix, *lo, prefix, *hi)
	}
}
