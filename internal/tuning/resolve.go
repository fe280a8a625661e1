package tuning

import (
	"fmt"

	"github.com/xtding233/rpsbuild/internal/archetype"
	"github.com/xtding233/rpsbuild/internal/rps"
	"github.com/xtding233/rpsbuild/internal/run"
)

// Params are the resolved engine parameters of one tuning preset.
type Params struct {
	Version   string
	Run       run.Tuning
	Generator archetype.GeneratorConfig
	Gain      rps.LinearGainFormula
	Initial   rps.DeckProfile
}

// DefaultParams are the values any unset field resolves to.
func DefaultParams() Params {
	return Params{
		Run:       run.DefaultTuning(),
		Generator: archetype.DefaultGeneratorConfig(),
		Gain:      rps.LinearGainFormula{Scale: 1, Denominator: 10},
		Initial:   rps.MustDeckProfile(0, 0, rps.DeckSize),
	}
}

// SimParams turns the params into Monte-Carlo input.
func (p Params) SimParams() run.SimParams {
	return run.SimParams{
		Tuning:    p.Run,
		Initial:   p.Initial,
		Generator: p.Generator,
		Gain:      p.Gain,
	}
}

// Overrides are applied after the YAML files. Nil fields keep the file value.
type Overrides struct {
	HandCount *int
	MaxMiss   *int
}

// Apply copies the set overrides into p.
func (o Overrides) Apply(p *Params) {
	if o.HandCount != nil {
		p.Run.HandCount = *o.HandCount
	}
	if o.MaxMiss != nil {
		p.Run.MaxMiss = *o.MaxMiss
	}
}

// Resolve validates a merged RawConfig and fills every unset field from
// DefaultParams.
func Resolve(raw RawConfig) (Params, error) {
	if err := ValidateRaw(raw); err != nil {
		return Params{}, err
	}
	p := DefaultParams()
	p.Version = raw.Version

	t := &p.Run
	if r := raw.Run; r != nil {
		set(&t.HandCount, r.HandCount)
		set(&t.LoseThresholdExclusive, r.LoseThresholdExclusive)
		set(&t.MaxMiss, r.MaxMiss)
		set(&t.IntroMaxTries, r.IntroMaxTries)
	}
	if e := raw.Economy; e != nil {
		set(&t.InitialPoints, e.InitialPoints)
		set(&t.PointsPerClear, e.PointsPerClear)
		set(&t.CardMovePrice, e.CardMovePrice)
		set(&t.GaugeBuyPrice, e.GaugeBuyPrice)
		set(&t.GaugeBuyAmount, e.GaugeBuyAmount)
	}
	if g := raw.Gauge; g != nil {
		set(&t.GaugeMax, g.Max)
		set(&p.Gain.Scale, g.GainScale)
		set(&p.Gain.Denominator, g.GainDenominator)
	}
	if env := raw.Environment; env != nil {
		set(&t.UniqueMainAcrossArchetypes, env.UniqueMain)
		set(&t.ShuffleEnvWeights, env.ShuffleWeights)
		if w := env.Weights; w != nil {
			set(&t.EnvWeights.Heavy, w.Heavy)
			set(&t.EnvWeights.Balance, w.Balance)
			set(&t.EnvWeights.TwinTop, w.TwinTop)
		}
	}
	if c := raw.Classifier; c != nil {
		set(&t.Thresholds.HeavyMin, c.HeavyMin)
		set(&t.Thresholds.TwinTop1Min, c.TwinTop1Min)
		set(&t.Thresholds.TwinTop2Min, c.TwinTop2Min)
		set(&t.Thresholds.TwinDeltaMax, c.TwinDeltaMax)
	}
	if g := raw.Generator; g != nil {
		if err := resolveGenerator(&p.Generator, g); err != nil {
			return Params{}, err
		}
	}
	if d := raw.InitialDeck; d != nil {
		counts := p.Initial.Counts()
		set(&counts[rps.Gu], d.Gu)
		set(&counts[rps.Choki], d.Choki)
		set(&counts[rps.Pa], d.Pa)
		initial, err := rps.NewDeckProfile(counts[rps.Gu], counts[rps.Choki], counts[rps.Pa])
		if err != nil {
			return Params{}, fmt.Errorf("%w: initial_deck: %w", ErrInvalidConfig, err)
		}
		p.Initial = initial
	}

	if err := p.Run.Validate(); err != nil {
		return Params{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return p, nil
}

func resolveGenerator(gc *archetype.GeneratorConfig, g *GeneratorCfg) error {
	set(&gc.UseRangeTuning, g.UseRangeTuning)
	if h := g.Heavy; h != nil {
		set(&gc.HeavyMain, h.Main)
		set(&gc.HeavySub1, h.Sub1)
		set(&gc.HeavySub2, h.Sub2)
		if h.DefaultMain != nil {
			c, err := rps.ParseColor(*h.DefaultMain)
			if err != nil {
				return fmt.Errorf("%w: generator.heavy.default_main: %w", ErrInvalidConfig, err)
			}
			gc.DefaultHeavyMain = c
		}
		set(&gc.HeavyMainMin, h.MainMin)
		set(&gc.HeavyMainMax, h.MainMax)
		set(&gc.HeavySubMin, h.SubMin)
		set(&gc.HeavySubMax, h.SubMax)
		set(&gc.HeavyAttempts, h.Attempts)
	}
	if b := g.Balance; b != nil {
		set(&gc.BalanceEach, b.Each)
		set(&gc.BalanceMin, b.Min)
		set(&gc.BalanceMax, b.Max)
		set(&gc.BalanceAttempts, b.Attempts)
	}
	if t := g.TwinTop; t != nil {
		set(&gc.TwinTopA, t.A)
		set(&gc.TwinTopB, t.B)
		set(&gc.TwinTopC, t.C)
		set(&gc.TwinTopMainMin, t.MainMin)
		set(&gc.TwinTopMainMax, t.MainMax)
		set(&gc.TwinTopDeltaMin, t.DeltaMin)
		set(&gc.TwinTopDeltaMax, t.DeltaMax)
		set(&gc.TwinTopCMin, t.CMin)
		set(&gc.TwinTopCMax, t.CMax)
		set(&gc.TwinTopAttempts, t.Attempts)
	}
	return nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
