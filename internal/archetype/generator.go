package archetype

import (
	"errors"
	"fmt"

	"github.com/xtding233/rpsbuild/internal/rps"
)

var (
	ErrGeneratedTotal = errors.New("generated profile does not total 30")
	ErrTwinTopColors  = errors.New("twin top main and second colors must differ")
)

// Default retry budgets per archetype in range mode.
const (
	DefaultHeavyAttempts   = 20
	DefaultBalanceAttempts = 50
	DefaultTwinTopAttempts = 50
)

// GeneratorConfig holds both the exact splits (fixed mode) and the bands
// (range mode) used to build enemy decks.
type GeneratorConfig struct {
	// Fixed mode.
	HeavyMain        int
	HeavySub1        int
	HeavySub2        int
	DefaultHeavyMain rps.Color
	BalanceEach      int
	TwinTopA         int
	TwinTopB         int
	TwinTopC         int

	UseRangeTuning bool

	// Range mode, inclusive bands.
	HeavyMainMin    int
	HeavyMainMax    int
	HeavySubMin     int
	HeavySubMax     int
	BalanceMin      int
	BalanceMax      int
	TwinTopMainMin  int
	TwinTopMainMax  int
	TwinTopDeltaMin int // TopA - TopB
	TwinTopDeltaMax int
	TwinTopCMin     int
	TwinTopCMax     int

	// Retry budgets; <= 0 uses the package defaults.
	HeavyAttempts   int
	BalanceAttempts int
	TwinTopAttempts int
}

func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		HeavyMain:        20,
		HeavySub1:        5,
		HeavySub2:        5,
		DefaultHeavyMain: rps.Gu,
		BalanceEach:      10,
		TwinTopA:         14,
		TwinTopB:         14,
		TwinTopC:         2,

		UseRangeTuning: true,

		HeavyMainMin:    16,
		HeavyMainMax:    24,
		HeavySubMin:     0,
		HeavySubMax:     14,
		BalanceMin:      8,
		BalanceMax:      14,
		TwinTopMainMin:  12,
		TwinTopMainMax:  20,
		TwinTopDeltaMin: 1,
		TwinTopDeltaMax: 6,
		TwinTopCMin:     0,
		TwinTopCMax:     10,

		HeavyAttempts:   DefaultHeavyAttempts,
		BalanceAttempts: DefaultBalanceAttempts,
		TwinTopAttempts: DefaultTwinTopAttempts,
	}
}

// Generated is a generator's answer. Fallback marks that the retry budget ran
// out and a safe default split was used instead.
type Generated struct {
	Profile  rps.DeckProfile
	Attempts int
	Fallback bool
}

// Generator builds enemy deck profiles for an archetype.
type Generator struct {
	cfg GeneratorConfig
}

func NewGenerator(cfg GeneratorConfig) *Generator {
	return &Generator{cfg: cfg}
}

func (g *Generator) Config() GeneratorConfig { return g.cfg }

// Generate builds a deck without run-fixed colors: Heavy uses the configured
// default main color, Balance has no banner and TwinTop picks a random pair.
func (g *Generator) Generate(a Archetype, rng rps.RandomSource) (Generated, error) {
	switch a {
	case Balance:
		return g.Balance(rng, nil)
	case TwinTop:
		colors := append([]rps.Color(nil), rps.Colors[:]...)
		rps.Shuffle(colors, rng)
		return g.TwinTop(rng, colors[0], colors[1])
	default:
		return g.Heavy(rng, g.cfg.DefaultHeavyMain)
	}
}

// Heavy: one thick main color, the rest split between the other two.
func (g *Generator) Heavy(rng rps.RandomSource, main rps.Color) (Generated, error) {
	others := rps.OtherTwo(main)

	if !g.cfg.UseRangeTuning {
		a, b := g.cfg.HeavySub1, g.cfg.HeavySub2
		if rng.Range(0, 2) == 1 {
			a, b = b, a
		}
		return build(0, false, part(main, g.cfg.HeavyMain), part(others[0], a), part(others[1], b))
	}

	mainCount := clamp(rng.Range(g.cfg.HeavyMainMin, g.cfg.HeavyMainMax+1), 0, rps.DeckSize)
	rem := rps.DeckSize - mainCount

	budget := attempts(g.cfg.HeavyAttempts, DefaultHeavyAttempts)
	for attempt := 1; attempt <= budget; attempt++ {
		subMin := max(0, min(g.cfg.HeavySubMin, rem))
		subMax := max(0, min(g.cfg.HeavySubMax, rem))
		subA := rng.Range(subMin, subMax+1)
		subB := rem - subA
		if subB < 0 || subB < g.cfg.HeavySubMin || subB > g.cfg.HeavySubMax {
			continue
		}
		if rng.Range(0, 2) == 1 {
			return build(attempt, false, part(main, mainCount), part(others[0], subA), part(others[1], subB))
		}
		return build(attempt, false, part(main, mainCount), part(others[0], subB), part(others[1], subA))
	}

	a := rem / 2
	return build(budget, true, part(main, mainCount), part(others[0], a), part(others[1], rem-a))
}

// Balance: near-even split. With a banner color the banner gets the first
// draw and the other two follow in OtherTwo order; without one the draws go
// to Gu, Choki, Pa.
func (g *Generator) Balance(rng rps.RandomSource, banner *rps.Color) (Generated, error) {
	if !g.cfg.UseRangeTuning {
		each := g.cfg.BalanceEach
		return build(0, false, part(rps.Gu, each), part(rps.Choki, each), part(rps.Pa, each))
	}

	lo, hi := g.cfg.BalanceMin, g.cfg.BalanceMax
	budget := attempts(g.cfg.BalanceAttempts, DefaultBalanceAttempts)
	for attempt := 1; attempt <= budget; attempt++ {
		a := rng.Range(lo, hi+1)
		b := rng.Range(lo, hi+1)
		c := rps.DeckSize - a - b
		if a < 0 || b < 0 || c < 0 || c < lo || c > hi {
			continue
		}
		if banner != nil {
			others := rps.OtherTwo(*banner)
			return build(attempt, false, part(*banner, a), part(others[0], b), part(others[1], c))
		}
		return build(attempt, false, part(rps.Gu, a), part(rps.Choki, b), part(rps.Pa, c))
	}
	return build(budget, true, part(rps.Gu, 10), part(rps.Choki, 10), part(rps.Pa, 10))
}

// TwinTop: main and second both thick, the third color thin.
func (g *Generator) TwinTop(rng rps.RandomSource, main, second rps.Color) (Generated, error) {
	if main == second {
		return Generated{}, fmt.Errorf("%w: both %s", ErrTwinTopColors, main)
	}
	third := thirdColor(main, second)

	if !g.cfg.UseRangeTuning {
		return build(0, false, part(main, g.cfg.TwinTopA), part(second, g.cfg.TwinTopB), part(third, g.cfg.TwinTopC))
	}

	budget := attempts(g.cfg.TwinTopAttempts, DefaultTwinTopAttempts)
	for attempt := 1; attempt <= budget; attempt++ {
		topA := rng.Range(g.cfg.TwinTopMainMin, g.cfg.TwinTopMainMax+1)
		delta := rng.Range(g.cfg.TwinTopDeltaMin, g.cfg.TwinTopDeltaMax+1)
		topB := topA - delta
		if topA < 0 || topB < 0 {
			continue
		}
		topC := rps.DeckSize - topA - topB
		if topC < 0 || topC < g.cfg.TwinTopCMin || topC > g.cfg.TwinTopCMax {
			continue
		}
		return build(attempt, false, part(main, topA), part(second, topB), part(third, topC))
	}
	return build(budget, true, part(main, 14), part(second, 14), part(third, 2))
}

func part(c rps.Color, n int) colorCount { return colorCount{color: c, count: n} }

// build sums the parts per color so a repeated color cannot drop cards.
func build(attempts int, fallback bool, parts ...colorCount) (Generated, error) {
	var counts [rps.NumColors]int
	for _, p := range parts {
		counts[p.color] += p.count
	}
	p, err := rps.NewDeckProfile(counts[rps.Gu], counts[rps.Choki], counts[rps.Pa])
	if err != nil {
		return Generated{}, fmt.Errorf("%w: %w", ErrGeneratedTotal, err)
	}
	return Generated{Profile: p, Attempts: attempts, Fallback: fallback}, nil
}

func thirdColor(a, b rps.Color) rps.Color {
	for _, c := range rps.Colors {
		if c != a && c != b {
			return c
		}
	}
	return a
}

func attempts(configured, fallback int) int {
	if configured <= 0 {
		return fallback
	}
	return configured
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
