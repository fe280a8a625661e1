package archetype

import (
	"fmt"

	"github.com/xtding233/rpsbuild/internal/rps"
)

// Thresholds drive Classify.
type Thresholds struct {
	HeavyMin     int
	TwinTop1Min  int
	TwinTop2Min  int
	TwinDeltaMax int
}

func DefaultThresholds() Thresholds {
	return Thresholds{HeavyMin: 18, TwinTop1Min: 13, TwinTop2Min: 11, TwinDeltaMax: 4}
}

// Info is the classification of a player deck. For Heavy, Second equals Main;
// for Balance, Second is the runner-up and only used for display.
type Info struct {
	Archetype Archetype
	Main      rps.Color
	Second    rps.Color
}

// Label renders "Gu Heavy", "Gu-Choki TwinTop" or "Balance".
func (i Info) Label() string {
	switch i.Archetype {
	case Heavy:
		return fmt.Sprintf("%s Heavy", i.Main)
	case TwinTop:
		return fmt.Sprintf("%s-%s TwinTop", i.Main, i.Second)
	default:
		return "Balance"
	}
}

// Classify maps a deck to its archetype. Counts are ranked descending; equal
// counts keep declaration order (Gu, Choki, Pa).
//   - Heavy:   top1 >= HeavyMin
//   - TwinTop: top1 >= TwinTop1Min, top2 >= TwinTop2Min, top1-top2 <= TwinDeltaMax
//   - Balance otherwise
func Classify(p rps.DeckProfile, t Thresholds) Info {
	ranked := rank(p)
	c1, n1 := ranked[0].color, ranked[0].count
	c2, n2 := ranked[1].color, ranked[1].count

	if n1 >= t.HeavyMin {
		return Info{Archetype: Heavy, Main: c1, Second: c1}
	}
	if n1 >= t.TwinTop1Min && n2 >= t.TwinTop2Min && n1-n2 <= t.TwinDeltaMax {
		return Info{Archetype: TwinTop, Main: c1, Second: c2}
	}
	return Info{Archetype: Balance, Main: c1, Second: c2}
}

type colorCount struct {
	color rps.Color
	count int
}

// rank is a stable three-element descending sort.
func rank(p rps.DeckProfile) [3]colorCount {
	r := [3]colorCount{
		{rps.Gu, p.Get(rps.Gu)},
		{rps.Choki, p.Get(rps.Choki)},
		{rps.Pa, p.Get(rps.Pa)},
	}
	if r[1].count > r[0].count {
		r[0], r[1] = r[1], r[0]
	}
	if r[2].count > r[1].count {
		r[1], r[2] = r[2], r[1]
	}
	if r[1].count > r[0].count {
		r[0], r[1] = r[1], r[0]
	}
	return r
}
