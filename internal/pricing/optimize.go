package pricing

import (
	"math"

	"github.com/xtding233/rpsbuild/internal/rps"
)

// MaxGaugeBuys reports how many more gauge units budget affords on top of
// draft d. A free gauge unit reports math.MaxInt.
func MaxGaugeBuys(cat Catalog, budget int, d Draft) int {
	left := budget - Quote(cat, d).Total
	if left < 0 {
		return 0
	}
	if cat.GaugeBuy <= 0 {
		return math.MaxInt
	}
	return left / cat.GaugeBuy
}

// UnitsToCharge is the number of gauge units needed to lift value to one full
// charge of size unit. Zero when already charged, -1 when buying adds nothing.
func UnitsToCharge(cat Catalog, value, unit float64) int {
	const eps = 1e-6
	need := unit - value
	if need <= eps {
		return 0
	}
	if cat.GaugeBuyAmount <= 0 {
		return -1
	}
	return int(math.Ceil(need/cat.GaugeBuyAmount - eps))
}

// ChargePlan spends budget on gauge units so that as many colors as possible,
// taken in priority order, reach one full charge. Colors that are already
// charged or that the budget cannot finish are skipped; leftover points are
// kept. It returns the gauge buys as a draft.
func ChargePlan(cat Catalog, budget int, values [rps.NumColors]float64, unit float64, priority []rps.Color) Draft {
	var d Draft
	left := budget
	for _, c := range priority {
		if !c.Valid() || d.GaugeBuys[c] > 0 {
			continue
		}
		units := UnitsToCharge(cat, values[c], unit)
		if units <= 0 {
			continue
		}
		cost := Cost(units, cat.GaugeBuy)
		if cost > left {
			continue
		}
		d.GaugeBuys[c] = units
		left -= cost
	}
	return d
}

// ShiftDraft is the draft that adds amount cards of target and takes them
// from the other two colors, the larger first. ok is false when the profile
// cannot give up that many cards or budget does not cover the moves.
func ShiftDraft(cat Catalog, budget int, p rps.DeckProfile, target rps.Color, amount int) (Draft, bool) {
	next, ok := p.AddAndAutoSubtract(target, amount)
	if !ok {
		return Draft{}, false
	}
	d := PlanDeckChange(p, next)
	if Quote(cat, d).Total > budget {
		return Draft{}, false
	}
	return d, true
}
