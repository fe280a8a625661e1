package pricing

import (
	"fmt"
	"math"

	"github.com/xtding233/rpsbuild/internal/rps"
)

// Catalog is the point price list of the adjustment phase between rounds.
type Catalog struct {
	CardMove       int     // points per moved card
	GaugeBuy       int     // points per gauge unit
	GaugeBuyAmount float64 // gauge added per unit bought
}

func DefaultCatalog() Catalog {
	return Catalog{CardMove: 1, GaugeBuy: 1, GaugeBuyAmount: 0.5}
}

// Cost is qty*unitPrice for non-negative operands, saturating at math.MaxInt
// so that no purchase can wrap around to a free or negative price.
func Cost(qty, unitPrice int) int {
	if qty <= 0 || unitPrice <= 0 {
		return 0
	}
	if qty > math.MaxInt/unitPrice {
		return math.MaxInt
	}
	return qty * unitPrice
}

// addCost sums non-negative costs, saturating at math.MaxInt.
func addCost(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

// Draft is a pending adjustment: cards added and removed per color plus gauge
// units bought per color. Nothing is applied until it is committed.
type Draft struct {
	Add       [rps.NumColors]int
	Sub       [rps.NumColors]int
	GaugeBuys [rps.NumColors]int
}

func (d Draft) Empty() bool {
	return d == Draft{}
}

// Moves is the number of card moves the draft pays for: one removed card
// funds one added card, so the larger side counts.
func (d Draft) Moves() int {
	add, sub := 0, 0
	for _, c := range rps.Colors {
		add = addCost(add, max(0, d.Add[c]))
		sub = addCost(sub, max(0, d.Sub[c]))
	}
	return max(add, sub)
}

func (d Draft) GaugeUnits() int {
	n := 0
	for _, c := range rps.Colors {
		n = addCost(n, max(0, d.GaugeBuys[c]))
	}
	return n
}

// Validate rejects negative entries.
func (d Draft) Validate() error {
	for _, c := range rps.Colors {
		if d.Add[c] < 0 || d.Sub[c] < 0 || d.GaugeBuys[c] < 0 {
			return fmt.Errorf("draft has a negative entry for %s", c)
		}
	}
	return nil
}

// Apply returns the profile the draft would produce. It fails with
// rps.ErrInvalidProfile when the result does not total 30.
func (d Draft) Apply(p rps.DeckProfile) (rps.DeckProfile, error) {
	if err := d.Validate(); err != nil {
		return p, err
	}
	counts := p.Counts()
	for _, c := range rps.Colors {
		counts[c] += d.Add[c] - d.Sub[c]
	}
	next, err := rps.NewDeckProfile(counts[rps.Gu], counts[rps.Choki], counts[rps.Pa])
	if err != nil {
		return p, fmt.Errorf("apply draft: %w", err)
	}
	return next, nil
}

// PlanDeckChange is the draft that turns from into to.
func PlanDeckChange(from, to rps.DeckProfile) Draft {
	var d Draft
	for _, c := range rps.Colors {
		diff := to.Get(c) - from.Get(c)
		if diff > 0 {
			d.Add[c] = diff
		} else {
			d.Sub[c] = -diff
		}
	}
	return d
}

// Plan summarizes what a draft costs.
type Plan struct {
	Purchases []Purchase
	MoveCost  int
	GaugeCost int
	Total     int
	// Gauge added per color once committed.
	GaugeGain [rps.NumColors]float64
}

// Purchase is one line item in the plan.
type Purchase struct {
	Kind      string // "move" or "gauge"
	Color     rps.Color
	Qty       int
	UnitPrice int
	Subtotal  int
}

// Quote prices a draft. Card moves are one line item; gauge buys get one
// line per color. Totals saturate at math.MaxInt instead of overflowing.
func Quote(cat Catalog, d Draft) Plan {
	var plan Plan
	if moves := d.Moves(); moves > 0 {
		sub := Cost(moves, cat.CardMove)
		plan.Purchases = append(plan.Purchases, Purchase{
			Kind:      "move",
			Qty:       moves,
			UnitPrice: cat.CardMove,
			Subtotal:  sub,
		})
		plan.MoveCost = sub
	}
	for _, c := range rps.Colors {
		qty := d.GaugeBuys[c]
		if qty <= 0 {
			continue
		}
		sub := Cost(qty, cat.GaugeBuy)
		plan.Purchases = append(plan.Purchases, Purchase{
			Kind:      "gauge",
			Color:     c,
			Qty:       qty,
			UnitPrice: cat.GaugeBuy,
			Subtotal:  sub,
		})
		plan.GaugeCost = addCost(plan.GaugeCost, sub)
		plan.GaugeGain[c] = float64(qty) * cat.GaugeBuyAmount
	}
	plan.Total = addCost(plan.MoveCost, plan.GaugeCost)
	return plan
}
