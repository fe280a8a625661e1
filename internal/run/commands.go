package run

import (
	"go.uber.org/zap"

	"github.com/xtding233/rpsbuild/internal/pricing"
	"github.com/xtding233/rpsbuild/internal/rps"
)

// Commands from the adjustment phase. Each returns false and leaves the run
// untouched when it cannot be applied.

func (s *State) spend(cost int) bool {
	if cost <= 0 {
		return true
	}
	if s.points < cost {
		return false
	}
	s.points -= cost
	return true
}

// CommitProfile replaces the player deck for cost points.
func (s *State) CommitProfile(p rps.DeckProfile, cost int) bool {
	if p.Validate() != nil || cost < 0 {
		return false
	}
	if !s.spend(cost) {
		return false
	}
	s.setPlayer(p)
	return true
}

// AdjustByPoint moves amount cards from sub to add at the card-move price.
// A non-positive amount is a successful no-op.
func (s *State) AdjustByPoint(add, sub rps.Color, amount int) bool {
	if amount <= 0 {
		return true
	}
	cost := pricing.Cost(amount, s.tuning.CardMovePrice)
	if s.points < cost {
		return false
	}
	next, ok := s.player.Adjust(add, amount, sub, amount)
	if !ok {
		return false
	}
	s.spend(cost)
	s.setPlayer(next)
	return true
}

// BuyGauge buys units gauge units of c. A non-positive count is a successful no-op.
func (s *State) BuyGauge(c rps.Color, units int) bool {
	if units <= 0 {
		return true
	}
	if !c.Valid() {
		return false
	}
	before := s.points
	if !s.spend(pricing.Cost(units, s.tuning.GaugeBuyPrice)) {
		s.log.Debug("gauge purchase refused", zap.Stringer("color", c), zap.Int("units", units), zap.Int("points", s.points))
		return false
	}
	s.gauge.Add(c, s.tuning.GaugeBuyAmount*float64(units))
	s.log.Debug("gauge purchased",
		zap.Stringer("color", c),
		zap.Int("units", units),
		zap.Int("points_before", before),
		zap.Int("points_after", s.points),
		zap.Float64("gauge", s.gauge.Get(c)),
	)
	return true
}

// CommitDraft applies a whole adjustment draft atomically: deck changes,
// gauge purchases and the new reservation order. It fails without side
// effects if the deck would not total 30, the points do not cover the quote,
// or the order is not valid against the post-draft gauge and deck.
func (s *State) CommitDraft(d pricing.Draft, order []rps.Color) bool {
	next, err := d.Apply(s.player)
	if err != nil {
		return false
	}
	plan := pricing.Quote(s.tuning.Catalog(), d)
	if plan.Total > s.points {
		return false
	}
	gauge := *s.gauge
	for _, c := range rps.Colors {
		gauge.Add(c, plan.GaugeGain[c])
	}
	if !validOrder(order, &gauge, next, s.tuning.HandCount) {
		return false
	}

	s.spend(plan.Total)
	*s.gauge = gauge
	s.setPlayer(next)
	s.reserved = append([]rps.Color(nil), order...)
	s.log.Debug("draft committed",
		zap.Stringer("player", next),
		zap.Int("cost", plan.Total),
		zap.Int("points", s.points),
		zap.Int("reserved", len(order)),
	)
	return true
}

// ReserveForced queues one forced draw of c for the next round.
func (s *State) ReserveForced(c rps.Color) bool {
	order := append(s.Reserved(), c)
	if !validOrder(order, s.gauge, s.player, s.tuning.HandCount) {
		return false
	}
	s.reserved = order
	return true
}

// SetReservedOrder replaces the queue after validating the whole order.
func (s *State) SetReservedOrder(order []rps.Color) bool {
	if !validOrder(order, s.gauge, s.player, s.tuning.HandCount) {
		return false
	}
	s.reserved = append([]rps.Color(nil), order...)
	return true
}

// CancelReservations clears the queue and reports whether it held anything.
func (s *State) CancelReservations() bool {
	if len(s.reserved) == 0 {
		return false
	}
	s.reserved = nil
	return true
}

func (s *State) ClearReservations() { s.reserved = nil }

// Reserved returns a copy of the queue.
func (s *State) Reserved() []rps.Color {
	return append([]rps.Color(nil), s.reserved...)
}

// ReservationCap is how many forced draws of c the queue may hold right now.
func (s *State) ReservationCap(c rps.Color) int {
	return reservationCap(c, s.gauge, s.player, s.tuning.HandCount)
}

// setPlayer swaps the deck and drops reservations the new deck can no longer honor.
func (s *State) setPlayer(p rps.DeckProfile) {
	s.player = p
	s.refreshPlayerInfo()
	if len(s.reserved) == 0 {
		return
	}
	var kept []rps.Color
	var counts [rps.NumColors]int
	for _, c := range s.reserved {
		if counts[c] >= reservationCap(c, s.gauge, p, s.tuning.HandCount) {
			continue
		}
		counts[c]++
		kept = append(kept, c)
	}
	s.reserved = kept
}

func reservationCap(c rps.Color, g *rps.GaugeState, p rps.DeckProfile, handCount int) int {
	if !c.Valid() {
		return 0
	}
	return min(g.ChargedCount(c), p.Get(c), handCount)
}

// validOrder: every color is valid, no color exceeds its cap and the order
// fits in one hand.
func validOrder(order []rps.Color, g *rps.GaugeState, p rps.DeckProfile, handCount int) bool {
	if len(order) > handCount {
		return false
	}
	var counts [rps.NumColors]int
	for _, c := range order {
		if !c.Valid() {
			return false
		}
		counts[c]++
		if counts[c] > reservationCap(c, g, p, handCount) {
			return false
		}
	}
	return true
}
