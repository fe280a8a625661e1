package rps

import (
	"errors"
	"fmt"
)

// DeckSize is the only supported deck size.
const DeckSize = 30

var ErrInvalidProfile = errors.New("invalid deck profile; counts must be >= 0 and total 30")

// DeckProfile is the color composition of a 30-card deck.
// It is a value: adjustments return a new profile and leave the receiver alone.
type DeckProfile struct {
	counts [NumColors]int
}

// NewDeckProfile builds a profile and checks the 30-card invariant.
func NewDeckProfile(gu, choki, pa int) (DeckProfile, error) {
	p := DeckProfile{counts: [NumColors]int{gu, choki, pa}}
	if err := p.Validate(); err != nil {
		return DeckProfile{}, err
	}
	return p, nil
}

// MustDeckProfile is NewDeckProfile for literals known to be valid.
func MustDeckProfile(gu, choki, pa int) DeckProfile {
	p, err := NewDeckProfile(gu, choki, pa)
	if err != nil {
		panic(err)
	}
	return p
}

// Validate reports ErrInvalidProfile when a count is negative or the total is not 30.
func (p DeckProfile) Validate() error {
	for _, n := range p.counts {
		if n < 0 {
			return fmt.Errorf("%w: got %v", ErrInvalidProfile, p)
		}
	}
	if p.Total() != DeckSize {
		return fmt.Errorf("%w: got total %d", ErrInvalidProfile, p.Total())
	}
	return nil
}

func (p DeckProfile) Get(c Color) int {
	if !c.Valid() {
		return 0
	}
	return p.counts[c]
}

// Has reports whether the deck holds at least one card of c.
func (p DeckProfile) Has(c Color) bool { return p.Get(c) > 0 }

func (p DeckProfile) Total() int {
	return p.counts[Gu] + p.counts[Choki] + p.counts[Pa]
}

// Counts returns the per-color counts indexed by Color.
func (p DeckProfile) Counts() [NumColors]int { return p.counts }

func (p DeckProfile) String() string {
	return fmt.Sprintf("Gu=%d Choki=%d Pa=%d", p.counts[Gu], p.counts[Choki], p.counts[Pa])
}

// Adjust moves cards between two colors: +addAmount of add, -subAmount of sub.
// The amounts must be equal and non-negative and sub may not drop below zero.
// On failure p is returned unchanged with ok=false.
func (p DeckProfile) Adjust(add Color, addAmount int, sub Color, subAmount int) (DeckProfile, bool) {
	if addAmount < 0 || subAmount < 0 {
		return p, false
	}
	if addAmount == 0 && subAmount == 0 {
		return p, true
	}
	if addAmount != subAmount || !add.Valid() || !sub.Valid() {
		return p, false
	}
	if p.counts[sub]-subAmount < 0 {
		return p, false
	}
	out := p
	out.counts[add] += addAmount
	out.counts[sub] -= subAmount
	if out.Validate() != nil {
		return p, false
	}
	return out, true
}

// AddAndAutoSubtract adds amount cards of add and takes the same number from
// the other two colors, the larger one first (declaration order on ties).
func (p DeckProfile) AddAndAutoSubtract(add Color, amount int) (DeckProfile, bool) {
	if amount <= 0 || !add.Valid() {
		return p, false
	}
	others := OtherTwo(add)
	first, second := others[0], others[1]
	if p.counts[second] > p.counts[first] {
		first, second = second, first
	}

	out := p
	out.counts[add] += amount
	need := amount
	for _, c := range [2]Color{first, second} {
		take := min(out.counts[c], need)
		out.counts[c] -= take
		need -= take
	}
	if need > 0 {
		return p, false
	}
	if out.Validate() != nil {
		return p, false
	}
	return out, true
}
