package rps

import (
	"errors"
	"fmt"
)

var ErrInvalidHandCount = errors.New("hand count must be > 0")

// Forced describes guaranteed placements for the player's draw.
// Order wins over First when both are set.
type Forced struct {
	// Order puts Order[k] at hand slot k when the deck still has one at or after k.
	Order []Color
	// First is the single-slot variant: one card of this color goes to slot 0.
	First *Color
}

// Deck draws hands from a fresh shuffle of a profile's 30 cards.
// Only the composition persists between draws.
type Deck struct {
	profile DeckProfile
}

// NewDeck fails with ErrInvalidProfile unless the profile totals 30.
func NewDeck(profile DeckProfile) (*Deck, error) {
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("new deck: %w", err)
	}
	return &Deck{profile: profile}, nil
}

func (d *Deck) Profile() DeckProfile { return d.profile }

// buildPool expands the profile into its 30 color tokens in declaration order.
func (d *Deck) buildPool() []Color {
	pool := make([]Color, 0, DeckSize)
	for _, c := range Colors {
		for i := 0; i < d.profile.Get(c); i++ {
			pool = append(pool, c)
		}
	}
	if len(pool) != DeckSize {
		// NewDeck already validated; reaching this means the profile was corrupted
		panic(fmt.Sprintf("rps: deck pool has %d cards, want %d", len(pool), DeckSize))
	}
	return pool
}

// DrawBatch shuffles the pool, relocates forced colors and returns the first handCount cards.
func (d *Deck) DrawBatch(handCount int, rng RandomSource, forced Forced) ([]Color, error) {
	if handCount <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidHandCount, handCount)
	}
	if handCount > DeckSize {
		return nil, fmt.Errorf("%w: got %d, deck holds %d", ErrInvalidHandCount, handCount, DeckSize)
	}
	if rng == nil {
		rng = DefaultRNG()
	}

	pool := d.buildPool()
	Shuffle(pool, rng)

	switch {
	case len(forced.Order) > 0:
		kMax := min(handCount, len(forced.Order))
		for k := 0; k < kMax; k++ {
			c := forced.Order[k]
			if !d.profile.Has(c) {
				continue
			}
			if idx := indexFrom(pool, k, c); idx >= 0 {
				pool[k], pool[idx] = pool[idx], pool[k]
			}
		}
	case forced.First != nil:
		c := *forced.First
		if d.profile.Has(c) {
			if idx := indexFrom(pool, 0, c); idx >= 0 {
				pool[0], pool[idx] = pool[idx], pool[0]
			}
		}
	}

	hand := make([]Color, handCount)
	copy(hand, pool[:handCount])
	return hand, nil
}

func indexFrom(xs []Color, start int, c Color) int {
	for i := start; i < len(xs); i++ {
		if xs[i] == c {
			return i
		}
	}
	return -1
}
