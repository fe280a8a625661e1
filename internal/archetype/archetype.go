// Package archetype holds the three deck templates shared by enemies and the
// player: how enemy decks are generated and rolled, and how a player deck is
// classified.
package archetype

import (
	"fmt"
	"strings"

	"github.com/xtding233/rpsbuild/internal/rps"
)

// Archetype is a strategic deck category.
type Archetype uint8

const (
	Heavy   Archetype = 0 // one dominant color
	Balance Archetype = 1 // near-even split
	TwinTop Archetype = 2 // two thick colors
)

// Count of archetypes; arrays indexed by Archetype use it.
const Count = 3

// All lists the archetypes in declaration order.
var All = [Count]Archetype{Heavy, Balance, TwinTop}

func (a Archetype) String() string {
	switch a {
	case Heavy:
		return "Heavy"
	case Balance:
		return "Balance"
	case TwinTop:
		return "TwinTop"
	}
	return fmt.Sprintf("Archetype(%d)", uint8(a))
}

func (a Archetype) Valid() bool { return a < Count }

// Parse accepts "heavy", "balance" or "twintop" (also twin_top, twin-top), any case.
func Parse(s string) (Archetype, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "heavy":
		return Heavy, nil
	case "balance":
		return Balance, nil
	case "twintop", "twin_top", "twin-top":
		return TwinTop, nil
	}
	return 0, fmt.Errorf("unknown archetype %q", s)
}

// EnemyLabel is the display name of an enemy slot, e.g. "Gu Heavy".
func EnemyLabel(a Archetype, main rps.Color) string {
	return fmt.Sprintf("%s %s", main, a)
}
