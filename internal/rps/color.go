package rps

import (
	"fmt"
	"strings"
)

// Color is one of the three hand shapes a card can carry.
type Color uint8

const (
	Gu    Color = 0 // rock
	Choki Color = 1 // scissors
	Pa    Color = 2 // paper
)

// NumColors is fixed; the beats-cycle below only works for three.
const NumColors = 3

// Colors lists every color in declaration order. Ties are broken in this order.
var Colors = [NumColors]Color{Gu, Choki, Pa}

func (c Color) String() string {
	switch c {
	case Gu:
		return "Gu"
	case Choki:
		return "Choki"
	case Pa:
		return "Pa"
	}
	return fmt.Sprintf("Color(%d)", uint8(c))
}

// Valid reports whether c is one of the three declared colors.
func (c Color) Valid() bool { return c < NumColors }

// Beats reports whether c wins against other: Gu > Choki > Pa > Gu.
func (c Color) Beats(other Color) bool {
	return (c+1)%NumColors == other
}

// OtherTwo returns the two colors that are not c, in declaration order.
func OtherTwo(c Color) [2]Color {
	switch c {
	case Gu:
		return [2]Color{Choki, Pa}
	case Choki:
		return [2]Color{Gu, Pa}
	default:
		return [2]Color{Gu, Choki}
	}
}

// ParseColor accepts the color name (case-insensitive) or its English alias.
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gu", "rock", "g":
		return Gu, nil
	case "choki", "scissors", "c":
		return Choki, nil
	case "pa", "paper", "p":
		return Pa, nil
	}
	return 0, fmt.Errorf("unknown color %q", s)
}

// Outcome is the result of one hand from the player's point of view.
type Outcome uint8

const (
	Win  Outcome = 0
	Lose Outcome = 1
	Tie  Outcome = 2
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "Win"
	case Lose:
		return "Lose"
	case Tie:
		return "Tie"
	}
	return fmt.Sprintf("Outcome(%d)", uint8(o))
}

// Judge compares one player card against one enemy card.
func Judge(player, enemy Color) Outcome {
	if player == enemy {
		return Tie
	}
	if player.Beats(enemy) {
		return Win
	}
	return Lose
}
