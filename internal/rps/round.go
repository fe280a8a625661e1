package rps

import (
	"errors"
	"fmt"
)

var ErrHandMismatch = errors.New("player and enemy hands differ in length")

// RoundResult is an immutable snapshot of one round. Functions that transform
// a round copy the slices they change and return a new value.
type RoundResult struct {
	HandCount   int
	PlayerHands []Color
	EnemyHands  []Color
	Outcomes    []Outcome
	LossCount   int
	Clear       bool
	// MissingColors are colors in the player's deck that were never drawn, in declaration order.
	MissingColors []Color
}

// WinLoseTie counts each outcome.
func (rr RoundResult) WinLoseTie() (win, lose, tie int) {
	for _, o := range rr.Outcomes {
		switch o {
		case Win:
			win++
		case Lose:
			lose++
		case Tie:
			tie++
		}
	}
	return win, lose, tie
}

// NewRoundResult judges player against enemy hand by hand.
func NewRoundResult(player, enemy []Color, loseThresholdExclusive int, profile DeckProfile) (RoundResult, error) {
	if len(player) == 0 {
		return RoundResult{}, fmt.Errorf("%w: got 0", ErrInvalidHandCount)
	}
	if len(player) != len(enemy) {
		return RoundResult{}, fmt.Errorf("%w: %d vs %d", ErrHandMismatch, len(player), len(enemy))
	}
	return judgeRound(cloneColors(player), cloneColors(enemy), loseThresholdExclusive, profile), nil
}

// judgeRound owns the slices it is given.
func judgeRound(player, enemy []Color, loseThresholdExclusive int, profile DeckProfile) RoundResult {
	outcomes := make([]Outcome, len(player))
	losses := 0
	for i := range player {
		outcomes[i] = Judge(player[i], enemy[i])
		if outcomes[i] == Lose {
			losses++
		}
	}
	return RoundResult{
		HandCount:     len(player),
		PlayerHands:   player,
		EnemyHands:    enemy,
		Outcomes:      outcomes,
		LossCount:     losses,
		Clear:         losses < loseThresholdExclusive,
		MissingColors: missingColors(player, profile),
	}
}

// Simulate draws both hands, judges them and records missing colors.
// Only the player's draw honors forced placements.
func Simulate(player, enemy *Deck, handCount, loseThresholdExclusive int, rng RandomSource, forced Forced) (RoundResult, error) {
	p, err := player.DrawBatch(handCount, rng, forced)
	if err != nil {
		return RoundResult{}, fmt.Errorf("player draw: %w", err)
	}
	e, err := enemy.DrawBatch(handCount, rng, Forced{})
	if err != nil {
		return RoundResult{}, fmt.Errorf("enemy draw: %w", err)
	}
	return judgeRound(p, e, loseThresholdExclusive, player.Profile()), nil
}

func missingColors(hands []Color, profile DeckProfile) []Color {
	var seen [NumColors]bool
	for _, c := range hands {
		if c.Valid() {
			seen[c] = true
		}
	}
	missing := make([]Color, 0, NumColors)
	for _, c := range Colors {
		if profile.Has(c) && !seen[c] {
			missing = append(missing, c)
		}
	}
	return missing
}

func countLosses(outcomes []Outcome) int {
	n := 0
	for _, o := range outcomes {
		if o == Lose {
			n++
		}
	}
	return n
}

// withOutcomes returns a copy of rr carrying new outcomes and recomputed loss/clear.
func (rr RoundResult) withOutcomes(outcomes []Outcome, loseThresholdExclusive int) RoundResult {
	losses := countLosses(outcomes)
	return RoundResult{
		HandCount:     rr.HandCount,
		PlayerHands:   cloneColors(rr.PlayerHands),
		EnemyHands:    cloneColors(rr.EnemyHands),
		Outcomes:      outcomes,
		LossCount:     losses,
		Clear:         losses < loseThresholdExclusive,
		MissingColors: cloneColors(rr.MissingColors),
	}
}

func cloneColors(xs []Color) []Color {
	if xs == nil {
		return nil
	}
	return append([]Color(nil), xs...)
}

func cloneOutcomes(xs []Outcome) []Outcome {
	if xs == nil {
		return nil
	}
	return append([]Outcome(nil), xs...)
}
