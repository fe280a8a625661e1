package rps

// HeavyBonus records the single Lose->Win flip granted to a Heavy deck.
type HeavyBonus struct {
	Applied     bool
	Index       int // -1 when not applied
	PlayerColor Color
}

// ApplyHeavyFirstLoseToWin flips the first lost hand played with mainColor.
// At most one hand changes; without such a hand rr is returned as is.
func ApplyHeavyFirstLoseToWin(rr RoundResult, loseThresholdExclusive int, mainColor Color) (RoundResult, HeavyBonus) {
	bonus := HeavyBonus{Index: -1}

	n := min(len(rr.Outcomes), len(rr.PlayerHands))
	first := -1
	for i := 0; i < n; i++ {
		if rr.Outcomes[i] == Lose && rr.PlayerHands[i] == mainColor {
			first = i
			break
		}
	}
	if first < 0 {
		return rr, bonus
	}

	outcomes := cloneOutcomes(rr.Outcomes)
	outcomes[first] = Win

	bonus.Applied = true
	bonus.Index = first
	bonus.PlayerColor = rr.PlayerHands[first]
	return rr.withOutcomes(outcomes, loseThresholdExclusive), bonus
}

// TwinTopBonus lists every hand index turned from Lose into Win.
type TwinTopBonus struct {
	Indices []int
}

func (b TwinTopBonus) WinFlipCount() int { return len(b.Indices) }

// ApplyTwinTopChainSecondLoseToWin looks at every window of three consecutive
// hands. When the player alternated main/second/main or second/main/second and
// lost the last hand of the window, that hand becomes a win.
func ApplyTwinTopChainSecondLoseToWin(rr RoundResult, loseThresholdExclusive int, mainColor, secondColor Color) (RoundResult, TwinTopBonus) {
	var bonus TwinTopBonus

	n := min(len(rr.Outcomes), len(rr.PlayerHands))
	if n < 3 {
		return rr, bonus
	}

	outcomes := cloneOutcomes(rr.Outcomes)
	for i := 2; i < n; i++ {
		a, b, c := rr.PlayerHands[i-2], rr.PlayerHands[i-1], rr.PlayerHands[i]
		chain := (a == mainColor && b == secondColor && c == mainColor) ||
			(a == secondColor && b == mainColor && c == secondColor)
		if !chain {
			continue
		}
		// only the last hand of the window is judged
		if outcomes[i] == Lose {
			outcomes[i] = Win
			bonus.Indices = append(bonus.Indices, i)
		}
	}
	if len(bonus.Indices) == 0 {
		return rr, bonus
	}
	return rr.withOutcomes(outcomes, loseThresholdExclusive), bonus
}
