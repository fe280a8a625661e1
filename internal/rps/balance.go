package rps

// BalanceMove is one played hand replaced by a gauge charge.
type BalanceMove struct {
	Index   int
	From    Color
	To      Color
	Outcome Outcome // outcome at Index after the replacement
	// CreatedMissing: From is no longer drawn anywhere in the round.
	CreatedMissing bool
}

// BalanceResult describes what a Balance replacement did with its charges.
type BalanceResult struct {
	Applied bool
	Moves   []BalanceMove // ascending by Index
	Used    [NumColors]int
	// Unused charges were offered but not spent; callers refund them.
	Unused [NumColors]int
	// CreatedMissing: the round ends with more missing colors than before.
	CreatedMissing bool
}

// ApplyBalanceReplaceOneHand spends one charge of replaceColor to overwrite the
// single hand that helps most. It is ApplyBalanceJoint with one charge.
func ApplyBalanceReplaceOneHand(rr RoundResult, loseThresholdExclusive int, profile DeckProfile, replaceColor Color) (RoundResult, BalanceResult) {
	return ApplyBalanceJoint(rr, loseThresholdExclusive, profile, []Color{replaceColor})
}

// ApplyBalanceJoint considers every way of spending the given charges (one
// color per charge) on distinct hands and applies the best one. The search is
// polynomial in the hand count.
//
// Ranking, highest priority first:
//  1. creates a new missing color
//  2. when it does, does not add losses
//  3. larger loss reduction
//  4. fewer charges spent
//  5. earlier (index, color) sequence
//
// A candidate is only taken if it creates a missing color or removes a loss.
func ApplyBalanceJoint(rr RoundResult, loseThresholdExclusive int, profile DeckProfile, charges []Color) (RoundResult, BalanceResult) {
	var res BalanceResult
	var budget [NumColors]int
	for _, c := range charges {
		if c.Valid() {
			budget[c]++
		}
	}
	res.Unused = budget

	n := min(rr.HandCount, len(rr.PlayerHands), len(rr.EnemyHands))
	if n <= 0 || len(charges) == 0 {
		return rr, res
	}

	best := searchBalance(rr.PlayerHands[:n], rr.EnemyHands[:n], profile, budget,
		countLosses(rr.Outcomes), len(rr.MissingColors))
	if best == nil {
		return rr, res
	}

	player := cloneColors(rr.PlayerHands)
	for _, sw := range best.swaps {
		player[sw.index] = sw.color
	}
	out := judgeRound(player, cloneColors(rr.EnemyHands), loseThresholdExclusive, profile)

	wasMissing := colorSet(rr.MissingColors)
	nowMissing := colorSet(out.MissingColors)
	for _, sw := range best.swaps {
		from := rr.PlayerHands[sw.index]
		res.Moves = append(res.Moves, BalanceMove{
			Index:          sw.index,
			From:           from,
			To:             sw.color,
			Outcome:        out.Outcomes[sw.index],
			CreatedMissing: nowMissing[from] && !wasMissing[from],
		})
		res.Used[sw.color]++
		res.Unused[sw.color]--
	}
	res.Applied = true
	res.CreatedMissing = len(out.MissingColors) > len(rr.MissingColors)
	return out, res
}

type balanceSwap struct {
	index int
	color Color
}

type balanceCandidate struct {
	swaps     []balanceSwap
	lossDelta int
	improves  bool
}

// searchBalance ranks every way of spending budget on hands and returns the
// best candidate, or nil when none creates a missing color or removes a loss.
//
// Whether a missing color is created depends only on the set of colors drawn
// at the end of the round, so the search runs once per final color set. Inside
// one set the ranking reduces to most losses removed, then fewest swaps, then
// earliest (index, color) sequence, which a memoised walk over (hand index,
// remaining charges, colors drawn so far) solves exactly.
func searchBalance(orig, enemy []Color, profile DeckProfile, budget [NumColors]int, oldLosses, oldMissing int) *balanceCandidate {
	origLosses := 0
	for k := range orig {
		if Judge(orig[k], enemy[k]) == Lose {
			origLosses++
		}
	}

	var best *balanceCandidate
	for target := colorMask(0); target < 1<<NumColors; target++ {
		s := balanceSearch{
			orig:   orig,
			enemy:  enemy,
			target: target,
			memo:   make(map[balanceKey]balanceStep),
		}
		root := s.solve(0, budget, 0)
		if !root.ok {
			continue
		}
		missing := 0
		for _, c := range Colors {
			if profile.Has(c) && !target.has(c) {
				missing++
			}
		}
		cand := balanceCandidate{
			lossDelta: oldLosses - (origLosses - root.gain),
			improves:  missing > oldMissing,
		}
		if !cand.improves && cand.lossDelta <= 0 {
			continue
		}
		cand.swaps = s.trace(budget)
		if len(cand.swaps) == 0 {
			continue
		}
		if best == nil || cand.beats(best) {
			best = &cand
		}
	}
	return best
}

type colorMask uint8

func (m colorMask) has(c Color) bool { return c.Valid() && m&(1<<c) != 0 }

func (m colorMask) with(c Color) colorMask {
	if !c.Valid() {
		return m
	}
	return m | 1<<c
}

type balanceKey struct {
	index     int
	remaining [NumColors]int
	drawn     colorMask
}

// balanceStep is the best way to finish the round from one state.
type balanceStep struct {
	ok     bool // the target color set is still reachable
	gain   int  // losses removed from here to the end
	swaps  int
	choice int // -1 keeps the hand, otherwise the Color written
}

type balanceSearch struct {
	orig   []Color
	enemy  []Color
	target colorMask
	memo   map[balanceKey]balanceStep
}

// clampRemaining caps each color at the hands left; more charges than that
// cannot be spent and would only split identical states.
func (s *balanceSearch) clampRemaining(i int, r [NumColors]int) [NumColors]int {
	left := len(s.orig) - i
	for c := range r {
		r[c] = max(0, min(r[c], left))
	}
	return r
}

func (s *balanceSearch) solve(i int, remaining [NumColors]int, drawn colorMask) balanceStep {
	if drawn&^s.target != 0 {
		return balanceStep{}
	}
	if i == len(s.orig) {
		return balanceStep{ok: drawn == s.target, choice: -1}
	}
	remaining = s.clampRemaining(i, remaining)
	key := balanceKey{index: i, remaining: remaining, drawn: drawn}
	if v, ok := s.memo[key]; ok {
		return v
	}

	best := balanceStep{choice: -1}
	if next := s.solve(i+1, remaining, drawn.with(s.orig[i])); next.ok {
		best = balanceStep{ok: true, gain: next.gain, swaps: next.swaps, choice: -1}
	}
	lostBefore := Judge(s.orig[i], s.enemy[i]) == Lose
	for _, c := range Colors {
		if c == s.orig[i] || remaining[c] == 0 {
			continue
		}
		r := remaining
		r[c]--
		next := s.solve(i+1, r, drawn.with(c))
		if !next.ok {
			continue
		}
		gain := next.gain
		if lostBefore {
			gain++
		}
		if Judge(c, s.enemy[i]) == Lose {
			gain--
		}
		cand := balanceStep{ok: true, gain: gain, swaps: next.swaps + 1, choice: int(c)}
		// On a full tie a swap here sorts before keeping the hand, and colors
		// are tried in ascending order.
		if !best.ok || cand.gain > best.gain ||
			(cand.gain == best.gain && cand.swaps < best.swaps) ||
			(cand.gain == best.gain && cand.swaps == best.swaps && best.choice < 0) {
			best = cand
		}
	}
	s.memo[key] = best
	return best
}

// trace replays the memoised choices from the start of the round.
func (s *balanceSearch) trace(budget [NumColors]int) []balanceSwap {
	var swaps []balanceSwap
	remaining := budget
	var drawn colorMask
	for i := range s.orig {
		step := s.solve(i, remaining, drawn)
		remaining = s.clampRemaining(i, remaining)
		if step.choice < 0 {
			drawn = drawn.with(s.orig[i])
			continue
		}
		c := Color(step.choice)
		swaps = append(swaps, balanceSwap{index: i, color: c})
		remaining[c]--
		drawn = drawn.with(c)
	}
	return swaps
}

// beats reports whether c ranks strictly above other.
func (c *balanceCandidate) beats(other *balanceCandidate) bool {
	if c.improves != other.improves {
		return c.improves
	}
	if c.improves {
		cSafe, oSafe := c.lossDelta >= 0, other.lossDelta >= 0
		if cSafe != oSafe {
			return cSafe
		}
	}
	if c.lossDelta != other.lossDelta {
		return c.lossDelta > other.lossDelta
	}
	if len(c.swaps) != len(other.swaps) {
		return len(c.swaps) < len(other.swaps)
	}
	for k := range c.swaps {
		a, b := c.swaps[k], other.swaps[k]
		if a.index != b.index {
			return a.index < b.index
		}
		if a.color != b.color {
			return a.color < b.color
		}
	}
	return false
}

func colorSet(xs []Color) [NumColors]bool {
	var set [NumColors]bool
	for _, c := range xs {
		if c.Valid() {
			set[c] = true
		}
	}
	return set
}
