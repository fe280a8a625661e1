package rps

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exhaustiveBalance ranks every assignment of charges to hands. It is the
// reference the memoised search must agree with on small rounds.
func exhaustiveBalance(rr RoundResult, profile DeckProfile, budget [NumColors]int) []balanceSwap {
	oldLosses := countLosses(rr.Outcomes)
	oldMissing := len(rr.MissingColors)
	hands := cloneColors(rr.PlayerHands)
	var swaps []balanceSwap
	var best *balanceCandidate

	var walk func(i int)
	walk = func(i int) {
		if i == len(hands) {
			if len(swaps) == 0 {
				return
			}
			losses := 0
			for k := range hands {
				if Judge(hands[k], rr.EnemyHands[k]) == Lose {
					losses++
				}
			}
			cand := balanceCandidate{
				swaps:     append([]balanceSwap(nil), swaps...),
				lossDelta: oldLosses - losses,
				improves:  len(missingColors(hands, profile)) > oldMissing,
			}
			if !cand.improves && cand.lossDelta <= 0 {
				return
			}
			if best == nil || cand.beats(best) {
				best = &cand
			}
			return
		}
		walk(i + 1)
		for _, c := range Colors {
			if c == rr.PlayerHands[i] || budget[c] == 0 {
				continue
			}
			hands[i] = c
			budget[c]--
			swaps = append(swaps, balanceSwap{index: i, color: c})
			walk(i + 1)
			swaps = swaps[:len(swaps)-1]
			budget[c]++
			hands[i] = rr.PlayerHands[i]
		}
	}
	walk(0)
	if best == nil {
		return nil
	}
	return best.swaps
}

func TestBalanceJointMatchesExhaustiveSearch(t *testing.T) {
	rng := NewSeededRNG(2024)
	profiles := []DeckProfile{
		MustDeckProfile(10, 10, 10),
		MustDeckProfile(20, 10, 0),
		MustDeckProfile(0, 0, 30),
		MustDeckProfile(14, 14, 2),
	}

	for i := 0; i < 400; i++ {
		n := 1 + rng.Range(0, 7)
		player := make([]Color, n)
		enemy := make([]Color, n)
		for k := 0; k < n; k++ {
			player[k] = Colors[rng.Range(0, NumColors)]
			enemy[k] = Colors[rng.Range(0, NumColors)]
		}
		profile := profiles[i%len(profiles)]
		rr, err := NewRoundResult(player, enemy, 3, profile)
		require.NoError(t, err)

		var charges []Color
		var budget [NumColors]int
		for k := rng.Range(1, 5); k > 0; k-- {
			c := Colors[rng.Range(0, NumColors)]
			charges = append(charges, c)
			budget[c]++
		}

		want := exhaustiveBalance(rr, profile, budget)
		_, res := ApplyBalanceJoint(rr, 3, profile, charges)
		var got []balanceSwap
		for _, m := range res.Moves {
			got = append(got, balanceSwap{index: m.Index, color: m.To})
		}
		if diff := cmp.Diff(want, got, cmp.AllowUnexported(balanceSwap{})); diff != "" {
			t.Fatalf("case %d player %v enemy %v charges %v (-want +got):\n%s", i, player, enemy, charges, diff)
		}
		assert.Equal(t, len(want) > 0, res.Applied, "case %d", i)
	}
}

func TestBalanceJointFullHandIsFast(t *testing.T) {
	const n = DeckSize
	player := make([]Color, n)
	enemy := make([]Color, n)
	charges := make([]Color, n)
	for k := 0; k < n; k++ {
		player[k] = Colors[k%NumColors]
		enemy[k] = Colors[(k+2)%NumColors] // beats player[k]
		charges[k] = []Color{Gu, Choki}[k%2]
	}
	profile := MustDeckProfile(10, 10, 10)
	rr, err := NewRoundResult(player, enemy, 3, profile)
	require.NoError(t, err)

	start := time.Now()
	out, res := ApplyBalanceJoint(rr, 3, profile, charges)
	assert.Less(t, time.Since(start), 5*time.Second)

	require.True(t, res.Applied)
	assert.Less(t, out.LossCount, rr.LossCount)
	used := res.Used[Gu] + res.Used[Choki]
	assert.Equal(t, n, used+res.Unused[Gu]+res.Unused[Choki])
}
