package run

import (
	"fmt"
	"math"
	"slices"

	"go.uber.org/zap"

	"github.com/xtding233/rpsbuild/internal/archetype"
	"github.com/xtding233/rpsbuild/internal/rps"
)

// DefaultRoundCap stops a simulated run that never reaches game over.
const DefaultRoundCap = 1000

// SimParams describes the runs a Monte-Carlo simulation plays.
type SimParams struct {
	Tuning    Tuning
	Initial   rps.DeckProfile
	Generator archetype.GeneratorConfig
	Gain      rps.GainFormula
	RoundCap  int // <=0 means DefaultRoundCap
	Logger    *zap.Logger
}

// Stats summarizes one integer metric over all trials.
type Stats struct {
	Mean    float64
	Var     float64 // population variance
	StdDev  float64
	P50     float64
	P90     float64
	P99     float64
	Samples []int // per-trial values in trial order
}

// SimResult holds the per-run score and length distributions.
type SimResult struct {
	Trials int
	Policy string
	Score  Stats
	Rounds Stats
	// Capped counts runs stopped by the round cap instead of game over.
	Capped int
	// EnemyRounds counts how often each archetype was faced, intro excluded.
	EnemyRounds [archetype.Count]int
}

func calcStats(xs []int) Stats {
	if len(xs) == 0 {
		return Stats{}
	}
	var sum float64
	for _, v := range xs {
		sum += float64(v)
	}
	mean := sum / float64(len(xs))
	var sq float64
	for _, v := range xs {
		sq += (float64(v) - mean) * (float64(v) - mean)
	}
	variance := sq / float64(len(xs))

	sorted := slices.Clone(xs)
	slices.Sort(sorted)
	return Stats{
		Mean:    mean,
		Var:     variance,
		StdDev:  math.Sqrt(variance),
		P50:     quantile(sorted, 0.50),
		P90:     quantile(sorted, 0.90),
		P99:     quantile(sorted, 0.99),
		Samples: xs,
	}
}

// quantile interpolates linearly between the closest ranks of sorted.
func quantile(sorted []int, q float64) float64 {
	last := len(sorted) - 1
	switch {
	case last == 0 || q <= 0:
		return float64(sorted[0])
	case q >= 1:
		return float64(sorted[last])
	}
	pos := q * float64(last)
	lo := int(pos)
	if lo >= last {
		return float64(sorted[last])
	}
	frac := pos - float64(lo)
	return float64(sorted[lo]) + frac*float64(sorted[lo+1]-sorted[lo])
}

type trialOutcome struct {
	score  int
	rounds int
	capped bool
	enemy  [archetype.Count]int
}

// simulateOne plays one run to game over or the round cap.
func simulateOne(p SimParams, policy Policy, rng rps.RandomSource, id string) (trialOutcome, error) {
	opts := []Option{WithID(id)}
	if p.Logger != nil {
		opts = append(opts, WithLogger(p.Logger))
	}
	s, err := NewState(p.Tuning, p.Initial, rng, archetype.NewGenerator(p.Generator), p.Gain, opts...)
	if err != nil {
		return trialOutcome{}, err
	}

	limit := p.RoundCap
	if limit <= 0 {
		limit = DefaultRoundCap
	}
	var out trialOutcome
	for !s.IsGameOver() {
		if s.Round() >= limit {
			out.capped = true
			break
		}
		policy.Between(s)
		rep, err := s.PlayNextRound()
		if err != nil {
			return trialOutcome{}, err
		}
		if !rep.Intro {
			out.enemy[rep.Enemy.Archetype]++
		}
	}
	out.score = s.Score()
	out.rounds = s.Round()
	return out, nil
}

// RunMonteCarlo repeats whole runs with policy and returns summary stats.
// All trials share one RNG seeded with seed; a zero seed uses rps.DefaultRNG.
func RunMonteCarlo(p SimParams, policy Policy, trials int, seed uint64) (SimResult, error) {
	if policy == nil {
		policy = Passive{}
	}
	res := SimResult{Policy: policy.Name()}
	if trials <= 0 {
		return res, nil
	}
	var rng rps.RandomSource
	if seed == 0 {
		rng = rps.DefaultRNG()
	} else {
		rng = rps.NewSeededRNG(seed)
	}

	scores := make([]int, trials)
	rounds := make([]int, trials)
	for i := 0; i < trials; i++ {
		out, err := simulateOne(p, policy, rng, fmt.Sprintf("sim-%d", i))
		if err != nil {
			return SimResult{}, fmt.Errorf("trial %d: %w", i, err)
		}
		scores[i] = out.score
		rounds[i] = out.rounds
		if out.capped {
			res.Capped++
		}
		for a, n := range out.enemy {
			res.EnemyRounds[a] += n
		}
	}
	res.Trials = trials
	res.Score = calcStats(scores)
	res.Rounds = calcStats(rounds)
	return res, nil
}
