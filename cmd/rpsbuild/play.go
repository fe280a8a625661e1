package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xtding233/rpsbuild/internal/archetype"
	"github.com/xtding233/rpsbuild/internal/rps"
	"github.com/xtding233/rpsbuild/internal/run"
)

var (
	playRounds int
	playPolicy string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play one run with an autopilot and print every round",
	Args:  cobra.NoArgs,
	RunE:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&playRounds, "rounds", 20, "stop after this many rounds even if the run is alive")
	playCmd.Flags().StringVar(&playPolicy, "policy", "reserve", "autopilot between rounds: reserve | reserve-only | passive")
}

func runPlay(cmd *cobra.Command, args []string) error {
	params, err := loadParams()
	if err != nil {
		return err
	}
	policy, err := run.ParsePolicy(playPolicy)
	if err != nil {
		return err
	}
	s, err := run.NewState(params.Run, params.Initial, newRNG(),
		archetype.NewGenerator(params.Generator), params.Gain, run.WithLogger(logger))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run %s  player %s (%s)  points %d\n", s.ID(), s.Player(), s.PlayerInfo().Label(), s.Points())
	for _, a := range archetype.All {
		e := s.Enemy(a)
		fmt.Fprintf(out, "  enemy %-14s %s  weight %.2f\n", e.Label(), e.Profile, weightOf(s.Environment().Weights, a))
	}

	for i := 0; i < playRounds && !s.IsGameOver(); i++ {
		policy.Between(s)
		rep, err := s.PlayNextRound()
		if err != nil {
			return err
		}
		printRound(out, rep)
	}

	fmt.Fprintf(out, "score %d  rounds %d  misses %d/%d  points %d\n",
		s.Score(), s.Round(), s.MissCount(), s.Tuning().MaxMiss, s.Points())
	for _, a := range archetype.All {
		st := s.HandStat(a)
		if st.Rounds == 0 {
			continue
		}
		fmt.Fprintf(out, "  vs %-8s rounds %3d  G %.2f  C %.2f  P %.2f\n",
			a, st.Rounds, st.Share(rps.Gu), st.Share(rps.Choki), st.Share(rps.Pa))
	}
	return nil
}

func weightOf(w archetype.Weights, a archetype.Archetype) float64 {
	switch a {
	case archetype.Heavy:
		return w.Heavy
	case archetype.Balance:
		return w.Balance
	default:
		return w.TwinTop
	}
}

func printRound(out io.Writer, rep run.RoundReport) {
	status := "MISS"
	if rep.Result.Clear {
		status = "CLEAR"
	}
	tag := ""
	if rep.Intro {
		tag = fmt.Sprintf(" intro x%d", rep.IntroAttempts)
	}
	fmt.Fprintf(out, "#%-3d %-14s you %s  foe %s  %s  losses %d %-5s%s\n",
		rep.Index, rep.Enemy.Label(),
		hands(rep.Result.PlayerHands), hands(rep.Result.EnemyHands), outcomes(rep.Result.Outcomes),
		rep.Result.LossCount, status, tag)

	var notes []string
	if len(rep.Forced) > 0 {
		notes = append(notes, "forced "+hands(rep.Forced))
	}
	if rep.Heavy.Applied {
		notes = append(notes, fmt.Sprintf("heavy flip @%d", rep.Heavy.Index))
	}
	if rep.TwinTop.WinFlipCount() > 0 {
		notes = append(notes, fmt.Sprintf("twin chain %v", rep.TwinTop.Indices))
	}
	if rep.Balance.Applied {
		notes = append(notes, fmt.Sprintf("balance moves %d", len(rep.Balance.Moves)))
	}
	for _, c := range rps.Colors {
		if g := rep.GaugeGain[c]; g > 0 {
			notes = append(notes, fmt.Sprintf("+%.2f %s", g, c))
		}
	}
	if len(notes) > 0 {
		fmt.Fprintf(out, "     %s\n", strings.Join(notes, ", "))
	}
}

func hands(cs []rps.Color) string {
	var b strings.Builder
	for _, c := range cs {
		b.WriteByte(c.String()[0])
	}
	return b.String()
}

func outcomes(xs []rps.Outcome) string {
	var b strings.Builder
	for _, o := range xs {
		switch o {
		case rps.Win:
			b.WriteByte('W')
		case rps.Lose:
			b.WriteByte('L')
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}
