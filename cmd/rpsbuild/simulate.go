package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xtding233/rpsbuild/internal/archetype"
	"github.com/xtding233/rpsbuild/internal/run"
	"github.com/xtding233/rpsbuild/internal/tuning"
)

var (
	simTrials   int
	simPolicy   string
	simRoundCap int
	simWatch    bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Monte-Carlo many runs and print score and length statistics",
	Long: `Plays --trials complete runs with an autopilot policy and reports the
distribution of final scores and of rounds played.

With --watch the command stays up and re-runs the simulation every time a
tuning file changes.`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	f := simulateCmd.Flags()
	f.IntVar(&simTrials, "trials", 1000, "number of runs")
	f.StringVar(&simPolicy, "policy", "reserve", "autopilot: reserve | reserve-only | passive")
	f.IntVar(&simRoundCap, "round-cap", run.DefaultRoundCap, "stop a run after this many rounds")
	f.BoolVar(&simWatch, "watch", false, "re-run when tuning files change")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	policy, err := run.ParsePolicy(simPolicy)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if err := simulateOnce(out, policy); err != nil {
		return err
	}
	if !simWatch {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watchAndSimulate(ctx, out, policy)
}

func simulateOnce(out io.Writer, policy run.Policy) error {
	params, err := loadParams()
	if err != nil {
		return err
	}
	sp := params.SimParams()
	sp.RoundCap = simRoundCap
	// per-round debug logs from thousands of runs drown the summary
	sp.Logger = logger.WithOptions(zap.IncreaseLevel(zap.InfoLevel))

	res, err := run.RunMonteCarlo(sp, policy, simTrials, seed)
	if err != nil {
		return err
	}
	printSim(out, params, res)
	return nil
}

func watchAndSimulate(ctx context.Context, out io.Writer, policy run.Policy) error {
	changed := make(chan string, 1)
	w, err := tuning.NewWatcher(loader, func(path string) {
		select {
		case changed <- path:
		default: // a rerun is already queued
		}
	}, logger)
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		return err
	}
	defer w.Stop()

	fmt.Fprintln(out, "watching tuning files, Ctrl-C to stop")
	for {
		select {
		case <-ctx.Done():
			return nil
		case path := <-changed:
			fmt.Fprintf(out, "\n%s changed\n", path)
			if err := simulateOnce(out, policy); err != nil {
				// keep watching; the next save may fix the file
				logger.Error("simulation failed", zap.Error(err))
			}
		}
	}
}

func printSim(out io.Writer, params tuning.Params, res run.SimResult) {
	label := preset
	if label == "" {
		label = "default"
	}
	fmt.Fprintf(out, "tuning %s  policy %s  trials %d  capped %d\n", label, res.Policy, res.Trials, res.Capped)
	fmt.Fprintf(out, "  hand %d  threshold %d  max miss %d  initial %s\n",
		params.Run.HandCount, params.Run.LoseThresholdExclusive, params.Run.MaxMiss, params.Initial)
	printStats(out, "score", res.Score)
	printStats(out, "rounds", res.Rounds)

	total := 0
	for _, n := range res.EnemyRounds {
		total += n
	}
	if total == 0 {
		return
	}
	for _, a := range archetype.All {
		fmt.Fprintf(out, "  faced %-8s %6.2f%%\n", a, 100*float64(res.EnemyRounds[a])/float64(total))
	}
}

func printStats(out io.Writer, name string, s run.Stats) {
	fmt.Fprintf(out, "  %-6s mean %7.2f  sd %6.2f  p50 %6.1f  p90 %6.1f  p99 %6.1f\n",
		name, s.Mean, s.StdDev, s.P50, s.P90, s.P99)
}
