package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/xtding233/rpsbuild/internal/archetype"
	"github.com/xtding233/rpsbuild/internal/rps"
)

var classifyCmd = &cobra.Command{
	Use:   "classify GU CHOKI PA",
	Short: "Print the archetype of a player deck",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		var n [rps.NumColors]int
		for i, a := range args {
			v, err := strconv.Atoi(a)
			if err != nil {
				return fmt.Errorf("count %q: %w", a, err)
			}
			n[i] = v
		}
		p, err := rps.NewDeckProfile(n[rps.Gu], n[rps.Choki], n[rps.Pa])
		if err != nil {
			return err
		}
		params, err := loadParams()
		if err != nil {
			return err
		}
		info := archetype.Classify(p, params.Run.Thresholds)
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", p, info.Label())
		return nil
	},
}

var (
	genMain   string
	genSecond string
	genCount  int
)

var generateCmd = &cobra.Command{
	Use:   "generate heavy|balance|twintop",
	Short: "Print generated enemy decks for an archetype",
	Args:  cobra.ExactArgs(1),
	RunE:  runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringVar(&genMain, "main", "", "main color (banner for balance); random when empty")
	f.StringVar(&genSecond, "second", "", "twintop second color; random when empty")
	f.IntVarP(&genCount, "count", "n", 1, "number of decks")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	a, err := archetype.Parse(args[0])
	if err != nil {
		return err
	}
	params, err := loadParams()
	if err != nil {
		return err
	}
	gen := archetype.NewGenerator(params.Generator)
	rng := newRNG()
	out := cmd.OutOrStdout()

	for i := 0; i < genCount; i++ {
		g, err := generateOne(gen, a, rng)
		if err != nil {
			return err
		}
		info := archetype.Classify(g.Profile, params.Run.Thresholds)
		suffix := ""
		if g.Fallback {
			suffix = "  (fallback)"
		}
		fmt.Fprintf(out, "%s  classifies as %s  attempts %d%s\n", g.Profile, info.Label(), g.Attempts, suffix)
	}
	return nil
}

func generateOne(gen *archetype.Generator, a archetype.Archetype, rng rps.RandomSource) (archetype.Generated, error) {
	if genMain == "" {
		return gen.Generate(a, rng)
	}
	first, err := rps.ParseColor(genMain)
	if err != nil {
		return archetype.Generated{}, err
	}
	switch a {
	case archetype.Heavy:
		return gen.Heavy(rng, first)
	case archetype.Balance:
		return gen.Balance(rng, &first)
	}
	var second rps.Color
	if genSecond == "" {
		second = rps.OtherTwo(first)[rng.Range(0, 2)]
	} else if second, err = rps.ParseColor(genSecond); err != nil {
		return archetype.Generated{}, err
	}
	return gen.TwinTop(rng, first, second)
}
