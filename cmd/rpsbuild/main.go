// Command rpsbuild plays, simulates and inspects RPS deck-building runs.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/xtding233/rpsbuild/internal/rps"
	"github.com/xtding233/rpsbuild/internal/tuning"
)

var (
	// Global flags
	configDir string
	preset    string
	seed      uint64
	verbose   bool

	logger *zap.Logger
	loader *tuning.Loader
	envCfg tuning.Env
)

var rootCmd = &cobra.Command{
	Use:   "rpsbuild",
	Short: "Rock-paper-scissors deck-building rules engine",
	Long: `rpsbuild runs the round engine of the RPS roguelike: enemy archetypes,
forced draws from the gauge, archetype bonuses and the point economy.

Tuning is read from <config-dir>/tuning/default.yaml with an optional preset
from <config-dir>/tuning/presets/<name>.yaml merged over it.
RPSBUILD_* environment variables (or a .env file) fill in unset flags.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load() // .env is optional

		var err error
		envCfg, err = tuning.ParseEnv()
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		if !flags.Changed("config-dir") {
			configDir = envCfg.ConfigDir
		}
		if !flags.Changed("preset") && envCfg.Preset != "" {
			preset = envCfg.Preset
		}
		if !flags.Changed("seed") && envCfg.Seed != 0 {
			seed = envCfg.Seed
		}

		config := zap.NewProductionConfig()
		if verbose {
			config = zap.NewDevelopmentConfig()
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		loader = tuning.NewLoader(configDir)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configDir, "config-dir", "configs", "directory holding tuning/default.yaml")
	pf.StringVar(&preset, "preset", "", "tuning preset under tuning/presets")
	pf.Uint64Var(&seed, "seed", 0, "RNG seed; 0 uses a crypto-seeded source")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(playCmd, simulateCmd, classifyCmd, generateCmd)
}

// loadParams resolves the selected preset and applies env overrides.
func loadParams() (tuning.Params, error) {
	p, err := loader.Load(preset)
	if err != nil {
		return tuning.Params{}, fmt.Errorf("load tuning %q: %w", preset, err)
	}
	envCfg.Overrides().Apply(&p)
	if err := p.Run.Validate(); err != nil {
		return tuning.Params{}, err
	}
	logger.Debug("tuning loaded",
		zap.String("config_dir", configDir),
		zap.String("preset", preset),
		zap.String("version", p.Version),
		zap.Int("hand_count", p.Run.HandCount),
		zap.Int("max_miss", p.Run.MaxMiss),
	)
	return p, nil
}

func newRNG() rps.RandomSource {
	if seed == 0 {
		return rps.DefaultRNG()
	}
	return rps.NewSeededRNG(seed)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
