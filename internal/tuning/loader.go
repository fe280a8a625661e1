package tuning

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Paths locates the tuning files under a config directory.
type Paths struct {
	BaseDir string // e.g. ./configs
}

func (p Paths) Dir() string { return filepath.Join(p.BaseDir, "tuning") }

func (p Paths) PresetDir() string { return filepath.Join(p.Dir(), "presets") }

func (p Paths) DefaultPath() string {
	return filepath.Join(p.Dir(), "default.yaml")
}

func (p Paths) PresetPath(preset string) string {
	return filepath.Join(p.PresetDir(), preset+".yaml")
}

const defaultKey = "$default"

// Loader reads tuning YAML and merges default → preset.
type Loader struct {
	paths Paths

	mu    sync.RWMutex
	cache map[string]RawConfig // key: preset name or "$default"
}

// NewLoader creates a loader rooted at baseDir.
func NewLoader(baseDir string) *Loader {
	return &Loader{
		paths: Paths{BaseDir: baseDir},
		cache: make(map[string]RawConfig),
	}
}

func (l *Loader) Paths() Paths { return l.paths }

// LoadMerged returns default.yaml with the preset merged over it. An empty
// preset returns the default file alone. Missing files count as empty.
func (l *Loader) LoadMerged(preset string) (RawConfig, error) {
	key := preset
	if key == "" {
		key = defaultKey
	}
	l.mu.RLock()
	if cfg, ok := l.cache[key]; ok {
		l.mu.RUnlock()
		return cfg, nil
	}
	l.mu.RUnlock()

	defCfg, err := readYAML(l.paths.DefaultPath())
	if err != nil {
		return RawConfig{}, fmt.Errorf("read default: %w", err)
	}
	merged := defCfg
	if preset != "" {
		presetCfg, err := readYAML(l.paths.PresetPath(preset))
		if err != nil {
			return RawConfig{}, fmt.Errorf("read preset %q: %w", preset, err)
		}
		merged = mergeRaw(defCfg, presetCfg)
	}

	l.mu.Lock()
	l.cache[defaultKey] = defCfg
	l.cache[key] = merged
	l.mu.Unlock()
	return merged, nil
}

// Load merges, validates and resolves a preset into engine parameters.
func (l *Loader) Load(preset string) (Params, error) {
	raw, err := l.LoadMerged(preset)
	if err != nil {
		return Params{}, err
	}
	return Resolve(raw)
}

// Invalidate clears the cache. The watcher calls it when a file changes.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]RawConfig)
}

// readYAML loads one file. Missing files return a zero config and no error.
func readYAML(path string) (RawConfig, error) {
	var cfg RawConfig
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawConfig{}, nil
		}
		return RawConfig{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// pick returns b when it is set, a otherwise.
func pick[T any](a, b *T) *T {
	if b != nil {
		return b
	}
	return a
}

// mergeSection merges two optional sections field by field with fn; a missing
// side is taken as is.
func mergeSection[T any](a, b *T, fn func(T, T) T) *T {
	switch {
	case b == nil:
		return a
	case a == nil:
		cp := *b
		return &cp
	}
	out := fn(*a, *b)
	return &out
}

// mergeRaw deep-merges b over a: every field set in b wins.
func mergeRaw(a, b RawConfig) RawConfig {
	out := a
	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}

	out.Run = mergeSection(a.Run, b.Run, func(x, y RunConfig) RunConfig {
		return RunConfig{
			HandCount:              pick(x.HandCount, y.HandCount),
			LoseThresholdExclusive: pick(x.LoseThresholdExclusive, y.LoseThresholdExclusive),
			MaxMiss:                pick(x.MaxMiss, y.MaxMiss),
			IntroMaxTries:          pick(x.IntroMaxTries, y.IntroMaxTries),
		}
	})
	out.Economy = mergeSection(a.Economy, b.Economy, func(x, y EconomyConfig) EconomyConfig {
		return EconomyConfig{
			InitialPoints:  pick(x.InitialPoints, y.InitialPoints),
			PointsPerClear: pick(x.PointsPerClear, y.PointsPerClear),
			CardMovePrice:  pick(x.CardMovePrice, y.CardMovePrice),
			GaugeBuyPrice:  pick(x.GaugeBuyPrice, y.GaugeBuyPrice),
			GaugeBuyAmount: pick(x.GaugeBuyAmount, y.GaugeBuyAmount),
		}
	})
	out.Gauge = mergeSection(a.Gauge, b.Gauge, func(x, y GaugeConfig) GaugeConfig {
		return GaugeConfig{
			Max:             pick(x.Max, y.Max),
			GainScale:       pick(x.GainScale, y.GainScale),
			GainDenominator: pick(x.GainDenominator, y.GainDenominator),
		}
	})
	out.Environment = mergeSection(a.Environment, b.Environment, func(x, y EnvConfig) EnvConfig {
		return EnvConfig{
			UniqueMain:     pick(x.UniqueMain, y.UniqueMain),
			ShuffleWeights: pick(x.ShuffleWeights, y.ShuffleWeights),
			Weights: mergeSection(x.Weights, y.Weights, func(p, q WeightsConfig) WeightsConfig {
				return WeightsConfig{
					Heavy:   pick(p.Heavy, q.Heavy),
					Balance: pick(p.Balance, q.Balance),
					TwinTop: pick(p.TwinTop, q.TwinTop),
				}
			}),
		}
	})
	out.Classifier = mergeSection(a.Classifier, b.Classifier, func(x, y ClassifierCfg) ClassifierCfg {
		return ClassifierCfg{
			HeavyMin:     pick(x.HeavyMin, y.HeavyMin),
			TwinTop1Min:  pick(x.TwinTop1Min, y.TwinTop1Min),
			TwinTop2Min:  pick(x.TwinTop2Min, y.TwinTop2Min),
			TwinDeltaMax: pick(x.TwinDeltaMax, y.TwinDeltaMax),
		}
	})
	out.Generator = mergeSection(a.Generator, b.Generator, mergeGenerator)
	out.InitialDeck = mergeSection(a.InitialDeck, b.InitialDeck, func(x, y DeckConfig) DeckConfig {
		return DeckConfig{
			Gu:    pick(x.Gu, y.Gu),
			Choki: pick(x.Choki, y.Choki),
			Pa:    pick(x.Pa, y.Pa),
		}
	})
	return out
}

func mergeGenerator(x, y GeneratorCfg) GeneratorCfg {
	return GeneratorCfg{
		UseRangeTuning: pick(x.UseRangeTuning, y.UseRangeTuning),
		Heavy: mergeSection(x.Heavy, y.Heavy, func(p, q HeavyCfg) HeavyCfg {
			return HeavyCfg{
				Main:        pick(p.Main, q.Main),
				Sub1:        pick(p.Sub1, q.Sub1),
				Sub2:        pick(p.Sub2, q.Sub2),
				DefaultMain: pick(p.DefaultMain, q.DefaultMain),
				MainMin:     pick(p.MainMin, q.MainMin),
				MainMax:     pick(p.MainMax, q.MainMax),
				SubMin:      pick(p.SubMin, q.SubMin),
				SubMax:      pick(p.SubMax, q.SubMax),
				Attempts:    pick(p.Attempts, q.Attempts),
			}
		}),
		Balance: mergeSection(x.Balance, y.Balance, func(p, q BalanceCfg) BalanceCfg {
			return BalanceCfg{
				Each:     pick(p.Each, q.Each),
				Min:      pick(p.Min, q.Min),
				Max:      pick(p.Max, q.Max),
				Attempts: pick(p.Attempts, q.Attempts),
			}
		}),
		TwinTop: mergeSection(x.TwinTop, y.TwinTop, func(p, q TwinTopCfg) TwinTopCfg {
			return TwinTopCfg{
				A:        pick(p.A, q.A),
				B:        pick(p.B, q.B),
				C:        pick(p.C, q.C),
				MainMin:  pick(p.MainMin, q.MainMin),
				MainMax:  pick(p.MainMax, q.MainMax),
				DeltaMin: pick(p.DeltaMin, q.DeltaMin),
				DeltaMax: pick(p.DeltaMax, q.DeltaMax),
				CMin:     pick(p.CMin, q.CMin),
				CMax:     pick(p.CMax, q.CMax),
				Attempts: pick(p.Attempts, q.Attempts),
			}
		}),
	}
}
