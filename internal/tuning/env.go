package tuning

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds the process-level settings read from RPSBUILD_* variables.
// Zero numeric values mean "not set".
type Env struct {
	ConfigDir string `env:"RPSBUILD_CONFIG_DIR" envDefault:"configs"`
	Preset    string `env:"RPSBUILD_PRESET"`
	Seed      uint64 `env:"RPSBUILD_SEED"`
	HandCount int    `env:"RPSBUILD_HAND_COUNT"`
	MaxMiss   int    `env:"RPSBUILD_MAX_MISS"`
}

// ParseEnv reads Env from the process environment.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// Overrides converts the set numeric fields.
func (e Env) Overrides() Overrides {
	var o Overrides
	if e.HandCount != 0 {
		o.HandCount = &e.HandCount
	}
	if e.MaxMiss != 0 {
		o.MaxMiss = &e.MaxMiss
	}
	return o
}
