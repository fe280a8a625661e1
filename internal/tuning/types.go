// Package tuning reads the YAML tuning files, merges presets over the
// defaults and resolves the result into engine parameters.
package tuning

// RawConfig is one tuning file as written. Every leaf is optional; nil means
// "inherit from the file below or from the built-in default".
type RawConfig struct {
	Version     string         `yaml:"version,omitempty"`
	Run         *RunConfig     `yaml:"run,omitempty"`
	Economy     *EconomyConfig `yaml:"economy,omitempty"`
	Gauge       *GaugeConfig   `yaml:"gauge,omitempty"`
	Environment *EnvConfig     `yaml:"environment,omitempty"`
	Classifier  *ClassifierCfg `yaml:"classifier,omitempty"`
	Generator   *GeneratorCfg  `yaml:"generator,omitempty"`
	InitialDeck *DeckConfig    `yaml:"initial_deck,omitempty"`
	Notes       string         `yaml:"notes,omitempty"`
}

type RunConfig struct {
	HandCount              *int `yaml:"hand_count,omitempty"`
	LoseThresholdExclusive *int `yaml:"lose_threshold_exclusive,omitempty"`
	MaxMiss                *int `yaml:"max_miss,omitempty"`
	IntroMaxTries          *int `yaml:"intro_max_tries,omitempty"`
}

type EconomyConfig struct {
	InitialPoints  *int     `yaml:"initial_points,omitempty"`
	PointsPerClear *int     `yaml:"points_per_clear,omitempty"`
	CardMovePrice  *int     `yaml:"card_move_price,omitempty"`
	GaugeBuyPrice  *int     `yaml:"gauge_buy_price,omitempty"`
	GaugeBuyAmount *float64 `yaml:"gauge_buy_amount,omitempty"`
}

type GaugeConfig struct {
	Max             *float64 `yaml:"max,omitempty"`
	GainScale       *float64 `yaml:"gain_scale,omitempty"`
	GainDenominator *float64 `yaml:"gain_denominator,omitempty"`
}

type EnvConfig struct {
	UniqueMain     *bool          `yaml:"unique_main,omitempty"`
	ShuffleWeights *bool          `yaml:"shuffle_weights,omitempty"`
	Weights        *WeightsConfig `yaml:"weights,omitempty"`
}

type WeightsConfig struct {
	Heavy   *float64 `yaml:"heavy,omitempty"`
	Balance *float64 `yaml:"balance,omitempty"`
	TwinTop *float64 `yaml:"twin_top,omitempty"`
}

type ClassifierCfg struct {
	HeavyMin     *int `yaml:"heavy_min,omitempty"`
	TwinTop1Min  *int `yaml:"twin_top1_min,omitempty"`
	TwinTop2Min  *int `yaml:"twin_top2_min,omitempty"`
	TwinDeltaMax *int `yaml:"twin_delta_max,omitempty"`
}

type GeneratorCfg struct {
	UseRangeTuning *bool       `yaml:"use_range_tuning,omitempty"`
	Heavy          *HeavyCfg   `yaml:"heavy,omitempty"`
	Balance        *BalanceCfg `yaml:"balance,omitempty"`
	TwinTop        *TwinTopCfg `yaml:"twin_top,omitempty"`
}

type HeavyCfg struct {
	Main        *int    `yaml:"main,omitempty"`
	Sub1        *int    `yaml:"sub1,omitempty"`
	Sub2        *int    `yaml:"sub2,omitempty"`
	DefaultMain *string `yaml:"default_main,omitempty"` // gu | choki | pa
	MainMin     *int    `yaml:"main_min,omitempty"`
	MainMax     *int    `yaml:"main_max,omitempty"`
	SubMin      *int    `yaml:"sub_min,omitempty"`
	SubMax      *int    `yaml:"sub_max,omitempty"`
	Attempts    *int    `yaml:"attempts,omitempty"`
}

type BalanceCfg struct {
	Each     *int `yaml:"each,omitempty"`
	Min      *int `yaml:"min,omitempty"`
	Max      *int `yaml:"max,omitempty"`
	Attempts *int `yaml:"attempts,omitempty"`
}

type TwinTopCfg struct {
	A        *int `yaml:"a,omitempty"`
	B        *int `yaml:"b,omitempty"`
	C        *int `yaml:"c,omitempty"`
	MainMin  *int `yaml:"main_min,omitempty"`
	MainMax  *int `yaml:"main_max,omitempty"`
	DeltaMin *int `yaml:"delta_min,omitempty"`
	DeltaMax *int `yaml:"delta_max,omitempty"`
	CMin     *int `yaml:"c_min,omitempty"`
	CMax     *int `yaml:"c_max,omitempty"`
	Attempts *int `yaml:"attempts,omitempty"`
}

type DeckConfig struct {
	Gu    *int `yaml:"gu,omitempty"`
	Choki *int `yaml:"choki,omitempty"`
	Pa    *int `yaml:"pa,omitempty"`
}
