// Package run owns one play session: the player's deck, the gauge economy,
// the run-fixed enemy decks and the round loop that ties them together.
package run

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xtding233/rpsbuild/internal/archetype"
	"github.com/xtding233/rpsbuild/internal/pricing"
	"github.com/xtding233/rpsbuild/internal/rps"
)

var (
	ErrGameOver      = errors.New("run is over")
	ErrInvalidTuning = errors.New("invalid run tuning")
)

// Tuning is the run-wide configuration.
type Tuning struct {
	HandCount              int
	LoseThresholdExclusive int // losses at or above this fail the round
	MaxMiss                int

	InitialPoints  int
	PointsPerClear int
	CardMovePrice  int
	GaugeBuyPrice  int
	GaugeBuyAmount float64 // gauge added per bought unit
	GaugeMax       float64 // one charge unit

	// Heavy main, Balance banner and TwinTop main get three different colors.
	UniqueMainAcrossArchetypes bool
	// Permute the environment weights across archetypes at run start.
	ShuffleEnvWeights bool
	EnvWeights        archetype.Weights
	Thresholds        archetype.Thresholds

	// Reroll budget of the forced-clear intro round.
	IntroMaxTries int
}

func DefaultTuning() Tuning {
	return Tuning{
		HandCount:                  7,
		LoseThresholdExclusive:     3,
		MaxMiss:                    3,
		InitialPoints:              10,
		PointsPerClear:             1,
		CardMovePrice:              1,
		GaugeBuyPrice:              1,
		GaugeBuyAmount:             0.5,
		GaugeMax:                   1,
		UniqueMainAcrossArchetypes: true,
		ShuffleEnvWeights:          true,
		EnvWeights:                 archetype.Weights{Heavy: 0.60, Balance: 0.25, TwinTop: 0.15},
		Thresholds:                 archetype.DefaultThresholds(),
		IntroMaxTries:              30,
	}
}

// Validate checks the fields a run cannot start without.
func (t Tuning) Validate() error {
	switch {
	case t.HandCount <= 0 || t.HandCount > rps.DeckSize:
		return fmt.Errorf("%w: hand count %d outside 1..%d", ErrInvalidTuning, t.HandCount, rps.DeckSize)
	case t.LoseThresholdExclusive <= 0:
		return fmt.Errorf("%w: lose threshold must be > 0, got %d", ErrInvalidTuning, t.LoseThresholdExclusive)
	case t.MaxMiss <= 0:
		return fmt.Errorf("%w: max miss must be > 0, got %d", ErrInvalidTuning, t.MaxMiss)
	case t.CardMovePrice < 0 || t.GaugeBuyPrice < 0:
		return fmt.Errorf("%w: prices must be >= 0", ErrInvalidTuning)
	case t.EnvWeights.Heavy < 0 || t.EnvWeights.Balance < 0 || t.EnvWeights.TwinTop < 0:
		return fmt.Errorf("%w: environment weights must be >= 0", ErrInvalidTuning)
	}
	return nil
}

// Catalog is the point price list derived from the tuning.
func (t Tuning) Catalog() pricing.Catalog {
	return pricing.Catalog{CardMove: t.CardMovePrice, GaugeBuy: t.GaugeBuyPrice, GaugeBuyAmount: t.GaugeBuyAmount}
}

// EnemySlot is the deck an enemy archetype uses for the whole run.
type EnemySlot struct {
	Archetype archetype.Archetype
	Profile   rps.DeckProfile
	Main      rps.Color // banner color for Balance
	Second    rps.Color // TwinTop only; equals Main otherwise
	Fallback  bool      // generator ran out of attempts
}

func (e EnemySlot) Label() string { return archetype.EnemyLabel(e.Archetype, e.Main) }

// Option configures a State.
type Option func(*State)

func WithLogger(l *zap.Logger) Option {
	return func(s *State) {
		if l != nil {
			s.log = l
		}
	}
}

// WithID overrides the generated run id.
func WithID(id string) Option {
	return func(s *State) { s.id = id }
}

// State is one run. It is not safe for concurrent use.
type State struct {
	id     string
	tuning Tuning
	rng    rps.RandomSource
	gen    *archetype.Generator
	gain   rps.GainFormula
	log    *zap.Logger

	round  int
	miss   int
	points int
	score  int

	env        archetype.Environment
	player     rps.DeckProfile
	playerInfo archetype.Info
	gauge      *rps.GaugeState

	enemies [archetype.Count]EnemySlot
	preview archetype.Archetype

	reserved []rps.Color
	stats    [archetype.Count]HandStat
	last     *RoundReport
}

// NewState starts a run: it fixes the environment, generates one enemy deck
// per archetype and rolls the first preview. A nil rng uses rps.DefaultRNG, a
// nil generator the default config and a nil gain the linear count/30 formula.
func NewState(t Tuning, initial rps.DeckProfile, rng rps.RandomSource, gen *archetype.Generator, gain rps.GainFormula, opts ...Option) (*State, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if err := initial.Validate(); err != nil {
		return nil, fmt.Errorf("initial player deck: %w", err)
	}
	if rng == nil {
		rng = rps.DefaultRNG()
	}
	if gen == nil {
		gen = archetype.NewGenerator(archetype.DefaultGeneratorConfig())
	}
	if gain == nil {
		gain = rps.DefaultGainFormula()
	}

	s := &State{
		tuning: t,
		rng:    rng,
		gen:    gen,
		gain:   gain,
		log:    zap.NewNop(),
		player: initial,
		gauge:  rps.NewGauge(t.GaugeMax),
		points: t.InitialPoints,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.id == "" {
		s.id = uuid.NewString()
	}
	s.log = s.log.With(zap.String("run_id", s.id))

	s.refreshPlayerInfo()
	s.env = archetype.NewEnvironment(t.EnvWeights, t.ShuffleEnvWeights, rng)
	if err := s.buildEnemies(); err != nil {
		return nil, err
	}
	s.rollPreview()

	s.log.Debug("run started",
		zap.Stringer("player", s.player),
		zap.String("player_archetype", s.playerInfo.Label()),
		zap.Float64("w_heavy", s.env.Weights.Heavy),
		zap.Float64("w_balance", s.env.Weights.Balance),
		zap.Float64("w_twin_top", s.env.Weights.TwinTop),
	)
	return s, nil
}

// buildEnemies picks the per-archetype colors and generates the run-fixed decks.
func (s *State) buildEnemies() error {
	var heavyMain, banner, twinMain rps.Color
	if s.tuning.UniqueMainAcrossArchetypes {
		colors := rps.Colors
		rps.Shuffle(colors[:], s.rng)
		heavyMain, banner, twinMain = colors[0], colors[1], colors[2]
	} else {
		pick := func() rps.Color { return rps.Colors[s.rng.Range(0, rps.NumColors)] }
		heavyMain, banner, twinMain = pick(), pick(), pick()
	}
	twinSecond := rps.OtherTwo(twinMain)[s.rng.Range(0, 2)]

	heavy, err := s.gen.Heavy(s.rng, heavyMain)
	if err != nil {
		return fmt.Errorf("generate heavy enemy: %w", err)
	}
	balance, err := s.gen.Balance(s.rng, &banner)
	if err != nil {
		return fmt.Errorf("generate balance enemy: %w", err)
	}
	twin, err := s.gen.TwinTop(s.rng, twinMain, twinSecond)
	if err != nil {
		return fmt.Errorf("generate twin top enemy: %w", err)
	}

	s.enemies[archetype.Heavy] = EnemySlot{Archetype: archetype.Heavy, Profile: heavy.Profile, Main: heavyMain, Second: heavyMain, Fallback: heavy.Fallback}
	s.enemies[archetype.Balance] = EnemySlot{Archetype: archetype.Balance, Profile: balance.Profile, Main: banner, Second: banner, Fallback: balance.Fallback}
	s.enemies[archetype.TwinTop] = EnemySlot{Archetype: archetype.TwinTop, Profile: twin.Profile, Main: twinMain, Second: twinSecond, Fallback: twin.Fallback}

	for _, e := range s.enemies {
		if e.Fallback {
			s.log.Debug("enemy generator fell back to default split",
				zap.Stringer("archetype", e.Archetype),
				zap.Stringer("profile", e.Profile),
			)
		}
	}
	return nil
}

func (s *State) rollPreview() {
	s.preview = s.env.Roll(s.rng)
}

func (s *State) refreshPlayerInfo() {
	s.playerInfo = archetype.Classify(s.player, s.tuning.Thresholds)
}

func (s *State) ID() string { return s.id }
func (s *State) Tuning() Tuning { return s.tuning }
func (s *State) Round() int { return s.round }
func (s *State) MissCount() int { return s.miss }
func (s *State) Points() int { return s.points }
func (s *State) Score() int { return s.score }
func (s *State) IsGameOver() bool { return s.miss >= s.tuning.MaxMiss }
func (s *State) Environment() archetype.Environment { return s.env }
func (s *State) Player() rps.DeckProfile { return s.player }
func (s *State) PlayerInfo() archetype.Info { return s.playerInfo }

// Gauge returns a copy of the gauge; changing it does not affect the run.
func (s *State) Gauge() *rps.GaugeState {
	g := *s.gauge
	return &g
}

// Enemy is the run-fixed deck of an archetype.
func (s *State) Enemy(a archetype.Archetype) EnemySlot {
	if !a.Valid() {
		return EnemySlot{}
	}
	return s.enemies[a]
}

// Preview is the enemy the next round will face.
func (s *State) Preview() EnemySlot { return s.enemies[s.preview] }

// HandStat is the cumulative enemy draw record for an archetype.
func (s *State) HandStat(a archetype.Archetype) HandStat {
	if !a.Valid() {
		return HandStat{}
	}
	return s.stats[a]
}

// LastRound is the report of the most recent round; ok is false before the
// first round.
func (s *State) LastRound() (RoundReport, bool) {
	if s.last == nil {
		return RoundReport{}, false
	}
	return *s.last, true
}
