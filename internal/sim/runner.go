package sim

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/huntsim/internal/game/arsenal"
	"github.com/cory-johannsen/huntsim/internal/game/combat"
	"github.com/cory-johannsen/huntsim/internal/game/dice"
)

// Options tune how a Runner executes simulations.
type Options struct {
	// Seed fixes the random streams; 0 draws a fresh seed per Runner.
	Seed uint64
	// Workers is the number of parallel battle workers.
	Workers int
	// Trace runs sequentially and logs every dice roll at debug level.
	Trace bool
}

// Runner is the simulation entry point: it measures registry weapons against
// one encounter.
type Runner struct {
	encounter *arsenal.Encounter
	defender  *combat.Defender
	rules     combat.Rules
	opts      Options
	logger    *zap.Logger
}

// NewRunner creates a Runner for enc.
//
// Precondition: enc is valid and logger is non-nil.
// Postcondition: opts.Seed is non-zero in the returned Runner's options.
func NewRunner(enc *arsenal.Encounter, rules combat.Rules, opts Options, logger *zap.Logger) *Runner {
	if logger == nil {
		panic("sim.NewRunner: logger must not be nil")
	}
	if opts.Seed == 0 {
		opts.Seed = uint64(dice.NewCryptoSource().Intn(math.MaxInt)) + 1
	}
	return &Runner{
		encounter: enc,
		defender:  enc.NewDefender(),
		rules:     rules,
		opts:      opts,
		logger:    logger,
	}
}

// Seed returns the seed every simulation of r starts from.
func (r *Runner) Seed() uint64 { return r.opts.Seed }

// Levels returns the encounter's proficiency levels, 1 first.
func (r *Runner) Levels() []int {
	levels := make([]int, r.encounter.Levels())
	for i := range levels {
		levels[i] = i + 1
	}
	return levels
}

// Simulate estimates w's per-battle output at proficiency level.
//
// Postcondition: returns ErrConfiguration for an unknown level, zero
// simulations or non-positive rounds.
func (r *Runner) Simulate(ctx context.Context, w *arsenal.WeaponDef, level, simulations, rounds int) (Result, error) {
	runID := uuid.New()
	log := r.logger.With(
		zap.String("run_id", runID.String()),
		zap.String("weapon", w.ID),
		zap.Int("level", level),
	)

	atk, action, err := w.Build(level, r.encounter, log)
	if err != nil {
		return Result{}, err
	}
	req := Request{
		Action:      action,
		Attacker:    atk,
		Defender:    r.defender,
		Rules:       r.rules,
		Level:       level,
		Simulations: simulations,
		Rounds:      rounds,
	}

	log.Info("simulation started",
		zap.String("variant", string(action.Variant())),
		zap.Stringer("damage", atk.Damage),
		zap.Int("simulations", simulations),
		zap.Int("rounds", rounds),
		zap.Uint64("seed", r.opts.Seed),
		zap.Int("workers", r.opts.Workers),
	)
	start := time.Now()

	var res Result
	if r.opts.Trace {
		res, err = run(ctx, req, dice.NewLoggedRoller(dice.NewSeededSource(r.opts.Seed, 0), log))
	} else {
		res, err = RunParallel(ctx, req, r.opts.Seed, r.opts.Workers)
	}
	if err != nil {
		return Result{}, fmt.Errorf("simulating %q at level %d: %w", w.ID, level, err)
	}

	log.Info("simulation finished",
		zap.Float64("avg_hits", res.AvgHits),
		zap.Float64("avg_hit_point_loss", res.AvgHitPointLoss),
		zap.Float64("avg_damage", res.AvgDamage),
		zap.Duration("elapsed", time.Since(start)),
	)
	return res, nil
}

// SweepRow is one weapon at one proficiency level.
type SweepRow struct {
	Weapon  string         `yaml:"weapon"`
	Name    string         `yaml:"name"`
	Variant combat.Variant `yaml:"variant"`
	Level   int            `yaml:"level"`
	Result  Result         `yaml:"result"`
}

// Sweep simulates every weapon at every level, weapons outermost. An empty
// levels slice means every level of the encounter.
func (r *Runner) Sweep(ctx context.Context, weapons []*arsenal.WeaponDef, levels []int, simulations, rounds int) ([]SweepRow, error) {
	if len(levels) == 0 {
		levels = r.Levels()
	}
	rows := make([]SweepRow, 0, len(weapons)*len(levels))
	for _, w := range weapons {
		for _, level := range levels {
			res, err := r.Simulate(ctx, w, level, simulations, rounds)
			if err != nil {
				return nil, err
			}
			rows = append(rows, SweepRow{
				Weapon:  w.ID,
				Name:    w.Name,
				Variant: w.Variant,
				Level:   level,
				Result:  res,
			})
		}
	}
	return rows, nil
}
