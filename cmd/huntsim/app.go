package main

import (
	"context"
	"fmt"
	"io"

	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/cory-johannsen/huntsim/internal/config"
	"github.com/cory-johannsen/huntsim/internal/game/arsenal"
	"github.com/cory-johannsen/huntsim/internal/game/combat"
	"github.com/cory-johannsen/huntsim/internal/report"
	"github.com/cory-johannsen/huntsim/internal/sim"
)

// providerSet builds an App from a loaded Config and logger.
var providerSet = wire.NewSet(
	provideRules,
	provideOptions,
	provideEncounter,
	provideRegistry,
	sim.NewRunner,
	NewApp,
)

func provideRules(cfg config.Config) combat.Rules {
	return combat.Rules{
		ToHitDice:  cfg.Rules.ToHitDice,
		ToHitSides: cfg.Rules.ToHitSides,
		StrictHit:  cfg.Rules.StrictHit,
	}
}

func provideOptions(cfg config.Config) sim.Options {
	return sim.Options{
		Seed:    cfg.Simulation.Seed,
		Workers: cfg.Simulation.Workers,
		Trace:   cfg.Simulation.Trace,
	}
}

func provideEncounter(cfg config.Config) (*arsenal.Encounter, error) {
	return arsenal.LoadEncounter(cfg.Content.Encounter)
}

func provideRegistry(cfg config.Config, enc *arsenal.Encounter, logger *zap.Logger) (*arsenal.Registry, error) {
	reg, err := arsenal.LoadRegistry(cfg.Content.WeaponsDir)
	if err != nil {
		return nil, err
	}
	if err := reg.Validate(enc); err != nil {
		return nil, err
	}
	logger.Info("weapons loaded", zap.Int("count", reg.Len()), zap.String("dir", cfg.Content.WeaponsDir))
	return reg, nil
}

// App runs a sweep and renders it.
type App struct {
	runner   *sim.Runner
	registry *arsenal.Registry
	sim      config.SimulationConfig
	format   report.Format
	logger   *zap.Logger
}

// NewApp wires the sweep inputs together.
func NewApp(runner *sim.Runner, registry *arsenal.Registry, cfg config.Config, logger *zap.Logger) *App {
	return &App{
		runner:   runner,
		registry: registry,
		sim:      cfg.Simulation,
		format:   report.Format(cfg.Report.Format),
		logger:   logger,
	}
}

// Run simulates weaponID (every weapon when empty) at level (the configured
// levels when 0) and writes the report to out.
func (a *App) Run(ctx context.Context, out io.Writer, weaponID string, level int) error {
	weapons := a.registry.All()
	if weaponID != "" {
		w := a.registry.Weapon(weaponID)
		if w == nil {
			return fmt.Errorf("%w: unknown weapon %q", combat.ErrConfiguration, weaponID)
		}
		weapons = []*arsenal.WeaponDef{w}
	}
	levels := a.sim.Levels
	if level > 0 {
		levels = []int{level}
	}

	a.logger.Info("sweep started",
		zap.Int("weapons", len(weapons)),
		zap.Ints("levels", levels),
		zap.Uint64("seed", a.runner.Seed()),
	)
	rows, err := a.runner.Sweep(ctx, weapons, levels, a.sim.Simulations, a.sim.Rounds)
	if err != nil {
		return err
	}
	return report.Write(out, a.format, rows)
}
