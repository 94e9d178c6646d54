package sim

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/cory-johannsen/huntsim/internal/game/combat"
	"github.com/cory-johannsen/huntsim/internal/game/dice"
)

// Request is one simulation: a configured weapon against a defender at a
// proficiency level.
type Request struct {
	Action      combat.Action
	Attacker    *combat.Attacker
	Defender    *combat.Defender
	Rules       combat.Rules
	Level       int
	Simulations int
	Rounds      int
}

// Validate reports every problem with r, wrapped in ErrConfiguration.
func (r Request) Validate() error {
	var errs []error
	if r.Action == nil {
		errs = append(errs, fmt.Errorf("%w: no action", combat.ErrConfiguration))
	}
	if r.Attacker == nil {
		errs = append(errs, fmt.Errorf("%w: no attacker", combat.ErrConfiguration))
	} else if err := r.Attacker.Validate(); err != nil {
		errs = append(errs, err)
	}
	if r.Defender == nil {
		errs = append(errs, fmt.Errorf("%w: no defender", combat.ErrConfiguration))
	} else if err := r.Defender.Validate(); err != nil {
		errs = append(errs, err)
	} else if _, err := r.Defender.Threshold(r.Level); err != nil {
		errs = append(errs, err)
	}
	if err := r.Rules.Validate(); err != nil {
		errs = append(errs, err)
	}
	if r.Simulations <= 0 {
		errs = append(errs, fmt.Errorf("%w: simulations must be > 0, got %d", combat.ErrConfiguration, r.Simulations))
	}
	if r.Rounds <= 0 {
		errs = append(errs, fmt.Errorf("%w: rounds must be > 0, got %d", combat.ErrConfiguration, r.Rounds))
	}
	return errors.Join(errs...)
}

// Result is the per-battle average over Simulations battles.
type Result struct {
	Simulations     int     `yaml:"simulations"`
	AvgHits         float64 `yaml:"avg_hits"`
	AvgHitPointLoss float64 `yaml:"avg_hit_point_loss"`
	AvgDamage       float64 `yaml:"avg_damage"`
}

// totals accumulates battles exactly; averages are taken once at the end.
type totals struct {
	battles      int
	hitPointLoss int64
	hits         int64
	damage       int64
}

func (t *totals) add(b BattleResult) {
	t.battles++
	t.hitPointLoss += int64(b.HitPointLoss)
	t.hits += int64(b.Hits)
	t.damage += int64(b.Damage)
}

func (t *totals) merge(o totals) {
	t.battles += o.battles
	t.hitPointLoss += o.hitPointLoss
	t.hits += o.hits
	t.damage += o.damage
}

func (t totals) result() Result {
	n := float64(t.battles)
	return Result{
		Simulations:     t.battles,
		AvgHits:         float64(t.hits) / n,
		AvgHitPointLoss: float64(t.hitPointLoss) / n,
		AvgDamage:       float64(t.damage) / n,
	}
}

// battles runs n independent battles of req on roller.
func battles(ctx context.Context, req Request, n int, roller dice.Roller) (totals, error) {
	var t totals
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return totals{}, err
		}
		b, err := RunBattle(req.Action, req.Attacker, req.Defender, req.Rounds, req.Level, req.Rules, roller)
		if err != nil {
			return totals{}, err
		}
		t.add(b)
	}
	return t, nil
}

// Run plays req.Simulations battles sequentially on roller.
//
// Postcondition: returns ErrConfiguration for an invalid request; no partial
// result is returned on error.
func Run(req Request, roller dice.Roller) (Result, error) {
	return run(context.Background(), req, roller)
}

// run is Run with cancellation; it stops between battles once ctx is done.
func run(ctx context.Context, req Request, roller dice.Roller) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}
	t, err := battles(ctx, req, req.Simulations, roller)
	if err != nil {
		return Result{}, err
	}
	return t.result(), nil
}

// RunParallel splits req.Simulations into workers contiguous shares. Worker i
// draws from its own seeded stream (seed, i), so the result is a pure
// function of (req, seed, workers).
//
// Precondition: workers >= 1.
// Postcondition: returns ctx's error if it is cancelled before every battle
// finishes.
func RunParallel(ctx context.Context, req Request, seed uint64, workers int) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}
	if workers < 1 {
		return Result{}, fmt.Errorf("%w: workers must be >= 1, got %d", combat.ErrConfiguration, workers)
	}
	workers = min(workers, req.Simulations)

	parts := make([]totals, workers)
	g, gctx := errgroup.WithContext(ctx)
	for i := range workers {
		share := req.Simulations / workers
		if i < req.Simulations%workers {
			share++
		}
		g.Go(func() error {
			roller := dice.NewRoller(dice.NewSeededSource(seed, uint64(i)))
			t, err := battles(gctx, req, share, roller)
			if err != nil {
				return err
			}
			parts[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	var all totals
	for _, p := range parts {
		all.merge(p)
	}
	return all.result(), nil
}
