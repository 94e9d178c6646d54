// Package sim drives battles: one battle round by round, many battles for a
// Monte Carlo estimate, and weapon sweeps for the CLI.
package sim

import (
	"fmt"

	"github.com/cory-johannsen/huntsim/internal/game/combat"
	"github.com/cory-johannsen/huntsim/internal/game/dice"
)

// BattleResult totals one battle.
type BattleResult struct {
	HitPointLoss int
	Hits         int
	Damage       int
}

// RunBattle plays rounds rounds of action with a fresh state and converts
// each round's damage to hit-point loss at proficiency level.
//
// Precondition: atk, def and roller are non-nil.
// Postcondition: returns ErrConfiguration for rounds <= 0, a level outside
// def's threshold table or a damage formula that fails to evaluate, and
// ErrInvariant as soon as the state leaves its
// declared range; no partial result is returned on error.
func RunBattle(action combat.Action, atk *combat.Attacker, def *combat.Defender, rounds, level int, rules combat.Rules, roller dice.Roller) (BattleResult, error) {
	if rounds <= 0 {
		return BattleResult{}, fmt.Errorf("%w: rounds must be > 0, got %d", combat.ErrConfiguration, rounds)
	}
	th, err := def.Threshold(level)
	if err != nil {
		return BattleResult{}, err
	}

	var out BattleResult
	var faults combat.Faults
	st := action.NewState()
	for round := 1; round <= rounds; round++ {
		res := action.Resolve(st, atk, def, combat.Turn{
			Round:  round,
			Rounds: rounds,
			Rules:  rules,
			Dice:   roller,
			Faults: &faults,
		})
		if err := faults.Err(); err != nil {
			return BattleResult{}, fmt.Errorf("%s round %d: %w", action.Variant(), round, err)
		}
		if res.Damage < 0 || res.Hits < 0 {
			return BattleResult{}, fmt.Errorf("%w: %s round %d produced %+v", combat.ErrInvariant, action.Variant(), round, res)
		}
		if err := st.Check(); err != nil {
			return BattleResult{}, fmt.Errorf("%s round %d: %w", action.Variant(), round, err)
		}
		out.HitPointLoss += th.Bucket(res.Damage)
		out.Hits += res.Hits
		out.Damage += res.Damage
	}
	return out, nil
}
