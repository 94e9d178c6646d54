package combat

import (
	"fmt"

	"github.com/cory-johannsen/huntsim/internal/game/dice"
)

// Result is the outcome of one resolved round.
//
// Invariant: Damage >= 0 and Hits >= 0.
type Result struct {
	Damage int
	Hits   int
}

// Add accumulates o into r.
func (r *Result) Add(o Result) {
	r.Damage += o.Damage
	r.Hits += o.Hits
}

// Turn carries everything an action needs to resolve one round besides its
// own state and the combatants.
type Turn struct {
	// Round is 1-based.
	Round int
	// Rounds is the battle length.
	Rounds int
	Rules  Rules
	Dice   dice.Roller
	// Faults receives damage formula failures. A Turn without Faults panics
	// on a failing formula.
	Faults *Faults
}

// Faults keeps the first damage formula failure of a battle. Actions keep
// resolving after a failure; the battle driver checks Err after every round
// and discards the round.
type Faults struct {
	err error
}

// Record keeps err unless an earlier failure was recorded.
func (f *Faults) Record(err error) {
	if f.err == nil {
		f.err = err
	}
}

// Err returns the first recorded failure, or nil.
func (f *Faults) Err() error { return f.err }

// Final reports whether this is the last round of the battle.
func (t Turn) Final() bool { return t.Round >= t.Rounds }

// attack rolls to hit with modifier against def.
func (t Turn) attack(modifier int, def *Defender) bool {
	return t.Rules.Attack(t.Dice, modifier, def.Defense)
}

// damage draws one damage sample for atk. A failing formula yields 0 and is
// recorded on t.Faults.
func (t Turn) damage(atk *Attacker) int {
	n, err := atk.Damage.Roll(t.Dice)
	if err != nil {
		err = fmt.Errorf("%w: attacker %q damage %s: %w", ErrConfiguration, atk.Name, atk.Damage, err)
		if t.Faults == nil {
			panic(err.Error())
		}
		t.Faults.Record(err)
		return 0
	}
	return n
}

// strike is one attack with a flat damage bonus on a hit.
func (t Turn) strike(atk *Attacker, def *Defender, attackBonus, damageBonus int) Result {
	if !t.attack(atk.AttackModifier+attackBonus, def) {
		return Result{}
	}
	return Result{Damage: t.damage(atk) + damageBonus, Hits: 1}
}
