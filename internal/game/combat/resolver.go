package combat

import (
	"fmt"

	"github.com/cory-johannsen/huntsim/internal/game/dice"
)

// Rules holds the table-wide to-hit rules shared by every weapon.
type Rules struct {
	// ToHitDice and ToHitSides describe the to-hit roll, 2d12 by default.
	ToHitDice  int
	ToHitSides int
	// StrictHit requires the roll to exceed defense instead of reaching it.
	StrictHit bool
}

// DefaultRules returns 2d12 inclusive to-hit rules.
func DefaultRules() Rules {
	return Rules{ToHitDice: 2, ToHitSides: 12}
}

// Validate checks the to-hit dice.
func (r Rules) Validate() error {
	if r.ToHitSides <= 0 {
		return fmt.Errorf("%w: to-hit sides must be > 0, got %d", ErrConfiguration, r.ToHitSides)
	}
	if r.ToHitDice < 1 {
		return fmt.Errorf("%w: to-hit dice must be >= 1, got %d", ErrConfiguration, r.ToHitDice)
	}
	return nil
}

// Hits reports whether roll lands against defense.
func (r Rules) Hits(roll, defense int) bool {
	if r.StrictHit {
		return roll > defense
	}
	return roll >= defense
}

// Attack performs one to-hit roll with modifier against defense.
func (r Rules) Attack(d dice.Roller, modifier, defense int) bool {
	return r.Hits(d.Roll(r.ToHitDice, r.ToHitSides, modifier), defense)
}
