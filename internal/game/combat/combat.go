// Package combat implements the combatant model and the per-weapon action
// state machines of the huntsim engine.
package combat

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/huntsim/internal/game/dice"
)

// ErrConfiguration marks every error caused by invalid configuration: a
// missing weapon parameter, a non-positive die size, a proficiency level
// outside the threshold table, or an empty simulation request.
var ErrConfiguration = errors.New("configuration error")

// ErrInvariant marks a battle state observed outside its declared range.
// It is always a defect.
var ErrInvariant = errors.New("invariant violation")

// Attacker is the offensive side of a battle.
//
// Invariant: immutable for the lifetime of a battle.
type Attacker struct {
	Name string
	// AttackModifier is added to every to-hit roll.
	AttackModifier int
	// Damage produces one damage sample per landed hit.
	Damage dice.Formula
}

// Validate checks that the attacker can be simulated.
func (a *Attacker) Validate() error {
	if a.Damage == nil {
		return fmt.Errorf("%w: attacker %q has no damage formula", ErrConfiguration, a.Name)
	}
	if err := a.Damage.Validate(); err != nil {
		return fmt.Errorf("%w: attacker %q damage %s: %w", ErrConfiguration, a.Name, a.Damage, err)
	}
	return nil
}

// Threshold is the pair of damage cut-points (t1, t2) for one proficiency
// level.
type Threshold struct {
	Lower int `yaml:"lower"`
	Upper int `yaml:"upper"`
}

// Bucket maps raw round damage to hit-point loss.
//
// Postcondition: damage <= 0 → 0; damage < Lower → 1; damage < Upper → 2; else 3.
func (t Threshold) Bucket(damage int) int {
	switch {
	case damage <= 0:
		return 0
	case damage < t.Lower:
		return 1
	case damage < t.Upper:
		return 2
	default:
		return 3
	}
}

// Defender is the target of a battle.
//
// Invariant: immutable; Thresholds[i] applies to proficiency level i+1.
type Defender struct {
	// Defense is the value a to-hit roll must reach.
	Defense    int
	Thresholds []Threshold
}

// Levels returns the number of proficiency levels the threshold table covers.
func (d *Defender) Levels() int { return len(d.Thresholds) }

// Threshold returns the cut-points for level.
//
// Postcondition: returns ErrConfiguration when level is outside [1, Levels()].
func (d *Defender) Threshold(level int) (Threshold, error) {
	if level < 1 || level > len(d.Thresholds) {
		return Threshold{}, fmt.Errorf("%w: proficiency level %d outside [1, %d]", ErrConfiguration, level, len(d.Thresholds))
	}
	return d.Thresholds[level-1], nil
}

// HitPointLoss converts one round's damage into hit-point loss for level.
func (d *Defender) HitPointLoss(damage, level int) (int, error) {
	t, err := d.Threshold(level)
	if err != nil {
		return 0, err
	}
	return t.Bucket(damage), nil
}

// Validate checks the threshold table.
func (d *Defender) Validate() error {
	if len(d.Thresholds) == 0 {
		return fmt.Errorf("%w: defender has no thresholds", ErrConfiguration)
	}
	var errs []error
	for i, t := range d.Thresholds {
		if t.Lower < 1 || t.Upper < t.Lower {
			errs = append(errs, fmt.Errorf("%w: threshold for level %d must satisfy 1 <= t1 <= t2, got (%d, %d)",
				ErrConfiguration, i+1, t.Lower, t.Upper))
		}
	}
	return errors.Join(errs...)
}
