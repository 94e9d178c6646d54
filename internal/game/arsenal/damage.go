package arsenal

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/huntsim/internal/game/combat"
	"github.com/cory-johannsen/huntsim/internal/game/dice"
	"github.com/cory-johannsen/huntsim/internal/scripting"
)

// DamageKind selects how a damage block is rolled.
type DamageKind string

const (
	// KindSum rolls dice and adds the level bonus. It is the default.
	KindSum DamageKind = "sum"
	// KindMultiplied multiplies the bonused roll by Multiplier.
	KindMultiplied DamageKind = "multiplied"
	// KindExtraDie adds ExtraDice dExtraSides to the bonused roll.
	KindExtraDie DamageKind = "extra_die"
	// KindFlat deals Value plus the level bonus.
	KindFlat DamageKind = "flat"
	// KindScript evaluates a Lua chunk; see scripting.Compile.
	KindScript DamageKind = "script"
)

// DamageSpec is the damage block of a weapon definition.
//
// Dice may hold a full expression ("2d8x2"); when set it overrides Count,
// Sides and Multiplier.
type DamageSpec struct {
	Kind       DamageKind `yaml:"kind"`
	Expr       string     `yaml:"expr"`
	Dice       int        `yaml:"dice"`
	Sides      int        `yaml:"sides"`
	Multiplier int        `yaml:"multiplier"`
	ExtraDice  int        `yaml:"extra_dice"`
	ExtraSides int        `yaml:"extra_sides"`
	Value      int        `yaml:"value"`
	Script     string     `yaml:"script"`
}

// kind returns the effective kind, defaulting to sum.
func (d DamageSpec) kind() DamageKind {
	if d.Kind == "" {
		return KindSum
	}
	return d.Kind
}

// Formula builds the damage formula with bonus baked in.
//
// Postcondition: returns ErrConfiguration for an unknown kind, a malformed
// expression, invalid dice, or a script that fails to compile.
func (d DamageSpec) Formula(name string, bonus int, logger *zap.Logger) (dice.Formula, error) {
	count, sides, mult := d.Dice, d.Sides, d.Multiplier
	if d.Expr != "" {
		e, err := dice.Parse(d.Expr)
		if err != nil {
			return nil, fmt.Errorf("%w: damage expression: %w", combat.ErrConfiguration, err)
		}
		count, sides, mult = e.Count, e.Sides, e.Multiplier
		bonus += e.Modifier
	}

	var f dice.Formula
	switch d.kind() {
	case KindSum:
		if mult > 1 {
			f = dice.MultipliedFormula{Count: count, Sides: sides, Bonus: bonus, Multiplier: mult}
		} else {
			f = dice.SumFormula{Count: count, Sides: sides, Bonus: bonus}
		}
	case KindMultiplied:
		f = dice.MultipliedFormula{Count: count, Sides: sides, Bonus: bonus, Multiplier: mult}
	case KindExtraDie:
		f = dice.ExtraDieFormula{Count: count, Sides: sides, Bonus: bonus, ExtraCount: d.ExtraDice, ExtraSides: d.ExtraSides}
	case KindFlat:
		f = dice.FlatFormula{Value: d.Value + bonus}
	case KindScript:
		if d.Script == "" {
			return nil, fmt.Errorf("%w: script damage needs a script", combat.ErrConfiguration)
		}
		s, err := scripting.Compile(name, d.Script, scripting.DefaultInstructionLimit, logger)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", combat.ErrConfiguration, err)
		}
		f = s.WithBonus(bonus)
	default:
		return nil, fmt.Errorf("%w: unknown damage kind %q", combat.ErrConfiguration, d.Kind)
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("%w: damage %s: %w", combat.ErrConfiguration, f, err)
	}
	return f, nil
}
