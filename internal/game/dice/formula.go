package dice

import (
	"errors"
	"fmt"
)

// Formula describes how one damage sample is produced.
//
// Implementations are immutable and safe to share between battles; all
// randomness comes from the Roller passed to Roll.
type Formula interface {
	// Roll produces one damage sample.
	//
	// Postcondition: returns >= 0, or a non-nil error when the formula could
	// not be evaluated.
	Roll(r Roller) (int, error)
	// Validate reports whether the formula can be rolled.
	Validate() error
	String() string
}

// SumFormula is Count dice of Sides faces plus Bonus.
type SumFormula struct {
	Count int
	Sides int
	Bonus int
}

// Roll implements Formula.
func (f SumFormula) Roll(r Roller) (int, error) {
	return max(0, r.Roll(f.Count, f.Sides, f.Bonus)), nil
}

// Validate implements Formula.
func (f SumFormula) Validate() error {
	return validateDice(f.Count, f.Sides)
}

func (f SumFormula) String() string {
	return Notation(f.Count, f.Sides, f.Bonus)
}

// MultipliedFormula is a SumFormula whose total is multiplied by Multiplier.
type MultipliedFormula struct {
	Count      int
	Sides      int
	Bonus      int
	Multiplier int
}

// Roll implements Formula.
func (f MultipliedFormula) Roll(r Roller) (int, error) {
	return max(0, r.Roll(f.Count, f.Sides, f.Bonus)*f.Multiplier), nil
}

// Validate implements Formula.
func (f MultipliedFormula) Validate() error {
	if f.Multiplier < 1 {
		return fmt.Errorf("dice: multiplier must be >= 1, got %d", f.Multiplier)
	}
	return validateDice(f.Count, f.Sides)
}

func (f MultipliedFormula) String() string {
	return fmt.Sprintf("(%s)x%d", Notation(f.Count, f.Sides, f.Bonus), f.Multiplier)
}

// ExtraDieFormula is a SumFormula plus ExtraCount dice of ExtraSides faces.
type ExtraDieFormula struct {
	Count      int
	Sides      int
	Bonus      int
	ExtraCount int
	ExtraSides int
}

// Roll implements Formula.
func (f ExtraDieFormula) Roll(r Roller) (int, error) {
	return max(0, r.Roll(f.Count, f.Sides, f.Bonus)+r.Roll(f.ExtraCount, f.ExtraSides, 0)), nil
}

// Validate implements Formula.
func (f ExtraDieFormula) Validate() error {
	return errors.Join(validateDice(f.Count, f.Sides), validateDice(f.ExtraCount, f.ExtraSides))
}

func (f ExtraDieFormula) String() string {
	return Notation(f.Count, f.Sides, f.Bonus) + "+" + Notation(f.ExtraCount, f.ExtraSides, 0)
}

// FlatFormula always yields Value.
type FlatFormula struct {
	Value int
}

// Roll implements Formula.
func (f FlatFormula) Roll(Roller) (int, error) { return max(0, f.Value), nil }

// Validate implements Formula.
func (f FlatFormula) Validate() error { return nil }

func (f FlatFormula) String() string { return fmt.Sprintf("%d", f.Value) }

func validateDice(count, sides int) error {
	if sides <= 0 {
		return ErrInvalidSides
	}
	if count < 0 {
		return ErrInvalidCount
	}
	return nil
}
