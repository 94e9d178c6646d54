// Package dice provides the dice primitive, randomness sources, and damage
// formulas consumed by the huntsim combat engine.
package dice

import (
	"errors"
	"fmt"
)

// ErrInvalidSides indicates a die was requested with fewer than one face.
var ErrInvalidSides = errors.New("dice: number of sides must be > 0")

// ErrInvalidCount indicates a negative number of dice was requested.
var ErrInvalidCount = errors.New("dice: number of dice must be >= 0")

// RollResult holds the full audit trail for a single roll.
//
// Postcondition: Total() == sum(Dice) + Modifier.
type RollResult struct {
	Expression string // e.g. "2d12+5"
	Dice       []int  // individual die results before modifier
	Modifier   int    // flat modifier (may be negative)
}

// Total returns the sum of all die results plus the modifier.
func (r RollResult) Total() int {
	total := r.Modifier
	for _, d := range r.Dice {
		total += d
	}
	return total
}

// String returns a human-readable audit string in the format:
//
//	"2d12+5 → [4 9] +5 = 18"
//
// Precondition: r.Expression is non-empty.
func (r RollResult) String() string {
	if r.Expression == "" {
		panic("dice: RollResult.String() precondition violated: Expression must be non-empty")
	}
	return fmt.Sprintf("%s → %v %+d = %d", r.Expression, r.Dice, r.Modifier, r.Total())
}

// Source is the randomness provider for dice rolls.
//
// A Source is owned by a single goroutine unless the implementation states
// otherwise.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// Notation formats count, sides and modifier as dice notation, e.g. "2d12+5".
func Notation(count, sides, modifier int) string {
	if modifier == 0 {
		return fmt.Sprintf("%dd%d", count, sides)
	}
	return fmt.Sprintf("%dd%d%+d", count, sides, modifier)
}
