package dice

import (
	"fmt"
	"strconv"
	"strings"
)

// Expression represents a parsed dice expression ready to be rolled.
//
// Invariant: Count >= 1, Sides >= 1 and Multiplier >= 1 after a successful Parse.
type Expression struct {
	Raw        string // original input string
	Count      int    // number of dice
	Sides      int    // faces per die
	Modifier   int    // flat modifier (may be negative)
	Multiplier int    // product applied after the modifier, 1 when absent
}

// Parse parses a dice expression string into an Expression.
// Supported forms: "d8", "2d8", "2d8+4", "2d8-1", "2d8x2", "2d8+4x2".
//
// Precondition: expr must be a non-empty string.
// Postcondition: Returns a valid Expression or a descriptive error.
func Parse(expr string) (Expression, error) {
	if strings.TrimSpace(expr) == "" {
		return Expression{}, fmt.Errorf("dice: empty expression")
	}

	raw := expr
	s := strings.ToLower(strings.ReplaceAll(expr, " ", ""))

	dIdx := strings.Index(s, "d")
	if dIdx < 0 {
		return Expression{}, fmt.Errorf("dice: missing 'd' in expression %q", raw)
	}

	count := 1
	if countStr := s[:dIdx]; countStr != "" {
		var err error
		count, err = strconv.Atoi(countStr)
		if err != nil {
			return Expression{}, fmt.Errorf("dice: invalid die count in %q: %w", raw, err)
		}
		if count <= 0 {
			return Expression{}, fmt.Errorf("dice: invalid die count in %q: must be >= 1", raw)
		}
	}

	rest := s[dIdx+1:]

	// Multiplier suffix ("x2" or "*2") binds last.
	multiplier := 1
	if xIdx := strings.IndexAny(rest, "x*"); xIdx >= 0 {
		m, err := strconv.Atoi(rest[xIdx+1:])
		if err != nil {
			return Expression{}, fmt.Errorf("dice: invalid multiplier in %q: %w", raw, err)
		}
		if m < 1 {
			return Expression{}, fmt.Errorf("dice: invalid multiplier in %q: must be >= 1", raw)
		}
		multiplier = m
		rest = rest[:xIdx]
	}

	sidesStr, modStr := rest, ""
	if modOffset := strings.IndexAny(rest, "+-"); modOffset > 0 {
		sidesStr, modStr = rest[:modOffset], rest[modOffset:]
	}

	sides, err := strconv.Atoi(sidesStr)
	if err != nil {
		return Expression{}, fmt.Errorf("dice: invalid die sides in %q: %w", raw, err)
	}
	if sides < 1 {
		return Expression{}, fmt.Errorf("dice: invalid die sides in %q: %w", raw, ErrInvalidSides)
	}

	modifier := 0
	if modStr != "" {
		modifier, err = strconv.Atoi(modStr)
		if err != nil {
			return Expression{}, fmt.Errorf("dice: invalid modifier in %q: %w", raw, err)
		}
	}

	return Expression{
		Raw:        raw,
		Count:      count,
		Sides:      sides,
		Modifier:   modifier,
		Multiplier: multiplier,
	}, nil
}

// Formula converts the expression into the equivalent damage Formula.
func (e Expression) Formula() Formula {
	if e.Multiplier > 1 {
		return MultipliedFormula{Count: e.Count, Sides: e.Sides, Bonus: e.Modifier, Multiplier: e.Multiplier}
	}
	return SumFormula{Count: e.Count, Sides: e.Sides, Bonus: e.Modifier}
}
