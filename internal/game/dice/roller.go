package dice

// Roller is the dice primitive consumed by the combat engine.
type Roller interface {
	// Roll returns the sum of count independent draws from {1..sides} plus
	// modifier. count == 0 yields modifier.
	//
	// Precondition: count >= 0; sides > 0.
	Roll(count, sides, modifier int) int
}

// RollerFunc adapts an ordinary function to the Roller interface.
type RollerFunc func(count, sides, modifier int) int

// Roll calls f(count, sides, modifier).
func (f RollerFunc) Roll(count, sides, modifier int) int { return f(count, sides, modifier) }

// Sum is the validated dice primitive: the sum of count uniform draws from
// {1..sides} plus modifier.
//
// Postcondition: returns ErrInvalidSides when sides <= 0 and ErrInvalidCount
// when count < 0; otherwise the sum and a nil error.
func Sum(src Source, count, sides, modifier int) (int, error) {
	if sides <= 0 {
		return 0, ErrInvalidSides
	}
	if count < 0 {
		return 0, ErrInvalidCount
	}
	total := modifier
	for i := 0; i < count; i++ {
		total += src.Intn(sides) + 1
	}
	return total, nil
}

// SourceRoller implements Roller on top of a Source.
type SourceRoller struct {
	src Source
}

// NewRoller returns a Roller that draws from src.
//
// Precondition: src must be non-nil.
func NewRoller(src Source) *SourceRoller {
	return &SourceRoller{src: src}
}

// Roll implements Roller. Arguments are validated when weapons are loaded, so
// an invalid request here is a programming error and panics.
func (r *SourceRoller) Roll(count, sides, modifier int) int {
	total, err := Sum(r.src, count, sides, modifier)
	if err != nil {
		panic(err.Error())
	}
	return total
}

// Roll evaluates an Expression using src and returns the audit record.
// The multiplier is not part of the audit record; callers needing it use
// Expression.Formula.
//
// Postcondition: len(result.Dice) == expr.Count.
func Roll(expr Expression, src Source) (RollResult, error) {
	if expr.Sides <= 0 {
		return RollResult{}, ErrInvalidSides
	}
	if expr.Count < 0 {
		return RollResult{}, ErrInvalidCount
	}
	rolled := make([]int, expr.Count)
	for i := range rolled {
		rolled[i] = src.Intn(expr.Sides) + 1
	}
	return RollResult{
		Expression: expr.Raw,
		Dice:       rolled,
		Modifier:   expr.Modifier,
	}, nil
}
