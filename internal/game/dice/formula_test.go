package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/huntsim/internal/game/dice"
)

// maxRoller returns the highest possible value for every roll.
var maxRoller = dice.RollerFunc(func(count, sides, modifier int) int {
	return count*sides + modifier
})

func TestFormulas_MaxRoll(t *testing.T) {
	tests := []struct {
		f    dice.Formula
		want int
	}{
		{dice.SumFormula{Count: 2, Sides: 8, Bonus: 3}, 19},
		{dice.MultipliedFormula{Count: 1, Sides: 10, Bonus: 2, Multiplier: 2}, 24},
		{dice.ExtraDieFormula{Count: 1, Sides: 8, Bonus: 1, ExtraCount: 1, ExtraSides: 6}, 15},
		{dice.FlatFormula{Value: 10}, 10},
	}
	for _, tc := range tests {
		got, err := tc.f.Roll(maxRoller)
		require.NoError(t, err, tc.f.String())
		assert.Equal(t, tc.want, got, tc.f.String())
		assert.NoError(t, tc.f.Validate(), tc.f.String())
	}
}

func TestFormulas_NeverNegative(t *testing.T) {
	low := dice.RollerFunc(func(count, _, modifier int) int { return count + modifier })
	for _, f := range []dice.Formula{
		dice.SumFormula{Count: 1, Sides: 4, Bonus: -10},
		dice.MultipliedFormula{Count: 1, Sides: 4, Bonus: -10, Multiplier: 2},
		dice.FlatFormula{Value: -1},
	} {
		got, err := f.Roll(low)
		require.NoError(t, err, f.String())
		assert.Zero(t, got, f.String())
	}
}

func TestFormulas_Validate(t *testing.T) {
	assert.ErrorIs(t, dice.SumFormula{Count: 1, Sides: 0}.Validate(), dice.ErrInvalidSides)
	assert.ErrorIs(t, dice.SumFormula{Count: -1, Sides: 6}.Validate(), dice.ErrInvalidCount)
	assert.Error(t, dice.MultipliedFormula{Count: 1, Sides: 6, Multiplier: 0}.Validate())
	assert.ErrorIs(t, dice.ExtraDieFormula{Count: 1, Sides: 6, ExtraCount: 1}.Validate(), dice.ErrInvalidSides)
}

func TestFormulas_String(t *testing.T) {
	assert.Equal(t, "2d8+3", dice.SumFormula{Count: 2, Sides: 8, Bonus: 3}.String())
	assert.Equal(t, "(1d10)x2", dice.MultipliedFormula{Count: 1, Sides: 10, Multiplier: 2}.String())
	assert.Equal(t, "1d8+1d6", dice.ExtraDieFormula{Count: 1, Sides: 8, ExtraCount: 1, ExtraSides: 6}.String())
}

func TestSumFormula_Property_InRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		f := dice.SumFormula{
			Count: rapid.IntRange(1, 4).Draw(rt, "count"),
			Sides: rapid.IntRange(1, 12).Draw(rt, "sides"),
			Bonus: rapid.IntRange(0, 10).Draw(rt, "bonus"),
		}
		r := dice.NewRoller(dice.NewSeededSource(rapid.Uint64().Draw(rt, "seed"), 0))
		got, err := f.Roll(r)
		if err != nil {
			rt.Fatal(err)
		}
		assert.GreaterOrEqual(rt, got, f.Count+f.Bonus)
		assert.LessOrEqual(rt, got, f.Count*f.Sides+f.Bonus)
	})
}
