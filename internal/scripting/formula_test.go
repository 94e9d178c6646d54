package scripting_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/huntsim/internal/game/dice"
	"github.com/cory-johannsen/huntsim/internal/scripting"
)

// minRoller returns the lowest possible value for every roll.
var minRoller = dice.RollerFunc(func(count, _, modifier int) int { return count + modifier })

func compile(t *testing.T, src string) (*scripting.Script, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	s, err := scripting.Compile("test", src, 0, zap.New(core))
	require.NoError(t, err)
	return s, logs
}

func TestCompile_RollAndBonusBound(t *testing.T) {
	s, _ := compile(t, `return roll(2, 8, bonus) + 1`)
	f := s.WithBonus(3)
	got, err := f.Roll(minRoller)
	require.NoError(t, err)
	assert.Equal(t, 2+3+1, got)
	assert.NoError(t, f.Validate())
	assert.Equal(t, "script:test+3", f.String())
}

func TestCompile_SyntaxError(t *testing.T) {
	_, err := scripting.Compile("bad", `return roll(`, 0, zap.NewNop())
	assert.Error(t, err)
}

func TestCompile_RuntimeErrorCaughtAtLoad(t *testing.T) {
	_, err := scripting.Compile("bad", `return nothing.here`, 0, zap.NewNop())
	assert.Error(t, err)
}

func TestCompile_NonNumericResultRejected(t *testing.T) {
	_, err := scripting.Compile("str", `return "ten"`, 0, zap.NewNop())
	assert.Error(t, err)
}

func TestCompile_InvalidSidesRejected(t *testing.T) {
	_, err := scripting.Compile("zero", `return roll(1, 0)`, 0, zap.NewNop())
	assert.Error(t, err)
}

func TestCompile_RunawayScriptRejected(t *testing.T) {
	_, err := scripting.Compile("loop", `while true do end return 1`, 50, zap.NewNop())
	assert.Error(t, err)
}

func TestFormula_NegativeClampedToZero(t *testing.T) {
	s, _ := compile(t, `return bonus - 10`)
	got, err := s.WithBonus(2).Roll(minRoller)
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestFormula_RuntimeErrorReturned(t *testing.T) {
	s, _ := compile(t, `local r = roll(1, 8) if r < 5 then error("low roll") end return r`)
	f := s.WithBonus(0)

	_, err := f.Roll(minRoller)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "low roll")

	// The failed VM is discarded; the next evaluation still works.
	got, err := f.Roll(dice.RollerFunc(func(int, int, int) int { return 6 }))
	require.NoError(t, err)
	assert.Equal(t, 6, got)
}

func TestCompile_LogsAtDebug(t *testing.T) {
	_, logs := compile(t, `return 1`)
	entries := logs.FilterMessage("damage script compiled").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "test", entries[0].ContextMap()["script"])
}

func TestRoll_DiceCountCapped(t *testing.T) {
	_, err := scripting.Compile("huge", `return roll(200000000, 6)`, 0, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "count must be in [0, 10000]")

	_, err = scripting.Compile("limit", `return roll(100, 6)`, 100, zap.NewNop())
	assert.NoError(t, err)
	_, err = scripting.Compile("over", `return roll(101, 6)`, 100, zap.NewNop())
	assert.Error(t, err)
}

func TestFormula_ConcurrentEvaluation(t *testing.T) {
	s, _ := compile(t, `return roll(1, 6, bonus)`)
	f := s.WithBonus(1)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(stream uint64) {
			defer wg.Done()
			r := dice.NewRoller(dice.NewSeededSource(9, stream))
			for i := 0; i < 200; i++ {
				v, err := f.Roll(r)
				assert.NoError(t, err)
				assert.GreaterOrEqual(t, v, 2)
				assert.LessOrEqual(t, v, 7)
			}
		}(uint64(w))
	}
	wg.Wait()
}

func TestFormula_ImplementsDiceFormula(t *testing.T) {
	s, _ := compile(t, `return 4`)
	var f dice.Formula = s.WithBonus(0)
	got, err := f.Roll(minRoller)
	require.NoError(t, err)
	assert.Equal(t, 4, got)
}
