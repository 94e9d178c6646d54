package scripting

import (
	"fmt"
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
	"go.uber.org/zap"

	"github.com/cory-johannsen/huntsim/internal/game/dice"
)

// Script is a compiled damage formula. One Script may back many Formulas
// (one per proficiency level) and is safe for concurrent use: every goroutine
// evaluates on its own pooled LState.
//
// Scripts must not keep state in globals between evaluations; pooled LStates
// are reused across battles. A single roll() call may request at most limit
// dice; Go-side dice do not count against the instruction budget.
type Script struct {
	name  string
	proto *lua.FunctionProto
	limit int
	pool  sync.Pool
}

// vm is one pooled sandbox. roller is rebound for every evaluation.
type vm struct {
	L      *lua.LState
	roller dice.Roller
}

// Compile parses and compiles source, then evaluates it once against a
// deterministic roller so that runtime errors surface at load time.
//
// Precondition: logger must be non-nil; limit <= 0 uses DefaultInstructionLimit.
// Postcondition: Returns a ready Script or a non-nil error.
func Compile(name, source string, limit int, logger *zap.Logger) (*Script, error) {
	chunk, err := parse.Parse(strings.NewReader(source), name)
	if err != nil {
		return nil, fmt.Errorf("scripting: parsing %q: %w", name, err)
	}
	proto, err := lua.Compile(chunk, name)
	if err != nil {
		return nil, fmt.Errorf("scripting: compiling %q: %w", name, err)
	}
	if limit <= 0 {
		limit = DefaultInstructionLimit
	}
	s := &Script{name: name, proto: proto, limit: limit}
	s.pool.New = func() any { return newVM(limit) }

	if _, err := s.eval(dryRunRoller, 0); err != nil {
		return nil, err
	}
	logger.Debug("damage script compiled",
		zap.String("script", name),
		zap.Int("instruction_limit", limit),
	)
	return s, nil
}

// dryRunRoller returns the highest face of every die.
var dryRunRoller = dice.RollerFunc(func(count, sides, modifier int) int {
	return count*sides + modifier
})

func newVM(maxDice int) *vm {
	v := &vm{L: NewSandboxedState()}
	v.L.SetGlobal("roll", v.L.NewFunction(func(L *lua.LState) int {
		count := L.CheckInt(1)
		sides := L.CheckInt(2)
		mod := L.OptInt(3, 0)
		if sides <= 0 {
			L.ArgError(2, "sides must be > 0")
			return 0
		}
		if count < 0 || count > maxDice {
			L.ArgError(1, fmt.Sprintf("count must be in [0, %d]", maxDice))
			return 0
		}
		L.Push(lua.LNumber(v.roller.Roll(count, sides, mod)))
		return 1
	}))
	return v
}

// eval runs the script once. A VM that errored is closed instead of pooled.
func (s *Script) eval(r dice.Roller, bonus int) (int, error) {
	v := s.pool.Get().(*vm)
	v.roller = r
	v.L.SetGlobal("bonus", lua.LNumber(bonus))

	release := limitInstructions(v.L, s.limit)
	v.L.Push(v.L.NewFunctionFromProto(s.proto))
	err := v.L.PCall(0, 1, nil)
	release()
	v.roller = nil
	if err != nil {
		v.L.Close()
		return 0, fmt.Errorf("scripting: evaluating %q: %w", s.name, err)
	}

	ret := v.L.Get(-1)
	v.L.Pop(1)
	s.pool.Put(v)

	n, ok := ret.(lua.LNumber)
	if !ok {
		return 0, fmt.Errorf("scripting: %q returned %s, want number", s.name, ret.Type())
	}
	return max(0, int(n)), nil
}

// Formula binds a Script to a flat bonus, exposed to the script as the global
// bonus. It implements dice.Formula.
type Formula struct {
	script *Script
	bonus  int
}

// WithBonus returns a Formula evaluating s with bonus.
func (s *Script) WithBonus(bonus int) Formula {
	return Formula{script: s, bonus: bonus}
}

// Roll implements dice.Formula. A Lua runtime error is returned, never
// turned into a sample.
func (f Formula) Roll(r dice.Roller) (int, error) {
	return f.script.eval(r, f.bonus)
}

// Validate implements dice.Formula by evaluating the script once.
func (f Formula) Validate() error {
	if f.script == nil {
		return fmt.Errorf("scripting: formula has no script")
	}
	_, err := f.script.eval(dryRunRoller, f.bonus)
	return err
}

func (f Formula) String() string {
	return fmt.Sprintf("script:%s%+d", f.script.name, f.bonus)
}
