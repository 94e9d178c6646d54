// Package testutil provides deterministic fakes shared by package tests.
package testutil

// ScriptedRoller answers to-hit rolls (2d12) from a queue and every other
// roll by its number of sides. The last queued to-hit value repeats.
type ScriptedRoller struct {
	toHit []int
	// Other maps a die size to the total returned for any roll of that size.
	Other map[int]int
	// Mods records the modifier of every to-hit roll, in order.
	Mods []int
}

// NewScriptedRoller returns a roller whose to-hit rolls yield toHit in order.
//
// Precondition: len(toHit) >= 1.
func NewScriptedRoller(toHit ...int) *ScriptedRoller {
	if len(toHit) == 0 {
		panic("testutil.NewScriptedRoller: at least one to-hit value is required")
	}
	return &ScriptedRoller{toHit: toHit, Other: map[int]int{}}
}

// Roll implements dice.Roller.
func (s *ScriptedRoller) Roll(count, sides, modifier int) int {
	if count == 2 && sides == 12 {
		s.Mods = append(s.Mods, modifier)
		v := s.toHit[0]
		if len(s.toHit) > 1 {
			s.toHit = s.toHit[1:]
		}
		return v
	}
	return s.Other[sides]
}
