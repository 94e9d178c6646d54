package combat

import (
	"errors"
	"fmt"
)

// Stacking rewards consecutive hits: each hit raises a streak and adds
// min(streak, Cap) * Bonus damage; a miss lowers the streak by one.
type Stacking struct {
	Bonus int
	Cap   int
}

// StackingState is the Stacking streak. The streak itself is uncapped.
type StackingState struct {
	Streak Counter
}

func (s *StackingState) Check() error { return s.Streak.Check("streak") }

func (Stacking) Variant() Variant { return VariantStacking }

func (Stacking) NewState() State {
	return &StackingState{Streak: Counter{Max: Unbounded}}
}

func (a Stacking) Resolve(st State, atk *Attacker, def *Defender, turn Turn) Result {
	s := st.(*StackingState)
	if !turn.attack(atk.AttackModifier, def) {
		s.Streak.Sub(1)
		return Result{}
	}
	s.Streak.Add(1)
	return Result{Damage: turn.damage(atk) + min(s.Streak.Value, a.Cap)*a.Bonus, Hits: 1}
}

// FormSwitch accumulates hits until Threshold, then enters a form for
// Duration rounds with AttackBonus to hit and DamageBonus damage.
type FormSwitch struct {
	Threshold   int
	Duration    int
	AttackBonus int
	DamageBonus int
}

// FormState tracks the hit accumulator and the active form.
type FormState struct {
	Accumulated Counter
	Form        Timer
}

// Active reports whether the form is on.
func (s *FormState) Active() bool { return s.Form.Active() }

func (s *FormState) Check() error {
	err := errors.Join(s.Accumulated.Check("accumulated hits"), s.Form.Check("form rounds"))
	if err == nil && !s.Form.Active() && s.Accumulated.Value >= s.Accumulated.Max {
		err = fmt.Errorf("%w: form inactive with accumulator at threshold %d", ErrInvariant, s.Accumulated.Max)
	}
	return err
}

func (FormSwitch) Variant() Variant { return VariantFormSwitch }

func (a FormSwitch) NewState() State {
	return &FormState{
		Accumulated: Counter{Max: a.Threshold},
		Form:        Timer{Max: a.Duration},
	}
}

func (a FormSwitch) Resolve(st State, atk *Attacker, def *Defender, turn Turn) Result {
	s := st.(*FormState)
	if s.Form.Active() {
		res := turn.strike(atk, def, a.AttackBonus, a.DamageBonus)
		if s.Form.Tick() {
			s.Accumulated.Take()
		}
		return res
	}
	res := turn.strike(atk, def, 0, 0)
	if res.Hits > 0 {
		s.Accumulated.Add(1)
		if s.Accumulated.Value >= a.Threshold {
			s.Form.Start()
		}
	}
	return res
}

// ChargeBlade stores tokens on hits and discharges them once Threshold is
// reached, or on the final round if any remain. A landed discharge deals
// (sample + Coefficient * tokens²) to each of Targets; a missed one wastes
// the tokens.
type ChargeBlade struct {
	Threshold    int
	Targets      int
	TokensPerHit int
	MaxTokens    int
	Coefficient  int
}

// ChargeBladeState holds the stored tokens.
type ChargeBladeState struct {
	Tokens Counter
}

func (s *ChargeBladeState) Check() error { return s.Tokens.Check("charge tokens") }

func (ChargeBlade) Variant() Variant { return VariantChargeBlade }

func (a ChargeBlade) NewState() State {
	return &ChargeBladeState{Tokens: Counter{Max: a.MaxTokens}}
}

// DischargeBonus is the per-target bonus for consuming tokens.
func (a ChargeBlade) DischargeBonus(tokens int) int {
	return a.Coefficient * tokens * tokens
}

func (a ChargeBlade) Resolve(st State, atk *Attacker, def *Defender, turn Turn) Result {
	s := st.(*ChargeBladeState)
	if s.Tokens.Value >= a.Threshold || (turn.Final() && s.Tokens.Value > 0) {
		consumed := s.Tokens.Take()
		if !turn.attack(atk.AttackModifier, def) {
			return Result{}
		}
		perTarget := turn.damage(atk) + a.DischargeBonus(consumed)
		return Result{Damage: perTarget * a.Targets, Hits: a.Targets}
	}
	res := turn.strike(atk, def, 0, 0)
	if res.Hits > 0 {
		s.Tokens.Add(a.TokensPerHit)
	}
	return res
}

// Wyvernstake inserts a stake on a hit. While inserted, every hit's damage is
// also banked, and after Countdown rounds (the inserting round included) the
// stake detonates, adding the bank to that round's damage.
type Wyvernstake struct {
	Countdown int
}

// StakeState tracks the inserted stake.
type StakeState struct {
	Inserted    bool
	Countdown   Timer
	Accumulated int
}

func (s *StakeState) Check() error {
	if err := s.Countdown.Check("stake countdown"); err != nil {
		return err
	}
	if s.Inserted != s.Countdown.Active() {
		return fmt.Errorf("%w: stake inserted=%t with countdown %d", ErrInvariant, s.Inserted, s.Countdown.Remaining)
	}
	if s.Accumulated < 0 || (!s.Inserted && s.Accumulated != 0) {
		return fmt.Errorf("%w: stake accumulated damage %d (inserted=%t)", ErrInvariant, s.Accumulated, s.Inserted)
	}
	return nil
}

func (Wyvernstake) Variant() Variant { return VariantWyvernstake }

func (a Wyvernstake) NewState() State {
	return &StakeState{Countdown: Timer{Max: a.Countdown}}
}

func (a Wyvernstake) Resolve(st State, atk *Attacker, def *Defender, turn Turn) Result {
	s := st.(*StakeState)
	res := turn.strike(atk, def, 0, 0)
	if !s.Inserted {
		if res.Hits == 0 {
			return res
		}
		s.Inserted = true
		s.Countdown.Start()
	}
	s.Accumulated += res.Damage
	if s.Countdown.Tick() {
		res.Damage += s.Accumulated
		s.Inserted = false
		s.Accumulated = 0
	}
	return res
}

// InsectGlaive keeps up to MaxTokens extracts. One or more grants AttackBonus
// to hit, two or more also grants DamageBonus. Hits gain an extract, misses
// lose one.
type InsectGlaive struct {
	AttackBonus int
	DamageBonus int
	MaxTokens   int
}

// GlaiveState holds the extracts.
type GlaiveState struct {
	Tokens Counter
}

func (s *GlaiveState) Check() error { return s.Tokens.Check("extracts") }

func (InsectGlaive) Variant() Variant { return VariantInsectGlaive }

func (a InsectGlaive) NewState() State {
	return &GlaiveState{Tokens: Counter{Max: a.MaxTokens}}
}

func (a InsectGlaive) Resolve(st State, atk *Attacker, def *Defender, turn Turn) Result {
	s := st.(*GlaiveState)
	var attackBonus, damageBonus int
	if s.Tokens.Value >= 1 {
		attackBonus = a.AttackBonus
	}
	if s.Tokens.Value >= 2 {
		damageBonus = a.DamageBonus
	}
	res := turn.strike(atk, def, attackBonus, damageBonus)
	if res.Hits > 0 {
		s.Tokens.Add(1)
	} else {
		s.Tokens.Sub(1)
	}
	return res
}

// GreatHammer counts landed hits; reaching StreakThreshold makes the target
// vulnerable for Duration rounds, during which every attack adds a
// 1dAttackDie to hit and a 1dDamageDie to damage.
type GreatHammer struct {
	StreakThreshold int
	Duration        int
	AttackDie       int
	DamageDie       int
}

// HammerState tracks the hit streak and the vulnerability window.
type HammerState struct {
	Streak     Counter
	Vulnerable Timer
}

func (s *HammerState) Check() error {
	return errors.Join(s.Streak.Check("hammer streak"), s.Vulnerable.Check("vulnerability rounds"))
}

func (GreatHammer) Variant() Variant { return VariantGreatHammer }

func (a GreatHammer) NewState() State {
	return &HammerState{
		Streak:     Counter{Max: a.StreakThreshold},
		Vulnerable: Timer{Max: a.Duration},
	}
}

func (a GreatHammer) Resolve(st State, atk *Attacker, def *Defender, turn Turn) Result {
	s := st.(*HammerState)
	if s.Vulnerable.Active() {
		var res Result
		if turn.attack(atk.AttackModifier+turn.Dice.Roll(1, a.AttackDie, 0), def) {
			res = Result{Damage: turn.damage(atk) + turn.Dice.Roll(1, a.DamageDie, 0), Hits: 1}
		}
		s.Vulnerable.Tick()
		return res
	}
	res := turn.strike(atk, def, 0, 0)
	if res.Hits > 0 {
		s.Streak.Add(1)
		if s.Streak.Value >= a.StreakThreshold {
			s.Vulnerable.Start()
			s.Streak.Take()
		}
	}
	return res
}
