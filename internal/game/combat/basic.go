package combat

// Simple hits for one damage sample or misses for nothing.
type Simple struct{ stateless }

func (Simple) Variant() Variant { return VariantSimple }

func (Simple) Resolve(_ State, atk *Attacker, def *Defender, turn Turn) Result {
	return turn.strike(atk, def, 0, 0)
}

// MultiAttack makes Attacks independent attacks each round.
type MultiAttack struct {
	stateless
	Attacks int
}

func (MultiAttack) Variant() Variant { return VariantMulti }

func (a MultiAttack) Resolve(_ State, atk *Attacker, def *Defender, turn Turn) Result {
	var res Result
	for i := 0; i < a.Attacks; i++ {
		res.Add(turn.strike(atk, def, 0, 0))
	}
	return res
}

// AoE makes one attack whose damage sample lands on every target.
type AoE struct {
	stateless
	Targets int
}

func (AoE) Variant() Variant { return VariantAoE }

func (a AoE) Resolve(_ State, atk *Attacker, def *Defender, turn Turn) Result {
	if !turn.attack(atk.AttackModifier, def) {
		return Result{}
	}
	return Result{Damage: turn.damage(atk) * a.Targets, Hits: a.Targets}
}

// Lance attacks once, then follows up with FollowUpPercent chance.
type Lance struct {
	stateless
	FollowUpPercent int
}

func (Lance) Variant() Variant { return VariantLance }

func (a Lance) Resolve(_ State, atk *Attacker, def *Defender, turn Turn) Result {
	res := turn.strike(atk, def, 0, 0)
	if turn.Dice.Roll(1, 100, 0) <= a.FollowUpPercent {
		res.Add(turn.strike(atk, def, 0, 0))
	}
	return res
}

// LightBowgun re-rolls a missed to-hit check once.
type LightBowgun struct{ stateless }

func (LightBowgun) Variant() Variant { return VariantLightBowgun }

func (LightBowgun) Resolve(_ State, atk *Attacker, def *Defender, turn Turn) Result {
	if !turn.attack(atk.AttackModifier, def) && !turn.attack(atk.AttackModifier, def) {
		return Result{}
	}
	return Result{Damage: turn.damage(atk), Hits: 1}
}

// HeavyBowgun carries a fixed number of buff stacks, each adding to the
// to-hit roll and to damage.
type HeavyBowgun struct {
	stateless
	Stacks         int
	AttackPerStack int
	DamagePerStack int
}

func (HeavyBowgun) Variant() Variant { return VariantHeavyBowgun }

func (a HeavyBowgun) Resolve(_ State, atk *Attacker, def *Defender, turn Turn) Result {
	return turn.strike(atk, def, a.Stacks*a.AttackPerStack, a.Stacks*a.DamagePerStack)
}
