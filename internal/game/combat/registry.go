package combat

import (
	"errors"
	"fmt"
	"slices"
)

// Params are the weapon-specific integer parameters of an action, keyed by
// their YAML names (e.g. "num_attacks", "discharge_threshold").
type Params map[string]int

// Defaults for optional parameters.
const (
	DefaultStackCap            = 3
	DefaultTokensPerHit        = 1
	DefaultDischargeCoeff      = 1
	DefaultStakeCountdown      = 3
	DefaultGlaiveMaxTokens     = 3
	DefaultHammerStreak        = 3
	DefaultVulnerableDie       = 6
	DefaultLanceFollowUpChance = 50
)

// builders maps every variant to its constructor.
var builders = map[Variant]func(p *paramReader) Action{
	VariantSimple: func(*paramReader) Action { return Simple{} },
	VariantStacking: func(p *paramReader) Action {
		return Stacking{
			Bonus: p.required("stack_bonus", 0),
			Cap:   p.optional("stack_cap", DefaultStackCap, 0),
		}
	},
	VariantFormSwitch: func(p *paramReader) Action {
		return FormSwitch{
			Threshold:   p.required("form_switch_threshold", 1),
			Duration:    p.required("form_duration", 1),
			AttackBonus: p.optional("form_attack_bonus", 0, 0),
			DamageBonus: p.optional("form_damage_bonus", 0, 0),
		}
	},
	VariantChargeBlade: func(p *paramReader) Action {
		threshold := p.required("discharge_threshold", 1)
		a := ChargeBlade{
			Threshold:    threshold,
			Targets:      p.optional("num_aoe_targets", 1, 1),
			TokensPerHit: p.optional("tokens_per_hit", DefaultTokensPerHit, 1),
			MaxTokens:    p.optional("max_tokens", threshold, 1),
			Coefficient:  p.optional("discharge_coefficient", DefaultDischargeCoeff, 0),
		}
		if a.MaxTokens < a.Threshold {
			p.fail(fmt.Errorf("max_tokens %d must be >= discharge_threshold %d", a.MaxTokens, a.Threshold))
		}
		return a
	},
	VariantMulti: func(p *paramReader) Action {
		return MultiAttack{Attacks: p.required("num_attacks", 1)}
	},
	VariantWyvernstake: func(p *paramReader) Action {
		return Wyvernstake{Countdown: p.optional("stake_countdown", DefaultStakeCountdown, 1)}
	},
	VariantInsectGlaive: func(p *paramReader) Action {
		return InsectGlaive{
			AttackBonus: p.required("glaive_attack_bonus", 0),
			DamageBonus: p.required("glaive_damage_bonus", 0),
			MaxTokens:   p.optional("max_tokens", DefaultGlaiveMaxTokens, 2),
		}
	},
	VariantAoE: func(p *paramReader) Action {
		return AoE{Targets: p.required("num_aoe_targets", 1)}
	},
	VariantGreatHammer: func(p *paramReader) Action {
		return GreatHammer{
			StreakThreshold: p.optional("streak_threshold", DefaultHammerStreak, 1),
			Duration:        p.required("vulnerable_duration", 1),
			AttackDie:       p.optional("vulnerable_attack_die", DefaultVulnerableDie, 1),
			DamageDie:       p.optional("vulnerable_damage_die", DefaultVulnerableDie, 1),
		}
	},
	VariantLance: func(p *paramReader) Action {
		chance := p.optional("follow_up_chance", DefaultLanceFollowUpChance, 0)
		if chance > 100 {
			p.fail(fmt.Errorf("follow_up_chance must be a percentage in [0, 100], got %d", chance))
		}
		return Lance{FollowUpPercent: chance}
	},
	VariantLightBowgun: func(*paramReader) Action { return LightBowgun{} },
	VariantHeavyBowgun: func(p *paramReader) Action {
		return HeavyBowgun{
			Stacks:         p.required("buff_stacks", 0),
			AttackPerStack: p.optional("buff_attack_per_stack", 1, 0),
			DamagePerStack: p.optional("buff_damage_per_stack", 1, 0),
		}
	},
}

// Variants returns every known variant in lexical order.
func Variants() []Variant {
	out := make([]Variant, 0, len(builders))
	for v := range builders {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// NewAction selects and configures the action for variant.
//
// Postcondition: returns ErrConfiguration for an unknown variant, a missing
// required parameter, a parameter below its minimum, or a parameter the
// variant does not use.
func NewAction(variant Variant, params Params) (Action, error) {
	build, ok := builders[variant]
	if !ok {
		return nil, fmt.Errorf("%w: unknown variant %q", ErrConfiguration, variant)
	}
	p := &paramReader{params: params, used: make(map[string]bool, len(params))}
	a := build(p)
	if err := p.err(); err != nil {
		return nil, fmt.Errorf("%w: variant %q: %w", ErrConfiguration, variant, err)
	}
	return a, nil
}

// paramReader collects every parameter problem instead of stopping at the first.
type paramReader struct {
	params Params
	used   map[string]bool
	errs   []error
}

func (p *paramReader) fail(err error) { p.errs = append(p.errs, err) }

func (p *paramReader) required(key string, minimum int) int {
	p.used[key] = true
	v, ok := p.params[key]
	if !ok {
		p.fail(fmt.Errorf("missing required parameter %q", key))
		return 0
	}
	return p.atLeast(key, v, minimum)
}

func (p *paramReader) optional(key string, def, minimum int) int {
	p.used[key] = true
	v, ok := p.params[key]
	if !ok {
		return def
	}
	return p.atLeast(key, v, minimum)
}

func (p *paramReader) atLeast(key string, v, minimum int) int {
	if v < minimum {
		p.fail(fmt.Errorf("parameter %q must be >= %d, got %d", key, minimum, v))
	}
	return v
}

func (p *paramReader) err() error {
	var unknown []string
	for key := range p.params {
		if !p.used[key] {
			unknown = append(unknown, key)
		}
	}
	slices.Sort(unknown)
	for _, key := range unknown {
		p.fail(fmt.Errorf("unknown parameter %q", key))
	}
	return errors.Join(p.errs...)
}
