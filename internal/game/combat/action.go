package combat

// Variant names one weapon archetype's state machine.
type Variant string

const (
	VariantSimple       Variant = "simple"
	VariantStacking     Variant = "stacking"
	VariantFormSwitch   Variant = "form_switch"
	VariantChargeBlade  Variant = "charge_blade"
	VariantMulti        Variant = "multi"
	VariantWyvernstake  Variant = "wyvernstake"
	VariantInsectGlaive Variant = "insect_glaive"
	VariantAoE          Variant = "aoe"
	VariantGreatHammer  Variant = "great_hammer"
	VariantLance        Variant = "lance"
	VariantLightBowgun  Variant = "light_bowgun"
	VariantHeavyBowgun  Variant = "heavy_bowgun"
)

// State is the mutable per-battle record of one action. Each variant has its
// own concrete State type.
type State interface {
	// Check reports a counter outside its declared range as ErrInvariant.
	Check() error
}

// Action is one weapon archetype's turn-resolution state machine.
//
// Implementations are immutable; all per-battle data lives in the State
// returned by NewState, so one Action may serve concurrent battles.
type Action interface {
	Variant() Variant
	// NewState returns a fresh state with every counter at rest.
	NewState() State
	// Resolve plays exactly one round and updates st in place.
	//
	// Precondition: st was produced by NewState on the same Action.
	// Postcondition: the returned Result is non-negative.
	Resolve(st State, atk *Attacker, def *Defender, turn Turn) Result
}

// Stateless is the State of actions that carry nothing between rounds.
type Stateless struct{}

// Check implements State.
func (Stateless) Check() error { return nil }

// stateless is embedded by actions without per-battle state.
type stateless struct{}

func (stateless) NewState() State { return Stateless{} }
