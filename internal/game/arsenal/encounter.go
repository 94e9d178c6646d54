package arsenal

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/huntsim/internal/game/combat"
)

// Encounter is the opponent every weapon is measured against, together with
// the attacker's to-hit modifier at each proficiency level.
type Encounter struct {
	Defender        DefenderSpec `yaml:"defender"`
	AttackModifiers []int        `yaml:"attack_modifiers"`
}

// DefenderSpec is the YAML shape of combat.Defender.
type DefenderSpec struct {
	Defense    int             `yaml:"defense"`
	Thresholds []ThresholdSpec `yaml:"thresholds"`
}

// ThresholdSpec accepts either a [t1, t2] pair or a {lower, upper} mapping.
type ThresholdSpec combat.Threshold

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *ThresholdSpec) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.SequenceNode {
		var pair []int
		if err := n.Decode(&pair); err != nil {
			return err
		}
		if len(pair) != 2 {
			return fmt.Errorf("line %d: threshold must be [t1, t2], got %d values", n.Line, len(pair))
		}
		t.Lower, t.Upper = pair[0], pair[1]
		return nil
	}
	var th combat.Threshold
	if err := n.Decode(&th); err != nil {
		return err
	}
	*t = ThresholdSpec(th)
	return nil
}

// Levels returns the number of proficiency levels the encounter defines.
func (e *Encounter) Levels() int { return len(e.Defender.Thresholds) }

// NewDefender returns the combat defender described by e.
func (e *Encounter) NewDefender() *combat.Defender {
	def := &combat.Defender{
		Defense:    e.Defender.Defense,
		Thresholds: make([]combat.Threshold, len(e.Defender.Thresholds)),
	}
	for i, t := range e.Defender.Thresholds {
		def.Thresholds[i] = combat.Threshold(t)
	}
	return def
}

// AttackModifier returns the to-hit modifier for level.
//
// Postcondition: returns ErrConfiguration when level is outside [1, Levels()].
func (e *Encounter) AttackModifier(level int) (int, error) {
	if level < 1 || level > len(e.AttackModifiers) {
		return 0, fmt.Errorf("%w: proficiency level %d outside [1, %d]", combat.ErrConfiguration, level, len(e.AttackModifiers))
	}
	return e.AttackModifiers[level-1], nil
}

// Validate checks the defender and that every level has an attack modifier.
func (e *Encounter) Validate() error {
	var errs []error
	if err := e.NewDefender().Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(e.AttackModifiers) != e.Levels() {
		errs = append(errs, fmt.Errorf("%w: %d attack modifiers for %d proficiency levels",
			combat.ErrConfiguration, len(e.AttackModifiers), e.Levels()))
	}
	return errors.Join(errs...)
}

// LoadEncounter reads and validates the encounter file at path.
func LoadEncounter(path string) (*Encounter, error) {
	var e Encounter
	if err := decodeFile(path, &e); err != nil {
		return nil, fmt.Errorf("LoadEncounter: %w", err)
	}
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("LoadEncounter: invalid encounter in %q: %w", path, err)
	}
	return &e, nil
}
