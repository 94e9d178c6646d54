// Package arsenal loads the weapon registry and the encounter it is measured
// against, and turns a weapon definition into a configured combatant.
package arsenal

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/huntsim/internal/game/combat"
)

// WeaponDef defines one weapon loaded from YAML.
type WeaponDef struct {
	ID      string         `yaml:"id"`
	Name    string         `yaml:"name"`
	Variant combat.Variant `yaml:"variant"`
	Damage  DamageSpec     `yaml:"damage"`
	// Bonuses holds the flat damage bonus for each proficiency level, level 1 first.
	Bonuses []int         `yaml:"bonuses"`
	Params  combat.Params `yaml:"params"`
}

// Validate checks that the WeaponDef is structurally sound.
//
// Precondition: w is non-nil.
// Postcondition: returns nil iff every field is valid; otherwise every problem
// is reported, wrapped in combat.ErrConfiguration.
func (w *WeaponDef) Validate() error {
	var errs []error
	if w.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if w.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if len(w.Bonuses) == 0 {
		errs = append(errs, errors.New("bonuses must list at least one proficiency level"))
	}
	if _, err := combat.NewAction(w.Variant, w.Params); err != nil {
		errs = append(errs, err)
	}
	if _, err := w.Damage.Formula(w.ID, 0, zap.NewNop()); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: weapon %q: %w", combat.ErrConfiguration, w.ID, errors.Join(errs...))
	}
	return nil
}

// Build configures the attacker and action for proficiency level against enc.
//
// Precondition: w and enc are valid.
// Postcondition: returns ErrConfiguration when level is outside enc's levels
// or w has no bonus for it.
func (w *WeaponDef) Build(level int, enc *Encounter, logger *zap.Logger) (*combat.Attacker, combat.Action, error) {
	mod, err := enc.AttackModifier(level)
	if err != nil {
		return nil, nil, err
	}
	if level > len(w.Bonuses) {
		return nil, nil, fmt.Errorf("%w: weapon %q has %d bonuses, level %d requested",
			combat.ErrConfiguration, w.ID, len(w.Bonuses), level)
	}
	formula, err := w.Damage.Formula(w.ID, w.Bonuses[level-1], logger)
	if err != nil {
		return nil, nil, fmt.Errorf("weapon %q: %w", w.ID, err)
	}
	action, err := combat.NewAction(w.Variant, w.Params)
	if err != nil {
		return nil, nil, fmt.Errorf("weapon %q: %w", w.ID, err)
	}
	atk := &combat.Attacker{Name: w.Name, AttackModifier: mod, Damage: formula}
	return atk, action, nil
}

// LoadWeapons reads all *.yaml files from dir, parses each as a WeaponDef,
// validates it, and returns them in file name order.
//
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid WeaponDefs or the first encountered error.
func LoadWeapons(dir string) ([]*WeaponDef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadWeapons: cannot read directory %q: %w", dir, err)
	}

	var weapons []*WeaponDef
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		var w WeaponDef
		if err := decodeFile(path, &w); err != nil {
			return nil, fmt.Errorf("LoadWeapons: %w", err)
		}
		if err := w.Validate(); err != nil {
			return nil, fmt.Errorf("LoadWeapons: invalid weapon in %q: %w", path, err)
		}
		weapons = append(weapons, &w)
	}
	return weapons, nil
}

// decodeFile strictly decodes the YAML document at path into out; unknown
// fields are errors.
func decodeFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read file %q: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("%w: cannot parse file %q: %w", combat.ErrConfiguration, path, err)
	}
	return nil
}
