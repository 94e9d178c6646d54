package arsenal

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/cory-johannsen/huntsim/internal/game/combat"
)

// Registry holds loaded weapon definitions indexed by ID.
type Registry struct {
	weapons map[string]*WeaponDef
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{weapons: make(map[string]*WeaponDef)}
}

// LoadRegistry loads every weapon in dir into a new Registry.
func LoadRegistry(dir string) (*Registry, error) {
	weapons, err := LoadWeapons(dir)
	if err != nil {
		return nil, err
	}
	r := NewRegistry()
	for _, w := range weapons {
		if err := r.Register(w); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds w to the registry.
//
// Precondition:  w must not be nil.
// Postcondition: Weapon(w.ID) returns w; returns error if w.ID already registered.
func (r *Registry) Register(w *WeaponDef) error {
	if _, exists := r.weapons[w.ID]; exists {
		return fmt.Errorf("arsenal: Registry.Register: weapon ID %q already registered", w.ID)
	}
	r.weapons[w.ID] = w
	return nil
}

// Weapon returns the WeaponDef for id, or nil if not found.
func (r *Registry) Weapon(id string) *WeaponDef {
	return r.weapons[id]
}

// All returns every registered WeaponDef ordered by ID.
func (r *Registry) All() []*WeaponDef {
	out := make([]*WeaponDef, 0, len(r.weapons))
	for _, w := range r.weapons {
		out = append(out, w)
	}
	slices.SortFunc(out, func(a, b *WeaponDef) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// Len returns the number of registered weapons.
func (r *Registry) Len() int { return len(r.weapons) }

// Validate checks that every weapon has a damage bonus for each proficiency
// level of enc.
//
// Postcondition: every short weapon is reported, wrapped in combat.ErrConfiguration.
func (r *Registry) Validate(enc *Encounter) error {
	var errs []error
	for _, w := range r.All() {
		if len(w.Bonuses) < enc.Levels() {
			errs = append(errs, fmt.Errorf("%w: weapon %q has %d bonuses for %d proficiency levels",
				combat.ErrConfiguration, w.ID, len(w.Bonuses), enc.Levels()))
		}
	}
	return errors.Join(errs...)
}
