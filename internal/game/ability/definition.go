// Package ability provides the static ability catalog consumed by the
// combat resolver: per-weapon-type ability definitions and the status
// effects they apply.
package ability

import (
	"errors"
	"fmt"

	"github.com/ShadyDingo/idleduelist/internal/game/effect"
	"github.com/ShadyDingo/idleduelist/internal/game/inventory"
)

// Target selects who a status effect lands on.
type Target string

const (
	TargetSelf  Target = "self"
	TargetEnemy Target = "enemy"
)

// DefaultCritMultiplier is applied to ability damage on a critical hit
// unless the definition overrides it.
const DefaultCritMultiplier = 2.0

// StatusTemplate describes one status effect an ability may apply.
type StatusTemplate struct {
	Kind      effect.Kind `yaml:"kind"`
	Magnitude float64     `yaml:"magnitude"`
	Duration  float64     `yaml:"duration"` // seconds
	Chance    float64     `yaml:"chance"`   // application probability in (0, 1]
	Target    Target      `yaml:"target"`
	MaxStacks int         `yaml:"max_stacks"` // 0 = single instance
	Area      bool        `yaml:"area"`
}

// Validate checks that the template satisfies its invariants.
//
// Postcondition: Returns nil iff kind, chance, duration, and target are valid.
func (t StatusTemplate) Validate() error {
	if !t.Kind.Valid() {
		return fmt.Errorf("unknown status kind %q", t.Kind)
	}
	if t.Chance <= 0 || t.Chance > 1 {
		return fmt.Errorf("chance must be in (0, 1], got %f", t.Chance)
	}
	if t.Duration <= 0 {
		return fmt.Errorf("duration must be > 0, got %f", t.Duration)
	}
	if t.Target != TargetSelf && t.Target != TargetEnemy {
		return fmt.Errorf("target must be self or enemy, got %q", t.Target)
	}
	if t.MaxStacks < 0 {
		return fmt.Errorf("max_stacks must be >= 0, got %d", t.MaxStacks)
	}
	return nil
}

// Definition is the static definition of one ability, loaded from YAML.
type Definition struct {
	ID               string               `yaml:"id"`
	Name             string               `yaml:"name"`
	WeaponType       inventory.WeaponType `yaml:"weapon_type"`
	DamageKind       inventory.DamageKind `yaml:"damage_kind"`
	DamageMultiplier float64              `yaml:"damage_multiplier"`
	Hits             int                  `yaml:"hits"`
	Cooldown         float64              `yaml:"cooldown"` // seconds
	ManaCost         float64              `yaml:"mana_cost"`
	CritMultiplier   float64              `yaml:"crit_multiplier"` // 0 = DefaultCritMultiplier
	Ultimate         bool                 `yaml:"ultimate"`
	Statuses         []StatusTemplate     `yaml:"statuses"`
}

// EffectiveCritMultiplier returns the crit multiplier, applying the
// default when the definition does not override it.
//
// Postcondition: Returns > 1.
func (d *Definition) EffectiveCritMultiplier() float64 {
	if d.CritMultiplier > 0 {
		return d.CritMultiplier
	}
	return DefaultCritMultiplier
}

// Validate checks that the Definition satisfies its invariants.
//
// Precondition: d is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (d *Definition) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("ID must not be empty"))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if _, err := inventory.ParseWeaponType(string(d.WeaponType)); err != nil || d.WeaponType == inventory.WeaponShield {
		errs = append(errs, fmt.Errorf("WeaponType must be an attacking weapon type, got %q", d.WeaponType))
	}
	if d.DamageKind != inventory.DamagePhysical && d.DamageKind != inventory.DamageMagical {
		errs = append(errs, fmt.Errorf("DamageKind must be physical or magical, got %q", d.DamageKind))
	}
	if d.DamageMultiplier <= 0 {
		errs = append(errs, errors.New("DamageMultiplier must be > 0"))
	}
	if d.Hits < 1 {
		errs = append(errs, errors.New("Hits must be >= 1"))
	}
	if d.Cooldown < 0 {
		errs = append(errs, errors.New("Cooldown must be >= 0"))
	}
	if d.ManaCost < 0 {
		errs = append(errs, errors.New("ManaCost must be >= 0"))
	}
	if d.CritMultiplier < 0 {
		errs = append(errs, errors.New("CritMultiplier must be >= 0"))
	}
	for i, st := range d.Statuses {
		if err := st.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("statuses[%d]: %w", i, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("ability validation failed: %v", errs)
	}
	return nil
}
