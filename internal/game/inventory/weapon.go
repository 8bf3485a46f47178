package inventory

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DamageKind distinguishes physically mitigated damage from magically
// resisted damage.
type DamageKind string

const (
	DamagePhysical DamageKind = "physical"
	DamageMagical  DamageKind = "magical"
)

// WeaponDef defines the static combat properties of a weapon type,
// loaded from YAML.
type WeaponDef struct {
	Type           WeaponType `yaml:"type"`
	Name           string     `yaml:"name"`
	AttackInterval float64    `yaml:"attack_interval"` // seconds between auto-attacks
	AttackValue    float64    `yaml:"attack_value"`    // flat attack contribution
	DamageKind     DamageKind `yaml:"damage_kind"`
}

// IsShield reports whether this definition describes a shield rather
// than an attacking weapon.
func (w *WeaponDef) IsShield() bool {
	return w.Type == WeaponShield
}

// Validate checks that the WeaponDef satisfies its invariants.
//
// Precondition: w is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (w *WeaponDef) Validate() error {
	var errs []error
	if !validWeaponTypes[w.Type] {
		errs = append(errs, fmt.Errorf("Type must be a known weapon type, got %q", w.Type))
	}
	if w.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if !w.IsShield() {
		if w.AttackInterval <= 0 {
			errs = append(errs, errors.New("AttackInterval must be > 0"))
		}
		if w.AttackValue < 0 {
			errs = append(errs, errors.New("AttackValue must be >= 0"))
		}
		if w.DamageKind != DamagePhysical && w.DamageKind != DamageMagical {
			errs = append(errs, fmt.Errorf("DamageKind must be physical or magical, got %q", w.DamageKind))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("weapon validation failed: %v", errs)
	}
	return nil
}

// WeaponCatalog holds all known WeaponDefs keyed by weapon type.
type WeaponCatalog struct {
	defs map[WeaponType]*WeaponDef
}

// NewWeaponCatalog creates an empty WeaponCatalog.
func NewWeaponCatalog() *WeaponCatalog {
	return &WeaponCatalog{defs: make(map[WeaponType]*WeaponDef)}
}

// Register adds def to the catalog, overwriting any existing entry for
// the same type.
//
// Precondition: def must not be nil and must have passed Validate().
func (c *WeaponCatalog) Register(def *WeaponDef) {
	c.defs[def.Type] = def
}

// Get returns the WeaponDef for t, or (nil, false) if not found.
func (c *WeaponCatalog) Get(t WeaponType) (*WeaponDef, bool) {
	d, ok := c.defs[t]
	return d, ok
}

// LoadWeapons reads every *.yaml file in dir, parses each as a
// WeaponDef, validates it, and returns a populated WeaponCatalog.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns a non-nil catalog, or an error if any file
// fails to parse or validate.
func LoadWeapons(dir string) (*WeaponCatalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadWeapons: cannot read directory %q: %w", dir, err)
	}

	catalog := NewWeaponCatalog()
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadWeapons: cannot read file %q: %w", path, err)
		}
		var w WeaponDef
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&w); err != nil {
			return nil, fmt.Errorf("LoadWeapons: cannot parse file %q: %w", path, err)
		}
		if err := w.Validate(); err != nil {
			return nil, fmt.Errorf("LoadWeapons: invalid weapon in %q: %w", path, err)
		}
		catalog.Register(&w)
	}
	return catalog, nil
}

// DefaultWeaponCatalog returns the built-in reference weapon set. Used
// by tests and as a fallback when no content directory is configured.
func DefaultWeaponCatalog() *WeaponCatalog {
	catalog := NewWeaponCatalog()
	for _, def := range []*WeaponDef{
		{Type: WeaponSword, Name: "Sword", AttackInterval: 2.0, AttackValue: 12, DamageKind: DamagePhysical},
		{Type: WeaponAxe, Name: "Axe", AttackInterval: 2.6, AttackValue: 16, DamageKind: DamagePhysical},
		{Type: WeaponMace, Name: "Mace", AttackInterval: 2.4, AttackValue: 14, DamageKind: DamagePhysical},
		{Type: WeaponDagger, Name: "Dagger", AttackInterval: 1.5, AttackValue: 8, DamageKind: DamagePhysical},
		{Type: WeaponBow, Name: "Bow", AttackInterval: 2.2, AttackValue: 13, DamageKind: DamagePhysical},
		{Type: WeaponStaff, Name: "Staff", AttackInterval: 2.4, AttackValue: 10, DamageKind: DamageMagical},
		{Type: WeaponShield, Name: "Shield"},
	} {
		catalog.Register(def)
	}
	return catalog
}
