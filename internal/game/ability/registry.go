package ability

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ShadyDingo/idleduelist/internal/game/inventory"
)

// Registry holds all known ability Definitions, keyed by ID for O(1)
// lookup and grouped by weapon type in registration order.
type Registry struct {
	byID     map[string]*Definition
	byWeapon map[inventory.WeaponType][]*Definition
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:     make(map[string]*Definition),
		byWeapon: make(map[inventory.WeaponType][]*Definition),
	}
}

// Register adds def to the registry.
//
// Precondition: def must not be nil and must pass Validate().
// Postcondition: ByID(def.ID) returns def, or an error on duplicate ID.
func (r *Registry) Register(def *Definition) error {
	if err := def.Validate(); err != nil {
		return err
	}
	if _, exists := r.byID[def.ID]; exists {
		return fmt.Errorf("ability: duplicate id %q", def.ID)
	}
	r.byID[def.ID] = def
	r.byWeapon[def.WeaponType] = append(r.byWeapon[def.WeaponType], def)
	return nil
}

// ByID returns the Definition for id, or (nil, false) if not found.
func (r *Registry) ByID(id string) (*Definition, bool) {
	d, ok := r.byID[id]
	return d, ok
}

// ForWeaponType returns the abilities available to the given weapon
// type: regular abilities first, ultimates after, each group in
// registration order. The returned slice is a new allocation.
func (r *Registry) ForWeaponType(t inventory.WeaponType) []*Definition {
	defs := r.byWeapon[t]
	out := make([]*Definition, 0, len(defs))
	for _, d := range defs {
		if !d.Ultimate {
			out = append(out, d)
		}
	}
	for _, d := range defs {
		if d.Ultimate {
			out = append(out, d)
		}
	}
	return out
}

// Len returns the number of registered abilities.
func (r *Registry) Len() int { return len(r.byID) }

// LoadDirectory reads every *.yaml file in dir, parses each as a
// Definition, and returns a populated Registry.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns a non-nil Registry, or an error if any file
// fails to parse or validate.
func LoadDirectory(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading ability dir %q: %w", dir, err)
	}
	reg := NewRegistry()
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		var def Definition
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&def); err != nil {
			return nil, fmt.Errorf("parsing %q: %w", path, err)
		}
		if err := reg.Register(&def); err != nil {
			return nil, fmt.Errorf("registering %q: %w", path, err)
		}
	}
	return reg, nil
}
