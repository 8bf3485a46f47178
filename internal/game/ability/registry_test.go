package ability_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShadyDingo/idleduelist/internal/game/ability"
	"github.com/ShadyDingo/idleduelist/internal/game/inventory"
)

// TestDefaultRegistry_Shape verifies the reference content ships exactly
// two regular abilities plus one ultimate per attacking weapon type.
func TestDefaultRegistry_Shape(t *testing.T) {
	reg := ability.DefaultRegistry()
	for _, wt := range []inventory.WeaponType{
		inventory.WeaponSword, inventory.WeaponAxe, inventory.WeaponMace,
		inventory.WeaponDagger, inventory.WeaponBow, inventory.WeaponStaff,
	} {
		defs := reg.ForWeaponType(wt)
		require.Len(t, defs, 3, "%s must have 3 abilities", wt)
		assert.False(t, defs[0].Ultimate)
		assert.False(t, defs[1].Ultimate)
		assert.True(t, defs[2].Ultimate, "ultimate must sort last for %s", wt)
		for _, d := range defs {
			assert.NoError(t, d.Validate())
		}
	}
	assert.Empty(t, reg.ForWeaponType(inventory.WeaponShield))
}

// TestRegistry_ByID verifies O(1) lookup and duplicate rejection.
func TestRegistry_ByID(t *testing.T) {
	reg := ability.DefaultRegistry()
	def, ok := reg.ByID("sword_slash")
	require.True(t, ok)
	assert.Equal(t, "Slash", def.Name)

	_, ok = reg.ByID("nonexistent")
	assert.False(t, ok)

	err := reg.Register(def)
	assert.Error(t, err, "duplicate ids must be rejected")
}

// TestRegistry_ArbitraryCount verifies the catalog supports more than
// the reference 2+1 per weapon type.
func TestRegistry_ArbitraryCount(t *testing.T) {
	reg := ability.NewRegistry()
	for _, id := range []string{"a", "b", "c", "d"} {
		require.NoError(t, reg.Register(&ability.Definition{
			ID: id, Name: id, WeaponType: inventory.WeaponSword,
			DamageKind: inventory.DamagePhysical, DamageMultiplier: 1, Hits: 1,
		}))
	}
	assert.Len(t, reg.ForWeaponType(inventory.WeaponSword), 4)
}

// TestLoadDirectory verifies YAML definitions load, and that unknown
// fields are rejected.
func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "slash.yaml"), []byte(`
id: sword_slash
name: Slash
weapon_type: sword
damage_kind: physical
damage_multiplier: 1.3
hits: 1
cooldown: 6
mana_cost: 15
statuses:
  - kind: damage_boost
    magnitude: 0.1
    duration: 5
    chance: 1.0
    target: self
`), 0o644))

	reg, err := ability.LoadDirectory(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, reg.Len())

	def, ok := reg.ByID("sword_slash")
	require.True(t, ok)
	assert.Equal(t, 2.0, def.EffectiveCritMultiplier(), "crit multiplier defaults to 2.0")
	require.Len(t, def.Statuses, 1)
	assert.Equal(t, ability.TargetSelf, def.Statuses[0].Target)
}

// TestLoadDirectory_UnknownField verifies strict decoding.
func TestLoadDirectory_UnknownField(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte(`
id: x
name: X
weapon_type: sword
damage_kind: physical
damage_multiplier: 1
hits: 1
bogus_field: true
`), 0o644))

	_, err := ability.LoadDirectory(dir)
	assert.Error(t, err)
}

// TestDefinition_Validate_Rejections covers the main invariants.
func TestDefinition_Validate_Rejections(t *testing.T) {
	base := func() *ability.Definition {
		return &ability.Definition{
			ID: "x", Name: "X", WeaponType: inventory.WeaponSword,
			DamageKind: inventory.DamagePhysical, DamageMultiplier: 1, Hits: 1,
		}
	}

	ok := base()
	assert.NoError(t, ok.Validate())

	noID := base()
	noID.ID = ""
	assert.Error(t, noID.Validate())

	shield := base()
	shield.WeaponType = inventory.WeaponShield
	assert.Error(t, shield.Validate(), "shields have no abilities")

	zeroHits := base()
	zeroHits.Hits = 0
	assert.Error(t, zeroHits.Validate())

	badStatus := base()
	badStatus.Statuses = []ability.StatusTemplate{{
		Kind: "poison", Magnitude: 1, Duration: 5, Chance: 1.5, Target: ability.TargetEnemy,
	}}
	assert.Error(t, badStatus.Validate(), "chance above 1 must be rejected")
}
