package ability

import (
	"github.com/ShadyDingo/idleduelist/internal/game/effect"
	"github.com/ShadyDingo/idleduelist/internal/game/inventory"
)

// DefaultRegistry returns the built-in reference ability set: two
// regular abilities and one ultimate per attacking weapon type. Used by
// tests and as a fallback when no content directory is configured.
func DefaultRegistry() *Registry {
	reg := NewRegistry()
	for _, def := range defaultDefinitions() {
		// Definitions below are static and validated by tests; a
		// registration failure here is a programming error.
		if err := reg.Register(def); err != nil {
			panic("ability: invalid built-in definition: " + err.Error())
		}
	}
	return reg
}

func defaultDefinitions() []*Definition {
	return []*Definition{
		// Sword
		{
			ID: "sword_slash", Name: "Slash", WeaponType: inventory.WeaponSword,
			DamageKind: inventory.DamagePhysical, DamageMultiplier: 1.3, Hits: 1,
			Cooldown: 6, ManaCost: 15,
		},
		{
			ID: "sword_riposte", Name: "Riposte", WeaponType: inventory.WeaponSword,
			DamageKind: inventory.DamagePhysical, DamageMultiplier: 1.1, Hits: 1,
			Cooldown: 10, ManaCost: 20,
			Statuses: []StatusTemplate{{
				Kind: effect.KindDamageBoost, Magnitude: 0.15, Duration: 6,
				Chance: 1.0, Target: TargetSelf,
			}},
		},
		{
			ID: "sword_blade_storm", Name: "Blade Storm", WeaponType: inventory.WeaponSword,
			DamageKind: inventory.DamagePhysical, DamageMultiplier: 0.9, Hits: 4,
			Cooldown: 45, ManaCost: 60, Ultimate: true,
		},
		// Axe
		{
			ID: "axe_cleave", Name: "Cleave", WeaponType: inventory.WeaponAxe,
			DamageKind: inventory.DamagePhysical, DamageMultiplier: 1.5, Hits: 1,
			Cooldown: 8, ManaCost: 20,
		},
		{
			ID: "axe_rend", Name: "Rend", WeaponType: inventory.WeaponAxe,
			DamageKind: inventory.DamagePhysical, DamageMultiplier: 0.8, Hits: 1,
			Cooldown: 12, ManaCost: 25,
			Statuses: []StatusTemplate{{
				Kind: effect.KindPoison, Magnitude: 4, Duration: 8,
				Chance: 0.9, Target: TargetEnemy, MaxStacks: 3,
			}},
		},
		{
			ID: "axe_executioner", Name: "Executioner", WeaponType: inventory.WeaponAxe,
			DamageKind: inventory.DamagePhysical, DamageMultiplier: 2.4, Hits: 1,
			Cooldown: 50, ManaCost: 70, CritMultiplier: 2.5, Ultimate: true,
		},
		// Mace
		{
			ID: "mace_smash", Name: "Smash", WeaponType: inventory.WeaponMace,
			DamageKind: inventory.DamagePhysical, DamageMultiplier: 1.4, Hits: 1,
			Cooldown: 8, ManaCost: 20,
		},
		{
			ID: "mace_concuss", Name: "Concuss", WeaponType: inventory.WeaponMace,
			DamageKind: inventory.DamagePhysical, DamageMultiplier: 1.0, Hits: 1,
			Cooldown: 15, ManaCost: 30,
			Statuses: []StatusTemplate{{
				Kind: effect.KindStun, Magnitude: 1, Duration: 2,
				Chance: 0.5, Target: TargetEnemy,
			}},
		},
		{
			ID: "mace_earthbreaker", Name: "Earthbreaker", WeaponType: inventory.WeaponMace,
			DamageKind: inventory.DamagePhysical, DamageMultiplier: 2.0, Hits: 1,
			Cooldown: 48, ManaCost: 65, Ultimate: true,
			Statuses: []StatusTemplate{{
				Kind: effect.KindStun, Magnitude: 1, Duration: 3,
				Chance: 0.8, Target: TargetEnemy,
			}},
		},
		// Dagger
		{
			ID: "dagger_puncture", Name: "Puncture", WeaponType: inventory.WeaponDagger,
			DamageKind: inventory.DamagePhysical, DamageMultiplier: 1.2, Hits: 2,
			Cooldown: 6, ManaCost: 15,
		},
		{
			ID: "dagger_envenom", Name: "Envenom", WeaponType: inventory.WeaponDagger,
			DamageKind: inventory.DamagePhysical, DamageMultiplier: 0.7, Hits: 1,
			Cooldown: 10, ManaCost: 20,
			Statuses: []StatusTemplate{{
				Kind: effect.KindPoison, Magnitude: 6, Duration: 6,
				Chance: 1.0, Target: TargetEnemy, MaxStacks: 5,
			}},
		},
		{
			ID: "dagger_fan_of_knives", Name: "Fan of Knives", WeaponType: inventory.WeaponDagger,
			DamageKind: inventory.DamagePhysical, DamageMultiplier: 0.8, Hits: 5,
			Cooldown: 40, ManaCost: 55, Ultimate: true,
		},
		// Bow
		{
			ID: "bow_aimed_shot", Name: "Aimed Shot", WeaponType: inventory.WeaponBow,
			DamageKind: inventory.DamagePhysical, DamageMultiplier: 1.6, Hits: 1,
			Cooldown: 9, ManaCost: 20,
		},
		{
			ID: "bow_crippling_shot", Name: "Crippling Shot", WeaponType: inventory.WeaponBow,
			DamageKind: inventory.DamagePhysical, DamageMultiplier: 1.0, Hits: 1,
			Cooldown: 14, ManaCost: 25,
			Statuses: []StatusTemplate{{
				Kind: effect.KindSlow, Magnitude: 0.25, Duration: 5,
				Chance: 0.8, Target: TargetEnemy,
			}},
		},
		{
			ID: "bow_rain_of_arrows", Name: "Rain of Arrows", WeaponType: inventory.WeaponBow,
			DamageKind: inventory.DamagePhysical, DamageMultiplier: 0.7, Hits: 6,
			Cooldown: 55, ManaCost: 75, Ultimate: true,
			Statuses: []StatusTemplate{{
				Kind: effect.KindVulnerability, Magnitude: 0.10, Duration: 8,
				Chance: 0.6, Target: TargetEnemy, Area: true,
			}},
		},
		// Staff
		{
			ID: "staff_firebolt", Name: "Firebolt", WeaponType: inventory.WeaponStaff,
			DamageKind: inventory.DamageMagical, DamageMultiplier: 1.4, Hits: 1,
			Cooldown: 5, ManaCost: 18,
			Statuses: []StatusTemplate{{
				Kind: effect.KindBurn, Magnitude: 5, Duration: 6,
				Chance: 0.7, Target: TargetEnemy, MaxStacks: 3,
			}},
		},
		{
			ID: "staff_ward", Name: "Arcane Ward", WeaponType: inventory.WeaponStaff,
			DamageKind: inventory.DamageMagical, DamageMultiplier: 0.6, Hits: 1,
			Cooldown: 16, ManaCost: 25,
			Statuses: []StatusTemplate{{
				Kind: effect.KindDefenseBoost, Magnitude: 20, Duration: 8,
				Chance: 1.0, Target: TargetSelf,
			}},
		},
		{
			ID: "staff_meteor", Name: "Meteor", WeaponType: inventory.WeaponStaff,
			DamageKind: inventory.DamageMagical, DamageMultiplier: 2.8, Hits: 1,
			Cooldown: 60, ManaCost: 90, Ultimate: true,
			Statuses: []StatusTemplate{{
				Kind: effect.KindBurn, Magnitude: 8, Duration: 6,
				Chance: 1.0, Target: TargetEnemy, MaxStacks: 3, Area: true,
			}},
		},
	}
}
