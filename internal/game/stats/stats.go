// Package stats derives combat statistics from base attributes and
// equipped gear. Derivation is pure: derived values are never stored
// independently of their inputs.
package stats

import (
	"fmt"

	"github.com/ShadyDingo/idleduelist/internal/game/inventory"
)

// Stat caps. Chance stats are hard-capped regardless of attribute investment.
const (
	CritCap  = 0.50
	DodgeCap = 0.25
	ParryCap = 0.15
)

// Dual-wield trade-off: faster swings, weaker individual hits.
const (
	// DualWieldDamagePenalty scales per-hit damage when dual-wielding.
	DualWieldDamagePenalty = 0.70
	// DualWieldSpeedBonus scales the attack interval when dual-wielding.
	DualWieldSpeedBonus = 0.80
)

// shieldDefenseBonus scales total defense when a shield occupies the off-hand.
const shieldDefenseBonus = 1.15

// Base pools granted before attribute scaling.
const (
	baseHP        = 100
	baseMana      = 50
	baseManaRegen = 1.0
)

// Attributes holds the six player-allocated base attribute values.
type Attributes struct {
	Might     int
	Agility   int
	Vitality  int
	Intellect int
	Wisdom    int
	Charisma  int
}

// Validate checks that no attribute is negative.
//
// Postcondition: Returns nil iff every attribute is >= 0.
func (a Attributes) Validate() error {
	for _, v := range []struct {
		name  string
		value int
	}{
		{"might", a.Might}, {"agility", a.Agility}, {"vitality", a.Vitality},
		{"intellect", a.Intellect}, {"wisdom", a.Wisdom}, {"charisma", a.Charisma},
	} {
		if v.value < 0 {
			return fmt.Errorf("stats: attribute %s must be >= 0, got %d", v.name, v.value)
		}
	}
	return nil
}

// Plus returns a copy of a with the given equipment bonuses added.
func (a Attributes) Plus(bonuses map[inventory.Attribute]int) Attributes {
	out := a
	out.Might += bonuses[inventory.AttrMight]
	out.Agility += bonuses[inventory.AttrAgility]
	out.Vitality += bonuses[inventory.AttrVitality]
	out.Intellect += bonuses[inventory.AttrIntellect]
	out.Wisdom += bonuses[inventory.AttrWisdom]
	out.Charisma += bonuses[inventory.AttrCharisma]
	return out
}

// Derived holds all combat statistics computed from attributes and gear.
type Derived struct {
	AttackPower    float64
	SpellPower     float64
	Defense        float64
	MagicResist    float64
	CritChance     float64
	DodgeChance    float64
	ParryChance    float64
	MaxHP          float64
	MaxMana        float64
	ManaRegen      float64 // mana per second
	AttackInterval float64 // seconds between auto-attacks; 0 when unarmed
	DualWield      bool
	DamageKind     inventory.DamageKind // main-hand damage kind
}

// Derive computes all derived stats for the given attributes and
// equipment. Equipment stat bonuses are added to the base attributes
// before every formula is evaluated; gear never bypasses the
// attribute pipeline.
//
// Precondition: attrs must pass Validate(); eq and catalog must be non-nil.
// Postcondition: CritChance <= CritCap, DodgeChance <= DodgeCap,
// ParryChance <= ParryCap; MaxHP and MaxMana are strictly positive.
func Derive(attrs Attributes, eq *inventory.Equipment, catalog *inventory.WeaponCatalog) Derived {
	eff := attrs.Plus(eq.AttributeBonuses())

	d := Derived{
		AttackPower: float64(eff.Might)*2 + float64(eff.Agility) + eq.WeaponAttack(catalog),
		SpellPower:  float64(eff.Intellect)*2 + float64(eff.Wisdom),
		Defense:     float64(eff.Vitality)*1.5 + eq.ArmorDefense(),
		MagicResist: float64(eff.Wisdom)*1.2 + float64(eff.Vitality)*0.8,
		CritChance:  capped(0.05+float64(eff.Agility+eff.Intellect)*0.002, CritCap),
		DodgeChance: capped(0.02+float64(eff.Agility+eff.Wisdom)*0.0015, DodgeCap),
		ParryChance: capped(0.02+float64(eff.Might+eff.Vitality)*0.001, ParryCap),
		MaxHP:       baseHP + float64(eff.Might)*2 + float64(eff.Vitality)*8,
		MaxMana:     baseMana + float64(eff.Intellect)*6 + float64(eff.Wisdom)*3,
		ManaRegen:   baseManaRegen + float64(eff.Wisdom)*0.1,
		DualWield:   eq.DualWield(),
		DamageKind:  inventory.DamagePhysical,
	}

	if eq.HasShield() {
		d.Defense *= shieldDefenseBonus
	}

	if main := eq.MainHand(); main != nil && main.IsWeapon() {
		if def, ok := catalog.Get(main.WeaponType); ok {
			d.AttackInterval = def.AttackInterval
			d.DamageKind = def.DamageKind
			if d.DualWield {
				d.AttackInterval *= DualWieldSpeedBonus
			}
		}
	}

	return d
}

// Power returns the power stat matching the given damage kind.
func (d Derived) Power(kind inventory.DamageKind) float64 {
	if kind == inventory.DamageMagical {
		return d.SpellPower
	}
	return d.AttackPower
}

func capped(v, cap float64) float64 {
	if v > cap {
		return cap
	}
	return v
}
