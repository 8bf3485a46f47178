// Package combat implements the IdleDuelist auto-combat resolution
// engine: combatant state, the session state machine, hit resolution,
// and time-gated advancement.
package combat

import (
	"time"

	"github.com/ShadyDingo/idleduelist/internal/game/ability"
	"github.com/ShadyDingo/idleduelist/internal/game/effect"
	"github.com/ShadyDingo/idleduelist/internal/game/inventory"
	"github.com/ShadyDingo/idleduelist/internal/game/stats"
)

// unarmedAttackInterval is the auto-attack cadence for a combatant with
// no main-hand weapon.
const unarmedAttackInterval = 2.5

// Spec describes one side of a fight as supplied by the caller.
type Spec struct {
	ID         string
	Name       string
	Level      int
	Attributes stats.Attributes
	Equipment  *inventory.Equipment
	// Loadout is the ordered list of ability ids to auto-fire, drawn
	// from the main-hand weapon type's pool. Ultimates are rejected.
	Loadout []string
	// ArmorPenetration is subtracted from the defender's physical
	// mitigation on this combatant's attacks.
	ArmorPenetration float64
	AutoAttack       bool
	AutoAbility      bool
}

// Combatant is one participant's combat-session-scoped state.
type Combatant struct {
	ID    string
	Name  string
	Level int

	Attributes stats.Attributes
	Equipment  *inventory.Equipment
	Derived    stats.Derived

	CurrentHP   float64
	CurrentMana float64

	ArmorPenetration float64
	AutoAttack       bool
	AutoAbility      bool

	// Loadout holds resolved ability definitions in firing-priority order.
	Loadout []*ability.Definition
	// Effects tracks active buffs and debuffs.
	Effects *effect.ActiveSet

	lastAttack time.Time
	lastRegen  time.Time
	lastDot    time.Time
	// cooldowns maps ability id to cooldown-expiry time.
	cooldowns map[string]time.Time
}

// NewCombatant validates spec against the catalogs and returns a
// combatant at full HP and mana with empty cooldowns and effects.
//
// Precondition: weapons and abilities must be non-nil.
// Postcondition: Returns a ready Combatant, or a *ValidationError
// naming the offending field: level < 1, negative attributes, invalid
// equipped item, main-hand weapon type missing from the catalog,
// unknown loadout ability id, loadout ability for the wrong weapon
// type, or an ultimate in the loadout.
func NewCombatant(spec Spec, weapons *inventory.WeaponCatalog, abilities *ability.Registry) (*Combatant, error) {
	who := spec.ID
	if who == "" {
		who = spec.Name
	}
	if spec.Level < 1 {
		return nil, validationErr(who, "level", "must be >= 1, got %d", spec.Level)
	}
	if err := spec.Attributes.Validate(); err != nil {
		return nil, validationErr(who, "attributes", "%v", err)
	}

	eq := spec.Equipment
	if eq == nil {
		eq = inventory.NewEquipment()
	}
	var mainType inventory.WeaponType
	for _, slot := range inventory.AllSlots {
		it := eq.Get(slot)
		if it == nil {
			continue
		}
		if err := it.Validate(); err != nil {
			return nil, validationErr(who, "equipment."+string(slot), "%v", err)
		}
		if it.WeaponType != "" {
			if _, ok := weapons.Get(it.WeaponType); !ok {
				return nil, validationErr(who, "equipment."+string(slot),
					"weapon type %q not in catalog", it.WeaponType)
			}
		}
	}
	if main := eq.MainHand(); main != nil {
		mainType = main.WeaponType
	}

	loadout := make([]*ability.Definition, 0, len(spec.Loadout))
	for _, id := range spec.Loadout {
		def, ok := abilities.ByID(id)
		if !ok {
			return nil, validationErr(who, "loadout", "unknown ability id %q", id)
		}
		if def.WeaponType != mainType {
			return nil, validationErr(who, "loadout",
				"ability %q requires weapon type %q, main hand is %q", id, def.WeaponType, mainType)
		}
		if def.Ultimate {
			return nil, validationErr(who, "loadout",
				"ability %q is an ultimate and cannot be auto-fired", id)
		}
		loadout = append(loadout, def)
	}

	derived := stats.Derive(spec.Attributes, eq, weapons)
	return &Combatant{
		ID:               spec.ID,
		Name:             spec.Name,
		Level:            spec.Level,
		Attributes:       spec.Attributes,
		Equipment:        eq,
		Derived:          derived,
		CurrentHP:        derived.MaxHP,
		CurrentMana:      derived.MaxMana,
		ArmorPenetration: spec.ArmorPenetration,
		AutoAttack:       spec.AutoAttack,
		AutoAbility:      spec.AutoAbility,
		Loadout:          loadout,
		Effects:          effect.NewActiveSet(),
		cooldowns:        make(map[string]time.Time),
	}, nil
}

// Alive reports whether the combatant can still act.
//
// Postcondition: Returns true iff CurrentHP > 0.
func (c *Combatant) Alive() bool { return c.CurrentHP > 0 }

// ApplyDamage reduces CurrentHP by amount, flooring at zero.
//
// Precondition: amount must be >= 0; negative amounts are ignored.
// Postcondition: 0 <= CurrentHP <= Derived.MaxHP.
func (c *Combatant) ApplyDamage(amount float64) {
	if amount < 0 {
		return
	}
	c.CurrentHP -= amount
	if c.CurrentHP < 0 {
		c.CurrentHP = 0
	}
}

// SpendMana deducts cost from CurrentMana.
//
// Postcondition: Returns false and leaves state unchanged when the
// combatant cannot afford cost; otherwise CurrentMana >= 0.
func (c *Combatant) SpendMana(cost float64) bool {
	if c.CurrentMana < cost {
		return false
	}
	c.CurrentMana -= cost
	return true
}

// regenMana accrues continuous mana regeneration through now, clamped
// to the maximum pool. Called once per advance.
func (c *Combatant) regenMana(now time.Time) {
	elapsed := now.Sub(c.lastRegen).Seconds()
	if elapsed <= 0 {
		return
	}
	c.CurrentMana += c.Derived.ManaRegen * elapsed
	if c.CurrentMana > c.Derived.MaxMana {
		c.CurrentMana = c.Derived.MaxMana
	}
	c.lastRegen = now
}

// attackInterval returns the effective seconds between auto-attacks at
// now, accounting for slows.
//
// Postcondition: Returns > 0.
func (c *Combatant) attackInterval(now time.Time) float64 {
	interval := c.Derived.AttackInterval
	if interval <= 0 {
		interval = unarmedAttackInterval
	}
	return interval * (1 + c.Effects.SlowPercent(now))
}

// attackReady reports whether the auto-attack cadence gate is open.
func (c *Combatant) attackReady(now time.Time) bool {
	return now.Sub(c.lastAttack).Seconds() >= c.attackInterval(now)
}

// abilityReady reports whether def is off-cooldown and affordable at now.
func (c *Combatant) abilityReady(def *ability.Definition, now time.Time) bool {
	if expiry, ok := c.cooldowns[def.ID]; ok && now.Before(expiry) {
		return false
	}
	return c.CurrentMana >= def.ManaCost
}

// CooldownExpiry returns the cooldown-expiry time for ability id and
// whether one is recorded.
func (c *Combatant) CooldownExpiry(id string) (time.Time, bool) {
	t, ok := c.cooldowns[id]
	return t, ok
}

// reset restores the combatant to fight-start state anchored at now:
// full HP and mana, no cooldowns, no effects, timers primed so that no
// action fires at zero elapsed time.
func (c *Combatant) reset(now time.Time) {
	c.CurrentHP = c.Derived.MaxHP
	c.CurrentMana = c.Derived.MaxMana
	c.Effects.Clear()
	c.cooldowns = make(map[string]time.Time)
	c.lastAttack = now
	c.lastRegen = now
	c.lastDot = now
}
