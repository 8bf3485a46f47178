package inventory

import (
	"errors"
	"fmt"
)

// Attribute names an item stat bonus target. Values mirror the six
// combatant base attributes.
type Attribute string

const (
	AttrMight     Attribute = "might"
	AttrAgility   Attribute = "agility"
	AttrVitality  Attribute = "vitality"
	AttrIntellect Attribute = "intellect"
	AttrWisdom    Attribute = "wisdom"
	AttrCharisma  Attribute = "charisma"
)

// AllAttributes lists the six attributes in canonical order.
var AllAttributes = []Attribute{
	AttrMight, AttrAgility, AttrVitality, AttrIntellect, AttrWisdom, AttrCharisma,
}

// validAttributes is the set of recognized attribute names.
var validAttributes = map[Attribute]bool{
	AttrMight:     true,
	AttrAgility:   true,
	AttrVitality:  true,
	AttrIntellect: true,
	AttrWisdom:    true,
	AttrCharisma:  true,
}

// Item is one piece of equippable gear. Weapon-slot items carry a
// WeaponType; armor-slot items carry a flat Defense value.
type Item struct {
	InstanceID string
	Name       string
	Slot       Slot
	Rarity     Rarity
	Level      int
	WeaponType WeaponType // weapon slots only; empty otherwise
	Defense    float64    // armor slots only; 0 for weapons
	Bonuses    map[Attribute]int
}

// IsWeapon reports whether the item is an attacking weapon (not a shield).
func (it *Item) IsWeapon() bool {
	return it.Slot.IsWeaponSlot() && it.WeaponType != "" && it.WeaponType != WeaponShield
}

// IsShield reports whether the item is a shield.
func (it *Item) IsShield() bool {
	return it.WeaponType == WeaponShield
}

// Validate checks that the Item satisfies its invariants.
//
// Precondition: it is non-nil.
// Postcondition: returns nil iff the item is well formed: valid slot and
// rarity, Level >= 1, weapon slots carry a weapon type, armor slots do
// not, bonus count within the rarity allowance, all bonuses > 0.
func (it *Item) Validate() error {
	var errs []error
	if it.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if !validSlots[it.Slot] {
		errs = append(errs, fmt.Errorf("Slot must be a known slot, got %q", it.Slot))
	}
	if !it.Rarity.Valid() {
		errs = append(errs, fmt.Errorf("Rarity out of range: %d", it.Rarity))
	}
	if it.Level < 1 {
		errs = append(errs, fmt.Errorf("Level must be >= 1, got %d", it.Level))
	}
	if it.Slot.IsWeaponSlot() {
		if it.WeaponType == "" {
			errs = append(errs, errors.New("weapon-slot items must carry a weapon type"))
		} else if !validWeaponTypes[it.WeaponType] {
			errs = append(errs, fmt.Errorf("unknown weapon type %q", it.WeaponType))
		}
	} else {
		if it.WeaponType != "" {
			errs = append(errs, fmt.Errorf("armor-slot item must not carry weapon type %q", it.WeaponType))
		}
		if it.Defense < 0 {
			errs = append(errs, errors.New("Defense must be >= 0"))
		}
	}
	if len(it.Bonuses) == 0 || len(it.Bonuses) > it.Rarity.BonusCount() {
		errs = append(errs, fmt.Errorf("bonus count %d outside [1, %d] for rarity %s",
			len(it.Bonuses), it.Rarity.BonusCount(), it.Rarity))
	}
	for attr, v := range it.Bonuses {
		if !validAttributes[attr] {
			errs = append(errs, fmt.Errorf("unknown bonus attribute %q", attr))
		}
		if v <= 0 {
			errs = append(errs, fmt.Errorf("bonus %q must be > 0, got %d", attr, v))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("item %q validation failed: %v", it.Name, errs)
	}
	return nil
}
