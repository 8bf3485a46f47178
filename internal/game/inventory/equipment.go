package inventory

import "fmt"

// offHandWeaponPenalty scales the off-hand weapon's attack contribution
// when dual-wielding.
const offHandWeaponPenalty = 0.75

// Equipment tracks the items equipped on one combatant, at most one per
// slot. It is not safe for concurrent use; the owner must serialise access.
type Equipment struct {
	slots map[Slot]*Item
}

// NewEquipment creates an empty equipment set.
func NewEquipment() *Equipment {
	return &Equipment{slots: make(map[Slot]*Item)}
}

// Equip places item into its slot, replacing any existing occupant.
//
// Precondition: item must be non-nil and pass Validate().
// Postcondition: Get(item.Slot) returns item, or an error is returned
// and the set is unchanged. Shields are rejected from the main hand.
func (e *Equipment) Equip(item *Item) error {
	if item == nil {
		return fmt.Errorf("Equip: item must not be nil")
	}
	if err := item.Validate(); err != nil {
		return fmt.Errorf("Equip: %w", err)
	}
	if item.IsShield() && item.Slot != SlotOffHand {
		return fmt.Errorf("Equip: shield %q must occupy the off-hand", item.Name)
	}
	e.slots[item.Slot] = item
	return nil
}

// Unequip removes and returns the item in slot, or nil if empty.
func (e *Equipment) Unequip(slot Slot) *Item {
	it := e.slots[slot]
	delete(e.slots, slot)
	return it
}

// Get returns the item in slot, or nil if the slot is empty.
func (e *Equipment) Get(slot Slot) *Item {
	return e.slots[slot]
}

// MainHand returns the main-hand item, or nil.
func (e *Equipment) MainHand() *Item { return e.slots[SlotMainHand] }

// OffHand returns the off-hand item, or nil.
func (e *Equipment) OffHand() *Item { return e.slots[SlotOffHand] }

// DualWield reports whether both hands hold attacking weapons.
//
// Postcondition: Returns false whenever the off-hand is empty or a shield.
func (e *Equipment) DualWield() bool {
	main, off := e.MainHand(), e.OffHand()
	return main != nil && main.IsWeapon() && off != nil && off.IsWeapon()
}

// HasShield reports whether a shield occupies the off-hand.
func (e *Equipment) HasShield() bool {
	off := e.OffHand()
	return off != nil && off.IsShield()
}

// AttributeBonuses sums the stat bonuses of every equipped item.
//
// Postcondition: Every returned value is > 0; absent attributes are omitted.
func (e *Equipment) AttributeBonuses() map[Attribute]int {
	total := make(map[Attribute]int)
	for _, it := range e.slots {
		for attr, v := range it.Bonuses {
			total[attr] += v
		}
	}
	return total
}

// ArmorDefense sums the flat Defense of all equipped armor pieces.
//
// Postcondition: Returns >= 0.
func (e *Equipment) ArmorDefense() float64 {
	var total float64
	for _, it := range e.slots {
		total += it.Defense
	}
	return total
}

// WeaponAttack returns the combined flat weapon attack value. When
// dual-wielding, the off-hand contributes at a reduced rate.
//
// Precondition: catalog must be non-nil.
// Postcondition: Returns main + 0.75*off when dual-wielding, the
// main-hand value alone otherwise, or 0 when unarmed or the weapon type
// is absent from the catalog.
func (e *Equipment) WeaponAttack(catalog *WeaponCatalog) float64 {
	main := e.MainHand()
	if main == nil || !main.IsWeapon() {
		return 0
	}
	def, ok := catalog.Get(main.WeaponType)
	if !ok {
		return 0
	}
	total := def.AttackValue
	if e.DualWield() {
		if offDef, ok := catalog.Get(e.OffHand().WeaponType); ok {
			total += offDef.AttackValue * offHandWeaponPenalty
		}
	}
	return total
}
