// Package inventory provides item, equipment, and weapon definitions
// for the IdleDuelist combat engine.
package inventory

import "fmt"

// Slot identifies an equipment position on a combatant.
type Slot string

const (
	SlotHelmet   Slot = "helmet"
	SlotChest    Slot = "chest"
	SlotLegs     Slot = "legs"
	SlotBoots    Slot = "boots"
	SlotGloves   Slot = "gloves"
	SlotMainHand Slot = "main_hand"
	SlotOffHand  Slot = "off_hand"
)

// AllSlots lists every equipment slot in display order.
var AllSlots = []Slot{
	SlotHelmet, SlotChest, SlotLegs, SlotBoots, SlotGloves,
	SlotMainHand, SlotOffHand,
}

// validSlots is the set of recognized slots.
var validSlots = map[Slot]bool{
	SlotHelmet:   true,
	SlotChest:    true,
	SlotLegs:     true,
	SlotBoots:    true,
	SlotGloves:   true,
	SlotMainHand: true,
	SlotOffHand:  true,
}

// IsWeaponSlot reports whether the slot holds a weapon or shield.
func (s Slot) IsWeaponSlot() bool {
	return s == SlotMainHand || s == SlotOffHand
}

// ParseSlot converts a string into a Slot.
//
// Postcondition: Returns a valid Slot or a descriptive error.
func ParseSlot(s string) (Slot, error) {
	slot := Slot(s)
	if !validSlots[slot] {
		return "", fmt.Errorf("inventory: unknown slot %q", s)
	}
	return slot, nil
}

// WeaponType identifies the class of a held weapon or shield.
type WeaponType string

const (
	WeaponSword  WeaponType = "sword"
	WeaponAxe    WeaponType = "axe"
	WeaponMace   WeaponType = "mace"
	WeaponDagger WeaponType = "dagger"
	WeaponBow    WeaponType = "bow"
	WeaponStaff  WeaponType = "staff"
	WeaponShield WeaponType = "shield"
)

// validWeaponTypes is the set of recognized weapon types.
var validWeaponTypes = map[WeaponType]bool{
	WeaponSword:  true,
	WeaponAxe:    true,
	WeaponMace:   true,
	WeaponDagger: true,
	WeaponBow:    true,
	WeaponStaff:  true,
	WeaponShield: true,
}

// ParseWeaponType converts a string into a WeaponType.
//
// Postcondition: Returns a valid WeaponType or a descriptive error.
func ParseWeaponType(s string) (WeaponType, error) {
	wt := WeaponType(s)
	if !validWeaponTypes[wt] {
		return "", fmt.Errorf("inventory: unknown weapon type %q", s)
	}
	return wt, nil
}
