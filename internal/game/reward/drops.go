package reward

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ShadyDingo/idleduelist/internal/game/dice"
	"github.com/ShadyDingo/idleduelist/internal/game/inventory"
)

// Rewards holds the accumulated outcome of one resolved fight.
type Rewards struct {
	Experience  int             `json:"experience"`
	Currency    int             `json:"currency"`
	ItemDropped bool            `json:"item_dropped"`
	Item        *inventory.Item `json:"item,omitempty"`
}

// Add accumulates other into r, used by the auto-fight supervisor to
// total rewards across many sessions. Only the most recent item drop is
// retained; ItemDropped stays true once any session dropped.
func (r *Rewards) Add(other Rewards) {
	r.Experience += other.Experience
	r.Currency += other.Currency
	if other.ItemDropped {
		r.ItemDropped = true
		r.Item = other.Item
	}
}

// rarityWeight is one entry in a weighted rarity table.
type rarityWeight struct {
	rarity inventory.Rarity
	weight int
}

// pveRarityTable caps PvE drops at rare.
var pveRarityTable = []rarityWeight{
	{inventory.RarityCommon, 60},
	{inventory.RarityUncommon, 30},
	{inventory.RarityRare, 10},
}

// pvpRarityTable reaches mythic; the two highest tiers are gated by
// winner level in rollRarity.
var pvpRarityTable = []rarityWeight{
	{inventory.RarityCommon, 40},
	{inventory.RarityUncommon, 30},
	{inventory.RarityRare, 15},
	{inventory.RarityEpic, 10},
	{inventory.RarityLegendary, 4},
	{inventory.RarityMythic, 1},
}

// rollRarity picks a drop rarity from the mode-appropriate weighted
// table. PvP entries above the winner's level gate are excluded before
// the roll.
//
// Postcondition: PvE results never exceed rare; PvP results never
// include legendary below the legendary gate or mythic below the mythic gate.
func (c *Calculator) rollRarity(pvp bool, winnerLevel int, src dice.Source) inventory.Rarity {
	table := pveRarityTable
	if pvp {
		table = table[:0:0]
		for _, rw := range pvpRarityTable {
			if rw.rarity == inventory.RarityLegendary && winnerLevel < c.cfg.LegendaryLevelGate {
				continue
			}
			if rw.rarity == inventory.RarityMythic && winnerLevel < c.cfg.MythicLevelGate {
				continue
			}
			table = append(table, rw)
		}
	}

	total := 0
	for _, rw := range table {
		total += rw.weight
	}
	roll := src.Intn(total)
	for _, rw := range table {
		roll -= rw.weight
		if roll < 0 {
			return rw.rarity
		}
	}
	return table[len(table)-1].rarity
}

// droppableSlots lists the slots a generated item may occupy.
var droppableSlots = []inventory.Slot{
	inventory.SlotHelmet, inventory.SlotChest, inventory.SlotLegs,
	inventory.SlotBoots, inventory.SlotGloves, inventory.SlotMainHand,
}

// droppableWeaponTypes lists the weapon types a main-hand drop may roll.
var droppableWeaponTypes = []inventory.WeaponType{
	inventory.WeaponSword, inventory.WeaponAxe, inventory.WeaponMace,
	inventory.WeaponDagger, inventory.WeaponBow, inventory.WeaponStaff,
}

// GenerateItem creates a random item of the given rarity and level:
// random slot, rarity-determined bonus count, bonus magnitudes scaled
// by item level.
//
// Precondition: src must be non-nil; rarity must be valid; level >= 1.
// Postcondition: The returned item passes Validate() and carries a
// fresh instance id.
func GenerateItem(src dice.Source, rarity inventory.Rarity, level int) *inventory.Item {
	slot := droppableSlots[src.Intn(len(droppableSlots))]

	item := &inventory.Item{
		InstanceID: uuid.New().String(),
		Slot:       slot,
		Rarity:     rarity,
		Level:      level,
		Bonuses:    make(map[inventory.Attribute]int),
	}

	if slot.IsWeaponSlot() {
		item.WeaponType = droppableWeaponTypes[src.Intn(len(droppableWeaponTypes))]
		item.Name = fmt.Sprintf("%s %s (item level %d)", titleCase(rarity.String()), item.WeaponType, level)
	} else {
		item.Defense = float64(2 + level/4 + int(rarity))
		item.Name = fmt.Sprintf("%s %s (item level %d)", titleCase(rarity.String()), slot, level)
	}

	// Bonus magnitude grows with item level and rarity.
	lo := 1 + level/10
	hi := lo + 2 + int(rarity)
	for _, attr := range pickAttributes(src, rarity.BonusCount()) {
		item.Bonuses[attr] = dice.IntBetween(src, lo, hi)
	}

	return item
}

// pickAttributes selects n distinct attributes at random.
func pickAttributes(src dice.Source, n int) []inventory.Attribute {
	pool := make([]inventory.Attribute, len(inventory.AllAttributes))
	copy(pool, inventory.AllAttributes)
	for i := len(pool) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
