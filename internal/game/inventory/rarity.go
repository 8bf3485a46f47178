package inventory

import "fmt"

// Rarity is an ordered item-quality tier controlling stat magnitude and
// drop probability. The zero value (RarityCommon) is the lowest tier.
type Rarity int

const (
	RarityCommon Rarity = iota
	RarityUncommon
	RarityRare
	RarityEpic
	RarityLegendary
	RarityMythic
)

// rarityNames maps each tier to its canonical lowercase name.
var rarityNames = [...]string{
	RarityCommon:    "common",
	RarityUncommon:  "uncommon",
	RarityRare:      "rare",
	RarityEpic:      "epic",
	RarityLegendary: "legendary",
	RarityMythic:    "mythic",
}

// String returns the canonical lowercase tier name, or "unknown" for
// out-of-range values.
func (r Rarity) String() string {
	if r < RarityCommon || r > RarityMythic {
		return "unknown"
	}
	return rarityNames[r]
}

// Less reports whether r is a strictly lower tier than other.
func (r Rarity) Less(other Rarity) bool {
	return r < other
}

// Valid reports whether r is one of the six defined tiers.
func (r Rarity) Valid() bool {
	return r >= RarityCommon && r <= RarityMythic
}

// BonusCount returns the number of attribute bonuses an item of this
// rarity carries.
//
// Postcondition: Returns a value in [1, 4].
func (r Rarity) BonusCount() int {
	switch r {
	case RarityCommon:
		return 1
	case RarityUncommon, RarityRare:
		return 2
	case RarityEpic, RarityLegendary:
		return 3
	case RarityMythic:
		return 4
	default:
		return 1
	}
}

// ParseRarity converts a string into a Rarity.
//
// Postcondition: Returns a valid Rarity or a descriptive error.
func ParseRarity(s string) (Rarity, error) {
	for i, name := range rarityNames {
		if name == s {
			return Rarity(i), nil
		}
	}
	return 0, fmt.Errorf("inventory: unknown rarity %q", s)
}
