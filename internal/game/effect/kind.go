// Package effect implements timed status effects on combatants:
// damage-over-time, stun, slow, and stat buffs/debuffs.
package effect

import "fmt"

// Kind is the closed set of status-effect variants. Application logic
// switches exhaustively on Kind; there is no string-tag dispatch.
type Kind string

const (
	// KindPoison deals true damage per second per stack.
	KindPoison Kind = "poison"
	// KindBurn deals true damage per second per stack.
	KindBurn Kind = "burn"
	// KindStun prevents auto-attacks and auto-abilities; DoT still ticks.
	KindStun Kind = "stun"
	// KindSlow increases the victim's attack interval by its magnitude fraction.
	KindSlow Kind = "slow"
	// KindDamageBoost increases outgoing damage by its magnitude fraction.
	KindDamageBoost Kind = "damage_boost"
	// KindVulnerability increases damage taken by its magnitude fraction.
	KindVulnerability Kind = "vulnerability"
	// KindDefenseBoost adds its magnitude to effective defense.
	KindDefenseBoost Kind = "defense_boost"
)

// validKinds is the set of defined status kinds.
var validKinds = map[Kind]bool{
	KindPoison:        true,
	KindBurn:          true,
	KindStun:          true,
	KindSlow:          true,
	KindDamageBoost:   true,
	KindVulnerability: true,
	KindDefenseBoost:  true,
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool {
	return validKinds[k]
}

// IsDot reports whether k is a damage-over-time variant.
func (k Kind) IsDot() bool {
	return k == KindPoison || k == KindBurn
}

// ParseKind converts a string into a Kind.
//
// Postcondition: Returns a valid Kind or a descriptive error.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !validKinds[k] {
		return "", fmt.Errorf("effect: unknown status kind %q", s)
	}
	return k, nil
}
