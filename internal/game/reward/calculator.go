// Package reward computes experience, currency, and equipment drops
// from a resolved combat session.
package reward

import (
	"fmt"

	"github.com/ShadyDingo/idleduelist/internal/game/dice"
)

// Config holds the reward policy constants. All values are tunable;
// DefaultConfig mirrors the reference content.
type Config struct {
	// PvP experience: base + loserLevel*perLevel, scaled by the level
	// differential multiplier, floored at MinExperience.
	PvPXPBase     int `mapstructure:"pvp_xp_base"`
	PvPXPPerLevel int `mapstructure:"pvp_xp_per_level"`
	// MinExperience is the floor for any experience award.
	MinExperience int `mapstructure:"min_experience"`
	// PvP currency: base + loserLevel*perLevel.
	PvPCurrencyBase     int `mapstructure:"pvp_currency_base"`
	PvPCurrencyPerLevel int `mapstructure:"pvp_currency_per_level"`
	// PvPDropChance is the probability of an equipment drop after a PvP win.
	PvPDropChance float64 `mapstructure:"pvp_drop_chance"`
	// LegendaryLevelGate and MythicLevelGate are the minimum winner
	// levels for the two highest PvP rarity tiers.
	LegendaryLevelGate int `mapstructure:"legendary_level_gate"`
	MythicLevelGate    int `mapstructure:"mythic_level_gate"`
}

// DefaultConfig returns the reference reward policy.
func DefaultConfig() Config {
	return Config{
		PvPXPBase:           50,
		PvPXPPerLevel:       5,
		MinExperience:       1,
		PvPCurrencyBase:     25,
		PvPCurrencyPerLevel: 2,
		PvPDropChance:       0.15,
		LegendaryLevelGate:  75,
		MythicLevelGate:     95,
	}
}

// Validate checks that the configured policy is usable.
//
// Postcondition: Returns nil iff all constants are in range.
func (c Config) Validate() error {
	if c.MinExperience < 1 {
		return fmt.Errorf("reward: min_experience must be >= 1, got %d", c.MinExperience)
	}
	if c.PvPDropChance < 0 || c.PvPDropChance > 1 {
		return fmt.Errorf("reward: pvp_drop_chance must be in [0, 1], got %f", c.PvPDropChance)
	}
	if c.PvPXPBase < 0 || c.PvPXPPerLevel < 0 || c.PvPCurrencyBase < 0 || c.PvPCurrencyPerLevel < 0 {
		return fmt.Errorf("reward: policy constants must be >= 0")
	}
	if c.LegendaryLevelGate < 1 || c.MythicLevelGate < c.LegendaryLevelGate {
		return fmt.Errorf("reward: rarity gates must satisfy 1 <= legendary <= mythic")
	}
	return nil
}

// EnemyProfile holds the PvE reward parameters of one enemy type.
type EnemyProfile struct {
	Name        string  `mapstructure:"name"`
	Experience  int     `mapstructure:"experience"`
	CurrencyMin int     `mapstructure:"currency_min"`
	CurrencyMax int     `mapstructure:"currency_max"`
	DropChance  float64 `mapstructure:"drop_chance"`
	ItemLevel   int     `mapstructure:"item_level"`
}

// Validate checks the profile's invariants.
//
// Postcondition: Returns nil iff currency range and drop chance are valid.
func (p EnemyProfile) Validate() error {
	if p.Experience < 0 {
		return fmt.Errorf("enemy profile %q: experience must be >= 0", p.Name)
	}
	if p.CurrencyMin < 0 || p.CurrencyMin > p.CurrencyMax {
		return fmt.Errorf("enemy profile %q: currency range [%d, %d] invalid", p.Name, p.CurrencyMin, p.CurrencyMax)
	}
	if p.DropChance < 0 || p.DropChance > 1 {
		return fmt.Errorf("enemy profile %q: drop chance must be in [0, 1]", p.Name)
	}
	if p.ItemLevel < 1 {
		return fmt.Errorf("enemy profile %q: item level must be >= 1", p.Name)
	}
	return nil
}

// Calculator computes rewards for resolved fights.
type Calculator struct {
	cfg Config
}

// NewCalculator creates a Calculator with the given policy.
//
// Precondition: cfg must pass Validate().
func NewCalculator(cfg Config) *Calculator {
	return &Calculator{cfg: cfg}
}

// Compute determines the rewards for a resolved fight.
//
// PvE fights (pvp == false) require a non-nil enemy profile and award
// its fixed experience plus a random currency amount in the profile's
// range; drop rarity is capped at rare. PvP fights award level-scaled
// experience and currency; the rarity table reaches mythic, gated by
// winner level.
//
// Precondition: winnerLevel >= 1, loserLevel >= 1; src must be non-nil;
// enemy must be non-nil when pvp is false.
// Postcondition: Experience >= MinExperience; Currency >= 0.
func (c *Calculator) Compute(winnerLevel, loserLevel int, pvp bool, enemy *EnemyProfile, src dice.Source) Rewards {
	var r Rewards

	if pvp {
		mult := 1.0 + 0.1*float64(loserLevel-winnerLevel)
		if mult < 0.1 {
			mult = 0.1
		}
		r.Experience = int(float64(c.cfg.PvPXPBase+loserLevel*c.cfg.PvPXPPerLevel) * mult)
		r.Currency = c.cfg.PvPCurrencyBase + loserLevel*c.cfg.PvPCurrencyPerLevel
	} else {
		r.Experience = enemy.Experience
		r.Currency = dice.IntBetween(src, enemy.CurrencyMin, enemy.CurrencyMax)
	}

	if r.Experience < c.cfg.MinExperience {
		r.Experience = c.cfg.MinExperience
	}
	if r.Currency < 0 {
		r.Currency = 0
	}

	dropChance := c.cfg.PvPDropChance
	itemLevel := loserLevel
	if !pvp {
		dropChance = enemy.DropChance
		itemLevel = enemy.ItemLevel
	}
	if dice.Chance(src, dropChance) {
		rarity := c.rollRarity(pvp, winnerLevel, src)
		r.Item = GenerateItem(src, rarity, itemLevel)
		r.ItemDropped = true
	}

	return r
}
