// Package config provides Viper-based configuration loading for the
// IdleDuelist simulator.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ShadyDingo/idleduelist/internal/game/reward"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// ContentConfig holds catalog content locations. Empty paths mean the
// built-in catalogs are used.
type ContentConfig struct {
	// WeaponsDir is a directory of weapon definition YAML files.
	WeaponsDir string `mapstructure:"weapons_dir"`
	// AbilitiesDir is a directory of ability definition YAML files.
	AbilitiesDir string `mapstructure:"abilities_dir"`
}

// AutoFightConfig holds unattended auto-fight run settings.
type AutoFightConfig struct {
	// Duration is the wall-clock length of a run.
	Duration time.Duration `mapstructure:"duration"`
	// MaxSessions caps the number of sessions per run; zero means no cap.
	MaxSessions int `mapstructure:"max_sessions"`
	// Enemy is the PvE target's reward profile.
	Enemy reward.EnemyProfile `mapstructure:"enemy"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Content   ContentConfig   `mapstructure:"content"`
	Rewards   reward.Config   `mapstructure:"rewards"`
	AutoFight AutoFightConfig `mapstructure:"autofight"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := c.Rewards.Validate(); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateAutoFight(c.AutoFight); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateAutoFight(a AutoFightConfig) error {
	var errs []string
	if a.Duration <= 0 {
		errs = append(errs, fmt.Sprintf("autofight.duration must be > 0, got %s", a.Duration))
	}
	if a.MaxSessions < 0 {
		errs = append(errs, fmt.Sprintf("autofight.max_sessions must be >= 0, got %d", a.MaxSessions))
	}
	if err := a.Enemy.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("autofight.enemy: %s", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with IDLEDUELIST_ prefix
	v.SetEnvPrefix("IDLEDUELIST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the built-in configuration used when no config file
// is supplied.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Unmarshalling defaults cannot fail; they are set right above.
	_ = v.Unmarshal(&cfg)
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("content.weapons_dir", "")
	v.SetDefault("content.abilities_dir", "")

	def := reward.DefaultConfig()
	v.SetDefault("rewards.pvp_xp_base", def.PvPXPBase)
	v.SetDefault("rewards.pvp_xp_per_level", def.PvPXPPerLevel)
	v.SetDefault("rewards.min_experience", def.MinExperience)
	v.SetDefault("rewards.pvp_currency_base", def.PvPCurrencyBase)
	v.SetDefault("rewards.pvp_currency_per_level", def.PvPCurrencyPerLevel)
	v.SetDefault("rewards.pvp_drop_chance", def.PvPDropChance)
	v.SetDefault("rewards.legendary_level_gate", def.LegendaryLevelGate)
	v.SetDefault("rewards.mythic_level_gate", def.MythicLevelGate)

	v.SetDefault("autofight.duration", "2h")
	v.SetDefault("autofight.max_sessions", 0)
	v.SetDefault("autofight.enemy.name", "Training Dummy")
	v.SetDefault("autofight.enemy.experience", 10)
	v.SetDefault("autofight.enemy.currency_min", 2)
	v.SetDefault("autofight.enemy.currency_max", 8)
	v.SetDefault("autofight.enemy.drop_chance", 0.05)
	v.SetDefault("autofight.enemy.item_level", 1)
}
