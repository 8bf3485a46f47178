package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/ShadyDingo/idleduelist/internal/game/reward"
)

func validConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Rewards: reward.DefaultConfig(),
		AutoFight: AutoFightConfig{
			Duration:    2 * time.Hour,
			MaxSessions: 0,
			Enemy: reward.EnemyProfile{
				Name:        "Training Dummy",
				Experience:  10,
				CurrencyMin: 2,
				CurrencyMax: 8,
				DropChance:  0.05,
				ItemLevel:   1,
			},
		},
	}
}

func TestValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 2*time.Hour, cfg.AutoFight.Duration)
	assert.Equal(t, reward.DefaultConfig(), cfg.Rewards)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	err := os.WriteFile(path, []byte(`
logging:
  level: debug
  format: console
rewards:
  pvp_xp_base: 60
  legendary_level_gate: 80
autofight:
  duration: 45m
  max_sessions: 100
  enemy:
    name: Plains Wolf
    experience: 18
    currency_min: 4
    currency_max: 9
    drop_chance: 0.1
    item_level: 5
`), 0644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 60, cfg.Rewards.PvPXPBase)
	assert.Equal(t, 80, cfg.Rewards.LegendaryLevelGate)
	// Unset reward fields keep their defaults.
	assert.Equal(t, reward.DefaultConfig().MythicLevelGate, cfg.Rewards.MythicLevelGate)
	assert.Equal(t, 45*time.Minute, cfg.AutoFight.Duration)
	assert.Equal(t, 100, cfg.AutoFight.MaxSessions)
	assert.Equal(t, "Plains Wolf", cfg.AutoFight.Enemy.Name)
	assert.Equal(t, 18, cfg.AutoFight.Enemy.Experience)
}

func TestLoadInvalidPath(t *testing.T) {
	_, err := Load("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestValidateLoggingLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		cfg := validConfig()
		cfg.Logging.Level = level
		assert.NoError(t, cfg.Validate(), "level %q should be valid", level)
	}
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	assert.Error(t, cfg.Validate())
}

func TestValidateLoggingFormat(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		cfg := validConfig()
		cfg.Logging.Format = format
		assert.NoError(t, cfg.Validate(), "format %q should be valid", format)
	}
	cfg := validConfig()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestValidateAutoFightDuration(t *testing.T) {
	cfg := validConfig()
	cfg.AutoFight.Duration = 0
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.AutoFight.Duration = -time.Minute
	assert.Error(t, cfg.Validate())
}

func TestValidateAutoFightMaxSessions(t *testing.T) {
	cfg := validConfig()
	cfg.AutoFight.MaxSessions = -1
	assert.Error(t, cfg.Validate())
}

func TestValidateAutoFightEnemy(t *testing.T) {
	cfg := validConfig()
	cfg.AutoFight.Enemy.CurrencyMin = 10
	cfg.AutoFight.Enemy.CurrencyMax = 5
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.AutoFight.Enemy.DropChance = 1.5
	assert.Error(t, cfg.Validate())
}

func TestValidateRewardPolicy(t *testing.T) {
	cfg := validConfig()
	cfg.Rewards.MinExperience = 0
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Rewards.MythicLevelGate = cfg.Rewards.LegendaryLevelGate - 1
	assert.Error(t, cfg.Validate())
}

// Property-based tests

func TestPropertyValidDurationsAccepted(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		minutes := rapid.IntRange(1, 600).Draw(t, "minutes")
		cfg := validConfig()
		cfg.AutoFight.Duration = time.Duration(minutes) * time.Minute
		if err := cfg.Validate(); err != nil {
			t.Fatalf("valid duration %dm rejected: %v", minutes, err)
		}
	})
}

func TestPropertyCurrencyRangeOrdering(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lo := rapid.IntRange(0, 100).Draw(t, "currency_min")
		hi := rapid.IntRange(lo, lo+100).Draw(t, "currency_max")
		cfg := validConfig()
		cfg.AutoFight.Enemy.CurrencyMin = lo
		cfg.AutoFight.Enemy.CurrencyMax = hi
		if err := cfg.Validate(); err != nil {
			t.Fatalf("valid currency range [%d, %d] rejected: %v", lo, hi, err)
		}
	})
}

func TestPropertyInvalidCurrencyRangeRejected(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		hi := rapid.IntRange(0, 100).Draw(t, "currency_max")
		lo := rapid.IntRange(hi+1, hi+100).Draw(t, "currency_min")
		cfg := validConfig()
		cfg.AutoFight.Enemy.CurrencyMin = lo
		cfg.AutoFight.Enemy.CurrencyMax = hi
		if cfg.Validate() == nil {
			t.Fatalf("currency_min=%d > currency_max=%d accepted", lo, hi)
		}
	})
}
