// Package main provides the duelsim binary: it resolves a single duel
// between two configured combatants, or an unattended auto-fight run
// against a PvE target, and prints the outcome.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/ShadyDingo/idleduelist/internal/config"
	"github.com/ShadyDingo/idleduelist/internal/game/ability"
	"github.com/ShadyDingo/idleduelist/internal/game/combat"
	"github.com/ShadyDingo/idleduelist/internal/game/dice"
	"github.com/ShadyDingo/idleduelist/internal/game/inventory"
	"github.com/ShadyDingo/idleduelist/internal/game/reward"
	"github.com/ShadyDingo/idleduelist/internal/game/session"
	"github.com/ShadyDingo/idleduelist/internal/game/stats"
	"github.com/ShadyDingo/idleduelist/internal/observability"
)

// maxDuelSeconds bounds a single simulated duel.
const maxDuelSeconds = 3600

func main() {
	configPath := flag.String("config", "", "path to configuration file; empty = built-in defaults")
	mode := flag.String("mode", "duel", `simulation mode: "duel" or "autofight"`)
	seed := flag.Int64("seed", 0, "random seed; 0 = crypto-random rolls")
	weaponA := flag.String("weapon-a", "sword", "weapon type for combatant A (and the auto-fight player)")
	weaponB := flag.String("weapon-b", "sword", "weapon type for combatant B")
	levelA := flag.Int("level-a", 10, "level for combatant A (and the auto-fight player)")
	levelB := flag.Int("level-b", 10, "level for combatant B")
	enemyLevel := flag.Int("enemy-level", 1, "level of the auto-fight PvE target")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	weapons, abilities, err := loadCatalogs(cfg.Content)
	if err != nil {
		logger.Fatal("loading catalogs", zap.Error(err))
	}

	src := dice.NewCryptoSource()
	if *seed != 0 {
		src = dice.NewSeededSource(*seed)
	}
	calc := reward.NewCalculator(cfg.Rewards)

	switch *mode {
	case "duel":
		runDuel(cfg, logger, weapons, abilities, src, calc, *weaponA, *weaponB, *levelA, *levelB)
	case "autofight":
		runAutoFight(cfg, logger, weapons, abilities, src, calc, *weaponA, *levelA, *enemyLevel)
	default:
		logger.Fatal("unknown mode", zap.String("mode", *mode))
	}
}

// loadCatalogs builds the weapon and ability catalogs from the content
// directories, falling back to the built-in reference content when no
// directory is configured.
func loadCatalogs(c config.ContentConfig) (*inventory.WeaponCatalog, *ability.Registry, error) {
	weapons := inventory.DefaultWeaponCatalog()
	if c.WeaponsDir != "" {
		var err error
		weapons, err = inventory.LoadWeapons(c.WeaponsDir)
		if err != nil {
			return nil, nil, fmt.Errorf("loading weapons from %s: %w", c.WeaponsDir, err)
		}
	}

	abilities := ability.DefaultRegistry()
	if c.AbilitiesDir != "" {
		var err error
		abilities, err = ability.LoadDirectory(c.AbilitiesDir)
		if err != nil {
			return nil, nil, fmt.Errorf("loading abilities from %s: %w", c.AbilitiesDir, err)
		}
	}

	return weapons, abilities, nil
}

// duelistSpec builds a sample combatant of the given weapon type and
// level, with a loadout of every regular ability for that weapon.
func duelistSpec(name string, weaponType string, level int, abilities *ability.Registry) (combat.Spec, error) {
	wt, err := inventory.ParseWeaponType(weaponType)
	if err != nil {
		return combat.Spec{}, err
	}

	eq := inventory.NewEquipment()
	if err := eq.Equip(&inventory.Item{
		Name:       string(wt),
		Slot:       inventory.SlotMainHand,
		Rarity:     inventory.RarityCommon,
		Level:      level,
		WeaponType: wt,
		Bonuses:    map[inventory.Attribute]int{inventory.AttrMight: 1 + level/10},
	}); err != nil {
		return combat.Spec{}, err
	}

	var loadout []string
	for _, def := range abilities.ForWeaponType(wt) {
		if !def.Ultimate {
			loadout = append(loadout, def.ID)
		}
	}

	// A balanced melee-leaning allocation scaled by level; casters get
	// the same pool and rely on spell power from the staff formula.
	return combat.Spec{
		ID:    name,
		Name:  name,
		Level: level,
		Attributes: stats.Attributes{
			Might:     10 + level*2,
			Agility:   8 + level,
			Vitality:  10 + level*2,
			Intellect: 8 + level,
			Wisdom:    8 + level,
			Charisma:  5,
		},
		Equipment:   eq,
		Loadout:     loadout,
		AutoAttack:  true,
		AutoAbility: true,
	}, nil
}

func runDuel(cfg config.Config, logger *zap.Logger, weapons *inventory.WeaponCatalog, abilities *ability.Registry, src dice.Source, calc *reward.Calculator, weaponA, weaponB string, levelA, levelB int) {
	specA, err := duelistSpec("Duelist A", weaponA, levelA, abilities)
	if err != nil {
		logger.Fatal("building combatant A", zap.Error(err))
	}
	specB, err := duelistSpec("Duelist B", weaponB, levelB, abilities)
	if err != nil {
		logger.Fatal("building combatant B", zap.Error(err))
	}

	a, err := combat.NewCombatant(specA, weapons, abilities)
	if err != nil {
		logger.Fatal("building combatant A", zap.Error(err))
	}
	b, err := combat.NewCombatant(specB, weapons, abilities)
	if err != nil {
		logger.Fatal("building combatant B", zap.Error(err))
	}

	s, err := combat.NewSession(a, b, true,
		combat.WithSource(src),
		combat.WithLogger(logger),
		combat.WithCalculator(calc),
	)
	if err != nil {
		logger.Fatal("creating session", zap.Error(err))
	}

	now := time.Now()
	s.Advance(now)
	for i := 1; i <= maxDuelSeconds && !s.Resolved(); i++ {
		s.Advance(now.Add(time.Duration(i) * time.Second))
	}
	if !s.Resolved() {
		logger.Fatal("duel did not resolve", zap.Int("simulated_seconds", maxDuelSeconds))
	}

	for _, line := range s.Log() {
		fmt.Println(line)
	}
	printJSON(s.Snapshot())
}

func runAutoFight(cfg config.Config, logger *zap.Logger, weapons *inventory.WeaponCatalog, abilities *ability.Registry, src dice.Source, calc *reward.Calculator, weapon string, level, enemyLevel int) {
	player, err := duelistSpec("Player", weapon, level, abilities)
	if err != nil {
		logger.Fatal("building player", zap.Error(err))
	}

	enemy := combat.Spec{
		ID:    "enemy",
		Name:  cfg.AutoFight.Enemy.Name,
		Level: enemyLevel,
		Attributes: stats.Attributes{
			Might:     4 + enemyLevel*2,
			Agility:   4 + enemyLevel,
			Vitality:  4 + enemyLevel*2,
			Intellect: 2 + enemyLevel,
			Wisdom:    2 + enemyLevel,
			Charisma:  1,
		},
		AutoAttack: true,
	}

	run, err := session.NewAutoFight(player, enemy, &cfg.AutoFight.Enemy, weapons, abilities,
		session.Config{
			Deadline:    time.Now().Add(cfg.AutoFight.Duration),
			MaxSessions: cfg.AutoFight.MaxSessions,
		},
		session.WithLogger(logger),
		session.WithSessionOptions(combat.WithSource(src), combat.WithCalculator(calc)),
	)
	if err != nil {
		logger.Fatal("creating auto-fight run", zap.Error(err))
	}

	// The run is driven in simulated one-second steps rather than wall
	// clock, so a multi-hour grind finishes instantly.
	now := time.Now()
	for i := 0; !run.Done(); i++ {
		if err := run.Advance(now.Add(time.Duration(i) * time.Second)); err != nil {
			logger.Fatal("advancing auto-fight run", zap.Error(err))
		}
	}

	printJSON(run.Report())
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Fatalf("encoding output: %v", err)
	}
}
