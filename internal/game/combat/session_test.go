package combat_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShadyDingo/idleduelist/internal/game/ability"
	"github.com/ShadyDingo/idleduelist/internal/game/combat"
	"github.com/ShadyDingo/idleduelist/internal/game/effect"
	"github.com/ShadyDingo/idleduelist/internal/game/inventory"
	"github.com/ShadyDingo/idleduelist/internal/game/stats"
)

var start = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func duelist(t testing.TB, name string) *combat.Combatant {
	t.Helper()
	eq := inventory.NewEquipment()
	require.NoError(t, eq.Equip(&inventory.Item{
		Name: "sword", Slot: inventory.SlotMainHand, Rarity: inventory.RarityCommon,
		Level: 1, WeaponType: inventory.WeaponSword,
		Bonuses: map[inventory.Attribute]int{inventory.AttrMight: 1},
	}))
	c, err := combat.NewCombatant(combat.Spec{
		ID: name, Name: name, Level: 10,
		Attributes:  stats.Attributes{Might: 50, Agility: 10, Vitality: 30, Intellect: 10, Wisdom: 10, Charisma: 10},
		Equipment:   eq,
		Loadout:     []string{"sword_slash", "sword_riposte"},
		AutoAttack:  true,
		AutoAbility: true,
	}, inventory.DefaultWeaponCatalog(), ability.DefaultRegistry())
	require.NoError(t, err)
	return c
}

// runToResolution advances s in one-second steps and returns the number
// of simulated seconds consumed, failing the test past limit seconds.
func runToResolution(t testing.TB, s *combat.Session, limit int) int {
	t.Helper()
	s.Advance(start)
	for i := 1; i <= limit; i++ {
		s.Advance(start.Add(time.Duration(i) * time.Second))
		if s.Resolved() {
			return i
		}
	}
	t.Fatalf("session did not resolve within %d simulated seconds", limit)
	return limit
}

// TestSession_EndToEnd pits two identical sword duelists and verifies
// the fight resolves within 200 simulated seconds with exactly one
// winner and a non-empty combat log.
func TestSession_EndToEnd(t *testing.T) {
	a, b := duelist(t, "Ashe"), duelist(t, "Borin")
	s, err := combat.NewSession(a, b, true, combat.WithSeed(1234))
	require.NoError(t, err)

	elapsed := runToResolution(t, s, 200)
	t.Logf("resolved in %d simulated seconds", elapsed)

	require.True(t, s.Resolved())
	winner := s.Winner()
	require.NotNil(t, winner)
	assert.True(t, winner == a || winner == b, "winner must be a participant")

	loser := a
	if winner == a {
		loser = b
	}
	assert.Zero(t, loser.CurrentHP, "the loser must be at exactly 0 HP")
	assert.Positive(t, winner.CurrentHP)
	assert.NotEmpty(t, s.Log())

	r := s.Rewards()
	require.NotNil(t, r)
	assert.GreaterOrEqual(t, r.Experience, 1)
	assert.GreaterOrEqual(t, r.Currency, 0)
}

// TestSession_AdvanceIdempotentAtSameNow verifies rapid repeated calls
// at one timestamp fire nothing twice: no extra attacks, no extra mana.
func TestSession_AdvanceIdempotentAtSameNow(t *testing.T) {
	a, b := duelist(t, "Ashe"), duelist(t, "Borin")
	s, err := combat.NewSession(a, b, true, combat.WithSeed(9))
	require.NoError(t, err)

	s.Advance(start)
	now := start.Add(3 * time.Second)
	s.Advance(now)

	logLen := len(s.Log())
	hpA, hpB := a.CurrentHP, b.CurrentHP
	manaA, manaB := a.CurrentMana, b.CurrentMana

	for i := 0; i < 50; i++ {
		s.Advance(now)
	}

	assert.Len(t, s.Log(), logLen, "no action may fire at zero elapsed time")
	assert.Equal(t, hpA, a.CurrentHP)
	assert.Equal(t, hpB, b.CurrentHP)
	assert.Equal(t, manaA, a.CurrentMana)
	assert.Equal(t, manaB, b.CurrentMana)
}

// TestSession_ResolvedIsTerminal verifies no transition leaves the
// resolved state and further advances change nothing.
func TestSession_ResolvedIsTerminal(t *testing.T) {
	a, b := duelist(t, "Ashe"), duelist(t, "Borin")
	s, err := combat.NewSession(a, b, true, combat.WithSeed(77))
	require.NoError(t, err)
	runToResolution(t, s, 300)

	winner := s.Winner()
	rewards := s.Rewards()
	logLen := len(s.Log())

	s.Advance(start.Add(time.Hour))

	assert.Same(t, winner, s.Winner(), "winner is fixed once resolved")
	assert.Same(t, rewards, s.Rewards(), "rewards are computed exactly once")
	assert.Len(t, s.Log(), logLen)
	assert.Equal(t, combat.StateResolved, s.State())
}

// TestSession_SymmetricFairness verifies win probability over many
// mirror-matchup trials is statistically indistinguishable from 50/50.
func TestSession_SymmetricFairness(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping 10k-trial fairness check in -short mode")
	}
	const trials = 10000
	winsA := 0
	for i := 0; i < trials; i++ {
		a, b := duelist(t, "Ashe"), duelist(t, "Borin")
		s, err := combat.NewSession(a, b, true, combat.WithSeed(int64(i)+1))
		require.NoError(t, err)
		runToResolution(t, s, 600)
		if s.Winner() == a {
			winsA++
		}
	}
	ratio := float64(winsA) / trials
	// Four-sigma band for a fair coin over 10k trials.
	assert.InDelta(t, 0.5, ratio, 0.02, "mirror matchup must be fair, got %.4f", ratio)
}

// TestSession_StunPreventsAllActions verifies a stunned combatant
// contributes zero auto-attacks and zero auto-abilities for the stun's
// full duration, by log inspection across the window.
func TestSession_StunPreventsAllActions(t *testing.T) {
	a, b := duelist(t, "Stunned"), duelist(t, "Basher")
	// Keep the victim alive through the whole window.
	a.Derived.MaxHP = 1e9
	b.Derived.MaxHP = 1e9
	s, err := combat.NewSession(a, b, true, combat.WithSeed(5))
	require.NoError(t, err)
	s.Advance(start)
	a.CurrentHP = 1e9
	b.CurrentHP = 1e9

	stunUntil := start.Add(10 * time.Second)
	a.Effects.Apply(effect.Instance{
		Kind: effect.KindStun, Magnitude: 1, AppliedAt: start, ExpiresAt: stunUntil,
	}, 0)

	for i := 1; i <= 10; i++ {
		s.Advance(start.Add(time.Duration(i) * time.Second))
	}
	for _, line := range s.Log() {
		if strings.HasPrefix(line, "Stunned hits") || strings.HasPrefix(line, "Stunned crits") ||
			strings.Contains(line, "Stunned's") {
			t.Fatalf("stunned combatant acted during stun window: %q", line)
		}
	}

	// After expiry the combatant resumes acting.
	for i := 11; i <= 30 && !s.Resolved(); i++ {
		s.Advance(start.Add(time.Duration(i) * time.Second))
	}
	acted := false
	for _, line := range s.Log() {
		if strings.Contains(line, "Stunned hits") || strings.Contains(line, "Stunned's") {
			acted = true
			break
		}
	}
	assert.True(t, acted, "combatant must resume acting after the stun expires")
}

// TestSession_DotTicksDuringStun verifies stun does not pause
// damage-over-time ticks.
func TestSession_DotTicksDuringStun(t *testing.T) {
	a, b := duelist(t, "Ashe"), duelist(t, "Borin")
	// Borin stands down so the only damage to Ashe is the poison.
	b.AutoAttack = false
	b.AutoAbility = false
	s, err := combat.NewSession(a, b, true, combat.WithSeed(6))
	require.NoError(t, err)
	s.Advance(start)

	a.Effects.Apply(effect.Instance{
		Kind: effect.KindStun, Magnitude: 1, AppliedAt: start, ExpiresAt: start.Add(20 * time.Second),
	}, 0)
	a.Effects.Apply(effect.Instance{
		Kind: effect.KindPoison, Magnitude: 7, AppliedAt: start, ExpiresAt: start.Add(20 * time.Second),
	}, 1)

	hp := a.CurrentHP
	s.Advance(start.Add(3 * time.Second))
	assert.InDelta(t, hp-21, a.CurrentHP, 1e-9, "3 seconds of 7/s poison tick through the stun")
}

// TestSession_DotExpiringMidGapTicksFully verifies a stack whose expiry
// falls inside a long polling gap still deals every second it was live
// for: total damage must not depend on polling cadence.
func TestSession_DotExpiringMidGapTicksFully(t *testing.T) {
	run := func(stepped bool) float64 {
		a, b := duelist(t, "Ashe"), duelist(t, "Borin")
		a.AutoAttack, a.AutoAbility = false, false
		b.AutoAttack, b.AutoAbility = false, false
		s, err := combat.NewSession(a, b, true, combat.WithSeed(8))
		require.NoError(t, err)
		s.Advance(start)

		a.Effects.Apply(effect.Instance{
			Kind: effect.KindPoison, Magnitude: 7, AppliedAt: start, ExpiresAt: start.Add(5 * time.Second),
		}, 1)

		hp := a.CurrentHP
		if stepped {
			for i := 1; i <= 10; i++ {
				s.Advance(start.Add(time.Duration(i) * time.Second))
			}
		} else {
			s.Advance(start.Add(10 * time.Second))
		}
		return hp - a.CurrentHP
	}

	gap := run(false)
	perSecond := run(true)
	assert.InDelta(t, 28.0, gap, 1e-9, "7/s poison live through seconds 1-4 deals 28")
	assert.InDelta(t, perSecond, gap, 1e-9, "damage must not depend on polling cadence")
}

// TestSession_SnapshotRoundTrip verifies the terminal state and rewards
// survive a JSON round trip without loss.
func TestSession_SnapshotRoundTrip(t *testing.T) {
	a, b := duelist(t, "Ashe"), duelist(t, "Borin")
	s, err := combat.NewSession(a, b, true, combat.WithSeed(42))
	require.NoError(t, err)
	runToResolution(t, s, 300)

	out := s.Snapshot()
	data, err := json.Marshal(out)
	require.NoError(t, err)

	var back combat.Outcome
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, out, back, "snapshot must round-trip without loss")
	assert.Equal(t, s.Winner().ID, back.WinnerID)
	assert.Equal(t, s.Log(), back.Log)
	require.NotNil(t, back.Rewards)
	assert.Equal(t, *s.Rewards(), *back.Rewards)
}

// TestNewCombatant_ValidationErrors verifies configuration problems are
// rejected at construction with typed errors naming the field.
func TestNewCombatant_ValidationErrors(t *testing.T) {
	weapons := inventory.DefaultWeaponCatalog()
	abilities := ability.DefaultRegistry()
	base := func() combat.Spec {
		eq := inventory.NewEquipment()
		require.NoError(t, eq.Equip(&inventory.Item{
			Name: "sword", Slot: inventory.SlotMainHand, Rarity: inventory.RarityCommon,
			Level: 1, WeaponType: inventory.WeaponSword,
			Bonuses: map[inventory.Attribute]int{inventory.AttrMight: 1},
		}))
		return combat.Spec{ID: "x", Name: "X", Level: 5, Equipment: eq}
	}

	t.Run("level below one", func(t *testing.T) {
		spec := base()
		spec.Level = 0
		_, err := combat.NewCombatant(spec, weapons, abilities)
		var verr *combat.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "level", verr.Field)
	})

	t.Run("unknown ability id", func(t *testing.T) {
		spec := base()
		spec.Loadout = []string{"no_such_ability"}
		_, err := combat.NewCombatant(spec, weapons, abilities)
		var verr *combat.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "loadout", verr.Field)
	})

	t.Run("ultimate excluded from loadout", func(t *testing.T) {
		spec := base()
		spec.Loadout = []string{"sword_blade_storm"}
		_, err := combat.NewCombatant(spec, weapons, abilities)
		var verr *combat.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Reason, "ultimate")
	})

	t.Run("wrong weapon type ability", func(t *testing.T) {
		spec := base()
		spec.Loadout = []string{"axe_cleave"}
		_, err := combat.NewCombatant(spec, weapons, abilities)
		var verr *combat.ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("negative attribute", func(t *testing.T) {
		spec := base()
		spec.Attributes.Might = -1
		_, err := combat.NewCombatant(spec, weapons, abilities)
		var verr *combat.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "attributes", verr.Field)
	})
}

// TestSession_LongGapNoCatchUpBurst verifies resuming after a long idle
// gap produces a single attack per side, not a burst.
func TestSession_LongGapNoCatchUpBurst(t *testing.T) {
	a, b := duelist(t, "Ashe"), duelist(t, "Borin")
	a.Derived.MaxHP = 1e9
	b.Derived.MaxHP = 1e9
	s, err := combat.NewSession(a, b, true, combat.WithSeed(8))
	require.NoError(t, err)
	s.Advance(start)
	a.CurrentHP = 1e9
	b.CurrentHP = 1e9

	// Hours of idle time, then one advance.
	logBefore := len(s.Log())
	s.Advance(start.Add(3 * time.Hour))

	attacks := 0
	for _, line := range s.Log()[logBefore:] {
		if strings.Contains(line, "hits") || strings.Contains(line, "crits") ||
			strings.Contains(line, "dodges") || strings.Contains(line, "parries") {
			attacks++
		}
	}
	// Each side fires at most one ability volley plus one auto-attack.
	assert.LessOrEqual(t, attacks, 8, "no catch-up burst after an idle gap")
	assert.InDelta(t, a.Derived.MaxMana, a.CurrentMana+15, 16,
		"mana regenerated through the gap is clamped to the pool")
}
