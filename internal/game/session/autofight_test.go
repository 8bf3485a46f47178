package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShadyDingo/idleduelist/internal/game/ability"
	"github.com/ShadyDingo/idleduelist/internal/game/combat"
	"github.com/ShadyDingo/idleduelist/internal/game/inventory"
	"github.com/ShadyDingo/idleduelist/internal/game/reward"
	"github.com/ShadyDingo/idleduelist/internal/game/session"
	"github.com/ShadyDingo/idleduelist/internal/game/stats"
)

// playerSpec is a strong sword duelist; dummySpec is an unarmed target
// that cannot realistically win, so run outcomes are predictable.
func playerSpec(t testing.TB) combat.Spec {
	t.Helper()
	eq := inventory.NewEquipment()
	require.NoError(t, eq.Equip(&inventory.Item{
		Name: "sword", Slot: inventory.SlotMainHand, Rarity: inventory.RarityCommon,
		Level: 1, WeaponType: inventory.WeaponSword,
		Bonuses: map[inventory.Attribute]int{inventory.AttrMight: 1},
	}))
	return combat.Spec{
		ID: "player", Name: "Vael", Level: 10,
		Attributes:  stats.Attributes{Might: 50, Agility: 10, Vitality: 30, Intellect: 10, Wisdom: 10, Charisma: 10},
		Equipment:   eq,
		Loadout:     []string{"sword_slash", "sword_riposte"},
		AutoAttack:  true,
		AutoAbility: true,
	}
}

func dummySpec() combat.Spec {
	return combat.Spec{
		ID: "dummy", Name: "Training Dummy", Level: 1,
		Attributes: stats.Attributes{Might: 1, Agility: 1, Vitality: 1, Intellect: 1, Wisdom: 1, Charisma: 1},
		AutoAttack: true,
	}
}

func dummyProfile() *reward.EnemyProfile {
	return &reward.EnemyProfile{
		Name:        "Training Dummy",
		Experience:  12,
		CurrencyMin: 3,
		CurrencyMax: 6,
		DropChance:  0,
		ItemLevel:   1,
	}
}

func newRun(t testing.TB, cfg session.Config, opts ...session.Option) *session.AutoFight {
	t.Helper()
	f, err := session.NewAutoFight(playerSpec(t), dummySpec(), dummyProfile(),
		inventory.DefaultWeaponCatalog(), ability.DefaultRegistry(), cfg, opts...)
	require.NoError(t, err)
	return f
}

// drive advances the run in one-second steps through the given span.
func drive(t testing.TB, f *session.AutoFight, seconds int) {
	t.Helper()
	for i := 0; i <= seconds; i++ {
		require.NoError(t, f.Advance(start.Add(time.Duration(i)*time.Second)))
		if f.Done() {
			return
		}
	}
}

// TestAutoFight_RunToDeadline verifies a run fights repeated sessions
// against the same target, banks rewards per win, and stops at the
// deadline.
func TestAutoFight_RunToDeadline(t *testing.T) {
	f := newRun(t, session.Config{Deadline: start.Add(2 * time.Minute)})
	drive(t, f, 150)

	require.True(t, f.Done(), "run must stop once the deadline passes")
	assert.Nil(t, f.Current())

	rep := f.Report()
	assert.Greater(t, rep.SessionsFought, 1, "two simulated minutes fit many short fights")
	assert.Equal(t, rep.SessionsFought, rep.Wins+rep.Losses)
	assert.Equal(t, rep.SessionsFought, rep.Wins, "an unarmed level-1 dummy cannot win")
	assert.Equal(t, rep.Wins*dummyProfile().Experience, rep.Totals.Experience)
	assert.GreaterOrEqual(t, rep.Totals.Currency, rep.Wins*dummyProfile().CurrencyMin)
	assert.LessOrEqual(t, rep.Totals.Currency, rep.Wins*dummyProfile().CurrencyMax)
	assert.False(t, rep.Totals.ItemDropped, "drop chance zero means no items")
}

// TestAutoFight_MaxSessionsCap verifies the optional cap ends the run
// before the deadline.
func TestAutoFight_MaxSessionsCap(t *testing.T) {
	f := newRun(t, session.Config{
		Deadline:    start.Add(24 * time.Hour),
		MaxSessions: 3,
	})
	drive(t, f, 3600)

	require.True(t, f.Done())
	assert.Equal(t, 3, f.Report().SessionsFought)
}

// TestAutoFight_DeadlineAbandonsInFlight verifies a session still in
// flight at the deadline yields no rewards.
func TestAutoFight_DeadlineAbandonsInFlight(t *testing.T) {
	f := newRun(t, session.Config{Deadline: start.Add(2 * time.Second)})

	// One advance anchors a fresh session; the fight cannot resolve yet.
	require.NoError(t, f.Advance(start))
	require.NotNil(t, f.Current())
	before := f.Report()

	require.NoError(t, f.Advance(start.Add(5*time.Second)))
	assert.True(t, f.Done())
	assert.Nil(t, f.Current())
	assert.Equal(t, before, f.Report(), "an abandoned session banks nothing")
}

// TestAutoFight_StoreTracksActiveSession verifies the optional store
// holds exactly the in-flight session and is emptied when the run ends.
func TestAutoFight_StoreTracksActiveSession(t *testing.T) {
	store := session.NewMemoryStore()
	f := newRun(t, session.Config{Deadline: start.Add(time.Hour), MaxSessions: 2},
		session.WithStore(store))

	require.NoError(t, f.Advance(start))
	require.NotNil(t, f.Current())
	assert.Equal(t, 1, store.Len())
	got, ok := store.Get(f.Current().ID())
	require.True(t, ok)
	assert.Same(t, f.Current(), got)

	drive(t, f, 3600)
	require.True(t, f.Done())
	assert.Zero(t, store.Len(), "retired sessions leave the store")
}

// TestAutoFight_ResumesAcrossLongGap verifies a run survives an
// arbitrarily long gap between advances without bursting.
func TestAutoFight_ResumesAcrossLongGap(t *testing.T) {
	f := newRun(t, session.Config{Deadline: start.Add(3 * time.Hour), MaxSessions: 5})

	require.NoError(t, f.Advance(start))
	// The owner goes away for an hour mid-run.
	resume := start.Add(time.Hour)
	require.NoError(t, f.Advance(resume))
	for i := 1; i <= 600 && !f.Done(); i++ {
		require.NoError(t, f.Advance(resume.Add(time.Duration(i)*time.Second)))
	}

	require.True(t, f.Done())
	assert.Equal(t, 5, f.Report().SessionsFought)
}

func TestNewAutoFight_Validation(t *testing.T) {
	weapons, abilities := inventory.DefaultWeaponCatalog(), ability.DefaultRegistry()
	cfg := session.Config{Deadline: start.Add(time.Hour)}

	t.Run("missing profile", func(t *testing.T) {
		_, err := session.NewAutoFight(playerSpec(t), dummySpec(), nil, weapons, abilities, cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "profile")
	})

	t.Run("invalid profile", func(t *testing.T) {
		p := dummyProfile()
		p.DropChance = 2
		_, err := session.NewAutoFight(playerSpec(t), dummySpec(), p, weapons, abilities, cfg)
		require.Error(t, err)
	})

	t.Run("negative session cap", func(t *testing.T) {
		bad := session.Config{Deadline: start.Add(time.Hour), MaxSessions: -1}
		_, err := session.NewAutoFight(playerSpec(t), dummySpec(), dummyProfile(), weapons, abilities, bad)
		require.Error(t, err)
	})

	t.Run("invalid player loadout", func(t *testing.T) {
		p := playerSpec(t)
		p.Loadout = []string{"axe_cleave"}
		_, err := session.NewAutoFight(p, dummySpec(), dummyProfile(), weapons, abilities, cfg)
		require.Error(t, err)
		var verr *combat.ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}
