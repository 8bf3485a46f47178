package session

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ShadyDingo/idleduelist/internal/game/ability"
	"github.com/ShadyDingo/idleduelist/internal/game/combat"
	"github.com/ShadyDingo/idleduelist/internal/game/inventory"
	"github.com/ShadyDingo/idleduelist/internal/game/reward"
)

// Config bounds an unattended auto-fight run.
type Config struct {
	// Deadline is the wall-clock instant at which the run stops: no new
	// session is created at or after it, and a session still in flight
	// is abandoned without rewards.
	Deadline time.Time
	// MaxSessions caps the number of resolved sessions; zero means the
	// deadline is the only bound.
	MaxSessions int
}

// Report summarizes a finished (or in-progress) auto-fight run.
type Report struct {
	SessionsFought int            `json:"sessionsFought"`
	Wins           int            `json:"wins"`
	Losses         int            `json:"losses"`
	Totals         reward.Rewards `json:"totals"`
}

// AutoFight repeatedly pits one player against the same PvE target,
// accumulating rewards across many individual resolved sessions until
// a wall-clock deadline or an optional session cap.
//
// AutoFight is not internally synchronized: a run is owned by one
// goroutine, which calls Advance at whatever cadence it likes. It is
// resumable across arbitrarily long gaps because every trigger inside
// a session is timestamp-gated.
type AutoFight struct {
	cfg       Config
	player    combat.Spec
	enemy     combat.Spec
	profile   *reward.EnemyProfile
	weapons   *inventory.WeaponCatalog
	abilities *ability.Registry

	store       Store
	logger      *zap.Logger
	sessionOpts []combat.Option

	current *combat.Session
	// playerSide is the player's combatant within current.
	playerSide *combat.Combatant

	fought int
	wins   int
	losses int
	totals reward.Rewards
	done   bool
}

// Option configures an AutoFight.
type Option func(*AutoFight)

// WithStore registers each active session in store for the duration of
// its fight, so outside observers can watch the run.
func WithStore(store Store) Option {
	return func(f *AutoFight) { f.store = store }
}

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(f *AutoFight) { f.logger = logger }
}

// WithSessionOptions forwards opts to every session the run creates,
// e.g. a shared random source for deterministic tests.
func WithSessionOptions(opts ...combat.Option) Option {
	return func(f *AutoFight) { f.sessionOpts = append(f.sessionOpts, opts...) }
}

// NewAutoFight creates a supervisor for player versus a fixed PvE
// target described by enemy and profile.
//
// Precondition: weapons and abilities must be non-nil.
// Postcondition: Both specs are validated against the catalogs; a
// configuration problem is returned now rather than surfacing
// mid-run.
func NewAutoFight(player, enemy combat.Spec, profile *reward.EnemyProfile, weapons *inventory.WeaponCatalog, abilities *ability.Registry, cfg Config, opts ...Option) (*AutoFight, error) {
	if profile == nil {
		return nil, fmt.Errorf("auto-fight: enemy reward profile is required")
	}
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("auto-fight: %w", err)
	}
	if cfg.MaxSessions < 0 {
		return nil, fmt.Errorf("auto-fight: max sessions must be >= 0, got %d", cfg.MaxSessions)
	}
	if _, err := combat.NewCombatant(player, weapons, abilities); err != nil {
		return nil, fmt.Errorf("auto-fight player: %w", err)
	}
	if _, err := combat.NewCombatant(enemy, weapons, abilities); err != nil {
		return nil, fmt.Errorf("auto-fight enemy: %w", err)
	}

	f := &AutoFight{
		cfg:       cfg,
		player:    player,
		enemy:     enemy,
		profile:   profile,
		weapons:   weapons,
		abilities: abilities,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Advance steps the run to now: it creates a session when none is in
// flight, advances the current session, and on resolution banks the
// rewards (only when the player won) and retires the session so the
// next call starts a fresh one. Non-blocking; completes in
// microseconds.
//
// Postcondition: After the deadline passes, any in-flight session is
// abandoned without rewards and the run reports done.
func (f *AutoFight) Advance(now time.Time) error {
	if f.done {
		return nil
	}

	if !now.Before(f.cfg.Deadline) {
		if f.current != nil {
			f.retire(f.current)
			f.logger.Info("auto-fight abandoned in-flight session at deadline",
				zap.String("session_id", f.current.ID()))
			f.current = nil
			f.playerSide = nil
		}
		f.finish()
		return nil
	}

	if f.current == nil {
		if err := f.startSession(); err != nil {
			return err
		}
	}

	f.current.Advance(now)
	if !f.current.Resolved() {
		return nil
	}

	f.fought++
	if f.current.Winner() == f.playerSide {
		f.wins++
		f.totals.Add(*f.current.Rewards())
	} else {
		f.losses++
	}
	f.logger.Debug("auto-fight session resolved",
		zap.String("session_id", f.current.ID()),
		zap.Bool("player_won", f.current.Winner() == f.playerSide),
		zap.Int("sessions_fought", f.fought),
	)
	f.retire(f.current)
	f.current = nil
	f.playerSide = nil

	if f.cfg.MaxSessions > 0 && f.fought >= f.cfg.MaxSessions {
		f.finish()
	}
	return nil
}

// startSession builds fresh combatants and a fresh session. Combatants
// are rebuilt each time because their mutable state is session-scoped.
func (f *AutoFight) startSession() error {
	p, err := combat.NewCombatant(f.player, f.weapons, f.abilities)
	if err != nil {
		return fmt.Errorf("auto-fight player: %w", err)
	}
	e, err := combat.NewCombatant(f.enemy, f.weapons, f.abilities)
	if err != nil {
		return fmt.Errorf("auto-fight enemy: %w", err)
	}

	opts := append([]combat.Option{
		combat.WithEnemyProfile(f.profile),
		combat.WithLogger(f.logger),
	}, f.sessionOpts...)
	s, err := combat.NewSession(p, e, false, opts...)
	if err != nil {
		return fmt.Errorf("auto-fight: %w", err)
	}

	f.current = s
	f.playerSide = p
	if f.store != nil {
		f.store.Put(s)
	}
	return nil
}

func (f *AutoFight) retire(s *combat.Session) {
	if f.store != nil {
		f.store.Delete(s.ID())
	}
}

func (f *AutoFight) finish() {
	f.done = true
	f.logger.Info("auto-fight run finished",
		zap.Int("sessions_fought", f.fought),
		zap.Int("wins", f.wins),
		zap.Int("losses", f.losses),
		zap.Int("experience", f.totals.Experience),
		zap.Int("currency", f.totals.Currency),
	)
}

// Done reports whether the run has stopped creating sessions.
func (f *AutoFight) Done() bool { return f.done }

// Current returns the in-flight session, or nil between sessions.
func (f *AutoFight) Current() *combat.Session { return f.current }

// Report returns the accumulated totals so far.
func (f *AutoFight) Report() Report {
	return Report{
		SessionsFought: f.fought,
		Wins:           f.wins,
		Losses:         f.losses,
		Totals:         f.totals,
	}
}
