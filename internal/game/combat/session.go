package combat

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ShadyDingo/idleduelist/internal/game/dice"
	"github.com/ShadyDingo/idleduelist/internal/game/reward"
)

// State is the lifecycle phase of a combat session.
type State int

const (
	// StatePending means the session is created but has never advanced.
	StatePending State = iota
	// StateActive means the session is advancing.
	StateActive
	// StateResolved is terminal: winner and rewards are fixed. No
	// transition leaves StateResolved.
	StateResolved
)

// String returns the lifecycle phase name.
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateActive:
		return "active"
	case StateResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Session is the mutable state machine for one fight. It is not safe
// for concurrent use; the owner must serialise Advance calls. Distinct
// sessions share no mutable state and may run fully in parallel.
type Session struct {
	id    string
	a, b  *Combatant
	pvp   bool
	state State

	log     []string
	winner  *Combatant
	rewards *reward.Rewards

	src    dice.Source
	roller *dice.Roller
	logger *zap.Logger
	calc   *reward.Calculator
	enemy  *reward.EnemyProfile

	lastNow time.Time
}

// Option configures a Session at construction.
type Option func(*Session)

// WithSource replaces the session's randomness source.
func WithSource(src dice.Source) Option {
	return func(s *Session) { s.src = src }
}

// WithSeed installs a deterministic seeded source.
func WithSeed(seed int64) Option {
	return func(s *Session) { s.src = dice.NewSeededSource(seed) }
}

// WithLogger installs a structured logger; the default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// WithCalculator replaces the reward calculator.
func WithCalculator(calc *reward.Calculator) Option {
	return func(s *Session) { s.calc = calc }
}

// WithEnemyProfile sets the PvE reward profile. Required for PvE
// sessions; ignored for PvP.
func WithEnemyProfile(p *reward.EnemyProfile) Option {
	return func(s *Session) { s.enemy = p }
}

// NewSession creates a fight between a and b. Both combatants are
// reset to full HP and mana with empty cooldowns and effects on first
// advance.
//
// Precondition: a and b must be non-nil and distinct; PvE sessions
// (pvp == false) must carry an enemy profile via WithEnemyProfile.
// Postcondition: Returns a StatePending session, or an error naming
// the missing input.
func NewSession(a, b *Combatant, pvp bool, opts ...Option) (*Session, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("combat: both combatants are required")
	}
	if a == b {
		return nil, fmt.Errorf("combat: a combatant cannot fight itself")
	}
	s := &Session{
		id:     uuid.New().String(),
		a:      a,
		b:      b,
		pvp:    pvp,
		state:  StatePending,
		src:    dice.NewCryptoSource(),
		logger: zap.NewNop(),
		calc:   reward.NewCalculator(reward.DefaultConfig()),
	}
	for _, opt := range opts {
		opt(s)
	}
	if !pvp && s.enemy == nil {
		return nil, fmt.Errorf("combat: PvE session requires an enemy profile")
	}
	if !pvp {
		if err := s.enemy.Validate(); err != nil {
			return nil, fmt.Errorf("combat: %w", err)
		}
	}
	s.roller = dice.NewLoggedRoller(s.src, s.logger)
	return s, nil
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// State returns the current lifecycle phase.
func (s *Session) State() State { return s.state }

// Resolved reports whether the session has reached its terminal state.
func (s *Session) Resolved() bool { return s.state == StateResolved }

// PvP reports whether this is a player-versus-player fight.
func (s *Session) PvP() bool { return s.pvp }

// Winner returns the winning combatant, or nil while unresolved.
func (s *Session) Winner() *Combatant { return s.winner }

// Combatants returns both participants in construction order.
func (s *Session) Combatants() (*Combatant, *Combatant) { return s.a, s.b }

// Log returns a copy of the append-only combat log.
func (s *Session) Log() []string {
	out := make([]string, len(s.log))
	copy(out, s.log)
	return out
}

// Rewards returns the computed rewards, or nil while unresolved.
func (s *Session) Rewards() *reward.Rewards { return s.rewards }

// logf appends a formatted entry to the combat log.
func (s *Session) logf(format string, args ...any) {
	s.log = append(s.log, fmt.Sprintf(format, args...))
}

// finalize transitions the session to StateResolved with the given
// winner and computes rewards exactly once.
//
// Precondition: s.state != StateResolved.
// Postcondition: Resolved() is true; Winner() and Rewards() are fixed.
func (s *Session) finalize(winner, loser *Combatant) {
	s.state = StateResolved
	s.winner = winner
	r := s.calc.Compute(winner.Level, loser.Level, s.pvp, s.enemy, s.src)
	s.rewards = &r
	s.logf("%s is victorious!", winner.Name)
	s.logger.Info("session resolved",
		zap.String("session_id", s.id),
		zap.String("winner", winner.ID),
		zap.String("loser", loser.ID),
		zap.Bool("pvp", s.pvp),
		zap.Int("experience", r.Experience),
		zap.Int("currency", r.Currency),
		zap.Bool("item_dropped", r.ItemDropped),
	)
}

// Outcome is the serializable terminal view of a session.
type Outcome struct {
	SessionID string          `json:"session_id"`
	State     string          `json:"state"`
	PvP       bool            `json:"pvp"`
	WinnerID  string          `json:"winner_id,omitempty"`
	Log       []string        `json:"log"`
	Rewards   *reward.Rewards `json:"rewards,omitempty"`
}

// Snapshot returns the session's caller-visible state. For a resolved
// session the snapshot round-trips through JSON without losing any
// reward or log data.
func (s *Session) Snapshot() Outcome {
	out := Outcome{
		SessionID: s.id,
		State:     s.state.String(),
		PvP:       s.pvp,
		Log:       s.Log(),
	}
	if s.winner != nil {
		out.WinnerID = s.winner.ID
	}
	if s.rewards != nil {
		r := *s.rewards
		out.Rewards = &r
	}
	return out
}
