package combat

import (
	"time"

	"go.uber.org/zap"

	"github.com/ShadyDingo/idleduelist/internal/game/dice"
)

// Advance moves the fight forward to now. It is idempotent under rapid
// repeated calls at the same now (no double auto-attack, no double mana
// regen) and safe across arbitrarily long gaps: all triggers are
// recomputed from stored timestamps, never from a tick counter.
//
// The first call anchors both combatants' timers at now and transitions
// Pending -> Active; no action fires at zero elapsed time. Advancing a
// resolved session is a logged no-op. A now earlier than the previous
// advance is clamped forward (time never runs backwards mid-session).
//
// Per advance, for each combatant: damage-over-time ticks once per
// whole elapsed second, expired effects are dropped, mana regenerates
// continuously, at most one auto-ability fires, and auto-attacks fire
// on their cadence gate. Termination is checked after every action; the
// first combatant to reach 0 HP loses, and when a single action drops
// both sides to zero the non-acting side wins.
func (s *Session) Advance(now time.Time) {
	if s.state == StateResolved {
		s.logger.Debug("advance on resolved session ignored", zap.String("session_id", s.id))
		return
	}

	if s.state == StatePending {
		s.a.reset(now)
		s.b.reset(now)
		s.state = StateActive
		s.lastNow = now
		s.logf("%s engages %s!", s.a.Name, s.b.Name)
		return
	}

	// Zero elapsed time can change nothing: no regenerated mana, no DoT
	// ticks, no cadence gates opening. Returning here makes rapid
	// repeated calls at one timestamp true no-ops.
	if !now.After(s.lastNow) {
		return
	}
	s.lastNow = now

	// Acting order is re-rolled every advance; a fixed order would hand
	// the first mover every same-tick kill in mirror matchups.
	pairs := [2]struct{ actor, opponent *Combatant }{
		{s.a, s.b},
		{s.b, s.a},
	}
	if dice.Chance(s.src, 0.5) {
		pairs[0], pairs[1] = pairs[1], pairs[0]
	}

	// Upkeep: DoT ticks replay before expiry pruning, so a stack that
	// lapses inside a long polling gap still deals every second it was
	// live for. tickDots evaluates each boundary with the set as of that
	// instant, so post-expiry seconds contribute nothing either way.
	for _, p := range pairs {
		if !p.actor.Alive() {
			continue
		}
		s.tickDots(p.actor, now)
		if !p.actor.Alive() {
			s.logf("%s succumbs to their wounds.", p.actor.Name)
			s.finalize(p.opponent, p.actor)
			return
		}
	}
	for _, p := range pairs {
		p.actor.Effects.ExpireThrough(now)
		if p.actor.Alive() {
			p.actor.regenMana(now)
		}
	}

	// Actions: abilities before attacks, construction order.
	for _, p := range pairs {
		if s.state == StateResolved {
			return
		}
		if !p.actor.Alive() || p.actor.Effects.Stunned(now) {
			continue
		}
		if p.actor.AutoAbility {
			s.fireAbility(p.actor, p.opponent, now)
			if s.state == StateResolved {
				return
			}
		}
		if p.actor.AutoAttack && p.actor.attackReady(now) {
			s.fireAutoAttack(p.actor, p.opponent, now)
		}
	}
}

// tickDots applies damage-over-time once per whole second elapsed since
// the combatant's last DoT tick. Each second is evaluated at its own
// boundary so stacks that expire mid-gap stop contributing. DoT damage
// is true damage: it bypasses defense and resistance, and stun does not
// prevent it.
func (s *Session) tickDots(c *Combatant, now time.Time) {
	ticks := int(now.Sub(c.lastDot).Seconds())
	if ticks <= 0 {
		return
	}
	total := 0.0
	for i := 1; i <= ticks; i++ {
		at := c.lastDot.Add(time.Duration(i) * time.Second)
		total += c.Effects.DotPerSecond(at)
	}
	c.lastDot = c.lastDot.Add(time.Duration(ticks) * time.Second)
	if total <= 0 {
		return
	}
	c.ApplyDamage(total)
	s.logf("%s takes %.0f damage over time.", c.Name, total)
	s.logger.Debug("dot tick",
		zap.String("session_id", s.id),
		zap.String("combatant", c.ID),
		zap.Int("ticks", ticks),
		zap.Float64("damage", total),
	)
}

// fireAbility selects and triggers the first loadout ability that is
// simultaneously off-cooldown and affordable. At most one ability fires
// per advance per combatant; when none qualify, nothing happens and the
// auto-attack still proceeds independently.
//
// Postcondition: On firing, mana is deducted immediately and the
// cooldown expiry is set to now + cooldown before any hit resolves.
func (s *Session) fireAbility(actor, defender *Combatant, now time.Time) {
	for _, def := range actor.Loadout {
		if !actor.abilityReady(def, now) {
			continue
		}
		actor.SpendMana(def.ManaCost)
		actor.cooldowns[def.ID] = now.Add(time.Duration(def.Cooldown * float64(time.Second)))
		s.logger.Debug("ability fired",
			zap.String("session_id", s.id),
			zap.String("actor", actor.ID),
			zap.String("ability", def.ID),
			zap.Float64("mana_cost", def.ManaCost),
		)

		for hit := 0; hit < def.Hits; hit++ {
			r := s.resolveHit(actor, defender, def.DamageKind, def.DamageMultiplier, def.EffectiveCritMultiplier(), now)
			switch {
			case r.Dodged:
				s.logf("%s dodges %s's %s.", defender.Name, actor.Name, def.Name)
			case r.Parried:
				s.logf("%s parries %s's %s.", defender.Name, actor.Name, def.Name)
			default:
				defender.ApplyDamage(r.Damage)
				if r.Crit {
					s.logf("%s's %s crits %s for %.0f damage!", actor.Name, def.Name, defender.Name, r.Damage)
				} else {
					s.logf("%s's %s hits %s for %.0f damage.", actor.Name, def.Name, defender.Name, r.Damage)
				}
				s.applyStatuses(actor, defender, def, now)
				if !defender.Alive() {
					s.logf("%s falls to %s's %s.", defender.Name, actor.Name, def.Name)
					s.finalize(actor, defender)
					return
				}
			}
		}
		return
	}
}

// fireAutoAttack performs one cadence-gated basic attack. Firing resets
// the attack timer to now rather than incrementing by the interval, so
// long polling gaps never produce catch-up bursts.
func (s *Session) fireAutoAttack(actor, defender *Combatant, now time.Time) {
	actor.lastAttack = now

	r := s.resolveHit(actor, defender, actor.Derived.DamageKind, 1.0, autoAttackCritMultiplier, now)
	switch {
	case r.Dodged:
		s.logf("%s dodges %s's attack.", defender.Name, actor.Name)
	case r.Parried:
		s.logf("%s parries %s's attack.", defender.Name, actor.Name)
	default:
		defender.ApplyDamage(r.Damage)
		if r.Crit {
			s.logf("%s crits %s for %.0f damage!", actor.Name, defender.Name, r.Damage)
		} else {
			s.logf("%s hits %s for %.0f damage.", actor.Name, defender.Name, r.Damage)
		}
		if !defender.Alive() {
			s.logf("%s falls to %s's attack.", defender.Name, actor.Name)
			s.finalize(actor, defender)
		}
	}
}
