package combat

import (
	"time"

	"go.uber.org/zap"

	"github.com/ShadyDingo/idleduelist/internal/game/ability"
	"github.com/ShadyDingo/idleduelist/internal/game/dice"
	"github.com/ShadyDingo/idleduelist/internal/game/effect"
	"github.com/ShadyDingo/idleduelist/internal/game/inventory"
	"github.com/ShadyDingo/idleduelist/internal/game/stats"
)

// autoAttackCritMultiplier is applied to auto-attack damage on a
// critical hit; abilities carry their own multiplier.
const autoAttackCritMultiplier = 1.5

// damageFloorFraction is the minimum damage a landed hit deals, as a
// fraction of the pre-mitigation base.
const damageFloorFraction = 0.10

// hitResult describes how a single hit resolved.
type hitResult struct {
	Dodged  bool
	Parried bool
	Crit    bool
	Damage  float64
}

// Landed reports whether the hit connected.
func (r hitResult) Landed() bool { return !r.Dodged && !r.Parried }

// resolveHit performs one complete hit resolution: dodge, then parry,
// then a guaranteed hit with an independent crit roll, followed by the
// damage formula.
//
// Roll precedence: dodge first; if dodged, no damage and no status
// effects. Otherwise parry; same null effect. Otherwise the hit lands.
//
// Damage order: power x multiplier, the 0.70 dual-wield penalty, the
// attacker's damage-boost buffs, the defender's vulnerability debuffs,
// a uniform [0.5, 1.0) variance factor, mitigation (physical: flat
// defense minus the attacker's armor penetration; magical: the
// resist/(resist+100) diminishing-returns curve), the crit multiplier
// last, and finally the floor at 10% of pre-mitigation damage.
//
// Precondition: attacker and defender must be non-nil and alive.
// Postcondition: result.Damage >= 0; a landed hit deals at least the
// documented floor; dodged and parried hits deal exactly 0.
func (s *Session) resolveHit(attacker, defender *Combatant, kind inventory.DamageKind, multiplier, critMultiplier float64, now time.Time) hitResult {
	if s.roller.Chance("dodge", defender.Derived.DodgeChance) {
		return hitResult{Dodged: true}
	}
	if s.roller.Chance("parry", defender.Derived.ParryChance) {
		return hitResult{Parried: true}
	}
	crit := s.roller.Chance("crit", attacker.Derived.CritChance)

	base := attacker.Derived.Power(kind) * multiplier
	if attacker.Derived.DualWield {
		base *= stats.DualWieldDamagePenalty
	}
	base *= 1 + attacker.Effects.DamageBoostPercent(now)
	base *= 1 + defender.Effects.VulnerabilityPercent(now)
	base *= dice.Uniform(s.src, 0.5, 1.0)

	damage := base
	if kind == inventory.DamageMagical {
		resist := defender.Derived.MagicResist
		damage *= 1 - resist/(resist+100)
	} else {
		mitigation := defender.Derived.Defense + defender.Effects.DefenseBonus(now) - attacker.ArmorPenetration
		if mitigation < 0 {
			mitigation = 0
		}
		damage -= mitigation
	}
	if crit {
		damage *= critMultiplier
	}
	if floor := base * damageFloorFraction; damage < floor {
		damage = floor
	}

	return hitResult{Crit: crit, Damage: damage}
}

// applyStatuses rolls each of def's status templates independently and
// applies successes to the designated target.
//
// Precondition: only called for landed hits.
// Postcondition: Each applied instance respects its template's stack cap.
func (s *Session) applyStatuses(attacker, defender *Combatant, def *ability.Definition, now time.Time) {
	for _, tmpl := range def.Statuses {
		if !s.roller.Chance("status:"+string(tmpl.Kind), tmpl.Chance) {
			continue
		}
		target := defender
		if tmpl.Target == ability.TargetSelf {
			target = attacker
		}
		target.Effects.Apply(effect.Instance{
			Kind:      tmpl.Kind,
			Magnitude: tmpl.Magnitude,
			AppliedAt: now,
			ExpiresAt: now.Add(time.Duration(tmpl.Duration * float64(time.Second))),
		}, tmpl.MaxStacks)
		s.logf("%s is afflicted by %s.", target.Name, tmpl.Kind)
		s.logger.Debug("status applied",
			zap.String("session_id", s.id),
			zap.String("target", target.ID),
			zap.String("kind", string(tmpl.Kind)),
			zap.Float64("magnitude", tmpl.Magnitude),
			zap.Float64("duration", tmpl.Duration),
		)
	}
}
