package effect

import "time"

// Instance is one applied status effect on a combatant.
type Instance struct {
	Kind      Kind
	Magnitude float64
	AppliedAt time.Time
	ExpiresAt time.Time
}

// Live reports whether the instance is still in effect at now.
func (i Instance) Live(now time.Time) bool {
	return now.Before(i.ExpiresAt)
}

// ActiveSet tracks all status effects currently applied to one
// combatant, ordered by application time within each kind. It is not
// safe for concurrent use; the owning session serialises access.
type ActiveSet struct {
	instances []Instance
}

// NewActiveSet creates an empty ActiveSet.
func NewActiveSet() *ActiveSet {
	return &ActiveSet{}
}

// Apply adds inst to the set. When maxStacks > 0 and the kind already
// has maxStacks live instances, the OLDEST instance of that kind is
// evicted first. maxStacks == 0 means a single instance: re-applying
// replaces the existing one.
//
// Precondition: inst.Kind must be valid; inst.ExpiresAt after inst.AppliedAt.
// Postcondition: Stacks(inst.Kind, inst.AppliedAt) <= max(maxStacks, 1).
func (s *ActiveSet) Apply(inst Instance, maxStacks int) {
	limit := maxStacks
	if limit <= 0 {
		limit = 1
	}
	for s.countKind(inst.Kind) >= limit {
		s.evictOldest(inst.Kind)
	}
	s.instances = append(s.instances, inst)
}

// ExpireThrough removes every instance whose expiry is at or before now.
//
// Postcondition: All remaining instances satisfy Live(now).
func (s *ActiveSet) ExpireThrough(now time.Time) {
	kept := s.instances[:0]
	for _, inst := range s.instances {
		if inst.Live(now) {
			kept = append(kept, inst)
		}
	}
	s.instances = kept
}

// Clear removes every instance.
func (s *ActiveSet) Clear() {
	s.instances = s.instances[:0]
}

// Stacks returns the number of live instances of kind at now.
func (s *ActiveSet) Stacks(kind Kind, now time.Time) int {
	n := 0
	for _, inst := range s.instances {
		if inst.Kind == kind && inst.Live(now) {
			n++
		}
	}
	return n
}

// Stunned reports whether any live stun instance exists at now.
func (s *ActiveSet) Stunned(now time.Time) bool {
	return s.Stacks(KindStun, now) > 0
}

// DamageBoostPercent sums the magnitudes of live damage-boost instances.
//
// Postcondition: Returns >= 0.
func (s *ActiveSet) DamageBoostPercent(now time.Time) float64 {
	return s.sumMagnitude(KindDamageBoost, now)
}

// VulnerabilityPercent sums the magnitudes of live vulnerability instances.
//
// Postcondition: Returns >= 0.
func (s *ActiveSet) VulnerabilityPercent(now time.Time) float64 {
	return s.sumMagnitude(KindVulnerability, now)
}

// DefenseBonus sums the magnitudes of live defense-boost instances.
func (s *ActiveSet) DefenseBonus(now time.Time) float64 {
	return s.sumMagnitude(KindDefenseBoost, now)
}

// SlowPercent sums the magnitudes of live slow instances.
func (s *ActiveSet) SlowPercent(now time.Time) float64 {
	return s.sumMagnitude(KindSlow, now)
}

// DotPerSecond sums the per-second true damage of all live poison and
// burn stacks at now.
//
// Postcondition: Returns >= 0.
func (s *ActiveSet) DotPerSecond(now time.Time) float64 {
	total := 0.0
	for _, inst := range s.instances {
		if inst.Kind.IsDot() && inst.Live(now) {
			total += inst.Magnitude
		}
	}
	return total
}

// All returns a copy of the current instances, live or not.
func (s *ActiveSet) All() []Instance {
	out := make([]Instance, len(s.instances))
	copy(out, s.instances)
	return out
}

func (s *ActiveSet) sumMagnitude(kind Kind, now time.Time) float64 {
	total := 0.0
	for _, inst := range s.instances {
		if inst.Kind == kind && inst.Live(now) {
			total += inst.Magnitude
		}
	}
	return total
}

func (s *ActiveSet) countKind(kind Kind) int {
	n := 0
	for _, inst := range s.instances {
		if inst.Kind == kind {
			n++
		}
	}
	return n
}

// evictOldest removes the instance of kind with the earliest AppliedAt.
func (s *ActiveSet) evictOldest(kind Kind) {
	oldest := -1
	for i, inst := range s.instances {
		if inst.Kind != kind {
			continue
		}
		if oldest < 0 || inst.AppliedAt.Before(s.instances[oldest].AppliedAt) {
			oldest = i
		}
	}
	if oldest < 0 {
		return
	}
	s.instances = append(s.instances[:oldest], s.instances[oldest+1:]...)
}
