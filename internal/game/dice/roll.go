package dice

// Chance rolls a single uniform value against probability p.
//
// Precondition: src must be non-nil.
// Postcondition: Returns true with probability clamp(p, 0, 1); p <= 0
// never succeeds and p >= 1 always succeeds.
func Chance(src Source, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return src.Float64() < p
}

// Uniform returns a random float64 in [lo, hi).
//
// Precondition: src must be non-nil; lo <= hi.
// Postcondition: lo <= result < hi (result == lo when lo == hi).
func Uniform(src Source, lo, hi float64) float64 {
	if lo >= hi {
		return lo
	}
	return lo + src.Float64()*(hi-lo)
}

// IntBetween returns a random int in [lo, hi] inclusive.
//
// Precondition: src must be non-nil; lo <= hi.
// Postcondition: lo <= result <= hi.
func IntBetween(src Source, lo, hi int) int {
	if lo >= hi {
		return lo
	}
	return lo + src.Intn(hi-lo+1)
}
