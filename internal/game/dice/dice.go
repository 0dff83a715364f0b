// Package dice provides the randomness abstraction consumed by the combat engine.
//
// Every probability check and damage roll goes through a Source so that a combat
// seeded with the same value and fed the same commands replays identically.
package dice

// Source is the randomness provider for combat.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
	// Float64 returns a random float in [0.0, 1.0).
	Float64() float64
}

// Chance draws one Float64 from src and reports whether it fell below p.
//
// Precondition: src must be non-nil.
// Postcondition: Exactly one Float64 draw is consumed regardless of p.
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}

// Range returns a uniform integer in [lo, hi].
// When hi <= lo no draw is consumed and lo is returned.
//
// Precondition: src must be non-nil.
// Postcondition: lo <= result <= max(lo, hi).
func Range(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.Intn(hi-lo+1)
}

// Pick returns a uniform index in [0, n), or -1 when n <= 0 without drawing.
func Pick(src Source, n int) int {
	if n <= 0 {
		return -1
	}
	return src.Intn(n)
}
