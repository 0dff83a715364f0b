package dice

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand/v2"
)

// cryptoSource implements Source using crypto/rand.
//
// Invariant: All values produced are uniformly distributed; safe for concurrent use.
type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand.
// Combats driven by it cannot be replayed.
//
// Postcondition: Every value returned by Intn is in [0, n).
func NewCryptoSource() Source {
	return &cryptoSource{}
}

// Intn returns a cryptographically secure random int in [0, n).
//
// Precondition: n > 0. Panics with "dice: Intn called with n <= 0" if n <= 0.
// Panics with "dice: crypto/rand failure: <err>" if crypto/rand fails.
func (c *cryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	val, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("dice: crypto/rand failure: " + err.Error())
	}
	return int(val.Int64())
}

// float53 is 2^53, the number of distinct float64 values in [0, 1) with full precision.
const float53 = 1 << 53

// Float64 returns a cryptographically secure float in [0.0, 1.0).
func (c *cryptoSource) Float64() float64 {
	return float64(c.Intn(float53)) / float53
}

// seededSource is a deterministic PCG-backed Source.
// It is not safe for concurrent use; one combat engine owns it at a time.
type seededSource struct {
	rng *mrand.Rand
}

// NewSeededSource returns a deterministic Source for seed.
//
// Postcondition: Two sources built from the same seed yield identical draw sequences.
func NewSeededSource(seed int64) Source {
	s := uint64(seed)
	return &seededSource{rng: mrand.New(mrand.NewPCG(s, s^0x9e3779b97f4a7c15))}
}

// Intn returns a random int in [0, n).
//
// Precondition: n > 0. Panics with "dice: Intn called with n <= 0" if n <= 0.
func (s *seededSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	return s.rng.IntN(n)
}

// Float64 returns a random float in [0.0, 1.0).
func (s *seededSource) Float64() float64 {
	return s.rng.Float64()
}
