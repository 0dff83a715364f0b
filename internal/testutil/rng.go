// Package testutil provides shared helpers for package tests.
package testutil

// ScriptedSource is a deterministic dice.Source for tests.
// Float64 and Intn each consume their own queue; once a queue is exhausted the
// fallback is used: Float64 returns DefaultFloat and Intn returns n-1.
//
// The defaults are chosen so that an exhausted script never succeeds at
// probability checks (no dodge, no crit, no flee, no drop, no elite ability).
type ScriptedSource struct {
	Floats       []float64
	Ints         []int
	DefaultFloat float64

	FloatCalls int
	IntCalls   int
}

// NewScriptedSource returns a ScriptedSource with DefaultFloat 0.99.
func NewScriptedSource() *ScriptedSource {
	return &ScriptedSource{DefaultFloat: 0.99}
}

// WithFloats appends values to the Float64 queue.
func (s *ScriptedSource) WithFloats(vals ...float64) *ScriptedSource {
	s.Floats = append(s.Floats, vals...)
	return s
}

// WithInts appends values to the Intn queue.
func (s *ScriptedSource) WithInts(vals ...int) *ScriptedSource {
	s.Ints = append(s.Ints, vals...)
	return s
}

// Intn returns the next scripted int clamped into [0, n), or n-1 when exhausted.
func (s *ScriptedSource) Intn(n int) int {
	if n <= 0 {
		panic("testutil: Intn called with n <= 0")
	}
	s.IntCalls++
	if len(s.Ints) == 0 {
		return n - 1
	}
	v := s.Ints[0]
	s.Ints = s.Ints[1:]
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

// Float64 returns the next scripted float, or DefaultFloat when exhausted.
func (s *ScriptedSource) Float64() float64 {
	s.FloatCalls++
	if len(s.Floats) == 0 {
		return s.DefaultFloat
	}
	v := s.Floats[0]
	s.Floats = s.Floats[1:]
	return v
}

// FixedSource returns the same values for every draw.
type FixedSource struct {
	Int   int
	Float float64
}

// Intn returns f.Int clamped into [0, n).
func (f FixedSource) Intn(n int) int {
	if f.Int >= n {
		return n - 1
	}
	if f.Int < 0 {
		return 0
	}
	return f.Int
}

// Float64 returns f.Float.
func (f FixedSource) Float64() float64 { return f.Float }
