package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dungeon/internal/game/dice"
)

// TestCryptoSource_Intn_InRange verifies the postcondition:
// every value returned by Intn(6) is in [0, 6).
func TestCryptoSource_Intn_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Intn(6)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 6)
	}
}

// TestCryptoSource_Intn_PanicsOnZero verifies the precondition:
// Intn panics when called with n <= 0.
func TestCryptoSource_Intn_PanicsOnZero(t *testing.T) {
	src := dice.NewCryptoSource()
	assert.Panics(t, func() { src.Intn(0) })
}

func TestCryptoSource_Float64_InUnitInterval(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Float64()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestSeededSource_PanicsOnZero(t *testing.T) {
	assert.Panics(t, func() { dice.NewSeededSource(1).Intn(0) })
}

// TestSeededSource_SameSeedSameSequence verifies replay determinism.
func TestSeededSource_SameSeedSameSequence(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Int64().Draw(rt, "seed")
		n := rapid.IntRange(1, 50).Draw(rt, "draws")
		a := dice.NewSeededSource(seed)
		b := dice.NewSeededSource(seed)
		for i := 0; i < n; i++ {
			assert.Equal(rt, a.Intn(100), b.Intn(100))
			assert.Equal(rt, a.Float64(), b.Float64())
		}
	})
}

func TestRange_Bounds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		lo := rapid.IntRange(-50, 50).Draw(rt, "lo")
		hi := rapid.IntRange(lo, lo+100).Draw(rt, "hi")
		v := dice.Range(dice.NewSeededSource(rapid.Int64().Draw(rt, "seed")), lo, hi)
		assert.GreaterOrEqual(rt, v, lo)
		assert.LessOrEqual(rt, v, hi)
	})
}

func TestRange_EqualBoundsConsumesNoDraw(t *testing.T) {
	r := dice.NewLoggedRoller(dice.NewSeededSource(7), zap.NewNop())
	assert.Equal(t, 10, dice.Range(r, 10, 10))
	assert.Equal(t, 0, r.Draws())
}

func TestPick_EmptyReturnsMinusOne(t *testing.T) {
	r := dice.NewLoggedRoller(dice.NewSeededSource(7), nil)
	assert.Equal(t, -1, dice.Pick(r, 0))
	assert.Equal(t, 0, r.Draws())
}

func TestChance_ConsumesExactlyOneDraw(t *testing.T) {
	r := dice.NewLoggedRoller(dice.NewSeededSource(99), nil)
	dice.Chance(r, 0)
	dice.Chance(r, 1)
	assert.Equal(t, 2, r.Draws())
}

func TestRoller_PassesThroughValues(t *testing.T) {
	a := dice.NewSeededSource(42)
	r := dice.NewLoggedRoller(dice.NewSeededSource(42), zap.NewNop())
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Intn(20), r.Intn(20))
		assert.Equal(t, a.Float64(), r.Float64())
	}
	assert.Equal(t, 40, r.Draws())
}
