package condition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dungeon/internal/game/condition"
)

func TestAttackPct_NoEffects_Zero(t *testing.T) {
	assert.Equal(t, 0, condition.AttackPct(condition.NewActiveSet()))
}

func TestScaleAttack_BattleCryAndWeakened(t *testing.T) {
	s := condition.NewActiveSet()
	s.Apply(condition.BattleCry, 2)
	assert.Equal(t, 25, condition.ScaleAttack(20, s))
	s.Apply(condition.Weakened, 2)
	// +25 -25 cancels out
	assert.Equal(t, 20, condition.ScaleAttack(20, s))
}

func TestScaleDefense_Fortified(t *testing.T) {
	s := condition.NewActiveSet()
	s.Apply(condition.Fortified, 3)
	assert.Equal(t, 15, condition.ScaleDefense(10, s))
}

func TestSkipsTurn(t *testing.T) {
	s := condition.NewActiveSet()
	_, skip := condition.SkipsTurn(s)
	assert.False(t, skip)

	s.Apply(condition.Freeze, 1)
	k, skip := condition.SkipsTurn(s)
	assert.True(t, skip)
	assert.Equal(t, condition.Freeze, k)
}

func TestPropertyScaleAttack_NeverNegative(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		base := rapid.IntRange(0, 500).Draw(t, "base")
		s := condition.NewActiveSet()
		if rapid.Bool().Draw(t, "slow") {
			s.Apply(condition.Slow, 1)
		}
		if rapid.Bool().Draw(t, "weakened") {
			s.Apply(condition.Weakened, 1)
		}
		assert.GreaterOrEqual(t, condition.ScaleAttack(base, s), 0)
		assert.LessOrEqual(t, condition.ScaleAttack(base, s), base)
	})
}
