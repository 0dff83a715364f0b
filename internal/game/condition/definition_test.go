package condition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/dungeon/internal/game/condition"
)

func TestKinds_AllHaveDefinitions(t *testing.T) {
	kinds := condition.Kinds()
	assert.Len(t, kinds, 10)
	for _, k := range kinds {
		d, ok := condition.Lookup(k)
		require.True(t, ok, "kind %d must have a definition", k)
		assert.Equal(t, k, d.Kind)
		assert.NotEmpty(t, d.ID)
		assert.NotEqual(t, "unknown", k.String())
	}
}

func TestCategory_Classification(t *testing.T) {
	for _, k := range []condition.Kind{condition.Poison, condition.Burn, condition.Bleed, condition.Stun, condition.Freeze, condition.Slow, condition.Weakened} {
		assert.True(t, k.IsDebuff(), "%s must be a debuff", k)
	}
	for _, k := range []condition.Kind{condition.Fortified, condition.BattleCry, condition.Regen} {
		assert.False(t, k.IsDebuff(), "%s must be a buff", k)
	}
}

func TestIsActionDenial(t *testing.T) {
	assert.True(t, condition.Stun.IsActionDenial())
	assert.True(t, condition.Freeze.IsActionDenial())
	assert.False(t, condition.Slow.IsActionDenial())
}

func TestParseKind(t *testing.T) {
	k, err := condition.ParseKind(" Battle_Cry ")
	require.NoError(t, err)
	assert.Equal(t, condition.BattleCry, k)

	_, err = condition.ParseKind("sleepy")
	assert.Error(t, err)
}

func TestKind_UnmarshalYAML(t *testing.T) {
	var doc struct {
		Effect condition.Kind `yaml:"effect"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("effect: poison\n"), &doc))
	assert.Equal(t, condition.Poison, doc.Effect)

	assert.Error(t, yaml.Unmarshal([]byte("effect: nope\n"), &doc))
}
