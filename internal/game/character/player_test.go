package character_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dungeon/internal/game/character"
	"github.com/cory-johannsen/dungeon/internal/game/condition"
	"github.com/cory-johannsen/dungeon/internal/game/inventory"
)

func newWarrior(t *testing.T) *character.Player {
	t.Helper()
	p, err := character.NewPlayer("Hero", character.Warrior, 1)
	require.NoError(t, err)
	return p
}

func TestNewPlayer_UsesClassStats(t *testing.T) {
	p, err := character.NewPlayer("Zed", character.Mage, 1)
	require.NoError(t, err)
	base, _ := character.Mage.Stats()
	assert.Equal(t, base.MaxHP, p.HP)
	assert.Equal(t, base.MaxMana, p.Mana)
	assert.Equal(t, 1, p.Level)
}

func TestNewPlayer_HigherLevelAppliesGrowth(t *testing.T) {
	p, err := character.NewPlayer("Zed", character.Warrior, 3)
	require.NoError(t, err)
	assert.Equal(t, 140, p.MaxHP)
	assert.Equal(t, 16, p.Attack)
	assert.Equal(t, p.MaxHP, p.HP)
}

func TestNewPlayer_Rejects(t *testing.T) {
	_, err := character.NewPlayer("", character.Warrior, 1)
	assert.Error(t, err)
	_, err = character.NewPlayer("A", character.Class("bard"), 1)
	assert.Error(t, err)
	_, err = character.NewPlayer("A", character.Rogue, 0)
	assert.Error(t, err)
}

func TestParseClass(t *testing.T) {
	c, err := character.ParseClass("  Necromancer ")
	require.NoError(t, err)
	assert.Equal(t, character.Necromancer, c)
	assert.Equal(t, "Necromancer", c.Title())
	_, err = character.ParseClass("druid")
	assert.Error(t, err)
}

func TestPlayer_AddXP_LevelsUpAndCarriesOver(t *testing.T) {
	p := newWarrior(t)
	gained := p.AddXP(250)
	// 100 for level 2, 200 more would be needed for level 3
	assert.Equal(t, 1, gained)
	assert.Equal(t, 2, p.Level)
	assert.Equal(t, 150, p.XP)
	assert.Equal(t, 50, p.XPToNext())
}

func TestPlayer_AttackPower_IncludesEquipmentAndEffects(t *testing.T) {
	p := newWarrior(t)
	_, err := p.Equip(&inventory.ItemDef{ID: "axe", Name: "Axe", Kind: inventory.KindWeapon, MaxStack: 1, AttackBonus: 8})
	require.NoError(t, err)
	assert.Equal(t, 20, p.AttackPower())
	p.Status.Apply(condition.BattleCry, 2)
	assert.Equal(t, 25, p.AttackPower())
}

func TestPlayer_PackMuleRaisesCarryCapacity(t *testing.T) {
	p := newWarrior(t)
	before := p.Backpack.MaxWeight
	_, err := p.Equip(&inventory.ItemDef{ID: "pack", Name: "Pack", Kind: inventory.KindAccessory, MaxStack: 1, Passive: inventory.PackMule})
	require.NoError(t, err)
	assert.Greater(t, p.Backpack.MaxWeight, before)
	assert.Equal(t, p.CarryCapacity(), p.Backpack.MaxWeight)
}

func TestPlayer_SpendMana(t *testing.T) {
	p := newWarrior(t)
	p.Mana = 5
	assert.False(t, p.SpendMana(10))
	assert.Equal(t, 5, p.Mana)
	assert.True(t, p.SpendMana(5))
	assert.Equal(t, 0, p.Mana)
}

func TestPropertyPlayer_HPStaysInRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p, _ := character.NewPlayer("Hero", character.Paladin, 1)
		ops := rapid.IntRange(1, 40).Draw(t, "ops")
		for i := 0; i < ops; i++ {
			amount := rapid.IntRange(-10, 300).Draw(t, "amount")
			if rapid.Bool().Draw(t, "damage") {
				p.TakeDamage(amount)
			} else {
				p.Heal(amount)
			}
			if p.HP < 0 || p.HP > p.MaxHP {
				t.Fatalf("HP %d out of [0,%d]", p.HP, p.MaxHP)
			}
		}
	})
}

func TestPropertyPlayer_ComboNeverExceedsCap(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p, _ := character.NewPlayer("Hero", character.Rogue, 1)
		grants := rapid.SliceOfN(rapid.IntRange(0, 3), 1, 30).Draw(t, "grants")
		for _, g := range grants {
			p.AddCombo(g)
			if p.ComboPoints > character.MaxComboPoints {
				t.Fatalf("combo %d exceeds cap", p.ComboPoints)
			}
		}
		n := p.ConsumeCombo()
		if n > character.MaxComboPoints || p.ComboPoints != 0 {
			t.Fatalf("consume returned %d, left %d", n, p.ComboPoints)
		}
	})
}
