package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dungeon/internal/config"
	"github.com/cory-johannsen/dungeon/internal/game/ability"
	"github.com/cory-johannsen/dungeon/internal/game/combat"
	"github.com/cory-johannsen/dungeon/internal/game/inventory"
	"github.com/cory-johannsen/dungeon/internal/game/npc"
	"github.com/cory-johannsen/dungeon/internal/game/session"
	"github.com/cory-johannsen/dungeon/internal/testutil"
)

func testContent(t testing.TB) *session.Content {
	t.Helper()
	templates := []*npc.Template{
		{ID: "dummy", Stats: npc.Stats{Name: "Training Dummy", Level: 1, MaxHP: 1, XP: 10}},
		{ID: "ogre", Stats: npc.Stats{Name: "Ogre", Level: 9, MaxHP: 5000, Attack: 1000, XP: 10}},
	}
	items := []*inventory.ItemDef{
		{ID: "health_potion", Name: "Health Potion", Kind: inventory.KindConsumable, Stackable: true, MaxStack: 10, HealAmount: 30},
		{ID: "iron_sword", Name: "Iron Sword", Kind: inventory.KindWeapon, MaxStack: 1, AttackBonus: 3},
		{ID: "mace", Name: "Mace", Kind: inventory.KindWeapon, Tier: inventory.TierUncommon, MaxStack: 1, AttackBonus: 5},
		{ID: "mana_potion", Name: "Mana Potion", Kind: inventory.KindConsumable, Stackable: true, MaxStack: 10, ManaAmount: 30},
	}
	c, err := session.NewContent(templates, items)
	require.NoError(t, err)
	return c
}

func gameConfig(diff string, items ...string) config.GameConfig {
	return config.GameConfig{
		Difficulty: diff,
		Floor:      1,
		Player:     config.PlayerConfig{Name: "Ayla", Class: "warrior", Level: 1, Items: items},
	}
}

func newRun(t testing.TB, diff string, items ...string) *session.Run {
	t.Helper()
	r, err := session.NewRun(testContent(t), session.Options{
		Game:   gameConfig(diff, items...),
		Source: testutil.FixedSource{Float: 0.99},
		Input:  testutil.NewScriptedInput().Then(testutil.Attack()),
	})
	require.NoError(t, err)
	return r
}

func TestNewContent_DuplicateEnemy(t *testing.T) {
	tmpl := &npc.Template{ID: "dummy", Stats: npc.Stats{Name: "Dummy", Level: 1, MaxHP: 1}}
	_, err := session.NewContent([]*npc.Template{tmpl, tmpl}, nil)
	assert.Error(t, err)
}

func TestLoadContent_ShippedData(t *testing.T) {
	c, err := session.LoadContent(config.ContentConfig{
		EnemiesDir: "../../../content/enemies",
		ItemsDir:   "../../../content/items",
	})
	require.NoError(t, err)

	assert.Contains(t, c.EnemyIDs(), "lich_king")
	lich, err := c.Enemy("lich_king")
	require.NoError(t, err)
	assert.True(t, lich.Boss)
	assert.Len(t, lich.Phases, 2)

	_, err = c.Item(session.StartingPotionID)
	assert.NoError(t, err)
	assert.NotEmpty(t, c.Pools().Legendary)
	for _, d := range c.Pools().Common {
		assert.True(t, d.Equippable(), "%s is not equippable", d.ID)
	}
}

func TestLoadContent_MissingDir(t *testing.T) {
	_, err := session.LoadContent(config.ContentConfig{EnemiesDir: t.TempDir() + "/nope", ItemsDir: t.TempDir()})
	assert.Error(t, err)
}

func TestNewRun_StartingKit(t *testing.T) {
	r := newRun(t, "casual", "iron_sword", "mana_potion")
	p := r.Player

	assert.Equal(t, r.Settings().StartingGold, p.Gold)
	potions := p.Backpack.FindByItemDefID(session.StartingPotionID)
	require.Len(t, potions, 1)
	assert.Equal(t, r.Settings().StartingPotions, potions[0].Quantity)
	assert.Len(t, p.Backpack.FindByItemDefID("mana_potion"), 1)

	sword := p.Equipment.Equipped(inventory.SlotWeapon)
	require.NotNil(t, sword)
	assert.Equal(t, "iron_sword", sword.ID)
}

func TestNewRun_ReplacedWeaponIsPacked(t *testing.T) {
	r := newRun(t, "normal", "iron_sword", "mace")
	assert.Equal(t, "mace", r.Player.Equipment.Equipped(inventory.SlotWeapon).ID)
	assert.Len(t, r.Player.Backpack.FindByItemDefID("iron_sword"), 1)
}

func TestNewRun_UnknownItem(t *testing.T) {
	_, err := session.NewRun(testContent(t), session.Options{
		Game:  gameConfig("normal", "excalibur"),
		Input: testutil.NewScriptedInput(),
	})
	assert.ErrorIs(t, err, session.ErrUnknownItem)
}

func TestNewRun_RequiresInput(t *testing.T) {
	_, err := session.NewRun(testContent(t), session.Options{Game: gameConfig("normal")})
	assert.ErrorIs(t, err, combat.ErrMissingDependency)
}

func TestNewRun_BadDifficulty(t *testing.T) {
	_, err := session.NewRun(testContent(t), session.Options{
		Game:  gameConfig("nightmare"),
		Input: testutil.NewScriptedInput(),
	})
	assert.Error(t, err)
}

func TestFight_UnknownEnemy(t *testing.T) {
	r := newRun(t, "normal")
	_, _, err := r.Fight("dragon")
	assert.ErrorIs(t, err, session.ErrUnknownEnemy)
}

func TestFight_WinAccumulatesStats(t *testing.T) {
	r := newRun(t, "normal")

	res, enemy, err := r.Fight("dummy")
	require.NoError(t, err)
	assert.Equal(t, combat.Won, res)
	assert.Equal(t, 0, enemy.HP)

	res, _, err = r.Fight("dummy")
	require.NoError(t, err)
	assert.Equal(t, combat.Won, res)

	assert.Equal(t, 2, r.Stats.EnemiesDefeated)
	assert.Equal(t, 2, r.Stats.TurnsTaken)
	assert.Equal(t, 2, r.Player.Corpses)
	assert.NotEmpty(t, r.Events())
}

func TestFight_PermadeathEndsRun(t *testing.T) {
	r := newRun(t, "hard")

	res, _, err := r.Fight("ogre")
	require.NoError(t, err)
	assert.Equal(t, combat.PlayerDied, res)
	assert.True(t, r.Over())
	assert.Equal(t, 1, r.Deaths())

	_, _, err = r.Fight("dummy")
	assert.ErrorIs(t, err, session.ErrRunOver)
}

func TestFight_DeathWithoutPermadeathRevives(t *testing.T) {
	r := newRun(t, "normal")
	gold := r.Player.Gold

	res, _, err := r.Fight("ogre")
	require.NoError(t, err)
	assert.Equal(t, combat.PlayerDied, res)
	assert.False(t, r.Over())
	assert.Equal(t, r.Player.MaxHP, r.Player.HP)
	assert.Equal(t, gold-gold/2, r.Player.Gold)

	res, _, err = r.Fight("dummy")
	require.NoError(t, err)
	assert.Equal(t, combat.Won, res)
}

func TestDescend_ClearsCooldowns(t *testing.T) {
	r := newRun(t, "normal")
	r.Abilities().PutOnCooldown(ability.PowerStrike, 3)

	assert.Equal(t, 2, r.Descend())
	assert.Equal(t, 2, r.Floor())
	assert.Equal(t, 0, r.Abilities().Cooldown(ability.PowerStrike))
}

func TestSourceFor_SeededIsReplayable(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.Int64Range(1, 1<<40).Draw(t, "seed")
		a, b := session.SourceFor(seed), session.SourceFor(seed)
		for i := 0; i < 20; i++ {
			if a.Intn(1000) != b.Intn(1000) || a.Float64() != b.Float64() {
				t.Fatalf("seed %d diverged at draw %d", seed, i)
			}
		}
	})
}

type displayFunc func(combat.Event)

func (f displayFunc) Show(e combat.Event) { f(e) }

func TestFight_CurrentEnemyDuringCombat(t *testing.T) {
	var r *session.Run
	var seen []string
	display := displayFunc(func(combat.Event) {
		if en := r.Current(); en != nil {
			seen = append(seen, en.Name)
		}
	})
	r, err := session.NewRun(testContent(t), session.Options{
		Game:    gameConfig("normal"),
		Source:  testutil.FixedSource{Float: 0.99},
		Input:   testutil.NewScriptedInput().Then(testutil.Attack()),
		Display: display,
	})
	require.NoError(t, err)

	_, _, err = r.Fight("dummy")
	require.NoError(t, err)
	assert.NotEmpty(t, seen)
	assert.Equal(t, "Training Dummy", seen[0])
	assert.Nil(t, r.Current())
}
