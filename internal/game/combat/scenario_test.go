package combat_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dungeon/internal/game/ability"
	"github.com/cory-johannsen/dungeon/internal/game/character"
	"github.com/cory-johannsen/dungeon/internal/game/combat"
	"github.com/cory-johannsen/dungeon/internal/game/condition"
	"github.com/cory-johannsen/dungeon/internal/game/dice"
	"github.com/cory-johannsen/dungeon/internal/game/difficulty"
	"github.com/cory-johannsen/dungeon/internal/game/inventory"
	"github.com/cory-johannsen/dungeon/internal/game/loot"
	"github.com/cory-johannsen/dungeon/internal/game/npc"
	"github.com/cory-johannsen/dungeon/internal/testutil"
)

func accessory(id string, p inventory.Passive) *inventory.ItemDef {
	return &inventory.ItemDef{ID: id, Name: id, Kind: inventory.KindAccessory, Tier: inventory.TierEpic, MaxStack: 1, Passive: p}
}

func lootPools(legendary ...*inventory.ItemDef) loot.Pools {
	return loot.Pools{Legendary: legendary}
}

func countContaining(events []combat.Event, substr string) int {
	n := 0
	for _, e := range events {
		if strings.Contains(e.Text, substr) {
			n++
		}
	}
	return n
}

func TestRunCombat_StunnedEnemySkipsExactlyOneTurn(t *testing.T) {
	// turn 1: shield bash (dodge, crit); enemy stunned
	// turn 2: attack (dodge, crit); enemy attacks (dodge, crit)
	// turn 3: flee
	src := testutil.NewScriptedSource().WithFloats(append(floats(0.99, 6), 0.1)...)
	in := testutil.NewScriptedInput(testutil.UseAbility(2), testutil.Attack(), testutil.Flee())
	h := newHarness(t, difficulty.Normal, src, in)

	p := newPlayer(t, character.Warrior, 2)
	e := newEnemy(t, npc.Stats{MaxHP: 200, Attack: 20})

	assert.Equal(t, combat.Fled, h.engine.RunCombat(p, e, nil))

	var hits []combat.Event
	for _, ev := range h.display.Events {
		if ev.Kind == combat.EventEnemyHit {
			hits = append(hits, ev)
		}
	}
	require.Len(t, hits, 1)
	assert.Equal(t, 2, hits[0].Turn)
	assert.True(t, h.display.Contains("Goblin is stunned and cannot act!"))
	assert.Equal(t, p.MaxHP-(20-p.Defense), p.HP)
}

func TestRunCombat_StunImmuneEnemyResistsBash(t *testing.T) {
	src := testutil.NewScriptedSource().WithFloats(0.99, 0.99, 0.99, 0.99, 0.1)
	in := testutil.NewScriptedInput(testutil.UseAbility(2), testutil.Flee())
	h := newHarness(t, difficulty.Normal, src, in)

	p := newPlayer(t, character.Warrior, 2)
	e := newEnemy(t, npc.Stats{MaxHP: 200, Attack: 20, StunImmune: true})

	assert.Equal(t, combat.Fled, h.engine.RunCombat(p, e, nil))
	assert.True(t, h.display.Contains("Goblin resists Stun"))
	assert.Less(t, p.HP, p.MaxHP)
}

func TestRunCombat_CooldownTicksEachPlayerTurn(t *testing.T) {
	// power strike, then a rejected recast and an attack, then the recast lands
	src := testutil.NewScriptedSource().WithFloats(append(floats(0.99, 12), 0.1)...)
	in := testutil.NewScriptedInput(
		testutil.UseAbility(1),
		testutil.UseAbility(1), testutil.Attack(),
		testutil.UseAbility(1),
		testutil.Flee(),
	)
	h := newHarness(t, difficulty.Normal, src, in)

	p := newPlayer(t, character.Warrior, 1)
	e := newEnemy(t, npc.Stats{MaxHP: 500, Attack: 1})

	assert.Equal(t, combat.Fled, h.engine.RunCombat(p, e, nil))
	rejected := h.display.Texts(combat.EventRejected)
	require.Len(t, rejected, 1)
	assert.Contains(t, rejected[0], "on cooldown for 1 more turns")
	assert.Equal(t, p.MaxMana-20, p.Mana)
	assert.Equal(t, 1, h.abilities.Cooldown(ability.PowerStrike))
}

func TestRunCombat_BossPhaseFiresOnce(t *testing.T) {
	in := testutil.NewScriptedInput().Then(testutil.Attack())
	h := newHarness(t, difficulty.Normal, testutil.NewScriptedSource(), in)

	p := newPlayer(t, character.Warrior, 1)
	e := newEnemy(t, npc.Stats{Name: "Ogre King", MaxHP: 40, Attack: 1, Boss: true})
	e.Phases = []npc.Phase{{
		Name:      "Fury",
		Threshold: 0.5,
		Actions:   []npc.PhaseAction{{Kind: npc.ActionEnrage, Amount: 50}},
	}}

	stats := &combat.RunStats{}
	assert.Equal(t, combat.Won, h.engine.RunCombat(p, e, stats))
	events := h.engine.Events()
	assert.Equal(t, 1, countContaining(events, "becomes enraged"))
	assert.Equal(t, 50, e.EnragePct)
	assert.True(t, e.PhaseFired(0))
	assert.Equal(t, 4, stats.TurnsTaken)
	assert.Equal(t, 1, stats.BossesDefeated)
}

func TestRunCombat_AddsShieldBossUntilDestroyed(t *testing.T) {
	in := testutil.NewScriptedInput().Then(testutil.Attack())
	h := newHarness(t, difficulty.Normal, testutil.NewScriptedSource(), in)

	p := newPlayer(t, character.Warrior, 1)
	e := newEnemy(t, npc.Stats{Name: "Lich", MaxHP: 40, Boss: true})
	e.Phases = []npc.Phase{{
		Name:      "Bone Wall",
		Threshold: 0.5,
		Message:   "The Lich raises its guard!",
		Actions:   []npc.PhaseAction{{Kind: npc.ActionSummonAdds, Amount: 2, Damage: 3}},
	}}

	stats := &combat.RunStats{}
	assert.Equal(t, combat.Won, h.engine.RunCombat(p, e, stats))
	events := h.engine.Events()
	assert.Equal(t, 1, countContaining(events, "The Lich raises its guard!"))
	assert.Equal(t, 2, countContaining(events, "destroys one of Lich's minions"))
	assert.Equal(t, 6, stats.TurnsTaken)
	// one point from each of five standard attacks, then 6 and 3 from the adds
	assert.Equal(t, p.MaxHP-5-9, p.HP)
	assert.Equal(t, 0, e.AddsAlive)
}

func TestRunCombat_AddsShieldBossFromBurnTicks(t *testing.T) {
	in := testutil.NewScriptedInput(testutil.UseAbility(1)).Then(testutil.Attack())
	h := newHarness(t, difficulty.Normal, testutil.NewScriptedSource(), in)

	p := newPlayer(t, character.Mage, 1)
	e := newEnemy(t, npc.Stats{Name: "Lich", MaxHP: 100, Attack: 1, Boss: true})
	e.Phases = []npc.Phase{{
		Name:      "Bone Guard",
		Threshold: 0.99,
		Actions:   []npc.PhaseAction{{Kind: npc.ActionSummonAdds, Amount: 2}},
	}}

	assert.Equal(t, combat.Won, h.engine.RunCombat(p, e, nil))
	events := h.engine.Events()
	// burn ticks on enemy turns 1 to 3; adds stand through the turn 2 tick
	assert.Equal(t, 2, countContaining(events, "Lich takes 4 burn damage."))
	assert.Equal(t, 1, countContaining(events, "Lich is unharmed by burn."))
	assert.Equal(t, 2, countContaining(events, "destroys one of Lich's minions"))
}

func TestRunCombat_AddsAbsorbThornmail(t *testing.T) {
	src := testutil.NewScriptedSource().WithFloats(0.99, 0.99, 0.99, 0.1)
	in := testutil.NewScriptedInput().Then(testutil.Flee())
	h := newHarness(t, difficulty.Normal, src, in)

	p := newPlayer(t, character.Warrior, 1)
	_, err := p.Equip(&inventory.ItemDef{ID: "thorns", Name: "Thorned Plate", Kind: inventory.KindArmor, MaxStack: 1, Passive: inventory.Thornmail})
	require.NoError(t, err)
	e := newEnemy(t, npc.Stats{Name: "Lich", MaxHP: 100, Attack: 28, Boss: true})
	e.SummonAdds(2, 0)

	assert.Equal(t, combat.Fled, h.engine.RunCombat(p, e, nil))
	assert.Less(t, p.HP, p.MaxHP)
	assert.Equal(t, 100, e.HP)
	assert.Equal(t, 2, e.AddsAlive)
	assert.Equal(t, 1, countContaining(h.engine.Events(), "minions absorb the thorns"))
}

func TestRunCombat_AegisSavesOncePerCombat(t *testing.T) {
	in := testutil.NewScriptedInput().Then(testutil.Attack())
	h := newHarness(t, difficulty.Normal, testutil.NewScriptedSource(), in)

	p := newPlayer(t, character.Warrior, 1)
	_, err := p.Equip(accessory("aegis", inventory.Aegis))
	require.NoError(t, err)
	e := newEnemy(t, npc.Stats{MaxHP: 500, Attack: 1000})

	assert.Equal(t, combat.PlayerDied, h.engine.RunCombat(p, e, nil))
	assert.Equal(t, 1, countContaining(h.engine.Events(), "Aegis flares"))
	assert.Equal(t, 0, p.HP)
	assert.True(t, p.Combat.AegisUsed)
}

func TestRunCombat_PhoenixSavesOncePerRun(t *testing.T) {
	in := testutil.NewScriptedInput().Then(testutil.Attack())
	h := newHarness(t, difficulty.Normal, testutil.NewScriptedSource(), in)

	p := newPlayer(t, character.Warrior, 1)
	_, err := p.Equip(accessory("phoenix", inventory.Phoenix))
	require.NoError(t, err)

	for i, want := range []int{1, 0} {
		p.HP = p.MaxHP
		e := newEnemy(t, npc.Stats{MaxHP: 500, Attack: 1000})
		assert.Equal(t, combat.PlayerDied, h.engine.RunCombat(p, e, nil))
		assert.Equal(t, want, countContaining(h.engine.Events(), "rise from the ashes"), "combat %d", i)
	}
	assert.True(t, p.Run.PhoenixUsed)
}

func TestRunCombat_ShadowmeldMakesNextAttackMiss(t *testing.T) {
	src := testutil.NewScriptedSource().WithFloats(0.1)
	in := testutil.NewScriptedInput(testutil.UseAbility(3), testutil.Flee())
	h := newHarness(t, difficulty.Normal, src, in)

	p := newPlayer(t, character.Rogue, 3)
	e := newEnemy(t, npc.Stats{MaxHP: 100, Attack: 50})

	assert.Equal(t, combat.Fled, h.engine.RunCombat(p, e, nil))
	assert.Equal(t, p.MaxHP, p.HP)
	assert.True(t, h.display.Contains("strikes at shadows"))
	assert.False(t, p.Combat.ShadowmeldActive)
	assert.Equal(t, 1, src.FloatCalls)
}

func TestRunCombat_ManaShieldAbsorbsFromMana(t *testing.T) {
	src := testutil.NewScriptedSource().WithFloats(0.99, 0.99, 0.1)
	in := testutil.NewScriptedInput(testutil.UseAbility(3), testutil.Flee())
	h := newHarness(t, difficulty.Normal, src, in)

	p := newPlayer(t, character.Mage, 3)
	e := newEnemy(t, npc.Stats{MaxHP: 100, Attack: 30})

	assert.Equal(t, combat.Fled, h.engine.RunCombat(p, e, nil))
	dmg := 30 - p.Defense
	assert.Equal(t, p.MaxHP, p.HP)
	assert.Equal(t, p.MaxMana-10-dmg, p.Mana)
	assert.False(t, p.Combat.ManaShieldActive)
	assert.True(t, p.Combat.ManaShieldUsed)
}

func TestRunCombat_RaiseDeadWithoutCorpseRefundsAndReasks(t *testing.T) {
	src := testutil.NewScriptedSource().WithFloats(0.1)
	in := testutil.NewScriptedInput(testutil.UseAbility(3), testutil.Flee())
	h := newHarness(t, difficulty.Normal, src, in)

	p := newPlayer(t, character.Necromancer, 3)
	e := newEnemy(t, npc.Stats{MaxHP: 100, Attack: 30})

	assert.Equal(t, combat.Fled, h.engine.RunCombat(p, e, nil))
	assert.Equal(t, p.MaxMana, p.Mana)
	assert.Equal(t, 0, h.abilities.Cooldown(ability.RaiseDead))
	assert.Equal(t, 2, in.Asked)
	assert.Len(t, h.display.Texts(combat.EventRejected), 1)
}

func TestRunCombat_SkeletonMinionAttacks(t *testing.T) {
	in := testutil.NewScriptedInput(testutil.UseAbility(3)).Then(testutil.Attack())
	h := newHarness(t, difficulty.Normal, testutil.NewScriptedSource(), in)

	p := newPlayer(t, character.Necromancer, 3)
	p.Corpses = 1
	e := newEnemy(t, npc.Stats{MaxHP: 60, Attack: 1})

	assert.Equal(t, combat.Won, h.engine.RunCombat(p, e, nil))
	events := h.engine.Events()
	assert.Equal(t, 3, countContaining(events, "Your Skeleton hits Goblin"))
	assert.Equal(t, 1, countContaining(events, "crumbles to dust"))
	assert.Equal(t, 1, p.Corpses, "the raised corpse is spent and the goblin adds one")
}

func TestRunCombat_ItemHealsAndIsConsumed(t *testing.T) {
	src := testutil.NewScriptedSource().WithFloats(0.99, 0.99, 0.1)
	in := testutil.NewScriptedInput(testutil.UseItem(1), testutil.Flee())
	h := newHarness(t, difficulty.Casual, src, in)

	p := newPlayer(t, character.Warrior, 1)
	p.HP = 50
	potion := &inventory.ItemDef{ID: "potion", Name: "Health Potion", Kind: inventory.KindConsumable, Stackable: true, MaxStack: 10, HealAmount: 30}
	_, err := p.Backpack.Add(potion, 1)
	require.NoError(t, err)
	e := newEnemy(t, npc.Stats{MaxHP: 100})

	assert.Equal(t, combat.Fled, h.engine.RunCombat(p, e, nil))
	// 30 * 1.5 healing, then one point from the enemy's floor damage
	assert.Equal(t, 50+45-1, p.HP)
	assert.Empty(t, p.Backpack.Items())
}

func TestRunCombat_NoItemsReasks(t *testing.T) {
	src := testutil.NewScriptedSource().WithFloats(0.1)
	in := testutil.NewScriptedInput(testutil.UseItem(0), testutil.Flee())
	h := newHarness(t, difficulty.Normal, src, in)

	p := newPlayer(t, character.Warrior, 1)
	e := newEnemy(t, npc.Stats{MaxHP: 100})
	assert.Equal(t, combat.Fled, h.engine.RunCombat(p, e, nil))
	assert.Equal(t, []string{"You have no usable items."}, h.display.Texts(combat.EventRejected))
}

func TestRunCombat_VictoryRewards(t *testing.T) {
	in := testutil.NewScriptedInput().Then(testutil.Attack())
	h := newHarness(t, difficulty.Casual, testutil.NewScriptedSource(), in)

	p := newPlayer(t, character.Warrior, 1)
	e := newEnemy(t, npc.Stats{MaxHP: 1, XP: 90, Gold: npc.GoldRange{Min: 10, Max: 10}})

	stats := &combat.RunStats{}
	assert.Equal(t, combat.Won, h.engine.RunCombat(p, e, stats))
	// 90 * 1.2 XP crosses the first level threshold
	assert.Equal(t, 2, p.Level)
	assert.Equal(t, 8, p.XP)
	assert.Equal(t, 18, p.Gold)
	assert.Equal(t, 1, p.Corpses)
	assert.Equal(t, combat.RunStats{
		EnemiesDefeated: 1,
		GoldCollected:   18,
		XPEarned:        108,
		TurnsTaken:      1,
		DamageDealt:     1,
	}, *stats)
	assert.True(t, h.display.Contains("You reached level 2!"))
}

func TestRunCombat_BossRoomDropsLegendary(t *testing.T) {
	settings := difficulty.MustFor(difficulty.Normal)
	legendary := &inventory.ItemDef{ID: "crown", Name: "Crown of Ash", Kind: inventory.KindAccessory, Tier: inventory.TierLegendary, MaxStack: 1}
	eng, err := combat.NewEngine(combat.Deps{
		Settings:  &settings,
		Source:    testutil.NewScriptedSource(),
		Abilities: ability.NewManager(ability.DefaultCatalog(), nil),
		Input:     testutil.NewScriptedInput().Then(testutil.Attack()),
		Pools:     lootPools(legendary),
		Floor:     3,
	})
	require.NoError(t, err)

	p := newPlayer(t, character.Paladin, 1)
	e := newEnemy(t, npc.Stats{Name: "Dragon", MaxHP: 1, Boss: true})
	stats := &combat.RunStats{}
	assert.Equal(t, combat.Won, eng.RunCombat(p, e, stats))

	found := p.Backpack.FindByItemDefID("crown")
	require.Len(t, found, 1)
	assert.NotEmpty(t, found[0].InstanceID)
	assert.Equal(t, 1, stats.ItemsFound)
}

func TestRunCombat_OnCombatStartAfflictionAndPoisonTick(t *testing.T) {
	src := testutil.NewScriptedSource().WithFloats(0.1)
	in := testutil.NewScriptedInput(testutil.Flee())
	h := newHarness(t, difficulty.Normal, src, in)

	p := newPlayer(t, character.Warrior, 1)
	e := newEnemy(t, npc.Stats{Name: "Plague Rat", MaxHP: 20})
	e.Behavior.OnCombatStart = []npc.Affliction{{Effect: condition.Poison, Turns: 2}}

	assert.Equal(t, combat.Fled, h.engine.RunCombat(p, e, nil))
	assert.Equal(t, p.MaxHP-3, p.HP)
	assert.Equal(t, 1, p.Status.Turns(condition.Poison))
}

func TestRunCombat_CombatStartResetsState(t *testing.T) {
	src := testutil.NewScriptedSource().WithFloats(0.1)
	h := newHarness(t, difficulty.Normal, src, testutil.NewScriptedInput(testutil.Flee()))

	p := newPlayer(t, character.Rogue, 1)
	p.ComboPoints = 4
	p.Combat.ShadowmeldUsed = true
	p.Status.Apply(condition.Stun, 5)
	p.Run.PhoenixUsed = true

	assert.Equal(t, combat.Fled, h.engine.RunCombat(p, newEnemy(t, npc.Stats{MaxHP: 20}), nil))
	assert.Zero(t, p.ComboPoints)
	assert.False(t, p.Combat.ShadowmeldUsed)
	assert.Zero(t, p.Status.Len())
	assert.True(t, p.Run.PhoenixUsed)
}

func TestRunCombat_EliteAbilityReplacesAttack(t *testing.T) {
	// player attack (dodge, crit); elite roll hits; ability attack (dodge, crit); then flee
	src := testutil.NewScriptedSource().WithFloats(0.99, 0.99, 0.99, 0.99, 0.1).WithInts(3, 0)
	in := testutil.NewScriptedInput(testutil.Attack(), testutil.Flee())
	h := newHarness(t, difficulty.Normal, src, in)

	p := newPlayer(t, character.Warrior, 1)
	e := newEnemy(t, npc.Stats{Name: "Orc Warlord", MaxHP: 100, Attack: 20})
	e.IsElite = true
	e.Elite = npc.EliteTable{Chance: 15, Abilities: []npc.EliteAbility{{
		Name:             "Cleave",
		DamageMultiplier: 1.5,
		Afflict:          &npc.Affliction{Effect: condition.Bleed, Turns: 2},
	}}}

	assert.Equal(t, combat.Fled, h.engine.RunCombat(p, e, nil))
	assert.True(t, h.display.Contains("Orc Warlord uses Cleave!"))
	// bleed ticks once at the start of turn 2
	assert.Equal(t, p.MaxHP-(30-p.Defense)-5, p.HP)
	assert.Equal(t, 2, src.IntCalls)
}

func TestRunCombat_LifestealAndThornmail(t *testing.T) {
	src := testutil.NewScriptedSource().WithFloats(0.99, 0.99, 0.99, 0.99, 0.1)
	in := testutil.NewScriptedInput(testutil.Attack(), testutil.Flee())
	h := newHarness(t, difficulty.Normal, src, in)

	p := newPlayer(t, character.Warrior, 1)
	_, err := p.Equip(&inventory.ItemDef{ID: "thorns", Name: "Thorned Plate", Kind: inventory.KindArmor, MaxStack: 1, Passive: inventory.Thornmail})
	require.NoError(t, err)
	e := newEnemy(t, npc.Stats{Name: "Vampire", MaxHP: 100, Attack: 28})
	e.Behavior.LifestealPct = 50

	assert.Equal(t, combat.Fled, h.engine.RunCombat(p, e, nil))
	// player deals 12, enemy deals 20, thorns reflect 5, lifesteal heals 10
	assert.Equal(t, p.MaxHP-20, p.HP)
	assert.Equal(t, 100-12-5+10, e.HP)
}

func TestRunCombat_RegenEnemyLosesNetHP(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Int64().Draw(rt, "seed")
		class := rapid.SampledFrom(character.Classes()).Draw(rt, "class")
		in := testutil.NewScriptedInput().Then(testutil.Attack())
		h := newHarness(t, difficulty.Normal, dice.NewSeededSource(seed), in)

		p := newPlayer(t, class, 3)
		e := newEnemy(t, npc.Stats{Name: "Troll", MaxHP: 60, Attack: 6, Defense: 2})
		e.Behavior.RegenPerTurn = 4

		stats := &combat.RunStats{}
		r := h.engine.RunCombat(p, e, stats)
		assert.Equal(rt, combat.Won, r)
		assert.LessOrEqual(rt, stats.TurnsTaken, 40)
	})
}

func TestDamage_NeverBelowOne(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		attack := rapid.IntRange(0, 1000).Draw(rt, "attack")
		mult := rapid.Float64Range(0, 5).Draw(rt, "mult")
		scale := rapid.Float64Range(0, 2).Draw(rt, "scale")
		defense := rapid.IntRange(-10, 100000).Draw(rt, "defense")
		assert.GreaterOrEqual(rt, combat.Damage(attack, mult, scale, defense), 1)
	})
}

func TestDamage_CasualScenario(t *testing.T) {
	assert.Equal(t, 12, combat.Damage(10, 1, 1.2, 0))
	assert.Equal(t, 1, combat.Damage(10, 1, 1.2, 50))
}

func TestDodgeChance(t *testing.T) {
	r := combat.DefaultRules()
	assert.InDelta(t, 0.05, combat.DodgeChance(5, nil, r), 1e-9)
	assert.Equal(t, 0.40, combat.DodgeChance(90, nil, r))
	assert.Equal(t, 0.0, combat.DodgeChance(-3, nil, r))
	override := 0.25
	assert.Equal(t, 0.25, combat.DodgeChance(90, &override, r))
}
