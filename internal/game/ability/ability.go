// Package ability holds the class ability catalog and the per-player cast pipeline.
package ability

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cory-johannsen/dungeon/internal/game/character"
)

// ErrUnknownAbility is returned when a Type is not in the catalog.
var ErrUnknownAbility = errors.New("ability: unknown ability")

// Type identifies an ability.
type Type int

const (
	PowerStrike Type = iota + 1
	ShieldBash
	BattleCry
	Fortify
	Execute

	Fireball
	FrostNova
	ManaShield
	ArcaneBolt
	Meteor

	Backstab
	PoisonBlade
	Shadowmeld
	Eviscerate
	Assassinate

	HolyStrike
	LayOnHands
	DivineShield
	Cleanse
	Consecrate

	LifeDrain
	Curse
	RaiseDead
	BoneSpear
	DeathCoil

	AimedShot
	Ensnare
	PoisonArrow
	HuntersFocus
	Barrage
)

// Ability is the static definition of a class ability. Cooldown state lives
// in Manager, not here.
type Ability struct {
	Type        Type
	Name        string
	Class       character.Class
	ManaCost    int
	Cooldown    int
	UnlockLevel int
	Description string

	effect effectFunc
}

func (t Type) String() string {
	if a, ok := defaultTable[t]; ok {
		return a.Name
	}
	return fmt.Sprintf("ability(%d)", int(t))
}

// Catalog is the immutable set of abilities available to each class.
type Catalog struct {
	byType  map[Type]*Ability
	byClass map[character.Class][]*Ability
}

// NewCatalog indexes abilities by type and by class, each class list ordered
// by unlock level.
func NewCatalog(abilities []*Ability) *Catalog {
	c := &Catalog{
		byType:  make(map[Type]*Ability, len(abilities)),
		byClass: make(map[character.Class][]*Ability),
	}
	for _, a := range abilities {
		c.byType[a.Type] = a
		c.byClass[a.Class] = append(c.byClass[a.Class], a)
	}
	for _, list := range c.byClass {
		sort.SliceStable(list, func(i, j int) bool { return list[i].UnlockLevel < list[j].UnlockLevel })
	}
	return c
}

// DefaultCatalog returns the built-in ability table for all six classes.
func DefaultCatalog() *Catalog {
	abilities := make([]*Ability, 0, len(defaultTable))
	for t := PowerStrike; t <= Barrage; t++ {
		a := defaultTable[t]
		abilities = append(abilities, &a)
	}
	return NewCatalog(abilities)
}

// Lookup returns the ability for t.
//
// Postcondition: err wraps ErrUnknownAbility when t is not in the catalog.
func (c *Catalog) Lookup(t Type) (*Ability, error) {
	a, ok := c.byType[t]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAbility, int(t))
	}
	return a, nil
}

// ForClass returns every ability of class ordered by unlock level.
func (c *Catalog) ForClass(class character.Class) []*Ability {
	out := make([]*Ability, len(c.byClass[class]))
	copy(out, c.byClass[class])
	return out
}

var defaultTable = map[Type]Ability{
	PowerStrike: {Type: PowerStrike, Name: "Power Strike", Class: character.Warrior, ManaCost: 10, Cooldown: 2, UnlockLevel: 1,
		Description: "A crushing blow for double damage.", effect: strikeEffect(2.0, strikeOpts{})},
	ShieldBash: {Type: ShieldBash, Name: "Shield Bash", Class: character.Warrior, ManaCost: 8, Cooldown: 3, UnlockLevel: 2,
		Description: "Bash the enemy, stunning it for 1 turn.", effect: afflictingStrike(1.0, strikeOpts{}, enemyEffect(stun, 1))},
	BattleCry: {Type: BattleCry, Name: "Battle Cry", Class: character.Warrior, ManaCost: 12, Cooldown: 4, UnlockLevel: 3,
		Description: "+25% attack for 3 turns.", effect: selfBuff(buff(battleCry, 3))},
	Fortify: {Type: Fortify, Name: "Fortify", Class: character.Warrior, ManaCost: 10, Cooldown: 4, UnlockLevel: 5,
		Description: "+50% defense for 3 turns.", effect: selfBuff(buff(fortified, 3))},
	Execute: {Type: Execute, Name: "Execute", Class: character.Warrior, ManaCost: 20, Cooldown: 5, UnlockLevel: 7,
		Description: "Slay an enemy below 30% HP outright. Bosses take double damage instead.", effect: executeEffect(0.30, 2.0)},

	Fireball: {Type: Fireball, Name: "Fireball", Class: character.Mage, ManaCost: 15, Cooldown: 2, UnlockLevel: 1,
		Description: "Double damage and burns for 3 turns.", effect: afflictingStrike(2.0, strikeOpts{}, enemyEffect(burn, 3))},
	FrostNova: {Type: FrostNova, Name: "Frost Nova", Class: character.Mage, ManaCost: 12, Cooldown: 3, UnlockLevel: 2,
		Description: "Damage and freeze the enemy for 1 turn.", effect: afflictingStrike(1.0, strikeOpts{}, enemyEffect(freeze, 1))},
	ManaShield: {Type: ManaShield, Name: "Mana Shield", Class: character.Mage, ManaCost: 10, Cooldown: 5, UnlockLevel: 3,
		Description: "The next enemy hit drains mana instead of HP. Once per combat.", effect: manaShieldEffect},
	ArcaneBolt: {Type: ArcaneBolt, Name: "Arcane Bolt", Class: character.Mage, ManaCost: 8, Cooldown: 1, UnlockLevel: 5,
		Description: "1.5x damage that ignores defense.", effect: strikeEffect(1.5, strikeOpts{ignoreDefense: true})},
	Meteor: {Type: Meteor, Name: "Meteor", Class: character.Mage, ManaCost: 35, Cooldown: 5, UnlockLevel: 7,
		Description: "Triple damage.", effect: strikeEffect(3.0, strikeOpts{})},

	Backstab: {Type: Backstab, Name: "Backstab", Class: character.Rogue, ManaCost: 8, Cooldown: 1, UnlockLevel: 1,
		Description: "1.5x damage, +1 combo point.", effect: comboStrike(1.5, nil)},
	PoisonBlade: {Type: PoisonBlade, Name: "Poison Blade", Class: character.Rogue, ManaCost: 10, Cooldown: 3, UnlockLevel: 2,
		Description: "Damage and poison for 4 turns, +1 combo point.", effect: comboStrike(1.0, enemyEffect(poison, 4))},
	Shadowmeld: {Type: Shadowmeld, Name: "Shadowmeld", Class: character.Rogue, ManaCost: 12, Cooldown: 4, UnlockLevel: 3,
		Description: "The next enemy attack misses. Once per combat.", effect: shadowmeldEffect},
	Eviscerate: {Type: Eviscerate, Name: "Eviscerate", Class: character.Rogue, ManaCost: 15, Cooldown: 3, UnlockLevel: 5,
		Description: "Spend all combo points: +50% damage per point.", effect: eviscerateEffect},
	Assassinate: {Type: Assassinate, Name: "Assassinate", Class: character.Rogue, ManaCost: 25, Cooldown: 6, UnlockLevel: 7,
		Description: "Slay an enemy below 25% HP outright. Bosses take double damage instead.", effect: executeEffect(0.25, 2.0)},

	HolyStrike: {Type: HolyStrike, Name: "Holy Strike", Class: character.Paladin, ManaCost: 10, Cooldown: 2, UnlockLevel: 1,
		Description: "1.5x damage, double against undead.", effect: holyEffect(1.5, 2.0, nil)},
	LayOnHands: {Type: LayOnHands, Name: "Lay on Hands", Class: character.Paladin, ManaCost: 15, Cooldown: 5, UnlockLevel: 2,
		Description: "Heal 30% of max HP.", effect: layOnHandsEffect},
	DivineShield: {Type: DivineShield, Name: "Divine Shield", Class: character.Paladin, ManaCost: 20, Cooldown: 6, UnlockLevel: 3,
		Description: "Fortified and regenerating for 2 turns.", effect: selfBuff(buff(fortified, 2), buff(regen, 2))},
	Cleanse: {Type: Cleanse, Name: "Cleanse", Class: character.Paladin, ManaCost: 10, Cooldown: 3, UnlockLevel: 5,
		Description: "Remove every debuff from yourself.", effect: cleanseEffect},
	Consecrate: {Type: Consecrate, Name: "Consecrate", Class: character.Paladin, ManaCost: 25, Cooldown: 4, UnlockLevel: 7,
		Description: "Double damage (triple against undead) and burns for 2 turns.", effect: holyEffect(2.0, 3.0, enemyEffect(burn, 2))},

	LifeDrain: {Type: LifeDrain, Name: "Life Drain", Class: character.Necromancer, ManaCost: 10, Cooldown: 2, UnlockLevel: 1,
		Description: "Damage and heal for half of it.", effect: drainEffect(1.0, 0.5)},
	Curse: {Type: Curse, Name: "Curse", Class: character.Necromancer, ManaCost: 8, Cooldown: 3, UnlockLevel: 2,
		Description: "Weaken the enemy for 3 turns.", effect: curseEffect},
	RaiseDead: {Type: RaiseDead, Name: "Raise Dead", Class: character.Necromancer, ManaCost: 20, Cooldown: 5, UnlockLevel: 3,
		Description: "Raise a skeleton from a corpse to fight for 3 turns.", effect: raiseDeadEffect},
	BoneSpear: {Type: BoneSpear, Name: "Bone Spear", Class: character.Necromancer, ManaCost: 15, Cooldown: 2, UnlockLevel: 5,
		Description: "Double damage that ignores defense and bleeds for 2 turns.", effect: afflictingStrike(2.0, strikeOpts{ignoreDefense: true}, enemyEffect(bleed, 2))},
	DeathCoil: {Type: DeathCoil, Name: "Death Coil", Class: character.Necromancer, ManaCost: 30, Cooldown: 5, UnlockLevel: 7,
		Description: "2.5x damage and heal for a quarter of it.", effect: drainEffect(2.5, 0.25)},

	AimedShot: {Type: AimedShot, Name: "Aimed Shot", Class: character.Ranger, ManaCost: 10, Cooldown: 2, UnlockLevel: 1,
		Description: "1.75x damage that cannot be dodged.", effect: strikeEffect(1.75, strikeOpts{undodgeable: true})},
	Ensnare: {Type: Ensnare, Name: "Ensnare", Class: character.Ranger, ManaCost: 12, Cooldown: 4, UnlockLevel: 2,
		Description: "Damage and slow the enemy for 3 turns.", effect: afflictingStrike(1.0, strikeOpts{}, enemyEffect(slow, 3))},
	PoisonArrow: {Type: PoisonArrow, Name: "Poison Arrow", Class: character.Ranger, ManaCost: 10, Cooldown: 3, UnlockLevel: 3,
		Description: "Damage and poison for 4 turns.", effect: afflictingStrike(1.0, strikeOpts{}, enemyEffect(poison, 4))},
	HuntersFocus: {Type: HuntersFocus, Name: "Hunter's Focus", Class: character.Ranger, ManaCost: 10, Cooldown: 4, UnlockLevel: 5,
		Description: "+25% attack for 3 turns.", effect: selfBuff(buff(battleCry, 3))},
	Barrage: {Type: Barrage, Name: "Barrage", Class: character.Ranger, ManaCost: 25, Cooldown: 4, UnlockLevel: 7,
		Description: "Three shots at 0.8x damage.", effect: barrageEffect(3, 0.8)},
}
