package ability

import (
	"math"

	"github.com/cory-johannsen/dungeon/internal/game/character"
	"github.com/cory-johannsen/dungeon/internal/game/condition"
)

const (
	stun      = condition.Stun
	freeze    = condition.Freeze
	burn      = condition.Burn
	poison    = condition.Poison
	bleed     = condition.Bleed
	slow      = condition.Slow
	weakened  = condition.Weakened
	fortified = condition.Fortified
	battleCry = condition.BattleCry
	regen     = condition.Regen
)

const (
	layOnHandsPct  = 0.30
	skeletonTurns  = 3
	skeletonAttack = 3
	comboPerPoint  = 0.5
)

// effectFunc performs an ability. Returning false means a secondary
// precondition failed and the cast must be rolled back.
type effectFunc func(b Battle, a *Ability) bool

type strikeOpts struct {
	ignoreDefense bool
	undodgeable   bool
}

type affliction struct {
	kind  condition.Kind
	turns int
}

func enemyEffect(kind condition.Kind, turns int) *affliction {
	return &affliction{kind: kind, turns: turns}
}

func buff(kind condition.Kind, turns int) affliction {
	return affliction{kind: kind, turns: turns}
}

func strike(b Battle, a *Ability, mult float64, o strikeOpts) StrikeResult {
	return b.Strike(Strike{
		Source:        a.Name,
		Multiplier:    mult,
		IgnoreDefense: o.ignoreDefense,
		Undodgeable:   o.undodgeable,
	})
}

func afflictEnemy(b Battle, r StrikeResult, aff *affliction) {
	if aff == nil || !r.Landed || r.Killed {
		return
	}
	if b.ApplyToEnemy(aff.kind, aff.turns) {
		b.Say("%s is afflicted with %s for %d turns.", b.Enemy().Name, aff.kind, aff.turns)
		return
	}
	b.Say("%s resists %s.", b.Enemy().Name, aff.kind)
}

func strikeEffect(mult float64, o strikeOpts) effectFunc {
	return func(b Battle, a *Ability) bool {
		strike(b, a, mult, o)
		return true
	}
}

func afflictingStrike(mult float64, o strikeOpts, aff *affliction) effectFunc {
	return func(b Battle, a *Ability) bool {
		afflictEnemy(b, strike(b, a, mult, o), aff)
		return true
	}
}

func selfBuff(buffs ...affliction) effectFunc {
	return func(b Battle, a *Ability) bool {
		for _, bf := range buffs {
			b.ApplyToPlayer(bf.kind, bf.turns)
			b.Say("You gain %s for %d turns.", bf.kind, bf.turns)
		}
		return true
	}
}

// executeEffect slays a non-boss enemy at or below threshold; bosses and
// healthier enemies take a bossMult strike instead.
func executeEffect(threshold, bossMult float64) effectFunc {
	return func(b Battle, a *Ability) bool {
		e := b.Enemy()
		if e.IsBoss {
			b.Say("%s is immune to %s!", e.Name, a.Name)
			strike(b, a, bossMult, strikeOpts{})
			return true
		}
		if e.HPPercent() < threshold {
			if b.Slay(a.Name) {
				b.Say("%s executes %s!", a.Name, e.Name)
			}
			return true
		}
		strike(b, a, 1.0, strikeOpts{})
		return true
	}
}

func manaShieldEffect(b Battle, a *Ability) bool {
	p := b.Player()
	p.Combat.ManaShieldUsed = true
	p.Combat.ManaShieldActive = true
	b.Say("A shimmering mana shield surrounds you.")
	return true
}

func shadowmeldEffect(b Battle, a *Ability) bool {
	p := b.Player()
	p.Combat.ShadowmeldUsed = true
	p.Combat.ShadowmeldActive = true
	b.Say("You melt into the shadows.")
	return true
}

func comboStrike(mult float64, aff *affliction) effectFunc {
	return func(b Battle, a *Ability) bool {
		r := strike(b, a, mult, strikeOpts{})
		if r.Landed {
			n := b.Player().AddCombo(1)
			b.Say("Combo points: %d.", n)
		}
		afflictEnemy(b, r, aff)
		return true
	}
}

func eviscerateEffect(b Battle, a *Ability) bool {
	combo := b.Player().ConsumeCombo()
	strike(b, a, 1+comboPerPoint*float64(combo), strikeOpts{})
	return true
}

func holyEffect(mult, undeadMult float64, aff *affliction) effectFunc {
	return func(b Battle, a *Ability) bool {
		m := mult
		if b.Enemy().IsUndead {
			m = undeadMult
			b.Say("Holy light sears the undead!")
		}
		afflictEnemy(b, strike(b, a, m, strikeOpts{}), aff)
		return true
	}
}

func layOnHandsEffect(b Battle, a *Ability) bool {
	p := b.Player()
	amount := int(math.Round(float64(p.MaxHP) * layOnHandsPct * b.HealingMultiplier()))
	healed := b.HealPlayer(max(1, amount))
	b.Say("You heal for %d HP.", healed)
	return true
}

func cleanseEffect(b Battle, a *Ability) bool {
	removed := b.Player().Status.RemoveDebuffs()
	if len(removed) == 0 {
		b.Say("You feel purified, though nothing ailed you.")
		return true
	}
	for _, k := range removed {
		b.Say("%s is cleansed.", k)
	}
	return true
}

func drainEffect(mult, healFrac float64) effectFunc {
	return func(b Battle, a *Ability) bool {
		r := strike(b, a, mult, strikeOpts{})
		if r.Landed && r.Damage > 0 {
			healed := b.HealPlayer(max(1, int(math.Round(float64(r.Damage)*healFrac))))
			b.Say("You drain %d HP.", healed)
		}
		return true
	}
}

func curseEffect(b Battle, a *Ability) bool {
	e := b.Enemy()
	if b.ApplyToEnemy(weakened, 3) {
		b.Say("%s is cursed and weakened for 3 turns.", e.Name)
	} else {
		b.Say("%s resists the curse.", e.Name)
	}
	return true
}

func raiseDeadEffect(b Battle, a *Ability) bool {
	p := b.Player()
	if p.Corpses <= 0 {
		b.Say("There are no corpses to raise.")
		return false
	}
	p.Corpses--
	p.Minion = &character.Minion{Name: "Skeleton", Attack: p.Level + skeletonAttack, TurnsLeft: skeletonTurns}
	b.Say("A skeleton claws its way out of the ground to fight for you.")
	return true
}

func barrageEffect(shots int, mult float64) effectFunc {
	return func(b Battle, a *Ability) bool {
		for i := 0; i < shots; i++ {
			if r := strike(b, a, mult, strikeOpts{}); r.Killed {
				break
			}
		}
		return true
	}
}
