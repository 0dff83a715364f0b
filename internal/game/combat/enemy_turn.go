package combat

import (
	"math"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dungeon/internal/game/condition"
	"github.com/cory-johannsen/dungeon/internal/game/dice"
	"github.com/cory-johannsen/dungeon/internal/game/npc"
)

// enemyTurn runs the enemy's status tick, regeneration, taunt, boss phases,
// elite ability or standard attack, and add damage.
func (f *fight) enemyTurn() {
	en := f.enemy
	rep := f.conditions.ProcessTurnStart(en)
	f.report(rep)
	if en.IsDead() {
		f.say(EventPlayerHit, "%s succumbs to its wounds.", en.Name)
		f.finish(Won)
		return
	}
	if r := en.Behavior.RegenPerTurn; r > 0 {
		if healed := en.Heal(r); healed > 0 {
			f.say(EventStatus, "%s regenerates %d HP.", en.Name, healed)
		}
	}
	if rep.Skipped {
		f.say(EventStatus, "%s is %s and cannot act!", en.Name, verbFor(rep.SkippedBy))
		return
	}

	if line, ok := en.TryTaunt(f.src); ok {
		f.say(EventNarration, "%s: \"%s\"", en.Name, line)
	}
	for _, ph := range en.TriggeredPhases() {
		f.runPhase(ph)
		if f.over {
			return
		}
	}

	if !f.eliteAbility() {
		f.enemyAttack(1, attackLabel)
	}
	if f.over {
		return
	}
	f.addsAttack()
}

// runPhase applies a boss phase's one-time actions.
func (f *fight) runPhase(ph npc.Phase) {
	en := f.enemy
	f.logger.Info("boss phase triggered",
		zap.String("enemy", en.Name),
		zap.String("phase", ph.Name),
		zap.Float64("threshold", ph.Threshold),
		zap.Int("enemy_hp", en.HP),
	)
	if ph.Message != "" {
		f.say(EventPhase, "%s", ph.Message)
	} else {
		f.say(EventPhase, "%s enters %s!", en.Name, ph.Name)
	}

	for _, act := range ph.Actions {
		switch act.Kind {
		case npc.ActionEnrage:
			en.EnragePct += act.Amount
			f.say(EventPhase, "%s becomes enraged! Attack +%d%%.", en.Name, act.Amount)
		case npc.ActionHeal:
			healed := en.Heal(int(math.Round(float64(en.MaxHP) * float64(act.Amount) / 100)))
			f.say(EventPhase, "%s recovers %d HP.", en.Name, healed)
		case npc.ActionSummonAdds:
			en.SummonAdds(act.Amount, act.Damage)
			f.say(EventPhase, "%s summons %d minions! It cannot be harmed while they stand.", en.Name, act.Amount)
		case npc.ActionAfflict:
			if f.ApplyToPlayer(act.Effect, act.Turns) {
				f.say(EventStatus, "You are afflicted with %s for %d turns!", act.Effect, act.Turns)
			}
		case npc.ActionFortify:
			if f.ApplyToEnemy(condition.Fortified, act.Turns) {
				f.say(EventPhase, "%s hardens its defenses.", en.Name)
			}
		default:
			f.logger.Warn("unknown phase action", zap.String("kind", string(act.Kind)))
		}
	}
}

// eliteAbility rolls the elite table. It returns true when an ability
// replaced the standard attack.
func (f *fight) eliteAbility() bool {
	en := f.enemy
	if !en.IsElite || len(en.Elite.Abilities) == 0 {
		return false
	}
	chance := en.Elite.Chance
	if chance <= 0 {
		chance = f.rules.EliteChance
	}
	if f.src.Intn(100) >= chance {
		return false
	}
	ab := en.Elite.Abilities[dice.Pick(f.src, len(en.Elite.Abilities))]
	f.logger.Debug("elite ability", zap.String("enemy", en.Name), zap.String("ability", ab.Name))
	if ab.Message != "" {
		f.say(EventNarration, "%s", ab.Message)
	} else {
		f.say(EventNarration, "%s uses %s!", en.Name, ab.Name)
	}

	if ab.DamageMultiplier > 0 {
		f.enemyAttack(ab.DamageMultiplier, ab.Name)
		if f.over {
			return true
		}
	}
	if ab.Afflict != nil && f.ApplyToPlayer(ab.Afflict.Effect, ab.Afflict.Turns) {
		f.say(EventStatus, "You are afflicted with %s for %d turns!", ab.Afflict.Effect, ab.Afflict.Turns)
	}
	if ab.HealPct > 0 {
		if healed := en.Heal(int(math.Round(float64(en.MaxHP) * float64(ab.HealPct) / 100))); healed > 0 {
			f.say(EventNarration, "%s recovers %d HP.", en.Name, healed)
		}
	}
	return true
}

// addsAttack deals each living add's damage to the player.
func (f *fight) addsAttack() {
	en := f.enemy
	if en.AddsAlive == 0 || en.AddDamage == 0 {
		return
	}
	dmg := max(1, int(math.Round(float64(en.AddsAlive*en.AddDamage)*f.settings.EnemyDamageMultiplier)))
	lost := f.player.TakeDamage(dmg)
	f.say(EventEnemyHit, "%s's %d minions hit you for %d damage.", en.Name, en.AddsAlive, lost)
	f.playerDamaged(lost)
}
