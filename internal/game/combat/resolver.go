package combat

import (
	"math"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dungeon/internal/game/ability"
	"github.com/cory-johannsen/dungeon/internal/game/condition"
	"github.com/cory-johannsen/dungeon/internal/game/dice"
	"github.com/cory-johannsen/dungeon/internal/game/passive"
)

const (
	defaultPoisonTurns = 3
	attackLabel        = "attack"
)

// Damage computes max(1, round(attack * multiplier * scale) - defense).
//
// Postcondition: Returns >= 1 for every input.
func Damage(attack int, multiplier, scale float64, defense int) int {
	raw := int(math.Round(float64(attack) * multiplier * scale))
	return max(1, raw-max(0, defense))
}

// DodgeChance returns the defense-derived dodge probability, or override when set.
//
// Postcondition: Returns a value in [0, rules.DodgeCap] when override is nil.
func DodgeChance(defense int, override *float64, rules Rules) float64 {
	if override != nil {
		return *override
	}
	return min(rules.DodgeCap, max(0, float64(defense)*rules.DodgeScaling))
}

// Strike resolves a player hit on the enemy: dodge, then the add shield, then
// crit and damage. Hit and kill passives fire on landed hits.
func (f *fight) Strike(s ability.Strike) ability.StrikeResult {
	var res ability.StrikeResult
	p, en := f.player, f.enemy
	if en.IsDead() {
		return res
	}
	label := s.Source
	if label == "" {
		label = attackLabel
	}

	if !s.Undodgeable && dice.Chance(f.src, DodgeChance(en.DefensePower(), en.DodgeChance, f.rules)) {
		res.Dodged = true
		f.say(EventMiss, "%s dodges your %s!", en.Name, label)
		return res
	}
	if en.KillAdd() {
		res.Blocked = true
		f.say(EventPlayerHit, "Your %s destroys one of %s's minions. %d remain.", label, en.Name, en.AddsAlive)
		if en.AddsAlive == 0 {
			f.say(EventPhase, "%s is exposed!", en.Name)
		}
		return res
	}

	mult := s.Multiplier
	if mult <= 0 {
		mult = 1
	}
	res.Crit = dice.Chance(f.src, f.rules.CritChance)
	if res.Crit {
		mult *= f.rules.CritMultiplier
	}
	def := en.DefensePower()
	if s.IgnoreDefense {
		def = 0
	}
	dealt := en.TakeDamage(Damage(p.AttackPower(), mult, f.settings.PlayerDamageMultiplier, def))
	res.Landed = true
	if res.Crit {
		f.say(EventPlayerHit, "Critical hit! Your %s deals %d damage to %s.", label, dealt, en.Name)
	} else {
		f.say(EventPlayerHit, "Your %s deals %d damage to %s.", label, dealt, en.Name)
	}

	if bonus := f.passives.ProcessPassiveEffects(p, passive.Hit, en, dealt); bonus > 0 && !en.IsDead() {
		dealt += en.TakeDamage(bonus)
	}
	f.flushPassives()
	res.Damage = dealt
	f.stats.DamageDealt += dealt

	f.logger.Debug("player strike",
		zap.String("source", label),
		zap.Bool("crit", res.Crit),
		zap.Int("damage", dealt),
		zap.Int("enemy_hp", en.HP),
	)

	if en.IsDead() {
		res.Killed = true
		f.enemyKilled(dealt)
	}
	return res
}

// Slay drops the enemy to zero HP unless adds shield it.
func (f *fight) Slay(source string) bool {
	en := f.enemy
	if en.IsDead() {
		return false
	}
	if en.KillAdd() {
		f.say(EventPlayerHit, "A minion throws itself in front of your %s. %d remain.", source, en.AddsAlive)
		return false
	}
	dealt := en.TakeDamage(en.HP)
	f.stats.DamageDealt += dealt
	f.enemyKilled(dealt)
	return true
}

// enemyKilled fires the kill trigger and ends the combat.
func (f *fight) enemyKilled(blow int) {
	if heal := f.passives.ProcessPassiveEffects(f.player, passive.Kill, f.enemy, blow); heal > 0 {
		if healed := f.player.Heal(heal); healed > 0 {
			f.say(EventPassive, "You absorb %d HP.", healed)
		}
	}
	f.flushPassives()
	f.finish(Won)
}

// enemyAttack resolves one enemy hit on the player at mult times its attack.
// It returns the HP the player lost.
func (f *fight) enemyAttack(mult float64, label string) int {
	p, en := f.player, f.enemy
	if p.Combat.ShadowmeldActive {
		p.Combat.ShadowmeldActive = false
		f.say(EventMiss, "%s strikes at shadows and misses you.", en.Name)
		return 0
	}
	if dice.Chance(f.src, DodgeChance(p.DefensePower(), nil, f.rules)) {
		f.say(EventMiss, "You dodge %s's %s!", en.Name, label)
		return 0
	}

	critChance := f.rules.CritChance
	if en.CritChance != nil {
		critChance = *en.CritChance
	}
	crit := dice.Chance(f.src, critChance)
	if crit {
		mult *= f.rules.CritMultiplier
	}
	dmg := Damage(en.AttackPower(), mult, f.settings.EnemyDamageMultiplier, p.DefensePower())

	if p.Combat.ManaShieldActive {
		p.Combat.ManaShieldActive = false
		absorbed := min(p.Mana, dmg)
		p.Mana -= absorbed
		dmg -= absorbed
		f.say(EventAbility, "Your mana shield absorbs %d damage.", absorbed)
	}

	lost := p.TakeDamage(dmg)
	if crit {
		f.say(EventEnemyHit, "%s lands a critical %s for %d damage!", en.Name, label, lost)
	} else {
		f.say(EventEnemyHit, "%s's %s hits you for %d damage.", en.Name, label, lost)
	}
	f.logger.Debug("enemy strike",
		zap.String("enemy", en.Name),
		zap.String("source", label),
		zap.Bool("crit", crit),
		zap.Int("damage", lost),
		zap.Int("player_hp", p.HP),
	)
	if !f.playerDamaged(lost) {
		return lost
	}

	if b := en.Behavior; lost > 0 {
		if b.LifestealPct > 0 {
			if healed := en.Heal(max(1, int(math.Round(float64(lost)*float64(b.LifestealPct)/100)))); healed > 0 {
				f.say(EventEnemyHit, "%s drains %d HP from you.", en.Name, healed)
			}
		}
		if b.PoisonOnHit > 0 && dice.Chance(f.src, b.PoisonOnHit) {
			turns := b.PoisonOnHitTurns
			if turns <= 0 {
				turns = defaultPoisonTurns
			}
			if f.ApplyToPlayer(condition.Poison, turns) {
				f.say(EventStatus, "You are poisoned for %d turns!", turns)
			}
		}
	}
	return lost
}

// playerDamaged records HP lost to the enemy, runs the death check, and
// reflects thorns. It returns false when the combat ended.
func (f *fight) playerDamaged(lost int) bool {
	p := f.player
	f.stats.DamageTaken += lost
	if !f.checkPlayerDeath() {
		return false
	}
	if lost <= 0 {
		return true
	}
	reflect := f.passives.ProcessPassiveEffects(p, passive.DamageTaken, f.enemy, lost)
	f.flushPassives()
	if reflect > 0 && f.enemy.DamageImmune() {
		f.say(EventStatus, "%s's minions absorb the thorns.", f.enemy.Name)
		return true
	}
	if reflect > 0 && !f.enemy.IsDead() {
		f.stats.DamageDealt += f.enemy.TakeDamage(reflect)
		if f.enemy.IsDead() {
			f.say(EventPlayerHit, "%s is torn apart by thorns!", f.enemy.Name)
			f.finish(Won)
			return false
		}
	}
	return true
}

// checkPlayerDeath lets save effects intercept a fatal blow. It returns false
// when the player died.
func (f *fight) checkPlayerDeath() bool {
	if f.player.IsAlive() {
		return true
	}
	restored := f.passives.ProcessPassiveEffects(f.player, passive.WouldDie, f.enemy, 0)
	f.flushPassives()
	if restored > 0 {
		return true
	}
	f.finish(PlayerDied)
	return false
}
