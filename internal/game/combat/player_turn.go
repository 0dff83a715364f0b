package combat

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dungeon/internal/game/ability"
	"github.com/cory-johannsen/dungeon/internal/game/condition"
	"github.com/cory-johannsen/dungeon/internal/game/dice"
	"github.com/cory-johannsen/dungeon/internal/game/passive"
)

// playerTurn runs the player's status tick, cooldown tick, turn-start
// passives, action, and minion attack.
func (f *fight) playerTurn() {
	p := f.player
	rep := f.conditions.ProcessTurnStart(p)
	f.report(rep)
	if rep.Damage > 0 {
		f.stats.DamageTaken += rep.Damage
		if !f.checkPlayerDeath() {
			return
		}
	}
	f.abilities.TickCooldowns()
	f.passives.ProcessPassiveEffects(p, passive.TurnStart, f.enemy, 0)
	f.flushPassives()

	if rep.Skipped {
		f.say(EventStatus, "You are %s and cannot act!", verbFor(rep.SkippedBy))
		return
	}

	f.playerAction()
	if f.over {
		return
	}
	f.minionAttack()
}

// playerAction asks for commands until one uses the turn.
func (f *fight) playerAction() {
	for {
		cmd, err := f.input.NextCommand()
		if err != nil {
			f.logger.Warn("reading command failed, attempting to flee", zap.Error(err))
			cmd = Command{Kind: CmdFlee}
		}
		f.logger.Debug("player command", zap.Stringer("command", cmd.Kind), zap.Int("index", cmd.Index))

		switch cmd.Kind {
		case CmdAttack:
			f.Strike(ability.Strike{Source: attackLabel, Multiplier: 1})
			return
		case CmdAbility:
			if f.castAbility(cmd.Index) {
				return
			}
		case CmdFlee:
			f.flee()
			return
		case CmdItem:
			if f.useItem(cmd.Index) {
				return
			}
		case CmdCancel:
		default:
			f.say(EventRejected, "Unknown command. Choose attack, ability, flee or item.")
		}
	}
}

// castAbility returns true when an ability was cast.
func (f *fight) castAbility(index int) bool {
	unlocked := f.abilities.GetUnlockedAbilities(f.player)
	if len(unlocked) == 0 {
		f.say(EventRejected, "You have no abilities.")
		return false
	}
	if index == 0 {
		opts := make([]string, len(unlocked))
		for i, a := range unlocked {
			opts[i] = f.abilityOption(a)
		}
		picked, ok := f.choose("Abilities", opts)
		if !ok {
			return false
		}
		index = picked + 1
	}
	if index < 1 || index > len(unlocked) {
		f.say(EventRejected, "There is no ability %d.", index)
		return false
	}

	a := unlocked[index-1]
	switch r := f.abilities.UseAbility(f, a.Type); r {
	case ability.Success:
		return true
	case ability.InsufficientMana:
		f.say(EventRejected, "Not enough mana for %s (%d needed, %d available).", a.Name, a.ManaCost, f.player.Mana)
	case ability.OnCooldown:
		f.say(EventRejected, "%s is on cooldown for %d more turns.", a.Name, f.abilities.Cooldown(a.Type))
	case ability.NotUnlocked:
		f.say(EventRejected, "%s is not unlocked yet.", a.Name)
	default:
		f.say(EventRejected, "%s cannot be used right now.", a.Name)
	}
	return false
}

func (f *fight) abilityOption(a *ability.Ability) string {
	opt := fmt.Sprintf("%s (%d mana) - %s", a.Name, a.ManaCost, a.Description)
	if cd := f.abilities.Cooldown(a.Type); cd > 0 {
		opt += fmt.Sprintf(" [cooldown %d]", cd)
	}
	return opt
}

// choose asks the input to pick from opts. A read failure counts as a cancel.
func (f *fight) choose(title string, opts []string) (int, bool) {
	picked, ok, err := f.input.Choose(title, opts)
	if err != nil {
		f.logger.Warn("reading choice failed", zap.String("menu", title), zap.Error(err))
		return 0, false
	}
	if !ok {
		return 0, false
	}
	if picked < 0 || picked >= len(opts) {
		f.say(EventRejected, "Invalid choice.")
		return 0, false
	}
	return picked, true
}

// flee succeeds iff the draw is below FleeChance. Swift boots grant one
// more attempt per combat.
func (f *fight) flee() {
	if dice.Chance(f.src, f.rules.FleeChance) {
		f.finish(Fled)
		return
	}
	if f.passives.TryExtraFlee(f.player) {
		f.flushPassives()
		if dice.Chance(f.src, f.rules.FleeChance) {
			f.finish(Fled)
			return
		}
	}
	f.say(EventMiss, "You fail to escape!")
}

// useItem drinks a consumable. It returns true when an item was used.
func (f *fight) useItem(index int) bool {
	p := f.player
	items := p.Backpack.Consumables()
	if len(items) == 0 {
		f.say(EventRejected, "You have no usable items.")
		return false
	}
	if index == 0 {
		opts := make([]string, len(items))
		for i, it := range items {
			name := it.ItemDefID
			if def, ok := p.Backpack.Def(it.ItemDefID); ok {
				name = def.Name
			}
			opts[i] = fmt.Sprintf("%s x%d", name, it.Quantity)
		}
		picked, ok := f.choose("Items", opts)
		if !ok {
			return false
		}
		index = picked + 1
	}
	if index < 1 || index > len(items) {
		f.say(EventRejected, "There is no item %d.", index)
		return false
	}

	inst := items[index-1]
	def, ok := p.Backpack.Def(inst.ItemDefID)
	if !ok {
		f.logger.Error("backpack item without definition", zap.String("item", inst.ItemDefID))
		return false
	}
	if err := p.Backpack.Remove(inst.InstanceID, 1); err != nil {
		f.logger.Warn("removing used item failed", zap.String("item", def.ID), zap.Error(err))
		return false
	}
	healed, restored := 0, 0
	if def.HealAmount > 0 {
		healed = p.Heal(int(math.Round(float64(def.HealAmount) * f.settings.HealingMultiplier)))
	}
	if def.ManaAmount > 0 {
		restored = p.RestoreMana(def.ManaAmount)
	}
	f.say(EventNarration, "You use %s, recovering %d HP and %d mana.", def.Name, healed, restored)
	return true
}

// minionAttack lets a summoned minion hit the enemy after the player acts.
func (f *fight) minionAttack() {
	p, en := f.player, f.enemy
	m := p.Minion
	if m == nil || en.IsDead() {
		return
	}
	if en.KillAdd() {
		f.say(EventPlayerHit, "Your %s destroys one of %s's minions.", m.Name, en.Name)
	} else {
		dealt := en.TakeDamage(Damage(m.Attack, 1, f.settings.PlayerDamageMultiplier, en.DefensePower()))
		f.stats.DamageDealt += dealt
		f.say(EventPlayerHit, "Your %s hits %s for %d damage.", m.Name, en.Name, dealt)
	}
	m.TurnsLeft--
	if m.TurnsLeft <= 0 {
		p.Minion = nil
		f.say(EventStatus, "Your %s crumbles to dust.", m.Name)
	}
	if en.IsDead() {
		f.finish(Won)
	}
}

// report queues the narration of a status tick.
func (f *fight) report(rep condition.TurnReport) {
	for _, msg := range rep.Messages {
		f.say(EventStatus, "%s", msg)
	}
}

func verbFor(k condition.Kind) string {
	if k == condition.Freeze {
		return "frozen"
	}
	return "stunned"
}
