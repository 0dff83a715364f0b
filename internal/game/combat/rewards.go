package combat

import (
	"math"

	"go.uber.org/zap"
)

// reward grants XP, gold, loot and a corpse after a victory.
//
// Postcondition: XP gained >= 1; gold never decreases.
func (f *fight) reward() {
	p, en := f.player, f.enemy
	f.say(EventOutcome, "You defeated %s!", en.Name)

	xp := max(1, int(math.Round(float64(en.XP)*f.settings.XPMultiplier)))
	levels := p.AddXP(xp)
	f.say(EventReward, "You gain %d XP.", xp)
	if levels > 0 {
		f.say(EventReward, "You reached level %d!", p.Level)
	}
	p.Corpses++

	f.stats.EnemiesDefeated++
	f.stats.XPEarned += xp
	if en.IsBoss {
		f.stats.BossesDefeated++
	}

	if f.table == nil {
		return
	}
	drop := f.table.RollDrop(en, p.Level, en.IsBoss, en.IsElite, f.floor)
	if drop.Gold > 0 {
		p.Gold += drop.Gold
		f.stats.GoldCollected += drop.Gold
		f.say(EventReward, "You find %d gold.", drop.Gold)
	}
	if drop.Item == nil {
		return
	}
	if _, err := p.Backpack.AddInstance(drop.InstanceID, drop.Item); err != nil {
		f.logger.Info("loot left behind", zap.String("item", drop.Item.ID), zap.Error(err))
		f.say(EventReward, "%s drops %s, but you cannot carry it.", en.Name, drop.Item.Name)
		return
	}
	f.stats.ItemsFound++
	f.say(EventReward, "%s drops %s (%s).", en.Name, drop.Item.Name, drop.Tier)
}
