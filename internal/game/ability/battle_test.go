package ability_test

import (
	"fmt"
	"math"

	"github.com/cory-johannsen/dungeon/internal/game/ability"
	"github.com/cory-johannsen/dungeon/internal/game/character"
	"github.com/cory-johannsen/dungeon/internal/game/condition"
	"github.com/cory-johannsen/dungeon/internal/game/npc"
)

// stubBattle resolves every strike as a hit for round(attack*multiplier)
// minus defense, with no randomness.
type stubBattle struct {
	player   *character.Player
	enemy    *npc.Enemy
	strikes  []ability.Strike
	messages []string
	dodgeAll bool
	healMult float64
}

func newStubBattle(p *character.Player, e *npc.Enemy) *stubBattle {
	return &stubBattle{player: p, enemy: e, healMult: 1.0}
}

func (b *stubBattle) Player() *character.Player { return b.player }
func (b *stubBattle) Enemy() *npc.Enemy         { return b.enemy }

func (b *stubBattle) Strike(s ability.Strike) ability.StrikeResult {
	b.strikes = append(b.strikes, s)
	if b.dodgeAll && !s.Undodgeable {
		return ability.StrikeResult{Dodged: true}
	}
	def := b.enemy.DefensePower()
	if s.IgnoreDefense {
		def = 0
	}
	dmg := max(1, int(math.Round(float64(b.player.AttackPower())*s.Multiplier))-def)
	dealt := b.enemy.TakeDamage(dmg)
	return ability.StrikeResult{Landed: true, Damage: dealt, Killed: b.enemy.IsDead()}
}

func (b *stubBattle) Slay(string) bool {
	b.enemy.TakeDamage(b.enemy.HP)
	return true
}

func (b *stubBattle) ApplyToEnemy(kind condition.Kind, turns int) bool {
	return condition.NewManager(nil).Apply(b.enemy, kind, turns)
}

func (b *stubBattle) ApplyToPlayer(kind condition.Kind, turns int) bool {
	return condition.NewManager(nil).Apply(b.player, kind, turns)
}

func (b *stubBattle) HealPlayer(amount int) int  { return b.player.Heal(amount) }
func (b *stubBattle) HealingMultiplier() float64 { return b.healMult }

func (b *stubBattle) Say(format string, args ...any) {
	b.messages = append(b.messages, fmt.Sprintf(format, args...))
}
