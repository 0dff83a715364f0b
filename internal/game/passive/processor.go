// Package passive dispatches equipment-granted passive effects on combat triggers.
package passive

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dungeon/internal/game/character"
	"github.com/cory-johannsen/dungeon/internal/game/inventory"
	"github.com/cory-johannsen/dungeon/internal/game/npc"
)

// Trigger is a combat event that passive effects may react to.
type Trigger int

const (
	CombatStart Trigger = iota
	TurnStart
	// Hit fires after the player damages the enemy; amount is the damage dealt.
	Hit
	// Kill fires when the player's hit kills the enemy; amount is the killing blow.
	Kill
	// DamageTaken fires after the player loses HP to the enemy; amount is the HP lost.
	DamageTaken
	// WouldDie fires when the player's HP has reached zero.
	WouldDie
)

func (t Trigger) String() string {
	switch t {
	case CombatStart:
		return "combat_start"
	case TurnStart:
		return "turn_start"
	case Hit:
		return "hit"
	case Kill:
		return "kill"
	case DamageTaken:
		return "damage_taken"
	case WouldDie:
		return "would_die"
	}
	return "unknown"
}

const (
	vampiricPct    = 0.10
	searingEdgePct = 0.20
	soulReaverPct  = 0.25
	thornmailPct   = 0.25
	regrowthBelow  = 0.30
	regrowthPct    = 0.10
	phoenixPct     = 0.50
)

// Processor applies passive effects. Narration is buffered until Drain.
type Processor struct {
	logger   *zap.Logger
	messages []string
}

// NewProcessor creates a Processor. A nil logger is replaced by a no-op logger.
func NewProcessor(logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{logger: logger}
}

// ProcessPassiveEffects runs every equipped passive that reacts to trigger.
// The return value depends on the trigger:
//   - Hit: bonus damage to deal to the enemy (searing_edge).
//   - Kill: HP to convert into healing (soul_reaver).
//   - DamageTaken: damage to reflect onto the enemy (thornmail).
//   - WouldDie: HP the player was restored to; zero means the player dies.
//   - otherwise 0.
//
// Healing and flag changes happen here; the caller applies returned damage.
func (p *Processor) ProcessPassiveEffects(pl *character.Player, trigger Trigger, enemy *npc.Enemy, amount int) int {
	if pl == nil {
		return 0
	}
	switch trigger {
	case CombatStart:
		p.ResetCombatState(pl)
		return 0
	case WouldDie:
		return p.saveFromDeath(pl)
	}

	total := 0
	for _, passive := range pl.Equipment.Passives() {
		total += p.apply(pl, passive, trigger, enemy, amount)
	}
	return total
}

func (p *Processor) apply(pl *character.Player, passive inventory.Passive, trigger Trigger, enemy *npc.Enemy, amount int) int {
	switch passive {
	case inventory.Vampiric:
		if trigger == Hit && amount > 0 {
			healed := pl.Heal(pct(amount, vampiricPct))
			if healed > 0 {
				p.say("Your weapon drinks %d HP.", healed)
			}
			p.fired(passive, trigger, healed)
		}
	case inventory.SearingEdge:
		if trigger == Hit && amount > 0 {
			bonus := pct(amount, searingEdgePct)
			p.say("Searing flames deal %d extra damage.", bonus)
			p.fired(passive, trigger, bonus)
			return bonus
		}
	case inventory.SoulReaver:
		if trigger == Kill && amount > 0 {
			bonus := pct(amount, soulReaverPct)
			p.say("The soul of %s is reaped.", enemyName(enemy))
			p.fired(passive, trigger, bonus)
			return bonus
		}
	case inventory.Thornmail:
		if trigger == DamageTaken && amount > 0 {
			reflect := pct(amount, thornmailPct)
			p.say("Thorns reflect %d damage.", reflect)
			p.fired(passive, trigger, reflect)
			return reflect
		}
	case inventory.Regrowth:
		if trigger == TurnStart && pl.HP > 0 && pl.HPPercent() < regrowthBelow {
			healed := pl.Heal(pct(pl.MaxHP, regrowthPct))
			if healed > 0 {
				p.say("Regrowth restores %d HP.", healed)
			}
			p.fired(passive, trigger, healed)
		}
	case inventory.Aegis, inventory.Phoenix:
		// handled by saveFromDeath
	case inventory.SwiftBoots:
		// consulted by the flee command through TryExtraFlee
	case inventory.Chronoband, inventory.PackMule:
		// stat modifiers applied outside combat triggers
	case inventory.PassiveNone:
	default:
		p.logger.Warn("unhandled passive", zap.Stringer("passive", passive))
	}
	return 0
}

// saveFromDeath lets Aegis, then Phoenix, intercept fatal damage. Aegis is
// spent first so that Phoenix is kept for a later combat.
func (p *Processor) saveFromDeath(pl *character.Player) int {
	if pl.HP > 0 {
		return pl.HP
	}
	if pl.HasPassive(inventory.Aegis) && !pl.Combat.AegisUsed {
		pl.Combat.AegisUsed = true
		pl.HP = 1
		p.say("Your Aegis flares and you cling to life!")
		p.fired(inventory.Aegis, WouldDie, 1)
		return pl.HP
	}
	if pl.HasPassive(inventory.Phoenix) && !pl.Run.PhoenixUsed {
		pl.Run.PhoenixUsed = true
		pl.HP = max(1, pct(pl.MaxHP, phoenixPct))
		p.say("You rise from the ashes with %d HP!", pl.HP)
		p.fired(inventory.Phoenix, WouldDie, pl.HP)
		return pl.HP
	}
	return 0
}

// TryExtraFlee consumes the once-per-combat extra flee attempt granted by
// swift_boots. It returns false when unavailable.
func (p *Processor) TryExtraFlee(pl *character.Player) bool {
	if !pl.HasPassive(inventory.SwiftBoots) || pl.Combat.ExtraFleeUsed {
		return false
	}
	pl.Combat.ExtraFleeUsed = true
	p.say("Your swift boots give you another chance to escape!")
	p.logger.Debug("passive fired", zap.Stringer("passive", inventory.SwiftBoots))
	return true
}

// ResetCombatState clears every combat-scoped flag. Run-scoped flags such as
// the Phoenix charge are untouched.
func (p *Processor) ResetCombatState(pl *character.Player) {
	pl.Combat = character.CombatFlags{}
	pl.ComboPoints = 0
	pl.Minion = nil
}

// ResetRunState clears run-scoped flags at the start of a new run.
func (p *Processor) ResetRunState(pl *character.Player) {
	pl.Run = character.RunFlags{}
}

// Drain returns and clears the buffered narration.
func (p *Processor) Drain() []string {
	out := p.messages
	p.messages = nil
	return out
}

func (p *Processor) say(format string, args ...any) {
	p.messages = append(p.messages, fmt.Sprintf(format, args...))
}

func (p *Processor) fired(passive inventory.Passive, trigger Trigger, value int) {
	p.logger.Debug("passive fired",
		zap.Stringer("passive", passive),
		zap.Stringer("trigger", trigger),
		zap.Int("value", value),
	)
}

// pct returns max(1, round(amount*frac)).
func pct(amount int, frac float64) int {
	return max(1, int(math.Round(float64(amount)*frac)))
}

func enemyName(e *npc.Enemy) string {
	if e == nil {
		return "your foe"
	}
	return e.Name
}
