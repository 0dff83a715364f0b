package ability

import (
	"github.com/cory-johannsen/dungeon/internal/game/character"
	"github.com/cory-johannsen/dungeon/internal/game/condition"
	"github.com/cory-johannsen/dungeon/internal/game/npc"
)

// Strike describes one ability-driven hit on the enemy.
type Strike struct {
	Source        string
	Multiplier    float64
	IgnoreDefense bool
	Undodgeable   bool
}

// StrikeResult reports what a Strike did.
type StrikeResult struct {
	// Landed is true when the hit reached the enemy's HP.
	Landed bool
	Dodged bool
	// Blocked is true when a summoned add absorbed the hit.
	Blocked bool
	Crit    bool
	Damage  int
	Killed  bool
}

// Battle is the view of an ongoing combat that abilities act through. The
// combat engine implements it so that ability damage goes through the same
// dodge, add-shield, passive and death pipeline as a plain attack.
type Battle interface {
	Player() *character.Player
	Enemy() *npc.Enemy
	// Strike resolves a hit against the enemy.
	Strike(s Strike) StrikeResult
	// Slay sets the enemy's HP to zero. It returns false, destroying one add
	// instead, while the enemy is shielded by adds.
	Slay(source string) bool
	ApplyToEnemy(kind condition.Kind, turns int) bool
	ApplyToPlayer(kind condition.Kind, turns int) bool
	// HealPlayer restores HP and returns the amount actually healed.
	HealPlayer(amount int) int
	HealingMultiplier() float64
	Say(format string, args ...any)
}
