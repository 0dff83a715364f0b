// Package combat runs one-on-one turn-based battles between the player and an enemy.
package combat

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingDependency is returned by NewEngine when a required collaborator is nil.
	ErrMissingDependency = errors.New("combat: missing dependency")
	// ErrInvalidRules is returned by NewEngine when Rules hold an impossible value.
	ErrInvalidRules = errors.New("combat: invalid rules")
)

// Result is the terminal state of one RunCombat call.
type Result int

const (
	Won Result = iota
	PlayerDied
	Fled
)

// String returns a human-readable result label.
func (r Result) String() string {
	switch r {
	case Won:
		return "won"
	case PlayerDied:
		return "player died"
	case Fled:
		return "fled"
	default:
		return "unknown"
	}
}

// Rules holds the engine's tunable combat constants.
type Rules struct {
	// DodgeScaling converts defense into dodge chance.
	DodgeScaling float64
	// DodgeCap bounds the defense-derived dodge chance.
	DodgeCap float64
	// CritChance applies to the player, and to enemies without an override.
	CritChance     float64
	CritMultiplier float64
	FleeChance     float64
	// EliteChance is used, out of 100, for elites whose table sets no chance.
	EliteChance int
	// BaseDropChance feeds the loot table.
	BaseDropChance float64
}

// DefaultRules returns the standard combat constants.
//
// Postcondition: every field is set to its documented baseline.
func DefaultRules() Rules {
	return Rules{
		DodgeScaling:   0.01,
		DodgeCap:       0.40,
		CritChance:     0.15,
		CritMultiplier: 2.0,
		FleeChance:     0.5,
		EliteChance:    15,
		BaseDropChance: 0.30,
	}
}

// orDefault returns DefaultRules for the zero Rules and r unchanged otherwise,
// so a caller that sets any field states every field, zeros included.
func (r Rules) orDefault() Rules {
	if r == (Rules{}) {
		return DefaultRules()
	}
	return r
}

// Validate reports the first field outside its legal range.
//
// Postcondition: Returns nil, or an error wrapping ErrInvalidRules.
func (r Rules) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"dodge scaling", r.DodgeScaling},
		{"dodge cap", r.DodgeCap},
		{"crit chance", r.CritChance},
		{"flee chance", r.FleeChance},
		{"base drop chance", r.BaseDropChance},
	} {
		if f.v < 0 || f.v > 1 {
			return fmt.Errorf("%w: %s %v outside [0, 1]", ErrInvalidRules, f.name, f.v)
		}
	}
	if r.CritMultiplier < 1 {
		return fmt.Errorf("%w: crit multiplier %v below 1", ErrInvalidRules, r.CritMultiplier)
	}
	if r.EliteChance < 0 || r.EliteChance > 100 {
		return fmt.Errorf("%w: elite chance %d outside [0, 100]", ErrInvalidRules, r.EliteChance)
	}
	return nil
}

// RunStats accumulates counters across the combats of one run.
// The engine only ever adds to it.
type RunStats struct {
	EnemiesDefeated int
	BossesDefeated  int
	GoldCollected   int
	XPEarned        int
	ItemsFound      int
	TurnsTaken      int
	DamageDealt     int
	DamageTaken     int
	Fled            int
}
