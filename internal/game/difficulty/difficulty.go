// Package difficulty defines the immutable multiplier sets for each difficulty level.
package difficulty

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownLevel is returned for a difficulty name or value that does not exist.
var ErrUnknownLevel = errors.New("difficulty: unknown level")

// Level is a difficulty setting.
type Level int

const (
	Casual Level = iota
	Normal
	Hard
)

func (l Level) String() string {
	switch l {
	case Casual:
		return "casual"
	case Normal:
		return "normal"
	case Hard:
		return "hard"
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// ParseLevel resolves a difficulty name case-insensitively.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "casual", "easy":
		return Casual, nil
	case "normal", "":
		return Normal, nil
	case "hard":
		return Hard, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

// Settings are the multipliers for one difficulty. Values are copied, never shared.
type Settings struct {
	Level                   Level
	EnemyStatMultiplier     float64
	EnemyDamageMultiplier   float64
	PlayerDamageMultiplier  float64
	LootDropMultiplier      float64
	GoldMultiplier          float64
	HealingMultiplier       float64
	XPMultiplier            float64
	MerchantPriceMultiplier float64
	StartingGold            int
	StartingPotions         int
	Permadeath              bool
}

var table = map[Level]Settings{
	Casual: {
		Level:                   Casual,
		EnemyStatMultiplier:     0.8,
		EnemyDamageMultiplier:   0.7,
		PlayerDamageMultiplier:  1.2,
		LootDropMultiplier:      1.5,
		GoldMultiplier:          1.8,
		HealingMultiplier:       1.5,
		XPMultiplier:            1.2,
		MerchantPriceMultiplier: 0.7,
		StartingGold:            100,
		StartingPotions:         5,
	},
	Normal: {
		Level:                   Normal,
		EnemyStatMultiplier:     1.0,
		EnemyDamageMultiplier:   1.0,
		PlayerDamageMultiplier:  1.0,
		LootDropMultiplier:      1.0,
		GoldMultiplier:          1.0,
		HealingMultiplier:       1.0,
		XPMultiplier:            1.0,
		MerchantPriceMultiplier: 1.0,
		StartingGold:            50,
		StartingPotions:         3,
	},
	Hard: {
		Level:                   Hard,
		EnemyStatMultiplier:     1.3,
		EnemyDamageMultiplier:   1.25,
		PlayerDamageMultiplier:  0.9,
		LootDropMultiplier:      0.8,
		GoldMultiplier:          0.7,
		HealingMultiplier:       0.75,
		XPMultiplier:            0.9,
		MerchantPriceMultiplier: 1.3,
		StartingGold:            25,
		StartingPotions:         1,
		Permadeath:              true,
	},
}

// For returns the settings for l.
//
// Postcondition: err wraps ErrUnknownLevel when l is not a declared Level.
func For(l Level) (Settings, error) {
	s, ok := table[l]
	if !ok {
		return Settings{}, fmt.Errorf("%w: %d", ErrUnknownLevel, int(l))
	}
	return s, nil
}

// MustFor is For for the declared constants; it panics on an unknown level.
func MustFor(l Level) Settings {
	s, err := For(l)
	if err != nil {
		panic(err)
	}
	return s
}
