// Package character defines the player character and its combat-facing state.
package character

import (
	"fmt"
	"strings"
)

// Class is a playable character class.
type Class string

const (
	Warrior     Class = "warrior"
	Mage        Class = "mage"
	Rogue       Class = "rogue"
	Paladin     Class = "paladin"
	Necromancer Class = "necromancer"
	Ranger      Class = "ranger"
)

// BaseStats are a class's level-1 attributes.
type BaseStats struct {
	MaxHP   int
	Attack  int
	Defense int
	MaxMana int
}

var classStats = map[Class]BaseStats{
	Warrior:     {MaxHP: 120, Attack: 12, Defense: 8, MaxMana: 30},
	Mage:        {MaxHP: 80, Attack: 8, Defense: 3, MaxMana: 80},
	Rogue:       {MaxHP: 95, Attack: 11, Defense: 5, MaxMana: 40},
	Paladin:     {MaxHP: 110, Attack: 10, Defense: 7, MaxMana: 50},
	Necromancer: {MaxHP: 85, Attack: 8, Defense: 4, MaxMana: 70},
	Ranger:      {MaxHP: 95, Attack: 11, Defense: 5, MaxMana: 45},
}

// Classes returns every playable class in menu order.
func Classes() []Class {
	return []Class{Warrior, Mage, Rogue, Paladin, Necromancer, Ranger}
}

// ParseClass resolves a class id case-insensitively.
//
// Postcondition: Returns a valid Class or a non-nil error.
func ParseClass(s string) (Class, error) {
	c := Class(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := classStats[c]; !ok {
		return "", fmt.Errorf("character: unknown class %q", s)
	}
	return c, nil
}

// Stats returns the level-1 stats for c.
func (c Class) Stats() (BaseStats, bool) {
	s, ok := classStats[c]
	return s, ok
}

// Title returns the capitalised display name, e.g. "Necromancer".
func (c Class) Title() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}
