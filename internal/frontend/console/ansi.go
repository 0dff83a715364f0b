package console

import (
	"fmt"

	"github.com/cory-johannsen/dungeon/internal/game/combat"
)

// ANSI escape code constants for terminal styling.
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Dim   = "\033[2m"

	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"

	BrightRed    = "\033[91m"
	BrightYellow = "\033[93m"
	BrightCyan   = "\033[96m"
)

// Colorize wraps text with the given ANSI color code and a reset suffix.
//
// Precondition: color must be a valid ANSI escape sequence or empty.
// Postcondition: Returns text unchanged when color is empty.
func Colorize(color, text string) string {
	if color == "" {
		return text
	}
	return color + text + Reset
}

// Colorf wraps a formatted string with the given ANSI color code.
func Colorf(color, format string, args ...any) string {
	return Colorize(color, fmt.Sprintf(format, args...))
}

// StripANSI removes all ANSI escape sequences from a string.
//
// Postcondition: Returns text with all \033[...m sequences removed.
func StripANSI(s string) string {
	result := make([]byte, 0, len(s))
	i := 0
	for i < len(s) {
		if s[i] == '\033' && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && s[j] != 'm' {
				j++
			}
			if j < len(s) {
				i = j + 1
				continue
			}
		}
		result = append(result, s[i])
		i++
	}
	return string(result)
}

// colorFor returns the style used to print an event of kind k.
func colorFor(k combat.EventKind) string {
	switch k {
	case combat.EventPlayerHit:
		return Green
	case combat.EventEnemyHit:
		return Red
	case combat.EventMiss:
		return Dim
	case combat.EventStatus:
		return Yellow
	case combat.EventAbility:
		return BrightCyan
	case combat.EventPassive:
		return Magenta
	case combat.EventPhase:
		return Bold + BrightRed
	case combat.EventReward:
		return BrightYellow
	case combat.EventOutcome:
		return Bold
	case combat.EventRejected:
		return Blue
	default:
		return ""
	}
}
