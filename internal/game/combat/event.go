package combat

import "fmt"

// EventKind classifies narration so displays can style it without parsing text.
type EventKind int

const (
	EventNarration EventKind = iota
	EventPlayerHit
	EventEnemyHit
	EventMiss
	EventStatus
	EventAbility
	EventPassive
	EventPhase
	EventReward
	EventOutcome
	// EventRejected reports a command that did not use the turn.
	EventRejected
)

// String returns the kind label.
func (k EventKind) String() string {
	switch k {
	case EventNarration:
		return "narration"
	case EventPlayerHit:
		return "player_hit"
	case EventEnemyHit:
		return "enemy_hit"
	case EventMiss:
		return "miss"
	case EventStatus:
		return "status"
	case EventAbility:
		return "ability"
	case EventPassive:
		return "passive"
	case EventPhase:
		return "phase"
	case EventReward:
		return "reward"
	case EventOutcome:
		return "outcome"
	case EventRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Event is one line of combat narration.
type Event struct {
	Turn int
	Kind EventKind
	Text string
}

func (e Event) String() string {
	return fmt.Sprintf("[%d] %s: %s", e.Turn, e.Kind, e.Text)
}

// emit appends an event to the queue and forwards it to the display, if any.
func (e *Engine) emit(turn int, kind EventKind, format string, args ...any) {
	ev := Event{Turn: turn, Kind: kind, Text: fmt.Sprintf(format, args...)}
	e.events = append(e.events, ev)
	if e.display != nil {
		e.display.Show(ev)
	}
}

// Events returns and clears the narration queued by the latest combat.
//
// Postcondition: a second call with no combat in between returns nil.
func (e *Engine) Events() []Event {
	out := e.events
	e.events = nil
	return out
}
