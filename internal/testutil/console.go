package testutil

import (
	"errors"
	"strings"

	"github.com/cory-johannsen/dungeon/internal/game/combat"
)

// ErrScriptExhausted is returned by ScriptedInput once its script has run out
// and no fallback command was set.
var ErrScriptExhausted = errors.New("testutil: command script exhausted")

// ScriptedInput is a combat.Input that replays a fixed command script.
//
// Choices answers menus in order; a negative choice cancels the menu.
type ScriptedInput struct {
	Commands []combat.Command
	Choices  []int
	// Fallback is returned once Commands is exhausted, when non-nil.
	Fallback *combat.Command

	Asked  int
	Menus  []string
	Offers [][]string
}

// NewScriptedInput returns an input replaying cmds.
func NewScriptedInput(cmds ...combat.Command) *ScriptedInput {
	return &ScriptedInput{Commands: cmds}
}

// Then sets the command returned after the script runs out.
func (s *ScriptedInput) Then(cmd combat.Command) *ScriptedInput {
	s.Fallback = &cmd
	return s
}

// WithChoices appends menu answers.
func (s *ScriptedInput) WithChoices(picks ...int) *ScriptedInput {
	s.Choices = append(s.Choices, picks...)
	return s
}

// NextCommand implements combat.Input.
func (s *ScriptedInput) NextCommand() (combat.Command, error) {
	s.Asked++
	if len(s.Commands) == 0 {
		if s.Fallback != nil {
			return *s.Fallback, nil
		}
		return combat.Command{}, ErrScriptExhausted
	}
	cmd := s.Commands[0]
	s.Commands = s.Commands[1:]
	return cmd, nil
}

// Choose implements combat.Input.
func (s *ScriptedInput) Choose(title string, options []string) (int, bool, error) {
	s.Menus = append(s.Menus, title)
	s.Offers = append(s.Offers, options)
	if len(s.Choices) == 0 {
		return 0, false, nil
	}
	pick := s.Choices[0]
	s.Choices = s.Choices[1:]
	if pick < 0 {
		return 0, false, nil
	}
	return pick, true, nil
}

// Attack is shorthand for an attack command.
func Attack() combat.Command { return combat.Command{Kind: combat.CmdAttack} }

// Flee is shorthand for a flee command.
func Flee() combat.Command { return combat.Command{Kind: combat.CmdFlee} }

// UseAbility is shorthand for casting the n-th unlocked ability (1-based).
func UseAbility(n int) combat.Command { return combat.Command{Kind: combat.CmdAbility, Index: n} }

// UseItem is shorthand for using the n-th consumable (1-based).
func UseItem(n int) combat.Command { return combat.Command{Kind: combat.CmdItem, Index: n} }

// RecordingDisplay is a combat.Display that keeps every event.
type RecordingDisplay struct {
	Events []combat.Event
}

// Show implements combat.Display.
func (d *RecordingDisplay) Show(e combat.Event) {
	d.Events = append(d.Events, e)
}

// Texts returns the text of every event of kind.
func (d *RecordingDisplay) Texts(kind combat.EventKind) []string {
	var out []string
	for _, e := range d.Events {
		if e.Kind == kind {
			out = append(out, e.Text)
		}
	}
	return out
}

// Contains reports whether any event text contains substr.
func (d *RecordingDisplay) Contains(substr string) bool {
	for _, e := range d.Events {
		if strings.Contains(e.Text, substr) {
			return true
		}
	}
	return false
}
