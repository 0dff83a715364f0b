// Package command provides the console command registry, parser, and
// built-in combat command definitions.
package command

import "github.com/cory-johannsen/dungeon/internal/game/combat"

// Categories for organizing commands.
const (
	CategoryCombat = "combat"
	CategorySystem = "system"
)

// Handler identifiers mapping commands to engine actions or local handlers.
const (
	HandlerAttack  = "attack"
	HandlerAbility = "ability"
	HandlerFlee    = "flee"
	HandlerItem    = "item"
	HandlerCancel  = "cancel"
	HandlerHelp    = "help"
)

// Command defines a player-invocable command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Aliases are alternate names for this command.
	Aliases []string
	// Help is the short help text displayed to players.
	Help string
	// Category groups the command (combat, system).
	Category string
	// Handler maps to the engine action or a local handler.
	Handler string
	// Indexed commands accept an optional 1-based selection argument.
	Indexed bool
}

// Kind returns the engine action the command triggers. Local commands
// such as help map to combat.CmdInvalid.
func (c *Command) Kind() combat.CommandKind {
	switch c.Handler {
	case HandlerAttack:
		return combat.CmdAttack
	case HandlerAbility:
		return combat.CmdAbility
	case HandlerFlee:
		return combat.CmdFlee
	case HandlerItem:
		return combat.CmdItem
	case HandlerCancel:
		return combat.CmdCancel
	default:
		return combat.CmdInvalid
	}
}

// BuiltinCommands returns all built-in combat console commands.
func BuiltinCommands() []Command {
	return []Command{
		{Name: "attack", Aliases: []string{"a"}, Help: "Strike the enemy with your weapon", Category: CategoryCombat, Handler: HandlerAttack},
		{Name: "ability", Aliases: []string{"s", "skill"}, Help: "Use an ability (ability [n]; no number opens the menu)", Category: CategoryCombat, Handler: HandlerAbility, Indexed: true},
		{Name: "flee", Aliases: []string{"f", "run"}, Help: "Attempt to escape the fight", Category: CategoryCombat, Handler: HandlerFlee},
		{Name: "item", Aliases: []string{"i"}, Help: "Use a consumable (item [n]; no number opens the menu)", Category: CategoryCombat, Handler: HandlerItem, Indexed: true},
		{Name: "cancel", Aliases: []string{"c"}, Help: "Back out without acting", Category: CategoryCombat, Handler: HandlerCancel},

		{Name: "help", Aliases: []string{"?", "h"}, Help: "Show available commands", Category: CategorySystem, Handler: HandlerHelp},
	}
}
