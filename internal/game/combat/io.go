package combat

//go:generate mockgen -destination=mock/mock_combat.go -package=combatmock github.com/cory-johannsen/dungeon/internal/game/combat Display,Input

// CommandKind is the closed vocabulary of player actions.
type CommandKind int

const (
	// CmdInvalid is an unparseable line; the engine re-asks.
	CmdInvalid CommandKind = iota
	CmdAttack
	CmdAbility
	CmdFlee
	CmdItem
	// CmdCancel backs out of a menu; the engine re-asks.
	CmdCancel
)

// String returns the command keyword.
func (k CommandKind) String() string {
	switch k {
	case CmdAttack:
		return "attack"
	case CmdAbility:
		return "ability"
	case CmdFlee:
		return "flee"
	case CmdItem:
		return "item"
	case CmdCancel:
		return "cancel"
	default:
		return "invalid"
	}
}

// Command is one player action.
type Command struct {
	Kind CommandKind
	// Index selects an ability or item, 1-based. Zero opens the menu.
	Index int
}

// Input yields player decisions. Calls block until the player answers.
type Input interface {
	// NextCommand returns the player's next action.
	NextCommand() (Command, error)
	// Choose presents options and returns the 0-based pick.
	// ok is false when the player cancelled.
	Choose(title string, options []string) (index int, ok bool, err error)
}

// Display receives narration. Implementations must not block for long.
type Display interface {
	Show(e Event)
}
