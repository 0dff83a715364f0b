package combat

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dungeon/internal/game/ability"
	"github.com/cory-johannsen/dungeon/internal/game/character"
	"github.com/cory-johannsen/dungeon/internal/game/condition"
	"github.com/cory-johannsen/dungeon/internal/game/dice"
	"github.com/cory-johannsen/dungeon/internal/game/difficulty"
	"github.com/cory-johannsen/dungeon/internal/game/loot"
	"github.com/cory-johannsen/dungeon/internal/game/npc"
	"github.com/cory-johannsen/dungeon/internal/game/passive"
)

// Deps are the collaborators of an Engine.
type Deps struct {
	// Settings is required and read-only for the engine's lifetime.
	Settings *difficulty.Settings
	// Source is required; the engine owns it exclusively.
	Source dice.Source
	// Abilities is required and carries the player's cooldowns.
	Abilities *ability.Manager
	// Input is required.
	Input Input

	// Display is optional; events are always queued.
	Display Display
	// Conditions and Passives default to fresh instances.
	Conditions *condition.Manager
	Passives   *passive.Processor
	Pools      loot.Pools
	// Rules is taken as given; the zero value selects DefaultRules.
	Rules  Rules
	Floor  int
	Logger *zap.Logger
}

// Engine resolves combats for one player. It is not safe for concurrent use;
// a player takes part in at most one combat at a time.
type Engine struct {
	settings   difficulty.Settings
	src        dice.Source
	abilities  *ability.Manager
	conditions *condition.Manager
	passives   *passive.Processor
	pools      loot.Pools
	input      Input
	display    Display
	rules      Rules
	floor      int
	logger     *zap.Logger

	events []Event
}

// NewEngine validates deps and builds an Engine.
//
// Postcondition: Returns a non-nil Engine, or an error wrapping
// ErrMissingDependency naming the first nil required collaborator, or
// ErrInvalidRules.
func NewEngine(deps Deps) (*Engine, error) {
	switch {
	case deps.Settings == nil:
		return nil, fmt.Errorf("%w: difficulty settings", ErrMissingDependency)
	case deps.Source == nil:
		return nil, fmt.Errorf("%w: random source", ErrMissingDependency)
	case deps.Abilities == nil:
		return nil, fmt.Errorf("%w: ability manager", ErrMissingDependency)
	case deps.Input == nil:
		return nil, fmt.Errorf("%w: input", ErrMissingDependency)
	}
	rules := deps.Rules.orDefault()
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	conditions := deps.Conditions
	if conditions == nil {
		conditions = condition.NewManager(logger)
	}
	passives := deps.Passives
	if passives == nil {
		passives = passive.NewProcessor(logger)
	}
	return &Engine{
		settings:   *deps.Settings,
		src:        dice.NewLoggedRoller(deps.Source, logger),
		abilities:  deps.Abilities,
		conditions: conditions,
		passives:   passives,
		pools:      deps.Pools,
		input:      deps.Input,
		display:    deps.Display,
		rules:      rules,
		floor:      max(1, deps.Floor),
		logger:     logger,
	}, nil
}

// SetFloor sets the dungeon floor used by subsequent loot rolls.
func (e *Engine) SetFloor(floor int) { e.floor = max(1, floor) }

// Rules returns the effective combat constants.
func (e *Engine) Rules() Rules { return e.rules }

// RunCombat fights enemy until it dies, the player dies, or the player flees.
// stats may be nil.
//
// Precondition: player and enemy must be non-nil with HP > 0.
// Postcondition: 0 <= HP <= MaxHP for both sides; Won implies enemy.HP == 0;
// PlayerDied implies player.HP == 0. The event queue holds only this combat's
// narration; anything left undrained from an earlier combat is dropped.
func (e *Engine) RunCombat(player *character.Player, enemy *npc.Enemy, stats *RunStats) Result {
	if stats == nil {
		stats = &RunStats{}
	}
	e.events = nil
	f := &fight{Engine: e, player: player, enemy: enemy, stats: stats}
	f.begin()
	for !f.over {
		f.turn++
		f.playerTurn()
		if f.over {
			break
		}
		f.enemyTurn()
	}
	f.end()
	return f.result
}

// fight is the state of one RunCombat call. It implements ability.Battle.
type fight struct {
	*Engine
	player *character.Player
	enemy  *npc.Enemy
	stats  *RunStats
	table  *loot.Table

	turn   int
	over   bool
	result Result
}

var _ ability.Battle = (*fight)(nil)

func (f *fight) begin() {
	p, en := f.player, f.enemy
	p.Status.Clear()
	en.Status.Clear()
	f.passives.ProcessPassiveEffects(p, passive.CombatStart, en, 0)

	table, err := loot.NewTable(en.Gold.Min, en.Gold.Max, f.pools, f.settings, f.src, f.logger)
	if err != nil {
		f.logger.Warn("enemy has no valid loot table", zap.String("enemy", en.Name), zap.Error(err))
	} else {
		f.table = table.WithBaseDropChance(f.rules.BaseDropChance)
	}

	f.logger.Info("combat started",
		zap.String("player", p.Name),
		zap.String("enemy", en.Name),
		zap.String("enemy_id", en.ID),
		zap.Bool("elite", en.IsElite),
		zap.Bool("boss", en.IsBoss),
		zap.Int("floor", f.floor),
	)

	switch {
	case en.IsBoss:
		f.say(EventNarration, "%s, a fearsome boss, blocks your path!", en.Name)
	case en.IsElite:
		f.say(EventNarration, "An elite %s appears!", en.Name)
	default:
		f.say(EventNarration, "A %s appears!", en.Name)
	}

	for _, aff := range en.Behavior.OnCombatStart {
		if f.ApplyToPlayer(aff.Effect, aff.Turns) {
			f.say(EventStatus, "%s afflicts you with %s for %d turns!", en.Name, aff.Effect, aff.Turns)
		}
	}
}

func (f *fight) end() {
	f.stats.TurnsTaken += f.turn
	switch f.result {
	case Won:
		f.reward()
	case Fled:
		f.stats.Fled++
		f.say(EventOutcome, "You escaped from %s.", f.enemy.Name)
	case PlayerDied:
		f.say(EventOutcome, "You were slain by %s.", f.enemy.Name)
	}
	f.logger.Info("combat ended",
		zap.String("enemy", f.enemy.Name),
		zap.Stringer("result", f.result),
		zap.Int("turns", f.turn),
		zap.Int("player_hp", f.player.HP),
	)
}

// finish marks the combat over. The first terminal result wins.
func (f *fight) finish(r Result) {
	if f.over {
		return
	}
	f.over = true
	f.result = r
}

func (f *fight) say(kind EventKind, format string, args ...any) {
	f.emit(f.turn, kind, format, args...)
}

// flushPassives moves buffered passive narration into the event queue.
func (f *fight) flushPassives() {
	for _, msg := range f.passives.Drain() {
		f.say(EventPassive, "%s", msg)
	}
}

func (f *fight) Player() *character.Player { return f.player }
func (f *fight) Enemy() *npc.Enemy         { return f.enemy }

func (f *fight) ApplyToEnemy(kind condition.Kind, turns int) bool {
	return f.conditions.Apply(f.enemy, kind, turns)
}

func (f *fight) ApplyToPlayer(kind condition.Kind, turns int) bool {
	return f.conditions.Apply(f.player, kind, turns)
}

func (f *fight) HealPlayer(amount int) int { return f.player.Heal(amount) }

func (f *fight) HealingMultiplier() float64 { return f.settings.HealingMultiplier }

func (f *fight) Say(format string, args ...any) {
	f.say(EventAbility, format, args...)
}
