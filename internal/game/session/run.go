package session

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dungeon/internal/config"
	"github.com/cory-johannsen/dungeon/internal/game/ability"
	"github.com/cory-johannsen/dungeon/internal/game/character"
	"github.com/cory-johannsen/dungeon/internal/game/combat"
	"github.com/cory-johannsen/dungeon/internal/game/dice"
	"github.com/cory-johannsen/dungeon/internal/game/difficulty"
	"github.com/cory-johannsen/dungeon/internal/game/npc"
	"github.com/cory-johannsen/dungeon/internal/game/passive"
)

// StartingPotionID is the consumable granted per the difficulty's StartingPotions.
const StartingPotionID = "health_potion"

// ErrRunOver is returned by Fight after a permadeath.
var ErrRunOver = errors.New("session: run is over")

// Options configure a new Run.
type Options struct {
	Game  config.GameConfig
	Rules combat.Rules
	// Source drives every roll of the run. Nil selects a seeded source when
	// Game.Seed is set and a crypto source otherwise.
	Source  dice.Source
	Input   combat.Input
	Display combat.Display
	Logger  *zap.Logger
}

// SourceFor returns a replayable source for a non-zero seed, and a crypto
// source otherwise.
func SourceFor(seed int64) dice.Source {
	if seed == 0 {
		return dice.NewCryptoSource()
	}
	return dice.NewSeededSource(seed)
}

// Run is one player's sequence of fights. It is not safe for concurrent use.
type Run struct {
	content   *Content
	settings  difficulty.Settings
	engine    *combat.Engine
	abilities *ability.Manager
	passives  *passive.Processor
	logger    *zap.Logger

	floor   int
	deaths  int
	over    bool
	current *npc.Enemy

	Player *character.Player
	Stats  combat.RunStats
}

// NewRun builds the player described by opts.Game and an engine bound to it.
//
// Precondition: content must be non-nil; opts.Input must be non-nil.
// Postcondition: Returns a Run whose player carries the difficulty's starting
// gold and potions plus the configured items, or a non-nil error.
func NewRun(content *Content, opts Options) (*Run, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	level, err := opts.Game.DifficultyLevel()
	if err != nil {
		return nil, err
	}
	settings, err := difficulty.For(level)
	if err != nil {
		return nil, err
	}
	class, err := character.ParseClass(opts.Game.Player.Class)
	if err != nil {
		return nil, err
	}
	player, err := character.NewPlayer(opts.Game.Player.Name, class, max(1, opts.Game.Player.Level))
	if err != nil {
		return nil, fmt.Errorf("creating player: %w", err)
	}

	r := &Run{
		content:   content,
		settings:  settings,
		abilities: ability.NewManager(ability.DefaultCatalog(), logger),
		passives:  passive.NewProcessor(logger),
		logger:    logger,
		floor:     max(1, opts.Game.Floor),
		Player:    player,
	}
	if err := r.outfit(opts.Game.Player.Items); err != nil {
		return nil, err
	}
	r.passives.ResetRunState(player)

	src := opts.Source
	if src == nil {
		src = SourceFor(opts.Game.Seed)
	}
	r.engine, err = combat.NewEngine(combat.Deps{
		Settings:  &r.settings,
		Source:    src,
		Abilities: r.abilities,
		Input:     opts.Input,
		Display:   opts.Display,
		Passives:  r.passives,
		Pools:     content.Pools(),
		Rules:     opts.Rules,
		Floor:     r.floor,
		Logger:    logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating combat engine: %w", err)
	}

	logger.Info("run started",
		zap.String("player", player.Name),
		zap.String("class", string(class)),
		zap.Int("level", player.Level),
		zap.Stringer("difficulty", level),
		zap.Int("floor", r.floor),
	)
	return r, nil
}

// outfit grants starting gold and potions, then equips or packs each item id.
func (r *Run) outfit(items []string) error {
	p := r.Player
	p.Gold = r.settings.StartingGold
	if r.settings.StartingPotions > 0 {
		potion, err := r.content.Item(StartingPotionID)
		if err != nil {
			r.logger.Warn("no starting potion definition", zap.Error(err))
		} else if _, err := p.Backpack.Add(potion, r.settings.StartingPotions); err != nil {
			return fmt.Errorf("granting starting potions: %w", err)
		}
	}
	for _, id := range items {
		def, err := r.content.Item(id)
		if err != nil {
			return err
		}
		if !def.Equippable() {
			if _, err := p.Backpack.Add(def, 1); err != nil {
				return fmt.Errorf("packing %q: %w", id, err)
			}
			continue
		}
		prev, err := p.Equip(def.Clone())
		if err != nil {
			return fmt.Errorf("equipping %q: %w", id, err)
		}
		if prev != nil {
			if _, err := p.Backpack.Add(prev, 1); err != nil {
				return fmt.Errorf("packing replaced %q: %w", prev.ID, err)
			}
		}
	}
	return nil
}

// Fight spawns enemyID scaled by the difficulty and resolves the combat.
//
// Postcondition: On PlayerDied with permadeath the run is over; otherwise the
// player is revived at full HP and mana and loses half their gold.
func (r *Run) Fight(enemyID string) (combat.Result, *npc.Enemy, error) {
	if r.over {
		return 0, nil, ErrRunOver
	}
	tmpl, err := r.content.Enemy(enemyID)
	if err != nil {
		return 0, nil, err
	}
	enemy := npc.NewEnemy(tmpl, r.settings.EnemyStatMultiplier)
	r.current = enemy
	res := r.engine.RunCombat(r.Player, enemy, &r.Stats)
	r.current = nil
	if res == combat.PlayerDied {
		r.died()
	}
	return res, enemy, nil
}

func (r *Run) died() {
	r.deaths++
	p := r.Player
	if r.settings.Permadeath {
		r.over = true
		r.logger.Info("run ended by permadeath", zap.String("player", p.Name), zap.Int("floor", r.floor))
		return
	}
	lost := p.Gold / 2
	p.Gold -= lost
	p.Heal(p.MaxHP)
	p.RestoreMana(p.MaxMana)
	r.logger.Info("player revived", zap.String("player", p.Name), zap.Int("gold_lost", lost))
}

// Descend moves to the next floor, which raises loot quality and clears
// ability cooldowns.
func (r *Run) Descend() int {
	r.floor++
	r.engine.SetFloor(r.floor)
	r.abilities.ResetCooldowns()
	return r.floor
}

// Current returns the enemy being fought, or nil between fights.
func (r *Run) Current() *npc.Enemy { return r.current }

// Floor returns the current dungeon depth.
func (r *Run) Floor() int { return r.floor }

// Deaths returns how many times the player has fallen this run.
func (r *Run) Deaths() int { return r.deaths }

// Over reports whether the run has ended.
func (r *Run) Over() bool { return r.over }

// Settings returns the difficulty settings of the run.
func (r *Run) Settings() difficulty.Settings { return r.settings }

// Abilities returns the player's ability manager.
func (r *Run) Abilities() *ability.Manager { return r.abilities }

// Events drains narration queued by the engine.
func (r *Run) Events() []combat.Event { return r.engine.Events() }
