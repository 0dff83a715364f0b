// Package config provides Viper-based configuration loading for the arena.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/cory-johannsen/dungeon/internal/game/character"
	"github.com/cory-johannsen/dungeon/internal/game/combat"
	"github.com/cory-johannsen/dungeon/internal/game/difficulty"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output is "stderr", "stdout" or a file path. Narration owns stdout
	// during a fight, so the default is stderr.
	Output string `mapstructure:"output"`
}

// PlayerConfig describes the character entering the arena.
type PlayerConfig struct {
	Name  string `mapstructure:"name"`
	Class string `mapstructure:"class"`
	Level int    `mapstructure:"level"`
	// Items are item ids placed in the backpack before the fight.
	// Equippable items are equipped instead.
	Items []string `mapstructure:"items"`
}

// GameConfig holds run-level settings.
type GameConfig struct {
	// Difficulty is one of casual, normal, hard.
	Difficulty string `mapstructure:"difficulty"`
	// Seed drives a reproducible fight. Zero selects a cryptographic source.
	Seed int64 `mapstructure:"seed"`
	// Floor is the dungeon depth used for loot rolls.
	Floor int `mapstructure:"floor"`
	// Enemy is the default enemy template id.
	Enemy  string       `mapstructure:"enemy"`
	Player PlayerConfig `mapstructure:"player"`
}

// DifficultyLevel parses Difficulty.
func (g GameConfig) DifficultyLevel() (difficulty.Level, error) {
	return difficulty.ParseLevel(g.Difficulty)
}

// ContentConfig locates the static YAML data.
type ContentConfig struct {
	EnemiesDir string `mapstructure:"enemies_dir"`
	ItemsDir   string `mapstructure:"items_dir"`
}

// CombatConfig sets the engine's tunable constants. Keys absent from the file
// and environment take the combat.DefaultRules values through viper defaults,
// so an explicit zero (crit_chance: 0) is honored. An entirely empty section
// selects the engine defaults.
type CombatConfig struct {
	DodgeScaling       float64 `mapstructure:"dodge_scaling"`
	DodgeCap           float64 `mapstructure:"dodge_cap"`
	CritChance         float64 `mapstructure:"crit_chance"`
	CritMultiplier     float64 `mapstructure:"crit_multiplier"`
	FleeChance         float64 `mapstructure:"flee_chance"`
	EliteAbilityChance int     `mapstructure:"elite_ability_chance"`
	BaseDropChance     float64 `mapstructure:"base_drop_chance"`
}

// Rules converts the section into engine rules, field for field.
func (c CombatConfig) Rules() combat.Rules {
	return combat.Rules{
		DodgeScaling:   c.DodgeScaling,
		DodgeCap:       c.DodgeCap,
		CritChance:     c.CritChance,
		CritMultiplier: c.CritMultiplier,
		FleeChance:     c.FleeChance,
		EliteChance:    c.EliteAbilityChance,
		BaseDropChance: c.BaseDropChance,
	}
}

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Game    GameConfig    `mapstructure:"game"`
	Content ContentConfig `mapstructure:"content"`
	Combat  CombatConfig  `mapstructure:"combat"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateGame(c.Game); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateContent(c.Content); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateCombat(c.Combat); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	if l.Output == "" {
		return errors.New("logging.output must not be empty")
	}
	return nil
}

func validateGame(g GameConfig) error {
	var errs []string
	if _, err := g.DifficultyLevel(); err != nil {
		errs = append(errs, fmt.Sprintf("game.difficulty must be one of [casual, normal, hard], got %q", g.Difficulty))
	}
	if g.Floor < 1 {
		errs = append(errs, fmt.Sprintf("game.floor must be >= 1, got %d", g.Floor))
	}
	if g.Player.Name == "" {
		errs = append(errs, "game.player.name must not be empty")
	}
	if _, err := character.ParseClass(g.Player.Class); err != nil {
		errs = append(errs, fmt.Sprintf("game.player.class %q is not a playable class", g.Player.Class))
	}
	if g.Player.Level < 1 {
		errs = append(errs, fmt.Sprintf("game.player.level must be >= 1, got %d", g.Player.Level))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateContent(c ContentConfig) error {
	if c.EnemiesDir == "" {
		return errors.New("content.enemies_dir must not be empty")
	}
	if c.ItemsDir == "" {
		return errors.New("content.items_dir must not be empty")
	}
	return nil
}

func validateCombat(c CombatConfig) error {
	if c == (CombatConfig{}) {
		return nil
	}
	var errs []string
	for _, f := range []struct {
		key string
		v   float64
	}{
		{"combat.dodge_scaling", c.DodgeScaling},
		{"combat.dodge_cap", c.DodgeCap},
		{"combat.crit_chance", c.CritChance},
		{"combat.flee_chance", c.FleeChance},
		{"combat.base_drop_chance", c.BaseDropChance},
	} {
		if f.v < 0 || f.v > 1 {
			errs = append(errs, fmt.Sprintf("%s must be within [0, 1], got %v", f.key, f.v))
		}
	}
	if c.CritMultiplier < 1 {
		errs = append(errs, fmt.Sprintf("combat.crit_multiplier must be >= 1, got %v", c.CritMultiplier))
	}
	if c.EliteAbilityChance < 0 || c.EliteAbilityChance > 100 {
		errs = append(errs, fmt.Sprintf("combat.elite_ability_chance must be within [0, 100], got %d", c.EliteAbilityChance))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := NewViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromViper(v)
}

// NewViper returns a Viper instance with defaults and DUNGEON_ environment
// overrides applied, ready for a config file or flag bindings.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("DUNGEON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")

	v.SetDefault("game.difficulty", "normal")
	v.SetDefault("game.seed", 0)
	v.SetDefault("game.floor", 1)
	v.SetDefault("game.enemy", "goblin")
	v.SetDefault("game.player.name", "Adventurer")
	v.SetDefault("game.player.class", "warrior")
	v.SetDefault("game.player.level", 1)

	v.SetDefault("content.enemies_dir", "content/enemies")
	v.SetDefault("content.items_dir", "content/items")

	d := combat.DefaultRules()
	v.SetDefault("combat.dodge_scaling", d.DodgeScaling)
	v.SetDefault("combat.dodge_cap", d.DodgeCap)
	v.SetDefault("combat.crit_chance", d.CritChance)
	v.SetDefault("combat.crit_multiplier", d.CritMultiplier)
	v.SetDefault("combat.flee_chance", d.FleeChance)
	v.SetDefault("combat.elite_ability_chance", d.EliteChance)
	v.SetDefault("combat.base_drop_chance", d.BaseDropChance)
}
