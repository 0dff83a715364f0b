package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cory-johannsen/dungeon/internal/config"
)

// flagKeys maps command flags onto configuration keys. Flags override the
// file and the environment only when set explicitly.
var flagKeys = map[string]string{
	"difficulty": "game.difficulty",
	"seed":       "game.seed",
	"floor":      "game.floor",
	"class":      "game.player.class",
	"name":       "game.player.name",
	"level":      "game.player.level",
	"log-level":  "logging.level",
}

// loadConfig reads the configuration file, environment and flags of cmd.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	v := config.NewViper()
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return config.Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}
	if err := bindFlags(v, cmd); err != nil {
		return config.Config{}, err
	}
	return config.LoadFromViper(v)
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag %q: %w", name, err)
		}
	}
	return nil
}
