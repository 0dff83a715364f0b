// Package main is the entry point for the arena, a terminal front end that
// pits a configured character against enemies from the content directory.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "arena",
	Short: "Turn-based dungeon combat in the terminal",
	Long: `Arena loads enemy and item content from YAML, builds a character from
the configuration, and resolves fights one command at a time.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "configs/dev.yaml", "path to configuration file; empty uses defaults only")
	rootCmd.AddCommand(fightCmd)
	rootCmd.AddCommand(abilitiesCmd)
	rootCmd.AddCommand(enemiesCmd)
}
