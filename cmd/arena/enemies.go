package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/dungeon/internal/game/session"
)

var enemiesCmd = &cobra.Command{
	Use:   "enemies",
	Short: "List the enemy templates in the content directory",
	RunE:  runEnemies,
}

func runEnemies(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	content, err := session.LoadContent(cfg.Content)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tName\tLevel\tHP\tAttack\tDefense\tTraits")
	for _, id := range content.EnemyIDs() {
		t, err := content.Enemy(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%s\n", t.ID, t.Name, t.Level, t.MaxHP, t.Attack, t.Defense, traits(t.Boss, t.Elite != nil, t.Undead, len(t.Phases)))
	}
	return w.Flush()
}

func traits(boss, elite, undead bool, phases int) string {
	var out []string
	if boss {
		out = append(out, "boss")
	}
	if elite {
		out = append(out, "elite")
	}
	if undead {
		out = append(out, "undead")
	}
	if phases > 0 {
		out = append(out, fmt.Sprintf("%d phases", phases))
	}
	return strings.Join(out, ", ")
}
