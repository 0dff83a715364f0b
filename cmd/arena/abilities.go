package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/dungeon/internal/game/ability"
	"github.com/cory-johannsen/dungeon/internal/game/character"
)

var abilitiesCmd = &cobra.Command{
	Use:   "abilities [class...]",
	Short: "List the ability table of one or more classes",
	Long:  `List each class's abilities with unlock level, mana cost and cooldown. With no arguments every class is shown.`,
	RunE:  runAbilities,
}

func runAbilities(cmd *cobra.Command, args []string) error {
	classes := character.Classes()
	if len(args) > 0 {
		classes = nil
		for _, a := range args {
			c, err := character.ParseClass(a)
			if err != nil {
				return err
			}
			classes = append(classes, c)
		}
	}

	catalog := ability.DefaultCatalog()
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	for i, c := range classes {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s\n", c.Title())
		fmt.Fprintln(w, "  #\tAbility\tLevel\tMana\tCooldown\tEffect")
		for j, a := range catalog.ForClass(c) {
			fmt.Fprintf(w, "  %d\t%s\t%d\t%d\t%d\t%s\n", j+1, a.Name, a.UnlockLevel, a.ManaCost, a.Cooldown, a.Description)
		}
	}
	return w.Flush()
}
