package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/dungeon/internal/config"
	"github.com/cory-johannsen/dungeon/internal/frontend/console"
	"github.com/cory-johannsen/dungeon/internal/game/combat"
	"github.com/cory-johannsen/dungeon/internal/game/command"
	"github.com/cory-johannsen/dungeon/internal/game/session"
	"github.com/cory-johannsen/dungeon/internal/observability"
)

var (
	noColor bool
	descend bool
)

var fightCmd = &cobra.Command{
	Use:   "fight [enemy...]",
	Short: "Fight one or more enemies in order",
	Long: `Fight the listed enemies one after another, or the configured default
enemy when none are given. Type "help" during a fight for commands.`,
	RunE: runFight,
}

func init() {
	f := fightCmd.Flags()
	f.String("difficulty", "", "casual, normal or hard")
	f.Int64("seed", 0, "seed for a replayable fight; 0 is random")
	f.Int("floor", 0, "dungeon floor used for loot rolls")
	f.String("class", "", "warrior, mage, rogue, paladin, necromancer or ranger")
	f.String("name", "", "character name")
	f.Int("level", 0, "character level")
	f.String("log-level", "", "debug, info, warn or error")
	f.BoolVar(&noColor, "no-color", false, "disable ANSI colors")
	f.BoolVar(&descend, "descend", false, "go one floor deeper after every victory")
}

func runFight(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	content, err := session.LoadContent(cfg.Content)
	if err != nil {
		return err
	}
	enemies := args
	if len(enemies) == 0 {
		enemies = []string{cfg.Game.Enemy}
	}
	for _, id := range enemies {
		if _, err := content.Enemy(id); err != nil {
			return err
		}
	}

	con := console.New(os.Stdin, cmd.OutOrStdout(), command.DefaultRegistry(), logger)
	con.Color = !noColor
	run, err := session.NewRun(content, session.Options{
		Game:    cfg.Game,
		Rules:   cfg.Combat.Rules(),
		Input:   con,
		Display: con,
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	con.Status = func() string { return statusLine(run) }

	return fightAll(run, enemies, con, logger, cfg)
}

func fightAll(run *session.Run, enemies []string, con *console.Console, logger *zap.Logger, cfg config.Config) error {
	p := run.Player
	con.WriteLine(console.Colorf(console.Bold, "%s the %s (level %d) enters the arena on %s.",
		p.Name, p.Class.Title(), p.Level, cfg.Game.Difficulty))
	for _, id := range enemies {
		res, _, err := run.Fight(id)
		if err != nil {
			return err
		}
		logger.Debug("fight finished", zap.String("enemy", id), zap.Stringer("result", res))
		if run.Over() {
			con.WriteLine(console.Colorize(console.BrightRed, "Your run is over."))
			break
		}
		if res == combat.PlayerDied {
			con.WriteLine("You wake up at the arena gate, lighter in the purse.")
		}
		if res == combat.Won && descend {
			con.WriteLine(fmt.Sprintf("You descend to floor %d.", run.Descend()))
		}
	}
	printSummary(con, run)
	return nil
}

func statusLine(run *session.Run) string {
	p := run.Player
	line := fmt.Sprintf("[%s HP %d/%d MP %d/%d", p.Name, p.HP, p.MaxHP, p.Mana, p.MaxMana)
	if p.ComboPoints > 0 {
		line += fmt.Sprintf(" CP %d", p.ComboPoints)
	}
	line += "]"
	if en := run.Current(); en != nil {
		line += fmt.Sprintf(" [%s HP %d/%d, %s", en.Name, en.HP, en.MaxHP, en.HealthDescription())
		if en.AddsAlive > 0 {
			line += fmt.Sprintf(", %d minions", en.AddsAlive)
		}
		line += "]"
	}
	return line
}

func printSummary(w *console.Console, run *session.Run) {
	s := run.Stats
	p := run.Player
	w.WriteLine(console.Colorize(console.Bold, "Run summary"))
	for _, row := range []struct {
		label string
		value int
	}{
		{"Enemies defeated", s.EnemiesDefeated},
		{"Bosses defeated", s.BossesDefeated},
		{"Escapes", s.Fled},
		{"Deaths", run.Deaths()},
		{"Turns taken", s.TurnsTaken},
		{"Damage dealt", s.DamageDealt},
		{"Damage taken", s.DamageTaken},
		{"XP earned", s.XPEarned},
		{"Gold collected", s.GoldCollected},
		{"Items found", s.ItemsFound},
		{"Final level", p.Level},
		{"Gold", p.Gold},
	} {
		w.WriteLine(fmt.Sprintf("  %-18s %d", row.label, row.value))
	}
}
