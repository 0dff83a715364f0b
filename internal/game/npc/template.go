// Package npc provides enemy stat blocks, scripted behaviours, and live enemy state.
package npc

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/dungeon/internal/game/condition"
)

// DefaultEliteChance is the per-turn chance, out of 100, that an elite uses a special ability.
const DefaultEliteChance = 15

// GoldRange is the inclusive gold reward range for defeating an enemy.
type GoldRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Stats is a validated enemy stat block.
type Stats struct {
	Name    string    `yaml:"name"`
	Level   int       `yaml:"level"`
	MaxHP   int       `yaml:"max_hp"`
	Attack  int       `yaml:"attack"`
	Defense int       `yaml:"defense"`
	XP      int       `yaml:"xp"`
	Gold    GoldRange `yaml:"gold"`

	Boss            bool `yaml:"boss"`
	Undead          bool `yaml:"undead"`
	ImmuneToEffects bool `yaml:"immune_to_effects"`
	StunImmune      bool `yaml:"stun_immune"`

	// DodgeChance and CritChance override the engine defaults when set.
	DodgeChance *float64 `yaml:"dodge_chance"`
	CritChance  *float64 `yaml:"crit_chance"`
}

// Validate checks the stat block invariants.
//
// Postcondition: Returns nil iff Name is non-empty, Level >= 1, MaxHP >= 1,
// Attack >= 0, Defense >= 0, XP >= 0, 0 <= Gold.Min <= Gold.Max and every
// override chance is in [0, 1].
func (s *Stats) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("name must not be empty")
	}
	if s.Level < 1 {
		return fmt.Errorf("%q: level must be >= 1", s.Name)
	}
	if s.MaxHP < 1 {
		return fmt.Errorf("%q: max_hp must be >= 1", s.Name)
	}
	if s.Attack < 0 || s.Defense < 0 || s.XP < 0 {
		return fmt.Errorf("%q: attack, defense and xp must be >= 0", s.Name)
	}
	if s.Gold.Min < 0 || s.Gold.Min > s.Gold.Max {
		return fmt.Errorf("%q: gold range [%d, %d] is invalid", s.Name, s.Gold.Min, s.Gold.Max)
	}
	for label, p := range map[string]*float64{"dodge_chance": s.DodgeChance, "crit_chance": s.CritChance} {
		if p != nil && (*p < 0 || *p > 1) {
			return fmt.Errorf("%q: %s must be in [0, 1], got %f", s.Name, label, *p)
		}
	}
	return nil
}

// Affliction is a status effect an enemy puts on the player.
type Affliction struct {
	Effect condition.Kind `yaml:"effect"`
	Turns  int            `yaml:"turns"`
}

// Behavior holds the scripted per-turn behaviour tags of an enemy.
type Behavior struct {
	// RegenPerTurn is healed at the start of every enemy turn.
	RegenPerTurn int `yaml:"regen_per_turn"`
	// LifestealPct of damage dealt by standard attacks heals the enemy.
	LifestealPct int `yaml:"lifesteal_pct"`
	// PoisonOnHit is the chance in [0, 1] that a landed attack poisons the player.
	PoisonOnHit      float64 `yaml:"poison_on_hit"`
	PoisonOnHitTurns int     `yaml:"poison_on_hit_turns"`
	// OnCombatStart afflictions are applied to the player before the first turn.
	OnCombatStart []Affliction `yaml:"on_combat_start"`
}

// EliteAbility is one entry in an elite's special ability table.
type EliteAbility struct {
	Name    string `yaml:"name"`
	Message string `yaml:"message"`
	// DamageMultiplier scales a standard attack; zero means the ability deals no damage.
	DamageMultiplier float64     `yaml:"damage_multiplier"`
	Afflict          *Affliction `yaml:"afflict"`
	// HealPct heals the elite by this percentage of its MaxHP.
	HealPct int `yaml:"heal_pct"`
}

// EliteTable makes an enemy elite.
type EliteTable struct {
	// Chance out of 100 per turn; zero selects DefaultEliteChance.
	Chance    int            `yaml:"chance"`
	Abilities []EliteAbility `yaml:"abilities"`
}

// PhaseActionKind enumerates what a boss phase does when it triggers.
type PhaseActionKind string

const (
	ActionEnrage     PhaseActionKind = "enrage"
	ActionHeal       PhaseActionKind = "heal"
	ActionSummonAdds PhaseActionKind = "summon_adds"
	ActionAfflict    PhaseActionKind = "afflict"
	ActionFortify    PhaseActionKind = "fortify"
)

// PhaseAction is one effect descriptor of a boss phase.
//
//   - enrage: Amount is the attack bonus percentage.
//   - heal: Amount is the percentage of MaxHP restored.
//   - summon_adds: Amount adds, each dealing Damage per enemy turn.
//   - afflict: Effect for Turns on the player.
//   - fortify: Fortified on the boss for Turns.
type PhaseAction struct {
	Kind   PhaseActionKind `yaml:"kind"`
	Amount int             `yaml:"amount"`
	Damage int             `yaml:"damage"`
	Effect condition.Kind  `yaml:"effect"`
	Turns  int             `yaml:"turns"`
}

// Phase triggers once when the boss HP fraction drops to or below Threshold.
type Phase struct {
	Name      string        `yaml:"name"`
	Threshold float64       `yaml:"threshold"`
	Message   string        `yaml:"message"`
	Actions   []PhaseAction `yaml:"actions"`
}

// Template defines a reusable enemy archetype loaded from YAML.
type Template struct {
	ID          string `yaml:"id"`
	Description string `yaml:"description"`
	Stats       `yaml:",inline"`
	Behavior    Behavior    `yaml:"behavior"`
	Elite       *EliteTable `yaml:"elite"`
	// Phases must be ordered by descending Threshold.
	Phases []Phase `yaml:"phases"`
	// Taunts are flavour lines the enemy may shout at the start of its turn.
	Taunts      []string `yaml:"taunts"`
	TauntChance float64  `yaml:"taunt_chance"`
}

// Validate checks that the template satisfies basic invariants.
//
// Precondition: t must not be nil.
// Postcondition: Returns nil iff all invariants hold; returns an error on the first violation otherwise.
func (t *Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("npc template: id must not be empty")
	}
	if err := t.Stats.Validate(); err != nil {
		return fmt.Errorf("npc template %q: %w", t.ID, err)
	}
	b := t.Behavior
	if b.RegenPerTurn < 0 || b.LifestealPct < 0 || b.LifestealPct > 100 {
		return fmt.Errorf("npc template %q: regen_per_turn must be >= 0 and lifesteal_pct in [0, 100]", t.ID)
	}
	if b.PoisonOnHit < 0 || b.PoisonOnHit > 1 {
		return fmt.Errorf("npc template %q: poison_on_hit must be in [0, 1]", t.ID)
	}
	if b.PoisonOnHit > 0 && b.PoisonOnHitTurns < 1 {
		return fmt.Errorf("npc template %q: poison_on_hit_turns must be >= 1", t.ID)
	}
	for i, a := range b.OnCombatStart {
		if a.Turns < 1 {
			return fmt.Errorf("npc template %q: on_combat_start[%d] turns must be >= 1", t.ID, i)
		}
	}
	if t.Elite != nil {
		if t.Elite.Chance < 0 || t.Elite.Chance > 100 {
			return fmt.Errorf("npc template %q: elite chance must be in [0, 100]", t.ID)
		}
		if len(t.Elite.Abilities) == 0 {
			return fmt.Errorf("npc template %q: elite must list at least one ability", t.ID)
		}
		for i, a := range t.Elite.Abilities {
			if a.Name == "" {
				return fmt.Errorf("npc template %q: elite ability[%d] must have a name", t.ID, i)
			}
		}
	}
	prev := 1.0
	for i, p := range t.Phases {
		if p.Threshold <= 0 || p.Threshold >= 1 {
			return fmt.Errorf("npc template %q: phase[%d] threshold must be in (0, 1)", t.ID, i)
		}
		if p.Threshold > prev {
			return fmt.Errorf("npc template %q: phases must be ordered by descending threshold", t.ID)
		}
		prev = p.Threshold
		for j, a := range p.Actions {
			if err := a.validate(); err != nil {
				return fmt.Errorf("npc template %q: phase[%d] action[%d]: %w", t.ID, i, j, err)
			}
		}
	}
	if t.TauntChance < 0 || t.TauntChance > 1 {
		return fmt.Errorf("npc template %q: taunt_chance must be in [0, 1]", t.ID)
	}
	return nil
}

func (a PhaseAction) validate() error {
	switch a.Kind {
	case ActionEnrage, ActionHeal:
		if a.Amount <= 0 {
			return fmt.Errorf("%s amount must be > 0", a.Kind)
		}
	case ActionSummonAdds:
		if a.Amount <= 0 || a.Damage < 0 {
			return fmt.Errorf("summon_adds needs amount > 0 and damage >= 0")
		}
	case ActionAfflict:
		if _, ok := condition.Lookup(a.Effect); !ok || a.Turns < 1 {
			return fmt.Errorf("afflict needs a known effect and turns >= 1")
		}
	case ActionFortify:
		if a.Turns < 1 {
			return fmt.Errorf("fortify turns must be >= 1")
		}
	default:
		return fmt.Errorf("unknown action kind %q", a.Kind)
	}
	return nil
}

// LoadTemplateFromBytes parses a single enemy template from raw YAML bytes.
//
// Precondition: data must be valid YAML for a single Template.
// Postcondition: Returns a validated *Template, or an error.
func LoadTemplateFromBytes(data []byte) (*Template, error) {
	var tmpl Template
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("parsing template YAML: %w", err)
	}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// LoadTemplates reads all *.yaml files in dir and returns the parsed templates.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all templates or an error on the first parse or validate
// failure; on error, the partial result is discarded.
func LoadTemplates(dir string) ([]*Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading npc dir %q: %w", dir, err)
	}

	var templates []*Template
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}

		tmpl, err := LoadTemplateFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		templates = append(templates, tmpl)
	}
	return templates, nil
}
