package npc

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/cory-johannsen/dungeon/internal/game/condition"
	"github.com/cory-johannsen/dungeon/internal/game/dice"
)

// Enemy is a live enemy for the duration of one combat.
type Enemy struct {
	// ID uniquely identifies this runtime instance.
	ID string
	// TemplateID is the source template's ID; empty for enemies built from raw stats.
	TemplateID string
	Name       string
	Level      int
	HP         int
	MaxHP      int
	Attack     int
	Defense    int
	XP         int
	Gold       GoldRange

	IsElite         bool
	IsBoss          bool
	IsUndead        bool
	ImmuneToEffects bool
	StunImmune      bool
	DodgeChance     *float64
	CritChance      *float64

	Behavior    Behavior
	Elite       EliteTable
	Phases      []Phase
	Taunts      []string
	TauntChance float64

	// EnragePct is a cumulative attack bonus from enrage phases.
	EnragePct int
	// AddsAlive counts summoned adds; the enemy cannot be damaged while any live.
	AddsAlive int
	AddDamage int

	Status *condition.ActiveSet

	phaseFired []bool
}

// New is the plain data constructor. It performs no validation and no scaling.
func New(id string, s Stats) *Enemy {
	return &Enemy{
		ID:              id,
		Name:            s.Name,
		Level:           s.Level,
		HP:              s.MaxHP,
		MaxHP:           s.MaxHP,
		Attack:          s.Attack,
		Defense:         s.Defense,
		XP:              s.XP,
		Gold:            s.Gold,
		IsBoss:          s.Boss,
		IsUndead:        s.Undead,
		ImmuneToEffects: s.ImmuneToEffects,
		StunImmune:      s.StunImmune,
		DodgeChance:     s.DodgeChance,
		CritChance:      s.CritChance,
		Status:          condition.NewActiveSet(),
	}
}

// FromStats validates s and builds an enemy with a fresh ID.
//
// Postcondition: Returns an enemy at full HP, or a non-nil error if s is invalid.
func FromStats(s Stats) (*Enemy, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("npc: %w", err)
	}
	return New(uuid.New().String(), s), nil
}

// NewEnemy creates a live enemy from a template. HP, attack and defense are
// scaled once by statMultiplier here and never again.
//
// Precondition: tmpl must be non-nil and valid; statMultiplier > 0.
// Postcondition: HP == MaxHP >= 1.
func NewEnemy(tmpl *Template, statMultiplier float64) *Enemy {
	s := tmpl.Stats
	s.MaxHP = max(1, scaleStat(s.MaxHP, statMultiplier))
	s.Attack = scaleStat(s.Attack, statMultiplier)
	s.Defense = scaleStat(s.Defense, statMultiplier)

	e := New(uuid.New().String(), s)
	e.TemplateID = tmpl.ID
	e.Behavior = tmpl.Behavior
	e.Phases = tmpl.Phases
	e.phaseFired = make([]bool, len(tmpl.Phases))
	e.Taunts = tmpl.Taunts
	e.TauntChance = tmpl.TauntChance
	if tmpl.Elite != nil {
		e.IsElite = true
		e.Elite = *tmpl.Elite
		if e.Elite.Chance == 0 {
			e.Elite.Chance = DefaultEliteChance
		}
	}
	return e
}

func scaleStat(v int, m float64) int {
	return int(math.Round(float64(v) * m))
}

// DisplayName implements condition.Target.
func (e *Enemy) DisplayName() string { return e.Name }

// Effects implements condition.Target.
func (e *Enemy) Effects() *condition.ActiveSet { return e.Status }

// Immune implements condition.Target.
func (e *Enemy) Immune(kind condition.Kind) bool {
	if e.ImmuneToEffects && kind.IsDebuff() {
		return true
	}
	return e.StunImmune && kind.IsActionDenial()
}

// TakeDamage lowers HP by amount, clamped at 0, and returns the HP actually lost.
// While adds are alive the enemy loses nothing.
//
// Postcondition: 0 <= HP <= MaxHP.
func (e *Enemy) TakeDamage(amount int) int {
	if amount <= 0 || e.DamageImmune() {
		return 0
	}
	lost := min(amount, e.HP)
	e.HP -= lost
	return lost
}

// Heal raises HP by amount, clamped at MaxHP, and returns the HP actually gained.
func (e *Enemy) Heal(amount int) int {
	if amount <= 0 || e.HP <= 0 {
		return 0
	}
	gained := min(amount, e.MaxHP-e.HP)
	e.HP += gained
	return gained
}

// IsDead reports whether the enemy has zero hit points.
func (e *Enemy) IsDead() bool {
	return e.HP <= 0
}

// HPPercent returns HP as a fraction of MaxHP in [0, 1].
func (e *Enemy) HPPercent() float64 {
	if e.MaxHP <= 0 {
		return 0
	}
	return float64(e.HP) / float64(e.MaxHP)
}

// AttackPower applies enrage and active status effects to the base attack.
func (e *Enemy) AttackPower() int {
	base := scaleStat(e.Attack, float64(100+e.EnragePct)/100)
	return condition.ScaleAttack(base, e.Status)
}

// DefensePower applies active status effects to the base defense.
func (e *Enemy) DefensePower() int {
	return condition.ScaleDefense(e.Defense, e.Status)
}

// DamageImmune reports whether summoned adds are shielding the enemy.
func (e *Enemy) DamageImmune() bool { return e.AddsAlive > 0 }

// SummonAdds replaces the current adds with count adds dealing damage each.
func (e *Enemy) SummonAdds(count, damage int) {
	e.AddsAlive = max(0, count)
	e.AddDamage = max(0, damage)
}

// KillAdd destroys one add. Returns false when none were alive.
func (e *Enemy) KillAdd() bool {
	if e.AddsAlive == 0 {
		return false
	}
	e.AddsAlive--
	return true
}

// TriggeredPhases returns every phase whose threshold the current HP has
// reached and that has not fired before, marking each as fired. A phase
// fires at most once per enemy, even if the enemy heals back above it.
func (e *Enemy) TriggeredPhases() []Phase {
	if len(e.phaseFired) != len(e.Phases) {
		e.phaseFired = make([]bool, len(e.Phases))
	}
	pct := e.HPPercent()
	var out []Phase
	for i, p := range e.Phases {
		if e.phaseFired[i] || pct > p.Threshold {
			continue
		}
		e.phaseFired[i] = true
		out = append(out, p)
	}
	return out
}

// PhaseFired reports whether phase i has triggered.
func (e *Enemy) PhaseFired(i int) bool {
	return i >= 0 && i < len(e.phaseFired) && e.phaseFired[i]
}

// TryTaunt rolls TauntChance and picks a taunt line.
//
// Postcondition: Returns ("", false) without consuming randomness when the
// enemy has no taunts.
func (e *Enemy) TryTaunt(src dice.Source) (string, bool) {
	if len(e.Taunts) == 0 || e.TauntChance <= 0 {
		return "", false
	}
	if !dice.Chance(src, e.TauntChance) {
		return "", false
	}
	return e.Taunts[dice.Pick(src, len(e.Taunts))], true
}

// HealthDescription returns a visible health state string.
//
// Postcondition: Returns a non-empty string.
func (e *Enemy) HealthDescription() string {
	if e.HP <= 0 {
		return "dead"
	}
	pct := e.HPPercent()
	switch {
	case pct >= 1.0:
		return "unharmed"
	case pct >= 0.85:
		return "barely scratched"
	case pct >= 0.60:
		return "lightly wounded"
	case pct >= 0.40:
		return "moderately wounded"
	case pct >= 0.20:
		return "heavily wounded"
	default:
		return "critically wounded"
	}
}
