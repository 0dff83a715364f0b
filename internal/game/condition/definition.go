// Package condition implements timed status effects (poison, stun, battle cry, ...)
// and the per-turn lifecycle that applies, ticks, and purges them.
package condition

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind identifies a status effect. The set is closed; every Kind has a Def.
type Kind int

const (
	Poison Kind = iota + 1
	Burn
	Bleed
	Stun
	Freeze
	Slow
	Weakened
	Fortified
	BattleCry
	Regen
)

// Category classifies an effect as harmful or helpful. Cleanse removes debuffs only.
type Category int

const (
	Debuff Category = iota
	Buff
)

// Def is the static definition of a status effect.
type Def struct {
	Kind     Kind
	ID       string
	Name     string
	Category Category
	// TickDamage is dealt to the bearer at the start of each of its turns.
	TickDamage int
	// TickHeal is restored to the bearer at the start of each of its turns.
	TickHeal int
	// AttackPct and DefensePct are percentage modifiers applied while active.
	AttackPct  int
	DefensePct int
	// SkipsTurn means the bearer loses its action while the effect is active.
	SkipsTurn bool
}

var defs = map[Kind]Def{
	Poison:    {Kind: Poison, ID: "poison", Name: "Poison", Category: Debuff, TickDamage: 3},
	Burn:      {Kind: Burn, ID: "burn", Name: "Burn", Category: Debuff, TickDamage: 4},
	Bleed:     {Kind: Bleed, ID: "bleed", Name: "Bleed", Category: Debuff, TickDamage: 5},
	Stun:      {Kind: Stun, ID: "stun", Name: "Stun", Category: Debuff, SkipsTurn: true},
	Freeze:    {Kind: Freeze, ID: "freeze", Name: "Freeze", Category: Debuff, SkipsTurn: true},
	Slow:      {Kind: Slow, ID: "slow", Name: "Slow", Category: Debuff, AttackPct: -20},
	Weakened:  {Kind: Weakened, ID: "weakened", Name: "Weakened", Category: Debuff, AttackPct: -25},
	Fortified: {Kind: Fortified, ID: "fortified", Name: "Fortified", Category: Buff, DefensePct: 50},
	BattleCry: {Kind: BattleCry, ID: "battle_cry", Name: "Battle Cry", Category: Buff, AttackPct: 25},
	Regen:     {Kind: Regen, ID: "regen", Name: "Regen", Category: Buff, TickHeal: 5},
}

// Kinds returns every Kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(defs))
	for k := Poison; k <= Regen; k++ {
		out = append(out, k)
	}
	return out
}

// Lookup returns the Def for k, or (Def{}, false) for an unknown Kind.
func Lookup(k Kind) (Def, bool) {
	d, ok := defs[k]
	return d, ok
}

// String returns the display name of k.
func (k Kind) String() string {
	if d, ok := defs[k]; ok {
		return d.Name
	}
	return "unknown"
}

// IsDebuff reports whether k is classified as a debuff.
func (k Kind) IsDebuff() bool {
	d, ok := defs[k]
	return ok && d.Category == Debuff
}

// IsActionDenial reports whether k makes the bearer lose its turn.
func (k Kind) IsActionDenial() bool {
	d, ok := defs[k]
	return ok && d.SkipsTurn
}

// ParseKind resolves a snake_case effect id such as "battle_cry".
//
// Postcondition: Returns a valid Kind or a non-nil error.
func ParseKind(id string) (Kind, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	for k, d := range defs {
		if d.ID == id {
			return k, nil
		}
	}
	return 0, fmt.Errorf("condition: unknown effect %q", id)
}

// UnmarshalYAML decodes a Kind from its snake_case id.
func (k *Kind) UnmarshalYAML(node *yaml.Node) error {
	var id string
	if err := node.Decode(&id); err != nil {
		return err
	}
	parsed, err := ParseKind(id)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
