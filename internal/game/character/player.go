package character

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/dungeon/internal/game/condition"
	"github.com/cory-johannsen/dungeon/internal/game/inventory"
)

const (
	// MaxComboPoints caps the Rogue's combo counter.
	MaxComboPoints = 5

	// XPPerLevel times the current level is the experience needed for the next level.
	XPPerLevel = 100

	baseCarryWeight     = 50.0
	packMuleCarryWeight = 25.0
	backpackSlots       = 20
)

// Level-up growth.
const (
	growthMaxHP   = 10
	growthAttack  = 2
	growthDefense = 1
	growthMaxMana = 5
)

// Minion is a summoned ally that attacks after the player each turn.
type Minion struct {
	Name      string
	Attack    int
	TurnsLeft int
}

// CombatFlags are one-shot flags scoped to a single combat.
type CombatFlags struct {
	ManaShieldUsed   bool
	ManaShieldActive bool
	ShadowmeldUsed   bool
	ShadowmeldActive bool
	AegisUsed        bool
	ExtraFleeUsed    bool
}

// RunFlags are one-shot flags scoped to a whole run.
type RunFlags struct {
	PhoenixUsed bool
}

// Player is the player character. It is the only combatant whose state
// outlives a single combat.
type Player struct {
	Name    string
	Class   Class
	Level   int
	XP      int
	HP      int
	MaxHP   int
	Attack  int
	Defense int
	Mana    int
	MaxMana int
	Gold    int

	Status    *condition.ActiveSet
	Equipment *inventory.Equipment
	Backpack  *inventory.Backpack

	ComboPoints int
	// Corpses are fallen enemies available to Raise Dead.
	Corpses int
	Minion  *Minion

	Combat CombatFlags
	Run    RunFlags
}

// NewPlayer builds a player of class at level, applying level-up growth for
// every level above 1.
//
// Precondition: name must be non-empty; level >= 1.
// Postcondition: Returns a Player at full HP and mana, or a non-nil error.
func NewPlayer(name string, class Class, level int) (*Player, error) {
	if name == "" {
		return nil, errors.New("character name must not be empty")
	}
	base, ok := class.Stats()
	if !ok {
		return nil, fmt.Errorf("character: unknown class %q", class)
	}
	if level < 1 {
		return nil, fmt.Errorf("character: level must be >= 1, got %d", level)
	}
	p := &Player{
		Name:      name,
		Class:     class,
		Level:     1,
		MaxHP:     base.MaxHP,
		Attack:    base.Attack,
		Defense:   base.Defense,
		MaxMana:   base.MaxMana,
		Status:    condition.NewActiveSet(),
		Equipment: inventory.NewEquipment(),
		Backpack:  inventory.NewBackpack(backpackSlots, baseCarryWeight),
	}
	for p.Level < level {
		p.levelUp()
	}
	p.HP = p.MaxHP
	p.Mana = p.MaxMana
	return p, nil
}

// DisplayName implements condition.Target.
func (p *Player) DisplayName() string { return p.Name }

// Effects implements condition.Target.
func (p *Player) Effects() *condition.ActiveSet { return p.Status }

// Immune implements condition.Target. Players have no innate immunities.
func (p *Player) Immune(condition.Kind) bool { return false }

// IsAlive reports whether HP is above zero.
func (p *Player) IsAlive() bool { return p.HP > 0 }

// TakeDamage lowers HP by amount, clamped at 0, and returns the HP actually lost.
//
// Postcondition: 0 <= HP <= MaxHP.
func (p *Player) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	lost := min(amount, p.HP)
	p.HP -= lost
	return lost
}

// Heal raises HP by amount, clamped at MaxHP, and returns the HP actually gained.
//
// Postcondition: 0 <= HP <= MaxHP.
func (p *Player) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	gained := min(amount, p.MaxHP-p.HP)
	p.HP += gained
	return gained
}

// SpendMana deducts cost if affordable.
//
// Postcondition: returns false and leaves Mana unchanged when Mana < cost.
func (p *Player) SpendMana(cost int) bool {
	if cost < 0 || p.Mana < cost {
		return false
	}
	p.Mana -= cost
	return true
}

// RestoreMana raises Mana by amount, clamped at MaxMana, and returns the mana gained.
func (p *Player) RestoreMana(amount int) int {
	if amount <= 0 {
		return 0
	}
	gained := min(amount, p.MaxMana-p.Mana)
	p.Mana += gained
	return gained
}

// HPPercent returns HP as a fraction of MaxHP in [0, 1].
func (p *Player) HPPercent() float64 {
	if p.MaxHP <= 0 {
		return 0
	}
	return float64(p.HP) / float64(p.MaxHP)
}

// AttackPower is base attack plus equipment, scaled by active status effects.
func (p *Player) AttackPower() int {
	return condition.ScaleAttack(p.Attack+p.Equipment.AttackBonus(), p.Status)
}

// DefensePower is base defense plus equipment, scaled by active status effects.
func (p *Player) DefensePower() int {
	return condition.ScaleDefense(p.Defense+p.Equipment.DefenseBonus(), p.Status)
}

// AddCombo grants n combo points up to MaxComboPoints and returns the new total.
//
// Postcondition: 0 <= ComboPoints <= MaxComboPoints.
func (p *Player) AddCombo(n int) int {
	p.ComboPoints = max(0, min(MaxComboPoints, p.ComboPoints+n))
	return p.ComboPoints
}

// ConsumeCombo returns the current combo points and resets them to zero.
func (p *Player) ConsumeCombo() int {
	n := p.ComboPoints
	p.ComboPoints = 0
	return n
}

// AddXP grants experience and applies every level-up it pays for. Leftover
// experience carries over. Returns the number of levels gained.
func (p *Player) AddXP(amount int) int {
	if amount <= 0 {
		return 0
	}
	p.XP += amount
	gained := 0
	for p.XP >= XPPerLevel*p.Level {
		p.XP -= XPPerLevel * p.Level
		p.levelUp()
		gained++
	}
	return gained
}

// XPToNext returns the experience still needed for the next level.
func (p *Player) XPToNext() int {
	return XPPerLevel*p.Level - p.XP
}

func (p *Player) levelUp() {
	p.Level++
	p.MaxHP += growthMaxHP
	p.HP += growthMaxHP
	p.Attack += growthAttack
	p.Defense += growthDefense
	p.MaxMana += growthMaxMana
	p.Mana += growthMaxMana
}

// Equip puts def in its slot, returning the item it replaced, and refreshes
// carry capacity for passives such as pack_mule.
//
// Precondition: def is non-nil.
func (p *Player) Equip(def *inventory.ItemDef) (*inventory.ItemDef, error) {
	prev, err := p.Equipment.Equip(def)
	if err != nil {
		return nil, err
	}
	p.Backpack.MaxWeight = p.CarryCapacity()
	return prev, nil
}

// HasPassive reports whether any equipped item grants passive.
func (p *Player) HasPassive(passive inventory.Passive) bool {
	return p.Equipment.HasPassive(passive)
}

// CarryCapacity is the backpack weight limit, raised by pack_mule.
func (p *Player) CarryCapacity() float64 {
	if p.HasPassive(inventory.PackMule) {
		return baseCarryWeight + packMuleCarryWeight
	}
	return baseCarryWeight
}
