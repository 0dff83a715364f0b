package ability

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/dungeon/internal/game/character"
	"github.com/cory-johannsen/dungeon/internal/game/inventory"
)

// Result is the outcome of UseAbility. Failures are normal gameplay branches.
type Result int

const (
	Success Result = iota
	InsufficientMana
	OnCooldown
	NotUnlocked
	ConditionNotMet
)

func (r Result) String() string {
	switch r {
	case Success:
		return "success"
	case InsufficientMana:
		return "insufficient mana"
	case OnCooldown:
		return "on cooldown"
	case NotUnlocked:
		return "not unlocked"
	case ConditionNotMet:
		return "condition not met"
	}
	return "unknown"
}

// Manager tracks one player's ability cooldowns and runs casts.
// Cooldowns survive across combats and are cleared by ResetCooldowns at floor
// and new-game boundaries.
type Manager struct {
	catalog   *Catalog
	cooldowns map[Type]int
	logger    *zap.Logger
}

// NewManager creates a Manager over catalog. A nil logger is replaced by a no-op logger.
//
// Precondition: catalog must be non-nil.
func NewManager(catalog *Catalog, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{catalog: catalog, cooldowns: make(map[Type]int), logger: logger}
}

// Catalog returns the catalog the manager casts from.
func (m *Manager) Catalog() *Catalog { return m.catalog }

// GetUnlockedAbilities returns the player's class abilities at or below its
// level, ordered by unlock level.
func (m *Manager) GetUnlockedAbilities(p *character.Player) []*Ability {
	var out []*Ability
	for _, a := range m.catalog.ForClass(p.Class) {
		if a.UnlockLevel <= p.Level {
			out = append(out, a)
		}
	}
	return out
}

// GetAvailableAbilities returns the unlocked abilities that are off cooldown
// and affordable.
func (m *Manager) GetAvailableAbilities(p *character.Player) []*Ability {
	var out []*Ability
	for _, a := range m.GetUnlockedAbilities(p) {
		if m.cooldowns[a.Type] == 0 && p.Mana >= a.ManaCost {
			out = append(out, a)
		}
	}
	return out
}

// Check reports whether p could cast t right now, without side effects.
// Checks run in order: unlocked, cooldown, mana.
func (m *Manager) Check(p *character.Player, t Type) Result {
	a, err := m.catalog.Lookup(t)
	if err != nil || a.Class != p.Class || a.UnlockLevel > p.Level {
		return NotUnlocked
	}
	if m.cooldowns[t] > 0 {
		return OnCooldown
	}
	if p.Mana < a.ManaCost {
		return InsufficientMana
	}
	return Success
}

// UseAbility casts t for the battle's player.
//
// On Success mana is deducted, the cooldown is set and the effect has run.
// Every other Result leaves the player and cooldowns exactly as they were: an
// effect that fails its own precondition after mana was spent refunds it.
func (m *Manager) UseAbility(b Battle, t Type) Result {
	p := b.Player()
	if r := m.Check(p, t); r != Success {
		m.logger.Debug("ability rejected", zap.Stringer("ability", t), zap.Stringer("result", r))
		return r
	}
	a, _ := m.catalog.Lookup(t)
	if (t == ManaShield && p.Combat.ManaShieldUsed) || (t == Shadowmeld && p.Combat.ShadowmeldUsed) {
		m.logger.Debug("ability already used this combat", zap.Stringer("ability", t))
		return ConditionNotMet
	}

	p.SpendMana(a.ManaCost)
	b.Say("You use %s!", a.Name)
	if !a.effect(b, a) {
		p.RestoreMana(a.ManaCost)
		m.logger.Debug("ability precondition failed, mana refunded", zap.Stringer("ability", t))
		return ConditionNotMet
	}

	cd := a.Cooldown
	if p.HasPassive(inventory.Chronoband) {
		cd = max(1, cd-1)
	}
	m.PutOnCooldown(t, cd)
	m.logger.Debug("ability cast",
		zap.Stringer("ability", t),
		zap.Int("mana_left", p.Mana),
		zap.Int("cooldown", cd),
	)
	return Success
}

// PutOnCooldown sets the remaining cooldown of t. Negative turns clamp to 0.
func (m *Manager) PutOnCooldown(t Type, turns int) {
	if turns <= 0 {
		delete(m.cooldowns, t)
		return
	}
	m.cooldowns[t] = turns
}

// Cooldown returns the remaining turns before t can be cast again.
func (m *Manager) Cooldown(t Type) int {
	return m.cooldowns[t]
}

// TickCooldowns decrements every non-zero cooldown by one.
//
// Postcondition: every cooldown is >= 0 and no greater than before.
func (m *Manager) TickCooldowns() {
	for t, turns := range m.cooldowns {
		if turns <= 1 {
			delete(m.cooldowns, t)
			continue
		}
		m.cooldowns[t] = turns - 1
	}
}

// ResetCooldowns clears every cooldown.
func (m *Manager) ResetCooldowns() {
	clear(m.cooldowns)
}
