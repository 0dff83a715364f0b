package condition

import (
	"fmt"

	"go.uber.org/zap"
)

// Target is a combatant that can carry status effects.
type Target interface {
	DisplayName() string
	Effects() *ActiveSet
	// Immune reports whether the target ignores kind entirely.
	Immune(kind Kind) bool
	// TakeDamage lowers HP by amount (clamped at 0) and returns HP actually lost.
	TakeDamage(amount int) int
	// Heal raises HP by amount (clamped at MaxHP) and returns HP actually gained.
	Heal(amount int) int
}

// TurnReport summarises what ProcessTurnStart did to one target.
type TurnReport struct {
	// Skipped is true when a Stun or Freeze denied the target its action this turn.
	Skipped   bool
	SkippedBy Kind
	Damage    int
	Healed    int
	Expired   []Kind
	Messages  []string
}

// Manager applies, queries, and ticks status effects.
type Manager struct {
	logger *zap.Logger
}

// NewManager creates a Manager. A nil logger is replaced by a no-op logger.
func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{logger: logger}
}

// Apply puts kind on t for turns of t's turns, overwriting any existing duration.
//
// Postcondition: Returns false without mutation when t is nil, turns <= 0, or t is
// immune to kind; otherwise HasEffect(t, kind) is true.
func (m *Manager) Apply(t Target, kind Kind, turns int) bool {
	if t == nil || turns <= 0 {
		return false
	}
	if _, ok := defs[kind]; !ok {
		return false
	}
	if t.Immune(kind) {
		m.logger.Debug("effect resisted",
			zap.String("target", t.DisplayName()),
			zap.Stringer("effect", kind),
		)
		return false
	}
	t.Effects().Apply(kind, turns)
	m.logger.Debug("effect applied",
		zap.String("target", t.DisplayName()),
		zap.Stringer("effect", kind),
		zap.Int("turns", turns),
	)
	return true
}

// HasEffect reports whether t currently carries kind. A nil target has no effects.
func (m *Manager) HasEffect(t Target, kind Kind) bool {
	if t == nil {
		return false
	}
	return t.Effects().Has(kind)
}

// ProcessTurnStart runs the start-of-turn lifecycle for t:
//  1. decide whether a Stun/Freeze denies the action this turn;
//  2. apply damage-over-time and regeneration;
//  3. decrement every duration by one and purge expired effects.
//
// A target that skips its action still ticks, so an effect applied for N turns
// denies exactly N actions.
//
// Postcondition: no effect on t has TurnsRemaining <= 0.
func (m *Manager) ProcessTurnStart(t Target) TurnReport {
	var rep TurnReport
	if t == nil {
		return rep
	}
	set := t.Effects()
	rep.SkippedBy, rep.Skipped = SkipsTurn(set)

	for _, ae := range set.All() {
		d := defs[ae.Kind]
		if d.TickDamage > 0 {
			lost := t.TakeDamage(d.TickDamage)
			rep.Damage += lost
			if lost > 0 {
				rep.Messages = append(rep.Messages,
					fmt.Sprintf("%s takes %d %s damage.", t.DisplayName(), lost, d.ID))
			} else {
				rep.Messages = append(rep.Messages,
					fmt.Sprintf("%s is unharmed by %s.", t.DisplayName(), d.ID))
			}
		}
		if d.TickHeal > 0 {
			gained := t.Heal(d.TickHeal)
			rep.Healed += gained
			if gained > 0 {
				rep.Messages = append(rep.Messages,
					fmt.Sprintf("%s regenerates %d HP.", t.DisplayName(), gained))
			}
		}
	}

	rep.Expired = set.Tick()
	for _, k := range rep.Expired {
		rep.Messages = append(rep.Messages, fmt.Sprintf("%s is no longer affected by %s.", t.DisplayName(), k))
	}

	m.logger.Debug("turn start effects",
		zap.String("target", t.DisplayName()),
		zap.Bool("skipped", rep.Skipped),
		zap.Int("damage", rep.Damage),
		zap.Int("healed", rep.Healed),
		zap.Int("expired", len(rep.Expired)),
	)
	return rep
}
