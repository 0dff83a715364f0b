package condition

import "sort"

// ActiveEffect is one applied effect and the number of the bearer's turns it has left.
type ActiveEffect struct {
	Kind           Kind
	TurnsRemaining int
}

// ActiveSet tracks all effects currently applied to one combatant.
// It is not safe for concurrent use; the caller must serialise access.
//
// Invariant: every stored TurnsRemaining is > 0.
type ActiveSet struct {
	effects map[Kind]int
}

// NewActiveSet creates an empty ActiveSet.
func NewActiveSet() *ActiveSet {
	return &ActiveSet{effects: make(map[Kind]int)}
}

// Apply adds an effect or overwrites the remaining turns of an existing one.
// Magnitudes never stack; re-applying only refreshes the duration.
//
// Postcondition: if turns > 0, Turns(kind) == turns; otherwise the set is unchanged.
func (s *ActiveSet) Apply(kind Kind, turns int) {
	if turns <= 0 {
		return
	}
	if _, ok := defs[kind]; !ok {
		return
	}
	s.effects[kind] = turns
}

// Remove deletes kind from the set. Removing an absent effect is a no-op.
func (s *ActiveSet) Remove(kind Kind) {
	delete(s.effects, kind)
}

// RemoveDebuffs strips every debuff and returns what was removed, in Kind order.
// Buffs are kept.
func (s *ActiveSet) RemoveDebuffs() []Kind {
	var removed []Kind
	for k := range s.effects {
		if k.IsDebuff() {
			removed = append(removed, k)
			delete(s.effects, k)
		}
	}
	sort.Slice(removed, func(i, j int) bool { return removed[i] < removed[j] })
	return removed
}

// Clear removes every effect.
func (s *ActiveSet) Clear() {
	for k := range s.effects {
		delete(s.effects, k)
	}
}

// Tick decrements every effect by one turn and purges the ones that reach zero.
//
// Postcondition: For every kind in the returned slice, Has(kind) is false.
func (s *ActiveSet) Tick() []Kind {
	var expired []Kind
	for k, turns := range s.effects {
		turns--
		if turns <= 0 {
			expired = append(expired, k)
			delete(s.effects, k)
			continue
		}
		s.effects[k] = turns
	}
	sort.Slice(expired, func(i, j int) bool { return expired[i] < expired[j] })
	return expired
}

// Has reports whether kind is currently active.
func (s *ActiveSet) Has(kind Kind) bool {
	_, ok := s.effects[kind]
	return ok
}

// Turns returns the remaining turns for kind, or 0 if not present.
func (s *ActiveSet) Turns(kind Kind) int {
	return s.effects[kind]
}

// Len returns the number of active effects.
func (s *ActiveSet) Len() int { return len(s.effects) }

// All returns a snapshot of the active effects ordered by Kind.
func (s *ActiveSet) All() []ActiveEffect {
	out := make([]ActiveEffect, 0, len(s.effects))
	for k, turns := range s.effects {
		out = append(out, ActiveEffect{Kind: k, TurnsRemaining: turns})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out
}
