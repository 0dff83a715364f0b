package condition

import "math"

// AttackPct returns the net attack percentage modifier from all active effects.
func AttackPct(s *ActiveSet) int {
	total := 0
	for k := range s.effects {
		total += defs[k].AttackPct
	}
	return total
}

// DefensePct returns the net defense percentage modifier from all active effects.
func DefensePct(s *ActiveSet) int {
	total := 0
	for k := range s.effects {
		total += defs[k].DefensePct
	}
	return total
}

// ScaleAttack applies the active attack modifiers to base, rounding half away from zero.
//
// Postcondition: Returns >= 0.
func ScaleAttack(base int, s *ActiveSet) int {
	return scale(base, AttackPct(s))
}

// ScaleDefense applies the active defense modifiers to base.
//
// Postcondition: Returns >= 0.
func ScaleDefense(base int, s *ActiveSet) int {
	return scale(base, DefensePct(s))
}

func scale(base, pct int) int {
	if pct <= -100 {
		return 0
	}
	v := int(math.Round(float64(base) * float64(100+pct) / 100))
	if v < 0 {
		return 0
	}
	return v
}

// SkipsTurn reports whether any active effect denies the bearer its action,
// and which one.
func SkipsTurn(s *ActiveSet) (Kind, bool) {
	for _, k := range []Kind{Stun, Freeze} {
		if s.Has(k) {
			return k, true
		}
	}
	return 0, false
}
