package inventory

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Tier is an item rarity bucket. The zero value is Common.
type Tier int

const (
	TierCommon Tier = iota
	TierUncommon
	TierRare
	TierEpic
	TierLegendary
)

var tierNames = [...]string{"common", "uncommon", "rare", "epic", "legendary"}

// Tiers returns every tier from Common to Legendary.
func Tiers() []Tier {
	return []Tier{TierCommon, TierUncommon, TierRare, TierEpic, TierLegendary}
}

// Valid reports whether t is one of the declared tiers.
func (t Tier) Valid() bool { return t >= TierCommon && t <= TierLegendary }

func (t Tier) String() string {
	if !t.Valid() {
		return fmt.Sprintf("tier(%d)", int(t))
	}
	return tierNames[t]
}

// ParseTier resolves a tier name, case-insensitively.
func ParseTier(s string) (Tier, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range tierNames {
		if n == s {
			return Tier(i), nil
		}
	}
	return 0, fmt.Errorf("inventory: unknown tier %q", s)
}

// UnmarshalYAML decodes a Tier from its name.
func (t *Tier) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseTier(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
