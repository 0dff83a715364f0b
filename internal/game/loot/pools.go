// Package loot computes post-combat rewards: gold and tiered item drops.
package loot

import (
	"github.com/cory-johannsen/dungeon/internal/game/dice"
	"github.com/cory-johannsen/dungeon/internal/game/inventory"
)

// Pools are the item pools per tier. They are built once per session and
// never mutated by rolls.
type Pools struct {
	Common    []*inventory.ItemDef
	Uncommon  []*inventory.ItemDef
	Rare      []*inventory.ItemDef
	Epic      []*inventory.ItemDef
	Legendary []*inventory.ItemDef
}

// NewPools groups the registry's equippable items by tier.
func NewPools(reg *inventory.Registry) Pools {
	return Pools{
		Common:    reg.ByTier(inventory.TierCommon),
		Uncommon:  reg.ByTier(inventory.TierUncommon),
		Rare:      reg.ByTier(inventory.TierRare),
		Epic:      reg.ByTier(inventory.TierEpic),
		Legendary: reg.ByTier(inventory.TierLegendary),
	}
}

// Pool returns the pool for tier. Unknown tiers map to the Uncommon pool.
func (p Pools) Pool(tier inventory.Tier) []*inventory.ItemDef {
	switch tier {
	case inventory.TierCommon:
		return p.Common
	case inventory.TierUncommon:
		return p.Uncommon
	case inventory.TierRare:
		return p.Rare
	case inventory.TierEpic:
		return p.Epic
	case inventory.TierLegendary:
		return p.Legendary
	}
	return p.Uncommon
}

// RollTier picks a uniform item from tier's pool and returns a copy.
//
// Postcondition: returns nil without drawing when the pool is empty.
func (p Pools) RollTier(src dice.Source, tier inventory.Tier) *inventory.ItemDef {
	return pick(src, p.Pool(tier))
}

// RollArmorTier is RollTier restricted to armor items.
func (p Pools) RollArmorTier(src dice.Source, tier inventory.Tier) *inventory.ItemDef {
	var armor []*inventory.ItemDef
	for _, d := range p.Pool(tier) {
		if d.Kind == inventory.KindArmor {
			armor = append(armor, d)
		}
	}
	return pick(src, armor)
}

func pick(src dice.Source, pool []*inventory.ItemDef) *inventory.ItemDef {
	i := dice.Pick(src, len(pool))
	if i < 0 {
		return nil
	}
	return pool[i].Clone()
}
