package loot

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/dungeon/internal/game/dice"
	"github.com/cory-johannsen/dungeon/internal/game/difficulty"
	"github.com/cory-johannsen/dungeon/internal/game/inventory"
	"github.com/cory-johannsen/dungeon/internal/game/npc"
)

// ErrInvalidGoldRange is returned by NewTable when minGold > maxGold or minGold < 0.
var ErrInvalidGoldRange = errors.New("loot: invalid gold range")

const (
	// BaseDropChance is scaled by the difficulty's LootDropMultiplier.
	BaseDropChance = 0.30

	lowLevelCommonChance = 0.75
	legendaryUpgrade     = 0.05
	epicUpgrade          = 0.10
	legendaryFloor       = 6
	epicFloor            = 5
)

// Drop is the reward for one defeated enemy. Item is nil when nothing dropped.
type Drop struct {
	Item       *inventory.ItemDef
	InstanceID string
	Tier       inventory.Tier
	Gold       int
}

// Table rolls gold and items for defeated enemies.
type Table struct {
	minGold    int
	maxGold    int
	baseChance float64
	pools      Pools
	settings   difficulty.Settings
	src        dice.Source
	logger     *zap.Logger
}

// NewTable builds a loot table.
//
// Precondition: src must be non-nil.
// Postcondition: err wraps ErrInvalidGoldRange when minGold > maxGold or minGold < 0.
func NewTable(minGold, maxGold int, pools Pools, settings difficulty.Settings, src dice.Source, logger *zap.Logger) (*Table, error) {
	if minGold < 0 || minGold > maxGold {
		return nil, fmt.Errorf("%w: [%d, %d]", ErrInvalidGoldRange, minGold, maxGold)
	}
	if src == nil {
		return nil, errors.New("loot: nil random source")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Table{
		minGold:    minGold,
		maxGold:    maxGold,
		baseChance: BaseDropChance,
		pools:      pools,
		settings:   settings,
		src:        src,
		logger:     logger,
	}, nil
}

// WithBaseDropChance replaces BaseDropChance for this table. Values outside
// [0, 1] are clamped.
func (t *Table) WithBaseDropChance(p float64) *Table {
	t.baseChance = min(1, max(0, p))
	return t
}

// RollDrop computes the reward for enemy. Gold is uniform over
// [minGold, maxGold] scaled by GoldMultiplier. A boss room yields a Legendary
// when that pool has items; otherwise the tiered roll applies.
//
// Postcondition: Gold >= 0; a returned Item is a copy with a fresh InstanceID.
func (t *Table) RollDrop(enemy *npc.Enemy, playerLevel int, isBossRoom, isElite bool, floor int) Drop {
	gold := dice.Range(t.src, t.minGold, t.maxGold)
	d := Drop{Gold: max(0, int(math.Round(float64(gold)*t.settings.GoldMultiplier)))}

	tier, item := t.rollItem(playerLevel, isBossRoom, isElite, floor)
	if item != nil {
		d.Item = item
		d.Tier = tier
		d.InstanceID = uuid.New().String()
	}

	fields := []zap.Field{
		zap.Int("gold", d.Gold),
		zap.Int("player_level", playerLevel),
		zap.Int("floor", floor),
		zap.Bool("boss_room", isBossRoom),
		zap.Bool("elite", isElite),
	}
	if enemy != nil {
		fields = append(fields, zap.String("enemy", enemy.Name))
	}
	if d.Item != nil {
		fields = append(fields, zap.String("item", d.Item.ID), zap.Stringer("tier", d.Tier))
	}
	t.logger.Info("loot rolled", fields...)
	return d
}

func (t *Table) rollItem(playerLevel int, isBossRoom, isElite bool, floor int) (inventory.Tier, *inventory.ItemDef) {
	if isBossRoom && len(t.pools.Legendary) > 0 {
		return inventory.TierLegendary, t.pools.RollTier(t.src, inventory.TierLegendary)
	}

	if !isElite {
		chance := min(1, max(0, t.baseChance*t.settings.LootDropMultiplier))
		if !dice.Chance(t.src, chance) {
			return 0, nil
		}
	}

	tier := t.levelTier(playerLevel, isElite)
	switch {
	case floor >= legendaryFloor && dice.Chance(t.src, legendaryUpgrade) && len(t.pools.Legendary) > 0:
		tier = inventory.TierLegendary
	case floor >= epicFloor && dice.Chance(t.src, epicUpgrade) && len(t.pools.Epic) > 0:
		tier = inventory.TierEpic
	}
	return tier, t.pools.RollTier(t.src, tier)
}

// levelTier selects the base tier by player level. Elites never roll below Uncommon.
func (t *Table) levelTier(playerLevel int, isElite bool) inventory.Tier {
	switch {
	case playerLevel >= 7:
		return inventory.TierRare
	case playerLevel >= 4:
		return inventory.TierUncommon
	case isElite:
		return inventory.TierUncommon
	case dice.Chance(t.src, lowLevelCommonChance):
		return inventory.TierCommon
	default:
		return inventory.TierUncommon
	}
}
