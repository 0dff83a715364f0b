// Package session holds the state of one run: the loaded content, the player,
// and the statistics accumulated across fights.
package session

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cory-johannsen/dungeon/internal/config"
	"github.com/cory-johannsen/dungeon/internal/game/inventory"
	"github.com/cory-johannsen/dungeon/internal/game/loot"
	"github.com/cory-johannsen/dungeon/internal/game/npc"
)

// ErrUnknownEnemy is returned when an enemy id has no template.
var ErrUnknownEnemy = errors.New("session: unknown enemy")

// ErrUnknownItem is returned when an item id has no definition.
var ErrUnknownItem = errors.New("session: unknown item")

// Content is the static data a run draws from. It is read-only once built.
type Content struct {
	enemies map[string]*npc.Template
	items   *inventory.Registry
	pools   loot.Pools
}

// NewContent indexes templates and items.
//
// Postcondition: Returns an error on duplicate enemy or item ids.
func NewContent(templates []*npc.Template, items []*inventory.ItemDef) (*Content, error) {
	c := &Content{
		enemies: make(map[string]*npc.Template, len(templates)),
		items:   inventory.NewRegistry(),
	}
	for _, t := range templates {
		if _, dup := c.enemies[t.ID]; dup {
			return nil, fmt.Errorf("duplicate enemy template %q", t.ID)
		}
		c.enemies[t.ID] = t
	}
	for _, d := range items {
		if err := c.items.RegisterItem(d); err != nil {
			return nil, err
		}
	}
	c.pools = loot.NewPools(c.items)
	return c, nil
}

// LoadContent reads enemy templates and item definitions from the configured
// directories.
//
// Postcondition: Returns validated content or the first load error.
func LoadContent(cfg config.ContentConfig) (*Content, error) {
	templates, err := npc.LoadTemplates(cfg.EnemiesDir)
	if err != nil {
		return nil, fmt.Errorf("loading enemies: %w", err)
	}
	items, err := inventory.LoadItems(cfg.ItemsDir)
	if err != nil {
		return nil, fmt.Errorf("loading items: %w", err)
	}
	return NewContent(templates, items)
}

// Enemy returns the template for id.
func (c *Content) Enemy(id string) (*npc.Template, error) {
	t, ok := c.enemies[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEnemy, id)
	}
	return t, nil
}

// EnemyIDs returns every template id, sorted.
func (c *Content) EnemyIDs() []string {
	ids := make([]string, 0, len(c.enemies))
	for id := range c.enemies {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Item returns the definition for id.
func (c *Content) Item(id string) (*inventory.ItemDef, error) {
	d, ok := c.items.Item(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownItem, id)
	}
	return d, nil
}

// Pools returns the loot pools built from the item registry.
func (c *Content) Pools() loot.Pools { return c.pools }
