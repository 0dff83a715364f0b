package inventory

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Kind constants for ItemDef.Kind.
const (
	KindWeapon     = "weapon"
	KindArmor      = "armor"
	KindAccessory  = "accessory"
	KindConsumable = "consumable"
)

// validKinds is the set of valid ItemDef kinds.
var validKinds = map[string]bool{
	KindWeapon:     true,
	KindArmor:      true,
	KindAccessory:  true,
	KindConsumable: true,
}

// ItemDef defines the static properties of an item loaded from YAML.
type ItemDef struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Kind        string  `yaml:"kind"`
	Tier        Tier    `yaml:"tier"`
	Weight      float64 `yaml:"weight"`
	Stackable   bool    `yaml:"stackable"`
	MaxStack    int     `yaml:"max_stack"`
	Value       int     `yaml:"value"`
	// AttackBonus and DefenseBonus apply while the item is equipped.
	AttackBonus  int `yaml:"attack_bonus"`
	DefenseBonus int `yaml:"defense_bonus"`
	// HealAmount and ManaAmount are restored when a consumable is used.
	HealAmount int `yaml:"heal_amount"`
	ManaAmount int `yaml:"mana_amount"`
	// Passive is the equipment-granted effect, PassiveNone when absent.
	Passive Passive `yaml:"passive"`
}

// Equippable reports whether the item occupies an equipment slot.
func (d *ItemDef) Equippable() bool {
	return d.Kind == KindWeapon || d.Kind == KindArmor || d.Kind == KindAccessory
}

// Clone returns an independent copy of d. Loot drops hand out clones so the
// shared pools are never mutated.
//
// Precondition: d is non-nil.
func (d *ItemDef) Clone() *ItemDef {
	c := *d
	return &c
}

// Validate checks that the ItemDef satisfies its invariants.
//
// Precondition: d is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (d *ItemDef) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("ID must not be empty"))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if !validKinds[d.Kind] {
		errs = append(errs, fmt.Errorf("Kind must be one of weapon, armor, accessory, consumable; got %q", d.Kind))
	}
	if d.MaxStack < 1 {
		errs = append(errs, errors.New("MaxStack must be >= 1"))
	}
	if d.Weight < 0 {
		errs = append(errs, errors.New("Weight must be >= 0"))
	}
	if d.Kind == KindConsumable && d.HealAmount <= 0 && d.ManaAmount <= 0 {
		errs = append(errs, errors.New("consumable must restore HealAmount or ManaAmount"))
	}
	if d.Kind == KindConsumable && d.Passive != PassiveNone {
		errs = append(errs, errors.New("consumable must not carry a passive"))
	}
	if d.HealAmount < 0 || d.ManaAmount < 0 {
		errs = append(errs, errors.New("HealAmount and ManaAmount must be >= 0"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("item validation failed: %v", errs)
	}
	return nil
}

// LoadItems reads all *.yaml and *.yml files from dir. Each file holds either a
// single item or an "items" list. Every item is validated.
//
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid ItemDefs or the first encountered error.
func LoadItems(dir string) ([]*ItemDef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadItems: cannot read directory %q: %w", dir, err)
	}

	var items []*ItemDef
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadItems: cannot read file %q: %w", path, err)
		}
		defs, err := LoadItemsFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("LoadItems: %q: %w", path, err)
		}
		items = append(items, defs...)
	}
	return items, nil
}

// LoadItemsFromBytes parses YAML holding one item or an "items" list.
//
// Postcondition: returns validated ItemDefs or a non-nil error.
func LoadItemsFromBytes(data []byte) ([]*ItemDef, error) {
	var probe map[string]yaml.Node
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("cannot parse item: %w", err)
	}
	var defs []*ItemDef
	if _, ok := probe["items"]; ok {
		var list struct {
			Items []*ItemDef `yaml:"items"`
		}
		if err := yaml.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("cannot parse items: %w", err)
		}
		defs = list.Items
	} else {
		var d ItemDef
		if err := yaml.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("cannot parse item: %w", err)
		}
		defs = []*ItemDef{&d}
	}
	for _, d := range defs {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("invalid item %q: %w", d.ID, err)
		}
	}
	return defs, nil
}
