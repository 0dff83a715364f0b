package inventory

import "fmt"

// Slot identifies an equipment slot.
type Slot string

const (
	SlotWeapon    Slot = "weapon"
	SlotArmor     Slot = "armor"
	SlotAccessory Slot = "accessory"
)

var slotDisplayNames = map[Slot]string{
	SlotWeapon:    "Weapon",
	SlotArmor:     "Armor",
	SlotAccessory: "Accessory",
}

// SlotDisplayName returns the human-readable label for a slot.
//
// Postcondition: returns the registered label, or the slot id itself if not found.
func SlotDisplayName(slot Slot) string {
	if label, ok := slotDisplayNames[slot]; ok {
		return label
	}
	return string(slot)
}

// SlotFor maps an item kind to the slot it occupies.
//
// Postcondition: ok is false for consumables and unknown kinds.
func SlotFor(kind string) (Slot, bool) {
	switch kind {
	case KindWeapon:
		return SlotWeapon, true
	case KindArmor:
		return SlotArmor, true
	case KindAccessory:
		return SlotAccessory, true
	}
	return "", false
}

// Equipment holds the items a character has equipped, one per slot.
type Equipment struct {
	slots map[Slot]*ItemDef
}

// NewEquipment returns an empty Equipment.
func NewEquipment() *Equipment {
	return &Equipment{slots: make(map[Slot]*ItemDef)}
}

// Equip places def into its slot and returns whatever was there before.
//
// Precondition: def is non-nil.
// Postcondition: on success Equipped(slot) == def.
func (e *Equipment) Equip(def *ItemDef) (*ItemDef, error) {
	slot, ok := SlotFor(def.Kind)
	if !ok {
		return nil, fmt.Errorf("equipment: %q (%s) cannot be equipped", def.ID, def.Kind)
	}
	prev := e.slots[slot]
	e.slots[slot] = def
	return prev, nil
}

// Unequip empties slot and returns the item that was there, or nil.
func (e *Equipment) Unequip(slot Slot) *ItemDef {
	prev := e.slots[slot]
	delete(e.slots, slot)
	return prev
}

// Equipped returns the item in slot, or nil.
func (e *Equipment) Equipped(slot Slot) *ItemDef {
	return e.slots[slot]
}

// AttackBonus sums the attack bonus of every equipped item.
func (e *Equipment) AttackBonus() int {
	total := 0
	for _, d := range e.slots {
		total += d.AttackBonus
	}
	return total
}

// DefenseBonus sums the defense bonus of every equipped item.
func (e *Equipment) DefenseBonus() int {
	total := 0
	for _, d := range e.slots {
		total += d.DefenseBonus
	}
	return total
}

// Passives returns the passives granted by equipped items in slot order
// (weapon, armor, accessory). PassiveNone is omitted.
func (e *Equipment) Passives() []Passive {
	var out []Passive
	for _, s := range []Slot{SlotWeapon, SlotArmor, SlotAccessory} {
		if d := e.slots[s]; d != nil && d.Passive != PassiveNone {
			out = append(out, d.Passive)
		}
	}
	return out
}

// HasPassive reports whether any equipped item grants p.
func (e *Equipment) HasPassive(p Passive) bool {
	for _, d := range e.slots {
		if d.Passive == p {
			return true
		}
	}
	return false
}
