package inventory

import (
	"fmt"

	"github.com/google/uuid"
)

// ItemInstance represents a concrete instance of an item in a backpack.
type ItemInstance struct {
	InstanceID string
	ItemDefID  string
	Quantity   int
}

// Backpack is a container with slot and weight limits. It remembers the
// definition of every item it holds, so weight and consumable lookups need no registry.
type Backpack struct {
	MaxSlots  int
	MaxWeight float64
	items     []ItemInstance
	defs      map[string]*ItemDef
}

// NewBackpack creates a Backpack with the given limits.
//
// Precondition: maxSlots >= 0 and maxWeight >= 0.
// Postcondition: returned Backpack has zero items and the specified limits.
func NewBackpack(maxSlots int, maxWeight float64) *Backpack {
	return &Backpack{
		MaxSlots:  maxSlots,
		MaxWeight: maxWeight,
		defs:      make(map[string]*ItemDef),
	}
}

// Add places quantity units of def into the backpack.
// It is atomic: if limits would be exceeded, no state is modified.
//
// Precondition: def is non-nil and quantity > 0.
// Postcondition: on success, items are added without exceeding slot or weight limits;
// on error, backpack state is unchanged.
func (b *Backpack) Add(def *ItemDef, quantity int) (*ItemInstance, error) {
	return b.add(def, quantity, "")
}

// AddInstance places a single unit of def under a caller-chosen instance ID,
// used for loot drops that already carry one. Stackable items merge as with Add.
func (b *Backpack) AddInstance(instanceID string, def *ItemDef) (*ItemInstance, error) {
	return b.add(def, 1, instanceID)
}

func (b *Backpack) add(def *ItemDef, quantity int, instanceID string) (*ItemInstance, error) {
	if def == nil {
		return nil, fmt.Errorf("backpack: nil item")
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("backpack: quantity must be > 0")
	}

	addedWeight := float64(quantity) * def.Weight
	currentWeight := b.TotalWeight()
	if currentWeight+addedWeight > b.MaxWeight {
		return nil, fmt.Errorf("backpack: adding %d of %q would exceed weight limit (%.2f + %.2f > %.2f)",
			quantity, def.ID, currentWeight, addedWeight, b.MaxWeight)
	}

	var (
		inst *ItemInstance
		err  error
	)
	if def.Stackable {
		inst, err = b.addStackable(def, quantity, instanceID)
	} else {
		inst, err = b.addNonStackable(def, quantity, instanceID)
	}
	if err == nil {
		b.defs[def.ID] = def
	}
	return inst, err
}

func (b *Backpack) addStackable(def *ItemDef, quantity int, instanceID string) (*ItemInstance, error) {
	// Phase 1: top up the first open stack, then count the new stacks needed.
	remaining := quantity
	mergeIdx := -1
	var mergeAmount int
	for i := range b.items {
		if b.items[i].ItemDefID == def.ID && b.items[i].Quantity < def.MaxStack {
			mergeIdx = i
			mergeAmount = min(remaining, def.MaxStack-b.items[i].Quantity)
			remaining -= mergeAmount
			break
		}
	}

	newSlots := (remaining + def.MaxStack - 1) / def.MaxStack
	if len(b.items)+newSlots > b.MaxSlots {
		return nil, fmt.Errorf("backpack: not enough slots")
	}

	// Phase 2: apply.
	var result *ItemInstance
	if mergeIdx >= 0 && mergeAmount > 0 {
		b.items[mergeIdx].Quantity += mergeAmount
		result = &b.items[mergeIdx]
	}
	for remaining > 0 {
		q := min(remaining, def.MaxStack)
		b.items = append(b.items, ItemInstance{
			InstanceID: newInstanceID(instanceID),
			ItemDefID:  def.ID,
			Quantity:   q,
		})
		instanceID = ""
		result = &b.items[len(b.items)-1]
		remaining -= q
	}
	return result, nil
}

func (b *Backpack) addNonStackable(def *ItemDef, quantity int, instanceID string) (*ItemInstance, error) {
	if len(b.items)+quantity > b.MaxSlots {
		return nil, fmt.Errorf("backpack: not enough slots for %d non-stackable items", quantity)
	}

	var last *ItemInstance
	for i := 0; i < quantity; i++ {
		b.items = append(b.items, ItemInstance{
			InstanceID: newInstanceID(instanceID),
			ItemDefID:  def.ID,
			Quantity:   1,
		})
		instanceID = ""
		last = &b.items[len(b.items)-1]
	}
	return last, nil
}

func newInstanceID(given string) string {
	if given != "" {
		return given
	}
	return uuid.New().String()
}

// Remove removes quantity units from the instance identified by instanceID.
//
// Precondition: instanceID exists in the backpack, quantity > 0 and <= instance.Quantity.
// Postcondition: if quantity == instance.Quantity, instance is removed; otherwise quantity is decremented.
func (b *Backpack) Remove(instanceID string, quantity int) error {
	for i := range b.items {
		if b.items[i].InstanceID == instanceID {
			if quantity > b.items[i].Quantity {
				return fmt.Errorf("backpack: cannot remove %d from instance with quantity %d",
					quantity, b.items[i].Quantity)
			}
			if quantity == b.items[i].Quantity {
				b.items = append(b.items[:i], b.items[i+1:]...)
			} else {
				b.items[i].Quantity -= quantity
			}
			return nil
		}
	}
	return fmt.Errorf("backpack: instance %q not found", instanceID)
}

// Items returns a snapshot copy of all items in the backpack.
//
// Postcondition: returned slice is a copy; mutations do not affect the backpack.
func (b *Backpack) Items() []ItemInstance {
	out := make([]ItemInstance, len(b.items))
	copy(out, b.items)
	return out
}

// Def returns the definition of an item held in the backpack.
func (b *Backpack) Def(itemDefID string) (*ItemDef, bool) {
	d, ok := b.defs[itemDefID]
	return d, ok
}

// Consumables returns the consumable instances in backpack order.
func (b *Backpack) Consumables() []ItemInstance {
	var out []ItemInstance
	for _, inst := range b.items {
		if d, ok := b.defs[inst.ItemDefID]; ok && d.Kind == KindConsumable {
			out = append(out, inst)
		}
	}
	return out
}

// UsedSlots returns the number of occupied slots.
//
// Postcondition: result >= 0 and <= MaxSlots.
func (b *Backpack) UsedSlots() int {
	return len(b.items)
}

// TotalWeight returns the sum of quantity*weight for all items.
//
// Postcondition: result >= 0.
func (b *Backpack) TotalWeight() float64 {
	var total float64
	for _, inst := range b.items {
		if def, ok := b.defs[inst.ItemDefID]; ok {
			total += float64(inst.Quantity) * def.Weight
		}
	}
	return total
}

// FindByItemDefID returns all instances matching the given item definition ID.
//
// Postcondition: returned slice is a copy.
func (b *Backpack) FindByItemDefID(itemDefID string) []ItemInstance {
	var out []ItemInstance
	for _, inst := range b.items {
		if inst.ItemDefID == itemDefID {
			out = append(out, inst)
		}
	}
	return out
}
