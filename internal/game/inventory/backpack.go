package inventory

import "fmt"

// Backpack is an ordered list of carried, unequipped items.
type Backpack struct {
	items []*Item
}

// NewBackpack returns an empty Backpack.
func NewBackpack() *Backpack {
	return &Backpack{}
}

// Add appends item to the backpack.
//
// Precondition: item must be non-nil.
func (b *Backpack) Add(item *Item) {
	if item == nil {
		return
	}
	b.items = append(b.items, item)
}

// Len returns the number of carried items.
func (b *Backpack) Len() int { return len(b.items) }

// At returns the item at index.
//
// Postcondition: Returns (item, true) for a valid index, or (nil, false).
func (b *Backpack) At(index int) (*Item, bool) {
	if index < 0 || index >= len(b.items) {
		return nil, false
	}
	return b.items[index], true
}

// Items returns a copy of the carried item slice.
func (b *Backpack) Items() []*Item {
	out := make([]*Item, len(b.items))
	copy(out, b.items)
	return out
}

// Remove takes the item at index out of the backpack.
//
// Postcondition: on success Len() shrinks by one and the order of other items is kept.
func (b *Backpack) Remove(index int) (*Item, error) {
	if index < 0 || index >= len(b.items) {
		return nil, fmt.Errorf("inventory: Backpack.Remove: index %d out of range [0, %d)", index, len(b.items))
	}
	it := b.items[index]
	b.items = append(b.items[:index], b.items[index+1:]...)
	return it, nil
}

// Consume uses one charge of the consumable at index, removing it once spent.
//
// Postcondition: on success the consumable's charges drop by one; an item whose
// charges reach zero is no longer in the backpack.
func (b *Backpack) Consume(index int) (ConsumableEffect, error) {
	it, ok := b.At(index)
	if !ok {
		return ConsumableEffect{}, fmt.Errorf("inventory: Backpack.Consume: index %d out of range [0, %d)", index, len(b.items))
	}
	if it.Kind != KindConsumable || it.Consumable == nil {
		return ConsumableEffect{}, fmt.Errorf("inventory: Backpack.Consume: %q is not a consumable", it.Name)
	}
	eff, err := it.Consumable.Use()
	if err != nil {
		return ConsumableEffect{}, err
	}
	if it.Consumable.Spent() {
		_, _ = b.Remove(index)
	}
	return eff, nil
}
