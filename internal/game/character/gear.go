package character

import (
	"fmt"

	"github.com/cory-johannsen/cyberdino/internal/game/inventory"
)

// Equip wears item and moves anything it displaced into the backpack.
//
// Postcondition: on success pools are reconciled via RefreshResourceMaximums.
func (c *Character) Equip(item *inventory.Item) error {
	displaced, err := c.Equipment.Equip(item)
	if err != nil {
		return fmt.Errorf("character: Equip: %w", err)
	}
	for _, it := range displaced {
		c.Inventory.Add(it)
	}
	c.RefreshResourceMaximums()
	return nil
}

// EquipFromInventory equips the backpack item at index.
//
// Postcondition: on error the equipment is unchanged and the item stays in the backpack.
func (c *Character) EquipFromInventory(index int) (*inventory.Item, error) {
	it, ok := c.Inventory.At(index)
	if !ok {
		return nil, fmt.Errorf("character: EquipFromInventory: index %d out of range", index)
	}
	if !it.Equippable() {
		return nil, fmt.Errorf("character: EquipFromInventory: %q cannot be equipped", it.Name)
	}
	if _, err := c.Inventory.Remove(index); err != nil {
		return nil, fmt.Errorf("character: EquipFromInventory: %w", err)
	}
	if err := c.Equip(it); err != nil {
		c.Inventory.Add(it)
		return nil, err
	}
	return it, nil
}

// UseConsumable spends one charge of the backpack consumable at index and
// applies its effect.
//
// Postcondition: Returns the amount of health restored.
func (c *Character) UseConsumable(index int) (float64, error) {
	if !c.IsAlive() {
		return 0, fmt.Errorf("character: UseConsumable: %s is dead", c.Name)
	}
	eff, err := c.Inventory.Consume(index)
	if err != nil {
		return 0, fmt.Errorf("character: UseConsumable: %w", err)
	}
	switch eff.Kind {
	case inventory.EffectHeal:
		return c.Heal(eff.Amount), nil
	default:
		return 0, fmt.Errorf("character: UseConsumable: unknown effect %q", eff.Kind)
	}
}
