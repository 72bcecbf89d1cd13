package inventory

import "errors"

// ConsumableEffectKind names what a consumable does when used.
type ConsumableEffectKind string

const (
	// EffectHeal restores Amount health.
	EffectHeal ConsumableEffectKind = "heal"
)

// ConsumableEffect describes a consumable's effect as data.
type ConsumableEffect struct {
	Kind   ConsumableEffectKind `yaml:"kind"`
	Amount float64              `yaml:"amount"`
}

// Consumable is the payload of a KindConsumable item.
type Consumable struct {
	Effect  ConsumableEffect `yaml:"effect"`
	Charges int              `yaml:"charges"`
}

// ErrNoCharges is returned when a consumable is used with no charges left.
var ErrNoCharges = errors.New("inventory: consumable has no charges left")

// Use spends one charge and returns the effect to apply.
//
// Postcondition: on success Charges is decremented by exactly 1.
func (c *Consumable) Use() (ConsumableEffect, error) {
	if c.Charges <= 0 {
		return ConsumableEffect{}, ErrNoCharges
	}
	c.Charges--
	return c.Effect, nil
}

// Spent reports whether no charges remain.
func (c *Consumable) Spent() bool { return c.Charges <= 0 }
