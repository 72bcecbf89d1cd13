package inventory

import "github.com/cory-johannsen/cyberdino/internal/game/stats"

// WeaponSlot identifies how a weapon is held.
type WeaponSlot string

const (
	// SlotMainHand weapons occupy the main hand.
	SlotMainHand WeaponSlot = "main_hand"
	// SlotOffHand weapons occupy the off hand.
	SlotOffHand WeaponSlot = "off_hand"
	// SlotTwoHanded weapons occupy the main hand and block the off hand.
	SlotTwoHanded WeaponSlot = "two_handed"
)

// Weapon is the payload of a KindWeapon item.
type Weapon struct {
	Slot       WeaponSlot       `yaml:"slot"`
	BaseDamage float64          `yaml:"base_damage"`
	DamageType stats.DamageType `yaml:"damage_type"`
	CritBonus  float64          `yaml:"crit_bonus"`
}
