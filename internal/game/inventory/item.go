// Package inventory defines generated equipment as a single tagged Item record,
// plus the equipment slots and backpack a character keeps them in.
package inventory

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/cyberdino/internal/game/stats"
)

// Kind discriminates the Item variant.
type Kind string

const (
	KindWeapon     Kind = "weapon"
	KindArmor      Kind = "armor"
	KindImplant    Kind = "implant"
	KindRelic      Kind = "relic"
	KindVehicle    Kind = "vehicle"
	KindConsumable Kind = "consumable"
)

// Rarity is an ordered quality tier: Common < Rare < Epic < Legendary.
type Rarity int

const (
	Common Rarity = iota
	Rare
	Epic
	Legendary
)

// String returns the lower-case rarity label.
func (r Rarity) String() string {
	switch r {
	case Common:
		return "common"
	case Rare:
		return "rare"
	case Epic:
		return "epic"
	case Legendary:
		return "legendary"
	default:
		return "unknown"
	}
}

// MarshalYAML renders the rarity label instead of its ordinal.
func (r Rarity) MarshalYAML() (any, error) { return r.String(), nil }

// Multiplier scales every generated value of this tier.
//
// Postcondition: Returns 1.0, 1.4, 1.9 or 2.4; unknown tiers return 1.0.
func (r Rarity) Multiplier() float64 {
	switch r {
	case Rare:
		return 1.4
	case Epic:
		return 1.9
	case Legendary:
		return 2.4
	default:
		return 1.0
	}
}

// Item is one generated piece of gear. Exactly one payload pointer is non-nil
// for the weapon, armor, vehicle and consumable kinds; implants and relics
// carry only Stats.
//
// Invariant: items are immutable after generation except Consumable.Charges.
type Item struct {
	ID          string            `yaml:"id"`
	Name        string            `yaml:"name"`
	Kind        Kind              `yaml:"kind"`
	Level       int               `yaml:"level"`
	Rarity      Rarity            `yaml:"rarity"`
	Tags        []string          `yaml:"tags,omitempty"`
	Stats       stats.Stats       `yaml:"stats"`
	Description string            `yaml:"description,omitempty"`
	Meta        map[string]string `yaml:"meta,omitempty"`

	Weapon     *Weapon     `yaml:"weapon,omitempty"`
	Armor      *Armor      `yaml:"armor,omitempty"`
	Vehicle    *Vehicle    `yaml:"vehicle,omitempty"`
	Consumable *Consumable `yaml:"consumable,omitempty"`
}

// Vehicle is the payload of a KindVehicle item.
type Vehicle struct {
	SpeedBonus float64  `yaml:"speed_bonus"`
	TravelTech []string `yaml:"travel_tech"`
}

// Validate checks that the Item's payload agrees with its Kind.
//
// Postcondition: returns nil iff all fields are valid.
func (i *Item) Validate() error {
	var errs []error
	if i.ID == "" {
		errs = append(errs, errors.New("ID must not be empty"))
	}
	if i.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if i.Level < 1 {
		errs = append(errs, fmt.Errorf("Level must be >= 1, got %d", i.Level))
	}
	payloads := 0
	for _, set := range []bool{i.Weapon != nil, i.Armor != nil, i.Vehicle != nil, i.Consumable != nil} {
		if set {
			payloads++
		}
	}
	switch i.Kind {
	case KindWeapon:
		if i.Weapon == nil || payloads != 1 {
			errs = append(errs, errors.New("weapon items carry exactly the Weapon payload"))
		}
	case KindArmor:
		if i.Armor == nil || payloads != 1 {
			errs = append(errs, errors.New("armor items carry exactly the Armor payload"))
		} else if _, ok := validArmorSlots[i.Armor.Slot]; !ok {
			errs = append(errs, fmt.Errorf("armor slot %q is not valid", i.Armor.Slot))
		}
	case KindVehicle:
		if i.Vehicle == nil || payloads != 1 {
			errs = append(errs, errors.New("vehicle items carry exactly the Vehicle payload"))
		}
	case KindConsumable:
		if i.Consumable == nil || payloads != 1 {
			errs = append(errs, errors.New("consumable items carry exactly the Consumable payload"))
		} else if i.Consumable.Charges < 0 {
			errs = append(errs, errors.New("consumable charges must be >= 0"))
		}
	case KindImplant, KindRelic:
		if payloads != 0 {
			errs = append(errs, fmt.Errorf("%s items carry no payload", i.Kind))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown kind %q", i.Kind))
	}
	if len(errs) > 0 {
		return fmt.Errorf("item validation failed: %v", errs)
	}
	return nil
}

// kindBaseValue is the credit value of a level-1 common item of each kind.
var kindBaseValue = map[Kind]float64{
	KindWeapon:     40,
	KindArmor:      30,
	KindImplant:    50,
	KindRelic:      60,
	KindVehicle:    120,
	KindConsumable: 15,
}

// Value returns the credit price of the item: kind base × level × rarity multiplier.
//
// Postcondition: Returns >= 0.
func (i *Item) Value() int {
	base := kindBaseValue[i.Kind]
	level := i.Level
	if level < 1 {
		level = 1
	}
	return int(base * float64(level) * i.Rarity.Multiplier())
}

// Equippable reports whether the item occupies an equipment slot.
func (i *Item) Equippable() bool {
	switch i.Kind {
	case KindWeapon, KindArmor, KindImplant, KindRelic, KindVehicle:
		return true
	default:
		return false
	}
}

// Slot returns the identifier of the slot the item occupies, or "" for items
// that are never equipped. Pass it to SlotDisplayName for a label.
func (i *Item) Slot() string {
	switch i.Kind {
	case KindWeapon:
		if i.Weapon != nil {
			return string(i.Weapon.Slot)
		}
	case KindArmor:
		if i.Armor != nil {
			return string(i.Armor.Slot)
		}
	case KindImplant, KindRelic, KindVehicle:
		return string(i.Kind)
	}
	return ""
}
