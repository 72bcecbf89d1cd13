package inventory

import "fmt"

// slotDisplayNames maps every slot identifier to its human-readable label.
var slotDisplayNames = map[string]string{
	"head":       "Head",
	"chest":      "Chest",
	"legs":       "Legs",
	"arms":       "Arms",
	"core":       "Core",
	"main_hand":  "Main Hand",
	"off_hand":   "Off Hand",
	"two_handed": "Two-Handed",
	"implant":    "Implant",
	"relic":      "Relic",
	"vehicle":    "Vehicle",
}

// SlotDisplayName returns the human-readable label for a slot identifier.
//
// Postcondition: returns the registered label, or slot itself if not found.
func SlotDisplayName(slot string) string {
	if label, ok := slotDisplayNames[slot]; ok {
		return label
	}
	return slot
}

// Equipment holds everything a character currently wears or wields.
type Equipment struct {
	WeaponMain *Item
	WeaponOff  *Item
	// Armor maps each ArmorSlot to the item equipped there; absent means empty.
	Armor    map[ArmorSlot]*Item
	Implants []*Item
	Relics   []*Item
	// Vehicle is carried for travel and does not contribute stats.
	Vehicle *Item
}

// NewEquipment returns an empty Equipment with an initialised armor map.
func NewEquipment() *Equipment {
	return &Equipment{Armor: make(map[ArmorSlot]*Item)}
}

// Equip places item in the slot its kind dictates and returns whatever it displaced.
// Two-handed weapons also displace the off-hand weapon; an off-hand weapon
// displaces a two-handed main weapon.
//
// Precondition: item must be non-nil.
// Postcondition: on success item is equipped; on error nothing changes.
func (e *Equipment) Equip(item *Item) ([]*Item, error) {
	if item == nil {
		return nil, fmt.Errorf("inventory: Equip: item must not be nil")
	}
	var displaced []*Item
	keep := func(it *Item) {
		if it != nil {
			displaced = append(displaced, it)
		}
	}
	switch item.Kind {
	case KindWeapon:
		if item.Weapon == nil {
			return nil, fmt.Errorf("inventory: Equip: weapon %q has no weapon payload", item.ID)
		}
		switch item.Weapon.Slot {
		case SlotTwoHanded:
			keep(e.WeaponMain)
			keep(e.WeaponOff)
			e.WeaponMain, e.WeaponOff = item, nil
		case SlotOffHand:
			if e.WeaponMain != nil && e.WeaponMain.Weapon != nil && e.WeaponMain.Weapon.Slot == SlotTwoHanded {
				keep(e.WeaponMain)
				e.WeaponMain = nil
			}
			keep(e.WeaponOff)
			e.WeaponOff = item
		default:
			keep(e.WeaponMain)
			e.WeaponMain = item
		}
	case KindArmor:
		if item.Armor == nil {
			return nil, fmt.Errorf("inventory: Equip: armor %q has no armor payload", item.ID)
		}
		if _, ok := validArmorSlots[item.Armor.Slot]; !ok {
			return nil, fmt.Errorf("inventory: Equip: armor slot %q is not valid", item.Armor.Slot)
		}
		if e.Armor == nil {
			e.Armor = make(map[ArmorSlot]*Item)
		}
		keep(e.Armor[item.Armor.Slot])
		e.Armor[item.Armor.Slot] = item
	case KindImplant:
		e.Implants = append(e.Implants, item)
	case KindRelic:
		e.Relics = append(e.Relics, item)
	case KindVehicle:
		keep(e.Vehicle)
		e.Vehicle = item
	default:
		return nil, fmt.Errorf("inventory: Equip: %s items cannot be equipped", item.Kind)
	}
	return displaced, nil
}

// StatItems returns every equipped item whose stats fold into the wearer's total:
// both weapons, all armor slots in display order, implants and relics.
//
// Postcondition: no nil entries; the vehicle is excluded.
func (e *Equipment) StatItems() []*Item {
	var out []*Item
	if e.WeaponMain != nil {
		out = append(out, e.WeaponMain)
	}
	if e.WeaponOff != nil {
		out = append(out, e.WeaponOff)
	}
	for _, slot := range ArmorSlots {
		if it := e.Armor[slot]; it != nil {
			out = append(out, it)
		}
	}
	out = append(out, e.Implants...)
	out = append(out, e.Relics...)
	return out
}
