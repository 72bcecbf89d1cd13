package inventory

// ArmorSlot identifies a body-armor equipment slot.
type ArmorSlot string

const (
	SlotHead  ArmorSlot = "head"
	SlotChest ArmorSlot = "chest"
	SlotLegs  ArmorSlot = "legs"
	SlotArms  ArmorSlot = "arms"
	SlotCore  ArmorSlot = "core"
)

// ArmorSlots lists every armor slot in display order.
var ArmorSlots = []ArmorSlot{SlotHead, SlotChest, SlotLegs, SlotArms, SlotCore}

// validArmorSlots is the set of all legal ArmorSlot values.
var validArmorSlots = map[ArmorSlot]struct{}{
	SlotHead:  {},
	SlotChest: {},
	SlotLegs:  {},
	SlotArms:  {},
	SlotCore:  {},
}

// Armor is the payload of a KindArmor item.
type Armor struct {
	Slot       ArmorSlot `yaml:"slot"`
	Mitigation float64   `yaml:"mitigation"`
}
