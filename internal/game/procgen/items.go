package procgen

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/cyberdino/internal/game/dice"
	"github.com/cory-johannsen/cyberdino/internal/game/idgen"
	"github.com/cory-johannsen/cyberdino/internal/game/inventory"
	"github.com/cory-johannsen/cyberdino/internal/game/stats"
)

// focusStat sets the power stat that focus draws from.
func focusStat(s *stats.Stats, focus stats.Affinity, v float64) {
	switch focus {
	case stats.Arcane:
		s.MagicPower = v
	case stats.Tech:
		s.TechPower = v
	default:
		s.AttackPower = v
	}
}

// GenerateWeapon rolls a themed weapon.
//
// baseDamage = round((8 + 3L) * mult * U(0.9, 1.2)). The focus power stat gets
// round(2k) and the other two get round(k), with k = (1 + 0.5L) * mult.
func (g *Generator) GenerateWeapon(level int, focus stats.Affinity) *inventory.Item {
	level = clampLevel(level)
	rarity := g.RollRarity()
	mult := rarity.Multiplier()
	theme := g.content.Weapons[focus]

	name := dice.Pick(g.roll, "weapon.name", theme.Names)
	slot := dice.Pick(g.roll, "weapon.slot", theme.Slots)
	damageType := dice.Pick(g.roll, "weapon.damage_type", theme.DamageTypes)
	baseDamage := round(float64(8+3*level) * mult * g.roll.Uniform("weapon.damage", 0.9, 1.2))

	k := (1 + 0.5*float64(level)) * mult
	var s stats.Stats
	for _, a := range stats.AllAffinities {
		focusStat(&s, a, round(k))
	}
	focusStat(&s, focus, round(2*k))

	critBonus := 0.05 * mult
	if rarity == inventory.Legendary {
		critBonus = 0.15
	}
	s.CritChance = critBonus

	it := &inventory.Item{
		ID:          g.ids.Next(idgen.KindItem),
		Name:        name,
		Kind:        inventory.KindWeapon,
		Level:       level,
		Rarity:      rarity,
		Tags:        []string{string(focus), string(damageType)},
		Stats:       s,
		Description: fmt.Sprintf("A %s %s weapon dealing %s damage.", rarity, focus, damageType),
		Weapon: &inventory.Weapon{
			Slot:       slot,
			BaseDamage: baseDamage,
			DamageType: damageType,
			CritBonus:  critBonus,
		},
	}
	g.generated(it)
	return it
}

// GenerateArmor rolls a themed armor piece for a random body slot.
func (g *Generator) GenerateArmor(level int, focus stats.Affinity) *inventory.Item {
	rarity := g.RollRarity()
	slot := dice.Pick(g.roll, "armor.slot", inventory.ArmorSlots)
	return g.armor(level, focus, slot, rarity)
}

// GenerateArmorForSlot rolls a themed armor piece for slot.
func (g *Generator) GenerateArmorForSlot(level int, focus stats.Affinity, slot inventory.ArmorSlot) *inventory.Item {
	return g.armor(level, focus, slot, g.RollRarity())
}

// armor builds the piece. mitigation = round((4 + 2L) * mult * U(0.9, 1.3)) and
// only the focus resource maximum is raised, by round((10 + 4L) * mult).
func (g *Generator) armor(level int, focus stats.Affinity, slot inventory.ArmorSlot, rarity inventory.Rarity) *inventory.Item {
	level = clampLevel(level)
	mult := rarity.Multiplier()
	mitigation := round(float64(4+2*level) * mult * g.roll.Uniform("armor.mitigation", 0.9, 1.3))
	resource := round(float64(10+4*level) * mult)

	s := stats.Stats{
		Armor:    mitigation,
		Vitality: round((1 + 0.5*float64(level)) * mult),
	}
	switch focus {
	case stats.Tech:
		s.MaxShield = resource
	case stats.Arcane:
		s.MaxMana = resource
	default:
		s.MaxEnergy = resource
	}

	name := g.content.Armor[focus][slot]
	if name == "" {
		name = fmt.Sprintf("%s %s Armor", title(string(focus)), title(string(slot)))
	}
	it := &inventory.Item{
		ID:          g.ids.Next(idgen.KindItem),
		Name:        name,
		Kind:        inventory.KindArmor,
		Level:       level,
		Rarity:      rarity,
		Tags:        []string{string(focus), string(slot)},
		Stats:       s,
		Description: fmt.Sprintf("A %s %s piece worn on the %s.", rarity, focus, slot),
		Armor:       &inventory.Armor{Slot: slot, Mitigation: mitigation},
	}
	g.generated(it)
	return it
}

// GenerateImplant rolls a cybernetic implant boosting tech, agility and crit.
func (g *Generator) GenerateImplant(level int) *inventory.Item {
	level = clampLevel(level)
	rarity := g.RollRarity()
	mult := rarity.Multiplier()
	name := dice.Pick(g.roll, "implant.name", g.content.Implants)
	it := &inventory.Item{
		ID:     g.ids.Next(idgen.KindItem),
		Name:   name,
		Kind:   inventory.KindImplant,
		Level:  level,
		Rarity: rarity,
		Tags:   []string{"implant"},
		Stats: stats.Stats{
			TechPower:  round((1 + 0.5*float64(level)) * mult),
			Agility:    round((1 + 0.5*float64(level)) * mult),
			CritChance: 0.02 * mult,
		},
		Description: "A cybernetic implant wired into the nervous system.",
	}
	g.generated(it)
	return it
}

// relicResistance is the damage type each focus's relic wards against.
var relicResistance = map[stats.Affinity]stats.DamageType{
	stats.Arcane: stats.DamageArcane,
	stats.Tech:   stats.DamageShock,
	stats.Primal: stats.DamageToxic,
}

// GenerateRelic rolls a relic raising the focus power and one resistance.
func (g *Generator) GenerateRelic(level int, focus stats.Affinity) *inventory.Item {
	level = clampLevel(level)
	rarity := g.RollRarity()
	mult := rarity.Multiplier()
	var s stats.Stats
	focusStat(&s, focus, round(float64(2+level)*mult))
	s.Resistances = map[stats.DamageType]float64{relicResistance[focus]: 0.05 * mult}
	it := &inventory.Item{
		ID:          g.ids.Next(idgen.KindItem),
		Name:        g.content.Relics[focus],
		Kind:        inventory.KindRelic,
		Level:       level,
		Rarity:      rarity,
		Tags:        []string{string(focus), "relic"},
		Stats:       s,
		Description: fmt.Sprintf("An ancient %s relic.", focus),
	}
	g.generated(it)
	return it
}

// GenerateVehicle rolls a travel vehicle. Vehicles carry no combat stats.
func (g *Generator) GenerateVehicle(level int) *inventory.Item {
	level = clampLevel(level)
	rarity := g.RollRarity()
	entry := dice.Pick(g.roll, "vehicle.name", g.content.Vehicles)
	it := &inventory.Item{
		ID:          g.ids.Next(idgen.KindItem),
		Name:        entry.Name,
		Kind:        inventory.KindVehicle,
		Level:       level,
		Rarity:      rarity,
		Tags:        []string{"vehicle"},
		Description: "Gets you across the wastes faster.",
		Vehicle: &inventory.Vehicle{
			SpeedBonus: round(float64(5+level) * rarity.Multiplier()),
			TravelTech: append([]string(nil), entry.TravelTech...),
		},
	}
	g.generated(it)
	return it
}

// GenerateConsumable rolls a healing consumable: heals 25 + 5L, 2 + tier charges.
func (g *Generator) GenerateConsumable(level int) *inventory.Item {
	level = clampLevel(level)
	rarity := g.RollRarity()
	name := dice.Pick(g.roll, "consumable.name", g.content.Consumables)
	it := &inventory.Item{
		ID:          g.ids.Next(idgen.KindItem),
		Name:        name,
		Kind:        inventory.KindConsumable,
		Level:       level,
		Rarity:      rarity,
		Tags:        []string{"consumable", "heal"},
		Description: fmt.Sprintf("Restores %d health.", 25+5*level),
		Consumable: &inventory.Consumable{
			Effect:  inventory.ConsumableEffect{Kind: inventory.EffectHeal, Amount: float64(25 + 5*level)},
			Charges: 2 + int(rarity),
		},
	}
	g.generated(it)
	return it
}

// lootKinds lists the kinds GenerateItem chooses between.
var lootKinds = []inventory.Kind{
	inventory.KindWeapon,
	inventory.KindArmor,
	inventory.KindImplant,
	inventory.KindRelic,
	inventory.KindVehicle,
	inventory.KindConsumable,
}

// GenerateItem rolls an item of a uniformly chosen kind.
func (g *Generator) GenerateItem(level int, focus stats.Affinity) *inventory.Item {
	switch dice.Pick(g.roll, "loot.kind", lootKinds) {
	case inventory.KindWeapon:
		return g.GenerateWeapon(level, focus)
	case inventory.KindArmor:
		return g.GenerateArmor(level, focus)
	case inventory.KindImplant:
		return g.GenerateImplant(level)
	case inventory.KindRelic:
		return g.GenerateRelic(level, focus)
	case inventory.KindVehicle:
		return g.GenerateVehicle(level)
	default:
		return g.GenerateConsumable(level)
	}
}

func (g *Generator) generated(it *inventory.Item) {
	g.logger.Debug("item generated",
		zap.String("id", it.ID),
		zap.String("name", it.Name),
		zap.String("kind", string(it.Kind)),
		zap.String("rarity", it.Rarity.String()),
		zap.Int("level", it.Level),
	)
}
