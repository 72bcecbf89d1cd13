// Package character models an actor in a fight: base stats, equipment,
// resource pools, abilities and the per-ability cooldown table.
package character

import (
	"fmt"

	"github.com/cory-johannsen/cyberdino/internal/game/ability"
	"github.com/cory-johannsen/cyberdino/internal/game/inventory"
	"github.com/cory-johannsen/cyberdino/internal/game/stats"
)

// ResourceType names one of the four resource pools.
type ResourceType string

const (
	Health ResourceType = "health"
	Mana   ResourceType = "mana"
	Energy ResourceType = "energy"
	Shield ResourceType = "shield"
)

// Character is a player or an enemy.
//
// Invariant: 0 <= Health <= TotalStats().MaxHealth; Health == 0 implies Shield == 0.
// Invariant: every cooldown entry is > 0; absence means the ability is ready.
type Character struct {
	ID         string
	Name       string
	Level      int
	Base       stats.Stats
	Affinities stats.Affinities
	IsPlayer   bool

	XP      int
	TotalXP int
	Credits int

	Health float64
	Mana   float64
	Energy float64
	Shield float64

	Equipment *inventory.Equipment
	Inventory *inventory.Backpack
	Abilities []*ability.Ability

	cooldowns map[string]int
	// maxMana and maxEnergy are the maxima seen by the last refresh.
	maxMana   float64
	maxEnergy float64
}

// New returns a character with empty equipment and full resource pools.
//
// Precondition: id and name must be non-empty; level >= 1.
// Postcondition: Health, Mana, Energy and Shield equal the base maxima.
func New(id, name string, level int, base stats.Stats, affinities stats.Affinities, isPlayer bool) *Character {
	c := &Character{
		ID:         id,
		Name:       name,
		Level:      level,
		Base:       base.Clone(),
		Affinities: affinities.Normalize(),
		IsPlayer:   isPlayer,
		Equipment:  inventory.NewEquipment(),
		Inventory:  inventory.NewBackpack(),
		cooldowns:  make(map[string]int),
	}
	c.RestoreAll()
	return c
}

// TotalStats folds Base with the stats of every stat-bearing equipped item.
// It is recomputed on every call.
func (c *Character) TotalStats() stats.Stats {
	total := c.Base.Clone()
	if c.Equipment == nil {
		return total
	}
	for _, it := range c.Equipment.StatItems() {
		total = total.Add(it.Stats)
	}
	return total
}

// IsAlive reports whether Health is above zero.
func (c *Character) IsAlive() bool { return c.Health > 0 }

// Max returns the current maximum of the given pool.
func (c *Character) Max(rt ResourceType) float64 {
	t := c.TotalStats()
	switch rt {
	case Health:
		return t.MaxHealth
	case Mana:
		return t.MaxMana
	case Energy:
		return t.MaxEnergy
	case Shield:
		return t.MaxShield
	default:
		return 0
	}
}

// Current returns the current amount of the given pool.
func (c *Character) Current(rt ResourceType) float64 {
	switch rt {
	case Health:
		return c.Health
	case Mana:
		return c.Mana
	case Energy:
		return c.Energy
	case Shield:
		return c.Shield
	default:
		return 0
	}
}

// RestoreAll sets every pool to its maximum.
//
// Postcondition: Health, Mana, Energy and Shield equal their TotalStats maxima.
func (c *Character) RestoreAll() {
	t := c.TotalStats()
	c.Health = t.MaxHealth
	c.Mana = t.MaxMana
	c.Energy = t.MaxEnergy
	c.Shield = t.MaxShield
	c.maxMana = t.MaxMana
	c.maxEnergy = t.MaxEnergy
}

// RefreshResourceMaximums reconciles the pools with the current maxima after an
// equipment change. Mana and energy keep their fraction full when a maximum
// grows and are clamped when it shrinks; health and shield are clamped.
func (c *Character) RefreshResourceMaximums() {
	t := c.TotalStats()
	c.Mana = rescale(c.Mana, c.maxMana, t.MaxMana)
	c.Energy = rescale(c.Energy, c.maxEnergy, t.MaxEnergy)
	c.maxMana = t.MaxMana
	c.maxEnergy = t.MaxEnergy
	c.Health = clamp(c.Health, 0, t.MaxHealth)
	c.Shield = clamp(c.Shield, 0, t.MaxShield)
	if c.Health == 0 {
		c.Shield = 0
	}
}

func rescale(current, oldMax, newMax float64) float64 {
	switch {
	case newMax > oldMax && oldMax > 0:
		current = current / oldMax * newMax
	case newMax > oldMax:
		current = newMax
	}
	return clamp(current, 0, newMax)
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ApplyDamage spends shield first, then health.
//
// Precondition: amount should be >= 0; non-positive amounts are ignored.
// Postcondition: Health >= 0; if Health reaches 0, Shield is also 0.
// Returns the amount absorbed by shield and the amount taken from health.
func (c *Character) ApplyDamage(amount float64) (absorbed, taken float64) {
	if amount <= 0 || !c.IsAlive() {
		return 0, 0
	}
	absorbed = min(c.Shield, amount)
	c.Shield -= absorbed
	taken = min(c.Health, amount-absorbed)
	c.Health -= taken
	if c.Health <= 0 {
		c.Health = 0
		c.Shield = 0
	}
	return absorbed, taken
}

// Heal restores health up to the maximum. The dead cannot be healed.
//
// Postcondition: Returns the amount actually restored.
func (c *Character) Heal(amount float64) float64 {
	if amount <= 0 || !c.IsAlive() {
		return 0
	}
	before := c.Health
	c.Health = clamp(c.Health+amount, 0, c.Max(Health))
	return c.Health - before
}

// AddShield grants shield up to MaxShield.
//
// Postcondition: Returns the amount actually granted.
func (c *Character) AddShield(amount float64) float64 {
	if amount <= 0 || !c.IsAlive() {
		return 0
	}
	before := c.Shield
	c.Shield = clamp(c.Shield+amount, 0, c.Max(Shield))
	return c.Shield - before
}

// RestoreEnergy adds energy up to MaxEnergy and returns the amount added.
func (c *Character) RestoreEnergy(amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	before := c.Energy
	c.Energy = clamp(c.Energy+amount, 0, c.Max(Energy))
	return c.Energy - before
}

// CanPayCost reports whether every component of cost is affordable. A health
// cost must leave at least some health behind.
func (c *Character) CanPayCost(cost ability.Cost) bool {
	if c.Mana < cost.Mana || c.Energy < cost.Energy {
		return false
	}
	if cost.Health > 0 && c.Health <= cost.Health {
		return false
	}
	return true
}

// PayCost deducts cost from the pools.
//
// Precondition: CanPayCost(cost) is true.
// Postcondition: no pool goes below zero.
func (c *Character) PayCost(cost ability.Cost) error {
	if !c.CanPayCost(cost) {
		return fmt.Errorf("character: PayCost: %s cannot afford %+v", c.Name, cost)
	}
	c.Mana -= cost.Mana
	c.Energy -= cost.Energy
	c.Health -= cost.Health
	return nil
}

// Cooldown returns the turns remaining before abilityID is ready; 0 means ready.
func (c *Character) Cooldown(abilityID string) int { return c.cooldowns[abilityID] }

// Ready reports whether abilityID has no cooldown entry.
func (c *Character) Ready(abilityID string) bool {
	_, onCooldown := c.cooldowns[abilityID]
	return !onCooldown
}

// SetCooldown starts a cooldown. Non-positive turns clear the entry.
func (c *Character) SetCooldown(abilityID string, turns int) {
	if c.cooldowns == nil {
		c.cooldowns = make(map[string]int)
	}
	if turns <= 0 {
		delete(c.cooldowns, abilityID)
		return
	}
	c.cooldowns[abilityID] = turns
}

// TickCooldowns decrements every cooldown by one turn, removing those that reach 0.
func (c *Character) TickCooldowns() {
	for id, turns := range c.cooldowns {
		if turns <= 1 {
			delete(c.cooldowns, id)
			continue
		}
		c.cooldowns[id] = turns - 1
	}
}

// Cooldowns returns a copy of the cooldown table.
func (c *Character) Cooldowns() map[string]int {
	out := make(map[string]int, len(c.cooldowns))
	for k, v := range c.cooldowns {
		out[k] = v
	}
	return out
}
