package character_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/cyberdino/internal/game/ability"
	"github.com/cory-johannsen/cyberdino/internal/game/character"
	"github.com/cory-johannsen/cyberdino/internal/game/inventory"
	"github.com/cory-johannsen/cyberdino/internal/game/stats"
)

func baseStats() stats.Stats {
	return stats.Stats{MaxHealth: 100, MaxMana: 50, MaxEnergy: 40, MaxShield: 30, AttackPower: 10, Vitality: 10}
}

func newChar() *character.Character {
	return character.New("char-1", "Rex", 1, baseStats(), stats.Single(stats.Primal), true)
}

func manaArmor(id string, mana float64) *inventory.Item {
	return &inventory.Item{
		ID: id, Name: "Robe " + id, Kind: inventory.KindArmor, Level: 1,
		Stats: stats.Stats{MaxMana: mana, Armor: 2},
		Armor: &inventory.Armor{Slot: inventory.SlotChest, Mitigation: 2},
	}
}

func TestNew_StartsFull(t *testing.T) {
	c := newChar()
	assert.Equal(t, 100.0, c.Health)
	assert.Equal(t, 50.0, c.Mana)
	assert.Equal(t, 40.0, c.Energy)
	assert.Equal(t, 30.0, c.Shield)
	assert.True(t, c.IsAlive())
	assert.InDelta(t, 1.0, c.Affinities[stats.Primal], 1e-9)
}

func TestApplyDamage_ShieldAbsorbsFirst(t *testing.T) {
	c := newChar()
	absorbed, taken := c.ApplyDamage(45)
	assert.Equal(t, 30.0, absorbed)
	assert.Equal(t, 15.0, taken)
	assert.Equal(t, 0.0, c.Shield)
	assert.Equal(t, 85.0, c.Health)
}

func TestApplyDamage_Property_LethalClearsEverything(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		c := newChar()
		c.Shield = float64(rapid.IntRange(0, 30).Draw(rt, "shield"))
		c.Health = float64(rapid.IntRange(1, 100).Draw(rt, "health"))
		extra := float64(rapid.IntRange(0, 500).Draw(rt, "extra"))

		c.ApplyDamage(c.Shield + c.Health + extra)

		assert.Equal(rt, 0.0, c.Health)
		assert.Equal(rt, 0.0, c.Shield)
		assert.False(rt, c.IsAlive())
	})
}

func TestApplyDamage_Property_HealthStaysInRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		c := newChar()
		hits := rapid.SliceOf(rapid.Float64Range(-10, 80)).Draw(rt, "hits")
		for _, h := range hits {
			c.ApplyDamage(h)
			assert.GreaterOrEqual(rt, c.Health, 0.0)
			assert.LessOrEqual(rt, c.Health, c.Max(character.Health))
			if c.Health == 0 {
				assert.Equal(rt, 0.0, c.Shield)
			}
		}
	})
}

func TestTotalStats_IdempotentAndIncludesEquipment(t *testing.T) {
	c := newChar()
	require.NoError(t, c.Equip(manaArmor("a", 25)))
	first := c.TotalStats()
	second := c.TotalStats()
	assert.Equal(t, first, second)
	assert.Equal(t, 75.0, first.MaxMana)
	assert.Equal(t, 2.0, first.Armor)
	assert.Equal(t, 50.0, c.Base.MaxMana, "base stats are not touched by equipment")
}

func TestRefreshResourceMaximums_ScalesUpAndClampsDown(t *testing.T) {
	c := newChar()
	c.Mana = 25 // half full

	require.NoError(t, c.Equip(manaArmor("a", 50)))
	assert.InDelta(t, 50.0, c.Mana, 1e-9, "fraction full is preserved on increase")

	require.NoError(t, c.Equip(manaArmor("b", 0)))
	assert.Equal(t, 50.0, c.Mana, "clamped to the new maximum")
	assert.Equal(t, 1, c.Inventory.Len(), "displaced armor goes to the backpack")
}

func TestHealAndShieldAreCapped(t *testing.T) {
	c := newChar()
	c.Health = 90
	assert.Equal(t, 10.0, c.Heal(50))
	assert.Equal(t, 100.0, c.Health)

	c.Shield = 25
	assert.Equal(t, 5.0, c.AddShield(20))

	c.Energy = 0
	assert.Equal(t, 40.0, c.RestoreEnergy(100))

	c.ApplyDamage(1000)
	assert.Equal(t, 0.0, c.Heal(10), "the dead cannot be healed")
}

func TestCanPayCost(t *testing.T) {
	c := newChar()
	assert.True(t, c.CanPayCost(ability.Cost{Mana: 50, Energy: 40}))
	assert.False(t, c.CanPayCost(ability.Cost{Mana: 51}))
	assert.False(t, c.CanPayCost(ability.Cost{Health: 100}), "health cost must leave some health")
	assert.True(t, c.CanPayCost(ability.Cost{Health: 99}))

	require.NoError(t, c.PayCost(ability.Cost{Mana: 10, Energy: 5, Health: 1}))
	assert.Equal(t, 40.0, c.Mana)
	assert.Equal(t, 35.0, c.Energy)
	assert.Equal(t, 99.0, c.Health)

	c.Mana = 0
	assert.Error(t, c.PayCost(ability.Cost{Mana: 10}))
	assert.Equal(t, 0.0, c.Mana)
}

func TestCooldowns_TickAndExpire(t *testing.T) {
	c := newChar()
	c.SetCooldown("ability-1", 2)
	c.SetCooldown("ability-2", 1)
	assert.False(t, c.Ready("ability-1"))

	c.TickCooldowns()
	assert.Equal(t, 1, c.Cooldown("ability-1"))
	assert.True(t, c.Ready("ability-2"))
	assert.NotContains(t, c.Cooldowns(), "ability-2")

	c.TickCooldowns()
	assert.True(t, c.Ready("ability-1"))
	assert.Empty(t, c.Cooldowns())

	c.SetCooldown("ability-3", 0)
	assert.True(t, c.Ready("ability-3"))
}

func TestCooldowns_Property_StrictlyDecrease(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		c := newChar()
		turns := rapid.IntRange(1, 12).Draw(rt, "turns")
		c.SetCooldown("x", turns)
		for i := turns; i > 0; i-- {
			require.Equal(rt, i, c.Cooldown("x"))
			c.TickCooldowns()
		}
		assert.True(rt, c.Ready("x"))
	})
}

func TestEquipFromInventory(t *testing.T) {
	c := newChar()
	c.Inventory.Add(manaArmor("a", 10))
	c.Inventory.Add(&inventory.Item{
		ID: "m", Name: "Medkit", Kind: inventory.KindConsumable, Level: 1,
		Consumable: &inventory.Consumable{Effect: inventory.ConsumableEffect{Kind: inventory.EffectHeal, Amount: 30}, Charges: 1},
	})

	_, err := c.EquipFromInventory(1)
	assert.Error(t, err, "consumables cannot be equipped")
	assert.Equal(t, 2, c.Inventory.Len())

	it, err := c.EquipFromInventory(0)
	require.NoError(t, err)
	assert.Equal(t, "a", it.ID)
	assert.Equal(t, 60.0, c.Max(character.Mana))
	assert.Equal(t, 1, c.Inventory.Len())

	_, err = c.EquipFromInventory(7)
	assert.Error(t, err)
}

func TestUseConsumable(t *testing.T) {
	c := newChar()
	c.Health = 50
	c.Inventory.Add(&inventory.Item{
		ID: "m", Name: "Medkit", Kind: inventory.KindConsumable, Level: 1,
		Consumable: &inventory.Consumable{Effect: inventory.ConsumableEffect{Kind: inventory.EffectHeal, Amount: 30}, Charges: 1},
	})
	healed, err := c.UseConsumable(0)
	require.NoError(t, err)
	assert.Equal(t, 30.0, healed)
	assert.Equal(t, 80.0, c.Health)
	assert.Equal(t, 0, c.Inventory.Len(), "spent consumable is removed")

	_, err = c.UseConsumable(0)
	assert.Error(t, err)
}
