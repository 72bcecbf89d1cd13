package ability_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/cyberdino/internal/game/ability"
	"github.com/cory-johannsen/cyberdino/internal/game/stats"
)

func validAbility() *ability.Ability {
	return &ability.Ability{
		ID: "ability-1", Name: "Spark", Category: ability.Attack, Affinity: stats.Tech,
		Cost: ability.Cost{Mana: 5, Energy: 5}, Cooldown: 3, Range: 1,
		TargetType: ability.TargetEnemy,
		Effect:     ability.Effect{Kind: ability.EffectDamage, Base: 15, Coefficient: 1.1, Multiplier: 1, Weights: stats.Single(stats.Tech)},
	}
}

func TestAbility_Validate(t *testing.T) {
	require.NoError(t, validAbility().Validate())

	a := validAbility()
	a.Cooldown = -1
	a.Cost.Health = -2
	err := a.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Cooldown")
	assert.Contains(t, err.Error(), "Cost")

	b := validAbility()
	b.Effect.Kind = "teleport"
	assert.Error(t, b.Validate())
}

func TestAbility_AnimationDefaultsToCast(t *testing.T) {
	a := validAbility()
	assert.Equal(t, ability.DefaultAnimation, a.Animation())
	a.AnimationType = "plasma_whip"
	assert.Equal(t, "plasma_whip", a.Animation())
}

func TestEffectKindFor(t *testing.T) {
	assert.Equal(t, ability.EffectDamage, ability.EffectKindFor(ability.Attack))
	assert.Equal(t, ability.EffectShield, ability.EffectKindFor(ability.Defense))
	assert.Equal(t, ability.EffectHeal, ability.EffectKindFor(ability.Support))
	for _, c := range []ability.Category{ability.Control, ability.Summon, ability.Movement} {
		assert.Equal(t, ability.EffectNarrate, ability.EffectKindFor(c), c)
	}
}

func TestTargetFor(t *testing.T) {
	assert.Equal(t, ability.TargetEnemy, ability.TargetFor(ability.Attack))
	assert.Equal(t, ability.TargetEnemy, ability.TargetFor(ability.Control))
	assert.Equal(t, ability.TargetSelf, ability.TargetFor(ability.Support))
	assert.Equal(t, ability.TargetSelf, ability.TargetFor(ability.Defense))
}

func TestCategory_Key(t *testing.T) {
	for _, c := range ability.Categories {
		assert.NotEqual(t, "UNKNOWN", c.Key())
	}
	assert.Equal(t, "SUPPORT", ability.Support.Key())
}
