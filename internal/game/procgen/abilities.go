package procgen

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/cory-johannsen/cyberdino/internal/game/ability"
	"github.com/cory-johannsen/cyberdino/internal/game/dice"
	"github.com/cory-johannsen/cyberdino/internal/game/idgen"
	"github.com/cory-johannsen/cyberdino/internal/game/inventory"
	"github.com/cory-johannsen/cyberdino/internal/game/stats"
)

// costWeights gives the (mana, energy) split of a single-affinity ability.
var costWeights = map[stats.Affinity][2]float64{
	stats.Arcane: {1, 0},
	stats.Tech:   {0.5, 0.5},
	stats.Primal: {0, 1},
}

// coefficientRange is the U(lo, hi) scaling coefficient drawn per category.
var coefficientRange = map[ability.EffectKind][2]float64{
	ability.EffectDamage: {1.1, 1.2},
	ability.EffectShield: {1.2, 1.5},
	ability.EffectHeal:   {1.0, 1.2},
}

// effectBase is the flat term of each effect formula.
var effectBase = map[ability.EffectKind]float64{
	ability.EffectDamage: 15,
	ability.EffectShield: 10,
	ability.EffectHeal:   12,
}

// effect builds the data description for category. Narrate effects draw nothing.
func (g *Generator) effect(category ability.Category, mult float64, weights stats.Affinities, hybrid, magicBonus bool) ability.Effect {
	kind := ability.EffectKindFor(category)
	e := ability.Effect{Kind: kind, Multiplier: mult, Weights: weights, Hybrid: hybrid}
	if kind == ability.EffectNarrate {
		return e
	}
	r := coefficientRange[kind]
	e.Base = effectBase[kind]
	e.Coefficient = g.roll.Uniform("ability.coefficient", r[0], r[1])
	e.MagicBonus = kind == ability.EffectHeal && magicBonus
	return e
}

// poolCost returns max(round(base * share * U(0.8, 1.2)), round(floor * base)).
func (g *Generator) poolCost(label string, base, share, floor float64) float64 {
	return math.Max(round(base*share*g.roll.Uniform(label, 0.8, 1.2)), round(floor*base))
}

// GenerateAbility rolls a single-affinity ability.
//
// Base cost is 10 + 2L. Arcane costs mana, primal energy and tech both; each
// weighted pool costs at least 40% of the base. Cooldown is 3 + floor(U*3).
func (g *Generator) GenerateAbility(level int, focus stats.Affinity, category ability.Category) *ability.Ability {
	level = clampLevel(level)
	rarity := g.RollRarity()
	mult := rarity.Multiplier()

	name := fmt.Sprintf("%s %s", title(string(focus)), title(string(category)))
	if names := g.content.Abilities[focus][category]; len(names) > 0 {
		name = dice.Pick(g.roll, "ability.name", names)
	}

	base := float64(10 + 2*level)
	w := costWeights[focus]
	var cost ability.Cost
	if w[0] > 0 {
		cost.Mana = g.poolCost("ability.cost.mana", base, w[0], 0.4)
	}
	if w[1] > 0 {
		cost.Energy = g.poolCost("ability.cost.energy", base, w[1], 0.4)
	}
	cooldown := 3 + g.roll.Intn("ability.cooldown", 3)

	a := &ability.Ability{
		ID:            g.ids.Next(idgen.KindAbility),
		Name:          name,
		Category:      category,
		Affinity:      focus,
		Cost:          cost,
		Cooldown:      cooldown,
		Range:         rangeFor(category),
		TargetType:    ability.TargetFor(category),
		Tags:          []string{string(focus), string(category)},
		Description:   fmt.Sprintf("A %s %s technique.", focus, category),
		AnimationType: ability.DefaultAnimation,
		Rarity:        rarity,
		Effect:        g.effect(category, mult, stats.Single(focus), false, focus == stats.Arcane),
	}
	g.abilityGenerated(a)
	return a
}

// GenerateHybridAbility rolls an ability drawing on the caster's two strongest
// affinities.
//
// Base cost is 12 + 3L, doubled for ultimates. The mana share is
// arcane / (arcane + primal) and energy takes the rest; both pools cost at
// least 30% of the base. Cooldown is 4 (8 for ultimates) + floor(U*2).
// Ultimates are always legendary.
func (g *Generator) GenerateHybridAbility(level int, affinities stats.Affinities, category ability.Category, ultimate bool) *ability.Ability {
	level = clampLevel(level)
	mix := affinities.Normalize()
	ranked := mix.Ranked()
	primary, secondary := ranked[0], ranked[1]

	rarity := inventory.Legendary
	if !ultimate {
		rarity = g.RollRarity()
	}
	mult := rarity.Multiplier()

	key := primary.Key() + "_" + secondary.Key()
	entry, ok := g.content.Hybrids[key][category.Key()]
	if !ok || entry.Name == "" {
		entry = HybridEntry{Name: fmt.Sprintf("%s-%s %s", title(string(primary)), title(string(secondary)), title(string(category)))}
	}
	animation := entry.Animation
	if animation == "" {
		animation = ability.DefaultAnimation
	}
	name := entry.Name
	if ultimate {
		name = "Ultimate: " + name
	}

	base := float64(12 + 3*level)
	if ultimate {
		base *= 2
	}
	manaShare := 0.5
	if a, p := mix[stats.Arcane], mix[stats.Primal]; a+p > 0 {
		manaShare = a / (a + p)
	}
	cost := ability.Cost{
		Mana:   g.poolCost("hybrid.cost.mana", base, manaShare, 0.3),
		Energy: g.poolCost("hybrid.cost.energy", base, 1-manaShare, 0.3),
	}
	cooldown := 4
	if ultimate {
		cooldown = 8
	}
	cooldown += g.roll.Intn("hybrid.cooldown", 2)

	tags := []string{string(primary), string(secondary), string(category), "hybrid"}
	if ultimate {
		tags = append(tags, "ultimate")
	}
	a := &ability.Ability{
		ID:            g.ids.Next(idgen.KindAbility),
		Name:          name,
		Category:      category,
		Affinity:      primary,
		Cost:          cost,
		Cooldown:      cooldown,
		Range:         rangeFor(category),
		TargetType:    ability.TargetFor(category),
		Tags:          tags,
		Description:   fmt.Sprintf("A %s/%s %s fusion.", primary, secondary, category),
		AnimationType: animation,
		Rarity:        rarity,
		Ultimate:      ultimate,
		Effect:        g.effect(category, mult, mix, true, true),
	}
	g.abilityGenerated(a)
	return a
}

func rangeFor(c ability.Category) int {
	if ability.TargetFor(c) == ability.TargetEnemy {
		return 1
	}
	return 0
}

func (g *Generator) abilityGenerated(a *ability.Ability) {
	g.logger.Debug("ability generated",
		zap.String("id", a.ID),
		zap.String("name", a.Name),
		zap.String("category", string(a.Category)),
		zap.Bool("ultimate", a.Ultimate),
	)
}
