package combat_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/cyberdino/internal/game/ability"
	"github.com/cory-johannsen/cyberdino/internal/game/character"
	"github.com/cory-johannsen/cyberdino/internal/game/combat"
	"github.com/cory-johannsen/cyberdino/internal/game/dice"
	"github.com/cory-johannsen/cyberdino/internal/game/event"
	"github.com/cory-johannsen/cyberdino/internal/game/stats"
)

var epoch = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

type roster struct {
	player *character.Character
	enemy  *character.Character
}

func (r *roster) Player() *character.Character { return r.player }
func (r *roster) Enemy() *character.Character  { return r.enemy }

type harness struct {
	sys    *combat.System
	bus    *event.Bus
	sched  *combat.Scheduler
	clock  *combat.ManualClock
	roster *roster
	events []event.Event
}

func (h *harness) names() []event.Name {
	out := make([]event.Name, 0, len(h.events))
	for _, e := range h.events {
		out = append(out, e.Name())
	}
	return out
}

func (h *harness) count(name event.Name) int {
	n := 0
	for _, e := range h.events {
		if e.Name() == name {
			n++
		}
	}
	return n
}

func newHarness(seed int64, opts combat.Options) *harness {
	h := &harness{
		bus:    event.NewBus(nil),
		clock:  combat.NewManualClock(epoch),
		roster: &roster{},
	}
	h.sched = combat.NewScheduler(h.clock, nil)
	for _, name := range []event.Name{
		event.NameLog, event.NameBasicHit, event.NameAbilityCast, event.NameCharacterDead,
		event.NameTurnStart, event.NameTurnEnd,
	} {
		h.bus.On(name, func(e event.Event) error {
			h.events = append(h.events, e)
			return nil
		})
	}
	roll := dice.NewLoggedRoller(dice.NewLCGSource(seed), nil)
	h.sys = combat.NewSystem(h.bus, roll, h.sched, h.roster, opts, nil)
	return h
}

func fighter(id string, s stats.Stats) *character.Character {
	return character.New(id, id, 1, s, stats.Single(stats.Primal), id == "player")
}

func attackAbility(id string, cost ability.Cost, cooldown int) *ability.Ability {
	return &ability.Ability{
		ID: id, Name: "Tail Slam", Category: ability.Attack, Affinity: stats.Primal,
		Cost: cost, Cooldown: cooldown, TargetType: ability.TargetEnemy,
		Effect: ability.Effect{Kind: ability.EffectDamage, Base: 15, Coefficient: 1.1, Multiplier: 1, Weights: stats.Single(stats.Primal)},
	}
}

func TestBasicAttack_Property_DamageWindow(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		h := newHarness(rapid.Int64().Draw(rt, "seed"), combat.DefaultOptions())
		attacker := fighter("player", stats.Stats{MaxHealth: 100, AttackPower: 10, Vitality: 10, CritMultiplier: 1.5})
		defender := fighter("enemy", stats.Stats{MaxHealth: 50})

		res, ok := h.sys.BasicAttack(attacker, defender)
		require.True(rt, ok)
		assert.False(rt, res.IsCrit)
		assert.GreaterOrEqual(rt, res.Damage, 12.0)
		assert.LessOrEqual(rt, res.Damage, 18.0)
		assert.GreaterOrEqual(rt, defender.Health, 32.0)
		assert.LessOrEqual(rt, defender.Health, 38.0)
		assert.Equal(rt, []event.Name{event.NameLog, event.NameBasicHit}, h.names())
	})
}

func TestBasicAttack_CritMultiplies(t *testing.T) {
	h := newHarness(3, combat.DefaultOptions())
	attacker := fighter("player", stats.Stats{MaxHealth: 100, AttackPower: 10, Vitality: 10, CritChance: 1, CritMultiplier: 2})
	defender := fighter("enemy", stats.Stats{MaxHealth: 500})

	res, ok := h.sys.BasicAttack(attacker, defender)
	require.True(t, ok)
	assert.True(t, res.IsCrit)
	assert.GreaterOrEqual(t, res.Damage, 24.0)
	assert.LessOrEqual(t, res.Damage, 36.0)
	hit := h.events[1].(event.BasicHit)
	assert.True(t, hit.IsCrit)
	assert.Equal(t, res.Damage, hit.Amount)
}

func TestBasicAttack_ArmorFloorsAtZero(t *testing.T) {
	h := newHarness(3, combat.DefaultOptions())
	attacker := fighter("player", stats.Stats{MaxHealth: 100, AttackPower: 10})
	defender := fighter("enemy", stats.Stats{MaxHealth: 50, Armor: 1000})
	res, ok := h.sys.BasicAttack(attacker, defender)
	require.True(t, ok)
	assert.Equal(t, 0.0, res.Damage)
	assert.Equal(t, 50.0, defender.Health)
}

func TestBasicAttack_LethalEmitsDeathOnce(t *testing.T) {
	h := newHarness(3, combat.DefaultOptions())
	attacker := fighter("player", stats.Stats{MaxHealth: 100, AttackPower: 100})
	defender := fighter("enemy", stats.Stats{MaxHealth: 10, MaxShield: 5})

	res, ok := h.sys.BasicAttack(attacker, defender)
	require.True(t, ok)
	assert.True(t, res.Killed)
	assert.False(t, defender.IsAlive())
	assert.Equal(t, 0.0, defender.Shield)
	assert.Equal(t, 1, h.count(event.NameCharacterDead))

	_, ok = h.sys.BasicAttack(attacker, defender)
	assert.False(t, ok, "the dead cannot be attacked again")
	assert.Equal(t, 1, h.count(event.NameCharacterDead))
}

func TestBasicAttack_EnergyCost(t *testing.T) {
	opts := combat.DefaultOptions()
	opts.BasicAttackEnergyCost = 10
	h := newHarness(3, opts)
	attacker := fighter("player", stats.Stats{MaxHealth: 100, MaxEnergy: 15, AttackPower: 10})
	defender := fighter("enemy", stats.Stats{MaxHealth: 500})

	_, ok := h.sys.BasicAttack(attacker, defender)
	require.True(t, ok)
	assert.Equal(t, 5.0, attacker.Energy)
	assert.False(t, h.sys.CanBasicAttack(attacker))

	h.events = nil
	_, ok = h.sys.BasicAttack(attacker, defender)
	assert.False(t, ok)
	assert.Equal(t, []event.Name{event.NameLog}, h.names())
}

func TestUseAbility_RefusedWithoutMana(t *testing.T) {
	h := newHarness(1, combat.DefaultOptions())
	actor := fighter("player", stats.Stats{MaxHealth: 100, MaxMana: 50, AttackPower: 10})
	actor.Mana = 0
	target := fighter("enemy", stats.Stats{MaxHealth: 100})
	a := attackAbility("ability-1", ability.Cost{Mana: 10}, 3)

	_, ok := h.sys.UseAbility(a, actor, target)

	assert.False(t, ok)
	assert.Equal(t, 0.0, actor.Mana)
	assert.True(t, actor.Ready(a.ID))
	assert.Equal(t, 100.0, target.Health)
	assert.Equal(t, []event.Name{event.NameLog}, h.names())
	assert.Zero(t, h.count(event.NameAbilityCast))
}

func TestUseAbility_RefusedOnCooldown(t *testing.T) {
	h := newHarness(1, combat.DefaultOptions())
	actor := fighter("player", stats.Stats{MaxHealth: 100, MaxMana: 50, AttackPower: 10})
	target := fighter("enemy", stats.Stats{MaxHealth: 100})
	a := attackAbility("ability-1", ability.Cost{Mana: 10}, 3)
	actor.SetCooldown(a.ID, 2)

	_, ok := h.sys.UseAbility(a, actor, target)
	assert.False(t, ok)
	assert.Equal(t, 50.0, actor.Mana)
	assert.Equal(t, []event.Name{event.NameLog}, h.names())
}

func TestUseAbility_DamagePaysAndStartsCooldown(t *testing.T) {
	h := newHarness(1, combat.DefaultOptions())
	actor := fighter("player", stats.Stats{MaxHealth: 100, MaxMana: 50, MaxEnergy: 30, AttackPower: 10})
	target := fighter("enemy", stats.Stats{MaxHealth: 100})
	a := attackAbility("ability-1", ability.Cost{Mana: 10, Energy: 5}, 3)

	out, ok := h.sys.UseAbility(a, actor, target)
	require.True(t, ok)
	assert.Equal(t, 26.0, out.Damage) // round(15 + 10*1.1)
	assert.Equal(t, 74.0, target.Health)
	assert.Equal(t, 40.0, actor.Mana)
	assert.Equal(t, 25.0, actor.Energy)
	assert.Equal(t, 3, actor.Cooldown(a.ID))
	require.NotEmpty(t, h.events)
	cast, isCast := h.events[0].(event.AbilityCast)
	require.True(t, isCast, "cast is announced before anything else")
	assert.Same(t, a, cast.Ability)
	assert.Same(t, target, cast.Target)
}

func TestUseAbility_SelfTargetingRedirectsToActor(t *testing.T) {
	h := newHarness(1, combat.DefaultOptions())
	actor := fighter("player", stats.Stats{MaxHealth: 100, MaxShield: 100, Vitality: 10})
	actor.Shield = 0
	enemy := fighter("enemy", stats.Stats{MaxHealth: 100})
	a := &ability.Ability{
		ID: "ability-2", Name: "Scale Harden", Category: ability.Defense, TargetType: ability.TargetSelf,
		Effect: ability.Effect{Kind: ability.EffectShield, Base: 10, Coefficient: 1.5, Multiplier: 1},
	}
	out, ok := h.sys.UseAbility(a, actor, enemy)
	require.True(t, ok)
	assert.Equal(t, 25.0, out.Shield)
	assert.Equal(t, 25.0, actor.Shield)
	assert.Equal(t, 0.0, enemy.Shield)
}

func TestUseAbility_HybridShieldAlsoHeals(t *testing.T) {
	h := newHarness(1, combat.DefaultOptions())
	actor := fighter("player", stats.Stats{MaxHealth: 100, MaxShield: 200, Vitality: 10, MagicPower: 20})
	actor.Shield = 0
	actor.Health = 50
	a := &ability.Ability{
		ID: "ability-3", Name: "Totemic Ward", Category: ability.Defense, TargetType: ability.TargetSelf,
		Effect: ability.Effect{Kind: ability.EffectShield, Base: 10, Coefficient: 1.5, Multiplier: 1, Hybrid: true,
			Weights: stats.Affinities{stats.Arcane: 1, stats.Primal: 1}},
	}
	out, ok := h.sys.UseAbility(a, actor, nil)
	require.True(t, ok)
	// 10 + 15 + 20*0.5*0.5 = 30 shield, 20% of it as health.
	assert.Equal(t, 30.0, out.Shield)
	assert.Equal(t, 6.0, out.Healed)
	assert.Equal(t, 56.0, actor.Health)
}

func TestUseAbility_HybridHealRestoresEnergy(t *testing.T) {
	h := newHarness(1, combat.DefaultOptions())
	actor := fighter("player", stats.Stats{MaxHealth: 100, MaxEnergy: 100, Vitality: 10, MagicPower: 10})
	actor.Health = 10
	actor.Energy = 0
	a := &ability.Ability{
		ID: "ability-4", Name: "Verdant Bloom", Category: ability.Support, TargetType: ability.TargetSelf,
		Effect: ability.Effect{Kind: ability.EffectHeal, Base: 12, Coefficient: 1.0, Multiplier: 1, Hybrid: true, MagicBonus: true},
	}
	out, ok := h.sys.UseAbility(a, actor, nil)
	require.True(t, ok)
	// 12 + 10 + 3 = 25 health; a quarter of it as energy.
	assert.Equal(t, 25.0, out.Healed)
	assert.Equal(t, 6.0, out.Energy)
}

func TestUseAbility_ControlOnlyNarrates(t *testing.T) {
	h := newHarness(1, combat.DefaultOptions())
	actor := fighter("player", stats.Stats{MaxHealth: 100})
	target := fighter("enemy", stats.Stats{MaxHealth: 100})
	a := &ability.Ability{
		ID: "ability-5", Name: "EMP Pulse", Category: ability.Control, TargetType: ability.TargetEnemy, Cooldown: 2,
		Effect: ability.Effect{Kind: ability.EffectNarrate},
	}
	out, ok := h.sys.UseAbility(a, actor, target)
	require.True(t, ok)
	assert.True(t, out.Narrated)
	assert.Equal(t, 100.0, target.Health)
	assert.Equal(t, []event.Name{event.NameAbilityCast, event.NameLog}, h.names())
	assert.Equal(t, 2, actor.Cooldown(a.ID))
}

func TestUseAbility_SelfLethalEffectKillsActor(t *testing.T) {
	h := newHarness(1, combat.DefaultOptions())
	actor := fighter("player", stats.Stats{MaxHealth: 10, AttackPower: 100})
	a := &ability.Ability{
		ID: "ability-6", Name: "Overload", Category: ability.Attack, TargetType: ability.TargetSelf,
		Effect: ability.Effect{Kind: ability.EffectDamage, Base: 15, Coefficient: 1, Multiplier: 1, Weights: stats.Single(stats.Primal)},
	}
	_, ok := h.sys.UseAbility(a, actor, nil)
	require.True(t, ok)
	assert.False(t, actor.IsAlive())
	require.Equal(t, 1, h.count(event.NameCharacterDead))
}

func TestUseAbility_RefusedOnFallenTarget(t *testing.T) {
	h := newHarness(1, combat.DefaultOptions())
	actor := fighter("player", stats.Stats{MaxHealth: 100, MaxMana: 50, AttackPower: 100})
	target := fighter("enemy", stats.Stats{MaxHealth: 20})
	a := attackAbility("ability-1", ability.Cost{Mana: 10}, 0)

	_, ok := h.sys.UseAbility(a, actor, target)
	require.True(t, ok)
	require.False(t, target.IsAlive())
	require.Equal(t, 1, h.count(event.NameCharacterDead))
	mana := actor.Mana

	h.events = nil
	_, ok = h.sys.UseAbility(a, actor, target)
	assert.False(t, ok)
	assert.Equal(t, mana, actor.Mana)
	assert.True(t, actor.Ready(a.ID))
	assert.Equal(t, []event.Name{event.NameLog}, h.names())
	assert.Zero(t, h.count(event.NameCharacterDead))
}

func TestFirstReady(t *testing.T) {
	self := fighter("enemy", stats.Stats{MaxHealth: 100, MaxMana: 5})
	expensive := attackAbility("ability-1", ability.Cost{Mana: 50}, 3)
	cheap := attackAbility("ability-2", ability.Cost{Mana: 1}, 3)
	self.Abilities = []*ability.Ability{expensive, cheap}

	d, err := combat.FirstReady{}.Choose(self, nil)
	require.NoError(t, err)
	assert.Nil(t, d.Ability, "first ready ability is unaffordable, so basic attack")

	self.SetCooldown(expensive.ID, 1)
	d, err = combat.FirstReady{}.Choose(self, nil)
	require.NoError(t, err)
	assert.Same(t, cheap, d.Ability)
}

type policyFunc func(self, foe *character.Character) (combat.Decision, error)

func (f policyFunc) Choose(self, foe *character.Character) (combat.Decision, error) { return f(self, foe) }

func TestEnemyPolicy_FailuresFallBack(t *testing.T) {
	opts := combat.DefaultOptions()
	opts.Policy = policyFunc(func(*character.Character, *character.Character) (combat.Decision, error) {
		return combat.Decision{}, errors.New("script exploded")
	})
	h := newHarness(1, opts)
	h.roster.player = fighter("player", stats.Stats{MaxHealth: 100})
	h.roster.enemy = fighter("enemy", stats.Stats{MaxHealth: 100, MaxMana: 50, AttackPower: 10})
	h.roster.enemy.Abilities = []*ability.Ability{attackAbility("ability-1", ability.Cost{Mana: 10}, 3)}

	require.NoError(t, h.sys.EndTurn(combat.Player))
	h.sched.Tick(h.clock.Advance(800 * time.Millisecond))
	assert.Equal(t, 1, h.count(event.NameAbilityCast), "fallback policy casts the ready ability")
}

func TestEnemyPolicy_UnusableChoiceBecomesBasicAttack(t *testing.T) {
	opts := combat.DefaultOptions()
	bogus := attackAbility("ability-9", ability.Cost{Mana: 999}, 3)
	opts.Policy = policyFunc(func(*character.Character, *character.Character) (combat.Decision, error) {
		return combat.Decision{Ability: bogus}, nil
	})
	h := newHarness(1, opts)
	h.roster.player = fighter("player", stats.Stats{MaxHealth: 100})
	h.roster.enemy = fighter("enemy", stats.Stats{MaxHealth: 100, AttackPower: 10})

	require.NoError(t, h.sys.EndTurn(combat.Player))
	h.sched.Tick(h.clock.Advance(800 * time.Millisecond))
	assert.Zero(t, h.count(event.NameAbilityCast))
	assert.Equal(t, 1, h.count(event.NameBasicHit))
}
