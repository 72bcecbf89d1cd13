package tactics

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/cyberdino/internal/game/ability"
	"github.com/cory-johannsen/cyberdino/internal/game/character"
	"github.com/cory-johannsen/cyberdino/internal/game/combat"
	"github.com/cory-johannsen/cyberdino/internal/game/event"
	"github.com/cory-johannsen/cyberdino/internal/game/idgen"
	"github.com/cory-johannsen/cyberdino/internal/game/inventory"
	"github.com/cory-johannsen/cyberdino/internal/game/stats"
)

// StartingAbilities are the categories of the player's first three abilities.
var StartingAbilities = []ability.Category{ability.Attack, ability.Defense, ability.Support}

// PlayerBaseStats derives level-1 player stats from a normalized affinity mix.
func PlayerBaseStats(mix stats.Affinities) stats.Stats {
	a, t, p := mix[stats.Arcane], mix[stats.Tech], mix[stats.Primal]
	return stats.Stats{
		MaxHealth:      100 + 40*p + 20*t,
		MaxMana:        40 + 80*a,
		MaxEnergy:      40 + 80*p,
		MaxShield:      20 + 60*t,
		AttackPower:    8 + 10*p,
		TechPower:      8 + 10*t,
		MagicPower:     8 + 10*a,
		Vitality:       8 + 6*p,
		Agility:        6 + 4*p,
		Armor:          4 + 4*t,
		ShieldArmor:    2 + 4*t,
		CritChance:     0.05 + 0.05*t,
		CritMultiplier: 1.5,
		DodgeChance:    0.05 + 0.05*p,
	}
}

// CreatePlayer builds a level-1 player from mix: base stats, a weapon and
// chest armor of the primary affinity, a helmet of the secondary, a medkit,
// and one hybrid ability per StartingAbilities category.
//
// Postcondition: the player starts with full pools and cfg.StartingCredits.
func (g *Game) CreatePlayer(name string, mix stats.Affinities) *character.Character {
	norm := mix.Normalize()
	c := character.New(g.ids.Next(idgen.KindCharacter), name, 1, PlayerBaseStats(norm), norm, true)
	c.Credits = g.cfg.StartingCredits

	primary, secondary := norm.Primary(), norm.Secondary()
	for _, it := range []*inventory.Item{
		g.gen.GenerateWeapon(1, primary),
		g.gen.GenerateArmorForSlot(1, primary, inventory.SlotChest),
		g.gen.GenerateArmorForSlot(1, secondary, inventory.SlotHead),
	} {
		if err := c.Equip(it); err != nil {
			g.logger.Error("equipping starting gear", zap.String("item", it.ID), zap.Error(err))
		}
	}
	c.Inventory.Add(g.gen.GenerateConsumable(1))
	for _, cat := range StartingAbilities {
		c.Abilities = append(c.Abilities, g.gen.GenerateHybridAbility(1, norm, cat, false))
	}
	c.RefreshResourceMaximums()
	c.RestoreAll()

	g.playerName, g.playerMix = name, norm
	g.player = c
	g.logger.Info("player created",
		zap.String("player", c.ID),
		zap.String("name", name),
		zap.String("primary", string(primary)),
		zap.String("secondary", string(secondary)),
	)
	return c
}

// StartNewRun discards the current fight and starts over with a fresh
// level-1 player built from the last CreatePlayer call, then spawns an enemy
// and hands the turn to the player. Pending deferred work from the previous
// run never fires.
//
// Precondition: CreatePlayer has been called.
func (g *Game) StartNewRun() error {
	if g.playerMix == nil {
		return fmt.Errorf("tactics: StartNewRun: no player, call CreatePlayer first")
	}
	generation := g.scheduler.Reset()
	g.combat.Reset()
	g.runID = uuid.New()
	g.enemy = nil
	g.CreatePlayer(g.playerName, g.playerMix)

	g.logger.Info("run started",
		zap.String("run_id", g.runID.String()),
		zap.Uint64("generation", generation),
		zap.String("player", g.player.ID),
	)
	g.log(event.LogSystem, "A new run begins. Good luck, %s!", g.player.Name)
	g.SpawnEnemy()
	g.bus.Emit(event.TurnStart{Owner: combat.Player})
	return nil
}
