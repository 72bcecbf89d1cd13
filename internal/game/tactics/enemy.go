package tactics

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/cyberdino/internal/game/ability"
	"github.com/cory-johannsen/cyberdino/internal/game/character"
	"github.com/cory-johannsen/cyberdino/internal/game/event"
	"github.com/cory-johannsen/cyberdino/internal/game/idgen"
	"github.com/cory-johannsen/cyberdino/internal/game/stats"
)

// EnemyBaseStats returns the base stats of a level-L enemy specialised in focus.
func EnemyBaseStats(level int, focus stats.Affinity) stats.Stats {
	l := float64(level)
	s := stats.Stats{
		MaxHealth:      60 + 18*l,
		MaxMana:        30 + 8*l,
		MaxEnergy:      30 + 8*l,
		MaxShield:      10 + 4*l,
		AttackPower:    4 + l,
		TechPower:      4 + l,
		MagicPower:     4 + l,
		Vitality:       5 + 2*l,
		Agility:        3 + l,
		Armor:          2 + l,
		ShieldArmor:    1,
		CritChance:     0.05,
		CritMultiplier: 1.5,
		DodgeChance:    0.03,
	}
	focusPower := 8 + 3*l
	switch focus {
	case stats.Arcane:
		s.MagicPower = focusPower
	case stats.Tech:
		s.TechPower = focusPower
	case stats.Primal:
		s.AttackPower = focusPower
	}
	return s
}

// SpawnEnemy replaces the current enemy with a new one at the player's level
// or one above, specialised in a random affinity.
//
// Postcondition: Enemy() is the new enemy at full pools; EnemySpawned was emitted.
func (g *Game) SpawnEnemy() *character.Character {
	level := 1
	if g.player != nil {
		level = g.player.Level
	}
	level += g.gen.Roller().Intn("enemy.level", 2)
	focus := g.gen.RollFocus()
	name := g.gen.EnemyName(focus)

	e := character.New(g.ids.Next(idgen.KindCharacter), name, level, EnemyBaseStats(level, focus), stats.Single(focus), false)
	if err := e.Equip(g.gen.GenerateWeapon(level, focus)); err != nil {
		g.logger.Error("equipping enemy weapon", zap.String("enemy", e.ID), zap.Error(err))
	}
	e.Abilities = append(e.Abilities,
		g.gen.GenerateAbility(level, focus, ability.Attack),
		g.gen.GenerateAbility(level, focus, ability.Defense),
	)
	e.RestoreAll()

	g.enemy = e
	g.logger.Info("enemy spawned",
		zap.String("run_id", g.runID.String()),
		zap.String("enemy", e.ID),
		zap.String("name", e.Name),
		zap.Int("level", level),
		zap.String("focus", string(focus)),
	)
	g.bus.Emit(event.EnemySpawned{Enemy: e})
	g.log(event.LogSystem, "A level %d %s appears!", level, name)
	return e
}
