package tactics

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/cyberdino/internal/game/ability"
	"github.com/cory-johannsen/cyberdino/internal/game/character"
	"github.com/cory-johannsen/cyberdino/internal/game/dice"
	"github.com/cory-johannsen/cyberdino/internal/game/event"
	"github.com/cory-johannsen/cyberdino/internal/game/leveling"
)

// slotCategories are drawn from when an ability slot unlocks.
var slotCategories = []ability.Category{ability.Attack, ability.Defense, ability.Support, ability.Control}

// CreditReward is the credits granted for defeating a level-L enemy.
func CreditReward(enemyLevel int) int { return 20 + enemyLevel*10 }

func (g *Game) onCharacterDead(e event.CharacterDead) error {
	switch {
	case e.Character == nil:
	case e.Character == g.enemy:
		g.onEnemyDefeated(e.Character)
	case e.Character == g.player:
		g.scheduler.Cancel(AutoPassKey)
		g.logger.Info("player defeated",
			zap.String("run_id", g.runID.String()),
			zap.Int("level", g.player.Level),
			zap.Int("credits", g.player.Credits),
		)
		g.log(event.LogSystem, "%s has been defeated. Start a new run to try again.", g.player.Name)
	}
	return nil
}

// onEnemyDefeated pays out credits, XP and loot, applies any unlocks, and
// queues the next enemy.
func (g *Game) onEnemyDefeated(enemy *character.Character) {
	defer g.schedule(RespawnKey, g.cfg.RespawnDelay, func() { g.SpawnEnemy() })

	p := g.player
	if p == nil {
		return
	}
	credits := CreditReward(enemy.Level)
	p.Credits += credits
	g.log(event.LogSystem, "Victory! %s earns %d credits.", p.Name, credits)

	xp := leveling.CalculateXPReward(enemy.Level, p.Level)
	res := g.leveling.AddXP(p, xp)
	g.log(event.LogXP, "%s gains %d XP.", p.Name, xp)
	g.logger.Info("enemy defeated",
		zap.String("run_id", g.runID.String()),
		zap.String("enemy", enemy.ID),
		zap.Int("credits", credits),
		zap.Int("xp", xp),
	)

	if res.LeveledUp() {
		g.log(event.LogLevelUp, "Level up! %s is now level %d.", p.Name, res.NewLevel)
		g.bus.Emit(event.PlayerLevelUp{Player: p, Result: res})
		g.applyUnlocks(res.Unlocks)
	}
	g.dropLoot(enemy)
}

// applyUnlocks performs what leveling announced: slots and ultimates append
// a new hybrid ability, everything else is narrated.
func (g *Game) applyUnlocks(unlocks []leveling.Unlock) {
	p := g.player
	for _, u := range unlocks {
		switch u.Type {
		case leveling.UnlockAbilitySlot:
			cat := dice.Pick(g.gen.Roller(), "unlock.category", slotCategories)
			a := g.gen.GenerateHybridAbility(u.Level, p.Affinities, cat, false)
			p.Abilities = append(p.Abilities, a)
			g.log(event.LogUnlock, "New ability unlocked: %s", a.Name)
		case leveling.UnlockUltimate:
			a := g.gen.GenerateHybridAbility(u.Level, p.Affinities, ability.Attack, true)
			p.Abilities = append(p.Abilities, a)
			g.log(event.LogUnlock, "Ultimate unlocked: %s", a.Name)
		default:
			g.log(event.LogUnlock, "%s", u.Description)
		}
	}
}

func (g *Game) dropLoot(enemy *character.Character) {
	if !g.gen.Roller().Chance("loot.drop", LootChance) {
		return
	}
	it := g.gen.GenerateItem(enemy.Level, enemy.Affinities.Primary())
	g.player.Inventory.Add(it)
	g.log(event.LogSystem, "%s dropped %s (%s).", enemy.Name, it.Name, it.Rarity)
}
