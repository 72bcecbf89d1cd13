package tactics

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/cyberdino/internal/game/combat"
	"github.com/cory-johannsen/cyberdino/internal/game/event"
	"github.com/cory-johannsen/cyberdino/internal/game/inventory"
)

// canAct reports whether the player may take a turn action.
func (g *Game) canAct() bool {
	return g.player != nil && g.enemy != nil &&
		g.player.IsAlive() && g.enemy.IsAlive() &&
		g.combat.Owner() == combat.Player
}

// PlayerBasicAttack attacks the enemy and ends the player's turn.
//
// Postcondition: returns false and changes nothing unless it is the player's
// turn, both combatants live, and the attack could be paid for.
func (g *Game) PlayerBasicAttack() bool {
	if !g.canAct() {
		return false
	}
	if _, ok := g.combat.BasicAttack(g.player, g.enemy); !ok {
		return false
	}
	g.endPlayerTurn()
	return true
}

// PlayerUseAbility casts the player's ability at index and ends the turn.
// A refused cast (cooldown, cost) keeps the turn.
func (g *Game) PlayerUseAbility(index int) bool {
	if !g.canAct() {
		return false
	}
	if index < 0 || index >= len(g.player.Abilities) {
		g.logger.Debug("ability index out of range", zap.Int("index", index), zap.Int("abilities", len(g.player.Abilities)))
		return false
	}
	if _, ok := g.combat.UseAbility(g.player.Abilities[index], g.player, g.enemy); !ok {
		return false
	}
	g.endPlayerTurn()
	return true
}

// PlayerPassTurn ends the player's turn without acting.
func (g *Game) PlayerPassTurn() bool {
	if !g.canAct() {
		return false
	}
	g.log(event.LogSystem, "%s passes the turn.", g.player.Name)
	g.endPlayerTurn()
	return true
}

// EquipFromInventory equips the backpack item at index. Equipping is free and
// does not end the turn.
//
// Precondition: it is the player's turn and the player is alive.
func (g *Game) EquipFromInventory(index int) (*inventory.Item, error) {
	if g.player == nil || !g.player.IsAlive() || g.combat.Owner() != combat.Player {
		return nil, fmt.Errorf("tactics: EquipFromInventory: not the player's turn")
	}
	it, err := g.player.EquipFromInventory(index)
	if err != nil {
		return nil, fmt.Errorf("tactics: %w", err)
	}
	g.log(event.LogSystem, "%s equips %s (%s).", g.player.Name, it.Name, inventory.SlotDisplayName(it.Slot()))
	return it, nil
}

// UseConsumable spends a charge of the backpack consumable at index and ends
// the turn.
//
// Postcondition: returns the health restored.
func (g *Game) UseConsumable(index int) (float64, error) {
	if !g.canAct() {
		return 0, fmt.Errorf("tactics: UseConsumable: not the player's turn")
	}
	healed, err := g.player.UseConsumable(index)
	if err != nil {
		return 0, fmt.Errorf("tactics: %w", err)
	}
	g.log(event.LogHeal, "%s restores %.0f health.", g.player.Name, healed)
	g.endPlayerTurn()
	return healed, nil
}

// HasAction reports whether the player can basic attack or cast any ability.
func (g *Game) HasAction() bool {
	p := g.player
	if p == nil || !p.IsAlive() {
		return false
	}
	if g.combat.CanBasicAttack(p) {
		return true
	}
	for _, a := range p.Abilities {
		if combat.CanUse(a, p) {
			return true
		}
	}
	return false
}

func (g *Game) endPlayerTurn() {
	g.scheduler.Cancel(AutoPassKey)
	if err := g.combat.EndTurn(combat.Player); err != nil {
		g.logger.Error("ending player turn", zap.Error(err))
	}
}

// onTurnStart checks the player's options at the start of each player turn
// and schedules an automatic pass when there are none.
func (g *Game) onTurnStart(e event.TurnStart) error {
	if e.Owner != combat.Player || g.player == nil || !g.player.IsAlive() {
		return nil
	}
	has := g.HasAction()
	g.bus.Emit(event.CheckPlayerActions{Player: g.player, HasAction: has})
	if !has {
		g.log(event.LogSystem, "No available actions. Passing turn...")
		g.schedule(AutoPassKey, g.cfg.AutoPassDelay, func() { g.PlayerPassTurn() })
	}
	return nil
}
