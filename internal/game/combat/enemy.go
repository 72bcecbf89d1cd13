package combat

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/cyberdino/internal/game/ability"
	"github.com/cory-johannsen/cyberdino/internal/game/character"
	"github.com/cory-johannsen/cyberdino/internal/game/event"
)

// Roster resolves the current combatants. It is consulted when a deferred
// enemy turn fires, so the turn always acts on the live pair.
type Roster interface {
	Player() *character.Character
	Enemy() *character.Character
}

// Decision is an enemy's chosen action; a nil Ability means a basic attack.
type Decision struct {
	Ability *ability.Ability
}

// EnemyPolicy chooses the enemy's action for one turn.
type EnemyPolicy interface {
	Choose(self, foe *character.Character) (Decision, error)
}

// FirstReady takes the first ability, in table order, that is off cooldown and
// casts it if affordable; otherwise it falls back to a basic attack.
type FirstReady struct{}

// Choose implements EnemyPolicy.
func (FirstReady) Choose(self, _ *character.Character) (Decision, error) {
	for _, a := range self.Abilities {
		if !self.Ready(a.ID) {
			continue
		}
		if self.CanPayCost(a.Cost) {
			return Decision{Ability: a}, nil
		}
		break
	}
	return Decision{}, nil
}

// EndTurn ends owner's turn.
//
// Ending the player's turn ticks the player's cooldowns, announces the enemy
// turn and schedules PerformEnemyTurn after the enemy delay. Ending the
// enemy's turn ticks the enemy's cooldowns and announces the player turn.
//
// Postcondition: returns an error and changes nothing unless it is owner's turn.
func (s *System) EndTurn(owner TurnOwner) error {
	if err := s.turns.Advance(owner); err != nil {
		return err
	}
	switch owner {
	case Player:
		if p := s.roster.Player(); p != nil {
			p.TickCooldowns()
		}
		s.bus.Emit(event.TurnStart{Owner: Enemy})
		if err := s.scheduler.Schedule(EnemyTurnKey, s.opts.EnemyTurnDelay, s.PerformEnemyTurn); err != nil {
			return fmt.Errorf("combat: scheduling enemy turn: %w", err)
		}
	case Enemy:
		if e := s.roster.Enemy(); e != nil {
			e.TickCooldowns()
		}
		s.bus.Emit(event.TurnStart{Owner: Player})
	}
	return nil
}

// PerformEnemyTurn lets the living enemy act against the player, then ends
// the enemy turn. A dead or absent enemy ends the turn without acting.
func (s *System) PerformEnemyTurn() {
	if s.Owner() != Enemy {
		s.logger.Debug("enemy turn skipped", zap.String("owner", string(s.Owner())))
		return
	}
	player, enemy := s.roster.Player(), s.roster.Enemy()
	if enemy != nil && enemy.IsAlive() && player != nil && player.IsAlive() {
		s.enemyAct(enemy, player)
	}
	s.bus.Emit(event.TurnEnd{Owner: Enemy})
	if err := s.EndTurn(Enemy); err != nil {
		s.logger.Error("ending enemy turn", zap.Error(err))
	}
}

func (s *System) enemyAct(enemy, player *character.Character) {
	d, err := s.opts.Policy.Choose(enemy, player)
	if err != nil {
		s.logger.Warn("enemy policy failed; using first-ready", zap.String("enemy", enemy.ID), zap.Error(err))
		d, _ = FirstReady{}.Choose(enemy, player)
	}
	if d.Ability != nil && !CanUse(d.Ability, enemy) {
		s.logger.Debug("enemy policy chose an unusable ability", zap.String("ability", d.Ability.ID))
		d = Decision{}
	}
	if d.Ability != nil {
		if _, ok := s.UseAbility(d.Ability, enemy, player); ok {
			return
		}
	}
	s.BasicAttack(enemy, player)
}
