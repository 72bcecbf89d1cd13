package combat

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
	"go.uber.org/zap"
)

const (
	evEndPlayerTurn = "end_player_turn"
	evEndEnemyTurn  = "end_enemy_turn"
	evReset         = "reset"
)

// TurnMachine tracks turn ownership.
//
// Invariant: the only transitions are player→enemy, enemy→player and reset→player.
type TurnMachine struct {
	fsm *fsm.FSM
}

// NewTurnMachine returns a machine in the player state.
func NewTurnMachine(logger *zap.Logger) *TurnMachine {
	if logger == nil {
		logger = zap.NewNop()
	}
	f := fsm.NewFSM(
		string(Player),
		fsm.Events{
			{Name: evEndPlayerTurn, Src: []string{string(Player)}, Dst: string(Enemy)},
			{Name: evEndEnemyTurn, Src: []string{string(Enemy)}, Dst: string(Player)},
			{Name: evReset, Src: []string{string(Enemy)}, Dst: string(Player)},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				logger.Debug("turn transition",
					zap.String("event", e.Event),
					zap.String("from", e.Src),
					zap.String("to", e.Dst),
				)
			},
		},
	)
	return &TurnMachine{fsm: f}
}

// Owner returns whose turn it is.
func (m *TurnMachine) Owner() TurnOwner { return TurnOwner(m.fsm.Current()) }

// Advance ends owner's turn.
//
// Postcondition: returns an error and changes nothing unless it is owner's turn.
func (m *TurnMachine) Advance(owner TurnOwner) error {
	name := evEndPlayerTurn
	if owner == Enemy {
		name = evEndEnemyTurn
	}
	if err := m.fsm.Event(context.Background(), name); err != nil {
		return fmt.Errorf("combat: ending %s turn: %w", owner, err)
	}
	return nil
}

// Reset returns the turn to the player.
func (m *TurnMachine) Reset() {
	if m.fsm.Can(evReset) {
		_ = m.fsm.Event(context.Background(), evReset)
	}
}
