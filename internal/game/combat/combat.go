// Package combat resolves basic attacks and abilities, tracks whose turn it
// is, and drives the enemy's turn.
package combat

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/cyberdino/internal/game/character"
	"github.com/cory-johannsen/cyberdino/internal/game/dice"
	"github.com/cory-johannsen/cyberdino/internal/game/event"
)

// TurnOwner is whose turn it is.
type TurnOwner = event.TurnOwner

const (
	Player = event.OwnerPlayer
	Enemy  = event.OwnerEnemy
)

// EnemyTurnKey is the scheduler key of the pending enemy action.
const EnemyTurnKey = "combat:enemy-turn"

// Options tunes a System.
type Options struct {
	// EnemyTurnDelay separates the end of the player's turn from the enemy's action.
	EnemyTurnDelay time.Duration
	// BasicAttackEnergyCost is the energy a basic attack spends; 0 makes it free.
	BasicAttackEnergyCost float64
	// Policy chooses the enemy's action; nil uses FirstReady.
	Policy EnemyPolicy
}

// DefaultOptions returns an 800ms enemy delay, free basic attacks and FirstReady.
func DefaultOptions() Options {
	return Options{EnemyTurnDelay: 800 * time.Millisecond, Policy: FirstReady{}}
}

// System is the combat resolver and turn state machine.
//
// Not safe for concurrent use; drive it from the goroutine that ticks its Scheduler.
type System struct {
	bus       *event.Bus
	roll      *dice.Roller
	scheduler *Scheduler
	roster    Roster
	turns     *TurnMachine
	opts      Options
	logger    *zap.Logger
}

// NewSystem wires a System.
//
// Precondition: bus, roll, scheduler and roster must be non-nil.
func NewSystem(bus *event.Bus, roll *dice.Roller, scheduler *Scheduler, roster Roster, opts Options, logger *zap.Logger) *System {
	if bus == nil || roll == nil || scheduler == nil || roster == nil {
		panic("combat: NewSystem requires a bus, roller, scheduler and roster")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Policy == nil {
		opts.Policy = FirstReady{}
	}
	return &System{
		bus:       bus,
		roll:      roll,
		scheduler: scheduler,
		roster:    roster,
		turns:     NewTurnMachine(logger),
		opts:      opts,
		logger:    logger,
	}
}

// Owner returns whose turn it is.
func (s *System) Owner() TurnOwner { return s.turns.Owner() }

// Reset hands the turn back to the player.
func (s *System) Reset() { s.turns.Reset() }

// SetPolicy replaces the enemy policy. A nil policy restores FirstReady.
func (s *System) SetPolicy(p EnemyPolicy) {
	if p == nil {
		p = FirstReady{}
	}
	s.opts.Policy = p
}

func (s *System) log(t event.LogType, text string) {
	s.bus.Emit(event.Log{Type: t, Text: text})
}

// checkDeath emits the death log and CharacterDead for c once its health is 0.
func (s *System) checkDeath(c *character.Character) bool {
	if c == nil || c.IsAlive() {
		return false
	}
	s.log(event.LogSystem, c.Name+" has fallen!")
	s.bus.Emit(event.CharacterDead{Character: c})
	return true
}

func round(v float64) float64 { return math.Round(v) }
