// Package tactics is the composition root of a tactics run. Game owns the
// player and the current enemy, exposes the player's actions, and turns
// combat outcomes into rewards, level-ups and respawns.
package tactics

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/cyberdino/internal/config"
	"github.com/cory-johannsen/cyberdino/internal/game/character"
	"github.com/cory-johannsen/cyberdino/internal/game/combat"
	"github.com/cory-johannsen/cyberdino/internal/game/dice"
	"github.com/cory-johannsen/cyberdino/internal/game/event"
	"github.com/cory-johannsen/cyberdino/internal/game/idgen"
	"github.com/cory-johannsen/cyberdino/internal/game/leveling"
	"github.com/cory-johannsen/cyberdino/internal/game/procgen"
	"github.com/cory-johannsen/cyberdino/internal/game/stats"
	"github.com/cory-johannsen/cyberdino/internal/observability"
)

const (
	// RespawnKey is the scheduler key of the pending enemy respawn.
	RespawnKey = "tactics:respawn"
	// AutoPassKey is the scheduler key of the pending automatic pass.
	AutoPassKey = "tactics:auto-pass"
)

// LootChance is the probability that a defeated enemy drops an item.
const LootChance = 0.35

// Game runs one player against a stream of enemies.
//
// Not safe for concurrent use. Deferred work only runs inside Tick, so a
// single goroutine must own the Game.
type Game struct {
	cfg       config.GameConfig
	ids       *idgen.Allocator
	gen       *procgen.Generator
	bus       *event.Bus
	scheduler *combat.Scheduler
	combat    *combat.System
	leveling  *leveling.System
	logger    *zap.Logger

	playerName string
	playerMix  stats.Affinities
	player     *character.Character
	enemy      *character.Character
	runID      uuid.UUID
}

var _ combat.Roster = (*Game)(nil)

// NewGame builds a Game seeded from cfg.Seed whose deferred work is timed by clock.
//
// Precondition: clock must be non-nil. A nil logger disables logging.
// Postcondition: Returns a Game with no player, or an error if content fails to load.
func NewGame(cfg config.GameConfig, clock combat.Clock, logger *zap.Logger) (*Game, error) {
	if clock == nil {
		panic("tactics: NewGame requires a non-nil clock")
	}
	logger = observability.OrNop(logger)
	ids := idgen.New()
	gen, err := procgen.NewSeeded(cfg.Seed, ids, logger)
	if err != nil {
		return nil, fmt.Errorf("tactics: NewGame: %w", err)
	}
	g := &Game{
		cfg:       cfg,
		ids:       ids,
		gen:       gen,
		bus:       event.NewBus(logger),
		scheduler: combat.NewScheduler(clock, logger),
		leveling:  leveling.NewSystem(logger),
		logger:    logger,
	}
	g.combat = combat.NewSystem(g.bus, gen.Roller(), g.scheduler, g, combat.Options{
		EnemyTurnDelay:        cfg.EnemyTurnDelay,
		BasicAttackEnergyCost: cfg.BasicAttackEnergyCost,
	}, logger)

	g.bus.On(event.NameCharacterDead, event.Handle(g.onCharacterDead))
	g.bus.On(event.NameTurnStart, event.Handle(g.onTurnStart))
	return g, nil
}

// Player returns the player, or nil before CreatePlayer.
func (g *Game) Player() *character.Character { return g.player }

// Enemy returns the current enemy, or nil when none has spawned.
func (g *Game) Enemy() *character.Character { return g.enemy }

// Bus returns the event bus presenters subscribe to.
func (g *Game) Bus() *event.Bus { return g.bus }

// Combat returns the combat system.
func (g *Game) Combat() *combat.System { return g.combat }

// Generator returns the content generator.
func (g *Game) Generator() *procgen.Generator { return g.gen }

// Roller returns the game's single random source.
func (g *Game) Roller() *dice.Roller { return g.gen.Roller() }

// Scheduler returns the deferred-task queue pumped by Tick.
func (g *Game) Scheduler() *combat.Scheduler { return g.scheduler }

// RunID identifies the current run; uuid.Nil before the first StartNewRun.
func (g *Game) RunID() uuid.UUID { return g.runID }

// SetEnemyPolicy replaces the enemy's decision policy. Nil restores the built-in policy.
func (g *Game) SetEnemyPolicy(p combat.EnemyPolicy) { g.combat.SetPolicy(p) }

// Tick runs every deferred task due at now and returns how many ran.
func (g *Game) Tick(now time.Time) int { return g.scheduler.Tick(now) }

// Turn returns whose turn it is.
func (g *Game) Turn() combat.TurnOwner { return g.combat.Owner() }

func (g *Game) log(t event.LogType, format string, args ...any) {
	g.bus.Emit(event.Log{Type: t, Text: fmt.Sprintf(format, args...)})
}

func (g *Game) schedule(key string, delay time.Duration, fn func()) {
	if err := g.scheduler.Schedule(key, delay, fn); err != nil {
		g.logger.Warn("schedule failed", zap.String("key", key), zap.Error(err))
	}
}
