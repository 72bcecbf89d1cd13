package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/cyberdino/internal/game/character"
	"github.com/cory-johannsen/cyberdino/internal/game/combat"
	"github.com/cory-johannsen/cyberdino/internal/game/event"
	"github.com/cory-johannsen/cyberdino/internal/game/stats"
	"github.com/cory-johannsen/cyberdino/internal/game/tactics"
	"github.com/cory-johannsen/cyberdino/internal/scripting"
)

// maxSteps bounds a simulation in case the fight stalls.
const maxSteps = 100_000

var runOpts struct {
	fights int
	seed   int64
	name   string
	arcane float64
	tech   float64
	primal float64
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Autoplay a run and print the combat log",
	Long: `Autoplay a run: the player casts its first usable ability, falls back to a
basic attack, and passes when it can do neither. Scheduled delays elapse on a
virtual clock, so a run finishes instantly and replays exactly for a seed.

  Example: simulate run --fights 5 --seed 7 --arcane 2 --tech 1`,
	Args: cobra.NoArgs,
	RunE: runSimulation,
}

func init() {
	f := runCmd.Flags()
	f.IntVar(&runOpts.fights, "fights", 3, "number of enemies to defeat before stopping")
	f.Int64Var(&runOpts.seed, "seed", 0, "content seed; overrides game.seed when set")
	f.StringVar(&runOpts.name, "name", "Rex", "player name")
	f.Float64Var(&runOpts.arcane, "arcane", 1, "arcane affinity weight")
	f.Float64Var(&runOpts.tech, "tech", 1, "tech affinity weight")
	f.Float64Var(&runOpts.primal, "primal", 1, "primal affinity weight")
}

func runSimulation(cmd *cobra.Command, _ []string) error {
	if runOpts.fights <= 0 {
		return fmt.Errorf("--fights must be > 0, got %d", runOpts.fights)
	}
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if cmd.Flags().Changed("seed") {
		cfg.Game.Seed = runOpts.seed
	}

	clock := combat.NewManualClock(time.Unix(0, 0).UTC())
	game, err := tactics.NewGame(cfg.Game, clock, logger)
	if err != nil {
		return err
	}
	if cfg.Scripting.EnemyPolicy != "" {
		policy, err := scripting.LoadPolicy(cfg.Scripting.EnemyPolicy, cfg.Scripting.InstructionLimit, game.Roller(), logger)
		if err != nil {
			return err
		}
		defer policy.Close()
		game.SetEnemyPolicy(policy)
	}

	out := cmd.OutOrStdout()
	won := 0
	game.Bus().On(event.NameLog, event.Handle(func(e event.Log) error {
		_, err := fmt.Fprintf(out, "[%-7s] %s\n", e.Type, e.Text)
		return err
	}))
	game.Bus().On(event.NameCharacterDead, event.Handle(func(e event.CharacterDead) error {
		if !e.Character.IsPlayer {
			won++
		}
		return nil
	}))

	game.CreatePlayer(runOpts.name, stats.Affinities{
		stats.Arcane: runOpts.arcane,
		stats.Tech:   runOpts.tech,
		stats.Primal: runOpts.primal,
	})
	if err := game.StartNewRun(); err != nil {
		return err
	}
	logger.Info("simulation started",
		zap.String("run_id", game.RunID().String()),
		zap.Int64("seed", cfg.Game.Seed),
		zap.Int("fights", runOpts.fights),
	)

	steps := 0
	for ; steps < maxSteps && won < runOpts.fights && game.Player().IsAlive(); steps++ {
		if game.Turn() == combat.Player && game.Enemy() != nil && game.Enemy().IsAlive() {
			if autoplay(game) {
				continue
			}
		}
		due, ok := game.Scheduler().NextDue()
		if !ok {
			break
		}
		if due.After(clock.Now()) {
			clock.Set(due)
		}
		game.Tick(clock.Now())
	}

	summarize(out, game.Player(), won, clock.Now().Sub(time.Unix(0, 0)))
	logger.Info("simulation finished", zap.Int("steps", steps), zap.Int("won", won))
	return nil
}

// autoplay takes one player action and reports whether one was taken.
func autoplay(game *tactics.Game) bool {
	p := game.Player()
	for i, a := range p.Abilities {
		if combat.CanUse(a, p) && game.PlayerUseAbility(i) {
			return true
		}
	}
	if game.PlayerBasicAttack() {
		return true
	}
	return game.PlayerPassTurn()
}

func summarize(w io.Writer, p *character.Character, won int, elapsed time.Duration) {
	status := "alive"
	if !p.IsAlive() {
		status = "fallen"
	}
	fmt.Fprintf(w, "\n%s (%s): level %d, %d XP, %d credits, %d enemies defeated in %s of game time\n",
		p.Name, status, p.Level, p.TotalXP, p.Credits, won, elapsed)
	for _, a := range p.Abilities {
		fmt.Fprintf(w, "  - %s [%s, %s]\n", a.Name, a.Category, a.Rarity)
	}
}
