package procgen

import (
	"github.com/cory-johannsen/cyberdino/internal/game/dice"
	"github.com/cory-johannsen/cyberdino/internal/game/stats"
)

// RollFocus picks a uniformly random single affinity.
func (g *Generator) RollFocus() stats.Affinity {
	return dice.Pick(g.roll, "enemy.focus", stats.AllAffinities)
}

// EnemyName picks a themed enemy name for focus.
func (g *Generator) EnemyName(focus stats.Affinity) string {
	names := g.content.Enemies[focus]
	if len(names) == 0 {
		return "Feral " + title(string(focus)) + " Beast"
	}
	return dice.Pick(g.roll, "enemy.name", names)
}
