// Package procgen synthesises items and abilities from a single seeded random
// source. For a fixed seed and call sequence the output is identical.
package procgen

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/cory-johannsen/cyberdino/internal/game/dice"
	"github.com/cory-johannsen/cyberdino/internal/game/idgen"
	"github.com/cory-johannsen/cyberdino/internal/game/inventory"
)

// Generator produces items and abilities.
//
// Invariant: every random decision goes through roll.
type Generator struct {
	roll    *dice.Roller
	ids     *idgen.Allocator
	content *Content
	logger  *zap.Logger
}

// New builds a Generator over src.
//
// Precondition: src, ids and content must be non-nil. A nil logger disables logging.
func New(src dice.Source, ids *idgen.Allocator, content *Content, logger *zap.Logger) *Generator {
	if ids == nil {
		panic("procgen: New requires a non-nil id allocator")
	}
	if content == nil {
		panic("procgen: New requires non-nil content")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		roll:    dice.NewLoggedRoller(src, logger),
		ids:     ids,
		content: content,
		logger:  logger,
	}
}

// NewSeeded builds a Generator over an LCG seeded with seed and the built-in content.
//
// Postcondition: Returns a ready Generator, or an error if the content is invalid.
func NewSeeded(seed int64, ids *idgen.Allocator, logger *zap.Logger) (*Generator, error) {
	content, err := DefaultContent()
	if err != nil {
		return nil, fmt.Errorf("procgen: loading default content: %w", err)
	}
	return New(dice.NewLCGSource(seed), ids, content, logger), nil
}

// Roller exposes the generator's random source so other systems share it.
func (g *Generator) Roller() *dice.Roller { return g.roll }

// IDs exposes the id allocator.
func (g *Generator) IDs() *idgen.Allocator { return g.ids }

// Content returns the name tables in use.
func (g *Generator) Content() *Content { return g.content }

// RollRarity draws one value: > 0.98 legendary, > 0.90 epic, > 0.70 rare, else common.
func (g *Generator) RollRarity() inventory.Rarity {
	return RarityFor(g.roll.Float64("rarity"))
}

// RarityFor maps a draw in [0, 1) to its tier.
func RarityFor(r float64) inventory.Rarity {
	switch {
	case r > 0.98:
		return inventory.Legendary
	case r > 0.90:
		return inventory.Epic
	case r > 0.70:
		return inventory.Rare
	default:
		return inventory.Common
	}
}

// round rounds half away from zero.
func round(v float64) float64 { return math.Round(v) }

func title(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

func clampLevel(level int) int {
	if level < 1 {
		return 1
	}
	return level
}
