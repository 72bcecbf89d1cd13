// Package ability defines generated abilities. An ability's effect is plain
// data that the combat package interprets; abilities never carry behaviour.
package ability

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/cyberdino/internal/game/inventory"
	"github.com/cory-johannsen/cyberdino/internal/game/stats"
)

// Category classifies what an ability does.
type Category string

const (
	Attack   Category = "attack"
	Defense  Category = "defense"
	Control  Category = "control"
	Summon   Category = "summon"
	Support  Category = "support"
	Movement Category = "movement"
)

// Categories lists every category in canonical order.
var Categories = []Category{Attack, Defense, Control, Summon, Support, Movement}

// Key returns the upper-case table key form, e.g. "ATTACK".
func (c Category) Key() string {
	switch c {
	case Attack:
		return "ATTACK"
	case Defense:
		return "DEFENSE"
	case Control:
		return "CONTROL"
	case Summon:
		return "SUMMON"
	case Support:
		return "SUPPORT"
	case Movement:
		return "MOVEMENT"
	default:
		return "UNKNOWN"
	}
}

// TargetType names who an ability lands on.
type TargetType string

const (
	TargetSelf  TargetType = "self"
	TargetEnemy TargetType = "enemy"
)

// DefaultAnimation is used when no animation mapping exists.
const DefaultAnimation = "cast"

// Cost is the resource price of one use.
type Cost struct {
	Mana   float64 `yaml:"mana,omitempty"`
	Energy float64 `yaml:"energy,omitempty"`
	Health float64 `yaml:"health,omitempty"`
}

// EffectKind selects the interpreter branch for an Effect.
type EffectKind string

const (
	// EffectDamage deals (Base + power*Coefficient) * Multiplier to the target.
	EffectDamage EffectKind = "damage"
	// EffectShield grants (Base + vitality*Coefficient) * Multiplier shield.
	EffectShield EffectKind = "shield"
	// EffectHeal restores (Base + vitality*Coefficient [+ magic*0.3]) * Multiplier health.
	EffectHeal EffectKind = "heal"
	// EffectNarrate only logs; it has no numeric effect.
	EffectNarrate EffectKind = "narrate"
)

// Effect describes an ability's outcome as numbers.
//
// Weights selects the power source: a single-affinity effect carries a map
// fully committed to one affinity, a hybrid effect the caster's mix.
type Effect struct {
	Kind        EffectKind       `yaml:"kind"`
	Base        float64          `yaml:"base"`
	Coefficient float64          `yaml:"coefficient"`
	Multiplier  float64          `yaml:"multiplier"`
	Weights     stats.Affinities `yaml:"weights,omitempty"`
	Hybrid      bool             `yaml:"hybrid,omitempty"`
	// MagicBonus adds magicPower*0.3 to heals.
	MagicBonus bool `yaml:"magic_bonus,omitempty"`
}

// Ability is one named action a character can take.
//
// Invariant: immutable after generation.
type Ability struct {
	ID            string           `yaml:"id"`
	Name          string           `yaml:"name"`
	Category      Category         `yaml:"category"`
	Affinity      stats.Affinity   `yaml:"affinity"`
	Cost          Cost             `yaml:"cost"`
	Cooldown      int              `yaml:"cooldown"`
	Range         int              `yaml:"range"`
	TargetType    TargetType       `yaml:"target_type"`
	Tags          []string         `yaml:"tags,omitempty"`
	Description   string           `yaml:"description,omitempty"`
	AnimationType string           `yaml:"animation_type"`
	Rarity        inventory.Rarity `yaml:"rarity"`
	Ultimate      bool             `yaml:"ultimate,omitempty"`
	Effect        Effect           `yaml:"effect"`
}

// Animation returns AnimationType, or DefaultAnimation when it is unset.
func (a *Ability) Animation() string {
	if a.AnimationType == "" {
		return DefaultAnimation
	}
	return a.AnimationType
}

// Validate checks structural invariants.
//
// Postcondition: returns nil iff all fields are valid.
func (a *Ability) Validate() error {
	var errs []error
	if a.ID == "" {
		errs = append(errs, errors.New("ID must not be empty"))
	}
	if a.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if a.Cooldown < 0 {
		errs = append(errs, fmt.Errorf("Cooldown must be >= 0, got %d", a.Cooldown))
	}
	if a.Cost.Mana < 0 || a.Cost.Energy < 0 || a.Cost.Health < 0 {
		errs = append(errs, fmt.Errorf("Cost components must be >= 0, got %+v", a.Cost))
	}
	if a.TargetType != TargetSelf && a.TargetType != TargetEnemy {
		errs = append(errs, fmt.Errorf("TargetType %q is not valid", a.TargetType))
	}
	switch a.Effect.Kind {
	case EffectDamage, EffectShield, EffectHeal, EffectNarrate:
	default:
		errs = append(errs, fmt.Errorf("Effect.Kind %q is not valid", a.Effect.Kind))
	}
	if len(errs) > 0 {
		return fmt.Errorf("ability validation failed: %v", errs)
	}
	return nil
}

// EffectKindFor maps a category to the effect its formula produces.
func EffectKindFor(c Category) EffectKind {
	switch c {
	case Attack:
		return EffectDamage
	case Defense:
		return EffectShield
	case Support:
		return EffectHeal
	default:
		return EffectNarrate
	}
}

// TargetFor returns the default target for a category: attacks and control
// land on the enemy, everything else on the caster.
func TargetFor(c Category) TargetType {
	switch c {
	case Attack, Control:
		return TargetEnemy
	default:
		return TargetSelf
	}
}
