package combat

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/cyberdino/internal/game/ability"
	"github.com/cory-johannsen/cyberdino/internal/game/character"
	"github.com/cory-johannsen/cyberdino/internal/game/event"
	"github.com/cory-johannsen/cyberdino/internal/game/stats"
)

// Outcome is what an ability effect did.
type Outcome struct {
	Damage   float64
	Shield   float64
	Healed   float64
	Energy   float64
	Narrated bool
}

// CanUse reports whether actor can cast a right now.
func CanUse(a *ability.Ability, actor *character.Character) bool {
	return a != nil && actor != nil && actor.IsAlive() && actor.Ready(a.ID) && actor.CanPayCost(a.Cost)
}

// UseAbility casts a from actor onto target.
//
// A cast is refused, with only a log line, when the actor cannot pay, the
// ability is cooling down, or the target is already dead. Otherwise AbilityCast is emitted before the cost is
// paid, the effect is applied, the cooldown starts, and the target and then
// the actor are checked for death.
//
// Postcondition: returns false iff the cast was refused; a refusal mutates nothing.
func (s *System) UseAbility(a *ability.Ability, actor, target *character.Character) (Outcome, bool) {
	if a == nil || actor == nil || !actor.IsAlive() {
		return Outcome{}, false
	}
	if target == nil || a.TargetType == ability.TargetSelf {
		target = actor
	}
	if !target.IsAlive() {
		s.log(event.LogSystem, fmt.Sprintf("%s cannot target the fallen %s.", a.Name, target.Name))
		return Outcome{}, false
	}
	if !actor.Ready(a.ID) {
		s.log(event.LogSystem, fmt.Sprintf("%s is on cooldown for %d more turn(s).", a.Name, actor.Cooldown(a.ID)))
		return Outcome{}, false
	}
	if !actor.CanPayCost(a.Cost) {
		s.log(event.LogSystem, fmt.Sprintf("%s lacks the resources to use %s.", actor.Name, a.Name))
		return Outcome{}, false
	}

	s.bus.Emit(event.AbilityCast{Ability: a, Actor: actor, Target: target})
	if err := actor.PayCost(a.Cost); err != nil {
		s.logger.Error("paying ability cost", zap.String("ability", a.ID), zap.Error(err))
		return Outcome{}, false
	}
	out := s.applyEffect(a, actor, target)
	actor.SetCooldown(a.ID, a.Cooldown)
	s.logger.Debug("ability used",
		zap.String("ability", a.ID),
		zap.String("actor", actor.ID),
		zap.String("target", target.ID),
		zap.Float64("damage", out.Damage),
		zap.Float64("shield", out.Shield),
		zap.Float64("healed", out.Healed),
	)

	// Both were alive before the effect, so each death is reported once.
	s.checkDeath(target)
	if target != actor {
		s.checkDeath(actor)
	}
	return out, true
}

// applyEffect interprets the ability's effect description.
func (s *System) applyEffect(a *ability.Ability, actor, target *character.Character) Outcome {
	e := a.Effect
	as := actor.TotalStats()
	mult := e.Multiplier
	if mult == 0 {
		mult = 1
	}
	weights := e.Weights
	if len(weights) == 0 {
		weights = stats.Single(a.Affinity)
	}

	var out Outcome
	switch e.Kind {
	case ability.EffectDamage:
		power := stats.BlendedPower(as, weights)
		out.Damage = round((e.Base + power*e.Coefficient) * mult)
		target.ApplyDamage(out.Damage)
		s.log(event.LogDamage, fmt.Sprintf("%s uses %s on %s for %.0f damage.", actor.Name, a.Name, target.Name, out.Damage))

	case ability.EffectShield:
		amount := (e.Base + as.Vitality*e.Coefficient) * mult
		if e.Hybrid {
			amount += as.MagicPower * 0.5 * weights.Normalize()[stats.Arcane]
		}
		out.Shield = target.AddShield(round(amount))
		text := fmt.Sprintf("%s uses %s and gains %.0f shield.", actor.Name, a.Name, out.Shield)
		if e.Hybrid {
			out.Healed = target.Heal(round(amount * 0.2))
			text = fmt.Sprintf("%s uses %s, gaining %.0f shield and %.0f health.", actor.Name, a.Name, out.Shield, out.Healed)
		}
		s.log(event.LogHeal, text)

	case ability.EffectHeal:
		amount := e.Base + as.Vitality*e.Coefficient
		if e.MagicBonus {
			amount += as.MagicPower * 0.3
		}
		amount *= mult
		out.Healed = target.Heal(round(amount))
		text := fmt.Sprintf("%s uses %s and restores %.0f health.", actor.Name, a.Name, out.Healed)
		if e.Hybrid {
			out.Energy = target.RestoreEnergy(round(amount * 0.25))
			text = fmt.Sprintf("%s uses %s, restoring %.0f health and %.0f energy.", actor.Name, a.Name, out.Healed, out.Energy)
		}
		s.log(event.LogHeal, text)

	default:
		out.Narrated = true
		s.log(event.LogSystem, fmt.Sprintf("%s uses %s. Nothing visible happens yet.", actor.Name, a.Name))
	}
	return out
}
