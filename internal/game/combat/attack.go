package combat

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/cyberdino/internal/game/character"
	"github.com/cory-johannsen/cyberdino/internal/game/event"
)

// AttackResult describes one resolved basic attack.
type AttackResult struct {
	Raw    float64
	IsCrit bool
	Damage float64
	Killed bool
}

// BasicAttack resolves attacker hitting defender.
//
// base = attackPower + vitality*0.5, varied by ±20%; a crit multiplies by
// critMultiplier; armor*0.4 is subtracted and the result rounded and floored at 0.
//
// Postcondition: returns false when the attacker cannot pay the energy cost,
// in which case only a log line is emitted.
func (s *System) BasicAttack(attacker, defender *character.Character) (AttackResult, bool) {
	if attacker == nil || defender == nil || !attacker.IsAlive() || !defender.IsAlive() {
		return AttackResult{}, false
	}
	if cost := s.opts.BasicAttackEnergyCost; cost > 0 {
		if attacker.Energy < cost {
			s.log(event.LogSystem, fmt.Sprintf("%s is too exhausted to attack.", attacker.Name))
			return AttackResult{}, false
		}
		attacker.Energy -= cost
	}

	as := attacker.TotalStats()
	ds := defender.TotalStats()
	base := as.AttackPower + as.Vitality*0.5
	raw := base + base*0.2*s.roll.Uniform("attack.variance", -1, 1)
	res := AttackResult{Raw: raw}
	if s.roll.Float64("attack.crit") < as.CritChance {
		res.IsCrit = true
		raw *= as.CritMultiplier
	}
	res.Damage = round(max(0, raw-ds.Armor*0.4))
	defender.ApplyDamage(res.Damage)

	text := fmt.Sprintf("%s hits %s for %.0f damage.", attacker.Name, defender.Name, res.Damage)
	if res.IsCrit {
		text = fmt.Sprintf("%s lands a critical hit on %s for %.0f damage!", attacker.Name, defender.Name, res.Damage)
	}
	s.log(event.LogDamage, text)
	s.bus.Emit(event.BasicHit{Attacker: attacker, Defender: defender, IsCrit: res.IsCrit, Amount: res.Damage})
	s.logger.Debug("basic attack",
		zap.String("attacker", attacker.ID),
		zap.String("defender", defender.ID),
		zap.Float64("damage", res.Damage),
		zap.Bool("crit", res.IsCrit),
	)
	res.Killed = s.checkDeath(defender)
	return res, true
}

// CanBasicAttack reports whether attacker can afford a basic attack.
func (s *System) CanBasicAttack(attacker *character.Character) bool {
	return attacker != nil && attacker.IsAlive() && attacker.Energy >= s.opts.BasicAttackEnergyCost
}
