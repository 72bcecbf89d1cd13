// Package stats defines the numeric attribute bundle shared by characters and items,
// and the affinity weights that drive every stat formula.
package stats

// DamageType tags the element of a damage source.
type DamageType string

const (
	DamagePhysical DamageType = "physical"
	DamagePlasma   DamageType = "plasma"
	DamageArcane   DamageType = "arcane"
	DamageFire     DamageType = "fire"
	DamageFrost    DamageType = "frost"
	DamageShock    DamageType = "shock"
	DamageToxic    DamageType = "toxic"
)

// Stats is a flat bundle of numeric attributes plus per-damage-type resistances.
//
// Invariant: Add and Scale never mutate the receiver or the argument.
type Stats struct {
	MaxHealth      float64 `yaml:"max_health,omitempty"`
	MaxMana        float64 `yaml:"max_mana,omitempty"`
	MaxEnergy      float64 `yaml:"max_energy,omitempty"`
	MaxShield      float64 `yaml:"max_shield,omitempty"`
	AttackPower    float64 `yaml:"attack_power,omitempty"`
	TechPower      float64 `yaml:"tech_power,omitempty"`
	MagicPower     float64 `yaml:"magic_power,omitempty"`
	Vitality       float64 `yaml:"vitality,omitempty"`
	Agility        float64 `yaml:"agility,omitempty"`
	Armor          float64 `yaml:"armor,omitempty"`
	ShieldArmor    float64 `yaml:"shield_armor,omitempty"`
	CritChance     float64 `yaml:"crit_chance,omitempty"`
	CritMultiplier float64 `yaml:"crit_multiplier,omitempty"`
	DodgeChance    float64 `yaml:"dodge_chance,omitempty"`
	Haste          float64 `yaml:"haste,omitempty"`
	// Resistances maps a damage type to a resistance fraction in [0, 1].
	Resistances map[DamageType]float64 `yaml:"resistances,omitempty"`
}

// Clone returns a deep copy of s, including the resistance map.
func (s Stats) Clone() Stats {
	out := s
	out.Resistances = nil
	if s.Resistances != nil {
		out.Resistances = make(map[DamageType]float64, len(s.Resistances))
		for k, v := range s.Resistances {
			out.Resistances[k] = v
		}
	}
	return out
}

// Add returns the field-wise sum of s and other. Resistance maps are merged by
// per-key summation; a key missing on one side counts as 0.
//
// Postcondition: s and other are unchanged.
func (s Stats) Add(other Stats) Stats {
	out := Stats{
		MaxHealth:      s.MaxHealth + other.MaxHealth,
		MaxMana:        s.MaxMana + other.MaxMana,
		MaxEnergy:      s.MaxEnergy + other.MaxEnergy,
		MaxShield:      s.MaxShield + other.MaxShield,
		AttackPower:    s.AttackPower + other.AttackPower,
		TechPower:      s.TechPower + other.TechPower,
		MagicPower:     s.MagicPower + other.MagicPower,
		Vitality:       s.Vitality + other.Vitality,
		Agility:        s.Agility + other.Agility,
		Armor:          s.Armor + other.Armor,
		ShieldArmor:    s.ShieldArmor + other.ShieldArmor,
		CritChance:     s.CritChance + other.CritChance,
		CritMultiplier: s.CritMultiplier + other.CritMultiplier,
		DodgeChance:    s.DodgeChance + other.DodgeChance,
		Haste:          s.Haste + other.Haste,
	}
	if len(s.Resistances) > 0 || len(other.Resistances) > 0 {
		out.Resistances = make(map[DamageType]float64, len(s.Resistances)+len(other.Resistances))
		for k, v := range s.Resistances {
			out.Resistances[k] += v
		}
		for k, v := range other.Resistances {
			out.Resistances[k] += v
		}
	}
	return out
}

// Scale returns s with every numeric field multiplied by factor.
// Resistances are copied unscaled.
//
// Postcondition: s is unchanged.
func (s Stats) Scale(factor float64) Stats {
	out := s.Clone()
	out.MaxHealth *= factor
	out.MaxMana *= factor
	out.MaxEnergy *= factor
	out.MaxShield *= factor
	out.AttackPower *= factor
	out.TechPower *= factor
	out.MagicPower *= factor
	out.Vitality *= factor
	out.Agility *= factor
	out.Armor *= factor
	out.ShieldArmor *= factor
	out.CritChance *= factor
	out.CritMultiplier *= factor
	out.DodgeChance *= factor
	out.Haste *= factor
	return out
}

// Resistance returns the resistance fraction for dt, or 0 when none is recorded.
func (s Stats) Resistance(dt DamageType) float64 {
	return s.Resistances[dt]
}
