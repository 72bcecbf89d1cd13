// Package leveling converts earned experience into levels, affinity-weighted
// stat growth and unlock announcements.
package leveling

import (
	"math"

	"go.uber.org/zap"

	"github.com/cory-johannsen/cyberdino/internal/game/character"
	"github.com/cory-johannsen/cyberdino/internal/game/stats"
)

// UnlockType names a milestone reward. The leveling system only announces
// unlocks; the caller performs them.
type UnlockType string

const (
	UnlockAbilitySlot UnlockType = "ability_slot"
	UnlockUltimate    UnlockType = "ultimate"
	UnlockPassiveSlot UnlockType = "passive_slot"
	UnlockUpgrade     UnlockType = "upgrade"
)

// Unlock is one milestone reached at Level.
type Unlock struct {
	Type        UnlockType
	Level       int
	Description string
}

// Result summarises one XP award.
type Result struct {
	XPAwarded    int
	NewLevel     int
	LevelsGained int
	// StatIncreases is the sum of the per-level increases for every level gained.
	StatIncreases stats.Stats
	Unlocks       []Unlock
}

// LeveledUp reports whether the award raised the level.
func (r Result) LeveledUp() bool { return r.LevelsGained > 0 }

// XPForLevel returns the XP needed to advance from level L to L+1: floor(100 * L^1.5).
//
// Precondition: level >= 1.
func XPForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return int(math.Floor(100 * math.Pow(float64(level), 1.5)))
}

// TotalXPForLevel returns the cumulative XP needed to reach level from level 1.
//
// Postcondition: strictly increasing for level >= 1; TotalXPForLevel(1) == 0.
func TotalXPForLevel(level int) int {
	total := 0
	for l := 1; l < level; l++ {
		total += XPForLevel(l)
	}
	return total
}

// CalculateXPReward returns floor((30 + 10*enemyLevel) * (1 + max(0, enemyLevel-playerLevel)*0.2)).
func CalculateXPReward(enemyLevel, playerLevel int) int {
	gap := max(0, enemyLevel-playerLevel)
	return int(math.Floor(float64(30+enemyLevel*10) * (1 + float64(gap)*0.2)))
}

// UnlockedAbilities returns the milestones reached on arriving at newLevel.
func UnlockedAbilities(newLevel int) []Unlock {
	var out []Unlock
	switch newLevel {
	case 3:
		out = append(out, Unlock{Type: UnlockAbilitySlot, Level: newLevel, Description: "A new ability slot opens."})
	case 5:
		out = append(out, Unlock{Type: UnlockUltimate, Level: newLevel, Description: "Ultimate ability unlocked!"})
	case 7:
		out = append(out, Unlock{Type: UnlockAbilitySlot, Level: newLevel, Description: "A second extra ability slot opens."})
	case 10:
		out = append(out, Unlock{Type: UnlockPassiveSlot, Level: newLevel, Description: "A passive slot opens."})
	}
	if newLevel%5 == 0 {
		out = append(out, Unlock{Type: UnlockUpgrade, Level: newLevel, Description: "Ability upgrade available."})
	}
	return out
}

// CalculateStatIncreases returns the base-stat growth for reaching c.Level,
// weighted by the character's affinity mix. Every 5th level adds a health and
// crit bonus; every 10th level adds a larger health and power bonus.
func CalculateStatIncreases(c *character.Character) stats.Stats {
	w := c.Affinities.Normalize()
	a, t, p := w[stats.Arcane], w[stats.Tech], w[stats.Primal]
	fl := math.Floor

	inc := stats.Stats{
		MaxHealth:   15 + fl(10*p),
		MaxMana:     5 + fl(10*a),
		MaxEnergy:   5 + fl(10*p),
		MaxShield:   3 + fl(8*t),
		AttackPower: 2 + fl(4*p),
		TechPower:   2 + fl(4*t),
		MagicPower:  2 + fl(4*a),
		Vitality:    1 + fl(3*p),
		Agility:     1 + fl(2*p),
		Armor:       1 + fl(2*t),
		ShieldArmor: fl(2 * t),
		CritChance:  0.005 + 0.005*t,
		DodgeChance: 0.003 * p,
	}
	if c.Level%5 == 0 {
		inc.MaxHealth += 25
		inc.CritChance += 0.02
		inc.CritMultiplier += 0.1
	}
	if c.Level%10 == 0 {
		inc.MaxHealth += 50
		inc.AttackPower += 5
		inc.TechPower += 5
		inc.MagicPower += 5
	}
	return inc
}

// RestoreResources fills every pool to its new maximum.
func RestoreResources(c *character.Character) {
	c.RestoreAll()
}

// System applies XP awards.
type System struct {
	logger *zap.Logger
}

// NewSystem returns a System. A nil logger disables logging.
func NewSystem(logger *zap.Logger) *System {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &System{logger: logger}
}

// AddXP credits amount to c and levels up as many times as the XP covers,
// subtracting each threshold. After any level-up all pools are fully restored.
//
// Precondition: amount >= 0.
// Postcondition: c.XP < XPForLevel(c.Level); c.Abilities is never modified.
func (s *System) AddXP(c *character.Character, amount int) Result {
	if amount < 0 {
		amount = 0
	}
	c.XP += amount
	c.TotalXP += amount
	res := Result{XPAwarded: amount, NewLevel: c.Level}

	for c.XP >= XPForLevel(c.Level) {
		c.XP -= XPForLevel(c.Level)
		c.Level++
		inc := CalculateStatIncreases(c)
		c.Base = c.Base.Add(inc)
		res.StatIncreases = res.StatIncreases.Add(inc)
		res.Unlocks = append(res.Unlocks, UnlockedAbilities(c.Level)...)
		res.LevelsGained++
		s.logger.Info("level up",
			zap.String("character", c.ID),
			zap.Int("level", c.Level),
		)
	}
	res.NewLevel = c.Level
	if res.LevelsGained > 0 {
		RestoreResources(c)
	}
	return res
}
