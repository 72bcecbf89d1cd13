// Package event is the synchronous publish/subscribe hub between the
// simulation and anything that presents it.
package event

import (
	"github.com/cory-johannsen/cyberdino/internal/game/ability"
	"github.com/cory-johannsen/cyberdino/internal/game/character"
	"github.com/cory-johannsen/cyberdino/internal/game/leveling"
)

// Name identifies an event stream.
type Name string

const (
	NameLog                Name = "log"
	NameBasicHit           Name = "combat:basicHit"
	NameAbilityCast        Name = "combat:abilityCast"
	NameCharacterDead      Name = "character:dead"
	NameEnemySpawned       Name = "enemy:spawned"
	NameTurnStart          Name = "turn:start"
	NameTurnEnd            Name = "turn:end"
	NamePlayerLevelUp      Name = "player:levelup"
	NameCheckPlayerActions Name = "turn:checkPlayerActions"
)

// Event is a typed payload bound to exactly one Name.
type Event interface {
	Name() Name
}

// LogType classifies narration lines.
type LogType string

const (
	LogDamage  LogType = "damage"
	LogSystem  LogType = "system"
	LogXP      LogType = "xp"
	LogLevelUp LogType = "levelup"
	LogUnlock  LogType = "unlock"
	LogHeal    LogType = "heal"
)

// TurnOwner is whose turn it is.
type TurnOwner string

const (
	OwnerPlayer TurnOwner = "player"
	OwnerEnemy  TurnOwner = "enemy"
)

// Log is one narration line.
type Log struct {
	Type LogType
	Text string
}

func (Log) Name() Name { return NameLog }

// BasicHit reports a resolved basic attack.
type BasicHit struct {
	Attacker *character.Character
	Defender *character.Character
	IsCrit   bool
	Amount   float64
}

func (BasicHit) Name() Name { return NameBasicHit }

// AbilityCast fires before an ability's cost is paid and its effect applied.
type AbilityCast struct {
	Ability *ability.Ability
	Actor   *character.Character
	Target  *character.Character
}

func (AbilityCast) Name() Name { return NameAbilityCast }

// CharacterDead fires once when a character's health reaches zero.
type CharacterDead struct {
	Character *character.Character
}

func (CharacterDead) Name() Name { return NameCharacterDead }

// EnemySpawned fires when a new enemy enters the fight.
type EnemySpawned struct {
	Enemy *character.Character
}

func (EnemySpawned) Name() Name { return NameEnemySpawned }

// TurnStart fires when control passes to Owner.
type TurnStart struct {
	Owner TurnOwner
}

func (TurnStart) Name() Name { return NameTurnStart }

// TurnEnd fires when Owner has finished acting.
type TurnEnd struct {
	Owner TurnOwner
}

func (TurnEnd) Name() Name { return NameTurnEnd }

// PlayerLevelUp carries the summed result of an XP award that raised the level.
type PlayerLevelUp struct {
	Player *character.Character
	Result leveling.Result
}

func (PlayerLevelUp) Name() Name { return NamePlayerLevelUp }

// CheckPlayerActions reports whether the player has any legal action at the
// start of their turn.
type CheckPlayerActions struct {
	Player    *character.Character
	HasAction bool
}

func (CheckPlayerActions) Name() Name { return NameCheckPlayerActions }
