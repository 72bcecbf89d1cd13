// Package config provides Viper-based configuration loading for the tactics simulator.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// GameConfig holds simulation tuning values.
type GameConfig struct {
	// Seed seeds the procedural generator. Identical seeds replay identical content.
	Seed int64 `mapstructure:"seed"`
	// EnemyTurnDelay is the pause between the end of the player's turn and the enemy acting.
	EnemyTurnDelay time.Duration `mapstructure:"enemy_turn_delay"`
	// RespawnDelay is the pause between an enemy dying and its replacement spawning.
	RespawnDelay time.Duration `mapstructure:"respawn_delay"`
	// AutoPassDelay is the pause before a player with no legal action auto-passes.
	AutoPassDelay time.Duration `mapstructure:"auto_pass_delay"`
	// StartingCredits is the credit balance of a freshly created player.
	StartingCredits int `mapstructure:"starting_credits"`
	// BasicAttackEnergyCost is the energy a basic attack consumes; 0 makes it free.
	BasicAttackEnergyCost float64 `mapstructure:"basic_attack_energy_cost"`
}

// ScriptingConfig holds Lua enemy policy settings.
type ScriptingConfig struct {
	// EnemyPolicy is the path to a Lua script defining choose_action; empty = built-in policy.
	EnemyPolicy string `mapstructure:"enemy_policy"`
	// InstructionLimit caps the opcodes a single choose_action call may execute.
	InstructionLimit int `mapstructure:"instruction_limit"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Game      GameConfig      `mapstructure:"game"`
	Scripting ScriptingConfig `mapstructure:"scripting"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateGame(c.Game); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateScripting(c.Scripting); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateGame(g GameConfig) error {
	var errs []string
	if g.EnemyTurnDelay < 0 {
		errs = append(errs, "game.enemy_turn_delay must not be negative")
	}
	if g.RespawnDelay < 0 {
		errs = append(errs, "game.respawn_delay must not be negative")
	}
	if g.AutoPassDelay < 0 {
		errs = append(errs, "game.auto_pass_delay must not be negative")
	}
	if g.StartingCredits < 0 {
		errs = append(errs, fmt.Sprintf("game.starting_credits must be >= 0, got %d", g.StartingCredits))
	}
	if g.BasicAttackEnergyCost < 0 {
		errs = append(errs, fmt.Sprintf("game.basic_attack_energy_cost must be >= 0, got %g", g.BasicAttackEnergyCost))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateScripting(s ScriptingConfig) error {
	if s.InstructionLimit < 0 {
		return fmt.Errorf("scripting.instruction_limit must be >= 0, got %d", s.InstructionLimit)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path loads defaults and environment only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with DINO_ prefix
	v.SetEnvPrefix("DINO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the configuration produced by Load with no file and no environment.
func Default() Config {
	return Config{
		Logging: LoggingConfig{Level: "info", Format: "console"},
		Game: GameConfig{
			Seed:            42,
			EnemyTurnDelay:  800 * time.Millisecond,
			RespawnDelay:    500 * time.Millisecond,
			AutoPassDelay:   time.Second,
			StartingCredits: 100,
		},
		Scripting: ScriptingConfig{InstructionLimit: 100_000},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)

	v.SetDefault("game.seed", d.Game.Seed)
	v.SetDefault("game.enemy_turn_delay", "800ms")
	v.SetDefault("game.respawn_delay", "500ms")
	v.SetDefault("game.auto_pass_delay", "1s")
	v.SetDefault("game.starting_credits", d.Game.StartingCredits)
	v.SetDefault("game.basic_attack_energy_cost", d.Game.BasicAttackEnergyCost)

	v.SetDefault("scripting.enemy_policy", "")
	v.SetDefault("scripting.instruction_limit", d.Scripting.InstructionLimit)
}
