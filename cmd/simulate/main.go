// Package main provides the simulate binary, which autoplays tactics runs on
// a virtual clock and dumps generated loot.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/cyberdino/internal/config"
	"github.com/cory-johannsen/cyberdino/internal/observability"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Cyber Dino Fantasy Tactics simulator",
	Long: `simulate drives the tactics engine without a renderer: it autoplays
fights on a virtual clock and prints the narration, or dumps procedurally
generated loot as YAML.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML configuration file; empty = defaults and DINO_* environment")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(lootCmd)
}

// setup loads configuration and builds the logger shared by every subcommand.
func setup() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("loading config: %w", err)
	}
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("initializing logger: %w", err)
	}
	return cfg, logger, nil
}
