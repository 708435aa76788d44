package main

import (
	"github.com/spf13/cobra"

	"github.com/osse101/FactorySim_Go/internal/config"
	"github.com/osse101/FactorySim_Go/internal/logger"
)

// Global flags
var (
	logLevel string
	modPath  string
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "factorysim",
		Short: "FactorySim - run and inspect factory simulations offline",
		Long: `FactorySim runs a facility headless, checks mod bundles and lists save slots.
Settings come from the environment (and .env) like the factoryd server; flags override them.

Examples:
  factorysim run --days 14 --strategy aggressive --seed 42
  factorysim run --days 30 --mod mods/bakery.yaml --report bakery.xlsx
  factorysim mod validate mods/bakery.yaml
  factorysim mod export starter.json
  factorysim saves list
  factorysim deadletters --tail 20`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", logger.LogLevelWarn,
		"Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&modPath, "mod", "",
		"Mod bundle to start from instead of the starter scenario (overrides MOD_PATH)")

	rootCmd.AddCommand(newRunCommand())
	rootCmd.AddCommand(newModCommand())
	rootCmd.AddCommand(newSavesCommand())
	rootCmd.AddCommand(newDeadLettersCommand())

	return rootCmd
}

// loadConfig reads the environment configuration, applies the global flags
// and routes logs to stderr so command output stays clean
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("mod") {
		cfg.ModPath = modPath
	}

	logger.InitLoggerWithWriter(logger.Config{
		Level:       logLevel,
		Format:      logger.LogFormatText,
		Service:     logger.DefaultServiceName + logger.CLISuffix,
		Version:     cfg.Version,
		Environment: cfg.Environment,
	}, cmd.ErrOrStderr())
	return cfg, nil
}
