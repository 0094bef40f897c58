package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ryanbbrown/web-deckbuilding/internal/config"
)

var (
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *zap.Logger

	version = "dev" // set via ldflags during build
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "deckbuilder",
		Short:        "Deck-building card game engine",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.Logging.Level = logLevel
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			logger, err = initLogger(cfg.Logging)
			if err != nil {
				return err
			}
			logger.Debug("configuration loaded", zap.String("config", configPath))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to configuration file (YAML)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "override logging.level (debug, info, warn, error)")

	root.AddCommand(simulateCmd(), marketCmd())
	return root
}
