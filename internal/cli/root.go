package cli

import (
	"fmt"

	"github.com/nikolayk812/roze-storefront/internal/config"
	"github.com/nikolayk812/roze-storefront/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	LogLevel   string
}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "storefront",
		Short:         "Roze perfume storefront backend",
		Long:          "Serves the Roze catalog, carts, customer profiles and WhatsApp checkout over JSON HTTP.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to YAML config file")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level override (debug|info|warn|error)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))

	return cmd
}

// load reads the config and builds the logger; the --log-level flag wins over
// the config value.
func (o *RootOptions) load() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("config.Load: %w", err)
	}

	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}

	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("logging.New: %w", err)
	}

	return cfg, logger, nil
}
