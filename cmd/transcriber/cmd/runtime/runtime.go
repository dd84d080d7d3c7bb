// Package runtime loads the configuration and logger shared by every command.
package runtime

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"audio-transcriber/internal/config"
	"audio-transcriber/internal/logger"
)

// Setup loads .env files, the environment configuration and a logger. The inherited
// --verbose flag forces debug level.
func Setup(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	if err := config.LoadEnv(); err != nil {
		return nil, nil, err
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.LogLevel = "debug"
	}

	log, err := logger.New(cfg.Development(), cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("create logger: %w", err)
	}
	return cfg, log, nil
}
