package serve

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"audio-transcriber/cmd/transcriber/cmd/runtime"
	"audio-transcriber/internal/app"
)

var shutdownTimeout time.Duration

func init() {
	Cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 30*time.Second, "time allowed for in-flight requests on shutdown")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the upload page and the HTTP API",
	Long: `Serve the upload page at / and the API under /api/v1.

Listens on HOST:PORT (default 0.0.0.0:8080) and shuts down gracefully on SIGINT or SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := runtime.Setup(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		initCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		srv, cleanup, err := app.InitializeServer(initCtx, cfg, logger)
		cancel()
		if err != nil {
			logger.Error("failed to initialize server", zap.Error(err))
			return err
		}
		defer cleanup()

		return srv.Run(ctx, shutdownTimeout)
	},
}
