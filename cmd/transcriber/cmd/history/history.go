package history

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"audio-transcriber/cmd/transcriber/cmd/runtime"
	"audio-transcriber/internal/app"
	"audio-transcriber/internal/app/repository/migrate"
)

var (
	fromDriver string
	fromDSN    string
	toDriver   string
	toDSN      string
)

// Cmd groups the history maintenance commands.
var Cmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the transcription history store",
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy the transcription history from one store to another",
	Long: `Copy every live transcription record from one store to another, oldest first.

Example:
  transcriber history migrate --from-dsn data/transcriptions.db \
    --to-driver postgres --to-dsn "postgres://localhost/transcriber?sslmode=disable"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logger, err := runtime.Setup(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync()

		ctx := cmd.Context()
		src, err := app.OpenHistory(ctx, fromDriver, fromDSN)
		if err != nil {
			return fmt.Errorf("open source: %w", err)
		}
		if src == nil {
			return fmt.Errorf("source driver must be sqlite or postgres")
		}
		defer src.Close()

		dst, err := app.OpenHistory(ctx, toDriver, toDSN)
		if err != nil {
			return fmt.Errorf("open destination: %w", err)
		}
		if dst == nil {
			return fmt.Errorf("destination driver must be sqlite or postgres")
		}
		defer dst.Close()

		copied, err := migrate.Copy(ctx, src, dst, logger)
		if err != nil {
			logger.Error("history migration failed", zap.Int("copied", copied), zap.Error(err))
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "migrated %d records\n", copied)
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&fromDriver, "from-driver", "sqlite", "source driver: sqlite or postgres")
	migrateCmd.Flags().StringVar(&fromDSN, "from-dsn", "", "source DSN or sqlite file")
	migrateCmd.Flags().StringVar(&toDriver, "to-driver", "postgres", "destination driver: sqlite or postgres")
	migrateCmd.Flags().StringVar(&toDSN, "to-dsn", "", "destination DSN or sqlite file")
	migrateCmd.MarkFlagRequired("from-dsn")
	migrateCmd.MarkFlagRequired("to-dsn")

	Cmd.AddCommand(migrateCmd)
}
