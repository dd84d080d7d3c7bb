package export

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"audio-transcriber/cmd/transcriber/cmd/runtime"
	"audio-transcriber/internal/api/v1/dto"
	"audio-transcriber/internal/api/v1/services"
	"audio-transcriber/internal/app"
)

var (
	outputFilePath string
	format         string
	providerName   string
	includeFailed  bool
)

func init() {
	Cmd.Flags().StringVarP(&outputFilePath, "outputFilePath", "o", "", "set outputFilePath")
	Cmd.Flags().StringVarP(&format, "format", "f", "", "xlsx, csv or json (default from the file extension, else xlsx)")
	Cmd.Flags().StringVarP(&providerName, "provider", "p", "", "only export this provider's transcriptions")
	Cmd.Flags().BoolVar(&includeFailed, "include-failed", false, "include failed transcriptions")

	Cmd.MarkFlagRequired("outputFilePath")
}

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export the transcription history",
	Long: `Export the transcription history to Excel, CSV or JSON.

- Reads the history store configured with HISTORY_DRIVER and HISTORY_DSN`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := runtime.Setup(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync()

		history, err := app.OpenHistory(cmd.Context(), cfg.Stores.HistoryDriver, cfg.Stores.HistoryDSN)
		if err != nil {
			return err
		}
		if history == nil {
			return fmt.Errorf("transcription history is disabled (HISTORY_DRIVER=none)")
		}
		defer history.Close()

		f, err := os.Create(outputFilePath)
		if err != nil {
			return err
		}
		defer f.Close()

		w := bufio.NewWriter(f)
		req := dto.ExportRequest{
			Format:        exportFormat(format, outputFilePath),
			Provider:      providerName,
			IncludeFailed: includeFailed,
		}
		if err := services.NewExportService(history).ExportTranscriptions(cmd.Context(), req, w); err != nil {
			os.Remove(outputFilePath)
			return err
		}
		if err := w.Flush(); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "export finished, exported file path: %v\n", outputFilePath)
		return nil
	},
}

func exportFormat(flag, path string) string {
	if flag != "" {
		return flag
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return services.ExportCSV
	case ".json":
		return services.ExportJSON
	default:
		return services.ExportXLSX
	}
}
