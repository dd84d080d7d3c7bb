package transcribe

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"audio-transcriber/cmd/transcriber/cmd/runtime"
	"audio-transcriber/internal/app"
	"audio-transcriber/internal/app/converter"
	"audio-transcriber/internal/config"
)

var (
	apiKey     string
	outputDir  string
	providerID string
	language   string
	format     string
	parallel   int
	progress   bool
	noProgress bool
)

func init() {
	Cmd.Flags().StringVarP(&apiKey, "api-key", "k", "", "API key for the provider (default $OPENAI_API_KEY, or $GEMINI_API_KEY for gemini)")
	Cmd.Flags().StringVarP(&outputDir, "out", "o", "", "write transcripcion_<name>.txt documents to this directory instead of stdout")
	Cmd.Flags().StringVarP(&providerID, "provider", "p", "", "transcription provider: openai or gemini")
	Cmd.Flags().StringVarP(&language, "language", "l", "", "spoken language (ISO-639-1), default from configuration")
	Cmd.Flags().StringVarP(&format, "format", "f", "txt", "document format: txt or srt")
	Cmd.Flags().IntVarP(&parallel, "parallel", "j", 1, "number of files transcribed at the same time")
	Cmd.Flags().BoolVar(&progress, "progress", false, "always show the progress bar")
	Cmd.Flags().BoolVar(&noProgress, "no-progress", false, "never show the progress bar")
}

// Cmd represents the transcribe command
var Cmd = &cobra.Command{
	Use:   "transcribe <file>...",
	Short: "Transcribe local audio files",
	Long: `Transcribe local audio files.

Every file goes through the same checks as the upload page: it must be audio and at
most 25MB. Each file is sent once; failures are reported and the remaining files continue.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if format != "txt" && format != "srt" {
			return fmt.Errorf("invalid --format %q: must be txt or srt", format)
		}

		cfg, logger, err := runtime.Setup(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync()

		key := resolveAPIKey(providerID, cfg.Transcription.Provider)
		if usesOpenAI(providerID, cfg.Transcription.Provider) {
			if err := config.CheckOpenAIKey(key); err != nil {
				logger.Warn("API key looks invalid", zap.Error(err))
			}
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		conv, cleanup, err := app.InitializeConverter(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer cleanup()

		results := conv.TranscribeFiles(ctx, args, converter.Options{
			APIKey:    key,
			Provider:  providerID,
			Language:  language,
			Format:    format,
			OutputDir: outputDir,
			Parallel:  parallel,
			Progress: converter.ProgressConfig{
				Enabled: converter.ShouldShowProgress(progress, noProgress),
				Writer:  os.Stderr,
			},
		})

		return report(ctx, cmd, results)
	},
}

func resolveAPIKey(requested, configured string) string {
	if apiKey != "" {
		return apiKey
	}
	if requested == "" {
		requested = configured
	}
	if requested == "gemini" {
		return os.Getenv("GEMINI_API_KEY")
	}
	return os.Getenv("OPENAI_API_KEY")
}

func usesOpenAI(requested, configured string) bool {
	if requested == "" {
		requested = configured
	}
	return requested == "" || requested == "openai"
}

func report(ctx context.Context, cmd *cobra.Command, results []converter.FileResult) error {
	out := cmd.OutOrStdout()
	failed := 0

	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", r.Path, r.Err)
		case r.OutputPath != "":
			fmt.Fprintf(out, "%s -> %s\n", r.Path, r.OutputPath)
		default:
			fmt.Fprintln(out, r.Document)
			fmt.Fprintln(out, strings.Repeat("-", 40))
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}
