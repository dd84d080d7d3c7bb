package config

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	appconfig "audio-transcriber/internal/config"
)

var (
	configPath string
	force      bool
)

// Cmd groups the configuration commands.
var Cmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the transcription defaults file",
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the built-in transcription defaults to a YAML file",
	Long: `Write the built-in transcription defaults (whisper-1, es, verbose_json, temperature 0)
to a YAML file that serve and transcribe read at startup.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(configPath); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
		}

		defaults := appconfig.DefaultTranscription()
		if err := appconfig.SaveTranscriptionDefaults(&defaults, configPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", configPath)
		return nil
	},
}

func init() {
	initCmd.Flags().StringVar(&configPath, "path", appconfig.DefaultTranscriptionConfigPath, "destination file")
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	Cmd.AddCommand(initCmd)
}
