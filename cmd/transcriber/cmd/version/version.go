package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"audio-transcriber/internal/app"
)

// Cmd represents the version command
var Cmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of transcriber",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "transcriber %s (commit %s, built %s)\n", app.Version, app.Commit, app.Date)
		return nil
	},
}
