package cli

import (
	"github.com/spf13/cobra"

	"tankwatch/internal/di"
	"tankwatch/internal/structures"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the sample ingest daemon",
	Long: `serve starts the HTTP server that receives scene samples, runs the
weekly compositing scheduler and persists the tank-week store. It blocks
until SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := di.InitApp(&structures.CliFlags{
			ConfigPath: configPath,
			DebugMode:  debugMode,
		})
		return err
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
