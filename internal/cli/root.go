package cli

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	debugMode  bool
)

// rootCmd is the root command for tankwatch.
var rootCmd = &cobra.Command{
	Use:     "tankwatch",
	Version: "dev",
	Short:   "Floating-roof oil tank inventory pipeline",
	Long: `tankwatch acquires storage-tank polygons from OpenStreetMap, manages
per-region feature collections, aggregates weekly satellite scene samples
into a tank-week table and exports it for analysis.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to the config file")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "log to stderr instead of the log files")
}
