package cli

import (
	"github.com/fatih/color"

	"tankwatch/internal/providers"
	"tankwatch/internal/structures"
)

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	errColor  = color.New(color.FgRed, color.Bold)
)

// loadConfig builds the validated config from the global flags.
func loadConfig() (*structures.Config, error) {
	return providers.NewConfigProvider(&structures.CliFlags{
		ConfigPath: configPath,
		DebugMode:  debugMode,
	})
}

// newLogger opens the file logger for one-shot commands.
func newLogger(conf *structures.Config) (providers.Logger, error) {
	return providers.NewLogProvider(conf)
}
