package cli

import (
	"github.com/spf13/cobra"

	"tankwatch/internal/export"
	"tankwatch/internal/services"
	"tankwatch/internal/weekly"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the tank-week table as CSV from the persisted store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := loadConfig()
		if err != nil {
			return err
		}
		logger, err := newLogger(conf)
		if err != nil {
			return err
		}
		defer logger.Close()

		compressor, err := weekly.NewZstdCompressor()
		if err != nil {
			return err
		}
		defer compressor.Close()

		service := services.NewSampleService()
		fileManager := weekly.NewFileManager(compressor, service, logger)
		if err := fileManager.LoadFromFile(conf.Persistence.FilePath); err != nil {
			return err
		}

		cold := weekly.NewColdStorageFromConfig(conf, compressor, logger)
		if err := cold.RestoreIndex(); err != nil {
			return err
		}

		exporter := export.NewExporter(conf, logger, service, cold, compressor)
		rows, err := exporter.Export(exportOut)
		if err != nil {
			return err
		}

		path := exportOut
		if path == "" {
			path = conf.Export.Dir + "/" + export.DefaultFileName
		}
		okColor.Printf("✓ Wrote %d tank-week rows to %s\n", rows, path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output CSV path (default <export dir>/"+export.DefaultFileName+")")
	rootCmd.AddCommand(exportCmd)
}
