package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"tankwatch/internal/assets"
)

var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "Manage registered region feature collections",
}

var assetsRegisterCmd = &cobra.Command{
	Use:   "register <region.geojson>...",
	Short: "Validate region files and register them in the asset store",
	Args:  cobra.MinimumNArgs(1),
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

		store := assets.NewStore(conf, logger)

		successful, failed := 0, 0
		for _, path := range args {
			region := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			fmt.Printf("Processing %s...\n", filepath.Base(path))

			fc, err := assets.ReadFile(path)
			if err != nil {
				errColor.Printf("  ✗ %v\n", err)
				failed++
				continue
			}

			assetID, err := store.Register(region, fc)
			if err != nil {
				errColor.Printf("  ✗ %v\n", err)
				failed++
				continue
			}
			okColor.Printf("  ✓ %d features → %s\n", len(fc.Features), assetID)
			successful++
		}

		fmt.Printf("Successful: %d/%d\n", successful, len(args))
		if failed > 0 {
			return fmt.Errorf("%d region file(s) failed", failed)
		}
		return nil
	},
}

var assetsLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List registered regions",
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

		store := assets.NewStore(conf, logger)
		regions, err := store.List()
		if err != nil {
			return err
		}
		for _, region := range regions {
			fc, err := store.Load(region)
			if err != nil {
				warnColor.Printf("%s (unreadable: %v)\n", store.AssetID(region), err)
				continue
			}
			fmt.Printf("%s: %d tanks\n", store.AssetID(region), len(fc.Features))
		}
		return nil
	},
}

func init() {
	assetsCmd.AddCommand(assetsRegisterCmd)
	assetsCmd.AddCommand(assetsLsCmd)
	rootCmd.AddCommand(assetsCmd)
}
