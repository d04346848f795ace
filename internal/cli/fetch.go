package cli

import (
	"fmt"
	"path/filepath"

	"github.com/paulmach/orb/geojson"
	"github.com/spf13/cobra"

	"tankwatch/internal/assets"
	"tankwatch/internal/geo"
	"tankwatch/internal/overpass"
	"tankwatch/internal/providers"
	"tankwatch/internal/services"
)

var fetchRegion string

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch tank polygons from the Overpass API for the configured regions",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := loadConfig()
		if err != nil {
			return err
		}
		// One-shot command, no exporter endpoint to scrape.
		conf.Metrics.Enabled = false

		logger, err := newLogger(conf)
		if err != nil {
			return err
		}
		defer logger.Close()

		metrics := providers.NewMetricsProvider(conf, services.NewSampleService())
		client := overpass.NewClient(conf, logger, metrics)
		store := assets.NewStore(conf, logger)

		var collections []*geojson.FeatureCollection
		processed, total := 0, 0

		for _, region := range conf.Regions {
			if fetchRegion != "" && region.Name != fetchRegion {
				continue
			}

			bbox, err := geo.ParseBbox(region.Bbox)
			if err != nil {
				return fmt.Errorf("region %q: %w", region.Name, err)
			}

			fmt.Printf("Fetching data for %s...\n", region.Name)
			tanks, err := client.FetchTanks(cmd.Context(), region.Name, bbox)
			if err != nil {
				errColor.Printf("  ✗ %s: %v\n", region.Name, err)
				continue
			}
			if len(tanks) == 0 {
				warnColor.Printf("  ⚠ %s: no valid tanks found\n", region.Name)
				continue
			}

			fc := geojson.NewFeatureCollection()
			for _, t := range tanks {
				fc.Append(t.ToFeature())
			}

			assetID, err := store.Register(geo.SafeName(region.Name), fc)
			if err != nil {
				return err
			}
			okColor.Printf("  ✓ %s: %d tanks → %s\n", region.Name, len(tanks), assetID)

			collections = append(collections, fc)
			processed++
			total += len(tanks)
		}

		if len(collections) > 0 {
			merged := assets.Merge(collections...)
			mergedPath := filepath.Join(conf.Assets.Dir, "oil_tanks.geojson")
			if err := assets.WriteFile(mergedPath, merged); err != nil {
				return err
			}
			okColor.Printf("✓ Saved %d merged tank polygons to %s\n", len(merged.Features), mergedPath)
		}

		fmt.Printf("Regions processed: %d/%d, total tanks: %d\n", processed, len(conf.Regions), total)
		return nil
	},
}

func init() {
	fetchCmd.Flags().StringVar(&fetchRegion, "region", "", "fetch a single region by name")
	rootCmd.AddCommand(fetchCmd)
}
