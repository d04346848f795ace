package cli

import (
	"fmt"

	"github.com/paulmach/orb/geojson"
	"github.com/spf13/cobra"

	"tankwatch/internal/assets"
)

var mergeOut string

var mergeCmd = &cobra.Command{
	Use:   "merge <file>...",
	Short: "Merge tank GeoJSON files, deduplicating by tank ID",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var collections []*geojson.FeatureCollection
		total := 0
		for _, path := range args {
			fc, err := assets.ReadFile(path)
			if err != nil {
				return err
			}
			fmt.Printf("%s: %d tanks\n", path, len(fc.Features))
			total += len(fc.Features)
			collections = append(collections, fc)
		}

		merged := assets.Merge(collections...)
		if err := assets.WriteFile(mergeOut, merged); err != nil {
			return err
		}

		fmt.Printf("Total: %d tanks\n", total)
		fmt.Printf("Unique: %d tanks\n", len(merged.Features))
		fmt.Printf("Duplicates removed: %d\n", total-len(merged.Features))
		okColor.Printf("✓ Merged file saved as %s\n", mergeOut)
		return nil
	},
}

func init() {
	mergeCmd.Flags().StringVarP(&mergeOut, "out", "o", "oil_tanks.geojson", "output file")
	rootCmd.AddCommand(mergeCmd)
}
