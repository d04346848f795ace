package assets

import (
	"github.com/paulmach/orb/geojson"
	"github.com/spf13/cast"
)

// Merge concatenates feature collections, deduplicating by tank_id.
// The first occurrence of a tank wins.
func Merge(collections ...*geojson.FeatureCollection) *geojson.FeatureCollection {
	merged := geojson.NewFeatureCollection()
	seen := make(map[int64]struct{})

	for _, fc := range collections {
		if fc == nil {
			continue
		}
		for _, f := range fc.Features {
			id := cast.ToInt64(f.Properties["tank_id"])
			if id != 0 {
				if _, ok := seen[id]; ok {
					continue
				}
				seen[id] = struct{}{}
			}
			merged.Append(f)
		}
	}
	return merged
}
