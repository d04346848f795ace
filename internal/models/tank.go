package models

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/spf13/cast"
)

// Tank is a single floating-roof storage tank polygon sourced from OSM.
type Tank struct {
	ID        int64
	Location  string
	Content   string
	Substance string
	Geometry  orb.Polygon
}

// ToFeature converts a tank into a GeoJSON feature carrying the
// tank_id/location properties plus the preserved OSM tags.
func (t *Tank) ToFeature() *geojson.Feature {
	f := geojson.NewFeature(t.Geometry)
	f.Properties["tank_id"] = t.ID
	f.Properties["location"] = t.Location
	if t.Content != "" {
		f.Properties["content"] = t.Content
	}
	if t.Substance != "" {
		f.Properties["substance"] = t.Substance
	}
	return f
}

// TankFromFeature converts a GeoJSON feature back into a Tank.
// tank_id arrives as float64 after a JSON round trip.
func TankFromFeature(f *geojson.Feature) (*Tank, error) {
	poly, ok := f.Geometry.(orb.Polygon)
	if !ok {
		return nil, fmt.Errorf("feature geometry is %T, expected Polygon", f.Geometry)
	}

	id := cast.ToInt64(f.Properties["tank_id"])
	if id == 0 {
		return nil, fmt.Errorf("feature has no tank_id property")
	}

	return &Tank{
		ID:        id,
		Location:  cast.ToString(f.Properties["location"]),
		Content:   cast.ToString(f.Properties["content"]),
		Substance: cast.ToString(f.Properties["substance"]),
		Geometry:  poly,
	}, nil
}
