package geo

import (
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// ParseBbox parses an Overpass-order bbox string
// ("minLat,minLon,maxLat,maxLon") into an orb.Bound.
func ParseBbox(bbox string) (*orb.Bound, error) {
	coords := strings.Split(bbox, ",")
	if len(coords) != 4 {
		return nil, errors.New("bbox does not have 4 elements")
	}

	parts := make([]float64, 4)
	for i, c := range coords {
		val, err := strconv.ParseFloat(strings.TrimSpace(c), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to parse bbox element %d", i)
		}
		parts[i] = val
	}

	minLat, minLon, maxLat, maxLon := parts[0], parts[1], parts[2], parts[3]
	if minLat >= maxLat || minLon >= maxLon {
		return nil, errors.New("bbox min must be strictly below max")
	}

	return &orb.Bound{
		Min: orb.Point{minLon, minLat},
		Max: orb.Point{maxLon, maxLat},
	}, nil
}

// OverpassOrder renders a bound back into the south,west,north,east order
// Overpass expects inside a query.
func OverpassOrder(b *orb.Bound) string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return f(b.Min[1]) + "," + f(b.Min[0]) + "," + f(b.Max[1]) + "," + f(b.Max[0])
}
