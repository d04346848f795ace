package overpass

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"tankwatch/internal/models"
)

// AssembleTanks resolves way node references against the node elements of
// the same response and builds closed, non-degenerate tank polygons.
// Ways with fewer than three resolvable nodes or zero planar area are
// dropped.
func AssembleTanks(region string, elements []element) []*models.Tank {
	nodes := make(map[int64]orb.Point)
	for _, el := range elements {
		if el.Type == "node" {
			nodes[el.ID] = orb.Point{el.Lon, el.Lat}
		}
	}

	var tanks []*models.Tank
	for _, el := range elements {
		if el.Type != "way" || len(el.Nodes) == 0 {
			continue
		}

		ring := make(orb.Ring, 0, len(el.Nodes)+1)
		for _, id := range el.Nodes {
			if pt, ok := nodes[id]; ok {
				ring = append(ring, pt)
			}
		}
		if len(ring) < 3 {
			continue
		}
		if !ring.Closed() {
			ring = append(ring, ring[0])
		}

		poly := orb.Polygon{ring}
		if math.Abs(planar.Area(poly)) == 0 {
			continue
		}

		tank := &models.Tank{
			ID:       el.ID,
			Location: region,
			Geometry: poly,
		}
		if el.Tags != nil {
			tank.Content = el.Tags["content"]
			tank.Substance = el.Tags["substance"]
		}
		tanks = append(tanks, tank)
	}
	return tanks
}
