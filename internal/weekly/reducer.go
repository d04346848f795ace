package weekly

import (
	"math"
	"sort"

	"tankwatch/internal/models"
)

// Reduce computes the tank-week reduction of a single feature: the median
// (compositing value) plus mean, stdDev, min, max and count. stdDev of
// fewer than two values is 0.
func Reduce(values []float64) models.Agg {
	n := len(values)
	if n == 0 {
		return models.Agg{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	var median float64
	if n%2 == 1 {
		median = sorted[n/2]
	} else {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(n)

	var stdDev float64
	if n > 1 {
		var sq float64
		for _, v := range sorted {
			d := v - mean
			sq += d * d
		}
		stdDev = math.Sqrt(sq / float64(n-1))
	}

	return models.Agg{
		Median: median,
		Mean:   mean,
		StdDev: stdDev,
		Min:    sorted[0],
		Max:    sorted[n-1],
		Count:  n,
	}
}

// ReduceWeek builds one tank-week row from a week's admitted points.
// Returns nil for an empty series.
func ReduceWeek(tankID int64, location, week string, series *models.WeekSeries) *models.TankWeek {
	if series == nil || len(series.Points) == 0 {
		return nil
	}

	points := series.Points
	n := len(points)
	b2 := make([]float64, 0, n)
	b3 := make([]float64, 0, n)
	b4 := make([]float64, 0, n)
	b8 := make([]float64, 0, n)
	shadow := make([]float64, 0, n)
	ndvi := make([]float64, 0, n)
	ndwi := make([]float64, 0, n)
	brightness := make([]float64, 0, n)
	var texture []float64

	var zenithSum float64
	pixels := 0
	for _, p := range points {
		b2 = append(b2, p.B2)
		b3 = append(b3, p.B3)
		b4 = append(b4, p.B4)
		b8 = append(b8, p.B8)
		shadow = append(shadow, p.ShadowIndex)
		ndvi = append(ndvi, p.NDVI)
		ndwi = append(ndwi, p.NDWI)
		brightness = append(brightness, p.Brightness)
		if p.HasTexture {
			texture = append(texture, p.TextureContrast)
		}
		zenithSum += p.SolarZenith
		pixels += p.PixelCount
	}

	zenith := zenithSum / float64(n)
	row := &models.TankWeek{
		TankID:           tankID,
		Location:         location,
		Week:             week,
		SolarZenithAngle: zenith,
		SunElevation:     SunElevation(zenith),
		B2:               Reduce(b2),
		B3:               Reduce(b3),
		B4:               Reduce(b4),
		B8:               Reduce(b8),
		ShadowIndex:      Reduce(shadow),
		NDVI:             Reduce(ndvi),
		NDWI:             Reduce(ndwi),
		Brightness:       Reduce(brightness),
		PixelCount:       pixels,
	}

	if len(texture) > 0 {
		row.TextureContrast = Reduce(texture)
		row.HasTexture = true
	}

	return row
}

// ReduceRegion flattens a region's series into tank-week rows.
func ReduceRegion(rd *models.RegionData) []*models.TankWeek {
	if rd == nil {
		return nil
	}

	var rows []*models.TankWeek
	for tankID, ts := range rd.Tanks {
		for week, series := range ts.Weeks {
			if row := ReduceWeek(tankID, ts.Location, week, series); row != nil {
				rows = append(rows, row)
			}
		}
	}
	sortRows(rows)
	return rows
}

// ReduceStore flattens the whole store, sorted by week, location, tank.
func ReduceStore(store *models.WeekStore) []*models.TankWeek {
	var rows []*models.TankWeek
	for _, rd := range store.GetData() {
		rows = append(rows, ReduceRegion(rd)...)
	}
	sortRows(rows)
	return rows
}

func sortRows(rows []*models.TankWeek) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Week != rows[j].Week {
			return rows[i].Week < rows[j].Week
		}
		if rows[i].Location != rows[j].Location {
			return rows[i].Location < rows[j].Location
		}
		return rows[i].TankID < rows[j].TankID
	})
}
