package weekly

import (
	"time"

	"tankwatch/internal/models"
)

// reflectanceScale converts raw Sentinel-2 integers to reflectance.
const reflectanceScale = 10000.0

// epsilon keeps the normalized indices defined on zero denominators.
const epsilon = 1e-4

// PointFromRow scales a raw tank row and derives the spectral features:
// shadow index (NIR-red), NDVI, NDWI and overall brightness.
func PointFromRow(row models.TankRow, sceneTime time.Time, solarZenith float64) *models.ScenePoint {
	b2 := float64(row.B2) / reflectanceScale
	b3 := float64(row.B3) / reflectanceScale
	b4 := float64(row.B4) / reflectanceScale
	b8 := float64(row.B8) / reflectanceScale
	b11 := float64(row.B11) / reflectanceScale

	p := &models.ScenePoint{
		SceneTime:   sceneTime,
		SolarZenith: solarZenith,
		B2:          b2,
		B3:          b3,
		B4:          b4,
		B8:          b8,
		B11:         b11,
		ShadowIndex: b8 - b4,
		NDVI:        (b8 - b4) / (b8 + b4 + epsilon),
		NDWI:        (b3 - b8) / (b3 + b8 + epsilon),
		Brightness:  (b2 + b3 + b4 + b8) / 4,
		PixelCount:  row.PixelCount,
	}

	// Contrast is non-negative; senders using the old -1 sentinel still
	// read as absent.
	if tc := row.TextureContrast; tc != nil && *tc >= 0 {
		p.TextureContrast = *tc
		p.HasTexture = true
	}

	return p
}

// SunElevation converts a solar zenith angle to elevation above horizon.
func SunElevation(solarZenith float64) float64 {
	return 90 - solarZenith
}
