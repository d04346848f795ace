package weekly

import (
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tankwatch/internal/models"
)

func texPtr(v float64) *float64 { return &v }

func TestPointFromRow_Scaling(t *testing.T) {
	row := models.TankRow{
		TankID:     1,
		B2:         1200,
		B3:         1500,
		B4:         1800,
		B8:         3000,
		B11:        2200,
		PixelCount: 40,
	}
	sceneTime := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)

	p := PointFromRow(row, sceneTime, 35.0)

	assert.Equal(t, sceneTime, p.SceneTime)
	assert.Equal(t, 35.0, p.SolarZenith)
	assert.InDelta(t, 0.12, p.B2, 1e-9)
	assert.InDelta(t, 0.15, p.B3, 1e-9)
	assert.InDelta(t, 0.18, p.B4, 1e-9)
	assert.InDelta(t, 0.30, p.B8, 1e-9)
	assert.InDelta(t, 0.22, p.B11, 1e-9)
	assert.Equal(t, 40, p.PixelCount)
}

func TestPointFromRow_DerivedFeatures(t *testing.T) {
	row := models.TankRow{B2: 1000, B3: 2000, B4: 1000, B8: 3000}
	p := PointFromRow(row, time.Now(), 0)

	assert.InDelta(t, 0.2, p.ShadowIndex, 1e-9) // 0.3 - 0.1
	assert.InDelta(t, (0.3-0.1)/(0.3+0.1+epsilon), p.NDVI, 1e-9)
	assert.InDelta(t, (0.2-0.3)/(0.2+0.3+epsilon), p.NDWI, 1e-9)
	assert.InDelta(t, (0.1+0.2+0.1+0.3)/4, p.Brightness, 1e-9)
}

func TestPointFromRow_ZeroBandsStayDefined(t *testing.T) {
	row := models.TankRow{}
	p := PointFromRow(row, time.Now(), 0)

	assert.Equal(t, 0.0, p.NDVI)
	assert.Equal(t, 0.0, p.NDWI)
}

func TestPointFromRow_Texture(t *testing.T) {
	withTexture := PointFromRow(models.TankRow{TextureContrast: texPtr(12.5)}, time.Now(), 0)
	assert.True(t, withTexture.HasTexture)
	assert.Equal(t, 12.5, withTexture.TextureContrast)

	zeroTexture := PointFromRow(models.TankRow{TextureContrast: texPtr(0)}, time.Now(), 0)
	assert.True(t, zeroTexture.HasTexture, "zero is a valid contrast value")

	noTexture := PointFromRow(models.TankRow{}, time.Now(), 0)
	assert.False(t, noTexture.HasTexture)

	negTexture := PointFromRow(models.TankRow{TextureContrast: texPtr(-1)}, time.Now(), 0)
	assert.False(t, negTexture.HasTexture, "old sentinel still reads as absent")
}

func TestPointFromRow_OmittedTextureFieldIsAbsent(t *testing.T) {
	var row models.TankRow
	err := json.Unmarshal([]byte(`{"tank_id": 1, "b8": 3000, "scl": 5, "pixel_count": 12}`), &row)
	require.NoError(t, err)

	p := PointFromRow(row, time.Now(), 0)

	assert.False(t, p.HasTexture)
	assert.Equal(t, 0.0, p.TextureContrast)
}

func TestSunElevation(t *testing.T) {
	assert.Equal(t, 90.0, SunElevation(0))
	assert.Equal(t, 55.0, SunElevation(35))
	assert.Equal(t, 0.0, SunElevation(90))
}
