package models

import "time"

// TankRow is one tank's per-scene reduction as it arrives on the wire.
// Band values are raw Sentinel-2 integers (reflectance * 10000).
type TankRow struct {
	TankID     int64  `json:"tank_id"`
	B2         int    `json:"b2"`
	B3         int    `json:"b3"`
	B4         int    `json:"b4"`
	B8         int    `json:"b8"`
	B11        int    `json:"b11"`
	QA60       uint32 `json:"qa60"`
	SCL        int    `json:"scl"`
	PixelCount int    `json:"pixel_count"`
	// TextureContrast is optional; nil when the scene carried no texture
	// band, so an omitted JSON field decodes to absent.
	TextureContrast *float64 `json:"texture_contrast,omitempty"`
}

// SampleBatch is the ingest payload: one satellite scene reduced over the
// tanks of a single region.
type SampleBatch struct {
	Region             string    `json:"region"`
	SceneTime          time.Time `json:"scene_time"`
	CloudyPixelPercent float64   `json:"cloudy_pixel_percentage"`
	SolarZenithAngle   float64   `json:"solar_zenith_angle"`
	Rows               []TankRow `json:"rows"`
}

// ScenePoint is an admitted, scaled observation with derived features.
type ScenePoint struct {
	SceneTime       time.Time `json:"t"`
	SolarZenith     float64   `json:"sz"`
	B2              float64   `json:"b2"`
	B3              float64   `json:"b3"`
	B4              float64   `json:"b4"`
	B8              float64   `json:"b8"`
	B11             float64   `json:"b11"`
	ShadowIndex     float64   `json:"shadow"`
	NDVI            float64   `json:"ndvi"`
	NDWI            float64   `json:"ndwi"`
	Brightness      float64   `json:"brightness"`
	TextureContrast float64   `json:"tc"`
	HasTexture      bool      `json:"has_tc"`
	PixelCount      int       `json:"px"`
}
