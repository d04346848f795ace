package models

// Agg is the reduction of one feature over a tank-week's admitted scenes.
// Median is the compositing value; the rest mirror the reducer outputs of
// the imagery pipeline (mean, stdDev, min, max, count).
type Agg struct {
	Median float64 `json:"median"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Count  int     `json:"count"`
}

// TankWeek is one row of the tank-week table.
type TankWeek struct {
	TankID   int64  `json:"tank_id"`
	Location string `json:"location"`
	Week     string `json:"week"`

	SolarZenithAngle float64 `json:"solar_zenith_angle"`
	SunElevation     float64 `json:"sun_elevation"`

	B2          Agg `json:"b2"`
	B3          Agg `json:"b3"`
	B4          Agg `json:"b4"`
	B8          Agg `json:"b8"`
	ShadowIndex Agg `json:"shadow_index"`
	NDVI        Agg `json:"ndvi"`
	NDWI        Agg `json:"ndwi"`
	Brightness  Agg `json:"brightness"`

	// TextureContrast is only populated when samples carried texture.
	TextureContrast Agg  `json:"texture_contrast"`
	HasTexture      bool `json:"has_texture"`

	PixelCount int `json:"pixel_count"`
}
