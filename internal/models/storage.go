package models

// WeekSeries holds the admitted scene points of one tank inside one
// weekly window.
type WeekSeries struct {
	Points []*ScenePoint `json:"points"`
}

// TankSeries is the per-tank time series, keyed by week start (YYYY-MM-DD).
type TankSeries struct {
	TankID   int64                  `json:"tank_id"`
	Location string                 `json:"location"`
	Weeks    map[string]*WeekSeries `json:"weeks"`
}

// RegionData is everything stored for one region.
type RegionData struct {
	Tanks map[int64]*TankSeries `json:"tanks"`
}

// Storage is the versioned persistence envelope.
type Storage struct {
	Version  int                    `json:"version"`
	Regions  map[string]*RegionData `json:"regions"`
	Coverage []byte                 `json:"coverage,omitempty"`
}

const StorageVersion = 2
