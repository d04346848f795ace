package models

import (
	"sort"
	"sync"
)

// WeekStore is the in-memory tank-week store, one RegionData per region.
type WeekStore struct {
	Mutex sync.RWMutex
	Data  map[string]*RegionData
}

func NewWeekStore() *WeekStore {
	return &WeekStore{
		Data: make(map[string]*RegionData),
	}
}

func (ws *WeekStore) AddPoint(region string, tankID int64, location, week string, p *ScenePoint) {
	ws.Mutex.Lock()
	defer ws.Mutex.Unlock()

	rd, ok := ws.Data[region]
	if !ok {
		rd = &RegionData{Tanks: make(map[int64]*TankSeries)}
		ws.Data[region] = rd
	}

	ts, ok := rd.Tanks[tankID]
	if !ok {
		ts = &TankSeries{
			TankID:   tankID,
			Location: location,
			Weeks:    make(map[string]*WeekSeries),
		}
		rd.Tanks[tankID] = ts
	}

	series, ok := ts.Weeks[week]
	if !ok {
		series = &WeekSeries{}
		ts.Weeks[week] = series
	}
	series.Points = append(series.Points, p)
}

func (ws *WeekStore) GetRegion(region string) *RegionData {
	ws.Mutex.RLock()
	defer ws.Mutex.RUnlock()
	return ws.Data[region]
}

func (ws *WeekStore) Regions() []string {
	ws.Mutex.RLock()
	defer ws.Mutex.RUnlock()

	regions := make([]string, 0, len(ws.Data))
	for r := range ws.Data {
		regions = append(regions, r)
	}
	sort.Strings(regions)
	return regions
}

func (ws *WeekStore) TankCount(region string) int {
	ws.Mutex.RLock()
	defer ws.Mutex.RUnlock()
	if rd, ok := ws.Data[region]; ok {
		return len(rd.Tanks)
	}
	return 0
}

// Weeks returns the sorted distinct week keys present in the store.
func (ws *WeekStore) Weeks() []string {
	ws.Mutex.RLock()
	defer ws.Mutex.RUnlock()

	seen := make(map[string]struct{})
	for _, rd := range ws.Data {
		for _, ts := range rd.Tanks {
			for week := range ts.Weeks {
				seen[week] = struct{}{}
			}
		}
	}
	weeks := make([]string, 0, len(seen))
	for w := range seen {
		weeks = append(weeks, w)
	}
	sort.Strings(weeks)
	return weeks
}

func (ws *WeekStore) GetData() map[string]*RegionData {
	ws.Mutex.RLock()
	defer ws.Mutex.RUnlock()

	copyMap := make(map[string]*RegionData, len(ws.Data))
	for k, v := range ws.Data {
		copyMap[k] = v
	}
	return copyMap
}

func (ws *WeekStore) PutData(data map[string]*RegionData) {
	ws.Mutex.Lock()
	defer ws.Mutex.Unlock()
	ws.Data = data
}

// EvictedWeek is one tank's series removed from the hot store.
type EvictedWeek struct {
	Region   string
	Week     string
	TankID   int64
	Location string
	Series   *WeekSeries
}

// EvictBefore removes every week strictly older than the cutoff key and
// returns the removed series. Week keys are YYYY-MM-DD, so string order
// is date order.
func (ws *WeekStore) EvictBefore(cutoff string) []EvictedWeek {
	ws.Mutex.Lock()
	defer ws.Mutex.Unlock()

	var evicted []EvictedWeek
	for region, rd := range ws.Data {
		for tankID, ts := range rd.Tanks {
			for week, series := range ts.Weeks {
				if week < cutoff {
					evicted = append(evicted, EvictedWeek{
						Region:   region,
						Week:     week,
						TankID:   tankID,
						Location: ts.Location,
						Series:   series,
					})
					delete(ts.Weeks, week)
				}
			}
		}
	}
	return evicted
}

// RestorePoint puts a previously evicted series back into the store.
func (ws *WeekStore) RestorePoint(e EvictedWeek) {
	for _, p := range e.Series.Points {
		ws.AddPoint(e.Region, e.TankID, e.Location, e.Week, p)
	}
}
