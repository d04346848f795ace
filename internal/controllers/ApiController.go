package controllers

import (
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/spf13/cast"

	"tankwatch/internal/models"
	"tankwatch/internal/providers"
	"tankwatch/internal/services"
	"tankwatch/internal/weekly"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type ApiController struct {
	logger  providers.Logger
	service services.SampleServiceInterface
	cache   providers.CacheProviderInterface
}

func NewApiController(logger providers.Logger, service services.SampleServiceInterface, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
		cache:   cache,
	}
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// ReceiveSamples ingests one scene's per-tank reductions for a region.
func (ac *ApiController) ReceiveSamples(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload models.SampleBatch
	err := json.NewDecoder(r.Body).Decode(&payload)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if payload.Region == "" || payload.SceneTime.IsZero() {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	ac.service.AddBatch(&payload)
	w.WriteHeader(http.StatusCreated)
}

type tankInfo struct {
	TankID   int64  `json:"tank_id"`
	Location string `json:"location"`
	Weeks    int    `json:"weeks"`
}

// GetTanks lists the tanks of a region with their stored week counts.
func (ac *ApiController) GetTanks(w http.ResponseWriter, r *http.Request) {
	region := r.URL.Query().Get("region")
	ac.serveFromCacheOrCompute(w, "tanks:"+region, func() (any, error) {
		rd := ac.service.Store().GetRegion(region)
		if rd == nil {
			return []tankInfo{}, nil
		}
		out := make([]tankInfo, 0, len(rd.Tanks))
		for id, ts := range rd.Tanks {
			out = append(out, tankInfo{TankID: id, Location: ts.Location, Weeks: len(ts.Weeks)})
		}
		return out, nil
	})
}

// GetWeeks lists the distinct week keys present in the hot store.
func (ac *ApiController) GetWeeks(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "weeks", func() (any, error) {
		return ac.service.Store().Weeks(), nil
	})
}

// GetTankWeeks returns reduced tank-week rows for a region, optionally
// narrowed to one week.
func (ac *ApiController) GetTankWeeks(w http.ResponseWriter, r *http.Request) {
	region := r.URL.Query().Get("region")
	week := r.URL.Query().Get("week")
	ac.serveFromCacheOrCompute(w, "tankweeks:"+region+":"+week, func() (any, error) {
		rows := weekly.ReduceRegion(ac.service.Store().GetRegion(region))
		if week == "" {
			return rows, nil
		}
		filtered := make([]*models.TankWeek, 0, len(rows))
		for _, row := range rows {
			if row.Week == week {
				filtered = append(filtered, row)
			}
		}
		return filtered, nil
	})
}

type coverageResponse struct {
	TankID   int64    `json:"tank_id"`
	Observed uint64   `json:"observed_weeks"`
	Missing  []uint32 `json:"missing_weeks"`
}

// GetCoverage reports observed and missing week ordinals for one tank.
func (ac *ApiController) GetCoverage(w http.ResponseWriter, r *http.Request) {
	tankID := cast.ToInt64(r.URL.Query().Get("tank"))
	if tankID == 0 {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	through := cast.ToUint32(r.URL.Query().Get("through"))

	ac.serveFromCacheOrCompute(w, "coverage:"+r.URL.RawQuery, func() (any, error) {
		cov := ac.service.Coverage()
		return coverageResponse{
			TankID:   tankID,
			Observed: cov.ObservedWeeks(tankID),
			Missing:  cov.Missing(tankID, through),
		}, nil
	})
}

// GetRegions lists regions present in the store.
func (ac *ApiController) GetRegions(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "regions", func() (any, error) {
		return ac.service.GetRegions(), nil
	})
}
