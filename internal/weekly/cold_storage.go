package weekly

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"

	"tankwatch/internal/models"
	"tankwatch/internal/providers"
	"tankwatch/internal/structures"
	"tankwatch/internal/weekly/interfaces"
)

// ColdEntry is a single evicted tank-week series in cold storage.
type ColdEntry struct {
	TankID    int64              `json:"tank_id"`
	Location  string             `json:"location"`
	Week      string             `json:"week"`
	Series    *models.WeekSeries `json:"series"`
	EvictedAt time.Time          `json:"evicted_at"`
}

// ColdFile is the on-disk format for a single region's cold storage,
// keyed by "<week>/<tank_id>".
type ColdFile struct {
	Entries map[string]*ColdEntry `json:"entries"`
}

// ColdStorage persists tank-weeks that aged out of the hot window.
// Writes are buffered and only hit disk in Flush.
type ColdStorage struct {
	mu         sync.RWMutex
	dir        string
	index      map[string]map[string]struct{} // region → set of entry keys
	pending    map[string]map[string]*ColdEntry
	restored   map[string]map[string]struct{} // region → keys to lazy-delete
	loaded     map[string]*ColdFile
	coldTTL    time.Duration
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

// NewColdStorageFromConfig wires the cold storage from the composite
// section of the config.
func NewColdStorageFromConfig(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger) *ColdStorage {
	return NewColdStorage(conf.Composite.ColdStorageDir, conf.Composite.ColdTTL, compressor, logger)
}

func NewColdStorage(dir string, coldTTL time.Duration, compressor interfaces.CompressorInterface, logger providers.Logger) *ColdStorage {
	return &ColdStorage{
		dir:        dir,
		index:      make(map[string]map[string]struct{}),
		pending:    make(map[string]map[string]*ColdEntry),
		restored:   make(map[string]map[string]struct{}),
		loaded:     make(map[string]*ColdFile),
		coldTTL:    coldTTL,
		compressor: compressor,
		logger:     logger,
	}
}

func entryKey(week string, tankID int64) string {
	return week + "/" + strconv.FormatInt(tankID, 10)
}

// HasWeek checks whether a region has any cold entry for the given week.
func (cs *ColdStorage) HasWeek(region, week string) bool {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	prefix := week + "/"
	for key := range cs.index[region] {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

// Evict buffers an evicted tank-week for later flush. No disk I/O.
func (cs *ColdStorage) Evict(e models.EvictedWeek) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	entry := &ColdEntry{
		TankID:    e.TankID,
		Location:  e.Location,
		Week:      e.Week,
		Series:    e.Series,
		EvictedAt: time.Now(),
	}

	key := entryKey(e.Week, e.TankID)
	if cs.pending[e.Region] == nil {
		cs.pending[e.Region] = make(map[string]*ColdEntry)
	}
	cs.pending[e.Region][key] = entry

	if cs.index[e.Region] == nil {
		cs.index[e.Region] = make(map[string]struct{})
	}
	cs.index[e.Region][key] = struct{}{}
}

// RestoreWeek pulls every entry of one region-week back out of cold
// storage, removing it lazily (the file rewrite happens in Flush).
func (cs *ColdStorage) RestoreWeek(region, week string) ([]models.EvictedWeek, error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	prefix := week + "/"
	var out []models.EvictedWeek

	// Pending buffer first
	if entries, ok := cs.pending[region]; ok {
		for key, entry := range entries {
			if !strings.HasPrefix(key, prefix) {
				continue
			}
			out = append(out, models.EvictedWeek{
				Region:   region,
				Week:     entry.Week,
				TankID:   entry.TankID,
				Location: entry.Location,
				Series:   entry.Series,
			})
			delete(entries, key)
			delete(cs.index[region], key)
		}
		if len(entries) == 0 {
			delete(cs.pending, region)
		}
	}

	coldFile := cs.getOrLoadColdFile(region)
	if coldFile == nil {
		return out, nil
	}

	for key, entry := range coldFile.Entries {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		out = append(out, models.EvictedWeek{
			Region:   region,
			Week:     entry.Week,
			TankID:   entry.TankID,
			Location: entry.Location,
			Series:   entry.Series,
		})
		if cs.restored[region] == nil {
			cs.restored[region] = make(map[string]struct{})
		}
		cs.restored[region][key] = struct{}{}
		delete(cs.index[region], key)
	}

	return out, nil
}

// ColdWeeks lists the weeks currently held in cold storage per region.
func (cs *ColdStorage) ColdWeeks() map[string][]string {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	out := make(map[string][]string)
	for region, keys := range cs.index {
		seen := make(map[string]struct{})
		for key := range keys {
			week, _, ok := strings.Cut(key, "/")
			if !ok {
				continue
			}
			if _, dup := seen[week]; dup {
				continue
			}
			seen[week] = struct{}{}
			out[region] = append(out[region], week)
		}
		sort.Strings(out[region])
	}
	return out
}

// Flush writes pending entries, applies lazy deletes and drops entries
// older than coldTTL. The only method that writes to disk.
func (cs *ColdStorage) Flush() error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	regions := make(map[string]struct{})
	for r := range cs.pending {
		regions[r] = struct{}{}
	}
	for r := range cs.restored {
		regions[r] = struct{}{}
	}

	for region := range regions {
		coldFile := cs.getOrLoadColdFile(region)
		if coldFile == nil {
			coldFile = &ColdFile{Entries: make(map[string]*ColdEntry)}
		}

		if restoredKeys, ok := cs.restored[region]; ok {
			for key := range restoredKeys {
				delete(coldFile.Entries, key)
			}
		}

		if entries, ok := cs.pending[region]; ok {
			for key, entry := range entries {
				coldFile.Entries[key] = entry
			}
		}

		if cs.coldTTL > 0 {
			now := time.Now()
			for key, entry := range coldFile.Entries {
				if now.Sub(entry.EvictedAt) > cs.coldTTL {
					delete(coldFile.Entries, key)
					if idx, ok := cs.index[region]; ok {
						delete(idx, key)
					}
				}
			}
		}

		if len(coldFile.Entries) > 0 {
			if err := cs.writeColdFile(region, coldFile); err != nil {
				return err
			}
			cs.loaded[region] = coldFile
		} else {
			os.Remove(cs.coldFilePath(region))
			delete(cs.loaded, region)
		}

		delete(cs.pending, region)
		delete(cs.restored, region)
	}
	return nil
}

// RestoreIndex scans the cold directory and rebuilds the key index.
// Called once at startup.
func (cs *ColdStorage) RestoreIndex() error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if err := os.MkdirAll(cs.dir, 0755); err != nil {
		return err
	}

	files, err := filepath.Glob(filepath.Join(cs.dir, "*.cold.zst"))
	if err != nil {
		return err
	}

	for _, file := range files {
		region := cs.extractRegionName(file)
		coldFile := cs.loadColdFileFromDisk(region)
		if coldFile == nil {
			continue
		}

		cs.index[region] = make(map[string]struct{}, len(coldFile.Entries))
		for key := range coldFile.Entries {
			cs.index[region][key] = struct{}{}
		}
		// Index keys only; entry data stays on disk until needed
	}
	return nil
}

func (cs *ColdStorage) Close() {
	cs.compressor.Close()
}

// getOrLoadColdFile returns the cached cold file or loads it from disk.
// Must be called under cs.mu.Lock().
func (cs *ColdStorage) getOrLoadColdFile(region string) *ColdFile {
	if cf, ok := cs.loaded[region]; ok {
		return cf
	}
	cf := cs.loadColdFileFromDisk(region)
	if cf != nil {
		cs.loaded[region] = cf
	}
	return cf
}

func (cs *ColdStorage) loadColdFileFromDisk(region string) *ColdFile {
	path := cs.coldFilePath(region)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			cs.logger.Errorf(providers.TypeApp, "Failed to read cold file %s: %s", path, err)
		}
		return nil
	}

	decompressed, err := cs.compressor.Decompress(data)
	if err != nil {
		cs.logger.Errorf(providers.TypeApp, "Failed to decompress cold file %s: %s", path, err)
		return nil
	}

	var cf ColdFile
	if err := json.Unmarshal(decompressed, &cf); err != nil {
		cs.logger.Errorf(providers.TypeApp, "Failed to parse cold file %s: %s", path, err)
		return nil
	}

	if cf.Entries == nil {
		cf.Entries = make(map[string]*ColdEntry)
	}
	return &cf
}

func (cs *ColdStorage) writeColdFile(region string, cf *ColdFile) error {
	jsonData, err := json.Marshal(cf)
	if err != nil {
		return err
	}

	compressed, err := cs.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	path := cs.coldFilePath(region)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, compressed, 0644); err != nil {
		return err
	}

	return os.Rename(tmpFile, path)
}

func (cs *ColdStorage) coldFilePath(region string) string {
	return filepath.Join(cs.dir, region+".cold.zst")
}

// extractRegionName extracts the region from a cold file path.
// "rotterdam_netherlands.cold.zst" → "rotterdam_netherlands"
func (cs *ColdStorage) extractRegionName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, ".cold.zst")
}
