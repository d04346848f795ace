package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"tankwatch/internal/models"
	"tankwatch/internal/providers"
	"tankwatch/internal/services"
	"tankwatch/internal/structures"
	"tankwatch/internal/weekly"
	"tankwatch/internal/weekly/interfaces"
)

// DefaultFileName matches the export name of the imagery pipeline.
const DefaultFileName = "weekly_tank_metrics.csv"

// Selectors is the tank-week table contract: exact column set and order.
// B8_mean_count is the summed valid-pixel count of the week's scenes, the
// table's data quality column.
var Selectors = []string{
	"tank_id", "location", "week",
	"solar_zenith_angle", "sun_elevation",
	"B2_mean", "B3_mean", "B4_mean", "B8_mean",
	"shadow_index_mean", "ndvi_mean", "ndwi_mean",
	"brightness_mean", "texture_contrast_mean",
	"B8_mean_stdDev", "shadow_index_mean_stdDev",
	"B8_mean_count",
}

// Exporter writes the tank-week table, pulling cold weeks back into the
// hot store when needed.
type Exporter struct {
	conf       *structures.Config
	logger     providers.Logger
	service    services.SampleServiceInterface
	cold       *weekly.ColdStorage
	compressor interfaces.CompressorInterface
}

func NewExporter(conf *structures.Config, logger providers.Logger, service services.SampleServiceInterface, cold *weekly.ColdStorage, compressor interfaces.CompressorInterface) *Exporter {
	return &Exporter{
		conf:       conf,
		logger:     logger,
		service:    service,
		cold:       cold,
		compressor: compressor,
	}
}

// Export writes every tank-week row to the given file (or the default
// name inside the export dir) and returns the row count.
func (e *Exporter) Export(path string) (int, error) {
	if path == "" {
		path = filepath.Join(e.conf.Export.Dir, DefaultFileName)
	}

	if err := e.thawColdWeeks(); err != nil {
		return 0, err
	}

	rows := weekly.ReduceStore(e.service.Store())
	if err := e.write(path, rows); err != nil {
		return 0, err
	}

	if e.conf.Export.Compress {
		if err := e.writeCompressed(path); err != nil {
			return 0, err
		}
	}

	e.logger.Infof(providers.TypeExport, "Exported %d tank-week rows to %s", len(rows), path)
	return len(rows), nil
}

// thawColdWeeks restores every cold week so the export covers the full
// history, not just the hot window.
func (e *Exporter) thawColdWeeks() error {
	store := e.service.Store()
	for region, weeks := range e.cold.ColdWeeks() {
		for _, week := range weeks {
			restored, err := e.cold.RestoreWeek(region, week)
			if err != nil {
				return fmt.Errorf("restore cold week %s/%s: %w", region, week, err)
			}
			for _, entry := range restored {
				store.RestorePoint(entry)
			}
		}
	}
	return nil
}

func (e *Exporter) write(path string, rows []*models.TankWeek) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	tmpFile := path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	w := csv.NewWriter(file)
	if err := w.Write(Selectors); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}
	for _, row := range rows {
		if err := w.Write(record(row)); err != nil {
			file.Close()
			os.Remove(tmpFile)
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}
	if err := file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}
	return os.Rename(tmpFile, path)
}

func (e *Exporter) writeCompressed(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	compressed, err := e.compressor.Compress(data)
	if err != nil {
		return err
	}
	return os.WriteFile(path+".zst", compressed, 0644)
}

func record(row *models.TankWeek) []string {
	texture := ""
	if row.HasTexture {
		texture = ftoa(row.TextureContrast.Median)
	}
	return []string{
		strconv.FormatInt(row.TankID, 10),
		row.Location,
		row.Week,
		ftoa(row.SolarZenithAngle),
		ftoa(row.SunElevation),
		ftoa(row.B2.Median),
		ftoa(row.B3.Median),
		ftoa(row.B4.Median),
		ftoa(row.B8.Median),
		ftoa(row.ShadowIndex.Median),
		ftoa(row.NDVI.Median),
		ftoa(row.NDWI.Median),
		ftoa(row.Brightness.Median),
		texture,
		ftoa(row.B8.StdDev),
		ftoa(row.ShadowIndex.StdDev),
		strconv.Itoa(row.PixelCount),
	}
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
