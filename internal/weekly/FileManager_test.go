package weekly

import (
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tankwatch/internal/models"
	"tankwatch/internal/services"
	"tankwatch/internal/testutil"
)

func TestFileManager_SaveToFile_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	svc := services.NewSampleService()
	svc.Store().AddPoint("fujairah_uae", 1, "Fujairah, UAE", "2024-01-03", &models.ScenePoint{B8: 0.3})

	fm := NewFileManager(&testutil.MockCompressor{}, svc, &testutil.MockLogger{})

	require.NoError(t, fm.SaveToFile(path))

	_, err := os.Stat(path)
	assert.NoError(t, err)

	// Temp file should not exist
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestFileManager_LoadFromFile_FileNotExist(t *testing.T) {
	fm := NewFileManager(&testutil.MockCompressor{}, testutil.NewMockSampleService(), &testutil.MockLogger{})
	err := fm.LoadFromFile("/nonexistent/path/file.db")
	assert.NoError(t, err) // not an error, just no data
}

func TestFileManager_SaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "roundtrip.db")

	svc := services.NewSampleService()
	svc.Store().AddPoint("fujairah_uae", 7, "Fujairah, UAE", "2024-01-03", &models.ScenePoint{B8: 0.3})
	svc.Coverage().Add(7, 0)

	fm := NewFileManager(&testutil.MockCompressor{}, svc, &testutil.MockLogger{})
	require.NoError(t, fm.SaveToFile(path))

	restored := services.NewSampleService()
	fm2 := NewFileManager(&testutil.MockCompressor{}, restored, &testutil.MockLogger{})
	require.NoError(t, fm2.LoadFromFile(path))

	assert.Equal(t, 1, restored.TankCount("fujairah_uae"))
	assert.True(t, restored.Coverage().Has(7, 0))

	rd := restored.Store().GetRegion("fujairah_uae")
	require.NotNil(t, rd)
	require.Len(t, rd.Tanks[7].Weeks["2024-01-03"].Points, 1)
	assert.Equal(t, 0.3, rd.Tanks[7].Weeks["2024-01-03"].Points[0].B8)
}

func TestFileManager_SaveLoad_WithRealCompressor(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zstd.db")

	comp, err := NewZstdCompressor()
	require.NoError(t, err)
	defer comp.Close()

	svc := services.NewSampleService()
	svc.Store().AddPoint("cushing_ok", 1, "Cushing, OK", "2024-01-10", &models.ScenePoint{NDVI: -0.1})

	fm := NewFileManager(comp, svc, &testutil.MockLogger{})
	require.NoError(t, fm.SaveToFile(path))

	restored := services.NewSampleService()
	fm2 := NewFileManager(comp, restored, &testutil.MockLogger{})
	require.NoError(t, fm2.LoadFromFile(path))
	assert.Equal(t, 1, restored.TankCount("cushing_ok"))
}

func TestFileManager_LoadFromFile_LegacyFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "legacy.db")

	// Old format: bare region map without the versioned envelope
	legacy := map[string]*models.RegionData{
		"rotterdam_netherlands": {Tanks: map[int64]*models.TankSeries{
			5: {TankID: 5, Location: "Rotterdam, Netherlands", Weeks: map[string]*models.WeekSeries{
				"2024-01-03": {Points: []*models.ScenePoint{{B8: 0.2}}},
			}},
		}},
	}
	jsonData, err := json.Marshal(legacy)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, jsonData, 0644))

	logger := &testutil.MockLogger{}
	svc := services.NewSampleService()
	fm := NewFileManager(&testutil.MockCompressor{}, svc, logger)

	require.NoError(t, fm.LoadFromFile(path))
	assert.Equal(t, 1, svc.TankCount("rotterdam_netherlands"))

	var migrated bool
	for _, entry := range logger.Logs {
		if entry.Level == "warn" {
			migrated = true
		}
	}
	assert.True(t, migrated, "migration should be logged")
}
