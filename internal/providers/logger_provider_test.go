package providers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tankwatch/internal/structures"
)

func TestGetLogTypeByRequestType_POST(t *testing.T) {
	assert.Equal(t, TypeEnum(TypePost), GetLogTypeByRequestType("POST"))
}

func TestGetLogTypeByRequestType_GET(t *testing.T) {
	assert.Equal(t, TypeEnum(TypeGet), GetLogTypeByRequestType("GET"))
}

func TestGetLogTypeByRequestType_Other(t *testing.T) {
	assert.Equal(t, TypeEnum(TypeGet), GetLogTypeByRequestType("PUT"))
	assert.Equal(t, TypeEnum(TypeGet), GetLogTypeByRequestType("DELETE"))
}

func TestNewLogProvider_CreatesLogFiles(t *testing.T) {
	dir := t.TempDir()
	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  "0644",
			Dir:   dir,
		},
	}

	logger, err := NewLogProvider(conf)
	require.NoError(t, err)
	defer logger.Close()

	// Should be able to log without error
	logger.Infof(TypeApp, "test message")
	logger.Debugf(TypeGet, "get message")
	logger.Warnf(TypePost, "post message")
	logger.Infof(TypeFetch, "fetch message")
	logger.Errorf(TypeExport, "export message")

	for _, name := range []string{"app.log", "access.log", "jobs.log"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestNewLogProvider_RoutesByType(t *testing.T) {
	dir := t.TempDir()
	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  "0644",
			Dir:   dir,
		},
	}

	logger, err := NewLogProvider(conf)
	require.NoError(t, err)

	logger.Infof(TypeFetch, "overpass fetch done")
	logger.Close()

	jobs, err := os.ReadFile(filepath.Join(dir, "jobs.log"))
	require.NoError(t, err)
	assert.Contains(t, string(jobs), "overpass fetch done")

	app, err := os.ReadFile(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(app), "overpass fetch done")
}

func TestNewLogProvider_ModeParsedAsOctal(t *testing.T) {
	dir := t.TempDir()
	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  "0600",
			Dir:   dir,
		},
	}

	logger, err := NewLogProvider(conf)
	require.NoError(t, err)
	logger.Close()

	info, err := os.Stat(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestNewLogProvider_NonOctalMode(t *testing.T) {
	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  "rw-r--r--",
			Dir:   t.TempDir(),
		},
	}

	_, err := NewLogProvider(conf)
	assert.Error(t, err)
}

func TestNewLogProvider_InvalidDir(t *testing.T) {
	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  "0644",
			Dir:   "/nonexistent/directory/path",
		},
	}

	_, err := NewLogProvider(conf)
	assert.Error(t, err)
}

func TestNewLogProvider_UnknownLevel(t *testing.T) {
	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "chatty",
			Dir:   t.TempDir(),
		},
	}

	_, err := NewLogProvider(conf)
	assert.Error(t, err)
}
