package providers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tankwatch/internal/structures"
)

func validConfig() *structures.Config {
	return &structures.Config{
		Overpass: structures.OverpassConfig{
			Servers:    []string{"https://overpass-api.de/api/interpreter"},
			MaxRetries: 3,
			Timeout:    200 * time.Second,
		},
		Regions: []structures.Region{
			{Name: "Fujairah, UAE", Bbox: "25.15,56.30,25.25,56.40"},
		},
		Assets: structures.AssetsConfig{
			Dir:  "/tmp/assets",
			User: "tankwatch",
		},
		Composite: structures.CompositeConfig{
			Interval:     time.Hour,
			AnchorDate:   "2024-01-03",
			IntervalDays: 7,
		},
		Export: structures.ExportConfig{
			Dir: "/tmp/export",
		},
		WebServer: structures.Server{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Persistence: structures.Persistence{
			FilePath:     "/tmp/tankwatch.db",
			SaveInterval: 30 * time.Second,
		},
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  "0644",
			Dir:   "/tmp/logs",
		},
	}
}

func TestConfigValidator_ValidConfig(t *testing.T) {
	v := NewCnfValidator(validConfig())
	assert.NoError(t, v.Validate())
}

func TestConfigValidator_EmptyHost(t *testing.T) {
	c := validConfig()
	c.WebServer.Host = ""
	assert.Error(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_ZeroPort(t *testing.T) {
	c := validConfig()
	c.WebServer.Port = 0
	assert.Error(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_InvalidLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = "verbose"
	assert.Error(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_AnchorNotWednesday(t *testing.T) {
	c := validConfig()
	c.Composite.AnchorDate = "2024-01-01" // Monday
	err := NewCnfValidator(c).Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Wednesday")
}

func TestConfigValidator_AnchorUnparseable(t *testing.T) {
	c := validConfig()
	c.Composite.AnchorDate = "03.01.2024"
	assert.Error(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_BadRegionBbox(t *testing.T) {
	c := validConfig()
	c.Regions = append(c.Regions, structures.Region{Name: "Broken", Bbox: "1,2,3"})
	err := NewCnfValidator(c).Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Broken")
}

func TestConfigValidator_MissingOverpassServers(t *testing.T) {
	c := validConfig()
	c.Overpass.Servers = nil
	assert.Error(t, NewCnfValidator(c).Validate())
}
