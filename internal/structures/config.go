package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	FilePath     string        `yaml:"filePath" validate:"required|unixPath"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	// Mode is an octal permission string ("0644"); a bare YAML integer
	// is ambiguous across decoders, so it is parsed explicitly.
	Mode string `yaml:"mode" validate:"required"`
	Dir  string `yaml:"dir" validate:"required|unixPath"`
}

type Region struct {
	Name string `yaml:"name" validate:"required"`
	Bbox string `yaml:"bbox" validate:"required"`
}

type OverpassConfig struct {
	Servers      []string      `yaml:"servers" validate:"required"`
	MaxRetries   int           `yaml:"maxRetries" validate:"required|min:1"`
	Timeout      time.Duration `yaml:"timeout" validate:"required|min:1"`
	RetryBackoff time.Duration `yaml:"retryBackoff"`
	QueryTimeout int           `yaml:"queryTimeout"`
}

type AssetsConfig struct {
	Dir  string `yaml:"dir" validate:"required|unixPath"`
	User string `yaml:"user" validate:"required"`
}

type CompositeConfig struct {
	Interval         time.Duration `yaml:"interval" validate:"required|min:1"`
	AnchorDate       string        `yaml:"anchorDate" validate:"required"`
	IntervalDays     int           `yaml:"intervalDays"`
	MaxCloudPercent  float64       `yaml:"maxCloudPercent"`
	ExcludeAnchorDay bool          `yaml:"excludeAnchorDay"`
	HotWeeks         int           `yaml:"hotWeeks"`
	ColdStorageDir   string        `yaml:"coldStorageDir"`
	ColdTTL          time.Duration `yaml:"coldTTL"`
}

type ExportConfig struct {
	Dir      string `yaml:"dir" validate:"required|unixPath"`
	Compress bool   `yaml:"compress"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	Overpass    OverpassConfig  `yaml:"overpass"`
	Regions     []Region        `yaml:"regions"`
	Assets      AssetsConfig    `yaml:"assets"`
	Composite   CompositeConfig `yaml:"composite"`
	Export      ExportConfig    `yaml:"export"`
	WebServer   Server          `yaml:"webServer"`
	Persistence Persistence     `yaml:"persistence"`
	Logger      LoggerConfig    `yaml:"logger"`
	Cache       CacheConfig     `yaml:"cache"`
	Metrics     MetricsConfig   `yaml:"metrics"`
}
