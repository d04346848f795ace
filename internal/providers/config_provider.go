package providers

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"tankwatch/internal/structures"

	"github.com/spf13/viper"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "TANKWATCH_LOG_LEVEL")
	viper.BindEnv("composite.interval", "TANKWATCH_COMPOSITE_INTERVAL")
	viper.BindEnv("composite.anchorDate", "TANKWATCH_ANCHOR_DATE")
	viper.BindEnv("persistence.saveInterval", "TANKWATCH_SAVE_INTERVAL")
	viper.BindEnv("assets.user", "TANKWATCH_ASSET_USER")
	viper.BindEnv("cache.enabled", "TANKWATCH_CACHE_ENABLED")
	viper.BindEnv("cache.size", "TANKWATCH_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	applyDefaults(&conf)

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "TankWatch"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}

func applyDefaults(conf *structures.Config) {
	if len(conf.Overpass.Servers) == 0 {
		conf.Overpass.Servers = []string{
			"https://overpass-api.de/api/interpreter",
			"https://overpass.kumi.systems/api/interpreter",
			"https://overpass.openstreetmap.ru/api/interpreter",
		}
	}
	if conf.Overpass.MaxRetries == 0 {
		conf.Overpass.MaxRetries = 3
	}
	if conf.Overpass.Timeout == 0 {
		conf.Overpass.Timeout = 200 * time.Second
	}
	if conf.Overpass.RetryBackoff == 0 {
		conf.Overpass.RetryBackoff = 5 * time.Second
	}
	if conf.Overpass.QueryTimeout == 0 {
		conf.Overpass.QueryTimeout = 180
	}
	if conf.Composite.IntervalDays == 0 {
		conf.Composite.IntervalDays = 7
	}
	if conf.Composite.MaxCloudPercent == 0 {
		conf.Composite.MaxCloudPercent = 20
	}
}
