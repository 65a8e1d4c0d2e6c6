// Package config loads application configuration from config.yaml and
// URBAN_* environment variables, and initializes the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Dataset  DatasetConfig  `yaml:"dataset" mapstructure:"dataset"`
	Fetch    FetchConfig    `yaml:"fetch" mapstructure:"fetch"`
	Analysis AnalysisConfig `yaml:"analysis" mapstructure:"analysis"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// DatasetConfig points at the source dataset.
type DatasetConfig struct {
	Path   string `yaml:"path" mapstructure:"path"`
	Format string `yaml:"format" mapstructure:"format"` // auto, csv, shapefile
}

// FetchConfig configures dataset downloads from the Census Bureau.
type FetchConfig struct {
	URLs        []string `yaml:"urls" mapstructure:"urls"`
	DestDir     string   `yaml:"dest_dir" mapstructure:"dest_dir"`
	UserAgent   string   `yaml:"user_agent" mapstructure:"user_agent"`
	RatePerSec  float64  `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
	Burst       int      `yaml:"burst" mapstructure:"burst"`
	MaxRetries  int      `yaml:"max_retries" mapstructure:"max_retries"`
	TimeoutSecs int      `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	Concurrency int      `yaml:"concurrency" mapstructure:"concurrency"`
}

// AnalysisConfig configures the distribution analyzer.
type AnalysisConfig struct {
	TopOutliers int    `yaml:"top_outliers" mapstructure:"top_outliers"`
	BandsFile   string `yaml:"bands_file" mapstructure:"bands_file"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("URBAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("dataset.path", "data/Urban_Areas.csv")
	v.SetDefault("dataset.format", "auto")
	v.SetDefault("fetch.urls", []string{
		"https://www2.census.gov/geo/tiger/TIGER2010/UAC/2010/tl_2010_us_uac10.zip",
	})
	v.SetDefault("fetch.dest_dir", "data")
	v.SetDefault("fetch.user_agent", "urban-atlas/1.0")
	v.SetDefault("fetch.rate_per_sec", 2)
	v.SetDefault("fetch.burst", 2)
	v.SetDefault("fetch.max_retries", 3)
	v.SetDefault("fetch.timeout_secs", 300)
	v.SetDefault("fetch.concurrency", 3)
	v.SetDefault("analysis.top_outliers", 20)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
