package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/sslp23/world-cup-sim-26/internal/features"
	"github.com/sslp23/world-cup-sim-26/internal/logging"
)

// Storage backend names accepted by database.backend.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

const cutoffLayout = "2006-01-02"

// Config materialises application configuration.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Logging  logging.Config `mapstructure:"logging"`
	Dataset  DatasetConfig  `mapstructure:"dataset"`
	Features FeaturesConfig `mapstructure:"features"`
	Database DatabaseConfig `mapstructure:"database"`
	Export   ExportConfig   `mapstructure:"export"`
}

// AppConfig general metadata.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

// DatasetConfig locates the input tables and sets the build window.
type DatasetConfig struct {
	ResultsPath   string            `mapstructure:"results_path"`
	RankingsPath  string            `mapstructure:"rankings_path"`
	CutoffDate    string            `mapstructure:"cutoff_date"`
	NameOverrides map[string]string `mapstructure:"name_overrides"`
}

// Cutoff parses the configured cutoff date.
func (c DatasetConfig) Cutoff() (time.Time, error) {
	t, err := time.Parse(cutoffLayout, c.CutoffDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse dataset.cutoff_date: %w", err)
	}
	return t, nil
}

// FeaturesConfig governs the rolling statistic engine.
type FeaturesConfig struct {
	Windows   []int           `mapstructure:"windows"`
	Weighting WeightingConfig `mapstructure:"weighting"`
}

// WeightingConfig selects the opponent-strength transform.
type WeightingConfig struct {
	Scheme string  `mapstructure:"scheme"`
	Scale  float64 `mapstructure:"scale"`
	Rate   float64 `mapstructure:"rate"`
}

// Build constructs the configured weighting.
func (c WeightingConfig) Build() (features.Weighting, error) {
	return features.NewWeighting(c.Scheme, c.Scale, c.Rate)
}

// DatabaseConfig selects the persistence backend.
type DatabaseConfig struct {
	Backend       string `mapstructure:"backend"`
	SQLitePath    string `mapstructure:"sqlite_path"`
	PostgresDSN   string `mapstructure:"postgres_dsn"`
	ClickHouseDSN string `mapstructure:"clickhouse_dsn"`
}

// ExportConfig sets CLI export behaviour.
type ExportConfig struct {
	OutputDir     string `mapstructure:"output_dir"`
	IncludeLabels bool   `mapstructure:"include_labels"`
	ChartWidth    int    `mapstructure:"chart_width"`
	ChartHeight   int    `mapstructure:"chart_height"`
}

// Load builds configuration from file, environment, and defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("WC26")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.wc26")
	}

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, decodeHook()); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "wc26")
	v.SetDefault("app.environment", "dev")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.pretty", false)
	v.SetDefault("logging.caller", false)

	v.SetDefault("dataset.results_path", "data/results.csv")
	v.SetDefault("dataset.rankings_path", "data/fifa_ranking.csv")
	v.SetDefault("dataset.cutoff_date", "2023-01-01")
	v.SetDefault("dataset.name_overrides", map[string]string{})

	v.SetDefault("features.windows", []int{3, 5})
	v.SetDefault("features.weighting.scheme", features.SchemeInverseRank)
	v.SetDefault("features.weighting.scale", features.DefaultInverseScale)
	v.SetDefault("features.weighting.rate", features.DefaultDecayRate)

	v.SetDefault("database.backend", BackendSQLite)
	v.SetDefault("database.sqlite_path", "wc26.db")
	v.SetDefault("database.postgres_dsn", "")
	v.SetDefault("database.clickhouse_dsn", "")

	v.SetDefault("export.output_dir", "out")
	v.SetDefault("export.include_labels", false)
	v.SetDefault("export.chart_width", 1280)
	v.SetDefault("export.chart_height", 720)
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
}

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate performs basic sanity checks on the configuration values.
func (c *Config) Validate() error {
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("logging.level must be one of trace|debug|info|warn|error, got %q", c.Logging.Level)
	}

	if _, err := c.Dataset.Cutoff(); err != nil {
		return err
	}

	// The window set is part of the output schema, not a tunable.
	if len(c.Features.Windows) != 2 || c.Features.Windows[0] != 3 || c.Features.Windows[1] != 5 {
		return fmt.Errorf("features.windows is fixed at [3, 5]")
	}
	switch c.Features.Weighting.Scheme {
	case features.SchemeInverseRank:
		if c.Features.Weighting.Scale <= 0 {
			return fmt.Errorf("features.weighting.scale must be greater than zero")
		}
	case features.SchemeExpDecay:
		if c.Features.Weighting.Rate <= 0 {
			return fmt.Errorf("features.weighting.rate must be greater than zero")
		}
	default:
		return fmt.Errorf("features.weighting.scheme must be %s or %s, got %q",
			features.SchemeInverseRank, features.SchemeExpDecay, c.Features.Weighting.Scheme)
	}

	switch c.Database.Backend {
	case BackendMemory:
	case BackendSQLite:
		if c.Database.SQLitePath == "" {
			return fmt.Errorf("database.sqlite_path must be set for the sqlite backend")
		}
	case BackendPostgres:
		if c.Database.PostgresDSN == "" {
			return fmt.Errorf("database.postgres_dsn must be set for the postgres backend")
		}
	default:
		return fmt.Errorf("database.backend must be one of memory|sqlite|postgres, got %q", c.Database.Backend)
	}

	if c.Export.OutputDir == "" {
		return fmt.Errorf("export.output_dir must be set")
	}
	if c.Export.ChartWidth <= 0 || c.Export.ChartHeight <= 0 {
		return fmt.Errorf("export chart dimensions must be greater than zero")
	}

	return nil
}
