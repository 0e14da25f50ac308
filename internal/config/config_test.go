package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sslp23/world-cup-sim-26/internal/features"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "wc26", cfg.App.Name)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Pretty)
	assert.Equal(t, "data/results.csv", cfg.Dataset.ResultsPath)
	assert.Equal(t, "data/fifa_ranking.csv", cfg.Dataset.RankingsPath)
	assert.Equal(t, "2023-01-01", cfg.Dataset.CutoffDate)
	assert.Equal(t, []int{3, 5}, cfg.Features.Windows)
	assert.Equal(t, features.SchemeInverseRank, cfg.Features.Weighting.Scheme)
	assert.InDelta(t, 100.0, cfg.Features.Weighting.Scale, 0.0001)
	assert.Equal(t, BackendSQLite, cfg.Database.Backend)
	assert.Equal(t, "wc26.db", cfg.Database.SQLitePath)
	assert.Equal(t, "out", cfg.Export.OutputDir)
	assert.False(t, cfg.Export.IncludeLabels)
	assert.Equal(t, 1280, cfg.Export.ChartWidth)
	assert.Equal(t, 720, cfg.Export.ChartHeight)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: debug
  pretty: true
dataset:
  cutoff_date: "2024-06-01"
  name_overrides:
    IR Iran: Iran
features:
  weighting:
    scheme: exp_decay
    rate: 0.01
database:
  backend: memory
export:
  include_labels: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Pretty)
	assert.Equal(t, "2024-06-01", cfg.Dataset.CutoffDate)
	assert.Equal(t, map[string]string{"IR Iran": "Iran"}, cfg.Dataset.NameOverrides)
	assert.Equal(t, features.SchemeExpDecay, cfg.Features.Weighting.Scheme)
	assert.InDelta(t, 0.01, cfg.Features.Weighting.Rate, 1e-9)
	assert.Equal(t, BackendMemory, cfg.Database.Backend)
	assert.True(t, cfg.Export.IncludeLabels)

	// Untouched keys keep their defaults.
	assert.Equal(t, "wc26", cfg.App.Name)
	assert.Equal(t, "out", cfg.Export.OutputDir)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("WC26_LOGGING_LEVEL", "warn")
	t.Setenv("WC26_DATABASE_BACKEND", "postgres")
	t.Setenv("WC26_DATABASE_POSTGRES_DSN", "postgres://localhost:5432/wc26")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, BackendPostgres, cfg.Database.Backend)
	assert.Equal(t, "postgres://localhost:5432/wc26", cfg.Database.PostgresDSN)
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	path := writeConfig(t, "logging:\n  level: loud\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
}

func TestLoad_InvalidWeightingScheme(t *testing.T) {
	path := writeConfig(t, "features:\n  weighting:\n    scheme: linear\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weighting.scheme")
}

func TestLoad_InvalidWindows(t *testing.T) {
	path := writeConfig(t, "features:\n  windows: [5, 10]\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "features.windows is fixed")
}

func TestLoad_InvalidBackend(t *testing.T) {
	path := writeConfig(t, "database:\n  backend: cassandra\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.backend")
}

func TestLoad_PostgresRequiresDSN(t *testing.T) {
	path := writeConfig(t, "database:\n  backend: postgres\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres_dsn")
}

func TestLoad_InvalidCutoff(t *testing.T) {
	path := writeConfig(t, "dataset:\n  cutoff_date: June 2023\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cutoff_date")
}

func TestDatasetCutoff(t *testing.T) {
	cfg := DatasetConfig{CutoffDate: "2024-03-01"}
	cutoff, err := cfg.Cutoff()
	require.NoError(t, err)
	assert.Equal(t, 2024, cutoff.Year())
	assert.Equal(t, "2024-03-01", cutoff.Format("2006-01-02"))
}

func TestWeightingBuild(t *testing.T) {
	w, err := WeightingConfig{Scheme: features.SchemeExpDecay, Rate: 0.01}.Build()
	require.NoError(t, err)
	assert.Equal(t, features.SchemeExpDecay, w.Name())

	w, err = WeightingConfig{Scheme: features.SchemeInverseRank, Scale: 50}.Build()
	require.NoError(t, err)
	assert.InDelta(t, 1.0/1.02, w.Apply(1, 1), 1e-9)

	_, err = WeightingConfig{Scheme: "linear"}.Build()
	assert.Error(t, err)
}
