package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sslp23/world-cup-sim-26/internal/config"
	"github.com/sslp23/world-cup-sim-26/internal/dataset"
	"github.com/sslp23/world-cup-sim-26/internal/features"
	"github.com/sslp23/world-cup-sim-26/internal/pipeline"
	"github.com/sslp23/world-cup-sim-26/internal/rankings"
	"github.com/sslp23/world-cup-sim-26/internal/storage"
	"github.com/sslp23/world-cup-sim-26/internal/storage/clickhouse"
	"github.com/sslp23/world-cup-sim-26/internal/storage/memory"
	"github.com/sslp23/world-cup-sim-26/internal/storage/migrations"
	"github.com/sslp23/world-cup-sim-26/internal/storage/postgres"
	"github.com/sslp23/world-cup-sim-26/internal/storage/sqlite"
)

// App aggregates configuration and shared dependencies for the CLI commands.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
}

// NewApp constructs a new application handle.
func NewApp(cfg *config.Config, logger zerolog.Logger) *App {
	return &App{Config: cfg, Logger: logger.With().Str("component", "app").Logger()}
}

// stores bundles the two persistence interfaces with their close function.
type stores struct {
	matchStore   storage.MatchStore
	featureStore storage.FeatureStore
	close        func()
}

func memoryStores() *stores {
	return &stores{
		matchStore:   memory.NewMatchStore(),
		featureStore: memory.NewFeatureStore(),
		close:        func() {},
	}
}

// openStores opens the stores for the configured backend, running pending
// migrations. When clickhouse_dsn is set, feature rows go to ClickHouse
// instead of the primary backend.
func (a *App) openStores(ctx context.Context) (*stores, error) {
	st := &stores{close: func() {}}

	switch a.Config.Database.Backend {
	case config.BackendMemory:
		st = memoryStores()

	case config.BackendSQLite:
		db, err := sqlite.Open(ctx, a.Config.Database.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := migrations.RunSQLiteMigrations(ctx, db.DB); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate sqlite: %w", err)
		}
		st.matchStore = sqlite.NewMatchStore(db)
		st.featureStore = sqlite.NewFeatureStore(db)
		st.close = func() { db.Close() }

	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, a.Config.Database.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := migrations.RunPostgresMigrations(ctx, pool.Pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		st.matchStore = postgres.NewMatchStore(pool)
		st.featureStore = postgres.NewFeatureStore(pool)
		st.close = func() { pool.Close() }

	default:
		return nil, fmt.Errorf("unknown database backend %q", a.Config.Database.Backend)
	}

	if dsn := a.Config.Database.ClickHouseDSN; dsn != "" {
		if err := clickhouse.EnsureDatabase(ctx, dsn); err != nil {
			st.close()
			return nil, err
		}
		conn, err := clickhouse.NewConn(ctx, dsn)
		if err != nil {
			st.close()
			return nil, err
		}
		if err := migrations.RunClickhouseMigrations(ctx, conn.Conn); err != nil {
			conn.Close()
			st.close()
			return nil, fmt.Errorf("migrate clickhouse: %w", err)
		}
		st.featureStore = clickhouse.NewFeatureStore(conn)
		closePrimary := st.close
		st.close = func() {
			conn.Close()
			closePrimary()
		}
	}

	a.Logger.Debug().Str("backend", a.Config.Database.Backend).Msg("stores opened")
	return st, nil
}

func (a *App) newPipeline(st *stores) (*pipeline.Pipeline, error) {
	weighting, err := a.Config.Features.Weighting.Build()
	if err != nil {
		return nil, err
	}
	p := pipeline.New(st.matchStore, st.featureStore, features.NewEngine(weighting), a.Config.Export.OutputDir, a.Logger).
		WithLabels(a.Config.Export.IncludeLabels)
	return p, nil
}

// buildInputs loads the raw tables, applying command-line path overrides.
func (a *App) buildInputs(opts BuildOptions) (pipeline.BuildOptions, error) {
	ds := a.Config.Dataset
	if opts.ResultsPath != "" {
		ds.ResultsPath = opts.ResultsPath
	}
	if opts.RankingsPath != "" {
		ds.RankingsPath = opts.RankingsPath
	}
	if opts.CutoffDate != "" {
		ds.CutoffDate = opts.CutoffDate
	}

	cutoff, err := ds.Cutoff()
	if err != nil {
		return pipeline.BuildOptions{}, err
	}

	results, err := dataset.LoadResults(ds.ResultsPath)
	if err != nil {
		return pipeline.BuildOptions{}, fmt.Errorf("load results: %w", err)
	}
	snapshots, err := rankings.LoadCSV(ds.RankingsPath, ds.NameOverrides)
	if err != nil {
		return pipeline.BuildOptions{}, fmt.Errorf("load rankings: %w", err)
	}

	a.Logger.Info().
		Int("results", len(results)).
		Int("ranking_rows", len(snapshots)).
		Msg("input tables loaded")

	return pipeline.BuildOptions{
		Results: results,
		Table:   rankings.NewTable(snapshots),
		Cutoff:  cutoff,
	}, nil
}

// BuildOptions configure the build command.
type BuildOptions struct {
	ResultsPath  string // overrides dataset.results_path
	RankingsPath string // overrides dataset.rankings_path
	CutoffDate   string // overrides dataset.cutoff_date
	CSVPath      string // ranked CSV destination, default under export.output_dir
}

// FeaturesOptions configure the features command.
type FeaturesOptions struct {
	InputPath string // ranked CSV to featurize instead of the match store
}

// RunOptions configure the full pass.
type RunOptions struct {
	UseFixtures bool
}

// ExportOptions configure the export command.
type ExportOptions struct {
	CSVPath   string
	ChartTeam string
	ChartPath string
}

// ShowOptions configure the show command.
type ShowOptions struct {
	Team  string
	Limit int
}
