package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/sslp23/world-cup-sim-26/internal/dataset"
	"github.com/sslp23/world-cup-sim-26/internal/domain"
	"github.com/sslp23/world-cup-sim-26/internal/features"
	"github.com/sslp23/world-cup-sim-26/internal/rankings"
	"github.com/sslp23/world-cup-sim-26/internal/reporting"
	"github.com/sslp23/world-cup-sim-26/internal/storage"
)

// Output file names, relative to the pipeline output directory.
const (
	RankedCSVName  = "ranked_database.csv"
	FeatureCSVName = "ranked_database_with_features.csv"
	ReportName     = "FEATURES_REPORT.md"
)

// Pipeline orchestrates a full pass: build the ranked database, compute
// the feature table, persist both and write the run report.
type Pipeline struct {
	matchStore   storage.MatchStore
	featureStore storage.FeatureStore
	engine       *features.Engine
	checker      *SufficiencyChecker
	logger       zerolog.Logger

	outputDir     string
	includeLabels bool
	clock         func() time.Time

	// integrity errors collected during the build phase, surfaced in the
	// report appendix
	integrityErrors []string
}

// New creates a pipeline over the given stores. The engine decides the
// opponent weighting; pass features.NewEngine(nil) for the default.
func New(matchStore storage.MatchStore, featureStore storage.FeatureStore, engine *features.Engine, outputDir string, logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		matchStore:   matchStore,
		featureStore: featureStore,
		engine:       engine,
		checker:      NewSufficiencyChecker(),
		logger:       logger.With().Str("component", "pipeline").Logger(),
		outputDir:    outputDir,
		clock:        func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets the report timestamp source, for reproducible output.
func (p *Pipeline) WithClock(clock func() time.Time) *Pipeline {
	p.clock = clock
	return p
}

// WithLabels includes the points-won label columns in the feature CSV.
func (p *Pipeline) WithLabels(include bool) *Pipeline {
	p.includeLabels = include
	return p
}

// WithSufficiencyChecker overrides the default checker thresholds.
func (p *Pipeline) WithSufficiencyChecker(checker *SufficiencyChecker) *Pipeline {
	p.checker = checker
	return p
}

// BuildOptions carries the inputs of a dataset build.
type BuildOptions struct {
	Results []*domain.Match
	Table   *rankings.Table
	Cutoff  time.Time
}

// Build joins raw results with the ranking table and replaces the match
// store contents with the ranked database, sorted chronologically.
func (p *Pipeline) Build(ctx context.Context, opts BuildOptions) (*dataset.BuildResult, error) {
	builder := dataset.NewBuilder(opts.Table, opts.Cutoff)
	res, err := builder.Build(opts.Results)
	if err != nil {
		p.logger.Error().Err(err).Msg("dataset build failed")
		return nil, fmt.Errorf("build ranked database: %w", err)
	}
	dataset.SortMatches(res.Matches)

	if err := p.matchStore.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("clear match store: %w", err)
	}
	if err := p.matchStore.InsertBulk(ctx, res.Matches); err != nil {
		return nil, fmt.Errorf("persist ranked database: %w", err)
	}

	for _, team := range res.UnrankedTeams {
		p.integrityErrors = append(p.integrityErrors, fmt.Sprintf("no rank found for team %s", team))
	}

	p.logger.Info().
		Int("read", res.TotalRead).
		Int("kept", res.Kept).
		Int("cutoff_dropped", res.CutoffDropped).
		Int("missing_rank_cells", res.MissingRanks).
		Msg("ranked database built")

	return res, nil
}

// Features computes the feature table from the stored ranked database.
func (p *Pipeline) Features(ctx context.Context) error {
	matches, err := p.matchStore.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("load ranked database: %w", err)
	}
	return p.FeaturesFrom(ctx, matches)
}

// FeaturesFrom computes the feature table from the given matches, replaces
// the feature store contents with it, writes the feature CSV and finishes
// with the run report. Matches must already be in chronological order.
func (p *Pipeline) FeaturesFrom(ctx context.Context, matches []*domain.Match) error {
	if err := os.MkdirAll(p.outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	suff := p.checker.Check(matches)
	if !suff.AllPass {
		failed := 0
		for _, c := range suff.Checks {
			if !c.Pass {
				failed++
			}
		}
		p.logger.Warn().
			Int("failed_checks", failed).
			Int("integrity_errors", len(suff.Errors)).
			Msg("sufficiency checks failed")
	}

	rows, err := p.engine.Run(matches)
	if err != nil {
		p.logger.Error().Err(err).Msg("feature computation failed")
		return fmt.Errorf("compute features: %w", err)
	}

	if err := p.featureStore.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear feature store: %w", err)
	}
	if err := p.featureStore.InsertBulk(ctx, rows); err != nil {
		return fmt.Errorf("persist feature table: %w", err)
	}
	p.logger.Info().Int("rows", len(rows)).Msg("feature table persisted")

	csvPath := filepath.Join(p.outputDir, FeatureCSVName)
	if err := reporting.SaveFeatureCSV(csvPath, rows, p.includeLabels); err != nil {
		return fmt.Errorf("write feature csv: %w", err)
	}
	p.logger.Info().Str("path", csvPath).Msg("feature table written")

	return p.WriteReport(ctx, suff)
}

// Run executes the full pass and writes all three output files.
func (p *Pipeline) Run(ctx context.Context, opts BuildOptions) error {
	if err := os.MkdirAll(p.outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	res, err := p.Build(ctx, opts)
	if err != nil {
		return err
	}

	rankedPath := filepath.Join(p.outputDir, RankedCSVName)
	if err := dataset.SaveRankedCSV(rankedPath, res.Matches); err != nil {
		return fmt.Errorf("write ranked csv: %w", err)
	}
	p.logger.Info().Str("path", rankedPath).Msg("ranked database written")

	return p.FeaturesFrom(ctx, res.Matches)
}

// RunFixtures loads the built-in demo dataset into the match store and
// runs the feature and report phases over it.
func (p *Pipeline) RunFixtures(ctx context.Context) error {
	if err := LoadFixtures(ctx, p.matchStore); err != nil {
		return fmt.Errorf("load fixtures: %w", err)
	}
	p.logger.Info().Int("matches", len(FixtureMatches())).Msg("fixture dataset loaded")
	return p.Features(ctx)
}

// WriteReport generates FEATURES_REPORT.md from the stored data, attaching
// the sufficiency outcome when one is given.
func (p *Pipeline) WriteReport(ctx context.Context, suff *SufficiencyResult) error {
	if err := os.MkdirAll(p.outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	gen := reporting.NewGenerator(p.matchStore, p.featureStore).WithClock(p.clock)
	report, err := gen.Generate(ctx)
	if err != nil {
		return fmt.Errorf("generate report: %w", err)
	}
	report.DataQuality = p.dataQuality(suff)

	path := filepath.Join(p.outputDir, ReportName)
	if err := os.WriteFile(path, []byte(reporting.RenderMarkdown(report)), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	p.logger.Info().Str("path", path).Msg("report written")
	return nil
}

// dataQuality merges the sufficiency outcome with build-phase integrity
// errors. Integrity errors fail the verdict even when all checks passed.
func (p *Pipeline) dataQuality(suff *SufficiencyResult) reporting.DataQualitySection {
	var dq reporting.DataQualitySection
	if suff != nil {
		dq = convertToDataQuality(suff)
	}
	if len(p.integrityErrors) > 0 {
		dq.IntegrityErrors = append(dq.IntegrityErrors, p.integrityErrors...)
		dq.AllChecksPassed = false
	}
	return dq
}

func convertToDataQuality(result *SufficiencyResult) reporting.DataQualitySection {
	checks := make([]reporting.SufficiencyCheckRow, len(result.Checks))
	for i, c := range result.Checks {
		checks[i] = reporting.SufficiencyCheckRow{
			Name:      c.Name,
			Threshold: c.Threshold,
			Actual:    c.Actual,
			Pass:      c.Pass,
		}
	}
	return reporting.DataQualitySection{
		SufficiencyChecks: checks,
		IntegrityErrors:   result.Errors,
		AllChecksPassed:   result.AllPass,
	}
}
