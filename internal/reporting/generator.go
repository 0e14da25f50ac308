package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/sslp23/world-cup-sim-26/internal/metrics"
	"github.com/sslp23/world-cup-sim-26/internal/storage"
)

// Generator produces reports from stored data.
type Generator struct {
	matchStore   storage.MatchStore
	featureStore storage.FeatureStore
	now          func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator.
func NewGenerator(matchStore storage.MatchStore, featureStore storage.FeatureStore) *Generator {
	return &Generator{
		matchStore:   matchStore,
		featureStore: featureStore,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate produces a complete feature run report. The data quality section
// stays empty here; the pipeline fills it from its sufficiency checks.
func (g *Generator) Generate(ctx context.Context) (*Report, error) {
	matchCount, err := g.matchStore.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count matches: %w", err)
	}

	rows, err := g.featureStore.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load feature rows: %w", err)
	}

	// Stores return rows ordered by date then match_id, and Summarize keeps
	// column order fixed, so the report is deterministic without re-sorting.
	summary := metrics.Summarize(rows)

	return &Report{
		GeneratedAt:     g.now(),
		Dataset:         datasetSummary(matchCount, summary),
		FeatureCoverage: coverageRows(summary),
	}, nil
}

func datasetSummary(matchCount int, s *metrics.Summary) DatasetSummary {
	return DatasetSummary{
		StoredMatches: matchCount,
		FeatureRows:   s.TotalRows,
		ResolvedRows:  s.ResolvedRows,
		FixtureRows:   s.FixtureRows,
		RankedRows:    s.RankedRows,
		ColdStartRows: s.ColdStartRows,
		Teams:         s.Teams,
		DateFrom:      s.DateFrom,
		DateTo:        s.DateTo,
	}
}

func coverageRows(s *metrics.Summary) []FeatureCoverageRow {
	rows := make([]FeatureCoverageRow, len(s.Columns))
	for i, col := range s.Columns {
		rows[i] = FeatureCoverageRow{
			Name:     col.Name,
			Defined:  col.Defined,
			Coverage: col.Coverage,
			Mean:     col.Mean,
		}
	}
	return rows
}
