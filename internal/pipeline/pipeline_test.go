package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sslp23/world-cup-sim-26/internal/dataset"
	"github.com/sslp23/world-cup-sim-26/internal/domain"
	"github.com/sslp23/world-cup-sim-26/internal/features"
	"github.com/sslp23/world-cup-sim-26/internal/rankings"
	"github.com/sslp23/world-cup-sim-26/internal/storage/memory"
)

func newTestPipeline(t *testing.T) (*Pipeline, *memory.MatchStore, *memory.FeatureStore, string) {
	t.Helper()
	matchStore := memory.NewMatchStore()
	featureStore := memory.NewFeatureStore()
	dir := t.TempDir()
	p := New(matchStore, featureStore, features.NewEngine(nil), dir, zerolog.Nop())
	return p, matchStore, featureStore, dir
}

func fixedClock() time.Time {
	return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
}

func TestPipelineRunFixtures(t *testing.T) {
	p, matchStore, featureStore, dir := newTestPipeline(t)
	p.WithClock(fixedClock)
	ctx := context.Background()

	require.NoError(t, p.RunFixtures(ctx))

	want := len(FixtureMatches())
	matchCount, err := matchStore.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, matchCount)

	featureCount, err := featureStore.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, featureCount)

	_, err = os.Stat(filepath.Join(dir, FeatureCSVName))
	require.NoError(t, err, "feature csv should be written")

	report, err := os.ReadFile(filepath.Join(dir, ReportName))
	require.NoError(t, err)
	content := string(report)
	assert.Contains(t, content, "# Features Report")
	assert.Contains(t, content, "### Sufficiency Checks")
	// The demo dataset is honest about its size: 12 matches fail the
	// minimum count check while the other checks pass.
	assert.Contains(t, content, "| FAIL |")
	assert.Contains(t, content, "**Some checks failed.**")
}

func TestPipelineRun_FullBuild(t *testing.T) {
	p, matchStore, featureStore, dir := newTestPipeline(t)
	p.WithClock(fixedClock).WithSufficiencyChecker(NewSufficiencyChecker().WithMinMatches(3))
	ctx := context.Background()

	table := rankings.NewTable([]*domain.RankSnapshot{
		{Team: "Brazil", Date: day(2022, 12, 22), Rank: 1, Points: 1840.77},
		{Team: "Argentina", Date: day(2022, 12, 22), Rank: 2, Points: 1838.38},
		{Team: "Chile", Date: day(2022, 12, 22), Rank: 30, Points: 1510.1},
	})
	results := []*domain.Match{
		// Dropped by the cutoff.
		{Date: day(2022, 6, 1), HomeTeam: "Brazil", AwayTeam: "Argentina",
			HomeGoals: intp(1), AwayGoals: intp(0), Tournament: "Friendly", City: "Melbourne", Country: "Australia", Neutral: true},
		{Date: day(2023, 3, 25), HomeTeam: "Brazil", AwayTeam: "Argentina",
			HomeGoals: intp(2), AwayGoals: intp(1), Tournament: "Friendly", City: "Rio de Janeiro", Country: "Brazil"},
		{Date: day(2023, 6, 15), HomeTeam: "Argentina", AwayTeam: "Chile",
			HomeGoals: intp(3), AwayGoals: intp(0), Tournament: "FIFA World Cup qualification", City: "Buenos Aires", Country: "Argentina"},
		// Atlantis has no ranking snapshot.
		{Date: day(2023, 9, 5), HomeTeam: "Chile", AwayTeam: "Atlantis",
			HomeGoals: intp(1), AwayGoals: intp(1), Tournament: "Friendly", City: "Santiago", Country: "Chile"},
		{Date: day(2026, 6, 11), HomeTeam: "Brazil", AwayTeam: "Chile",
			Tournament: "FIFA World Cup", City: "Miami", Country: "United States", Neutral: true},
	}

	err := p.Run(ctx, BuildOptions{Results: results, Table: table, Cutoff: dataset.DefaultCutoff})
	require.NoError(t, err)

	matchCount, err := matchStore.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, matchCount)

	featureCount, err := featureStore.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, featureCount)

	ranked, err := os.ReadFile(filepath.Join(dir, RankedCSVName))
	require.NoError(t, err)
	assert.Equal(t, 5, strings.Count(string(ranked), "\n"), "header plus four rows")

	report, err := os.ReadFile(filepath.Join(dir, ReportName))
	require.NoError(t, err)
	content := string(report)
	assert.Contains(t, content, "### Integrity Errors")
	assert.Contains(t, content, "no rank found for team Atlantis")
	assert.Contains(t, content, "**Some checks failed.**")
}

func TestPipelineRun_Deterministic(t *testing.T) {
	ctx := context.Background()

	run := func() (csv, report []byte) {
		p, _, _, dir := newTestPipeline(t)
		p.WithClock(fixedClock)
		require.NoError(t, p.RunFixtures(ctx))

		csv, err := os.ReadFile(filepath.Join(dir, FeatureCSVName))
		require.NoError(t, err)
		report, err = os.ReadFile(filepath.Join(dir, ReportName))
		require.NoError(t, err)
		return csv, report
	}

	csv1, report1 := run()
	csv2, report2 := run()

	assert.Equal(t, csv1, csv2, "feature csv should be byte-identical across runs")
	assert.Equal(t, report1, report2, "report should be byte-identical across runs")
	assert.Equal(t, len(FixtureMatches())+1, strings.Count(string(csv1), "\n"))
}

func TestPipelineRunFixtures_WithLabels(t *testing.T) {
	p, _, _, dir := newTestPipeline(t)
	p.WithClock(fixedClock).WithLabels(true)
	ctx := context.Background()

	require.NoError(t, p.RunFixtures(ctx))

	data, err := os.ReadFile(filepath.Join(dir, FeatureCSVName))
	require.NoError(t, err)
	header := strings.SplitN(string(data), "\n", 2)[0]
	assert.Contains(t, header, "home_points_won")
	assert.Contains(t, header, "away_points_weighted")
}

func TestPipelineFeaturesFrom_MalformedMatch(t *testing.T) {
	p, _, _, _ := newTestPipeline(t)
	ctx := context.Background()

	bad := []*domain.Match{
		{MatchID: "bad", Date: day(2024, 1, 1), HomeTeam: "Brazil"},
	}
	err := p.FeaturesFrom(ctx, bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedMatch)
}

func TestPipelineWriteReport_NoSufficiency(t *testing.T) {
	p, _, _, dir := newTestPipeline(t)
	p.WithClock(fixedClock)
	ctx := context.Background()

	require.NoError(t, p.WriteReport(ctx, nil))

	report, err := os.ReadFile(filepath.Join(dir, ReportName))
	require.NoError(t, err)
	content := string(report)
	assert.Contains(t, content, "No data quality checks performed.")
	assert.Contains(t, content, "No feature rows available.")
}
