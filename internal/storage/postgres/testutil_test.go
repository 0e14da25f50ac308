package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/sslp23/world-cup-sim-26/internal/domain"
	"github.com/sslp23/world-cup-sim-26/internal/storage/migrations"
)

// setupTestDB creates a PostgreSQL container for testing and applies the
// embedded migrations. Returns a cleanup function that must be called after
// tests complete.
func setupTestDB(t *testing.T) (*Pool, func()) {
	t.Helper()

	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start postgres container")

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	pool, err := NewPool(ctx, dsn)
	require.NoError(t, err, "failed to create pool")

	err = migrations.RunPostgresMigrations(ctx, pool.Pool)
	require.NoError(t, err, "failed to apply migrations")

	cleanup := func() {
		pool.Close()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return pool, cleanup
}

// ptr is a helper to create pointers to values.
func ptr[T any](v T) *T {
	return &v
}

// day returns a UTC midnight date n days after 2023-01-01.
func day(n int) time.Time {
	return time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

// createTestMatch builds a fully populated match.
func createTestMatch(id string, dayOffset int, home, away string) *domain.Match {
	return &domain.Match{
		MatchID:        id,
		Date:           day(dayOffset),
		HomeTeam:       home,
		AwayTeam:       away,
		HomeGoals:      ptr(2),
		AwayGoals:      ptr(1),
		Tournament:     "Friendly",
		City:           "Doha",
		Country:        "Qatar",
		Neutral:        true,
		HomeRank:       ptr(4.0),
		HomeRankPoints: ptr(1742.3),
		AwayRank:       ptr(28.0),
		AwayRankPoints: ptr(1504.9),
	}
}

// createTestFeatureRow builds a row with distinct values in every feature
// field so column-order bugs surface in round trips.
func createTestFeatureRow(id string, dayOffset int, home, away string) *domain.FeatureRow {
	r := &domain.FeatureRow{Match: *createTestMatch(id, dayOffset, home, away)}

	n := len(domain.FeatureFieldNames())
	homeVals := make([]*float64, n)
	awayVals := make([]*float64, n)
	for i := 0; i < n; i++ {
		homeVals[i] = ptr(0.1 * float64(i+1))
		awayVals[i] = ptr(10.0 + 0.1*float64(i+1))
	}
	r.Home.SetFields(homeVals)
	r.Away.SetFields(awayVals)

	r.RankDif = ptr(-24.0)
	r.HomePointsWon = ptr(3)
	r.AwayPointsWon = ptr(0)
	r.HomePointsWeighted = ptr(2.34375)
	r.AwayPointsWeighted = ptr(0.0)
	return r
}
