package clickhouse

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/sslp23/world-cup-sim-26/internal/domain"
	"github.com/sslp23/world-cup-sim-26/internal/storage/migrations"
)

// setupTestDB creates a ClickHouse container, applies the embedded migrations
// and returns a connection. Returns a cleanup function that must be called
// when done.
func setupTestDB(t *testing.T) (*Conn, func()) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	// Start ClickHouse container
	req := testcontainers.ContainerRequest{
		Image:        "clickhouse/clickhouse-server:24.1-alpine",
		ExposedPorts: []string{"9000/tcp", "8123/tcp"},
		WaitingFor: wait.ForAll(
			wait.ForLog("Application: Ready for connections").
				WithStartupTimeout(60*time.Second),
			wait.ForListeningPort("9000/tcp"),
		),
		Env: map[string]string{
			"CLICKHOUSE_DB":       "test",
			"CLICKHOUSE_USER":     "default",
			"CLICKHOUSE_PASSWORD": "",
		},
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	// Get native port (9000)
	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "9000")
	require.NoError(t, err)

	dsn := fmt.Sprintf("clickhouse://%s:%s/test", host, port.Port())

	// The container created the test database already; just connect.
	conn, err := NewConn(ctx, dsn)
	require.NoError(t, err)

	err = migrations.RunClickhouseMigrations(ctx, conn.Conn)
	require.NoError(t, err, "failed to apply migrations")

	cleanup := func() {
		conn.Close()
		_ = container.Terminate(ctx)
	}

	return conn, cleanup
}

// ptr is a helper to create pointers for test values
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
