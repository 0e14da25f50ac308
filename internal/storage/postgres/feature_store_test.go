package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sslp23/world-cup-sim-26/internal/domain"
	"github.com/sslp23/world-cup-sim-26/internal/storage"
)

func TestFeatureStore_InsertAndGetByMatchID(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewFeatureStore(pool)

	r := createTestFeatureRow("row-001", 10, "Brazil", "Argentina")

	err := store.Insert(ctx, r)
	require.NoError(t, err)

	got, err := store.GetByMatchID(ctx, "row-001")
	require.NoError(t, err)

	assert.Equal(t, r.MatchID, got.MatchID)
	assert.True(t, got.Date.Equal(r.Date))
	assert.Equal(t, r.HomeTeam, got.HomeTeam)
	assert.Equal(t, r.AwayTeam, got.AwayTeam)

	// Every feature cell must come back in its own column.
	wantHome := r.Home.Fields()
	gotHome := got.Home.Fields()
	for i, name := range domain.FeatureFieldNames() {
		require.NotNil(t, gotHome[i], "home %s is nil", name)
		assert.InDelta(t, *wantHome[i], *gotHome[i], 0.0001, "home %s", name)
	}
	wantAway := r.Away.Fields()
	gotAway := got.Away.Fields()
	for i, name := range domain.FeatureFieldNames() {
		require.NotNil(t, gotAway[i], "away %s is nil", name)
		assert.InDelta(t, *wantAway[i], *gotAway[i], 0.0001, "away %s", name)
	}

	require.NotNil(t, got.RankDif)
	assert.InDelta(t, -24.0, *got.RankDif, 0.0001)
	require.NotNil(t, got.HomePointsWon)
	assert.Equal(t, 3, *got.HomePointsWon)
	require.NotNil(t, got.AwayPointsWon)
	assert.Equal(t, 0, *got.AwayPointsWon)
	require.NotNil(t, got.HomePointsWeighted)
	assert.InDelta(t, 2.34375, *got.HomePointsWeighted, 0.0001)
	require.NotNil(t, got.AwayPointsWeighted)
	assert.InDelta(t, 0.0, *got.AwayPointsWeighted, 0.0001)
}

func TestFeatureStore_NullCells(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewFeatureStore(pool)

	// Cold-start fixture: no history, no labels, no away rank.
	r := &domain.FeatureRow{Match: *createTestMatch("row-002", 20, "Mexico", "Gibraltar")}
	r.HomeGoals, r.AwayGoals = nil, nil
	r.AwayRank, r.AwayRankPoints = nil, nil

	require.NoError(t, store.Insert(ctx, r))

	got, err := store.GetByMatchID(ctx, "row-002")
	require.NoError(t, err)

	assert.True(t, got.Home.Empty(), "home vector should be all NULL")
	assert.True(t, got.Away.Empty(), "away vector should be all NULL")
	assert.Nil(t, got.RankDif)
	assert.Nil(t, got.HomePointsWon)
	assert.Nil(t, got.AwayPointsWon)
	assert.Nil(t, got.HomePointsWeighted)
	assert.Nil(t, got.AwayPointsWeighted)
	assert.Nil(t, got.HomeGoals)
	assert.Nil(t, got.AwayRank)
}

func TestFeatureStore_InsertDuplicate(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewFeatureStore(pool)

	r := createTestFeatureRow("row-dup", 0, "Spain", "Italy")
	require.NoError(t, store.Insert(ctx, r))

	err := store.Insert(ctx, r)
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestFeatureStore_GetByMatchIDNotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewFeatureStore(pool)

	_, err := store.GetByMatchID(ctx, "nonexistent")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestFeatureStore_InsertBulkAtomic(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewFeatureStore(pool)

	require.NoError(t, store.Insert(ctx, createTestFeatureRow("r1", 0, "Spain", "Italy")))

	err := store.InsertBulk(ctx, []*domain.FeatureRow{
		createTestFeatureRow("r2", 1, "France", "Germany"),
		createTestFeatureRow("r1", 2, "Spain", "Wales"), // duplicate
	})
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "batch must roll back")
}

func TestFeatureStore_GetByTeamAndGetAll(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewFeatureStore(pool)

	err := store.InsertBulk(ctx, []*domain.FeatureRow{
		createTestFeatureRow("r3", 9, "Japan", "Chile"),
		createTestFeatureRow("r1", 2, "Ghana", "Japan"),
		createTestFeatureRow("r2", 5, "Spain", "Italy"),
	})
	require.NoError(t, err)

	byTeam, err := store.GetByTeam(ctx, "Japan")
	require.NoError(t, err)
	require.Len(t, byTeam, 2)
	assert.Equal(t, "r1", byTeam[0].MatchID)
	assert.Equal(t, "r3", byTeam[1].MatchID)

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "r1", all[0].MatchID)
	assert.Equal(t, "r3", all[2].MatchID)
}

func TestFeatureStore_DeleteAll(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewFeatureStore(pool)

	require.NoError(t, store.Insert(ctx, createTestFeatureRow("r1", 0, "Spain", "Italy")))
	require.NoError(t, store.DeleteAll(ctx))

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	// Recomputed rows can be persisted again.
	assert.NoError(t, store.Insert(ctx, createTestFeatureRow("r1", 0, "Spain", "Italy")))
}
