package storage

import (
	"context"
	"time"

	"github.com/sslp23/world-cup-sim-26/internal/domain"
)

// MatchStore provides access to the ranked match database.
type MatchStore interface {
	// Insert adds a new match. Returns ErrDuplicateKey if match_id exists.
	Insert(ctx context.Context, m *domain.Match) error

	// InsertBulk adds multiple matches atomically. Fails entire batch on any duplicate.
	InsertBulk(ctx context.Context, matches []*domain.Match) error

	// GetByID retrieves a match by its ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, matchID string) (*domain.Match, error)

	// GetByTeam retrieves all matches where the team played either side,
	// ordered by date ASC, match_id ASC.
	GetByTeam(ctx context.Context, team string) ([]*domain.Match, error)

	// GetByDateRange retrieves matches within [from, to] (inclusive),
	// ordered by date ASC, match_id ASC.
	GetByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Match, error)

	// GetAll retrieves all matches, ordered by date ASC, match_id ASC.
	GetAll(ctx context.Context) ([]*domain.Match, error)

	// Count returns the number of stored matches.
	Count(ctx context.Context) (int, error)

	// DeleteAll removes every match. Used before a full rebuild.
	DeleteAll(ctx context.Context) error
}

// FeatureStore provides access to assembled feature rows. Rows are stored
// denormalized (match columns included) so reads never need a join.
type FeatureStore interface {
	// Insert adds a new feature row. Returns ErrDuplicateKey if match_id exists.
	Insert(ctx context.Context, r *domain.FeatureRow) error

	// InsertBulk adds multiple rows atomically. Fails entire batch on any duplicate.
	InsertBulk(ctx context.Context, rows []*domain.FeatureRow) error

	// GetByMatchID retrieves the row for a match. Returns ErrNotFound if not exists.
	GetByMatchID(ctx context.Context, matchID string) (*domain.FeatureRow, error)

	// GetByTeam retrieves all rows where the team played either side,
	// ordered by date ASC, match_id ASC.
	GetByTeam(ctx context.Context, team string) ([]*domain.FeatureRow, error)

	// GetAll retrieves all rows, ordered by date ASC, match_id ASC.
	GetAll(ctx context.Context) ([]*domain.FeatureRow, error)

	// Count returns the number of stored rows.
	Count(ctx context.Context) (int, error)

	// DeleteAll removes every row. Features are recomputed on each run,
	// so a run truncates before persisting.
	DeleteAll(ctx context.Context) error
}
