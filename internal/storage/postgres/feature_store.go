package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sslp23/world-cup-sim-26/internal/domain"
	"github.com/sslp23/world-cup-sim-26/internal/storage"
)

// featureRowColumns lists the feature_rows table columns in insert/select
// order: match columns, rank_dif, home then away feature fields, labels.
const featureRowColumns = `match_id, date, home_team, away_team,
		home_goals, away_goals, tournament, city, country, neutral,
		home_rank, home_rank_points, away_rank, away_rank_points, rank_dif,
		home_points_ma_5, home_points_ma_3,
		home_points_weighted_ma_5, home_points_weighted_ma_3,
		home_goals_ma_5, home_goals_ma_3,
		home_goals_suffered_ma_5, home_goals_suffered_ma_3,
		home_goals_weighted_ma_5, home_goals_weighted_ma_3,
		home_goals_suffered_weighted_ma_5, home_goals_suffered_weighted_ma_3,
		away_points_ma_5, away_points_ma_3,
		away_points_weighted_ma_5, away_points_weighted_ma_3,
		away_goals_ma_5, away_goals_ma_3,
		away_goals_suffered_ma_5, away_goals_suffered_ma_3,
		away_goals_weighted_ma_5, away_goals_weighted_ma_3,
		away_goals_suffered_weighted_ma_5, away_goals_suffered_weighted_ma_3,
		home_points_won, away_points_won, home_points_weighted, away_points_weighted`

const featureRowColumnCount = 43

// FeatureStore implements storage.FeatureStore using PostgreSQL.
type FeatureStore struct {
	pool *Pool
}

// NewFeatureStore creates a new FeatureStore.
func NewFeatureStore(pool *Pool) *FeatureStore {
	return &FeatureStore{pool: pool}
}

// Compile-time interface check.
var _ storage.FeatureStore = (*FeatureStore)(nil)

// Insert adds a new feature row. Returns ErrDuplicateKey if match_id exists.
func (s *FeatureStore) Insert(ctx context.Context, r *domain.FeatureRow) error {
	if r == nil || r.MatchID == "" {
		return storage.ErrInvalidInput
	}

	query := fmt.Sprintf("INSERT INTO feature_rows (%s) VALUES (%s)",
		featureRowColumns, placeholders(featureRowColumnCount))

	_, err := s.pool.Exec(ctx, query, featureRowArgs(r)...)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert feature row: %w", err)
	}
	return nil
}

// InsertBulk adds multiple rows atomically. Fails entire batch on any duplicate.
func (s *FeatureStore) InsertBulk(ctx context.Context, rows []*domain.FeatureRow) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := fmt.Sprintf("INSERT INTO feature_rows (%s) VALUES (%s)",
		featureRowColumns, placeholders(featureRowColumnCount))

	for _, r := range rows {
		if r == nil || r.MatchID == "" {
			return storage.ErrInvalidInput
		}
		if _, err := tx.Exec(ctx, query, featureRowArgs(r)...); err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert feature row in bulk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// GetByMatchID retrieves the row for a match. Returns ErrNotFound if not exists.
func (s *FeatureStore) GetByMatchID(ctx context.Context, matchID string) (*domain.FeatureRow, error) {
	query := fmt.Sprintf("SELECT %s FROM feature_rows WHERE match_id = $1", featureRowColumns)

	r, err := scanFeatureRow(s.pool.QueryRow(ctx, query, matchID))
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get feature row by match id: %w", err)
	}
	return r, nil
}

// GetByTeam retrieves all rows where the team played either side,
// ordered by date ASC, match_id ASC.
func (s *FeatureStore) GetByTeam(ctx context.Context, team string) ([]*domain.FeatureRow, error) {
	query := fmt.Sprintf(`SELECT %s FROM feature_rows
		WHERE home_team = $1 OR away_team = $1
		ORDER BY date ASC, match_id ASC`, featureRowColumns)

	rows, err := s.pool.Query(ctx, query, team)
	if err != nil {
		return nil, fmt.Errorf("get feature rows by team: %w", err)
	}
	defer rows.Close()

	return scanFeatureRows(rows)
}

// GetAll retrieves all rows, ordered by date ASC, match_id ASC.
func (s *FeatureStore) GetAll(ctx context.Context) ([]*domain.FeatureRow, error) {
	query := fmt.Sprintf("SELECT %s FROM feature_rows ORDER BY date ASC, match_id ASC", featureRowColumns)

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all feature rows: %w", err)
	}
	defer rows.Close()

	return scanFeatureRows(rows)
}

// Count returns the number of stored rows.
func (s *FeatureStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM feature_rows").Scan(&n); err != nil {
		return 0, fmt.Errorf("count feature rows: %w", err)
	}
	return n, nil
}

// DeleteAll removes every row.
func (s *FeatureStore) DeleteAll(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, "DELETE FROM feature_rows"); err != nil {
		return fmt.Errorf("delete all feature rows: %w", err)
	}
	return nil
}

// featureRowArgs renders a row as insert arguments in featureRowColumns order.
func featureRowArgs(r *domain.FeatureRow) []any {
	args := make([]any, 0, featureRowColumnCount)
	args = append(args,
		r.MatchID, r.Date, r.HomeTeam, r.AwayTeam,
		r.HomeGoals, r.AwayGoals, r.Tournament, r.City, r.Country, r.Neutral,
		r.HomeRank, r.HomeRankPoints, r.AwayRank, r.AwayRankPoints, r.RankDif,
	)
	for _, f := range r.Home.Fields() {
		args = append(args, f)
	}
	for _, f := range r.Away.Fields() {
		args = append(args, f)
	}
	args = append(args, r.HomePointsWon, r.AwayPointsWon, r.HomePointsWeighted, r.AwayPointsWeighted)
	return args
}

// scanFeatureRow scans a single row in featureRowColumns order.
func scanFeatureRow(row pgx.Row) (*domain.FeatureRow, error) {
	var r domain.FeatureRow

	nFields := len(domain.FeatureFieldNames())
	home := make([]*float64, nFields)
	away := make([]*float64, nFields)

	dest := make([]any, 0, featureRowColumnCount)
	dest = append(dest,
		&r.MatchID, &r.Date, &r.HomeTeam, &r.AwayTeam,
		&r.HomeGoals, &r.AwayGoals, &r.Tournament, &r.City, &r.Country, &r.Neutral,
		&r.HomeRank, &r.HomeRankPoints, &r.AwayRank, &r.AwayRankPoints, &r.RankDif,
	)
	for i := range home {
		dest = append(dest, &home[i])
	}
	for i := range away {
		dest = append(dest, &away[i])
	}
	dest = append(dest, &r.HomePointsWon, &r.AwayPointsWon, &r.HomePointsWeighted, &r.AwayPointsWeighted)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	r.Home.SetFields(home)
	r.Away.SetFields(away)

	return &r, nil
}

// scanFeatureRows scans multiple rows into a slice.
func scanFeatureRows(rows pgx.Rows) ([]*domain.FeatureRow, error) {
	var result []*domain.FeatureRow

	for rows.Next() {
		r, err := scanFeatureRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan feature row: %w", err)
		}
		result = append(result, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate feature rows: %w", err)
	}
	return result, nil
}
