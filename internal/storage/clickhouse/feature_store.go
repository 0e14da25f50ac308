package clickhouse

import (
	"context"
	"fmt"

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

// FeatureStore implements storage.FeatureStore using ClickHouse.
// MergeTree does not enforce uniqueness, so duplicates are rejected with
// explicit existence checks before inserting.
type FeatureStore struct {
	conn *Conn
}

// NewFeatureStore creates a new FeatureStore.
func NewFeatureStore(conn *Conn) *FeatureStore {
	return &FeatureStore{conn: conn}
}

// Compile-time interface check.
var _ storage.FeatureStore = (*FeatureStore)(nil)

// Insert adds a new feature row. Returns ErrDuplicateKey if match_id exists.
func (s *FeatureStore) Insert(ctx context.Context, r *domain.FeatureRow) error {
	return s.InsertBulk(ctx, []*domain.FeatureRow{r})
}

// InsertBulk adds multiple rows. Fails entire batch on any duplicate; the
// batch is not sent until every row has been checked and appended.
func (s *FeatureStore) InsertBulk(ctx context.Context, rows []*domain.FeatureRow) error {
	if len(rows) == 0 {
		return nil
	}

	// Check for intra-batch duplicates
	seen := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		if r == nil || r.MatchID == "" {
			return storage.ErrInvalidInput
		}
		if _, exists := seen[r.MatchID]; exists {
			return storage.ErrDuplicateKey
		}
		seen[r.MatchID] = struct{}{}
	}

	// Check for duplicates against existing DB rows
	for _, r := range rows {
		exists, err := s.exists(ctx, r.MatchID)
		if err != nil {
			return fmt.Errorf("check exists: %w", err)
		}
		if exists {
			return storage.ErrDuplicateKey
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, fmt.Sprintf("INSERT INTO feature_rows (%s)", featureRowColumns))
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, r := range rows {
		// Pass nil values directly for Nullable columns
		if err := batch.Append(featureRowValues(r)...); err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetByMatchID retrieves the row for a match. Returns ErrNotFound if not exists.
func (s *FeatureStore) GetByMatchID(ctx context.Context, matchID string) (*domain.FeatureRow, error) {
	query := fmt.Sprintf("SELECT %s FROM feature_rows WHERE match_id = ?", featureRowColumns)

	rows, err := s.conn.Query(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("get feature row by match id: %w", err)
	}
	defer rows.Close()

	result, err := scanFeatureRows(rows)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, storage.ErrNotFound
	}
	return result[0], nil
}

// GetByTeam retrieves all rows where the team played either side,
// ordered by date ASC, match_id ASC.
func (s *FeatureStore) GetByTeam(ctx context.Context, team string) ([]*domain.FeatureRow, error) {
	query := fmt.Sprintf(`SELECT %s FROM feature_rows
		WHERE home_team = ? OR away_team = ?
		ORDER BY date ASC, match_id ASC`, featureRowColumns)

	rows, err := s.conn.Query(ctx, query, team, team)
	if err != nil {
		return nil, fmt.Errorf("get feature rows by team: %w", err)
	}
	defer rows.Close()

	return scanFeatureRows(rows)
}

// GetAll retrieves all rows, ordered by date ASC, match_id ASC.
func (s *FeatureStore) GetAll(ctx context.Context) ([]*domain.FeatureRow, error) {
	query := fmt.Sprintf("SELECT %s FROM feature_rows ORDER BY date ASC, match_id ASC", featureRowColumns)

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all feature rows: %w", err)
	}
	defer rows.Close()

	return scanFeatureRows(rows)
}

// Count returns the number of stored rows.
func (s *FeatureStore) Count(ctx context.Context) (int, error) {
	var count uint64
	if err := s.conn.QueryRow(ctx, "SELECT count(*) FROM feature_rows").Scan(&count); err != nil {
		return 0, fmt.Errorf("count feature rows: %w", err)
	}
	return int(count), nil
}

// DeleteAll removes every row.
func (s *FeatureStore) DeleteAll(ctx context.Context) error {
	if err := s.conn.Exec(ctx, "TRUNCATE TABLE feature_rows"); err != nil {
		return fmt.Errorf("delete all feature rows: %w", err)
	}
	return nil
}

// exists checks if a row with the given match_id exists.
func (s *FeatureStore) exists(ctx context.Context, matchID string) (bool, error) {
	var count uint64
	err := s.conn.QueryRow(ctx, "SELECT count(*) FROM feature_rows WHERE match_id = ?", matchID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// featureRowValues renders a row as batch values in featureRowColumns order.
func featureRowValues(r *domain.FeatureRow) []any {
	vals := make([]any, 0, featureRowColumnCount)
	vals = append(vals,
		r.MatchID, r.Date, r.HomeTeam, r.AwayTeam,
		toNullableInt32(r.HomeGoals), toNullableInt32(r.AwayGoals),
		r.Tournament, r.City, r.Country, r.Neutral,
		r.HomeRank, r.HomeRankPoints, r.AwayRank, r.AwayRankPoints, r.RankDif,
	)
	for _, f := range r.Home.Fields() {
		vals = append(vals, f)
	}
	for _, f := range r.Away.Fields() {
		vals = append(vals, f)
	}
	vals = append(vals,
		toNullableInt32(r.HomePointsWon), toNullableInt32(r.AwayPointsWon),
		r.HomePointsWeighted, r.AwayPointsWeighted,
	)
	return vals
}

// toNullableInt32 converts *int to *int32 for ClickHouse Nullable(Int32).
func toNullableInt32(v *int) *int32 {
	if v == nil {
		return nil
	}
	n := int32(*v)
	return &n
}

// fromNullableInt32 converts Nullable(Int32) back to *int.
func fromNullableInt32(v *int32) *int {
	if v == nil {
		return nil
	}
	n := int(*v)
	return &n
}

// Rows interface for scanning
type chRows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// scanFeatureRows scans multiple rows into a slice, in featureRowColumns order.
func scanFeatureRows(rows chRows) ([]*domain.FeatureRow, error) {
	var result []*domain.FeatureRow

	nFields := len(domain.FeatureFieldNames())
	for rows.Next() {
		var r domain.FeatureRow
		var homeGoals, awayGoals, homePointsWon, awayPointsWon *int32

		home := make([]*float64, nFields)
		away := make([]*float64, nFields)

		dest := make([]any, 0, featureRowColumnCount)
		dest = append(dest,
			&r.MatchID, &r.Date, &r.HomeTeam, &r.AwayTeam,
			&homeGoals, &awayGoals,
			&r.Tournament, &r.City, &r.Country, &r.Neutral,
			&r.HomeRank, &r.HomeRankPoints, &r.AwayRank, &r.AwayRankPoints, &r.RankDif,
		)
		for i := range home {
			dest = append(dest, &home[i])
		}
		for i := range away {
			dest = append(dest, &away[i])
		}
		dest = append(dest, &homePointsWon, &awayPointsWon, &r.HomePointsWeighted, &r.AwayPointsWeighted)

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan feature row: %w", err)
		}

		r.Home.SetFields(home)
		r.Away.SetFields(away)
		r.HomeGoals = fromNullableInt32(homeGoals)
		r.AwayGoals = fromNullableInt32(awayGoals)
		r.HomePointsWon = fromNullableInt32(homePointsWon)
		r.AwayPointsWon = fromNullableInt32(awayPointsWon)

		result = append(result, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate feature rows: %w", err)
	}

	return result, nil
}
