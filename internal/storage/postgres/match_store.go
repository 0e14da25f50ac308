package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sslp23/world-cup-sim-26/internal/domain"
	"github.com/sslp23/world-cup-sim-26/internal/storage"
)

// matchColumns lists the matches table columns in insert/select order.
const matchColumns = `match_id, date, home_team, away_team,
		home_goals, away_goals, tournament, city, country, neutral,
		home_rank, home_rank_points, away_rank, away_rank_points`

const matchColumnCount = 14

// MatchStore implements storage.MatchStore using PostgreSQL.
type MatchStore struct {
	pool *Pool
}

// NewMatchStore creates a new MatchStore.
func NewMatchStore(pool *Pool) *MatchStore {
	return &MatchStore{pool: pool}
}

// Compile-time interface check.
var _ storage.MatchStore = (*MatchStore)(nil)

// Insert adds a new match. Returns ErrDuplicateKey if match_id exists.
func (s *MatchStore) Insert(ctx context.Context, m *domain.Match) error {
	if m == nil || m.MatchID == "" {
		return storage.ErrInvalidInput
	}

	query := fmt.Sprintf("INSERT INTO matches (%s) VALUES (%s)", matchColumns, placeholders(matchColumnCount))

	_, err := s.pool.Exec(ctx, query, matchArgs(m)...)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert match: %w", err)
	}
	return nil
}

// InsertBulk adds multiple matches atomically. Fails entire batch on any duplicate.
func (s *MatchStore) InsertBulk(ctx context.Context, matches []*domain.Match) error {
	if len(matches) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := fmt.Sprintf("INSERT INTO matches (%s) VALUES (%s)", matchColumns, placeholders(matchColumnCount))

	for _, m := range matches {
		if m == nil || m.MatchID == "" {
			return storage.ErrInvalidInput
		}
		if _, err := tx.Exec(ctx, query, matchArgs(m)...); err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert match in bulk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// GetByID retrieves a match by its ID. Returns ErrNotFound if not exists.
func (s *MatchStore) GetByID(ctx context.Context, matchID string) (*domain.Match, error) {
	query := fmt.Sprintf("SELECT %s FROM matches WHERE match_id = $1", matchColumns)

	m, err := scanMatch(s.pool.QueryRow(ctx, query, matchID))
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get match by id: %w", err)
	}
	return m, nil
}

// GetByTeam retrieves all matches where the team played either side,
// ordered by date ASC, match_id ASC.
func (s *MatchStore) GetByTeam(ctx context.Context, team string) ([]*domain.Match, error) {
	query := fmt.Sprintf(`SELECT %s FROM matches
		WHERE home_team = $1 OR away_team = $1
		ORDER BY date ASC, match_id ASC`, matchColumns)

	rows, err := s.pool.Query(ctx, query, team)
	if err != nil {
		return nil, fmt.Errorf("get matches by team: %w", err)
	}
	defer rows.Close()

	return scanMatches(rows)
}

// GetByDateRange retrieves matches within [from, to] (inclusive),
// ordered by date ASC, match_id ASC.
func (s *MatchStore) GetByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Match, error) {
	query := fmt.Sprintf(`SELECT %s FROM matches
		WHERE date >= $1 AND date <= $2
		ORDER BY date ASC, match_id ASC`, matchColumns)

	rows, err := s.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("get matches by date range: %w", err)
	}
	defer rows.Close()

	return scanMatches(rows)
}

// GetAll retrieves all matches, ordered by date ASC, match_id ASC.
func (s *MatchStore) GetAll(ctx context.Context) ([]*domain.Match, error) {
	query := fmt.Sprintf("SELECT %s FROM matches ORDER BY date ASC, match_id ASC", matchColumns)

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all matches: %w", err)
	}
	defer rows.Close()

	return scanMatches(rows)
}

// Count returns the number of stored matches.
func (s *MatchStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM matches").Scan(&n); err != nil {
		return 0, fmt.Errorf("count matches: %w", err)
	}
	return n, nil
}

// DeleteAll removes every match.
func (s *MatchStore) DeleteAll(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, "DELETE FROM matches"); err != nil {
		return fmt.Errorf("delete all matches: %w", err)
	}
	return nil
}

// matchArgs renders a match as insert arguments in matchColumns order.
func matchArgs(m *domain.Match) []any {
	return []any{
		m.MatchID, m.Date, m.HomeTeam, m.AwayTeam,
		m.HomeGoals, m.AwayGoals, m.Tournament, m.City, m.Country, m.Neutral,
		m.HomeRank, m.HomeRankPoints, m.AwayRank, m.AwayRankPoints,
	}
}

// scanMatch scans a single row in matchColumns order.
func scanMatch(row pgx.Row) (*domain.Match, error) {
	var m domain.Match

	err := row.Scan(
		&m.MatchID, &m.Date, &m.HomeTeam, &m.AwayTeam,
		&m.HomeGoals, &m.AwayGoals, &m.Tournament, &m.City, &m.Country, &m.Neutral,
		&m.HomeRank, &m.HomeRankPoints, &m.AwayRank, &m.AwayRankPoints,
	)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

// scanMatches scans multiple rows into a slice.
func scanMatches(rows pgx.Rows) ([]*domain.Match, error) {
	var matches []*domain.Match

	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan match row: %w", err)
		}
		matches = append(matches, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate match rows: %w", err)
	}
	return matches, nil
}
