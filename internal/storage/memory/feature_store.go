package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/sslp23/world-cup-sim-26/internal/domain"
	"github.com/sslp23/world-cup-sim-26/internal/storage"
)

// FeatureStore is an in-memory implementation of storage.FeatureStore.
type FeatureStore struct {
	mu   sync.RWMutex
	data map[string]*domain.FeatureRow // keyed by match_id
}

// NewFeatureStore creates a new in-memory feature store.
func NewFeatureStore() *FeatureStore {
	return &FeatureStore{
		data: make(map[string]*domain.FeatureRow),
	}
}

// Insert adds a new feature row. Returns ErrDuplicateKey if match_id exists.
func (s *FeatureStore) Insert(_ context.Context, r *domain.FeatureRow) error {
	if r == nil || r.MatchID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[r.MatchID]; exists {
		return storage.ErrDuplicateKey
	}

	cp := *r
	s.data[r.MatchID] = &cp
	return nil
}

// InsertBulk adds multiple rows atomically. Fails entire batch on any duplicate.
func (s *FeatureStore) InsertBulk(_ context.Context, rows []*domain.FeatureRow) error {
	if len(rows) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batchKeys := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		if r == nil || r.MatchID == "" {
			return storage.ErrInvalidInput
		}
		if _, exists := s.data[r.MatchID]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[r.MatchID]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[r.MatchID] = struct{}{}
	}

	for _, r := range rows {
		cp := *r
		s.data[r.MatchID] = &cp
	}

	return nil
}

// GetByMatchID retrieves the row for a match. Returns ErrNotFound if not exists.
func (s *FeatureStore) GetByMatchID(_ context.Context, matchID string) (*domain.FeatureRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, exists := s.data[matchID]
	if !exists {
		return nil, storage.ErrNotFound
	}

	cp := *r
	return &cp, nil
}

// GetByTeam retrieves all rows where the team played either side,
// ordered by date ASC, match_id ASC.
func (s *FeatureStore) GetByTeam(_ context.Context, team string) ([]*domain.FeatureRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.FeatureRow
	for _, r := range s.data {
		if r.HomeTeam == team || r.AwayTeam == team {
			cp := *r
			result = append(result, &cp)
		}
	}

	sortFeatureRows(result)
	return result, nil
}

// GetAll retrieves all rows, ordered by date ASC, match_id ASC.
func (s *FeatureStore) GetAll(_ context.Context) ([]*domain.FeatureRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.FeatureRow, 0, len(s.data))
	for _, r := range s.data {
		cp := *r
		result = append(result, &cp)
	}

	sortFeatureRows(result)
	return result, nil
}

// Count returns the number of stored rows.
func (s *FeatureStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data), nil
}

// DeleteAll removes every row.
func (s *FeatureStore) DeleteAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string]*domain.FeatureRow)
	return nil
}

func sortFeatureRows(rows []*domain.FeatureRow) {
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Date.Equal(rows[j].Date) {
			return rows[i].Date.Before(rows[j].Date)
		}
		return rows[i].MatchID < rows[j].MatchID
	})
}

var _ storage.FeatureStore = (*FeatureStore)(nil)
