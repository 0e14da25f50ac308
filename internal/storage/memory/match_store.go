package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sslp23/world-cup-sim-26/internal/domain"
	"github.com/sslp23/world-cup-sim-26/internal/storage"
)

// MatchStore is an in-memory implementation of storage.MatchStore.
type MatchStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Match // keyed by match_id
}

// NewMatchStore creates a new in-memory match store.
func NewMatchStore() *MatchStore {
	return &MatchStore{
		data: make(map[string]*domain.Match),
	}
}

// Insert adds a new match. Returns ErrDuplicateKey if match_id exists.
func (s *MatchStore) Insert(_ context.Context, m *domain.Match) error {
	if m == nil || m.MatchID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[m.MatchID]; exists {
		return storage.ErrDuplicateKey
	}

	cp := *m
	s.data[m.MatchID] = &cp
	return nil
}

// InsertBulk adds multiple matches atomically. Fails entire batch on any duplicate.
func (s *MatchStore) InsertBulk(_ context.Context, matches []*domain.Match) error {
	if len(matches) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// First pass: check for duplicates (existing + intra-batch)
	batchKeys := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		if m == nil || m.MatchID == "" {
			return storage.ErrInvalidInput
		}
		if _, exists := s.data[m.MatchID]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[m.MatchID]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[m.MatchID] = struct{}{}
	}

	// Second pass: insert all
	for _, m := range matches {
		cp := *m
		s.data[m.MatchID] = &cp
	}

	return nil
}

// GetByID retrieves a match by its ID. Returns ErrNotFound if not exists.
func (s *MatchStore) GetByID(_ context.Context, matchID string) (*domain.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, exists := s.data[matchID]
	if !exists {
		return nil, storage.ErrNotFound
	}

	cp := *m
	return &cp, nil
}

// GetByTeam retrieves all matches where the team played either side,
// ordered by date ASC, match_id ASC.
func (s *MatchStore) GetByTeam(_ context.Context, team string) ([]*domain.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Match
	for _, m := range s.data {
		if m.HomeTeam == team || m.AwayTeam == team {
			cp := *m
			result = append(result, &cp)
		}
	}

	sortMatches(result)
	return result, nil
}

// GetByDateRange retrieves matches within [from, to] (inclusive),
// ordered by date ASC, match_id ASC.
func (s *MatchStore) GetByDateRange(_ context.Context, from, to time.Time) ([]*domain.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Match
	for _, m := range s.data {
		if !m.Date.Before(from) && !m.Date.After(to) {
			cp := *m
			result = append(result, &cp)
		}
	}

	sortMatches(result)
	return result, nil
}

// GetAll retrieves all matches, ordered by date ASC, match_id ASC.
func (s *MatchStore) GetAll(_ context.Context) ([]*domain.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Match, 0, len(s.data))
	for _, m := range s.data {
		cp := *m
		result = append(result, &cp)
	}

	sortMatches(result)
	return result, nil
}

// Count returns the number of stored matches.
func (s *MatchStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data), nil
}

// DeleteAll removes every match.
func (s *MatchStore) DeleteAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string]*domain.Match)
	return nil
}

// sortMatches orders by date ASC, match_id ASC so map iteration order
// never leaks into results.
func sortMatches(matches []*domain.Match) {
	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].Date.Equal(matches[j].Date) {
			return matches[i].Date.Before(matches[j].Date)
		}
		return matches[i].MatchID < matches[j].MatchID
	})
}

var _ storage.MatchStore = (*MatchStore)(nil)
