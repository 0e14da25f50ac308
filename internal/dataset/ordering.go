package dataset

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sslp23/world-cup-sim-26/internal/domain"
)

// ErrInvalidOrdering is returned when matches are not in chronological order.
var ErrInvalidOrdering = errors.New("matches are not in chronological order")

// SortMatches orders matches by date ascending. The sort is stable so
// same-date matches keep their source order, which fixes their relative
// contribution order inside rolling windows.
func SortMatches(matches []*domain.Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Date.Before(matches[j].Date)
	})
}

// ValidateOrdering checks that match dates never decrease.
// Returns ErrInvalidOrdering naming the first offending row if they do.
func ValidateOrdering(matches []*domain.Match) error {
	for i := 1; i < len(matches); i++ {
		if matches[i].Date.Before(matches[i-1].Date) {
			return fmt.Errorf("%w: row %d (%s) precedes row %d (%s)",
				ErrInvalidOrdering,
				i, matches[i].Date.Format(dateLayout),
				i-1, matches[i-1].Date.Format(dateLayout))
		}
	}
	return nil
}
