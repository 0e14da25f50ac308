package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrMalformedMatch marks a match row that fails structural validation.
var ErrMalformedMatch = errors.New("malformed match")

// Match represents one fixture between two national teams, with each side's
// FIFA ranking as of the match date pre-joined by the dataset builder.
// Corresponds to matches table in PostgreSQL/SQLite.
type Match struct {
	MatchID        string    // PRIMARY KEY, deterministic hash of (date, home, away)
	Date           time.Time // match date, UTC midnight
	HomeTeam       string
	AwayTeam       string
	HomeGoals      *int     // NULL for unplayed fixtures
	AwayGoals      *int     // NULL for unplayed fixtures
	HomeRank       *float64 // rank as of Date, lower = stronger, NULL if unavailable
	AwayRank       *float64 // rank as of Date, NULL if unavailable
	HomeRankPoints *float64 // FIFA rating points as of Date, NULL if unavailable
	AwayRankPoints *float64 // FIFA rating points as of Date, NULL if unavailable
	Tournament     string
	City           string
	Country        string
	Neutral        bool // played at a neutral venue
}

// Resolved reports whether the match has a recorded result. Goals are either
// both present or both absent; Validate enforces that.
func (m *Match) Resolved() bool {
	return m.HomeGoals != nil && m.AwayGoals != nil
}

// Validate checks the structural invariants of a match row: date and both
// team identifiers present, goals fully present or fully absent, goals
// non-negative. Failures wrap ErrMalformedMatch and name the failing field.
func (m *Match) Validate() error {
	if m.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrMalformedMatch)
	}
	if m.HomeTeam == "" {
		return fmt.Errorf("%w: missing home_team", ErrMalformedMatch)
	}
	if m.AwayTeam == "" {
		return fmt.Errorf("%w: missing away_team", ErrMalformedMatch)
	}
	if (m.HomeGoals == nil) != (m.AwayGoals == nil) {
		return fmt.Errorf("%w: partial score (home_goals and away_goals must be present together)", ErrMalformedMatch)
	}
	if m.HomeGoals != nil && *m.HomeGoals < 0 {
		return fmt.Errorf("%w: negative home_goals", ErrMalformedMatch)
	}
	if m.AwayGoals != nil && *m.AwayGoals < 0 {
		return fmt.Errorf("%w: negative away_goals", ErrMalformedMatch)
	}
	return nil
}

// PointsWon returns the points a team earns for a result: 3 for a win,
// 1 for a draw, 0 for a loss.
func PointsWon(goalsFor, goalsAgainst int) int {
	switch {
	case goalsFor > goalsAgainst:
		return 3
	case goalsFor == goalsAgainst:
		return 1
	default:
		return 0
	}
}
