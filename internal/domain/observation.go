package domain

import "time"

// TeamObservation is one team's view of one match. Exactly two observations
// mirror each match (home and away perspective). They exist only inside a
// feature pass and are never persisted.
type TeamObservation struct {
	Team         string
	Opponent     string
	MatchID      string
	Date         time.Time // match date, UTC midnight
	Home         bool      // team played at home
	GoalsFor     *int      // NULL if the match is unplayed
	GoalsAgainst *int      // NULL if the match is unplayed
	OwnRank      *float64  // NULL if no ranking at Date
	OpponentRank *float64  // NULL if no ranking at Date
	PointsWon    *int      // 3 win / 1 draw / 0 loss, NULL if unplayed
}

// Resolved reports whether the observation carries a result and can feed
// rolling form windows.
func (o *TeamObservation) Resolved() bool {
	return o.GoalsFor != nil && o.GoalsAgainst != nil
}
