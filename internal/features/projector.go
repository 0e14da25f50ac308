package features

import "github.com/sslp23/world-cup-sim-26/internal/domain"

// Project expands matches into team observations, two per match: one from
// the home team's perspective and one from the away team's. Input matches
// are never mutated; observations carry copies of the nullable fields.
func Project(matches []*domain.Match) []*domain.TeamObservation {
	obs := make([]*domain.TeamObservation, 0, len(matches)*2)
	for _, m := range matches {
		home, away := ProjectMatch(m)
		obs = append(obs, home, away)
	}
	return obs
}

// ProjectMatch derives the two perspectives of one match. Goals and points
// are mirrored: the home observation's goals_for is home_goals, the away
// observation's goals_for is away_goals. Unplayed matches yield observations
// with NULL goals and points; they still carry date, ranks and opponent.
func ProjectMatch(m *domain.Match) (home, away *domain.TeamObservation) {
	home = &domain.TeamObservation{
		Team:         m.HomeTeam,
		Opponent:     m.AwayTeam,
		MatchID:      m.MatchID,
		Date:         m.Date,
		Home:         true,
		GoalsFor:     clonePtr(m.HomeGoals),
		GoalsAgainst: clonePtr(m.AwayGoals),
		OwnRank:      clonePtr(m.HomeRank),
		OpponentRank: clonePtr(m.AwayRank),
	}
	away = &domain.TeamObservation{
		Team:         m.AwayTeam,
		Opponent:     m.HomeTeam,
		MatchID:      m.MatchID,
		Date:         m.Date,
		Home:         false,
		GoalsFor:     clonePtr(m.AwayGoals),
		GoalsAgainst: clonePtr(m.HomeGoals),
		OwnRank:      clonePtr(m.AwayRank),
		OpponentRank: clonePtr(m.HomeRank),
	}

	if m.Resolved() {
		homePoints := domain.PointsWon(*m.HomeGoals, *m.AwayGoals)
		awayPoints := domain.PointsWon(*m.AwayGoals, *m.HomeGoals)
		home.PointsWon = &homePoints
		away.PointsWon = &awayPoints
	}

	return home, away
}

// clonePtr copies a nullable value so observations never alias match fields.
func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
