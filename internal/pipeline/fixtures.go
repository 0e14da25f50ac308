package pipeline

import (
	"context"
	"time"

	"github.com/sslp23/world-cup-sim-26/internal/domain"
	"github.com/sslp23/world-cup-sim-26/internal/idhash"
	"github.com/sslp23/world-cup-sim-26/internal/storage"
)

// FixtureMatches returns the built-in demo dataset: a ranked slice of
// international matches plus two unplayed 2026 fixtures, in chronological
// order. IDs are assigned the same way a real build assigns them.
func FixtureMatches() []*domain.Match {
	matches := []*domain.Match{
		{
			Date:     day(2023, 3, 23),
			HomeTeam: "Germany", AwayTeam: "Japan",
			HomeGoals: intp(2), AwayGoals: intp(3),
			HomeRank: floatp(14), AwayRank: floatp(20),
			HomeRankPoints: floatp(1637.7), AwayRankPoints: floatp(1620.1),
			Tournament: "Friendly", City: "Wolfsburg", Country: "Germany",
		},
		{
			Date:     day(2023, 3, 24),
			HomeTeam: "France", AwayTeam: "Spain",
			HomeGoals: intp(4), AwayGoals: intp(0),
			HomeRank: floatp(4), AwayRank: floatp(8),
			HomeRankPoints: floatp(1845.4), AwayRankPoints: floatp(1732.6),
			Tournament: "Friendly", City: "Paris", Country: "France",
		},
		{
			Date:     day(2023, 6, 15),
			HomeTeam: "Japan", AwayTeam: "Spain",
			HomeGoals: intp(1), AwayGoals: intp(1),
			HomeRank: floatp(20), AwayRank: floatp(8),
			HomeRankPoints: floatp(1620.1), AwayRankPoints: floatp(1732.6),
			Tournament: "Kirin Challenge Cup", City: "Osaka", Country: "Japan",
		},
		{
			Date:     day(2023, 6, 16),
			HomeTeam: "Germany", AwayTeam: "France",
			HomeGoals: intp(0), AwayGoals: intp(1),
			HomeRank: floatp(14), AwayRank: floatp(4),
			HomeRankPoints: floatp(1637.7), AwayRankPoints: floatp(1845.4),
			Tournament: "Friendly", City: "Frankfurt", Country: "Germany",
		},
		{
			Date:     day(2023, 9, 8),
			HomeTeam: "Brazil", AwayTeam: "Bolivia",
			HomeGoals: intp(5), AwayGoals: intp(1),
			HomeRank: floatp(3), AwayRank: floatp(83),
			HomeRankPoints: floatp(1837.6), AwayRankPoints: floatp(1308.0),
			Tournament: "FIFA World Cup qualification", City: "Belém", Country: "Brazil",
		},
		{
			Date:     day(2023, 9, 12),
			HomeTeam: "Spain", AwayTeam: "France",
			HomeGoals: intp(2), AwayGoals: intp(0),
			HomeRank: floatp(8), AwayRank: floatp(4),
			HomeRankPoints: floatp(1732.6), AwayRankPoints: floatp(1845.4),
			Tournament: "Friendly", City: "Seville", Country: "Spain",
		},
		{
			Date:     day(2023, 10, 17),
			HomeTeam: "Germany", AwayTeam: "Brazil",
			HomeGoals: intp(2), AwayGoals: intp(2),
			HomeRank: floatp(14), AwayRank: floatp(3),
			HomeRankPoints: floatp(1637.7), AwayRankPoints: floatp(1837.6),
			Tournament: "Friendly", City: "Philadelphia", Country: "United States",
			Neutral: true,
		},
		{
			Date:     day(2023, 11, 21),
			HomeTeam: "Brazil", AwayTeam: "Argentina",
			HomeGoals: intp(0), AwayGoals: intp(1),
			HomeRank: floatp(3), AwayRank: floatp(1),
			HomeRankPoints: floatp(1837.6), AwayRankPoints: floatp(1855.2),
			Tournament: "FIFA World Cup qualification", City: "Rio de Janeiro", Country: "Brazil",
		},
		{
			Date:     day(2024, 3, 26),
			HomeTeam: "France", AwayTeam: "Germany",
			HomeGoals: intp(3), AwayGoals: intp(2),
			HomeRank: floatp(4), AwayRank: floatp(14),
			HomeRankPoints: floatp(1845.4), AwayRankPoints: floatp(1637.7),
			Tournament: "Friendly", City: "Lyon", Country: "France",
		},
		{
			Date:     day(2024, 6, 9),
			HomeTeam: "Argentina", AwayTeam: "Japan",
			HomeGoals: intp(2), AwayGoals: intp(0),
			HomeRank: floatp(1), AwayRank: floatp(20),
			HomeRankPoints: floatp(1855.2), AwayRankPoints: floatp(1620.1),
			Tournament: "Friendly", City: "East Rutherford", Country: "United States",
			Neutral: true,
		},
		{
			Date:     day(2026, 6, 11),
			HomeTeam: "France", AwayTeam: "Brazil",
			HomeRank: floatp(4), AwayRank: floatp(3),
			HomeRankPoints: floatp(1845.4), AwayRankPoints: floatp(1837.6),
			Tournament: "FIFA World Cup", City: "Guadalajara", Country: "Mexico",
			Neutral: true,
		},
		{
			Date:     day(2026, 6, 12),
			HomeTeam: "Argentina", AwayTeam: "Germany",
			HomeRank: floatp(1), AwayRank: floatp(14),
			HomeRankPoints: floatp(1855.2), AwayRankPoints: floatp(1637.7),
			Tournament: "FIFA World Cup", City: "Houston", Country: "United States",
			Neutral: true,
		},
	}

	for _, m := range matches {
		m.MatchID = idhash.ComputeMatchID(m.Date, m.HomeTeam, m.AwayTeam)
	}
	return matches
}

// LoadFixtures replaces the match store contents with the demo dataset.
func LoadFixtures(ctx context.Context, store storage.MatchStore) error {
	if err := store.DeleteAll(ctx); err != nil {
		return err
	}
	return store.InsertBulk(ctx, FixtureMatches())
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func intp(v int) *int { return &v }

func floatp(v float64) *float64 { return &v }
