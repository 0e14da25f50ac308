package pipeline

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sslp23/world-cup-sim-26/internal/domain"
)

// rankedMatches builds n resolved, fully ranked matches on consecutive days.
func rankedMatches(n int) []*domain.Match {
	matches := make([]*domain.Match, n)
	for i := 0; i < n; i++ {
		hg, ag := (i%3)+1, i%2
		hr, ar := float64(i%30+1), float64(i%25+2)
		matches[i] = &domain.Match{
			MatchID:   fmt.Sprintf("m%03d", i),
			Date:      time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			HomeTeam:  "Team A",
			AwayTeam:  "Team B",
			HomeGoals: &hg,
			AwayGoals: &ag,
			HomeRank:  &hr,
			AwayRank:  &ar,
		}
	}
	return matches
}

func TestSufficiencyChecker_AllPass(t *testing.T) {
	result := NewSufficiencyChecker().Check(rankedMatches(120))

	require.Len(t, result.Checks, 5)
	assert.True(t, result.AllPass)
	assert.Empty(t, result.Errors)

	names := []string{
		"Minimum match count",
		"Rank coverage",
		"Resolved share",
		"Duplicate match IDs",
		"Chronological order violations",
	}
	for i, check := range result.Checks {
		assert.Equal(t, names[i], check.Name)
		assert.True(t, check.Pass, "check %q should pass", check.Name)
	}
}

func TestSufficiencyChecker_MatchCountBelowMinimum(t *testing.T) {
	result := NewSufficiencyChecker().Check(rankedMatches(40))

	assert.False(t, result.AllPass)
	assert.False(t, result.Checks[0].Pass)
	assert.Equal(t, ">= 100", result.Checks[0].Threshold)
	assert.Equal(t, "40", result.Checks[0].Actual)

	// The remaining checks still pass on their own terms.
	for _, check := range result.Checks[1:] {
		assert.True(t, check.Pass, "check %q should pass", check.Name)
	}
}

func TestSufficiencyChecker_WithMinMatches(t *testing.T) {
	checker := NewSufficiencyChecker().WithMinMatches(10)
	result := checker.Check(rankedMatches(12))

	assert.True(t, result.AllPass)
	assert.Equal(t, ">= 10", result.Checks[0].Threshold)
}

func TestSufficiencyChecker_RankCoverage(t *testing.T) {
	// 13 matches without ranks leave 214 of 240 cells defined, just under 90%.
	matches := rankedMatches(120)
	for i := 0; i < 13; i++ {
		matches[i].HomeRank = nil
		matches[i].AwayRank = nil
	}
	result := NewSufficiencyChecker().Check(matches)

	assert.False(t, result.AllPass)
	assert.False(t, result.Checks[1].Pass)
	assert.Equal(t, "89.2% (214/240)", result.Checks[1].Actual)

	// 12 stripped matches put coverage exactly at the threshold.
	matches = rankedMatches(120)
	for i := 0; i < 12; i++ {
		matches[i].HomeRank = nil
		matches[i].AwayRank = nil
	}
	result = NewSufficiencyChecker().Check(matches)
	assert.True(t, result.Checks[1].Pass)
}

func TestSufficiencyChecker_ResolvedShare(t *testing.T) {
	// 61 unplayed fixtures leave 59 of 120 resolved, just under 50%.
	matches := rankedMatches(120)
	for i := 0; i < 61; i++ {
		matches[i].HomeGoals = nil
		matches[i].AwayGoals = nil
	}
	result := NewSufficiencyChecker().Check(matches)

	assert.False(t, result.AllPass)
	assert.False(t, result.Checks[2].Pass)
	assert.Equal(t, "49.2% (59/120)", result.Checks[2].Actual)
}

func TestSufficiencyChecker_DuplicateIDs(t *testing.T) {
	matches := rankedMatches(120)
	matches[5].MatchID = matches[4].MatchID

	result := NewSufficiencyChecker().Check(matches)

	assert.False(t, result.AllPass)
	assert.False(t, result.Checks[3].Pass)
	assert.Equal(t, "1", result.Checks[3].Actual)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "duplicate match_id: m004 (count=2)", result.Errors[0])
}

func TestSufficiencyChecker_ChronologyViolation(t *testing.T) {
	matches := rankedMatches(120)
	matches[10].Date, matches[11].Date = matches[11].Date, matches[10].Date

	result := NewSufficiencyChecker().Check(matches)

	assert.False(t, result.AllPass)
	assert.False(t, result.Checks[4].Pass)
	assert.Equal(t, "1", result.Checks[4].Actual)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "m011")
	assert.Contains(t, result.Errors[0], "m010")
}

func TestSufficiencyChecker_Empty(t *testing.T) {
	result := NewSufficiencyChecker().Check(nil)

	assert.False(t, result.AllPass)
	assert.Equal(t, "no rank cells", result.Checks[1].Actual)
	assert.Equal(t, "no matches", result.Checks[2].Actual)
	// Duplicate and ordering checks are vacuously clean.
	assert.True(t, result.Checks[3].Pass)
	assert.True(t, result.Checks[4].Pass)
	assert.Empty(t, result.Errors)
}
