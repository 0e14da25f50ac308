package dataset

import (
	"fmt"
	"sort"
	"time"

	"github.com/sslp23/world-cup-sim-26/internal/domain"
	"github.com/sslp23/world-cup-sim-26/internal/idhash"
	"github.com/sslp23/world-cup-sim-26/internal/rankings"
)

// DefaultCutoff is the first date of the modeling window. Matches before it
// are dropped during a build.
var DefaultCutoff = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

// Builder joins raw results with the ranking table into the ranked match
// database the feature engine consumes.
type Builder struct {
	table  *rankings.Table
	cutoff time.Time
}

// NewBuilder creates a builder over a ranking table. A zero cutoff selects
// DefaultCutoff.
func NewBuilder(table *rankings.Table, cutoff time.Time) *Builder {
	if cutoff.IsZero() {
		cutoff = DefaultCutoff
	}
	return &Builder{table: table, cutoff: cutoff.UTC()}
}

// BuildResult summarizes one build pass.
type BuildResult struct {
	Matches       []*domain.Match
	TotalRead     int
	Kept          int
	CutoffDropped int
	MissingRanks  int      // rank cells left NULL
	UnrankedTeams []string // teams with at least one unresolved rank cell, sorted
}

// Build validates and filters matches to date >= cutoff, resolves both
// sides' ranks with as-of semantics and assigns deterministic match IDs.
// A match whose team has no rank at its date is kept with NULL rank cells
// rather than dropped; the result reports how many cells stayed unresolved.
// Input matches are not mutated and input order is preserved.
func (b *Builder) Build(matches []*domain.Match) (*BuildResult, error) {
	for i, m := range matches {
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}

	res := &BuildResult{TotalRead: len(matches)}
	unranked := make(map[string]bool)

	for _, m := range matches {
		if m.Date.Before(b.cutoff) {
			res.CutoffDropped++
			continue
		}

		ranked := *m
		ranked.MatchID = idhash.ComputeMatchID(m.Date, m.HomeTeam, m.AwayTeam)

		if s := b.table.RankAt(m.HomeTeam, m.Date); s != nil {
			rank, points := s.Rank, s.Points
			ranked.HomeRank, ranked.HomeRankPoints = &rank, &points
		} else {
			ranked.HomeRank, ranked.HomeRankPoints = nil, nil
			res.MissingRanks++
			unranked[m.HomeTeam] = true
		}
		if s := b.table.RankAt(m.AwayTeam, m.Date); s != nil {
			rank, points := s.Rank, s.Points
			ranked.AwayRank, ranked.AwayRankPoints = &rank, &points
		} else {
			ranked.AwayRank, ranked.AwayRankPoints = nil, nil
			res.MissingRanks++
			unranked[m.AwayTeam] = true
		}

		res.Matches = append(res.Matches, &ranked)
	}

	res.Kept = len(res.Matches)
	res.UnrankedTeams = make([]string, 0, len(unranked))
	for team := range unranked {
		res.UnrankedTeams = append(res.UnrankedTeams, team)
	}
	sort.Strings(res.UnrankedTeams)

	return res, nil
}
