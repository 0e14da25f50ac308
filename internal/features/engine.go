package features

import (
	"fmt"

	"github.com/sslp23/world-cup-sim-26/internal/domain"
)

// Engine assembles the per-match feature table: project matches into team
// observations, index each team's history, then join both sides' strict-prior
// form back onto every match row. The engine holds no per-run state; Run may
// be called repeatedly and from multiple goroutines.
type Engine struct {
	weighting Weighting
}

// NewEngine creates an engine with the given weighting transform. A nil
// weighting selects the default inverse-rank scheme.
func NewEngine(weighting Weighting) *Engine {
	if weighting == nil {
		weighting = DefaultWeighting()
	}
	return &Engine{weighting: weighting}
}

// Weighting returns the transform the engine applies to weighted features
// and labels.
func (e *Engine) Weighting() Weighting {
	return e.weighting
}

// Run produces exactly one FeatureRow per input match, in input order.
// Structural validation runs first over all rows and aborts the pass on the
// first malformed match, identifying the offending row. Unplayed matches
// still get a row; their own history simply excludes them.
func (e *Engine) Run(matches []*domain.Match) ([]*domain.FeatureRow, error) {
	for i, m := range matches {
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}

	obs := Project(matches)
	idx := BuildHistoryIndex(obs, e.weighting)

	rows := make([]*domain.FeatureRow, len(matches))
	for i, m := range matches {
		row := &domain.FeatureRow{Match: *m}
		row.Home = idx.FeaturesBefore(m.HomeTeam, m.Date)
		row.Away = idx.FeaturesBefore(m.AwayTeam, m.Date)

		if m.HomeRank != nil && m.AwayRank != nil {
			dif := *m.HomeRank - *m.AwayRank
			row.RankDif = &dif
		}

		e.attachLabels(row, m)
		rows[i] = row
	}
	return rows, nil
}

// attachLabels fills the current-match outcome labels. These describe the
// match itself, not prior form, and stay NULL for unplayed fixtures. The
// weighted labels additionally require the opponent's rank.
func (e *Engine) attachLabels(row *domain.FeatureRow, m *domain.Match) {
	if !m.Resolved() {
		return
	}

	homePoints := domain.PointsWon(*m.HomeGoals, *m.AwayGoals)
	awayPoints := domain.PointsWon(*m.AwayGoals, *m.HomeGoals)
	row.HomePointsWon = &homePoints
	row.AwayPointsWon = &awayPoints

	if m.AwayRank != nil {
		v := e.weighting.Apply(float64(homePoints), *m.AwayRank)
		row.HomePointsWeighted = &v
	}
	if m.HomeRank != nil {
		v := e.weighting.Apply(float64(awayPoints), *m.HomeRank)
		row.AwayPointsWeighted = &v
	}
}
