package features

import (
	"sort"
	"time"

	"github.com/sslp23/world-cup-sim-26/internal/domain"
)

// Rolling window sizes. The output schema is fixed around these two.
const (
	WindowShort = 3
	WindowLong  = 5
)

// teamSeries holds one team's resolved observations in date order together
// with the precomputed feature vector after every prefix: vecs[k] is the
// form computed from the first k observations, vecs[0] being all-NULL.
type teamSeries struct {
	dates []time.Time
	vecs  []domain.FeatureVector
}

// HistoryIndex answers "what was this team's form strictly before date" in
// O(log n) per query. It is built once per feature pass from the projected
// observations and is read-only afterwards, so concurrent lookups are safe.
type HistoryIndex struct {
	series map[string]*teamSeries
}

// BuildHistoryIndex groups resolved observations by team, sorts each group
// by date (stable, so same-date observations keep their source order) and
// precomputes the rolling statistics along every stream in a single walk.
// Unresolved observations never enter a stream.
func BuildHistoryIndex(obs []*domain.TeamObservation, weighting Weighting) *HistoryIndex {
	if weighting == nil {
		weighting = DefaultWeighting()
	}

	byTeam := make(map[string][]*domain.TeamObservation)
	for _, o := range obs {
		if !o.Resolved() {
			continue
		}
		byTeam[o.Team] = append(byTeam[o.Team], o)
	}

	idx := &HistoryIndex{series: make(map[string]*teamSeries, len(byTeam))}
	for team, list := range byTeam {
		sorted := make([]*domain.TeamObservation, len(list))
		copy(sorted, list)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Date.Before(sorted[j].Date)
		})
		idx.series[team] = buildSeries(sorted, weighting)
	}
	return idx
}

func buildSeries(obs []*domain.TeamObservation, weighting Weighting) *teamSeries {
	s := &teamSeries{
		dates: make([]time.Time, len(obs)),
		vecs:  make([]domain.FeatureVector, len(obs)+1),
	}

	long := newWindow(WindowLong)
	short := newWindow(WindowShort)

	for i, o := range obs {
		s.dates[i] = o.Date

		e := windowEntry{
			points:       float64(*o.PointsWon),
			goalsFor:     float64(*o.GoalsFor),
			goalsAgainst: float64(*o.GoalsAgainst),
		}
		if o.OpponentRank != nil {
			e.ranked = true
			e.wPoints = weighting.Apply(e.points, *o.OpponentRank)
			e.wGoalsFor = weighting.Apply(e.goalsFor, *o.OpponentRank)
			e.wGoalsAgainst = weighting.Apply(e.goalsAgainst, *o.OpponentRank)
		}

		long.push(e)
		short.push(e)
		s.vecs[i+1] = snapshot(long, short)
	}
	return s
}

func snapshot(long, short *window) domain.FeatureVector {
	return domain.FeatureVector{
		PointsMA5:                long.meanPoints(),
		PointsMA3:                short.meanPoints(),
		PointsWeightedMA5:        long.meanWeightedPoints(),
		PointsWeightedMA3:        short.meanWeightedPoints(),
		GoalsMA5:                 long.meanGoalsFor(),
		GoalsMA3:                 short.meanGoalsFor(),
		GoalsSufferedMA5:         long.meanGoalsAgainst(),
		GoalsSufferedMA3:         short.meanGoalsAgainst(),
		GoalsWeightedMA5:         long.meanWeightedGoalsFor(),
		GoalsWeightedMA3:         short.meanWeightedGoalsFor(),
		GoalsSufferedWeightedMA5: long.meanWeightedGoalsAgainst(),
		GoalsSufferedWeightedMA3: short.meanWeightedGoalsAgainst(),
	}
}

// FeaturesBefore returns the form of team computed from its resolved
// observations with date strictly before the query date. Same-date matches
// are excluded, including a second match the team plays on the query date.
// A team with no qualifying history yields the all-NULL vector.
func (idx *HistoryIndex) FeaturesBefore(team string, date time.Time) domain.FeatureVector {
	s, ok := idx.series[team]
	if !ok {
		return domain.FeatureVector{}
	}
	return s.vecs[s.priorCount(date)]
}

// PriorCount returns how many resolved observations team has strictly
// before date.
func (idx *HistoryIndex) PriorCount(team string, date time.Time) int {
	s, ok := idx.series[team]
	if !ok {
		return 0
	}
	return s.priorCount(date)
}

// Teams returns every indexed team name, sorted.
func (idx *HistoryIndex) Teams() []string {
	teams := make([]string, 0, len(idx.series))
	for team := range idx.series {
		teams = append(teams, team)
	}
	sort.Strings(teams)
	return teams
}

// priorCount locates the strict-prior boundary: the number of observation
// dates before the query date.
func (s *teamSeries) priorCount(date time.Time) int {
	return sort.Search(len(s.dates), func(i int) bool {
		return !s.dates[i].Before(date)
	})
}
