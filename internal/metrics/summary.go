package metrics

import (
	"sort"
	"time"

	"github.com/sslp23/world-cup-sim-26/internal/domain"
)

// Summary describes a computed feature table: row counts, date coverage and
// per-column definedness. It backs the data quality section of the report.
type Summary struct {
	TotalRows     int
	ResolvedRows  int // rows with a final score
	FixtureRows   int // rows still awaiting a result
	RankedRows    int // rows with both ranks present
	ColdStartRows int // rows where at least one side has no prior history
	Teams         int
	DateFrom      time.Time
	DateTo        time.Time
	Columns       []ColumnStats
}

// ColumnStats summarizes one numeric output column. NULL cells are excluded;
// a column nobody defines reports zero stats with Coverage 0.
type ColumnStats struct {
	Name     string
	Defined  int
	Coverage float64 // Defined / TotalRows
	Mean     float64
	Median   float64
	Min      float64
	Max      float64
	Stddev   float64
}

// Summarize computes the table summary over assembled feature rows.
func Summarize(rows []*domain.FeatureRow) *Summary {
	s := &Summary{TotalRows: len(rows)}
	if len(rows) == 0 {
		return s
	}

	teams := make(map[string]bool)
	s.DateFrom, s.DateTo = rows[0].Date, rows[0].Date

	for _, r := range rows {
		if r.Resolved() {
			s.ResolvedRows++
		} else {
			s.FixtureRows++
		}
		if r.HomeRank != nil && r.AwayRank != nil {
			s.RankedRows++
		}
		if r.Home.Empty() || r.Away.Empty() {
			s.ColdStartRows++
		}
		teams[r.HomeTeam] = true
		teams[r.AwayTeam] = true
		if r.Date.Before(s.DateFrom) {
			s.DateFrom = r.Date
		}
		if r.Date.After(s.DateTo) {
			s.DateTo = r.Date
		}
	}

	s.Teams = len(teams)
	s.Columns = columnStats(rows)
	return s
}

// ColumnNames lists the numeric output columns in table order: rank_dif
// followed by the home then away feature fields.
func ColumnNames() []string {
	names := make([]string, 0, 1+2*len(domain.FeatureFieldNames()))
	names = append(names, "rank_dif")
	for _, prefix := range []string{"home_", "away_"} {
		for _, n := range domain.FeatureFieldNames() {
			names = append(names, prefix+n)
		}
	}
	return names
}

// columnCells returns one row's numeric cells in ColumnNames order.
func columnCells(r *domain.FeatureRow) []*float64 {
	cells := make([]*float64, 0, 1+2*len(domain.FeatureFieldNames()))
	cells = append(cells, r.RankDif)
	cells = append(cells, r.Home.Fields()...)
	cells = append(cells, r.Away.Fields()...)
	return cells
}

func columnStats(rows []*domain.FeatureRow) []ColumnStats {
	names := ColumnNames()
	values := make([][]float64, len(names))

	for _, r := range rows {
		for i, cell := range columnCells(r) {
			if cell != nil {
				values[i] = append(values[i], *cell)
			}
		}
	}

	stats := make([]ColumnStats, len(names))
	for i, name := range names {
		vals := values[i]
		col := ColumnStats{Name: name, Defined: len(vals)}
		col.Coverage = float64(len(vals)) / float64(len(rows))
		if len(vals) > 0 {
			sorted := make([]float64, len(vals))
			copy(sorted, vals)
			sort.Float64s(sorted)

			col.Mean = computeMean(vals)
			col.Stddev = computeStddev(vals, col.Mean)
			col.Median = computePercentile(sorted, 0.50)
			col.Min = sorted[0]
			col.Max = sorted[len(sorted)-1]
		}
		stats[i] = col
	}
	return stats
}
