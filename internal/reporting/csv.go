package reporting

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sslp23/world-cup-sim-26/internal/dataset"
	"github.com/sslp23/world-cup-sim-26/internal/domain"
	"github.com/sslp23/world-cup-sim-26/internal/metrics"
)

// LabelColumns are the outcome label columns, emitted only on request.
var LabelColumns = []string{
	"home_points_won", "away_points_won",
	"home_points_weighted", "away_points_weighted",
}

// FeatureColumns returns the feature table CSV header: the ranked database
// columns, then rank_dif and the home/away feature block. Labels sit between
// the match columns and the feature block so the default layout is unchanged
// when they are off.
func FeatureColumns(includeLabels bool) []string {
	cols := append([]string{}, dataset.RankedColumns...)
	if includeLabels {
		cols = append(cols, LabelColumns...)
	}
	return append(cols, metrics.ColumnNames()...)
}

// WriteFeatureCSV renders the feature table, one row per feature row in the
// given order. NULL cells render empty. Team and venue names may contain
// commas, so rows go through encoding/csv rather than plain joins.
func WriteFeatureCSV(w io.Writer, rows []*domain.FeatureRow, includeLabels bool) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(FeatureColumns(includeLabels)); err != nil {
		return fmt.Errorf("write feature header: %w", err)
	}

	for _, r := range rows {
		if err := cw.Write(featureRecord(r, includeLabels)); err != nil {
			return fmt.Errorf("write feature row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// SaveFeatureCSV writes the feature table to a file path.
func SaveFeatureCSV(path string, rows []*domain.FeatureRow, includeLabels bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create feature file: %w", err)
	}
	if err := WriteFeatureCSV(f, rows, includeLabels); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func featureRecord(r *domain.FeatureRow, includeLabels bool) []string {
	record := []string{
		r.MatchID,
		r.Date.Format(reportDateLayout),
		r.HomeTeam,
		r.AwayTeam,
		formatOptInt(r.HomeGoals),
		formatOptInt(r.AwayGoals),
		r.Tournament,
		r.City,
		r.Country,
		strconv.FormatBool(r.Neutral),
		formatOptFloat(r.HomeRank),
		formatOptFloat(r.HomeRankPoints),
		formatOptFloat(r.AwayRank),
		formatOptFloat(r.AwayRankPoints),
	}
	if includeLabels {
		record = append(record,
			formatOptInt(r.HomePointsWon),
			formatOptInt(r.AwayPointsWon),
			formatOptFloat(r.HomePointsWeighted),
			formatOptFloat(r.AwayPointsWeighted),
		)
	}
	record = append(record, formatOptFloat(r.RankDif))
	for _, cell := range r.Home.Fields() {
		record = append(record, formatOptFloat(cell))
	}
	for _, cell := range r.Away.Fields() {
		record = append(record, formatOptFloat(cell))
	}
	return record
}

func formatOptInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatOptFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}
