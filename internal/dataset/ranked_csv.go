package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sslp23/world-cup-sim-26/internal/domain"
	"github.com/sslp23/world-cup-sim-26/internal/idhash"
)

// RankedColumns is the ranked database CSV header.
var RankedColumns = []string{
	"match_id", "date", "home_team", "away_team",
	"home_goals", "away_goals",
	"tournament", "city", "country", "neutral",
	"home_rank", "home_rank_points", "away_rank", "away_rank_points",
}

// WriteRankedCSV renders matches as the ranked database CSV, one row per
// match in input order. NULL cells render empty.
func WriteRankedCSV(w io.Writer, matches []*domain.Match) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(RankedColumns); err != nil {
		return fmt.Errorf("write ranked header: %w", err)
	}

	for _, m := range matches {
		record := []string{
			m.MatchID,
			m.Date.Format(dateLayout),
			m.HomeTeam,
			m.AwayTeam,
			formatOptInt(m.HomeGoals),
			formatOptInt(m.AwayGoals),
			m.Tournament,
			m.City,
			m.Country,
			strconv.FormatBool(m.Neutral),
			formatOptFloat(m.HomeRank),
			formatOptFloat(m.HomeRankPoints),
			formatOptFloat(m.AwayRank),
			formatOptFloat(m.AwayRankPoints),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write ranked row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// SaveRankedCSV writes the ranked database to a file path.
func SaveRankedCSV(path string, matches []*domain.Match) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create ranked file: %w", err)
	}
	if err := WriteRankedCSV(f, matches); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadRanked reads a ranked database CSV, or any pre-joined table carrying
// at least date, team and goal columns, back into matches. Rank columns and
// descriptive columns are optional; a missing match_id is recomputed.
func ReadRanked(r io.Reader) ([]*domain.Match, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read ranked header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range []string{"date", "home_team", "away_team", "home_goals", "away_goals"} {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("ranked header missing column %q", name)
		}
	}

	var matches []*domain.Match
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ranked line %d: %w", line, err)
		}

		m, err := parseRankedRow(record, cols)
		if err != nil {
			return nil, fmt.Errorf("ranked line %d: %w", line, err)
		}
		matches = append(matches, m)
	}
	return matches, nil
}

// LoadRanked reads a ranked database CSV from a file path.
func LoadRanked(path string) ([]*domain.Match, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ranked file: %w", err)
	}
	defer f.Close()
	return ReadRanked(f)
}

func parseRankedRow(record []string, cols map[string]int) (*domain.Match, error) {
	cell := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	rawDate := cell("date")
	if rawDate == "" {
		return nil, fmt.Errorf("%w: missing date", domain.ErrMalformedMatch)
	}
	date, err := time.Parse(dateLayout, rawDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", domain.ErrMalformedMatch, rawDate)
	}

	m := &domain.Match{
		MatchID:    cell("match_id"),
		Date:       date.UTC(),
		HomeTeam:   cell("home_team"),
		AwayTeam:   cell("away_team"),
		Tournament: cell("tournament"),
		City:       cell("city"),
		Country:    cell("country"),
	}

	if m.HomeGoals, err = parseOptGoals(cell("home_goals"), "home_goals"); err != nil {
		return nil, err
	}
	if m.AwayGoals, err = parseOptGoals(cell("away_goals"), "away_goals"); err != nil {
		return nil, err
	}
	if m.HomeRank, err = parseOptFloat(cell("home_rank"), "home_rank"); err != nil {
		return nil, err
	}
	if m.AwayRank, err = parseOptFloat(cell("away_rank"), "away_rank"); err != nil {
		return nil, err
	}
	if m.HomeRankPoints, err = parseOptFloat(cell("home_rank_points"), "home_rank_points"); err != nil {
		return nil, err
	}
	if m.AwayRankPoints, err = parseOptFloat(cell("away_rank_points"), "away_rank_points"); err != nil {
		return nil, err
	}

	if raw := cell("neutral"); raw != "" {
		neutral, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid neutral %q", domain.ErrMalformedMatch, raw)
		}
		m.Neutral = neutral
	}

	if m.MatchID == "" {
		m.MatchID = idhash.ComputeMatchID(m.Date, m.HomeTeam, m.AwayTeam)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func parseOptFloat(raw, field string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid %s %q", domain.ErrMalformedMatch, field, raw)
	}
	return &v, nil
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
