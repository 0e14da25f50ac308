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
)

const dateLayout = "2006-01-02"

// Required columns of the raw results source. The descriptive columns
// (tournament, city, country, neutral) are carried when present.
var resultColumns = []string{"date", "home_team", "away_team", "home_score", "away_score"}

// ReadResults reads the raw results CSV into matches. Score cells may both
// be empty (an unplayed fixture); any other malformed row fails with its
// line number and field. Ranks and match IDs are not assigned here, that is
// the builder's job.
func ReadResults(r io.Reader) ([]*domain.Match, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read results header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range resultColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("results header missing column %q", name)
		}
	}

	var matches []*domain.Match
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("results line %d: %w", line, err)
		}

		m, err := parseResultRow(record, cols)
		if err != nil {
			return nil, fmt.Errorf("results line %d: %w", line, err)
		}
		matches = append(matches, m)
	}
	return matches, nil
}

// LoadResults reads the raw results CSV from a file path.
func LoadResults(path string) ([]*domain.Match, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open results file: %w", err)
	}
	defer f.Close()
	return ReadResults(f)
}

func parseResultRow(record []string, cols map[string]int) (*domain.Match, error) {
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
		Date:       date.UTC(),
		HomeTeam:   cell("home_team"),
		AwayTeam:   cell("away_team"),
		Tournament: cell("tournament"),
		City:       cell("city"),
		Country:    cell("country"),
	}

	if m.HomeGoals, err = parseOptGoals(cell("home_score"), "home_score"); err != nil {
		return nil, err
	}
	if m.AwayGoals, err = parseOptGoals(cell("away_score"), "away_score"); err != nil {
		return nil, err
	}

	if raw := cell("neutral"); raw != "" {
		neutral, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid neutral %q", domain.ErrMalformedMatch, raw)
		}
		m.Neutral = neutral
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// parseOptGoals parses a score cell. Empty means unplayed; the original
// dataset also carries whole scores as "2.0", which are accepted.
func parseOptGoals(raw, field string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && f == float64(int(f)) {
		v := int(f)
		return &v, nil
	}
	return nil, fmt.Errorf("%w: invalid %s %q", domain.ErrMalformedMatch, field, raw)
}
