package rankings

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sslp23/world-cup-sim-26/internal/domain"
)

// Required columns of the ranking source. Extra columns are ignored.
var requiredColumns = []string{"rank", "nation_full_name", "points", "rank_date"}

// ParseCSV reads FIFA ranking history into snapshots. Column positions are
// resolved from the header, team names are normalized through overrides,
// and malformed rows fail with their line number.
func ParseCSV(r io.Reader, overrides map[string]string) ([]*domain.RankSnapshot, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read rankings header: %w", err)
	}
	cols, err := columnIndex(header, requiredColumns)
	if err != nil {
		return nil, err
	}

	var snapshots []*domain.RankSnapshot
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("rankings line %d: %w", line, err)
		}

		date, err := time.Parse("2006-01-02", strings.TrimSpace(record[cols["rank_date"]]))
		if err != nil {
			return nil, fmt.Errorf("rankings line %d: invalid rank_date %q", line, record[cols["rank_date"]])
		}
		rank, err := strconv.ParseFloat(strings.TrimSpace(record[cols["rank"]]), 64)
		if err != nil {
			return nil, fmt.Errorf("rankings line %d: invalid rank %q", line, record[cols["rank"]])
		}
		points, err := strconv.ParseFloat(strings.TrimSpace(record[cols["points"]]), 64)
		if err != nil {
			return nil, fmt.Errorf("rankings line %d: invalid points %q", line, record[cols["points"]])
		}

		snapshots = append(snapshots, &domain.RankSnapshot{
			Team:   NormalizeName(strings.TrimSpace(record[cols["nation_full_name"]]), overrides),
			Date:   date.UTC(),
			Rank:   rank,
			Points: points,
		})
	}
	return snapshots, nil
}

// LoadCSV reads ranking history from a file path.
func LoadCSV(path string, overrides map[string]string) ([]*domain.RankSnapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rankings file: %w", err)
	}
	defer f.Close()
	return ParseCSV(f, overrides)
}

func columnIndex(header []string, required []string) (map[string]int, error) {
	cols := make(map[string]int, len(required))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("rankings header missing column %q", name)
		}
	}
	return cols, nil
}

// Table answers as-of rank queries: a team's most recent snapshot at or
// before a date. Built once and read-only afterwards.
type Table struct {
	byTeam map[string][]*domain.RankSnapshot
}

// NewTable groups snapshots by team and sorts each group by date. When a
// team has several snapshots on one date, the first one seen wins.
func NewTable(snapshots []*domain.RankSnapshot) *Table {
	byTeam := make(map[string][]*domain.RankSnapshot)
	for _, s := range snapshots {
		byTeam[s.Team] = append(byTeam[s.Team], s)
	}

	for team, list := range byTeam {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Date.Before(list[j].Date)
		})
		deduped := list[:0]
		for _, s := range list {
			if len(deduped) > 0 && deduped[len(deduped)-1].Date.Equal(s.Date) {
				continue
			}
			deduped = append(deduped, s)
		}
		byTeam[team] = deduped
	}
	return &Table{byTeam: byTeam}
}

// RankAt returns the team's most recent snapshot with date at or before the
// query date, or nil when no such snapshot exists. This realizes the daily
// forward-fill of the ranking source without materializing daily rows.
func (t *Table) RankAt(team string, date time.Time) *domain.RankSnapshot {
	snaps := t.byTeam[team]
	i := sort.Search(len(snaps), func(j int) bool {
		return snaps[j].Date.After(date)
	})
	if i == 0 {
		return nil
	}
	return snaps[i-1]
}

// Teams returns every team present in the table, sorted.
func (t *Table) Teams() []string {
	teams := make([]string, 0, len(t.byTeam))
	for team := range t.byTeam {
		teams = append(teams, team)
	}
	sort.Strings(teams)
	return teams
}

// Len returns the number of snapshots across all teams.
func (t *Table) Len() int {
	n := 0
	for _, snaps := range t.byTeam {
		n += len(snaps)
	}
	return n
}
