package dataset

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/sslp23/world-cup-sim-26/internal/domain"
	"github.com/sslp23/world-cup-sim-26/internal/idhash"
)

func rankedMatch() *domain.Match {
	hg, ag := 3, 0
	hr, ar := 13.0, 95.0
	hp, ap := 1676.5, 1187.02
	date := time.Date(2023, 6, 20, 0, 0, 0, 0, time.UTC)
	return &domain.Match{
		MatchID:        idhash.ComputeMatchID(date, "USA", "St. Kitts and Nevis"),
		Date:           date,
		HomeTeam:       "USA",
		AwayTeam:       "St. Kitts and Nevis",
		HomeGoals:      &hg,
		AwayGoals:      &ag,
		HomeRank:       &hr,
		AwayRank:       &ar,
		HomeRankPoints: &hp,
		AwayRankPoints: &ap,
		Tournament:     "CONCACAF Gold Cup",
		City:           "Washington, D.C.",
		Country:        "United States",
		Neutral:        false,
	}
}

func TestRankedCSV_RoundTrip(t *testing.T) {
	in := rankedMatch()

	var buf bytes.Buffer
	if err := WriteRankedCSV(&buf, []*domain.Match{in}); err != nil {
		t.Fatalf("WriteRankedCSV failed: %v", err)
	}

	out, err := ReadRanked(&buf)
	if err != nil {
		t.Fatalf("ReadRanked failed: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("Expected 1 match, got %d", len(out))
	}

	got := out[0]
	if got.MatchID != in.MatchID {
		t.Errorf("MatchID changed: %s -> %s", in.MatchID, got.MatchID)
	}
	if !got.Date.Equal(in.Date) {
		t.Errorf("Date changed: %v -> %v", in.Date, got.Date)
	}
	if got.HomeTeam != in.HomeTeam || got.AwayTeam != in.AwayTeam {
		t.Errorf("Teams changed: %s vs %s", got.HomeTeam, got.AwayTeam)
	}
	if *got.HomeGoals != 3 || *got.AwayGoals != 0 {
		t.Errorf("Goals changed: %v %v", *got.HomeGoals, *got.AwayGoals)
	}
	if *got.HomeRank != 13.0 || *got.AwayRank != 95.0 {
		t.Errorf("Ranks changed: %v %v", *got.HomeRank, *got.AwayRank)
	}
	if *got.HomeRankPoints != 1676.5 || *got.AwayRankPoints != 1187.02 {
		t.Errorf("Rank points changed: %v %v", *got.HomeRankPoints, *got.AwayRankPoints)
	}
	if got.Tournament != in.Tournament || got.Country != in.Country || got.Neutral != in.Neutral {
		t.Errorf("Descriptive columns changed: %+v", got)
	}
}

func TestRankedCSV_CommaInCity(t *testing.T) {
	// City values like "Washington, D.C." force CSV quoting; the comma
	// must survive the round trip without splitting the row.
	in := rankedMatch()

	var buf bytes.Buffer
	if err := WriteRankedCSV(&buf, []*domain.Match{in}); err != nil {
		t.Fatalf("WriteRankedCSV failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"Washington, D.C."`) {
		t.Errorf("Expected quoted city in output:\n%s", buf.String())
	}

	out, err := ReadRanked(&buf)
	if err != nil {
		t.Fatalf("ReadRanked failed: %v", err)
	}
	if out[0].City != "Washington, D.C." {
		t.Errorf("City changed: %q", out[0].City)
	}
}

func TestRankedCSV_NullCells(t *testing.T) {
	// Unplayed fixture against an unranked side: every NULL cell must
	// come back as nil, not zero.
	date := time.Date(2026, 6, 11, 0, 0, 0, 0, time.UTC)
	hr, hp := 15.0, 1661.0
	in := &domain.Match{
		MatchID:        idhash.ComputeMatchID(date, "Mexico", "Gibraltar"),
		Date:           date,
		HomeTeam:       "Mexico",
		AwayTeam:       "Gibraltar",
		HomeRank:       &hr,
		HomeRankPoints: &hp,
	}

	var buf bytes.Buffer
	if err := WriteRankedCSV(&buf, []*domain.Match{in}); err != nil {
		t.Fatalf("WriteRankedCSV failed: %v", err)
	}

	out, err := ReadRanked(&buf)
	if err != nil {
		t.Fatalf("ReadRanked failed: %v", err)
	}

	got := out[0]
	if got.HomeGoals != nil || got.AwayGoals != nil {
		t.Errorf("Expected nil goals, got %v %v", got.HomeGoals, got.AwayGoals)
	}
	if got.AwayRank != nil || got.AwayRankPoints != nil {
		t.Errorf("Expected nil away rank cells, got %v %v", got.AwayRank, got.AwayRankPoints)
	}
	if got.HomeRank == nil || *got.HomeRank != 15.0 {
		t.Errorf("Home rank should survive, got %v", got.HomeRank)
	}
}

func TestReadRanked_RecomputesMissingID(t *testing.T) {
	csv := "date,home_team,away_team,home_goals,away_goals\n" +
		"2023-03-24,Germany,Peru,2,0\n"

	out, err := ReadRanked(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ReadRanked failed: %v", err)
	}

	want := idhash.ComputeMatchID(
		time.Date(2023, 3, 24, 0, 0, 0, 0, time.UTC), "Germany", "Peru")
	if out[0].MatchID != want {
		t.Errorf("Expected recomputed ID %s, got %s", want, out[0].MatchID)
	}
}

func TestReadRanked_InvalidRankCell(t *testing.T) {
	csv := "date,home_team,away_team,home_goals,away_goals,home_rank\n" +
		"2023-03-24,Germany,Peru,2,0,abc\n"

	_, err := ReadRanked(strings.NewReader(csv))
	if err == nil || !strings.Contains(err.Error(), "home_rank") {
		t.Fatalf("Expected invalid home_rank error, got %v", err)
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("Error should name the failing line: %v", err)
	}
}
