package domain

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }

func validMatch() *Match {
	return &Match{
		MatchID:   "abc",
		Date:      time.Date(2023, 9, 8, 0, 0, 0, 0, time.UTC),
		HomeTeam:  "France",
		AwayTeam:  "Ireland",
		HomeGoals: intp(2),
		AwayGoals: intp(0),
	}
}

func TestMatchValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Match)
		wantErr string // empty means valid
	}{
		{
			name:   "resolved match",
			mutate: func(m *Match) {},
		},
		{
			name: "unplayed fixture",
			mutate: func(m *Match) {
				m.HomeGoals = nil
				m.AwayGoals = nil
			},
		},
		{
			name:    "missing date",
			mutate:  func(m *Match) { m.Date = time.Time{} },
			wantErr: "missing date",
		},
		{
			name:    "missing home team",
			mutate:  func(m *Match) { m.HomeTeam = "" },
			wantErr: "missing home_team",
		},
		{
			name:    "missing away team",
			mutate:  func(m *Match) { m.AwayTeam = "" },
			wantErr: "missing away_team",
		},
		{
			name:    "home goals without away goals",
			mutate:  func(m *Match) { m.AwayGoals = nil },
			wantErr: "partial score",
		},
		{
			name:    "away goals without home goals",
			mutate:  func(m *Match) { m.HomeGoals = nil },
			wantErr: "partial score",
		},
		{
			name:    "negative home goals",
			mutate:  func(m *Match) { m.HomeGoals = intp(-1) },
			wantErr: "negative home_goals",
		},
		{
			name:    "negative away goals",
			mutate:  func(m *Match) { m.AwayGoals = intp(-2) },
			wantErr: "negative away_goals",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validMatch()
			tt.mutate(m)

			err := m.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !errors.Is(err, ErrMalformedMatch) {
				t.Errorf("Validate() error should wrap ErrMalformedMatch, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestMatchResolved(t *testing.T) {
	m := validMatch()
	if !m.Resolved() {
		t.Error("match with both goals should be resolved")
	}

	m.HomeGoals = nil
	m.AwayGoals = nil
	if m.Resolved() {
		t.Error("match without goals should not be resolved")
	}
}

func TestPointsWon(t *testing.T) {
	tests := []struct {
		name         string
		goalsFor     int
		goalsAgainst int
		want         int
	}{
		{"win", 3, 1, 3},
		{"draw", 2, 2, 1},
		{"loss", 0, 4, 0},
		{"goalless draw", 0, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PointsWon(tt.goalsFor, tt.goalsAgainst); got != tt.want {
				t.Errorf("PointsWon(%d, %d) = %d, want %d", tt.goalsFor, tt.goalsAgainst, got, tt.want)
			}
		})
	}
}

func TestFeatureVectorEmpty(t *testing.T) {
	var v FeatureVector
	if !v.Empty() {
		t.Error("zero vector should be empty")
	}

	v.GoalsMA3 = floatp(1.5)
	if v.Empty() {
		t.Error("vector with one field set should not be empty")
	}
}

func TestFeatureVectorFieldsRoundTrip(t *testing.T) {
	names := FeatureFieldNames()
	if len(names) != 12 {
		t.Fatalf("FeatureFieldNames() has %d entries, want 12", len(names))
	}

	// Give every field a distinct value so misordered assignments show up.
	vals := make([]*float64, len(names))
	for i := range vals {
		vals[i] = floatp(float64(i) + 0.25)
	}

	var v FeatureVector
	v.SetFields(vals)

	got := v.Fields()
	if len(got) != len(names) {
		t.Fatalf("Fields() has %d entries, want %d", len(got), len(names))
	}
	for i, name := range names {
		if got[i] == nil || *got[i] != *vals[i] {
			t.Errorf("field %s: Fields()[%d] does not round-trip through SetFields", name, i)
		}
	}

	if v.PointsMA5 == nil || *v.PointsMA5 != 0.25 {
		t.Error("points_ma_5 should map to the first field slot")
	}
	if v.GoalsSufferedWeightedMA3 == nil || *v.GoalsSufferedWeightedMA3 != 11.25 {
		t.Error("goals_suffered_weighted_ma_3 should map to the last field slot")
	}
}
