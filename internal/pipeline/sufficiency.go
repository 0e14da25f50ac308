package pipeline

import (
	"fmt"
	"sort"

	"github.com/sslp23/world-cup-sim-26/internal/domain"
)

// Default sufficiency thresholds. The checks gate the report verdict, not
// the run itself; a failing table is still written so it can be inspected.
const (
	DefaultMinMatches       = 100
	DefaultMinRankCoverage  = 0.90
	DefaultMinResolvedShare = 0.50
)

// SufficiencyCheck represents one data sufficiency criterion.
type SufficiencyCheck struct {
	Name      string
	Threshold string
	Actual    string
	Pass      bool
}

// SufficiencyResult contains all 5 checks.
type SufficiencyResult struct {
	Checks  []SufficiencyCheck
	AllPass bool
	Errors  []string // data integrity errors
}

// SufficiencyChecker validates the ranked database before features are
// computed from it.
type SufficiencyChecker struct {
	minMatches       int
	minRankCoverage  float64
	minResolvedShare float64
}

// NewSufficiencyChecker creates a checker with the default thresholds.
func NewSufficiencyChecker() *SufficiencyChecker {
	return &SufficiencyChecker{
		minMatches:       DefaultMinMatches,
		minRankCoverage:  DefaultMinRankCoverage,
		minResolvedShare: DefaultMinResolvedShare,
	}
}

// WithMinMatches overrides the minimum match count, for small demo runs.
func (c *SufficiencyChecker) WithMinMatches(n int) *SufficiencyChecker {
	c.minMatches = n
	return c
}

// Check performs all 5 sufficiency checks over the ranked matches. Matches
// are expected in store order (date ascending).
func (c *SufficiencyChecker) Check(matches []*domain.Match) *SufficiencyResult {
	result := &SufficiencyResult{
		Checks:  make([]SufficiencyCheck, 0, 5),
		AllPass: true,
		Errors:  []string{},
	}

	// Check 1: minimum match count
	check1 := c.checkMatchCount(matches)
	result.Checks = append(result.Checks, check1)
	if !check1.Pass {
		result.AllPass = false
	}

	// Check 2: rank coverage over all rank cells
	check2 := c.checkRankCoverage(matches)
	result.Checks = append(result.Checks, check2)
	if !check2.Pass {
		result.AllPass = false
	}

	// Check 3: resolved share
	check3 := c.checkResolvedShare(matches)
	result.Checks = append(result.Checks, check3)
	if !check3.Pass {
		result.AllPass = false
	}

	// Check 4: duplicate match_id count == 0
	check4, duplicateErrors := c.checkDuplicateIDs(matches)
	result.Checks = append(result.Checks, check4)
	if !check4.Pass {
		result.AllPass = false
		result.Errors = append(result.Errors, duplicateErrors...)
	}

	// Check 5: chronological-order violations == 0
	check5, orderErrors := c.checkChronology(matches)
	result.Checks = append(result.Checks, check5)
	if !check5.Pass {
		result.AllPass = false
		result.Errors = append(result.Errors, orderErrors...)
	}

	return result
}

// checkMatchCount: at least minMatches matches.
func (c *SufficiencyChecker) checkMatchCount(matches []*domain.Match) SufficiencyCheck {
	count := len(matches)
	return SufficiencyCheck{
		Name:      "Minimum match count",
		Threshold: fmt.Sprintf(">= %d", c.minMatches),
		Actual:    fmt.Sprintf("%d", count),
		Pass:      count >= c.minMatches,
	}
}

// checkRankCoverage: share of defined rank cells (two per match).
func (c *SufficiencyChecker) checkRankCoverage(matches []*domain.Match) SufficiencyCheck {
	threshold := fmt.Sprintf(">= %.0f%%", c.minRankCoverage*100)

	total := 2 * len(matches)
	if total == 0 {
		return SufficiencyCheck{
			Name:      "Rank coverage",
			Threshold: threshold,
			Actual:    "no rank cells",
			Pass:      false,
		}
	}

	defined := 0
	for _, m := range matches {
		if m.HomeRank != nil {
			defined++
		}
		if m.AwayRank != nil {
			defined++
		}
	}

	share := float64(defined) / float64(total)
	return SufficiencyCheck{
		Name:      "Rank coverage",
		Threshold: threshold,
		Actual:    fmt.Sprintf("%.1f%% (%d/%d)", share*100, defined, total),
		Pass:      share >= c.minRankCoverage,
	}
}

// checkResolvedShare: share of matches with a recorded result. A table of
// mostly unplayed fixtures produces empty rolling windows everywhere.
func (c *SufficiencyChecker) checkResolvedShare(matches []*domain.Match) SufficiencyCheck {
	threshold := fmt.Sprintf(">= %.0f%%", c.minResolvedShare*100)

	if len(matches) == 0 {
		return SufficiencyCheck{
			Name:      "Resolved share",
			Threshold: threshold,
			Actual:    "no matches",
			Pass:      false,
		}
	}

	resolved := 0
	for _, m := range matches {
		if m.Resolved() {
			resolved++
		}
	}

	share := float64(resolved) / float64(len(matches))
	return SufficiencyCheck{
		Name:      "Resolved share",
		Threshold: threshold,
		Actual:    fmt.Sprintf("%.1f%% (%d/%d)", share*100, resolved, len(matches)),
		Pass:      share >= c.minResolvedShare,
	}
}

// checkDuplicateIDs: duplicate match_id count == 0.
func (c *SufficiencyChecker) checkDuplicateIDs(matches []*domain.Match) (SufficiencyCheck, []string) {
	seen := make(map[string]int)
	for _, m := range matches {
		seen[m.MatchID]++
	}

	duplicateCount := 0
	var errors []string
	// Sort keys for deterministic output
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, id := range keys {
		if count := seen[id]; count > 1 {
			duplicateCount++
			errors = append(errors, fmt.Sprintf("duplicate match_id: %s (count=%d)", id, count))
		}
	}

	return SufficiencyCheck{
		Name:      "Duplicate match IDs",
		Threshold: "= 0",
		Actual:    fmt.Sprintf("%d", duplicateCount),
		Pass:      duplicateCount == 0,
	}, errors
}

// checkChronology: chronological-order violations == 0. Features computed
// from an unsorted table would leak later results into earlier windows.
func (c *SufficiencyChecker) checkChronology(matches []*domain.Match) (SufficiencyCheck, []string) {
	violations := 0
	var errors []string
	for i := 1; i < len(matches); i++ {
		if matches[i].Date.Before(matches[i-1].Date) {
			violations++
			errors = append(errors, fmt.Sprintf("match %s dated %s before predecessor %s dated %s",
				matches[i].MatchID, matches[i].Date.Format("2006-01-02"),
				matches[i-1].MatchID, matches[i-1].Date.Format("2006-01-02")))
		}
	}

	return SufficiencyCheck{
		Name:      "Chronological order violations",
		Threshold: "= 0",
		Actual:    fmt.Sprintf("%d", violations),
		Pass:      violations == 0,
	}, errors
}
