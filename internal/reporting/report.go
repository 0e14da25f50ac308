package reporting

import "time"

// Report represents the feature run report structure. Sections map one to
// one onto the rendered FEATURES_REPORT.md.
type Report struct {
	// Metadata
	GeneratedAt time.Time

	// Dataset Summary
	Dataset DatasetSummary

	// Data Quality (sufficiency checks)
	DataQuality DataQualitySection

	// Feature Coverage (per output column, in table order)
	FeatureCoverage []FeatureCoverageRow
}

// DataQualitySection contains data sufficiency checks and integrity errors.
type DataQualitySection struct {
	SufficiencyChecks []SufficiencyCheckRow
	IntegrityErrors   []string
	AllChecksPassed   bool
}

// SufficiencyCheckRow represents one sufficiency criterion.
type SufficiencyCheckRow struct {
	Name      string
	Threshold string
	Actual    string
	Pass      bool
}

// DatasetSummary describes the stored matches and the computed feature table.
type DatasetSummary struct {
	StoredMatches int // rows in the match store
	FeatureRows   int
	ResolvedRows  int // feature rows with a final score
	FixtureRows   int // feature rows still awaiting a result
	RankedRows    int // feature rows with both ranks present
	ColdStartRows int // feature rows where at least one side has no history
	Teams         int
	DateFrom      time.Time
	DateTo        time.Time
}

// FeatureCoverageRow summarizes one output column: how many rows define it
// and the mean over the defined cells.
type FeatureCoverageRow struct {
	Name     string
	Defined  int
	Coverage float64 // Defined / FeatureRows
	Mean     float64
}
