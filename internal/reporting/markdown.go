package reporting

import (
	"fmt"
	"strings"
	"time"
)

const reportDateLayout = "2006-01-02"

// RenderMarkdown renders report as Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Features Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Matches: %d | Feature rows: %d | Teams: %d\n\n",
		r.Dataset.StoredMatches, r.Dataset.FeatureRows, r.Dataset.Teams))

	// Dataset Summary
	sb.WriteString("## Dataset Summary\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Stored Matches | %d |\n", r.Dataset.StoredMatches))
	sb.WriteString(fmt.Sprintf("| Feature Rows | %d |\n", r.Dataset.FeatureRows))
	sb.WriteString(fmt.Sprintf("| Resolved Rows | %d |\n", r.Dataset.ResolvedRows))
	sb.WriteString(fmt.Sprintf("| Fixture Rows | %d |\n", r.Dataset.FixtureRows))
	sb.WriteString(fmt.Sprintf("| Ranked Rows | %d |\n", r.Dataset.RankedRows))
	sb.WriteString(fmt.Sprintf("| Cold Start Rows | %d |\n", r.Dataset.ColdStartRows))
	sb.WriteString(fmt.Sprintf("| Teams | %d |\n", r.Dataset.Teams))
	sb.WriteString(fmt.Sprintf("| Date Range | %s to %s |\n",
		formatReportDate(r.Dataset.DateFrom), formatReportDate(r.Dataset.DateTo)))
	sb.WriteString("\n")

	// Data Quality
	sb.WriteString("## Data Quality\n\n")
	if len(r.DataQuality.SufficiencyChecks) > 0 {
		sb.WriteString("### Sufficiency Checks\n\n")
		sb.WriteString("| Check | Threshold | Actual | Status |\n")
		sb.WriteString("|-------|-----------|--------|--------|\n")
		for _, check := range r.DataQuality.SufficiencyChecks {
			status := "FAIL"
			if check.Pass {
				status = "PASS"
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
				check.Name, check.Threshold, check.Actual, status))
		}
		sb.WriteString("\n")

		// Overall status
		if r.DataQuality.AllChecksPassed {
			sb.WriteString("**All checks passed.** The feature table is fit for model training.\n\n")
		} else {
			sb.WriteString("**Some checks failed.** Review the integrity errors before training on this table.\n\n")
		}
	} else if len(r.DataQuality.IntegrityErrors) == 0 {
		sb.WriteString("No data quality checks performed.\n\n")
	}

	// Integrity errors (always shown if present, even without sufficiency checks)
	if len(r.DataQuality.IntegrityErrors) > 0 {
		sb.WriteString("### Integrity Errors\n\n")
		for _, err := range r.DataQuality.IntegrityErrors {
			sb.WriteString(fmt.Sprintf("- %s\n", err))
		}
		sb.WriteString("\n")
	}

	// Feature Coverage
	sb.WriteString("## Feature Coverage\n\n")
	if len(r.FeatureCoverage) > 0 {
		sb.WriteString("| Column | Defined | Coverage | Mean |\n")
		sb.WriteString("|--------|---------|----------|------|\n")
		for _, col := range r.FeatureCoverage {
			sb.WriteString(fmt.Sprintf("| %s | %d | %.1f%% | %s |\n",
				col.Name, col.Defined, col.Coverage*100, formatCoverageMean(col)))
		}
	} else {
		sb.WriteString("No feature rows available.\n")
	}
	sb.WriteString("\n")

	return sb.String()
}

// formatReportDate renders a date cell, or a dash for the zero value of an
// empty table.
func formatReportDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(reportDateLayout)
}

// formatCoverageMean renders a column mean, or a dash when no row defines
// the column and a mean does not exist.
func formatCoverageMean(col FeatureCoverageRow) string {
	if col.Defined == 0 {
		return "-"
	}
	return fmt.Sprintf("%.4f", col.Mean)
}
