package rankings

// DefaultNameOverrides maps country names as spelled by the FIFA ranking
// source to the names used by the match results source. The two datasets
// disagree on a handful of nations; without the mapping those teams would
// never join a rank. Overrides match whole names only.
func DefaultNameOverrides() map[string]string {
	return map[string]string{
		"Czechia":        "Czech Republic",
		"IR Iran":        "Iran",
		"Korea Republic": "South Korea",
		"Korea DPR":      "North Korea",
		"USA":            "United States",
		"Türkiye":        "Turkey",
		"Cabo Verde":     "Cape Verde",
	}
}

// MergeNameOverrides layers user-configured overrides on top of the
// defaults. An empty-string target removes the default entry.
func MergeNameOverrides(extra map[string]string) map[string]string {
	merged := DefaultNameOverrides()
	for from, to := range extra {
		if to == "" {
			delete(merged, from)
			continue
		}
		merged[from] = to
	}
	return merged
}

// NormalizeName resolves a ranking-source team name to the results-source
// spelling. Names without an override pass through unchanged.
func NormalizeName(name string, overrides map[string]string) string {
	if mapped, ok := overrides[name]; ok {
		return mapped
	}
	return name
}
