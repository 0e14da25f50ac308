package domain

// FeatureVector holds the rolling form statistics of one team immediately
// before one match, computed from its earlier resolved matches only.
// Every field is NULL while the team has no prior history.
type FeatureVector struct {
	PointsMA5                *float64 // mean points over last 5 matches, NULL if no history
	PointsMA3                *float64 // mean points over last 3 matches
	PointsWeightedMA5        *float64 // opponent-rank-weighted points, NULL if no ranked history
	PointsWeightedMA3        *float64
	GoalsMA5                 *float64 // mean goals scored
	GoalsMA3                 *float64
	GoalsSufferedMA5         *float64 // mean goals conceded
	GoalsSufferedMA3         *float64
	GoalsWeightedMA5         *float64 // opponent-rank-weighted goals scored
	GoalsWeightedMA3         *float64
	GoalsSufferedWeightedMA5 *float64 // opponent-rank-weighted goals conceded
	GoalsSufferedWeightedMA3 *float64
}

// Empty reports whether every field is NULL, i.e. the team had no prior
// resolved match at all.
func (v *FeatureVector) Empty() bool {
	return v.PointsMA5 == nil && v.PointsMA3 == nil &&
		v.PointsWeightedMA5 == nil && v.PointsWeightedMA3 == nil &&
		v.GoalsMA5 == nil && v.GoalsMA3 == nil &&
		v.GoalsSufferedMA5 == nil && v.GoalsSufferedMA3 == nil &&
		v.GoalsWeightedMA5 == nil && v.GoalsWeightedMA3 == nil &&
		v.GoalsSufferedWeightedMA5 == nil && v.GoalsSufferedWeightedMA3 == nil
}

// FeatureFieldNames lists the FeatureVector columns in output order, without
// a home_/away_ prefix. Exporters and stores iterate this together with
// Fields so column order stays identical everywhere.
func FeatureFieldNames() []string {
	return []string{
		"points_ma_5", "points_ma_3",
		"points_weighted_ma_5", "points_weighted_ma_3",
		"goals_ma_5", "goals_ma_3",
		"goals_suffered_ma_5", "goals_suffered_ma_3",
		"goals_weighted_ma_5", "goals_weighted_ma_3",
		"goals_suffered_weighted_ma_5", "goals_suffered_weighted_ma_3",
	}
}

// Fields returns the vector's values in FeatureFieldNames order.
func (v *FeatureVector) Fields() []*float64 {
	return []*float64{
		v.PointsMA5, v.PointsMA3,
		v.PointsWeightedMA5, v.PointsWeightedMA3,
		v.GoalsMA5, v.GoalsMA3,
		v.GoalsSufferedMA5, v.GoalsSufferedMA3,
		v.GoalsWeightedMA5, v.GoalsWeightedMA3,
		v.GoalsSufferedWeightedMA5, v.GoalsSufferedWeightedMA3,
	}
}

// SetFields assigns the vector's values from FeatureFieldNames order.
// The inverse of Fields, used when scanning database rows.
func (v *FeatureVector) SetFields(vals []*float64) {
	v.PointsMA5, v.PointsMA3 = vals[0], vals[1]
	v.PointsWeightedMA5, v.PointsWeightedMA3 = vals[2], vals[3]
	v.GoalsMA5, v.GoalsMA3 = vals[4], vals[5]
	v.GoalsSufferedMA5, v.GoalsSufferedMA3 = vals[6], vals[7]
	v.GoalsWeightedMA5, v.GoalsWeightedMA3 = vals[8], vals[9]
	v.GoalsSufferedWeightedMA5, v.GoalsSufferedWeightedMA3 = vals[10], vals[11]
}

// FeatureRow is the assembled per-match output: the source match, a feature
// vector per side, the rank difference and the current-match outcome labels.
// Corresponds to feature_rows table in PostgreSQL/SQLite and ClickHouse.
type FeatureRow struct {
	Match
	Home FeatureVector
	Away FeatureVector

	RankDif *float64 // home_rank - away_rank, NULL if either rank missing

	// Outcome labels for downstream model training. NULL for unplayed
	// fixtures; weighted labels also NULL when the opponent rank is missing.
	HomePointsWon      *int
	AwayPointsWon      *int
	HomePointsWeighted *float64
	AwayPointsWeighted *float64
}
