package domain

import "time"

// RankSnapshot is one row of the FIFA ranking history: a team's rank and
// rating points on one publication date. Snapshots are consumed by the
// dataset builder and resolved onto matches with as-of semantics; they are
// not persisted on their own.
type RankSnapshot struct {
	Team   string
	Date   time.Time // publication date, UTC midnight
	Rank   float64   // ordinal rank, lower is stronger
	Points float64   // FIFA rating points
}
