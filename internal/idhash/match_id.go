package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// ComputeMatchID computes a deterministic match_id using SHA256.
// Formula: SHA256(date|home_team|away_team) with the date in YYYY-MM-DD form.
// Returns hex-encoded hash (64 characters).
func ComputeMatchID(date time.Time, homeTeam, awayTeam string) string {
	data := fmt.Sprintf("%s|%s|%s",
		date.UTC().Format("2006-01-02"),
		homeTeam,
		awayTeam,
	)

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
