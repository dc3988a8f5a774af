package profile

import "github.com/jonathan/assessment-engine/internal/types"

// Category thresholds, exclusive on both sides.
const (
	HighThreshold = 65.0
	LowThreshold  = 35.0
)

// Categorize buckets a 0-100 score: above 65 is high, below 35 is low,
// everything else (boundaries included) is medium.
func Categorize(score float64) types.Level {
	switch {
	case score > HighThreshold:
		return types.LevelHigh
	case score < LowThreshold:
		return types.LevelLow
	default:
		return types.LevelMedium
	}
}
