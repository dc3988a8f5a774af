package types

// Level is the categorized band of a dimension score.
type Level string

// Levels
const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// TensionPair is a static rule matching two dimensions' levels at once.
type TensionPair struct {
	DimA       string `json:"dim_a"`
	LevelA     Level  `json:"level_a"`
	DimB       string `json:"dim_b"`
	LevelB     Level  `json:"level_b"`
	Risk       bool   `json:"risk"`
	ContentKey string `json:"content_key"`
}

// DimensionNarrative points at the narrative content for one extreme dimension.
type DimensionNarrative struct {
	Dimension  string `json:"dimension"`
	Level      Level  `json:"level"`
	ContentKey string `json:"content_key"`
}

// ProfileOutput is the result of tension inference over canonical dimension scores.
type ProfileOutput struct {
	Categories   map[string]Level     `json:"categories"`
	InsightPairs []TensionPair        `json:"insight_pairs"`
	RiskPairs    []TensionPair        `json:"risk_pairs"`
	Narratives   []DimensionNarrative `json:"narratives"`
}
