package profile

import "github.com/jonathan/assessment-engine/internal/types"

// Infer normalizes dimension scores for taxonomy, categorizes them and returns
// every catalogue rule whose two dimensions are present at the required levels.
func Infer(dimensionScores map[string]float64, taxonomy types.Taxonomy) (*types.ProfileOutput, error) {
	canonical, err := Normalize(dimensionScores, taxonomy)
	if err != nil {
		return nil, err
	}
	return infer(canonical, Tensions), nil
}

// InferResult runs Infer on a stored score. Binary results carry no dimension
// scores and yield an empty profile.
func InferResult(result *types.ScoreResult) (*types.ProfileOutput, error) {
	return Infer(DimensionScores(result), result.Taxonomy)
}

func infer(canonical map[string]float64, rules []types.TensionPair) *types.ProfileOutput {
	out := &types.ProfileOutput{
		Categories:   make(map[string]types.Level, len(canonical)),
		InsightPairs: []types.TensionPair{},
		RiskPairs:    []types.TensionPair{},
		Narratives:   []types.DimensionNarrative{},
	}

	for code, score := range canonical {
		out.Categories[code] = Categorize(score)
	}

	for _, rule := range rules {
		levelA, okA := out.Categories[rule.DimA]
		levelB, okB := out.Categories[rule.DimB]
		if !okA || !okB {
			continue
		}
		if levelA != rule.LevelA || levelB != rule.LevelB {
			continue
		}
		if rule.Risk {
			out.RiskPairs = append(out.RiskPairs, rule)
		} else {
			out.InsightPairs = append(out.InsightPairs, rule)
		}
	}

	for _, code := range CanonicalCodes {
		level, ok := out.Categories[code]
		if !ok || level == types.LevelMedium {
			continue
		}
		out.Narratives = append(out.Narratives, types.DimensionNarrative{
			Dimension:  code,
			Level:      level,
			ContentKey: "dimension." + code + "." + string(level),
		})
	}

	return out
}
