package scoring

import (
	"math"
	"strings"

	"github.com/jonathan/assessment-engine/internal/types"
)

// scoreBinary computes the share of option-A answers per dichotomy. A share of
// exactly 50 resolves to option A's pole.
func scoreBinary(byID map[int]types.AnswerValue, cfg *types.TestConfig) (*types.ScoreResult, error) {
	type tally struct {
		poleA, poleB string
		countA       int
		total        int
	}
	tallies := make(map[string]*tally, len(cfg.Dimensions))

	for _, q := range cfg.Questions {
		choseA, err := chosePoleA(q, byID[q.ID])
		if err != nil {
			return nil, err
		}

		t, ok := tallies[q.Dimension]
		if !ok {
			t = &tally{poleA: q.OptionA.Pole, poleB: q.OptionB.Pole}
			tallies[q.Dimension] = t
		}
		t.total++
		if choseA {
			t.countA++
		}
	}

	result := &types.ScoreResult{
		Type:        types.FormatBinary,
		Taxonomy:    cfg.Taxonomy,
		Dichotomies: make(map[string]types.DichotomyScore, len(tallies)),
	}

	var typeCode strings.Builder
	for _, d := range cfg.Dimensions {
		t, ok := tallies[d.Code]
		if !ok {
			continue
		}

		percentageA := 0
		if t.total > 0 {
			percentageA = int(math.Round(float64(t.countA) / float64(t.total) * 100))
		}

		dominant := t.poleB
		if percentageA >= 50 {
			dominant = t.poleA
		}

		result.Dichotomies[d.Code] = types.DichotomyScore{
			PercentageA:  percentageA,
			DominantPole: dominant,
		}
		typeCode.WriteString(dominant)
	}
	result.TypeCode = typeCode.String()

	return result, nil
}
