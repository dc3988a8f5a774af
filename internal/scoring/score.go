// Package scoring converts raw per-question answers into normalized 0-100
// dimension, facet, aspect and dichotomy scores.
package scoring

import (
	"fmt"
	"math"

	"github.com/jonathan/assessment-engine/internal/types"
)

// Score scores a complete answer set against cfg. The answer set is rejected
// with an *Error, before anything is computed, if it is not exactly one valid
// answer per question.
func Score(answers []types.Answer, cfg *types.TestConfig) (*types.ScoreResult, error) {
	if cfg == nil {
		return nil, fmt.Errorf("test config is nil")
	}

	byID, err := indexAnswers(answers, cfg)
	if err != nil {
		return nil, err
	}

	switch cfg.Format {
	case types.FormatLikert:
		return scoreLikert(byID, cfg)
	case types.FormatBinary:
		return scoreBinary(byID, cfg)
	default:
		return nil, fmt.Errorf("unsupported test format %q", cfg.Format)
	}
}

// NormalizeLikert maps a 1..5 answer onto 0..100, flipping reversed items.
func NormalizeLikert(value int, reversed bool) float64 {
	raw := float64(value-types.LikertMin) / float64(types.LikertMax-types.LikertMin) * 100
	if reversed {
		return 100 - raw
	}
	return raw
}

// mean accumulates values and reports a rounded average. An empty mean is 0.
type mean struct {
	sum   float64
	count int
}

func (m *mean) add(v float64) {
	m.sum += v
	m.count++
}

func (m mean) rounded() int {
	if m.count == 0 {
		return 0
	}
	return int(math.Round(m.sum / float64(m.count)))
}
