package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jonathan/assessment-engine/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintScoreResult_Likert(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := &types.ScoreResult{
		Type:       types.FormatLikert,
		Taxonomy:   types.TaxonomyHexaco60,
		Dimensions: map[string]int{"H": 80, "E": 20},
		Facets: map[string]map[string]int{
			"H": {"sincerity": 75, "fairness": 85},
		},
	}

	p.PrintScoreResult(result)
	output := buf.String()

	assert.Contains(t, output, "SCORE RESULT")
	assert.Contains(t, output, "hexaco_60")
	assert.Contains(t, output, "sincerity")
	assert.Contains(t, output, " 80")
	// E sorts before H
	assert.Less(t, strings.Index(output, "│ E "), strings.Index(output, "│ H "))
}

func TestPrintScoreResult_Binary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := &types.ScoreResult{
		Type:     types.FormatBinary,
		Taxonomy: types.TaxonomyMBTI,
		Dichotomies: map[string]types.DichotomyScore{
			"EI": {PercentageA: 67, DominantPole: "E"},
			"JP": {PercentageA: 33, DominantPole: "P"},
		},
		TypeCode: "ENTP",
	}

	p.PrintScoreResult(result)
	output := buf.String()

	assert.Contains(t, output, "Type: ENTP")
	assert.Contains(t, output, " 67%")
	assert.Contains(t, output, "→ P")
}

func TestPrintScoreResult_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintScoreResult(nil)
	assert.Empty(t, buf.String())
}

func TestPrintProfile(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	profile := &types.ProfileOutput{
		Categories: map[string]types.Level{"H": types.LevelLow, "X": types.LevelHigh},
		RiskPairs: []types.TensionPair{
			{DimA: "H", LevelA: types.LevelLow, DimB: "X", LevelB: types.LevelHigh, Risk: true, ContentKey: "tension.charming_manipulator"},
		},
	}

	p.PrintProfile(profile)
	output := buf.String()

	assert.Contains(t, output, "PROFILE")
	assert.Contains(t, output, "Insights: none")
	assert.Contains(t, output, "tension.charming_manipulator")
}

func TestPrintProfile_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintProfile(&types.ProfileOutput{})
	assert.Contains(t, buf.String(), "No dimension profile")
}

func TestPrintAssignmentCounts(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintAssignmentCounts(map[types.Taxonomy]int{
		types.TaxonomyHexaco100: 50,
		types.TaxonomyMBTI:      3,
	}, 50)
	output := buf.String()

	assert.Contains(t, output, "ASSIGNMENT COUNTS")
	assert.Contains(t, output, "Total: 53")
	assert.Contains(t, output, "exploratory")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("x", 200))
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)), line)
	}
	assert.Contains(t, buf.String(), "...")
}
