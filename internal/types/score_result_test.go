//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreResult_CloneIsDeep(t *testing.T) {
	original := &ScoreResult{
		Type:       FormatLikert,
		Taxonomy:   TaxonomyHexaco100,
		Dimensions: map[string]int{"H": 70},
		Facets:     map[string]map[string]int{"H": {"sincerity": 80}},
	}

	clone := original.Clone()
	require.Equal(t, original, clone)

	clone.Dimensions["H"] = 10
	clone.Facets["H"]["sincerity"] = 10
	assert.Equal(t, 70, original.Dimensions["H"])
	assert.Equal(t, 80, original.Facets["H"]["sincerity"])
	assert.Nil(t, clone.Aspects)
	assert.Nil(t, clone.Dichotomies)
}

func TestScoreResult_CloneNil(t *testing.T) {
	var r *ScoreResult
	assert.Nil(t, r.Clone())
}

func TestScoreResult_Subscales(t *testing.T) {
	facets := &ScoreResult{Facets: map[string]map[string]int{"H": {"fairness": 50}}}
	assert.Equal(t, facets.Facets, facets.Subscales())

	aspects := &ScoreResult{Aspects: map[string]map[string]int{"N": {"volatility": 40}}}
	assert.Equal(t, aspects.Aspects, aspects.Subscales())

	assert.Nil(t, (&ScoreResult{}).Subscales())
}

func TestScoreResult_BinaryOmitsLikertFields(t *testing.T) {
	result := ScoreResult{
		Type:        FormatBinary,
		Taxonomy:    TaxonomyMBTI,
		Dichotomies: map[string]DichotomyScore{"EI": {PercentageA: 50, DominantPole: "E"}},
		TypeCode:    "E",
	}

	data, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "binary",
		"taxonomy": "mbti",
		"dichotomies": {"EI": {"percentage_a": 50, "dominant_pole": "E"}},
		"type_code": "E"
	}`, string(data))
}
