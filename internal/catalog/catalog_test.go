package catalog

import (
	"errors"
	"testing"

	"github.com/jonathan/assessment-engine/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_AllTaxonomiesRegistered(t *testing.T) {
	require.NoError(t, Load())

	for _, taxonomy := range types.AllTaxonomies() {
		cfg, err := Get(taxonomy)
		require.NoError(t, err, taxonomy)
		assert.Equal(t, taxonomy, cfg.Taxonomy)
	}
}

func TestGet_UnknownTaxonomy(t *testing.T) {
	cfg, err := Get("enneagram")
	assert.Nil(t, cfg)

	var unknown *UnknownTaxonomyError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, types.Taxonomy("enneagram"), unknown.Taxonomy)
}

func TestMustGet_PanicsOnUnknown(t *testing.T) {
	assert.Panics(t, func() { MustGet("enneagram") })
}

func TestConfigShapes(t *testing.T) {
	tests := []struct {
		taxonomy   types.Taxonomy
		format     types.Format
		subscale   types.Subscale
		dimensions []string
		questions  int
	}{
		{types.TaxonomyHexaco100, types.FormatLikert, types.SubscaleFacet, []string{"H", "E", "X", "A", "C", "O", "ALT"}, 100},
		{types.TaxonomyHexaco60, types.FormatLikert, types.SubscaleFacet, []string{"H", "E", "X", "A", "C", "O"}, 60},
		{types.TaxonomyBigFiveAspects, types.FormatLikert, types.SubscaleAspect, []string{"N", "E", "O", "A", "C"}, 40},
		{types.TaxonomyMBTI, types.FormatBinary, types.SubscaleNone, []string{"EI", "SN", "TF", "JP"}, 24},
	}

	for _, tt := range tests {
		t.Run(string(tt.taxonomy), func(t *testing.T) {
			cfg := MustGet(tt.taxonomy)
			assert.Equal(t, tt.format, cfg.Format)
			assert.Equal(t, tt.subscale, cfg.Subscale)
			assert.Equal(t, tt.dimensions, cfg.DimensionCodes())
			assert.Len(t, cfg.Questions, tt.questions)
		})
	}
}

func TestHexaco60_HasUntaggedItems(t *testing.T) {
	cfg := MustGet(types.TaxonomyHexaco60)

	untagged := make(map[string]int)
	for _, q := range cfg.Questions {
		if q.Subscale == "" {
			untagged[q.Dimension]++
		}
	}

	for _, code := range cfg.DimensionCodes() {
		assert.Equal(t, 2, untagged[code], "dimension %s", code)
	}
}

func TestPoles(t *testing.T) {
	cfg := MustGet(types.TaxonomyMBTI)

	a, b, ok := Poles(cfg, "EI")
	require.True(t, ok)
	assert.Equal(t, "E", a)
	assert.Equal(t, "I", b)

	_, _, ok = Poles(cfg, "XX")
	assert.False(t, ok)
}

func likertConfig() *types.TestConfig {
	return &types.TestConfig{
		Taxonomy: "test",
		Format:   types.FormatLikert,
		Dimensions: []types.DimensionDef{
			{Code: "H", Subscales: []string{"sincerity"}},
		},
		Questions: []types.QuestionDef{
			{ID: 1, Dimension: "H", Subscale: "sincerity"},
			{ID: 2, Dimension: "H", Reversed: true},
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *types.TestConfig)
		errMsg string
	}{
		{"valid", func(*types.TestConfig) {}, ""},
		{"duplicate question id", func(c *types.TestConfig) { c.Questions[1].ID = 1 }, "duplicate question id 1"},
		{"unknown dimension", func(c *types.TestConfig) { c.Questions[1].Dimension = "Z" }, "unknown dimension"},
		{"unknown subscale", func(c *types.TestConfig) { c.Questions[1].Subscale = "modesty" }, "unknown subscale"},
		{"empty subscale", func(c *types.TestConfig) { c.Questions[0].Subscale = "" }, "has no questions"},
		{"empty dimension", func(c *types.TestConfig) {
			c.Dimensions = append(c.Dimensions, types.DimensionDef{Code: "E"})
		}, "dimension \"E\" has no questions"},
		{"duplicate dimension", func(c *types.TestConfig) {
			c.Dimensions = append(c.Dimensions, types.DimensionDef{Code: "H"})
		}, "duplicate dimension code"},
		{"likert with options", func(c *types.TestConfig) {
			c.Questions[0].OptionA = &types.Pole{Pole: "A"}
		}, "declares options"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := likertConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestValidate_BinaryPoles(t *testing.T) {
	cfg := &types.TestConfig{
		Taxonomy:   "test",
		Format:     types.FormatBinary,
		Dimensions: []types.DimensionDef{{Code: "EI"}},
		Questions: []types.QuestionDef{
			{ID: 1, Dimension: "EI", OptionA: &types.Pole{Pole: "E"}, OptionB: &types.Pole{Pole: "I"}},
			{ID: 2, Dimension: "EI", OptionA: &types.Pole{Pole: "I"}, OptionB: &types.Pole{Pole: "E"}},
		},
	}

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disagree")

	cfg.Questions[1].OptionA = &types.Pole{Pole: "E"}
	cfg.Questions[1].OptionB = &types.Pole{Pole: "E"}
	err = Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "identical poles")

	cfg.Questions[1].OptionB = nil
	err = Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing an option")
}
