package scoring

import (
	"strconv"
	"strings"
	"testing"

	"github.com/jonathan/assessment-engine/internal/catalog"
	"github.com/jonathan/assessment-engine/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedScorer_HitMatchesScore(t *testing.T) {
	cfg := catalog.MustGet(types.TaxonomyHexaco60)
	answers := answerAll(cfg, func(q types.QuestionDef) types.AnswerValue { return types.LikertValue(1 + q.ID%5) })

	s := NewCachedScorer(8)
	first, err := s.Score(answers, cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())

	// Reordered submission hits the same entry
	reversed := make([]types.Answer, len(answers))
	for i, a := range answers {
		reversed[len(answers)-1-i] = a
	}
	second, err := s.Score(reversed, cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())

	direct, err := Score(answers, cfg)
	require.NoError(t, err)
	assert.Equal(t, direct, first)
	assert.Equal(t, direct, second)
}

func TestCachedScorer_ReturnsCopies(t *testing.T) {
	cfg := smallLikertConfig()
	answers := answerAll(cfg, func(types.QuestionDef) types.AnswerValue { return "5" })

	s := NewCachedScorer(0)
	first, err := s.Score(answers, cfg)
	require.NoError(t, err)
	first.Dimensions["H"] = -1
	first.Facets["H"]["s1"] = -1

	second, err := s.Score(answers, cfg)
	require.NoError(t, err)
	assert.NotEqual(t, -1, second.Dimensions["H"])
	assert.NotEqual(t, -1, second.Facets["H"]["s1"])
}

func TestCachedScorer_DoesNotCacheRejections(t *testing.T) {
	cfg := smallLikertConfig()
	s := NewCachedScorer(4)

	_, err := s.Score([]types.Answer{{QuestionID: 1, Value: "3"}}, cfg)
	require.Error(t, err)
	assert.True(t, IsRejection(err))
	assert.Equal(t, 0, s.Len())
}

func TestCacheKey_DuplicatesDoNotCollide(t *testing.T) {
	single := []types.Answer{{QuestionID: 1, Value: "3"}}
	doubled := []types.Answer{{QuestionID: 1, Value: "3"}, {QuestionID: 1, Value: "3"}}

	assert.NotEqual(t, cacheKey("t", single), cacheKey("t", doubled))
	assert.NotEqual(t, cacheKey("a", single), cacheKey("b", single))
}

func TestCachedScorer_ValueCannotImpersonateAnswerSet(t *testing.T) {
	cfg := catalog.MustGet(types.TaxonomyHexaco60)
	valid := answerAll(cfg, func(types.QuestionDef) types.AnswerValue { return "3" })

	s := NewCachedScorer(16)
	_, err := s.Score(valid, cfg)
	require.NoError(t, err)

	// One answer whose value spells out the remaining answers inline
	var b strings.Builder
	b.WriteString(string(valid[0].Value))
	for _, a := range valid[1:] {
		b.WriteByte(0)
		b.WriteString(strconv.Itoa(a.QuestionID))
		b.WriteByte('=')
		b.WriteString(string(a.Value))
	}
	crafted := []types.Answer{{QuestionID: valid[0].QuestionID, Value: types.AnswerValue(b.String())}}

	assert.NotEqual(t, cacheKey(cfg.Taxonomy, valid), cacheKey(cfg.Taxonomy, crafted))

	result, err := s.Score(crafted, cfg)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, IsRejection(err))
	assert.ErrorIs(t, err, ErrIncompleteAnswers)
	assert.Equal(t, 1, s.Len())
}

func TestCacheKey_FieldBoundaries(t *testing.T) {
	// Shifting bytes between taxonomy and value must change the key
	assert.NotEqual(t,
		cacheKey("ab", []types.Answer{{QuestionID: 1, Value: "c"}}),
		cacheKey("a", []types.Answer{{QuestionID: 1, Value: "bc"}}),
	)
	assert.NotEqual(t,
		cacheKey("t", []types.Answer{{QuestionID: 1, Value: "12"}}),
		cacheKey("t", []types.Answer{{QuestionID: 11, Value: "2"}}),
	)
}
