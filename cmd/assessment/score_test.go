package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/assessment-engine/internal/catalog"
	"github.com/jonathan/assessment-engine/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAnswers(t *testing.T, taxonomy types.Taxonomy, value func(q types.QuestionDef) types.AnswerValue) string {
	t.Helper()
	cfg := catalog.MustGet(taxonomy)
	answers := make([]types.Answer, 0, len(cfg.Questions))
	for _, q := range cfg.Questions {
		answers = append(answers, types.Answer{QuestionID: q.ID, Value: value(q)})
	}
	data, err := json.Marshal(answers)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "answers.json")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func resetScoreFlags() {
	scoreTaxonomy = ""
	scoreAnswersFile = ""
	scoreOutputFile = ""
	scoreVerbose = false
}

func TestScoreCommand_WritesOutputFile(t *testing.T) {
	t.Cleanup(resetScoreFlags)

	answersPath := writeAnswers(t, types.TaxonomyHexaco60, func(types.QuestionDef) types.AnswerValue {
		return types.LikertValue(3)
	})
	outPath := filepath.Join(t.TempDir(), "result.json")

	stdout, _, err := executeCommand(t, "score", "--taxonomy", "hexaco_60", "--answers", answersPath, "--out", outPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, outPath)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var resp types.ScoreResponse
	require.NoError(t, json.Unmarshal(data, &resp))
	require.NotNil(t, resp.Result)
	assert.Equal(t, types.TaxonomyHexaco60, resp.Result.Taxonomy)
	for _, code := range []string{"H", "E", "X", "A", "C", "O"} {
		assert.Equal(t, 50, resp.Result.Dimensions[code], code)
		assert.Equal(t, types.LevelMedium, resp.Profile.Categories[code], code)
	}
	assert.Empty(t, resp.Profile.InsightPairs)
	assert.Empty(t, resp.Profile.RiskPairs)
}

func TestScoreCommand_Stdout(t *testing.T) {
	t.Cleanup(resetScoreFlags)

	answersPath := writeAnswers(t, types.TaxonomyMBTI, func(types.QuestionDef) types.AnswerValue {
		return "B"
	})

	stdout, stderr, err := executeCommand(t, "score", "-t", "mbti", "-a", answersPath, "--verbose")
	require.NoError(t, err)

	var resp types.ScoreResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "INFP", resp.Result.TypeCode)
	assert.Contains(t, stderr, "SCORE RESULT")
	assert.Contains(t, stderr, "Type: INFP")
}

func TestScoreCommand_Errors(t *testing.T) {
	incomplete := filepath.Join(t.TempDir(), "incomplete.json")
	require.NoError(t, os.WriteFile(incomplete, []byte(`[{"question_id": 1, "value": 3}]`), 0644))

	malformed := filepath.Join(t.TempDir(), "malformed.json")
	require.NoError(t, os.WriteFile(malformed, []byte(`{"answers": "nope"}`), 0644))

	tests := []struct {
		name        string
		args        []string
		errorString string
	}{
		{
			name:        "unknown taxonomy",
			args:        []string{"score", "--taxonomy", "enneagram", "--answers", incomplete},
			errorString: "unknown taxonomy",
		},
		{
			name:        "missing file",
			args:        []string{"score", "--taxonomy", "mbti", "--answers", "/nonexistent/answers.json"},
			errorString: "failed to read answers file",
		},
		{
			name:        "schema mismatch",
			args:        []string{"score", "--taxonomy", "mbti", "--answers", malformed},
			errorString: "does not validate against schema",
		},
		{
			name:        "incomplete answers",
			args:        []string{"score", "--taxonomy", "hexaco_60", "--answers", incomplete},
			errorString: "missing answer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Cleanup(resetScoreFlags)
			_, _, err := executeCommand(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}
