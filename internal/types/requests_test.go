//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		request ScoreRequest
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid request",
			request: ScoreRequest{
				Taxonomy: TaxonomyHexaco60,
				Answers:  []Answer{{QuestionID: 1, Value: "3"}},
			},
		},
		{
			name:    "missing taxonomy",
			request: ScoreRequest{Answers: []Answer{{QuestionID: 1, Value: "3"}}},
			wantErr: true,
			errMsg:  "Taxonomy",
		},
		{
			name:    "no answers",
			request: ScoreRequest{Taxonomy: TaxonomyMBTI},
			wantErr: true,
			errMsg:  "Answers",
		},
		{
			name: "zero question id",
			request: ScoreRequest{
				Taxonomy: TaxonomyMBTI,
				Answers:  []Answer{{QuestionID: 0, Value: "A"}},
			},
			wantErr: true,
			errMsg:  "QuestionID",
		},
		{
			name: "empty value",
			request: ScoreRequest{
				Taxonomy: TaxonomyMBTI,
				Answers:  []Answer{{QuestionID: 1}},
			},
			wantErr: true,
			errMsg:  "Value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSubmitResultsRequest_Validation(t *testing.T) {
	valid := SubmitResultsRequest{Answers: []Answer{{QuestionID: 7, Value: "B"}}}
	assert.NoError(t, valid.Validate())

	empty := SubmitResultsRequest{Answers: []Answer{}}
	assert.Error(t, empty.Validate())
}

func TestStoredResult_JSONFieldNames(t *testing.T) {
	stored := StoredResult{
		ID:            uuid.New(),
		ParticipantID: uuid.New(),
		Taxonomy:      TaxonomyMBTI,
		Result:        &ScoreResult{Type: FormatBinary, Taxonomy: TaxonomyMBTI, TypeCode: "INTJ"},
		Profile:       &ProfileOutput{Categories: map[string]Level{}},
		CreatedAt:     time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	data, err := json.Marshal(stored)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"id", "participant_id", "taxonomy", "result", "profile", "created_at"} {
		assert.Contains(t, raw, key)
	}
	assert.Equal(t, "INTJ", raw["result"].(map[string]any)["type_code"])
}
