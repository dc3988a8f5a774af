package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ScoreRequest asks for a stateless score + profile of an answer set.
type ScoreRequest struct {
	Taxonomy Taxonomy `json:"taxonomy" validate:"required"`
	Answers  []Answer `json:"answers" validate:"required,min=1,dive"`
}

// SubmitResultsRequest submits answers for a participant's assigned taxonomy.
type SubmitResultsRequest struct {
	Answers []Answer `json:"answers" validate:"required,min=1,dive"`
}

// ScoreResponse carries a score and its inferred profile.
type ScoreResponse struct {
	Result  *ScoreResult   `json:"result"`
	Profile *ProfileOutput `json:"profile"`
}

// AssignmentResponse reports a participant's taxonomy assignment.
type AssignmentResponse struct {
	ParticipantID uuid.UUID `json:"participant_id"`
	Taxonomy      Taxonomy  `json:"taxonomy"`
	Created       bool      `json:"created"`
}

// StoredResult is a persisted score with its profile.
type StoredResult struct {
	ID            uuid.UUID      `json:"id"`
	ParticipantID uuid.UUID      `json:"participant_id"`
	Taxonomy      Taxonomy       `json:"taxonomy"`
	Result        *ScoreResult   `json:"result"`
	Profile       *ProfileOutput `json:"profile"`
	CreatedAt     time.Time      `json:"created_at"`
}

var validate = validator.New()

// Validate validates the ScoreRequest using the validator.
func (r *ScoreRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the SubmitResultsRequest using the validator.
func (r *SubmitResultsRequest) Validate() error {
	return validate.Struct(r)
}
