package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/assessment-engine/internal/types"
)

// SaveScoreResult stores a score and its profile verbatim as JSONB
func (db *DB) SaveScoreResult(ctx context.Context, participantID uuid.UUID, result *types.ScoreResult, profile *types.ProfileOutput) (*types.StoredResult, error) {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal score result: %w", err)
	}
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile: %w", err)
	}

	stored := &types.StoredResult{
		ParticipantID: participantID,
		Taxonomy:      result.Taxonomy,
		Result:        result,
		Profile:       profile,
	}
	err = db.q.QueryRow(ctx,
		`INSERT INTO score_results (participant_id, taxonomy, result, profile)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		participantID, string(result.Taxonomy), resultJSON, profileJSON,
	).Scan(&stored.ID, &stored.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save score result: %w", err)
	}
	return stored, nil
}

// GetLatestScoreResult returns the participant's most recent result, or nil if none
func (db *DB) GetLatestScoreResult(ctx context.Context, participantID uuid.UUID) (*types.StoredResult, error) {
	var stored types.StoredResult
	var taxonomy string
	var resultJSON, profileJSON []byte

	err := db.q.QueryRow(ctx,
		`SELECT id, participant_id, taxonomy, result, profile, created_at
		 FROM score_results WHERE participant_id = $1
		 ORDER BY created_at DESC LIMIT 1`,
		participantID,
	).Scan(&stored.ID, &stored.ParticipantID, &taxonomy, &resultJSON, &profileJSON, &stored.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get score result: %w", err)
	}
	stored.Taxonomy = types.Taxonomy(taxonomy)

	if err := decodeStored(&stored, resultJSON, profileJSON); err != nil {
		return nil, err
	}
	return &stored, nil
}

func decodeStored(stored *types.StoredResult, resultJSON, profileJSON []byte) error {
	stored.Result = &types.ScoreResult{}
	if err := json.Unmarshal(resultJSON, stored.Result); err != nil {
		return fmt.Errorf("failed to unmarshal score result: %w", err)
	}
	stored.Profile = &types.ProfileOutput{}
	if err := json.Unmarshal(profileJSON, stored.Profile); err != nil {
		return fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return nil
}
