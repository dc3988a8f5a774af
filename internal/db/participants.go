package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/assessment-engine/internal/assignment"
	"github.com/jonathan/assessment-engine/internal/types"
)

// assignmentLockKey is the advisory lock serializing taxonomy assignment
const assignmentLockKey int64 = 0x61737369676e // "assign"

// GetAssignment returns the participant's taxonomy, if assigned
func (db *DB) GetAssignment(ctx context.Context, participantID uuid.UUID) (types.Taxonomy, bool, error) {
	var taxonomy *string
	err := db.q.QueryRow(ctx,
		`SELECT taxonomy FROM participants WHERE id = $1`,
		participantID,
	).Scan(&taxonomy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get assignment: %w", err)
	}
	if taxonomy == nil {
		return "", false, nil
	}
	return types.Taxonomy(*taxonomy), true, nil
}

// CountAssignments returns the number of assigned participants per taxonomy
func (db *DB) CountAssignments(ctx context.Context) (map[types.Taxonomy]int, error) {
	rows, err := db.q.Query(ctx,
		`SELECT taxonomy, COUNT(*) FROM participants
		 WHERE taxonomy IS NOT NULL
		 GROUP BY taxonomy`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count assignments: %w", err)
	}
	defer rows.Close()

	counts := make(map[types.Taxonomy]int)
	for rows.Next() {
		var taxonomy string
		var count int
		if err := rows.Scan(&taxonomy, &count); err != nil {
			return nil, fmt.Errorf("failed to scan assignment count: %w", err)
		}
		counts[types.Taxonomy(taxonomy)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read assignment counts: %w", err)
	}
	return counts, nil
}

// RecordAssignment writes the participant's taxonomy once. An existing
// assignment is never overwritten; it is reported as *assignment.AlreadyAssignedError.
func (db *DB) RecordAssignment(ctx context.Context, participantID uuid.UUID, taxonomy types.Taxonomy) error {
	var stored string
	err := db.q.QueryRow(ctx,
		`INSERT INTO participants (id, taxonomy, assigned_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (id) DO UPDATE SET taxonomy = EXCLUDED.taxonomy, assigned_at = NOW()
		 WHERE participants.taxonomy IS NULL
		 RETURNING taxonomy`,
		participantID, string(taxonomy),
	).Scan(&stored)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("failed to record assignment: %w", err)
	}

	existing, ok, getErr := db.GetAssignment(ctx, participantID)
	if getErr != nil {
		return getErr
	}
	if !ok {
		return fmt.Errorf("failed to record assignment for %s", participantID)
	}
	return &assignment.AlreadyAssignedError{ParticipantID: participantID, Taxonomy: existing}
}

// WithAssignmentLock runs fn inside a transaction holding a transaction-scoped
// advisory lock, so concurrent assignments read counts one at a time
func (db *DB) WithAssignmentLock(ctx context.Context, fn func(ctx context.Context, store assignment.Store) error) error {
	return db.inTx(ctx, func(tx *DB) error {
		if _, err := tx.q.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, assignmentLockKey); err != nil {
			return fmt.Errorf("failed to acquire assignment lock: %w", err)
		}
		return fn(ctx, tx)
	})
}

// DeleteParticipant removes a participant and their results
func (db *DB) DeleteParticipant(ctx context.Context, participantID uuid.UUID) error {
	_, err := db.q.Exec(ctx, `DELETE FROM participants WHERE id = $1`, participantID)
	if err != nil {
		return fmt.Errorf("failed to delete participant: %w", err)
	}
	return nil
}
