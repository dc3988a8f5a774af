package assignment

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/assessment-engine/internal/types"
)

// AlreadyAssignedError is returned by stores asked to overwrite an assignment.
type AlreadyAssignedError struct {
	ParticipantID uuid.UUID
	Taxonomy      types.Taxonomy
}

func (e *AlreadyAssignedError) Error() string {
	return fmt.Sprintf("participant %s is already assigned to %s", e.ParticipantID, e.Taxonomy)
}

// Error represents a failure while assigning a participant
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}
