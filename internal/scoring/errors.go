package scoring

import (
	"errors"
	"fmt"
)

// Rejection kinds. Every *Error wraps exactly one of these.
var (
	ErrIncompleteAnswers = errors.New("incomplete answer set")
	ErrDuplicateAnswer   = errors.New("duplicate answer")
	ErrMissingAnswer     = errors.New("missing answer")
	ErrUnknownQuestion   = errors.New("answer for unknown question")
	ErrValueOutOfRange   = errors.New("answer value out of range")
)

// Error represents a rejected answer set. QuestionID is zero when the
// rejection is not tied to a single question.
type Error struct {
	Message    string
	QuestionID int
	Cause      error
}

func (e *Error) Error() string {
	if e.QuestionID != 0 {
		return fmt.Sprintf("%v: question %d: %s", e.Cause, e.QuestionID, e.Message)
	}
	return fmt.Sprintf("%v: %s", e.Cause, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is treats a missing answer as a case of an incomplete answer set.
func (e *Error) Is(target error) bool {
	return target == ErrIncompleteAnswers && e.Cause == ErrMissingAnswer
}

// IsRejection reports whether err is an answer-set rejection (as opposed to a
// configuration or internal failure).
func IsRejection(err error) bool {
	var e *Error
	return errors.As(err, &e)
}
