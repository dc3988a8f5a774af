package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/assessment-engine/internal/catalog"
	"github.com/jonathan/assessment-engine/internal/scoring"
)

// ErrNotFound indicates a requested resource does not exist
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validation *ErrValidation
		notFound   *ErrNotFound
		unknown    *catalog.UnknownTaxonomyError
	)
	switch {
	case scoring.IsRejection(err):
		return http.StatusUnprocessableEntity
	case errors.As(err, &validation), errors.As(err, &unknown):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
