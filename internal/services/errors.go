// internal/services/errors.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Deliberate failure modes of the catalog services. Handlers map these to
// status codes with errors.As; anything else is an internal error.

// ValidationError reports missing or malformed required input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func newValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// InvalidIDError reports a syntactically malformed identifier, detected
// before any store access.
type InvalidIDError struct {
	ID string
}

func (e *InvalidIDError) Error() string { return fmt.Sprintf("invalid identifier %q", e.ID) }

// NotFoundError reports that no record exists for a well-formed identifier.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

// ConflictError reports a duplicate where uniqueness is expected.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// UpstreamError reports a failure of an external collaborator, currently
// only the media store.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *UpstreamError) Unwrap() error { return e.Err }

// ErrInvalidCredentials is returned by admin login on a bad email/password
// pair, without distinguishing which of the two was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ParseID validates the identifier format before any lookup happens.
func ParseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &InvalidIDError{ID: raw}
	}
	return id, nil
}
