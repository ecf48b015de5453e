package export

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ValidationError reports a request that must be rejected before any data is
// loaded. Exports are never partially processed.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError means a selected record no longer exists. The whole export
// fails atomically so the user sees a complete artifact or none at all.
type NotFoundError struct {
	Resource string
	IDs      []uuid.UUID
}

func (e *NotFoundError) Error() string {
	missing := make([]string, 0, len(e.IDs))
	for _, id := range e.IDs {
		missing = append(missing, id.String())
	}
	return fmt.Sprintf("%s not found: %s", e.Resource, strings.Join(missing, ", "))
}

// SessionExpiredError means preview state was referenced after its backing
// data was discarded; the caller must re-run configuration.
type SessionExpiredError struct {
	SessionID string
}

func (e *SessionExpiredError) Error() string {
	return fmt.Sprintf("preview session %s has expired", e.SessionID)
}

// EncodingError is fatal to a single export attempt only.
type EncodingError struct {
	Format string
	Err    error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("failed to encode %s artifact: %v", e.Format, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }
