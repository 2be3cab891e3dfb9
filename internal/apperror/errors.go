package apperror

import (
	"errors"
	"fmt"
)

// ConnectionError covers session/media acquisition or teardown failures.
// Fatal for the session: the state machine escalates to ERROR and the user
// must restart.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection error during %s: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

func NewConnectionError(op string, err error) error {
	return &ConnectionError{Op: op, Err: err}
}

// ProcessingError covers extraction and transcript fetch failures. Fatal for
// the session, same escalation as ConnectionError.
type ProcessingError struct {
	Op  string
	Err error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("processing error during %s: %v", e.Op, e.Err)
}

func (e *ProcessingError) Unwrap() error { return e.Err }

func NewProcessingError(op string, err error) error {
	return &ProcessingError{Op: op, Err: err}
}

// ValidationError means blocking fields are missing. Recoverable in place:
// generation is refused, the blocking fields are surfaced, no state change.
type ValidationError struct {
	BlockingMissingFields []string
	Warnings              []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d blocking field(s) missing", len(e.BlockingMissingFields))
}

// GenerationError is an unstructured generation failure. Transient and
// recoverable; the user may retry without any state transition.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("document generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

func NewGenerationError(err error) error {
	return &GenerationError{Err: err}
}

// PersistenceWarning is an autosave failure. Logged only, never surfaced as
// blocking; the next debounce cycle supersedes it.
type PersistenceWarning struct {
	Err error
}

func (e *PersistenceWarning) Error() string {
	return fmt.Sprintf("autosave failed: %v", e.Err)
}

func (e *PersistenceWarning) Unwrap() error { return e.Err }

// IsFatal reports whether err must escalate the session to ERROR.
func IsFatal(err error) bool {
	var ce *ConnectionError
	var pe *ProcessingError
	return errors.As(err, &ce) || errors.As(err, &pe)
}

// AsValidation extracts a ValidationError if err carries one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
