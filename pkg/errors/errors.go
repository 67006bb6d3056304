package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrNotFound     = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrUnauthorized = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrValidation   = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal     = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")

	// Planning failures. Requirement violations and scheduling errors are
	// surfaced inside the planning view rather than as an HTTP status, so
	// the status here only matters when they escape that path.
	ErrSearchFailure           = New("SEARCH_FAILURE", http.StatusBadGateway, "course search backend failed")
	ErrSolverFailure           = New("SOLVER_FAILURE", http.StatusBadGateway, "schedule solver failed")
	ErrEmptySolution           = New("EMPTY_SOLUTION", http.StatusUnprocessableEntity, "no compatible schedule found for the selected sections")
	ErrRequirementViolation    = New("REQUIREMENT_VIOLATION", http.StatusConflict, "lab/base course coupling violated")
	ErrVerificationUnavailable = New("VERIFICATION_UNAVAILABLE", http.StatusOK, "could not verify lab requirement")
	ErrPersistenceFailure      = New("PERSISTENCE_FAILURE", http.StatusInternalServerError, "could not persist planning state")

	// ErrStateNotFound is returned by the state repository when no blob
	// exists for a planner.
	ErrStateNotFound = New("STATE_NOT_FOUND", http.StatusNotFound, "no planning state stored")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
