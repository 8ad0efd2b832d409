package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrTldNotPriced indicates that a quote was requested for a TLD with no pricing row.
// It is surfaced to the caller as "pricing unavailable" rather than defaulted.
var ErrTldNotPriced = errors.New("tld is not priced")

// ErrRegistrarUnavailable indicates the registrar API timed out, errored, or
// returned an unparseable payload. Purchase paths must fail closed on this
// error; non-binding quote paths may apply their documented fallback.
var ErrRegistrarUnavailable = errors.New("registrar unavailable")

// ErrDomainUnavailable indicates the registrar reports the domain as taken.
var ErrDomainUnavailable = errors.New("domain unavailable")

// ErrStaleQuote indicates a purchase was attempted with a price that no longer
// matches the locked quote. Checkout rejects instead of silently re-quoting.
var ErrStaleQuote = errors.New("stale quote")

// ErrInvalidTransition indicates a state machine transition that is not allowed
// from the entity's current status.
var ErrInvalidTransition = errors.New("invalid status transition")

// AppError wraps a lower-level failure with an HTTP-ish code and a message.
// Repositories and adapters use it for infrastructure failures that are not
// part of the sentinel taxonomy above.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError with the given code, message and cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that also matches ErrNotFound via errors.Is.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewValidationError creates an AppError that also matches ErrValidation via errors.Is.
func NewValidationError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}
