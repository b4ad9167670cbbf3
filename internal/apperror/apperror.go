package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error kinds. Services return *AppError values wrapping one of these so
// handlers can map outcomes to HTTP status codes with errors.Is.
var (
	ErrValidation         = errors.New("validation error")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrInternal           = errors.New("internal error")
)

// AppError carries a kind, a caller-facing message, and optionally the
// offending input fields.
type AppError struct {
	Kind    error
	Message string
	Fields  []string
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Kind }

func Validation(message string, fields ...string) *AppError {
	return &AppError{Kind: ErrValidation, Message: message, Fields: fields}
}

func Conflict(message string) *AppError {
	return &AppError{Kind: ErrConflict, Message: message}
}

// InvalidCredentials returns the same message regardless of which credential
// was wrong, so login failures do not leak which accounts exist.
func InvalidCredentials() *AppError {
	return &AppError{Kind: ErrInvalidCredentials, Message: "invalid username or password"}
}

func Unauthenticated(message string) *AppError {
	return &AppError{Kind: ErrUnauthenticated, Message: message}
}

func Forbidden(message string) *AppError {
	return &AppError{Kind: ErrForbidden, Message: message}
}

func NotFound(resource string) *AppError {
	return &AppError{Kind: ErrNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

// Internal wraps an unexpected failure at a service boundary. The underlying
// message is surfaced to the caller.
func Internal(err error) *AppError {
	return &AppError{Kind: ErrInternal, Message: err.Error()}
}

// FieldList renders the offending fields for log output.
func (e *AppError) FieldList() string { return strings.Join(e.Fields, ", ") }

// HTTPStatus maps an error to the status code of its kind. Unknown errors
// are treated as internal.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrConflict), errors.Is(err, ErrInvalidCredentials):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
