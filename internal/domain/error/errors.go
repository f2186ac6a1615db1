package error

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeBadRequest      = 4000
	CodeInvalidRole     = 4001
	CodeInvalidStatus   = 4002
	CodeMissingID       = 4003
	CodeMissingField    = 4004
	CodePasswordTooWeak = 4005
	CodeInvalidKey      = 4006
	CodeUnauthenticated = 4010
	CodeForbidden       = 4030
	CodeNotFound        = 4040
	CodeUserNotFound    = 4041
	CodeTargetDisabled  = 4090

	// 5xxx - Server errors
	CodeInternalServer = 5000
)

// Base error types
var (
	// ErrUnauthenticated is returned when the bearer token is missing or invalid
	ErrUnauthenticated = errors.New("missing or invalid bearer token")

	// ErrForbidden is returned when the caller's role is insufficient
	ErrForbidden = errors.New("insufficient role")

	// ErrBadRequest is returned when the request body is malformed
	ErrBadRequest = errors.New("invalid request")

	// ErrMissingID is returned when a required document id is absent
	ErrMissingID = errors.New("document id is required")

	// ErrMissingField is returned when a required field is absent
	ErrMissingField = errors.New("required field is missing")

	// ErrInvalidRole is returned when a role value is outside the allowed set
	ErrInvalidRole = errors.New("invalid role")

	// ErrInvalidStatus is returned when a status value is outside the allowed set
	ErrInvalidStatus = errors.New("invalid status")

	// ErrPasswordTooWeak is returned when a new account password is under the minimum length
	ErrPasswordTooWeak = errors.New("password must be at least 6 characters")

	// ErrInvalidObjectKey is returned when a stored file key falls outside the allowed prefix
	ErrInvalidObjectKey = errors.New("invalid object key")

	// ErrNotFound is returned when a referenced document doesn't exist
	ErrNotFound = errors.New("resource not found")

	// ErrUserNotFound is returned when the referenced user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrAccountNotFound is returned when the identity directory has no matching account
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountDisabled is returned when an operation targets a disabled account
	ErrAccountDisabled = errors.New("account is disabled")

	// ErrDuplicateAccount is returned when creating an account with an existing email
	ErrDuplicateAccount = errors.New("account already exists")

	// ErrNoFile is returned when a resource has no downloadable file attached
	ErrNoFile = errors.New("resource has no file")

	// ErrStorageNotConfigured is returned when object store credentials are absent
	ErrStorageNotConfigured = errors.New("object storage is not configured")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrDatabaseConnection is returned when there's a problem talking to the database
	ErrDatabaseConnection = errors.New("database connection error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return CodeUnauthenticated
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrMissingID):
		return CodeMissingID
	case errors.Is(err, ErrMissingField):
		return CodeMissingField
	case errors.Is(err, ErrInvalidRole):
		return CodeInvalidRole
	case errors.Is(err, ErrInvalidStatus):
		return CodeInvalidStatus
	case errors.Is(err, ErrPasswordTooWeak):
		return CodePasswordTooWeak
	case errors.Is(err, ErrInvalidObjectKey):
		return CodeInvalidKey
	case errors.Is(err, ErrAccountDisabled):
		return CodeTargetDisabled
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrAccountNotFound), errors.Is(err, ErrNoFile):
		return CodeNotFound
	case errors.Is(err, ErrBadRequest), errors.Is(err, ErrStorageNotConfigured), errors.Is(err, ErrDuplicateAccount):
		return CodeBadRequest
	default:
		return CodeInternalServer
	}
}

// HTTPStatus maps a domain error to the HTTP status code callers should return
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case IsBadRequestError(err):
		return http.StatusBadRequest
	case IsNotFoundError(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// IsBadRequestError checks if the error is any client-input error
func IsBadRequestError(err error) bool {
	return errors.Is(err, ErrBadRequest) ||
		errors.Is(err, ErrMissingID) ||
		errors.Is(err, ErrMissingField) ||
		errors.Is(err, ErrInvalidRole) ||
		errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrPasswordTooWeak) ||
		errors.Is(err, ErrInvalidObjectKey) ||
		errors.Is(err, ErrAccountDisabled) ||
		errors.Is(err, ErrDuplicateAccount) ||
		errors.Is(err, ErrStorageNotConfigured)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrNoFile)
}

// CascadeError carries context about a failed lock cascade
type CascadeError struct {
	Scope     string
	Direction string
	Committed int
	Err       error
}

// Error implements the error interface for CascadeError
func (e *CascadeError) Error() string {
	return fmt.Sprintf("cascade %s failed for scope %q after %d committed chunks: %v",
		e.Direction, e.Scope, e.Committed, e.Err)
}

// Unwrap returns the underlying error
func (e *CascadeError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *CascadeError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "cascade_error",
		"scope":      e.Scope,
		"direction":  e.Direction,
		"committed":  e.Committed,
		"error":      e.Err.Error(),
	}
}
