package errors

import (
	"net/http"

	"warden/internal/errors"
)

// Kind identifies a failure independently of how it is rendered to callers.
// Two errors may share an HTTP code and message but keep distinct kinds.
type Kind string

const (
	KindDuplicateIdentity    Kind = "duplicate_identity"
	KindIdentityNotFound     Kind = "identity_not_found"
	KindInvalidCredentials   Kind = "invalid_credentials"
	KindRoleAssignmentFailed Kind = "role_assignment_failed"
	KindProfileNotFound      Kind = "profile_not_found"
	KindValidationFailed     Kind = "validation_failed"
	KindPasswordHashFailed   Kind = "password_hash_failed"
	KindTokenIssueFailed     Kind = "token_issue_failed"
	KindUnauthorized         Kind = "unauthorized"
	KindForbidden            Kind = "forbidden"
	KindInternal             Kind = "internal"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	Kind() Kind        // Internal failure kind, used for logs and metrics
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	kind      Kind
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(kind Kind, httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		kind:      kind,
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// Is matches another BaseError of the same kind and code, so errors built with
// NewValidationError still match ErrValidationFailed.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return t.kind == e.kind && t.errorCode == e.errorCode
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// Kind returns the internal failure kind
func (e *BaseError) Kind() Kind {
	return e.kind
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// loginFailureMessage is shared by every login rejection so callers cannot
// tell an unknown email from a wrong password.
const (
	loginFailureCode    = "INVALID_CREDENTIALS"
	loginFailureMessage = "invalid email or password"
)

// Predefined error types
var (
	// Identity-related errors
	ErrDuplicateIdentity = NewBaseError(
		KindDuplicateIdentity,
		http.StatusConflict,
		"IDENTITY_ALREADY_EXISTS",
		"an account with this email already exists",
		"",
	)

	ErrIdentityNotFound = NewBaseError(
		KindIdentityNotFound,
		http.StatusUnauthorized,
		loginFailureCode,
		loginFailureMessage,
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		KindInvalidCredentials,
		http.StatusUnauthorized,
		loginFailureCode,
		loginFailureMessage,
		"",
	)

	ErrRoleAssignmentFailed = NewBaseError(
		KindRoleAssignmentFailed,
		http.StatusInternalServerError,
		"ROLE_ASSIGNMENT_FAILED",
		"role was not assigned",
		"",
	)

	ErrProfileNotFound = NewBaseError(
		KindProfileNotFound,
		http.StatusNotFound,
		"PROFILE_NOT_FOUND",
		"profile not found",
		"",
	)

	// Secret handling errors
	ErrPasswordHashFailed = NewBaseError(
		KindPasswordHashFailed,
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"password could not be processed",
		"",
	)

	ErrPasswordTooLong = NewBaseError(
		KindValidationFailed,
		http.StatusBadRequest,
		"PASSWORD_TOO_LONG",
		"password must be at most 72 bytes",
		"",
	)

	ErrTokenIssueFailed = NewBaseError(
		KindTokenIssueFailed,
		http.StatusInternalServerError,
		"TOKEN_ISSUE_FAILED",
		"session token could not be issued",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		KindValidationFailed,
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"request validation failed",
		"",
	)

	// Access errors
	ErrUnauthorized = NewBaseError(
		KindUnauthorized,
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"missing or invalid access token",
		"",
	)

	ErrForbidden = NewBaseError(
		KindForbidden,
		http.StatusForbidden,
		"FORBIDDEN",
		"access denied",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		KindInternal,
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"internal server error",
		"",
	)
)

// NewValidationError returns a validation failure carrying the offending fields as details.
func NewValidationError(details string) *BaseError {
	return NewBaseError(
		KindValidationFailed,
		http.StatusBadRequest,
		ErrValidationFailed.ErrorCode(),
		ErrValidationFailed.Message(),
		details,
	)
}

// KindOf returns the kind of the first AppError in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.Kind()
	}

	return KindInternal
}

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// Unwrap exposes the driver error
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// Kind returns the internal failure kind
func (e *DatabaseExecuteError) Kind() Kind {
	return KindInternal
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
