package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrMissingInput           ErrorType = "MISSING_INPUT"
	ErrUnauthenticated        ErrorType = "UNAUTHENTICATED"
	ErrUpstreamExchangeFailed ErrorType = "UPSTREAM_EXCHANGE_FAILED"
	ErrUpstreamFetchFailed    ErrorType = "UPSTREAM_FETCH_FAILED"
	ErrInternal               ErrorType = "INTERNAL"
)

// AppError represents an application error. Message is safe to show to the
// caller; Cause is for logs only. Details, when set, is the provider's own
// diagnostic payload.
type AppError struct {
	Type      ErrorType
	Message   string
	Cause     error
	Details   interface{}
	Timestamp time.Time
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:      errType,
		Message:   message,
		Cause:     cause,
		Timestamp: time.Now(),
	}
}

// WithDetails attaches a diagnostic payload and returns the same error.
func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

// NewMissingInputError creates an error for a required field the caller left out
func NewMissingInputError(message string) *AppError {
	return New(ErrMissingInput, message, nil)
}

// NewUnauthenticatedError creates an error for a request without a bearer token
func NewUnauthenticatedError(message string) *AppError {
	return New(ErrUnauthenticated, message, nil)
}

// NewExchangeFailedError creates an error for a failed code-for-token exchange
func NewExchangeFailedError(message string, cause error) *AppError {
	return New(ErrUpstreamExchangeFailed, message, cause)
}

// NewFetchFailedError creates an error for a failed upstream read
func NewFetchFailedError(message string, cause error) *AppError {
	return New(ErrUpstreamFetchFailed, message, cause)
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return New(ErrInternal, message, err)
}

// As extracts the AppError from err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func isType(err error, t ErrorType) bool {
	if appErr, ok := As(err); ok {
		return appErr.Type == t
	}
	return false
}

// IsMissingInput checks if the error is a missing input error
func IsMissingInput(err error) bool {
	return isType(err, ErrMissingInput)
}

// IsUnauthenticated checks if the error is an unauthenticated error
func IsUnauthenticated(err error) bool {
	return isType(err, ErrUnauthenticated)
}

// IsExchangeFailed checks if the error is a failed token exchange
func IsExchangeFailed(err error) bool {
	return isType(err, ErrUpstreamExchangeFailed)
}

// IsFetchFailed checks if the error is a failed upstream read
func IsFetchFailed(err error) bool {
	return isType(err, ErrUpstreamFetchFailed)
}

// HTTPStatus maps an error to the status code reported to the caller.
// Errors that are not AppErrors are treated as internal.
func HTTPStatus(err error) int {
	appErr, ok := As(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch appErr.Type {
	case ErrMissingInput:
		return http.StatusBadRequest
	case ErrUnauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
