package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Code    string
	Message string
	Fields  map[string]string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func Wrap(err error, code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation builds a field-keyed validation error.
func Validation(fields map[string]string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: "validation failed",
		Fields:  fields,
	}
}

// Common error codes
const (
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeBadRequest        = "BAD_REQUEST"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeUnauthorized      = "UNAUTHORIZED"
	ErrCodeForbidden         = "FORBIDDEN"
	ErrCodeInternalError     = "INTERNAL_ERROR"
	ErrCodeAlreadyExists     = "ALREADY_EXISTS"
	ErrCodeConflict          = "CONFLICT"
	ErrCodeInvalidLink       = "INVALID_LINK"
	ErrCodeInvalidToken      = "INVALID_TOKEN"
	ErrCodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	ErrCodeMethodNotAllowed  = "METHOD_NOT_ALLOWED"
)

// As extracts an *AppError from err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// CodeOf returns the AppError code of err, or INTERNAL_ERROR for foreign errors.
func CodeOf(err error) string {
	if appErr, ok := As(err); ok {
		return appErr.Code
	}
	return ErrCodeInternalError
}

// Is reports whether err carries the given code.
func Is(err error, code string) bool {
	return err != nil && CodeOf(err) == code
}

// HTTPStatus maps an error code to the response status.
func HTTPStatus(code string) int {
	switch code {
	case ErrCodeValidation, ErrCodeBadRequest, ErrCodeAlreadyExists, ErrCodeConflict,
		ErrCodeInvalidLink, ErrCodeInvalidToken:
		return http.StatusBadRequest
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
