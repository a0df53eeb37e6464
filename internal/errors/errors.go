package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context. The code of a wrapped
// AppError is preserved; anything else becomes INTERNAL_ERROR.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// GetCode returns the code of the outermost AppError in the chain, or "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Is reports whether err carries the given code
func Is(err error, code string) bool {
	return GetCode(err) == code
}

// PublicMessage returns the message that is safe to show a client.
// Client errors keep their message; everything else is generic.
func PublicMessage(err error) string {
	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		return "internal server error"
	}
	switch appErr.Code {
	case CodeInvalidInput, CodeOutOfRange, CodeNotFound, CodeValidationError:
		return appErr.Error()
	default:
		return "internal server error"
	}
}

// HTTPStatus maps an error code to the HTTP status the API responds with
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case CodeInvalidInput, CodeOutOfRange, CodeValidationError:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Predefined error codes
const (
	CodeConfigInvalid   = "CONFIG_INVALID"
	CodeDatabaseError   = "DATABASE_ERROR"
	CodeValidationError = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeInternalError   = "INTERNAL_ERROR"
	CodeInvalidInput    = "INVALID_INPUT"
	CodeOutOfRange      = "OUT_OF_RANGE"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func DatabaseError(message string, cause error) *AppError {
	return &AppError{
		Code:    CodeDatabaseError,
		Message: message,
		Cause:   cause,
	}
}

func ValidationError(message string) *AppError {
	return New(CodeValidationError, message)
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

func OutOfRange(message string) *AppError {
	return New(CodeOutOfRange, message)
}
