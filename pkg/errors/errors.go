package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown  ErrorCode = "UNKNOWN"
	ErrInternal ErrorCode = "INTERNAL"

	// Input validation errors, reported before any filesystem mutation
	ErrValidation ErrorCode = "VALIDATION"

	// Workflow precondition errors
	ErrAlreadyLinked ErrorCode = "ALREADY_LINKED"
	ErrNoBackup      ErrorCode = "NO_BACKUP"

	// Filesystem stage errors, wrapping the native OS error text
	ErrCopy       ErrorCode = "COPY"
	ErrBackup     ErrorCode = "BACKUP"
	ErrRemoval    ErrorCode = "REMOVAL"
	ErrLinkCreate ErrorCode = "LINK_CREATE"
	ErrDirCreate  ErrorCode = "DIR_CREATE"

	// Ambient errors
	ErrConfigLoad ErrorCode = "CONFIG_LOAD"
	ErrDetect     ErrorCode = "DETECT"
	ErrWatch      ErrorCode = "WATCH"
)

// CrossSaveError represents a structured error with code and details
type CrossSaveError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *CrossSaveError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *CrossSaveError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *CrossSaveError) Is(target error) bool {
	var targetErr *CrossSaveError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new CrossSaveError with the given code and message
func New(code ErrorCode, message string) *CrossSaveError {
	return &CrossSaveError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new CrossSaveError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *CrossSaveError {
	return &CrossSaveError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a CrossSaveError
func Wrap(err error, code ErrorCode, message string) *CrossSaveError {
	if err == nil {
		return nil
	}
	return &CrossSaveError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *CrossSaveError {
	if err == nil {
		return nil
	}
	return &CrossSaveError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *CrossSaveError) WithDetail(key string, value interface{}) *CrossSaveError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// GetCode extracts the error code from an error, returning ErrUnknown
// for errors that are not CrossSaveErrors.
func GetCode(err error) ErrorCode {
	var csErr *CrossSaveError
	if errors.As(err, &csErr) {
		return csErr.Code
	}
	return ErrUnknown
}

// HasCode reports whether err carries the given code anywhere in its
// chain.
func HasCode(err error, code ErrorCode) bool {
	var csErr *CrossSaveError
	if errors.As(err, &csErr) {
		return csErr.Code == code
	}
	return false
}
