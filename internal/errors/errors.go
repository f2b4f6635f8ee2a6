// Package errors provides the coded error taxonomy shared by the inventory core.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode identifies a class of failure to callers.
type ErrorCode string

const (
	// Edit-boundary errors
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Store errors
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrDuplicateKey ErrorCode = "DUPLICATE_KEY"
	ErrDatabase     ErrorCode = "DATABASE_ERROR"
	ErrMigration    ErrorCode = "MIGRATION_FAILED"

	// Snapshot errors
	ErrMalformedRow ErrorCode = "MALFORMED_ROW"
	ErrImportFailed ErrorCode = "IMPORT_FAILED"
	ErrExportFailed ErrorCode = "EXPORT_FAILED"
)

// AppError represents an application error with code and message.
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new AppError with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error with an error code.
func Wrap(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Is reports whether err, or any error in its chain, carries the code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
