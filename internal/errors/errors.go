package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies pipeline failures per the error taxonomy: fatal
// conditions abort the run, while MALFORMED rows are skipped and counted.
type ErrorType string

const (
	ErrTypeSource    ErrorType = "SOURCE"    // record source cannot be read
	ErrTypeSchema    ErrorType = "SCHEMA"    // required column absent
	ErrTypeMalformed ErrorType = "MALFORMED" // single row cannot be parsed
	ErrTypeEmpty     ErrorType = "EMPTY"     // denominator-bearing aggregate has no records
	ErrTypeConfig    ErrorType = "CONFIG"    // invalid configuration
	ErrTypeStorage   ErrorType = "STORAGE"   // export I/O failure
)

// AppError represents an application-specific error with enough context
// (stage, counts) to diagnose where a run failed.
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// IsType reports whether err (or anything it wraps) is an AppError of the
// given type.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

// Helper functions for the taxonomy

// NewSourceError creates an error for an unreadable record source
func NewSourceError(message string, cause error) *AppError {
	return NewAppError(ErrTypeSource, message, cause)
}

// NewSchemaError creates an error for a record source missing required columns
func NewSchemaError(message string, cause error) *AppError {
	return NewAppError(ErrTypeSchema, message, cause)
}

// NewMalformedError creates an error for a single unparseable row
func NewMalformedError(message string, cause error) *AppError {
	return NewAppError(ErrTypeMalformed, message, cause)
}

// NewEmptyDatasetError creates an error for an aggregate with no records
func NewEmptyDatasetError(message string) *AppError {
	return NewAppError(ErrTypeEmpty, message, nil)
}

// NewConfigError creates a configuration-related error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}
