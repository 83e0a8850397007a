package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/standardbeagle/todoview/internal/types"
)

// Error types for the todoview system
type ErrorType string

const (
	// Scan errors
	ErrorTypeScan ErrorType = "scan"

	// Buffer errors
	ErrorTypeBufferNotFound ErrorType = "buffer_not_found"
	ErrorTypeBufferTooLarge ErrorType = "buffer_too_large"
	ErrorTypeBufferBinary   ErrorType = "buffer_binary"
	ErrorTypePermission     ErrorType = "permission"

	// Configuration errors
	ErrorTypeConfig ErrorType = "config"

	// Watch errors
	ErrorTypeWatch ErrorType = "watch"

	// Internal errors
	ErrorTypeInternal ErrorType = "internal"
)

// BufferError represents a failure to read or enumerate one buffer. A
// pass records these and keeps going; one bad buffer never blanks the
// whole result.
type BufferError struct {
	Type       ErrorType
	Buffer     types.BufferID
	Operation  string
	Underlying error
	Timestamp  time.Time
}

// NewBufferError creates a buffer error with context
func NewBufferError(op string, id types.BufferID, err error) *BufferError {
	errorType := ErrorTypeBufferNotFound
	if isPermissionError(err) {
		errorType = ErrorTypePermission
	}

	return &BufferError{
		Type:       errorType,
		Buffer:     id,
		Operation:  op,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// WithType overrides the classified error type
func (e *BufferError) WithType(t ErrorType) *BufferError {
	e.Type = t
	return e
}

// isPermissionError checks if the error is a permission error
func isPermissionError(err error) bool {
	return errors.Is(err, fs.ErrPermission)
}

// Error implements the error interface
func (e *BufferError) Error() string {
	return fmt.Sprintf("buffer %s failed for %s: %v", e.Operation, e.Buffer, e.Underlying)
}

// Unwrap returns the underlying error for errors.Is/As
func (e *BufferError) Unwrap() error {
	return e.Underlying
}

// ScanError represents a failure of a whole scan pass
type ScanError struct {
	Type       ErrorType
	Query      string
	Underlying error
	Timestamp  time.Time
}

// NewScanError creates a scan error for the query that triggered the pass
func NewScanError(query string, err error) *ScanError {
	return &ScanError{
		Type:       ErrorTypeScan,
		Query:      query,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *ScanError) Error() string {
	return fmt.Sprintf("scan failed for query %q: %v", e.Query, e.Underlying)
}

// Unwrap returns the underlying error
func (e *ScanError) Unwrap() error {
	return e.Underlying
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field      string
	Value      string
	Underlying error
	Timestamp  time.Time
}

// NewConfigError creates a new config error
func NewConfigError(field, value string, err error) *ConfigError {
	return &ConfigError{
		Field:      field,
		Value:      value,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error for field %s (value %s): %v", e.Field, e.Value, e.Underlying)
}

// Unwrap returns the underlying error
func (e *ConfigError) Unwrap() error {
	return e.Underlying
}

// WatchError represents a filesystem watch failure
type WatchError struct {
	Type       ErrorType
	Path       string
	Operation  string
	Underlying error
	Timestamp  time.Time
}

// NewWatchError creates a new watch error
func NewWatchError(op, path string, err error) *WatchError {
	return &WatchError{
		Type:       ErrorTypeWatch,
		Path:       path,
		Operation:  op,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *WatchError) Error() string {
	return fmt.Sprintf("watch %s failed for %s: %v", e.Operation, e.Path, e.Underlying)
}

// Unwrap returns the underlying error
func (e *WatchError) Unwrap() error {
	return e.Underlying
}

// MultiError represents multiple errors
type MultiError struct {
	Errors []error
}

// NewMultiError creates a new multi-error
func NewMultiError(errs []error) *MultiError {
	// Filter out nil errors
	filtered := make([]error, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	return &MultiError{Errors: filtered}
}

// Error implements the error interface
func (e *MultiError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d errors: %v", len(e.Errors), e.Errors)
}

// Unwrap returns all errors
func (e *MultiError) Unwrap() []error {
	return e.Errors
}
