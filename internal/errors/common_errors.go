package errors

import (
	"errors"
	"fmt"
	"os"
)

// ErrorType classifies pipeline failures. Callers branch on the type, never on the message.
type ErrorType string

const (
	// ErrTypeSourceNotFound: the city is unknown, unmapped, or its file is missing
	ErrTypeSourceNotFound ErrorType = "SOURCE_NOT_FOUND"
	// ErrTypeParsing: the source exists but is not a readable trip table
	ErrTypeParsing ErrorType = "PARSING"
	// ErrTypeValidation: caller supplied city, month or day text that does not parse
	ErrTypeValidation ErrorType = "VALIDATION"
	// ErrTypeStorage: the source could not be read for reasons other than absence
	ErrTypeStorage ErrorType = "STORAGE"
	// ErrTypeConfig: configuration failed validation
	ErrTypeConfig ErrorType = "CONFIG"
)

// AppError carries an ErrorType plus structured context for logs and problem responses
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext sets key on the error and returns it for chaining
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates an application error of the given type
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewSourceNotFoundError reports a city with no usable backing dataset
func NewSourceNotFoundError(city string, cause error) *AppError {
	return NewAppError(ErrTypeSourceNotFound, fmt.Sprintf("no data source for city %q", city), cause).
		WithContext("city", city)
}

// NewSourceError classifies a failure to open or read the file at path.
// A missing file is SOURCE_NOT_FOUND, anything else is STORAGE.
func NewSourceError(path string, cause error) *AppError {
	if errors.Is(cause, os.ErrNotExist) {
		return NewAppError(ErrTypeSourceNotFound, "source file does not exist", cause).
			WithContext("path", path)
	}
	return NewAppError(ErrTypeStorage, "failed to read source", cause).
		WithContext("path", path)
}

// NewParsingError reports a source that is present but malformed
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewRowError reports a bad value in one data row. row is 1-based over data rows.
func NewRowError(row int, column string, cause error) *AppError {
	return NewParsingError(fmt.Sprintf("row %d: invalid %s", row, column), cause).
		WithContext("row", row).
		WithContext("column", column)
}

// NewValidationError reports caller input that was rejected before any data was read
func NewValidationError(message string, cause error) *AppError {
	return NewAppError(ErrTypeValidation, message, cause)
}

// NewConfigError reports a configuration that failed validation
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// TypeOf returns the type of the first AppError in err's chain, or "" if there is none
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

// IsType reports whether err wraps an AppError of the given type
func IsType(err error, errType ErrorType) bool {
	return err != nil && TypeOf(err) == errType
}
