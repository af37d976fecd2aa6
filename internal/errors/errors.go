package errors

import (
	stderrors "errors"
	"fmt"
)

// GooseError is the structured error type for gooselib.
// It carries a stable code plus context for CLI output and stderr reports.
type GooseError struct {
	// Code is the unique error code (e.g., "ERR_202_LOG_ROTATE").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, IO, Validation, Internal).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Suggestion is an actionable suggestion for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *GooseError) Error() string {
	if e.Cause != nil && e.Cause.Error() != e.Message {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *GooseError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error by code.
// This enables errors.Is() to work with GooseError.
func (e *GooseError) Is(target error) bool {
	if t, ok := target.(*GooseError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
// Returns the error for method chaining.
func (e *GooseError) WithDetail(key, value string) *GooseError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
// Returns the error for method chaining.
func (e *GooseError) WithSuggestion(suggestion string) *GooseError {
	e.Suggestion = suggestion
	return e
}

// New creates a new GooseError with the given code and message.
// Category and severity are derived from the code.
func New(code string, message string, cause error) *GooseError {
	return &GooseError{
		Code:     code,
		Message:  message,
		Category: categoryFromCode(code),
		Severity: severityFromCode(code),
		Cause:    cause,
	}
}

// Wrap creates a GooseError from an existing error.
// The error's message becomes the GooseError message.
func Wrap(code string, err error) *GooseError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// ConfigError creates a configuration-related error.
func ConfigError(message string, cause error) *GooseError {
	return New(ErrCodeConfigInvalid, message, cause)
}

// IOError creates a log write error.
func IOError(message string, cause error) *GooseError {
	return New(ErrCodeLogWrite, message, cause)
}

// ValidationError creates a validation-related error.
func ValidationError(message string, cause error) *GooseError {
	return New(ErrCodeInvalidInput, message, cause)
}

// IsFatal checks if an error has fatal severity.
func IsFatal(err error) bool {
	if ge, ok := asGooseError(err); ok {
		return ge.Severity == SeverityFatal
	}
	return false
}

// GetCode extracts the error code from a GooseError anywhere in the chain.
// Returns empty string if there is none.
func GetCode(err error) string {
	if ge, ok := asGooseError(err); ok {
		return ge.Code
	}
	return ""
}

// GetCategory extracts the category from a GooseError anywhere in the chain.
// Returns empty string if there is none.
func GetCategory(err error) Category {
	if ge, ok := asGooseError(err); ok {
		return ge.Category
	}
	return ""
}

func asGooseError(err error) (*GooseError, bool) {
	var ge *GooseError
	if stderrors.As(err, &ge) {
		return ge, true
	}
	return nil, false
}
