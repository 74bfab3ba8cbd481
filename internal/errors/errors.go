package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrEmptyInput        = errors.New("input is empty or contains only whitespace")
	ErrInvalidJSON       = errors.New("invalid JSON format")
	ErrNoRootElement     = errors.New("XML document has no root element")
	ErrEmptyCSV          = errors.New("CSV input has no data rows")
	ErrEmptyArray        = errors.New("JSON array is empty")
	ErrUnsupportedFormat = errors.New("format is not one of json, xml, yaml")
	ErrNothingExtracted  = errors.New("no JSON payload could be extracted")
	ErrFileNotFound      = errors.New("file not found")
	ErrFileEmpty         = errors.New("file is empty")
	ErrNoInput           = errors.New("no input provided: please specify a file with -i or pipe data to stdin")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeInput       ErrorType = "input"
	ErrorTypeParse       ErrorType = "parse"
	ErrorTypeStructural  ErrorType = "structural"
	ErrorTypeUnsupported ErrorType = "unsupported"
	ErrorTypeConversion  ErrorType = "conversion"
	ErrorTypeOutput      ErrorType = "output"
	ErrorTypeUnknown     ErrorType = "unknown"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewInputError creates a new error related to input handling
func NewInputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInput,
		Message: message,
		Err:     err,
	}
}

// NewParseError creates a new error for malformed input in the stated notation
func NewParseError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeParse,
		Message: message,
		Err:     err,
	}
}

// NewStructuralError creates a new error for input that parses but violates a
// structural precondition, such as XML content outside any root element
func NewStructuralError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeStructural,
		Message: message,
		Err:     err,
	}
}

// NewUnsupportedError creates a new error for an unsupported notation or target
func NewUnsupportedError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeUnsupported,
		Message: message,
		Err:     err,
	}
}

// NewConversionError creates a new error wrapping a sub-stage failure during a
// format pivot. The sub-stage's message is preserved verbatim.
func NewConversionError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeConversion,
		Message: message,
		Err:     err,
	}
}

// NewOutputError creates a new error related to output processing
func NewOutputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeOutput,
		Message: message,
		Err:     err,
	}
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeParse:
			return fmt.Sprintf("Parse error: %s", appErr.Message)
		case ErrorTypeStructural:
			return fmt.Sprintf("Structural error: %s", appErr.Message)
		case ErrorTypeUnsupported:
			return fmt.Sprintf("Unsupported operation: %s", appErr.Message)
		case ErrorTypeConversion:
			return fmt.Sprintf("Conversion error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	// Handle standard errors
	if errors.Is(err, ErrEmptyInput) {
		return "Error: The input is empty. Please provide a document to process."
	}
	if errors.Is(err, ErrInvalidJSON) {
		return "Error: The input contains invalid JSON. Please check your JSON syntax."
	}
	if errors.Is(err, ErrNoRootElement) {
		return "Error: The XML input has no root element."
	}
	if errors.Is(err, ErrUnsupportedFormat) {
		return "Error: Unsupported format. Supported formats are json, xml and yaml."
	}
	if errors.Is(err, ErrNothingExtracted) {
		return "Error: No JSON payload could be extracted from the input."
	}
	if errors.Is(err, ErrFileNotFound) {
		return "Error: The specified file could not be found. Please check the file path."
	}
	if errors.Is(err, ErrFileEmpty) {
		return "Error: The specified file is empty."
	}
	if errors.Is(err, ErrNoInput) {
		return "Error: No input provided. Please specify a file with -i or pipe data to stdin."
	}

	// Generic error message for unknown errors
	return fmt.Sprintf("Error: %v", err)
}
