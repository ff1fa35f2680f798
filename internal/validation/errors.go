package validation

import (
	"fmt"
	"strings"
)

// ValidationErrorType represents the type of validation error
type ValidationErrorType string

const (
	ErrorTypeRequired         ValidationErrorType = "required"
	ErrorTypeInvalidLength    ValidationErrorType = "invalid_length"
	ErrorTypeInvalidCharacter ValidationErrorType = "invalid_character"
	ErrorTypeInvalidValue     ValidationErrorType = "invalid_value"
)

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string
	Type    ValidationErrorType
	Message string
	Value   interface{}
}

// Error implements the error interface for FieldError
func (fe *FieldError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", fe.Field, fe.Message)
}

// ValidationError collects every problem found with one input
type ValidationError struct {
	Errors []FieldError
}

// NewValidationError creates an empty ValidationError
func NewValidationError() *ValidationError {
	return &ValidationError{Errors: make([]FieldError, 0)}
}

// Error implements the error interface for ValidationError
func (ve *ValidationError) Error() string {
	switch len(ve.Errors) {
	case 0:
		return "validation error"
	case 1:
		return ve.Errors[0].Error()
	}

	messages := make([]string, 0, len(ve.Errors))
	for _, err := range ve.Errors {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("multiple validation errors: %s", strings.Join(messages, "; "))
}

// HasErrors returns true if the ValidationError has any errors
func (ve *ValidationError) HasErrors() bool {
	return len(ve.Errors) > 0
}

// AddError adds a new field error
func (ve *ValidationError) AddError(field string, errorType ValidationErrorType, message string, value interface{}) {
	ve.Errors = append(ve.Errors, FieldError{
		Field:   field,
		Type:    errorType,
		Message: message,
		Value:   value,
	})
}

// AddRequiredError adds a required field error
func (ve *ValidationError) AddRequiredError(field string) {
	ve.AddError(field, ErrorTypeRequired, fmt.Sprintf("%s is required", field), nil)
}

// AddInvalidLengthError adds an invalid length error
func (ve *ValidationError) AddInvalidLengthError(field string, value interface{}, min, max int) {
	var message string
	switch {
	case min > 0 && max > 0:
		message = fmt.Sprintf("%s must be between %d and %d characters long", field, min, max)
	case min > 0:
		message = fmt.Sprintf("%s must be at least %d characters long", field, min)
	case max > 0:
		message = fmt.Sprintf("%s must be at most %d characters long", field, max)
	default:
		message = fmt.Sprintf("%s has invalid length", field)
	}
	ve.AddError(field, ErrorTypeInvalidLength, message, value)
}

// AddInvalidCharacterError adds an invalid character error
func (ve *ValidationError) AddInvalidCharacterError(field string, value interface{}) {
	ve.AddError(field, ErrorTypeInvalidCharacter, fmt.Sprintf("%s contains invalid characters", field), value)
}

// AddInvalidValueError adds an invalid value error
func (ve *ValidationError) AddInvalidValueError(field string, value interface{}, reason string) {
	ve.AddError(field, ErrorTypeInvalidValue, fmt.Sprintf("%s has invalid value: %s", field, reason), value)
}

// GetUserFriendlyMessage returns the messages without field prefixes
func (ve *ValidationError) GetUserFriendlyMessage() string {
	if len(ve.Errors) == 0 {
		return "Input validation failed"
	}
	if len(ve.Errors) == 1 {
		return ve.Errors[0].Message
	}

	lines := make([]string, 0, len(ve.Errors))
	for _, err := range ve.Errors {
		lines = append(lines, "- "+err.Message)
	}
	return fmt.Sprintf("Multiple validation errors occurred:\n%s", strings.Join(lines, "\n"))
}

// IsValidationError checks if an error is a ValidationError
func IsValidationError(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}
