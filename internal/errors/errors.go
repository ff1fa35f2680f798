package errors

import (
	"errors"
	"fmt"
)

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    "VALIDATION_FAILED",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, identifier string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, identifier),
		Code:    "NOT_FOUND",
		Context: map[string]interface{}{
			"resource":   resource,
			"identifier": identifier,
		},
	}
}

// NewDatabaseError creates a new database error
func NewDatabaseError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeDatabase,
		Message: fmt.Sprintf("database operation failed: %s", operation),
		Code:    "DATABASE_ERROR",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Message: fmt.Sprintf("invalid input for %s: %s", field, reason),
		Code:    "INVALID_INPUT",
		Context: map[string]interface{}{
			"field":  field,
			"value":  value,
			"reason": reason,
		},
	}
}

// NewTimeoutError creates a new timeout error
func NewTimeoutError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeTimeout,
		Message: fmt.Sprintf("operation timed out: %s", operation),
		Code:    "TIMEOUT",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewInvalidTransitionError reports a lifecycle operation that the task's
// current state does not allow.
func NewInvalidTransitionError(label string, from string, operation string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidTransition,
		Message: fmt.Sprintf("%s is in state %s which doesn't allow it to %s", label, from, operation),
		Code:    "INVALID_TRANSITION",
		Context: map[string]interface{}{
			"label":     label,
			"state":     from,
			"operation": operation,
		},
	}
}

// NewInvalidStateCodeError reports a state token that matches no known code.
func NewInvalidStateCodeError(token string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidStateCode,
		Message: fmt.Sprintf("%q is not a known state", token),
		Code:    "INVALID_STATE_CODE",
		Context: map[string]interface{}{
			"token": token,
		},
	}
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// IsNotFound reports whether err is a NotFound AppError.
func IsNotFound(err error) bool {
	return IsErrorType(err, ErrorTypeNotFound)
}

// GetUserMessage returns a user-friendly error message
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation,
			ErrorTypeNotFound,
			ErrorTypeInvalidInput,
			ErrorTypeInvalidTransition,
			ErrorTypeInvalidStateCode:
			return appErr.Message
		case ErrorTypeDatabase:
			return "A database error occurred. Please try again."
		case ErrorTypeTimeout:
			return "The operation timed out. Please try again."
		default:
			return "An unexpected error occurred. Please try again."
		}
	}
	return err.Error()
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError determines if an error should be logged based on its type
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation,
			ErrorTypeNotFound,
			ErrorTypeInvalidInput,
			ErrorTypeInvalidTransition,
			ErrorTypeInvalidStateCode:
			return false
		default:
			return true
		}
	}
	return true
}
