package cli

import (
	"fmt"

	"clockit/internal/errors"
	"clockit/internal/logging"
	"clockit/internal/validation"
)

// ErrorHandler turns service errors into the messages shown to the user
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle prefixes the user message with the failed operation
func (eh *ErrorHandler) Handle(operation string, err error) error {
	eh.log(err)

	if validation.IsValidationError(err) {
		return fmt.Errorf("failed to %s: %s", operation, err.(*validation.ValidationError).GetUserFriendlyMessage())
	}

	if _, ok := errors.AsAppError(err); ok {
		return fmt.Errorf("failed to %s: %s", operation, errors.GetUserMessage(err))
	}

	return fmt.Errorf("failed to %s: %w", operation, err)
}

// log writes the full error chain for faults the user message hides
func (eh *ErrorHandler) log(err error) {
	if errors.ShouldLogError(err) {
		logging.Debugf("%s [%s]\n", err, errors.GetErrorCode(err))
	}
}

// IsNotFoundError checks if an error is a not found error
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsNotFound(err)
}

// IsTransitionError checks if an error is a refused lifecycle transition
func (eh *ErrorHandler) IsTransitionError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeInvalidTransition)
}
