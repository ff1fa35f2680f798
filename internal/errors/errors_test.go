package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("task", "report")

	if err.Type != ErrorTypeNotFound {
		t.Errorf("NewNotFoundError type = %v, want %v", err.Type, ErrorTypeNotFound)
	}
	if err.Message != "task not found: report" {
		t.Errorf("NewNotFoundError message = %v, want %v", err.Message, "task not found: report")
	}
	if err.Code != "NOT_FOUND" {
		t.Errorf("NewNotFoundError code = %v, want %v", err.Code, "NOT_FOUND")
	}

	if err.Context["identifier"] != "report" {
		t.Errorf("NewNotFoundError should set identifier context")
	}
}

func TestNewDatabaseError(t *testing.T) {
	cause := errors.New("database is locked")
	err := NewDatabaseError("update task", cause)

	if err.Type != ErrorTypeDatabase {
		t.Errorf("NewDatabaseError type = %v, want %v", err.Type, ErrorTypeDatabase)
	}
	if err.Message != "database operation failed: update task" {
		t.Errorf("NewDatabaseError message = %v", err.Message)
	}
	if err.Cause != cause {
		t.Errorf("NewDatabaseError cause = %v, want %v", err.Cause, cause)
	}

	if err.Context["operation"] != "update task" {
		t.Errorf("NewDatabaseError should set operation context")
	}
}

func TestNewInvalidTransitionError(t *testing.T) {
	err := NewInvalidTransitionError("report", "ended", "start")

	if err.Type != ErrorTypeInvalidTransition {
		t.Errorf("type = %v, want %v", err.Type, ErrorTypeInvalidTransition)
	}
	if err.Message != "report is in state ended which doesn't allow it to start" {
		t.Errorf("message = %v", err.Message)
	}
	if err.Code != "INVALID_TRANSITION" {
		t.Errorf("code = %v, want INVALID_TRANSITION", err.Code)
	}
	for key, want := range map[string]string{"label": "report", "state": "ended", "operation": "start"} {
		if got := err.Context[key]; got != want {
			t.Errorf("context %s = %v, want %v", key, got, want)
		}
	}
}

func TestNewInvalidStateCodeError(t *testing.T) {
	err := NewInvalidStateCodeError("finished")

	if err.Type != ErrorTypeInvalidStateCode {
		t.Errorf("type = %v, want %v", err.Type, ErrorTypeInvalidStateCode)
	}
	if err.Message != `"finished" is not a known state` {
		t.Errorf("message = %v", err.Message)
	}
	if err.Context["token"] != "finished" {
		t.Errorf("NewInvalidStateCodeError should carry the offending token")
	}
}

func TestNewTimeoutError(t *testing.T) {
	cause := errors.New("context deadline exceeded")
	err := NewTimeoutError("list tasks", cause)

	if err.Type != ErrorTypeTimeout {
		t.Errorf("type = %v, want %v", err.Type, ErrorTypeTimeout)
	}
	if err.Message != "operation timed out: list tasks" {
		t.Errorf("message = %v", err.Message)
	}
	if err.Cause != cause {
		t.Errorf("cause = %v, want %v", err.Cause, cause)
	}
}

func TestAsAppError_Wrapped(t *testing.T) {
	inner := NewNotFoundError("task", "x")
	wrapped := fmt.Errorf("delete: %w", inner)

	result, ok := AsAppError(wrapped)
	if !ok || result != inner {
		t.Errorf("AsAppError should unwrap to the inner AppError")
	}
	if !IsNotFound(wrapped) {
		t.Errorf("IsNotFound should see through fmt wrapping")
	}
	if IsNotFound(errors.New("plain")) {
		t.Errorf("IsNotFound should be false for plain errors")
	}
	if _, ok := AsAppError(nil); ok {
		t.Errorf("AsAppError should return false for nil")
	}
}

func TestIsErrorType(t *testing.T) {
	err := NewInvalidStateCodeError("x")

	if !IsErrorType(err, ErrorTypeInvalidStateCode) {
		t.Errorf("IsErrorType should return true for matching type")
	}
	if IsErrorType(err, ErrorTypeDatabase) {
		t.Errorf("IsErrorType should return false for different type")
	}
}

func TestGetUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Not found error",
			err:      NewNotFoundError("task", "report"),
			expected: "task not found: report",
		},
		{
			name:     "Invalid transition",
			err:      NewInvalidTransitionError("report", "created", "pause"),
			expected: "report is in state created which doesn't allow it to pause",
		},
		{
			name:     "Invalid state code",
			err:      NewInvalidStateCodeError("zzz"),
			expected: `"zzz" is not a known state`,
		},
		{
			name:     "Database error",
			err:      NewDatabaseError("query", errors.New("locked")),
			expected: "A database error occurred. Please try again.",
		},
		{
			name:     "Timeout error",
			err:      NewTimeoutError("query", nil),
			expected: "The operation timed out. Please try again.",
		},
		{
			name:     "Regular error",
			err:      errors.New("regular error"),
			expected: "regular error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetUserMessage(tt.err)
			if result != tt.expected {
				t.Errorf("GetUserMessage() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	if GetErrorCode(NewInvalidStateCodeError("x")) != "INVALID_STATE_CODE" {
		t.Errorf("GetErrorCode should return correct code for AppError")
	}
	if GetErrorCode(errors.New("regular error")) != "UNKNOWN_ERROR" {
		t.Errorf("GetErrorCode should return UNKNOWN_ERROR for regular error")
	}
}

func TestShouldLogError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"Validation error", NewValidationError("bad label", nil), false},
		{"Not found error", NewNotFoundError("task", "x"), false},
		{"Invalid input error", NewInvalidInputError("label", "", "required"), false},
		{"Invalid transition", NewInvalidTransitionError("x", "ended", "end"), false},
		{"Invalid state code", NewInvalidStateCodeError("x"), false},
		{"Database error", NewDatabaseError("query", errors.New("locked")), true},
		{"Timeout error", NewTimeoutError("query", nil), true},
		{"Regular error", errors.New("regular error"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ShouldLogError(tt.err)
			if result != tt.expected {
				t.Errorf("ShouldLogError() = %v, want %v", result, tt.expected)
			}
		})
	}
}
