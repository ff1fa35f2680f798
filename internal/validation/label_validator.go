package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	DefaultLabelMinLength = 1
	DefaultLabelMaxLength = 255
)

// LabelValidator checks task labels before they become primary keys
type LabelValidator struct {
	minLength int
	maxLength int
}

// NewLabelValidator creates a validator with the given length bounds.
// Non-positive bounds fall back to the defaults.
func NewLabelValidator(minLength, maxLength int) *LabelValidator {
	if minLength <= 0 {
		minLength = DefaultLabelMinLength
	}
	if maxLength <= 0 {
		maxLength = DefaultLabelMaxLength
	}
	return &LabelValidator{minLength: minLength, maxLength: maxLength}
}

// ValidateLabel reports every problem with label, or nil.
// field names the argument in messages, e.g. "label" or "new label".
func (lv *LabelValidator) ValidateLabel(field, label string) error {
	validationError := NewValidationError()
	trimmed := strings.TrimSpace(label)

	if trimmed == "" {
		validationError.AddRequiredError(field)
		return validationError
	}

	if trimmed != label {
		validationError.AddInvalidValueError(field, label, "leading or trailing whitespace")
	}

	length := utf8.RuneCountInString(trimmed)
	if length < lv.minLength || length > lv.maxLength {
		validationError.AddInvalidLengthError(field, trimmed, lv.minLength, lv.maxLength)
	}

	if strings.IndexFunc(trimmed, unicode.IsControl) >= 0 {
		validationError.AddInvalidCharacterError(field, trimmed)
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}
