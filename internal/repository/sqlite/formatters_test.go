package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatTimeForDB(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected int32
	}{
		{
			name:     "Epoch",
			input:    time.Unix(0, 0),
			expected: 0,
		},
		{
			name:     "UTC time",
			input:    time.Date(2024, 1, 15, 10, 30, 45, 0, time.UTC),
			expected: 1705314645,
		},
		{
			name:     "Time with timezone",
			input:    time.Date(2024, 1, 15, 5, 30, 45, 0, time.FixedZone("EST", -5*3600)),
			expected: 1705314645,
		},
		{
			name:     "Nanoseconds are truncated",
			input:    time.Date(2024, 1, 15, 10, 30, 45, 999999999, time.UTC),
			expected: 1705314645,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatTimeForDB(tt.input))
		})
	}
}

func TestParseTimeFromDB(t *testing.T) {
	parsed := ParseTimeFromDB(1705314645)

	assert.True(t, parsed.Equal(time.Date(2024, 1, 15, 10, 30, 45, 0, time.UTC)))
	assert.Equal(t, time.Local, parsed.Location())
}

func TestFormatTimeForDB_RoundTrip(t *testing.T) {
	originalTime := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	parsed := ParseTimeFromDB(FormatTimeForDB(originalTime))

	assert.True(t, originalTime.Equal(parsed))
}

func TestFormatDurationForDB(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Duration
		expected int32
	}{
		{"Zero", 0, 0},
		{"Whole seconds", 125 * time.Second, 125},
		{"Sub-second part truncated", 3*time.Second + 900*time.Millisecond, 3},
		{"One day", 24 * time.Hour, 86400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDurationForDB(tt.input))
		})
	}
}

func TestParseDurationFromDB(t *testing.T) {
	assert.Equal(t, 90061*time.Second, ParseDurationFromDB(90061))
	assert.Equal(t, time.Duration(0), ParseDurationFromDB(0))
}
