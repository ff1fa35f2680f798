package sqlite

import (
	"time"
)

// FormatTimeForDB truncates a time.Time to the signed 32-bit epoch seconds stored in the table
func FormatTimeForDB(t time.Time) int32 {
	return int32(t.Unix())
}

// ParseTimeFromDB rebuilds a local time from stored epoch seconds
func ParseTimeFromDB(secs int32) time.Time {
	return time.Unix(int64(secs), 0).UTC().Local()
}

// FormatDurationForDB truncates a duration to whole seconds
func FormatDurationForDB(d time.Duration) int32 {
	return int32(d / time.Second)
}

// ParseDurationFromDB converts a stored second count back into a duration
func ParseDurationFromDB(secs int32) time.Duration {
	return time.Duration(secs) * time.Second
}
