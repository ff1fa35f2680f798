package domain

import (
	"fmt"
	"time"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
)

// TimeToReadable renders a second count with the largest units that apply,
// e.g. 45s, 2m5s, 1h1m1s, 1d1h1m1s. Negative counts render as 0s.
func TimeToReadable(secs int64) string {
	if secs < 0 {
		secs = 0
	}

	switch {
	case secs < secondsPerMinute:
		return fmt.Sprintf("%ds", secs)
	case secs < secondsPerHour:
		return fmt.Sprintf("%dm%ds",
			secs/secondsPerMinute,
			secs%secondsPerMinute)
	case secs < secondsPerDay:
		return fmt.Sprintf("%dh%dm%ds",
			secs/secondsPerHour,
			secs%secondsPerHour/secondsPerMinute,
			secs%secondsPerMinute)
	default:
		return fmt.Sprintf("%dd%dh%dm%ds",
			secs/secondsPerDay,
			secs%secondsPerDay/secondsPerHour,
			secs%secondsPerHour/secondsPerMinute,
			secs%secondsPerMinute)
	}
}

// ReadableDuration is TimeToReadable for a time.Duration, truncated to whole seconds.
func ReadableDuration(d time.Duration) string {
	return TimeToReadable(int64(d / time.Second))
}
