package logger

import (
	"strings"
	"time"
)

// Status is "fail" for a non-nil err and "ok" otherwise.
func Status(err error) string {
	if err == nil {
		return "ok"
	}
	return "fail"
}

// RoundMS rounds d to whole milliseconds; negative durations become zero.
func RoundMS(d time.Duration) time.Duration {
	return max(d, 0).Round(time.Millisecond)
}

// Took is RoundMS(time.Since(start)).
func Took(start time.Time) time.Duration {
	return RoundMS(time.Since(start))
}

// PreviewList joins at most limit values with ", " and reports whether any were left out.
func PreviewList(values []string, limit int) (preview string, cut bool) {
	limit = max(limit, 0)
	if len(values) > limit {
		return strings.Join(values[:limit], ", "), true
	}
	return strings.Join(values, ", "), false
}
