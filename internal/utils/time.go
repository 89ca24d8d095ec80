package utils

import "time"

// FormatTimestamp formats a timestamp for API responses
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
