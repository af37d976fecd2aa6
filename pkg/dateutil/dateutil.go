// Package dateutil provides day-age arithmetic and Java-style date pattern
// formatting used by the gooselib logger for line timestamps.
package dateutil

import (
	"strings"
	"time"

	"github.com/vjeantet/jodaTime"
)

// DefaultPattern is the timestamp pattern used for log line prefixes.
// Renders as e.g. "03/14/2026 - 09:26:53 PDT".
const DefaultPattern = "MM/dd/yyyy '-' hh:mm:ss z"

const day = 24 * time.Hour

// now is replaced in tests.
var now = time.Now

// AgeDays returns the absolute number of whole days between t and now.
// The result is truncated toward zero.
func AgeDays(t time.Time) int {
	return DaysBetween(t, now())
}

// AgeDaysMillis is AgeDays for a Unix timestamp in milliseconds.
func AgeDaysMillis(ms int64) int {
	return AgeDays(time.UnixMilli(ms))
}

// DaysBetween returns the absolute number of whole days between a and b.
// It is symmetric: DaysBetween(a, b) == DaysBetween(b, a).
func DaysBetween(a, b time.Time) int {
	diff := a.Sub(b)
	if diff < 0 {
		diff = -diff
	}
	return int(diff / day)
}

// FormatNow renders the current local time with a Java-style pattern and
// appends a trailing space. An empty pattern selects DefaultPattern.
func FormatNow(pattern string) string {
	return FormatAt(now(), pattern)
}

// FormatAt is FormatNow for a caller-supplied instant.
func FormatAt(t time.Time, pattern string) string {
	if pattern == "" {
		pattern = DefaultPattern
	}
	return Format(t, pattern) + " "
}

// Format renders t with a Joda/Java-style date pattern such as
// "MM/dd/yyyy hh:mm:ss z". Text inside single quotes is copied literally and
// '' produces a single quote. An unterminated quote runs to the end of the
// pattern. Characters that are not pattern letters are copied as-is.
func Format(t time.Time, pattern string) string {
	if strings.Count(pattern, "'")%2 != 0 {
		pattern += "'"
	}
	return jodaTime.Format(pattern, t)
}
