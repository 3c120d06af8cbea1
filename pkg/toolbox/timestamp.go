package toolbox

import "time"

// TimestampLayout is HH:MM:SS.mmm on a 24-hour clock.
const TimestampLayout = "15:04:05.000"

// CurrentTimestamp returns the local wall-clock time as HH:MM:SS.mmm,
// for example "23:47:24.805". The result is always 12 characters.
func CurrentTimestamp() string {
	return FormatTimestamp(time.Now())
}

// FormatTimestamp renders t in its own location using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}
