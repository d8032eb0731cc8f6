package domain

import (
	"strconv"
	"time"
)

// AgeLabel renders how long ago a history entry was recorded. Entries
// older than a week show their calendar date.
func AgeLabel(timestampMs int64, now time.Time) string {
	at := time.UnixMilli(timestampMs)
	diff := now.Sub(at)

	switch {
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return strconv.Itoa(int(diff/time.Minute)) + "m ago"
	case diff < 24*time.Hour:
		return strconv.Itoa(int(diff/time.Hour)) + "h ago"
	case diff < 7*24*time.Hour:
		return strconv.Itoa(int(diff/(24*time.Hour))) + "d ago"
	default:
		return at.In(now.Location()).Format("2006-01-02")
	}
}
