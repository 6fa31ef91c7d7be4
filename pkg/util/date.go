package util

import (
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04"
	StampLayout    = "20060102"
)

// ParseTime tries RFC3339, RFC3339Nano, plain dates and unix seconds.
// Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(DateTimeLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, true
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
		return time.Unix(ts, 0), true
	}
	return time.Time{}, false
}

// YearStart returns midnight on January 1st of t's year in t's location.
func YearStart(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
}

// IsIntraday reports whether a bar interval such as "5m" or "1h" is shorter
// than a day.
func IsIntraday(interval string) bool {
	return (strings.HasSuffix(interval, "m") && !strings.HasSuffix(interval, "mo")) || strings.HasSuffix(interval, "h")
}

// FormatBarTime renders a bar timestamp: date and time for intraday bars,
// the date alone otherwise.
func FormatBarTime(t time.Time, intraday bool) string {
	if intraday {
		return t.Format(DateTimeLayout)
	}
	return FormatDate(t)
}

// ParseBarTime parses a value written by FormatBarTime in loc.
func ParseBarTime(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	if t, err := time.ParseInLocation(DateTimeLayout, s, loc); err == nil {
		return t, nil
	}
	return time.ParseInLocation(DateLayout, s, loc)
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string { return t.Format(DateLayout) }

// FormatStamp renders t as YYYYMMDD, used in file names.
func FormatStamp(t time.Time) string { return t.Format(StampLayout) }
