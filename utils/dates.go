// utils/dates.go
package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// CombineDateTime merges a calendar day with a clock time, zeroing
// seconds and nanoseconds.
func CombineDateTime(date time.Time, hour, min int) time.Time {
	year, month, day := date.Date()
	return time.Date(year, month, day, hour, min, 0, 0, date.Location())
}

// ParseClock parses a 24h "HH:MM" string.
func ParseClock(s string) (hour, min int, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time format: %q", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", s)
	}
	min, err = strconv.Atoi(parts[1])
	if err != nil || min < 0 || min > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hour, min, nil
}

// ParseDate accepts "2006-01-02" or a full RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date: %q", s)
	}
	return t, nil
}

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func EndOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 23, 59, 59, 999000000, t.Location())
}
