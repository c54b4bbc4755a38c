package tracker

import (
	"fmt"
	"time"
)

// DateKey is the canonical YYYY-MM-DD form used everywhere a calendar day
// identifies data. Zero-padded so keys sort lexicographically, which lets
// range filters use plain string comparison.
const dateKeyLayout = "2006-01-02"

// Key derives the canonical date key from a time's local calendar fields.
// Two times produce the same key iff they fall on the same calendar day.
func Key(t time.Time) string {
	return t.Format(dateKeyLayout)
}

// ParseKey parses a canonical date key back into a midnight time value.
func ParseKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(dateKeyLayout, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q: %w", key, err)
	}
	return t, nil
}

// ValidKey reports whether key is a well-formed canonical date key.
func ValidKey(key string) bool {
	_, err := ParseKey(key)
	return err == nil
}

// WeekStart returns the Sunday on or before t. Weeks start on Sunday
// (weekday index 0), so a Sunday anchor is its own week start.
func WeekStart(t time.Time) time.Time {
	return t.AddDate(0, 0, -int(t.Weekday()))
}

// AddDays shifts a date by whole calendar days, honoring month and year
// boundaries.
func AddDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}
