package tracker

import (
	"errors"
	"time"
)

const (
	// MinRepeatWeeks and MaxRepeatWeeks bound weekly recurrence expansion.
	// Out-of-range input is rejected, never clamped.
	MinRepeatWeeks = 1
	MaxRepeatWeeks = 52
)

// ErrRepeatWeeksRange is returned when a recurrence request falls outside
// [MinRepeatWeeks, MaxRepeatWeeks].
var ErrRepeatWeeksRange = errors.New("repeat_weeks must be between 1 and 52")

// ExpandWeekly produces the date keys for a weekly series: repeatWeeks
// occurrences at 7-day intervals starting at (and including) the anchor
// date. The caller assigns the shared series ID to the resulting events.
func ExpandWeekly(anchor time.Time, repeatWeeks int) ([]string, error) {
	if repeatWeeks < MinRepeatWeeks || repeatWeeks > MaxRepeatWeeks {
		return nil, ErrRepeatWeeksRange
	}

	keys := make([]string, 0, repeatWeeks)
	for i := 0; i < repeatWeeks; i++ {
		keys = append(keys, Key(AddDays(anchor, 7*i)))
	}
	return keys, nil
}
