package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyRoundTrip(t *testing.T) {
	dates := []time.Time{
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local),
		time.Date(2024, 2, 29, 23, 59, 59, 0, time.Local), // leap day, end of day
		time.Date(1999, 12, 31, 12, 0, 0, 0, time.Local),
		time.Date(2026, 9, 5, 6, 30, 0, 0, time.Local),
	}

	for _, d := range dates {
		parsed, err := ParseKey(Key(d))
		require.NoError(t, err)
		assert.Equal(t, d.Year(), parsed.Year())
		assert.Equal(t, d.Month(), parsed.Month())
		assert.Equal(t, d.Day(), parsed.Day())
	}
}

func TestKeyZeroPadded(t *testing.T) {
	d := time.Date(2024, 3, 5, 10, 0, 0, 0, time.Local)
	assert.Equal(t, "2024-03-05", Key(d))
}

func TestKeysSortLexicographically(t *testing.T) {
	a := Key(time.Date(2024, 9, 30, 0, 0, 0, 0, time.Local))
	b := Key(time.Date(2024, 10, 1, 0, 0, 0, 0, time.Local))
	assert.True(t, a < b)
}

func TestParseKeyRejectsGarbage(t *testing.T) {
	for _, bad := range []string{"", "2024-1-5", "03/05/2024", "2024-13-01", "not-a-date"} {
		_, err := ParseKey(bad)
		assert.Error(t, err, "expected error for %q", bad)
	}
}

func TestWeekStartSundayIsItself(t *testing.T) {
	sunday := time.Date(2024, 3, 17, 15, 0, 0, 0, time.Local) // a Sunday
	require.Equal(t, time.Sunday, sunday.Weekday())
	assert.Equal(t, Key(sunday), Key(WeekStart(sunday)))
}

func TestWeekStartMidweek(t *testing.T) {
	wednesday := time.Date(2024, 3, 20, 0, 0, 0, 0, time.Local)
	require.Equal(t, time.Wednesday, wednesday.Weekday())
	assert.Equal(t, "2024-03-17", Key(WeekStart(wednesday)))
}

func TestAddDaysCrossesMonthBoundary(t *testing.T) {
	jan31 := time.Date(2024, 1, 31, 0, 0, 0, 0, time.Local)
	assert.Equal(t, "2024-02-01", Key(AddDays(jan31, 1)))
}
