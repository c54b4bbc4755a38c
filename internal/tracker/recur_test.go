package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandWeeklyThreeOccurrences(t *testing.T) {
	keys, err := ExpandWeekly(anchorOn(t, "2024-06-03"), 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-06-03", "2024-06-10", "2024-06-17"}, keys)
}

func TestExpandWeeklyIncludesAnchorFirst(t *testing.T) {
	keys, err := ExpandWeekly(anchorOn(t, "2024-06-03"), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-06-03"}, keys)
}

func TestExpandWeeklyBounds(t *testing.T) {
	anchor := anchorOn(t, "2024-06-03")

	_, err := ExpandWeekly(anchor, 0)
	assert.ErrorIs(t, err, ErrRepeatWeeksRange)

	_, err = ExpandWeekly(anchor, 53)
	assert.ErrorIs(t, err, ErrRepeatWeeksRange)

	keys, err := ExpandWeekly(anchor, 52)
	require.NoError(t, err)
	assert.Len(t, keys, 52)
}

func TestExpandWeeklyCrossesYearBoundary(t *testing.T) {
	keys, err := ExpandWeekly(anchorOn(t, "2024-12-30"), 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-12-30", "2025-01-06"}, keys)
}
