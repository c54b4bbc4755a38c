package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mataction/mataction-go/internal/tracker"
)

func keyTime(t *testing.T, key string) time.Time {
	t.Helper()
	parsed, err := tracker.ParseKey(key)
	require.NoError(t, err)
	return parsed
}

func TestRollupWindowMidYear(t *testing.T) {
	from, to := rollupWindow(keyTime(t, "2025-06-15"))
	assert.Equal(t, "2025-01-01", from)
	assert.Equal(t, "2025-12-31", to)
}

func TestRollupWindowCoversWeekAcrossYearStart(t *testing.T) {
	// 2026-01-01 is a Thursday; its week starts Sunday 2025-12-28
	from, to := rollupWindow(keyTime(t, "2026-01-01"))
	assert.Equal(t, "2025-12-28", from)
	assert.Equal(t, "2026-12-31", to)
}

func TestRollupWindowCoversWeekAcrossYearEnd(t *testing.T) {
	// 2024-12-30 is a Monday; its week runs through Saturday 2025-01-04
	from, to := rollupWindow(keyTime(t, "2024-12-30"))
	assert.Equal(t, "2024-01-01", from)
	assert.Equal(t, "2025-01-04", to)
}

// Filtering transactions to the fetch window must not change the week total,
// even when the anchor's week reaches into the prior year.
func TestRollupWindowPreservesWeekTotal(t *testing.T) {
	anchor := keyTime(t, "2026-01-01")
	all := []tracker.Txn{
		{DateKey: "2025-12-28", AmountCents: 500},
		{DateKey: "2025-12-31", AmountCents: 500},
		{DateKey: "2026-01-01", AmountCents: 500},
		{DateKey: "2025-12-27", AmountCents: 9999}, // Saturday before the week
	}

	from, to := rollupWindow(anchor)
	windowed := []tracker.Txn{}
	for _, txn := range all {
		if txn.DateKey >= from && txn.DateKey <= to {
			windowed = append(windowed, txn)
		}
	}

	assert.Equal(t, int64(1500), tracker.Aggregate(all, anchor).WeekCents)
	assert.Equal(t, int64(1500), tracker.Aggregate(windowed, anchor).WeekCents)
}
