package tracker

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func anchorOn(t *testing.T, key string) time.Time {
	t.Helper()
	d, err := ParseKey(key)
	require.NoError(t, err)
	return d
}

func TestAggregateEmptyInput(t *testing.T) {
	totals := Aggregate(nil, anchorOn(t, "2024-03-20"))
	assert.Equal(t, Totals{}, totals)

	totals = Aggregate([]Txn{}, anchorOn(t, "2024-03-20"))
	assert.Equal(t, Totals{}, totals)
}

func TestAggregateMonthAndYTD(t *testing.T) {
	txns := []Txn{
		{DateKey: "2024-03-01", AmountCents: 10000},
		{DateKey: "2024-03-15", AmountCents: 5000},
	}
	totals := Aggregate(txns, anchorOn(t, "2024-03-20"))

	assert.Equal(t, int64(0), totals.TodayCents)
	assert.Equal(t, int64(15000), totals.MonthCents)
	assert.Equal(t, int64(15000), totals.YTDCents)
}

func TestAggregateToday(t *testing.T) {
	txns := []Txn{
		{DateKey: "2024-03-20", AmountCents: 2500},
		{DateKey: "2024-03-21", AmountCents: 7500},
	}
	totals := Aggregate(txns, anchorOn(t, "2024-03-20"))
	assert.Equal(t, int64(2500), totals.TodayCents)
}

func TestAggregateWeekWindow(t *testing.T) {
	// Anchor 2024-03-20 is a Wednesday; week runs Sun 03-17 .. Sat 03-23.
	txns := []Txn{
		{DateKey: "2024-03-16", AmountCents: 100}, // Saturday before, excluded
		{DateKey: "2024-03-17", AmountCents: 200}, // week start
		{DateKey: "2024-03-23", AmountCents: 300}, // week end
		{DateKey: "2024-03-24", AmountCents: 400}, // next Sunday, excluded
	}
	totals := Aggregate(txns, anchorOn(t, "2024-03-20"))
	assert.Equal(t, int64(500), totals.WeekCents)
}

func TestAggregateMCVAndACV(t *testing.T) {
	txns := []Txn{
		{DateKey: "2024-03-05", AmountCents: 10000, IsRecurring: true},
		{DateKey: "2024-03-06", AmountCents: 4000},
		{DateKey: "2024-02-05", AmountCents: 9000, IsRecurring: true}, // prior month
	}
	totals := Aggregate(txns, anchorOn(t, "2024-03-20"))

	assert.Equal(t, int64(10000), totals.MCVCents)
	assert.Equal(t, totals.MCVCents*12, totals.ACVCents)
}

func TestAggregateYearBoundary(t *testing.T) {
	txns := []Txn{
		{DateKey: "2023-12-31", AmountCents: 1000},
		{DateKey: "2024-01-01", AmountCents: 2000},
	}
	totals := Aggregate(txns, anchorOn(t, "2024-01-01"))
	assert.Equal(t, int64(2000), totals.YTDCents)
}

func TestAggregateOrderInsensitive(t *testing.T) {
	txns := []Txn{
		{DateKey: "2024-03-20", AmountCents: 100},
		{DateKey: "2024-03-17", AmountCents: 200, IsRecurring: true},
		{DateKey: "2024-03-01", AmountCents: 300},
		{DateKey: "2024-01-15", AmountCents: 400},
		{DateKey: "2024-03-23", AmountCents: 500, IsRecurring: true},
	}
	anchor := anchorOn(t, "2024-03-20")
	want := Aggregate(txns, anchor)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := make([]Txn, len(txns))
		copy(shuffled, txns)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		assert.Equal(t, want, Aggregate(shuffled, anchor))
	}
}

func TestAggregateSkipsMalformedKeys(t *testing.T) {
	txns := []Txn{
		{DateKey: "2024-03-20", AmountCents: 100},
		{DateKey: "garbage", AmountCents: 9999},
	}
	totals := Aggregate(txns, anchorOn(t, "2024-03-20"))
	assert.Equal(t, int64(100), totals.TodayCents)
	assert.Equal(t, int64(100), totals.YTDCents)
}

func TestGroupTotalsSortedDescending(t *testing.T) {
	txns := []Txn{
		{DateKey: "2024-03-01", AmountCents: 100, Group: "Widgets"},
		{DateKey: "2024-03-02", AmountCents: 400, Group: "Consulting"},
		{DateKey: "2024-03-03", AmountCents: 250, Group: "Widgets"},
		{DateKey: "2024-03-04", AmountCents: 50, Group: ""},
	}
	groups := GroupTotals(txns)

	require.Len(t, groups, 2)
	assert.Equal(t, GroupTotal{Key: "Consulting", AmountCents: 400, Count: 1}, groups[0])
	assert.Equal(t, GroupTotal{Key: "Widgets", AmountCents: 350, Count: 2}, groups[1])
}

func TestGroupTotalsTieBreaksByKey(t *testing.T) {
	txns := []Txn{
		{DateKey: "2024-03-01", AmountCents: 100, Group: "B"},
		{DateKey: "2024-03-02", AmountCents: 100, Group: "A"},
	}
	groups := GroupTotals(txns)

	require.Len(t, groups, 2)
	assert.Equal(t, "A", groups[0].Key)
	assert.Equal(t, "B", groups[1].Key)
}
