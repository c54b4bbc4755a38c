package tracker

import (
	"sort"
	"time"
)

// Txn is the aggregator's view of a revenue transaction: just the fields the
// rollup math needs, already fetched from the team database. Amounts are
// integer cents.
type Txn struct {
	DateKey     string
	AmountCents int64
	IsRecurring bool
	Group       string // grouping dimension (product, rep), optional
}

// Totals holds the period rollups for one anchor date. All sums are plain
// additions over the input slice, so input order never changes the result.
type Totals struct {
	TodayCents int64 `json:"today_cents"`
	WeekCents  int64 `json:"week_cents"`
	MonthCents int64 `json:"month_cents"`
	YTDCents   int64 `json:"ytd_cents"`
	MCVCents   int64 `json:"mcv_cents"`
	ACVCents   int64 `json:"acv_cents"`
}

// GroupTotal is one row of a grouped breakdown, sorted descending by amount
// for top-N display.
type GroupTotal struct {
	Key         string `json:"key"`
	AmountCents int64  `json:"amount_cents"`
	Count       int    `json:"count"`
}

// Aggregate computes the period totals for txns relative to anchor:
//
//	today: transactions on the anchor's calendar day
//	week:  Sunday-start week containing the anchor
//	month: anchor's calendar month
//	ytd:   anchor's calendar year
//	mcv:   month restricted to recurring transactions
//	acv:   mcv * 12, a projection rather than a sum of real rows
//
// Periods are anchored to the supplied date, not the server clock, so
// browsing a past day recomputes "this week" and "this month" as of that day.
// Empty input yields all zeros. The input slice is never mutated.
func Aggregate(txns []Txn, anchor time.Time) Totals {
	anchorKey := Key(anchor)
	weekStart := Key(WeekStart(anchor))
	weekEnd := Key(AddDays(WeekStart(anchor), 6))
	monthPrefix := anchorKey[:7] // YYYY-MM
	yearPrefix := anchorKey[:4]  // YYYY

	var totals Totals
	for _, t := range txns {
		if !ValidKey(t.DateKey) {
			continue
		}
		if t.DateKey == anchorKey {
			totals.TodayCents += t.AmountCents
		}
		if t.DateKey >= weekStart && t.DateKey <= weekEnd {
			totals.WeekCents += t.AmountCents
		}
		if t.DateKey[:7] == monthPrefix {
			totals.MonthCents += t.AmountCents
			if t.IsRecurring {
				totals.MCVCents += t.AmountCents
			}
		}
		if t.DateKey[:4] == yearPrefix {
			totals.YTDCents += t.AmountCents
		}
	}
	totals.ACVCents = totals.MCVCents * 12
	return totals
}

// GroupTotals sums txns by their Group key, descending by amount with the
// key as a deterministic tiebreaker. Transactions with an empty group are
// skipped.
func GroupTotals(txns []Txn) []GroupTotal {
	sums := make(map[string]*GroupTotal)
	for _, t := range txns {
		if t.Group == "" {
			continue
		}
		g, ok := sums[t.Group]
		if !ok {
			g = &GroupTotal{Key: t.Group}
			sums[t.Group] = g
		}
		g.AmountCents += t.AmountCents
		g.Count++
	}

	out := make([]GroupTotal, 0, len(sums))
	for _, g := range sums {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AmountCents != out[j].AmountCents {
			return out[i].AmountCents > out[j].AmountCents
		}
		return out[i].Key < out[j].Key
	})
	return out
}
