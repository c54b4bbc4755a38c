package models

import "github.com/mataction/mataction-go/internal/tracker"

// DashboardResponse is the revenue rollup for one anchor date: period totals
// plus an optional top-group breakdown. Periods are anchored to the requested
// date, not the server clock, so reps can review past days as of that day.
type DashboardResponse struct {
	Date    string               `json:"date"`
	Totals  tracker.Totals       `json:"totals"`
	GroupBy string               `json:"group_by,omitempty"`
	Groups  []tracker.GroupTotal `json:"groups,omitempty"`
}

// DayScoreResponse is the KPI score for one day bucket
type DayScoreResponse struct {
	Date      string `json:"date"`
	Score     int    `json:"score"`
	Contacts  int    `json:"contacts"`
	DailyGoal int    `json:"daily_goal"`
}
