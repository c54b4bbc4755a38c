package models

import "github.com/google/uuid"

// LeaderboardEntry represents a rep's position on the team leaderboard
type LeaderboardEntry struct {
	Rank         int       `json:"rank"`
	UserID       uuid.UUID `json:"user_id"`
	Username     string    `json:"username"`
	DisplayName  string    `json:"display_name"`
	AvatarURL    *string   `json:"avatar_url,omitempty"`
	Score        int       `json:"score"` // KPI points for the day
	Contacts     int       `json:"contacts"`
	RevenueCents int64     `json:"revenue_cents"` // month-to-date as of the anchor
	DailyGoal    int       `json:"daily_goal"`
}

// LeaderboardResponse is the API response for the team leaderboard
type LeaderboardResponse struct {
	Date        string             `json:"date"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
	TotalUsers  int                `json:"total_users"`
}
