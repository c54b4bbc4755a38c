package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a sales rep in the team database
type User struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Username     string     `json:"username" db:"username"`
	DisplayName  string     `json:"display_name" db:"display_name"`
	Email        *string    `json:"email,omitempty" db:"email"`
	PhoneNumber  *string    `json:"phone_number,omitempty" db:"phone_number"`
	AvatarURL    *string    `json:"avatar_url,omitempty" db:"avatar_url"`
	IsManager    bool       `json:"is_manager" db:"is_manager"`
	DailyGoal    int        `json:"daily_goal" db:"daily_goal"` // KPI points target per day
	LoginEnabled bool       `json:"login_enabled" db:"login_enabled"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	LastLogin    *time.Time `json:"last_login,omitempty" db:"last_login"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// UserListResponse is the simplified response for user lists
type UserListResponse struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	AvatarURL   *string   `json:"avatar_url,omitempty"`
	IsManager   bool      `json:"is_manager"`
	DailyGoal   int       `json:"daily_goal"`
	IsActive    bool      `json:"is_active"`
}

// ToListResponse converts User to UserListResponse
func (u *User) ToListResponse() UserListResponse {
	return UserListResponse{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
		IsManager:   u.IsManager,
		DailyGoal:   u.DailyGoal,
		IsActive:    u.IsActive,
	}
}
