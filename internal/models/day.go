package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mataction/mataction-go/internal/tracker"
)

// Contact represents one prospecting contact logged on a single calendar day.
// The Prospecting map records which of the fixed two-letter action codes were
// taken for this contact; absent and false are equivalent.
type Contact struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	UserID        uuid.UUID       `json:"user_id" db:"user_id"`
	Date          string          `json:"date" db:"date"` // YYYY-MM-DD
	Name          string          `json:"name" db:"name"`
	Company       *string         `json:"company,omitempty" db:"company"`
	Phone         *string         `json:"phone,omitempty" db:"phone"`
	Email         *string         `json:"email,omitempty" db:"email"`
	InterestLevel int             `json:"interest_level" db:"interest_level"` // 1-10
	Prospecting   tracker.CodeSet `json:"prospecting" db:"prospecting"`       // JSONB
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

// DayBucket is everything keyed to one calendar date for one rep: the
// prospecting contacts, calendar events, the win log, and free-text notes.
// Absence of a bucket for a date is equivalent to an empty bucket.
type DayBucket struct {
	Date     string          `json:"date"`
	UserID   uuid.UUID       `json:"user_id"`
	Contacts []Contact       `json:"contacts"`
	Events   []CalendarEvent `json:"events"`
	Wins     []string        `json:"wins"`
	Notes    *string         `json:"notes,omitempty"`
	Score    int             `json:"score"` // KPI points for the day
}

// DayNotesUpdateRequest is the body for updating a day's free-text fields
type DayNotesUpdateRequest struct {
	Notes *string  `json:"notes"`
	Wins  []string `json:"wins"`
}

// ContactCreateRequest is the body for logging a new prospecting contact
type ContactCreateRequest struct {
	Name          string          `json:"name" binding:"required"`
	Company       *string         `json:"company"`
	Phone         *string         `json:"phone"`
	Email         *string         `json:"email"`
	InterestLevel int             `json:"interest_level" binding:"required,min=1,max=10"`
	Prospecting   tracker.CodeSet `json:"prospecting"`
}

// CodeToggleRequest is the body for toggling one prospecting code
type CodeToggleRequest struct {
	Code  tracker.Code `json:"code" binding:"required"`
	Value bool         `json:"value"`
}
