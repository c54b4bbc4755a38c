package models

import (
	"time"

	"github.com/google/uuid"
)

// EventType values for calendar events
const (
	EventTypeAppointment = "Appointment"
	EventTypeMeeting     = "Meeting"
	EventTypeCall        = "Call"
	EventTypeFollowUp    = "Follow-up"
	EventTypePersonal    = "Personal"
	EventTypeTask        = "Task"
)

// EventTypes lists the valid calendar event types
var EventTypes = []string{
	EventTypeAppointment,
	EventTypeMeeting,
	EventTypeCall,
	EventTypeFollowUp,
	EventTypePersonal,
	EventTypeTask,
}

// ValidEventType reports whether t is a known calendar event type
func ValidEventType(t string) bool {
	for _, et := range EventTypes {
		if et == t {
			return true
		}
	}
	return false
}

// CalendarEvent represents one entry on a rep's calendar. Events generated
// from a weekly recurrence share a SeriesID and differ only by date; editing
// a single occurrence clears SeriesID and IsRecurring, permanently detaching
// it from the series.
type CalendarEvent struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	UserID      uuid.UUID  `json:"user_id" db:"user_id"`
	Date        string     `json:"date" db:"date"` // YYYY-MM-DD
	Time        string     `json:"time" db:"time"` // HH:mm
	Title       string     `json:"title" db:"title"`
	Type        string     `json:"type" db:"type"`
	IsRecurring bool       `json:"is_recurring" db:"is_recurring"`
	SeriesID    *uuid.UUID `json:"series_id,omitempty" db:"series_id"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// EventCreateRequest is the body for adding a single calendar event
type EventCreateRequest struct {
	Date  string `json:"date" binding:"required"`
	Time  string `json:"time" binding:"required"`
	Title string `json:"title" binding:"required"`
	Type  string `json:"type" binding:"required"`
}

// RecurringEventRequest is the body for creating a weekly series
type RecurringEventRequest struct {
	Date        string `json:"date" binding:"required"` // anchor, first occurrence
	Time        string `json:"time" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Type        string `json:"type" binding:"required"`
	RepeatWeeks int    `json:"repeat_weeks" binding:"required"`
}

// EventUpdateRequest is the body for editing one occurrence. Editing a
// series member detaches it.
type EventUpdateRequest struct {
	Date  *string `json:"date"`
	Time  *string `json:"time"`
	Title *string `json:"title"`
	Type  *string `json:"type"`
}

// EventRangeResponse is the API response for calendar range queries
type EventRangeResponse struct {
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
	Events    []CalendarEvent `json:"events"`
	Total     int             `json:"total"`
}
