package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mataction/mataction-go/internal/tracker"
)

// Lead represents a hot lead promoted out of the daily prospecting list and
// tracked on the fixed follow-up cadence. CompletedFollowUps maps a cadence
// day number to the date key it was completed; a day number is present iff
// that step has been marked done.
type Lead struct {
	ID                 uuid.UUID      `json:"id" db:"id"`
	UserID             uuid.UUID      `json:"user_id" db:"user_id"`
	Name               string         `json:"name" db:"name"`
	Company            *string        `json:"company,omitempty" db:"company"`
	Phone              *string        `json:"phone,omitempty" db:"phone"`
	Email              *string        `json:"email,omitempty" db:"email"`
	InterestLevel      int            `json:"interest_level" db:"interest_level"`
	Notes              *string        `json:"notes,omitempty" db:"notes"`
	DateAdded          time.Time      `json:"date_added" db:"date_added"`
	AppointmentDate    *string        `json:"appointment_date,omitempty" db:"appointment_date"` // YYYY-MM-DD, anchors the cadence
	CompletedFollowUps map[int]string `json:"completed_follow_ups" db:"completed_followups"`    // JSONB
}

// Schedule returns the follow-up engine's view of this lead.
func (l *Lead) Schedule() tracker.LeadSchedule {
	appt := ""
	if l.AppointmentDate != nil {
		appt = *l.AppointmentDate
	}
	completed := l.CompletedFollowUps
	if completed == nil {
		completed = map[int]string{}
	}
	return tracker.LeadSchedule{
		AppointmentKey: appt,
		Completed:      completed,
	}
}

// LeadCreateRequest is the body for adding a hot lead
type LeadCreateRequest struct {
	Name            string  `json:"name" binding:"required"`
	Company         *string `json:"company"`
	Phone           *string `json:"phone"`
	Email           *string `json:"email"`
	InterestLevel   int     `json:"interest_level" binding:"omitempty,min=1,max=10"`
	Notes           *string `json:"notes"`
	AppointmentDate *string `json:"appointment_date"`
}

// LeadUpdateRequest is the body for editing lead contact info
type LeadUpdateRequest struct {
	Name            *string `json:"name"`
	Company         *string `json:"company"`
	Phone           *string `json:"phone"`
	Email           *string `json:"email"`
	InterestLevel   *int    `json:"interest_level" binding:"omitempty,min=1,max=10"`
	Notes           *string `json:"notes"`
	AppointmentDate *string `json:"appointment_date"`
}

// LeadConvertRequest is the body for converting a lead to a client with its
// first logged transaction
type LeadConvertRequest struct {
	Product     string `json:"product" binding:"required"`
	AmountCents int64  `json:"amount_cents" binding:"min=0"`
	IsRecurring bool   `json:"is_recurring"`
	Date        string `json:"date"` // defaults to today
}

// DueLead pairs a lead with its follow-up steps due on a given day
type DueLead struct {
	Lead      Lead                  `json:"lead"`
	FollowUps []tracker.DueFollowUp `json:"follow_ups"`
}

// DueFollowUpsResponse is the API response for the due-follow-ups view
type DueFollowUpsResponse struct {
	Date  string    `json:"date"`
	Leads []DueLead `json:"leads"`
	Total int       `json:"total"`
}
