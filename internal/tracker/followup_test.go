package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDueFollowUpsDayTwo(t *testing.T) {
	lead := LeadSchedule{
		AppointmentKey: "2024-01-01",
		Completed:      map[int]string{},
	}
	due := DueFollowUps(lead, anchorOn(t, "2024-01-02"))

	require.Len(t, due, 1)
	assert.Equal(t, 2, due[0].Day)
	assert.Equal(t, "Handwritten Letter", due[0].Action)
	assert.False(t, due[0].IsCompleted)
}

func TestDueFollowUpsDayOneIsAppointmentDate(t *testing.T) {
	lead := LeadSchedule{AppointmentKey: "2024-01-01"}
	due := DueFollowUps(lead, anchorOn(t, "2024-01-01"))

	require.Len(t, due, 1)
	assert.Equal(t, 1, due[0].Day)
	assert.Equal(t, "Call", due[0].Action)
}

func TestDueFollowUpsLaterSteps(t *testing.T) {
	lead := LeadSchedule{AppointmentKey: "2024-01-01"}

	// Day 30 lands 29 days after the appointment.
	due := DueFollowUps(lead, anchorOn(t, "2024-01-30"))
	require.Len(t, due, 1)
	assert.Equal(t, 30, due[0].Day)
	assert.Equal(t, "Special Offer", due[0].Action)

	// Gap days (6..9, 11..13, ...) have nothing due.
	assert.Empty(t, DueFollowUps(lead, anchorOn(t, "2024-01-07")))
}

func TestDueFollowUpsNoAppointmentDate(t *testing.T) {
	lead := LeadSchedule{Completed: map[int]string{1: "2024-01-01"}}
	assert.Empty(t, DueFollowUps(lead, anchorOn(t, "2024-01-01")))
}

func TestDueFollowUpsReflectsCompletion(t *testing.T) {
	lead := LeadSchedule{
		AppointmentKey: "2024-01-01",
		Completed:      map[int]string{2: "2024-01-02"},
	}
	due := DueFollowUps(lead, anchorOn(t, "2024-01-02"))

	require.Len(t, due, 1)
	assert.True(t, due[0].IsCompleted)
}

func TestCompleteFollowUpIdempotent(t *testing.T) {
	completed := map[int]string{}

	assert.True(t, CompleteFollowUp(completed, 2, "2024-01-02"))
	assert.Equal(t, map[int]string{2: "2024-01-02"}, completed)

	// Second completion is a no-op: state unchanged, no change reported.
	assert.False(t, CompleteFollowUp(completed, 2, "2024-01-03"))
	assert.Equal(t, map[int]string{2: "2024-01-02"}, completed)
}

func TestCompleteFollowUpRejectsUnscheduledDay(t *testing.T) {
	completed := map[int]string{}
	assert.False(t, CompleteFollowUp(completed, 7, "2024-01-07"))
	assert.Empty(t, completed)
}

func TestActionForDay(t *testing.T) {
	assert.Equal(t, "Call", ActionForDay(1))
	assert.Equal(t, "Informational Links", ActionForDay(14))
	assert.Equal(t, "", ActionForDay(6))
}

func TestScheduleDeclaredOrder(t *testing.T) {
	days := make([]int, 0, len(FollowUpSchedule))
	for _, step := range FollowUpSchedule {
		days = append(days, step.Day)
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5, 10, 14, 21, 30}, days)
}
