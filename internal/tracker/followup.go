package tracker

import "time"

// FollowUpStep is one entry in the fixed follow-up cadence: a 1-based day
// offset from the lead's appointment date and the action to take that day.
type FollowUpStep struct {
	Day    int    `json:"day"`
	Action string `json:"action"`
}

// FollowUpSchedule is the fixed day->action cadence applied to every hot
// lead. Day 1 falls on the appointment date itself. The table is iterated in
// declared order and is not user-editable.
var FollowUpSchedule = []FollowUpStep{
	{Day: 1, Action: "Call"},
	{Day: 2, Action: "Handwritten Letter"},
	{Day: 3, Action: "Text Video"},
	{Day: 4, Action: "Personal Visit"},
	{Day: 5, Action: "Thought of You"},
	{Day: 10, Action: "Event Offer"},
	{Day: 14, Action: "Informational Links"},
	{Day: 21, Action: "Video Email"},
	{Day: 30, Action: "Special Offer"},
}

// ActionForDay returns the scheduled action for a day number, or "" if the
// day is not part of the cadence.
func ActionForDay(day int) string {
	for _, step := range FollowUpSchedule {
		if step.Day == day {
			return step.Action
		}
	}
	return ""
}

// LeadSchedule is the follow-up engine's view of a lead: the appointment
// date anchoring the cadence (empty means no follow-ups are ever due) and
// the completion map, keyed by day number with the date key it was completed.
// A day number is present in Completed iff that step has been marked done.
type LeadSchedule struct {
	AppointmentKey string
	Completed      map[int]string
}

// DueFollowUp is one cadence step that falls due on a given day.
type DueFollowUp struct {
	Day         int    `json:"day"`
	Action      string `json:"action"`
	IsCompleted bool   `json:"is_completed"`
}

// DueFollowUps returns the cadence steps due for a lead on the given date,
// in schedule order. A lead without an appointment date has no due steps.
func DueFollowUps(lead LeadSchedule, onDate time.Time) []DueFollowUp {
	if lead.AppointmentKey == "" {
		return nil
	}
	anchor, err := ParseKey(lead.AppointmentKey)
	if err != nil {
		return nil
	}

	onKey := Key(onDate)
	var due []DueFollowUp
	for _, step := range FollowUpSchedule {
		dueKey := Key(AddDays(anchor, step.Day-1)) // day 1 is the appointment itself
		if dueKey != onKey {
			continue
		}
		_, completed := lead.Completed[step.Day]
		due = append(due, DueFollowUp{
			Day:         step.Day,
			Action:      step.Action,
			IsCompleted: completed,
		})
	}
	return due
}

// CompleteFollowUp marks a cadence day as done on the completion map,
// recording the date key it was completed. The only valid transition is
// pending -> completed: re-completing an already-completed day, or a day
// that is not part of the schedule, is a no-op. Returns true iff the map
// changed, so the caller appends the win-log entry exactly once.
func CompleteFollowUp(completed map[int]string, day int, onKey string) bool {
	if ActionForDay(day) == "" {
		return false
	}
	if _, done := completed[day]; done {
		return false
	}
	completed[day] = onKey
	return true
}
