// Package draft turns a routed utterance into a structured, unsaved task
// or event record ready for submission to an external store.
//
// The primary path asks the model to elaborate the utterance into a
// constrained JSON object; a deterministic rule path fills in anything the
// model output lacks and is the terminal fallback when the output cannot
// be decoded at all. Building a draft never fails and never performs a
// network mutation.
package draft

import (
	"time"

	"github.com/prem-acharya/ai-agent-backend/ai/timetext"
)

// Repeat describes a recurrence request. Count and Until are mutually
// exclusive downstream; Count wins when both are set.
type Repeat struct {
	Frequency string   `json:"frequency"` // daily, weekly, monthly, yearly
	Count     int      `json:"count,omitempty"`
	Until     string   `json:"until,omitempty"` // YYYY-MM-DD
	ByDay     []string `json:"byday,omitempty"` // MO, TU, ...
	Interval  int      `json:"interval,omitempty"`
}

// Reminder is a single pre-event notification.
type Reminder struct {
	Method        string `json:"method"` // email, popup
	MinutesBefore int    `json:"minutes_before"`
}

// TaskDraft is an unsaved task. Title is never empty and Due is always a
// concrete calendar date.
type TaskDraft struct {
	Title  string          `json:"title"`
	Due    time.Time       `json:"due"`
	Time   *timetext.Clock `json:"time,omitempty"`
	Notes  string          `json:"notes,omitempty"`
	Repeat *Repeat         `json:"repeat,omitempty"`
}

// EventDraft is an unsaved calendar event. EndNextDay marks a wall-clock
// range that crosses midnight: the end time lands on the day after Due.
type EventDraft struct {
	Summary     string          `json:"summary"`
	Description string          `json:"description,omitempty"`
	Location    string          `json:"location,omitempty"`
	Due         time.Time       `json:"due"`
	StartTime   timetext.Clock  `json:"start_time"`
	EndTime     timetext.Clock  `json:"end_time"`
	EndNextDay  bool            `json:"end_next_day,omitempty"`
	Attendees   []string        `json:"attendees,omitempty"`
	Recurrence  *Repeat         `json:"recurrence,omitempty"`
	Reminders   []Reminder      `json:"reminders,omitempty"`
	Virtual     bool            `json:"virtual,omitempty"`
}
