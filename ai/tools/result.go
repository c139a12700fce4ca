// Package tools submits drafts to Google Tasks and Google Calendar and
// reads them back. Calls are made with the caller's OAuth access token,
// one short-lived client per request, and failures are reported as data
// in the Result rather than as errors so the response stream can
// narrate them.
package tools

import "fmt"

// Result is the outcome of a tool call.
type Result struct {
	Success  bool        `json:"success"`
	Message  string      `json:"message,omitempty"`
	Error    string      `json:"error,omitempty"`
	Link     string      `json:"link,omitempty"`
	MeetLink string      `json:"meet_link,omitempty"`
	Tasks    []TaskItem  `json:"tasks,omitempty"`
	Events   []EventItem `json:"events,omitempty"`
}

// TaskItem is one task as read back from the store.
type TaskItem struct {
	Title  string `json:"title"`
	Status string `json:"status"`
	Due    string `json:"due,omitempty"`
	Notes  string `json:"notes,omitempty"`
}

// EventItem is one calendar event as read back from the store.
type EventItem struct {
	Summary     string   `json:"summary"`
	Description string   `json:"description,omitempty"`
	Location    string   `json:"location,omitempty"`
	AllDay      bool     `json:"all_day,omitempty"`
	Start       string   `json:"start"`
	End         string   `json:"end"`
	Link        string   `json:"link,omitempty"`
	MeetLink    string   `json:"meet_link,omitempty"`
	Attendees   []string `json:"attendees,omitempty"`
}

// Window bounds a retrieval in time.
type Window int

const (
	WindowAll Window = iota
	WindowToday
	WindowTomorrow
	WindowUpcoming
)

func (w Window) String() string {
	switch w {
	case WindowToday:
		return "today"
	case WindowTomorrow:
		return "tomorrow"
	case WindowUpcoming:
		return "upcoming"
	default:
		return "all"
	}
}

func succeeded(format string, args ...any) Result {
	return Result{Success: true, Message: fmt.Sprintf(format, args...)}
}

func failed(message string, err error) Result {
	r := Result{Message: message}
	if err != nil {
		r.Error = err.Error()
	}
	return r
}
