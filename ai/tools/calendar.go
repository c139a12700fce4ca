package tools

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	calendarapi "google.golang.org/api/calendar/v3"

	"github.com/prem-acharya/ai-agent-backend/ai/draft"
)

const primaryCalendar = "primary"

// defaultReminders apply when the draft carries none: a day and an hour
// ahead by email, ten minutes ahead by popup.
var defaultReminders = []draft.Reminder{
	{Method: "email", MinutesBefore: 1440},
	{Method: "email", MinutesBefore: 60},
	{Method: "popup", MinutesBefore: 10},
}

// Calendar submits and reads Google Calendar events.
type Calendar struct {
	timezone *time.Location
	endpoint string
	now      func() time.Time
}

func NewCalendar(timezone *time.Location, opts ...Option) *Calendar {
	cfg := applyOptions(opts)
	return &Calendar{timezone: timezone, endpoint: cfg.endpoint, now: cfg.now}
}

func (c *Calendar) service(ctx context.Context, accessToken string) (*calendarapi.Service, error) {
	return calendarapi.NewService(ctx, serviceOptions(ctx, accessToken, c.endpoint)...)
}

// Create inserts the draft into the primary calendar. Virtual events get
// a Meet conference attached; a range that crosses midnight ends on the
// following day.
func (c *Calendar) Create(ctx context.Context, accessToken string, d *draft.EventDraft) Result {
	svc, err := c.service(ctx, accessToken)
	if err != nil {
		return failed("Could not reach Google Calendar.", err)
	}

	start := time.Date(d.Due.Year(), d.Due.Month(), d.Due.Day(), d.StartTime.Hour, d.StartTime.Minute, 0, 0, c.timezone)
	endDay := d.Due
	if d.EndNextDay {
		endDay = d.Due.AddDate(0, 0, 1)
	}
	end := time.Date(endDay.Year(), endDay.Month(), endDay.Day(), d.EndTime.Hour, d.EndTime.Minute, 0, 0, c.timezone)

	event := &calendarapi.Event{
		Summary:     d.Summary,
		Description: d.Description,
		Location:    d.Location,
		Start:       &calendarapi.EventDateTime{DateTime: start.Format(time.RFC3339), TimeZone: c.timezone.String()},
		End:         &calendarapi.EventDateTime{DateTime: end.Format(time.RFC3339), TimeZone: c.timezone.String()},
		Recurrence:  buildRecurrence(d.Recurrence),
		Reminders:   buildReminders(d.Reminders),
	}
	for _, email := range d.Attendees {
		event.Attendees = append(event.Attendees, &calendarapi.EventAttendee{Email: email, ResponseStatus: "needsAction"})
	}
	if d.Virtual {
		if event.Location == "" {
			event.Location = "Google Meet"
		}
		event.ConferenceData = &calendarapi.ConferenceData{
			CreateRequest: &calendarapi.CreateConferenceRequest{
				RequestId:             uuid.NewString(),
				ConferenceSolutionKey: &calendarapi.ConferenceSolutionKey{Type: "hangoutsMeet"},
			},
		}
	}

	created, err := svc.Events.Insert(primaryCalendar, event).ConferenceDataVersion(1).Context(ctx).Do()
	if err != nil {
		return failed("Could not create the event.", err)
	}

	slog.Info("event created", "event", created.Id, "attendees", len(d.Attendees))
	r := succeeded("Event %q created.", d.Summary)
	r.Link = created.HtmlLink
	r.MeetLink = created.HangoutLink
	return r
}

// List reads events from the primary calendar inside the window.
func (c *Calendar) List(ctx context.Context, accessToken string, w Window, maxResults int64) Result {
	svc, err := c.service(ctx, accessToken)
	if err != nil {
		return failed("Could not reach Google Calendar.", err)
	}
	if maxResults <= 0 {
		maxResults = 10
	}

	timeMin, timeMax := c.bounds(w)
	resp, err := svc.Events.List(primaryCalendar).
		SingleEvents(true).
		OrderBy("startTime").
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		MaxResults(maxResults).
		Context(ctx).Do()
	if err != nil {
		return failed("Could not list events.", err)
	}

	var items []EventItem
	for _, event := range resp.Items {
		items = append(items, toEventItem(event))
	}
	r := succeeded("Found %d event(s) %s.", len(items), w)
	r.Events = items
	return r
}

// bounds converts a window to a half-open query range. The unbounded
// view looks 30 days ahead.
func (c *Calendar) bounds(w Window) (time.Time, time.Time) {
	now := c.now().In(c.timezone)
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, c.timezone)
	switch w {
	case WindowToday:
		return midnight, midnight.AddDate(0, 0, 1)
	case WindowTomorrow:
		return midnight.AddDate(0, 0, 1), midnight.AddDate(0, 0, 2)
	default:
		return now, now.AddDate(0, 0, 30)
	}
}

func toEventItem(event *calendarapi.Event) EventItem {
	item := EventItem{
		Summary:     event.Summary,
		Description: event.Description,
		Location:    event.Location,
		Link:        event.HtmlLink,
		MeetLink:    event.HangoutLink,
	}
	if item.Summary == "" {
		item.Summary = "Untitled Event"
	}
	if event.Start != nil {
		item.AllDay = event.Start.Date != ""
		if item.AllDay {
			item.Start = event.Start.Date
		} else {
			item.Start = event.Start.DateTime
		}
	}
	if event.End != nil {
		if item.AllDay {
			item.End = event.End.Date
		} else {
			item.End = event.End.DateTime
		}
	}
	for _, attendee := range event.Attendees {
		if attendee.Email != "" {
			item.Attendees = append(item.Attendees, attendee.Email)
		}
	}
	return item
}

// buildRecurrence renders a repeat as an RRULE line. Count takes
// precedence over Until when both are present.
func buildRecurrence(r *draft.Repeat) []string {
	if r == nil {
		return nil
	}
	freq := strings.ToUpper(strings.TrimSpace(r.Frequency))
	switch freq {
	case "DAILY", "WEEKLY", "MONTHLY", "YEARLY":
	default:
		return nil
	}
	rule := "RRULE:FREQ=" + freq
	if r.Interval > 1 {
		rule += fmt.Sprintf(";INTERVAL=%d", r.Interval)
	}
	switch {
	case r.Count > 0:
		rule += fmt.Sprintf(";COUNT=%d", r.Count)
	case r.Until != "":
		until, err := time.Parse("2006-01-02", r.Until)
		if err != nil {
			break
		}
		rule += ";UNTIL=" + until.Format("20060102") + "T235959Z"
	}
	if len(r.ByDay) > 0 {
		rule += ";BYDAY=" + strings.Join(r.ByDay, ",")
	}
	return []string{rule}
}

func buildReminders(reminders []draft.Reminder) *calendarapi.EventReminders {
	if len(reminders) == 0 {
		reminders = defaultReminders
	}
	out := &calendarapi.EventReminders{
		UseDefault:      false,
		ForceSendFields: []string{"UseDefault"},
	}
	for _, r := range reminders {
		out.Overrides = append(out.Overrides, &calendarapi.EventReminder{
			Method:  r.Method,
			Minutes: int64(r.MinutesBefore),
		})
	}
	return out
}
