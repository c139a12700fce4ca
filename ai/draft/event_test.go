package draft

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildEvent_ExtractionOnly(t *testing.T) {
	b := NewBuilder(nil, fixedNow)

	d := b.BuildEvent(context.Background(), "schedule meeting with john@example.com tomorrow 2pm to 3pm")

	assert.Equal(t, "meeting", d.Summary)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), d.Due)
	assert.Equal(t, "14:00", d.StartTime.String())
	assert.Equal(t, "15:00", d.EndTime.String())
	assert.False(t, d.EndNextDay)
	assert.Equal(t, []string{"john@example.com"}, d.Attendees)
	assert.True(t, d.Virtual)
}

func TestBuildEvent_DefaultHourRange(t *testing.T) {
	b := NewBuilder(nil, fixedNow)

	d := b.BuildEvent(context.Background(), "schedule a team sync tomorrow")

	assert.Equal(t, "10:00", d.StartTime.String())
	assert.Equal(t, "11:00", d.EndTime.String())
}

func TestBuildEvent_SingleTimeGetsHour(t *testing.T) {
	b := NewBuilder(nil, fixedNow)

	d := b.BuildEvent(context.Background(), "schedule a call at 4pm")

	assert.Equal(t, "16:00", d.StartTime.String())
	assert.Equal(t, "17:00", d.EndTime.String())
}

func TestBuildEvent_MidnightCrossing(t *testing.T) {
	b := NewBuilder(nil, fixedNow)

	d := b.BuildEvent(context.Background(), "schedule maintenance window from 11pm to 1am")

	assert.Equal(t, "23:00", d.StartTime.String())
	assert.Equal(t, "01:00", d.EndTime.String())
	assert.True(t, d.EndNextDay)
}

func TestBuildEvent_ModelTimesUsedWhenTextHasNone(t *testing.T) {
	p := &scriptedProvider{reply: `{"summary": "Standup", "start_time": "09:30", "end_time": "09:45"}`}
	b := NewBuilder(p, fixedNow)

	d := b.BuildEvent(context.Background(), "schedule the daily standup")

	assert.Equal(t, "09:30", d.StartTime.String())
	assert.Equal(t, "09:45", d.EndTime.String())
	assert.False(t, d.EndNextDay)
}

func TestBuildEvent_AttendeesMergedAndDeduped(t *testing.T) {
	p := &scriptedProvider{reply: `{"summary": "🤝 Planning", "attendees": ["John@Example.com", "amy@example.com"]}`}
	b := NewBuilder(p, fixedNow)

	d := b.BuildEvent(context.Background(), "schedule planning with john@example.com and bob@example.com")

	assert.Equal(t, []string{"john@example.com", "amy@example.com", "bob@example.com"}, d.Attendees)
}

func TestBuildEvent_AttendeeObjectsAccepted(t *testing.T) {
	p := &scriptedProvider{reply: `{"summary": "Review", "attendees": [{"email": "lead@example.com"}]}`}
	b := NewBuilder(p, fixedNow)

	d := b.BuildEvent(context.Background(), "schedule a review")

	assert.Equal(t, []string{"lead@example.com"}, d.Attendees)
}

func TestBuildEvent_PhysicalLocationNotVirtual(t *testing.T) {
	p := &scriptedProvider{reply: `{"summary": "Lunch", "location": "Cafe Blue, 5th Street"}`}
	b := NewBuilder(p, fixedNow)

	d := b.BuildEvent(context.Background(), "schedule lunch tomorrow at noon")

	assert.Equal(t, "Cafe Blue, 5th Street", d.Location)
	assert.False(t, d.Virtual)
}

func TestBuildEvent_MeetLocationIsVirtual(t *testing.T) {
	p := &scriptedProvider{reply: `{"summary": "Sync", "location": "Google Meet"}`}
	b := NewBuilder(p, fixedNow)

	d := b.BuildEvent(context.Background(), "schedule a sync")

	assert.True(t, d.Virtual)
}

func TestBuildEvent_RecurrenceFromText(t *testing.T) {
	b := NewBuilder(nil, fixedNow)

	d := b.BuildEvent(context.Background(), "schedule standup every week for 4 weeks at 9am")

	if assert.NotNil(t, d.Recurrence) {
		assert.Equal(t, "weekly", d.Recurrence.Frequency)
		assert.Equal(t, 4, d.Recurrence.Count)
	}
	assert.Equal(t, "09:00", d.StartTime.String())
}

func TestBuildEvent_FallbackDescription(t *testing.T) {
	b := NewBuilder(nil, fixedNow)

	d := b.BuildEvent(context.Background(), "schedule a design review tomorrow")

	assert.Contains(t, d.Description, d.Summary)
	assert.Contains(t, d.Description, "Key Points")
}

func TestBuildEvent_EmptySummaryDefaults(t *testing.T) {
	b := NewBuilder(nil, fixedNow)

	d := b.BuildEvent(context.Background(), "schedule tomorrow at 2pm")

	assert.Equal(t, "New Event", d.Summary)
}
