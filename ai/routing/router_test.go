package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoute_CreateTask(t *testing.T) {
	r := NewRouter()
	for _, input := range []string{
		"remind me to buy milk tomorrow at 6pm",
		"create a task to submit the report",
		"set reminder to drink water",
		"add task call the bank on 25/04",
	} {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, IntentCreateTask, r.Route(input).Intent)
		})
	}
}

func TestRoute_CreateEvent(t *testing.T) {
	r := NewRouter()
	for _, input := range []string{
		"schedule meeting with john@example.com tomorrow 2pm to 3pm",
		"create an event for the product launch",
		"set up a meeting with the design team",
		"book a call with the vendor on friday",
		"interview with the new candidate at 11am",
		"sync with marketing tomorrow",
	} {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, IntentCreateEvent, r.Route(input).Intent)
		})
	}
}

func TestRoute_RetrieveTasks(t *testing.T) {
	r := NewRouter()

	d := r.Route("show my tasks for today")
	assert.Equal(t, IntentRetrieveTasks, d.Intent)
	assert.True(t, d.TodayOnly)
	assert.False(t, d.TomorrowOnly)
	assert.False(t, d.UpcomingOnly)

	d = r.Route("list my reminders")
	assert.Equal(t, IntentRetrieveTasks, d.Intent)

	d = r.Route("check my todos for tomorrow")
	assert.Equal(t, IntentRetrieveTasks, d.Intent)
	assert.True(t, d.TomorrowOnly)
}

func TestRoute_RetrieveEvents(t *testing.T) {
	r := NewRouter()

	d := r.Route("show my meetings for tomorrow")
	assert.Equal(t, IntentRetrieveEvents, d.Intent)
	assert.True(t, d.TomorrowOnly)

	d = r.Route("view upcoming events")
	assert.Equal(t, IntentRetrieveEvents, d.Intent)
	assert.True(t, d.UpcomingOnly)

	// An utterance naming both nouns with a retrieval verb reads events:
	// the event noun is the more specific signal.
	d = r.Route("get my meetings and tasks")
	assert.Equal(t, IntentRetrieveEvents, d.Intent)
}

func TestRoute_CombinedSchedule(t *testing.T) {
	r := NewRouter()

	d := r.Route("show my schedule for today")
	assert.Equal(t, IntentRetrieveBoth, d.Intent)
	assert.True(t, d.TodayOnly)

	assert.Equal(t, IntentRetrieveBoth, r.Route("what's on my agenda").Intent)
	assert.Equal(t, IntentRetrieveBoth, r.Route("show me everything for this week").Intent)

	// Creation tense flips the combined query to a create.
	assert.Equal(t, IntentCreateBoth, r.Route("add everything from the email to my schedule").Intent)
}

func TestRoute_ScheduleVerbIsNotCombined(t *testing.T) {
	// "schedule" followed by an event noun is a creation verb, not the
	// schedule-as-noun combined query.
	r := NewRouter()
	assert.Equal(t, IntentCreateEvent, r.Route("schedule a meeting at 3pm").Intent)
}

func TestRoute_BareWords(t *testing.T) {
	r := NewRouter()
	assert.Equal(t, IntentRetrieveTasks, r.Route("tasks").Intent)
	assert.Equal(t, IntentRetrieveTasks, r.Route("Tasks?").Intent)
	assert.Equal(t, IntentRetrieveEvents, r.Route("meetings").Intent)
	assert.Equal(t, IntentRetrieveBoth, r.Route("agenda").Intent)
}

func TestRoute_Informational(t *testing.T) {
	r := NewRouter()
	for _, input := range []string{
		"what is the capital of france",
		"explain goroutines to me",
		"how do i make pasta carbonara",
	} {
		t.Run(input, func(t *testing.T) {
			d := r.Route(input)
			assert.Equal(t, IntentInformational, d.Intent)
			assert.False(t, d.TodayOnly || d.TomorrowOnly || d.UpcomingOnly)
		})
	}
}

func TestRoute_TaskBeatsEventOnMixedKeywords(t *testing.T) {
	// Precedence policy: the task-creation marker phrase wins when an
	// utterance carries both task and event vocabulary.
	r := NewRouter()
	assert.Equal(t, IntentCreateTask, r.Route("remind me to schedule a meeting with the team").Intent)
}

func TestRoute_Deterministic(t *testing.T) {
	r := NewRouter()
	first := r.Route("show my tasks for today")
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, r.Route("show my tasks for today"))
	}
}

func TestRoute_WindowFlagPriority(t *testing.T) {
	r := NewRouter()
	// "today" beats "upcoming" when both appear.
	d := r.Route("show my tasks for today and upcoming days")
	assert.True(t, d.TodayOnly)
	assert.False(t, d.UpcomingOnly)
}
