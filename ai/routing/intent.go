// Package routing classifies a user utterance into a fixed set of intents
// using an ordered table of pattern rules. There is no scoring, no
// backtracking, and no model call: the first rule whose predicate matches
// wins, so the router is total and deterministic.
package routing

// Intent is the primary classification of an utterance.
type Intent string

const (
	// IntentCreateTask creates a task in the task store.
	IntentCreateTask Intent = "CREATE_TASK"
	// IntentCreateEvent creates a calendar event.
	IntentCreateEvent Intent = "CREATE_EVENT"
	// IntentCreateBoth creates a task and a calendar event.
	IntentCreateBoth Intent = "CREATE_BOTH"
	// IntentRetrieveTasks lists existing tasks.
	IntentRetrieveTasks Intent = "RETRIEVE_TASKS"
	// IntentRetrieveEvents lists existing calendar events.
	IntentRetrieveEvents Intent = "RETRIEVE_EVENTS"
	// IntentRetrieveBoth lists tasks and events together.
	IntentRetrieveBoth Intent = "RETRIEVE_BOTH"
	// IntentInformational answers with plain conversation, no side effect.
	IntentInformational Intent = "INFORMATIONAL"
)

// IsCreate reports whether the intent performs a mutating side effect.
func (i Intent) IsCreate() bool {
	return i == IntentCreateTask || i == IntentCreateEvent || i == IntentCreateBoth
}

// IsRetrieve reports whether the intent reads existing records.
func (i Intent) IsRetrieve() bool {
	return i == IntentRetrieveTasks || i == IntentRetrieveEvents || i == IntentRetrieveBoth
}

// NeedsTools reports whether fulfilling the intent touches an external store.
func (i Intent) NeedsTools() bool {
	return i.IsCreate() || i.IsRetrieve()
}

// Decision is the routing result for one utterance. The window flags are
// set by a secondary scan of the same text and are orthogonal to Intent.
type Decision struct {
	Intent       Intent `json:"intent"`
	TodayOnly    bool   `json:"today_only,omitempty"`
	TomorrowOnly bool   `json:"tomorrow_only,omitempty"`
	UpcomingOnly bool   `json:"upcoming_only,omitempty"`
}
