package routing

import (
	"log/slog"
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Pre-compiled pattern groups. Word-bounded so "tasked" or "know" do not
// trip keyword rules.
var (
	retrievalVerbRegex = regexp.MustCompile(`\b(?:show|list|get|view|check|see|display|what(?:'s)?|do i have)\b`)
	creationVerbRegex  = regexp.MustCompile(`\b(?:create|add|set|make|plan|arrange|schedule|book)\b`)

	// "schedule" as a noun (my schedule, schedule for today) is a combined
	// query; "schedule a meeting" is not, and falls through to rule 5.
	combinedNounRegex = regexp.MustCompile(`\b(?:agenda|everything)\b|\b(?:my|the|full|whole|entire)\s+schedule\b|\bschedule\s+for\b`)

	taskNounRegex  = regexp.MustCompile(`\b(?:tasks?|todos?|reminders?)\b`)
	eventNounRegex = regexp.MustCompile(`\b(?:events?|meetings?|calendar|appointments?)\b`)

	taskCreateRegex = regexp.MustCompile(
		`\bremind me to\b|\b(?:create|set|add|make)\s+(?:a\s+|an\s+)?(?:task|reminder|todo)\b`)
	eventCreateRegex = regexp.MustCompile(
		`\b(?:schedule|create|set up|set|add|plan|arrange|book)\s+(?:a\s+|an\s+)?(?:meeting|event|call|appointment|interview|sync)\b|` +
			`\b(?:interview|call|sync)\s+with\b`)

	todayFlagRegex    = regexp.MustCompile(`\btoday\b|\btonight\b`)
	tomorrowFlagRegex = regexp.MustCompile(`\b(?:tomorrow|tmr)\b`)
	upcomingFlagRegex = regexp.MustCompile(`\bupcoming\b|\bfuture\b|\bthis week\b|\bnext\b|\blater\b`)
)

// bareWordIntents maps single-word utterances straight to a retrieval
// intent, skipping the rule table.
var bareWordIntents = map[string]Intent{
	"task":         IntentRetrieveTasks,
	"tasks":        IntentRetrieveTasks,
	"todo":         IntentRetrieveTasks,
	"todos":        IntentRetrieveTasks,
	"reminders":    IntentRetrieveTasks,
	"event":        IntentRetrieveEvents,
	"events":       IntentRetrieveEvents,
	"meeting":      IntentRetrieveEvents,
	"meetings":     IntentRetrieveEvents,
	"calendar":     IntentRetrieveEvents,
	"appointments": IntentRetrieveEvents,
	"schedule":     IntentRetrieveBoth,
	"agenda":       IntentRetrieveBoth,
	"everything":   IntentRetrieveBoth,
}

// rule pairs a predicate with the intent it selects.
type rule struct {
	name  string
	match func(string) bool
	pick  func(string) Intent
}

// Router classifies utterances. Safe for concurrent use; routing decisions
// are cached by normalized utterance since the table is deterministic and
// the window flags depend only on the text, never on the current date.
type Router struct {
	rules    []rule
	cache    *lru.Cache[string, Decision]
	onLookup func(hit bool)
}

// OnCacheLookup registers a callback invoked on every cache lookup with
// whether it hit. Used to feed the metrics exporter.
func (r *Router) OnCacheLookup(fn func(hit bool)) {
	r.onLookup = fn
}

// NewRouter creates a router with the canonical rule table.
func NewRouter() *Router {
	cache, _ := lru.New[string, Decision](512)
	return &Router{
		cache: cache,
		rules: []rule{
			{
				name:  "combined",
				match: func(s string) bool { return combinedNounRegex.MatchString(s) },
				pick: func(s string) Intent {
					// Tense decides the direction. A combined query with a
					// creation verb and no retrieval verb is a request to
					// create in both stores; anything else is a read.
					if creationVerbRegex.MatchString(s) && !retrievalVerbRegex.MatchString(s) {
						return IntentCreateBoth
					}
					return IntentRetrieveBoth
				},
			},
			{
				name: "retrieve-tasks",
				match: func(s string) bool {
					return retrievalVerbRegex.MatchString(s) && taskNounRegex.MatchString(s) && !eventNounRegex.MatchString(s)
				},
				pick: func(string) Intent { return IntentRetrieveTasks },
			},
			{
				name: "retrieve-events",
				match: func(s string) bool {
					return retrievalVerbRegex.MatchString(s) && eventNounRegex.MatchString(s)
				},
				pick: func(string) Intent { return IntentRetrieveEvents },
			},
			{
				name:  "create-task",
				match: func(s string) bool { return taskCreateRegex.MatchString(s) },
				pick:  func(string) Intent { return IntentCreateTask },
			},
			{
				name:  "create-event",
				match: func(s string) bool { return eventCreateRegex.MatchString(s) },
				pick:  func(string) Intent { return IntentCreateEvent },
			},
		},
	}
}

// Route classifies one utterance. It never fails: utterances matching no
// rule are informational.
func (r *Router) Route(utterance string) Decision {
	normalized := strings.ToLower(strings.TrimSpace(utterance))

	d, ok := r.cache.Get(normalized)
	if r.onLookup != nil {
		r.onLookup(ok)
	}
	if ok {
		return d
	}

	d = Decision{Intent: r.classify(normalized)}
	if d.Intent.IsRetrieve() {
		d.TodayOnly, d.TomorrowOnly, d.UpcomingOnly = scanWindowFlags(normalized)
	}

	r.cache.Add(normalized, d)
	slog.Debug("routed utterance", "intent", d.Intent,
		"today_only", d.TodayOnly, "tomorrow_only", d.TomorrowOnly, "upcoming_only", d.UpcomingOnly)
	return d
}

func (r *Router) classify(normalized string) Intent {
	if intent, ok := bareWordIntents[strings.TrimRight(normalized, ".!?")]; ok {
		return intent
	}
	for _, rl := range r.rules {
		if rl.match(normalized) {
			return rl.pick(normalized)
		}
	}
	return IntentInformational
}

// scanWindowFlags runs the secondary, intent-independent scan for the
// retrieval window. At most one flag is set; today beats tomorrow beats
// upcoming when several terms appear.
func scanWindowFlags(normalized string) (today, tomorrow, upcoming bool) {
	switch {
	case todayFlagRegex.MatchString(normalized):
		return true, false, false
	case tomorrowFlagRegex.MatchString(normalized):
		return false, true, false
	case upcomingFlagRegex.MatchString(normalized):
		return false, false, true
	}
	return false, false, false
}
