package draft

import (
	"regexp"
	"strings"
)

// Marker phrases, longest suffix after the first matching marker becomes
// the title seed. Mirrors the intent router's creation trigger vocabulary.
var taskMarkers = []string{
	"remind me to ",
	"set reminder to ",
	"create a task to ",
	"create task to ",
	"set task to ",
	"add a task to ",
	"add task to ",
	// Bare "remind me" with no verb phrase; the suffix is usually just a
	// date term and cleans down to empty.
	"remind me ",
}

var eventMarkers = []string{
	"schedule a meeting for ",
	"schedule meeting for ",
	"create a meeting for ",
	"create meeting for ",
	"set meeting for ",
	"schedule an event for ",
	"schedule event for ",
	"create an event for ",
	"create event for ",
	"set event for ",
	"meeting about ",
	"event about ",
}

var (
	titleTimeRegexes = []*regexp.Regexp{
		regexp.MustCompile(`\s*at\s+\d{1,2}(?::\d{2})?\s*(?:am|pm)`),
		regexp.MustCompile(`\s*\d{1,2}(?::\d{2})?\s*(?:am|pm)(?:\s*to\s*\d{1,2}(?::\d{2})?\s*(?:am|pm))?`),
		regexp.MustCompile(`\s*\d{1,2}:\d{2}(?:\s*to\s*\d{1,2}:\d{2})?`),
	}
	titleDateRegexes = []*regexp.Regexp{
		regexp.MustCompile(`\b(?:today|tomorrow|tmr|tonight|next week|next month|next day)\b`),
		regexp.MustCompile(`\b\d{1,4}[/-]\d{1,2}(?:[/-]\d{1,4})?\b`),
	}
	// Verbs are always filler; nouns are stripped only when another
	// content word survives, so "schedule meeting ... 2pm" keeps "meeting".
	fillerVerbRegex = regexp.MustCompile(`\b(?:schedule|create|set|add)\b`)
	fillerNounRegex = regexp.MustCompile(`\b(?:reminder|task|todo|meeting|event)\b`)
	spaceRunRegex   = regexp.MustCompile(`\s+`)

	emailRegex     = regexp.MustCompile(`[\w.+-]+@[\w.-]+\.\w+`)
	repeatCueRegex = regexp.MustCompile(`\b(?:every|repeat|recurring|daily|weekly|monthly|yearly)\b`)

	repeatCountRegexes = []*regexp.Regexp{
		regexp.MustCompile(`(?:for|count|repeat(?:s|ing)?)\s+(\d+)(?:\s+times)?`),
		regexp.MustCompile(`(\d+)\s+times`),
		regexp.MustCompile(`(\d+)\s+(?:occurrence|iteration)s?`),
	}
	repeatIntervalRegex = regexp.MustCompile(`every\s+(\d+)\s*(day|week|month|year)s?`)
)

// extractTaskTitle returns the utterance suffix after the first task
// marker, stripped of time/date words. Falls back to the "to " split and
// finally to filler-word removal; the result may be empty and callers
// substitute a default title.
func extractTaskTitle(utterance string) string {
	lower := strings.ToLower(utterance)

	for _, marker := range taskMarkers {
		if idx := strings.Index(lower, marker); idx >= 0 {
			return cleanTitle(lower[idx+len(marker):])
		}
	}
	if idx := strings.Index(lower, "to "); idx >= 0 {
		return cleanTitle(lower[idx+len("to "):])
	}
	return cleanTitle(stripFiller(lower))
}

// extractEventTitle is the event-side variant. No "to " split here: time
// ranges ("2pm to 3pm") make that separator useless for events.
func extractEventTitle(utterance string) string {
	lower := strings.ToLower(utterance)

	for _, marker := range eventMarkers {
		if idx := strings.Index(lower, marker); idx >= 0 {
			return cleanTitle(lower[idx+len(marker):])
		}
	}
	if title := cleanTitle(stripFiller(lower)); title != "" {
		return title
	}
	// The event noun was the only content word; keep it.
	return cleanTitle(fillerVerbRegex.ReplaceAllString(lower, ""))
}

func stripFiller(s string) string {
	return fillerNounRegex.ReplaceAllString(fillerVerbRegex.ReplaceAllString(s, ""), "")
}

// cleanTitle strips time expressions, date terms, and email addresses.
func cleanTitle(title string) string {
	for _, re := range titleTimeRegexes {
		title = re.ReplaceAllString(title, "")
	}
	for _, re := range titleDateRegexes {
		title = re.ReplaceAllString(title, "")
	}
	title = emailRegex.ReplaceAllString(title, "")
	title = spaceRunRegex.ReplaceAllString(title, " ")
	title = strings.Trim(title, " ,.-")

	// Stripping dates/emails can leave a dangling connector ("dentist on",
	// "sync with"); drop trailing connector words.
	connectors := []string{"on", "at", "with", "from", "for", "by", "in", "to", "and"}
	for {
		trimmed := false
		for _, conn := range connectors {
			if title == conn {
				return ""
			}
			if strings.HasSuffix(title, " "+conn) {
				title = strings.TrimSpace(strings.TrimSuffix(title, conn))
				trimmed = true
			}
		}
		if !trimmed {
			return title
		}
	}
}

// extractAttendees collects email-like strings, deduplicated in order of
// first appearance. A "guest list:" section is scanned the same way.
func extractAttendees(utterance string) []string {
	found := emailRegex.FindAllString(utterance, -1)
	if len(found) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(found))
	attendees := make([]string, 0, len(found))
	for _, email := range found {
		email = strings.ToLower(strings.TrimSpace(email))
		if !seen[email] {
			seen[email] = true
			attendees = append(attendees, email)
		}
	}
	return attendees
}

// extractNotes returns free text after a "notes:" section, if present.
func extractNotes(utterance string) string {
	lower := strings.ToLower(utterance)
	if idx := strings.Index(lower, "notes:"); idx >= 0 {
		return strings.TrimSpace(utterance[idx+len("notes:"):])
	}
	return ""
}

// extractRepeat scans for a recurrence request. Returns nil when the
// utterance carries no repeat cue. A parsed count is always positive;
// anything else is dropped rather than propagated.
func extractRepeat(utterance string) *Repeat {
	lower := strings.ToLower(utterance)
	if !repeatCueRegex.MatchString(lower) {
		return nil
	}

	r := &Repeat{Frequency: "daily"}
	switch {
	case strings.Contains(lower, "yearly"), strings.Contains(lower, "every year"):
		r.Frequency = "yearly"
	case strings.Contains(lower, "monthly"), strings.Contains(lower, "every month"):
		r.Frequency = "monthly"
	case strings.Contains(lower, "weekly"), strings.Contains(lower, "every week"):
		r.Frequency = "weekly"
	}

	if m := repeatIntervalRegex.FindStringSubmatch(lower); m != nil {
		if n := parsePositiveInt(m[1]); n > 0 {
			r.Interval = n
		}
		switch m[2] {
		case "week":
			r.Frequency = "weekly"
		case "month":
			r.Frequency = "monthly"
		case "year":
			r.Frequency = "yearly"
		default:
			r.Frequency = "daily"
		}
	}

	for _, re := range repeatCountRegexes {
		if m := re.FindStringSubmatch(lower); m != nil {
			if n := parsePositiveInt(m[1]); n > 0 {
				r.Count = n
				break
			}
		}
	}
	return r
}

// sanitizeRepeat enforces the positive-count invariant on model output.
func sanitizeRepeat(r *Repeat) *Repeat {
	if r == nil || r.Frequency == "" {
		return nil
	}
	r.Frequency = strings.ToLower(strings.TrimSpace(r.Frequency))
	switch r.Frequency {
	case "daily", "weekly", "monthly", "yearly":
	default:
		return nil
	}
	if r.Count < 0 {
		r.Count = 0
	}
	if r.Interval < 0 {
		r.Interval = 0
	}
	return r
}

func parsePositiveInt(s string) int {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + int(c-'0')
		if n > 1_000_000 {
			return 0
		}
	}
	return n
}
