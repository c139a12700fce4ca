package draft

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/prem-acharya/ai-agent-backend/ai/timetext"
)

// eventAnalysis is the shape the event elaboration prompt asks for.
type eventAnalysis struct {
	Summary     string            `json:"summary"`
	Description string            `json:"description"`
	Location    string            `json:"location"`
	StartTime   string            `json:"start_time"`
	EndTime     string            `json:"end_time"`
	Attendees   flexibleAttendees `json:"attendees"`
	Recurrence  *Repeat           `json:"recurrence"`
}

// flexibleAttendees accepts both ["a@b.com"] and [{"email": "a@b.com"}].
type flexibleAttendees []string

func (a *flexibleAttendees) UnmarshalJSON(data []byte) error {
	var plain []string
	if err := json.Unmarshal(data, &plain); err == nil {
		*a = plain
		return nil
	}
	var wrapped []struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil {
		for _, w := range wrapped {
			if w.Email != "" {
				*a = append(*a, w.Email)
			}
		}
		return nil
	}
	*a = nil
	return nil
}

// BuildEvent builds an EventDraft from the utterance. Dates, time
// ranges, attendees and recurrence always have deterministic paths;
// the model contributes the summary, description and location.
func (b *Builder) BuildEvent(ctx context.Context, utterance string) *EventDraft {
	now := b.now()
	d := &EventDraft{Due: timetext.ResolveDate(utterance, now)}

	start, end := timetext.ExtractTimeRange(utterance)
	d.Recurrence = extractRepeat(utterance)

	var analysis eventAnalysis
	analyzed := b.analyze(ctx, fmt.Sprintf(eventAnalysisPrompt, utterance), &analysis)

	if analyzed && strings.TrimSpace(analysis.Summary) != "" {
		d.Summary = strings.TrimSpace(analysis.Summary)
	} else {
		d.Summary = extractEventTitle(utterance)
	}
	if d.Summary == "" {
		d.Summary = "New Event"
	}

	if start == nil && analysis.StartTime != "" {
		if c, ok := timetext.ParseClock(analysis.StartTime); ok {
			start = &c
		}
	}
	if end == nil && analysis.EndTime != "" {
		if c, ok := timetext.ParseClock(analysis.EndTime); ok {
			end = &c
		}
	}
	if start == nil {
		start = &timetext.Clock{Hour: 10}
	}
	if end == nil {
		end = &timetext.Clock{Hour: start.Hour + 1, Minute: start.Minute}
		if end.Hour >= 24 {
			end.Hour -= 24
		}
	}
	d.StartTime = *start
	d.EndTime = *end
	d.EndNextDay = d.EndTime.Minutes() <= d.StartTime.Minutes()

	if analyzed && strings.TrimSpace(analysis.Description) != "" {
		d.Description = strings.TrimSpace(analysis.Description)
	} else {
		d.Description = fmt.Sprintf(descriptionFallbackTemplate, d.Summary)
	}

	d.Location = strings.TrimSpace(analysis.Location)
	d.Virtual = isVirtualLocation(d.Location)

	d.Attendees = mergeAttendees(analysis.Attendees, extractAttendees(utterance))

	if d.Recurrence == nil && analysis.Recurrence != nil {
		d.Recurrence = sanitizeRepeat(analysis.Recurrence)
	}
	return d
}

func isVirtualLocation(location string) bool {
	if location == "" {
		return true
	}
	lower := strings.ToLower(location)
	for _, cue := range []string{"google meet", "meet.google", "virtual", "online", "zoom", "video call"} {
		if strings.Contains(lower, cue) {
			return true
		}
	}
	return false
}

// mergeAttendees combines model and extracted attendees, keeping first
// occurrence order and dropping duplicates case-insensitively.
func mergeAttendees(groups ...[]string) []string {
	var merged []string
	seen := make(map[string]struct{})
	for _, group := range groups {
		for _, raw := range group {
			email := strings.ToLower(strings.TrimSpace(raw))
			if email == "" {
				continue
			}
			if _, ok := seen[email]; ok {
				continue
			}
			seen[email] = struct{}{}
			merged = append(merged, email)
		}
	}
	return merged
}
