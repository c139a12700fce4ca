package draft

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/prem-acharya/ai-agent-backend/ai/llm"
	"github.com/prem-acharya/ai-agent-backend/ai/timetext"
)

// Builder turns a raw utterance into a structured task or event draft.
// A model elaborates titles and notes when available; every field the
// draft needs also has a deterministic extraction path, so building
// never fails.
type Builder struct {
	provider llm.Provider
	now      func() time.Time
}

// NewBuilder returns a Builder backed by the given provider. A nil
// provider skips elaboration and runs extraction only.
func NewBuilder(provider llm.Provider, now func() time.Time) *Builder {
	if now == nil {
		now = time.Now
	}
	return &Builder{provider: provider, now: now}
}

// taskAnalysis is the shape the task elaboration prompt asks for.
// Models drift, so notes accepts both a string and an array.
type taskAnalysis struct {
	Title  string        `json:"title"`
	Time   string        `json:"time"`
	Notes  flexibleNotes `json:"notes"`
	Repeat *Repeat       `json:"repeat"`
}

type flexibleNotes []string

func (n *flexibleNotes) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*n = list
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single != "" {
			*n = []string{single}
		}
		return nil
	}
	// Unusable shape, drop it rather than failing the draft.
	*n = nil
	return nil
}

// BuildTask builds a TaskDraft from the utterance. The due date and
// time range always come from deterministic extraction; the model only
// contributes the title, notes and recurrence, and any of those fall
// back to extraction when the model is absent or returns junk.
func (b *Builder) BuildTask(ctx context.Context, utterance string) *TaskDraft {
	now := b.now()
	d := &TaskDraft{Due: timetext.ResolveDate(utterance, now)}

	if start, _ := timetext.ExtractTimeRange(utterance); start != nil {
		d.Time = start
	}
	d.Repeat = extractRepeat(utterance)

	var analysis taskAnalysis
	analyzed := b.analyze(ctx, fmt.Sprintf(taskAnalysisPrompt, utterance), &analysis)

	if analyzed && strings.TrimSpace(analysis.Title) != "" {
		d.Title = strings.TrimSpace(analysis.Title)
	} else {
		d.Title = extractTaskTitle(utterance)
	}
	if d.Title == "" {
		d.Title = "New Task"
	}

	if d.Time == nil && analysis.Time != "" {
		if c, ok := timetext.ParseClock(analysis.Time); ok {
			d.Time = &c
		}
	}
	if d.Time == nil {
		d.Time = &timetext.Clock{Hour: 10}
	}

	if d.Repeat == nil && analysis.Repeat != nil {
		d.Repeat = sanitizeRepeat(analysis.Repeat)
	}

	if analyzed && len(analysis.Notes) > 0 {
		d.Notes = strings.Join(analysis.Notes, "\n")
	} else {
		d.Notes = b.fallbackNotes(utterance, d)
	}
	return d
}

// fallbackNotes assembles up to three note lines without a model.
func (b *Builder) fallbackNotes(utterance string, d *TaskDraft) string {
	var lines []string
	if d.Repeat != nil {
		lines = append(lines, "🔄 Repeats "+describeRepeat(d.Repeat))
	}
	if d.Time != nil {
		lines = append(lines, "⏰ Set for "+d.Time.String())
	}
	if user := extractNotes(utterance); user != "" {
		lines = append(lines, "👤 "+user)
	}
	fillers := []string{"📌 Remember to stay consistent", "💡 Track your progress"}
	for _, f := range fillers {
		if len(lines) >= 3 {
			break
		}
		lines = append(lines, f)
	}
	return strings.Join(lines, "\n")
}

func describeRepeat(r *Repeat) string {
	s := r.Frequency
	if r.Interval > 1 {
		s = fmt.Sprintf("every %d %ss", r.Interval, strings.TrimSuffix(r.Frequency, "ly"))
	}
	if r.Count > 0 {
		s = fmt.Sprintf("%s, %d times", s, r.Count)
	}
	return s
}

// analyze runs one completion and decodes the response. It reports
// whether a usable analysis was obtained.
func (b *Builder) analyze(ctx context.Context, prompt string, v any) bool {
	if b.provider == nil {
		return false
	}
	text, err := b.provider.Complete(ctx, []llm.Message{llm.User(prompt)})
	if err != nil {
		slog.Warn("draft analysis failed, using extraction", "provider", b.provider.Name(), "error", err)
		return false
	}
	if err := decodeModelJSON(text, v); err != nil {
		slog.Warn("draft analysis undecodable, using extraction", "error", err)
		return false
	}
	return true
}
