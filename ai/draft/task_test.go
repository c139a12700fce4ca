package draft

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prem-acharya/ai-agent-backend/ai/llm"
)

var draftNow = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return draftNow }

type scriptedProvider struct {
	reply string
	err   error
}

func (p *scriptedProvider) Name() string { return "scripted" }

func (p *scriptedProvider) Complete(context.Context, []llm.Message) (string, error) {
	return p.reply, p.err
}

func (p *scriptedProvider) StreamTo(context.Context, []llm.Message, chan<- string) (string, error) {
	return p.reply, p.err
}

func TestBuildTask_ExtractionOnly(t *testing.T) {
	b := NewBuilder(nil, fixedNow)

	d := b.BuildTask(context.Background(), "remind me to buy milk tomorrow at 6pm")

	assert.Equal(t, "buy milk", d.Title)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), d.Due)
	require.NotNil(t, d.Time)
	assert.Equal(t, "18:00", d.Time.String())
	assert.Nil(t, d.Repeat)
	assert.Contains(t, d.Notes, "⏰ Set for 18:00")
}

func TestBuildTask_ModelTitleWins(t *testing.T) {
	p := &scriptedProvider{reply: `{"title": "🥛 Buy Milk", "notes": ["🎯 Get 2 liters", "💡 Check the fridge first", "⏰ Before the store closes"]}`}
	b := NewBuilder(p, fixedNow)

	d := b.BuildTask(context.Background(), "remind me to buy milk tomorrow at 6pm")

	assert.Equal(t, "🥛 Buy Milk", d.Title)
	assert.Contains(t, d.Notes, "Get 2 liters")
	require.NotNil(t, d.Time)
	assert.Equal(t, "18:00", d.Time.String())
}

func TestBuildTask_ProviderFailureFallsBack(t *testing.T) {
	p := &scriptedProvider{err: errors.New("upstream 500")}
	b := NewBuilder(p, fixedNow)

	d := b.BuildTask(context.Background(), "remind me to call mom today")

	assert.Equal(t, "call mom", d.Title)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), d.Due)
}

func TestBuildTask_UndecodableReplyFallsBack(t *testing.T) {
	p := &scriptedProvider{reply: "I cannot help with that."}
	b := NewBuilder(p, fixedNow)

	d := b.BuildTask(context.Background(), "remind me to water the plants")

	assert.Equal(t, "water the plants", d.Title)
	assert.NotEmpty(t, d.Notes)
}

func TestBuildTask_ExtractedTimeOverridesModel(t *testing.T) {
	p := &scriptedProvider{reply: `{"title": "Workout", "time": "07:00"}`}
	b := NewBuilder(p, fixedNow)

	d := b.BuildTask(context.Background(), "create a task to workout at 5pm")

	require.NotNil(t, d.Time)
	assert.Equal(t, "17:00", d.Time.String())
}

func TestBuildTask_ModelTimeUsedWhenTextHasNone(t *testing.T) {
	p := &scriptedProvider{reply: `{"title": "Workout", "time": "07:00"}`}
	b := NewBuilder(p, fixedNow)

	d := b.BuildTask(context.Background(), "create a task to workout")

	require.NotNil(t, d.Time)
	assert.Equal(t, "07:00", d.Time.String())
}

func TestBuildTask_RecurrenceFromText(t *testing.T) {
	b := NewBuilder(nil, fixedNow)

	d := b.BuildTask(context.Background(), "remind me to drink water every day for 7 days")

	require.NotNil(t, d.Repeat)
	assert.Equal(t, "daily", d.Repeat.Frequency)
	assert.Equal(t, 7, d.Repeat.Count)
	assert.Contains(t, d.Notes, "🔄 Repeats daily, 7 times")
}

func TestBuildTask_ModelRepeatSanitized(t *testing.T) {
	p := &scriptedProvider{reply: `{"title": "Standup", "repeat": {"frequency": "hourly", "count": -3}}`}
	b := NewBuilder(p, fixedNow)

	d := b.BuildTask(context.Background(), "create a task for standup")

	assert.Nil(t, d.Repeat)
}

func TestBuildTask_NotesAsStringAccepted(t *testing.T) {
	p := &scriptedProvider{reply: `{"title": "Read", "notes": "📚 One chapter a night"}`}
	b := NewBuilder(p, fixedNow)

	d := b.BuildTask(context.Background(), "remind me to read")

	assert.Equal(t, "📚 One chapter a night", d.Notes)
}

func TestBuildTask_EmptyTitleDefaults(t *testing.T) {
	b := NewBuilder(nil, fixedNow)

	d := b.BuildTask(context.Background(), "remind me tomorrow")

	assert.Equal(t, "New Task", d.Title)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), d.Due)
}

func TestBuildTask_NeverNil(t *testing.T) {
	b := NewBuilder(nil, fixedNow)
	for _, utterance := range []string{"", "   ", "remind me", "задача"} {
		d := b.BuildTask(context.Background(), utterance)
		require.NotNil(t, d, "utterance %q", utterance)
		assert.NotEmpty(t, d.Title)
		assert.False(t, d.Due.IsZero())
	}
}
