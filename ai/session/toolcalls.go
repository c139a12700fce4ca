package session

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/prem-acharya/ai-agent-backend/ai/draft"
	"github.com/prem-acharya/ai-agent-backend/ai/routing"
	"github.com/prem-acharya/ai-agent-backend/ai/stream"
	"github.com/prem-acharya/ai-agent-backend/ai/tools"
)

// runToolTurn handles create/retrieve intents through the task and
// calendar adapters. Remote failures surface as narrated content, not
// stream errors; only a missing token rejects before the phase opens.
func (s *Session) runToolTurn(ctx context.Context, c *stream.Controller, req Request, content string, decision routing.Decision) bool {
	if strings.TrimSpace(req.AccessToken) == "" {
		c.Reject(ctx, "Please connect your Google account to manage tasks and events.")
		return false
	}

	// Elaboration is best-effort: an unreachable provider only means
	// the deterministic draft path runs alone.
	builder := s.draftBuilder(ctx, req.Model)

	err := c.RunToolPhase(ctx, func(phaseCtx context.Context) (string, error) {
		return s.invokeTools(phaseCtx, req.AccessToken, content, decision, builder), nil
	})
	return err == nil
}

func (s *Session) draftBuilder(ctx context.Context, model string) *draft.Builder {
	kind := providerKind(model)
	provider, err := s.providers.Get(ctx, kind)
	if err != nil {
		slog.Warn("provider unavailable for draft elaboration", "provider", kind, "error", err)
		provider = nil
	}
	return draft.NewBuilder(provider, s.now)
}

func (s *Session) invokeTools(ctx context.Context, token, content string, decision routing.Decision, builder *draft.Builder) string {
	window := windowFromDecision(decision)

	switch decision.Intent {
	case routing.IntentCreateTask:
		return s.createTask(ctx, token, content, builder)
	case routing.IntentCreateEvent:
		return s.createEvent(ctx, token, content, builder)
	case routing.IntentCreateBoth:
		return s.createTask(ctx, token, content, builder) + "\n\n---\n\n" + s.createEvent(ctx, token, content, builder)
	case routing.IntentRetrieveTasks:
		return s.listTasks(ctx, token, window)
	case routing.IntentRetrieveEvents:
		return s.listEvents(ctx, token, window)
	case routing.IntentRetrieveBoth:
		return s.listEvents(ctx, token, window) + "\n\n---\n\n" + s.listTasks(ctx, token, window)
	}
	return "I could not work out what to do with that request."
}

func (s *Session) createTask(ctx context.Context, token, content string, builder *draft.Builder) string {
	d := builder.BuildTask(ctx, content)
	started := s.now()
	result := s.tasks.Create(ctx, token, d)
	s.recordTool("create_task", started, result.Success)
	return renderTaskCreation(d, result)
}

func (s *Session) createEvent(ctx context.Context, token, content string, builder *draft.Builder) string {
	d := builder.BuildEvent(ctx, content)
	started := s.now()
	result := s.calendar.Create(ctx, token, d)
	s.recordTool("create_event", started, result.Success)
	return renderEventCreation(d, result)
}

func (s *Session) listTasks(ctx context.Context, token string, window tools.Window) string {
	started := s.now()
	result := s.tasks.List(ctx, token, window)
	s.recordTool("get_tasks", started, result.Success)
	return renderTaskList(result, window)
}

func (s *Session) listEvents(ctx context.Context, token string, window tools.Window) string {
	started := s.now()
	result := s.calendar.List(ctx, token, window, 10)
	s.recordTool("get_events", started, result.Success)
	return renderEventList(result, window)
}

func (s *Session) recordTool(tool string, started time.Time, success bool) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordToolCall(tool, s.now().Sub(started), success)
}

func windowFromDecision(d routing.Decision) tools.Window {
	switch {
	case d.TodayOnly:
		return tools.WindowToday
	case d.TomorrowOnly:
		return tools.WindowTomorrow
	case d.UpcomingOnly:
		return tools.WindowUpcoming
	default:
		return tools.WindowAll
	}
}
