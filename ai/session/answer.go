package session

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/prem-acharya/ai-agent-backend/ai/llm"
	"github.com/prem-acharya/ai-agent-backend/ai/stream"
)

const reasoningPrompt = `You are a careful assistant. Think through the user's request step by step: restate what is being asked, note the facts you know and the facts you would need, and outline how you will answer. Keep it short and do not produce the final answer yet.`

const answerPrompt = `You are a helpful personal assistant. Answer the user's request clearly and concisely in markdown. Use the reasoning and any context you were given, but do not repeat the reasoning itself.`

const directPrompt = `You are a helpful personal assistant. Answer the user's request clearly and concisely in markdown.`

var (
	timeQuestionRegex = regexp.MustCompile(`(?i)\b(?:what(?:'s| is)? the (?:current )?time|current time|time (?:is it )?in)\b`)
	weatherRegex      = regexp.MustCompile(`(?i)\bweather\b`)
	inCityRegex       = regexp.MustCompile(`(?i)\b(?:in|for)\s+([a-z][a-z ]*?)(?:\s+(?:right now|now|today))?\s*[?.!]?$`)
)

// runAnswerTurn handles informational utterances: quick tool answers
// for time and weather questions, otherwise a model-backed reasoning/
// answer or direct stream, optionally grounded by a web search.
func (s *Session) runAnswerTurn(ctx context.Context, c *stream.Controller, req Request, content string) bool {
	if answer, ok := s.quickAnswer(ctx, content); ok {
		_, err := c.RunStreamPhase(ctx, stream.ModeDirect, func(_ context.Context, sink chan<- string) (string, error) {
			sink <- answer
			return answer, nil
		})
		return err == nil
	}

	kind := providerKind(req.Model)
	provider, err := s.providers.Get(ctx, kind)
	if err != nil {
		mode := stream.ModeDirect
		if req.Reasoning {
			mode = stream.ModeReasoning
		}
		c.FailPhase(ctx, mode, llm.Humanize(err, kind), err.Error())
		return false
	}

	var grounding []llm.Message
	if req.Websearch && s.search.Enabled() {
		mode := stream.ModeDirect
		if req.Reasoning {
			mode = stream.ModeReasoning
		}
		c.Note(ctx, mode, "Searching the web…")
		digest, searchErr := s.search.Search(ctx, content)
		if searchErr != nil {
			slog.Warn("web search failed, answering without it", "error", searchErr)
		} else {
			grounding = append(grounding, llm.System("Web search results for context:\n\n"+digest))
		}
	}

	if !req.Reasoning {
		messages := append([]llm.Message{llm.System(directPrompt)}, grounding...)
		messages = append(messages, llm.User(content))
		return s.streamPhase(ctx, c, provider, stream.ModeDirect, messages)
	}

	reasoningMessages := append([]llm.Message{llm.System(reasoningPrompt)}, grounding...)
	reasoningMessages = append(reasoningMessages, llm.User(content))
	reasoningText, ok := s.streamPhaseText(ctx, c, provider, stream.ModeReasoning, reasoningMessages)
	if !ok {
		return false
	}

	answerMessages := append([]llm.Message{llm.System(answerPrompt)}, grounding...)
	if strings.TrimSpace(reasoningText) != "" {
		answerMessages = append(answerMessages, llm.System("Your reasoning so far:\n\n"+reasoningText))
	}
	answerMessages = append(answerMessages, llm.User(content))
	return s.streamPhase(ctx, c, provider, stream.ModeAnswer, answerMessages)
}

func (s *Session) streamPhase(ctx context.Context, c *stream.Controller, provider llm.Provider, mode stream.Mode, messages []llm.Message) bool {
	_, ok := s.streamPhaseText(ctx, c, provider, mode, messages)
	return ok
}

func (s *Session) streamPhaseText(ctx context.Context, c *stream.Controller, provider llm.Provider, mode stream.Mode, messages []llm.Message) (string, bool) {
	started := s.now()
	text, err := c.RunStreamPhase(ctx, mode, func(phaseCtx context.Context, sink chan<- string) (string, error) {
		return provider.StreamTo(phaseCtx, messages, sink)
	})
	if s.metrics != nil {
		s.metrics.RecordLLMLatency(provider.Name(), s.now().Sub(started))
		if err != nil {
			s.metrics.RecordLLMError(provider.Name())
		}
	}
	return text, err == nil
}

// quickAnswer resolves time and weather questions straight from the
// clock and weather services, skipping the model entirely.
func (s *Session) quickAnswer(ctx context.Context, content string) (string, bool) {
	switch {
	case timeQuestionRegex.MatchString(content):
		if s.clock == nil {
			return "", false
		}
		return s.clock.CurrentTime(ctx, extractCity(content)), true
	case weatherRegex.MatchString(content) && s.weather.Enabled():
		city := extractCity(content)
		if city == "" {
			return "", false
		}
		report, err := s.weather.Current(ctx, city)
		if err != nil {
			slog.Warn("weather lookup failed, deferring to the model", "city", city, "error", err)
			return "", false
		}
		return report.String(), true
	}
	return "", false
}

func extractCity(content string) string {
	m := inCityRegex.FindStringSubmatch(content)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
