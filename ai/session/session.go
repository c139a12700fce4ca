// Package session is the facade over the whole chat pipeline: it
// validates a request, routes the utterance to an intent, and drives
// the phase stream that answers it, either through the language model
// or through the task and calendar tools.
package session

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/prem-acharya/ai-agent-backend/ai/llm"
	"github.com/prem-acharya/ai-agent-backend/ai/metrics"
	"github.com/prem-acharya/ai-agent-backend/ai/routing"
	"github.com/prem-acharya/ai-agent-backend/ai/stream"
	"github.com/prem-acharya/ai-agent-backend/ai/tools"
	"github.com/prem-acharya/ai-agent-backend/ai/tools/clock"
	"github.com/prem-acharya/ai-agent-backend/ai/tools/weather"
	"github.com/prem-acharya/ai-agent-backend/ai/tools/websearch"
)

// Request is one chat turn. AccessToken is only required when the
// utterance routes to a task or calendar intent.
type Request struct {
	Content     string `json:"content"`
	Model       string `json:"model,omitempty"`
	Websearch   bool   `json:"websearch,omitempty"`
	Reasoning   bool   `json:"reasoning,omitempty"`
	AccessToken string `json:"access_token,omitempty"`
}

// Config wires the session's collaborators.
type Config struct {
	Providers *llm.Registry
	Tasks     *tools.Tasks
	Calendar  *tools.Calendar
	Search    *websearch.Client
	Clock     *clock.Client
	Weather   *weather.Client
	Metrics   *metrics.PrometheusExporter

	// MaxConcurrent bounds simultaneous chat turns; zero means unbounded.
	MaxConcurrent int64

	// PhaseTimeout bounds each stream phase; zero keeps the default.
	PhaseTimeout time.Duration

	Now func() time.Time
}

// Session dispatches chat turns. Safe for concurrent use; all
// per-turn state lives in the controller each turn creates.
type Session struct {
	providers *llm.Registry
	router    *routing.Router
	tasks     *tools.Tasks
	calendar  *tools.Calendar
	search    *websearch.Client
	clock     *clock.Client
	weather   *weather.Client
	metrics   *metrics.PrometheusExporter

	sem          *semaphore.Weighted
	phaseTimeout time.Duration
	now          func() time.Time
}

func New(cfg Config) *Session {
	s := &Session{
		providers:    cfg.Providers,
		router:       routing.NewRouter(),
		tasks:        cfg.Tasks,
		calendar:     cfg.Calendar,
		search:       cfg.Search,
		clock:        cfg.Clock,
		weather:      cfg.Weather,
		metrics:      cfg.Metrics,
		phaseTimeout: cfg.PhaseTimeout,
		now:          cfg.Now,
	}
	if cfg.MaxConcurrent > 0 {
		s.sem = semaphore.NewWeighted(cfg.MaxConcurrent)
	}
	if s.metrics != nil {
		s.router.OnCacheLookup(func(hit bool) {
			if hit {
				s.metrics.RecordCacheHit("routing")
			} else {
				s.metrics.RecordCacheMiss("routing")
			}
		})
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Respond handles one chat turn and returns its ordered event stream.
// The channel closes after the terminal event of the final phase.
func (s *Session) Respond(ctx context.Context, req Request) <-chan stream.Event {
	var opts []stream.Option
	if s.phaseTimeout > 0 {
		opts = append(opts, stream.WithPhaseTimeout(s.phaseTimeout))
	}
	c := stream.NewController(opts...)
	go s.run(ctx, c, req)
	return c.Events()
}

func (s *Session) run(ctx context.Context, c *stream.Controller, req Request) {
	defer c.Close()

	started := s.now()
	turnID := uuid.NewString()

	content := strings.TrimSpace(req.Content)
	if content == "" {
		c.Reject(ctx, "Message content cannot be empty.")
		return
	}

	if s.sem != nil {
		if err := s.sem.Acquire(ctx, 1); err != nil {
			c.Reject(ctx, "The request was cancelled before it could start.")
			return
		}
		defer s.sem.Release(1)
	}
	if s.metrics != nil {
		s.metrics.ChatStarted()
		defer s.metrics.ChatFinished()
	}

	decision := s.router.Route(content)
	slog.Info("chat turn routed",
		"turn", turnID,
		"intent", decision.Intent,
		"reasoning", req.Reasoning,
		"websearch", req.Websearch)

	var ok bool
	if decision.Intent.NeedsTools() {
		ok = s.runToolTurn(ctx, c, req, content, decision)
	} else {
		ok = s.runAnswerTurn(ctx, c, req, content)
	}

	if s.metrics != nil {
		s.metrics.RecordChatRequest(string(decision.Intent), s.now().Sub(started), ok)
	}
}

// providerKind normalizes the requested model to a registry kind.
func providerKind(model string) string {
	kind := strings.ToLower(strings.TrimSpace(model))
	if kind == "" {
		return "gemini"
	}
	return kind
}
