package stream

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"
)

// State of the per-session phase machine.
type State string

const (
	StateIdle      State = "idle"
	StateReasoning State = "reasoning"
	StateAnswer    State = "answer"
	StateDirect    State = "direct"
	StateToolPhase State = "tool"
	StateDone      State = "done"
)

var modeStates = map[Mode]State{
	ModeReasoning: StateReasoning,
	ModeAnswer:    StateAnswer,
	ModeDirect:    StateDirect,
	ModeTool:      StateToolPhase,
}

// tokenBuffer bounds the per-phase token channel. The channel is created
// fresh for every phase and fully drained before the next phase may start,
// which replaces the callback-reset-and-sleep dance with an ordinary
// close-and-range.
const tokenBuffer = 64

// StreamFunc produces one phase's tokens. It writes tokens into sink and
// returns the accumulated text; it must not close sink.
type StreamFunc func(ctx context.Context, sink chan<- string) (string, error)

// Controller drives one session's phase machine. It is not safe for
// concurrent phase starts: a session is a single logical thread and phases
// run strictly one after another.
type Controller struct {
	out          chan Event
	state        State
	phaseTimeout time.Duration
}

// Option configures a Controller.
type Option func(*Controller)

// WithPhaseTimeout bounds each phase; on expiry the phase closes with an
// error terminal instead of hanging the session.
func WithPhaseTimeout(d time.Duration) Option {
	return func(c *Controller) { c.phaseTimeout = d }
}

// NewController creates an idle controller.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		out:          make(chan Event, tokenBuffer),
		state:        StateIdle,
		phaseTimeout: 2 * time.Minute,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Events is the ordered outbound stream. It closes after Close.
func (c *Controller) Events() <-chan Event { return c.out }

// State returns the current machine state.
func (c *Controller) State() State { return c.state }

// RunStreamPhase executes one token-streamed phase. It emits start(mode),
// forwards every token as a content event, and closes the phase with end
// or error. The phase's token channel is fully drained before returning,
// even when the consumer has gone away, so the in-flight model call is
// always released and no tokens can leak into a later phase.
func (c *Controller) RunStreamPhase(ctx context.Context, mode Mode, fn StreamFunc) (string, error) {
	if err := c.enter(mode); err != nil {
		return "", err
	}

	phaseCtx, cancel := context.WithTimeout(ctx, c.phaseTimeout)
	defer cancel()

	sink := make(chan string, tokenBuffer)
	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		text, err := fn(phaseCtx, sink)
		close(sink)
		done <- result{text: text, err: err}
	}()

	c.emit(ctx, start(mode))
	for token := range sink {
		c.emit(ctx, content(mode, token))
	}
	res := <-done

	if res.err != nil {
		slog.Warn("phase failed", "mode", mode, "error", res.err)
		c.emit(ctx, failure(mode, phaseErrorText(phaseCtx, res.err)))
		c.leave()
		return res.text, res.err
	}
	c.emit(ctx, end(mode))
	c.leave()
	return res.text, nil
}

// RunToolPhase executes the tool phase. fn returns the narration to relay;
// a failed side effect is still a normal end because the conversation
// itself succeeded. Only a fn error (tool layer broke its contract of
// absorbing remote failures) terminates with an error event.
func (c *Controller) RunToolPhase(ctx context.Context, fn func(ctx context.Context) (string, error)) error {
	if err := c.enter(ModeTool); err != nil {
		return err
	}

	phaseCtx, cancel := context.WithTimeout(ctx, c.phaseTimeout)
	defer cancel()

	c.emit(ctx, start(ModeTool))
	text, err := fn(phaseCtx)
	if err != nil {
		c.emit(ctx, failure(ModeTool, phaseErrorText(phaseCtx, err)))
		c.leave()
		return err
	}
	if text != "" {
		c.emit(ctx, content(ModeTool, text))
	}
	c.emit(ctx, end(ModeTool))
	c.leave()
	return nil
}

// Note emits a best-effort informational content event outside any phase,
// such as a "Searching the web…" progress line. It has no terminal pairing
// and may only appear while no phase is open.
func (c *Controller) Note(ctx context.Context, mode Mode, text string) {
	if c.state != StateIdle {
		return
	}
	c.emit(ctx, content(mode, text))
}

// FailPhase emits a phase consisting of a human-readable content chunk
// followed by an error terminal. Used for provider failures that should
// read as a message rather than a bare error.
func (c *Controller) FailPhase(ctx context.Context, mode Mode, humanText, errText string) {
	if err := c.enter(mode); err != nil {
		return
	}
	c.emit(ctx, start(mode))
	if humanText != "" {
		c.emit(ctx, content(mode, humanText))
	}
	c.emit(ctx, failure(mode, errText))
	c.leave()
}

// Reject emits a lone error event with no preceding start. Used for
// validation failures caught before any phase begins.
func (c *Controller) Reject(ctx context.Context, text string) {
	c.emit(ctx, Event{Type: EventError, Text: text})
	c.state = StateDone
}

// Close transitions the machine to Done and closes the event stream.
func (c *Controller) Close() {
	c.state = StateDone
	close(c.out)
}

func (c *Controller) enter(mode Mode) error {
	next, ok := modeStates[mode]
	if !ok {
		return errors.Errorf("stream: unknown mode %q", mode)
	}
	if c.state != StateIdle {
		return errors.Errorf("stream: cannot start %s phase while %s", mode, c.state)
	}
	c.state = next
	return nil
}

func (c *Controller) leave() {
	c.state = StateIdle
}

// emit forwards an event to the consumer. When the consumer is gone the
// event is dropped: already-emitted events need no rollback and the phase
// loop still drains its token channel.
func (c *Controller) emit(ctx context.Context, ev Event) {
	select {
	case c.out <- ev:
	case <-ctx.Done():
	}
}

func phaseErrorText(phaseCtx context.Context, err error) string {
	if errors.Is(phaseCtx.Err(), context.DeadlineExceeded) {
		return "phase timed out"
	}
	return err.Error()
}
