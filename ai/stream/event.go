// Package stream sequences a chat response into ordered phases.
//
// A response is a series of phases (reasoning, answer, direct, tool), each
// delimited by a start event and exactly one terminal event (end or error).
// Content events may appear any number of times in between. The controller
// guarantees no tokens from one phase ever surface inside another.
package stream

// EventType classifies a stream event.
type EventType string

const (
	EventStart   EventType = "start"
	EventContent EventType = "content"
	EventEnd     EventType = "end"
	EventError   EventType = "error"
)

// Mode names the phase an event belongs to.
type Mode string

const (
	ModeReasoning Mode = "reasoning"
	ModeAnswer    Mode = "answer"
	ModeDirect    Mode = "direct"
	ModeTool      Mode = "tool"
)

// Event is one element of the ordered response stream. Events are emitted
// to the caller as line-delimited JSON.
type Event struct {
	Type     EventType         `json:"type"`
	Mode     Mode              `json:"mode,omitempty"`
	Text     string            `json:"text,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Terminal reports whether the event closes its phase.
func (e Event) Terminal() bool {
	return e.Type == EventEnd || e.Type == EventError
}

func start(mode Mode) Event               { return Event{Type: EventStart, Mode: mode} }
func content(mode Mode, text string) Event { return Event{Type: EventContent, Mode: mode, Text: text} }
func end(mode Mode) Event                  { return Event{Type: EventEnd, Mode: mode} }
func failure(mode Mode, text string) Event { return Event{Type: EventError, Mode: mode, Text: text} }
