// Package llm provides model provider connections over a common interface.
//
// Every provider speaks the same two operations: a synchronous completion
// and a token-streamed completion that writes into a caller-owned sink and
// returns the accumulated text. Providers are built once per process and
// reused through the Registry.
package llm

import "context"

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single chat message.
type Message struct {
	Role    string
	Content string
}

// System is shorthand for a system message.
func System(content string) Message { return Message{Role: RoleSystem, Content: content} }

// User is shorthand for a user message.
func User(content string) Message { return Message{Role: RoleUser, Content: content} }

// Provider is one backing language-model connection.
type Provider interface {
	// Name identifies the provider ("gemini", "gpt4o", "deepseek").
	Name() string

	// Complete runs a full completion and returns the model text.
	Complete(ctx context.Context, messages []Message) (string, error)

	// StreamTo streams completion tokens into sink and returns the
	// accumulated text once the stream is fully drained. The sink is owned
	// by the caller and is never closed here. Cancelling ctx releases the
	// underlying provider stream.
	StreamTo(ctx context.Context, messages []Message, sink chan<- string) (string, error)
}

// Config describes one provider connection.
type Config struct {
	Kind        string // gemini, gpt4o, deepseek, openai
	APIKey      string
	BaseURL     string // optional; per-kind default applies
	Model       string // optional; per-kind default applies
	MaxTokens   int
	Temperature float32
	Timeout     int // seconds, per request
}
