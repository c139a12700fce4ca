package llm

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"
)

// Per-kind defaults for OpenAI-compatible backends. gpt4o rides the GitHub
// Models inference endpoint, which speaks the OpenAI protocol with a GitHub
// token as the key.
var openAIKindDefaults = map[string]struct {
	BaseURL string
	Model   string
}{
	"openai":   {BaseURL: "https://api.openai.com/v1", Model: "gpt-4o"},
	"gpt4o":    {BaseURL: "https://models.inference.ai.azure.com", Model: "gpt-4o"},
	"deepseek": {BaseURL: "https://api.deepseek.com/v1", Model: "deepseek-chat"},
}

type openAIProvider struct {
	client      *openai.Client
	name        string
	model       string
	maxTokens   int
	temperature float32
	timeout     time.Duration
}

// NewOpenAICompatible creates a provider for any OpenAI-protocol backend.
func NewOpenAICompatible(cfg Config) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, errors.Errorf("llm: missing API key for provider %q", cfg.Kind)
	}

	defaults, ok := openAIKindDefaults[cfg.Kind]
	if !ok {
		// Generic OpenAI-compatible backend; base URL must be explicit.
		if cfg.BaseURL == "" {
			return nil, errors.Errorf("llm: unknown provider %q without base URL", cfg.Kind)
		}
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaults.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaults.Model
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = baseURL
	clientConfig.HTTPClient = newHTTPClient()

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 120
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 2048
	}
	temperature := cfg.Temperature
	if temperature <= 0 {
		temperature = 0.7
	}

	return &openAIProvider{
		client:      openai.NewClientWithConfig(clientConfig),
		name:        cfg.Kind,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		timeout:     time.Duration(timeout) * time.Second,
	}, nil
}

func (p *openAIProvider) Name() string { return p.name }

func (p *openAIProvider) Complete(ctx context.Context, messages []Message) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		MaxTokens:   p.maxTokens,
		Temperature: p.temperature,
		Messages:    convertMessages(messages),
	})
	if err != nil {
		return "", errors.Wrap(err, "llm: chat completion failed")
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("llm: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}

func (p *openAIProvider) StreamTo(ctx context.Context, messages []Message, sink chan<- string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	stream, err := p.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		MaxTokens:   p.maxTokens,
		Temperature: p.temperature,
		Messages:    convertMessages(messages),
	})
	if err != nil {
		return "", errors.Wrap(err, "llm: create stream failed")
	}
	defer func() { _ = stream.Close() }()

	var accumulated strings.Builder
	chunks := 0
	for {
		resp, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) || strings.Contains(err.Error(), "EOF") {
				slog.Debug("llm stream complete", "provider", p.name, "chunks", chunks)
				return accumulated.String(), nil
			}
			return accumulated.String(), errors.Wrap(err, "llm: stream recv failed")
		}
		if len(resp.Choices) == 0 {
			continue
		}
		token := resp.Choices[0].Delta.Content
		if token == "" {
			continue
		}
		accumulated.WriteString(token)
		chunks++

		select {
		case sink <- token:
		case <-ctx.Done():
			// Caller went away; drain stops here and the deferred Close
			// releases the provider stream.
			return accumulated.String(), ctx.Err()
		}
	}
}

func newHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
	}
}

func convertMessages(messages []Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		out[i] = openai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
	}
	return out
}
