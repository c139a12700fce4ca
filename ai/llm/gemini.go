package llm

import (
	"context"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

const defaultGeminiModel = "gemini-2.0-flash"

type geminiProvider struct {
	client      *genai.Client
	model       string
	maxTokens   int
	temperature float32
	timeout     time.Duration
}

// NewGemini creates a Gemini provider connection.
func NewGemini(ctx context.Context, cfg Config) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("llm: missing Gemini API key")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, errors.Wrap(err, "llm: create gemini client")
	}

	model := cfg.Model
	if model == "" {
		model = defaultGeminiModel
	}
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

	return &geminiProvider{
		client:      client,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		timeout:     time.Duration(timeout) * time.Second,
	}, nil
}

func (p *geminiProvider) Name() string { return "gemini" }

func (p *geminiProvider) Complete(ctx context.Context, messages []Message) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	gm, parts := p.prepare(messages)
	resp, err := gm.GenerateContent(ctx, parts...)
	if err != nil {
		return "", errors.Wrap(err, "llm: gemini generate failed")
	}
	text := collectText(resp)
	if text == "" {
		return "", errors.New("llm: empty response")
	}
	return text, nil
}

func (p *geminiProvider) StreamTo(ctx context.Context, messages []Message, sink chan<- string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	gm, parts := p.prepare(messages)
	iter := gm.GenerateContentStream(ctx, parts...)

	var accumulated strings.Builder
	for {
		resp, err := iter.Next()
		if err == iterator.Done {
			return accumulated.String(), nil
		}
		if err != nil {
			return accumulated.String(), errors.Wrap(err, "llm: gemini stream failed")
		}
		token := collectText(resp)
		if token == "" {
			continue
		}
		accumulated.WriteString(token)

		select {
		case sink <- token:
		case <-ctx.Done():
			return accumulated.String(), ctx.Err()
		}
	}
}

// prepare maps chat messages to a configured generative model: system
// messages become the system instruction, the rest flow in as ordered text
// parts of a single user turn.
func (p *geminiProvider) prepare(messages []Message) (*genai.GenerativeModel, []genai.Part) {
	gm := p.client.GenerativeModel(p.model)
	gm.SetMaxOutputTokens(int32(p.maxTokens))
	gm.SetTemperature(p.temperature)

	var parts []genai.Part
	for _, m := range messages {
		if m.Role == RoleSystem {
			gm.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(m.Content)}}
			continue
		}
		parts = append(parts, genai.Text(m.Content))
	}
	if len(parts) == 0 {
		parts = []genai.Part{genai.Text("")}
	}
	return gm, parts
}

func collectText(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
	}
	return b.String()
}
