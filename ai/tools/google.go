package tools

import (
	"context"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
)

// Option adjusts adapter construction. Endpoints are overridable so
// tests can point the adapters at a local server.
type Option func(*config)

type config struct {
	endpoint string
	now      func() time.Time
}

func WithEndpoint(endpoint string) Option {
	return func(c *config) { c.endpoint = endpoint }
}

func WithClock(now func() time.Time) Option {
	return func(c *config) { c.now = now }
}

func applyOptions(opts []Option) config {
	cfg := config{now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// serviceOptions builds the per-request client options for a Google API
// service. The access token belongs to the end user and is never stored;
// each request constructs a fresh authenticated client around it.
func serviceOptions(ctx context.Context, accessToken, endpoint string) []option.ClientOption {
	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	client := oauth2.NewClient(ctx, source)
	client.Timeout = 30 * time.Second
	opts := []option.ClientOption{option.WithHTTPClient(client)}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	return opts
}
