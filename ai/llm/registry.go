package llm

import (
	"context"
	"log/slog"
	"sync"

	"github.com/pkg/errors"
)

// Registry is the process-wide pool of provider connections, keyed by
// provider kind. A connection is built on first use and reused for every
// later session; entries are never invalidated mid-process. Connections
// are append-only configuration: nothing mutates them per request.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
	configs   map[string]Config
}

// NewRegistry creates a registry over the given provider configurations.
func NewRegistry(configs map[string]Config) *Registry {
	return &Registry{
		providers: make(map[string]Provider),
		configs:   configs,
	}
}

// Get returns the connection for kind, building it on first use.
func (r *Registry) Get(ctx context.Context, kind string) (Provider, error) {
	r.mu.RLock()
	p, ok := r.providers[kind]
	r.mu.RUnlock()
	if ok {
		return p, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.providers[kind]; ok {
		return p, nil
	}

	cfg, ok := r.configs[kind]
	if !ok {
		return nil, errors.Errorf("llm: provider %q is not configured", kind)
	}

	var (
		p2  Provider
		err error
	)
	if cfg.Kind == "gemini" {
		p2, err = NewGemini(ctx, cfg)
	} else {
		p2, err = NewOpenAICompatible(cfg)
	}
	if err != nil {
		return nil, err
	}

	r.providers[kind] = p2
	slog.Info("llm provider connected", "kind", kind, "model", cfg.Model)
	return p2, nil
}

// Kinds returns the configured provider kinds.
func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, len(r.configs))
	for k := range r.configs {
		kinds = append(kinds, k)
	}
	return kinds
}

// Register installs a pre-built provider, replacing any configured factory
// for its name. Used by tests to inject scripted providers.
func (r *Registry) Register(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[p.Name()] = p
}
