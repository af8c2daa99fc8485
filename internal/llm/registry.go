package llm

import (
	"context"
	"sync"

	"codeberg.org/semtools/sparqld/internal/config"
	"codeberg.org/semtools/sparqld/internal/logger"
)

// Registry owns the set of constructed vendor clients and resolves
// which one serves a request.
//
// Clients are registered only when an API key is present and
// construction succeeds; construction failures degrade to "fewer
// providers available" rather than aborting startup. Reload replaces
// the whole client set at once — concurrent readers observe either the
// old set or the new one, never a partially built one.
type Registry struct {
	mu          sync.RWMutex
	enabled     bool
	fallback    Provider
	maxTokens   int
	temperature float64
	clients     map[Provider]Client
	order       []Provider // registration order, for last-resort fallback
}

// NewRegistry builds a registry from the AI configuration.
func NewRegistry(cfg config.AIConfig) *Registry {
	r := &Registry{}
	r.rebuild(cfg)

	return r
}

// Reload rebuilds the registry from a new configuration, replacing the
// old client set wholesale.
func (r *Registry) Reload(cfg config.AIConfig) {
	r.rebuild(cfg)
}

func (r *Registry) rebuild(cfg config.AIConfig) {
	clients := make(map[Provider]Client)
	order := make([]Provider, 0, 2)

	if cfg.OpenAI.APIKey != "" {
		client, err := NewOpenAI(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
		if err != nil {
			logger.Warn("failed to initialize OpenAI client", "error", err)
		} else {
			clients[ProviderOpenAI] = client
			order = append(order, ProviderOpenAI)
			logger.Info("OpenAI client initialized", "model", client.Model())
		}
	}

	if cfg.Anthropic.APIKey != "" {
		client, err := NewAnthropic(cfg.Anthropic.APIKey, cfg.Anthropic.Model)
		if err != nil {
			logger.Warn("failed to initialize Anthropic client", "error", err)
		} else {
			clients[ProviderAnthropic] = client
			order = append(order, ProviderAnthropic)
			logger.Info("Anthropic client initialized", "model", client.Model())
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.enabled = cfg.Enabled
	r.fallback = Provider(cfg.DefaultProvider)
	r.maxTokens = cfg.MaxTokens
	r.temperature = cfg.Temperature
	r.clients = clients
	r.order = order
}

// Resolve picks the client for a request: the requested provider when
// registered, else the configured default, else the first-registered
// client, else ErrNoProvider. The returned Provider is the identity
// actually chosen.
func (r *Registry) Resolve(requested Provider) (Provider, Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if requested != "" {
		if client, ok := r.clients[requested]; ok {
			return requested, client, nil
		}
	}

	if client, ok := r.clients[r.fallback]; ok {
		return r.fallback, client, nil
	}

	for _, p := range r.order {
		return p, r.clients[p], nil
	}

	return "", nil, ErrNoProvider
}

// Generate resolves a client and runs one completion with the
// registry-wide token and temperature defaults applied. It returns the
// provider identity that served the request.
func (r *Registry) Generate(ctx context.Context, requested Provider, messages []Message) (string, Provider, error) {
	used, client, err := r.Resolve(requested)
	if err != nil {
		return "", "", err
	}

	r.mu.RLock()
	maxTokens := r.maxTokens
	temperature := r.temperature
	r.mu.RUnlock()

	req := Request{
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: &temperature,
	}

	text, err := client.Generate(ctx, req)
	if err != nil {
		return "", used, err
	}

	return text, used, nil
}

// Available returns the providers whose clients report a usable credential.
func (r *Registry) Available() []Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()

	providers := make([]Provider, 0, len(r.order))
	for _, p := range r.order {
		if r.clients[p].Available() {
			providers = append(providers, p)
		}
	}

	return providers
}

// Enabled reports whether the AI layer is on: the configuration flag
// must be set AND at least one client must be registered.
func (r *Registry) Enabled() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.enabled && len(r.clients) > 0
}

// Default returns the configured default provider.
func (r *Registry) Default() Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.fallback
}
