package provider

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Harshitk-cp/voxbridge/internal/config"
	"github.com/Harshitk-cp/voxbridge/internal/domain"
)

// Registry maps each provider tag to the client that creates its agents.
type Registry struct {
	creators map[domain.Provider]domain.AgentCreator
}

type options struct {
	httpClient *http.Client
	observer   domain.PhaseObserver
}

type Option func(*options)

// WithHTTPClient sets the client used for outbound provider calls.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithObserver sets the receiver of phase boundary events.
func WithObserver(obs domain.PhaseObserver) Option {
	return func(o *options) { o.observer = obs }
}

// NewRegistry creates a client for every supported provider.
// Returns an error if any provider credential is missing.
func NewRegistry(cfg config.Providers, opts ...Option) (*Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	creators := make(map[domain.Provider]domain.AgentCreator, len(domain.Providers()))
	for _, p := range domain.Providers() {
		c, err := newCreator(p, cfg, o)
		if err != nil {
			return nil, err
		}
		creators[p] = c
	}
	return &Registry{creators: creators}, nil
}

// NewRegistryFrom builds a registry from ready-made creators.
func NewRegistryFrom(creators ...domain.AgentCreator) *Registry {
	m := make(map[domain.Provider]domain.AgentCreator, len(creators))
	for _, c := range creators {
		m[c.Provider()] = c
	}
	return &Registry{creators: m}
}

func newCreator(p domain.Provider, cfg config.Providers, o options) (domain.AgentCreator, error) {
	switch p {
	case domain.ProviderVapi:
		return NewVapiClient(cfg.Vapi.APIKey, cfg.Vapi.BaseURL, o.httpClient, o.observer), nil
	case domain.ProviderRetell:
		return NewRetellClient(cfg.Retell.APIKey, cfg.Retell.BaseURL, o.httpClient, o.observer), nil
	default:
		return nil, fmt.Errorf("no client for provider %q", p)
	}
}

// Get returns the creator for p.
func (r *Registry) Get(p domain.Provider) (domain.AgentCreator, error) {
	c, ok := r.creators[p]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedProvider, p)
	}
	return c, nil
}

type noopObserver struct{}

func (noopObserver) LLMCreated(context.Context, *domain.UnifiedAgentRequest, domain.LLMResource) {}

func (noopObserver) AgentCreated(context.Context, domain.Provider, domain.AgentResource, *domain.LLMResource) {
}

func (noopObserver) PhaseFailed(context.Context, domain.Provider, domain.Phase, error) {}
