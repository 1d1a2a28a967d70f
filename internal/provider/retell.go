package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Harshitk-cp/voxbridge/internal/domain"
)

const (
	retellCreateLLMPath   = "/create-retell-llm"
	retellCreateAgentPath = "/create-agent"
)

// RetellClient creates Retell agents. A Retell agent needs a response
// engine, so every create first creates a Retell LLM and then the agent
// that references it. The two calls are strictly sequential.
type RetellClient struct {
	t        transport
	observer domain.PhaseObserver
}

func NewRetellClient(apiKey, baseURL string, httpClient *http.Client, observer domain.PhaseObserver) *RetellClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if observer == nil {
		observer = noopObserver{}
	}
	return &RetellClient{
		t: transport{
			provider:   domain.ProviderRetell,
			apiKey:     apiKey,
			baseURL:    baseURL,
			httpClient: httpClient,
		},
		observer: observer,
	}
}

func (c *RetellClient) Provider() domain.Provider {
	return domain.ProviderRetell
}

type retellLLMResponse struct {
	LLMID   string `json:"llm_id"`
	Version int    `json:"version"`
}

type retellAgentResponse struct {
	AgentID   string `json:"agent_id"`
	AgentName string `json:"agent_name"`
}

// CreateAgent runs create-retell-llm then create-agent. A failure in the
// first phase is returned as-is and the agent call is never made; the LLM
// created by a successful first phase is left in place if the second fails.
func (c *RetellClient) CreateAgent(ctx context.Context, req *domain.UnifiedAgentRequest) (*domain.Creation, error) {
	llm, err := c.CreateLLM(ctx, req)
	if err != nil {
		c.observer.PhaseFailed(ctx, domain.ProviderRetell, domain.PhaseCreateLLM, err)
		return nil, err
	}
	c.observer.LLMCreated(ctx, req, *llm)

	agent, err := c.createAgent(ctx, req, *llm)
	if err != nil {
		c.observer.PhaseFailed(ctx, domain.ProviderRetell, domain.PhaseCreateAgent, err)
		return nil, err
	}
	c.observer.AgentCreated(ctx, domain.ProviderRetell, *agent, llm)

	return &domain.Creation{Agent: *agent, LLM: llm}, nil
}

// CreateLLM creates the Retell LLM backing an agent.
func (c *RetellClient) CreateLLM(ctx context.Context, req *domain.UnifiedAgentRequest) (*domain.LLMResource, error) {
	body, err := c.t.post(ctx, domain.PhaseCreateLLM, retellCreateLLMPath, BuildRetellLLM(req))
	if err != nil {
		return nil, err
	}

	var resp retellLLMResponse
	if err := decode(domain.PhaseCreateLLM, body, &resp); err != nil {
		return nil, err
	}
	if resp.LLMID == "" {
		return nil, fmt.Errorf("%w: %s: response has no llm_id (raw: %s)", domain.ErrMalformedResponse, domain.PhaseCreateLLM, string(body))
	}

	return &domain.LLMResource{ID: resp.LLMID, Version: resp.Version}, nil
}

func (c *RetellClient) createAgent(ctx context.Context, req *domain.UnifiedAgentRequest, llm domain.LLMResource) (*domain.AgentResource, error) {
	body, err := c.t.post(ctx, domain.PhaseCreateAgent, retellCreateAgentPath, BuildRetellAgent(req, llm))
	if err != nil {
		return nil, err
	}

	var resp retellAgentResponse
	if err := decode(domain.PhaseCreateAgent, body, &resp); err != nil {
		return nil, err
	}

	return &domain.AgentResource{
		ID:     resp.AgentID,
		Name:   stringOr(resp.AgentName, req.Name),
		Status: domain.StatusSuccess,
		Raw:    json.RawMessage(body),
	}, nil
}
