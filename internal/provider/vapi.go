package provider

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Harshitk-cp/voxbridge/internal/domain"
)

const vapiAssistantPath = "/assistant"

type VapiClient struct {
	t        transport
	observer domain.PhaseObserver
}

func NewVapiClient(apiKey, baseURL string, httpClient *http.Client, observer domain.PhaseObserver) *VapiClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if observer == nil {
		observer = noopObserver{}
	}
	return &VapiClient{
		t: transport{
			provider:   domain.ProviderVapi,
			apiKey:     apiKey,
			baseURL:    baseURL,
			httpClient: httpClient,
		},
		observer: observer,
	}
}

func (c *VapiClient) Provider() domain.Provider {
	return domain.ProviderVapi
}

type vapiAssistantResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (c *VapiClient) CreateAgent(ctx context.Context, req *domain.UnifiedAgentRequest) (*domain.Creation, error) {
	body, err := c.t.post(ctx, domain.PhaseCreateAgent, vapiAssistantPath, BuildVapiAssistant(req))
	if err != nil {
		c.observer.PhaseFailed(ctx, domain.ProviderVapi, domain.PhaseCreateAgent, err)
		return nil, err
	}

	var resp vapiAssistantResponse
	if err := decode(domain.PhaseCreateAgent, body, &resp); err != nil {
		c.observer.PhaseFailed(ctx, domain.ProviderVapi, domain.PhaseCreateAgent, err)
		return nil, err
	}

	agent := domain.AgentResource{
		ID:     resp.ID,
		Name:   stringOr(resp.Name, req.Name),
		Status: domain.StatusSuccess,
		Raw:    json.RawMessage(body),
	}
	c.observer.AgentCreated(ctx, domain.ProviderVapi, agent, nil)

	return &domain.Creation{Agent: agent}, nil
}
