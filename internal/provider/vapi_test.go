package provider

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/Harshitk-cp/voxbridge/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVapiClient_CreateAgent(t *testing.T) {
	fake := newFakeProvider(t, map[string]cannedResponse{
		vapiAssistantPath: {http.StatusCreated, `{"id":"asst_1","name":"Support Bot","orgId":"org_7"}`},
	})
	obs := &recordingObserver{}
	client := NewVapiClient("vapi-key", fake.server.URL, nil, obs)

	req := baseRequest(domain.ProviderVapi)
	req.InitialMessage = strPtr("Hello there")

	got, err := client.CreateAgent(context.Background(), req)
	require.NoError(t, err)

	calls := fake.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "Bearer vapi-key", calls[0].Auth)
	assert.Equal(t, "Support Bot", calls[0].Body["name"])
	assert.Equal(t, "Hello there", calls[0].Body["firstMessage"])
	assert.NotContains(t, calls[0].Body, "webhook_url")
	assert.NotContains(t, calls[0].Body, "metadata")

	assert.Equal(t, "asst_1", got.Agent.ID)
	assert.Equal(t, "Support Bot", got.Agent.Name)
	assert.Equal(t, domain.StatusSuccess, got.Agent.Status)
	assert.JSONEq(t, `{"id":"asst_1","name":"Support Bot","orgId":"org_7"}`, string(got.Agent.Raw))
	assert.Nil(t, got.LLM)
	assert.Len(t, obs.agents, 1)
}

func TestVapiClient_NameFallsBackToRequest(t *testing.T) {
	fake := newFakeProvider(t, map[string]cannedResponse{
		vapiAssistantPath: {http.StatusOK, `{"id":"asst_2"}`},
	})
	client := NewVapiClient("k", fake.server.URL, nil, nil)

	got, err := client.CreateAgent(context.Background(), baseRequest(domain.ProviderVapi))
	require.NoError(t, err)
	assert.Equal(t, "Support Bot", got.Agent.Name)
}

func TestVapiClient_UpstreamError(t *testing.T) {
	const upstreamBody = `{"message":["voice.voiceId must be a string"],"error":"Bad Request","statusCode":400}`
	fake := newFakeProvider(t, map[string]cannedResponse{
		vapiAssistantPath: {http.StatusBadRequest, upstreamBody},
	})
	obs := &recordingObserver{}
	client := NewVapiClient("k", fake.server.URL, nil, obs)

	_, err := client.CreateAgent(context.Background(), baseRequest(domain.ProviderVapi))

	var upErr *domain.UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, domain.ProviderVapi, upErr.Provider)
	assert.Equal(t, domain.PhaseCreateAgent, upErr.Phase)
	assert.Equal(t, http.StatusBadRequest, upErr.StatusCode)
	assert.Equal(t, upstreamBody, string(upErr.Body))
	assert.Equal(t, []domain.Phase{domain.PhaseCreateAgent}, obs.failed)
}
