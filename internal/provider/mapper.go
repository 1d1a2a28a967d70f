package provider

import (
	"github.com/Harshitk-cp/voxbridge/internal/domain"
)

// Vapi assistant payload for POST /assistant.
type VapiAssistantRequest struct {
	Name         string         `json:"name"`
	Model        VapiModel      `json:"model"`
	Voice        VapiVoice      `json:"voice"`
	FirstMessage *string        `json:"firstMessage,omitempty"`
	WebhookURL   *string        `json:"webhook_url,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

type VapiModel struct {
	Provider     string  `json:"provider"`
	Model        string  `json:"model"`
	Temperature  float64 `json:"temperature"`
	SystemPrompt string  `json:"systemPrompt"`
}

type VapiVoice struct {
	Provider string `json:"provider"`
	VoiceID  string `json:"voiceId"`
}

// Retell LLM payload for POST /create-retell-llm.
type RetellLLMRequest struct {
	S2SModel         string  `json:"s2s_model"`
	ModelTemperature float64 `json:"model_temperature"`
	SystemMessage    *string `json:"system_message,omitempty"`
	OpenAIAPIKey     *string `json:"openai_api_key,omitempty"`
}

// Retell agent payload for POST /create-agent.
type RetellAgentRequest struct {
	AgentName      string               `json:"agent_name"`
	ResponseEngine RetellResponseEngine `json:"response_engine"`
	VoiceID        string               `json:"voice_id"`
	Language       string               `json:"language"`
	InitialMessage *string              `json:"initial_message,omitempty"`
	WebhookURL     *string              `json:"webhook_url,omitempty"`
	WebhookAuth    *string              `json:"webhook_auth,omitempty"`
	Metadata       map[string]any       `json:"metadata,omitempty"`
}

type RetellResponseEngine struct {
	Type    string `json:"type"`
	LLMID   string `json:"llm_id"`
	Version int    `json:"version"`
}

// BuildVapiAssistant maps a unified request onto the Vapi assistant shape.
func BuildVapiAssistant(req *domain.UnifiedAgentRequest) VapiAssistantRequest {
	out := VapiAssistantRequest{
		Name: req.Name,
		Model: VapiModel{
			Provider:     deref(req.ModelProvider, Defaults.ModelProvider),
			Model:        stringOr(req.Model, Defaults.ModelName),
			Temperature:  temperature(req),
			SystemPrompt: req.SystemPrompt,
		},
		Voice: VapiVoice{
			Provider: deref(req.VoiceProvider, Defaults.VoiceProvider),
			VoiceID:  stringOr(req.VoiceID, Defaults.VapiVoiceID),
		},
		WebhookURL: req.WebhookURL,
		Metadata:   foldMetadata(req),
	}
	if greeting, ok := req.Greeting(); ok {
		out.FirstMessage = &greeting
	}
	return out
}

// BuildRetellLLM maps the model related subset of a unified request onto
// the Retell LLM shape.
func BuildRetellLLM(req *domain.UnifiedAgentRequest) RetellLLMRequest {
	out := RetellLLMRequest{
		S2SModel:         stringOr(req.Model, Defaults.S2SModel),
		ModelTemperature: temperature(req),
		OpenAIAPIKey:     req.LLMAPIKey,
	}
	if req.SystemPrompt != "" {
		prompt := req.SystemPrompt
		out.SystemMessage = &prompt
	}
	return out
}

// BuildRetellAgent maps a unified request onto the Retell agent shape,
// pointing its response engine at llm.
func BuildRetellAgent(req *domain.UnifiedAgentRequest, llm domain.LLMResource) RetellAgentRequest {
	out := RetellAgentRequest{
		AgentName: req.Name,
		ResponseEngine: RetellResponseEngine{
			Type:    Defaults.ResponseEngineType,
			LLMID:   llm.ID,
			Version: llm.Version,
		},
		VoiceID:     stringOr(req.VoiceID, Defaults.RetellVoiceID),
		Language:    deref(req.Language, Defaults.Language),
		WebhookURL:  req.WebhookURL,
		WebhookAuth: req.WebhookAuth,
		Metadata:    foldMetadata(req),
	}
	if greeting, ok := req.Greeting(); ok {
		out.InitialMessage = &greeting
	}
	return out
}

// foldMetadata merges the description into a copy of the request metadata.
// Explicit metadata keys win over the folded description.
func foldMetadata(req *domain.UnifiedAgentRequest) map[string]any {
	if req.Description == nil && len(req.Metadata) == 0 {
		return nil
	}
	md := make(map[string]any, len(req.Metadata)+1)
	if req.Description != nil {
		md["description"] = *req.Description
	}
	for k, v := range req.Metadata {
		md[k] = v
	}
	return md
}

func temperature(req *domain.UnifiedAgentRequest) float64 {
	if req.Temperature != nil {
		return *req.Temperature
	}
	return Defaults.Temperature
}

func deref(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}

func stringOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// Preview returns the payloads a create would send, keyed by phase.
// Retell's agent payload carries an empty response engine reference since
// the LLM does not exist yet.
func Preview(req *domain.UnifiedAgentRequest) (map[domain.Phase]any, error) {
	switch req.Provider {
	case domain.ProviderVapi:
		return map[domain.Phase]any{
			domain.PhaseCreateAgent: BuildVapiAssistant(req),
		}, nil
	case domain.ProviderRetell:
		return map[domain.Phase]any{
			domain.PhaseCreateLLM:   BuildRetellLLM(req),
			domain.PhaseCreateAgent: BuildRetellAgent(req, domain.LLMResource{}),
		}, nil
	default:
		return nil, domain.ErrUnsupportedProvider
	}
}
