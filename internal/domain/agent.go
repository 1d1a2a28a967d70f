package domain

import (
	"context"
	"encoding/json"
)

// Provider identifies a voice-agent platform.
type Provider string

const (
	ProviderVapi   Provider = "vapi"
	ProviderRetell Provider = "retell"
)

// Providers lists every supported provider in a stable order.
func Providers() []Provider {
	return []Provider{ProviderVapi, ProviderRetell}
}

func (p Provider) IsValid() bool {
	switch p {
	case ProviderVapi, ProviderRetell:
		return true
	}
	return false
}

func (p Provider) String() string {
	return string(p)
}

// ParseProvider converts a raw provider tag into a Provider.
func ParseProvider(s string) (Provider, error) {
	p := Provider(s)
	if !p.IsValid() {
		return "", ErrUnsupportedProvider
	}
	return p, nil
}

// UnifiedAgentRequest is the provider-agnostic "create voice agent" input.
// Optional scalar fields use pointers so absence can be told apart from an
// empty value.
type UnifiedAgentRequest struct {
	Provider       Provider       `json:"provider" yaml:"provider" validate:"required,provider"`
	Name           string         `json:"name" yaml:"name" validate:"required"`
	Description    *string        `json:"description,omitempty" yaml:"description,omitempty"`
	Model          string         `json:"model" yaml:"model" validate:"required"`
	ModelProvider  *string        `json:"model_provider,omitempty" yaml:"model_provider,omitempty"`
	Temperature    *float64       `json:"temperature,omitempty" yaml:"temperature,omitempty" validate:"omitempty,gte=0,lte=2"`
	VoiceID        string         `json:"voice_id" yaml:"voice_id" validate:"required"`
	VoiceProvider  *string        `json:"voice_provider,omitempty" yaml:"voice_provider,omitempty"`
	SystemPrompt   string         `json:"system_prompt" yaml:"system_prompt" validate:"required"`
	InitialMessage *string        `json:"initial_message,omitempty" yaml:"initial_message,omitempty"`
	FirstMessage   *string        `json:"first_message,omitempty" yaml:"first_message,omitempty"`
	Language       *string        `json:"language,omitempty" yaml:"language,omitempty"`
	WebhookURL     *string        `json:"webhook_url,omitempty" yaml:"webhook_url,omitempty" validate:"omitempty,url"`
	WebhookAuth    *string        `json:"webhook_auth,omitempty" yaml:"webhook_auth,omitempty"`
	LLMAPIKey      *string        `json:"llm_api_key,omitempty" yaml:"llm_api_key,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Greeting returns the opening line for the agent. initial_message wins
// over first_message when both are supplied.
func (r *UnifiedAgentRequest) Greeting() (string, bool) {
	if r.InitialMessage != nil {
		return *r.InitialMessage, true
	}
	if r.FirstMessage != nil {
		return *r.FirstMessage, true
	}
	return "", false
}

// LLMResource is the Retell LLM created ahead of the agent that references
// it. It is owned by the remote provider and cannot be deleted from here.
type LLMResource struct {
	ID      string `json:"llm_id"`
	Version int    `json:"version"`
}

// AgentResource is a created agent as reported by the provider.
type AgentResource struct {
	ID     string
	Name   string
	Status string
	Raw    json.RawMessage
}

const StatusSuccess = "success"

// CreateAgentResult is the normalized response returned to callers.
type CreateAgentResult struct {
	Provider    Provider        `json:"provider"`
	AgentID     string          `json:"agent_id"`
	Name        string          `json:"name"`
	Status      string          `json:"status"`
	RawResponse json.RawMessage `json:"raw_response"`
	LLM         *LLMResource    `json:"llm,omitempty"`
}

// Creation is what an AgentCreator hands back on success.
type Creation struct {
	Agent AgentResource
	LLM   *LLMResource
}

// AgentCreator creates an agent on one provider.
type AgentCreator interface {
	Provider() Provider
	CreateAgent(ctx context.Context, req *UnifiedAgentRequest) (*Creation, error)
}
