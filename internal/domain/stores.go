package domain

import (
	"context"
	"time"
)

// LLMRecord is a ledger row for a Retell LLM created on behalf of a request.
type LLMRecord struct {
	LLMID     string
	Version   int
	Provider  Provider
	AgentName string
	CreatedAt time.Time
}

// LLMLedger tracks LLM resources that outlive the request that created them.
type LLMLedger interface {
	Record(ctx context.Context, rec *LLMRecord) error
	MarkAttached(ctx context.Context, llmID, agentID string) error
}

// PhaseObserver receives phase boundary events from provider calls.
type PhaseObserver interface {
	LLMCreated(ctx context.Context, req *UnifiedAgentRequest, llm LLMResource)
	AgentCreated(ctx context.Context, provider Provider, agent AgentResource, llm *LLMResource)
	PhaseFailed(ctx context.Context, provider Provider, phase Phase, err error)
}
