package service

import (
	"context"
	"errors"
	"time"

	"github.com/Harshitk-cp/voxbridge/internal/domain"
	"go.uber.org/zap"
)

// PhaseLogger logs provider phase boundaries and keeps track of every LLM
// resource created on a provider, since those cannot be removed from here.
type PhaseLogger struct {
	ledger domain.LLMLedger
	logger *zap.Logger
}

// NewPhaseLogger creates a phase observer. ledger may be nil, in which case
// created LLM resources are only logged.
func NewPhaseLogger(ledger domain.LLMLedger, logger *zap.Logger) *PhaseLogger {
	return &PhaseLogger{ledger: ledger, logger: logger}
}

func (o *PhaseLogger) LLMCreated(ctx context.Context, req *domain.UnifiedAgentRequest, llm domain.LLMResource) {
	o.logger.Info("llm resource created",
		zap.String("provider", req.Provider.String()),
		zap.String("phase", string(domain.PhaseCreateLLM)),
		zap.String("llm_id", llm.ID),
		zap.Int("llm_version", llm.Version),
		zap.String("agent_name", req.Name),
	)

	if o.ledger == nil {
		return
	}
	rec := &domain.LLMRecord{
		LLMID:     llm.ID,
		Version:   llm.Version,
		Provider:  req.Provider,
		AgentName: req.Name,
		CreatedAt: time.Now().UTC(),
	}
	// Recorded even if the caller has gone away.
	if err := o.ledger.Record(context.WithoutCancel(ctx), rec); err != nil {
		o.logger.Error("failed to record llm resource", zap.String("llm_id", llm.ID), zap.Error(err))
	}
}

func (o *PhaseLogger) AgentCreated(ctx context.Context, provider domain.Provider, agent domain.AgentResource, llm *domain.LLMResource) {
	fields := []zap.Field{
		zap.String("provider", provider.String()),
		zap.String("phase", string(domain.PhaseCreateAgent)),
		zap.String("agent_id", agent.ID),
		zap.String("agent_name", agent.Name),
	}
	if llm != nil {
		fields = append(fields, zap.String("llm_id", llm.ID))
	}
	o.logger.Info("agent created", fields...)

	if llm == nil || o.ledger == nil {
		return
	}
	if err := o.ledger.MarkAttached(context.WithoutCancel(ctx), llm.ID, agent.ID); err != nil {
		o.logger.Error("failed to attach llm resource", zap.String("llm_id", llm.ID), zap.Error(err))
	}
}

func (o *PhaseLogger) PhaseFailed(ctx context.Context, provider domain.Provider, phase domain.Phase, err error) {
	fields := []zap.Field{
		zap.String("provider", provider.String()),
		zap.String("phase", string(phase)),
		zap.Error(err),
	}
	var upErr *domain.UpstreamError
	if errors.As(err, &upErr) && upErr.StatusCode != 0 {
		fields = append(fields, zap.Int("status", upErr.StatusCode))
	}
	o.logger.Warn("provider phase failed", fields...)
}
