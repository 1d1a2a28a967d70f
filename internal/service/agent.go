package service

import (
	"context"

	"github.com/Harshitk-cp/voxbridge/internal/domain"
	"go.uber.org/zap"
)

// CreatorLookup resolves the creator for a provider tag.
type CreatorLookup interface {
	Get(p domain.Provider) (domain.AgentCreator, error)
}

type AgentService struct {
	creators CreatorLookup
	logger   *zap.Logger
}

func NewAgentService(creators CreatorLookup, logger *zap.Logger) *AgentService {
	return &AgentService{creators: creators, logger: logger}
}

// CreateAgent validates req, dispatches it to its provider and normalizes
// the provider's answer. Nothing is sent when validation fails.
func (s *AgentService) CreateAgent(ctx context.Context, req *domain.UnifiedAgentRequest) (*domain.CreateAgentResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	creator, err := s.creators.Get(req.Provider)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("creating agent",
		zap.String("provider", req.Provider.String()),
		zap.String("name", req.Name),
	)

	created, err := creator.CreateAgent(ctx, req)
	if err != nil {
		return nil, err
	}

	return &domain.CreateAgentResult{
		Provider:    req.Provider,
		AgentID:     created.Agent.ID,
		Name:        created.Agent.Name,
		Status:      domain.StatusSuccess,
		RawResponse: created.Agent.Raw,
		LLM:         created.LLM,
	}, nil
}
