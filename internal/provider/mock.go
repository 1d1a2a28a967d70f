package provider

import (
	"context"
	"encoding/json"

	"github.com/Harshitk-cp/voxbridge/internal/domain"
)

// MockCreator is a configurable AgentCreator for testing.
// Set the response fields to control what CreateAgent returns.
type MockCreator struct {
	Tag      domain.Provider
	Response *domain.Creation
	Error    error

	// Call tracking for assertions
	Calls []*domain.UnifiedAgentRequest
}

func NewMockCreator(p domain.Provider) *MockCreator {
	return &MockCreator{
		Tag: p,
		Response: &domain.Creation{
			Agent: domain.AgentResource{
				ID:     "mock-agent",
				Name:   "Mock Agent",
				Status: domain.StatusSuccess,
				Raw:    json.RawMessage(`{"id":"mock-agent","name":"Mock Agent"}`),
			},
		},
	}
}

func (m *MockCreator) Provider() domain.Provider {
	return m.Tag
}

func (m *MockCreator) CreateAgent(ctx context.Context, req *domain.UnifiedAgentRequest) (*domain.Creation, error) {
	m.Calls = append(m.Calls, req)
	if m.Error != nil {
		return nil, m.Error
	}
	return m.Response, nil
}
