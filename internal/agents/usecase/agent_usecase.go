// Package usecase implements business logic orchestration for agent operations.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	agentsDomain "github.com/agentvault/agentvault/internal/agents/domain"
)

// agentUseCase implements AgentUseCase for managing agent profiles.
type agentUseCase struct {
	agentRepo AgentRepository
}

// Create registers and persists a new agent profile.
func (a *agentUseCase) Create(
	ctx context.Context,
	input *agentsDomain.CreateAgentInput,
) (*agentsDomain.Agent, error) {
	now := time.Now().UTC()
	agent := &agentsDomain.Agent{
		ID:           uuid.Must(uuid.NewV7()),
		Name:         input.Name,
		Provider:     input.Provider,
		Model:        input.Model,
		SystemPrompt: input.SystemPrompt,
		Temperature:  input.Temperature,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := a.agentRepo.Create(ctx, agent); err != nil {
		return nil, err
	}

	return agent, nil
}

// Get retrieves an agent by ID.
func (a *agentUseCase) Get(ctx context.Context, agentID uuid.UUID) (*agentsDomain.Agent, error) {
	return a.agentRepo.Get(ctx, agentID)
}

// List retrieves agents ordered by name with pagination.
func (a *agentUseCase) List(ctx context.Context, offset, limit int) ([]*agentsDomain.Agent, error) {
	return a.agentRepo.List(ctx, offset, limit)
}

// Update applies the non-nil fields of input to an existing agent.
func (a *agentUseCase) Update(
	ctx context.Context,
	agentID uuid.UUID,
	input *agentsDomain.UpdateAgentInput,
) (*agentsDomain.Agent, error) {
	agent, err := a.agentRepo.Get(ctx, agentID)
	if err != nil {
		return nil, err
	}

	if input.Provider != nil {
		agent.Provider = *input.Provider
	}
	if input.Model != nil {
		agent.Model = *input.Model
	}
	if input.SystemPrompt != nil {
		agent.SystemPrompt = *input.SystemPrompt
	}
	if input.Temperature != nil {
		agent.Temperature = *input.Temperature
	}
	if input.IsActive != nil {
		agent.IsActive = *input.IsActive
	}
	agent.UpdatedAt = time.Now().UTC()

	if err := a.agentRepo.Update(ctx, agent); err != nil {
		return nil, err
	}

	return agent, nil
}

// Delete removes an agent by ID.
func (a *agentUseCase) Delete(ctx context.Context, agentID uuid.UUID) error {
	return a.agentRepo.Delete(ctx, agentID)
}

// NewAgentUseCase creates a new AgentUseCase with the provided dependencies.
func NewAgentUseCase(agentRepo AgentRepository) AgentUseCase {
	return &agentUseCase{agentRepo: agentRepo}
}
