// Package usecase defines business logic interfaces for agent profile management.
package usecase

import (
	"context"

	"github.com/google/uuid"

	agentsDomain "github.com/agentvault/agentvault/internal/agents/domain"
)

// AgentRepository defines persistence operations for agents.
// Implementations must support transaction-aware operations via context propagation.
type AgentRepository interface {
	// Create stores a new agent in the repository.
	Create(ctx context.Context, agent *agentsDomain.Agent) error

	// Update modifies an existing agent in the repository.
	Update(ctx context.Context, agent *agentsDomain.Agent) error

	// Get retrieves an agent by ID. Returns ErrAgentNotFound if not found.
	Get(ctx context.Context, agentID uuid.UUID) (*agentsDomain.Agent, error)

	// GetByName retrieves an agent by its unique name.
	// Returns ErrAgentNotFound if not found.
	GetByName(ctx context.Context, name string) (*agentsDomain.Agent, error)

	// List retrieves agents ordered by name with pagination support.
	List(ctx context.Context, offset, limit int) ([]*agentsDomain.Agent, error)

	// Delete removes an agent. Returns ErrAgentNotFound if not found.
	Delete(ctx context.Context, agentID uuid.UUID) error
}

// AgentUseCase defines business logic operations for the agent lifecycle.
type AgentUseCase interface {
	// Create registers a new agent profile.
	// Returns ErrAgentAlreadyExists if the name is taken.
	Create(ctx context.Context, input *agentsDomain.CreateAgentInput) (*agentsDomain.Agent, error)

	// Get retrieves an agent by ID.
	// Returns ErrAgentNotFound if the agent doesn't exist.
	Get(ctx context.Context, agentID uuid.UUID) (*agentsDomain.Agent, error)

	// List retrieves agents with pagination support.
	List(ctx context.Context, offset, limit int) ([]*agentsDomain.Agent, error)

	// Update applies the non-nil fields of input to an existing agent.
	// Returns ErrAgentNotFound if the agent doesn't exist.
	Update(
		ctx context.Context,
		agentID uuid.UUID,
		input *agentsDomain.UpdateAgentInput,
	) (*agentsDomain.Agent, error)

	// Delete removes an agent by ID.
	// Returns ErrAgentNotFound if the agent doesn't exist.
	Delete(ctx context.Context, agentID uuid.UUID) error
}
