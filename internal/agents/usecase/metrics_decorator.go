package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	agentsDomain "github.com/agentvault/agentvault/internal/agents/domain"
	"github.com/agentvault/agentvault/internal/metrics"
)

// agentUseCaseWithMetrics decorates AgentUseCase with metrics instrumentation.
type agentUseCaseWithMetrics struct {
	next    AgentUseCase
	metrics metrics.BusinessMetrics
}

// NewAgentUseCaseWithMetrics wraps an AgentUseCase with metrics recording.
func NewAgentUseCaseWithMetrics(useCase AgentUseCase, m metrics.BusinessMetrics) AgentUseCase {
	return &agentUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Create records metrics for agent creation operations.
func (a *agentUseCaseWithMetrics) Create(
	ctx context.Context,
	input *agentsDomain.CreateAgentInput,
) (*agentsDomain.Agent, error) {
	start := time.Now()
	agent, err := a.next.Create(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "agents", "agent_create", status)
	a.metrics.RecordDuration(ctx, "agents", "agent_create", time.Since(start), status)

	return agent, err
}

// Get records metrics for agent retrieval operations.
func (a *agentUseCaseWithMetrics) Get(
	ctx context.Context,
	agentID uuid.UUID,
) (*agentsDomain.Agent, error) {
	start := time.Now()
	agent, err := a.next.Get(ctx, agentID)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "agents", "agent_get", status)
	a.metrics.RecordDuration(ctx, "agents", "agent_get", time.Since(start), status)

	return agent, err
}

// List records metrics for agent list operations.
func (a *agentUseCaseWithMetrics) List(
	ctx context.Context,
	offset, limit int,
) ([]*agentsDomain.Agent, error) {
	start := time.Now()
	agents, err := a.next.List(ctx, offset, limit)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "agents", "agent_list", status)
	a.metrics.RecordDuration(ctx, "agents", "agent_list", time.Since(start), status)

	return agents, err
}

// Update records metrics for agent update operations.
func (a *agentUseCaseWithMetrics) Update(
	ctx context.Context,
	agentID uuid.UUID,
	input *agentsDomain.UpdateAgentInput,
) (*agentsDomain.Agent, error) {
	start := time.Now()
	agent, err := a.next.Update(ctx, agentID, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "agents", "agent_update", status)
	a.metrics.RecordDuration(ctx, "agents", "agent_update", time.Since(start), status)

	return agent, err
}

// Delete records metrics for agent delete operations.
func (a *agentUseCaseWithMetrics) Delete(ctx context.Context, agentID uuid.UUID) error {
	start := time.Now()
	err := a.next.Delete(ctx, agentID)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "agents", "agent_delete", status)
	a.metrics.RecordDuration(ctx, "agents", "agent_delete", time.Since(start), status)

	return err
}
