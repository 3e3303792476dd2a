// Package usecase implements business logic orchestration for conversation logs.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	agentsUseCase "github.com/agentvault/agentvault/internal/agents/usecase"
	conversationsDomain "github.com/agentvault/agentvault/internal/conversations/domain"
)

// entryUseCase implements EntryUseCase for managing conversation logs.
type entryUseCase struct {
	entryRepo    EntryRepository
	agentUseCase agentsUseCase.AgentUseCase
}

// Append validates the referenced agent and persists a new conversation entry.
func (e *entryUseCase) Append(
	ctx context.Context,
	input *conversationsDomain.AppendEntryInput,
) (*conversationsDomain.Entry, error) {
	agent, err := e.agentUseCase.Get(ctx, input.AgentID)
	if err != nil {
		return nil, err
	}
	if !agent.IsActive {
		return nil, conversationsDomain.ErrAgentInactive
	}

	entry := &conversationsDomain.Entry{
		ID:          uuid.Must(uuid.NewV7()),
		PrincipalID: input.PrincipalID,
		AgentID:     input.AgentID,
		Role:        input.Role,
		Content:     input.Content,
		CreatedAt:   time.Now().UTC(),
	}

	if err := e.entryRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// List retrieves a principal's entries ordered newest first.
func (e *entryUseCase) List(
	ctx context.Context,
	principalID uuid.UUID,
	offset, limit int,
) ([]*conversationsDomain.Entry, error) {
	return e.entryRepo.ListByPrincipal(ctx, principalID, offset, limit)
}

// Clear removes a principal's entire conversation log.
func (e *entryUseCase) Clear(ctx context.Context, principalID uuid.UUID) (int64, error) {
	return e.entryRepo.DeleteByPrincipal(ctx, principalID)
}

// NewEntryUseCase creates a new EntryUseCase with the provided dependencies.
func NewEntryUseCase(
	entryRepo EntryRepository,
	agentUseCase agentsUseCase.AgentUseCase,
) EntryUseCase {
	return &entryUseCase{
		entryRepo:    entryRepo,
		agentUseCase: agentUseCase,
	}
}
