// Package usecase defines business logic interfaces for conversation logs.
package usecase

import (
	"context"

	"github.com/google/uuid"

	conversationsDomain "github.com/agentvault/agentvault/internal/conversations/domain"
)

// EntryRepository defines persistence operations for conversation entries.
// Implementations must support transaction-aware operations via context propagation.
type EntryRepository interface {
	// Create stores a new conversation entry.
	Create(ctx context.Context, entry *conversationsDomain.Entry) error

	// ListByPrincipal retrieves a principal's entries ordered newest first
	// with pagination support.
	ListByPrincipal(
		ctx context.Context,
		principalID uuid.UUID,
		offset, limit int,
	) ([]*conversationsDomain.Entry, error)

	// DeleteByPrincipal removes all entries belonging to a principal.
	// Returns the number of entries removed.
	DeleteByPrincipal(ctx context.Context, principalID uuid.UUID) (int64, error)
}

// EntryUseCase defines business logic operations for conversation logs.
// All operations are scoped to the calling principal.
type EntryUseCase interface {
	// Append records a new conversation entry for a principal.
	// The referenced agent must exist and be active.
	Append(
		ctx context.Context,
		input *conversationsDomain.AppendEntryInput,
	) (*conversationsDomain.Entry, error)

	// List retrieves a principal's entries ordered newest first.
	List(
		ctx context.Context,
		principalID uuid.UUID,
		offset, limit int,
	) ([]*conversationsDomain.Entry, error)

	// Clear removes a principal's entire conversation log and returns the
	// number of entries removed.
	Clear(ctx context.Context, principalID uuid.UUID) (int64, error)
}
