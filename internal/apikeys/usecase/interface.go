// Package usecase defines business logic interfaces for encrypted API key storage.
package usecase

import (
	"context"

	"github.com/google/uuid"

	apikeysDomain "github.com/agentvault/agentvault/internal/apikeys/domain"
)

// APIKeyRepository defines persistence operations for encrypted API keys.
// Implementations must support transaction-aware operations via context propagation.
type APIKeyRepository interface {
	// Upsert inserts a new API key or replaces the envelope of an existing
	// one for the same principal and provider.
	Upsert(ctx context.Context, apiKey *apikeysDomain.APIKey) error

	// GetByPrincipalAndProvider retrieves a principal's key for one provider.
	// Returns ErrAPIKeyNotFound if not found.
	GetByPrincipalAndProvider(
		ctx context.Context,
		principalID uuid.UUID,
		provider apikeysDomain.Provider,
	) (*apikeysDomain.APIKey, error)

	// ListByPrincipal retrieves all of a principal's keys ordered by provider.
	ListByPrincipal(ctx context.Context, principalID uuid.UUID) ([]*apikeysDomain.APIKey, error)

	// Delete removes a principal's key for one provider.
	// Returns ErrAPIKeyNotFound if not found.
	Delete(
		ctx context.Context,
		principalID uuid.UUID,
		provider apikeysDomain.Provider,
	) error
}

// APIKeyUseCase defines business logic operations for encrypted API key
// storage. All operations are scoped to the calling principal.
type APIKeyUseCase interface {
	// Store encrypts plaintext under the principal's derived key and upserts
	// the resulting envelope.
	Store(
		ctx context.Context,
		principalID uuid.UUID,
		provider apikeysDomain.Provider,
		plaintext string,
	) (*apikeysDomain.APIKey, error)

	// Reveal decrypts and returns the principal's stored key for one provider.
	Reveal(
		ctx context.Context,
		principalID uuid.UUID,
		provider apikeysDomain.Provider,
	) (string, error)

	// List retrieves the principal's configured providers without plaintext.
	List(ctx context.Context, principalID uuid.UUID) ([]*apikeysDomain.APIKey, error)

	// Delete removes the principal's stored key for one provider.
	Delete(
		ctx context.Context,
		principalID uuid.UUID,
		provider apikeysDomain.Provider,
	) error
}
