// Package usecase defines business logic interfaces for principal management
// and authentication.
package usecase

import (
	"context"

	"github.com/google/uuid"

	authDomain "github.com/agentvault/agentvault/internal/auth/domain"
)

// PrincipalRepository defines persistence operations for principals.
// Implementations must support transaction-aware operations via context propagation.
type PrincipalRepository interface {
	// Create stores a new principal in the repository.
	Create(ctx context.Context, principal *authDomain.Principal) error

	// Update modifies an existing principal in the repository.
	Update(ctx context.Context, principal *authDomain.Principal) error

	// Get retrieves a principal by ID. Returns ErrPrincipalNotFound if not found.
	Get(ctx context.Context, principalID uuid.UUID) (*authDomain.Principal, error)

	// GetByTokenHash retrieves a principal by its token hash.
	// Returns ErrPrincipalNotFound if not found.
	GetByTokenHash(ctx context.Context, tokenHash string) (*authDomain.Principal, error)

	// List retrieves principals ordered by ID with pagination support.
	List(ctx context.Context, offset, limit int) ([]*authDomain.Principal, error)
}

// PrincipalUseCase defines business logic operations for principal lifecycle
// and the admin allow-list.
type PrincipalUseCase interface {
	// Create generates a new principal with a cryptographically secure bearer token.
	//
	// Returns the principal ID and plain text token. The plain token is only
	// returned once and should be securely transmitted to the caller. The hashed
	// version is stored in the database for future authentication.
	Create(
		ctx context.Context,
		createPrincipalInput *authDomain.CreatePrincipalInput,
	) (*authDomain.CreatePrincipalOutput, error)

	// Authenticate resolves a token hash to an active principal.
	// Returns ErrUnauthorized for unknown tokens and ErrPrincipalInactive for
	// deactivated principals.
	Authenticate(ctx context.Context, tokenHash string) (*authDomain.Principal, error)

	// Get retrieves a principal by ID.
	// Returns ErrPrincipalNotFound if the principal doesn't exist.
	Get(ctx context.Context, principalID uuid.UUID) (*authDomain.Principal, error)

	// List retrieves principals with pagination support.
	List(ctx context.Context, offset, limit int) ([]*authDomain.Principal, error)

	// SetAdmin adds or removes a principal from the admin allow-list.
	// Returns ErrPrincipalNotFound if the principal doesn't exist.
	SetAdmin(ctx context.Context, principalID uuid.UUID, isAdmin bool) error
}
