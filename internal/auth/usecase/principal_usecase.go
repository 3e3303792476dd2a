// Package usecase implements business logic orchestration for principal operations.
package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/agentvault/agentvault/internal/auth/domain"
	authService "github.com/agentvault/agentvault/internal/auth/service"
	"github.com/agentvault/agentvault/internal/database"
	apperrors "github.com/agentvault/agentvault/internal/errors"
)

// principalUseCase implements PrincipalUseCase for managing principals.
type principalUseCase struct {
	txManager     database.TxManager
	principalRepo PrincipalRepository
	tokenService  authService.TokenService
}

// Create generates and persists a new Principal with a random bearer token.
// Returns the principal ID and plain text token. The plain token is only
// returned once; the hashed version is stored in the database.
func (p *principalUseCase) Create(
	ctx context.Context,
	createPrincipalInput *authDomain.CreatePrincipalInput,
) (*authDomain.CreatePrincipalOutput, error) {
	plainToken, tokenHash, err := p.tokenService.GenerateToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	principal := &authDomain.Principal{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      createPrincipalInput.Name,
		TokenHash: tokenHash,
		IsAdmin:   createPrincipalInput.IsAdmin,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := p.principalRepo.Create(ctx, principal); err != nil {
		return nil, err
	}

	return &authDomain.CreatePrincipalOutput{
		ID:         principal.ID,
		PlainToken: plainToken,
	}, nil
}

// Authenticate resolves a token hash to an active principal.
// Unknown token hashes surface as ErrUnauthorized to prevent token probing;
// inactive principals surface as ErrPrincipalInactive.
func (p *principalUseCase) Authenticate(
	ctx context.Context,
	tokenHash string,
) (*authDomain.Principal, error) {
	principal, err := p.principalRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, authDomain.ErrPrincipalNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}

	if !principal.IsActive {
		return nil, authDomain.ErrPrincipalInactive
	}

	return principal, nil
}

// Get retrieves a principal by ID.
func (p *principalUseCase) Get(
	ctx context.Context,
	principalID uuid.UUID,
) (*authDomain.Principal, error) {
	return p.principalRepo.Get(ctx, principalID)
}

// List retrieves principals ordered by ID with pagination.
func (p *principalUseCase) List(
	ctx context.Context,
	offset, limit int,
) ([]*authDomain.Principal, error) {
	return p.principalRepo.List(ctx, offset, limit)
}

// SetAdmin adds or removes a principal from the admin allow-list.
// The read-modify-write runs inside a transaction to avoid losing concurrent
// updates to the same principal.
func (p *principalUseCase) SetAdmin(ctx context.Context, principalID uuid.UUID, isAdmin bool) error {
	return p.txManager.WithTx(ctx, func(ctx context.Context) error {
		principal, err := p.principalRepo.Get(ctx, principalID)
		if err != nil {
			return err
		}

		principal.IsAdmin = isAdmin
		principal.UpdatedAt = time.Now().UTC()

		return p.principalRepo.Update(ctx, principal)
	})
}

// NewPrincipalUseCase creates a new PrincipalUseCase with the provided dependencies.
func NewPrincipalUseCase(
	txManager database.TxManager,
	principalRepo PrincipalRepository,
	tokenService authService.TokenService,
) PrincipalUseCase {
	return &principalUseCase{
		txManager:     txManager,
		principalRepo: principalRepo,
		tokenService:  tokenService,
	}
}
