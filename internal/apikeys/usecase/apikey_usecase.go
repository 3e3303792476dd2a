// Package usecase implements business logic orchestration for encrypted API keys.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	apikeysDomain "github.com/agentvault/agentvault/internal/apikeys/domain"
	cryptodomain "github.com/agentvault/agentvault/internal/crypto/domain"
	cryptoService "github.com/agentvault/agentvault/internal/crypto/service"
)

// apiKeyUseCase implements APIKeyUseCase. Envelopes are produced and opened
// with the principal's derived key; plaintext keys and derived keys are wiped
// from memory after each operation.
type apiKeyUseCase struct {
	apiKeyRepo APIKeyRepository
	keys       cryptoService.KeyProvider
	nonces     *cryptoService.NonceSource
}

// Store encrypts plaintext under the principal's derived key and upserts the envelope.
func (a *apiKeyUseCase) Store(
	ctx context.Context,
	principalID uuid.UUID,
	provider apikeysDomain.Provider,
	plaintext string,
) (*apikeysDomain.APIKey, error) {
	key, err := a.keys.GetOrDerive(ctx, cryptodomain.Identity(principalID.String()))
	if err != nil {
		return nil, err
	}
	defer cryptodomain.Zero(key)

	cipher, err := cryptoService.NewStreamCipher(key, a.nonces)
	if err != nil {
		return nil, err
	}

	envelope, err := cipher.Encrypt([]byte(plaintext))
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	apiKey := &apikeysDomain.APIKey{
		ID:          uuid.Must(uuid.NewV7()),
		PrincipalID: principalID,
		Provider:    provider,
		Envelope:    envelope,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := a.apiKeyRepo.Upsert(ctx, apiKey); err != nil {
		return nil, err
	}

	return apiKey, nil
}

// Reveal decrypts and returns the principal's stored key for one provider.
func (a *apiKeyUseCase) Reveal(
	ctx context.Context,
	principalID uuid.UUID,
	provider apikeysDomain.Provider,
) (string, error) {
	apiKey, err := a.apiKeyRepo.GetByPrincipalAndProvider(ctx, principalID, provider)
	if err != nil {
		return "", err
	}

	key, err := a.keys.GetOrDerive(ctx, cryptodomain.Identity(principalID.String()))
	if err != nil {
		return "", err
	}
	defer cryptodomain.Zero(key)

	cipher, err := cryptoService.NewStreamCipher(key, a.nonces)
	if err != nil {
		return "", err
	}

	plaintext, err := cipher.Decrypt(apiKey.Envelope)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}

// List retrieves the principal's configured providers without plaintext.
func (a *apiKeyUseCase) List(
	ctx context.Context,
	principalID uuid.UUID,
) ([]*apikeysDomain.APIKey, error) {
	return a.apiKeyRepo.ListByPrincipal(ctx, principalID)
}

// Delete removes the principal's stored key for one provider.
func (a *apiKeyUseCase) Delete(
	ctx context.Context,
	principalID uuid.UUID,
	provider apikeysDomain.Provider,
) error {
	return a.apiKeyRepo.Delete(ctx, principalID, provider)
}

// NewAPIKeyUseCase creates a new APIKeyUseCase with the provided dependencies.
func NewAPIKeyUseCase(
	apiKeyRepo APIKeyRepository,
	keys cryptoService.KeyProvider,
	nonces *cryptoService.NonceSource,
) APIKeyUseCase {
	return &apiKeyUseCase{
		apiKeyRepo: apiKeyRepo,
		keys:       keys,
		nonces:     nonces,
	}
}
