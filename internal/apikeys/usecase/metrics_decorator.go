package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	apikeysDomain "github.com/agentvault/agentvault/internal/apikeys/domain"
	"github.com/agentvault/agentvault/internal/metrics"
)

// apiKeyUseCaseWithMetrics decorates APIKeyUseCase with metrics instrumentation.
type apiKeyUseCaseWithMetrics struct {
	next    APIKeyUseCase
	metrics metrics.BusinessMetrics
}

// NewAPIKeyUseCaseWithMetrics wraps an APIKeyUseCase with metrics recording.
func NewAPIKeyUseCaseWithMetrics(useCase APIKeyUseCase, m metrics.BusinessMetrics) APIKeyUseCase {
	return &apiKeyUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Store records metrics for API key store operations.
func (a *apiKeyUseCaseWithMetrics) Store(
	ctx context.Context,
	principalID uuid.UUID,
	provider apikeysDomain.Provider,
	plaintext string,
) (*apikeysDomain.APIKey, error) {
	start := time.Now()
	apiKey, err := a.next.Store(ctx, principalID, provider, plaintext)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "apikeys", "key_store", status)
	a.metrics.RecordDuration(ctx, "apikeys", "key_store", time.Since(start), status)

	return apiKey, err
}

// Reveal records metrics for API key reveal operations.
func (a *apiKeyUseCaseWithMetrics) Reveal(
	ctx context.Context,
	principalID uuid.UUID,
	provider apikeysDomain.Provider,
) (string, error) {
	start := time.Now()
	plaintext, err := a.next.Reveal(ctx, principalID, provider)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "apikeys", "key_reveal", status)
	a.metrics.RecordDuration(ctx, "apikeys", "key_reveal", time.Since(start), status)

	return plaintext, err
}

// List records metrics for API key list operations.
func (a *apiKeyUseCaseWithMetrics) List(
	ctx context.Context,
	principalID uuid.UUID,
) ([]*apikeysDomain.APIKey, error) {
	start := time.Now()
	apiKeys, err := a.next.List(ctx, principalID)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "apikeys", "key_list", status)
	a.metrics.RecordDuration(ctx, "apikeys", "key_list", time.Since(start), status)

	return apiKeys, err
}

// Delete records metrics for API key delete operations.
func (a *apiKeyUseCaseWithMetrics) Delete(
	ctx context.Context,
	principalID uuid.UUID,
	provider apikeysDomain.Provider,
) error {
	start := time.Now()
	err := a.next.Delete(ctx, principalID, provider)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "apikeys", "key_delete", status)
	a.metrics.RecordDuration(ctx, "apikeys", "key_delete", time.Since(start), status)

	return err
}
