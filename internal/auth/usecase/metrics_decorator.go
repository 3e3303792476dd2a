package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/agentvault/agentvault/internal/auth/domain"
	"github.com/agentvault/agentvault/internal/metrics"
)

// principalUseCaseWithMetrics decorates PrincipalUseCase with metrics instrumentation.
type principalUseCaseWithMetrics struct {
	next    PrincipalUseCase
	metrics metrics.BusinessMetrics
}

// NewPrincipalUseCaseWithMetrics wraps a PrincipalUseCase with metrics recording.
func NewPrincipalUseCaseWithMetrics(useCase PrincipalUseCase, m metrics.BusinessMetrics) PrincipalUseCase {
	return &principalUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Create records metrics for principal creation operations.
func (p *principalUseCaseWithMetrics) Create(
	ctx context.Context,
	createPrincipalInput *authDomain.CreatePrincipalInput,
) (*authDomain.CreatePrincipalOutput, error) {
	start := time.Now()
	output, err := p.next.Create(ctx, createPrincipalInput)

	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "auth", "principal_create", status)
	p.metrics.RecordDuration(ctx, "auth", "principal_create", time.Since(start), status)

	return output, err
}

// Authenticate records metrics for authentication operations.
func (p *principalUseCaseWithMetrics) Authenticate(
	ctx context.Context,
	tokenHash string,
) (*authDomain.Principal, error) {
	start := time.Now()
	principal, err := p.next.Authenticate(ctx, tokenHash)

	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "auth", "authenticate", status)
	p.metrics.RecordDuration(ctx, "auth", "authenticate", time.Since(start), status)

	return principal, err
}

// Get records metrics for principal retrieval operations.
func (p *principalUseCaseWithMetrics) Get(
	ctx context.Context,
	principalID uuid.UUID,
) (*authDomain.Principal, error) {
	start := time.Now()
	principal, err := p.next.Get(ctx, principalID)

	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "auth", "principal_get", status)
	p.metrics.RecordDuration(ctx, "auth", "principal_get", time.Since(start), status)

	return principal, err
}

// List records metrics for principal list operations.
func (p *principalUseCaseWithMetrics) List(
	ctx context.Context,
	offset, limit int,
) ([]*authDomain.Principal, error) {
	start := time.Now()
	principals, err := p.next.List(ctx, offset, limit)

	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "auth", "principal_list", status)
	p.metrics.RecordDuration(ctx, "auth", "principal_list", time.Since(start), status)

	return principals, err
}

// SetAdmin records metrics for admin allow-list changes.
func (p *principalUseCaseWithMetrics) SetAdmin(
	ctx context.Context,
	principalID uuid.UUID,
	isAdmin bool,
) error {
	start := time.Now()
	err := p.next.SetAdmin(ctx, principalID, isAdmin)

	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "auth", "principal_set_admin", status)
	p.metrics.RecordDuration(ctx, "auth", "principal_set_admin", time.Since(start), status)

	return err
}
