package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	conversationsDomain "github.com/agentvault/agentvault/internal/conversations/domain"
	"github.com/agentvault/agentvault/internal/metrics"
)

// entryUseCaseWithMetrics decorates EntryUseCase with metrics instrumentation.
type entryUseCaseWithMetrics struct {
	next    EntryUseCase
	metrics metrics.BusinessMetrics
}

// NewEntryUseCaseWithMetrics wraps an EntryUseCase with metrics recording.
func NewEntryUseCaseWithMetrics(useCase EntryUseCase, m metrics.BusinessMetrics) EntryUseCase {
	return &entryUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Append records metrics for conversation append operations.
func (e *entryUseCaseWithMetrics) Append(
	ctx context.Context,
	input *conversationsDomain.AppendEntryInput,
) (*conversationsDomain.Entry, error) {
	start := time.Now()
	entry, err := e.next.Append(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	e.metrics.RecordOperation(ctx, "conversations", "entry_append", status)
	e.metrics.RecordDuration(ctx, "conversations", "entry_append", time.Since(start), status)

	return entry, err
}

// List records metrics for conversation list operations.
func (e *entryUseCaseWithMetrics) List(
	ctx context.Context,
	principalID uuid.UUID,
	offset, limit int,
) ([]*conversationsDomain.Entry, error) {
	start := time.Now()
	entries, err := e.next.List(ctx, principalID, offset, limit)

	status := "success"
	if err != nil {
		status = "error"
	}

	e.metrics.RecordOperation(ctx, "conversations", "entry_list", status)
	e.metrics.RecordDuration(ctx, "conversations", "entry_list", time.Since(start), status)

	return entries, err
}

// Clear records metrics for conversation clear operations.
func (e *entryUseCaseWithMetrics) Clear(
	ctx context.Context,
	principalID uuid.UUID,
) (int64, error) {
	start := time.Now()
	removed, err := e.next.Clear(ctx, principalID)

	status := "success"
	if err != nil {
		status = "error"
	}

	e.metrics.RecordOperation(ctx, "conversations", "entry_clear", status)
	e.metrics.RecordDuration(ctx, "conversations", "entry_clear", time.Since(start), status)

	return removed, err
}
