package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	authUseCase "github.com/agentvault/agentvault/internal/auth/usecase"
)

// RunSetAdmin adds or removes a principal from the admin allow-list.
//
// Requirements: Database must be migrated and accessible.
func RunSetAdmin(
	ctx context.Context,
	principalUseCase authUseCase.PrincipalUseCase,
	logger *slog.Logger,
	writer io.Writer,
	principalIDStr string,
	isAdmin bool,
) error {
	principalID, err := uuid.Parse(principalIDStr)
	if err != nil {
		return fmt.Errorf("invalid principal id: %w", err)
	}

	if err := principalUseCase.SetAdmin(ctx, principalID, isAdmin); err != nil {
		return fmt.Errorf("failed to update admin status: %w", err)
	}

	if isAdmin {
		_, _ = fmt.Fprintf(writer, "Principal %s added to the admin allow-list\n", principalID)
	} else {
		_, _ = fmt.Fprintf(writer, "Principal %s removed from the admin allow-list\n", principalID)
	}

	logger.Info("principal admin status updated",
		slog.String("principal_id", principalID.String()),
		slog.Bool("is_admin", isAdmin),
	)

	return nil
}
