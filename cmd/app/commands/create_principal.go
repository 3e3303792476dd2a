package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	authDomain "github.com/agentvault/agentvault/internal/auth/domain"
	authUseCase "github.com/agentvault/agentvault/internal/auth/usecase"
)

// RunCreatePrincipal creates a new principal and prints its bearer token.
// Outputs principal ID and plain token in either text or JSON format. The
// plain token is shown only once; only its hash is persisted.
//
// Requirements: Database must be migrated and accessible.
func RunCreatePrincipal(
	ctx context.Context,
	principalUseCase authUseCase.PrincipalUseCase,
	logger *slog.Logger,
	writer io.Writer,
	name string,
	isAdmin bool,
	format string,
) error {
	if name == "" {
		return fmt.Errorf("name is required")
	}

	logger.Info("creating new principal", slog.String("name", name))

	input := &authDomain.CreatePrincipalInput{
		Name:    name,
		IsAdmin: isAdmin,
	}

	output, err := principalUseCase.Create(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create principal: %w", err)
	}

	if format == "json" {
		outputPrincipalJSON(output, writer)
	} else {
		outputPrincipalText(output, writer)
	}

	logger.Info("principal created successfully",
		slog.String("principal_id", output.ID.String()),
		slog.String("name", name),
		slog.Bool("is_admin", isAdmin),
	)

	return nil
}

// outputPrincipalText outputs the result in human-readable text format.
func outputPrincipalText(output *authDomain.CreatePrincipalOutput, writer io.Writer) {
	_, _ = fmt.Fprintln(writer, "\nPrincipal created successfully!")
	_, _ = fmt.Fprintf(writer, "Principal ID: %s\n", output.ID.String())
	_, _ = fmt.Fprintf(writer, "Token: %s\n", output.PlainToken)
	_, _ = fmt.Fprintln(writer, "\nIMPORTANT: The token is shown only once. Store it securely.")
}

// outputPrincipalJSON outputs the result in JSON format for machine consumption.
func outputPrincipalJSON(output *authDomain.CreatePrincipalOutput, writer io.Writer) {
	result := map[string]string{
		"principal_id": output.ID.String(),
		"token":        output.PlainToken,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
