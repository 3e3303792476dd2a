// Package repository provides data persistence implementations for encrypted API keys.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/agentvault/agentvault/internal/apikeys/domain"
	"github.com/agentvault/agentvault/internal/database"

	apperrors "github.com/agentvault/agentvault/internal/errors"
)

// PostgreSQLAPIKeyRepository handles API key persistence for PostgreSQL
type PostgreSQLAPIKeyRepository struct {
	db *sql.DB
}

// NewPostgreSQLAPIKeyRepository creates a new PostgreSQLAPIKeyRepository
func NewPostgreSQLAPIKeyRepository(db *sql.DB) *PostgreSQLAPIKeyRepository {
	return &PostgreSQLAPIKeyRepository{
		db: db,
	}
}

// Upsert inserts a new API key or replaces the envelope for an existing
// (principal, provider) pair
func (r *PostgreSQLAPIKeyRepository) Upsert(ctx context.Context, apiKey *domain.APIKey) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO api_keys (id, principal_id, provider, envelope, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  ON CONFLICT (principal_id, provider)
			  DO UPDATE SET envelope = EXCLUDED.envelope, updated_at = EXCLUDED.updated_at`

	_, err := querier.ExecContext(ctx, query,
		apiKey.ID, apiKey.PrincipalID, string(apiKey.Provider),
		apiKey.Envelope, apiKey.CreatedAt, apiKey.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert api key")
	}
	return nil
}

// GetByPrincipalAndProvider retrieves a principal's key for one provider
func (r *PostgreSQLAPIKeyRepository) GetByPrincipalAndProvider(
	ctx context.Context,
	principalID uuid.UUID,
	provider domain.Provider,
) (*domain.APIKey, error) {
	var apiKey domain.APIKey
	var providerValue string
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, principal_id, provider, envelope, created_at, updated_at
			  FROM api_keys WHERE principal_id = $1 AND provider = $2`

	err := querier.QueryRowContext(ctx, query, principalID, string(provider)).Scan(
		&apiKey.ID, &apiKey.PrincipalID, &providerValue,
		&apiKey.Envelope, &apiKey.CreatedAt, &apiKey.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAPIKeyNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get api key")
	}
	apiKey.Provider = domain.Provider(providerValue)

	return &apiKey, nil
}

// ListByPrincipal retrieves all of a principal's keys ordered by provider
func (r *PostgreSQLAPIKeyRepository) ListByPrincipal(
	ctx context.Context,
	principalID uuid.UUID,
) ([]*domain.APIKey, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, principal_id, provider, envelope, created_at, updated_at
			  FROM api_keys WHERE principal_id = $1 ORDER BY provider`

	rows, err := querier.QueryContext(ctx, query, principalID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list api keys")
	}
	defer rows.Close()

	apiKeys := make([]*domain.APIKey, 0)
	for rows.Next() {
		var apiKey domain.APIKey
		var providerValue string
		if err := rows.Scan(
			&apiKey.ID, &apiKey.PrincipalID, &providerValue,
			&apiKey.Envelope, &apiKey.CreatedAt, &apiKey.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan api key")
		}
		apiKey.Provider = domain.Provider(providerValue)
		apiKeys = append(apiKeys, &apiKey)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate api keys")
	}

	return apiKeys, nil
}

// Delete removes a principal's key for one provider
func (r *PostgreSQLAPIKeyRepository) Delete(
	ctx context.Context,
	principalID uuid.UUID,
	provider domain.Provider,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM api_keys WHERE principal_id = $1 AND provider = $2`

	result, err := querier.ExecContext(ctx, query, principalID, string(provider))
	if err != nil {
		return apperrors.Wrap(err, "failed to delete api key")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if rows == 0 {
		return domain.ErrAPIKeyNotFound
	}
	return nil
}
