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

// MySQLAPIKeyRepository handles API key persistence for MySQL
type MySQLAPIKeyRepository struct {
	db *sql.DB
}

// NewMySQLAPIKeyRepository creates a new MySQLAPIKeyRepository
func NewMySQLAPIKeyRepository(db *sql.DB) *MySQLAPIKeyRepository {
	return &MySQLAPIKeyRepository{
		db: db,
	}
}

// Upsert inserts a new API key or replaces the envelope for an existing
// (principal, provider) pair
func (r *MySQLAPIKeyRepository) Upsert(ctx context.Context, apiKey *domain.APIKey) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO api_keys (id, principal_id, provider, envelope, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?)
			  ON DUPLICATE KEY UPDATE envelope = VALUES(envelope), updated_at = VALUES(updated_at)`

	idBytes, err := apiKey.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}
	principalBytes, err := apiKey.PrincipalID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(ctx, query,
		idBytes, principalBytes, string(apiKey.Provider),
		apiKey.Envelope, apiKey.CreatedAt, apiKey.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert api key")
	}
	return nil
}

// GetByPrincipalAndProvider retrieves a principal's key for one provider
func (r *MySQLAPIKeyRepository) GetByPrincipalAndProvider(
	ctx context.Context,
	principalID uuid.UUID,
	provider domain.Provider,
) (*domain.APIKey, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, principal_id, provider, envelope, created_at, updated_at
			  FROM api_keys WHERE principal_id = ? AND provider = ?`

	principalBytes, err := principalID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	var apiKey domain.APIKey
	var idBytes, pBytes []byte
	var providerValue string

	err = querier.QueryRowContext(ctx, query, principalBytes, string(provider)).Scan(
		&idBytes, &pBytes, &providerValue,
		&apiKey.Envelope, &apiKey.CreatedAt, &apiKey.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAPIKeyNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get api key")
	}

	if err := apiKey.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}
	if err := apiKey.PrincipalID.UnmarshalBinary(pBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}
	apiKey.Provider = domain.Provider(providerValue)

	return &apiKey, nil
}

// ListByPrincipal retrieves all of a principal's keys ordered by provider
func (r *MySQLAPIKeyRepository) ListByPrincipal(
	ctx context.Context,
	principalID uuid.UUID,
) ([]*domain.APIKey, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, principal_id, provider, envelope, created_at, updated_at
			  FROM api_keys WHERE principal_id = ? ORDER BY provider`

	principalBytes, err := principalID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	rows, err := querier.QueryContext(ctx, query, principalBytes)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list api keys")
	}
	defer rows.Close()

	apiKeys := make([]*domain.APIKey, 0)
	for rows.Next() {
		var apiKey domain.APIKey
		var idBytes, pBytes []byte
		var providerValue string
		if err := rows.Scan(
			&idBytes, &pBytes, &providerValue,
			&apiKey.Envelope, &apiKey.CreatedAt, &apiKey.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan api key")
		}
		if err := apiKey.ID.UnmarshalBinary(idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
		}
		if err := apiKey.PrincipalID.UnmarshalBinary(pBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
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
func (r *MySQLAPIKeyRepository) Delete(
	ctx context.Context,
	principalID uuid.UUID,
	provider domain.Provider,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM api_keys WHERE principal_id = ? AND provider = ?`

	principalBytes, err := principalID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	result, err := querier.ExecContext(ctx, query, principalBytes, string(provider))
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
