// Package repository provides data persistence implementations for principals.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/agentvault/agentvault/internal/auth/domain"
	"github.com/agentvault/agentvault/internal/database"

	apperrors "github.com/agentvault/agentvault/internal/errors"
)

// PostgreSQLPrincipalRepository handles principal persistence for PostgreSQL
type PostgreSQLPrincipalRepository struct {
	db *sql.DB
}

// NewPostgreSQLPrincipalRepository creates a new PostgreSQLPrincipalRepository
func NewPostgreSQLPrincipalRepository(db *sql.DB) *PostgreSQLPrincipalRepository {
	return &PostgreSQLPrincipalRepository{
		db: db,
	}
}

// Create inserts a new principal
func (r *PostgreSQLPrincipalRepository) Create(ctx context.Context, principal *domain.Principal) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO principals (id, name, token_hash, is_admin, is_active, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := querier.ExecContext(ctx, query,
		principal.ID, principal.Name, principal.TokenHash,
		principal.IsAdmin, principal.IsActive, principal.CreatedAt, principal.UpdatedAt,
	)
	if err != nil {
		// Check for unique constraint violation (duplicate name)
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrPrincipalAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create principal")
	}
	return nil
}

// Update modifies an existing principal
func (r *PostgreSQLPrincipalRepository) Update(ctx context.Context, principal *domain.Principal) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE principals SET name = $2, is_admin = $3, is_active = $4, updated_at = $5
			  WHERE id = $1`

	result, err := querier.ExecContext(ctx, query,
		principal.ID, principal.Name, principal.IsAdmin, principal.IsActive, principal.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update principal")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if rows == 0 {
		return domain.ErrPrincipalNotFound
	}
	return nil
}

// Get retrieves a principal by ID
func (r *PostgreSQLPrincipalRepository) Get(
	ctx context.Context,
	principalID uuid.UUID,
) (*domain.Principal, error) {
	var principal domain.Principal
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, token_hash, is_admin, is_active, created_at, updated_at
			  FROM principals WHERE id = $1`

	err := querier.QueryRowContext(ctx, query, principalID).Scan(
		&principal.ID, &principal.Name, &principal.TokenHash,
		&principal.IsAdmin, &principal.IsActive, &principal.CreatedAt, &principal.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPrincipalNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get principal by id")
	}

	return &principal, nil
}

// GetByTokenHash retrieves a principal by token hash
func (r *PostgreSQLPrincipalRepository) GetByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*domain.Principal, error) {
	var principal domain.Principal
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, token_hash, is_admin, is_active, created_at, updated_at
			  FROM principals WHERE token_hash = $1`

	err := querier.QueryRowContext(ctx, query, tokenHash).Scan(
		&principal.ID, &principal.Name, &principal.TokenHash,
		&principal.IsAdmin, &principal.IsActive, &principal.CreatedAt, &principal.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPrincipalNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get principal by token hash")
	}

	return &principal, nil
}

// List retrieves principals ordered by ID with pagination
func (r *PostgreSQLPrincipalRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*domain.Principal, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, token_hash, is_admin, is_active, created_at, updated_at
			  FROM principals ORDER BY id LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list principals")
	}
	defer rows.Close()

	principals := make([]*domain.Principal, 0)
	for rows.Next() {
		var principal domain.Principal
		if err := rows.Scan(
			&principal.ID, &principal.Name, &principal.TokenHash,
			&principal.IsAdmin, &principal.IsActive, &principal.CreatedAt, &principal.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan principal")
		}
		principals = append(principals, &principal)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate principals")
	}

	return principals, nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// PostgreSQL: "duplicate key value violates unique constraint" or "pq: duplicate key"
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}
