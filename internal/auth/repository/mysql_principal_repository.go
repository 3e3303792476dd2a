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

// MySQLPrincipalRepository handles principal persistence for MySQL
type MySQLPrincipalRepository struct {
	db *sql.DB
}

// NewMySQLPrincipalRepository creates a new MySQLPrincipalRepository
func NewMySQLPrincipalRepository(db *sql.DB) *MySQLPrincipalRepository {
	return &MySQLPrincipalRepository{
		db: db,
	}
}

// Create inserts a new principal
func (r *MySQLPrincipalRepository) Create(ctx context.Context, principal *domain.Principal) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO principals (id, name, token_hash, is_admin, is_active, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	// Convert UUID to bytes for MySQL BINARY(16)
	uuidBytes, err := principal.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(ctx, query,
		uuidBytes, principal.Name, principal.TokenHash,
		principal.IsAdmin, principal.IsActive, principal.CreatedAt, principal.UpdatedAt,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrPrincipalAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create principal")
	}
	return nil
}

// Update modifies an existing principal
func (r *MySQLPrincipalRepository) Update(ctx context.Context, principal *domain.Principal) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE principals SET name = ?, is_admin = ?, is_active = ?, updated_at = ?
			  WHERE id = ?`

	uuidBytes, err := principal.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	result, err := querier.ExecContext(ctx, query,
		principal.Name, principal.IsAdmin, principal.IsActive, principal.UpdatedAt, uuidBytes,
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
func (r *MySQLPrincipalRepository) Get(
	ctx context.Context,
	principalID uuid.UUID,
) (*domain.Principal, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, token_hash, is_admin, is_active, created_at, updated_at
			  FROM principals WHERE id = ?`

	uuidBytes, err := principalID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	return scanMySQLPrincipal(querier.QueryRowContext(ctx, query, uuidBytes))
}

// GetByTokenHash retrieves a principal by token hash
func (r *MySQLPrincipalRepository) GetByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*domain.Principal, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, token_hash, is_admin, is_active, created_at, updated_at
			  FROM principals WHERE token_hash = ?`

	return scanMySQLPrincipal(querier.QueryRowContext(ctx, query, tokenHash))
}

// List retrieves principals ordered by ID with pagination
func (r *MySQLPrincipalRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*domain.Principal, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, token_hash, is_admin, is_active, created_at, updated_at
			  FROM principals ORDER BY id LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list principals")
	}
	defer rows.Close()

	principals := make([]*domain.Principal, 0)
	for rows.Next() {
		var principal domain.Principal
		var idBytes []byte
		if err := rows.Scan(
			&idBytes, &principal.Name, &principal.TokenHash,
			&principal.IsAdmin, &principal.IsActive, &principal.CreatedAt, &principal.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan principal")
		}
		if err := principal.ID.UnmarshalBinary(idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
		}
		principals = append(principals, &principal)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate principals")
	}

	return principals, nil
}

// scanMySQLPrincipal scans a single principal row, converting the BINARY(16) ID.
func scanMySQLPrincipal(row *sql.Row) (*domain.Principal, error) {
	var principal domain.Principal
	var idBytes []byte

	err := row.Scan(
		&idBytes, &principal.Name, &principal.TokenHash,
		&principal.IsAdmin, &principal.IsActive, &principal.CreatedAt, &principal.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPrincipalNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get principal")
	}

	if err := principal.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}

	return &principal, nil
}

// isMySQLUniqueViolation checks if the error is a MySQL unique constraint violation
func isMySQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// MySQL: "Error 1062: Duplicate entry"
	return strings.Contains(errMsg, "duplicate entry") || strings.Contains(errMsg, "1062")
}
