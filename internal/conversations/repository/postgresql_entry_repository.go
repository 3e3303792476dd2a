// Package repository provides data persistence implementations for conversation entries.
package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/agentvault/agentvault/internal/conversations/domain"
	"github.com/agentvault/agentvault/internal/database"

	apperrors "github.com/agentvault/agentvault/internal/errors"
)

// PostgreSQLEntryRepository handles conversation entry persistence for PostgreSQL
type PostgreSQLEntryRepository struct {
	db *sql.DB
}

// NewPostgreSQLEntryRepository creates a new PostgreSQLEntryRepository
func NewPostgreSQLEntryRepository(db *sql.DB) *PostgreSQLEntryRepository {
	return &PostgreSQLEntryRepository{
		db: db,
	}
}

// Create inserts a new conversation entry
func (r *PostgreSQLEntryRepository) Create(ctx context.Context, entry *domain.Entry) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO conversation_entries (id, principal_id, agent_id, role, content, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(ctx, query,
		entry.ID, entry.PrincipalID, entry.AgentID, string(entry.Role), entry.Content, entry.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create conversation entry")
	}
	return nil
}

// ListByPrincipal retrieves a principal's entries ordered newest first
func (r *PostgreSQLEntryRepository) ListByPrincipal(
	ctx context.Context,
	principalID uuid.UUID,
	offset, limit int,
) ([]*domain.Entry, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, principal_id, agent_id, role, content, created_at
			  FROM conversation_entries WHERE principal_id = $1
			  ORDER BY id DESC LIMIT $2 OFFSET $3`

	rows, err := querier.QueryContext(ctx, query, principalID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list conversation entries")
	}
	defer rows.Close()

	entries := make([]*domain.Entry, 0)
	for rows.Next() {
		var entry domain.Entry
		var role string
		if err := rows.Scan(
			&entry.ID, &entry.PrincipalID, &entry.AgentID, &role, &entry.Content, &entry.CreatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan conversation entry")
		}
		entry.Role = domain.Role(role)
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate conversation entries")
	}

	return entries, nil
}

// DeleteByPrincipal removes all entries belonging to a principal
func (r *PostgreSQLEntryRepository) DeleteByPrincipal(
	ctx context.Context,
	principalID uuid.UUID,
) (int64, error) {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM conversation_entries WHERE principal_id = $1`

	result, err := querier.ExecContext(ctx, query, principalID)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete conversation entries")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get affected rows")
	}
	return rows, nil
}
