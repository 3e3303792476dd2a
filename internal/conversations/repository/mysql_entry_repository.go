package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/agentvault/agentvault/internal/conversations/domain"
	"github.com/agentvault/agentvault/internal/database"

	apperrors "github.com/agentvault/agentvault/internal/errors"
)

// MySQLEntryRepository handles conversation entry persistence for MySQL
type MySQLEntryRepository struct {
	db *sql.DB
}

// NewMySQLEntryRepository creates a new MySQLEntryRepository
func NewMySQLEntryRepository(db *sql.DB) *MySQLEntryRepository {
	return &MySQLEntryRepository{
		db: db,
	}
}

// Create inserts a new conversation entry
func (r *MySQLEntryRepository) Create(ctx context.Context, entry *domain.Entry) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO conversation_entries (id, principal_id, agent_id, role, content, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	idBytes, err := entry.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}
	principalBytes, err := entry.PrincipalID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}
	agentBytes, err := entry.AgentID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(ctx, query,
		idBytes, principalBytes, agentBytes, string(entry.Role), entry.Content, entry.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create conversation entry")
	}
	return nil
}

// ListByPrincipal retrieves a principal's entries ordered newest first
func (r *MySQLEntryRepository) ListByPrincipal(
	ctx context.Context,
	principalID uuid.UUID,
	offset, limit int,
) ([]*domain.Entry, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, principal_id, agent_id, role, content, created_at
			  FROM conversation_entries WHERE principal_id = ?
			  ORDER BY id DESC LIMIT ? OFFSET ?`

	principalBytes, err := principalID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	rows, err := querier.QueryContext(ctx, query, principalBytes, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list conversation entries")
	}
	defer rows.Close()

	entries := make([]*domain.Entry, 0)
	for rows.Next() {
		var entry domain.Entry
		var idBytes, pBytes, aBytes []byte
		var role string
		if err := rows.Scan(
			&idBytes, &pBytes, &aBytes, &role, &entry.Content, &entry.CreatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan conversation entry")
		}
		if err := entry.ID.UnmarshalBinary(idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
		}
		if err := entry.PrincipalID.UnmarshalBinary(pBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
		}
		if err := entry.AgentID.UnmarshalBinary(aBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
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
func (r *MySQLEntryRepository) DeleteByPrincipal(
	ctx context.Context,
	principalID uuid.UUID,
) (int64, error) {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM conversation_entries WHERE principal_id = ?`

	principalBytes, err := principalID.MarshalBinary()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to marshal UUID")
	}

	result, err := querier.ExecContext(ctx, query, principalBytes)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete conversation entries")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get affected rows")
	}
	return rows, nil
}
