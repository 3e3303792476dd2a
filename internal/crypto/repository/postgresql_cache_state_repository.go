// Package repository provides persistence for key cache bookkeeping.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/agentvault/agentvault/internal/database"

	apperrors "github.com/agentvault/agentvault/internal/errors"
)

// cacheStateID is the primary key of the single key_cache_state row.
const cacheStateID = 1

// PostgreSQLCacheStateRepository persists key cache clear times for PostgreSQL.
type PostgreSQLCacheStateRepository struct {
	db *sql.DB
}

// NewPostgreSQLCacheStateRepository creates a new PostgreSQLCacheStateRepository
func NewPostgreSQLCacheStateRepository(db *sql.DB) *PostgreSQLCacheStateRepository {
	return &PostgreSQLCacheStateRepository{
		db: db,
	}
}

// LastCleared returns the persisted last clear time, or the zero time when the
// cache has never been cleared.
func (r *PostgreSQLCacheStateRepository) LastCleared(ctx context.Context) (time.Time, error) {
	var lastClearedAt time.Time
	querier := database.GetTx(ctx, r.db)

	query := `SELECT last_cleared_at FROM key_cache_state WHERE id = $1`

	err := querier.QueryRowContext(ctx, query, cacheStateID).Scan(&lastClearedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, nil
		}
		return time.Time{}, apperrors.Wrap(err, "failed to get last cleared time")
	}

	return lastClearedAt, nil
}

// SetLastCleared upserts the last clear time.
func (r *PostgreSQLCacheStateRepository) SetLastCleared(ctx context.Context, clearedAt time.Time) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO key_cache_state (id, last_cleared_at) VALUES ($1, $2)
			  ON CONFLICT (id) DO UPDATE SET last_cleared_at = EXCLUDED.last_cleared_at`

	_, err := querier.ExecContext(ctx, query, cacheStateID, clearedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to set last cleared time")
	}
	return nil
}
