package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/agentvault/agentvault/internal/database"

	apperrors "github.com/agentvault/agentvault/internal/errors"
)

// MySQLCacheStateRepository persists key cache clear times for MySQL.
type MySQLCacheStateRepository struct {
	db *sql.DB
}

// NewMySQLCacheStateRepository creates a new MySQLCacheStateRepository
func NewMySQLCacheStateRepository(db *sql.DB) *MySQLCacheStateRepository {
	return &MySQLCacheStateRepository{
		db: db,
	}
}

// LastCleared returns the persisted last clear time, or the zero time when the
// cache has never been cleared.
func (r *MySQLCacheStateRepository) LastCleared(ctx context.Context) (time.Time, error) {
	var lastClearedAt time.Time
	querier := database.GetTx(ctx, r.db)

	query := `SELECT last_cleared_at FROM key_cache_state WHERE id = ?`

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
func (r *MySQLCacheStateRepository) SetLastCleared(ctx context.Context, clearedAt time.Time) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO key_cache_state (id, last_cleared_at) VALUES (?, ?)
			  ON DUPLICATE KEY UPDATE last_cleared_at = VALUES(last_cleared_at)`

	_, err := querier.ExecContext(ctx, query, cacheStateID, clearedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to set last cleared time")
	}
	return nil
}
