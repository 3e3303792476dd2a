package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/agentvault/agentvault/internal/agents/domain"
	"github.com/agentvault/agentvault/internal/database"

	apperrors "github.com/agentvault/agentvault/internal/errors"
)

// MySQLAgentRepository handles agent persistence for MySQL
type MySQLAgentRepository struct {
	db *sql.DB
}

// NewMySQLAgentRepository creates a new MySQLAgentRepository
func NewMySQLAgentRepository(db *sql.DB) *MySQLAgentRepository {
	return &MySQLAgentRepository{
		db: db,
	}
}

// Create inserts a new agent
func (r *MySQLAgentRepository) Create(ctx context.Context, agent *domain.Agent) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO agents (id, name, provider, model, system_prompt, temperature, is_active, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	// Convert UUID to bytes for MySQL BINARY(16)
	uuidBytes, err := agent.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(ctx, query,
		uuidBytes, agent.Name, agent.Provider, agent.Model, agent.SystemPrompt,
		agent.Temperature, agent.IsActive, agent.CreatedAt, agent.UpdatedAt,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrAgentAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create agent")
	}
	return nil
}

// Update modifies an existing agent
func (r *MySQLAgentRepository) Update(ctx context.Context, agent *domain.Agent) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE agents SET provider = ?, model = ?, system_prompt = ?, temperature = ?,
			  is_active = ?, updated_at = ? WHERE id = ?`

	uuidBytes, err := agent.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	result, err := querier.ExecContext(ctx, query,
		agent.Provider, agent.Model, agent.SystemPrompt, agent.Temperature,
		agent.IsActive, agent.UpdatedAt, uuidBytes,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update agent")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if rows == 0 {
		return domain.ErrAgentNotFound
	}
	return nil
}

// Get retrieves an agent by ID
func (r *MySQLAgentRepository) Get(
	ctx context.Context,
	agentID uuid.UUID,
) (*domain.Agent, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, provider, model, system_prompt, temperature, is_active, created_at, updated_at
			  FROM agents WHERE id = ?`

	uuidBytes, err := agentID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	return scanMySQLAgent(querier.QueryRowContext(ctx, query, uuidBytes))
}

// GetByName retrieves an agent by its unique name
func (r *MySQLAgentRepository) GetByName(
	ctx context.Context,
	name string,
) (*domain.Agent, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, provider, model, system_prompt, temperature, is_active, created_at, updated_at
			  FROM agents WHERE name = ?`

	return scanMySQLAgent(querier.QueryRowContext(ctx, query, name))
}

// List retrieves agents ordered by name with pagination
func (r *MySQLAgentRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*domain.Agent, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, provider, model, system_prompt, temperature, is_active, created_at, updated_at
			  FROM agents ORDER BY name LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list agents")
	}
	defer rows.Close()

	agents := make([]*domain.Agent, 0)
	for rows.Next() {
		var agent domain.Agent
		var idBytes []byte
		if err := rows.Scan(
			&idBytes, &agent.Name, &agent.Provider, &agent.Model, &agent.SystemPrompt,
			&agent.Temperature, &agent.IsActive, &agent.CreatedAt, &agent.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan agent")
		}
		if err := agent.ID.UnmarshalBinary(idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
		}
		agents = append(agents, &agent)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate agents")
	}

	return agents, nil
}

// Delete removes an agent by ID
func (r *MySQLAgentRepository) Delete(ctx context.Context, agentID uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM agents WHERE id = ?`

	uuidBytes, err := agentID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	result, err := querier.ExecContext(ctx, query, uuidBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete agent")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if rows == 0 {
		return domain.ErrAgentNotFound
	}
	return nil
}

// scanMySQLAgent scans a single agent row, converting the BINARY(16) ID.
func scanMySQLAgent(row *sql.Row) (*domain.Agent, error) {
	var agent domain.Agent
	var idBytes []byte

	err := row.Scan(
		&idBytes, &agent.Name, &agent.Provider, &agent.Model, &agent.SystemPrompt,
		&agent.Temperature, &agent.IsActive, &agent.CreatedAt, &agent.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAgentNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get agent")
	}

	if err := agent.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}

	return &agent, nil
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
