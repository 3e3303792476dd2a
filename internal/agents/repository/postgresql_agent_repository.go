// Package repository provides data persistence implementations for agents.
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

// PostgreSQLAgentRepository handles agent persistence for PostgreSQL
type PostgreSQLAgentRepository struct {
	db *sql.DB
}

// NewPostgreSQLAgentRepository creates a new PostgreSQLAgentRepository
func NewPostgreSQLAgentRepository(db *sql.DB) *PostgreSQLAgentRepository {
	return &PostgreSQLAgentRepository{
		db: db,
	}
}

// Create inserts a new agent
func (r *PostgreSQLAgentRepository) Create(ctx context.Context, agent *domain.Agent) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO agents (id, name, provider, model, system_prompt, temperature, is_active, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := querier.ExecContext(ctx, query,
		agent.ID, agent.Name, agent.Provider, agent.Model, agent.SystemPrompt,
		agent.Temperature, agent.IsActive, agent.CreatedAt, agent.UpdatedAt,
	)
	if err != nil {
		// Check for unique constraint violation (duplicate name)
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrAgentAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create agent")
	}
	return nil
}

// Update modifies an existing agent
func (r *PostgreSQLAgentRepository) Update(ctx context.Context, agent *domain.Agent) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE agents SET provider = $2, model = $3, system_prompt = $4, temperature = $5,
			  is_active = $6, updated_at = $7 WHERE id = $1`

	result, err := querier.ExecContext(ctx, query,
		agent.ID, agent.Provider, agent.Model, agent.SystemPrompt,
		agent.Temperature, agent.IsActive, agent.UpdatedAt,
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
func (r *PostgreSQLAgentRepository) Get(
	ctx context.Context,
	agentID uuid.UUID,
) (*domain.Agent, error) {
	var agent domain.Agent
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, provider, model, system_prompt, temperature, is_active, created_at, updated_at
			  FROM agents WHERE id = $1`

	err := querier.QueryRowContext(ctx, query, agentID).Scan(
		&agent.ID, &agent.Name, &agent.Provider, &agent.Model, &agent.SystemPrompt,
		&agent.Temperature, &agent.IsActive, &agent.CreatedAt, &agent.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAgentNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get agent by id")
	}

	return &agent, nil
}

// GetByName retrieves an agent by its unique name
func (r *PostgreSQLAgentRepository) GetByName(
	ctx context.Context,
	name string,
) (*domain.Agent, error) {
	var agent domain.Agent
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, provider, model, system_prompt, temperature, is_active, created_at, updated_at
			  FROM agents WHERE name = $1`

	err := querier.QueryRowContext(ctx, query, name).Scan(
		&agent.ID, &agent.Name, &agent.Provider, &agent.Model, &agent.SystemPrompt,
		&agent.Temperature, &agent.IsActive, &agent.CreatedAt, &agent.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAgentNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get agent by name")
	}

	return &agent, nil
}

// List retrieves agents ordered by name with pagination
func (r *PostgreSQLAgentRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*domain.Agent, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, provider, model, system_prompt, temperature, is_active, created_at, updated_at
			  FROM agents ORDER BY name LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list agents")
	}
	defer rows.Close()

	agents := make([]*domain.Agent, 0)
	for rows.Next() {
		var agent domain.Agent
		if err := rows.Scan(
			&agent.ID, &agent.Name, &agent.Provider, &agent.Model, &agent.SystemPrompt,
			&agent.Temperature, &agent.IsActive, &agent.CreatedAt, &agent.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan agent")
		}
		agents = append(agents, &agent)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate agents")
	}

	return agents, nil
}

// Delete removes an agent by ID
func (r *PostgreSQLAgentRepository) Delete(ctx context.Context, agentID uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM agents WHERE id = $1`

	result, err := querier.ExecContext(ctx, query, agentID)
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

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// PostgreSQL: "duplicate key value violates unique constraint" or "pq: duplicate key"
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}
