package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentvault/agentvault/internal/agents/domain"
)

var agentColumns = []string{
	"id", "name", "provider", "model", "system_prompt", "temperature",
	"is_active", "created_at", "updated_at",
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func testAgent(t *testing.T) *domain.Agent {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.Agent{
		ID:           uuid.Must(uuid.NewV7()),
		Name:         "support-bot",
		Provider:     "anthropic",
		Model:        "claude-sonnet-4",
		SystemPrompt: "You are a helpful support assistant.",
		Temperature:  0.7,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestPostgreSQLAgentRepository_Create(t *testing.T) {
	t.Run("Success_InsertAgent", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLAgentRepository(db)
		agent := testAgent(t)

		mock.ExpectExec(`INSERT INTO agents`).
			WithArgs(agent.ID, agent.Name, agent.Provider, agent.Model, agent.SystemPrompt,
				agent.Temperature, agent.IsActive, agent.CreatedAt, agent.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Create(context.Background(), agent)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_DuplicateName", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLAgentRepository(db)

		mock.ExpectExec(`INSERT INTO agents`).
			WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "agents_name_key"`))

		err := repo.Create(context.Background(), testAgent(t))
		assert.ErrorIs(t, err, domain.ErrAgentAlreadyExists)
	})
}

func TestPostgreSQLAgentRepository_Get(t *testing.T) {
	t.Run("Success_GetByID", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLAgentRepository(db)
		agent := testAgent(t)

		mock.ExpectQuery(`SELECT .+ FROM agents WHERE id`).
			WithArgs(agent.ID).
			WillReturnRows(sqlmock.NewRows(agentColumns).AddRow(
				agent.ID, agent.Name, agent.Provider, agent.Model, agent.SystemPrompt,
				agent.Temperature, agent.IsActive, agent.CreatedAt, agent.UpdatedAt,
			))

		got, err := repo.Get(context.Background(), agent.ID)
		require.NoError(t, err)
		assert.Equal(t, agent.Name, got.Name)
		assert.Equal(t, agent.Model, got.Model)
		assert.Equal(t, agent.Temperature, got.Temperature)
	})

	t.Run("Error_AgentNotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLAgentRepository(db)
		agentID := uuid.Must(uuid.NewV7())

		mock.ExpectQuery(`SELECT .+ FROM agents WHERE id`).
			WithArgs(agentID).
			WillReturnError(sql.ErrNoRows)

		got, err := repo.Get(context.Background(), agentID)
		assert.ErrorIs(t, err, domain.ErrAgentNotFound)
		assert.Nil(t, got)
	})
}

func TestPostgreSQLAgentRepository_GetByName(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLAgentRepository(db)
	agent := testAgent(t)

	mock.ExpectQuery(`SELECT .+ FROM agents WHERE name`).
		WithArgs(agent.Name).
		WillReturnRows(sqlmock.NewRows(agentColumns).AddRow(
			agent.ID, agent.Name, agent.Provider, agent.Model, agent.SystemPrompt,
			agent.Temperature, agent.IsActive, agent.CreatedAt, agent.UpdatedAt,
		))

	got, err := repo.GetByName(context.Background(), agent.Name)
	require.NoError(t, err)
	assert.Equal(t, agent.ID, got.ID)
}

func TestPostgreSQLAgentRepository_Update(t *testing.T) {
	t.Run("Success_UpdateAgent", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLAgentRepository(db)
		agent := testAgent(t)

		mock.ExpectExec(`UPDATE agents SET`).
			WithArgs(agent.ID, agent.Provider, agent.Model, agent.SystemPrompt,
				agent.Temperature, agent.IsActive, agent.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(context.Background(), agent)
		assert.NoError(t, err)
	})

	t.Run("Error_NoRowsAffected", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLAgentRepository(db)

		mock.ExpectExec(`UPDATE agents SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(context.Background(), testAgent(t))
		assert.ErrorIs(t, err, domain.ErrAgentNotFound)
	})
}

func TestPostgreSQLAgentRepository_Delete(t *testing.T) {
	t.Run("Success_DeleteAgent", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLAgentRepository(db)
		agentID := uuid.Must(uuid.NewV7())

		mock.ExpectExec(`DELETE FROM agents WHERE id`).
			WithArgs(agentID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), agentID)
		assert.NoError(t, err)
	})

	t.Run("Error_AgentNotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLAgentRepository(db)

		mock.ExpectExec(`DELETE FROM agents WHERE id`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), uuid.Must(uuid.NewV7()))
		assert.ErrorIs(t, err, domain.ErrAgentNotFound)
	})
}

func TestPostgreSQLAgentRepository_List(t *testing.T) {
	t.Run("Success_ListOrderedByName", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLAgentRepository(db)
		first := testAgent(t)
		second := testAgent(t)
		first.Name = "coder"
		second.Name = "support-bot"

		mock.ExpectQuery(`SELECT .+ FROM agents ORDER BY name`).
			WithArgs(50, 0).
			WillReturnRows(sqlmock.NewRows(agentColumns).
				AddRow(first.ID, first.Name, first.Provider, first.Model, first.SystemPrompt,
					first.Temperature, first.IsActive, first.CreatedAt, first.UpdatedAt).
				AddRow(second.ID, second.Name, second.Provider, second.Model, second.SystemPrompt,
					second.Temperature, second.IsActive, second.CreatedAt, second.UpdatedAt))

		agents, err := repo.List(context.Background(), 0, 50)
		require.NoError(t, err)
		require.Len(t, agents, 2)
		assert.Equal(t, "coder", agents[0].Name)
		assert.Equal(t, "support-bot", agents[1].Name)
	})

	t.Run("Success_EmptyList", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLAgentRepository(db)

		mock.ExpectQuery(`SELECT .+ FROM agents ORDER BY name`).
			WithArgs(50, 0).
			WillReturnRows(sqlmock.NewRows(agentColumns))

		agents, err := repo.List(context.Background(), 0, 50)
		require.NoError(t, err)
		assert.Empty(t, agents)
	})
}

func TestMySQLAgentRepository(t *testing.T) {
	t.Run("Success_CreateAndGet", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLAgentRepository(db)
		agent := testAgent(t)

		uuidBytes, err := agent.ID.MarshalBinary()
		require.NoError(t, err)

		mock.ExpectExec(`INSERT INTO agents`).
			WithArgs(uuidBytes, agent.Name, agent.Provider, agent.Model, agent.SystemPrompt,
				agent.Temperature, agent.IsActive, agent.CreatedAt, agent.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Create(context.Background(), agent))

		mock.ExpectQuery(`SELECT .+ FROM agents WHERE id`).
			WithArgs(uuidBytes).
			WillReturnRows(sqlmock.NewRows(agentColumns).AddRow(
				uuidBytes, agent.Name, agent.Provider, agent.Model, agent.SystemPrompt,
				agent.Temperature, agent.IsActive, agent.CreatedAt, agent.UpdatedAt,
			))

		got, err := repo.Get(context.Background(), agent.ID)
		require.NoError(t, err)
		assert.Equal(t, agent.ID, got.ID)
		assert.Equal(t, agent.Name, got.Name)
	})

	t.Run("Error_DuplicateEntry", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLAgentRepository(db)

		mock.ExpectExec(`INSERT INTO agents`).
			WillReturnError(errors.New("Error 1062: Duplicate entry 'support-bot' for key 'agents.name'"))

		err := repo.Create(context.Background(), testAgent(t))
		assert.ErrorIs(t, err, domain.ErrAgentAlreadyExists)
	})
}
