package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	agentsDomain "github.com/agentvault/agentvault/internal/agents/domain"
)

// mockAgentRepository is a mock implementation of AgentRepository for testing.
type mockAgentRepository struct {
	mock.Mock
}

func (m *mockAgentRepository) Create(ctx context.Context, agent *agentsDomain.Agent) error {
	args := m.Called(ctx, agent)
	return args.Error(0)
}

func (m *mockAgentRepository) Update(ctx context.Context, agent *agentsDomain.Agent) error {
	args := m.Called(ctx, agent)
	return args.Error(0)
}

func (m *mockAgentRepository) Get(
	ctx context.Context,
	agentID uuid.UUID,
) (*agentsDomain.Agent, error) {
	args := m.Called(ctx, agentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agentsDomain.Agent), args.Error(1)
}

func (m *mockAgentRepository) GetByName(
	ctx context.Context,
	name string,
) (*agentsDomain.Agent, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agentsDomain.Agent), args.Error(1)
}

func (m *mockAgentRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*agentsDomain.Agent, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*agentsDomain.Agent), args.Error(1)
}

func (m *mockAgentRepository) Delete(ctx context.Context, agentID uuid.UUID) error {
	args := m.Called(ctx, agentID)
	return args.Error(0)
}

func TestAgentUseCase_Create(t *testing.T) {
	t.Run("Success_CreateAgent", func(t *testing.T) {
		repo := &mockAgentRepository{}
		useCase := NewAgentUseCase(repo)

		repo.On("Create", mock.Anything, mock.MatchedBy(func(agent *agentsDomain.Agent) bool {
			return agent.Name == "support-bot" &&
				agent.Provider == "anthropic" &&
				agent.Model == "claude-sonnet-4" &&
				agent.Temperature == 0.7 &&
				agent.IsActive &&
				agent.ID != uuid.Nil
		})).Return(nil).Once()

		agent, err := useCase.Create(context.Background(), &agentsDomain.CreateAgentInput{
			Name:         "support-bot",
			Provider:     "anthropic",
			Model:        "claude-sonnet-4",
			SystemPrompt: "You are a helpful support assistant.",
			Temperature:  0.7,
		})

		require.NoError(t, err)
		assert.Equal(t, "support-bot", agent.Name)
		assert.True(t, agent.IsActive)
		assert.Equal(t, agent.CreatedAt, agent.UpdatedAt)
		repo.AssertExpectations(t)
	})

	t.Run("Error_DuplicateName", func(t *testing.T) {
		repo := &mockAgentRepository{}
		useCase := NewAgentUseCase(repo)

		repo.On("Create", mock.Anything, mock.Anything).
			Return(agentsDomain.ErrAgentAlreadyExists).
			Once()

		agent, err := useCase.Create(context.Background(), &agentsDomain.CreateAgentInput{
			Name: "support-bot",
		})

		assert.ErrorIs(t, err, agentsDomain.ErrAgentAlreadyExists)
		assert.Nil(t, agent)
	})
}

func TestAgentUseCase_Update(t *testing.T) {
	t.Run("Success_PartialUpdate", func(t *testing.T) {
		repo := &mockAgentRepository{}
		useCase := NewAgentUseCase(repo)
		agentID := uuid.Must(uuid.NewV7())

		existing := &agentsDomain.Agent{
			ID:          agentID,
			Name:        "support-bot",
			Provider:    "anthropic",
			Model:       "claude-sonnet-4",
			Temperature: 0.7,
			IsActive:    true,
		}
		repo.On("Get", mock.Anything, agentID).Return(existing, nil).Once()
		repo.On("Update", mock.Anything, mock.MatchedBy(func(agent *agentsDomain.Agent) bool {
			return agent.Model == "claude-opus-4" &&
				agent.Provider == "anthropic" &&
				agent.Temperature == 0.7
		})).Return(nil).Once()

		newModel := "claude-opus-4"
		agent, err := useCase.Update(context.Background(), agentID, &agentsDomain.UpdateAgentInput{
			Model: &newModel,
		})

		require.NoError(t, err)
		assert.Equal(t, "claude-opus-4", agent.Model)
		assert.True(t, agent.IsActive)
		repo.AssertExpectations(t)
	})

	t.Run("Success_Deactivate", func(t *testing.T) {
		repo := &mockAgentRepository{}
		useCase := NewAgentUseCase(repo)
		agentID := uuid.Must(uuid.NewV7())

		existing := &agentsDomain.Agent{ID: agentID, Name: "support-bot", IsActive: true}
		repo.On("Get", mock.Anything, agentID).Return(existing, nil).Once()
		repo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()

		inactive := false
		agent, err := useCase.Update(context.Background(), agentID, &agentsDomain.UpdateAgentInput{
			IsActive: &inactive,
		})

		require.NoError(t, err)
		assert.False(t, agent.IsActive)
	})

	t.Run("Error_AgentNotFound", func(t *testing.T) {
		repo := &mockAgentRepository{}
		useCase := NewAgentUseCase(repo)
		agentID := uuid.Must(uuid.NewV7())

		repo.On("Get", mock.Anything, agentID).
			Return(nil, agentsDomain.ErrAgentNotFound).
			Once()

		agent, err := useCase.Update(context.Background(), agentID, &agentsDomain.UpdateAgentInput{})

		assert.ErrorIs(t, err, agentsDomain.ErrAgentNotFound)
		assert.Nil(t, agent)
		repo.AssertNotCalled(t, "Update")
	})
}

func TestAgentUseCase_Delete(t *testing.T) {
	t.Run("Success_DeleteAgent", func(t *testing.T) {
		repo := &mockAgentRepository{}
		useCase := NewAgentUseCase(repo)
		agentID := uuid.Must(uuid.NewV7())

		repo.On("Delete", mock.Anything, agentID).Return(nil).Once()

		err := useCase.Delete(context.Background(), agentID)

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Error_AgentNotFound", func(t *testing.T) {
		repo := &mockAgentRepository{}
		useCase := NewAgentUseCase(repo)
		agentID := uuid.Must(uuid.NewV7())

		repo.On("Delete", mock.Anything, agentID).
			Return(agentsDomain.ErrAgentNotFound).
			Once()

		err := useCase.Delete(context.Background(), agentID)

		assert.ErrorIs(t, err, agentsDomain.ErrAgentNotFound)
	})
}

func TestAgentUseCase_List(t *testing.T) {
	repo := &mockAgentRepository{}
	useCase := NewAgentUseCase(repo)

	agents := []*agentsDomain.Agent{
		{ID: uuid.Must(uuid.NewV7()), Name: "coder"},
		{ID: uuid.Must(uuid.NewV7()), Name: "support-bot"},
	}
	repo.On("List", mock.Anything, 0, 50).Return(agents, nil).Once()

	result, err := useCase.List(context.Background(), 0, 50)

	require.NoError(t, err)
	assert.Len(t, result, 2)
	repo.AssertExpectations(t)
}
