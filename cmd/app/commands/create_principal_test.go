package commands

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/agentvault/agentvault/internal/auth/domain"
)

// mockPrincipalUseCase is a mock implementation of PrincipalUseCase for testing.
type mockPrincipalUseCase struct {
	mock.Mock
}

func (m *mockPrincipalUseCase) Create(
	ctx context.Context,
	input *authDomain.CreatePrincipalInput,
) (*authDomain.CreatePrincipalOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.CreatePrincipalOutput), args.Error(1)
}

func (m *mockPrincipalUseCase) Authenticate(
	ctx context.Context,
	tokenHash string,
) (*authDomain.Principal, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Principal), args.Error(1)
}

func (m *mockPrincipalUseCase) Get(
	ctx context.Context,
	principalID uuid.UUID,
) (*authDomain.Principal, error) {
	args := m.Called(ctx, principalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Principal), args.Error(1)
}

func (m *mockPrincipalUseCase) List(
	ctx context.Context,
	offset, limit int,
) ([]*authDomain.Principal, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*authDomain.Principal), args.Error(1)
}

func (m *mockPrincipalUseCase) SetAdmin(
	ctx context.Context,
	principalID uuid.UUID,
	isAdmin bool,
) error {
	args := m.Called(ctx, principalID, isAdmin)
	return args.Error(0)
}

func TestRunCreatePrincipal(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	principalID := uuid.Must(uuid.NewV7())
	output := &authDomain.CreatePrincipalOutput{
		ID:         principalID,
		PlainToken: "plain-token-abc123",
	}

	t.Run("text-output", func(t *testing.T) {
		mockUseCase := &mockPrincipalUseCase{}
		mockUseCase.On("Create", ctx, &authDomain.CreatePrincipalInput{
			Name:    "alice",
			IsAdmin: true,
		}).Return(output, nil)

		var out bytes.Buffer
		err := RunCreatePrincipal(ctx, mockUseCase, logger, &out, "alice", true, "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "Principal created successfully!")
		require.Contains(t, out.String(), principalID.String())
		require.Contains(t, out.String(), "plain-token-abc123")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("json-output", func(t *testing.T) {
		mockUseCase := &mockPrincipalUseCase{}
		mockUseCase.On("Create", ctx, &authDomain.CreatePrincipalInput{
			Name:    "bob",
			IsAdmin: false,
		}).Return(output, nil)

		var out bytes.Buffer
		err := RunCreatePrincipal(ctx, mockUseCase, logger, &out, "bob", false, "json")

		require.NoError(t, err)
		require.Contains(t, out.String(), `"principal_id"`)
		require.Contains(t, out.String(), `"token": "plain-token-abc123"`)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("empty-name", func(t *testing.T) {
		mockUseCase := &mockPrincipalUseCase{}

		err := RunCreatePrincipal(ctx, mockUseCase, logger, &bytes.Buffer{}, "", false, "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "name is required")
		mockUseCase.AssertNotCalled(t, "Create")
	})

	t.Run("use-case-error", func(t *testing.T) {
		mockUseCase := &mockPrincipalUseCase{}
		mockUseCase.On("Create", ctx, mock.Anything).
			Return(nil, authDomain.ErrPrincipalAlreadyExists)

		err := RunCreatePrincipal(ctx, mockUseCase, logger, &bytes.Buffer{}, "alice", false, "text")

		require.Error(t, err)
		require.ErrorIs(t, err, authDomain.ErrPrincipalAlreadyExists)
	})
}
