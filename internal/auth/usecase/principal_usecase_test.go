package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/agentvault/agentvault/internal/auth/domain"
	apperrors "github.com/agentvault/agentvault/internal/errors"
)

// fakeTxManager executes the function directly without opening a real transaction.
type fakeTxManager struct{}

func (fakeTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// mockTokenService is a mock implementation of TokenService for testing.
type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) GenerateToken() (plainToken string, tokenHash string, error error) {
	args := m.Called()
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockTokenService) HashToken(plainToken string) string {
	args := m.Called(plainToken)
	return args.String(0)
}

// mockPrincipalRepository is a mock implementation of PrincipalRepository for testing.
type mockPrincipalRepository struct {
	mock.Mock
}

func (m *mockPrincipalRepository) Create(ctx context.Context, principal *authDomain.Principal) error {
	args := m.Called(ctx, principal)
	return args.Error(0)
}

func (m *mockPrincipalRepository) Update(ctx context.Context, principal *authDomain.Principal) error {
	args := m.Called(ctx, principal)
	return args.Error(0)
}

func (m *mockPrincipalRepository) Get(
	ctx context.Context,
	principalID uuid.UUID,
) (*authDomain.Principal, error) {
	args := m.Called(ctx, principalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Principal), args.Error(1)
}

func (m *mockPrincipalRepository) GetByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*authDomain.Principal, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Principal), args.Error(1)
}

func (m *mockPrincipalRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*authDomain.Principal, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*authDomain.Principal), args.Error(1)
}

func TestPrincipalUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_CreateNewPrincipal", func(t *testing.T) {
		mockRepo := &mockPrincipalRepository{}
		mockTokens := &mockTokenService{}

		plainToken := "test-plain-token-abc123" //nolint:gosec // test fixture, not a real credential
		tokenHash := "deadbeef"
		createInput := &authDomain.CreatePrincipalInput{
			Name:    "alice",
			IsAdmin: true,
		}

		mockTokens.On("GenerateToken").
			Return(plainToken, tokenHash, nil).
			Once()

		mockRepo.On("Create", ctx, mock.MatchedBy(func(principal *authDomain.Principal) bool {
			return principal.TokenHash == tokenHash &&
				principal.Name == createInput.Name &&
				principal.IsAdmin &&
				principal.IsActive
		})).Return(nil).Once()

		useCase := NewPrincipalUseCase(fakeTxManager{}, mockRepo, mockTokens)
		output, err := useCase.Create(ctx, createInput)

		require.NoError(t, err)
		assert.Equal(t, plainToken, output.PlainToken)
		assert.NotEqual(t, uuid.Nil, output.ID)
		mockRepo.AssertExpectations(t)
		mockTokens.AssertExpectations(t)
	})

	t.Run("Error_TokenGenerationFails", func(t *testing.T) {
		mockRepo := &mockPrincipalRepository{}
		mockTokens := &mockTokenService{}

		mockTokens.On("GenerateToken").Return("", "", assert.AnError).Once()

		useCase := NewPrincipalUseCase(fakeTxManager{}, mockRepo, mockTokens)
		_, err := useCase.Create(ctx, &authDomain.CreatePrincipalInput{Name: "alice"})

		assert.ErrorIs(t, err, assert.AnError)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Error_DuplicateName", func(t *testing.T) {
		mockRepo := &mockPrincipalRepository{}
		mockTokens := &mockTokenService{}

		mockTokens.On("GenerateToken").Return("token", "hash", nil).Once()
		mockRepo.On("Create", ctx, mock.Anything).
			Return(authDomain.ErrPrincipalAlreadyExists).
			Once()

		useCase := NewPrincipalUseCase(fakeTxManager{}, mockRepo, mockTokens)
		_, err := useCase.Create(ctx, &authDomain.CreatePrincipalInput{Name: "alice"})

		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})
}

func TestPrincipalUseCase_Authenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_ActivePrincipal", func(t *testing.T) {
		mockRepo := &mockPrincipalRepository{}
		principal := &authDomain.Principal{
			ID:       uuid.Must(uuid.NewV7()),
			Name:     "alice",
			IsActive: true,
		}

		mockRepo.On("GetByTokenHash", ctx, "hash").Return(principal, nil).Once()

		useCase := NewPrincipalUseCase(fakeTxManager{}, mockRepo, &mockTokenService{})
		got, err := useCase.Authenticate(ctx, "hash")

		require.NoError(t, err)
		assert.Equal(t, principal, got)
	})

	t.Run("Error_UnknownTokenIsUnauthorized", func(t *testing.T) {
		mockRepo := &mockPrincipalRepository{}
		mockRepo.On("GetByTokenHash", ctx, "bogus").
			Return(nil, authDomain.ErrPrincipalNotFound).
			Once()

		useCase := NewPrincipalUseCase(fakeTxManager{}, mockRepo, &mockTokenService{})
		_, err := useCase.Authenticate(ctx, "bogus")

		// Unknown token must not be distinguishable from missing principal
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("Error_InactivePrincipalIsForbidden", func(t *testing.T) {
		mockRepo := &mockPrincipalRepository{}
		principal := &authDomain.Principal{
			ID:       uuid.Must(uuid.NewV7()),
			IsActive: false,
		}
		mockRepo.On("GetByTokenHash", ctx, "hash").Return(principal, nil).Once()

		useCase := NewPrincipalUseCase(fakeTxManager{}, mockRepo, &mockTokenService{})
		_, err := useCase.Authenticate(ctx, "hash")

		assert.ErrorIs(t, err, authDomain.ErrPrincipalInactive)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("Error_RepositoryFailurePropagates", func(t *testing.T) {
		mockRepo := &mockPrincipalRepository{}
		mockRepo.On("GetByTokenHash", ctx, "hash").Return(nil, assert.AnError).Once()

		useCase := NewPrincipalUseCase(fakeTxManager{}, mockRepo, &mockTokenService{})
		_, err := useCase.Authenticate(ctx, "hash")

		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestPrincipalUseCase_SetAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_PromoteToAdmin", func(t *testing.T) {
		mockRepo := &mockPrincipalRepository{}
		principalID := uuid.Must(uuid.NewV7())
		principal := &authDomain.Principal{ID: principalID, IsAdmin: false, IsActive: true}

		mockRepo.On("Get", ctx, principalID).Return(principal, nil).Once()
		mockRepo.On("Update", ctx, mock.MatchedBy(func(p *authDomain.Principal) bool {
			return p.ID == principalID && p.IsAdmin
		})).Return(nil).Once()

		useCase := NewPrincipalUseCase(fakeTxManager{}, mockRepo, &mockTokenService{})
		err := useCase.SetAdmin(ctx, principalID, true)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Success_DemoteFromAdmin", func(t *testing.T) {
		mockRepo := &mockPrincipalRepository{}
		principalID := uuid.Must(uuid.NewV7())
		principal := &authDomain.Principal{ID: principalID, IsAdmin: true, IsActive: true}

		mockRepo.On("Get", ctx, principalID).Return(principal, nil).Once()
		mockRepo.On("Update", ctx, mock.MatchedBy(func(p *authDomain.Principal) bool {
			return p.ID == principalID && !p.IsAdmin
		})).Return(nil).Once()

		useCase := NewPrincipalUseCase(fakeTxManager{}, mockRepo, &mockTokenService{})
		err := useCase.SetAdmin(ctx, principalID, false)

		assert.NoError(t, err)
	})

	t.Run("Error_PrincipalNotFound", func(t *testing.T) {
		mockRepo := &mockPrincipalRepository{}
		principalID := uuid.Must(uuid.NewV7())

		mockRepo.On("Get", ctx, principalID).
			Return(nil, authDomain.ErrPrincipalNotFound).
			Once()

		useCase := NewPrincipalUseCase(fakeTxManager{}, mockRepo, &mockTokenService{})
		err := useCase.SetAdmin(ctx, principalID, true)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		mockRepo.AssertNotCalled(t, "Update")
	})
}

func TestPrincipalUseCase_List(t *testing.T) {
	ctx := context.Background()

	mockRepo := &mockPrincipalRepository{}
	principals := []*authDomain.Principal{
		{ID: uuid.Must(uuid.NewV7()), Name: "alice"},
		{ID: uuid.Must(uuid.NewV7()), Name: "bob"},
	}
	mockRepo.On("List", ctx, 0, 50).Return(principals, nil).Once()

	useCase := NewPrincipalUseCase(fakeTxManager{}, mockRepo, &mockTokenService{})
	got, err := useCase.List(ctx, 0, 50)

	require.NoError(t, err)
	assert.Len(t, got, 2)
}
