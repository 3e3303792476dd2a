package usecase

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apikeysDomain "github.com/agentvault/agentvault/internal/apikeys/domain"
	cryptodomain "github.com/agentvault/agentvault/internal/crypto/domain"
	cryptoService "github.com/agentvault/agentvault/internal/crypto/service"
)

// mockAPIKeyRepository is a mock implementation of APIKeyRepository for testing.
type mockAPIKeyRepository struct {
	mock.Mock
}

func (m *mockAPIKeyRepository) Upsert(ctx context.Context, apiKey *apikeysDomain.APIKey) error {
	args := m.Called(ctx, apiKey)
	return args.Error(0)
}

func (m *mockAPIKeyRepository) GetByPrincipalAndProvider(
	ctx context.Context,
	principalID uuid.UUID,
	provider apikeysDomain.Provider,
) (*apikeysDomain.APIKey, error) {
	args := m.Called(ctx, principalID, provider)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apikeysDomain.APIKey), args.Error(1)
}

func (m *mockAPIKeyRepository) ListByPrincipal(
	ctx context.Context,
	principalID uuid.UUID,
) ([]*apikeysDomain.APIKey, error) {
	args := m.Called(ctx, principalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*apikeysDomain.APIKey), args.Error(1)
}

func (m *mockAPIKeyRepository) Delete(
	ctx context.Context,
	principalID uuid.UUID,
	provider apikeysDomain.Provider,
) error {
	args := m.Called(ctx, principalID, provider)
	return args.Error(0)
}

// fixedKeyProvider returns the same 32-byte key for every identity, or a
// configured error. Returned slices are copies so callers can zero them.
type fixedKeyProvider struct {
	key []byte
	err error
}

func (f *fixedKeyProvider) GetOrDerive(
	ctx context.Context,
	identity cryptodomain.Identity,
) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return bytes.Clone(f.key), nil
}

func testKeyProvider() *fixedKeyProvider {
	return &fixedKeyProvider{key: bytes.Repeat([]byte{0x5a}, cryptodomain.KeySize)}
}

func TestAPIKeyUseCase_Store(t *testing.T) {
	principalID := uuid.Must(uuid.NewV7())

	t.Run("Success_UpsertsEncryptedEnvelope", func(t *testing.T) {
		repo := &mockAPIKeyRepository{}
		useCase := NewAPIKeyUseCase(repo, testKeyProvider(), cryptoService.NewNonceSource())

		repo.On("Upsert", mock.Anything,
			mock.MatchedBy(func(apiKey *apikeysDomain.APIKey) bool {
				return apiKey.PrincipalID == principalID &&
					apiKey.Provider == apikeysDomain.ProviderOpenAI &&
					len(apiKey.Envelope) == cryptodomain.NonceSize+cryptodomain.TagSize+len("sk-test-123") &&
					!bytes.Contains(apiKey.Envelope, []byte("sk-test-123"))
			})).Return(nil).Once()

		apiKey, err := useCase.Store(context.Background(), principalID,
			apikeysDomain.ProviderOpenAI, "sk-test-123")

		require.NoError(t, err)
		assert.Equal(t, apikeysDomain.ProviderOpenAI, apiKey.Provider)
		repo.AssertExpectations(t)
	})

	t.Run("Error_KeyDerivationFails", func(t *testing.T) {
		repo := &mockAPIKeyRepository{}
		provider := &fixedKeyProvider{err: cryptodomain.ErrOracleUnavailable}
		useCase := NewAPIKeyUseCase(repo, provider, cryptoService.NewNonceSource())

		apiKey, err := useCase.Store(context.Background(), principalID,
			apikeysDomain.ProviderOpenAI, "sk-test-123")

		assert.ErrorIs(t, err, cryptodomain.ErrOracleUnavailable)
		assert.Nil(t, apiKey)
		repo.AssertNotCalled(t, "Upsert")
	})
}

func TestAPIKeyUseCase_Reveal(t *testing.T) {
	principalID := uuid.Must(uuid.NewV7())

	t.Run("Success_RoundTrip", func(t *testing.T) {
		repo := &mockAPIKeyRepository{}
		keys := testKeyProvider()
		useCase := NewAPIKeyUseCase(repo, keys, cryptoService.NewNonceSource())

		var stored *apikeysDomain.APIKey
		repo.On("Upsert", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				stored = args.Get(1).(*apikeysDomain.APIKey)
			}).
			Return(nil).Once()

		_, err := useCase.Store(context.Background(), principalID,
			apikeysDomain.ProviderAnthropic, "sk-ant-secret")
		require.NoError(t, err)
		require.NotNil(t, stored)

		repo.On("GetByPrincipalAndProvider", mock.Anything, principalID,
			apikeysDomain.ProviderAnthropic).Return(stored, nil).Once()

		plaintext, err := useCase.Reveal(context.Background(), principalID,
			apikeysDomain.ProviderAnthropic)

		require.NoError(t, err)
		assert.Equal(t, "sk-ant-secret", plaintext)
	})

	t.Run("Error_TamperedEnvelope", func(t *testing.T) {
		repo := &mockAPIKeyRepository{}
		keys := testKeyProvider()
		useCase := NewAPIKeyUseCase(repo, keys, cryptoService.NewNonceSource())

		var stored *apikeysDomain.APIKey
		repo.On("Upsert", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				stored = args.Get(1).(*apikeysDomain.APIKey)
			}).
			Return(nil).Once()

		_, err := useCase.Store(context.Background(), principalID,
			apikeysDomain.ProviderGoogle, "AIza-secret")
		require.NoError(t, err)

		// Flip one ciphertext bit
		stored.Envelope[len(stored.Envelope)-1] ^= 0x01

		repo.On("GetByPrincipalAndProvider", mock.Anything, principalID,
			apikeysDomain.ProviderGoogle).Return(stored, nil).Once()

		plaintext, err := useCase.Reveal(context.Background(), principalID,
			apikeysDomain.ProviderGoogle)

		assert.ErrorIs(t, err, cryptodomain.ErrDecryptionFailed)
		assert.Empty(t, plaintext)
	})

	t.Run("Error_APIKeyNotFound", func(t *testing.T) {
		repo := &mockAPIKeyRepository{}
		useCase := NewAPIKeyUseCase(repo, testKeyProvider(), cryptoService.NewNonceSource())

		repo.On("GetByPrincipalAndProvider", mock.Anything, principalID,
			apikeysDomain.ProviderMistral).
			Return(nil, apikeysDomain.ErrAPIKeyNotFound).Once()

		plaintext, err := useCase.Reveal(context.Background(), principalID,
			apikeysDomain.ProviderMistral)

		assert.ErrorIs(t, err, apikeysDomain.ErrAPIKeyNotFound)
		assert.Empty(t, plaintext)
	})
}

func TestAPIKeyUseCase_Delete(t *testing.T) {
	principalID := uuid.Must(uuid.NewV7())
	repo := &mockAPIKeyRepository{}
	useCase := NewAPIKeyUseCase(repo, testKeyProvider(), cryptoService.NewNonceSource())

	repo.On("Delete", mock.Anything, principalID, apikeysDomain.ProviderOpenRouter).
		Return(nil).Once()

	err := useCase.Delete(context.Background(), principalID, apikeysDomain.ProviderOpenRouter)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestParseProvider(t *testing.T) {
	tests := []struct {
		input   string
		want    apikeysDomain.Provider
		wantErr bool
	}{
		{input: "openai", want: apikeysDomain.ProviderOpenAI},
		{input: "anthropic", want: apikeysDomain.ProviderAnthropic},
		{input: "google", want: apikeysDomain.ProviderGoogle},
		{input: "mistral", want: apikeysDomain.ProviderMistral},
		{input: "openrouter", want: apikeysDomain.ProviderOpenRouter},
		{input: "azure", wantErr: true},
		{input: "", wantErr: true},
		{input: "OpenAI", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("Provider_"+tt.input, func(t *testing.T) {
			provider, err := apikeysDomain.ParseProvider(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, apikeysDomain.ErrUnknownProvider)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, provider)
		})
	}
}
