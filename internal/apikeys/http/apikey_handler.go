// Package http provides HTTP handlers for encrypted API key storage.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agentvault/agentvault/internal/apikeys/http/dto"
	apikeysUseCase "github.com/agentvault/agentvault/internal/apikeys/usecase"
	authHTTP "github.com/agentvault/agentvault/internal/auth/http"
	apperrors "github.com/agentvault/agentvault/internal/errors"
	"github.com/agentvault/agentvault/internal/httputil"

	apikeysDomain "github.com/agentvault/agentvault/internal/apikeys/domain"
)

// APIKeyHandler handles HTTP requests for API key operations.
// All operations are scoped to the authenticated principal.
type APIKeyHandler struct {
	apiKeyUseCase apikeysUseCase.APIKeyUseCase
	logger        *slog.Logger
}

// NewAPIKeyHandler creates a new API key handler with required dependencies.
func NewAPIKeyHandler(
	apiKeyUseCase apikeysUseCase.APIKeyUseCase,
	logger *slog.Logger,
) *APIKeyHandler {
	return &APIKeyHandler{
		apiKeyUseCase: apiKeyUseCase,
		logger:        logger,
	}
}

// StoreAPIKeyHandler encrypts and stores the caller's key for a provider.
// PUT /v1/api-keys/:provider
func (h *APIKeyHandler) StoreAPIKeyHandler(c *gin.Context) {
	principal, ok := authHTTP.GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	provider, err := apikeysDomain.ParseProvider(c.Param("provider"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	var req dto.StoreAPIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	apiKey, err := h.apiKeyUseCase.Store(c.Request.Context(), principal.ID, provider, req.Key)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.logger.Info("api key stored",
		slog.String("principal_id", principal.ID.String()),
		slog.String("provider", string(provider)))

	c.JSON(http.StatusOK, dto.MapAPIKeyToResponse(apiKey))
}

// ListAPIKeysHandler lists the caller's configured providers.
// GET /v1/api-keys
func (h *APIKeyHandler) ListAPIKeysHandler(c *gin.Context) {
	principal, ok := authHTTP.GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	apiKeys, err := h.apiKeyUseCase.List(c.Request.Context(), principal.ID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAPIKeysToListResponse(apiKeys))
}

// RevealAPIKeyHandler decrypts and returns the caller's key for a provider.
// GET /v1/api-keys/:provider/reveal
func (h *APIKeyHandler) RevealAPIKeyHandler(c *gin.Context) {
	principal, ok := authHTTP.GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	provider, err := apikeysDomain.ParseProvider(c.Param("provider"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	plaintext, err := h.apiKeyUseCase.Reveal(c.Request.Context(), principal.ID, provider)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.RevealAPIKeyResponse{
		Provider: string(provider),
		Key:      plaintext,
	})
}

// DeleteAPIKeyHandler removes the caller's key for a provider.
// DELETE /v1/api-keys/:provider
func (h *APIKeyHandler) DeleteAPIKeyHandler(c *gin.Context) {
	principal, ok := authHTTP.GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	provider, err := apikeysDomain.ParseProvider(c.Param("provider"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if err := h.apiKeyUseCase.Delete(c.Request.Context(), principal.ID, provider); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
