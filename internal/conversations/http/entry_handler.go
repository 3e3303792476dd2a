// Package http provides HTTP handlers for per-principal conversation logs.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/agentvault/agentvault/internal/auth/http"
	conversationsDomain "github.com/agentvault/agentvault/internal/conversations/domain"
	"github.com/agentvault/agentvault/internal/conversations/http/dto"
	conversationsUseCase "github.com/agentvault/agentvault/internal/conversations/usecase"
	apperrors "github.com/agentvault/agentvault/internal/errors"
	"github.com/agentvault/agentvault/internal/httputil"
)

// EntryHandler handles HTTP requests for conversation log operations.
// All operations are scoped to the authenticated principal.
type EntryHandler struct {
	entryUseCase conversationsUseCase.EntryUseCase
	logger       *slog.Logger
}

// NewEntryHandler creates a new conversation entry handler with required dependencies.
func NewEntryHandler(
	entryUseCase conversationsUseCase.EntryUseCase,
	logger *slog.Logger,
) *EntryHandler {
	return &EntryHandler{
		entryUseCase: entryUseCase,
		logger:       logger,
	}
}

// AppendEntryHandler appends an entry to the caller's conversation log.
// POST /v1/conversations
func (h *EntryHandler) AppendEntryHandler(c *gin.Context) {
	principal, ok := authHTTP.GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.AppendEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	agentID, err := uuid.Parse(req.AgentID)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	role, err := conversationsDomain.ParseRole(req.Role)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	entry, err := h.entryUseCase.Append(c.Request.Context(), &conversationsDomain.AppendEntryInput{
		PrincipalID: principal.ID,
		AgentID:     agentID,
		Role:        role,
		Content:     req.Content,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapEntryToResponse(entry))
}

// ListEntriesHandler lists the caller's conversation log, newest first.
// GET /v1/conversations
func (h *EntryHandler) ListEntriesHandler(c *gin.Context) {
	principal, ok := authHTTP.GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	entries, err := h.entryUseCase.List(c.Request.Context(), principal.ID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEntriesToListResponse(entries))
}

// ClearEntriesHandler removes the caller's entire conversation log.
// DELETE /v1/conversations
func (h *EntryHandler) ClearEntriesHandler(c *gin.Context) {
	principal, ok := authHTTP.GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	removed, err := h.entryUseCase.Clear(c.Request.Context(), principal.ID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.logger.Info("conversation log cleared",
		slog.String("principal_id", principal.ID.String()),
		slog.Int64("removed_entries", removed))

	c.JSON(http.StatusOK, dto.ClearEntriesResponse{RemovedEntries: removed})
}
