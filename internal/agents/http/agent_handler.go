// Package http provides HTTP handlers for agent profile management.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agentvault/agentvault/internal/agents/http/dto"
	agentsUseCase "github.com/agentvault/agentvault/internal/agents/usecase"
	"github.com/agentvault/agentvault/internal/httputil"
)

// AgentHandler handles HTTP requests for agent operations.
type AgentHandler struct {
	agentUseCase agentsUseCase.AgentUseCase
	logger       *slog.Logger
}

// NewAgentHandler creates a new agent handler with required dependencies.
func NewAgentHandler(
	agentUseCase agentsUseCase.AgentUseCase,
	logger *slog.Logger,
) *AgentHandler {
	return &AgentHandler{
		agentUseCase: agentUseCase,
		logger:       logger,
	}
}

// CreateAgentHandler registers a new agent profile.
// POST /v1/agents - admin only.
func (h *AgentHandler) CreateAgentHandler(c *gin.Context) {
	var req dto.CreateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	agent, err := h.agentUseCase.Create(c.Request.Context(), req.ToCreateAgentInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapAgentToResponse(agent))
}

// GetAgentHandler retrieves an agent by ID.
// GET /v1/agents/:id
func (h *AgentHandler) GetAgentHandler(c *gin.Context) {
	agentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid agent ID format: must be a valid UUID"),
			h.logger)
		return
	}

	agent, err := h.agentUseCase.Get(c.Request.Context(), agentID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAgentToResponse(agent))
}

// ListAgentsHandler lists agents with pagination.
// GET /v1/agents
func (h *AgentHandler) ListAgentsHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	agents, err := h.agentUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAgentsToListResponse(agents))
}

// UpdateAgentHandler applies partial updates to an agent.
// PUT /v1/agents/:id - admin only.
func (h *AgentHandler) UpdateAgentHandler(c *gin.Context) {
	agentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid agent ID format: must be a valid UUID"),
			h.logger)
		return
	}

	var req dto.UpdateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	agent, err := h.agentUseCase.Update(c.Request.Context(), agentID, req.ToUpdateAgentInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAgentToResponse(agent))
}

// DeleteAgentHandler removes an agent.
// DELETE /v1/agents/:id - admin only.
func (h *AgentHandler) DeleteAgentHandler(c *gin.Context) {
	agentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid agent ID format: must be a valid UUID"),
			h.logger)
		return
	}

	if err := h.agentUseCase.Delete(c.Request.Context(), agentID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
