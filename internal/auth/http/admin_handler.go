package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/agentvault/agentvault/internal/auth/domain"
	"github.com/agentvault/agentvault/internal/auth/http/dto"
	authUseCase "github.com/agentvault/agentvault/internal/auth/usecase"
	"github.com/agentvault/agentvault/internal/httputil"
)

// AdminHandler handles HTTP requests for the admin allow-list.
type AdminHandler struct {
	principalUseCase authUseCase.PrincipalUseCase
	logger           *slog.Logger
}

// NewAdminHandler creates a new admin handler with required dependencies.
func NewAdminHandler(
	principalUseCase authUseCase.PrincipalUseCase,
	logger *slog.Logger,
) *AdminHandler {
	return &AdminHandler{
		principalUseCase: principalUseCase,
		logger:           logger,
	}
}

// CreatePrincipalHandler creates a new principal and returns its plaintext
// token. The token is shown only in this response.
// POST /v1/admin/principals - admin only.
func (h *AdminHandler) CreatePrincipalHandler(c *gin.Context) {
	var req dto.CreatePrincipalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	output, err := h.principalUseCase.Create(c.Request.Context(), &authDomain.CreatePrincipalInput{
		Name:    req.Name,
		IsAdmin: req.IsAdmin,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.CreatePrincipalResponse{
		ID:    output.ID.String(),
		Token: output.PlainToken,
	})
}

// ListPrincipalsHandler lists principals with pagination.
// GET /v1/admin/principals - admin only.
func (h *AdminHandler) ListPrincipalsHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	principals, err := h.principalUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapPrincipalsToListResponse(principals))
}

// SetAdminHandler adds or removes a principal from the admin allow-list.
// PUT /v1/admin/principals/:id/admin - admin only.
func (h *AdminHandler) SetAdminHandler(c *gin.Context) {
	principalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid principal ID format: must be a valid UUID"),
			h.logger)
		return
	}

	var req dto.SetAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := h.principalUseCase.SetAdmin(c.Request.Context(), principalID, req.IsAdmin); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	principal, err := h.principalUseCase.Get(c.Request.Context(), principalID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapPrincipalToResponse(principal))
}
