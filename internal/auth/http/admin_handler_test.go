package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/agentvault/agentvault/internal/auth/domain"
)

func newAdminRouter(useCase *mockPrincipalUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewAdminHandler(useCase, testLogger())

	router := gin.New()
	router.POST("/v1/admin/principals", handler.CreatePrincipalHandler)
	router.GET("/v1/admin/principals", handler.ListPrincipalsHandler)
	router.PUT("/v1/admin/principals/:id/admin", handler.SetAdminHandler)
	return router
}

func TestAdminHandler_CreatePrincipalHandler(t *testing.T) {
	t.Run("Success_CreatePrincipal", func(t *testing.T) {
		useCase := &mockPrincipalUseCase{}
		principalID := uuid.Must(uuid.NewV7())
		output := &authDomain.CreatePrincipalOutput{
			ID:         principalID,
			PlainToken: "generated-token",
		}

		useCase.On("Create", mock.Anything, &authDomain.CreatePrincipalInput{
			Name:    "agent-service",
			IsAdmin: false,
		}).Return(output, nil).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/admin/principals",
			strings.NewReader(`{"name": "agent-service"}`))
		req.Header.Set("Content-Type", "application/json")
		newAdminRouter(useCase).ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), principalID.String())
		assert.Contains(t, w.Body.String(), "generated-token")
		useCase.AssertExpectations(t)
	})

	t.Run("Error_BlankName", func(t *testing.T) {
		useCase := &mockPrincipalUseCase{}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/admin/principals",
			strings.NewReader(`{"name": "   "}`))
		req.Header.Set("Content-Type", "application/json")
		newAdminRouter(useCase).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		useCase.AssertNotCalled(t, "Create")
	})

	t.Run("Error_DuplicateName", func(t *testing.T) {
		useCase := &mockPrincipalUseCase{}
		useCase.On("Create", mock.Anything, mock.Anything).
			Return(nil, authDomain.ErrPrincipalAlreadyExists).
			Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/admin/principals",
			strings.NewReader(`{"name": "agent-service"}`))
		req.Header.Set("Content-Type", "application/json")
		newAdminRouter(useCase).ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestAdminHandler_ListPrincipalsHandler(t *testing.T) {
	t.Run("Success_ListPrincipals", func(t *testing.T) {
		useCase := &mockPrincipalUseCase{}
		principals := []*authDomain.Principal{
			{
				ID:        uuid.Must(uuid.NewV7()),
				Name:      "alice",
				IsAdmin:   true,
				IsActive:  true,
				CreatedAt: time.Now().UTC(),
				UpdatedAt: time.Now().UTC(),
			},
		}
		useCase.On("List", mock.Anything, 0, 50).Return(principals, nil).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/admin/principals", nil)
		newAdminRouter(useCase).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "alice")
		assert.NotContains(t, w.Body.String(), "token_hash")
	})

	t.Run("Error_InvalidPagination", func(t *testing.T) {
		useCase := &mockPrincipalUseCase{}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/admin/principals?limit=9999", nil)
		newAdminRouter(useCase).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		useCase.AssertNotCalled(t, "List")
	})
}

func TestAdminHandler_SetAdminHandler(t *testing.T) {
	t.Run("Success_PromotePrincipal", func(t *testing.T) {
		useCase := &mockPrincipalUseCase{}
		principalID := uuid.Must(uuid.NewV7())
		principal := &authDomain.Principal{
			ID:       principalID,
			Name:     "bob",
			IsAdmin:  true,
			IsActive: true,
		}

		useCase.On("SetAdmin", mock.Anything, principalID, true).Return(nil).Once()
		useCase.On("Get", mock.Anything, principalID).Return(principal, nil).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut,
			"/v1/admin/principals/"+principalID.String()+"/admin",
			strings.NewReader(`{"is_admin": true}`))
		req.Header.Set("Content-Type", "application/json")
		newAdminRouter(useCase).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"is_admin":true`)
		useCase.AssertExpectations(t)
	})

	t.Run("Error_InvalidUUID", func(t *testing.T) {
		useCase := &mockPrincipalUseCase{}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut,
			"/v1/admin/principals/not-a-uuid/admin",
			strings.NewReader(`{"is_admin": true}`))
		req.Header.Set("Content-Type", "application/json")
		newAdminRouter(useCase).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		useCase.AssertNotCalled(t, "SetAdmin")
	})

	t.Run("Error_PrincipalNotFound", func(t *testing.T) {
		useCase := &mockPrincipalUseCase{}
		principalID := uuid.Must(uuid.NewV7())

		useCase.On("SetAdmin", mock.Anything, principalID, false).
			Return(authDomain.ErrPrincipalNotFound).
			Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut,
			"/v1/admin/principals/"+principalID.String()+"/admin",
			strings.NewReader(`{"is_admin": false}`))
		req.Header.Set("Content-Type", "application/json")
		newAdminRouter(useCase).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
