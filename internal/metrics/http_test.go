package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Success_RecordHTTPMetrics", func(t *testing.T) {
		provider, err := NewProvider("agentvault")
		require.NoError(t, err)
		defer func() {
			assert.NoError(t, provider.Shutdown(context.Background()))
		}()

		middleware := HTTPMetricsMiddleware(provider.MeterProvider(), "agentvault")

		router := gin.New()
		router.Use(middleware)
		router.GET("/test", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "ok"})
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Success_RecordWithPathParams", func(t *testing.T) {
		provider, err := NewProvider("agentvault")
		require.NoError(t, err)
		defer func() {
			assert.NoError(t, provider.Shutdown(context.Background()))
		}()

		middleware := HTTPMetricsMiddleware(provider.MeterProvider(), "agentvault")

		router := gin.New()
		router.Use(middleware)
		router.GET("/v1/agents/:id", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
		})

		// Requests with different path params should use the route pattern
		for _, id := range []string{"123", "456"} {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/v1/agents/"+id, nil)
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})
}

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "RoutePattern",
			input:    "/v1/api-keys/:provider",
			expected: "/v1/api-keys/:provider",
		},
		{
			name:     "EmptyPath",
			input:    "",
			expected: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizePath(tt.input))
		})
	}
}
