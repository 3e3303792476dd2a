package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	agentsHTTP "github.com/agentvault/agentvault/internal/agents/http"
	apikeysHTTP "github.com/agentvault/agentvault/internal/apikeys/http"
	authHTTP "github.com/agentvault/agentvault/internal/auth/http"
	authService "github.com/agentvault/agentvault/internal/auth/service"
	authUseCase "github.com/agentvault/agentvault/internal/auth/usecase"
	"github.com/agentvault/agentvault/internal/config"
	conversationsHTTP "github.com/agentvault/agentvault/internal/conversations/http"
	cryptoHTTP "github.com/agentvault/agentvault/internal/crypto/http"
	"github.com/agentvault/agentvault/internal/metrics"
)

// Server represents the main HTTP server.
type Server struct {
	db     *sql.DB
	router *gin.Engine
	server *http.Server
	logger *slog.Logger
}

// NewServer creates a new HTTP server. The router must be configured with
// SetupRouter before Start.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// RouterConfig carries the handlers and middleware dependencies for route wiring.
type RouterConfig struct {
	Config           *config.Config
	MetricsProvider  *metrics.Provider
	PrincipalUseCase authUseCase.PrincipalUseCase
	TokenService     authService.TokenService
	AdminHandler     *authHTTP.AdminHandler
	AgentHandler     *agentsHTTP.AgentHandler
	EntryHandler     *conversationsHTTP.EntryHandler
	APIKeyHandler    *apikeysHTTP.APIKeyHandler
	KeyCacheHandler  *cryptoHTTP.KeyCacheHandler
}

// SetupRouter builds the Gin router with all middleware and routes.
func (s *Server) SetupRouter(routerConfig RouterConfig) {
	cfg := routerConfig.Config
	gin.SetMode(cfg.GetGinMode())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if routerConfig.MetricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(
			routerConfig.MetricsProvider.MeterProvider(),
			cfg.MetricsNamespace,
		))
	}

	// Health and readiness endpoints (unauthenticated)
	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	requireAdmin := authHTTP.RequireAdmin(s.logger)

	v1 := router.Group("/v1")
	v1.Use(authHTTP.AuthenticationMiddleware(
		routerConfig.PrincipalUseCase,
		routerConfig.TokenService,
		s.logger,
	))
	if cfg.RateLimitEnabled {
		v1.Use(authHTTP.RateLimitMiddleware(
			cfg.RateLimitRequestsPerSec,
			cfg.RateLimitBurst,
			s.logger,
		))
	}

	// Agents (mutations are admin only)
	v1.GET("/agents", routerConfig.AgentHandler.ListAgentsHandler)
	v1.GET("/agents/:id", routerConfig.AgentHandler.GetAgentHandler)
	v1.POST("/agents", requireAdmin, routerConfig.AgentHandler.CreateAgentHandler)
	v1.PUT("/agents/:id", requireAdmin, routerConfig.AgentHandler.UpdateAgentHandler)
	v1.DELETE("/agents/:id", requireAdmin, routerConfig.AgentHandler.DeleteAgentHandler)

	// Conversations (owner scoped)
	v1.POST("/conversations", routerConfig.EntryHandler.AppendEntryHandler)
	v1.GET("/conversations", routerConfig.EntryHandler.ListEntriesHandler)
	v1.DELETE("/conversations", routerConfig.EntryHandler.ClearEntriesHandler)

	// API keys (owner scoped)
	v1.PUT("/api-keys/:provider", routerConfig.APIKeyHandler.StoreAPIKeyHandler)
	v1.GET("/api-keys", routerConfig.APIKeyHandler.ListAPIKeysHandler)
	v1.GET("/api-keys/:provider/reveal", routerConfig.APIKeyHandler.RevealAPIKeyHandler)
	v1.DELETE("/api-keys/:provider", routerConfig.APIKeyHandler.DeleteAPIKeyHandler)

	// Admin allow-list and key cache administration
	admin := v1.Group("/admin")
	admin.Use(requireAdmin)
	admin.POST("/principals", routerConfig.AdminHandler.CreatePrincipalHandler)
	admin.GET("/principals", routerConfig.AdminHandler.ListPrincipalsHandler)
	admin.PUT("/principals/:id/admin", routerConfig.AdminHandler.SetAdminHandler)
	admin.GET("/key-cache", routerConfig.KeyCacheHandler.StatusHandler)
	admin.POST("/key-cache/clear", routerConfig.KeyCacheHandler.ClearHandler)

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can serve traffic, checking
// database connectivity.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{"database": "ok"}
	ready := true

	if s.db == nil {
		components["database"] = "error"
		ready = false
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.db.PingContext(ctx); err != nil {
			s.logger.Warn("readiness check failed", slog.Any("error", err))
			components["database"] = "error"
			ready = false
		}
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
