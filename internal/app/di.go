// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	agentsHTTP "github.com/agentvault/agentvault/internal/agents/http"
	agentsUseCase "github.com/agentvault/agentvault/internal/agents/usecase"
	apikeysHTTP "github.com/agentvault/agentvault/internal/apikeys/http"
	apikeysUseCase "github.com/agentvault/agentvault/internal/apikeys/usecase"
	authHTTP "github.com/agentvault/agentvault/internal/auth/http"
	authService "github.com/agentvault/agentvault/internal/auth/service"
	authUseCase "github.com/agentvault/agentvault/internal/auth/usecase"
	"github.com/agentvault/agentvault/internal/config"
	conversationsHTTP "github.com/agentvault/agentvault/internal/conversations/http"
	conversationsUseCase "github.com/agentvault/agentvault/internal/conversations/usecase"
	cryptoHTTP "github.com/agentvault/agentvault/internal/crypto/http"
	cryptoService "github.com/agentvault/agentvault/internal/crypto/service"
	"github.com/agentvault/agentvault/internal/database"
	"github.com/agentvault/agentvault/internal/http"
	"github.com/agentvault/agentvault/internal/metrics"
	"github.com/agentvault/agentvault/internal/oracle"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger *slog.Logger
	db     *sql.DB

	// Managers
	txManager database.TxManager

	// Metrics
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Crypto
	signingOracle        oracle.Oracle
	keyDeriver           cryptoService.KeyDeriver
	keyCache             *cryptoService.KeyCache
	nonceSource          *cryptoService.NonceSource
	cacheStateRepository cryptoService.CacheStateRepository
	cacheJanitor         *cryptoService.CacheJanitor
	keyCacheHandler      *cryptoHTTP.KeyCacheHandler

	// Auth
	tokenService        authService.TokenService
	principalRepository authUseCase.PrincipalRepository
	principalUseCase    authUseCase.PrincipalUseCase
	adminHandler        *authHTTP.AdminHandler

	// Agents
	agentRepository agentsUseCase.AgentRepository
	agentUseCase    agentsUseCase.AgentUseCase
	agentHandler    *agentsHTTP.AgentHandler

	// Conversations
	entryRepository conversationsUseCase.EntryRepository
	entryUseCase    conversationsUseCase.EntryUseCase
	entryHandler    *conversationsHTTP.EntryHandler

	// API keys
	apiKeyRepository apikeysUseCase.APIKeyRepository
	apiKeyUseCase    apikeysUseCase.APIKeyUseCase
	apiKeyHandler    *apikeysHTTP.APIKeyHandler

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                       sync.Mutex
	loggerInit               sync.Once
	dbInit                   sync.Once
	txManagerInit            sync.Once
	metricsProviderInit      sync.Once
	businessMetricsInit      sync.Once
	signingOracleInit        sync.Once
	keyDeriverInit           sync.Once
	keyCacheInit             sync.Once
	nonceSourceInit          sync.Once
	cacheStateRepositoryInit sync.Once
	cacheJanitorInit         sync.Once
	keyCacheHandlerInit      sync.Once
	tokenServiceInit         sync.Once
	principalRepositoryInit  sync.Once
	principalUseCaseInit     sync.Once
	adminHandlerInit         sync.Once
	agentRepositoryInit      sync.Once
	agentUseCaseInit         sync.Once
	agentHandlerInit         sync.Once
	entryRepositoryInit      sync.Once
	entryUseCaseInit         sync.Once
	entryHandlerInit         sync.Once
	apiKeyRepositoryInit     sync.Once
	apiKeyUseCaseInit        sync.Once
	apiKeyHandlerInit        sync.Once
	httpServerInit           sync.Once
	metricsServerInit        sync.Once
	initErrors               map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
// It creates and configures the database connection on first access.
func (c *Container) DB() (*sql.DB, error) {
	var err error
	c.dbInit.Do(func() {
		c.db, err = c.initDB()
		if err != nil {
			c.initErrors["db"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
// It requires a database connection to be initialized first.
func (c *Container) TxManager() (database.TxManager, error) {
	var err error
	c.txManagerInit.Do(func() {
		c.txManager, err = c.initTxManager()
		if err != nil {
			c.initErrors["txManager"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["txManager"]; exists {
		return nil, storedErr
	}
	return c.txManager, nil
}

// MetricsProvider returns the metrics provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		c.metricsProvider, err = metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			err = fmt.Errorf("failed to create metrics provider: %w", err)
			c.initErrors["metricsProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. A no-op implementation
// is returned when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	var err error
	c.businessMetricsInit.Do(func() {
		c.businessMetrics, err = c.initBusinessMetrics()
		if err != nil {
			c.initErrors["businessMetrics"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// HTTPServer returns the HTTP server instance with all routes configured.
func (c *Container) HTTPServer() (*http.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics server instance, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		c.metricsServer, err = c.initMetricsServer()
		if err != nil {
			c.initErrors["metricsServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	// Shutdown HTTP server if initialized
	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	// Shutdown metrics server if initialized
	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	// Flush metrics provider if initialized
	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	// Close database connection if initialized
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	// Return combined errors if any occurred
	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// initTxManager creates the transaction manager using the database connection.
func (c *Container) initTxManager() (database.TxManager, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for tx manager: %w", err)
	}
	return database.NewTxManager(db), nil
}

// initBusinessMetrics creates the business metrics recorder.
func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for business metrics: %w", err)
	}
	if provider == nil {
		return metrics.NewNoOpBusinessMetrics(), nil
	}

	businessMetrics, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}
	return businessMetrics, nil
}

// initHTTPServer creates the HTTP server with all its dependencies.
func (c *Container) initHTTPServer() (*http.Server, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	principalUseCase, err := c.PrincipalUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get principal use case for http server: %w", err)
	}

	adminHandler, err := c.AdminHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get admin handler for http server: %w", err)
	}

	agentHandler, err := c.AgentHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get agent handler for http server: %w", err)
	}

	entryHandler, err := c.EntryHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get entry handler for http server: %w", err)
	}

	apiKeyHandler, err := c.APIKeyHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get api key handler for http server: %w", err)
	}

	keyCacheHandler, err := c.KeyCacheHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get key cache handler for http server: %w", err)
	}

	server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, c.Logger())
	server.SetupRouter(http.RouterConfig{
		Config:           c.config,
		MetricsProvider:  metricsProvider,
		PrincipalUseCase: principalUseCase,
		TokenService:     c.TokenService(),
		AdminHandler:     adminHandler,
		AgentHandler:     agentHandler,
		EntryHandler:     entryHandler,
		APIKeyHandler:    apiKeyHandler,
		KeyCacheHandler:  keyCacheHandler,
	})

	return server, nil
}

// initMetricsServer creates the metrics server when metrics are enabled.
func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}
	if metricsProvider == nil {
		return nil, nil
	}

	return http.NewMetricsServer(
		c.config.ServerHost,
		c.config.MetricsPort,
		c.Logger(),
		metricsProvider,
	), nil
}
