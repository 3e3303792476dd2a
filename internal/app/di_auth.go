package app

import (
	"fmt"

	authHTTP "github.com/agentvault/agentvault/internal/auth/http"
	authRepository "github.com/agentvault/agentvault/internal/auth/repository"
	authService "github.com/agentvault/agentvault/internal/auth/service"
	authUseCase "github.com/agentvault/agentvault/internal/auth/usecase"
)

// TokenService returns the token service for bearer token generation and hashing.
func (c *Container) TokenService() authService.TokenService {
	c.tokenServiceInit.Do(func() {
		c.tokenService = authService.NewTokenService()
	})
	return c.tokenService
}

// PrincipalRepository returns the principal repository based on database driver.
func (c *Container) PrincipalRepository() (authUseCase.PrincipalRepository, error) {
	var err error
	c.principalRepositoryInit.Do(func() {
		c.principalRepository, err = c.initPrincipalRepository()
		if err != nil {
			c.initErrors["principalRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["principalRepository"]; exists {
		return nil, storedErr
	}
	return c.principalRepository, nil
}

// PrincipalUseCase returns the principal use case.
func (c *Container) PrincipalUseCase() (authUseCase.PrincipalUseCase, error) {
	var err error
	c.principalUseCaseInit.Do(func() {
		c.principalUseCase, err = c.initPrincipalUseCase()
		if err != nil {
			c.initErrors["principalUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["principalUseCase"]; exists {
		return nil, storedErr
	}
	return c.principalUseCase, nil
}

// AdminHandler returns the HTTP handler for principal administration.
func (c *Container) AdminHandler() (*authHTTP.AdminHandler, error) {
	var err error
	c.adminHandlerInit.Do(func() {
		c.adminHandler, err = c.initAdminHandler()
		if err != nil {
			c.initErrors["adminHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["adminHandler"]; exists {
		return nil, storedErr
	}
	return c.adminHandler, nil
}

// initPrincipalRepository creates the principal repository based on the database driver.
func (c *Container) initPrincipalRepository() (authUseCase.PrincipalRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for principal repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return authRepository.NewPostgreSQLPrincipalRepository(db), nil
	case "mysql":
		return authRepository.NewMySQLPrincipalRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initPrincipalUseCase creates the principal use case with all its dependencies.
func (c *Container) initPrincipalUseCase() (authUseCase.PrincipalUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for principal use case: %w", err)
	}

	principalRepository, err := c.PrincipalRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get principal repository for principal use case: %w", err)
	}

	baseUseCase := authUseCase.NewPrincipalUseCase(txManager, principalRepository, c.TokenService())

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for principal use case: %w", err)
		}
		return authUseCase.NewPrincipalUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initAdminHandler creates the admin HTTP handler with all its dependencies.
func (c *Container) initAdminHandler() (*authHTTP.AdminHandler, error) {
	principalUseCase, err := c.PrincipalUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get principal use case for admin handler: %w", err)
	}

	return authHTTP.NewAdminHandler(principalUseCase, c.Logger()), nil
}
