package app

import (
	"fmt"

	apikeysHTTP "github.com/agentvault/agentvault/internal/apikeys/http"
	apikeysRepository "github.com/agentvault/agentvault/internal/apikeys/repository"
	apikeysUseCase "github.com/agentvault/agentvault/internal/apikeys/usecase"
)

// APIKeyRepository returns the API key repository based on database driver.
func (c *Container) APIKeyRepository() (apikeysUseCase.APIKeyRepository, error) {
	var err error
	c.apiKeyRepositoryInit.Do(func() {
		c.apiKeyRepository, err = c.initAPIKeyRepository()
		if err != nil {
			c.initErrors["apiKeyRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["apiKeyRepository"]; exists {
		return nil, storedErr
	}
	return c.apiKeyRepository, nil
}

// APIKeyUseCase returns the API key use case.
func (c *Container) APIKeyUseCase() (apikeysUseCase.APIKeyUseCase, error) {
	var err error
	c.apiKeyUseCaseInit.Do(func() {
		c.apiKeyUseCase, err = c.initAPIKeyUseCase()
		if err != nil {
			c.initErrors["apiKeyUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["apiKeyUseCase"]; exists {
		return nil, storedErr
	}
	return c.apiKeyUseCase, nil
}

// APIKeyHandler returns the HTTP handler for API key operations.
func (c *Container) APIKeyHandler() (*apikeysHTTP.APIKeyHandler, error) {
	var err error
	c.apiKeyHandlerInit.Do(func() {
		c.apiKeyHandler, err = c.initAPIKeyHandler()
		if err != nil {
			c.initErrors["apiKeyHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["apiKeyHandler"]; exists {
		return nil, storedErr
	}
	return c.apiKeyHandler, nil
}

// initAPIKeyRepository creates the API key repository based on the database driver.
func (c *Container) initAPIKeyRepository() (apikeysUseCase.APIKeyRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for api key repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return apikeysRepository.NewPostgreSQLAPIKeyRepository(db), nil
	case "mysql":
		return apikeysRepository.NewMySQLAPIKeyRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initAPIKeyUseCase creates the API key use case with all its dependencies.
func (c *Container) initAPIKeyUseCase() (apikeysUseCase.APIKeyUseCase, error) {
	apiKeyRepository, err := c.APIKeyRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get api key repository for api key use case: %w", err)
	}

	keyCache, err := c.KeyCache()
	if err != nil {
		return nil, fmt.Errorf("failed to get key cache for api key use case: %w", err)
	}

	baseUseCase := apikeysUseCase.NewAPIKeyUseCase(apiKeyRepository, keyCache, c.NonceSource())

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for api key use case: %w", err)
		}
		return apikeysUseCase.NewAPIKeyUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initAPIKeyHandler creates the API key HTTP handler with all its dependencies.
func (c *Container) initAPIKeyHandler() (*apikeysHTTP.APIKeyHandler, error) {
	apiKeyUseCase, err := c.APIKeyUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get api key use case for api key handler: %w", err)
	}

	return apikeysHTTP.NewAPIKeyHandler(apiKeyUseCase, c.Logger()), nil
}
