package app

import (
	"fmt"

	conversationsHTTP "github.com/agentvault/agentvault/internal/conversations/http"
	conversationsRepository "github.com/agentvault/agentvault/internal/conversations/repository"
	conversationsUseCase "github.com/agentvault/agentvault/internal/conversations/usecase"
)

// EntryRepository returns the conversation entry repository based on database driver.
func (c *Container) EntryRepository() (conversationsUseCase.EntryRepository, error) {
	var err error
	c.entryRepositoryInit.Do(func() {
		c.entryRepository, err = c.initEntryRepository()
		if err != nil {
			c.initErrors["entryRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["entryRepository"]; exists {
		return nil, storedErr
	}
	return c.entryRepository, nil
}

// EntryUseCase returns the conversation entry use case.
func (c *Container) EntryUseCase() (conversationsUseCase.EntryUseCase, error) {
	var err error
	c.entryUseCaseInit.Do(func() {
		c.entryUseCase, err = c.initEntryUseCase()
		if err != nil {
			c.initErrors["entryUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["entryUseCase"]; exists {
		return nil, storedErr
	}
	return c.entryUseCase, nil
}

// EntryHandler returns the HTTP handler for conversation operations.
func (c *Container) EntryHandler() (*conversationsHTTP.EntryHandler, error) {
	var err error
	c.entryHandlerInit.Do(func() {
		c.entryHandler, err = c.initEntryHandler()
		if err != nil {
			c.initErrors["entryHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["entryHandler"]; exists {
		return nil, storedErr
	}
	return c.entryHandler, nil
}

// initEntryRepository creates the entry repository based on the database driver.
func (c *Container) initEntryRepository() (conversationsUseCase.EntryRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for entry repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return conversationsRepository.NewPostgreSQLEntryRepository(db), nil
	case "mysql":
		return conversationsRepository.NewMySQLEntryRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initEntryUseCase creates the entry use case with all its dependencies.
func (c *Container) initEntryUseCase() (conversationsUseCase.EntryUseCase, error) {
	entryRepository, err := c.EntryRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get entry repository for entry use case: %w", err)
	}

	agentUseCase, err := c.AgentUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get agent use case for entry use case: %w", err)
	}

	baseUseCase := conversationsUseCase.NewEntryUseCase(entryRepository, agentUseCase)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for entry use case: %w", err)
		}
		return conversationsUseCase.NewEntryUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initEntryHandler creates the entry HTTP handler with all its dependencies.
func (c *Container) initEntryHandler() (*conversationsHTTP.EntryHandler, error) {
	entryUseCase, err := c.EntryUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get entry use case for entry handler: %w", err)
	}

	return conversationsHTTP.NewEntryHandler(entryUseCase, c.Logger()), nil
}
