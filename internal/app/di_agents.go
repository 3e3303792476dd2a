package app

import (
	"fmt"

	agentsHTTP "github.com/agentvault/agentvault/internal/agents/http"
	agentsRepository "github.com/agentvault/agentvault/internal/agents/repository"
	agentsUseCase "github.com/agentvault/agentvault/internal/agents/usecase"
)

// AgentRepository returns the agent repository based on database driver.
func (c *Container) AgentRepository() (agentsUseCase.AgentRepository, error) {
	var err error
	c.agentRepositoryInit.Do(func() {
		c.agentRepository, err = c.initAgentRepository()
		if err != nil {
			c.initErrors["agentRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["agentRepository"]; exists {
		return nil, storedErr
	}
	return c.agentRepository, nil
}

// AgentUseCase returns the agent use case.
func (c *Container) AgentUseCase() (agentsUseCase.AgentUseCase, error) {
	var err error
	c.agentUseCaseInit.Do(func() {
		c.agentUseCase, err = c.initAgentUseCase()
		if err != nil {
			c.initErrors["agentUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["agentUseCase"]; exists {
		return nil, storedErr
	}
	return c.agentUseCase, nil
}

// AgentHandler returns the HTTP handler for agent operations.
func (c *Container) AgentHandler() (*agentsHTTP.AgentHandler, error) {
	var err error
	c.agentHandlerInit.Do(func() {
		c.agentHandler, err = c.initAgentHandler()
		if err != nil {
			c.initErrors["agentHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["agentHandler"]; exists {
		return nil, storedErr
	}
	return c.agentHandler, nil
}

// initAgentRepository creates the agent repository based on the database driver.
func (c *Container) initAgentRepository() (agentsUseCase.AgentRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for agent repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return agentsRepository.NewPostgreSQLAgentRepository(db), nil
	case "mysql":
		return agentsRepository.NewMySQLAgentRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initAgentUseCase creates the agent use case with all its dependencies.
func (c *Container) initAgentUseCase() (agentsUseCase.AgentUseCase, error) {
	agentRepository, err := c.AgentRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get agent repository for agent use case: %w", err)
	}

	baseUseCase := agentsUseCase.NewAgentUseCase(agentRepository)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for agent use case: %w", err)
		}
		return agentsUseCase.NewAgentUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initAgentHandler creates the agent HTTP handler with all its dependencies.
func (c *Container) initAgentHandler() (*agentsHTTP.AgentHandler, error) {
	agentUseCase, err := c.AgentUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get agent use case for agent handler: %w", err)
	}

	return agentsHTTP.NewAgentHandler(agentUseCase, c.Logger()), nil
}
