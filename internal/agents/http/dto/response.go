// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	agentsDomain "github.com/agentvault/agentvault/internal/agents/domain"
)

// AgentResponse represents an agent in API responses.
type AgentResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Provider     string    `json:"provider"`
	Model        string    `json:"model"`
	SystemPrompt string    `json:"system_prompt"`
	Temperature  float64   `json:"temperature"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MapAgentToResponse converts a domain agent to an API response.
func MapAgentToResponse(agent *agentsDomain.Agent) AgentResponse {
	return AgentResponse{
		ID:           agent.ID.String(),
		Name:         agent.Name,
		Provider:     agent.Provider,
		Model:        agent.Model,
		SystemPrompt: agent.SystemPrompt,
		Temperature:  agent.Temperature,
		IsActive:     agent.IsActive,
		CreatedAt:    agent.CreatedAt,
		UpdatedAt:    agent.UpdatedAt,
	}
}

// ListAgentsResponse represents a paginated list of agents in API responses.
type ListAgentsResponse struct {
	Data []AgentResponse `json:"data"`
}

// MapAgentsToListResponse converts a slice of domain agents to a list API response.
func MapAgentsToListResponse(agents []*agentsDomain.Agent) ListAgentsResponse {
	agentResponses := make([]AgentResponse, 0, len(agents))
	for _, agent := range agents {
		agentResponses = append(agentResponses, MapAgentToResponse(agent))
	}
	return ListAgentsResponse{
		Data: agentResponses,
	}
}
