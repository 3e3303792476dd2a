// Package domain defines the core types for agent profile management.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Agent is a reusable assistant profile that conversations reference.
type Agent struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Provider     string    `json:"provider"`
	Model        string    `json:"model"`
	SystemPrompt string    `json:"system_prompt"`
	Temperature  float64   `json:"temperature"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateAgentInput contains the parameters for registering a new agent.
type CreateAgentInput struct {
	Name         string
	Provider     string
	Model        string
	SystemPrompt string
	Temperature  float64
}

// UpdateAgentInput contains the mutable agent fields. Nil pointers leave the
// stored value unchanged.
type UpdateAgentInput struct {
	Provider     *string
	Model        *string
	SystemPrompt *string
	Temperature  *float64
	IsActive     *bool
}
